// AngelaMos | 2026
// transitions.go

package business

// Dimension names the orthogonal status axes of a Business. Each has
// its own transition table; anything outside a table is rejected at
// the service boundary before touching storage.
type Dimension string

const (
	DimApproval       Dimension = "approvalStatus"
	DimPayment        Dimension = "paymentStatus"
	DimPremiumRequest Dimension = "premiumRequestStatus"
)

// pending is the only approval state with outgoing edges; approved and
// rejected are terminal. There is no re-review path.
var approvalTransitions = map[string]map[string]bool{
	ApprovalPending:  {ApprovalApproved: true, ApprovalRejected: true},
	ApprovalApproved: {},
	ApprovalRejected: {},
}

var paymentTransitions = map[string]map[string]bool{
	PaymentPending:  {PaymentVerified: true},
	PaymentVerified: {},
}

// A rejected premium request may be resubmitted; an approved one is
// terminal for this dimension even after the grant itself lapses.
var premiumRequestTransitions = map[string]map[string]bool{
	RequestNone:      {RequestRequested: true},
	RequestRequested: {RequestApproved: true, RequestRejected: true},
	RequestRejected:  {RequestRequested: true},
	RequestApproved:  {},
}

var transitionTables = map[Dimension]map[string]map[string]bool{
	DimApproval:       approvalTransitions,
	DimPayment:        paymentTransitions,
	DimPremiumRequest: premiumRequestTransitions,
}

// StatusOf returns the listing's current state on the given dimension.
func (b *Business) StatusOf(dim Dimension) string {
	switch dim {
	case DimApproval:
		return b.ApprovalStatus
	case DimPayment:
		return b.PaymentStatus
	case DimPremiumRequest:
		return b.PremiumRequestStatus
	}
	return ""
}

func CanTransition(dim Dimension, from, to string) bool {
	table, ok := transitionTables[dim]
	if !ok {
		return false
	}

	next, ok := table[from]
	if !ok {
		return false
	}

	return next[to]
}

// KnownValue reports whether v is a state the dimension's table knows
// about at all, so caller-supplied strings outside the enum are
// rejected rather than treated as terminal states.
func KnownValue(dim Dimension, v string) bool {
	table, ok := transitionTables[dim]
	if !ok {
		return false
	}

	_, ok = table[v]
	return ok
}
