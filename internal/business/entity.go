// AngelaMos | 2026
// entity.go

package business

import (
	"time"
)

// Business carries five semi-independent status dimensions: approval,
// payment verification, premium grant, premium request, and visibility.
// Each is mutated only through the service operations in service.go;
// the columns are flat, the wire shape nests paymentDetails and
// verification (see dto.go).
type Business struct {
	ID                   string     `db:"id"`
	BusinessName         string     `db:"business_name"`
	CategoryID           string     `db:"category_id"`
	Phone                string     `db:"phone"`
	Address              string     `db:"address"`
	City                 string     `db:"city"`
	ServiceArea          *string    `db:"service_area"`
	Description          *string    `db:"description"`
	BusinessType         string     `db:"business_type"`
	ListingType          string     `db:"listing_type"`
	ApprovalStatus       string     `db:"approval_status"`
	IsPremium            bool       `db:"is_premium"`
	PremiumSource        string     `db:"premium_source"`
	PremiumExpiry        *time.Time `db:"premium_expiry"`
	PremiumRequestStatus string     `db:"premium_request_status"`
	IsVisible            bool       `db:"is_visible"`
	PaymentAmount        int64      `db:"payment_amount"`
	PaymentMode          string     `db:"payment_mode"`
	PaymentStatus        string     `db:"payment_status"`
	PaymentNote          *string    `db:"payment_note"`
	VerificationStatus   string     `db:"verification_status"`
	VerifiedAt           *time.Time `db:"verified_at"`
	RejectionReason      *string    `db:"rejection_reason"`
	OwnerID              *string    `db:"owner_id"`
	CreatedBy            string     `db:"created_by"`
	CreatedAt            time.Time  `db:"created_at"`
	UpdatedAt            time.Time  `db:"updated_at"`
}

const (
	ApprovalPending  = "pending"
	ApprovalApproved = "approved"
	ApprovalRejected = "rejected"
)

const (
	PaymentPending  = "pending"
	PaymentVerified = "verified"
)

const (
	PaymentModeCash = "cash"
	PaymentModeUPI  = "upi"
)

const (
	ListingNormal  = "normal"
	ListingPremium = "premium"
)

const (
	TypeLeads   = "leads"
	TypeBooking = "booking"
	TypeHybrid  = "hybrid"
)

const (
	PremiumSourceNone         = "none"
	PremiumSourceSubscription = "subscription"
	PremiumSourceManual       = "manual"
)

const (
	RequestNone      = "none"
	RequestRequested = "premium_requested"
	RequestApproved  = "premium_approved"
	RequestRejected  = "premium_rejected"
)

const (
	VerificationPending  = "pending"
	VerificationApproved = "approved"
	VerificationRejected = "rejected"
)

// Manual premium grants run a fixed year; subscription-sourced grants
// track the owner's subscription expiry instead.
const ManualPremiumDuration = 365 * 24 * time.Hour

func (b *Business) IsApproved() bool {
	return b.ApprovalStatus == ApprovalApproved
}

func (b *Business) PaymentIsVerified() bool {
	return b.PaymentStatus == PaymentVerified
}
