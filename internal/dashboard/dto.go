// AngelaMos | 2026
// dto.go

package dashboard

// Stats is recomputed from live SQL on every request. Revenue counts
// verified payments only; pending collections are not money yet.
type Stats struct {
	TotalBusinesses   int     `db:"total_businesses"   json:"totalBusinesses"`
	PendingApproval   int     `db:"pending_approval"   json:"pendingApproval"`
	ApprovedToday     int     `db:"approved_today"     json:"approvedToday"`
	NewToday          int     `db:"new_today"          json:"newToday"`
	PremiumBusinesses int     `db:"premium_businesses" json:"premiumBusinesses"`
	PremiumRequests   int     `db:"premium_requests"   json:"premiumRequests"`
	VerifiedPayments  int     `db:"verified_payments"  json:"verifiedPayments"`
	Revenue           int64   `db:"revenue"            json:"revenue"`
	TotalLeads        int     `db:"total_leads"        json:"totalLeads"`
	ConvertedLeads    int     `db:"converted_leads"    json:"convertedLeads"`
	ConversionRate    float64 `db:"-"                  json:"conversionRate"`
	TotalBookings     int     `db:"total_bookings"     json:"totalBookings"`

	// Admin view only; stays zero for a salesman's scoped slice.
	TotalSalesmen int `db:"total_salesmen" json:"totalSalesmen"`
}
