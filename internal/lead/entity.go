// AngelaMos | 2026
// entity.go

package lead

import "time"

type Lead struct {
	ID                 string    `db:"id"`
	CustomerName       string    `db:"customer_name"`
	Phone              string    `db:"phone"`
	Message            string    `db:"message"`
	Status             string    `db:"status"`
	LeadType           *string   `db:"lead_type"`
	AssignedTo         *string   `db:"assigned_to"`
	BusinessID         *string   `db:"business_id"`
	AssignedBusinessID *string   `db:"assigned_business_id"`
	CreatedAt          time.Time `db:"created_at"`
	UpdatedAt          time.Time `db:"updated_at"`
}

// Lead status carries no ordering. Any known value may replace any
// other; a converted lead can drop back to contacted.
const (
	StatusNew       = "new"
	StatusContacted = "contacted"
	StatusConverted = "converted"
)

func KnownStatus(s string) bool {
	switch s {
	case StatusNew, StatusContacted, StatusConverted:
		return true
	}
	return false
}
