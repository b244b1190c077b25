// AngelaMos | 2026
// entity.go

package booking

import "time"

type Booking struct {
	ID            string    `db:"id"`
	BusinessID    string    `db:"business_id"`
	CustomerName  *string   `db:"customer_name"`
	Phone         *string   `db:"phone"`
	BookingStatus string    `db:"booking_status"`
	PaymentStatus string    `db:"payment_status"`
	BookingDate   time.Time `db:"booking_date"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}

// The two status axes never validate against each other. A cancelled
// booking can be marked paid and a completed one refunded; settlement
// disputes are resolved outside this system.
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
	StatusCompleted = "completed"
)

const (
	PaymentPending  = "pending"
	PaymentPaid     = "paid"
	PaymentRefunded = "refunded"
)

func KnownStatus(s string) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted:
		return true
	}
	return false
}

func KnownPaymentStatus(s string) bool {
	switch s {
	case PaymentPending, PaymentPaid, PaymentRefunded:
		return true
	}
	return false
}
