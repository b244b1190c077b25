// AngelaMos | 2026
// dto.go

package booking

import "time"

type CreateBookingRequest struct {
	BusinessID   string    `json:"businessId" validate:"required,uuid4"`
	CustomerName *string   `json:"customerName,omitempty" validate:"omitempty,min=2,max=150"`
	Phone        *string   `json:"phone,omitempty" validate:"omitempty,min=7,max=20"`
	BookingDate  time.Time `json:"bookingDate" validate:"required"`
}

type UpdateBookingStatusRequest struct {
	BookingStatus string `json:"bookingStatus" validate:"required,oneof=pending confirmed cancelled completed"`
}

type UpdateBookingPaymentRequest struct {
	PaymentStatus string `json:"paymentStatus" validate:"required,oneof=pending paid refunded"`
}

type BookingResponse struct {
	ID            string    `json:"id"`
	BusinessID    string    `json:"businessId"`
	CustomerName  *string   `json:"customerName,omitempty"`
	Phone         *string   `json:"phone,omitempty"`
	BookingStatus string    `json:"bookingStatus"`
	PaymentStatus string    `json:"paymentStatus"`
	BookingDate   time.Time `json:"bookingDate"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

type ListBookingParams struct {
	Page          int
	Limit         int
	BusinessID    string
	BookingStatus string
	PaymentStatus string
}

func (p *ListBookingParams) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = 20
	}
	if p.Limit > 100 {
		p.Limit = 100
	}
}

func (p *ListBookingParams) Offset() int {
	return (p.Page - 1) * p.Limit
}

func ToBookingResponse(b *Booking) BookingResponse {
	return BookingResponse{
		ID:            b.ID,
		BusinessID:    b.BusinessID,
		CustomerName:  b.CustomerName,
		Phone:         b.Phone,
		BookingStatus: b.BookingStatus,
		PaymentStatus: b.PaymentStatus,
		BookingDate:   b.BookingDate,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
}

func ToBookingResponseList(bookings []Booking) []BookingResponse {
	responses := make([]BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		responses = append(responses, ToBookingResponse(&b))
	}
	return responses
}
