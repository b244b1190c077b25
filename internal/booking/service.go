// AngelaMos | 2026
// service.go

package booking

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/nearmeb2b/backoffice/internal/core"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(
	ctx context.Context,
	actor core.Actor,
	req CreateBookingRequest,
) (*Booking, error) {
	if !actor.IsAdmin() && !actor.IsSalesman() {
		return nil, core.ForbiddenError("only staff can create bookings")
	}

	b := &Booking{
		ID:            uuid.New().String(),
		BusinessID:    req.BusinessID,
		CustomerName:  req.CustomerName,
		Phone:         req.Phone,
		BookingStatus: StatusPending,
		PaymentStatus: PaymentPending,
		BookingDate:   req.BookingDate,
	}

	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}

	return b, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Booking, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) UpdateStatus(
	ctx context.Context,
	actor core.Actor,
	id string,
	req UpdateBookingStatusRequest,
) (*Booking, error) {
	if !actor.IsAdmin() && !actor.IsSalesman() {
		return nil, core.ForbiddenError("only staff can update bookings")
	}

	if !KnownStatus(req.BookingStatus) {
		return nil, core.ValidationError(
			fmt.Sprintf("unknown booking status %q", req.BookingStatus))
	}

	return s.repo.UpdateStatus(ctx, id, req.BookingStatus)
}

// UpdatePaymentStatus never consults bookingStatus. The axes move
// independently.
func (s *Service) UpdatePaymentStatus(
	ctx context.Context,
	actor core.Actor,
	id string,
	req UpdateBookingPaymentRequest,
) (*Booking, error) {
	if !actor.IsAdmin() && !actor.IsSalesman() {
		return nil, core.ForbiddenError("only staff can update bookings")
	}

	if !KnownPaymentStatus(req.PaymentStatus) {
		return nil, core.ValidationError(
			fmt.Sprintf("unknown payment status %q", req.PaymentStatus))
	}

	return s.repo.UpdatePaymentStatus(ctx, id, req.PaymentStatus)
}

func (s *Service) List(
	ctx context.Context,
	params ListBookingParams,
) ([]Booking, int, error) {
	return s.repo.List(ctx, params)
}
