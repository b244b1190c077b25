// AngelaMos | 2026
// repository.go

package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/nearmeb2b/backoffice/internal/core"
)

type Repository interface {
	Create(ctx context.Context, b *Booking) error
	GetByID(ctx context.Context, id string) (*Booking, error)
	UpdateStatus(ctx context.Context, id, status string) (*Booking, error)
	UpdatePaymentStatus(ctx context.Context, id, status string) (*Booking, error)
	List(ctx context.Context, params ListBookingParams) ([]Booking, int, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

const bookingColumns = `
	id, business_id, customer_name, phone, booking_status,
	payment_status, booking_date, created_at, updated_at`

func (r *repository) Create(ctx context.Context, b *Booking) error {
	query := `
		INSERT INTO bookings (
			id, business_id, customer_name, phone,
			booking_status, payment_status, booking_date
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at`

	err := r.db.GetContext(ctx, b, query,
		b.ID,
		b.BusinessID,
		b.CustomerName,
		b.Phone,
		b.BookingStatus,
		b.PaymentStatus,
		b.BookingDate,
	)
	if err != nil {
		return fmt.Errorf("create booking: %w", err)
	}

	return nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Booking, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM bookings
		WHERE id = $1`, bookingColumns)

	var b Booking
	err := r.db.GetContext(ctx, &b, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get booking: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get booking: %w", err)
	}

	return &b, nil
}

func (r *repository) UpdateStatus(
	ctx context.Context,
	id, status string,
) (*Booking, error) {
	query := fmt.Sprintf(`
		UPDATE bookings
		SET booking_status = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING %s`, bookingColumns)

	var b Booking
	err := r.db.GetContext(ctx, &b, query, id, status)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("update booking status: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("update booking status: %w", err)
	}

	return &b, nil
}

func (r *repository) UpdatePaymentStatus(
	ctx context.Context,
	id, status string,
) (*Booking, error) {
	query := fmt.Sprintf(`
		UPDATE bookings
		SET payment_status = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING %s`, bookingColumns)

	var b Booking
	err := r.db.GetContext(ctx, &b, query, id, status)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("update booking payment: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("update booking payment: %w", err)
	}

	return &b, nil
}

func (r *repository) List(
	ctx context.Context,
	params ListBookingParams,
) ([]Booking, int, error) {
	params.Normalize()

	var conditions []string
	var args []any
	argIdx := 1

	conditions = append(conditions, "TRUE")

	if params.BusinessID != "" {
		conditions = append(conditions, fmt.Sprintf("business_id = $%d", argIdx))
		args = append(args, params.BusinessID)
		argIdx++
	}

	if params.BookingStatus != "" {
		conditions = append(conditions, fmt.Sprintf("booking_status = $%d", argIdx))
		args = append(args, params.BookingStatus)
		argIdx++
	}

	if params.PaymentStatus != "" {
		conditions = append(conditions, fmt.Sprintf("payment_status = $%d", argIdx))
		args = append(args, params.PaymentStatus)
		argIdx++
	}

	whereClause := strings.Join(conditions, " AND ")

	countQuery := fmt.Sprintf(
		"SELECT COUNT(*) FROM bookings WHERE %s",
		whereClause,
	)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count bookings: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM bookings
		WHERE %s
		ORDER BY booking_date DESC
		LIMIT $%d OFFSET $%d`,
		bookingColumns, whereClause, argIdx, argIdx+1)

	args = append(args, params.Limit, params.Offset())

	var bookings []Booking
	if err := r.db.SelectContext(ctx, &bookings, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list bookings: %w", err)
	}

	return bookings, total, nil
}
