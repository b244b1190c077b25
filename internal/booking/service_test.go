// AngelaMos | 2026
// service_test.go

package booking

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nearmeb2b/backoffice/internal/core"
)

type fakeBookingRepository struct {
	mu    sync.Mutex
	store map[string]*Booking
}

func newFakeBookingRepository() *fakeBookingRepository {
	return &fakeBookingRepository{store: make(map[string]*Booking)}
}

func (f *fakeBookingRepository) Create(_ context.Context, b *Booking) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	now := time.Now()
	b.CreatedAt = now
	b.UpdatedAt = now
	clone := *b
	f.store[b.ID] = &clone
	return nil
}

func (f *fakeBookingRepository) GetByID(_ context.Context, id string) (*Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	b, ok := f.store[id]
	if !ok {
		return nil, fmt.Errorf("get booking: %w", core.ErrNotFound)
	}
	clone := *b
	return &clone, nil
}

func (f *fakeBookingRepository) UpdateStatus(
	_ context.Context,
	id, status string,
) (*Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	b, ok := f.store[id]
	if !ok {
		return nil, fmt.Errorf("update booking status: %w", core.ErrNotFound)
	}
	b.BookingStatus = status
	b.UpdatedAt = time.Now()
	clone := *b
	return &clone, nil
}

func (f *fakeBookingRepository) UpdatePaymentStatus(
	_ context.Context,
	id, status string,
) (*Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	b, ok := f.store[id]
	if !ok {
		return nil, fmt.Errorf("update booking payment: %w", core.ErrNotFound)
	}
	b.PaymentStatus = status
	b.UpdatedAt = time.Now()
	clone := *b
	return &clone, nil
}

func (f *fakeBookingRepository) List(
	_ context.Context,
	params ListBookingParams,
) ([]Booking, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []Booking
	for _, b := range f.store {
		if params.BusinessID != "" && b.BusinessID != params.BusinessID {
			continue
		}
		out = append(out, *b)
	}
	return out, len(out), nil
}

var _ Repository = (*fakeBookingRepository)(nil)

var (
	adminActor    = core.Actor{UserID: uuid.New().String(), Role: core.RoleAdmin}
	salesmanActor = core.Actor{UserID: uuid.New().String(), Role: core.RoleSalesman}
	userActor     = core.Actor{UserID: uuid.New().String(), Role: core.RoleUser}
)

func seedBooking(t *testing.T, repo *fakeBookingRepository) *Booking {
	t.Helper()

	b := &Booking{
		ID:            uuid.New().String(),
		BusinessID:    uuid.New().String(),
		BookingStatus: StatusPending,
		PaymentStatus: PaymentPending,
		BookingDate:   time.Now().Add(48 * time.Hour),
	}
	require.NoError(t, repo.Create(context.Background(), b))
	return b
}

func TestCreateDefaultsBothDimensionsPending(t *testing.T) {
	repo := newFakeBookingRepository()
	svc := NewService(repo)

	b, err := svc.Create(context.Background(), salesmanActor, CreateBookingRequest{
		BusinessID:  uuid.New().String(),
		BookingDate: time.Now().Add(24 * time.Hour),
	})
	require.NoError(t, err)

	assert.Equal(t, StatusPending, b.BookingStatus)
	assert.Equal(t, PaymentPending, b.PaymentStatus)
}

func TestCreateForbiddenForUsers(t *testing.T) {
	repo := newFakeBookingRepository()
	svc := NewService(repo)

	_, err := svc.Create(context.Background(), userActor, CreateBookingRequest{})
	assert.ErrorIs(t, err, core.ErrForbidden)
}

// The two axes carry no cross-validation: a cancelled booking can still
// be marked paid.
func TestCancelledBookingCanBePaid(t *testing.T) {
	repo := newFakeBookingRepository()
	svc := NewService(repo)
	seeded := seedBooking(t, repo)
	ctx := context.Background()

	b, err := svc.UpdateStatus(ctx, adminActor, seeded.ID,
		UpdateBookingStatusRequest{BookingStatus: StatusCancelled})
	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, b.BookingStatus)

	b, err = svc.UpdatePaymentStatus(ctx, adminActor, seeded.ID,
		UpdateBookingPaymentRequest{PaymentStatus: PaymentPaid})
	require.NoError(t, err)
	assert.Equal(t, PaymentPaid, b.PaymentStatus)
	assert.Equal(t, StatusCancelled, b.BookingStatus)
}

func TestPaymentStatusFreelyMovable(t *testing.T) {
	repo := newFakeBookingRepository()
	svc := NewService(repo)
	seeded := seedBooking(t, repo)
	ctx := context.Background()

	for _, status := range []string{PaymentPaid, PaymentRefunded, PaymentPending} {
		b, err := svc.UpdatePaymentStatus(ctx, adminActor, seeded.ID,
			UpdateBookingPaymentRequest{PaymentStatus: status})
		require.NoError(t, err)
		assert.Equal(t, status, b.PaymentStatus)
	}
}

// Bookings are history: reading and settling one never requires its
// listing to still exist.
func TestBookingSurvivesDeletedListing(t *testing.T) {
	repo := newFakeBookingRepository()
	svc := NewService(repo)
	seeded := seedBooking(t, repo)
	ctx := context.Background()

	// seedBooking points at a business id no listing carries, which is
	// exactly the shape a deleted listing leaves behind.
	b, err := svc.Get(ctx, seeded.ID)
	require.NoError(t, err)
	assert.Equal(t, seeded.BusinessID, b.BusinessID)

	b, err = svc.UpdatePaymentStatus(ctx, adminActor, seeded.ID,
		UpdateBookingPaymentRequest{PaymentStatus: PaymentRefunded})
	require.NoError(t, err)
	assert.Equal(t, PaymentRefunded, b.PaymentStatus)

	listed, total, err := svc.List(ctx,
		ListBookingParams{BusinessID: seeded.BusinessID})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, seeded.ID, listed[0].ID)
}

func TestUpdateStatusRejectsUnknownValues(t *testing.T) {
	repo := newFakeBookingRepository()
	svc := NewService(repo)
	seeded := seedBooking(t, repo)
	ctx := context.Background()

	_, err := svc.UpdateStatus(ctx, adminActor, seeded.ID,
		UpdateBookingStatusRequest{BookingStatus: "noshow"})
	assert.ErrorIs(t, err, core.ErrInvalidInput)

	_, err = svc.UpdatePaymentStatus(ctx, adminActor, seeded.ID,
		UpdateBookingPaymentRequest{PaymentStatus: "chargeback"})
	assert.ErrorIs(t, err, core.ErrInvalidInput)
}

func TestUpdateMissingBookingNotFound(t *testing.T) {
	repo := newFakeBookingRepository()
	svc := NewService(repo)

	_, err := svc.UpdateStatus(context.Background(), adminActor,
		uuid.New().String(),
		UpdateBookingStatusRequest{BookingStatus: StatusConfirmed})
	assert.ErrorIs(t, err, core.ErrNotFound)
}
