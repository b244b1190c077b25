// AngelaMos | 2026
// service_test.go

package business

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

// fakeRepository mirrors the conditional-update semantics of the SQL
// layer: transitions apply only when the row still satisfies the
// precondition, and a failed precondition surfaces as core.ErrNotFound
// exactly like a zero-row UPDATE.
type fakeRepository struct {
	mu    sync.Mutex
	store map[string]*Business

	// transitionCalls counts conditional-update attempts, so tests can
	// assert an illegal intent never reaches storage.
	transitionCalls int
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{store: make(map[string]*Business)}
}

func (f *fakeRepository) Create(_ context.Context, b *Business) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	now := time.Now()
	b.CreatedAt = now
	b.UpdatedAt = now
	clone := *b
	f.store[b.ID] = &clone
	return nil
}

func (f *fakeRepository) GetByID(_ context.Context, id string) (*Business, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	b, ok := f.store[id]
	if !ok {
		return nil, fmt.Errorf("get business: %w", core.ErrNotFound)
	}
	clone := *b
	return &clone, nil
}

func (f *fakeRepository) UpdateDetails(_ context.Context, b *Business) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	cur, ok := f.store[b.ID]
	if !ok {
		return fmt.Errorf("update business: %w", core.ErrNotFound)
	}
	cur.BusinessName = b.BusinessName
	cur.CategoryID = b.CategoryID
	cur.Phone = b.Phone
	cur.Address = b.Address
	cur.City = b.City
	cur.ServiceArea = b.ServiceArea
	cur.Description = b.Description
	cur.OwnerID = b.OwnerID
	cur.UpdatedAt = time.Now()
	return nil
}

func (f *fakeRepository) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.store[id]; !ok {
		return fmt.Errorf("delete business: %w", core.ErrNotFound)
	}
	delete(f.store, id)
	return nil
}

func (f *fakeRepository) List(
	_ context.Context,
	params ListBusinessParams,
) ([]Business, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []Business
	for _, b := range f.store {
		if params.CreatedBy != "" && b.CreatedBy != params.CreatedBy {
			continue
		}
		if params.ApprovalStatus != "" && b.ApprovalStatus != params.ApprovalStatus {
			continue
		}
		if params.IsPremium != nil && b.IsPremium != *params.IsPremium {
			continue
		}
		out = append(out, *b)
	}
	return out, len(out), nil
}

func (f *fakeRepository) mutate(
	op, id string,
	precondition func(*Business) bool,
	apply func(*Business),
) (*Business, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.transitionCalls++

	b, ok := f.store[id]
	if !ok || !precondition(b) {
		return nil, fmt.Errorf("%s: %w", op, core.ErrNotFound)
	}
	apply(b)
	b.UpdatedAt = time.Now()
	clone := *b
	return &clone, nil
}

func (f *fakeRepository) Approve(_ context.Context, id string) (*Business, error) {
	return f.mutate("approve business", id,
		func(b *Business) bool { return b.ApprovalStatus == ApprovalPending },
		func(b *Business) {
			now := time.Now()
			b.ApprovalStatus = ApprovalApproved
			b.IsVisible = true
			b.VerificationStatus = VerificationApproved
			b.VerifiedAt = &now
			b.RejectionReason = nil
		})
}

func (f *fakeRepository) Reject(_ context.Context, id, reason string) (*Business, error) {
	return f.mutate("reject business", id,
		func(b *Business) bool { return b.ApprovalStatus == ApprovalPending },
		func(b *Business) {
			b.ApprovalStatus = ApprovalRejected
			b.IsVisible = false
			b.VerificationStatus = VerificationRejected
			b.RejectionReason = &reason
		})
}

func (f *fakeRepository) VerifyPayment(_ context.Context, id string) (*Business, error) {
	return f.mutate("verify payment", id,
		func(b *Business) bool { return b.PaymentStatus == PaymentPending },
		func(b *Business) { b.PaymentStatus = PaymentVerified })
}

func (f *fakeRepository) SetVisibility(
	_ context.Context,
	id string,
	visible bool,
) (*Business, error) {
	return f.mutate("set visibility", id,
		func(b *Business) bool { return b.ApprovalStatus == ApprovalApproved },
		func(b *Business) { b.IsVisible = visible })
}

func (f *fakeRepository) ActivatePremium(
	_ context.Context,
	id, source string,
	expiry *time.Time,
) (*Business, error) {
	return f.mutate("activate premium", id,
		func(b *Business) bool { return !b.IsPremium },
		func(b *Business) {
			b.IsPremium = true
			b.ListingType = ListingPremium
			b.PremiumSource = source
			b.PremiumExpiry = expiry
			b.PremiumRequestStatus = RequestApproved
		})
}

func (f *fakeRepository) DeactivatePremium(_ context.Context, id string) (*Business, error) {
	return f.mutate("deactivate premium", id,
		func(b *Business) bool { return b.IsPremium },
		func(b *Business) {
			b.IsPremium = false
			b.ListingType = ListingNormal
			b.PremiumSource = PremiumSourceNone
			b.PremiumExpiry = nil
		})
}

func (f *fakeRepository) RequestPremium(_ context.Context, id string) (*Business, error) {
	return f.mutate("request premium", id,
		func(b *Business) bool {
			return b.PremiumRequestStatus == RequestNone ||
				b.PremiumRequestStatus == RequestRejected
		},
		func(b *Business) { b.PremiumRequestStatus = RequestRequested })
}

func (f *fakeRepository) ApprovePremiumRequest(
	_ context.Context,
	id string,
	expiry *time.Time,
) (*Business, error) {
	return f.mutate("approve premium request", id,
		func(b *Business) bool {
			return b.PremiumRequestStatus == RequestRequested && !b.IsPremium
		},
		func(b *Business) {
			b.IsPremium = true
			b.ListingType = ListingPremium
			b.PremiumSource = PremiumSourceManual
			b.PremiumExpiry = expiry
			b.PremiumRequestStatus = RequestApproved
		})
}

func (f *fakeRepository) RejectPremiumRequest(_ context.Context, id string) (*Business, error) {
	return f.mutate("reject premium request", id,
		func(b *Business) bool { return b.PremiumRequestStatus == RequestRequested },
		func(b *Business) { b.PremiumRequestStatus = RequestRejected })
}

func (f *fakeRepository) GrantSubscriptionPremium(
	_ context.Context,
	ownerID string,
	expiry time.Time,
) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	count := 0
	for _, b := range f.store {
		if b.OwnerID == nil || *b.OwnerID != ownerID {
			continue
		}
		if b.IsPremium && b.PremiumSource != PremiumSourceSubscription {
			continue
		}
		b.IsPremium = true
		b.ListingType = ListingPremium
		b.PremiumSource = PremiumSourceSubscription
		e := expiry
		b.PremiumExpiry = &e
		count++
	}
	return count, nil
}

func (f *fakeRepository) ExpirePremium(
	_ context.Context,
	source string,
	now time.Time,
) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	count := 0
	for _, b := range f.store {
		if !b.IsPremium || b.PremiumExpiry == nil || b.PremiumExpiry.After(now) {
			continue
		}
		if source != "" && b.PremiumSource != source {
			continue
		}
		b.IsPremium = false
		b.ListingType = ListingNormal
		b.PremiumSource = PremiumSourceNone
		b.PremiumExpiry = nil
		count++
	}
	return count, nil
}

var _ Repository = (*fakeRepository)(nil)

var (
	adminActor    = core.Actor{UserID: uuid.New().String(), Role: core.RoleAdmin}
	salesmanActor = core.Actor{UserID: uuid.New().String(), Role: core.RoleSalesman}
	ownerActor    = core.Actor{UserID: uuid.New().String(), Role: core.RoleOwner}
)

func seedBusiness(t *testing.T, repo *fakeRepository, mutators ...func(*Business)) *Business {
	t.Helper()

	b := &Business{
		ID:                   uuid.New().String(),
		BusinessName:         "Star Plumbing Works",
		CategoryID:           uuid.New().String(),
		Phone:                "+919812345678",
		Address:              "14 MG Road",
		City:                 "Pune",
		BusinessType:         TypeLeads,
		ListingType:          ListingNormal,
		ApprovalStatus:       ApprovalPending,
		PremiumSource:        PremiumSourceNone,
		PremiumRequestStatus: RequestNone,
		PaymentAmount:        150000,
		PaymentMode:          PaymentModeCash,
		PaymentStatus:        PaymentPending,
		VerificationStatus:   VerificationPending,
		CreatedBy:            salesmanActor.UserID,
	}
	for _, m := range mutators {
		m(b)
	}

	require.NoError(t, repo.Create(context.Background(), b))
	return b
}

func approved() func(*Business) {
	return func(b *Business) {
		now := time.Now()
		b.ApprovalStatus = ApprovalApproved
		b.IsVisible = true
		b.VerificationStatus = VerificationApproved
		b.VerifiedAt = &now
	}
}

func TestApproveSetsAllDimensions(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo)
	seeded := seedBusiness(t, repo)

	b, err := svc.Approve(context.Background(), adminActor, seeded.ID)
	require.NoError(t, err)

	assert.Equal(t, ApprovalApproved, b.ApprovalStatus)
	assert.True(t, b.IsVisible)
	assert.Equal(t, VerificationApproved, b.VerificationStatus)
	require.NotNil(t, b.VerifiedAt)
	assert.Nil(t, b.RejectionReason)
}

func TestApproveNonPendingConflicts(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo)
	seeded := seedBusiness(t, repo, approved())

	_, err := svc.Approve(context.Background(), adminActor, seeded.ID)
	assert.ErrorIs(t, err, core.ErrInvalidTransition)
}

func TestApproveMissingBusinessNotFound(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo)

	_, err := svc.Approve(context.Background(), adminActor, uuid.New().String())
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestApproveRequiresAdmin(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo)
	seeded := seedBusiness(t, repo)

	_, err := svc.Approve(context.Background(), salesmanActor, seeded.ID)
	assert.ErrorIs(t, err, core.ErrForbidden)
}

// Two racing approvals must resolve to exactly one winner; the loser
// sees a conflict, not a double apply.
func TestConcurrentApprovesExactlyOneWins(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo)
	seeded := seedBusiness(t, repo)

	const racers = 8
	errs := make([]error, racers)

	var wg sync.WaitGroup
	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Approve(context.Background(), adminActor, seeded.ID)
		}(i)
	}
	wg.Wait()

	wins, conflicts := 0, 0
	for _, err := range errs {
		switch {
		case err == nil:
			wins++
		case core.IsAppError(err):
			conflicts++
			assert.ErrorIs(t, err, core.ErrInvalidTransition)
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	assert.Equal(t, 1, wins)
	assert.Equal(t, racers-1, conflicts)
}

func TestRejectRecordsReasonAndHides(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo)
	seeded := seedBusiness(t, repo)

	b, err := svc.Reject(context.Background(), adminActor, seeded.ID,
		RejectBusinessRequest{RejectionReason: "duplicate listing"})
	require.NoError(t, err)

	assert.Equal(t, ApprovalRejected, b.ApprovalStatus)
	assert.False(t, b.IsVisible)
	assert.Equal(t, VerificationRejected, b.VerificationStatus)
	require.NotNil(t, b.RejectionReason)
	assert.Equal(t, "duplicate listing", *b.RejectionReason)
}

func TestRejectApprovedConflicts(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo)
	seeded := seedBusiness(t, repo, approved())

	_, err := svc.Reject(context.Background(), adminActor, seeded.ID,
		RejectBusinessRequest{RejectionReason: "too late"})
	assert.ErrorIs(t, err, core.ErrInvalidTransition)
}

// The reason requirement holds at the engine, not just in the HTTP
// DTO validator.
func TestRejectEmptyReasonValidationError(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo)
	seeded := seedBusiness(t, repo)

	for _, reason := range []string{"", "   ", "\t\n"} {
		_, err := svc.Reject(context.Background(), adminActor, seeded.ID,
			RejectBusinessRequest{RejectionReason: reason})
		require.Error(t, err)
		assert.ErrorIs(t, err, core.ErrInvalidInput)
	}

	cur, err := repo.GetByID(context.Background(), seeded.ID)
	require.NoError(t, err)
	assert.Equal(t, ApprovalPending, cur.ApprovalStatus)
	assert.Nil(t, cur.RejectionReason)
}

// Illegal intents are stopped by the transition table before any
// conditional update is attempted.
func TestIllegalTransitionNeverReachesStorage(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo)
	seeded := seedBusiness(t, repo, approved())

	_, err := svc.Approve(context.Background(), adminActor, seeded.ID)
	assert.ErrorIs(t, err, core.ErrInvalidTransition)

	_, err = svc.Reject(context.Background(), adminActor, seeded.ID,
		RejectBusinessRequest{RejectionReason: "changed my mind"})
	assert.ErrorIs(t, err, core.ErrInvalidTransition)

	_, err = svc.RejectPremiumRequest(context.Background(), adminActor, seeded.ID)
	assert.ErrorIs(t, err, core.ErrInvalidTransition)

	assert.Zero(t, repo.transitionCalls)
}

// Payment verification is a separate dimension: a rejected listing can
// still have its collected payment verified.
func TestVerifyPaymentIndependentOfApproval(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo)
	seeded := seedBusiness(t, repo, func(b *Business) {
		b.ApprovalStatus = ApprovalRejected
	})

	b, err := svc.VerifyPayment(context.Background(), adminActor, seeded.ID)
	require.NoError(t, err)

	assert.Equal(t, PaymentVerified, b.PaymentStatus)
	assert.Equal(t, ApprovalRejected, b.ApprovalStatus)
}

func TestVerifyPaymentTwiceConflicts(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo)
	seeded := seedBusiness(t, repo)

	_, err := svc.VerifyPayment(context.Background(), adminActor, seeded.ID)
	require.NoError(t, err)

	_, err = svc.VerifyPayment(context.Background(), adminActor, seeded.ID)
	assert.ErrorIs(t, err, core.ErrInvalidTransition)
}

func TestToggleVisibilityOnlyWhenApproved(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo)

	pending := seedBusiness(t, repo)
	_, err := svc.ToggleVisibility(context.Background(), adminActor, pending.ID)
	assert.ErrorIs(t, err, core.ErrInvalidTransition)

	live := seedBusiness(t, repo, approved())
	b, err := svc.ToggleVisibility(context.Background(), adminActor, live.ID)
	require.NoError(t, err)
	assert.False(t, b.IsVisible)

	b, err = svc.ToggleVisibility(context.Background(), adminActor, live.ID)
	require.NoError(t, err)
	assert.True(t, b.IsVisible)
}

func TestActivatePremiumGrantsManualYear(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo)
	seeded := seedBusiness(t, repo, approved())

	before := time.Now()
	b, err := svc.ActivatePremium(context.Background(), adminActor, seeded.ID)
	require.NoError(t, err)

	assert.True(t, b.IsPremium)
	assert.Equal(t, ListingPremium, b.ListingType)
	assert.Equal(t, PremiumSourceManual, b.PremiumSource)
	assert.Equal(t, RequestApproved, b.PremiumRequestStatus)
	require.NotNil(t, b.PremiumExpiry)
	assert.WithinDuration(t,
		before.Add(ManualPremiumDuration), *b.PremiumExpiry, time.Minute)
}

func TestActivatePremiumOnPremiumConflicts(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo)
	seeded := seedBusiness(t, repo, approved())

	_, err := svc.ActivatePremium(context.Background(), adminActor, seeded.ID)
	require.NoError(t, err)

	_, err = svc.ActivatePremium(context.Background(), adminActor, seeded.ID)
	assert.ErrorIs(t, err, core.ErrInvalidTransition)
}

// Revoking premium keeps the request trail: premiumRequestStatus stays
// where the request dimension left it.
func TestDeactivatePremiumKeepsRequestStatus(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo)
	seeded := seedBusiness(t, repo, approved())

	_, err := svc.ActivatePremium(context.Background(), adminActor, seeded.ID)
	require.NoError(t, err)

	b, err := svc.DeactivatePremium(context.Background(), adminActor, seeded.ID)
	require.NoError(t, err)

	assert.False(t, b.IsPremium)
	assert.Equal(t, ListingNormal, b.ListingType)
	assert.Equal(t, PremiumSourceNone, b.PremiumSource)
	assert.Nil(t, b.PremiumExpiry)
	assert.Equal(t, RequestApproved, b.PremiumRequestStatus)
}

func TestDeactivateNonPremiumConflicts(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo)
	seeded := seedBusiness(t, repo)

	_, err := svc.DeactivatePremium(context.Background(), adminActor, seeded.ID)
	assert.ErrorIs(t, err, core.ErrInvalidTransition)
}

func TestRequestPremiumLifecycle(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo)
	seeded := seedBusiness(t, repo, approved())
	ctx := context.Background()

	b, err := svc.RequestPremium(ctx, salesmanActor, seeded.ID)
	require.NoError(t, err)
	assert.Equal(t, RequestRequested, b.PremiumRequestStatus)

	// A pending request cannot be raised again.
	_, err = svc.RequestPremium(ctx, salesmanActor, seeded.ID)
	assert.ErrorIs(t, err, core.ErrInvalidTransition)

	b, err = svc.RejectPremiumRequest(ctx, adminActor, seeded.ID)
	require.NoError(t, err)
	assert.Equal(t, RequestRejected, b.PremiumRequestStatus)
	assert.False(t, b.IsPremium)

	// Rejection permits resubmission.
	b, err = svc.RequestPremium(ctx, salesmanActor, seeded.ID)
	require.NoError(t, err)
	assert.Equal(t, RequestRequested, b.PremiumRequestStatus)

	b, err = svc.ApprovePremiumRequest(ctx, adminActor, seeded.ID)
	require.NoError(t, err)
	assert.Equal(t, RequestApproved, b.PremiumRequestStatus)
	assert.True(t, b.IsPremium)
	assert.Equal(t, PremiumSourceManual, b.PremiumSource)
	require.NotNil(t, b.PremiumExpiry)
}

func TestRequestPremiumForeignListingForbidden(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo)
	other := core.Actor{UserID: uuid.New().String(), Role: core.RoleSalesman}
	seeded := seedBusiness(t, repo, approved())

	_, err := svc.RequestPremium(context.Background(), other, seeded.ID)
	assert.ErrorIs(t, err, core.ErrForbidden)
}

func TestApprovePremiumRequestWithoutRequestConflicts(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo)
	seeded := seedBusiness(t, repo, approved())

	_, err := svc.ApprovePremiumRequest(context.Background(), adminActor, seeded.ID)
	assert.ErrorIs(t, err, core.ErrInvalidTransition)
}

func TestCreateSetsLifecycleDefaults(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo)

	b, err := svc.Create(context.Background(), salesmanActor, CreateBusinessRequest{
		BusinessName: "Lotus Bakery",
		CategoryID:   uuid.New().String(),
		Phone:        "+919876501234",
		Address:      "3 FC Road",
		City:         "Pune",
		BusinessType: TypeBooking,
		PaymentDetails: PaymentDetailsRequest{
			Amount:      250000,
			PaymentMode: PaymentModeUPI,
		},
	})
	require.NoError(t, err)

	assert.Equal(t, ApprovalPending, b.ApprovalStatus)
	assert.Equal(t, PaymentPending, b.PaymentStatus)
	assert.Equal(t, VerificationPending, b.VerificationStatus)
	assert.Equal(t, RequestNone, b.PremiumRequestStatus)
	assert.Equal(t, ListingNormal, b.ListingType)
	assert.False(t, b.IsVisible)
	assert.False(t, b.IsPremium)
	assert.Equal(t, salesmanActor.UserID, b.CreatedBy)
}

func TestCreateForbiddenForOwners(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo)

	_, err := svc.Create(context.Background(), ownerActor, CreateBusinessRequest{})
	assert.ErrorIs(t, err, core.ErrForbidden)
}

func TestListScopesSalesmanToOwnListings(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo)
	ctx := context.Background()

	seedBusiness(t, repo)
	seedBusiness(t, repo, func(b *Business) {
		b.CreatedBy = uuid.New().String()
	})

	mine, total, err := svc.List(ctx, salesmanActor, ListBusinessParams{})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, mine, 1)
	assert.Equal(t, salesmanActor.UserID, mine[0].CreatedBy)

	all, total, err := svc.List(ctx, adminActor, ListBusinessParams{})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Len(t, all, 2)
}

func TestGetScopedBySalesmanAndOwner(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo)
	ctx := context.Background()

	ownerID := ownerActor.UserID
	seeded := seedBusiness(t, repo, func(b *Business) {
		b.OwnerID = &ownerID
	})

	_, err := svc.Get(ctx, adminActor, seeded.ID)
	assert.NoError(t, err)

	_, err = svc.Get(ctx, salesmanActor, seeded.ID)
	assert.NoError(t, err)

	_, err = svc.Get(ctx, ownerActor, seeded.ID)
	assert.NoError(t, err)

	stranger := core.Actor{UserID: uuid.New().String(), Role: core.RoleUser}
	_, err = svc.Get(ctx, stranger, seeded.ID)
	assert.ErrorIs(t, err, core.ErrForbidden)
}

func TestGrantAndExpireSubscriptionPremium(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo)
	ctx := context.Background()

	ownerID := ownerActor.UserID
	first := seedBusiness(t, repo, approved(), func(b *Business) { b.OwnerID = &ownerID })
	second := seedBusiness(t, repo, approved(), func(b *Business) { b.OwnerID = &ownerID })
	seedBusiness(t, repo, approved())

	expiry := time.Now().Add(30 * 24 * time.Hour)
	granted, err := svc.GrantSubscriptionPremium(ctx, ownerID, expiry)
	require.NoError(t, err)
	assert.Equal(t, 2, granted)

	for _, id := range []string{first.ID, second.ID} {
		b, err := repo.GetByID(ctx, id)
		require.NoError(t, err)
		assert.True(t, b.IsPremium)
		assert.Equal(t, PremiumSourceSubscription, b.PremiumSource)
	}

	expired, err := svc.ExpirePremium(ctx, PremiumSourceSubscription, expiry.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 2, expired)

	b, err := repo.GetByID(ctx, first.ID)
	require.NoError(t, err)
	assert.False(t, b.IsPremium)
	assert.Equal(t, PremiumSourceNone, b.PremiumSource)
}
