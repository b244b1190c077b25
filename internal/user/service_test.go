// AngelaMos | 2026
// service_test.go

package user

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nearmeb2b/backoffice/internal/core"
)

type fakeRepository struct {
	users map[string]*User
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{users: make(map[string]*User)}
}

func (f *fakeRepository) Create(_ context.Context, user *User) error {
	for _, u := range f.users {
		if u.Email == user.Email {
			return fmt.Errorf("create user: %w", core.ErrDuplicateKey)
		}
	}
	cp := *user
	f.users[user.ID] = &cp
	return nil
}

func (f *fakeRepository) GetByID(_ context.Context, id string) (*User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, fmt.Errorf("get user: %w", core.ErrNotFound)
	}
	cp := *u
	return &cp, nil
}

func (f *fakeRepository) GetByEmail(_ context.Context, email string) (*User, error) {
	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("get user by email: %w", core.ErrNotFound)
}

func (f *fakeRepository) Update(_ context.Context, user *User) error {
	if _, ok := f.users[user.ID]; !ok {
		return fmt.Errorf("update user: %w", core.ErrNotFound)
	}
	cp := *user
	f.users[user.ID] = &cp
	return nil
}

func (f *fakeRepository) UpdatePassword(_ context.Context, id, hash string) error {
	u, ok := f.users[id]
	if !ok {
		return fmt.Errorf("update password: %w", core.ErrNotFound)
	}
	u.PasswordHash = hash
	return nil
}

func (f *fakeRepository) IncrementTokenVersion(_ context.Context, id string) error {
	u, ok := f.users[id]
	if !ok {
		return fmt.Errorf("increment token version: %w", core.ErrNotFound)
	}
	u.TokenVersion++
	return nil
}

func (f *fakeRepository) SetStatus(_ context.Context, id, status string) (*User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, fmt.Errorf("set user status: %w", core.ErrNotFound)
	}
	u.Status = status
	if status == StatusBlocked {
		u.TokenVersion++
	}
	cp := *u
	return &cp, nil
}

func (f *fakeRepository) ActivateSubscription(
	_ context.Context,
	id, planType string,
	start, expiry time.Time,
) (*User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, fmt.Errorf("activate subscription: %w", core.ErrNotFound)
	}
	u.SubscriptionStatus = SubscriptionActive
	u.PlanType = &planType
	u.SubscriptionStart = &start
	u.SubscriptionExpiry = &expiry
	cp := *u
	return &cp, nil
}

func (f *fakeRepository) ExpireSubscriptions(
	_ context.Context,
	now time.Time,
) ([]string, error) {
	var ids []string
	for _, u := range f.users {
		if u.SubscriptionStatus == SubscriptionActive &&
			u.SubscriptionExpiry != nil &&
			u.SubscriptionExpiry.Before(now) {
			u.SubscriptionStatus = SubscriptionExpired
			ids = append(ids, u.ID)
		}
	}
	return ids, nil
}

func (f *fakeRepository) SoftDelete(_ context.Context, id string) error {
	if _, ok := f.users[id]; !ok {
		return fmt.Errorf("delete user: %w", core.ErrNotFound)
	}
	delete(f.users, id)
	return nil
}

func (f *fakeRepository) List(
	_ context.Context,
	params ListUsersParams,
) ([]User, int, error) {
	var out []User
	for _, u := range f.users {
		if params.Role != "" && u.Role != params.Role {
			continue
		}
		out = append(out, *u)
	}
	return out, len(out), nil
}

func (f *fakeRepository) ExistsByEmail(_ context.Context, email string) (bool, error) {
	for _, u := range f.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

type fakePremiumGranter struct {
	grantedOwner  string
	grantedExpiry time.Time
	grantCalls    int
	expiredSource string
	expireCalls   int
}

func (f *fakePremiumGranter) GrantSubscriptionPremium(
	_ context.Context,
	ownerID string,
	expiry time.Time,
) (int, error) {
	f.grantedOwner = ownerID
	f.grantedExpiry = expiry
	f.grantCalls++
	return 1, nil
}

func (f *fakePremiumGranter) ExpirePremium(
	_ context.Context,
	source string,
	_ time.Time,
) (int, error) {
	f.expiredSource = source
	f.expireCalls++
	return 1, nil
}

func seedUser(repo *fakeRepository, role string) *User {
	u := &User{
		ID:     uuid.New().String(),
		Email:  uuid.New().String() + "@example.com",
		Name:   "Test User",
		Role:   role,
		Status: StatusActive,
	}
	repo.users[u.ID] = u
	return u
}

func superAdmin() core.Actor {
	return core.Actor{UserID: uuid.New().String(), Role: core.RoleSuperAdmin}
}

func admin() core.Actor {
	return core.Actor{UserID: uuid.New().String(), Role: core.RoleAdmin}
}

func TestCreateUserRoleGates(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo, &fakePremiumGranter{})

	created, err := svc.CreateUser(context.Background(), superAdmin(), CreateUserRequest{
		Email:    "Admin@Example.com",
		Password: "sup3r-secret",
		Name:     "New Admin",
		Mobile:   "9876543210",
		Role:     RoleAdmin,
	})
	require.NoError(t, err)
	assert.Equal(t, "admin@example.com", created.Email)
	assert.Equal(t, StatusActive, created.Status)
	assert.Equal(t, SubscriptionNone, created.SubscriptionStatus)

	// An admin can only provision salesmen.
	_, err = svc.CreateUser(context.Background(), admin(), CreateUserRequest{
		Email:    "owner@example.com",
		Password: "sup3r-secret",
		Name:     "Owner",
		Mobile:   "9876543211",
		Role:     RoleOwner,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrForbidden)

	_, err = svc.CreateUser(context.Background(), admin(), CreateUserRequest{
		Email:    "sales@example.com",
		Password: "sup3r-secret",
		Name:     "Sales",
		Mobile:   "9876543212",
		Role:     RoleSalesman,
	})
	require.NoError(t, err)
}

func TestNobodyManagesSuperAdmins(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo, &fakePremiumGranter{})
	target := seedUser(repo, RoleSuperAdmin)

	_, err := svc.ToggleBlock(context.Background(), superAdmin(), target.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrForbidden)

	err = svc.DeleteUser(context.Background(), superAdmin(), target.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrForbidden)
}

func TestToggleBlockBumpsTokenVersion(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo, &fakePremiumGranter{})
	target := seedUser(repo, RoleSalesman)

	blocked, err := svc.ToggleBlock(context.Background(), superAdmin(), target.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusBlocked, blocked.Status)
	assert.Equal(t, 1, blocked.TokenVersion)

	// Unblocking restores access without touching outstanding tokens.
	active, err := svc.ToggleBlock(context.Background(), superAdmin(), target.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusActive, active.Status)
	assert.Equal(t, 1, active.TokenVersion)
}

func TestToggleBlockSelfForbidden(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo, &fakePremiumGranter{})
	actor := superAdmin()

	_, err := svc.ToggleBlock(context.Background(), actor, actor.UserID)
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrForbidden)
}

func TestActivateSubscriptionGrantsPremium(t *testing.T) {
	repo := newFakeRepository()
	granter := &fakePremiumGranter{}
	svc := NewService(repo, granter)
	owner := seedUser(repo, RoleOwner)
	expiry := time.Now().Add(30 * 24 * time.Hour)

	updated, err := svc.ActivateSubscription(
		context.Background(), superAdmin(), owner.ID,
		ActivateSubscriptionRequest{PlanType: "gold", ExpiryDate: expiry})
	require.NoError(t, err)

	assert.Equal(t, SubscriptionActive, updated.SubscriptionStatus)
	require.NotNil(t, updated.PlanType)
	assert.Equal(t, "gold", *updated.PlanType)
	assert.Equal(t, 1, granter.grantCalls)
	assert.Equal(t, owner.ID, granter.grantedOwner)
	assert.Equal(t, expiry, granter.grantedExpiry)
}

func TestActivateSubscriptionPastExpiryRejected(t *testing.T) {
	repo := newFakeRepository()
	granter := &fakePremiumGranter{}
	svc := NewService(repo, granter)
	owner := seedUser(repo, RoleOwner)

	_, err := svc.ActivateSubscription(
		context.Background(), superAdmin(), owner.ID,
		ActivateSubscriptionRequest{
			PlanType:   "gold",
			ExpiryDate: time.Now().Add(-time.Hour),
		})
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrInvalidInput)
	assert.Zero(t, granter.grantCalls)
}

func TestExpireSubscriptionsRevokesPremiumOnce(t *testing.T) {
	repo := newFakeRepository()
	granter := &fakePremiumGranter{}
	svc := NewService(repo, granter)

	past := time.Now().Add(-time.Hour)
	for range 3 {
		u := seedUser(repo, RoleOwner)
		u.SubscriptionStatus = SubscriptionActive
		u.SubscriptionExpiry = &past
	}
	fresh := seedUser(repo, RoleOwner)
	future := time.Now().Add(time.Hour)
	fresh.SubscriptionStatus = SubscriptionActive
	fresh.SubscriptionExpiry = &future

	expired, err := svc.ExpireSubscriptions(context.Background(), time.Now())
	require.NoError(t, err)
	assert.Equal(t, 3, expired)
	assert.Equal(t, 1, granter.expireCalls)
	assert.Equal(t, "subscription", granter.expiredSource)

	stillActive, err := repo.GetByID(context.Background(), fresh.ID)
	require.NoError(t, err)
	assert.Equal(t, SubscriptionActive, stillActive.SubscriptionStatus)
}

func TestExpireSubscriptionsNoLapsesSkipsPremiumSweep(t *testing.T) {
	repo := newFakeRepository()
	granter := &fakePremiumGranter{}
	svc := NewService(repo, granter)

	expired, err := svc.ExpireSubscriptions(context.Background(), time.Now())
	require.NoError(t, err)
	assert.Zero(t, expired)
	assert.Zero(t, granter.expireCalls)
}

func TestListUsersScopesAdminToSalesmen(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo, &fakePremiumGranter{})
	seedUser(repo, RoleSalesman)
	seedUser(repo, RoleSalesman)
	seedUser(repo, RoleOwner)
	seedUser(repo, RoleAdmin)

	users, total, err := svc.ListUsers(
		context.Background(), admin(), ListUsersParams{})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	for _, u := range users {
		assert.Equal(t, RoleSalesman, u.Role)
	}

	_, total, err = svc.ListUsers(
		context.Background(), superAdmin(), ListUsersParams{})
	require.NoError(t, err)
	assert.Equal(t, 4, total)
}

func TestDeleteUserSelfForbidden(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo, &fakePremiumGranter{})
	actor := superAdmin()

	err := svc.DeleteUser(context.Background(), actor, actor.UserID)
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrForbidden)
}
