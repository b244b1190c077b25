// AngelaMos | 2026
// service.go

package user

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nearmeb2b/backoffice/internal/auth"
	"github.com/nearmeb2b/backoffice/internal/core"
)

// PremiumGranter is the slice of the listing service that subscription
// activation needs: every business owned by the subscriber gets a
// subscription-sourced premium grant.
type PremiumGranter interface {
	GrantSubscriptionPremium(ctx context.Context, ownerID string, expiry time.Time) (int, error)
	ExpirePremium(ctx context.Context, source string, now time.Time) (int, error)
}

type Service struct {
	repo    Repository
	premium PremiumGranter
}

func NewService(repo Repository, premium PremiumGranter) *Service {
	return &Service{repo: repo, premium: premium}
}

func (s *Service) GetByID(
	ctx context.Context,
	id string,
) (*auth.UserInfo, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return toUserInfo(user), nil
}

func (s *Service) GetByEmail(
	ctx context.Context,
	email string,
) (*auth.UserInfo, error) {
	user, err := s.repo.GetByEmail(ctx, strings.ToLower(email))
	if err != nil {
		return nil, err
	}

	return toUserInfo(user), nil
}

func (s *Service) IncrementTokenVersion(
	ctx context.Context,
	userID string,
) error {
	return s.repo.IncrementTokenVersion(ctx, userID)
}

func (s *Service) UpdatePassword(
	ctx context.Context,
	userID, passwordHash string,
) error {
	return s.repo.UpdatePassword(ctx, userID, passwordHash)
}

// CreateUser provisions an account. There is no self-signup: a
// super_admin creates any role below itself, an admin creates salesmen
// only.
func (s *Service) CreateUser(
	ctx context.Context,
	actor core.Actor,
	req CreateUserRequest,
) (*User, error) {
	if err := canManageRole(actor, req.Role); err != nil {
		return nil, err
	}

	passwordHash, err := core.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &User{
		ID:                 uuid.New().String(),
		Email:              strings.ToLower(req.Email),
		PasswordHash:       passwordHash,
		Name:               req.Name,
		Mobile:             req.Mobile,
		Role:               req.Role,
		Status:             StatusActive,
		City:               req.City,
		CategoryPreference: req.CategoryPreference,
		SubscriptionStatus: SubscriptionNone,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *Service) GetUser(
	ctx context.Context,
	actor core.Actor,
	id string,
) (*User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if actor.UserID != id {
		if err := canManageRole(actor, user.Role); err != nil {
			return nil, err
		}
	}

	return user, nil
}

func (s *Service) UpdateUser(
	ctx context.Context,
	actor core.Actor,
	id string,
	req UpdateUserRequest,
) (*User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if actor.UserID != id {
		if err := canManageRole(actor, user.Role); err != nil {
			return nil, err
		}
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Mobile != nil {
		user.Mobile = *req.Mobile
	}
	if req.City != nil {
		user.City = req.City
	}
	if req.CategoryPreference != nil {
		user.CategoryPreference = req.CategoryPreference
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// ToggleBlock flips active/blocked. Blocking kills new intents only;
// effects the user already applied stand.
func (s *Service) ToggleBlock(
	ctx context.Context,
	actor core.Actor,
	id string,
) (*User, error) {
	if actor.UserID == id {
		return nil, core.ForbiddenError("cannot block your own account")
	}

	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := canManageRole(actor, user.Role); err != nil {
		return nil, err
	}

	next := StatusBlocked
	if user.IsBlocked() {
		next = StatusActive
	}

	return s.repo.SetStatus(ctx, id, next)
}

// ActivateSubscription marks the subscription active and grants
// subscription-sourced premium to every business the user owns.
func (s *Service) ActivateSubscription(
	ctx context.Context,
	actor core.Actor,
	id string,
	req ActivateSubscriptionRequest,
) (*User, error) {
	if !actor.IsAdmin() {
		return nil, core.ForbiddenError("only admins can manage subscriptions")
	}

	if !req.ExpiryDate.After(time.Now()) {
		return nil, core.ValidationError("expiryDate must be in the future")
	}

	user, err := s.repo.ActivateSubscription(
		ctx, id, req.PlanType, time.Now(), req.ExpiryDate)
	if err != nil {
		return nil, err
	}

	if _, err := s.premium.GrantSubscriptionPremium(
		ctx, id, req.ExpiryDate); err != nil {
		return nil, fmt.Errorf("grant subscription premium: %w", err)
	}

	return user, nil
}

// ExpireSubscriptions is the sweep entrypoint: lapsed subscriptions
// flip to expired and their owners' subscription-sourced premiums are
// revoked.
func (s *Service) ExpireSubscriptions(
	ctx context.Context,
	now time.Time,
) (int, error) {
	ids, err := s.repo.ExpireSubscriptions(ctx, now)
	if err != nil {
		return 0, err
	}

	// Subscription premium carries the subscription's expiry date, so a
	// single source-scoped sweep covers every lapsed owner.
	if len(ids) > 0 {
		if _, err := s.premium.ExpirePremium(ctx, "subscription", now); err != nil {
			return len(ids), fmt.Errorf("revoke subscription premium: %w", err)
		}
	}

	return len(ids), nil
}

func (s *Service) DeleteUser(
	ctx context.Context,
	actor core.Actor,
	id string,
) error {
	if actor.UserID == id {
		return core.ForbiddenError("cannot delete your own account")
	}

	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := canManageRole(actor, user.Role); err != nil {
		return err
	}

	return s.repo.SoftDelete(ctx, id)
}

func (s *Service) ListUsers(
	ctx context.Context,
	actor core.Actor,
	params ListUsersParams,
) ([]User, int, error) {
	if !actor.IsAdmin() {
		return nil, 0, core.ForbiddenError("only admins can list users")
	}

	// Admins below super_admin see salesmen only.
	if !actor.IsSuperAdmin() {
		params.Role = RoleSalesman
	}

	return s.repo.List(ctx, params)
}

func (s *Service) GetMe(ctx context.Context, userID string) (*User, error) {
	if userID == "" {
		return nil, fmt.Errorf("get me: %w", core.ErrUnauthorized)
	}

	return s.repo.GetByID(ctx, userID)
}

func (s *Service) EmailExists(
	ctx context.Context,
	email string,
) (bool, error) {
	return s.repo.ExistsByEmail(ctx, strings.ToLower(email))
}

// canManageRole encodes the management hierarchy: super_admin manages
// every role except super_admin itself, admin manages salesmen only.
func canManageRole(actor core.Actor, targetRole string) error {
	if actor.IsSuperAdmin() {
		if targetRole == RoleSuperAdmin {
			return core.ForbiddenError("super_admin accounts cannot be managed")
		}
		return nil
	}

	if actor.Role == core.RoleAdmin && targetRole == RoleSalesman {
		return nil
	}

	return core.ForbiddenError("insufficient permissions for this user")
}

func toUserInfo(u *User) *auth.UserInfo {
	return &auth.UserInfo{
		ID:           u.ID,
		Email:        u.Email,
		Name:         u.Name,
		PasswordHash: u.PasswordHash,
		Role:         u.Role,
		Status:       u.Status,
		TokenVersion: u.TokenVersion,
	}
}

var _ auth.UserProvider = (*Service)(nil)
