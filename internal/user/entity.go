// AngelaMos | 2026
// entity.go

package user

import (
	"time"

	"github.com/nearmeb2b/backoffice/internal/core"
)

type User struct {
	ID                 string     `db:"id"`
	Email              string     `db:"email"`
	PasswordHash       string     `db:"password_hash"`
	Name               string     `db:"name"`
	Mobile             string     `db:"mobile"`
	Role               string     `db:"role"`
	Status             string     `db:"status"`
	City               *string    `db:"city"`
	CategoryPreference *string    `db:"category_preference"`
	SubscriptionStatus string     `db:"subscription_status"`
	PlanType           *string    `db:"plan_type"`
	SubscriptionStart  *time.Time `db:"subscription_start"`
	SubscriptionExpiry *time.Time `db:"subscription_expiry"`
	TokenVersion       int        `db:"token_version"`
	CreatedAt          time.Time  `db:"created_at"`
	UpdatedAt          time.Time  `db:"updated_at"`
	DeletedAt          *time.Time `db:"deleted_at"`
}

const (
	RoleSuperAdmin = core.RoleSuperAdmin
	RoleAdmin      = core.RoleAdmin
	RoleSalesman   = core.RoleSalesman
	RoleOwner      = core.RoleOwner
	RoleUser       = core.RoleUser
)

const (
	StatusActive  = "active"
	StatusBlocked = "blocked"
)

const (
	SubscriptionNone    = "none"
	SubscriptionActive  = "active"
	SubscriptionExpired = "expired"
)

func (u *User) IsDeleted() bool {
	return u.DeletedAt != nil
}

func (u *User) IsBlocked() bool {
	return u.Status == StatusBlocked
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin || u.Role == RoleSuperAdmin
}

func (u *User) HasActiveSubscription() bool {
	return u.SubscriptionStatus == SubscriptionActive
}
