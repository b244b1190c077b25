// AngelaMos | 2026
// actor.go

package core

const (
	RoleSuperAdmin = "super_admin"
	RoleAdmin      = "admin"
	RoleSalesman   = "salesman"
	RoleOwner      = "owner"
	RoleUser       = "user"
)

func ValidRole(role string) bool {
	switch role {
	case RoleSuperAdmin, RoleAdmin, RoleSalesman, RoleOwner, RoleUser:
		return true
	}
	return false
}

// Actor identifies the caller of an engine operation. Identity is
// resolved by the auth layer before any intent reaches a service; the
// services trust the role they are given and only perform state and
// ownership validation.
type Actor struct {
	UserID string
	Role   string
}

func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin || a.Role == RoleSuperAdmin
}

func (a Actor) IsSuperAdmin() bool {
	return a.Role == RoleSuperAdmin
}

func (a Actor) IsSalesman() bool {
	return a.Role == RoleSalesman
}
