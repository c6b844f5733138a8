// internal/domain/models/role.go
package models

// Role is the coarse-grained authorization tag for a user.
// Exactly one role is active per user at a time: the RoleAssignment
// with the greatest GrantedAt. Users with no assignment are clients.
type Role string

const (
	RoleClient    Role = "client"
	RoleLawyer    Role = "lawyer"
	RoleAdmin     Role = "admin"
	RoleModerator Role = "moderator"
)

// AllRoles lists every valid role, in display order.
var AllRoles = []Role{RoleClient, RoleLawyer, RoleAdmin, RoleModerator}

// ParseRole maps a stored role string to a Role. Unknown or empty
// values map to RoleClient, the default role for users with no
// assignment.
func ParseRole(s string) Role {
	switch Role(s) {
	case RoleLawyer:
		return RoleLawyer
	case RoleAdmin:
		return RoleAdmin
	case RoleModerator:
		return RoleModerator
	default:
		return RoleClient
	}
}

// IsValid reports whether r is one of the four known roles.
func (r Role) IsValid() bool {
	switch r {
	case RoleClient, RoleLawyer, RoleAdmin, RoleModerator:
		return true
	}
	return false
}

// Label returns the English display label for the role.
func (r Role) Label() string {
	switch r {
	case RoleLawyer:
		return "Lawyer"
	case RoleAdmin:
		return "Administrator"
	case RoleModerator:
		return "Moderator"
	default:
		return "Client"
	}
}

// LabelAr returns the Arabic display label for the role.
func (r Role) LabelAr() string {
	switch r {
	case RoleLawyer:
		return "محامي"
	case RoleAdmin:
		return "مدير"
	case RoleModerator:
		return "مشرف"
	default:
		return "عميل"
	}
}

// BadgeClass returns the CSS badge class used when rendering the role.
func (r Role) BadgeClass() string {
	switch r {
	case RoleLawyer:
		return "badge-lawyer"
	case RoleAdmin:
		return "badge-admin"
	case RoleModerator:
		return "badge-moderator"
	default:
		return "badge-client"
	}
}

func (r Role) String() string { return string(r) }
