package domain

import (
	"strings"

	"github.com/google/uuid"
)

// Role is an enumerated authorization role held by a user.
type Role string

// Recognized roles.
const (
	RoleAdmin    Role = "ADMIN"
	RoleManager  Role = "MANAGER"
	RoleEmployee Role = "EMPLOYEE"
)

// ParseRole converts a string into a Role, case-insensitively.
// Returns ErrInvalidRole for unrecognized values.
func ParseRole(s string) (Role, error) {
	switch Role(strings.ToUpper(s)) {
	case RoleAdmin:
		return RoleAdmin, nil
	case RoleManager:
		return RoleManager, nil
	case RoleEmployee:
		return RoleEmployee, nil
	default:
		return "", ErrInvalidRole
	}
}

// Validate checks that the role is one of the recognized values.
func (r Role) Validate() error {
	switch r {
	case RoleAdmin, RoleManager, RoleEmployee:
		return nil
	default:
		return ErrInvalidRole
	}
}

// Principal is the authenticated actor performing an operation.
// It is resolved once by the auth middleware and passed explicitly into
// every service operation; services never reach into ambient state for it.
type Principal struct {
	ID       uuid.UUID
	Username string
	Roles    []Role
}

// HasRole reports whether the principal holds the given role.
func (p Principal) HasRole(role Role) bool {
	for _, r := range p.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// HasAnyRole reports whether the principal holds at least one of the
// given roles.
func (p Principal) HasAnyRole(roles ...Role) bool {
	for _, role := range roles {
		if p.HasRole(role) {
			return true
		}
	}
	return false
}

// IsAdminOrManager reports whether the principal holds the ADMIN or
// MANAGER role. Several task operations grant these roles blanket access.
func (p Principal) IsAdminOrManager() bool {
	return p.HasAnyRole(RoleAdmin, RoleManager)
}
