package userservice

import (
	"errors"
	"strings"
)

var ErrInvalidRole = errors.New("invalid role")

type Role string

const (
	RoleUser   Role = "ROLE_USER"
	RoleAuthor Role = "ROLE_AUTHOR"
	RoleAdmin  Role = "ROLE_ADMIN"
)

func (r Role) rank() int {
	switch r {
	case RoleUser:
		return 1
	case RoleAuthor:
		return 2
	case RoleAdmin:
		return 3
	default:
		return 0
	}
}

func (r Role) Valid() bool {
	return r.rank() > 0
}

// Implies reports whether r grants at least the privileges of required.
// ROLE_ADMIN implies ROLE_AUTHOR, which implies ROLE_USER.
func (r Role) Implies(required Role) bool {
	return r.Valid() && r.rank() >= required.rank()
}

// ParseRole accepts "ROLE_ADMIN" as well as the short form "admin".
func ParseRole(s string) (Role, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if !strings.HasPrefix(s, "ROLE_") {
		s = "ROLE_" + s
	}

	r := Role(s)
	if !r.Valid() {
		return "", ErrInvalidRole
	}

	return r, nil
}

func (u *User) IsAnonymous() bool {
	return u == AnonymousUser
}

// HasRole reports whether the user's role implies r. The anonymous user has no role.
func (u *User) HasRole(r Role) bool {
	return !u.IsAnonymous() && u.Role.Implies(r)
}

func (u *User) IsAdmin() bool {
	return u.HasRole(RoleAdmin)
}
