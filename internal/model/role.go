package model

import "strings"

// Role is the closed set of account roles.
type Role string

const (
	RoleAdmin Role = "admin" // manages users, stores and ratings
	RoleUser  Role = "user"  // browses and rates stores
	RoleStore Role = "store" // owns a store and reads its feedback
)

// Roles returns every role in a stable order.
func Roles() []Role {
	return []Role{RoleAdmin, RoleUser, RoleStore}
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleUser, RoleStore:
		return true
	}
	return false
}

// ParseRole parses a role name, ignoring case and surrounding space.
func ParseRole(s string) (Role, bool) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	return r, r.Valid()
}

// In reports whether r appears in the allow-list.
func (r Role) In(allowed ...Role) bool {
	for _, a := range allowed {
		if r == a {
			return true
		}
	}
	return false
}
