package domain

import "time"

// Role is the capability tier of a user within its organization.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
)

// Role sets used by the authorization gate. Admin satisfies member-level
// requirements by convention, so member-gated operations list both.
var (
	AdminOnly      = []Role{RoleAdmin}
	MemberOrHigher = []Role{RoleAdmin, RoleMember}
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleMember
}

// In reports whether r is one of the allowed roles. This is the whole
// authorization gate: no I/O, no state.
func (r Role) In(allowed ...Role) bool {
	for _, a := range allowed {
		if r == a {
			return true
		}
	}
	return false
}

// User is a member of exactly one organization. Email uniqueness is global
// (not per-tenant) because login carries no organization context.
type User struct {
	ID             string
	Email          string
	HashedPassword string // argon2id PHC encoded
	FullName       string // optional
	Role           Role
	OrgID          string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
