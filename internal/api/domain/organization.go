package domain

import "time"

// Organization is the root of tenancy. Every User and Task belongs to
// exactly one Organization for its entire lifetime.
type Organization struct {
	ID        string
	Name      string
	Slug      string // unique across all tenants, used for registration
	CreatedAt time.Time
	UpdatedAt time.Time
}

// OrganizationPatch is a partial update. Absent fields are untouched.
type OrganizationPatch struct {
	Name Field[string]
	Slug Field[string]
}

// IsEmpty reports whether the patch would change anything.
func (p OrganizationPatch) IsEmpty() bool {
	return !p.Name.Set && !p.Slug.Set
}
