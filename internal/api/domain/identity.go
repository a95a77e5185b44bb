package domain

// Identity is the resolved caller: claims from a verified token
// re-validated against storage. Every tenant-scoped operation downstream is
// parameterized by OrgID from here, never by client input.
type Identity struct {
	UserID string
	OrgID  string
	Email  string
	Role   Role
}
