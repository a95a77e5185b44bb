package store

import (
	"context"
	"errors"

	"github.com/taskflowhq/taskflow/internal/api/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite today,
// postgres if we ever need it) implement this. Every repository method that
// touches tenant-owned rows takes the caller's organization id and filters
// on it inside the same statement, so a cross-tenant id is never observable,
// not even transiently.
type Store interface {
	Organizations() Organizations
	Users() Users
	Tasks() Tasks

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction. If fn returns an error the
	// transaction is rolled back, otherwise it is committed. This is the
	// recommended way to run multi-step operations that must be atomic
	// (e.g. registration creating an organization plus its first admin).
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds
// Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Organizations interface {
	// GetByID returns an organization by id.
	GetByID(ctx context.Context, id string) (domain.Organization, error)

	// GetBySlug looks an organization up by its public slug. This is the
	// single lawful pre-identity lookup, used during registration and by
	// slug-uniqueness checks.
	GetBySlug(ctx context.Context, slug string) (domain.Organization, error)

	// Create inserts a new organization (id is provided by the app via
	// ULID) and returns the stored form including generated timestamps.
	// Returns ErrAlreadyExists when the slug is taken; the UNIQUE
	// constraint, not the caller's pre-check, is the final authority.
	Create(ctx context.Context, o domain.Organization) (domain.Organization, error)

	// Update applies the supplied fields only and bumps updated_at. An
	// empty patch is a plain read. Returns ErrNotFound on id miss and
	// ErrAlreadyExists when a slug change collides.
	Update(ctx context.Context, id string, p domain.OrganizationPatch) (domain.Organization, error)
}

type Users interface {
	// GetByID returns a user by (id, organization). A user that exists
	// under a different organization is reported as ErrNotFound.
	GetByID(ctx context.Context, id, orgID string) (domain.User, error)

	// GetByEmail is the global lookup used during login and registration
	// duplicate checks; it runs before any identity is resolved.
	GetByEmail(ctx context.Context, email string) (domain.User, error)

	// ListByOrg returns a pagination window of the organization's members
	// in creation order.
	ListByOrg(ctx context.Context, orgID string, offset, limit int) ([]domain.User, error)

	// CountByOrg counts the organization's members.
	CountByOrg(ctx context.Context, orgID string) (int64, error)

	// Create inserts a new user. Returns ErrAlreadyExists when the email
	// is taken (globally).
	Create(ctx context.Context, u domain.User) (domain.User, error)

	// Delete removes a user of the given organization; assigned tasks
	// cascade per schema. Reports whether a row was actually removed.
	Delete(ctx context.Context, id, orgID string) (bool, error)
}

type Tasks interface {
	// GetByID returns a task by (id, organization); cross-tenant ids are
	// indistinguishable from missing ones.
	GetByID(ctx context.Context, id, orgID string) (domain.Task, error)

	// ListByOrg returns a pagination window of the organization's tasks in
	// creation order. The window is pure: concurrent writes may shift
	// results between pages.
	ListByOrg(ctx context.Context, orgID string, offset, limit int) ([]domain.Task, error)

	// CountByOrg counts the organization's tasks.
	CountByOrg(ctx context.Context, orgID string) (int64, error)

	// Create inserts a new task and returns the stored form.
	Create(ctx context.Context, t domain.Task) (domain.Task, error)

	// Update applies the supplied fields only; absent fields are left
	// untouched and explicit nulls clear. Returns ErrNotFound on id/org
	// mismatch.
	Update(ctx context.Context, id, orgID string, p domain.TaskPatch) (domain.Task, error)

	// Delete removes a task of the given organization and reports whether
	// a row was actually removed. Never removes cross-tenant rows.
	Delete(ctx context.Context, id, orgID string) (bool, error)
}
