package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskflowhq/taskflow/internal/api/domain"
	"github.com/taskflowhq/taskflow/internal/api/store"
	"github.com/taskflowhq/taskflow/pkg/idx"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "test.db")
	s, err := NewStore(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.ApplyMigrations())
	return s
}

func seedOrg(t *testing.T, s *Store, name, slug string) domain.Organization {
	t.Helper()

	org, err := s.Organizations().Create(context.Background(), domain.Organization{
		ID:   idx.New().String(),
		Name: name,
		Slug: slug,
	})
	require.NoError(t, err)
	return org
}

func seedUser(t *testing.T, s *Store, orgID, email string, role domain.Role) domain.User {
	t.Helper()

	u, err := s.Users().Create(context.Background(), domain.User{
		ID:             idx.New().String(),
		Email:          email,
		HashedPassword: "$argon2id$fake",
		FullName:       "Test User",
		Role:           role,
		OrgID:          orgID,
	})
	require.NoError(t, err)
	return u
}

func seedTask(t *testing.T, s *Store, orgID, title string, assignee *string) domain.Task {
	t.Helper()

	task, err := s.Tasks().Create(context.Background(), domain.Task{
		ID:         idx.New().String(),
		Title:      title,
		Status:     domain.StatusTodo,
		Priority:   domain.PriorityMedium,
		OrgID:      orgID,
		AssigneeID: assignee,
	})
	require.NoError(t, err)
	return task
}

func TestOrganizations_CreateAndGet(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	org := seedOrg(t, s, "Acme Corp", "acme")

	byID, err := s.Organizations().GetByID(ctx, org.ID)
	require.NoError(t, err)
	assert.Equal(t, "Acme Corp", byID.Name)
	assert.False(t, byID.CreatedAt.IsZero())

	bySlug, err := s.Organizations().GetBySlug(ctx, "acme")
	require.NoError(t, err)
	assert.Equal(t, org.ID, bySlug.ID)
}

func TestOrganizations_DuplicateSlug(t *testing.T) {
	s := newTestStore(t)

	seedOrg(t, s, "Acme Corp", "acme")

	_, err := s.Organizations().Create(context.Background(), domain.Organization{
		ID:   idx.New().String(),
		Name: "Other",
		Slug: "acme",
	})
	assert.ErrorIs(t, err, store.ErrAlreadyExists)
}

func TestOrganizations_Update(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	org := seedOrg(t, s, "Acme Corp", "acme")

	updated, err := s.Organizations().Update(ctx, org.ID, domain.OrganizationPatch{
		Name: domain.FieldOf("Acme Inc"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Acme Inc", updated.Name)
	assert.Equal(t, "acme", updated.Slug)
	assert.True(t, updated.UpdatedAt.After(org.UpdatedAt) || updated.UpdatedAt.Equal(org.UpdatedAt))

	_, err = s.Organizations().Update(ctx, idx.New().String(), domain.OrganizationPatch{
		Name: domain.FieldOf("Ghost"),
	})
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestOrganizations_UpdateEmptyPatchIsRead(t *testing.T) {
	s := newTestStore(t)

	org := seedOrg(t, s, "Acme Corp", "acme")

	got, err := s.Organizations().Update(context.Background(), org.ID, domain.OrganizationPatch{})
	require.NoError(t, err)
	assert.Equal(t, org.UpdatedAt, got.UpdatedAt)
}

func TestUsers_TenantScoping(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	orgA := seedOrg(t, s, "Org A", "org-a")
	orgB := seedOrg(t, s, "Org B", "org-b")
	user := seedUser(t, s, orgA.ID, "alice@org-a.test", domain.RoleAdmin)

	// Lookup through the owning org succeeds.
	got, err := s.Users().GetByID(ctx, user.ID, orgA.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice@org-a.test", got.Email)

	// The same ID through another org is invisible.
	_, err = s.Users().GetByID(ctx, user.ID, orgB.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)

	ok, err := s.Users().Delete(ctx, user.ID, orgB.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestUsers_DuplicateEmail(t *testing.T) {
	s := newTestStore(t)

	orgA := seedOrg(t, s, "Org A", "org-a")
	orgB := seedOrg(t, s, "Org B", "org-b")
	seedUser(t, s, orgA.ID, "alice@example.test", domain.RoleAdmin)

	// Email uniqueness is global, not per organization.
	_, err := s.Users().Create(context.Background(), domain.User{
		ID:             idx.New().String(),
		Email:          "alice@example.test",
		HashedPassword: "$argon2id$fake",
		Role:           domain.RoleMember,
		OrgID:          orgB.ID,
	})
	assert.ErrorIs(t, err, store.ErrAlreadyExists)
}

func TestUsers_ListAndCount(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	orgA := seedOrg(t, s, "Org A", "org-a")
	orgB := seedOrg(t, s, "Org B", "org-b")
	for i := 0; i < 3; i++ {
		seedUser(t, s, orgA.ID, idx.New().String()+"@org-a.test", domain.RoleMember)
	}
	seedUser(t, s, orgB.ID, "bob@org-b.test", domain.RoleAdmin)

	users, err := s.Users().ListByOrg(ctx, orgA.ID, 0, 10)
	require.NoError(t, err)
	assert.Len(t, users, 3)

	page, err := s.Users().ListByOrg(ctx, orgA.ID, 2, 10)
	require.NoError(t, err)
	assert.Len(t, page, 1)

	count, err := s.Users().CountByOrg(ctx, orgA.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 3, count)
}

func TestTasks_TenantScoping(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	orgA := seedOrg(t, s, "Org A", "org-a")
	orgB := seedOrg(t, s, "Org B", "org-b")
	task := seedTask(t, s, orgA.ID, "Ship it", nil)

	_, err := s.Tasks().GetByID(ctx, task.ID, orgB.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)

	_, err = s.Tasks().Update(ctx, task.ID, orgB.ID, domain.TaskPatch{
		Title: domain.FieldOf("Hijacked"),
	})
	assert.ErrorIs(t, err, store.ErrNotFound)

	ok, err := s.Tasks().Delete(ctx, task.ID, orgB.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	// The task is untouched in its own org.
	got, err := s.Tasks().GetByID(ctx, task.ID, orgA.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ship it", got.Title)
}

func TestTasks_UpdatePatch(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	org := seedOrg(t, s, "Org A", "org-a")
	user := seedUser(t, s, org.ID, "alice@org-a.test", domain.RoleMember)
	task := seedTask(t, s, org.ID, "Ship it", &user.ID)

	updated, err := s.Tasks().Update(ctx, task.ID, org.ID, domain.TaskPatch{
		Status:   domain.FieldOf(domain.StatusDone),
		Priority: domain.FieldOf(domain.PriorityHigh),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusDone, updated.Status)
	assert.Equal(t, domain.PriorityHigh, updated.Priority)
	require.NotNil(t, updated.AssigneeID)
	assert.Equal(t, user.ID, *updated.AssigneeID)

	// An explicit null clears the assignee.
	cleared, err := s.Tasks().Update(ctx, task.ID, org.ID, domain.TaskPatch{
		AssigneeID: domain.NullField[string](),
	})
	require.NoError(t, err)
	assert.Nil(t, cleared.AssigneeID)
}

func TestTasks_DeleteUserCascades(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	org := seedOrg(t, s, "Org A", "org-a")
	user := seedUser(t, s, org.ID, "alice@org-a.test", domain.RoleMember)
	assigned := seedTask(t, s, org.ID, "Assigned", &user.ID)
	unassigned := seedTask(t, s, org.ID, "Unassigned", nil)

	ok, err := s.Users().Delete(ctx, user.ID, org.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = s.Tasks().GetByID(ctx, assigned.ID, org.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)

	_, err = s.Tasks().GetByID(ctx, unassigned.ID, org.ID)
	assert.NoError(t, err)
}

func TestWithTx_RollbackOnError(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	boom := errors.New("boom")
	err := s.WithTx(ctx, func(tx store.Tx) error {
		_, err := tx.Organizations().Create(ctx, domain.Organization{
			ID:   idx.New().String(),
			Name: "Doomed",
			Slug: "doomed",
		})
		require.NoError(t, err)
		return boom
	})
	assert.ErrorIs(t, err, boom)

	_, err = s.Organizations().GetBySlug(ctx, "doomed")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestWithTx_Commit(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	err := s.WithTx(ctx, func(tx store.Tx) error {
		org, err := tx.Organizations().Create(ctx, domain.Organization{
			ID:   idx.New().String(),
			Name: "Acme",
			Slug: "acme",
		})
		if err != nil {
			return err
		}
		_, err = tx.Users().Create(ctx, domain.User{
			ID:             idx.New().String(),
			Email:          "admin@acme.test",
			HashedPassword: "$argon2id$fake",
			Role:           domain.RoleAdmin,
			OrgID:          org.ID,
		})
		return err
	})
	require.NoError(t, err)

	org, err := s.Organizations().GetBySlug(ctx, "acme")
	require.NoError(t, err)

	count, err := s.Users().CountByOrg(ctx, org.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestTasks_DeleteUserCascadesOnPooledConnections(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	org := seedOrg(t, s, "Org A", "org-a")
	user := seedUser(t, s, org.ID, "alice@org-a.test", domain.RoleMember)
	assigned := seedTask(t, s, org.ID, "Assigned", &user.ID)

	// Pin the pool's first connection inside an open transaction so the
	// delete below is served by a second connection, which must enforce the
	// foreign key cascade just the same.
	tx, err := s.Tx(ctx)
	require.NoError(t, err)
	defer func() { _ = tx.Rollback() }()

	ok, err := s.Users().Delete(ctx, user.ID, org.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = s.Tasks().GetByID(ctx, assigned.ID, org.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)

	count, err := s.Tasks().CountByOrg(ctx, org.ID)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestNewStoreConnectionPragmas(t *testing.T) {
	dsn := DSN(filepath.Join(t.TempDir(), "pragmas.db"))
	s, err := NewStore(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	require.NoError(t, s.ApplyMigrations())

	var fk int64
	require.NoError(t, s.db.QueryRow(`PRAGMA foreign_keys`).Scan(&fk))
	assert.EqualValues(t, 1, fk)

	var mode string
	require.NoError(t, s.db.QueryRow(`PRAGMA journal_mode`).Scan(&mode))
	assert.Equal(t, "wal", mode)
}
