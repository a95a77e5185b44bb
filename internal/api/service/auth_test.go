package service_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskflowhq/taskflow/internal/api/domain"
	"github.com/taskflowhq/taskflow/internal/api/service"
	"github.com/taskflowhq/taskflow/internal/api/store"
	"github.com/taskflowhq/taskflow/internal/api/store/drivers/sqlite"
	"github.com/taskflowhq/taskflow/pkg/jwtx"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func newTestStore(t *testing.T) store.Store {
	t.Helper()

	s, err := sqlite.NewStore(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	require.NoError(t, s.ApplyMigrations())
	return s
}

func newAuthService(t *testing.T, st store.Store) *service.AuthService {
	t.Helper()

	signer, err := jwtx.NewSignerHS256([]byte(testSecret))
	require.NoError(t, err)
	return &service.AuthService{
		Store:    st,
		Signer:   signer,
		Issuer:   "taskflow-test",
		TokenTTL: 30 * time.Minute,
	}
}

func register(t *testing.T, auth *service.AuthService, slug, email string) (domain.User, service.Token) {
	t.Helper()

	user, token, err := auth.Register(context.Background(), service.RegisterParams{
		OrganizationName: "Org " + slug,
		OrganizationSlug: slug,
		Email:            email,
		Password:         "correct horse battery staple",
		FullName:         "Test Admin",
	})
	require.NoError(t, err)
	return user, token
}

func TestRegister_CreatesOrgAndAdmin(t *testing.T) {
	st := newTestStore(t)
	auth := newAuthService(t, st)
	ctx := context.Background()

	user, token := register(t, auth, "acme", "admin@acme.test")

	assert.Equal(t, domain.RoleAdmin, user.Role)
	assert.NotEmpty(t, token.AccessToken)
	assert.Equal(t, int((30 * time.Minute).Seconds()), token.ExpiresIn)

	org, err := st.Organizations().GetBySlug(ctx, "acme")
	require.NoError(t, err)
	assert.Equal(t, org.ID, user.OrgID)

	// The password hash never equals the plaintext.
	stored, err := st.Users().GetByEmail(ctx, "admin@acme.test")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse battery staple", stored.HashedPassword)
}

func TestRegister_Conflicts(t *testing.T) {
	st := newTestStore(t)
	auth := newAuthService(t, st)
	ctx := context.Background()

	register(t, auth, "acme", "admin@acme.test")

	_, _, err := auth.Register(ctx, service.RegisterParams{
		OrganizationName: "Other",
		OrganizationSlug: "acme",
		Email:            "other@example.test",
		Password:         "a-long-password",
	})
	assert.ErrorIs(t, err, service.ErrSlugTaken)

	_, _, err = auth.Register(ctx, service.RegisterParams{
		OrganizationName: "Other",
		OrganizationSlug: "other",
		Email:            "admin@acme.test",
		Password:         "a-long-password",
	})
	assert.ErrorIs(t, err, service.ErrEmailTaken)

	// The failed registration left no partial tenant behind.
	_, err = st.Organizations().GetBySlug(ctx, "other")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestLogin(t *testing.T) {
	st := newTestStore(t)
	auth := newAuthService(t, st)
	ctx := context.Background()

	register(t, auth, "acme", "admin@acme.test")

	user, token, err := auth.Login(ctx, "admin@acme.test", "correct horse battery staple")
	require.NoError(t, err)
	assert.Equal(t, "admin@acme.test", user.Email)
	assert.NotEmpty(t, token.AccessToken)

	// Wrong password and unknown email are indistinguishable.
	_, _, err = auth.Login(ctx, "admin@acme.test", "wrong password")
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)

	_, _, err = auth.Login(ctx, "nobody@acme.test", "correct horse battery staple")
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)
}

func TestIdentityResolve(t *testing.T) {
	st := newTestStore(t)
	auth := newAuthService(t, st)
	ctx := context.Background()

	user, token := register(t, auth, "acme", "admin@acme.test")

	verifier, err := jwtx.NewVerifierHS256([]byte(testSecret), "taskflow-test")
	require.NoError(t, err)
	identity := &service.IdentityService{Store: st, Verifier: verifier}

	id, err := identity.Resolve(ctx, token.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, id.UserID)
	assert.Equal(t, user.OrgID, id.OrgID)
	assert.Equal(t, domain.RoleAdmin, id.Role)

	_, err = identity.Resolve(ctx, "not-a-token")
	assert.ErrorIs(t, err, service.ErrUnauthenticated)

	// A valid token whose user has been deleted stops resolving.
	_, err = st.Users().Delete(ctx, user.ID, user.OrgID)
	require.NoError(t, err)
	_, err = identity.Resolve(ctx, token.AccessToken)
	assert.ErrorIs(t, err, service.ErrUnauthenticated)
}

func TestIdentityResolve_WrongSecret(t *testing.T) {
	st := newTestStore(t)
	auth := newAuthService(t, st)

	_, token := register(t, auth, "acme", "admin@acme.test")

	verifier, err := jwtx.NewVerifierHS256([]byte("another-secret-another-secret-xx"), "taskflow-test")
	require.NoError(t, err)
	identity := &service.IdentityService{Store: st, Verifier: verifier}

	_, err = identity.Resolve(context.Background(), token.AccessToken)
	assert.ErrorIs(t, err, service.ErrUnauthenticated)
}
