package api_test

import (
	"context"
	"log/slog"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/taskflowhq/taskflow/internal/api/domain"
	httpapi "github.com/taskflowhq/taskflow/internal/api/http"
	"github.com/taskflowhq/taskflow/internal/api/notify"
	"github.com/taskflowhq/taskflow/internal/api/service"
	"github.com/taskflowhq/taskflow/internal/api/store"
	"github.com/taskflowhq/taskflow/internal/api/store/drivers/sqlite"
	"github.com/taskflowhq/taskflow/pkg/cryptox"
	"github.com/taskflowhq/taskflow/pkg/httpx"
	"github.com/taskflowhq/taskflow/pkg/idx"
	"github.com/taskflowhq/taskflow/pkg/jwtx"
	"github.com/taskflowhq/taskflow/pkg/taskapi"
)

/*
 * Common helpers for API end-to-end tests. Each test gets a fully wired
 * service (sqlite store, services, router) behind an httptest server, and
 * talks to it through the taskapi SDK exactly like an external client.
 * The embedded store handle exists only to provision member-role users,
 * which have no public creation endpoint.
 */

const (
	testJWTSecret = "e2e-secret-e2e-secret-e2e-secret!"
	testIssuer    = "taskflow-e2e"

	adminPassword  = "correct horse battery staple"
	memberPassword = "member horse battery staple"
)

// testEnv wraps the SDK client so tests read naturally while keeping access
// to the backing store for out-of-band provisioning.
type testEnv struct {
	*taskapi.Client
	store store.Store
}

// TestMain lifts the rate limits: e2e tests make many rapid requests from
// one address and would otherwise trip the strict credential limits.
func TestMain(m *testing.M) {
	generous := httpx.RateLimitConfig{
		RequestsPerWindow: 10000,
		Window:            time.Minute,
		Burst:             10000,
	}
	httpx.StrictLimit = generous
	httpx.ModerateLimit = generous
	httpx.LenientLimit = generous

	os.Exit(m.Run())
}

// setupServer wires a complete service instance and returns an SDK client
// pointed at it.
func setupServer(t *testing.T) *testEnv {
	t.Helper()

	st, err := sqlite.NewStore(filepath.Join(t.TempDir(), "e2e.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	signer, err := jwtx.NewSignerHS256([]byte(testJWTSecret))
	require.NoError(t, err)
	verifier, err := jwtx.NewVerifierHS256([]byte(testJWTSecret), testIssuer)
	require.NoError(t, err)

	logger := slog.New(slog.DiscardHandler)

	router := httpapi.NewRouter("e2e", st, logger)
	router.IdentityService = &service.IdentityService{Store: st, Verifier: verifier}
	router.AuthService = &service.AuthService{
		Store:    st,
		Signer:   signer,
		Issuer:   testIssuer,
		TokenTTL: 30 * time.Minute,
	}
	router.OrganizationService = &service.OrganizationService{Store: st}
	router.UserService = &service.UserService{Store: st}
	router.TaskService = &service.TaskService{
		Store:    st,
		Notifier: notify.NewLogNotifier(logger),
		Logger:   logger,
	}
	router.ApplyRoutes()

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return &testEnv{Client: taskapi.NewClient(server.URL), store: st}
}

// registerTenant provisions an organization and returns its admin session.
func registerTenant(t *testing.T, env *testEnv, slug, email string) *taskapi.Session {
	t.Helper()

	session, err := env.Register(context.Background(), taskapi.RegisterRequest{
		OrganizationName: "Org " + slug,
		OrganizationSlug: slug,
		Email:            email,
		Password:         adminPassword,
		FullName:         "E2E Admin",
	})
	require.NoError(t, err)
	return session
}

// registerTenantWithMember provisions an organization plus one member-role
// user and returns both sessions. The member is inserted through the store
// because members have no self-service registration.
func registerTenantWithMember(t *testing.T, env *testEnv, slug, adminEmail string) (*taskapi.Session, *taskapi.Session) {
	t.Helper()
	ctx := context.Background()

	admin := registerTenant(t, env, slug, adminEmail)

	me, err := admin.GetMe(ctx)
	require.NoError(t, err)

	hash, err := cryptox.HashPassword(memberPassword)
	require.NoError(t, err)

	memberEmail := "member@" + slug + ".test"
	_, err = env.store.Users().Create(ctx, domain.User{
		ID:             idx.New().String(),
		Email:          memberEmail,
		HashedPassword: hash,
		FullName:       "E2E Member",
		Role:           domain.RoleMember,
		OrgID:          me.OrganizationID,
	})
	require.NoError(t, err)

	member, err := env.Login(ctx, memberEmail, memberPassword)
	require.NoError(t, err)
	return admin, member
}

// requireAPIError asserts err is an *APIError with the given status and code.
func requireAPIError(t *testing.T, err error, status int, code string) {
	t.Helper()

	require.Error(t, err)
	apiErr, ok := err.(*taskapi.APIError)
	require.True(t, ok, "expected *taskapi.APIError, got %T: %v", err, err)
	require.Equal(t, status, apiErr.StatusCode)
	require.Equal(t, code, apiErr.Code)
}
