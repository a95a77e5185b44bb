package api_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskflowhq/taskflow/pkg/taskapi"
)

func TestRegisterAndLogin(t *testing.T) {
	env := setupServer(t)
	ctx := context.Background()

	session := registerTenant(t, env, "acme", "admin@acme.test")

	// Registration yields a working session for the new admin.
	me, err := session.GetMe(ctx)
	require.NoError(t, err)
	assert.Equal(t, "admin@acme.test", me.Email)
	assert.Equal(t, "admin", me.Role)

	// Logging in afterwards works too.
	loginSession, err := env.Login(ctx, "admin@acme.test", adminPassword)
	require.NoError(t, err)

	me2, err := loginSession.GetMe(ctx)
	require.NoError(t, err)
	assert.Equal(t, me.ID, me2.ID)
}

func TestRegister_Validation(t *testing.T) {
	env := setupServer(t)
	ctx := context.Background()

	cases := []struct {
		name string
		req  taskapi.RegisterRequest
	}{
		{"missing org name", taskapi.RegisterRequest{
			OrganizationSlug: "acme", Email: "a@b.test", Password: "long-enough-pw"}},
		{"bad slug", taskapi.RegisterRequest{
			OrganizationName: "Acme", OrganizationSlug: "Bad Slug!", Email: "a@b.test", Password: "long-enough-pw"}},
		{"bad email", taskapi.RegisterRequest{
			OrganizationName: "Acme", OrganizationSlug: "acme", Email: "not-an-email", Password: "long-enough-pw"}},
		{"short password", taskapi.RegisterRequest{
			OrganizationName: "Acme", OrganizationSlug: "acme", Email: "a@b.test", Password: "short"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := env.Register(ctx, tc.req)
			requireAPIError(t, err, http.StatusBadRequest, taskapi.ErrorCodeInvalidRequest)
		})
	}
}

func TestRegister_Duplicates(t *testing.T) {
	env := setupServer(t)
	ctx := context.Background()

	registerTenant(t, env, "acme", "admin@acme.test")

	_, err := env.Register(ctx, taskapi.RegisterRequest{
		OrganizationName: "Other",
		OrganizationSlug: "acme",
		Email:            "other@example.test",
		Password:         adminPassword,
	})
	requireAPIError(t, err, http.StatusBadRequest, taskapi.ErrorCodeDuplicateSlug)

	_, err = env.Register(ctx, taskapi.RegisterRequest{
		OrganizationName: "Other",
		OrganizationSlug: "other",
		Email:            "admin@acme.test",
		Password:         adminPassword,
	})
	requireAPIError(t, err, http.StatusBadRequest, taskapi.ErrorCodeDuplicateEmail)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	env := setupServer(t)
	ctx := context.Background()

	registerTenant(t, env, "acme", "admin@acme.test")

	// Wrong password and unknown email produce the identical error.
	_, err := env.Login(ctx, "admin@acme.test", "wrong password")
	requireAPIError(t, err, http.StatusUnauthorized, taskapi.ErrorCodeInvalidCredentials)

	_, err = env.Login(ctx, "nobody@acme.test", adminPassword)
	requireAPIError(t, err, http.StatusUnauthorized, taskapi.ErrorCodeInvalidCredentials)
}

func TestAuthn_BadTokens(t *testing.T) {
	env := setupServer(t)
	ctx := context.Background()

	// No token at all.
	anonymous := env.NewSessionFromToken("")
	_, err := anonymous.GetMe(ctx)
	requireAPIError(t, err, http.StatusUnauthorized, taskapi.ErrorCodeUnauthenticated)

	// Garbage token.
	garbage := env.NewSessionFromToken("not.a.jwt")
	_, err = garbage.GetMe(ctx)
	requireAPIError(t, err, http.StatusUnauthorized, taskapi.ErrorCodeUnauthenticated)
}

func TestAuthn_DeletedUserTokenStopsWorking(t *testing.T) {
	env := setupServer(t)
	ctx := context.Background()

	admin := registerTenant(t, env, "acme", "admin@acme.test")
	me, err := admin.GetMe(ctx)
	require.NoError(t, err)

	// The admin deletes itself; its still-valid token must stop resolving.
	require.NoError(t, admin.DeleteUser(ctx, me.ID))

	_, err = admin.GetMe(ctx)
	requireAPIError(t, err, http.StatusUnauthorized, taskapi.ErrorCodeUnauthenticated)
}
