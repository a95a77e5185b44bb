package http

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/taskflowhq/taskflow/internal/api/domain"
	"github.com/taskflowhq/taskflow/internal/api/service"
	"github.com/taskflowhq/taskflow/pkg/httpx"
	"github.com/taskflowhq/taskflow/pkg/slogx"
	"github.com/taskflowhq/taskflow/pkg/taskapi"
)

// AuthnMiddleware resolves the bearer token into a caller identity and
// stashes it in the request context. The identity service re-reads the user
// from storage, so a request surviving this middleware is backed by a live
// user row, not just a valid signature.
func AuthnMiddleware(identity *service.IdentityService) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				taskapi.ErrUnauthenticated.WriteError(w)
				return
			}

			id, err := identity.Resolve(r.Context(), token)
			if err != nil {
				if errors.Is(err, service.ErrUnauthenticated) {
					taskapi.ErrUnauthenticated.WriteError(w)
					return
				}
				slogx.FromContext(r.Context()).Error("identity resolution failed", "err", err)
				taskapi.ErrServerError.WriteError(w)
				return
			}

			ctx := r.Context()
			ctx = context.WithValue(ctx, httpx.CtxKeyUserID, id.UserID)
			ctx = context.WithValue(ctx, httpx.CtxKeyOrgID, id.OrgID)
			ctx = context.WithValue(ctx, httpx.CtxKeyRole, string(id.Role))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole lets the request through when the caller's resolved role is
// in allowed. It runs after AuthnMiddleware; a request that never went
// through identity resolution carries no role and fails closed as forbidden.
func RequireRole(allowed ...domain.Role) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role := domain.Role(httpx.RoleFromCtx(r.Context()))
			if !role.In(allowed...) {
				taskapi.ErrForbidden.WriteError(w)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	auth := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(auth) <= len(prefix) || !strings.EqualFold(auth[:len(prefix)], prefix) {
		return "", false
	}
	return strings.TrimSpace(auth[len(prefix):]), true
}
