package service

import (
	"context"
	"errors"

	"github.com/taskflowhq/taskflow/internal/api/domain"
	"github.com/taskflowhq/taskflow/internal/api/store"
	"github.com/taskflowhq/taskflow/pkg/jwtx"
)

// IdentityService turns a bearer token into a caller identity. Token claims
// alone are never trusted for tenant data: the referenced user is re-read
// from storage on every request, so deleted users and stale role claims die
// with their next call.
type IdentityService struct {
	Store    store.Store
	Verifier jwtx.Verifier
}

// Resolve verifies the token and loads the caller's current user record.
// Any failure along the way (malformed token, bad signature, expiry, user
// gone, org mismatch) collapses into ErrUnauthenticated: callers never learn
// which check failed.
func (s *IdentityService) Resolve(ctx context.Context, token string) (domain.Identity, error) {
	claims, err := s.Verifier.Verify(token)
	if err != nil {
		return domain.Identity{}, ErrUnauthenticated
	}

	if claims.Subject == "" || claims.OrgID == "" {
		return domain.Identity{}, ErrUnauthenticated
	}

	user, err := s.Store.Users().GetByID(ctx, claims.Subject, claims.OrgID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Identity{}, ErrUnauthenticated
		}
		return domain.Identity{}, err
	}

	// Role comes from storage, not from the token.
	return domain.Identity{
		UserID: user.ID,
		OrgID:  user.OrgID,
		Email:  user.Email,
		Role:   user.Role,
	}, nil
}
