package service

import (
	"context"

	"github.com/taskflowhq/taskflow/internal/api/domain"
	"github.com/taskflowhq/taskflow/internal/api/store"
)

// UserService reads and manages the members of one organization.
type UserService struct {
	Store store.Store
}

// Get fetches a member by id within the caller's organization. A user under
// another organization is a plain store.ErrNotFound.
func (s *UserService) Get(ctx context.Context, id, orgID string) (domain.User, error) {
	return s.Store.Users().GetByID(ctx, id, orgID)
}

// List returns one pagination window of the organization's members plus the
// total count.
func (s *UserService) List(ctx context.Context, orgID string, page domain.PageRequest) ([]domain.User, int64, error) {
	users, err := s.Store.Users().ListByOrg(ctx, orgID, page.Offset(), page.Size)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.Store.Users().CountByOrg(ctx, orgID)
	if err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

// Delete removes a member of the caller's organization. Tasks assigned to
// the user cascade away with it. Returns store.ErrNotFound when nothing was
// removed, cross-tenant ids included.
func (s *UserService) Delete(ctx context.Context, id, orgID string) error {
	deleted, err := s.Store.Users().Delete(ctx, id, orgID)
	if err != nil {
		return err
	}
	if !deleted {
		return store.ErrNotFound
	}
	return nil
}
