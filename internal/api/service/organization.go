package service

import (
	"context"
	"errors"

	"github.com/taskflowhq/taskflow/internal/api/domain"
	"github.com/taskflowhq/taskflow/internal/api/store"
)

// OrganizationService reads and updates the caller's own organization. There
// is no cross-organization surface at all: every method takes the org id
// straight from the resolved identity.
type OrganizationService struct {
	Store store.Store
}

// Get returns the caller's organization.
func (s *OrganizationService) Get(ctx context.Context, orgID string) (domain.Organization, error) {
	return s.Store.Organizations().GetByID(ctx, orgID)
}

// Update applies a partial update to the caller's organization. A slug
// change that collides with another tenant returns ErrSlugTaken; keeping
// the current slug is not a collision.
func (s *OrganizationService) Update(ctx context.Context, orgID string, p domain.OrganizationPatch) (domain.Organization, error) {
	if p.Slug.Set {
		existing, err := s.Store.Organizations().GetBySlug(ctx, p.Slug.Value)
		switch {
		case err == nil && existing.ID != orgID:
			return domain.Organization{}, ErrSlugTaken
		case err != nil && !errors.Is(err, store.ErrNotFound):
			return domain.Organization{}, err
		}
	}

	org, err := s.Store.Organizations().Update(ctx, orgID, p)
	if err != nil {
		// The UNIQUE constraint catches the race the pre-check missed.
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.Organization{}, ErrSlugTaken
		}
		return domain.Organization{}, err
	}
	return org, nil
}
