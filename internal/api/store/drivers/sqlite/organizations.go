package sqlite

import (
	"context"
	"strings"
	"time"

	"github.com/taskflowhq/taskflow/internal/api/domain"
	"github.com/taskflowhq/taskflow/internal/api/store"
)

type organizationsRepo struct {
	db dbtx
}

const organizationColumns = `id, name, slug, created_at, updated_at`

func (r *organizationsRepo) GetByID(ctx context.Context, id string) (domain.Organization, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+organizationColumns+` FROM organizations WHERE id = ?`, id)
	return scanOrganization(row)
}

func (r *organizationsRepo) GetBySlug(ctx context.Context, slug string) (domain.Organization, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+organizationColumns+` FROM organizations WHERE slug = ?`, slug)
	return scanOrganization(row)
}

func (r *organizationsRepo) Create(ctx context.Context, o domain.Organization) (domain.Organization, error) {
	now := time.Now().UTC()
	o.CreatedAt = now
	o.UpdatedAt = now

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO organizations (id, name, slug, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?)`,
		o.ID, o.Name, o.Slug, o.CreatedAt, o.UpdatedAt)
	if err != nil {
		return domain.Organization{}, mapConstraint(err)
	}

	return o, nil
}

func (r *organizationsRepo) Update(ctx context.Context, id string, p domain.OrganizationPatch) (domain.Organization, error) {
	if p.IsEmpty() {
		return r.GetByID(ctx, id)
	}

	sets := []string{"updated_at = ?"}
	args := []any{time.Now().UTC()}

	if p.Name.Set {
		sets = append(sets, "name = ?")
		args = append(args, p.Name.Value)
	}
	if p.Slug.Set {
		sets = append(sets, "slug = ?")
		args = append(args, p.Slug.Value)
	}
	args = append(args, id)

	res, err := r.db.ExecContext(ctx,
		`UPDATE organizations SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...)
	if err != nil {
		return domain.Organization{}, mapConstraint(err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return domain.Organization{}, err
	}
	if affected == 0 {
		return domain.Organization{}, store.ErrNotFound
	}

	return r.GetByID(ctx, id)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrganization(row rowScanner) (domain.Organization, error) {
	var o domain.Organization
	err := row.Scan(&o.ID, &o.Name, &o.Slug, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return domain.Organization{}, mapNotFound(err)
	}
	return o, nil
}
