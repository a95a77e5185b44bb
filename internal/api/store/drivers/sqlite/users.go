package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/taskflowhq/taskflow/internal/api/domain"
)

type usersRepo struct {
	db dbtx
}

const userColumns = `id, email, hashed_password, full_name, role, organization_id, created_at, updated_at`

func (r *usersRepo) GetByID(ctx context.Context, id, orgID string) (domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ? AND organization_id = ?`,
		id, orgID)
	return scanUser(row)
}

func (r *usersRepo) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = ?`, email)
	return scanUser(row)
}

func (r *usersRepo) ListByOrg(ctx context.Context, orgID string, offset, limit int) ([]domain.User, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+userColumns+` FROM users
		 WHERE organization_id = ?
		 ORDER BY id
		 LIMIT ? OFFSET ?`,
		orgID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *usersRepo) CountByOrg(ctx context.Context, orgID string) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM users WHERE organization_id = ?`, orgID).Scan(&count)
	return count, err
}

func (r *usersRepo) Create(ctx context.Context, u domain.User) (domain.User, error) {
	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (id, email, hashed_password, full_name, role, organization_id, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		u.ID, u.Email, u.HashedPassword, mapStringNull(u.FullName), string(u.Role),
		u.OrgID, u.CreatedAt, u.UpdatedAt)
	if err != nil {
		return domain.User{}, mapConstraint(err)
	}

	return u, nil
}

func (r *usersRepo) Delete(ctx context.Context, id, orgID string) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM users WHERE id = ? AND organization_id = ?`, id, orgID)
	if err != nil {
		return false, err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func scanUser(row rowScanner) (domain.User, error) {
	var (
		u        domain.User
		fullName sql.NullString
		role     string
	)
	err := row.Scan(&u.ID, &u.Email, &u.HashedPassword, &fullName, &role,
		&u.OrgID, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	u.FullName = mapNullString(fullName)
	u.Role = domain.Role(role)
	return u, nil
}
