package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/taskflowhq/taskflow/internal/api/domain"
	"github.com/taskflowhq/taskflow/internal/api/store"
)

type tasksRepo struct {
	db dbtx
}

const taskColumns = `id, title, description, status, priority, organization_id, assignee_id, created_at, updated_at`

func (r *tasksRepo) GetByID(ctx context.Context, id, orgID string) (domain.Task, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE id = ? AND organization_id = ?`,
		id, orgID)
	return scanTask(row)
}

func (r *tasksRepo) ListByOrg(ctx context.Context, orgID string, offset, limit int) ([]domain.Task, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+taskColumns+` FROM tasks
		 WHERE organization_id = ?
		 ORDER BY id
		 LIMIT ? OFFSET ?`,
		orgID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []domain.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (r *tasksRepo) CountByOrg(ctx context.Context, orgID string) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM tasks WHERE organization_id = ?`, orgID).Scan(&count)
	return count, err
}

func (r *tasksRepo) Create(ctx context.Context, t domain.Task) (domain.Task, error) {
	now := time.Now().UTC()
	t.CreatedAt = now
	t.UpdatedAt = now

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO tasks (id, title, description, status, priority, organization_id, assignee_id, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.Title, mapStringNull(t.Description), string(t.Status), string(t.Priority),
		t.OrgID, mapOptionalString(t.AssigneeID), t.CreatedAt, t.UpdatedAt)
	if err != nil {
		return domain.Task{}, mapConstraint(err)
	}

	return t, nil
}

func (r *tasksRepo) Update(ctx context.Context, id, orgID string, p domain.TaskPatch) (domain.Task, error) {
	if p.IsEmpty() {
		return r.GetByID(ctx, id, orgID)
	}

	sets := []string{"updated_at = ?"}
	args := []any{time.Now().UTC()}

	if p.Title.Set {
		sets = append(sets, "title = ?")
		args = append(args, p.Title.Value)
	}
	if p.Description.Set {
		sets = append(sets, "description = ?")
		args = append(args, fieldToNullString(p.Description))
	}
	if p.Status.Set {
		sets = append(sets, "status = ?")
		args = append(args, string(p.Status.Value))
	}
	if p.Priority.Set {
		sets = append(sets, "priority = ?")
		args = append(args, string(p.Priority.Value))
	}
	if p.AssigneeID.Set {
		sets = append(sets, "assignee_id = ?")
		args = append(args, fieldToNullString(p.AssigneeID))
	}
	args = append(args, id, orgID)

	res, err := r.db.ExecContext(ctx,
		`UPDATE tasks SET `+strings.Join(sets, ", ")+
			` WHERE id = ? AND organization_id = ?`, args...)
	if err != nil {
		return domain.Task{}, mapConstraint(err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return domain.Task{}, err
	}
	if affected == 0 {
		return domain.Task{}, store.ErrNotFound
	}

	return r.GetByID(ctx, id, orgID)
}

func (r *tasksRepo) Delete(ctx context.Context, id, orgID string) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM tasks WHERE id = ? AND organization_id = ?`, id, orgID)
	if err != nil {
		return false, err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func fieldToNullString[T ~string](f domain.Field[T]) sql.NullString {
	if !f.Valid {
		return sql.NullString{}
	}
	return sql.NullString{String: string(f.Value), Valid: true}
}

func scanTask(row rowScanner) (domain.Task, error) {
	var (
		t           domain.Task
		description sql.NullString
		status      string
		priority    string
		assignee    sql.NullString
	)
	err := row.Scan(&t.ID, &t.Title, &description, &status, &priority,
		&t.OrgID, &assignee, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return domain.Task{}, mapNotFound(err)
	}
	t.Description = mapNullString(description)
	t.Status = domain.TaskStatus(status)
	t.Priority = domain.TaskPriority(priority)
	t.AssigneeID = mapNullStringPtr(assignee)
	return t, nil
}
