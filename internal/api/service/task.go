package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/taskflowhq/taskflow/internal/api/domain"
	"github.com/taskflowhq/taskflow/internal/api/notify"
	"github.com/taskflowhq/taskflow/internal/api/store"
	"github.com/taskflowhq/taskflow/pkg/idx"
)

// TaskService implements task CRUD for one organization at a time. The org
// id always comes from the resolved identity, never from the request body.
type TaskService struct {
	Store    store.Store
	Notifier notify.Notifier
	Logger   *slog.Logger
}

// CreateTaskParams carries the validated fields of a new task. Status and
// Priority are already defaulted by the transport layer.
type CreateTaskParams struct {
	Title       string
	Description string
	Status      domain.TaskStatus
	Priority    domain.TaskPriority
	AssigneeID  *string
}

// Create inserts a task into the caller's organization. An assignee, when
// given, must be a member of the same organization; anything else (missing,
// deleted, or belonging to another tenant) is ErrAssigneeNotFound. On
// success a notification is published fire-and-forget: delivery failure is
// logged and never reaches the caller.
func (s *TaskService) Create(ctx context.Context, orgID string, p CreateTaskParams) (domain.Task, error) {
	if p.AssigneeID != nil {
		if err := s.checkAssignee(ctx, *p.AssigneeID, orgID); err != nil {
			return domain.Task{}, err
		}
	}

	task, err := s.Store.Tasks().Create(ctx, domain.Task{
		ID:          idx.New().String(),
		Title:       p.Title,
		Description: p.Description,
		Status:      p.Status,
		Priority:    p.Priority,
		OrgID:       orgID,
		AssigneeID:  p.AssigneeID,
	})
	if err != nil {
		return domain.Task{}, err
	}

	s.notifyCreated(ctx, task)
	return task, nil
}

// Get fetches a task by id within the caller's organization.
func (s *TaskService) Get(ctx context.Context, id, orgID string) (domain.Task, error) {
	return s.Store.Tasks().GetByID(ctx, id, orgID)
}

// List returns one pagination window of the organization's tasks plus the
// total count.
func (s *TaskService) List(ctx context.Context, orgID string, page domain.PageRequest) ([]domain.Task, int64, error) {
	tasks, err := s.Store.Tasks().ListByOrg(ctx, orgID, page.Offset(), page.Size)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.Store.Tasks().CountByOrg(ctx, orgID)
	if err != nil {
		return nil, 0, err
	}
	return tasks, total, nil
}

// Update applies a partial update. A new assignee goes through the same
// same-organization membership check as Create; clearing the assignee does
// not.
func (s *TaskService) Update(ctx context.Context, id, orgID string, p domain.TaskPatch) (domain.Task, error) {
	if p.AssigneeID.Set && p.AssigneeID.Valid {
		if err := s.checkAssignee(ctx, p.AssigneeID.Value, orgID); err != nil {
			return domain.Task{}, err
		}
	}
	return s.Store.Tasks().Update(ctx, id, orgID, p)
}

// Delete removes a task of the caller's organization. Returns
// store.ErrNotFound when nothing was removed, cross-tenant ids included.
func (s *TaskService) Delete(ctx context.Context, id, orgID string) error {
	deleted, err := s.Store.Tasks().Delete(ctx, id, orgID)
	if err != nil {
		return err
	}
	if !deleted {
		return store.ErrNotFound
	}
	return nil
}

func (s *TaskService) checkAssignee(ctx context.Context, assigneeID, orgID string) error {
	_, err := s.Store.Users().GetByID(ctx, assigneeID, orgID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrAssigneeNotFound
		}
		return err
	}
	return nil
}

func (s *TaskService) notifyCreated(ctx context.Context, task domain.Task) {
	if s.Notifier == nil {
		return
	}

	// Bounded so a stuck queue cannot hold the request goroutine.
	nctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 2*time.Second)
	defer cancel()

	err := s.Notifier.TaskCreated(nctx, notify.Event{
		TaskID:     task.ID,
		Title:      task.Title,
		OrgID:      task.OrgID,
		AssigneeID: task.AssigneeID,
		CreatedAt:  task.CreatedAt,
	})
	if err != nil {
		s.Logger.Error("failed to publish task notification",
			"task_id", task.ID, "error", err)
	}
}
