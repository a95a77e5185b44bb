package service_test

import (
	"context"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskflowhq/taskflow/internal/api/domain"
	"github.com/taskflowhq/taskflow/internal/api/notify"
	"github.com/taskflowhq/taskflow/internal/api/service"
	"github.com/taskflowhq/taskflow/internal/api/store"
)

// recordingNotifier captures published events for assertions.
type recordingNotifier struct {
	mu     sync.Mutex
	events []notify.Event
	err    error
}

func (n *recordingNotifier) TaskCreated(_ context.Context, ev notify.Event) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, ev)
	return n.err
}

func (n *recordingNotifier) all() []notify.Event {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]notify.Event(nil), n.events...)
}

func newTaskService(st store.Store, n notify.Notifier) *service.TaskService {
	return &service.TaskService{
		Store:    st,
		Notifier: n,
		Logger:   slog.New(slog.DiscardHandler),
	}
}

func TestTaskCreate(t *testing.T) {
	st := newTestStore(t)
	auth := newAuthService(t, st)
	ctx := context.Background()

	admin, _ := register(t, auth, "acme", "admin@acme.test")
	notifier := &recordingNotifier{}
	tasks := newTaskService(st, notifier)

	task, err := tasks.Create(ctx, admin.OrgID, service.CreateTaskParams{
		Title:      "Ship it",
		Status:     domain.StatusTodo,
		Priority:   domain.PriorityHigh,
		AssigneeID: &admin.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, admin.OrgID, task.OrgID)

	events := notifier.all()
	require.Len(t, events, 1)
	assert.Equal(t, task.ID, events[0].TaskID)
	assert.Equal(t, admin.OrgID, events[0].OrgID)
}

func TestTaskCreate_AssigneeMustBeSameOrg(t *testing.T) {
	st := newTestStore(t)
	auth := newAuthService(t, st)
	ctx := context.Background()

	adminA, _ := register(t, auth, "acme", "admin@acme.test")
	adminB, _ := register(t, auth, "globex", "admin@globex.test")
	tasks := newTaskService(st, nil)

	// A user of another organization is not assignable, and the error does
	// not reveal that the user exists at all.
	_, err := tasks.Create(ctx, adminA.OrgID, service.CreateTaskParams{
		Title:      "Cross-tenant",
		Status:     domain.StatusTodo,
		Priority:   domain.PriorityMedium,
		AssigneeID: &adminB.ID,
	})
	assert.ErrorIs(t, err, service.ErrAssigneeNotFound)

	missing := "01JEXAMPLEMISSING00000000"
	_, err = tasks.Create(ctx, adminA.OrgID, service.CreateTaskParams{
		Title:      "Ghost assignee",
		Status:     domain.StatusTodo,
		Priority:   domain.PriorityMedium,
		AssigneeID: &missing,
	})
	assert.ErrorIs(t, err, service.ErrAssigneeNotFound)
}

func TestTaskCreate_NotifierFailureDoesNotFailCreate(t *testing.T) {
	st := newTestStore(t)
	auth := newAuthService(t, st)
	ctx := context.Background()

	admin, _ := register(t, auth, "acme", "admin@acme.test")
	notifier := &recordingNotifier{err: assert.AnError}
	tasks := newTaskService(st, notifier)

	task, err := tasks.Create(ctx, admin.OrgID, service.CreateTaskParams{
		Title:    "Ship it",
		Status:   domain.StatusTodo,
		Priority: domain.PriorityMedium,
	})
	require.NoError(t, err)

	got, err := tasks.Get(ctx, task.ID, admin.OrgID)
	require.NoError(t, err)
	assert.Equal(t, "Ship it", got.Title)
}

func TestTaskUpdate_AssigneeValidation(t *testing.T) {
	st := newTestStore(t)
	auth := newAuthService(t, st)
	ctx := context.Background()

	adminA, _ := register(t, auth, "acme", "admin@acme.test")
	adminB, _ := register(t, auth, "globex", "admin@globex.test")
	tasks := newTaskService(st, nil)

	task, err := tasks.Create(ctx, adminA.OrgID, service.CreateTaskParams{
		Title:    "Ship it",
		Status:   domain.StatusTodo,
		Priority: domain.PriorityMedium,
	})
	require.NoError(t, err)

	_, err = tasks.Update(ctx, task.ID, adminA.OrgID, domain.TaskPatch{
		AssigneeID: domain.FieldOf(adminB.ID),
	})
	assert.ErrorIs(t, err, service.ErrAssigneeNotFound)

	// Assigning a same-org member and clearing again both work.
	updated, err := tasks.Update(ctx, task.ID, adminA.OrgID, domain.TaskPatch{
		AssigneeID: domain.FieldOf(adminA.ID),
	})
	require.NoError(t, err)
	require.NotNil(t, updated.AssigneeID)

	updated, err = tasks.Update(ctx, task.ID, adminA.OrgID, domain.TaskPatch{
		AssigneeID: domain.NullField[string](),
	})
	require.NoError(t, err)
	assert.Nil(t, updated.AssigneeID)
}

func TestTaskList_Pagination(t *testing.T) {
	st := newTestStore(t)
	auth := newAuthService(t, st)
	ctx := context.Background()

	admin, _ := register(t, auth, "acme", "admin@acme.test")
	tasks := newTaskService(st, nil)

	for i := 0; i < 5; i++ {
		_, err := tasks.Create(ctx, admin.OrgID, service.CreateTaskParams{
			Title:    "Task",
			Status:   domain.StatusTodo,
			Priority: domain.PriorityLow,
		})
		require.NoError(t, err)
	}

	page := domain.NewPageRequest(2, 2)
	items, total, err := tasks.List(ctx, admin.OrgID, page)
	require.NoError(t, err)
	assert.Len(t, items, 2)
	assert.EqualValues(t, 5, total)
	assert.Equal(t, 3, page.Pages(total))
}

func TestTaskDelete(t *testing.T) {
	st := newTestStore(t)
	auth := newAuthService(t, st)
	ctx := context.Background()

	admin, _ := register(t, auth, "acme", "admin@acme.test")
	tasks := newTaskService(st, nil)

	task, err := tasks.Create(ctx, admin.OrgID, service.CreateTaskParams{
		Title:    "Ephemeral",
		Status:   domain.StatusTodo,
		Priority: domain.PriorityLow,
	})
	require.NoError(t, err)

	require.NoError(t, tasks.Delete(ctx, task.ID, admin.OrgID))
	assert.ErrorIs(t, tasks.Delete(ctx, task.ID, admin.OrgID), store.ErrNotFound)
}
