package domain

import "time"

// TaskStatus is the lifecycle state of a task.
type TaskStatus string

const (
	StatusTodo       TaskStatus = "todo"
	StatusInProgress TaskStatus = "in_progress"
	StatusDone       TaskStatus = "done"
)

func (s TaskStatus) Valid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusDone:
		return true
	}
	return false
}

// TaskPriority orders tasks by urgency.
type TaskPriority string

const (
	PriorityLow    TaskPriority = "low"
	PriorityMedium TaskPriority = "medium"
	PriorityHigh   TaskPriority = "high"
)

func (p TaskPriority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Task is a unit of work scoped to one organization. AssigneeID, when set,
// must reference a user of the same organization; the task service enforces
// this at write time.
type Task struct {
	ID          string
	Title       string
	Description string // optional
	Status      TaskStatus
	Priority    TaskPriority
	OrgID       string
	AssigneeID  *string // nil when unassigned
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TaskPatch is a partial update. Absent fields are untouched; Description
// and AssigneeID may be explicitly nulled to clear them.
type TaskPatch struct {
	Title       Field[string]
	Description Field[string]
	Status      Field[TaskStatus]
	Priority    Field[TaskPriority]
	AssigneeID  Field[string]
}

// IsEmpty reports whether the patch would change anything.
func (p TaskPatch) IsEmpty() bool {
	return !p.Title.Set && !p.Description.Set && !p.Status.Set &&
		!p.Priority.Set && !p.AssigneeID.Set
}
