// Package notify delivers task lifecycle notifications. Publishing is
// fire-and-forget from the caller's point of view: the task service records
// failures in the log and never propagates them into the request path.
package notify

import (
	"context"
	"log/slog"
	"time"
)

// Event describes a task that was just created.
type Event struct {
	TaskID     string    `json:"task_id"`
	Title      string    `json:"title"`
	OrgID      string    `json:"organization_id"`
	AssigneeID *string   `json:"assignee_id,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// Notifier publishes task events to whatever backend is configured.
type Notifier interface {
	// TaskCreated publishes a creation event. Implementations must be safe
	// for concurrent use.
	TaskCreated(ctx context.Context, ev Event) error
}

// LogNotifier writes events to the log instead of a queue. It is the
// fallback when no Redis is configured, and keeps single-binary deployments
// working without extra infrastructure.
type LogNotifier struct {
	Logger *slog.Logger
}

func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{Logger: logger}
}

func (n *LogNotifier) TaskCreated(_ context.Context, ev Event) error {
	n.Logger.Info("task created",
		"task_id", ev.TaskID,
		"org_id", ev.OrgID,
		"title", ev.Title,
	)
	return nil
}
