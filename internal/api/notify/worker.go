package notify

import (
	"context"
	"errors"
	"log/slog"
	"time"
)

// Handler processes one dequeued event. Errors are logged; the event is not
// redelivered.
type Handler func(ctx context.Context, ev Event) error

// Worker consumes the Redis notification queue in the background. Today the
// default handler only logs deliveries; it is the seam where email or
// webhook fan-out plugs in.
type Worker struct {
	Source  *RedisNotifier
	Logger  *slog.Logger
	Handler Handler

	// PollTimeout bounds each blocking dequeue so Stop() is honored
	// promptly.
	PollTimeout time.Duration

	stopCh chan struct{}
	doneCh chan struct{}
}

// NewWorker creates a notification worker. If handler is nil, events are
// logged and dropped. If pollTimeout is 0 or negative, defaults to 5s.
func NewWorker(source *RedisNotifier, logger *slog.Logger, handler Handler, pollTimeout time.Duration) *Worker {
	if pollTimeout <= 0 {
		pollTimeout = 5 * time.Second
	}
	w := &Worker{
		Source:      source,
		Logger:      logger,
		Handler:     handler,
		PollTimeout: pollTimeout,
		stopCh:      make(chan struct{}),
		doneCh:      make(chan struct{}),
	}
	if w.Handler == nil {
		w.Handler = w.logEvent
	}
	return w
}

// Start begins the background consumer. Non-blocking; call Stop() to
// gracefully shut it down.
func (w *Worker) Start() {
	go w.run()
	w.Logger.Info("notification worker started", "queue", w.Source.QueueKey)
}

// Stop gracefully shuts down the consumer. Blocks until any in-progress
// delivery has finished.
func (w *Worker) Stop() {
	close(w.stopCh)
	<-w.doneCh
	w.Logger.Info("notification worker stopped")
}

func (w *Worker) run() {
	defer close(w.doneCh)

	ctx := context.Background()
	for {
		select {
		case <-w.stopCh:
			return
		default:
		}

		ev, err := w.Source.Dequeue(ctx, w.PollTimeout)
		if err != nil {
			if errors.Is(err, ErrQueueEmpty) {
				continue
			}
			w.Logger.Error("failed to dequeue notification", "error", err)

			// Back off so a dead Redis doesn't spin the loop.
			select {
			case <-time.After(w.PollTimeout):
			case <-w.stopCh:
				return
			}
			continue
		}

		if err := w.Handler(ctx, ev); err != nil {
			w.Logger.Error("failed to handle notification",
				"task_id", ev.TaskID, "error", err)
		}
	}
}

func (w *Worker) logEvent(_ context.Context, ev Event) error {
	w.Logger.Info("delivering task notification",
		"task_id", ev.TaskID,
		"org_id", ev.OrgID,
		"title", ev.Title,
	)
	return nil
}
