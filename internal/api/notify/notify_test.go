package notify

import (
	"context"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestNotifier(t *testing.T) *RedisNotifier {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return &RedisNotifier{Client: client, QueueKey: DefaultQueueKey}
}

func TestRedisNotifier_PublishAndDequeue(t *testing.T) {
	n := newTestNotifier(t)
	ctx := context.Background()

	assignee := "01JEXAMPLEASSIGNEE0000000"
	err := n.TaskCreated(ctx, Event{
		TaskID:     "01JEXAMPLETASK00000000000",
		Title:      "Ship it",
		OrgID:      "01JEXAMPLEORG000000000000",
		AssigneeID: &assignee,
		CreatedAt:  time.Now().UTC(),
	})
	require.NoError(t, err)

	ev, err := n.Dequeue(ctx, time.Second)
	require.NoError(t, err)
	assert.Equal(t, "Ship it", ev.Title)
	require.NotNil(t, ev.AssigneeID)
	assert.Equal(t, assignee, *ev.AssigneeID)
}

func TestRedisNotifier_DequeueEmpty(t *testing.T) {
	n := newTestNotifier(t)

	_, err := n.Dequeue(context.Background(), 10*time.Millisecond)
	assert.ErrorIs(t, err, ErrQueueEmpty)
}

func TestWorker_DeliversEvents(t *testing.T) {
	n := newTestNotifier(t)

	var (
		mu   sync.Mutex
		seen []string
	)
	handler := func(_ context.Context, ev Event) error {
		mu.Lock()
		defer mu.Unlock()
		seen = append(seen, ev.TaskID)
		return nil
	}

	w := NewWorker(n, slog.New(slog.DiscardHandler), handler, 50*time.Millisecond)
	w.Start()
	defer w.Stop()

	require.NoError(t, n.TaskCreated(context.Background(), Event{TaskID: "task-1"}))
	require.NoError(t, n.TaskCreated(context.Background(), Event{TaskID: "task-2"}))

	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(seen) == 2
	}, 2*time.Second, 10*time.Millisecond)
}

func TestWorker_StopIsPrompt(t *testing.T) {
	n := newTestNotifier(t)

	w := NewWorker(n, slog.New(slog.DiscardHandler), nil, 50*time.Millisecond)
	w.Start()

	done := make(chan struct{})
	go func() {
		w.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not stop in time")
	}
}
