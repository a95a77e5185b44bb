package notify

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultQueueKey is the Redis list that holds pending notification events.
const DefaultQueueKey = "taskflow:notifications"

// RedisNotifier publishes events onto a Redis list. A Worker (possibly in
// another process) consumes the list from the other end.
type RedisNotifier struct {
	Client   *redis.Client
	QueueKey string
}

// NewRedisNotifier creates a notifier for the given Redis URL
// (e.g. redis://localhost:6379/0) and verifies connectivity.
func NewRedisNotifier(ctx context.Context, redisURL string) (*RedisNotifier, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}

	return &RedisNotifier{Client: client, QueueKey: DefaultQueueKey}, nil
}

func (n *RedisNotifier) TaskCreated(ctx context.Context, ev Event) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return n.Client.LPush(ctx, n.QueueKey, payload).Err()
}

// Dequeue blocks up to timeout for the next pending event. Returns
// ErrQueueEmpty when the timeout elapses with nothing to consume.
func (n *RedisNotifier) Dequeue(ctx context.Context, timeout time.Duration) (Event, error) {
	res, err := n.Client.BRPop(ctx, timeout, n.QueueKey).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return Event{}, ErrQueueEmpty
		}
		return Event{}, err
	}

	// BRPop returns [key, value].
	var ev Event
	if err := json.Unmarshal([]byte(res[1]), &ev); err != nil {
		return Event{}, err
	}
	return ev, nil
}

func (n *RedisNotifier) Close() error { return n.Client.Close() }

// ErrQueueEmpty reports a Dequeue that timed out with no pending events.
var ErrQueueEmpty = errors.New("notify: queue empty")
