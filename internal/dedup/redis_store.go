package dedup

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// keyPrefix namespaces dedup markers in the shared Redis instance.
const keyPrefix = "wa:"

// RedisStore implements Store using SET NX with a TTL. The marker
// expires after the configured window, after which the same message id
// is treated as first-seen again.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore creates a Redis-backed store. It only fails on an
// unparseable URL; an unreachable server is tolerated because Reserve
// degrades to Unavailable and the client reconnects on its own.
func NewRedisStore(redisURL string, ttl time.Duration) (*RedisStore, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	return &RedisStore{
		client: redis.NewClient(opt),
		ttl:    ttl,
	}, nil
}

// dedupKey generates the Redis key for a message id.
func (r *RedisStore) dedupKey(messageID string) string {
	return keyPrefix + messageID
}

// Reserve attempts the atomic create-if-absent. The value is
// irrelevant; only key existence carries meaning.
func (r *RedisStore) Reserve(ctx context.Context, messageID string) Outcome {
	ok, err := r.client.SetNX(ctx, r.dedupKey(messageID), "1", r.ttl).Result()
	if err != nil {
		return Unavailable
	}
	if ok {
		return Created
	}
	return Exists
}

// Ping verifies the Redis connection is alive. Used by readiness.
func (r *RedisStore) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Close closes the Redis connection.
func (r *RedisStore) Close() error {
	return r.client.Close()
}
