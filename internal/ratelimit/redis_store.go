package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const counterPrefix = "rl:"

// RedisStore shares one rate window across instances. Same dependency
// class as the dedup store; configured via RATE_STORE=redis.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(redisURL string) (*RedisStore, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}
	return &RedisStore{client: redis.NewClient(opt)}, nil
}

// incrScriptSrc counts and arms the window expiry in one atomic step.
// A separate INCR-then-EXPIRE pair would leave the key without a TTL if
// the process died between the two, rate-limiting that caller forever.
const incrScriptSrc = `local count = redis.call("INCR", KEYS[1])
if count == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return count`

var incrScript = redis.NewScript(incrScriptSrc)

// Incr increments the shared counter, arming the window expiry on the
// first hit. The script runs atomically on the server, so concurrent
// callers across instances observe a single consistent count.
func (s *RedisStore) Incr(ctx context.Context, key string, window time.Duration) (int64, error) {
	count, err := incrScript.Run(ctx, s.client, []string{counterPrefix + key}, window.Milliseconds()).Int64()
	if err != nil {
		return 0, fmt.Errorf("failed to increment rate counter: %w", err)
	}
	return count, nil
}

// Close closes the Redis connection.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
