// Package ratelimit bounds intake volume per caller identity over a
// fixed window.
package ratelimit

import (
	"context"
	"sync"
	"time"
)

// CounterStore increments the request count for a caller key within the
// current window and returns the new count. Implementations are safe
// for concurrent use.
type CounterStore interface {
	Incr(ctx context.Context, key string, window time.Duration) (int64, error)
}

type windowCounter struct {
	start time.Time
	count int64
}

// MemoryStore is a single-process fixed-window counter. It is only
// correct when one instance serves all traffic; multi-instance
// deployments must use RedisStore so the window is shared.
type MemoryStore struct {
	mu      sync.Mutex
	now     func() time.Time
	windows map[string]*windowCounter
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		now:     time.Now,
		windows: make(map[string]*windowCounter),
	}
}

// Incr bumps the counter for key, resetting it when the window has
// elapsed since the window start.
func (s *MemoryStore) Incr(_ context.Context, key string, window time.Duration) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	w, ok := s.windows[key]
	if !ok || now.Sub(w.start) >= window {
		w = &windowCounter{start: now}
		s.windows[key] = w
	}
	w.count++
	return w.count, nil
}
