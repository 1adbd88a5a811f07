// internal/cache/cache.go
package cache

import (
	"context"
	"sync"
	"time"

	"github.com/exportbridge/exportbridge-backend/internal/apperrors"
)

// Clock is injected so TTL behavior is testable without real sleeps.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock is the production clock.
var SystemClock Clock = systemClock{}

// FetchFunc retrieves a fresh payload from the upstream source.
type FetchFunc[T any] func(ctx context.Context) (T, error)

type entry[T any] struct {
	payload   T
	fetchedAt time.Time
}

// FeedCache memoizes upstream feed payloads for the lifetime of the
// process. One instance per integration, each with its own TTL. On
// upstream failure a (possibly expired) entry is served stale rather than
// propagating the error; ErrUpstreamUnavailable is raised only when no
// entry exists at all.
type FeedCache[T any] struct {
	mtx     sync.Mutex
	ttl     time.Duration
	clock   Clock
	entries map[string]entry[T]
}

func New[T any](ttl time.Duration, clock Clock) *FeedCache[T] {
	if clock == nil {
		clock = SystemClock
	}
	return &FeedCache[T]{
		ttl:     ttl,
		clock:   clock,
		entries: make(map[string]entry[T]),
	}
}

// Get returns the cached payload for key while it is fresh, otherwise
// invokes fetch. The second return value reports whether the payload was
// served stale after an upstream failure.
func (c *FeedCache[T]) Get(ctx context.Context, key string, fetch FetchFunc[T]) (T, bool, error) {
	c.mtx.Lock()
	e, exists := c.entries[key]
	fresh := exists && c.clock.Now().Sub(e.fetchedAt) < c.ttl
	c.mtx.Unlock()

	if fresh {
		return e.payload, false, nil
	}

	// The lock is not held across the upstream call; a concurrent miss may
	// fetch twice and the later write wins.
	payload, err := fetch(ctx)
	if err != nil {
		if exists {
			return e.payload, true, nil
		}
		var zero T
		return zero, false, apperrors.ErrUpstreamUnavailable
	}

	c.mtx.Lock()
	c.entries[key] = entry[T]{payload: payload, fetchedAt: c.clock.Now()}
	c.mtx.Unlock()

	return payload, false, nil
}

// Clear drops the named entries, or the whole table when called with no
// keys.
func (c *FeedCache[T]) Clear(keys ...string) {
	c.mtx.Lock()
	defer c.mtx.Unlock()

	if len(keys) == 0 {
		c.entries = make(map[string]entry[T])
		return
	}
	for _, key := range keys {
		delete(c.entries, key)
	}
}

// Len reports the number of cached entries.
func (c *FeedCache[T]) Len() int {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	return len(c.entries)
}
