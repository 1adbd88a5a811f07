// internal/cache/cache_test.go
package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/exportbridge/exportbridge-backend/internal/apperrors"
)

type fakeClock struct {
	now time.Time
}

func (f *fakeClock) Now() time.Time { return f.now }

func (f *fakeClock) Advance(d time.Duration) { f.now = f.now.Add(d) }

func TestFreshHitIssuesOneUpstreamCall(t *testing.T) {
	clock := &fakeClock{now: time.Now()}
	c := New[string](time.Minute, clock)

	calls := 0
	fetch := func(ctx context.Context) (string, error) {
		calls++
		return "payload", nil
	}

	got, stale, err := c.Get(context.Background(), "k", fetch)
	require.NoError(t, err)
	assert.Equal(t, "payload", got)
	assert.False(t, stale)

	// Second call within the TTL never reaches the upstream.
	got, stale, err = c.Get(context.Background(), "k", fetch)
	require.NoError(t, err)
	assert.Equal(t, "payload", got)
	assert.False(t, stale)
	assert.Equal(t, 1, calls)
}

func TestExpiryTriggersRefetch(t *testing.T) {
	clock := &fakeClock{now: time.Now()}
	c := New[int](time.Minute, clock)

	value := 1
	fetch := func(ctx context.Context) (int, error) {
		return value, nil
	}

	got, _, err := c.Get(context.Background(), "k", fetch)
	require.NoError(t, err)
	assert.Equal(t, 1, got)

	value = 2
	clock.Advance(2 * time.Minute)

	got, stale, err := c.Get(context.Background(), "k", fetch)
	require.NoError(t, err)
	assert.Equal(t, 2, got)
	assert.False(t, stale)
}

func TestStaleServeOnUpstreamFailure(t *testing.T) {
	clock := &fakeClock{now: time.Now()}
	c := New[string](time.Minute, clock)

	_, _, err := c.Get(context.Background(), "k", func(ctx context.Context) (string, error) {
		return "original", nil
	})
	require.NoError(t, err)

	clock.Advance(2 * time.Minute)

	got, stale, err := c.Get(context.Background(), "k", func(ctx context.Context) (string, error) {
		return "", errors.New("upstream down")
	})
	require.NoError(t, err)
	assert.Equal(t, "original", got)
	assert.True(t, stale)
}

func TestMissWithFailingUpstream(t *testing.T) {
	c := New[string](time.Minute, &fakeClock{now: time.Now()})

	_, _, err := c.Get(context.Background(), "missing", func(ctx context.Context) (string, error) {
		return "", errors.New("upstream down")
	})
	assert.ErrorIs(t, err, apperrors.ErrUpstreamUnavailable)
}

func TestClear(t *testing.T) {
	clock := &fakeClock{now: time.Now()}
	c := New[string](time.Minute, clock)

	fetch := func(ctx context.Context) (string, error) { return "v", nil }
	for _, key := range []string{"a", "b", "c"} {
		_, _, err := c.Get(context.Background(), key, fetch)
		require.NoError(t, err)
	}
	assert.Equal(t, 3, c.Len())

	c.Clear("a")
	assert.Equal(t, 2, c.Len())

	c.Clear()
	assert.Zero(t, c.Len())
}
