package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newTestLimiter(rule Rule) (*MemoryLimiter, *fakeClock) {
	clock := &fakeClock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
	l := NewMemoryLimiter(rule)
	l.now = clock.Now
	return l, clock
}

func TestMemoryLimiterAllowsUpToLimit(t *testing.T) {
	l, _ := newTestLimiter(DefaultRule)
	ctx := context.Background()

	for i := 0; i < DefaultRule.Limit; i++ {
		allowed, err := l.Allow(ctx, "10.0.0.1")
		require.NoError(t, err)
		require.True(t, allowed, "request %d should pass", i+1)
	}

	allowed, err := l.Allow(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.False(t, allowed)

	remaining, err := l.Remaining(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, 0, remaining)
}

func TestMemoryLimiterKeysAreIndependent(t *testing.T) {
	l, _ := newTestLimiter(Rule{Limit: 1, Window: time.Minute})
	ctx := context.Background()

	allowed, _ := l.Allow(ctx, "10.0.0.1")
	assert.True(t, allowed)
	allowed, _ = l.Allow(ctx, "10.0.0.1")
	assert.False(t, allowed)

	allowed, _ = l.Allow(ctx, "10.0.0.2")
	assert.True(t, allowed)
}

func TestMemoryLimiterRefills(t *testing.T) {
	l, clock := newTestLimiter(Rule{Limit: 2, Window: time.Minute})
	ctx := context.Background()

	l.Allow(ctx, "ip")
	l.Allow(ctx, "ip")
	allowed, _ := l.Allow(ctx, "ip")
	require.False(t, allowed)

	// One token comes back every window/limit.
	clock.Advance(30 * time.Second)
	allowed, _ = l.Allow(ctx, "ip")
	assert.True(t, allowed)
	allowed, _ = l.Allow(ctx, "ip")
	assert.False(t, allowed)
}

func TestMemoryLimiterRemainingForUnknownKey(t *testing.T) {
	l, _ := newTestLimiter(DefaultRule)

	remaining, err := l.Remaining(context.Background(), "new")
	require.NoError(t, err)
	assert.Equal(t, DefaultRule.Limit, remaining)
}

func TestMemoryLimiterCleanup(t *testing.T) {
	l, clock := newTestLimiter(Rule{Limit: 5, Window: time.Minute})
	ctx := context.Background()

	l.Allow(ctx, "old")
	clock.Advance(45 * time.Second)
	l.Allow(ctx, "recent")
	clock.Advance(30 * time.Second)

	l.Cleanup()

	assert.Equal(t, 1, l.size())
	l.mu.Lock()
	_, ok := l.visitors["recent"]
	l.mu.Unlock()
	assert.True(t, ok)
}
