package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testMax    = 5
	testWindow = 30 * time.Minute
	testKey    = "caller"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) advance(d time.Duration) { c.now = c.now.Add(d) }

func newTestLimiter(t *testing.T) (*Limiter, *fakeClock) {
	t.Helper()
	clock := &fakeClock{now: time.Date(2026, 2, 14, 12, 0, 0, 0, time.UTC)}
	return New(NewInMemoryJournal(), testMax, testWindow, WithClock(clock)), clock
}

func TestEvaluateBelowLimit(t *testing.T) {
	limiter, clock := newTestLimiter(t)
	ctx := context.Background()

	for i := 0; i < testMax-1; i++ {
		require.NoError(t, limiter.Record(ctx, testKey))
		clock.advance(time.Second)
	}

	decision, err := limiter.Evaluate(ctx, testKey)
	require.NoError(t, err)
	assert.False(t, decision.Blocked)
	assert.Equal(t, testMax-1, decision.Used)
	assert.Zero(t, decision.RetryAfter)
}

func TestEvaluateBlocksAtLimit(t *testing.T) {
	limiter, clock := newTestLimiter(t)
	ctx := context.Background()

	for i := 0; i < testMax; i++ {
		require.NoError(t, limiter.Record(ctx, testKey))
		clock.advance(time.Second)
	}
	clock.advance(time.Millisecond)

	decision, err := limiter.Evaluate(ctx, testKey)
	require.NoError(t, err)
	assert.True(t, decision.Blocked)
	assert.Equal(t, testMax, decision.Used)
	assert.Greater(t, decision.RetryAfter, time.Duration(0))
}

func TestRetryAfterShrinksAsWindowSlides(t *testing.T) {
	limiter, clock := newTestLimiter(t)
	ctx := context.Background()

	for i := 0; i < testMax; i++ {
		require.NoError(t, limiter.Record(ctx, testKey))
	}

	first, err := limiter.Evaluate(ctx, testKey)
	require.NoError(t, err)
	require.True(t, first.Blocked)
	assert.Equal(t, testWindow, first.RetryAfter)

	clock.advance(time.Second)
	second, err := limiter.Evaluate(ctx, testKey)
	require.NoError(t, err)
	require.True(t, second.Blocked)
	assert.Equal(t, first.RetryAfter-time.Second, second.RetryAfter)
}

func TestEvaluateDoesNotConsumeQuota(t *testing.T) {
	limiter, _ := newTestLimiter(t)
	ctx := context.Background()

	for i := 0; i < 100; i++ {
		decision, err := limiter.Evaluate(ctx, testKey)
		require.NoError(t, err)
		assert.False(t, decision.Blocked)
		assert.Zero(t, decision.Used)
	}
}

func TestOldestEntryExpires(t *testing.T) {
	limiter, clock := newTestLimiter(t)
	ctx := context.Background()
	start := clock.now

	for i := 0; i < testMax; i++ {
		require.NoError(t, limiter.Record(ctx, testKey))
		clock.advance(time.Second)
	}

	decision, err := limiter.Evaluate(ctx, testKey)
	require.NoError(t, err)
	require.True(t, decision.Blocked)

	// One past the oldest attempt's expiry: only the first entry ages out,
	// which is enough to unblock.
	clock.now = start.Add(testWindow + time.Millisecond)
	decision, err = limiter.Evaluate(ctx, testKey)
	require.NoError(t, err)
	assert.False(t, decision.Blocked)
	assert.Equal(t, testMax-1, decision.Used)
}

func TestEligibilityReturnsWithoutReset(t *testing.T) {
	limiter, clock := newTestLimiter(t)
	ctx := context.Background()

	for i := 0; i < testMax; i++ {
		require.NoError(t, limiter.Record(ctx, testKey))
	}

	clock.advance(testWindow + time.Minute)
	decision, err := limiter.Evaluate(ctx, testKey)
	require.NoError(t, err)
	assert.False(t, decision.Blocked)
	assert.Zero(t, decision.Used)

	// And the journal was pruned, so a fresh burst is available.
	require.NoError(t, limiter.Record(ctx, testKey))
	decision, err = limiter.Evaluate(ctx, testKey)
	require.NoError(t, err)
	assert.False(t, decision.Blocked)
	assert.Equal(t, 1, decision.Used)
}

func TestKeysAreIndependent(t *testing.T) {
	limiter, _ := newTestLimiter(t)
	ctx := context.Background()

	for i := 0; i < testMax; i++ {
		require.NoError(t, limiter.Record(ctx, "first"))
	}

	blocked, err := limiter.Evaluate(ctx, "first")
	require.NoError(t, err)
	assert.True(t, blocked.Blocked)

	open, err := limiter.Evaluate(ctx, "second")
	require.NoError(t, err)
	assert.False(t, open.Blocked)
}
