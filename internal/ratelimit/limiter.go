// Package ratelimit implements a sliding-window counter over a persisted
// journal of attempt timestamps. The journal mirrors the original caller-side
// counter (a serialized timestamp list under a fixed key), so the limiter can
// run against client-local state or be mounted server-side without changing
// the call contract.
package ratelimit

import (
	"context"
	"time"
)

// Journal persists the ordered sequence of attempt timestamps for a key.
type Journal interface {
	Load(ctx context.Context, key string) ([]time.Time, error)
	Save(ctx context.Context, key string, attempts []time.Time) error
}

// Decision reports the outcome of an evaluation.
type Decision struct {
	Blocked bool
	// RetryAfter is how long the caller stays blocked; zero when not blocked.
	// It strictly decreases as the window slides, reaching zero exactly when
	// the oldest counted attempt ages out.
	RetryAfter time.Duration
	Used       int
	Limit      int
}

// Limiter evaluates and records attempts against a sliding window.
type Limiter struct {
	journal     Journal
	clock       Clock
	maxRequests int
	window      time.Duration
}

// Option customizes a Limiter.
type Option func(*Limiter)

// WithClock injects a clock, used by tests.
func WithClock(clock Clock) Option {
	return func(l *Limiter) {
		l.clock = clock
	}
}

// New constructs a limiter. maxRequests and window fall back to the shipped
// defaults (5 attempts per 30 minutes) when non-positive.
func New(journal Journal, maxRequests int, window time.Duration, opts ...Option) *Limiter {
	if maxRequests <= 0 {
		maxRequests = 5
	}
	if window <= 0 {
		window = 30 * time.Minute
	}
	l := &Limiter{
		journal:     journal,
		clock:       SystemClock(),
		maxRequests: maxRequests,
		window:      window,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Evaluate prunes expired attempts and reports whether the caller is blocked.
// It never consumes quota; eligibility returns on its own as the oldest
// attempt ages out, no reset action required.
func (l *Limiter) Evaluate(ctx context.Context, key string) (Decision, error) {
	now := l.clock.Now()
	attempts, err := l.journal.Load(ctx, key)
	if err != nil {
		return Decision{}, err
	}

	pruned := prune(attempts, now.Add(-l.window))
	if len(pruned) != len(attempts) {
		if err := l.journal.Save(ctx, key, pruned); err != nil {
			return Decision{}, err
		}
	}

	decision := Decision{Used: len(pruned), Limit: l.maxRequests}
	if len(pruned) >= l.maxRequests {
		remaining := l.window - now.Sub(pruned[0])
		if remaining < 0 {
			remaining = 0
		}
		decision.Blocked = true
		decision.RetryAfter = remaining
	}
	return decision, nil
}

// Record appends the current attempt. Call it only after a completed lookup
// response; validation failures must not consume quota.
func (l *Limiter) Record(ctx context.Context, key string) error {
	now := l.clock.Now()
	attempts, err := l.journal.Load(ctx, key)
	if err != nil {
		return err
	}
	attempts = append(prune(attempts, now.Add(-l.window)), now)
	return l.journal.Save(ctx, key, attempts)
}

// prune drops timestamps at or before the cutoff, preserving order.
func prune(attempts []time.Time, cutoff time.Time) []time.Time {
	kept := make([]time.Time, 0, len(attempts))
	for _, t := range attempts {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}
	return kept
}
