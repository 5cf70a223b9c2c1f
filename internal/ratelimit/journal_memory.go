package ratelimit

import (
	"context"
	"sync"
	"time"
)

// InMemoryJournal keeps attempt journals in a mutex-guarded map. Suitable for
// single-process use and tests.
type InMemoryJournal struct {
	mu       sync.RWMutex
	attempts map[string][]time.Time
}

// NewInMemoryJournal creates an empty journal.
func NewInMemoryJournal() *InMemoryJournal {
	return &InMemoryJournal{attempts: make(map[string][]time.Time)}
}

func (j *InMemoryJournal) Load(ctx context.Context, key string) ([]time.Time, error) {
	j.mu.RLock()
	defer j.mu.RUnlock()

	stored := j.attempts[key]
	copied := make([]time.Time, len(stored))
	copy(copied, stored)
	return copied, nil
}

func (j *InMemoryJournal) Save(ctx context.Context, key string, attempts []time.Time) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	if len(attempts) == 0 {
		delete(j.attempts, key)
		return nil
	}
	stored := make([]time.Time, len(attempts))
	copy(stored, attempts)
	j.attempts[key] = stored
	return nil
}
