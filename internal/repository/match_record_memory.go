package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/match-reveal-service/internal/domain"
)

// InMemoryMatchRecords implements MatchRecordRepository with a mutex-guarded
// map keyed by source identifier.
type InMemoryMatchRecords struct {
	mu       sync.RWMutex
	bySource map[string]*domain.MatchRecord
}

// NewInMemoryMatchRecords creates an empty store.
func NewInMemoryMatchRecords() *InMemoryMatchRecords {
	return &InMemoryMatchRecords{bySource: make(map[string]*domain.MatchRecord)}
}

func (s *InMemoryMatchRecords) Create(ctx context.Context, rec *domain.MatchRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.bySource[rec.SourceIdentifier]; exists {
		return ErrDuplicate
	}
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	rec.CreatedAt = time.Now()

	stored := *rec
	s.bySource[rec.SourceIdentifier] = &stored
	return nil
}

func (s *InMemoryMatchRecords) GetBySource(ctx context.Context, sourceIdentifier string) (*domain.MatchRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.bySource[sourceIdentifier]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *rec
	return &copied, nil
}

func (s *InMemoryMatchRecords) List(ctx context.Context, search string) ([]domain.MatchRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	term := strings.ToLower(search)
	records := []domain.MatchRecord{}
	for _, rec := range s.bySource {
		if term != "" &&
			!strings.Contains(strings.ToLower(rec.SourceIdentifier), term) &&
			!strings.Contains(strings.ToLower(rec.TargetIdentifier), term) &&
			!strings.Contains(strings.ToLower(rec.TargetDisplayName), term) {
			continue
		}
		records = append(records, *rec)
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].CreatedAt.After(records[j].CreatedAt)
	})
	return records, nil
}

func (s *InMemoryMatchRecords) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for source, rec := range s.bySource {
		if rec.ID == id {
			delete(s.bySource, source)
			return nil
		}
	}
	return ErrNotFound
}
