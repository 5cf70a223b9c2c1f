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

// InMemoryParticipants implements ParticipantRepository with a mutex-guarded
// map, keyed by identifier. Used when no Postgres DSN is configured and by
// service tests. One lock covers every pairing mutation, which gives the
// two-record atomicity for free.
type InMemoryParticipants struct {
	mu      sync.RWMutex
	byIdent map[string]*domain.Participant
}

// NewInMemoryParticipants creates an empty store.
func NewInMemoryParticipants() *InMemoryParticipants {
	return &InMemoryParticipants{byIdent: make(map[string]*domain.Participant)}
}

func (s *InMemoryParticipants) Create(ctx context.Context, p *domain.Participant) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byIdent[p.Identifier]; exists {
		return ErrDuplicate
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now

	stored := *p
	s.byIdent[p.Identifier] = &stored
	return nil
}

func (s *InMemoryParticipants) GetByID(ctx context.Context, id string) (*domain.Participant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, p := range s.byIdent {
		if p.ID == id {
			return clone(p), nil
		}
	}
	return nil, ErrNotFound
}

func (s *InMemoryParticipants) GetByIdentifier(ctx context.Context, identifier string) (*domain.Participant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.byIdent[identifier]
	if !ok {
		return nil, ErrNotFound
	}
	return clone(p), nil
}

func (s *InMemoryParticipants) List(ctx context.Context, search string) ([]domain.Participant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	term := strings.ToLower(search)
	participants := []domain.Participant{}
	for _, p := range s.byIdent {
		if term != "" &&
			!strings.Contains(strings.ToLower(p.Identifier), term) &&
			!strings.Contains(strings.ToLower(p.DisplayName), term) {
			continue
		}
		participants = append(participants, *clone(p))
	}
	sort.Slice(participants, func(i, j int) bool {
		return participants[i].CreatedAt.After(participants[j].CreatedAt)
	})
	return participants, nil
}

func (s *InMemoryParticipants) UpdateDisplayName(ctx context.Context, identifier, displayName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.byIdent[identifier]
	if !ok {
		return ErrNotFound
	}
	p.DisplayName = displayName
	p.UpdatedAt = time.Now()
	return nil
}

func (s *InMemoryParticipants) Pair(ctx context.Context, idA, idB string) error {
	if idA == idB {
		return ErrSelfMatch
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	a, okA := s.byIdent[idA]
	b, okB := s.byIdent[idB]
	if !okA || !okB {
		return ErrNotFound
	}
	if a.Matched() || b.Matched() {
		return ErrAlreadyMatched
	}

	now := time.Now()
	matchedA, matchedB := idB, idA
	a.MatchedIdentifier = &matchedA
	b.MatchedIdentifier = &matchedB
	a.UpdatedAt = now
	b.UpdatedAt = now
	return nil
}

func (s *InMemoryParticipants) Unpair(ctx context.Context, identifier string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.byIdent[identifier]
	if !ok {
		return ErrNotFound
	}
	if !p.Matched() {
		return ErrNotMatched
	}

	partnerID := *p.MatchedIdentifier
	p.MatchedIdentifier = nil
	p.UpdatedAt = time.Now()

	if partner, ok := s.byIdent[partnerID]; ok && partner.Matched() && *partner.MatchedIdentifier == identifier {
		partner.MatchedIdentifier = nil
		partner.UpdatedAt = time.Now()
	}
	return nil
}

func (s *InMemoryParticipants) Delete(ctx context.Context, id string) (*domain.Participant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for ident, p := range s.byIdent {
		if p.ID != id {
			continue
		}
		if p.Matched() {
			if partner, ok := s.byIdent[*p.MatchedIdentifier]; ok && partner.Matched() && *partner.MatchedIdentifier == ident {
				partner.MatchedIdentifier = nil
				partner.UpdatedAt = time.Now()
			}
		}
		delete(s.byIdent, ident)
		return clone(p), nil
	}
	return nil, ErrNotFound
}

func clone(p *domain.Participant) *domain.Participant {
	copied := *p
	if p.MatchedIdentifier != nil {
		matched := *p.MatchedIdentifier
		copied.MatchedIdentifier = &matched
	}
	return &copied
}
