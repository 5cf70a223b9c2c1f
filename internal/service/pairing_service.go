package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/match-reveal-service/internal/domain"
	"github.com/spec-kit/match-reveal-service/internal/events"
	"github.com/spec-kit/match-reveal-service/internal/identifier"
	"github.com/spec-kit/match-reveal-service/internal/repository"
	apperrors "github.com/spec-kit/match-reveal-service/pkg/util/errorutil"
)

// PairingService coordinates participant lifecycle and symmetric matching.
type PairingService struct {
	participants repository.ParticipantRepository
	dispatcher   events.Dispatcher
}

// PairingDependencies bundles collaborators for the pairing service.
type PairingDependencies struct {
	ParticipantRepo repository.ParticipantRepository
	Dispatcher      events.Dispatcher
}

// NewPairingService constructs the service.
func NewPairingService(deps PairingDependencies) *PairingService {
	return &PairingService{
		participants: deps.ParticipantRepo,
		dispatcher:   deps.Dispatcher,
	}
}

// CreateParticipant registers a new participant with a unique identifier.
func (s *PairingService) CreateParticipant(ctx context.Context, rawIdentifier, displayName string) (*domain.Participant, error) {
	ident, ok := identifier.Normalize(rawIdentifier)
	if !ok {
		return nil, apperrors.NewInvalidInput("identifier must be exactly 4 digits", nil)
	}
	name := strings.TrimSpace(displayName)
	if name == "" {
		return nil, apperrors.NewInvalidInput("display name is required", nil)
	}

	participant := &domain.Participant{
		Identifier:  ident,
		DisplayName: name,
	}
	if err := s.participants.Create(ctx, participant); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperrors.NewConflict("identifier already exists", map[string]any{"identifier": ident})
		}
		return nil, err
	}

	s.publishEvent(ctx, events.Event{
		Type: events.EventParticipantCreated,
		Payload: events.ParticipantPayload{
			Identifier:  participant.Identifier,
			DisplayName: participant.DisplayName,
		},
	})
	return participant, nil
}

// ListParticipants returns participants matching an optional search term,
// most recent first.
func (s *PairingService) ListParticipants(ctx context.Context, search string) ([]domain.Participant, error) {
	return s.participants.List(ctx, strings.TrimSpace(search))
}

// CreateMatch links two unmatched participants symmetrically. Both records
// are updated in one atomic scope so readers never observe a half-applied
// pairing.
func (s *PairingService) CreateMatch(ctx context.Context, rawIDA, rawIDB string) error {
	idA, okA := identifier.Normalize(rawIDA)
	idB, okB := identifier.Normalize(rawIDB)
	if !okA || !okB {
		return apperrors.NewInvalidInput("both identifiers must be exactly 4 digits", nil)
	}
	if idA == idB {
		return apperrors.NewConflict("cannot match a participant with themselves", nil)
	}

	if err := s.participants.Pair(ctx, idA, idB); err != nil {
		switch {
		case errors.Is(err, repository.ErrSelfMatch):
			return apperrors.NewConflict("cannot match a participant with themselves", nil)
		case errors.Is(err, repository.ErrNotFound):
			return apperrors.NewNotFound("one or both participants not found", nil)
		case errors.Is(err, repository.ErrAlreadyMatched):
			return apperrors.NewConflict("one or both participants are already matched", nil)
		default:
			return err
		}
	}

	s.publishEvent(ctx, events.Event{
		Type:    events.EventMatchCreated,
		Payload: events.MatchPayload{IdentifierA: idA, IdentifierB: idB},
	})
	return nil
}

// RemoveMatch clears a participant's match and the partner's back-reference.
// Calling it again for the same participant yields a not-matched conflict,
// which is the expected terminal outcome rather than a fault.
func (s *PairingService) RemoveMatch(ctx context.Context, rawID string) error {
	ident, ok := identifier.Normalize(rawID)
	if !ok {
		return apperrors.NewInvalidInput("identifier must be exactly 4 digits", nil)
	}

	if err := s.participants.Unpair(ctx, ident); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return apperrors.NewNotFound("participant not found", nil)
		case errors.Is(err, repository.ErrNotMatched):
			return apperrors.NewConflict("participant is not matched", nil)
		default:
			return err
		}
	}

	s.publishEvent(ctx, events.Event{
		Type:    events.EventMatchRemoved,
		Payload: events.MatchPayload{IdentifierA: ident},
	})
	return nil
}

// DeleteParticipant removes a participant by record ID and nulls the
// partner's match reference in the same atomic scope.
func (s *PairingService) DeleteParticipant(ctx context.Context, recordID string) error {
	if strings.TrimSpace(recordID) == "" {
		return apperrors.NewInvalidInput("record id is required", nil)
	}

	deleted, err := s.participants.Delete(ctx, strings.TrimSpace(recordID))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NewNotFound("participant not found", nil)
		}
		return err
	}

	s.publishEvent(ctx, events.Event{
		Type: events.EventParticipantDeleted,
		Payload: events.ParticipantPayload{
			Identifier:  deleted.Identifier,
			DisplayName: deleted.DisplayName,
		},
	})
	return nil
}

func (s *PairingService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}
