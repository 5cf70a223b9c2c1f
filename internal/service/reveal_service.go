package service

import (
	"context"
	"errors"

	"github.com/spec-kit/match-reveal-service/internal/identifier"
	"github.com/spec-kit/match-reveal-service/internal/repository"
	apperrors "github.com/spec-kit/match-reveal-service/pkg/util/errorutil"
)

// RevealService answers the public match lookup. It never mutates state.
type RevealService struct {
	participants repository.ParticipantRepository
}

// RevealResult is the public payload for a successful reveal.
type RevealResult struct {
	MatchedName       string `json:"matchedName"`
	MatchedIdentifier string `json:"matchedIdentifier"`
}

// NewRevealService constructs the service.
func NewRevealService(participants repository.ParticipantRepository) *RevealService {
	return &RevealService{participants: participants}
}

// Reveal resolves a participant's partner display name and identifier.
// The wrong-identifier and no-match-yet cases are both dead ends for the
// caller and differ only in message.
func (s *RevealService) Reveal(ctx context.Context, rawIdentifier string) (*RevealResult, error) {
	ident, ok := identifier.Normalize(rawIdentifier)
	if !ok {
		return nil, apperrors.NewInvalidInput("identifier must be exactly 4 digits", nil)
	}

	participant, err := s.participants.GetByIdentifier(ctx, ident)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFound("no participant found with this identifier", nil)
		}
		return nil, err
	}
	if !participant.Matched() {
		return nil, apperrors.NewNotFound("you don't have a match yet", nil)
	}

	partner, err := s.participants.GetByIdentifier(ctx, *participant.MatchedIdentifier)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// Dangling reference; should not happen while two-record updates
			// stay atomic, but never crash on it.
			return nil, apperrors.NewInconsistent("match not found", map[string]any{
				"identifier": ident,
			})
		}
		return nil, err
	}

	return &RevealResult{
		MatchedName:       partner.DisplayName,
		MatchedIdentifier: partner.Identifier,
	}, nil
}
