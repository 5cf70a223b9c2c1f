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

// AssignmentService manages the one-directional match records used for
// bulk-loaded events.
type AssignmentService struct {
	records    repository.MatchRecordRepository
	dispatcher events.Dispatcher
}

// AssignmentDependencies bundles collaborators for the assignment service.
type AssignmentDependencies struct {
	RecordRepo repository.MatchRecordRepository
	Dispatcher events.Dispatcher
}

// RecordInput is one row of a single create or batch import.
type RecordInput struct {
	SourceIdentifier  string
	TargetIdentifier  string
	TargetDisplayName string
}

// ImportError describes why one batch row was rejected.
type ImportError struct {
	SourceIdentifier string `json:"source_identifier"`
	Reason           string `json:"reason"`
}

// ImportResult summarizes a batch import. The batch as a whole never fails
// on a bad row; each record is accepted or rejected independently.
type ImportResult struct {
	Inserted     int           `json:"inserted"`
	Errors       int           `json:"errors"`
	ErrorDetails []ImportError `json:"error_details"`
}

// NewAssignmentService constructs the service.
func NewAssignmentService(deps AssignmentDependencies) *AssignmentService {
	return &AssignmentService{
		records:    deps.RecordRepo,
		dispatcher: deps.Dispatcher,
	}
}

// CreateRecord stores a single assignment record.
func (s *AssignmentService) CreateRecord(ctx context.Context, input RecordInput) (*domain.MatchRecord, error) {
	rec, reason := buildRecord(input)
	if reason != "" {
		return nil, apperrors.NewInvalidInput(reason, nil)
	}

	if err := s.records.Create(ctx, rec); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperrors.NewConflict("source identifier already has a record", map[string]any{
				"source_identifier": rec.SourceIdentifier,
			})
		}
		return nil, err
	}

	s.publishEvent(ctx, events.Event{
		Type: events.EventRecordCreated,
		Payload: events.RecordPayload{
			SourceIdentifier: rec.SourceIdentifier,
			TargetIdentifier: rec.TargetIdentifier,
		},
	})
	return rec, nil
}

// Lookup resolves a source identifier to its assigned target.
func (s *AssignmentService) Lookup(ctx context.Context, rawSource string) (*domain.MatchRecord, error) {
	source, ok := identifier.Normalize(rawSource)
	if !ok {
		return nil, apperrors.NewInvalidInput("identifier must be exactly 4 digits", nil)
	}
	rec, err := s.records.GetBySource(ctx, source)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFound("no record found for this identifier", nil)
		}
		return nil, err
	}
	return rec, nil
}

// ListRecords returns records matching an optional search term, most recent
// first.
func (s *AssignmentService) ListRecords(ctx context.Context, search string) ([]domain.MatchRecord, error) {
	return s.records.List(ctx, strings.TrimSpace(search))
}

// DeleteRecord removes a record by record ID.
func (s *AssignmentService) DeleteRecord(ctx context.Context, recordID string) error {
	if strings.TrimSpace(recordID) == "" {
		return apperrors.NewInvalidInput("record id is required", nil)
	}
	if err := s.records.Delete(ctx, strings.TrimSpace(recordID)); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NewNotFound("record not found", nil)
		}
		return err
	}
	s.publishEvent(ctx, events.Event{Type: events.EventRecordDeleted})
	return nil
}

// ImportBatch inserts records one by one, accumulating per-row failures
// instead of aborting. Duplicate source identifiers are rejected whether the
// clash is with stored records or earlier rows in the same batch.
func (s *AssignmentService) ImportBatch(ctx context.Context, inputs []RecordInput) (*ImportResult, error) {
	if len(inputs) == 0 {
		return nil, apperrors.NewInvalidInput("expected a non-empty array of records", nil)
	}

	result := &ImportResult{ErrorDetails: []ImportError{}}
	for _, input := range inputs {
		rec, reason := buildRecord(input)
		if reason != "" {
			result.Errors++
			result.ErrorDetails = append(result.ErrorDetails, ImportError{
				SourceIdentifier: strings.TrimSpace(input.SourceIdentifier),
				Reason:           reason,
			})
			continue
		}

		if err := s.records.Create(ctx, rec); err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				result.Errors++
				result.ErrorDetails = append(result.ErrorDetails, ImportError{
					SourceIdentifier: rec.SourceIdentifier,
					Reason:           "already exists",
				})
				continue
			}
			// A store failure is a fault, not a rejection; surface it.
			return nil, err
		}
		result.Inserted++
	}

	s.publishEvent(ctx, events.Event{
		Type:    events.EventRecordsImported,
		Payload: events.ImportPayload{Inserted: result.Inserted, Rejected: result.Errors},
	})
	return result, nil
}

// buildRecord validates and normalizes one input row. The returned reason is
// empty when the row is acceptable.
func buildRecord(input RecordInput) (*domain.MatchRecord, string) {
	sourceRaw := strings.TrimSpace(input.SourceIdentifier)
	targetRaw := strings.TrimSpace(input.TargetIdentifier)
	name := strings.TrimSpace(input.TargetDisplayName)

	if sourceRaw == "" || targetRaw == "" || name == "" {
		return nil, "missing required fields"
	}

	source, okSource := identifier.Normalize(sourceRaw)
	target, okTarget := identifier.Normalize(targetRaw)
	if !okSource || !okTarget {
		return nil, "identifiers must be exactly 4 digits"
	}

	return &domain.MatchRecord{
		SourceIdentifier:  source,
		TargetIdentifier:  target,
		TargetDisplayName: name,
	}, ""
}

func (s *AssignmentService) publishEvent(ctx context.Context, event events.Event) {
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
