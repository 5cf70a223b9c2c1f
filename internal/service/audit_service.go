package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/match-reveal-service/internal/events"
)

// AuditService records admin actions from domain events into the log.
type AuditService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewAuditService creates the service.
func NewAuditService(dispatcher events.Dispatcher, logger *zap.Logger) *AuditService {
	return &AuditService{dispatcher: dispatcher, logger: logger}
}

// RegisterHandlers subscribes to events.
func (a *AuditService) RegisterHandlers() {
	if a.dispatcher == nil {
		return
	}
	for _, eventType := range []events.EventType{
		events.EventParticipantCreated,
		events.EventParticipantDeleted,
		events.EventMatchCreated,
		events.EventMatchRemoved,
		events.EventRecordCreated,
		events.EventRecordDeleted,
		events.EventRecordsImported,
	} {
		a.dispatcher.Subscribe(eventType, a.handleEvent)
	}
}

func (a *AuditService) handleEvent(ctx context.Context, event events.Event) error {
	a.logger.Info("admin action",
		zap.String("event_id", event.ID),
		zap.String("event_type", string(event.Type)),
		zap.Time("timestamp", event.Timestamp),
		zap.Any("payload", event.Payload),
	)
	return nil
}
