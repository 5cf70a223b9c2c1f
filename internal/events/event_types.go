package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventParticipantCreated EventType = "participant_created"
	EventParticipantDeleted EventType = "participant_deleted"
	EventMatchCreated       EventType = "match_created"
	EventMatchRemoved       EventType = "match_removed"
	EventRecordCreated      EventType = "record_created"
	EventRecordDeleted      EventType = "record_deleted"
	EventRecordsImported    EventType = "records_imported"
)

// Event represents an admin action emitted by services for the audit trail.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// ParticipantPayload payload.
type ParticipantPayload struct {
	Identifier  string `json:"identifier"`
	DisplayName string `json:"display_name"`
}

// MatchPayload payload.
type MatchPayload struct {
	IdentifierA string `json:"identifier_a"`
	IdentifierB string `json:"identifier_b,omitempty"`
}

// RecordPayload payload.
type RecordPayload struct {
	SourceIdentifier string `json:"source_identifier"`
	TargetIdentifier string `json:"target_identifier,omitempty"`
}

// ImportPayload payload.
type ImportPayload struct {
	Inserted int `json:"inserted"`
	Rejected int `json:"rejected"`
}
