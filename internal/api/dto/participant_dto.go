package dto

import "time"

// CreateParticipantRequest payload for registering a participant.
type CreateParticipantRequest struct {
	Identifier  string `json:"identifier"`
	DisplayName string `json:"display_name"`
}

// CreateMatchRequest payload for creating a symmetric match.
type CreateMatchRequest struct {
	IdentifierA string `json:"identifier_a"`
	IdentifierB string `json:"identifier_b"`
}

// RemoveMatchRequest payload for removing a symmetric match; either side of
// the pair may be named.
type RemoveMatchRequest struct {
	Identifier string `json:"identifier"`
}

// ParticipantSummary is the admin listing shape.
type ParticipantSummary struct {
	ID                string    `json:"id"`
	Identifier        string    `json:"identifier"`
	DisplayName       string    `json:"display_name"`
	MatchedIdentifier *string   `json:"matched_identifier"`
	CreatedAt         time.Time `json:"created_at"`
}
