package dto

import "time"

// CreateMatchRecordRequest payload for a single assignment record; also the
// row shape of a batch import.
type CreateMatchRecordRequest struct {
	SourceIdentifier  string `json:"source_identifier"`
	TargetIdentifier  string `json:"target_identifier"`
	TargetDisplayName string `json:"target_display_name"`
}

// ImportMatchRecordsRequest payload for the batch import endpoint.
type ImportMatchRecordsRequest struct {
	Records []CreateMatchRecordRequest `json:"records"`
}

// MatchRecordSummary is the admin listing shape.
type MatchRecordSummary struct {
	ID                string    `json:"id"`
	SourceIdentifier  string    `json:"source_identifier"`
	TargetIdentifier  string    `json:"target_identifier"`
	TargetDisplayName string    `json:"target_display_name"`
	CreatedAt         time.Time `json:"created_at"`
}
