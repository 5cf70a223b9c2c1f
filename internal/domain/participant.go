package domain

import "time"

// Participant is the domain model for event participants. Identifier is the
// public 4-digit code, immutable after creation and unique across the event.
// MatchedIdentifier is nil while unmatched; when set, the referenced
// participant's MatchedIdentifier points back (symmetric pairing).
type Participant struct {
	ID                string
	Identifier        string
	DisplayName       string
	MatchedIdentifier *string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Matched reports whether the participant currently has a partner.
func (p *Participant) Matched() bool {
	return p.MatchedIdentifier != nil && *p.MatchedIdentifier != ""
}
