package domain

import "time"

// MatchRecord is a one-directional precomputed assignment from a source
// identifier to a target identity. Unlike Participant pairing it carries no
// symmetry invariant; the target need not exist as a Participant. Used for
// bulk-loaded events and direct lookup by source identifier.
type MatchRecord struct {
	ID                string
	SourceIdentifier  string
	TargetIdentifier  string
	TargetDisplayName string
	CreatedAt         time.Time
}
