// Package ledger maintains the vocabulary-suggestion lifecycle.
//
// Every distinct corrected phrase mined from transcripts gets exactly one
// [Suggestion] record that accumulates evidence over time: the occurrence
// counter increments on every sighting while the suggestion is pending, and
// a human reviewer eventually approves it into the dictionary or dismisses
// it for good. Dismissal is permanent — later sightings of the same phrase
// never resurrect a dismissed suggestion.
//
// Status is a closed enumeration with exactly one legal transition source:
// pending → approved and pending → dismissed. There are no transitions out
// of approved or dismissed.
package ledger

import "time"

// Status is the lifecycle state of a [Suggestion].
type Status string

const (
	// StatusPending marks a suggestion awaiting human review. Only pending
	// suggestions accumulate occurrence counts.
	StatusPending Status = "pending"

	// StatusApproved marks a suggestion that was turned into a dictionary
	// word.
	StatusApproved Status = "approved"

	// StatusDismissed marks a suggestion rejected by the reviewer. Further
	// sightings of the phrase are ignored.
	StatusDismissed Status = "dismissed"
)

// IsValid reports whether s is a recognised status.
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusDismissed:
		return true
	}
	return false
}

// CanTransitionTo reports whether the transition s → to is legal.
func (s Status) CanTransitionTo(to Status) bool {
	return s == StatusPending && (to == StatusApproved || to == StatusDismissed)
}

// Suggestion is one persisted vocabulary suggestion.
type Suggestion struct {
	// ID uniquely identifies the suggestion. Generated on insert when empty.
	ID string

	// CorrectedPhrase is the enhanced-side phrase; unique across the ledger
	// case-insensitively.
	CorrectedPhrase string

	// RawPhrase is the raw-side phrase from the first sighting.
	RawPhrase string

	// OccurrenceCount is the number of times this phrase was mined while
	// the suggestion was pending. Always ≥ 1.
	OccurrenceCount int

	// DateLastSeen is the time of the most recent counted sighting.
	DateLastSeen time.Time

	// Status is the lifecycle state.
	Status Status
}
