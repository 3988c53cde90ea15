package ledger

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when the requested suggestion does not exist.
var ErrNotFound = errors.New("suggestion not found")

// ErrStaleStatus is returned by UpdateStatus when the suggestion exists but
// its current status does not match the expected one — typically a sign of
// a concurrent reviewer action.
var ErrStaleStatus = errors.New("suggestion status changed concurrently")

// Outcome describes what a RecordSighting call did.
type Outcome int

const (
	// OutcomeSkipped means the sighting was ignored: the suggestion is
	// approved or dismissed and no longer counts occurrences.
	OutcomeSkipped Outcome = iota

	// OutcomeCreated means a new pending suggestion was created.
	OutcomeCreated

	// OutcomeMerged means an existing pending suggestion's occurrence count
	// was incremented.
	OutcomeMerged
)

// ListOptions narrows the result set of [Store.List]. The zero value
// matches all suggestions.
type ListOptions struct {
	// Status restricts results to suggestions in this state. Empty matches
	// all states.
	Status Status
}

// Store persists suggestions.
//
// All implementations must be safe for concurrent use. RecordSighting is
// atomic per corrected-phrase key: two concurrent sightings of the same new
// phrase must produce one record with an occurrence count of two, never two
// records.
type Store interface {
	// RecordSighting applies one sighting of a corrected phrase:
	//
	//   - no suggestion for the phrase (case-insensitive) → create a
	//     pending one with OccurrenceCount 1 ([OutcomeCreated]);
	//   - pending suggestion → increment OccurrenceCount and refresh
	//     DateLastSeen ([OutcomeMerged]);
	//   - approved or dismissed suggestion → no change ([OutcomeSkipped]).
	//
	// The returned suggestion reflects the stored state after the call.
	RecordSighting(ctx context.Context, correctedPhrase, rawPhrase string, seenAt time.Time) (Suggestion, Outcome, error)

	// Get retrieves a suggestion by ID. Returns [ErrNotFound] when absent.
	Get(ctx context.Context, id string) (Suggestion, error)

	// FindByPhrase retrieves a suggestion by corrected phrase, compared
	// case-insensitively. Returns [ErrNotFound] when absent.
	FindByPhrase(ctx context.Context, correctedPhrase string) (Suggestion, error)

	// List returns suggestions matching opts, ranked by occurrence count
	// (descending) and then by DateLastSeen (most recent first).
	List(ctx context.Context, opts ListOptions) ([]Suggestion, error)

	// UpdateStatus transitions a suggestion from one status to another.
	// The write is conditional on the current status equalling from;
	// returns [ErrStaleStatus] otherwise, [ErrNotFound] when absent.
	UpdateStatus(ctx context.Context, id string, from, to Status) error

	// Remove deletes a suggestion by ID. Returns [ErrNotFound] when absent.
	Remove(ctx context.Context, id string) error
}
