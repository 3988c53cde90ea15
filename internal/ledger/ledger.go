package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/quailtone/vocabmine/internal/dictionary"
	"github.com/quailtone/vocabmine/internal/mining"
)

// Ledger coordinates suggestion records with the vocabulary dictionary.
// It decides which mined candidates are worth recording and drives the
// review actions that move suggestions out of the pending state.
type Ledger struct {
	store Store
	dict  dictionary.Store
	now   func() time.Time
}

// Option configures a [Ledger].
type Option func(*Ledger)

// WithClock overrides the time source, used in tests.
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) {
		l.now = now
	}
}

// New creates a [Ledger] over the given suggestion store and dictionary.
func New(store Store, dict dictionary.Store, opts ...Option) *Ledger {
	l := &Ledger{
		store: store,
		dict:  dict,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// RecordStats summarises one [Ledger.Record] call.
type RecordStats struct {
	// Created is the number of new pending suggestions.
	Created int

	// Merged is the number of sightings folded into existing pending
	// suggestions.
	Merged int

	// Skipped is the number of candidates ignored, either because the
	// corrected phrase is already an active dictionary word or because its
	// suggestion was previously approved or dismissed.
	Skipped int
}

// Record applies a batch of mined candidates to the ledger. Candidates
// whose corrected phrase already exists as an active dictionary word are
// skipped — the vocabulary already knows them. Everything else is recorded
// as a sighting.
func (l *Ledger) Record(ctx context.Context, candidates []mining.Candidate) (RecordStats, error) {
	var stats RecordStats
	seenAt := l.now()

	for _, c := range candidates {
		known, err := l.knownWord(ctx, c.CorrectedPhrase)
		if err != nil {
			return stats, err
		}
		if known {
			stats.Skipped++
			slog.DebugContext(ctx, "candidate already in dictionary",
				"corrected_phrase", c.CorrectedPhrase)
			continue
		}

		_, outcome, err := l.store.RecordSighting(ctx, c.CorrectedPhrase, c.RawPhrase, seenAt)
		if err != nil {
			return stats, fmt.Errorf("ledger: record %q: %w", c.CorrectedPhrase, err)
		}
		switch outcome {
		case OutcomeCreated:
			stats.Created++
		case OutcomeMerged:
			stats.Merged++
		default:
			stats.Skipped++
		}
	}
	return stats, nil
}

// Pending returns all pending suggestions, highest occurrence count first.
func (l *Ledger) Pending(ctx context.Context) ([]Suggestion, error) {
	return l.store.List(ctx, ListOptions{Status: StatusPending})
}

// Approve turns a pending suggestion into an active dictionary word and
// marks the suggestion approved. The dictionary write happens first; if the
// status update then fails, the word is removed again so the two stores
// stay consistent.
func (l *Ledger) Approve(ctx context.Context, id string) (dictionary.Word, error) {
	sug, err := l.store.Get(ctx, id)
	if err != nil {
		return dictionary.Word{}, fmt.Errorf("ledger: approve %q: %w", id, err)
	}
	if !sug.Status.CanTransitionTo(StatusApproved) {
		return dictionary.Word{}, fmt.Errorf("ledger: approve %q: suggestion is %s", id, sug.Status)
	}

	word, err := l.dict.Add(ctx, dictionary.Word{
		Word:          sug.CorrectedPhrase,
		PhoneticHints: sug.RawPhrase,
		Active:        true,
	})
	created := err == nil
	if err != nil && !errors.Is(err, dictionary.ErrDuplicateWord) {
		return dictionary.Word{}, fmt.Errorf("ledger: approve %q: %w", id, err)
	}
	if !created {
		// The word already exists; approving just closes the suggestion.
		word, err = l.dict.FindByText(ctx, sug.CorrectedPhrase)
		if err != nil {
			return dictionary.Word{}, fmt.Errorf("ledger: approve %q: %w", id, err)
		}
	}

	if err := l.store.UpdateStatus(ctx, id, StatusPending, StatusApproved); err != nil {
		if created {
			if rerr := l.dict.Remove(ctx, word.ID); rerr != nil {
				slog.WarnContext(ctx, "failed to roll back dictionary word after approve failure",
					"word", word.Word, "error", rerr)
			}
		}
		return dictionary.Word{}, fmt.Errorf("ledger: approve %q: %w", id, err)
	}
	return word, nil
}

// Dismiss marks a pending suggestion dismissed. Dismissed phrases are never
// suggested again unless the record is explicitly removed.
func (l *Ledger) Dismiss(ctx context.Context, id string) error {
	sug, err := l.store.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("ledger: dismiss %q: %w", id, err)
	}
	if !sug.Status.CanTransitionTo(StatusDismissed) {
		return fmt.Errorf("ledger: dismiss %q: suggestion is %s", id, sug.Status)
	}
	if err := l.store.UpdateStatus(ctx, id, StatusPending, StatusDismissed); err != nil {
		return fmt.Errorf("ledger: dismiss %q: %w", id, err)
	}
	return nil
}

// ApproveAll approves every pending suggestion, returning the number
// approved. Individual failures do not stop the batch; they are joined into
// the returned error.
func (l *Ledger) ApproveAll(ctx context.Context) (int, error) {
	pending, err := l.Pending(ctx)
	if err != nil {
		return 0, err
	}

	var approved int
	var errs []error
	for _, sug := range pending {
		if _, err := l.Approve(ctx, sug.ID); err != nil {
			errs = append(errs, err)
			continue
		}
		approved++
	}
	return approved, errors.Join(errs...)
}

// DismissAll dismisses every pending suggestion, returning the number
// dismissed.
func (l *Ledger) DismissAll(ctx context.Context) (int, error) {
	pending, err := l.Pending(ctx)
	if err != nil {
		return 0, err
	}

	var dismissed int
	var errs []error
	for _, sug := range pending {
		if err := l.Dismiss(ctx, sug.ID); err != nil {
			errs = append(errs, err)
			continue
		}
		dismissed++
	}
	return dismissed, errors.Join(errs...)
}

// knownWord reports whether the phrase is already an active dictionary
// word. Inactive words do not block new suggestions.
func (l *Ledger) knownWord(ctx context.Context, phrase string) (bool, error) {
	if l.dict == nil {
		return false, nil
	}
	word, err := l.dict.FindByText(ctx, phrase)
	if errors.Is(err, dictionary.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("ledger: dictionary lookup %q: %w", phrase, err)
	}
	return word.Active, nil
}
