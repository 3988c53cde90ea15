package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Schema is the SQL DDL for the vocab_suggestions table. Execute it via
// [PostgresStore.Migrate] or apply it manually during deployment.
const Schema = `
CREATE TABLE IF NOT EXISTS vocab_suggestions (
    id               TEXT PRIMARY KEY,
    corrected_phrase TEXT NOT NULL,
    raw_phrase       TEXT NOT NULL,
    occurrence_count INTEGER NOT NULL DEFAULT 1,
    date_last_seen   TIMESTAMPTZ NOT NULL,
    status           TEXT NOT NULL DEFAULT 'pending'
                     CHECK (status IN ('pending', 'approved', 'dismissed')),
    created_at       TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_vocab_suggestions_phrase_lower
    ON vocab_suggestions(lower(corrected_phrase));
`

// DB is the database interface used by [PostgresStore]. Both *pgxpool.Pool
// and *pgx.Conn satisfy this interface.
type DB interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// PostgresStore is a [Store] backed by a PostgreSQL database.
type PostgresStore struct {
	db DB
}

// Compile-time interface check.
var _ Store = (*PostgresStore)(nil)

// NewPostgresStore creates a new [PostgresStore] using the given connection
// or pool. The caller is responsible for calling [PostgresStore.Migrate]
// before issuing queries.
func NewPostgresStore(db DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Migrate executes the [Schema] DDL against the database.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("ledger: migrate: %w", err)
	}
	return nil
}

// RecordSighting implements [Store.RecordSighting]. The create-or-increment
// is a single upsert so concurrent sightings of the same phrase cannot
// produce duplicate rows.
func (s *PostgresStore) RecordSighting(ctx context.Context, correctedPhrase, rawPhrase string, seenAt time.Time) (Suggestion, Outcome, error) {
	id, err := generateID()
	if err != nil {
		return Suggestion{}, OutcomeSkipped, fmt.Errorf("ledger: generate id: %w", err)
	}

	// The DO UPDATE only fires for pending rows; for approved or dismissed
	// rows the statement returns nothing and we fall back to a plain read.
	const query = `
		INSERT INTO vocab_suggestions (id, corrected_phrase, raw_phrase, occurrence_count, date_last_seen, status)
		VALUES ($1, $2, $3, 1, $4, 'pending')
		ON CONFLICT (lower(corrected_phrase)) DO UPDATE
		SET occurrence_count = vocab_suggestions.occurrence_count + 1,
		    date_last_seen   = EXCLUDED.date_last_seen
		WHERE vocab_suggestions.status = 'pending'
		RETURNING id, corrected_phrase, raw_phrase, occurrence_count, date_last_seen, status`

	var sug Suggestion
	err = s.db.QueryRow(ctx, query, id, correctedPhrase, rawPhrase, seenAt).
		Scan(&sug.ID, &sug.CorrectedPhrase, &sug.RawPhrase, &sug.OccurrenceCount, &sug.DateLastSeen, &sug.Status)
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		existing, ferr := s.FindByPhrase(ctx, correctedPhrase)
		if ferr != nil {
			return Suggestion{}, OutcomeSkipped, fmt.Errorf("ledger: record sighting %q: %w", correctedPhrase, ferr)
		}
		return existing, OutcomeSkipped, nil
	case err != nil:
		return Suggestion{}, OutcomeSkipped, fmt.Errorf("ledger: record sighting %q: %w", correctedPhrase, err)
	}

	if sug.OccurrenceCount == 1 {
		return sug, OutcomeCreated, nil
	}
	return sug, OutcomeMerged, nil
}

// Get implements [Store.Get].
func (s *PostgresStore) Get(ctx context.Context, id string) (Suggestion, error) {
	const query = `
		SELECT id, corrected_phrase, raw_phrase, occurrence_count, date_last_seen, status
		FROM vocab_suggestions WHERE id = $1`
	return s.scanOne(s.db.QueryRow(ctx, query, id))
}

// FindByPhrase implements [Store.FindByPhrase].
func (s *PostgresStore) FindByPhrase(ctx context.Context, correctedPhrase string) (Suggestion, error) {
	const query = `
		SELECT id, corrected_phrase, raw_phrase, occurrence_count, date_last_seen, status
		FROM vocab_suggestions WHERE lower(corrected_phrase) = lower($1)`
	return s.scanOne(s.db.QueryRow(ctx, query, correctedPhrase))
}

// List implements [Store.List].
func (s *PostgresStore) List(ctx context.Context, opts ListOptions) ([]Suggestion, error) {
	query := `
		SELECT id, corrected_phrase, raw_phrase, occurrence_count, date_last_seen, status
		FROM vocab_suggestions
		ORDER BY occurrence_count DESC, date_last_seen DESC`
	args := []any{}
	if opts.Status != "" {
		query = `
			SELECT id, corrected_phrase, raw_phrase, occurrence_count, date_last_seen, status
			FROM vocab_suggestions WHERE status = $1
			ORDER BY occurrence_count DESC, date_last_seen DESC`
		args = append(args, string(opts.Status))
	}

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ledger: list: %w", err)
	}
	defer rows.Close()

	var result []Suggestion
	for rows.Next() {
		var sug Suggestion
		if err := rows.Scan(&sug.ID, &sug.CorrectedPhrase, &sug.RawPhrase, &sug.OccurrenceCount, &sug.DateLastSeen, &sug.Status); err != nil {
			return nil, fmt.Errorf("ledger: list scan: %w", err)
		}
		result = append(result, sug)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ledger: list: %w", err)
	}
	return result, nil
}

// UpdateStatus implements [Store.UpdateStatus].
func (s *PostgresStore) UpdateStatus(ctx context.Context, id string, from, to Status) error {
	const query = `
		UPDATE vocab_suggestions SET status = $3
		WHERE id = $1 AND status = $2`

	tag, err := s.db.Exec(ctx, query, id, string(from), string(to))
	if err != nil {
		return fmt.Errorf("ledger: update status %q: %w", id, err)
	}
	if tag.RowsAffected() > 0 {
		return nil
	}

	// Distinguish a missing row from a status mismatch.
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return ErrStaleStatus
}

// Remove implements [Store.Remove].
func (s *PostgresStore) Remove(ctx context.Context, id string) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM vocab_suggestions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("ledger: remove %q: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// scanOne scans a single-suggestion row, mapping pgx.ErrNoRows to
// [ErrNotFound].
func (s *PostgresStore) scanOne(row pgx.Row) (Suggestion, error) {
	var sug Suggestion
	err := row.Scan(&sug.ID, &sug.CorrectedPhrase, &sug.RawPhrase, &sug.OccurrenceCount, &sug.DateLastSeen, &sug.Status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Suggestion{}, ErrNotFound
		}
		return Suggestion{}, fmt.Errorf("ledger: scan: %w", err)
	}
	return sug, nil
}
