package history

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Schema is the SQL DDL for the transcript_history table. Execute it via
// [PostgresStore.Migrate] or apply it manually during deployment.
const Schema = `
CREATE TABLE IF NOT EXISTS transcript_history (
    id            TEXT PRIMARY KEY,
    raw_text      TEXT NOT NULL,
    enhanced_text TEXT NOT NULL,
    language      TEXT NOT NULL DEFAULT 'en',
    created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS idx_transcript_history_created_at
    ON transcript_history(created_at DESC);
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
// or pool.
func NewPostgresStore(db DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Migrate executes the [Schema] DDL against the database.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("history: migrate: %w", err)
	}
	return nil
}

// Add implements [Store.Add].
func (s *PostgresStore) Add(ctx context.Context, rec Record) (Record, error) {
	if rec.ID == "" {
		id, err := generateID()
		if err != nil {
			return Record{}, fmt.Errorf("history: generate id: %w", err)
		}
		rec.ID = id
	}

	const query = `
		INSERT INTO transcript_history (id, raw_text, enhanced_text, language)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at`

	err := s.db.QueryRow(ctx, query, rec.ID, rec.RawText, rec.EnhancedText, rec.Language).
		Scan(&rec.CreatedAt)
	if err != nil {
		return Record{}, fmt.Errorf("history: add: %w", err)
	}
	return rec, nil
}

// Get implements [Store.Get].
func (s *PostgresStore) Get(ctx context.Context, id string) (Record, error) {
	const query = `
		SELECT id, raw_text, enhanced_text, language, created_at
		FROM transcript_history WHERE id = $1`

	var rec Record
	err := s.db.QueryRow(ctx, query, id).
		Scan(&rec.ID, &rec.RawText, &rec.EnhancedText, &rec.Language, &rec.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Record{}, ErrNotFound
		}
		return Record{}, fmt.Errorf("history: get %q: %w", id, err)
	}
	return rec, nil
}

// List implements [Store.List].
func (s *PostgresStore) List(ctx context.Context, limit int) ([]Record, error) {
	query := `
		SELECT id, raw_text, enhanced_text, language, created_at
		FROM transcript_history ORDER BY created_at DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT $1`
		args = append(args, limit)
	}

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("history: list: %w", err)
	}
	defer rows.Close()

	var result []Record
	for rows.Next() {
		var rec Record
		if err := rows.Scan(&rec.ID, &rec.RawText, &rec.EnhancedText, &rec.Language, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("history: list scan: %w", err)
		}
		result = append(result, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("history: list: %w", err)
	}
	return result, nil
}

// Remove implements [Store.Remove].
func (s *PostgresStore) Remove(ctx context.Context, id string) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM transcript_history WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("history: remove %q: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
