package dictionary

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Schema is the SQL DDL for the vocab_words table. Execute it via
// [PostgresStore.Migrate] or apply it manually during deployment.
const Schema = `
CREATE TABLE IF NOT EXISTS vocab_words (
    id             TEXT PRIMARY KEY,
    word           TEXT NOT NULL,
    phonetic_hints TEXT NOT NULL DEFAULT '',
    active         BOOLEAN NOT NULL DEFAULT TRUE,
    created_at     TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at     TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_vocab_words_word_lower ON vocab_words(lower(word));
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
		return fmt.Errorf("dictionary: migrate: %w", err)
	}
	return nil
}

// Add implements [Store.Add].
func (s *PostgresStore) Add(ctx context.Context, word Word) (Word, error) {
	if word.ID == "" {
		id, err := generateID()
		if err != nil {
			return Word{}, fmt.Errorf("dictionary: generate id: %w", err)
		}
		word.ID = id
	}

	const query = `
		INSERT INTO vocab_words (id, word, phonetic_hints, active)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at, updated_at`

	err := s.db.QueryRow(ctx, query, word.ID, word.Word, word.PhoneticHints, word.Active).
		Scan(&word.CreatedAt, &word.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return Word{}, ErrDuplicateWord
		}
		return Word{}, fmt.Errorf("dictionary: add %q: %w", word.Word, err)
	}
	return word, nil
}

// Get implements [Store.Get].
func (s *PostgresStore) Get(ctx context.Context, id string) (Word, error) {
	const query = `
		SELECT id, word, phonetic_hints, active, created_at, updated_at
		FROM vocab_words WHERE id = $1`
	return s.scanOne(s.db.QueryRow(ctx, query, id))
}

// FindByText implements [Store.FindByText].
func (s *PostgresStore) FindByText(ctx context.Context, text string) (Word, error) {
	const query = `
		SELECT id, word, phonetic_hints, active, created_at, updated_at
		FROM vocab_words WHERE lower(word) = lower($1)`
	return s.scanOne(s.db.QueryRow(ctx, query, text))
}

// List implements [Store.List].
func (s *PostgresStore) List(ctx context.Context, onlyActive bool) ([]Word, error) {
	query := `
		SELECT id, word, phonetic_hints, active, created_at, updated_at
		FROM vocab_words ORDER BY lower(word)`
	if onlyActive {
		query = `
			SELECT id, word, phonetic_hints, active, created_at, updated_at
			FROM vocab_words WHERE active ORDER BY lower(word)`
	}

	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("dictionary: list: %w", err)
	}
	defer rows.Close()

	var words []Word
	for rows.Next() {
		var w Word
		if err := rows.Scan(&w.ID, &w.Word, &w.PhoneticHints, &w.Active, &w.CreatedAt, &w.UpdatedAt); err != nil {
			return nil, fmt.Errorf("dictionary: list scan: %w", err)
		}
		words = append(words, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("dictionary: list: %w", err)
	}
	return words, nil
}

// Update implements [Store.Update].
func (s *PostgresStore) Update(ctx context.Context, word Word) error {
	const query = `
		UPDATE vocab_words
		SET word = $2, phonetic_hints = $3, active = $4, updated_at = now()
		WHERE id = $1
		RETURNING updated_at`

	err := s.db.QueryRow(ctx, query, word.ID, word.Word, word.PhoneticHints, word.Active).
		Scan(&word.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("dictionary: update %q: %w", word.ID, err)
	}
	return nil
}

// Remove implements [Store.Remove].
func (s *PostgresStore) Remove(ctx context.Context, id string) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM vocab_words WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("dictionary: remove %q: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// scanOne scans a single-word row, mapping pgx.ErrNoRows to [ErrNotFound].
func (s *PostgresStore) scanOne(row pgx.Row) (Word, error) {
	var w Word
	err := row.Scan(&w.ID, &w.Word, &w.PhoneticHints, &w.Active, &w.CreatedAt, &w.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Word{}, ErrNotFound
		}
		return Word{}, fmt.Errorf("dictionary: scan: %w", err)
	}
	return w, nil
}

// isUniqueViolation checks whether a PostgreSQL error is a unique-violation
// (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
