package dictionary

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get, FindByText, and Update when the requested
// word does not exist.
var ErrNotFound = errors.New("dictionary word not found")

// ErrDuplicateWord is returned by Add when a word with the same text
// (case-insensitive) already exists.
var ErrDuplicateWord = errors.New("dictionary word already exists")

// Store persists dictionary words.
//
// All implementations must be safe for concurrent use. Word text is unique
// case-insensitively across the store.
type Store interface {
	// Add creates a new word. An empty ID is filled with a generated one.
	// Returns [ErrDuplicateWord] when the text is already present.
	Add(ctx context.Context, word Word) (Word, error)

	// Get retrieves a word by ID. Returns [ErrNotFound] when absent.
	Get(ctx context.Context, id string) (Word, error)

	// FindByText retrieves a word by its text, compared case-insensitively.
	// Returns [ErrNotFound] when absent.
	FindByText(ctx context.Context, text string) (Word, error)

	// List returns all words, or only active ones when onlyActive is set.
	// Results are ordered by word text.
	List(ctx context.Context, onlyActive bool) ([]Word, error)

	// Update replaces an existing word. Returns [ErrNotFound] when absent.
	Update(ctx context.Context, word Word) error

	// Remove deletes a word by ID. Returns [ErrNotFound] when absent.
	Remove(ctx context.Context, id string) error
}
