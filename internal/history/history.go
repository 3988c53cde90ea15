// Package history stores past transcript pairs. Each record keeps the raw
// recognizer output together with the enhanced text so the batch hint miner
// can re-mine old sessions against the current dictionary.
package history

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when the requested record does not exist.
var ErrNotFound = errors.New("history record not found")

// Record is one stored transcript pair.
type Record struct {
	// ID uniquely identifies the record. Generated on insert when empty.
	ID string

	// RawText is the recognizer output before enhancement.
	RawText string

	// EnhancedText is the corrected text.
	EnhancedText string

	// Language is the BCP-47-ish language code of the transcript, e.g. "en".
	Language string

	// CreatedAt is when the record was stored.
	CreatedAt time.Time
}

// Store persists transcript records. Implementations must be safe for
// concurrent use.
type Store interface {
	// Add stores a record, generating an ID and timestamp when unset, and
	// returns the stored record.
	Add(ctx context.Context, rec Record) (Record, error)

	// Get retrieves a record by ID. Returns [ErrNotFound] when absent.
	Get(ctx context.Context, id string) (Record, error)

	// List returns records newest first. A limit of 0 means no limit.
	List(ctx context.Context, limit int) ([]Record, error)

	// Remove deletes a record by ID. Returns [ErrNotFound] when absent.
	Remove(ctx context.Context, id string) error
}
