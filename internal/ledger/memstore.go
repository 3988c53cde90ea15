package ledger

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"
)

// MemStore is an in-memory [Store] implementation, used when no database is
// configured and in tests.
type MemStore struct {
	mu          sync.RWMutex
	suggestions map[string]Suggestion // keyed by ID
	byPhrase    map[string]string     // lower(corrected phrase) → ID
}

// Compile-time interface check.
var _ Store = (*MemStore)(nil)

// NewMemStore creates an empty [MemStore].
func NewMemStore() *MemStore {
	return &MemStore{
		suggestions: make(map[string]Suggestion),
		byPhrase:    make(map[string]string),
	}
}

// RecordSighting implements [Store.RecordSighting].
func (s *MemStore) RecordSighting(_ context.Context, correctedPhrase, rawPhrase string, seenAt time.Time) (Suggestion, Outcome, error) {
	key := strings.ToLower(correctedPhrase)

	s.mu.Lock()
	defer s.mu.Unlock()

	if id, ok := s.byPhrase[key]; ok {
		existing := s.suggestions[id]
		if existing.Status != StatusPending {
			return existing, OutcomeSkipped, nil
		}
		existing.OccurrenceCount++
		existing.DateLastSeen = seenAt
		s.suggestions[id] = existing
		return existing, OutcomeMerged, nil
	}

	id, err := generateID()
	if err != nil {
		return Suggestion{}, OutcomeSkipped, fmt.Errorf("ledger: generate id: %w", err)
	}
	created := Suggestion{
		ID:              id,
		CorrectedPhrase: correctedPhrase,
		RawPhrase:       rawPhrase,
		OccurrenceCount: 1,
		DateLastSeen:    seenAt,
		Status:          StatusPending,
	}
	s.suggestions[id] = created
	s.byPhrase[key] = id
	return created, OutcomeCreated, nil
}

// Get implements [Store.Get].
func (s *MemStore) Get(_ context.Context, id string) (Suggestion, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sug, ok := s.suggestions[id]
	if !ok {
		return Suggestion{}, ErrNotFound
	}
	return sug, nil
}

// FindByPhrase implements [Store.FindByPhrase].
func (s *MemStore) FindByPhrase(_ context.Context, correctedPhrase string) (Suggestion, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byPhrase[strings.ToLower(correctedPhrase)]
	if !ok {
		return Suggestion{}, ErrNotFound
	}
	return s.suggestions[id], nil
}

// List implements [Store.List].
func (s *MemStore) List(_ context.Context, opts ListOptions) ([]Suggestion, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]Suggestion, 0, len(s.suggestions))
	for _, sug := range s.suggestions {
		if opts.Status != "" && sug.Status != opts.Status {
			continue
		}
		result = append(result, sug)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].OccurrenceCount != result[j].OccurrenceCount {
			return result[i].OccurrenceCount > result[j].OccurrenceCount
		}
		return result[i].DateLastSeen.After(result[j].DateLastSeen)
	})
	return result, nil
}

// UpdateStatus implements [Store.UpdateStatus].
func (s *MemStore) UpdateStatus(_ context.Context, id string, from, to Status) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sug, ok := s.suggestions[id]
	if !ok {
		return ErrNotFound
	}
	if sug.Status != from {
		return ErrStaleStatus
	}
	sug.Status = to
	s.suggestions[id] = sug
	return nil
}

// Remove implements [Store.Remove].
func (s *MemStore) Remove(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sug, ok := s.suggestions[id]
	if !ok {
		return ErrNotFound
	}
	delete(s.suggestions, id)
	delete(s.byPhrase, strings.ToLower(sug.CorrectedPhrase))
	return nil
}

// generateID returns a random 16-byte hex identifier.
func generateID() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
