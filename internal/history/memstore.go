package history

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"sort"
	"sync"
	"time"
)

// MemStore is an in-memory [Store] implementation, used when no database is
// configured and in tests.
type MemStore struct {
	mu      sync.RWMutex
	records map[string]Record
	now     func() time.Time
}

// Compile-time interface check.
var _ Store = (*MemStore)(nil)

// NewMemStore creates an empty [MemStore].
func NewMemStore() *MemStore {
	return &MemStore{
		records: make(map[string]Record),
		now:     time.Now,
	}
}

// Add implements [Store.Add].
func (s *MemStore) Add(_ context.Context, rec Record) (Record, error) {
	if rec.ID == "" {
		id, err := generateID()
		if err != nil {
			return Record{}, fmt.Errorf("history: generate id: %w", err)
		}
		rec.ID = id
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = s.now()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[rec.ID] = rec
	return rec, nil
}

// Get implements [Store.Get].
func (s *MemStore) Get(_ context.Context, id string) (Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[id]
	if !ok {
		return Record{}, ErrNotFound
	}
	return rec, nil
}

// List implements [Store.List].
func (s *MemStore) List(_ context.Context, limit int) ([]Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]Record, 0, len(s.records))
	for _, rec := range s.records {
		result = append(result, rec)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

// Remove implements [Store.Remove].
func (s *MemStore) Remove(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.records[id]; !ok {
		return ErrNotFound
	}
	delete(s.records, id)
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
