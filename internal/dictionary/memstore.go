package dictionary

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

// Compile-time assertion that MemStore satisfies the Store interface.
var _ Store = (*MemStore)(nil)

// MemStore is a thread-safe, in-memory implementation of [Store].
// Suitable for tests and for hosts running without a database.
type MemStore struct {
	mu    sync.RWMutex
	words map[string]Word
	clock func() time.Time
}

// NewMemStore returns an initialised [MemStore].
func NewMemStore() *MemStore {
	return &MemStore{
		words: make(map[string]Word),
		clock: time.Now,
	}
}

// Add implements [Store.Add].
func (s *MemStore) Add(ctx context.Context, word Word) (Word, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, w := range s.words {
		if strings.EqualFold(w.Word, word.Word) {
			return Word{}, ErrDuplicateWord
		}
	}

	if word.ID == "" {
		id, err := generateID()
		if err != nil {
			return Word{}, fmt.Errorf("dictionary: generate id: %w", err)
		}
		word.ID = id
	}
	now := s.clock()
	word.CreatedAt = now
	word.UpdatedAt = now

	s.words[word.ID] = word
	return word, nil
}

// Get implements [Store.Get].
func (s *MemStore) Get(ctx context.Context, id string) (Word, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	w, ok := s.words[id]
	if !ok {
		return Word{}, ErrNotFound
	}
	return w, nil
}

// FindByText implements [Store.FindByText].
func (s *MemStore) FindByText(ctx context.Context, text string) (Word, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, w := range s.words {
		if strings.EqualFold(w.Word, text) {
			return w, nil
		}
	}
	return Word{}, ErrNotFound
}

// List implements [Store.List].
func (s *MemStore) List(ctx context.Context, onlyActive bool) ([]Word, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]Word, 0, len(s.words))
	for _, w := range s.words {
		if onlyActive && !w.Active {
			continue
		}
		result = append(result, w)
	}
	sort.Slice(result, func(i, j int) bool {
		return strings.ToLower(result[i].Word) < strings.ToLower(result[j].Word)
	})
	return result, nil
}

// Update implements [Store.Update].
func (s *MemStore) Update(ctx context.Context, word Word) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.words[word.ID]
	if !ok {
		return ErrNotFound
	}
	word.CreatedAt = existing.CreatedAt
	word.UpdatedAt = s.clock()
	s.words[word.ID] = word
	return nil
}

// Remove implements [Store.Remove].
func (s *MemStore) Remove(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.words[id]; !ok {
		return ErrNotFound
	}
	delete(s.words, id)
	return nil
}

// generateID produces a random 16-byte hex string using crypto/rand.
func generateID() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
