package history_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/quailtone/vocabmine/internal/history"
)

func TestMemStore_AddAndGet(t *testing.T) {
	t.Parallel()

	s := history.NewMemStore()
	ctx := context.Background()

	rec, err := s.Add(ctx, history.Record{
		RawText:      "i used clawed code",
		EnhancedText: "I used Claude Code.",
		Language:     "en",
	})
	if err != nil {
		t.Fatalf("Add returned error: %v", err)
	}
	if rec.ID == "" {
		t.Error("Add did not generate an ID")
	}
	if rec.CreatedAt.IsZero() {
		t.Error("Add did not set CreatedAt")
	}

	got, err := s.Get(ctx, rec.ID)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if got.EnhancedText != "I used Claude Code." {
		t.Errorf("EnhancedText=%q", got.EnhancedText)
	}
}

func TestMemStore_ListNewestFirst(t *testing.T) {
	t.Parallel()

	s := history.NewMemStore()
	ctx := context.Background()
	base := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)

	for i, raw := range []string{"first", "second", "third"} {
		_, err := s.Add(ctx, history.Record{
			RawText:   raw,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
		if err != nil {
			t.Fatalf("Add returned error: %v", err)
		}
	}

	all, err := s.List(ctx, 0)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(all) != 3 || all[0].RawText != "third" || all[2].RawText != "first" {
		t.Errorf("List order wrong: %+v", all)
	}

	limited, err := s.List(ctx, 2)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(limited) != 2 || limited[0].RawText != "third" {
		t.Errorf("List(2) wrong: %+v", limited)
	}
}

func TestMemStore_Remove(t *testing.T) {
	t.Parallel()

	s := history.NewMemStore()
	ctx := context.Background()

	rec, err := s.Add(ctx, history.Record{RawText: "x"})
	if err != nil {
		t.Fatalf("Add returned error: %v", err)
	}
	if err := s.Remove(ctx, rec.ID); err != nil {
		t.Fatalf("Remove returned error: %v", err)
	}
	if _, err := s.Get(ctx, rec.ID); !errors.Is(err, history.ErrNotFound) {
		t.Errorf("Get after Remove: err=%v, want ErrNotFound", err)
	}
	if err := s.Remove(ctx, rec.ID); !errors.Is(err, history.ErrNotFound) {
		t.Errorf("Remove twice: err=%v, want ErrNotFound", err)
	}
}
