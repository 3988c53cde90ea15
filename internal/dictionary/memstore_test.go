package dictionary_test

import (
	"context"
	"errors"
	"testing"

	"github.com/quailtone/vocabmine/internal/dictionary"
)

func TestMemStore_AddAndFind(t *testing.T) {
	t.Parallel()

	s := dictionary.NewMemStore()
	ctx := context.Background()

	w, err := s.Add(ctx, dictionary.Word{Word: "VoiceInk", Active: true})
	if err != nil {
		t.Fatalf("Add returned error: %v", err)
	}
	if w.ID == "" {
		t.Error("Add did not generate an ID")
	}

	// Lookup is case-insensitive.
	got, err := s.FindByText(ctx, "voiceink")
	if err != nil {
		t.Fatalf("FindByText returned error: %v", err)
	}
	if got.Word != "VoiceInk" {
		t.Errorf("FindByText Word=%q, want %q", got.Word, "VoiceInk")
	}
}

func TestMemStore_DuplicateWord(t *testing.T) {
	t.Parallel()

	s := dictionary.NewMemStore()
	ctx := context.Background()

	if _, err := s.Add(ctx, dictionary.Word{Word: "Claude", Active: true}); err != nil {
		t.Fatalf("Add returned error: %v", err)
	}
	_, err := s.Add(ctx, dictionary.Word{Word: "claude", Active: true})
	if !errors.Is(err, dictionary.ErrDuplicateWord) {
		t.Errorf("Add duplicate: err=%v, want ErrDuplicateWord", err)
	}
}

func TestMemStore_ListOnlyActive(t *testing.T) {
	t.Parallel()

	s := dictionary.NewMemStore()
	ctx := context.Background()

	mustAdd(t, s, dictionary.Word{Word: "Beta", Active: true})
	mustAdd(t, s, dictionary.Word{Word: "alpha", Active: false})
	mustAdd(t, s, dictionary.Word{Word: "Gamma", Active: true})

	active, err := s.List(ctx, true)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(active) != 2 {
		t.Fatalf("List(onlyActive)=%d words, want 2", len(active))
	}
	// Ordered by word text, case-insensitive.
	if active[0].Word != "Beta" || active[1].Word != "Gamma" {
		t.Errorf("List order: %q, %q", active[0].Word, active[1].Word)
	}

	all, err := s.List(ctx, false)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("List(all)=%d words, want 3", len(all))
	}
}

func TestMemStore_UpdateAndRemove(t *testing.T) {
	t.Parallel()

	s := dictionary.NewMemStore()
	ctx := context.Background()

	w := mustAdd(t, s, dictionary.Word{Word: "Kubernetes", Active: true})

	w.PhoneticHints = "cooper netties"
	if err := s.Update(ctx, w); err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	got, err := s.Get(ctx, w.ID)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if got.PhoneticHints != "cooper netties" {
		t.Errorf("PhoneticHints=%q after update", got.PhoneticHints)
	}

	if err := s.Remove(ctx, w.ID); err != nil {
		t.Fatalf("Remove returned error: %v", err)
	}
	if _, err := s.Get(ctx, w.ID); !errors.Is(err, dictionary.ErrNotFound) {
		t.Errorf("Get after Remove: err=%v, want ErrNotFound", err)
	}
	if err := s.Remove(ctx, w.ID); !errors.Is(err, dictionary.ErrNotFound) {
		t.Errorf("Remove twice: err=%v, want ErrNotFound", err)
	}
}

func mustAdd(t *testing.T, s dictionary.Store, w dictionary.Word) dictionary.Word {
	t.Helper()
	added, err := s.Add(context.Background(), w)
	if err != nil {
		t.Fatalf("Add(%q) returned error: %v", w.Word, err)
	}
	return added
}
