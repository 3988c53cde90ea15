package replace_test

import (
	"context"
	"testing"

	"github.com/quailtone/vocabmine/internal/dictionary"
	"github.com/quailtone/vocabmine/internal/replace"
)

func newDict(t *testing.T, words ...dictionary.Word) *dictionary.MemStore {
	t.Helper()
	dict := dictionary.NewMemStore()
	for _, w := range words {
		if _, err := dict.Add(context.Background(), w); err != nil {
			t.Fatalf("Add(%q) returned error: %v", w.Word, err)
		}
	}
	return dict
}

func TestReplacer_ExactHintMatch(t *testing.T) {
	t.Parallel()

	dict := newDict(t, dictionary.Word{Word: "VoiceInk", PhoneticHints: "voice ink", Active: true})
	r := replace.New(dict)

	got, reps, err := r.Apply(context.Background(), "open voice ink settings")
	if err != nil {
		t.Fatalf("Apply returned error: %v", err)
	}
	if got != "open VoiceInk settings" {
		t.Errorf("Apply=%q, want %q", got, "open VoiceInk settings")
	}
	if len(reps) != 1 {
		t.Fatalf("got %d replacements, want 1", len(reps))
	}
	rep := reps[0]
	if rep.Original != "voice ink" || rep.Corrected != "VoiceInk" {
		t.Errorf("replacement=%+v", rep)
	}
	if rep.Source != replace.SourceExact || rep.Confidence != 1 {
		t.Errorf("replacement source/confidence=%+v", rep)
	}
}

func TestReplacer_PreservesEdgePunctuation(t *testing.T) {
	t.Parallel()

	dict := newDict(t, dictionary.Word{Word: "Claude Code", PhoneticHints: "clawed code", Active: true})
	r := replace.New(dict)

	got, reps, err := r.Apply(context.Background(), "ask clawed code, thanks")
	if err != nil {
		t.Fatalf("Apply returned error: %v", err)
	}
	if got != "ask Claude Code, thanks" {
		t.Errorf("Apply=%q, want %q", got, "ask Claude Code, thanks")
	}
	if len(reps) != 1 || reps[0].Original != "clawed code," {
		t.Errorf("replacements=%+v", reps)
	}
}

func TestReplacer_FuzzyMatch(t *testing.T) {
	t.Parallel()

	dict := newDict(t, dictionary.Word{Word: "VoiceInk", Active: true})
	r := replace.New(dict)

	got, reps, err := r.Apply(context.Background(), "open voicink now")
	if err != nil {
		t.Fatalf("Apply returned error: %v", err)
	}
	if got != "open VoiceInk now" {
		t.Errorf("Apply=%q, want %q", got, "open VoiceInk now")
	}
	if len(reps) != 1 {
		t.Fatalf("got %d replacements, want 1", len(reps))
	}
	if reps[0].Source != replace.SourceFuzzy {
		t.Errorf("Source=%q, want fuzzy", reps[0].Source)
	}
	if reps[0].Confidence < 0.85 || reps[0].Confidence > 1 {
		t.Errorf("Confidence=%v out of range", reps[0].Confidence)
	}
}

func TestReplacer_AlreadyCorrectTextUnchanged(t *testing.T) {
	t.Parallel()

	dict := newDict(t, dictionary.Word{Word: "VoiceInk", Active: true})
	r := replace.New(dict)

	got, reps, err := r.Apply(context.Background(), "VoiceInk is great")
	if err != nil {
		t.Fatalf("Apply returned error: %v", err)
	}
	if got != "VoiceInk is great" {
		t.Errorf("Apply=%q changed correct text", got)
	}
	if len(reps) != 0 {
		t.Errorf("replacements=%+v, want none", reps)
	}
}

func TestReplacer_ShortWindowsNeverFuzzyMatch(t *testing.T) {
	t.Parallel()

	dict := newDict(t, dictionary.Word{Word: "They", Active: true})
	r := replace.New(dict)

	// "the" is too short for fuzzy matching even though it scores high
	// against "They".
	got, reps, err := r.Apply(context.Background(), "the cat sat")
	if err != nil {
		t.Fatalf("Apply returned error: %v", err)
	}
	if got != "the cat sat" || len(reps) != 0 {
		t.Errorf("Apply=%q reps=%+v, want unchanged", got, reps)
	}
}

func TestReplacer_NoFuzzyMatchAcrossTokenCounts(t *testing.T) {
	t.Parallel()

	dict := newDict(t, dictionary.Word{Word: "Claude Code", PhoneticHints: "clawed", Active: true})
	r := replace.New(dict)

	// "tell clawed" concatenates to a string containing "clawed", which
	// scores above threshold against the single-token hint. The window
	// must not swallow the unrelated leading word.
	got, _, err := r.Apply(context.Background(), "tell clawed code something")
	if err != nil {
		t.Fatalf("Apply returned error: %v", err)
	}
	if got != "tell Claude Code something" {
		t.Errorf("Apply=%q, want %q", got, "tell Claude Code something")
	}
}

func TestReplacer_IgnoresInactiveWords(t *testing.T) {
	t.Parallel()

	dict := newDict(t, dictionary.Word{Word: "VoiceInk", PhoneticHints: "voice ink", Active: false})
	r := replace.New(dict)

	got, reps, err := r.Apply(context.Background(), "open voice ink settings")
	if err != nil {
		t.Fatalf("Apply returned error: %v", err)
	}
	if got != "open voice ink settings" || len(reps) != 0 {
		t.Errorf("Apply=%q reps=%+v, want unchanged", got, reps)
	}
}

func TestReplacer_EmptyInputs(t *testing.T) {
	t.Parallel()

	r := replace.New(newDict(t))
	got, reps, err := r.Apply(context.Background(), "some text")
	if err != nil {
		t.Fatalf("Apply returned error: %v", err)
	}
	if got != "some text" || len(reps) != 0 {
		t.Errorf("Apply with empty dictionary changed text: %q %+v", got, reps)
	}
}
