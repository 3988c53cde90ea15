// Package dictionary manages the user-maintained vocabulary: the words the
// recogniser should learn, each with an optional set of phonetic hints —
// alternate "as misheard" spellings that help match future utterances.
package dictionary

import (
	"strings"
	"time"
)

// Word is one user-dictionary entry.
type Word struct {
	// ID uniquely identifies the word. Generated on insert when empty.
	ID string

	// Word is the canonical spelling, e.g. "VoiceInk".
	Word string

	// PhoneticHints is a comma-separated list of as-misheard spellings,
	// e.g. "voice ink, voiceing". May be empty.
	PhoneticHints string

	// Active controls whether the word participates in suggestion
	// suppression and transcript replacement. Inactive words are kept but
	// ignored.
	Active bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Hints returns the word's phonetic hints as a slice, trimmed, with empty
// entries dropped.
func (w Word) Hints() []string {
	return SplitHints(w.PhoneticHints)
}

// SplitHints parses a comma-separated hint string into individual hints.
func SplitHints(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	hints := make([]string, 0, len(parts))
	for _, p := range parts {
		if h := strings.TrimSpace(p); h != "" {
			hints = append(hints, h)
		}
	}
	return hints
}

// JoinHints renders hints back into the comma-separated storage form.
func JoinHints(hints []string) string {
	return strings.Join(hints, ", ")
}

// MergeHints appends discovered hints to an existing comma-separated hint
// string, preserving order and dropping case-insensitive duplicates.
func MergeHints(existing string, discovered []string) string {
	merged := SplitHints(existing)
	seen := make(map[string]struct{}, len(merged)+len(discovered))
	for _, h := range merged {
		seen[strings.ToLower(h)] = struct{}{}
	}
	for _, h := range discovered {
		h = strings.TrimSpace(h)
		if h == "" {
			continue
		}
		key := strings.ToLower(h)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		merged = append(merged, h)
	}
	return JoinHints(merged)
}
