package dictionary_test

import (
	"reflect"
	"testing"

	"github.com/quailtone/vocabmine/internal/dictionary"
)

func TestSplitHints(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"   ", nil},
		{"voice ink", []string{"voice ink"}},
		{"voice ink, voiceing ,  voice-ink", []string{"voice ink", "voiceing", "voice-ink"}},
		{",,a,", []string{"a"}},
	}
	for _, tc := range cases {
		if got := dictionary.SplitHints(tc.in); !reflect.DeepEqual(got, tc.want) {
			t.Errorf("SplitHints(%q)=%v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestMergeHints(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name       string
		existing   string
		discovered []string
		want       string
	}{
		{
			name:       "append new",
			existing:   "voice ink",
			discovered: []string{"voiceing"},
			want:       "voice ink, voiceing",
		},
		{
			name:       "case-insensitive dedup",
			existing:   "Voice Ink",
			discovered: []string{"voice ink", "voicing"},
			want:       "Voice Ink, voicing",
		},
		{
			name:       "empty existing",
			existing:   "",
			discovered: []string{"clawed", "clawed", "clawd"},
			want:       "clawed, clawd",
		},
		{
			name:       "nothing discovered",
			existing:   "clawed",
			discovered: nil,
			want:       "clawed",
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := dictionary.MergeHints(tc.existing, tc.discovered); got != tc.want {
				t.Errorf("MergeHints(%q, %v)=%q, want %q", tc.existing, tc.discovered, got, tc.want)
			}
		})
	}
}
