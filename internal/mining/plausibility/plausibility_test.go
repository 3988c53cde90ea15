package plausibility_test

import (
	"testing"

	"github.com/quailtone/vocabmine/internal/mining/plausibility"
)

func TestPlausible(t *testing.T) {
	t.Parallel()

	c := plausibility.New()

	cases := []struct {
		name       string
		raw        string
		corrected  string
		want       bool
		wantReason string
	}{
		{
			name:      "classic mishearing",
			raw:       "clawed",
			corrected: "Claude",
			want:      true,
		},
		{
			name:      "misspelled name",
			raw:       "Jeffery",
			corrected: "Jeffrey",
			want:      true,
		},
		{
			name:      "split brand name",
			raw:       "voice ink",
			corrected: "VoiceInk",
			want:      true,
		},
		{
			name:       "empty raw after stripping",
			raw:        "!!!",
			corrected:  "Kubernetes",
			want:       false,
			wantReason: "empty after stripping",
		},
		{
			name:       "plural variant",
			raw:        "kubernete",
			corrected:  "kubernetes",
			want:       false,
			wantReason: "morphological variant",
		},
		{
			name:       "gerund variant",
			raw:        "deploying",
			corrected:  "deploy",
			want:       false,
			wantReason: "morphological variant",
		},
		{
			name:       "consonant doubling variant",
			raw:        "running",
			corrected:  "run",
			want:       false,
			wantReason: "morphological variant",
		},
		{
			name:       "silent e variant",
			raw:        "making",
			corrected:  "make",
			want:       false,
			wantReason: "morphological variant",
		},
		{
			name:       "possessive",
			raw:        "Anna's",
			corrected:  "Anna",
			want:       false,
			wantReason: "morphological variant",
		},
		{
			name:       "abbreviation expansion",
			raw:        "app",
			corrected:  "application",
			want:       false,
			wantReason: "abbreviation",
		},
		{
			name:       "plural abbreviation expansion",
			raw:        "apps",
			corrected:  "applications",
			want:       false,
			wantReason: "abbreviation",
		},
		{
			name:       "number to digits",
			raw:        "twenty five",
			corrected:  "25",
			want:       false,
			wantReason: "number-to-text conversion",
		},
		{
			name:       "context leakage verbatim",
			raw:        "the have.net site",
			corrected:  "have",
			want:       false,
			wantReason: "context leakage",
		},
		{
			name:       "context leakage near-suffix",
			raw:        "my postgres database",
			corrected:  "databases",
			want:       false,
			wantReason: "context leakage",
		},
		{
			name:       "slash artifact",
			raw:        "slash temp",
			corrected:  "/tmp",
			want:       false,
			wantReason: "slash artifact",
		},
		{
			name:       "backticked slash artifact",
			raw:        "slash config",
			corrected:  "`/cfg`",
			want:       false,
			wantReason: "slash artifact",
		},
		{
			name:       "slash path with leaked segment",
			raw:        "slash home directory",
			corrected:  "/home",
			want:       false,
			wantReason: "context leakage",
		},
		{
			name:       "token counts too far apart",
			raw:        "gee pee you",
			corrected:  "GPU",
			want:       false,
			wantReason: "token count mismatch",
		},
		{
			name:       "phonetically unrelated",
			raw:        "banana",
			corrected:  "Xylophone",
			want:       false,
			wantReason: "below similarity threshold",
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, reason := c.Plausible(tc.raw, tc.corrected)
			if got != tc.want {
				t.Fatalf("Plausible(%q, %q)=%v (%s), want %v",
					tc.raw, tc.corrected, got, reason, tc.want)
			}
			if !tc.want && reason != tc.wantReason {
				t.Errorf("reason=%q, want %q", reason, tc.wantReason)
			}
		})
	}
}

func TestPlausible_ThresholdOption(t *testing.T) {
	t.Parallel()

	// "clawed" vs "Claude" shares few bigrams; a sky-high threshold must
	// reject what the default accepts.
	strict := plausibility.New(plausibility.WithBigramThreshold(0.95))
	if ok, _ := strict.Plausible("clawed", "Claude"); ok {
		t.Error("threshold 0.95 accepted a low-similarity pair")
	}

	lenient := plausibility.New(plausibility.WithBigramThreshold(0.05))
	if ok, reason := lenient.Plausible("clawed", "Claude"); !ok {
		t.Errorf("threshold 0.05 rejected the pair: %s", reason)
	}
}
