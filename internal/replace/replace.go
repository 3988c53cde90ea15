// Package replace applies the learned vocabulary to fresh recognizer output.
//
// Active dictionary words and their phonetic hints are matched against
// n-gram windows of the raw text, longest window first so that multi-word
// vocabulary takes precedence over partial single-word matches. Exact
// (case-insensitive) matches always win; remaining windows fall back to
// Jaro-Winkler similarity above a configurable threshold.
package replace

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/antzucaro/matchr"

	"github.com/quailtone/vocabmine/internal/dictionary"
)

const (
	// defaultFuzzyThreshold is the minimum Jaro-Winkler score for a fuzzy
	// window match.
	defaultFuzzyThreshold = 0.85

	// minFuzzyLength is the minimum alphanumeric length of a window before
	// fuzzy matching applies. Very short windows score deceptively high
	// against unrelated words.
	minFuzzyLength = 4
)

// Replacement sources.
const (
	SourceExact = "exact"
	SourceFuzzy = "fuzzy"
)

// Replacement records one window that was rewritten to a dictionary word.
type Replacement struct {
	// Original is the text window as it appeared in the input.
	Original string

	// Corrected is the dictionary word that replaced it.
	Corrected string

	// Confidence is 1 for exact matches, the Jaro-Winkler score otherwise.
	Confidence float64

	// Source is [SourceExact] or [SourceFuzzy].
	Source string
}

// Option configures a [Replacer].
type Option func(*Replacer)

// WithFuzzyThreshold sets the minimum Jaro-Winkler score for fuzzy window
// matches. Default: 0.85.
func WithFuzzyThreshold(threshold float64) Option {
	return func(r *Replacer) {
		r.fuzzyThreshold = threshold
	}
}

// Replacer rewrites raw text using the active dictionary.
type Replacer struct {
	dict           dictionary.Store
	fuzzyThreshold float64
}

// New creates a [Replacer] over the given dictionary.
func New(dict dictionary.Store, opts ...Option) *Replacer {
	r := &Replacer{
		dict:           dict,
		fuzzyThreshold: defaultFuzzyThreshold,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// target is one dictionary word with every lowercased form it can be
// matched by: the word itself plus each of its phonetic hints.
type target struct {
	word  string
	forms []string
}

// Apply rewrites text using all active dictionary words and returns the
// rewritten text together with the replacements made. Whitespace is
// normalized to single spaces; punctuation attached to window edges is
// preserved.
func (r *Replacer) Apply(ctx context.Context, text string) (string, []Replacement, error) {
	words, err := r.dict.List(ctx, true)
	if err != nil {
		return "", nil, fmt.Errorf("replace: list words: %w", err)
	}

	targets, maxWindow := buildTargets(words)
	tokens := strings.Fields(text)
	if len(tokens) == 0 || len(targets) == 0 {
		return text, nil, nil
	}

	var output []string
	var replacements []Replacement

	i := 0
	for i < len(tokens) {
		maxN := maxWindow
		if i+maxN > len(tokens) {
			maxN = len(tokens) - i
		}

		matched := false
		for n := maxN; n >= 1; n-- {
			window := tokens[i : i+n]
			norm := normalizeWindow(window)
			if norm == "" {
				continue
			}

			word, conf, source, ok := matchWindow(norm, targets, r.fuzzyThreshold)
			if !ok {
				continue
			}

			original := strings.Join(window, " ")
			replaced := reattachPunct(window, word)
			if replaced != original {
				replacements = append(replacements, Replacement{
					Original:   original,
					Corrected:  word,
					Confidence: conf,
					Source:     source,
				})
			}
			output = append(output, strings.Fields(replaced)...)
			i += n
			matched = true
			break
		}

		if !matched {
			output = append(output, tokens[i])
			i++
		}
	}

	return strings.Join(output, " "), replacements, nil
}

// buildTargets converts active words into match targets and reports the
// widest window (in tokens) any form spans.
func buildTargets(words []dictionary.Word) ([]target, int) {
	var targets []target
	maxWindow := 0
	for _, w := range words {
		forms := []string{strings.ToLower(w.Word)}
		for _, hint := range w.Hints() {
			forms = append(forms, strings.ToLower(hint))
		}
		for _, f := range forms {
			if n := len(strings.Fields(f)); n > maxWindow {
				maxWindow = n
			}
		}
		targets = append(targets, target{word: w.Word, forms: forms})
	}
	return targets, maxWindow
}

// matchWindow finds the best dictionary word for a normalized window:
// exact form equality first, then the highest Jaro-Winkler score at or
// above threshold. Fuzzy comparison is limited to forms with the same
// token count as the window; comparing across token counts lets a window
// containing an unrelated word score deceptively high against a shorter
// form.
func matchWindow(norm string, targets []target, threshold float64) (word string, confidence float64, source string, ok bool) {
	for _, t := range targets {
		for _, f := range t.forms {
			if f == norm {
				return t.word, 1, SourceExact, true
			}
		}
	}

	if len(stripSpaces(norm)) < minFuzzyLength {
		return "", 0, "", false
	}
	normTokens := len(strings.Fields(norm))

	var best target
	var bestScore float64
	for _, t := range targets {
		for _, f := range t.forms {
			if len(strings.Fields(f)) != normTokens {
				continue
			}
			score := matchr.JaroWinkler(norm, f, false)
			if s := matchr.JaroWinkler(stripSpaces(norm), stripSpaces(f), false); s > score {
				score = s
			}
			if score > bestScore {
				best, bestScore = t, score
			}
		}
	}
	if bestScore >= threshold {
		return best.word, bestScore, SourceFuzzy, true
	}
	return "", 0, "", false
}

// normalizeWindow lowercases the window and strips punctuation from token
// edges, joining with single spaces.
func normalizeWindow(tokens []string) string {
	parts := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		trimmed := strings.TrimFunc(strings.ToLower(tok), func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsNumber(r)
		})
		if trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return strings.Join(parts, " ")
}

// reattachPunct wraps the replacement word in the punctuation that framed
// the original window.
func reattachPunct(window []string, word string) string {
	first, last := window[0], window[len(window)-1]
	isEdge := func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	}
	prefix := first[:len(first)-len(strings.TrimLeftFunc(first, isEdge))]
	suffix := last[len(strings.TrimRightFunc(last, isEdge)):]
	return prefix + word + suffix
}

// stripSpaces removes all spaces from s.
func stripSpaces(s string) string {
	return strings.ReplaceAll(s, " ", "")
}
