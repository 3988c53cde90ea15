// Package mining implements the vocabulary-correction mining pipeline.
//
// Given the raw speech-to-text output and the AI-enhanced version of the
// same dictation, the pipeline discovers proper nouns, brand names, and
// technical terms the recogniser misheard:
//
//  1. Both texts are tokenised ([textalign.Tokenize]).
//  2. The normalised token sequences are aligned via longest common
//     subsequence ([textalign.LCSAnchors]).
//  3. Gaps between anchors where both sides are non-empty become
//     [CorrectionPair] values — genuine substitutions, not insertions or
//     deletions.
//  4. Corrections producing capitalised words absorb immediately following
//     anchored capitalised tokens, recovering multi-word proper nouns such
//     as "Claude Code" that the aligner split across a gap.
//  5. A chain of reject rules turns surviving pairs into [Candidate] values,
//     suppressing ordinary AI rephrasing (common-word-only substitutions,
//     fillers, pure punctuation changes).
//
// The pipeline is pure and stateless per call: a [Miner] holds only
// configuration and a read-only word source, so one Miner may serve any
// number of goroutines.
package mining

import (
	"context"
	"log/slog"
	"strings"

	"github.com/quailtone/vocabmine/pkg/textalign"
)

const (
	defaultMaxRawSpan      = 4
	defaultMaxEnhancedSpan = 6
	defaultLanguage        = "en"
)

// CorrectionPair is one substitution gap between the raw and enhanced token
// sequences.
type CorrectionPair struct {
	// Raw is the raw-side token span of the gap.
	Raw []textalign.Token

	// Enhanced is the enhanced-side token span, possibly extended by the
	// compound-name expander.
	Enhanced []textalign.Token

	// EnhancedStart is the index in the full enhanced token sequence where
	// Enhanced begins. The compound-name expander needs it to locate the
	// tokens immediately following the gap.
	EnhancedStart int
}

// Candidate is one mined vocabulary correction. Two candidates describe the
// same suggestion iff their CorrectedPhrase values are equal
// case-insensitively.
type Candidate struct {
	// RawPhrase is what the recogniser heard.
	RawPhrase string

	// CorrectedPhrase is what the enhancement produced. Never empty and
	// never case-insensitively equal to RawPhrase.
	CorrectedPhrase string
}

// WordSource supplies the per-language common-word set consulted by the
// candidate filter. The returned map is read-only; an empty map disables
// the common-word rules entirely.
//
// Implementations must be safe for concurrent use.
type WordSource interface {
	Words(ctx context.Context, language string) map[string]struct{}
}

// Option is a functional option for configuring a [Miner].
type Option func(*Miner)

// WithLanguage selects the common-word list consulted by the filter.
// Default: "en". The "auto" sentinel must be resolved by the caller before
// mining.
func WithLanguage(language string) Option {
	return func(m *Miner) {
		m.language = language
	}
}

// WithMaxRawSpan caps the raw-side token count of a correction. Longer gaps
// are whole-sentence rewrites, not vocabulary misses. Default: 4.
func WithMaxRawSpan(n int) Option {
	return func(m *Miner) {
		m.maxRawSpan = n
	}
}

// WithMaxEnhancedSpan caps the enhanced-side token count of a correction.
// The cap is looser than the raw cap to leave room for expanded compound
// names. Default: 6.
func WithMaxEnhancedSpan(n int) Option {
	return func(m *Miner) {
		m.maxEnhancedSpan = n
	}
}

// Miner mines vocabulary candidates from raw/enhanced transcript pairs.
// Safe for concurrent use.
type Miner struct {
	words           WordSource
	language        string
	maxRawSpan      int
	maxEnhancedSpan int
}

// New constructs a [Miner]. words may be nil, in which case the common-word
// filter rules are disabled (equivalent to an empty word set).
func New(words WordSource, opts ...Option) *Miner {
	m := &Miner{
		words:           words,
		language:        defaultLanguage,
		maxRawSpan:      defaultMaxRawSpan,
		maxEnhancedSpan: defaultMaxEnhancedSpan,
	}
	for _, o := range opts {
		o(m)
	}
	return m
}

// Mine extracts vocabulary candidates from one raw/enhanced transcript pair.
//
// The returned slice is never nil. CorrectedPhrase keys are unique within
// one call (first occurrence wins); callers that accumulate evidence across
// calls count repeats themselves. Identical or empty inputs yield an empty
// list — there is no error path.
func (m *Miner) Mine(ctx context.Context, raw, enhanced string) []Candidate {
	candidates := []Candidate{}

	rawToks := textalign.Tokenize(raw)
	enhToks := textalign.Tokenize(enhanced)
	if len(rawToks) == 0 || len(enhToks) == 0 {
		return candidates
	}

	anchors := textalign.LCSAnchors(textalign.Normalized(rawToks), textalign.Normalized(enhToks))
	pairs := extractPairs(rawToks, enhToks, anchors)
	pairs = expandCompoundNames(pairs, enhToks, anchors)

	var common map[string]struct{}
	if m.words != nil {
		common = m.words.Words(ctx, m.language)
	}

	seen := make(map[string]struct{}, len(pairs))
	for _, p := range pairs {
		cand, reject := m.evaluate(p, common)
		if reject != "" {
			slog.Debug("mining: correction rejected",
				"reason", reject,
				"raw", textalign.JoinCleaned(p.Raw),
				"corrected", textalign.JoinCleaned(p.Enhanced),
			)
			continue
		}
		key := strings.ToLower(cand.CorrectedPhrase)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		candidates = append(candidates, cand)
	}
	return candidates
}
