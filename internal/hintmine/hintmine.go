// Package hintmine re-mines stored transcripts for phonetic hints.
//
// The live mining path discovers *new* vocabulary; this package runs the
// same extraction pipeline over transcript history and keeps only the
// corrections whose corrected phrase is already an active dictionary word.
// The raw side of such a correction is how the recognizer actually heard
// the word — a phonetic hint worth attaching to it.
package hintmine

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/quailtone/vocabmine/internal/dictionary"
	"github.com/quailtone/vocabmine/internal/history"
	"github.com/quailtone/vocabmine/internal/mining"
	"github.com/quailtone/vocabmine/internal/mining/plausibility"
)

// defaultConcurrency bounds how many history records are mined in parallel.
const defaultConcurrency = 4

// HintSuggestion lists the new phonetic hints discovered for one dictionary
// word.
type HintSuggestion struct {
	// WordID is the dictionary word's ID.
	WordID string

	// WordText is the dictionary word's text.
	WordText string

	// ExistingHints is the word's comma-separated hints before mining.
	ExistingHints string

	// DiscoveredHints are the newly found hints, deduplicated
	// case-insensitively against ExistingHints and each other, sorted.
	DiscoveredHints []string
}

// Option configures a [Miner].
type Option func(*Miner)

// WithConcurrency bounds the number of history records mined in parallel.
// Default: 4.
func WithConcurrency(n int) Option {
	return func(m *Miner) {
		if n > 0 {
			m.concurrency = n
		}
	}
}

// WithHistoryLimit caps how many of the most recent history records are
// mined. Default: all.
func WithHistoryLimit(n int) Option {
	return func(m *Miner) {
		m.historyLimit = n
	}
}

// Miner mines transcript history for phonetic hints.
type Miner struct {
	history      history.Store
	dict         dictionary.Store
	mine         *mining.Miner
	classify     *plausibility.Classifier
	concurrency  int
	historyLimit int
}

// New creates a [Miner] over the given stores, extraction pipeline and
// plausibility classifier.
func New(hist history.Store, dict dictionary.Store, miner *mining.Miner, classifier *plausibility.Classifier, opts ...Option) *Miner {
	m := &Miner{
		history:     hist,
		dict:        dict,
		mine:        miner,
		classify:    classifier,
		concurrency: defaultConcurrency,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Mine runs the batch pass: every history record is mined with the shared
// pipeline, candidates matching an active dictionary word are classified
// for phonetic plausibility, and the surviving raw phrases are aggregated
// into one [HintSuggestion] per word. Words with nothing new are omitted.
// Results are sorted by word text.
func (m *Miner) Mine(ctx context.Context) ([]HintSuggestion, error) {
	words, err := m.dict.List(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("hintmine: list words: %w", err)
	}
	if len(words) == 0 {
		return nil, nil
	}
	byText := make(map[string]dictionary.Word, len(words))
	for _, w := range words {
		byText[strings.ToLower(w.Word)] = w
	}

	records, err := m.history.List(ctx, m.historyLimit)
	if err != nil {
		return nil, fmt.Errorf("hintmine: list history: %w", err)
	}

	// wordID → lowercased hint → original casing of the first sighting.
	var mu sync.Mutex
	discovered := make(map[string]map[string]string)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(m.concurrency)
	for _, rec := range records {
		rec := rec
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			for _, cand := range m.mine.Mine(gctx, rec.RawText, rec.EnhancedText) {
				word, ok := byText[strings.ToLower(cand.CorrectedPhrase)]
				if !ok {
					continue
				}
				if m.rejectHint(gctx, word, cand) {
					continue
				}
				mu.Lock()
				hints := discovered[word.ID]
				if hints == nil {
					hints = make(map[string]string)
					discovered[word.ID] = hints
				}
				key := strings.ToLower(cand.RawPhrase)
				if _, seen := hints[key]; !seen {
					hints[key] = cand.RawPhrase
				}
				mu.Unlock()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("hintmine: mine history: %w", err)
	}

	var result []HintSuggestion
	for _, w := range words {
		hints, ok := discovered[w.ID]
		if !ok || len(hints) == 0 {
			continue
		}
		sug := HintSuggestion{
			WordID:          w.ID,
			WordText:        w.Word,
			ExistingHints:   w.PhoneticHints,
			DiscoveredHints: make([]string, 0, len(hints)),
		}
		for _, hint := range hints {
			sug.DiscoveredHints = append(sug.DiscoveredHints, hint)
		}
		sort.Slice(sug.DiscoveredHints, func(i, j int) bool {
			return strings.ToLower(sug.DiscoveredHints[i]) < strings.ToLower(sug.DiscoveredHints[j])
		})
		result = append(result, sug)
	}
	sort.Slice(result, func(i, j int) bool {
		return strings.ToLower(result[i].WordText) < strings.ToLower(result[j].WordText)
	})
	return result, nil
}

// Apply merges each suggestion's discovered hints into its dictionary word
// and returns the number of words updated.
func (m *Miner) Apply(ctx context.Context, suggestions []HintSuggestion) (int, error) {
	var updated int
	for _, sug := range suggestions {
		if len(sug.DiscoveredHints) == 0 {
			continue
		}
		word, err := m.dict.Get(ctx, sug.WordID)
		if err != nil {
			return updated, fmt.Errorf("hintmine: apply %q: %w", sug.WordText, err)
		}
		merged := dictionary.MergeHints(word.PhoneticHints, sug.DiscoveredHints)
		if merged == word.PhoneticHints {
			continue
		}
		word.PhoneticHints = merged
		if err := m.dict.Update(ctx, word); err != nil {
			return updated, fmt.Errorf("hintmine: apply %q: %w", sug.WordText, err)
		}
		updated++
	}
	return updated, nil
}

// rejectHint filters one candidate hint for a word: hints identical to the
// word itself or already recorded on it add nothing, and the rest must pass
// the plausibility classifier.
func (m *Miner) rejectHint(ctx context.Context, word dictionary.Word, cand mining.Candidate) bool {
	if strings.EqualFold(cand.RawPhrase, word.Word) {
		return true
	}
	for _, existing := range word.Hints() {
		if strings.EqualFold(existing, cand.RawPhrase) {
			return true
		}
	}
	ok, reason := m.classify.Plausible(cand.RawPhrase, cand.CorrectedPhrase)
	if !ok {
		slog.DebugContext(ctx, "hint rejected",
			"word", word.Word, "raw_phrase", cand.RawPhrase, "reason", reason)
		return true
	}
	return false
}
