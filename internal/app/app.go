// Package app wires all vocabmine subsystems into a running application.
//
// The App struct owns the full lifecycle: New creates and connects all
// subsystems, the operation methods (MineTranscript, MineHints,
// ApplyDictionary) execute the pipelines, and Close tears everything down.
//
// For testing, inject in-memory stores via functional options
// (WithDictionaryStore, WithLedgerStore, etc.). When an option is not
// provided, New creates real implementations from the config: Postgres
// stores when storage.postgres_dsn is set, in-memory stores otherwise.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/quailtone/vocabmine/internal/commonwords"
	"github.com/quailtone/vocabmine/internal/config"
	"github.com/quailtone/vocabmine/internal/dictionary"
	"github.com/quailtone/vocabmine/internal/hintmine"
	"github.com/quailtone/vocabmine/internal/history"
	"github.com/quailtone/vocabmine/internal/ledger"
	"github.com/quailtone/vocabmine/internal/mining"
	"github.com/quailtone/vocabmine/internal/mining/plausibility"
	"github.com/quailtone/vocabmine/internal/observe"
	"github.com/quailtone/vocabmine/internal/replace"
)

// App owns all subsystem lifetimes and exposes the vocabmine operations.
type App struct {
	cfg *config.Config

	pool *pgxpool.Pool

	dict     dictionary.Store
	ledgerDB ledger.Store
	hist     history.Store

	miner     *mining.Miner
	ledger    *ledger.Ledger
	hintMiner *hintmine.Miner
	replacer  *replace.Replacer

	metrics *observe.Metrics
}

// Option is a functional option for New. Use these to inject test doubles.
type Option func(*App)

// WithDictionaryStore injects a dictionary store instead of creating one
// from config.
func WithDictionaryStore(s dictionary.Store) Option {
	return func(a *App) { a.dict = s }
}

// WithLedgerStore injects a suggestion store instead of creating one from
// config.
func WithLedgerStore(s ledger.Store) Option {
	return func(a *App) { a.ledgerDB = s }
}

// WithHistoryStore injects a transcript history store instead of creating
// one from config.
func WithHistoryStore(s history.Store) Option {
	return func(a *App) { a.hist = s }
}

// WithMetrics injects a metrics instance instead of using the package-level
// default.
func WithMetrics(m *observe.Metrics) Option {
	return func(a *App) { a.metrics = m }
}

// New creates an App by wiring all subsystems together. When
// storage.postgres_dsn is configured, a connection pool is opened and the
// schema migrations are applied; otherwise everything runs in memory.
func New(ctx context.Context, cfg *config.Config, opts ...Option) (*App, error) {
	a := &App{cfg: cfg}
	for _, o := range opts {
		o(a)
	}

	if err := a.initStores(ctx); err != nil {
		return nil, err
	}
	if a.metrics == nil {
		a.metrics = observe.DefaultMetrics()
	}

	minerOpts := []mining.Option{}
	if cfg.Mining.Language != "" {
		minerOpts = append(minerOpts, mining.WithLanguage(cfg.Mining.Language))
	}
	if cfg.Mining.MaxRawSpan > 0 {
		minerOpts = append(minerOpts, mining.WithMaxRawSpan(cfg.Mining.MaxRawSpan))
	}
	if cfg.Mining.MaxEnhancedSpan > 0 {
		minerOpts = append(minerOpts, mining.WithMaxEnhancedSpan(cfg.Mining.MaxEnhancedSpan))
	}
	a.miner = mining.New(commonwords.NewCache(), minerOpts...)

	a.ledger = ledger.New(a.ledgerDB, a.dict)

	classifierOpts := []plausibility.Option{}
	if cfg.HintMine.BigramThreshold > 0 {
		classifierOpts = append(classifierOpts, plausibility.WithBigramThreshold(cfg.HintMine.BigramThreshold))
	}
	hintOpts := []hintmine.Option{}
	if cfg.HintMine.Concurrency > 0 {
		hintOpts = append(hintOpts, hintmine.WithConcurrency(cfg.HintMine.Concurrency))
	}
	if cfg.HintMine.HistoryLimit > 0 {
		hintOpts = append(hintOpts, hintmine.WithHistoryLimit(cfg.HintMine.HistoryLimit))
	}
	a.hintMiner = hintmine.New(a.hist, a.dict, a.miner, plausibility.New(classifierOpts...), hintOpts...)

	replaceOpts := []replace.Option{}
	if cfg.Replace.FuzzyThreshold > 0 {
		replaceOpts = append(replaceOpts, replace.WithFuzzyThreshold(cfg.Replace.FuzzyThreshold))
	}
	a.replacer = replace.New(a.dict, replaceOpts...)

	return a, nil
}

// initStores opens the Postgres pool and migrates the schemas, or falls
// back to in-memory stores. Injected stores are left untouched.
func (a *App) initStores(ctx context.Context) error {
	dsn := a.cfg.Storage.PostgresDSN
	if dsn == "" {
		if a.dict == nil {
			a.dict = dictionary.NewMemStore()
		}
		if a.ledgerDB == nil {
			a.ledgerDB = ledger.NewMemStore()
		}
		if a.hist == nil {
			a.hist = history.NewMemStore()
		}
		return nil
	}

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return fmt.Errorf("app: connect postgres: %w", err)
	}
	a.pool = pool

	if a.dict == nil {
		s := dictionary.NewPostgresStore(pool)
		if err := s.Migrate(ctx); err != nil {
			return err
		}
		a.dict = s
	}
	if a.ledgerDB == nil {
		s := ledger.NewPostgresStore(pool)
		if err := s.Migrate(ctx); err != nil {
			return err
		}
		a.ledgerDB = s
	}
	if a.hist == nil {
		s := history.NewPostgresStore(pool)
		if err := s.Migrate(ctx); err != nil {
			return err
		}
		a.hist = s
	}
	return nil
}

// Close releases the database pool, when one was opened.
func (a *App) Close() {
	if a.pool != nil {
		a.pool.Close()
	}
}

// Dictionary returns the dictionary store for review tooling.
func (a *App) Dictionary() dictionary.Store {
	return a.dict
}

// MineTranscript mines one raw/enhanced transcript pair, records the
// surviving candidates in the suggestion ledger, and stores the pair in the
// transcript history for later hint mining.
func (a *App) MineTranscript(ctx context.Context, rawText, enhancedText string) (ledger.RecordStats, error) {
	ctx, span := observe.StartSpan(ctx, "vocabmine.mine_transcript")
	defer span.End()
	start := time.Now()
	defer func() {
		a.metrics.MiningDuration.Record(ctx, time.Since(start).Seconds())
	}()

	candidates := a.miner.Mine(ctx, rawText, enhancedText)
	a.metrics.CandidatesExtracted.Add(ctx, int64(len(candidates)))

	stats, err := a.ledger.Record(ctx, candidates)
	if err != nil {
		return stats, err
	}
	for i := 0; i < stats.Created; i++ {
		a.metrics.RecordSighting(ctx, "created")
	}
	for i := 0; i < stats.Merged; i++ {
		a.metrics.RecordSighting(ctx, "merged")
	}
	for i := 0; i < stats.Skipped; i++ {
		a.metrics.RecordSighting(ctx, "skipped")
	}
	a.metrics.PendingSuggestions.Add(ctx, int64(stats.Created))

	if _, err := a.hist.Add(ctx, history.Record{
		RawText:      rawText,
		EnhancedText: enhancedText,
		Language:     a.cfg.Mining.Language,
	}); err != nil {
		return stats, fmt.Errorf("app: store transcript: %w", err)
	}

	observe.Logger(ctx).Info("transcript mined",
		"candidates", len(candidates),
		"created", stats.Created,
		"merged", stats.Merged,
		"skipped", stats.Skipped,
	)
	return stats, nil
}

// MineHints runs the batch hint-mining pass over the transcript history and
// returns the discovered hints per dictionary word. When apply is true, the
// hints are merged into the dictionary.
func (a *App) MineHints(ctx context.Context, apply bool) ([]hintmine.HintSuggestion, error) {
	ctx, span := observe.StartSpan(ctx, "vocabmine.mine_hints")
	defer span.End()
	start := time.Now()
	defer func() {
		a.metrics.HintMiningDuration.Record(ctx, time.Since(start).Seconds())
	}()

	suggestions, err := a.hintMiner.Mine(ctx)
	if err != nil {
		return nil, err
	}
	for _, sug := range suggestions {
		a.metrics.HintsDiscovered.Add(ctx, int64(len(sug.DiscoveredHints)))
	}

	if apply {
		updated, err := a.hintMiner.Apply(ctx, suggestions)
		if err != nil {
			return suggestions, err
		}
		observe.Logger(ctx).Info("hints applied", "words_updated", updated)
	}
	return suggestions, nil
}

// ApplyDictionary rewrites a raw transcript using the active dictionary.
func (a *App) ApplyDictionary(ctx context.Context, text string) (string, []replace.Replacement, error) {
	ctx, span := observe.StartSpan(ctx, "vocabmine.apply_dictionary")
	defer span.End()
	start := time.Now()
	defer func() {
		a.metrics.ReplaceDuration.Record(ctx, time.Since(start).Seconds())
	}()

	replaced, replacements, err := a.replacer.Apply(ctx, text)
	if err != nil {
		return "", nil, err
	}
	for _, r := range replacements {
		a.metrics.RecordReplacement(ctx, r.Source)
	}
	return replaced, replacements, nil
}

// PendingSuggestions lists suggestions awaiting review, ranked by
// occurrence count.
func (a *App) PendingSuggestions(ctx context.Context) ([]ledger.Suggestion, error) {
	return a.ledger.Pending(ctx)
}

// ApproveSuggestion turns a pending suggestion into an active dictionary
// word.
func (a *App) ApproveSuggestion(ctx context.Context, id string) (dictionary.Word, error) {
	word, err := a.ledger.Approve(ctx, id)
	if err == nil {
		a.metrics.PendingSuggestions.Add(ctx, -1)
	}
	return word, err
}

// DismissSuggestion permanently dismisses a pending suggestion.
func (a *App) DismissSuggestion(ctx context.Context, id string) error {
	err := a.ledger.Dismiss(ctx, id)
	if err == nil {
		a.metrics.PendingSuggestions.Add(ctx, -1)
	}
	return err
}

// ApproveAllSuggestions approves every pending suggestion and returns the
// number approved.
func (a *App) ApproveAllSuggestions(ctx context.Context) (int, error) {
	approved, err := a.ledger.ApproveAll(ctx)
	a.metrics.PendingSuggestions.Add(ctx, -int64(approved))
	return approved, err
}

// DismissAllSuggestions dismisses every pending suggestion and returns the
// number dismissed.
func (a *App) DismissAllSuggestions(ctx context.Context) (int, error) {
	dismissed, err := a.ledger.DismissAll(ctx)
	a.metrics.PendingSuggestions.Add(ctx, -int64(dismissed))
	return dismissed, err
}
