// Command vocabmine mines vocabulary corrections from transcript pairs and
// manages the learned dictionary.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/quailtone/vocabmine/internal/app"
	"github.com/quailtone/vocabmine/internal/config"
	"github.com/quailtone/vocabmine/internal/observe"
)

const usage = `usage: vocabmine [-config config.yaml] <command> [arguments]

commands:
  mine <raw.txt> <enhanced.txt>   mine one transcript pair for suggestions
  hints [-apply]                  re-mine history for phonetic hints
  apply <raw.txt>                 rewrite a raw transcript with the dictionary
  pending                         list suggestions awaiting review
  approve <id>                    approve a suggestion into the dictionary
  dismiss <id>                    permanently dismiss a suggestion
  approve-all                     approve every pending suggestion
  dismiss-all                     dismiss every pending suggestion
`

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "config.yaml", "path to the YAML configuration file")
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		flag.Usage()
		return 2
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "vocabmine: %v\n", err)
		return 1
	}

	slog.SetDefault(newLogger(cfg.Server.LogLevel))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdown, err := observe.InitProvider(ctx, observe.ProviderConfig{ServiceName: "vocabmine"})
	if err != nil {
		slog.Error("failed to initialise telemetry", "err", err)
		return 1
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			slog.Warn("telemetry shutdown error", "err", err)
		}
	}()

	application, err := app.New(ctx, cfg)
	if err != nil {
		slog.Error("failed to initialise application", "err", err)
		return 1
	}
	defer application.Close()

	if err := dispatch(ctx, application, args); err != nil {
		if errors.Is(err, context.Canceled) {
			return 1
		}
		fmt.Fprintf(os.Stderr, "vocabmine: %v\n", err)
		return 1
	}
	return 0
}

// loadConfig reads the config file; a missing file yields defaults so the
// tool works out of the box with in-memory stores.
func loadConfig(path string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &config.Config{}, nil
		}
		return nil, err
	}
	return cfg, nil
}

func dispatch(ctx context.Context, application *app.App, args []string) error {
	switch cmd, rest := args[0], args[1:]; cmd {
	case "mine":
		return cmdMine(ctx, application, rest)
	case "hints":
		return cmdHints(ctx, application, rest)
	case "apply":
		return cmdApply(ctx, application, rest)
	case "pending":
		return cmdPending(ctx, application)
	case "approve":
		return cmdApprove(ctx, application, rest)
	case "dismiss":
		return cmdDismiss(ctx, application, rest)
	case "approve-all":
		approved, err := application.ApproveAllSuggestions(ctx)
		fmt.Printf("approved %d suggestions\n", approved)
		return err
	case "dismiss-all":
		dismissed, err := application.DismissAllSuggestions(ctx)
		fmt.Printf("dismissed %d suggestions\n", dismissed)
		return err
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func cmdMine(ctx context.Context, application *app.App, args []string) error {
	if len(args) != 2 {
		return errors.New("mine requires <raw.txt> <enhanced.txt>")
	}
	rawText, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	enhancedText, err := os.ReadFile(args[1])
	if err != nil {
		return err
	}

	stats, err := application.MineTranscript(ctx, string(rawText), string(enhancedText))
	if err != nil {
		return err
	}
	fmt.Printf("mined: %d new, %d merged, %d skipped\n", stats.Created, stats.Merged, stats.Skipped)
	return nil
}

func cmdHints(ctx context.Context, application *app.App, args []string) error {
	fs := flag.NewFlagSet("hints", flag.ContinueOnError)
	apply := fs.Bool("apply", false, "merge discovered hints into the dictionary")
	if err := fs.Parse(args); err != nil {
		return err
	}

	suggestions, err := application.MineHints(ctx, *apply)
	if err != nil {
		return err
	}
	if len(suggestions) == 0 {
		fmt.Println("no new hints discovered")
		return nil
	}
	for _, sug := range suggestions {
		fmt.Printf("%s: %v\n", sug.WordText, sug.DiscoveredHints)
	}
	return nil
}

func cmdApply(ctx context.Context, application *app.App, args []string) error {
	if len(args) != 1 {
		return errors.New("apply requires <raw.txt>")
	}
	rawText, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}

	replaced, replacements, err := application.ApplyDictionary(ctx, string(rawText))
	if err != nil {
		return err
	}
	fmt.Println(replaced)
	for _, r := range replacements {
		fmt.Fprintf(os.Stderr, "  %q -> %q (%s, %.2f)\n", r.Original, r.Corrected, r.Source, r.Confidence)
	}
	return nil
}

func cmdPending(ctx context.Context, application *app.App) error {
	pending, err := application.PendingSuggestions(ctx)
	if err != nil {
		return err
	}
	if len(pending) == 0 {
		fmt.Println("no pending suggestions")
		return nil
	}
	for _, sug := range pending {
		fmt.Printf("%s  %q (heard %q, seen %dx, last %s)\n",
			sug.ID, sug.CorrectedPhrase, sug.RawPhrase,
			sug.OccurrenceCount, sug.DateLastSeen.Format(time.RFC3339))
	}
	return nil
}

func cmdApprove(ctx context.Context, application *app.App, args []string) error {
	if len(args) != 1 {
		return errors.New("approve requires <id>")
	}
	word, err := application.ApproveSuggestion(ctx, args[0])
	if err != nil {
		return err
	}
	fmt.Printf("added %q to the dictionary\n", word.Word)
	return nil
}

func cmdDismiss(ctx context.Context, application *app.App, args []string) error {
	if len(args) != 1 {
		return errors.New("dismiss requires <id>")
	}
	if err := application.DismissSuggestion(ctx, args[0]); err != nil {
		return err
	}
	fmt.Println("dismissed")
	return nil
}

func newLogger(level config.LogLevel) *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level.Level(),
	}))
}
