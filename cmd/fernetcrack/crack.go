package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/nao1215/fernetcrack/internal/attack"
	"github.com/nao1215/fernetcrack/internal/candidate"
	"github.com/nao1215/fernetcrack/internal/config"
	"github.com/nao1215/fernetcrack/internal/database"
	"github.com/nao1215/fernetcrack/internal/model"
	"github.com/nao1215/fernetcrack/internal/report"
	"github.com/nao1215/fernetcrack/internal/verify"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// NewCrackCmd creates the crack command.
func NewCrackCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "crack",
		Short: "Run the dictionary attack against the configured token",
		Long: `Crack derives a Fernet key from every candidate password and tries to
decrypt the target token with it, stopping at the first success.

Candidates are enumerated in a fixed order: for each base word, for each
letter to uppercase, for each symbol and position, for each digit and
position. With one worker the order is strict; with more workers candidates
are verified concurrently and the first match wins.

Examples:
  # Quick test against the single word "sicurezza" (99,000 candidates)
  fernetcrack crack

  # Full dictionary attack with 4 concurrent workers
  fernetcrack crack --mode full --workers 4

  # Stop after one hour and save a Markdown report
  fernetcrack crack --mode full --max-duration 1h -m -o report.md

  # Attack a target described in a custom configuration file
  fernetcrack crack -c target.yaml`,
		Args: cobra.NoArgs,
		RunE: runCrackCmd,
	}

	addModeFlags(cmd)

	// Attack flags
	cmd.Flags().Int("workers", config.DefaultWorkers,
		"Number of concurrent verifications (1 keeps the strict candidate order)")
	cmd.Flags().Int("progress-interval", config.DefaultProgressInterval,
		"Attempts between progress reports (0 disables them)")
	cmd.Flags().Int64("max-attempts", 0,
		"Stop after this many attempts (0 means unbounded)")
	cmd.Flags().Duration("max-duration", 0,
		"Stop after this much time, e.g. 30m (0 means unbounded)")

	addConfigFlag(cmd)
	addFormatFlags(cmd)
	cmd.Flags().StringP("output", "o", "",
		"Output file path for the report")
	addDatabaseFlags(cmd, true)

	return cmd
}

// runCrackCmd executes the crack command.
func runCrackCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := setupLogger(cmd.ErrOrStderr(), cfg.Verbose)

	ctx, cancel := signalContext(logger)
	defer cancel()

	return runCrack(ctx, cfg, logger, cmd.OutOrStdout(), cmd.ErrOrStderr())
}

// runCrack runs the attack described by a validated cfg.
// The report is written to stdout (or the report file); progress goes to stderr.
func runCrack(ctx context.Context, cfg *config.Config, logger *slog.Logger, stdout, stderr io.Writer) error {
	target, err := model.NewTarget(cfg.Salt, []byte(cfg.Ciphertext), cfg.Iterations)
	if err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	words := cfg.Wordlist()
	gen := candidate.New(words, cfg.Symbols, cfg.Digits)
	total := gen.Count()

	printer := message.NewPrinter(language.English)
	printer.Fprintf(stderr, "Testing %d candidates from %d base word(s) (mode: %s, workers: %d)\n",
		total, len(words), cfg.Mode, cfg.Workers)

	logger.Info("starting attack",
		"mode", string(cfg.Mode),
		"words", len(words),
		"total", total,
		"iterations", cfg.Iterations,
		"workers", cfg.Workers,
	)

	progress := newProgressReporter(stderr, total)
	opts := []attack.Option{
		attack.WithLogger(logger),
		attack.WithWorkers(cfg.Workers),
		attack.WithProgressInterval(uint64(cfg.ProgressInterval)), //nolint:gosec // validated non-negative
		attack.WithMaxAttempts(uint64(cfg.MaxAttempts)),           //nolint:gosec // validated non-negative
		attack.WithMaxDuration(cfg.MaxDuration),
	}
	opts = append(opts, progress.options()...)

	runner := attack.NewRunner(verify.New(target), opts...)
	result, runErr := runner.Run(ctx, gen.All(), total)
	progress.finish()
	if result == nil {
		return fmt.Errorf("attack failed: %w", runErr)
	}
	result.Mode = string(cfg.Mode)

	logger.Info("attack finished",
		"state", result.State.String(),
		"found", result.Found,
		"attempts", result.Attempts,
		"elapsed", result.Elapsed,
	)

	if err := outputReport(cfg, stdout, func(w report.Writer) error {
		_, err := w.WriteAttack(result)
		return err
	}); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	if cfg.SaveToDB {
		run := &database.AttackRun{
			Iterations: cfg.Iterations,
			Workers:    runner.Workers(),
			Words:      words,
			Result:     result,
		}
		// The run is recorded even when the attack was interrupted.
		if err := saveAttackRun(context.WithoutCancel(ctx), cfg, run, logger); err != nil {
			logger.Warn("failed to record attack run", "error", err)
		}
	}

	if errors.Is(runErr, context.Canceled) {
		return fmt.Errorf("attack interrupted after %d attempts: %w", result.Attempts, runErr)
	}
	return runErr
}

// saveAttackRun records the finished run in the history database.
func saveAttackRun(ctx context.Context, cfg *config.Config, run *database.AttackRun, logger *slog.Logger) error {
	db, err := openDB(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	id, err := db.SaveAttackRun(ctx, run)
	if err != nil {
		return fmt.Errorf("failed to save attack run: %w", err)
	}

	logger.Info("attack run saved to database", "id", id, "path", db.Path())
	return nil
}
