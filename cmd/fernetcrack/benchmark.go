package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/nao1215/fernetcrack/internal/attack"
	"github.com/nao1215/fernetcrack/internal/candidate"
	"github.com/nao1215/fernetcrack/internal/config"
	"github.com/nao1215/fernetcrack/internal/estimate"
	"github.com/nao1215/fernetcrack/internal/model"
	"github.com/nao1215/fernetcrack/internal/report"
	"github.com/nao1215/fernetcrack/internal/verify"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// NewBenchmarkCmd creates the benchmark command.
func NewBenchmarkCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "benchmark",
		Short: "Measure how many candidates per second can be verified",
		Long: `Benchmark verifies a fixed number of dummy passwords against the configured
target and reports the throughput in attempts per second, attempts per
minute and milliseconds per attempt, followed by an estimate for the
configured wordlist.

The measurement is recorded in the history database and used by
'fernetcrack estimate' for the same iteration count.

Examples:
  # Measure with 1000 samples
  fernetcrack benchmark

  # Measure 4 concurrent workers and estimate the full dictionary
  fernetcrack benchmark --workers 4 --mode full`,
		Args: cobra.NoArgs,
		RunE: runBenchmarkCmd,
	}

	cmd.Flags().Uint64P("samples", "n", attack.DefaultBenchmarkSamples,
		"Number of dummy passwords to verify")
	cmd.Flags().Int("workers", config.DefaultWorkers,
		"Number of concurrent verifications")
	addModeFlags(cmd)

	addConfigFlag(cmd)
	addFormatFlags(cmd)
	addDatabaseFlags(cmd, true)

	return cmd
}

// runBenchmarkCmd executes the benchmark command.
func runBenchmarkCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	samples, err := cmd.Flags().GetUint64("samples")
	if err != nil {
		return err
	}

	logger := setupLogger(cmd.ErrOrStderr(), cfg.Verbose)

	ctx, cancel := signalContext(logger)
	defer cancel()

	return runBenchmark(ctx, cfg, samples, logger, cmd.OutOrStdout(), cmd.ErrOrStderr())
}

// runBenchmark measures the verification throughput for cfg's target.
func runBenchmark(ctx context.Context, cfg *config.Config, samples uint64, logger *slog.Logger, stdout, stderr io.Writer) error {
	target, err := model.NewTarget(cfg.Salt, []byte(cfg.Ciphertext), cfg.Iterations)
	if err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	printer := message.NewPrinter(language.English)
	printer.Fprintf(stderr, "Benchmarking %d key derivations at %d iterations...\n", samples, cfg.Iterations)

	result, err := attack.Benchmark(ctx, verify.New(target), samples,
		attack.WithLogger(logger),
		attack.WithWorkers(cfg.Workers),
		attack.WithProgressFunc(func(p model.Progress) {
			printer.Fprintf(stderr, "Tested %d/%d\n", p.Attempts, samples)
		}),
	)
	if err != nil {
		return fmt.Errorf("benchmark failed: %w", err)
	}
	result.Iterations = cfg.Iterations

	gen := candidate.New(cfg.Wordlist(), cfg.Symbols, cfg.Digits)
	est, err := estimate.New(gen.Breakdown(), result.Rate)
	if err != nil {
		// A zero rate means the clock did not advance; report the
		// measurement without an estimate.
		logger.Warn("cannot estimate from benchmark", "error", err)
		est = nil
	}

	if err := outputReport(cfg, stdout, func(w report.Writer) error {
		_, err := w.WriteBenchmark(result, est)
		return err
	}); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	if !cfg.SaveToDB {
		return nil
	}

	db, err := openDB(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	id, err := db.SaveBenchmark(ctx, result)
	if err != nil {
		return fmt.Errorf("failed to save benchmark: %w", err)
	}
	logger.Info("benchmark saved to database", "id", id, "rate", result.Rate)
	return nil
}
