package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/nao1215/fernetcrack/internal/candidate"
	"github.com/nao1215/fernetcrack/internal/config"
	"github.com/nao1215/fernetcrack/internal/estimate"
	"github.com/nao1215/fernetcrack/internal/report"
	"github.com/spf13/cobra"
)

// errNoRate is returned when no throughput is available for an estimate.
var errNoRate = errors.New("no attack rate available")

// NewEstimateCmd creates the estimate command.
func NewEstimateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "estimate",
		Short: "Estimate the size and duration of an attack",
		Long: `Estimate counts the candidates of the configured wordlist per base word
and predicts how long an exhaustive attack takes.

A word of n letters yields n * |symbols| * (n+1) * |digits| * (n+2)
candidates. The worst case assumes the password is the last candidate; the
average case assumes it is in the middle.

The attack rate comes from --rate, or from the latest benchmark recorded for
the configured iteration count (see 'fernetcrack benchmark').

Examples:
  # Estimate the quick test using the latest benchmark
  fernetcrack estimate

  # Estimate the full dictionary at 50 attempts per second
  fernetcrack estimate --mode full --rate 50

  # Include excluded words in the count
  fernetcrack estimate --mode full --all-words --rate 50`,
		Args: cobra.NoArgs,
		RunE: runEstimateCmd,
	}

	addModeFlags(cmd)
	cmd.Flags().Float64P("rate", "r", 0,
		"Attack rate in attempts per second (default: latest benchmark)")
	cmd.Flags().Bool("all-words", false,
		"Ignore the exclusion list and count every dictionary word")

	addConfigFlag(cmd)
	addFormatFlags(cmd)
	addDatabaseFlags(cmd, false)

	return cmd
}

// runEstimateCmd executes the estimate command.
func runEstimateCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	allWords, err := cmd.Flags().GetBool("all-words")
	if err != nil {
		return err
	}
	if allWords {
		cfg.Exclude = nil
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	rate, err := cmd.Flags().GetFloat64("rate")
	if err != nil {
		return err
	}
	if !cmd.Flags().Changed("rate") {
		rate, err = latestRate(cmd.Context(), cfg)
		if err != nil {
			return err
		}
	}

	return runEstimate(cfg, rate, cmd.OutOrStdout())
}

// latestRate returns the rate of the latest benchmark recorded for the
// configured iteration count.
func latestRate(ctx context.Context, cfg *config.Config) (float64, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	db, err := openDB(cfg)
	if err != nil {
		return 0, err
	}
	defer db.Close()

	b, err := db.LatestBenchmark(ctx, cfg.Iterations)
	if err != nil {
		return 0, fmt.Errorf("failed to read benchmark: %w", err)
	}
	if b == nil {
		return 0, fmt.Errorf("%w: no benchmark recorded for %d iterations (run 'fernetcrack benchmark' or pass --rate)",
			errNoRate, cfg.Iterations)
	}
	return b.Rate, nil
}

// runEstimate writes the estimate of the configured wordlist at rate.
func runEstimate(cfg *config.Config, rate float64, stdout io.Writer) error {
	gen := candidate.New(cfg.Wordlist(), cfg.Symbols, cfg.Digits)

	est, err := estimate.New(gen.Breakdown(), rate)
	if err != nil {
		return fmt.Errorf("invalid rate: %w", err)
	}

	return outputReport(cfg, stdout, func(w report.Writer) error {
		_, err := w.WriteEstimate(est)
		return err
	})
}
