package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/nao1215/fernetcrack/internal/config"
	"github.com/nao1215/fernetcrack/internal/database"
	"github.com/nao1215/fernetcrack/internal/model"
	"github.com/nao1215/fernetcrack/internal/report"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// defaultHistoryLimit is the number of attack runs listed by default.
const defaultHistoryLimit = 20

// NewHistoryCmd creates the history command.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded attack runs and benchmarks",
		Long: `History lists the attack runs and benchmark measurements recorded in the
history database. Recovered messages are never stored; the found password
is kept with the run summary.

Examples:
  # List the latest attack runs
  fernetcrack history

  # Show the summary of run 3
  fernetcrack history --id 3

  # List benchmark measurements
  fernetcrack history --benchmarks

  # Output the latest 5 runs as JSON
  fernetcrack history --json --limit 5`,
		Args: cobra.NoArgs,
		RunE: runHistoryCmd,
	}

	cmd.Flags().BoolP("benchmarks", "b", false,
		"List benchmark measurements instead of attack runs")
	cmd.Flags().Int64("id", 0,
		"Show the summary of the attack run with this ID")
	cmd.Flags().IntP("limit", "n", defaultHistoryLimit,
		"Maximum number of attack runs to list (0 lists all)")
	cmd.Flags().BoolP("json", "j", false,
		"Output history in JSON format")
	addDatabaseFlags(cmd, false)

	return cmd
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	benchmarks, err := cmd.Flags().GetBool("benchmarks")
	if err != nil {
		return err
	}
	limit, err := cmd.Flags().GetInt("limit")
	if err != nil {
		return err
	}
	if limit < 0 {
		return fmt.Errorf("invalid limit: %d", limit)
	}

	db, err := openDB(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	id, err := cmd.Flags().GetInt64("id")
	if err != nil {
		return err
	}

	if id != 0 {
		return showAttackRun(ctx, db, cfg, id, cmd.OutOrStdout())
	}
	if benchmarks {
		return listBenchmarks(ctx, db, cfg, cmd.OutOrStdout())
	}
	return listAttackRuns(ctx, db, cfg, limit, cmd.OutOrStdout())
}

// listAttackRuns prints the latest attack runs.
func listAttackRuns(ctx context.Context, db *database.RunDB, cfg *config.Config, limit int, w io.Writer) error {
	runs, err := db.ListAttackRuns(ctx, limit)
	if err != nil {
		return fmt.Errorf("failed to get attack runs: %w", err)
	}

	if cfg.JSONReport {
		if runs == nil {
			runs = []*database.AttackRun{}
		}
		return writeJSON(w, runs)
	}

	if len(runs) == 0 {
		fmt.Fprintln(w, "No attack runs recorded.")
		fmt.Fprintln(w, "\nUse 'fernetcrack crack' to run an attack.")
		return nil
	}

	printer := message.NewPrinter(language.English)
	printer.Fprintf(w, "Attack runs (%d):\n\n", len(runs))
	fmt.Fprintf(w, "  %-6s  %-20s  %-6s  %-10s  %12s  %12s  %s\n",
		"ID", "Date", "Mode", "State", "Attempts", "Total", "Password")
	fmt.Fprintln(w, "  "+strings.Repeat("-", 90))

	for _, run := range runs {
		password := "-"
		if run.Result.Found {
			password = run.Result.Password
		}
		printer.Fprintf(w, "  %-6d  %-20s  %-6s  %-10s  %12d  %12d  %s\n",
			run.ID,
			run.RecordedAt.Format("2006-01-02 15:04:05"),
			run.Result.Mode,
			run.Result.State.String(),
			run.Result.Attempts,
			run.Result.Total,
			password,
		)
	}

	return nil
}

// showAttackRun prints the report of one stored attack run.
func showAttackRun(ctx context.Context, db *database.RunDB, cfg *config.Config, id int64, w io.Writer) error {
	run, err := db.GetAttackRun(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get attack run: %w", err)
	}
	if run == nil {
		return fmt.Errorf("attack run %d not found", id)
	}

	if cfg.JSONReport {
		return writeJSON(w, run)
	}

	fmt.Fprintf(w, "Attack run %d, recorded %s\n", run.ID, run.RecordedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(w, "Base words: %s\n", strings.Join(run.Words, ", "))
	fmt.Fprintf(w, "Iterations: %d, workers: %d\n\n", run.Iterations, run.Workers)
	_, err = report.NewSimpleWriter(w, report.WithPlaintext(false)).WriteAttack(run.Result)
	return err
}

// listBenchmarks prints every benchmark measurement.
func listBenchmarks(ctx context.Context, db *database.RunDB, cfg *config.Config, w io.Writer) error {
	results, err := db.ListBenchmarks(ctx)
	if err != nil {
		return fmt.Errorf("failed to get benchmarks: %w", err)
	}

	if cfg.JSONReport {
		if results == nil {
			results = []*model.BenchmarkResult{}
		}
		return writeJSON(w, results)
	}

	if len(results) == 0 {
		fmt.Fprintln(w, "No benchmarks recorded.")
		fmt.Fprintln(w, "\nUse 'fernetcrack benchmark' to measure the attack rate.")
		return nil
	}

	printer := message.NewPrinter(language.English)
	printer.Fprintf(w, "Benchmarks (%d):\n\n", len(results))
	fmt.Fprintf(w, "  %-6s  %-20s  %10s  %7s  %8s  %12s\n",
		"ID", "Date", "Iterations", "Workers", "Samples", "Rate (H/s)")
	fmt.Fprintln(w, "  "+strings.Repeat("-", 74))

	for _, b := range results {
		printer.Fprintf(w, "  %-6d  %-20s  %10d  %7d  %8d  %12.2f\n",
			b.ID,
			b.MeasuredAt.Format("2006-01-02 15:04:05"),
			b.Iterations,
			b.Workers,
			b.Samples,
			b.Rate,
		)
	}

	return nil
}

// writeJSON writes v as indented JSON.
func writeJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
