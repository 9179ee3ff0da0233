package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/nao1215/fernetcrack/internal/config"
	"github.com/nao1215/fernetcrack/internal/database"
	"github.com/nao1215/fernetcrack/internal/log"
	"github.com/nao1215/fernetcrack/internal/report"
	"github.com/spf13/cobra"
)

// addConfigFlag registers the configuration file flag.
func addConfigFlag(cmd *cobra.Command) {
	cmd.Flags().StringP("config", "c", "",
		"Path to configuration file (default: .fernetcrack in current dir or XDG config dir)")
}

// addModeFlags registers the flags that select the wordlist.
func addModeFlags(cmd *cobra.Command) {
	cmd.Flags().String("mode", string(config.DefaultMode),
		"Attack mode: quick (single word) or full (whole dictionary)")
	cmd.Flags().String("word", "",
		"Base word of quick mode (default: from config, \"sicurezza\")")
}

// addFormatFlags registers the report format flags.
func addFormatFlags(cmd *cobra.Command) {
	cmd.Flags().BoolP("json", "j", false,
		"Output report in JSON format")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output report in Markdown format")
}

// addDatabaseFlags registers the history database flags.
func addDatabaseFlags(cmd *cobra.Command, withNoSave bool) {
	cmd.Flags().String("db-dir", "",
		"Directory of the history database (default: XDG data dir)")
	if withNoSave {
		cmd.Flags().Bool("no-save", false,
			"Do not record the result in the history database")
	}
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// flagChanged reports whether the command defines the flag and the user set it.
func flagChanged(cmd *cobra.Command, name string) bool {
	flag := cmd.Flags().Lookup(name)
	return flag != nil && flag.Changed
}

// buildConfig creates a Config from defaults, the configuration file and the
// flags the command defines. Flags win over the file; only flags the user
// actually set override anything.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.NewConfig()
	flags := cmd.Flags()

	if flags.Lookup("config") != nil {
		configPath, err := flags.GetString("config")
		if err != nil {
			return nil, err
		}

		// If user explicitly specified a config file path, error if not found.
		// If no path specified, silently keep the defaults if no file found.
		path := config.FindConfigFile(configPath)
		if path != "" {
			file, err := config.LoadConfigFile(path)
			if err != nil {
				return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
			}
			if err := file.Apply(cfg); err != nil {
				return nil, fmt.Errorf("invalid config file %s: %w", path, err)
			}
			cfg.ConfigFilePath = path
		} else if configPath != "" {
			return nil, fmt.Errorf("configuration file not found: %s", configPath)
		}
	}

	var err error
	if flagChanged(cmd, "mode") {
		var mode string
		if mode, err = flags.GetString("mode"); err != nil {
			return nil, err
		}
		cfg.Mode = config.Mode(mode)
	}
	if flagChanged(cmd, "word") {
		if cfg.QuickWord, err = flags.GetString("word"); err != nil {
			return nil, err
		}
	}
	if flagChanged(cmd, "workers") {
		if cfg.Workers, err = flags.GetInt("workers"); err != nil {
			return nil, err
		}
	}
	if flagChanged(cmd, "progress-interval") {
		if cfg.ProgressInterval, err = flags.GetInt("progress-interval"); err != nil {
			return nil, err
		}
	}
	if flagChanged(cmd, "max-attempts") {
		if cfg.MaxAttempts, err = flags.GetInt64("max-attempts"); err != nil {
			return nil, err
		}
	}
	if flagChanged(cmd, "max-duration") {
		if cfg.MaxDuration, err = flags.GetDuration("max-duration"); err != nil {
			return nil, err
		}
	}
	if flagChanged(cmd, "iterations") {
		if cfg.Iterations, err = flags.GetInt("iterations"); err != nil {
			return nil, err
		}
	}

	if flags.Lookup("json") != nil {
		if cfg.JSONReport, err = flags.GetBool("json"); err != nil {
			return nil, err
		}
	}
	if flags.Lookup("markdown") != nil {
		if cfg.MarkdownReport, err = flags.GetBool("markdown"); err != nil {
			return nil, err
		}
	}
	if flags.Lookup("output") != nil {
		if cfg.ReportFile, err = flags.GetString("output"); err != nil {
			return nil, err
		}
	}

	if flags.Lookup("db-dir") != nil {
		dbDir, err := flags.GetString("db-dir")
		if err != nil {
			return nil, err
		}
		if dbDir != "" {
			cfg.DBDir = dbDir
		}
	}
	if flags.Lookup("no-save") != nil {
		noSave, err := flags.GetBool("no-save")
		if err != nil {
			return nil, err
		}
		cfg.SaveToDB = !noSave
	}

	cfg.Verbose = getVerboseFlag(cmd)
	return cfg, nil
}

// setupLogger creates the redacting structured logger for a command.
func setupLogger(w io.Writer, verbose bool) *slog.Logger {
	logger := log.NewSecureLogger(w, verbose)
	slog.SetDefault(logger)
	return logger
}

// signalContext returns a context cancelled on SIGINT or SIGTERM.
// The returned cancel function also stops signal delivery.
func signalContext(logger *slog.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		select {
		case <-sigCh:
			logger.Info("received shutdown signal, cancelling...")
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, func() {
		signal.Stop(sigCh)
		cancel()
	}
}

// newReportWriter selects the report format requested in cfg.
func newReportWriter(cfg *config.Config, w io.Writer) report.Writer {
	switch {
	case cfg.JSONReport:
		return report.NewJSONWriter(w, report.WithPrettyPrint(), report.WithVersion(getVersion()))
	case cfg.MarkdownReport:
		return report.NewMarkdownWriter(w)
	default:
		return report.NewSimpleWriter(w)
	}
}

// outputReport writes a report in the requested format. When cfg names a
// report file, the formatted report goes there and a plain summary goes to
// stdout; otherwise the formatted report goes to stdout.
func outputReport(cfg *config.Config, stdout io.Writer, write func(report.Writer) error) error {
	if cfg.ReportFile == "" {
		return write(newReportWriter(cfg, stdout))
	}

	// Create directories if they don't exist
	dir := filepath.Dir(cfg.ReportFile)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	// Reports may contain the recovered password and message, so the file is
	// only readable by the owner.
	f, err := os.OpenFile(cfg.ReportFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer f.Close()

	writer := report.NewMultiWriter(
		newReportWriter(cfg, f),
		report.NewSimpleWriter(stdout, report.WithPlaintext(false)),
	)
	if err := write(writer); err != nil {
		return err
	}
	return f.Close()
}

// openDB opens the history database in cfg.DBDir.
func openDB(cfg *config.Config) (*database.RunDB, error) {
	db, err := database.Open(cfg.DBDir, database.DefaultOptions())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
}
