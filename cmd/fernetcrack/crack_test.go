package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/nao1215/fernetcrack/internal/config"
	"github.com/nao1215/fernetcrack/internal/database"
	"github.com/nao1215/fernetcrack/internal/log"
	"github.com/nao1215/fernetcrack/internal/model"
	"github.com/nao1215/fernetcrack/internal/report"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// storedRuns returns the attack runs recorded in dir.
func storedRuns(t *testing.T, dir string) []*database.AttackRun {
	t.Helper()

	db, err := database.Open(dir, database.DefaultOptions())
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	runs, err := db.ListAttackRuns(context.Background(), 0)
	if err != nil {
		t.Fatalf("ListAttackRuns() error = %v", err)
	}
	return runs
}

// TestNewCrackCmd tests the crack command creation.
func TestNewCrackCmd(t *testing.T) {
	t.Parallel()

	cmd := NewCrackCmd()

	if cmd.Use != "crack" {
		t.Errorf("expected use 'crack', got %q", cmd.Use)
	}
	if cmd.Long == "" {
		t.Error("expected non-empty long description")
	}

	flags := []struct {
		name      string
		shorthand string
		defValue  string
	}{
		{"mode", "", "quick"},
		{"word", "", ""},
		{"workers", "", "1"},
		{"progress-interval", "", "5000"},
		{"max-attempts", "", "0"},
		{"max-duration", "", "0s"},
		{"config", "c", ""},
		{"json", "j", "false"},
		{"markdown", "m", "false"},
		{"output", "o", ""},
		{"no-save", "", "false"},
		{"db-dir", "", ""},
	}
	for _, tt := range flags {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			flag := cmd.Flags().Lookup(tt.name)
			if flag == nil {
				t.Fatalf("expected %s flag", tt.name)
			}
			if flag.Shorthand != tt.shorthand {
				t.Errorf("expected shorthand %q, got %q", tt.shorthand, flag.Shorthand)
			}
			if flag.DefValue != tt.defValue {
				t.Errorf("expected default %q, got %q", tt.defValue, flag.DefValue)
			}
		})
	}
}

// TestBuildConfig tests layering of defaults, config file and flags.
func TestBuildConfig(t *testing.T) {
	t.Parallel()

	t.Run("config file overrides defaults", func(t *testing.T) {
		t.Parallel()
		path := writeTestConfig(t, testPassword)

		cmd := NewCrackCmd()
		if err := cmd.ParseFlags([]string{"--config", path}); err != nil {
			t.Fatalf("failed to parse flags: %v", err)
		}

		cfg, err := buildConfig(cmd)
		if err != nil {
			t.Fatalf("buildConfig() error = %v", err)
		}
		if cfg.Iterations != testIterations {
			t.Errorf("iterations = %d, want %d", cfg.Iterations, testIterations)
		}
		if cfg.QuickWord != "ab" {
			t.Errorf("quick word = %q, want %q", cfg.QuickWord, "ab")
		}
		if cfg.ConfigFilePath != path {
			t.Errorf("config path = %q, want %q", cfg.ConfigFilePath, path)
		}
		// Flags not set keep the file's values.
		if cfg.Workers != config.DefaultWorkers {
			t.Errorf("workers = %d, want %d", cfg.Workers, config.DefaultWorkers)
		}
		if !cfg.SaveToDB {
			t.Error("expected SaveToDB by default")
		}
	})

	t.Run("flags override config file", func(t *testing.T) {
		t.Parallel()
		path := writeTestConfig(t, testPassword)
		dbDir := t.TempDir()

		cmd := NewCrackCmd()
		args := []string{
			"--config", path,
			"--mode", "full",
			"--word", "zz",
			"--workers", "3",
			"--progress-interval", "0",
			"--max-attempts", "10",
			"--max-duration", "1m",
			"--json",
			"--output", "out.json",
			"--no-save",
			"--db-dir", dbDir,
		}
		if err := cmd.ParseFlags(args); err != nil {
			t.Fatalf("failed to parse flags: %v", err)
		}

		cfg, err := buildConfig(cmd)
		if err != nil {
			t.Fatalf("buildConfig() error = %v", err)
		}
		if cfg.Mode != config.ModeFull {
			t.Errorf("mode = %q, want full", cfg.Mode)
		}
		if cfg.QuickWord != "zz" {
			t.Errorf("quick word = %q, want zz", cfg.QuickWord)
		}
		if cfg.Workers != 3 {
			t.Errorf("workers = %d, want 3", cfg.Workers)
		}
		if cfg.ProgressInterval != 0 {
			t.Errorf("progress interval = %d, want 0", cfg.ProgressInterval)
		}
		if cfg.MaxAttempts != 10 {
			t.Errorf("max attempts = %d, want 10", cfg.MaxAttempts)
		}
		if cfg.MaxDuration != time.Minute {
			t.Errorf("max duration = %v, want 1m", cfg.MaxDuration)
		}
		if !cfg.JSONReport || cfg.MarkdownReport {
			t.Error("expected JSON report only")
		}
		if cfg.ReportFile != "out.json" {
			t.Errorf("report file = %q", cfg.ReportFile)
		}
		if cfg.SaveToDB {
			t.Error("expected --no-save to disable the database")
		}
		if cfg.DBDir != dbDir {
			t.Errorf("db dir = %q, want %q", cfg.DBDir, dbDir)
		}
	})

	t.Run("explicit missing config file is an error", func(t *testing.T) {
		t.Parallel()
		missing := filepath.Join(t.TempDir(), "missing.yaml")

		cmd := NewCrackCmd()
		if err := cmd.ParseFlags([]string{"--config", missing}); err != nil {
			t.Fatalf("failed to parse flags: %v", err)
		}

		_, err := buildConfig(cmd)
		if err == nil {
			t.Fatal("expected error for missing config file")
		}
		if !strings.Contains(err.Error(), "configuration file not found") {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("invalid config file is an error", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), ".fernetcrack")
		if err := os.WriteFile(path, []byte("invalid: yaml: content: ["), 0600); err != nil {
			t.Fatalf("failed to create config file: %v", err)
		}

		cmd := NewCrackCmd()
		if err := cmd.ParseFlags([]string{"--config", path}); err != nil {
			t.Fatalf("failed to parse flags: %v", err)
		}

		if _, err := buildConfig(cmd); err == nil {
			t.Error("expected error for invalid config file")
		}
	})

	t.Run("bad salt in config file is an error", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), ".fernetcrack")
		if err := os.WriteFile(path, []byte("target:\n  salt: not-hex\n"), 0600); err != nil {
			t.Fatalf("failed to create config file: %v", err)
		}

		cmd := NewCrackCmd()
		if err := cmd.ParseFlags([]string{"--config", path}); err != nil {
			t.Fatalf("failed to parse flags: %v", err)
		}

		_, err := buildConfig(cmd)
		if !errors.Is(err, config.ErrInvalidSalt) {
			t.Errorf("expected ErrInvalidSalt, got %v", err)
		}
	})
}

// TestGetVerboseFlag tests reading the persistent verbose flag.
func TestGetVerboseFlag(t *testing.T) {
	t.Parallel()

	t.Run("standalone command defaults to false", func(t *testing.T) {
		t.Parallel()
		if getVerboseFlag(NewCrackCmd()) {
			t.Error("expected false")
		}
	})

	t.Run("reads root persistent flag", func(t *testing.T) {
		t.Parallel()
		root := NewRootCmd()
		if err := root.PersistentFlags().Set("verbose", "true"); err != nil {
			t.Fatalf("failed to set flag: %v", err)
		}
		crack, _, err := root.Find([]string{"crack"})
		if err != nil {
			t.Fatalf("failed to find crack: %v", err)
		}
		if !getVerboseFlag(crack) {
			t.Error("expected true")
		}
	})
}

// TestRunCrackCmd tests the crack command end to end.
func TestRunCrackCmd(t *testing.T) {
	t.Parallel()

	t.Run("finds the password and records the run", func(t *testing.T) {
		t.Parallel()
		path := writeTestConfig(t, testPassword)
		dbDir := t.TempDir()

		stdout, stderr, err := executeRoot(t, "crack", "-c", path, "--db-dir", dbDir, "--progress-interval", "1")
		if err != nil {
			t.Fatalf("crack error = %v", err)
		}

		if !strings.Contains(stdout, "Password found: '"+testPassword+"'") {
			t.Errorf("expected found password in report, got:\n%s", stdout)
		}
		if !strings.Contains(stdout, testPlaintext) {
			t.Errorf("expected decrypted message in report, got:\n%s", stdout)
		}
		if !strings.Contains(stderr, "Testing 24 candidates") {
			t.Errorf("expected plan on stderr, got:\n%s", stderr)
		}
		if !strings.Contains(stderr, "[INFO] Progress: 3 attempts") {
			t.Errorf("expected progress lines on stderr, got:\n%s", stderr)
		}

		runs := storedRuns(t, dbDir)
		if len(runs) != 1 {
			t.Fatalf("expected 1 stored run, got %d", len(runs))
		}
		run := runs[0].Result
		if !run.Found || run.Password != testPassword || run.Attempts != 3 {
			t.Errorf("unexpected stored run: %+v", run)
		}
		if len(run.Plaintext) != 0 {
			t.Error("plaintext must not be stored")
		}
		if run.Mode != "quick" {
			t.Errorf("stored mode = %q, want quick", run.Mode)
		}
	})

	t.Run("reports exhaustion", func(t *testing.T) {
		t.Parallel()
		path := writeTestConfig(t, "not-in-dictionary")

		stdout, _, err := executeRoot(t, "crack", "-c", path, "--no-save", "--workers", "4")
		if err != nil {
			t.Fatalf("crack error = %v", err)
		}
		if !strings.Contains(stdout, "exhausted") {
			t.Errorf("expected exhausted state, got:\n%s", stdout)
		}
		if !strings.Contains(stdout, "Tested:         24") {
			t.Errorf("expected every candidate tested, got:\n%s", stdout)
		}
	})

	t.Run("full mode attacks the dictionary", func(t *testing.T) {
		t.Parallel()
		// "cd" is the second word; its candidates follow the 24 of "ab".
		path := writeTestConfig(t, "C!d0")

		stdout, _, err := executeRoot(t, "crack", "-c", path, "--no-save", "--mode", "full", "--json")
		if err != nil {
			t.Fatalf("crack error = %v", err)
		}

		var doc report.Document
		if err := json.Unmarshal([]byte(stdout), &doc); err != nil {
			t.Fatalf("invalid JSON report: %v\n%s", err, stdout)
		}
		if doc.Attack == nil || !doc.Attack.Found {
			t.Fatalf("expected found attack, got %+v", doc.Attack)
		}
		if doc.Attack.Total != 48 {
			t.Errorf("total = %d, want 48", doc.Attack.Total)
		}
		if doc.Attack.Attempts <= 24 {
			t.Errorf("attempts = %d, want more than the first word's 24", doc.Attack.Attempts)
		}
		if string(doc.Attack.Plaintext) != testPlaintext {
			t.Errorf("plaintext = %q", doc.Attack.Plaintext)
		}
	})

	t.Run("max attempts stops the attack", func(t *testing.T) {
		t.Parallel()
		path := writeTestConfig(t, "not-in-dictionary")

		stdout, _, err := executeRoot(t, "crack", "-c", path, "--no-save", "--max-attempts", "2", "--json")
		if err != nil {
			t.Fatalf("crack error = %v", err)
		}

		var doc report.Document
		if err := json.Unmarshal([]byte(stdout), &doc); err != nil {
			t.Fatalf("invalid JSON report: %v", err)
		}
		if doc.Attack.State != model.StateStopped {
			t.Errorf("state = %v, want stopped", doc.Attack.State)
		}
		if doc.Attack.Attempts != 2 {
			t.Errorf("attempts = %d, want 2", doc.Attack.Attempts)
		}
	})

	t.Run("writes report file", func(t *testing.T) {
		t.Parallel()
		path := writeTestConfig(t, testPassword)
		reportPath := filepath.Join(t.TempDir(), "reports", "crack.md")

		stdout, _, err := executeRoot(t, "crack", "-c", path, "--no-save", "-m", "-o", reportPath)
		if err != nil {
			t.Fatalf("crack error = %v", err)
		}

		content, err := os.ReadFile(reportPath)
		if err != nil {
			t.Fatalf("failed to read report: %v", err)
		}
		if !strings.Contains(string(content), testPassword) {
			t.Error("expected password in markdown report")
		}
		if runtime.GOOS != "windows" {
			info, err := os.Stat(reportPath)
			if err != nil {
				t.Fatalf("failed to stat report: %v", err)
			}
			if perm := info.Mode().Perm(); perm != 0600 {
				t.Errorf("expected permissions 0600, got %o", perm)
			}
		}

		// stdout carries a summary without the decrypted message.
		if !strings.Contains(stdout, testPassword) {
			t.Errorf("expected summary on stdout, got:\n%s", stdout)
		}
		if strings.Contains(stdout, testPlaintext) {
			t.Error("summary must not contain the decrypted message")
		}
	})

	t.Run("verbose logs redact the password", func(t *testing.T) {
		t.Parallel()
		path := writeTestConfig(t, testPassword)

		_, stderr, err := executeRoot(t, "crack", "-v", "-c", path, "--no-save", "--progress-interval", "0")
		if err != nil {
			t.Fatalf("crack error = %v", err)
		}
		if !strings.Contains(stderr, "candidate matched") {
			t.Errorf("expected debug log of the match, got:\n%s", stderr)
		}
		if !strings.Contains(stderr, log.MaskValue) {
			t.Errorf("expected redacted attribute, got:\n%s", stderr)
		}
		if strings.Contains(stderr, testPassword) {
			t.Errorf("password leaked to the log:\n%s", stderr)
		}
	})

	t.Run("conflicting formats", func(t *testing.T) {
		t.Parallel()
		path := writeTestConfig(t, testPassword)

		_, _, err := executeRoot(t, "crack", "-c", path, "--json", "--markdown")
		if !errors.Is(err, config.ErrConflictingReportFormats) {
			t.Errorf("expected ErrConflictingReportFormats, got %v", err)
		}
	})

	t.Run("invalid mode", func(t *testing.T) {
		t.Parallel()
		path := writeTestConfig(t, testPassword)

		_, _, err := executeRoot(t, "crack", "-c", path, "--mode", "fast")
		if !errors.Is(err, config.ErrInvalidMode) {
			t.Errorf("expected ErrInvalidMode, got %v", err)
		}
	})

	t.Run("rejects arguments", func(t *testing.T) {
		t.Parallel()
		if _, _, err := executeRoot(t, "crack", "extra"); err == nil {
			t.Error("expected error for positional argument")
		}
	})
}

// TestRunCrackCancelled tests that a cancelled attack still reports and
// records its partial result.
func TestRunCrackCancelled(t *testing.T) {
	t.Parallel()

	cmd := NewCrackCmd()
	if err := cmd.ParseFlags([]string{"--config", writeTestConfig(t, testPassword), "--db-dir", t.TempDir()}); err != nil {
		t.Fatalf("failed to parse flags: %v", err)
	}
	cfg, err := buildConfig(cmd)
	if err != nil {
		t.Fatalf("buildConfig() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var stdout, stderr bytes.Buffer
	err = runCrack(ctx, cfg, quietLogger(), &stdout, &stderr)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if !strings.Contains(stdout.String(), "cancelled") {
		t.Errorf("expected cancelled report, got:\n%s", stdout.String())
	}

	runs := storedRuns(t, cfg.DBDir)
	if len(runs) != 1 {
		t.Fatalf("expected 1 stored run, got %d", len(runs))
	}
	if runs[0].Result.State != model.StateCancelled {
		t.Errorf("stored state = %v, want cancelled", runs[0].Result.State)
	}
}
