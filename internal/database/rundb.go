package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/nao1215/fernetcrack/internal/model"
)

// FileName is the database file name inside the database directory.
const FileName = "fernetcrack.db"

// RunDB provides SQLite-based storage for benchmarks and attack summaries.
type RunDB struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures RunDB behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates a RunDB in the specified directory.
// If CreateIfNotExists is true, the directory and database file are created.
// If CreateIfNotExists is false and the database doesn't exist, an error is returned.
func Open(dbDir string, opts Options) (*RunDB, error) {
	dbPath := filepath.Join(dbDir, FileName)

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("database not found at %s (use CreateIfNotExists option to create)", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// mode=rw refuses to create a missing file; mode=rwc allows it.
	dsn := dbPath + "?mode=rw"
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(1) // SQLite only supports one writer
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	rdb := &RunDB{
		db:     db,
		dbPath: dbPath,
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := rdb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return rdb, nil
}

// Path returns the path of the database file.
func (rdb *RunDB) Path() string {
	return rdb.dbPath
}

// Close closes the database connection.
func (rdb *RunDB) Close() error {
	return rdb.db.Close()
}

// createTables creates the database schema if it doesn't exist.
func (rdb *RunDB) createTables() error {
	schema := `
	-- Benchmarks store measured verification throughput
	CREATE TABLE IF NOT EXISTS benchmarks (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		iterations INTEGER NOT NULL,
		workers INTEGER NOT NULL DEFAULT 1,
		samples INTEGER NOT NULL,
		elapsed_ns INTEGER NOT NULL,
		rate REAL NOT NULL,
		measured_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_benchmarks_iterations ON benchmarks(iterations);

	-- Attack runs store the summary of finished attacks as JSON
	CREATE TABLE IF NOT EXISTS attack_runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		mode TEXT NOT NULL,
		state TEXT NOT NULL,
		found INTEGER NOT NULL DEFAULT 0,
		attempts INTEGER NOT NULL,
		total INTEGER NOT NULL,
		iterations INTEGER NOT NULL,
		workers INTEGER NOT NULL DEFAULT 1,
		started_at TEXT NOT NULL,
		recorded_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		words_json TEXT,
		result_json TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_attack_runs_state ON attack_runs(state);
	`

	_, err := rdb.db.ExecContext(context.Background(), schema)
	return err
}

// SaveBenchmark stores a benchmark measurement and sets its ID.
func (rdb *RunDB) SaveBenchmark(ctx context.Context, b *model.BenchmarkResult) (int64, error) {
	query := `
	INSERT INTO benchmarks (iterations, workers, samples, elapsed_ns, rate, measured_at)
	VALUES (?, ?, ?, ?, ?, ?)
	`

	measuredAt := b.MeasuredAt
	if measuredAt.IsZero() {
		measuredAt = time.Now()
	}

	result, err := rdb.db.ExecContext(ctx, query,
		b.Iterations,
		b.Workers,
		int64(b.Samples), //nolint:gosec // sample counts are far below MaxInt64
		int64(b.Elapsed),
		b.Rate,
		measuredAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to save benchmark: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get benchmark id: %w", err)
	}
	b.ID = id
	return id, nil
}

// LatestBenchmark returns the most recent benchmark measured with the given
// iteration count. It returns nil if there is none.
func (rdb *RunDB) LatestBenchmark(ctx context.Context, iterations int) (*model.BenchmarkResult, error) {
	query := `
	SELECT id, iterations, workers, samples, elapsed_ns, rate, measured_at
	FROM benchmarks
	WHERE iterations = ?
	ORDER BY id DESC
	LIMIT 1
	`

	b, err := scanBenchmark(rdb.db.QueryRowContext(ctx, query, iterations))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get benchmark: %w", err)
	}
	return b, nil
}

// ListBenchmarks returns all benchmarks, newest first.
func (rdb *RunDB) ListBenchmarks(ctx context.Context) ([]*model.BenchmarkResult, error) {
	query := `
	SELECT id, iterations, workers, samples, elapsed_ns, rate, measured_at
	FROM benchmarks
	ORDER BY id DESC
	`

	rows, err := rdb.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list benchmarks: %w", err)
	}
	defer rows.Close()

	var results []*model.BenchmarkResult
	for rows.Next() {
		b, err := scanBenchmark(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan benchmark: %w", err)
		}
		results = append(results, b)
	}

	return results, rows.Err()
}

// rowScanner is implemented by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanBenchmark(row rowScanner) (*model.BenchmarkResult, error) {
	var (
		b          model.BenchmarkResult
		samples    int64
		elapsed    int64
		measuredAt string
	)
	if err := row.Scan(&b.ID, &b.Iterations, &b.Workers, &samples, &elapsed, &b.Rate, &measuredAt); err != nil {
		return nil, err
	}
	b.Samples = uint64(samples) //nolint:gosec // stored from a uint64
	b.Elapsed = time.Duration(elapsed)
	b.MeasuredAt = parseTimestamp(measuredAt)
	return &b, nil
}

// AttackRun is the stored summary of one finished attack.
type AttackRun struct {
	// ID is the unique identifier of the run in the database.
	ID int64

	// Iterations is the PBKDF2 iteration count of the target.
	Iterations int

	// Workers is the number of concurrent verifications used.
	Workers int

	// Words is the resolved wordlist the attack ran on.
	Words []string

	// Result is the outcome of the run. The recovered plaintext is not stored.
	Result *model.AttackResult

	// RecordedAt is when the run was stored.
	RecordedAt time.Time
}

// SaveAttackRun stores the summary of a finished attack and sets its ID.
func (rdb *RunDB) SaveAttackRun(ctx context.Context, run *AttackRun) (int64, error) {
	if run.Result == nil {
		return 0, errors.New("attack run has no result")
	}

	stored := *run.Result
	stored.Plaintext = nil
	resultJSON, err := json.Marshal(stored)
	if err != nil {
		return 0, fmt.Errorf("failed to serialize result: %w", err)
	}
	wordsJSON, err := json.Marshal(run.Words)
	if err != nil {
		return 0, fmt.Errorf("failed to serialize words: %w", err)
	}

	query := `
	INSERT INTO attack_runs (mode, state, found, attempts, total, iterations, workers, started_at, words_json, result_json)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := rdb.db.ExecContext(ctx, query,
		stored.Mode,
		stored.State.String(),
		stored.Found,
		int64(stored.Attempts), //nolint:gosec // bounded by the candidate space
		int64(stored.Total),    //nolint:gosec // bounded by the candidate space
		run.Iterations,
		run.Workers,
		stored.StartedAt.UTC().Format(time.RFC3339Nano),
		string(wordsJSON),
		string(resultJSON),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to save attack run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get attack run id: %w", err)
	}
	run.ID = id
	return id, nil
}

// ListAttackRuns returns stored attack runs, newest first.
// A positive limit caps the number of runs returned.
func (rdb *RunDB) ListAttackRuns(ctx context.Context, limit int) ([]*AttackRun, error) {
	query := `
	SELECT id, iterations, workers, recorded_at, words_json, result_json
	FROM attack_runs
	ORDER BY id DESC
	`
	args := []any{}
	if limit > 0 {
		query += "LIMIT ?"
		args = append(args, limit)
	}

	rows, err := rdb.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list attack runs: %w", err)
	}
	defer rows.Close()

	var runs []*AttackRun
	for rows.Next() {
		run, err := scanAttackRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attack run: %w", err)
		}
		runs = append(runs, run)
	}

	return runs, rows.Err()
}

// GetAttackRun retrieves an attack run by its database ID.
// It returns nil if the run does not exist.
func (rdb *RunDB) GetAttackRun(ctx context.Context, id int64) (*AttackRun, error) {
	query := `
	SELECT id, iterations, workers, recorded_at, words_json, result_json
	FROM attack_runs
	WHERE id = ?
	`

	run, err := scanAttackRun(rdb.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get attack run: %w", err)
	}
	return run, nil
}

func scanAttackRun(row rowScanner) (*AttackRun, error) {
	var (
		run        AttackRun
		recordedAt string
		wordsJSON  sql.NullString
		resultJSON string
	)
	if err := row.Scan(&run.ID, &run.Iterations, &run.Workers, &recordedAt, &wordsJSON, &resultJSON); err != nil {
		return nil, err
	}
	run.RecordedAt = parseTimestamp(recordedAt)

	if wordsJSON.Valid && wordsJSON.String != "" {
		if err := json.Unmarshal([]byte(wordsJSON.String), &run.Words); err != nil {
			return nil, fmt.Errorf("failed to parse words: %w", err)
		}
	}

	var result model.AttackResult
	if err := json.Unmarshal([]byte(resultJSON), &result); err != nil {
		return nil, fmt.Errorf("failed to parse result: %w", err)
	}
	run.Result = &result

	return &run, nil
}

// timestampFormats contains the timestamp formats that SQLite may return.
// The order matters: more specific formats should come first.
var timestampFormats = []string{
	"2006-01-02 15:04:05",     // SQLite default datetime format
	"2006-01-02T15:04:05Z",    // ISO 8601 with Z suffix
	"2006-01-02T15:04:05",     // ISO 8601 without timezone
	time.RFC3339,              // Full RFC3339 format
	time.RFC3339Nano,          // RFC3339 with nanoseconds
	"2006-01-02 15:04:05.999", // SQLite with milliseconds
}

// parseTimestamp attempts to parse a timestamp string using multiple formats.
// If parsing fails with all formats, returns zero time.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
