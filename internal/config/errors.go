package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() and abort a run before any
// candidate is tried. Callers use errors.Is() to tell them apart.
var (
	// ErrEmptySalt is returned when no salt is configured.
	ErrEmptySalt = errors.New("invalid target: salt is empty")

	// ErrInvalidSalt is returned when the salt in a config file is not hex.
	ErrInvalidSalt = errors.New("invalid target: salt must be hex encoded")

	// ErrEmptyCiphertext is returned when no Fernet token is configured.
	ErrEmptyCiphertext = errors.New("invalid target: token is empty")

	// ErrMalformedToken is returned when the configured token cannot be a
	// Fernet token. No password could ever decrypt it.
	ErrMalformedToken = errors.New("invalid target: token is not a well-formed Fernet token")

	// ErrInvalidIterations is returned when the PBKDF2 iteration count is not positive.
	ErrInvalidIterations = errors.New("invalid target: iterations must be positive")

	// ErrEmptyWordlist is returned when the selected mode leaves no base word.
	ErrEmptyWordlist = errors.New("invalid dictionary: no base words to attack")

	// ErrInvalidSymbol is returned when the symbol set is empty or a symbol
	// is not exactly one character.
	ErrInvalidSymbol = errors.New("invalid dictionary: symbols must be single characters")

	// ErrInvalidDigit is returned when the digit set is empty or a digit
	// is not exactly one character.
	ErrInvalidDigit = errors.New("invalid dictionary: digits must be single characters")

	// ErrInvalidMode is returned for an attack mode other than quick or full.
	ErrInvalidMode = errors.New("invalid mode: must be quick or full")

	// ErrInvalidWorkers is returned when the worker count is not positive.
	ErrInvalidWorkers = errors.New("invalid workers: must be positive")

	// ErrInvalidProgressInterval is returned when the progress interval is negative.
	// Use 0 to disable progress reports.
	ErrInvalidProgressInterval = errors.New("invalid progress interval: must be non-negative")

	// ErrInvalidMaxAttempts is returned when the attempt bound is negative.
	ErrInvalidMaxAttempts = errors.New("invalid max attempts: must be non-negative")

	// ErrInvalidMaxDuration is returned when the duration bound is negative.
	ErrInvalidMaxDuration = errors.New("invalid max duration: must be non-negative")

	// ErrConflictingReportFormats is returned when both --json and --markdown
	// are specified. Only one output format can be used at a time.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")
)
