package config

import (
	"encoding/hex"
	"path/filepath"
	"slices"
	"time"
	"unicode/utf8"

	"github.com/adrg/xdg"
	"github.com/nao1215/fernetcrack/internal/verify"
)

// Mode selects the wordlist an attack runs on.
type Mode string

const (
	// ModeQuick attacks the single QuickWord.
	ModeQuick Mode = "quick"

	// ModeFull attacks every word in Words except those in Exclude.
	ModeFull Mode = "full"
)

// Default configuration values. They reproduce the reference exercise.
const (
	// AppName is the application name used for XDG directory paths.
	AppName = "fernetcrack"

	// DefaultIterations is the PBKDF2 iteration count of the reference target.
	DefaultIterations = 100000

	// DefaultSaltHex is the reference salt, hex encoded.
	DefaultSaltHex = "d2ff737eb4f2d3dae3162827e6adefaf"

	// DefaultToken is the reference Fernet token.
	DefaultToken = "gAAAAABnE2P-qqJT-HudMbLcykzIx83XqZNEt6UqfyBBzhYKvlF9WSx8FJUvUmatzuY1-io9RHWaj7RVBuAKTWRAVT9GpGC--TZUXk387qeTC2jIJOfUrwSX3eGEb1EVFZBOqALd8EKS1CFWUoF4NpzKsc3eLeCnXihb-w6Boqi835uNzN6mZz4iP-6sSkhNxHP-TbrG-BNgjMIyeRDjSLAZhEAJoUGlz_QuOyyOYHMab9LUrXkHibU="

	// DefaultQuickWord is the base word of quick mode.
	DefaultQuickWord = "sicurezza"

	// DefaultMode runs the quick test.
	DefaultMode = ModeQuick

	// DefaultWorkers verifies candidates one at a time, in generator order.
	DefaultWorkers = 1

	// DefaultProgressInterval is the number of attempts between progress lines.
	DefaultProgressInterval = 5000
)

// DefaultWords returns the reference dictionary.
func DefaultWords() []string {
	return []string{"gatto", "giulia", "martina", "password", "pisa", "poesia", "qwerty", "sicurezza", "storia", "tavolo"}
}

// DefaultExclude returns the words left out of full mode by default.
func DefaultExclude() []string {
	return []string{"password"}
}

// DefaultSymbols returns the reference symbol set.
func DefaultSymbols() []string {
	return []string{"!", "$", "%", "&", "?", "^", "*", "+", "@", "#"}
}

// DefaultDigits returns the digits 0 through 9.
func DefaultDigits() []string {
	return []string{"0", "1", "2", "3", "4", "5", "6", "7", "8", "9"}
}

// Config holds all configuration options for fernetcrack.
// It is populated from defaults, the config file and CLI flags, and passed
// through the application rather than kept in global state.
type Config struct {
	// Salt is the PBKDF2 salt of the target.
	Salt []byte

	// Ciphertext is the Fernet token under attack.
	Ciphertext string

	// Iterations is the PBKDF2 iteration count of the target.
	Iterations int

	// Words is the ordered base dictionary for full mode.
	Words []string

	// Exclude lists words removed from Words in full mode.
	Exclude []string

	// QuickWord is the single base word of quick mode.
	QuickWord string

	// Symbols is the ordered symbol set; each entry is one character.
	Symbols []string

	// Digits is the ordered digit set; each entry is one character.
	Digits []string

	// Mode selects quick or full wordlist.
	Mode Mode

	// Workers is the number of concurrent verifications.
	// 1 preserves the strict generator order.
	Workers int

	// ProgressInterval is the number of attempts between progress reports.
	// 0 disables progress reports.
	ProgressInterval int

	// MaxAttempts stops the attack after this many attempts. 0 means unbounded.
	MaxAttempts int64

	// MaxDuration stops the attack after this much time. 0 means unbounded.
	MaxDuration time.Duration

	// Verbose enables detailed log output using slog.LevelDebug.
	// When false, only warnings and errors are logged.
	Verbose bool

	// JSONReport selects JSON output. Mutually exclusive with MarkdownReport.
	JSONReport bool

	// MarkdownReport selects Markdown output. Mutually exclusive with JSONReport.
	MarkdownReport bool

	// ReportFile is the output file path for the report.
	// When empty, the report is written to stdout.
	ReportFile string

	// ConfigFilePath is the path to the configuration file.
	// If empty, FindConfigFile searches the default locations.
	ConfigFilePath string

	// DBDir is the directory of the SQLite history database.
	// Defaults to the XDG data directory (~/.local/share/fernetcrack on Linux).
	DBDir string

	// SaveToDB records finished runs and benchmarks in the history database.
	SaveToDB bool
}

// NewConfig creates a Config with the reference defaults.
func NewConfig() *Config {
	salt, _ := hex.DecodeString(DefaultSaltHex) //nolint:errcheck // constant
	return &Config{
		Salt:             salt,
		Ciphertext:       DefaultToken,
		Iterations:       DefaultIterations,
		Words:            DefaultWords(),
		Exclude:          DefaultExclude(),
		QuickWord:        DefaultQuickWord,
		Symbols:          DefaultSymbols(),
		Digits:           DefaultDigits(),
		Mode:             DefaultMode,
		Workers:          DefaultWorkers,
		ProgressInterval: DefaultProgressInterval,
		DBDir:            XDGDataDir(),
		SaveToDB:         true,
	}
}

// Wordlist resolves the base words of the configured mode.
// Quick mode yields the single QuickWord; full mode yields Words in order
// with every excluded word removed.
func (c *Config) Wordlist() []string {
	switch c.Mode {
	case ModeQuick:
		if c.QuickWord == "" {
			return nil
		}
		return []string{c.QuickWord}
	case ModeFull:
		words := make([]string, 0, len(c.Words))
		for _, w := range c.Words {
			if !slices.Contains(c.Exclude, w) {
				words = append(words, w)
			}
		}
		return words
	default:
		return nil
	}
}

// XDGDataDir returns the XDG data directory for fernetcrack.
// On Linux: ~/.local/share/fernetcrack
// On macOS: ~/Library/Application Support/fernetcrack
// On Windows: %LOCALAPPDATA%\fernetcrack
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for fernetcrack.
// On Linux: ~/.config/fernetcrack
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks if the configuration is valid.
// It returns the first problem found as one of the sentinel errors.
func (c *Config) Validate() error {
	if len(c.Salt) == 0 {
		return ErrEmptySalt
	}
	if c.Ciphertext == "" {
		return ErrEmptyCiphertext
	}
	if !verify.WellFormed([]byte(c.Ciphertext)) {
		return ErrMalformedToken
	}
	if c.Iterations <= 0 {
		return ErrInvalidIterations
	}

	if c.Mode != ModeQuick && c.Mode != ModeFull {
		return ErrInvalidMode
	}
	if len(c.Wordlist()) == 0 {
		return ErrEmptyWordlist
	}
	if !singleCharacters(c.Symbols) {
		return ErrInvalidSymbol
	}
	if !singleCharacters(c.Digits) {
		return ErrInvalidDigit
	}

	if c.Workers <= 0 {
		return ErrInvalidWorkers
	}
	if c.ProgressInterval < 0 {
		return ErrInvalidProgressInterval
	}
	if c.MaxAttempts < 0 {
		return ErrInvalidMaxAttempts
	}
	if c.MaxDuration < 0 {
		return ErrInvalidMaxDuration
	}

	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}

	return nil
}

// singleCharacters reports whether set is non-empty and every entry is
// exactly one character.
func singleCharacters(set []string) bool {
	if len(set) == 0 {
		return false
	}
	for _, s := range set {
		if utf8.RuneCountInString(s) != 1 {
			return false
		}
	}
	return true
}
