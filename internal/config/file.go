package config

import (
	"encoding/hex"
	"fmt"
	"strings"
	"time"
)

// TargetSection describes the token under attack.
type TargetSection struct {
	// Salt is the PBKDF2 salt, hex encoded.
	Salt string `yaml:"salt,omitempty"`

	// Token is the Fernet token.
	Token string `yaml:"token,omitempty"`

	// Iterations is the PBKDF2 iteration count.
	Iterations int `yaml:"iterations,omitempty"`
}

// DictionarySection describes the base words and transformation sets.
type DictionarySection struct {
	Words     []string `yaml:"words,omitempty"`
	Exclude   []string `yaml:"exclude,omitempty"`
	QuickWord string   `yaml:"quickWord,omitempty"`
	Symbols   []string `yaml:"symbols,omitempty"`
	Digits    []string `yaml:"digits,omitempty"`
}

// AttackSection describes how the attack runs.
type AttackSection struct {
	// Mode is "quick" or "full".
	Mode string `yaml:"mode,omitempty"`

	// Workers is the number of concurrent verifications.
	Workers int `yaml:"workers,omitempty"`

	// ProgressInterval is the number of attempts between progress lines.
	ProgressInterval int `yaml:"progressInterval,omitempty"`

	// MaxAttempts stops the attack after this many attempts.
	MaxAttempts int64 `yaml:"maxAttempts,omitempty"`

	// MaxDuration stops the attack after this long, in time.ParseDuration form.
	MaxDuration string `yaml:"maxDuration,omitempty"`
}

// File represents the structure of the .fernetcrack configuration file.
type File struct {
	Target     TargetSection     `yaml:"target,omitempty"`
	Dictionary DictionarySection `yaml:"dictionary,omitempty"`
	Attack     AttackSection     `yaml:"attack,omitempty"`
}

// Apply overlays the values set in the file onto cfg. Zero values leave the
// corresponding setting untouched, except Exclude, where an explicit empty
// list clears the default exclusions.
func (f *File) Apply(cfg *Config) error {
	if f.Target.Salt != "" {
		salt, err := hex.DecodeString(strings.TrimSpace(f.Target.Salt))
		if err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidSalt, err)
		}
		cfg.Salt = salt
	}
	if f.Target.Token != "" {
		cfg.Ciphertext = strings.TrimSpace(f.Target.Token)
	}
	if f.Target.Iterations != 0 {
		cfg.Iterations = f.Target.Iterations
	}

	if len(f.Dictionary.Words) > 0 {
		cfg.Words = f.Dictionary.Words
	}
	if f.Dictionary.Exclude != nil {
		cfg.Exclude = f.Dictionary.Exclude
	}
	if f.Dictionary.QuickWord != "" {
		cfg.QuickWord = f.Dictionary.QuickWord
	}
	if len(f.Dictionary.Symbols) > 0 {
		cfg.Symbols = f.Dictionary.Symbols
	}
	if len(f.Dictionary.Digits) > 0 {
		cfg.Digits = f.Dictionary.Digits
	}

	if f.Attack.Mode != "" {
		cfg.Mode = Mode(strings.ToLower(f.Attack.Mode))
	}
	if f.Attack.Workers != 0 {
		cfg.Workers = f.Attack.Workers
	}
	if f.Attack.ProgressInterval != 0 {
		cfg.ProgressInterval = f.Attack.ProgressInterval
	}
	if f.Attack.MaxAttempts != 0 {
		cfg.MaxAttempts = f.Attack.MaxAttempts
	}
	if f.Attack.MaxDuration != "" {
		d, err := time.ParseDuration(f.Attack.MaxDuration)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidMaxDuration, err)
		}
		cfg.MaxDuration = d
	}

	return nil
}
