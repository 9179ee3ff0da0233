package model

import (
	"bytes"
	"errors"
)

// Target validation errors.
// These are configuration errors: an attack never starts with an invalid Target.
var (
	// ErrEmptySalt is returned when the target has no salt bytes.
	ErrEmptySalt = errors.New("invalid target: salt must not be empty")

	// ErrEmptyCiphertext is returned when the target has no Fernet token.
	ErrEmptyCiphertext = errors.New("invalid target: ciphertext must not be empty")

	// ErrInvalidIterations is returned when the KDF iteration count is not positive.
	ErrInvalidIterations = errors.New("invalid target: iteration count must be positive")
)

// Target is the fixed cryptographic material of one attack run.
// It is constructed once before the attack starts and never mutated:
// all fields are unexported and accessors hand out copies.
type Target struct {
	salt       []byte
	ciphertext []byte
	iterations int
}

// NewTarget validates and copies the given material into a Target.
func NewTarget(salt, ciphertext []byte, iterations int) (*Target, error) {
	if len(salt) == 0 {
		return nil, ErrEmptySalt
	}
	if len(bytes.TrimSpace(ciphertext)) == 0 {
		return nil, ErrEmptyCiphertext
	}
	if iterations <= 0 {
		return nil, ErrInvalidIterations
	}

	return &Target{
		salt:       bytes.Clone(salt),
		ciphertext: bytes.Clone(bytes.TrimSpace(ciphertext)),
		iterations: iterations,
	}, nil
}

// Salt returns a copy of the KDF salt.
func (t *Target) Salt() []byte {
	return bytes.Clone(t.salt)
}

// Ciphertext returns a copy of the Fernet token.
func (t *Target) Ciphertext() []byte {
	return bytes.Clone(t.ciphertext)
}

// Iterations returns the PBKDF2 iteration count.
func (t *Target) Iterations() int {
	return t.iterations
}
