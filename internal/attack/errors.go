package attack

import "errors"

var (
	// ErrNilVerifier is returned when a runner has nothing to verify with.
	ErrNilVerifier = errors.New("verifier is nil")

	// ErrNoSamples is returned when a benchmark is asked for zero samples.
	ErrNoSamples = errors.New("benchmark requires at least one sample")
)
