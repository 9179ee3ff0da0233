package model

import "fmt"

// State is the lifecycle state of an attack run.
//
// A run starts in StateRunning and ends in exactly one terminal state.
// StateSucceeded and StateExhausted are the two outcomes of a complete run;
// StateStopped and StateCancelled record runs that ended early because of a
// configured bound or the caller's cancellation.
type State int

const (
	// StateRunning is the initial state while candidates are being verified.
	StateRunning State = iota

	// StateSucceeded means a candidate decrypted the target.
	StateSucceeded

	// StateExhausted means every candidate was tried without success.
	StateExhausted

	// StateStopped means a max-attempts or max-duration bound ended the run.
	StateStopped

	// StateCancelled means the caller cancelled the run.
	StateCancelled
)

// String returns a human-readable representation of the state.
func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateSucceeded:
		return "succeeded"
	case StateExhausted:
		return "exhausted"
	case StateStopped:
		return "stopped"
	case StateCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Terminal reports whether no further transition can happen.
func (s State) Terminal() bool {
	return s != StateRunning
}

// MarshalText encodes the state as its string name.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a state from its string name.
func (s *State) UnmarshalText(text []byte) error {
	parsed, err := ParseState(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// ParseState converts a state name back into a State.
func ParseState(name string) (State, error) {
	for _, s := range []State{StateRunning, StateSucceeded, StateExhausted, StateStopped, StateCancelled} {
		if s.String() == name {
			return s, nil
		}
	}
	return StateRunning, fmt.Errorf("unknown attack state %q", name)
}
