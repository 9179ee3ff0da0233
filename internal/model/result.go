package model

import (
	"encoding/json"
	"time"
)

// AttackResult accumulates across one attack run and is finalized when the
// generator is exhausted, a match is found, or the run is cut short.
type AttackResult struct {
	// Mode is the attack mode the wordlist was resolved from ("quick" or "full").
	Mode string `json:"mode,omitempty"`

	// State is the terminal state of the run.
	State State `json:"state"`

	// Found is true when a candidate decrypted the target.
	Found bool `json:"found"`

	// Password is the candidate that decrypted the target.
	Password string `json:"password,omitempty"`

	// Plaintext is the recovered message.
	Plaintext []byte `json:"-"`

	// Attempts is the number of candidates verified.
	Attempts uint64 `json:"attempts"`

	// Total is the closed-form size of the candidate space.
	Total uint64 `json:"total"`

	// Elapsed is the wall-clock duration of the run.
	Elapsed time.Duration `json:"elapsed_ns"`

	// StartedAt is when the first candidate was pulled.
	StartedAt time.Time `json:"started_at"`
}

// MarshalJSON encodes the result with the plaintext rendered as text.
func (r AttackResult) MarshalJSON() ([]byte, error) {
	type alias AttackResult
	return json.Marshal(struct {
		alias
		Plaintext string `json:"plaintext,omitempty"`
	}{
		alias:     alias(r),
		Plaintext: string(r.Plaintext),
	})
}

// UnmarshalJSON decodes a result produced by MarshalJSON.
func (r *AttackResult) UnmarshalJSON(data []byte) error {
	type alias AttackResult
	aux := struct {
		*alias
		Plaintext string `json:"plaintext,omitempty"`
	}{alias: (*alias)(r)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if aux.Plaintext != "" {
		r.Plaintext = []byte(aux.Plaintext)
	}
	return nil
}

// Rate returns the overall throughput of the run in attempts per second.
func (r *AttackResult) Rate() float64 {
	return Throughput(r.Attempts, r.Elapsed)
}

// Coverage returns the fraction of the candidate space that was verified.
// It returns 0 when the total is unknown.
func (r *AttackResult) Coverage() float64 {
	if r.Total == 0 {
		return 0
	}
	return float64(r.Attempts) / float64(r.Total)
}
