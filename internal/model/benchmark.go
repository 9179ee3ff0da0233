package model

import "time"

// BenchmarkResult is a measured verification throughput against one
// iteration count. Estimates are only meaningful for the same count.
type BenchmarkResult struct {
	// ID is the database identifier, zero until stored.
	ID int64 `json:"id,omitempty"`

	// Samples is the number of dummy candidates verified.
	Samples uint64 `json:"samples"`

	// Elapsed is the total time spent verifying them.
	Elapsed time.Duration `json:"elapsed_ns"`

	// Rate is Samples / Elapsed in attempts per second (H/s).
	Rate float64 `json:"rate"`

	// Iterations is the PBKDF2 iteration count the measurement used.
	Iterations int `json:"iterations"`

	// Workers is the number of concurrent verifiers used.
	Workers int `json:"workers"`

	// MeasuredAt is when the measurement finished.
	MeasuredAt time.Time `json:"measured_at"`
}

// PerAttempt returns the average time spent on one candidate.
func (b *BenchmarkResult) PerAttempt() time.Duration {
	if b.Samples == 0 {
		return 0
	}
	return b.Elapsed / time.Duration(b.Samples)
}

// RatePerMinute returns the throughput in attempts per minute.
func (b *BenchmarkResult) RatePerMinute() float64 {
	return b.Rate * 60
}
