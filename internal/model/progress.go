package model

import "time"

// Progress is a periodic observation of a running attack.
type Progress struct {
	// Attempts is the number of candidates counted so far.
	Attempts uint64 `json:"attempts"`

	// Elapsed is the wall-clock time since the attack started.
	Elapsed time.Duration `json:"elapsed_ns"`

	// Rate is the throughput in attempts per second (H/s).
	Rate float64 `json:"rate"`

	// Last is the candidate that triggered this observation.
	Last string `json:"last"`
}

// NewProgress builds an observation and derives its throughput.
func NewProgress(attempts uint64, elapsed time.Duration, last string) Progress {
	return Progress{
		Attempts: attempts,
		Elapsed:  elapsed,
		Rate:     Throughput(attempts, elapsed),
		Last:     last,
	}
}

// Throughput returns attempts divided by elapsed seconds.
// A non-positive elapsed time yields 0 rather than an infinite rate.
func Throughput(attempts uint64, elapsed time.Duration) float64 {
	if elapsed <= 0 {
		return 0
	}
	return float64(attempts) / elapsed.Seconds()
}
