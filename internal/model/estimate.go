package model

import "time"

// WordCount is the closed-form size of the candidate space of one base word.
type WordCount struct {
	// Word is the base word from the wordlist.
	Word string `json:"word"`

	// Length is the word length in characters.
	Length int `json:"length"`

	// Capitalizations is the number of single-letter uppercase variants (n).
	Capitalizations uint64 `json:"capitalizations"`

	// SymbolInsertions is |symbols| * (n+1).
	SymbolInsertions uint64 `json:"symbol_insertions"`

	// DigitInsertions is |digits| * (n+2).
	DigitInsertions uint64 `json:"digit_insertions"`

	// Total is the product of the three factors.
	Total uint64 `json:"total"`
}

// Estimate is the planned cost of exhausting a candidate space.
type Estimate struct {
	// Breakdown lists the per-word counts in wordlist order.
	Breakdown []WordCount `json:"breakdown"`

	// Total is the sum of all per-word totals.
	Total uint64 `json:"total"`

	// Rate is the measured throughput in attempts per second.
	Rate float64 `json:"rate"`

	// WorstCaseSeconds is Total / Rate: the password is the last candidate.
	WorstCaseSeconds float64 `json:"worst_case_seconds"`

	// AverageCaseSeconds is half the worst case: the password is in the middle.
	AverageCaseSeconds float64 `json:"average_case_seconds"`
}

// WorstCase returns the worst-case estimate as a duration.
func (e *Estimate) WorstCase() time.Duration {
	return secondsToDuration(e.WorstCaseSeconds)
}

// AverageCase returns the average-case estimate as a duration.
func (e *Estimate) AverageCase() time.Duration {
	return secondsToDuration(e.AverageCaseSeconds)
}

func secondsToDuration(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
