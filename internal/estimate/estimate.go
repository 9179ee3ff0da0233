package estimate

import (
	"errors"
	"fmt"
	"math"

	"github.com/nao1215/fernetcrack/internal/model"
)

// ErrInvalidRate is returned when the throughput is not a positive number.
var ErrInvalidRate = errors.New("rate must be a positive number of attempts per second")

// New builds an Estimate for the given per-word breakdown and throughput
// (attempts per second). The worst case assumes the password is the last
// candidate; the average case assumes it sits in the middle.
func New(breakdown []model.WordCount, rate float64) (*model.Estimate, error) {
	if rate <= 0 || math.IsNaN(rate) || math.IsInf(rate, 0) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRate, rate)
	}

	var total uint64
	for _, wc := range breakdown {
		total += wc.Total
	}

	worst := float64(total) / rate
	return &model.Estimate{
		Breakdown:          breakdown,
		Total:              total,
		Rate:               rate,
		WorstCaseSeconds:   worst,
		AverageCaseSeconds: worst / 2,
	}, nil
}

// FormatHMS renders seconds as "H hours, M minutes and S seconds",
// truncating to whole seconds.
func FormatHMS(seconds float64) string {
	if seconds < 0 || math.IsNaN(seconds) {
		seconds = 0
	}
	s := uint64(seconds)
	return fmt.Sprintf("%d hours, %d minutes and %d seconds", s/3600, s%3600/60, s%60)
}

// FormatMS renders seconds as "M minutes and S seconds", the form used in
// attack summaries.
func FormatMS(seconds float64) string {
	if seconds < 0 || math.IsNaN(seconds) {
		seconds = 0
	}
	s := uint64(seconds)
	return fmt.Sprintf("%d minutes and %d seconds", s/60, s%60)
}
