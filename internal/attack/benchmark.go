package attack

import (
	"context"
	"iter"
	"strconv"

	"github.com/nao1215/fernetcrack/internal/model"
)

const (
	// DefaultBenchmarkSamples is the number of dummy candidates verified
	// by a benchmark.
	DefaultBenchmarkSamples = 1000

	// BenchmarkProgressInterval is the progress cadence of a benchmark.
	BenchmarkProgressInterval = 100

	benchmarkPrefix = "benchmark_password_"
)

// Dummies yields n synthetic candidates named benchmark_password_0 through
// benchmark_password_{n-1}.
func Dummies(n uint64) iter.Seq[string] {
	return func(yield func(string) bool) {
		for i := range n {
			if !yield(benchmarkPrefix + strconv.FormatUint(i, 10)) {
				return
			}
		}
	}
}

// Benchmark verifies samples dummy candidates against v and reports the
// observed throughput. Progress defaults to every BenchmarkProgressInterval
// attempts; opts are applied after that default and may override it.
//
// The returned result leaves Iterations unset; the verifier does not
// expose it.
func Benchmark(ctx context.Context, v Verifier, samples uint64, opts ...Option) (*model.BenchmarkResult, error) {
	if samples == 0 {
		return nil, ErrNoSamples
	}

	opts = append([]Option{WithProgressInterval(BenchmarkProgressInterval)}, opts...)
	runner := NewRunner(v, opts...)

	result, err := runner.Run(ctx, Dummies(samples), samples)
	if err != nil {
		return nil, err
	}

	return &model.BenchmarkResult{
		Samples:    result.Attempts,
		Elapsed:    result.Elapsed,
		Rate:       result.Rate(),
		Workers:    runner.Workers(),
		MeasuredAt: runner.now(),
	}, nil
}
