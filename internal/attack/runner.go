package attack

import (
	"context"
	"iter"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/nao1215/fernetcrack/internal/model"
	"github.com/nao1215/fernetcrack/internal/verify"
	"golang.org/x/sync/errgroup"
)

const (
	// DefaultProgressInterval is the number of attempts between progress reports.
	DefaultProgressInterval = 5000

	// DefaultWorkers runs the attack sequentially.
	DefaultWorkers = 1
)

// Verifier decides whether a candidate decrypts the target.
// Implementations must be safe for concurrent use when workers > 1.
type Verifier interface {
	Verify(candidate string) verify.Outcome
}

// Runner executes attacks against one verifier.
type Runner struct {
	// verifier checks each candidate.
	verifier Verifier

	// workers is the maximum number of concurrent verifications.
	workers int

	// interval is the progress cadence in attempts. Zero disables progress.
	interval uint64

	// maxAttempts stops the run after this many attempts. Zero means unbounded.
	maxAttempts uint64

	// maxDuration stops the run after this much time. Zero means unbounded.
	maxDuration time.Duration

	onProgress func(model.Progress)
	onAttempt  func(attempts uint64)

	// now is the clock; tests replace it to control elapsed time.
	now func() time.Time

	logger *slog.Logger
}

// Option configures a Runner.
type Option func(*Runner)

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		r.logger = logger
	}
}

// WithWorkers sets the number of concurrent verifications.
// Values below 1 are ignored.
func WithWorkers(n int) Option {
	return func(r *Runner) {
		if n > 0 {
			r.workers = n
		}
	}
}

// WithProgressInterval sets how many attempts pass between progress reports.
// Zero disables progress reporting.
func WithProgressInterval(n uint64) Option {
	return func(r *Runner) {
		r.interval = n
	}
}

// WithProgressFunc registers a callback invoked every interval attempts.
func WithProgressFunc(fn func(model.Progress)) Option {
	return func(r *Runner) {
		r.onProgress = fn
	}
}

// WithAttemptFunc registers a callback invoked after every counted attempt.
func WithAttemptFunc(fn func(attempts uint64)) Option {
	return func(r *Runner) {
		r.onAttempt = fn
	}
}

// WithMaxAttempts bounds the number of candidates verified.
func WithMaxAttempts(n uint64) Option {
	return func(r *Runner) {
		r.maxAttempts = n
	}
}

// WithMaxDuration bounds the wall-clock duration of a run.
func WithMaxDuration(d time.Duration) Option {
	return func(r *Runner) {
		if d > 0 {
			r.maxDuration = d
		}
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(r *Runner) {
		if now != nil {
			r.now = now
		}
	}
}

// NewRunner creates a Runner with the given options.
func NewRunner(v Verifier, opts ...Option) *Runner {
	r := &Runner{
		verifier: v,
		workers:  DefaultWorkers,
		interval: DefaultProgressInterval,
		now:      time.Now,
	}

	for _, opt := range opts {
		opt(r)
	}

	if r.logger == nil {
		r.logger = slog.Default()
	}

	return r
}

// Workers returns the configured number of concurrent verifications.
func (r *Runner) Workers() int {
	return r.workers
}

// Run attacks the target with the given candidates. total is the size of
// the candidate space, recorded in the result for coverage reporting.
//
// The returned result is always non-nil when err is nil or a context error.
// If ctx is cancelled, Run returns the partial result in StateCancelled
// together with ctx.Err().
func (r *Runner) Run(ctx context.Context, candidates iter.Seq[string], total uint64) (*model.AttackResult, error) {
	if r.verifier == nil {
		return nil, ErrNilVerifier
	}

	start := r.now()
	t := &tally{
		runner: r,
		start:  start,
		result: &model.AttackResult{
			State:     model.StateRunning,
			Total:     total,
			StartedAt: start,
		},
	}

	r.logger.Debug("attack started",
		"total", total,
		"workers", r.workers,
		"progress_interval", r.interval,
	)

	if r.workers <= 1 {
		r.runSequential(ctx, candidates, t)
	} else {
		r.runParallel(ctx, candidates, t)
	}

	result := t.result
	result.Elapsed = r.now().Sub(start)

	r.logger.Debug("attack finished",
		"state", result.State.String(),
		"attempts", result.Attempts,
		"elapsed", result.Elapsed,
	)

	if result.State == model.StateCancelled {
		return result, ctx.Err()
	}
	return result, nil
}

func (r *Runner) runSequential(ctx context.Context, candidates iter.Seq[string], t *tally) {
	for candidate := range candidates {
		if t.halt(ctx) {
			return
		}
		t.count(candidate)

		out := r.verifier.Verify(candidate)
		if out.Match {
			t.succeed(candidate, out.Plaintext)
			return
		}
	}
	t.exhaust()
}

type match struct {
	password  string
	plaintext []byte
}

func (r *Runner) runParallel(ctx context.Context, candidates iter.Seq[string], t *tally) {
	var (
		found   atomic.Bool
		skipped atomic.Uint64
		matches = make(chan match, 1)
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)

	for candidate := range candidates {
		if found.Load() || t.halt(gctx) {
			break
		}
		t.count(candidate)

		g.Go(func() error {
			if found.Load() {
				skipped.Add(1)
				return nil
			}
			out := r.verifier.Verify(candidate)
			if out.Match && found.CompareAndSwap(false, true) {
				matches <- match{password: candidate, plaintext: out.Plaintext}
			}
			return nil
		})
	}

	_ = g.Wait() //nolint:errcheck // workers never return an error

	// Attempts skipped after the match was found were never verified.
	t.result.Attempts -= skipped.Load()

	select {
	case m := <-matches:
		t.succeed(m.password, m.plaintext)
	default:
		if t.result.State == model.StateRunning {
			t.exhaust()
		}
	}
}

// tally is the single writer of an attack's counters and result.
type tally struct {
	runner *Runner
	start  time.Time
	result *model.AttackResult
}

// halt reports whether the run must end before the next candidate and
// records why.
func (t *tally) halt(ctx context.Context) bool {
	r := t.runner
	switch {
	case ctx.Err() != nil:
		t.result.State = model.StateCancelled
	case r.maxAttempts > 0 && t.result.Attempts >= r.maxAttempts:
		r.logger.Debug("attempt bound reached", "max_attempts", r.maxAttempts)
		t.result.State = model.StateStopped
	case r.maxDuration > 0 && r.now().Sub(t.start) >= r.maxDuration:
		r.logger.Debug("duration bound reached", "max_duration", r.maxDuration)
		t.result.State = model.StateStopped
	default:
		return false
	}
	return true
}

// count records one attempt before its verification and emits progress
// on the configured cadence.
func (t *tally) count(candidate string) {
	r := t.runner
	t.result.Attempts++

	if r.onAttempt != nil {
		r.onAttempt(t.result.Attempts)
	}
	if r.interval > 0 && t.result.Attempts%r.interval == 0 && r.onProgress != nil {
		r.onProgress(model.NewProgress(t.result.Attempts, r.now().Sub(t.start), candidate))
	}
}

func (t *tally) succeed(password string, plaintext []byte) {
	t.result.State = model.StateSucceeded
	t.result.Found = true
	t.result.Password = password
	t.result.Plaintext = plaintext
	t.runner.logger.Debug("candidate matched", "attempts", t.result.Attempts, "password", password)
}

func (t *tally) exhaust() {
	t.result.State = model.StateExhausted
}
