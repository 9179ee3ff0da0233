package report

import (
	"io"

	"github.com/nao1215/fernetcrack/internal/model"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Writer defines the interface for report output.
type Writer interface {
	// WriteAttack outputs the result of an attack run.
	WriteAttack(result *model.AttackResult) (int, error)

	// WriteEstimate outputs the size and time cost of a candidate space.
	WriteEstimate(est *model.Estimate) (int, error)

	// WriteBenchmark outputs a throughput measurement. est may be nil;
	// when set, the estimate derived from the measurement follows it.
	WriteBenchmark(b *model.BenchmarkResult, est *model.Estimate) (int, error)
}

// MultiWriter writes to multiple Writers simultaneously.
// This is useful for outputting to both terminal and file.
type MultiWriter struct {
	writers []Writer
}

// NewMultiWriter creates a Writer that writes to all provided Writers.
func NewMultiWriter(writers ...Writer) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// WriteAttack outputs the attack result to all configured Writers.
// Stops on first error encountered.
func (m *MultiWriter) WriteAttack(result *model.AttackResult) (int, error) {
	return m.each(func(w Writer) (int, error) { return w.WriteAttack(result) })
}

// WriteEstimate outputs the estimate to all configured Writers.
func (m *MultiWriter) WriteEstimate(est *model.Estimate) (int, error) {
	return m.each(func(w Writer) (int, error) { return w.WriteEstimate(est) })
}

// WriteBenchmark outputs the benchmark to all configured Writers.
func (m *MultiWriter) WriteBenchmark(b *model.BenchmarkResult, est *model.Estimate) (int, error) {
	return m.each(func(w Writer) (int, error) { return w.WriteBenchmark(b, est) })
}

func (m *MultiWriter) each(write func(Writer) (int, error)) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := write(w)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// baseWriter provides common functionality for report writers.
type baseWriter struct {
	output io.Writer

	// printer formats numbers with thousands separators.
	printer *message.Printer
}

// newBaseWriter creates a baseWriter with the given output destination.
func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{
		output:  output,
		printer: message.NewPrinter(language.English),
	}
}

// count formats n with thousands separators (99000 -> "99,000").
func (b baseWriter) count(n uint64) string {
	return b.printer.Sprintf("%d", n)
}

// rate formats a throughput with two decimals and thousands separators.
func (b baseWriter) rate(r float64) string {
	return b.printer.Sprintf("%.2f", r)
}

// outcomeText describes the terminal state of a run in one sentence.
func outcomeText(state model.State) string {
	switch state {
	case model.StateSucceeded:
		return "Password found."
	case model.StateExhausted:
		return "Password not found: every candidate was tried."
	case model.StateStopped:
		return "Attack stopped by a configured bound before the space was exhausted."
	case model.StateCancelled:
		return "Attack cancelled before the space was exhausted."
	default:
		return "Attack still running."
	}
}
