package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/nao1215/fernetcrack/internal/estimate"
	"github.com/nao1215/fernetcrack/internal/model"
)

const ruleWidth = 70

// SimpleWriter outputs human-readable text reports for terminal display.
type SimpleWriter struct {
	baseWriter

	// showPlaintext prints the recovered message after a successful attack.
	showPlaintext bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithPlaintext controls whether the recovered message is printed.
// It is printed by default.
func WithPlaintext(show bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.showPlaintext = show
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter:    newBaseWriter(output),
		showPlaintext: true,
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// WriteAttack outputs the attack result in human-readable format.
func (w *SimpleWriter) WriteAttack(result *model.AttackResult) (int, error) {
	var sb strings.Builder

	w.writeBanner(&sb, "FERNETCRACK ATTACK REPORT")

	if result.Mode != "" {
		fmt.Fprintf(&sb, "Mode:           %s\n", result.Mode)
	}
	fmt.Fprintf(&sb, "State:          %s\n", result.State)
	fmt.Fprintf(&sb, "Candidates:     %s\n", w.count(result.Total))
	fmt.Fprintf(&sb, "Tested:         %s (%.2f%%)\n", w.count(result.Attempts), result.Coverage()*100)
	fmt.Fprintf(&sb, "Elapsed:        %s\n", estimate.FormatMS(result.Elapsed.Seconds()))
	fmt.Fprintf(&sb, "Speed:          %s H/s\n", w.rate(result.Rate()))
	sb.WriteString("\n")

	w.writeSection(&sb, "RESULT")
	if result.Found {
		fmt.Fprintf(&sb, "  [+] Password found: '%s'\n", result.Password)
		if w.showPlaintext {
			fmt.Fprintf(&sb, "  [+] Decrypted message: %q\n", string(result.Plaintext))
		}
	} else {
		fmt.Fprintf(&sb, "  [-] %s\n", outcomeText(result.State))
	}
	sb.WriteString("\n")

	w.writeFooter(&sb)
	return io.WriteString(w.output, sb.String())
}

// WriteEstimate outputs the per-word breakdown and time estimate.
func (w *SimpleWriter) WriteEstimate(est *model.Estimate) (int, error) {
	var sb strings.Builder

	w.writeBanner(&sb, "FERNETCRACK CANDIDATE SPACE")
	w.writeEstimate(&sb, est)
	w.writeFooter(&sb)

	return io.WriteString(w.output, sb.String())
}

// WriteBenchmark outputs the measured throughput and, if given, the estimate.
func (w *SimpleWriter) WriteBenchmark(b *model.BenchmarkResult, est *model.Estimate) (int, error) {
	var sb strings.Builder

	w.writeBanner(&sb, "FERNETCRACK BENCHMARK")

	fmt.Fprintf(&sb, "Iterations:     %s\n", w.count(uint64(max(b.Iterations, 0))))
	fmt.Fprintf(&sb, "Workers:        %d\n", b.Workers)
	fmt.Fprintf(&sb, "Samples:        %s\n", w.count(b.Samples))
	fmt.Fprintf(&sb, "Elapsed:        %.2f seconds\n", b.Elapsed.Seconds())
	fmt.Fprintf(&sb, "Speed:          %s H/s\n", w.rate(b.Rate))
	fmt.Fprintf(&sb, "                %s H/min\n", w.rate(b.RatePerMinute()))
	fmt.Fprintf(&sb, "Per attempt:    %.3f ms\n", float64(b.PerAttempt().Microseconds())/1000)
	sb.WriteString("\n")

	if est != nil {
		w.writeEstimate(&sb, est)
	}

	w.writeFooter(&sb)
	return io.WriteString(w.output, sb.String())
}

func (w *SimpleWriter) writeEstimate(sb *strings.Builder, est *model.Estimate) {
	w.writeSection(sb, "CANDIDATE SPACE")

	fmt.Fprintf(sb, "  %-12s %6s %6s %12s %12s %14s\n", "WORD", "LENGTH", "CAPS", "SYMBOL INS.", "DIGIT INS.", "CANDIDATES")
	for _, wc := range est.Breakdown {
		fmt.Fprintf(sb, "  %-12s %6d %6d %12d %12d %14s\n",
			wc.Word, wc.Length, wc.Capitalizations, wc.SymbolInsertions, wc.DigitInsertions, w.count(wc.Total))
	}
	sb.WriteString("\n")
	fmt.Fprintf(sb, "  TOTAL: %s candidates\n\n", w.count(est.Total))

	w.writeSection(sb, "TIME ESTIMATE")
	fmt.Fprintf(sb, "  Speed:         %s H/s\n", w.rate(est.Rate))
	fmt.Fprintf(sb, "  Worst case:    %s\n", estimate.FormatHMS(est.WorstCaseSeconds))
	fmt.Fprintf(sb, "  Average case:  %s\n", estimate.FormatHMS(est.AverageCaseSeconds))
	sb.WriteString("\n")
}

func (w *SimpleWriter) writeBanner(sb *strings.Builder, title string) {
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", ruleWidth))
	sb.WriteString("\n")
	pad := max((ruleWidth-len(title))/2, 0)
	sb.WriteString(strings.Repeat(" ", pad) + title + "\n")
	sb.WriteString(strings.Repeat("=", ruleWidth))
	sb.WriteString("\n\n")
}

func (w *SimpleWriter) writeSection(sb *strings.Builder, title string) {
	sb.WriteString(strings.Repeat("-", ruleWidth))
	sb.WriteString("\n")
	sb.WriteString(title + "\n")
	sb.WriteString(strings.Repeat("-", ruleWidth))
	sb.WriteString("\n\n")
}

func (w *SimpleWriter) writeFooter(sb *strings.Builder) {
	sb.WriteString(strings.Repeat("=", ruleWidth))
	sb.WriteString("\n")
	sb.WriteString("Report generated by fernetcrack\n")
	sb.WriteString(strings.Repeat("=", ruleWidth))
	sb.WriteString("\n")
}
