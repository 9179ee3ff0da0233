package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/nao1215/fernetcrack/internal/estimate"
	"github.com/nao1215/fernetcrack/internal/model"
	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"
)

// MarkdownWriter outputs reports in Markdown format.
// This format is designed for documentation and sharing.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// WriteAttack outputs the attack result in Markdown format.
func (w *MarkdownWriter) WriteAttack(result *model.AttackResult) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("fernetcrack Attack Report")
	md.PlainText("")

	rows := [][]string{}
	if result.Mode != "" {
		rows = append(rows, []string{"Mode", result.Mode})
	}
	rows = append(rows,
		[]string{"State", w.stateText(result.State)},
		[]string{"Candidates", w.count(result.Total)},
		[]string{"Tested", fmt.Sprintf("%s (%.2f%%)", w.count(result.Attempts), result.Coverage()*100)},
		[]string{"Elapsed", estimate.FormatMS(result.Elapsed.Seconds())},
		[]string{"Speed", w.rate(result.Rate()) + " H/s"},
	)
	if !result.StartedAt.IsZero() {
		rows = append(rows, []string{"Started", result.StartedAt.Format("2006-01-02 15:04:05 MST")})
	}
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows:   rows,
	})
	md.PlainText("")

	md.H2("Result")
	md.PlainText("")
	switch result.State {
	case model.StateSucceeded:
		md.Cautionf("Password recovered after %s attempts: `%s`", w.count(result.Attempts), result.Password)
		md.PlainText("")
		md.Details("Decrypted message", string(result.Plaintext))
	case model.StateExhausted:
		md.Tip(outcomeText(result.State))
	default:
		md.Note(outcomeText(result.State))
	}
	md.PlainText("")

	w.writeFooter(md)
	return len(md.String()), md.Build()
}

// WriteEstimate outputs the estimate in Markdown format.
func (w *MarkdownWriter) WriteEstimate(est *model.Estimate) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("fernetcrack Candidate Space")
	md.PlainText("")
	w.writeEstimate(md, est)
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// WriteBenchmark outputs the benchmark in Markdown format.
func (w *MarkdownWriter) WriteBenchmark(b *model.BenchmarkResult, est *model.Estimate) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("fernetcrack Benchmark")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Iterations", strconv.Itoa(b.Iterations)},
			{"Workers", strconv.Itoa(b.Workers)},
			{"Samples", w.count(b.Samples)},
			{"Elapsed", fmt.Sprintf("%.2f s", b.Elapsed.Seconds())},
			{"Speed", w.rate(b.Rate) + " H/s"},
			{"Speed per minute", w.rate(b.RatePerMinute()) + " H/min"},
			{"Per attempt", fmt.Sprintf("%.3f ms", float64(b.PerAttempt().Microseconds())/1000)},
		},
	})
	md.PlainText("")

	if est != nil {
		w.writeEstimate(md, est)
	}

	w.writeFooter(md)
	return len(md.String()), md.Build()
}

func (w *MarkdownWriter) writeEstimate(md *markdown.Markdown, est *model.Estimate) {
	md.H2("Candidate Space")
	md.PlainText("")

	rows := make([][]string, 0, len(est.Breakdown)+1)
	for _, wc := range est.Breakdown {
		rows = append(rows, []string{
			"`" + wc.Word + "`",
			strconv.Itoa(wc.Length),
			strconv.FormatUint(wc.Capitalizations, 10),
			strconv.FormatUint(wc.SymbolInsertions, 10),
			strconv.FormatUint(wc.DigitInsertions, 10),
			w.count(wc.Total),
		})
	}
	rows = append(rows, []string{"**Total**", "", "", "", "", "**" + w.count(est.Total) + "**"})

	md.Table(markdown.TableSet{
		Header: []string{"Word", "Length", "Capitalizations", "Symbol insertions", "Digit insertions", "Candidates"},
		Rows:   rows,
	})
	md.PlainText("")

	if len(est.Breakdown) > 1 {
		w.writePieChart(md, est)
	}

	md.H2("Time Estimate")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Case", "Duration"},
		Rows: [][]string{
			{"Worst (password is the last candidate)", estimate.FormatHMS(est.WorstCaseSeconds)},
			{"Average (password is in the middle)", estimate.FormatHMS(est.AverageCaseSeconds)},
		},
	})
	md.PlainText("")
	md.Note(fmt.Sprintf("Estimated at %s H/s.", w.rate(est.Rate)))
	md.PlainText("")
}

// writePieChart writes a mermaid pie chart of each word's share of the space.
func (w *MarkdownWriter) writePieChart(md *markdown.Markdown, est *model.Estimate) {
	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Candidates per Word"),
		piechart.WithShowData(true),
	)

	for _, wc := range est.Breakdown {
		if wc.Total > 0 {
			chart.LabelAndIntValue(wc.Word, wc.Total)
		}
	}

	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

// stateText returns the state with a visual indicator.
func (w *MarkdownWriter) stateText(state model.State) string {
	switch state {
	case model.StateSucceeded:
		return "✅ Succeeded"
	case model.StateExhausted:
		return "❌ Exhausted"
	case model.StateStopped:
		return "⏹️ Stopped"
	case model.StateCancelled:
		return "⚠️ Cancelled"
	default:
		return state.String()
	}
}

func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("*Report generated by fernetcrack*")
}
