package main

import (
	"io"
	"os"
	"time"

	"github.com/nao1215/fernetcrack/internal/attack"
	"github.com/nao1215/fernetcrack/internal/model"
	"github.com/schollz/progressbar/v3"
	"golang.org/x/term"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// progressReporter renders the progress of a running attack.
// On a terminal it draws a progress bar; otherwise it prints one line per
// progress report so the output stays readable in logs and pipes.
type progressReporter struct {
	out     io.Writer
	printer *message.Printer
	bar     *progressbar.ProgressBar
}

// newProgressReporter creates a reporter writing to w for a space of total
// candidates.
func newProgressReporter(w io.Writer, total uint64) *progressReporter {
	p := &progressReporter{
		out:     w,
		printer: message.NewPrinter(language.English),
	}

	if isTerminal(w) && total > 0 {
		p.bar = progressbar.NewOptions64(int64(total), //nolint:gosec // candidate spaces fit in int64
			progressbar.OptionSetWriter(w),
			progressbar.OptionSetDescription("cracking"),
			progressbar.OptionSetPredictTime(true),
			progressbar.OptionShowDescriptionAtLineEnd(),
			progressbar.OptionSetRenderBlankState(true),
			progressbar.OptionThrottle(500*time.Millisecond),
			progressbar.OptionShowElapsedTimeOnFinish(),
			progressbar.OptionSetWidth(25),
			progressbar.OptionShowIts(),
			progressbar.OptionSetItsString("H"),
			progressbar.OptionShowCount(),
		)
	}

	return p
}

// isTerminal reports whether w is a file attached to a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd())) //nolint:gosec // file descriptors fit in int
}

// options returns the runner options that feed this reporter.
func (p *progressReporter) options() []attack.Option {
	if p.bar == nil {
		return []attack.Option{attack.WithProgressFunc(p.line)}
	}
	return []attack.Option{
		attack.WithAttemptFunc(func(attempts uint64) {
			_ = p.bar.Set64(int64(attempts)) //nolint:errcheck,gosec // display only
		}),
		attack.WithProgressFunc(func(progress model.Progress) {
			p.bar.Describe(p.printer.Sprintf("last: %s", progress.Last))
		}),
	}
}

// line prints a single progress report.
func (p *progressReporter) line(progress model.Progress) {
	p.printer.Fprintf(p.out, "[INFO] Progress: %d attempts | Speed: %.2f H/s | Last test: '%s'\n",
		progress.Attempts, progress.Rate, progress.Last)
}

// finish terminates the progress bar, if any.
func (p *progressReporter) finish() {
	if p.bar == nil {
		return
	}
	_ = p.bar.Finish() //nolint:errcheck // display only
	p.printer.Fprintln(p.out)
}
