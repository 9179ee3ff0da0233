package report

import (
	"encoding/json"
	"io"

	"github.com/nao1215/fernetcrack/internal/model"
)

// JSONWriter outputs reports in JSON format.
// This format is designed for tool integration and programmatic processing.
type JSONWriter struct {
	baseWriter

	// indent enables pretty-printed JSON output.
	// When false, output is compact (no extra whitespace).
	indent bool

	// indentPrefix is the prefix for each line in indented output.
	indentPrefix string

	// indentString is the indentation string (typically "  " or "\t").
	indentString string

	// version is recorded in every document when set.
	version string
}

// JSONWriterOption configures a JSONWriter.
type JSONWriterOption func(*JSONWriter)

// WithIndent enables pretty-printed JSON output.
// The prefix is prepended to each line, and indent is used for each level.
func WithIndent(prefix, indent string) JSONWriterOption {
	return func(w *JSONWriter) {
		w.indent = true
		w.indentPrefix = prefix
		w.indentString = indent
	}
}

// WithPrettyPrint enables pretty-printed JSON with default indentation.
// This is a convenience wrapper for WithIndent("", "  ").
func WithPrettyPrint() JSONWriterOption {
	return WithIndent("", "  ")
}

// WithVersion records the fernetcrack version in every document.
func WithVersion(version string) JSONWriterOption {
	return func(w *JSONWriter) {
		w.version = version
	}
}

// NewJSONWriter creates a JSONWriter that outputs to the given writer.
func NewJSONWriter(output io.Writer, opts ...JSONWriterOption) *JSONWriter {
	w := &JSONWriter{
		baseWriter: newBaseWriter(output),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Document is the top-level JSON object written by JSONWriter.
// Exactly one of Attack, Estimate or Benchmark is set, except for
// benchmarks, which may carry the estimate derived from them.
type Document struct {
	// Version is the fernetcrack version that generated this document.
	Version string `json:"version,omitempty"`

	Attack    *model.AttackResult    `json:"attack,omitempty"`
	Benchmark *model.BenchmarkResult `json:"benchmark,omitempty"`
	Estimate  *model.Estimate        `json:"estimate,omitempty"`
}

// WriteAttack outputs the attack result in JSON format.
func (w *JSONWriter) WriteAttack(result *model.AttackResult) (int, error) {
	return w.writeJSON(Document{Version: w.version, Attack: result})
}

// WriteEstimate outputs the estimate in JSON format.
func (w *JSONWriter) WriteEstimate(est *model.Estimate) (int, error) {
	return w.writeJSON(Document{Version: w.version, Estimate: est})
}

// WriteBenchmark outputs the benchmark in JSON format.
func (w *JSONWriter) WriteBenchmark(b *model.BenchmarkResult, est *model.Estimate) (int, error) {
	return w.writeJSON(Document{Version: w.version, Benchmark: b, Estimate: est})
}

// writeJSON marshals the given value to JSON and writes it to the output.
func (w *JSONWriter) writeJSON(v any) (int, error) {
	var data []byte
	var err error

	if w.indent {
		data, err = json.MarshalIndent(v, w.indentPrefix, w.indentString)
	} else {
		data, err = json.Marshal(v)
	}

	if err != nil {
		return 0, err
	}

	// Add trailing newline for better terminal output
	data = append(data, '\n')

	return w.output.Write(data)
}
