// Package report provides report generation and output functionality.
//
// This package contains writers for different output formats:
//   - SimpleWriter: Human-readable text output for terminal display
//   - JSONWriter: Structured JSON output for tool integration
//   - MarkdownWriter: GitHub Flavored Markdown with tables, alerts and a
//     mermaid pie chart of the candidate space
//
// Every writer renders the three things fernetcrack produces: the result of
// an attack, the estimate of a candidate space, and a benchmark.
package report
