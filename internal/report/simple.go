package report

import (
	"fmt"
	"io"
	"strings"
)

// SimpleWriter outputs human-readable text.
// This format is designed for terminal display and for piping into the
// usual text tools.
//
// Design decision: One record per line, colon-joined fields, matching the
// classic combo-list layout. Anyone working with dump data already has
// muscle memory (and scripts) for it.
type SimpleWriter struct {
	baseWriter

	// showSources appends provenance lines under each record.
	showSources bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithSources enables provenance lines under each record.
func WithSources() SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.showSources = true
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{baseWriter: newBaseWriter(output)}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// WriteSearch outputs the search result as text.
func (w *SimpleWriter) WriteSearch(result *SearchResult) (int, error) {
	var sb strings.Builder

	fmt.Fprintf(&sb, "# query: %s (%s), %d record(s)\n", result.Query, result.Type, len(result.Entries))

	for _, entry := range result.Entries {
		a := entry.Account
		fmt.Fprintf(&sb, "%s:%s:%s:%s:%s\n", a.Email, a.Username, a.Password, a.Hash, a.Misc)
		if w.showSources && entry.Sources.Len() > 0 {
			fmt.Fprintln(&sb, entry.Sources.String())
		}
	}

	return w.output.Write([]byte(sb.String()))
}

// WriteStats outputs the statistics as text.
func (w *SimpleWriter) WriteStats(stats *Stats) (int, error) {
	var sb strings.Builder

	fmt.Fprintf(&sb, "accounts: %d\n", stats.TotalAccounts)
	for _, dc := range stats.Domains {
		fmt.Fprintf(&sb, "%10d  %s\n", dc.Count, dc.Domain)
	}

	return w.output.Write([]byte(sb.String()))
}
