package report

import (
	"io"

	"github.com/dumpsift/dumpsift/internal/model"
	"github.com/dumpsift/dumpsift/internal/validation"
)

// Entry is one search hit: the record's presentation shape plus its
// provenance.
type Entry struct {
	// Account is the human-facing record shape.
	Account model.Presentation `json:"account"`

	// Sources lists the dumps the record was seen in.
	Sources model.SourceList `json:"sources,omitempty"`
}

// SearchResult collects the hits for one query.
type SearchResult struct {
	// Query is the original query string.
	Query string `json:"query"`

	// Type is the resolved query interpretation.
	Type validation.QueryType `json:"type"`

	// Entries holds the hits in identifier order.
	Entries []Entry `json:"results"`
}

// Writer defines the interface for result output.
// Implementations render search results and statistics in various formats.
//
// Design decision: We use an interface to allow different output formats
// and destinations. This enables writing to files, stdout, or both with
// the same API.
type Writer interface {
	// WriteSearch outputs a search result.
	// Returns the number of bytes written and any error encountered.
	WriteSearch(result *SearchResult) (int, error)

	// WriteStats outputs store statistics.
	WriteStats(stats *Stats) (int, error)
}

// MultiWriter writes to multiple Writers simultaneously.
// This is useful for outputting to both terminal and file.
//
// Design decision: We implement this as a separate type rather than using
// io.MultiWriter because our Writer interface is different from io.Writer -
// we write results, not raw bytes.
type MultiWriter struct {
	writers []Writer
}

// NewMultiWriter creates a Writer that writes to all provided Writers.
func NewMultiWriter(writers ...Writer) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// WriteSearch outputs the result to all configured Writers.
// Returns the total bytes written across all writers.
// Stops on first error encountered.
func (m *MultiWriter) WriteSearch(result *SearchResult) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.WriteSearch(result)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// WriteStats outputs the statistics to all configured Writers.
func (m *MultiWriter) WriteStats(stats *Stats) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.WriteStats(stats)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// baseWriter provides common functionality for result writers.
type baseWriter struct {
	output io.Writer
}

// newBaseWriter creates a baseWriter with the given output destination.
func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}
