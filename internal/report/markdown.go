package report

import (
	"io"
	"strconv"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"
)

// MarkdownWriter outputs results in Markdown format.
// This format is designed for documentation and sharing.
//
// Design decision: We use the nao1215/markdown library for fluent markdown
// generation which provides:
// 1. Type-safe markdown generation
// 2. Support for tables, lists, and code blocks
// 3. GitHub-flavored markdown alerts
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// WriteSearch outputs the search result in Markdown format.
func (w *MarkdownWriter) WriteSearch(result *SearchResult) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("Search Results")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Query", "`" + result.Query + "`"},
			{"Type", string(result.Type)},
			{"Records", strconv.Itoa(len(result.Entries))},
		},
	})
	md.PlainText("")

	if len(result.Entries) == 0 {
		md.Note("No records matched the query.")
		md.PlainText("")
		return len(md.String()), md.Build()
	}

	w.writeEntriesTable(md, result.Entries)

	return len(md.String()), md.Build()
}

// writeEntriesTable writes a table of search hits with their provenance.
func (w *MarkdownWriter) writeEntriesTable(md *markdown.Markdown, entries []Entry) {
	headers := []string{"Email", "Username", "Password", "Hash", "Misc", "Sources"}

	rows := make([][]string, len(entries))
	for i, entry := range entries {
		a := entry.Account
		rows[i] = []string{
			cellOrDash(a.Email),
			cellOrDash(a.Username),
			cellOrDash(a.Password),
			cellOrDash(truncateCell(a.Hash, 40)),
			cellOrDash(truncateCell(a.Misc, 40)),
			strconv.Itoa(entry.Sources.Len()),
		}
	}

	md.Table(markdown.TableSet{
		Header: headers,
		Rows:   rows,
	})
	md.PlainText("")
}

// WriteStats outputs the statistics in Markdown format.
func (w *MarkdownWriter) WriteStats(stats *Stats) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("Store Statistics")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Total Accounts", strconv.FormatInt(stats.TotalAccounts, 10)},
			{"Domains Listed", strconv.Itoa(len(stats.Domains))},
		},
	})
	md.PlainText("")

	if len(stats.Domains) > 0 {
		w.writeDomainsTable(md, stats.Domains)
		w.writePieChart(md, stats.Domains)
	}

	return len(md.String()), md.Build()
}

// writeDomainsTable writes the per-domain breakdown table.
func (w *MarkdownWriter) writeDomainsTable(md *markdown.Markdown, domains []DomainCount) {
	md.H2("Top Domains")
	md.PlainText("")

	rows := make([][]string, len(domains))
	for i, dc := range domains {
		rows[i] = []string{
			"`" + dc.Domain + "`",
			strconv.FormatInt(dc.Count, 10),
		}
	}

	md.Table(markdown.TableSet{
		Header: []string{"Domain", "Accounts"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writePieChart writes a mermaid pie chart for the domain distribution.
func (w *MarkdownWriter) writePieChart(md *markdown.Markdown, domains []DomainCount) {
	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Account Distribution by Domain"),
		piechart.WithShowData(true),
	)

	for _, dc := range domains {
		if dc.Count > 0 {
			chart.LabelAndIntValue(dc.Domain, uint64(dc.Count))
		}
	}

	md.PlainText("")
	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

// cellOrDash substitutes a dash for empty table cells.
func cellOrDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// truncateCell truncates a string to maxLen characters with ellipsis.
func truncateCell(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
