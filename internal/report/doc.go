// Package report renders search results and store statistics.
//
// Three formats are supported:
//   - SimpleWriter: plain text for terminal display
//   - JSONWriter: machine-readable output for tool integration
//   - MarkdownWriter: GitHub Flavored Markdown for documentation
//
// All writers implement the Writer interface, and MultiWriter fans one
// result out to several destinations (e.g. terminal plus file).
package report
