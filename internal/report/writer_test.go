package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/dumpsift/dumpsift/internal/model"
	"github.com/dumpsift/dumpsift/internal/validation"
)

// createTestResult creates a search result with sample data for testing.
func createTestResult() *SearchResult {
	return &SearchResult{
		Query: "alice@example.com",
		Type:  validation.QueryTypeEmail,
		Entries: []Entry{
			{
				Account: model.Presentation{
					ID:       "moc.elpmaxe|AAAAAAAA|BBBBBBBB",
					Email:    "alice@example.com",
					Username: "alice",
					Password: "hunter2",
				},
				Sources: model.SourceList{
					{Name: "dump-2024.txt", Fingerprint: "abcdef0123456789"},
					{Name: "combo.txt"},
				},
			},
			{
				Account: model.Presentation{
					ID:    "moc.elpmaxe|CCCCCCCC|DDDDDDDD",
					Email: "alice@example.com",
					Hash:  "5f4dcc3b5aa765d61d8327deb882cf99",
				},
			},
		},
	}
}

// createTestStats creates statistics with sample data for testing.
func createTestStats() *Stats {
	stats := NewStats(1000)
	stats.AddChunk("moc.elpmaxe", 600)
	stats.AddChunk("moc.elpmaxe.liam", 100)
	stats.AddChunk("gro.ikiw", 250)
	stats.AddChunk("", 50)
	stats.Finalize(0)
	return stats
}

// TestSimpleWriter tests the plain text result writer.
func TestSimpleWriter(t *testing.T) {
	t.Parallel()

	t.Run("writes query header and records", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewSimpleWriter(&buf)

		_, err := w.WriteSearch(createTestResult())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		if !strings.Contains(output, "alice@example.com (email), 2 record(s)") {
			t.Error("expected output to contain query header")
		}
		if !strings.Contains(output, "alice@example.com:alice:hunter2::") {
			t.Error("expected output to contain colon-joined record")
		}
		if !strings.Contains(output, ":5f4dcc3b5aa765d61d8327deb882cf99:") {
			t.Error("expected output to contain hash-only record")
		}
	})

	t.Run("omits sources by default", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewSimpleWriter(&buf)

		if _, err := w.WriteSearch(createTestResult()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if strings.Contains(buf.String(), "dump-2024.txt") {
			t.Error("expected sources to be omitted without WithSources")
		}
	})

	t.Run("writes sources when enabled", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewSimpleWriter(&buf, WithSources())

		if _, err := w.WriteSearch(createTestResult()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		if !strings.Contains(output, " |- dump-2024.txt (abcdef012345)") {
			t.Error("expected output to contain abbreviated source fingerprint")
		}
		if !strings.Contains(output, " |- combo.txt") {
			t.Error("expected output to contain fingerprint-less source")
		}
	})

	t.Run("writes statistics", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewSimpleWriter(&buf)

		if _, err := w.WriteStats(createTestStats()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		if !strings.Contains(output, "accounts: 1000") {
			t.Error("expected output to contain total count")
		}
		if !strings.Contains(output, "example.com") {
			t.Error("expected output to contain domain breakdown")
		}
	})
}

// TestJSONWriter tests the JSON result writer.
func TestJSONWriter(t *testing.T) {
	t.Parallel()

	t.Run("produces valid compact JSON", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewJSONWriter(&buf)

		if _, err := w.WriteSearch(createTestResult()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var decoded map[string]any
		if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
			t.Fatalf("output is not valid JSON: %v", err)
		}
		if decoded["query"] != "alice@example.com" {
			t.Errorf("query = %v, want alice@example.com", decoded["query"])
		}
		if decoded["type"] != "email" {
			t.Errorf("type = %v, want email", decoded["type"])
		}
	})

	t.Run("pretty print adds indentation", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewJSONWriter(&buf, WithPrettyPrint())

		if _, err := w.WriteSearch(createTestResult()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(buf.String(), "\n  ") {
			t.Error("expected pretty-printed output to contain indentation")
		}
	})

	t.Run("writes statistics", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewJSONWriter(&buf)

		if _, err := w.WriteStats(createTestStats()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var decoded Stats
		if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
			t.Fatalf("output is not valid JSON: %v", err)
		}
		if decoded.TotalAccounts != 1000 {
			t.Errorf("total = %d, want 1000", decoded.TotalAccounts)
		}
		if len(decoded.Domains) != 3 {
			t.Errorf("domains = %d, want 3", len(decoded.Domains))
		}
	})
}

// TestMarkdownWriter tests the Markdown result writer.
func TestMarkdownWriter(t *testing.T) {
	t.Parallel()

	t.Run("writes search result tables", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewMarkdownWriter(&buf)

		if _, err := w.WriteSearch(createTestResult()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		if !strings.Contains(output, "# Search Results") {
			t.Error("expected output to contain header")
		}
		if !strings.Contains(output, "`alice@example.com`") {
			t.Error("expected output to contain the query")
		}
		if !strings.Contains(output, "hunter2") {
			t.Error("expected output to contain record data")
		}
	})

	t.Run("notes empty results", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewMarkdownWriter(&buf)

		result := &SearchResult{Query: "nobody@example.com", Type: validation.QueryTypeEmail}
		if _, err := w.WriteSearch(result); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(buf.String(), "No records matched") {
			t.Error("expected empty-result note")
		}
	})

	t.Run("writes statistics with pie chart", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewMarkdownWriter(&buf)

		if _, err := w.WriteStats(createTestStats()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		if !strings.Contains(output, "# Store Statistics") {
			t.Error("expected output to contain header")
		}
		if !strings.Contains(output, "```mermaid") {
			t.Error("expected output to contain mermaid chart")
		}
		if !strings.Contains(output, "example.com") {
			t.Error("expected output to contain domain breakdown")
		}
	})
}

// TestMultiWriter tests fan-out to multiple writers.
func TestMultiWriter(t *testing.T) {
	t.Parallel()

	var text, jsonBuf bytes.Buffer
	mw := NewMultiWriter(
		NewSimpleWriter(&text),
		NewJSONWriter(&jsonBuf),
	)

	n, err := mw.WriteSearch(createTestResult())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != text.Len()+jsonBuf.Len() {
		t.Errorf("reported %d bytes, want %d", n, text.Len()+jsonBuf.Len())
	}
	if text.Len() == 0 || jsonBuf.Len() == 0 {
		t.Error("expected both writers to receive output")
	}
}

// TestStats tests the domain rollup logic.
func TestStats(t *testing.T) {
	t.Parallel()

	t.Run("rolls subdomains up to registered domain", func(t *testing.T) {
		t.Parallel()

		stats := NewStats(700)
		stats.AddChunk("moc.elpmaxe", 600)
		stats.AddChunk("moc.elpmaxe.liam", 100)
		stats.Finalize(0)

		if len(stats.Domains) != 1 {
			t.Fatalf("domains = %d, want 1", len(stats.Domains))
		}
		if stats.Domains[0].Domain != "example.com" {
			t.Errorf("domain = %q, want example.com", stats.Domains[0].Domain)
		}
		if stats.Domains[0].Count != 700 {
			t.Errorf("count = %d, want 700", stats.Domains[0].Count)
		}
	})

	t.Run("groups email-less records under placeholder", func(t *testing.T) {
		t.Parallel()

		stats := NewStats(50)
		stats.AddChunk("", 50)
		stats.Finalize(0)

		if len(stats.Domains) != 1 {
			t.Fatalf("domains = %d, want 1", len(stats.Domains))
		}
		if stats.Domains[0].Domain != noDomainLabel {
			t.Errorf("domain = %q, want %q", stats.Domains[0].Domain, noDomainLabel)
		}
	})

	t.Run("sorts descending and honors limit", func(t *testing.T) {
		t.Parallel()

		stats := NewStats(0)
		stats.AddChunk("moc.elpmaxe", 10)
		stats.AddChunk("gro.ikiw", 30)
		stats.AddChunk("ten.tset", 20)
		stats.Finalize(2)

		if len(stats.Domains) != 2 {
			t.Fatalf("domains = %d, want 2", len(stats.Domains))
		}
		if stats.Domains[0].Domain != "wiki.org" || stats.Domains[0].Count != 30 {
			t.Errorf("first row = %+v, want wiki.org/30", stats.Domains[0])
		}
		if stats.Domains[1].Domain != "test.net" || stats.Domains[1].Count != 20 {
			t.Errorf("second row = %+v, want test.net/20", stats.Domains[1])
		}
	})
}
