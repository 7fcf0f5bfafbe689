package model

import "strings"

// Source is a provenance label for one ingestion of a record: which dump it
// came from and, when known, a fingerprint of that dump file. Sources are
// purely descriptive and never participate in record identity.
type Source struct {
	// Name identifies the dump, usually the file name or archive label.
	Name string

	// Fingerprint is the content fingerprint of the dump file, empty when
	// the origin was not a file.
	Fingerprint string
}

// String returns the label, with the fingerprint abbreviated when present.
func (s Source) String() string {
	if s.Fingerprint == "" {
		return s.Name
	}
	fp := s.Fingerprint
	if len(fp) > 12 {
		fp = fp[:12]
	}
	return s.Name + " (" + fp + ")"
}

// SourceList is an ordered collection of provenance labels attached to a
// record after construction. Its length is the number of times the record
// has been seen across ingestions.
type SourceList []Source

// Add appends a source, preserving ingestion order.
func (l *SourceList) Add(s Source) {
	*l = append(*l, s)
}

// Len returns the number of sources seen.
func (l SourceList) Len() int {
	return len(l)
}

// String renders one " |- source" line per entry.
func (l SourceList) String() string {
	lines := make([]string, len(l))
	for i, s := range l {
		lines[i] = " |- " + s.String()
	}
	return strings.Join(lines, "\n")
}
