package model

import (
	"strings"
	"testing"
)

// TestIDShapeWithEmail tests the identifier layout when an email is
// present: reversed domain, separator, then two 8-character fingerprints.
func TestIDShapeWithEmail(t *testing.T) {
	t.Parallel()

	a := mustAccount(t, "user@example.com", "", "hunter2", "", "")
	id := a.ID()

	chunk, fingerprints, found := strings.Cut(id, "|")
	if !found {
		t.Fatalf("identifier %q has no separator", id)
	}
	if chunk != "moc.elpmaxe" {
		t.Errorf("domain chunk = %q, expected %q", chunk, "moc.elpmaxe")
	}
	// Two 6-byte digests, each base64-encoded to exactly 8 characters.
	if len(fingerprints) != 16 {
		t.Errorf("fingerprint portion %q has length %d, expected 16", fingerprints, len(fingerprints))
	}
}

// TestIDShapeWithoutEmail tests the identifier layout without an email:
// empty chunk and a single 16-character fingerprint.
func TestIDShapeWithoutEmail(t *testing.T) {
	t.Parallel()

	a := mustAccount(t, "", "bob", "hunter2", "", "")
	id := a.ID()

	if !strings.HasPrefix(id, "|") {
		t.Fatalf("identifier %q must start with an empty domain chunk", id)
	}
	// One 12-byte digest, base64-encoded to exactly 16 characters.
	if len(id) != 1+16 {
		t.Errorf("identifier %q has length %d, expected 17", id, len(id))
	}
}

// TestIDDeduplication tests that tuples normalizing to the same canonical
// fields produce the same identifier regardless of which raw slot held
// which value.
func TestIDDeduplication(t *testing.T) {
	t.Parallel()

	// Email supplied in the email slot vs the username slot.
	a := mustAccount(t, "john.doe@example.com", "", "hunter2", "", "")
	b := mustAccount(t, "", "John.Doe@Example.com", "hunter2", "", "")
	if a.ID() != b.ID() {
		t.Errorf("equal canonical records got different identifiers: %q vs %q", a.ID(), b.ID())
	}

	// Hash supplied in the password slot vs the hash slot.
	c := mustAccount(t, "", "bob", "5f4dcc3b5aa765d61d8327deb882cf99", "", "")
	d := mustAccount(t, "", "bob", "", "5f4dcc3b5aa765d61d8327deb882cf99", "")
	if c.ID() != d.ID() {
		t.Errorf("equal canonical records got different identifiers: %q vs %q", c.ID(), d.ID())
	}

	// Different secrets must not collide on the full identifier.
	e := mustAccount(t, "john.doe@example.com", "", "other", "", "")
	if a.ID() == e.ID() {
		t.Error("records with different passwords share an identifier")
	}
}

// TestIDSameEmailSharesPrefix tests that records for one email share the
// domain-chunk and email-fingerprint prefix while differing in the record
// fingerprint.
func TestIDSameEmailSharesPrefix(t *testing.T) {
	t.Parallel()

	a := mustAccount(t, "user@example.com", "", "hunter2", "", "")
	b := mustAccount(t, "user@example.com", "", "hunter3", "", "")

	prefix := EmailIDPrefix([]byte("user@example.com"))
	if !strings.HasPrefix(a.ID(), prefix) || !strings.HasPrefix(b.ID(), prefix) {
		t.Errorf("identifiers %q and %q do not share email prefix %q", a.ID(), b.ID(), prefix)
	}
	if a.ID() == b.ID() {
		t.Error("different records for one email share a full identifier")
	}
}

// TestEmailIDPrefixCanonicalizes tests that lookup prefixes agree with
// ingestion for un-normalized query input.
func TestEmailIDPrefixCanonicalizes(t *testing.T) {
	t.Parallel()

	canonical := EmailIDPrefix([]byte("user@example.com"))
	messy := EmailIDPrefix([]byte("  User@Example.COM "))
	if canonical != messy {
		t.Errorf("prefixes differ: %q vs %q", canonical, messy)
	}
}

// TestDomainIDPrefix tests domain prefixes, including subdomain coverage.
func TestDomainIDPrefix(t *testing.T) {
	t.Parallel()

	prefix := DomainIDPrefix([]byte("example.com"))
	if prefix != "moc.elpmaxe" {
		t.Errorf("DomainIDPrefix = %q, expected %q", prefix, "moc.elpmaxe")
	}

	sub := mustAccount(t, "user@mail.example.com", "", "hunter2", "", "")
	if !strings.HasPrefix(sub.ID(), prefix) {
		t.Errorf("subdomain identifier %q not covered by prefix %q", sub.ID(), prefix)
	}
}

// TestDomainChunkOf tests chunk extraction from identifiers.
func TestDomainChunkOf(t *testing.T) {
	t.Parallel()

	a := mustAccount(t, "user@example.com", "", "hunter2", "", "")
	if got := DomainChunkOf(a.ID()); got != "moc.elpmaxe" {
		t.Errorf("DomainChunkOf = %q, expected %q", got, "moc.elpmaxe")
	}

	b := mustAccount(t, "", "bob", "hunter2", "", "")
	if got := DomainChunkOf(b.ID()); got != "" {
		t.Errorf("DomainChunkOf = %q, expected empty", got)
	}
}
