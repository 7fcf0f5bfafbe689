package parser

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"io"

	"golang.org/x/crypto/blake2b"

	"github.com/dumpsift/dumpsift/internal/validation"
)

// RawTuple is one unclassified credential tuple as extracted from a dump
// line. Slots reflect the parser's best guess; the normalizer has the final
// word.
type RawTuple struct {
	Email    []byte
	Username []byte
	Password []byte
	Hash     []byte
	Misc     []byte
}

// delimiters are the column separators tried in order. Colon first: it is
// the de-facto standard for combo lists. Semicolon, tab, and pipe cover
// most CSV-ish exports.
var delimiters = []byte{':', ';', '\t', '|'}

// LineParser splits dump lines into raw tuples.
type LineParser struct {
	// delimiter forces a fixed column delimiter. Zero means auto-detect
	// per line.
	delimiter byte
}

// ParserOption configures a LineParser.
type ParserOption func(*LineParser)

// WithDelimiter forces a fixed column delimiter instead of per-line
// auto-detection. Useful for sources known to use an unusual separator, or
// whose passwords legitimately contain the common ones.
func WithDelimiter(d byte) ParserOption {
	return func(p *LineParser) {
		p.delimiter = d
	}
}

// NewLineParser creates a LineParser with the given options.
func NewLineParser(opts ...ParserOption) *LineParser {
	p := &LineParser{}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ParseLine splits one dump line into a raw tuple.
//
// The line is cut at the first occurrence of the detected (or forced)
// delimiter. The left column goes to the email slot when it loosely
// resembles an email address, otherwise to the username slot; the right
// column goes to the password slot. A line with no delimiter is a bare
// identifier: email slot if email-shaped, else username.
//
// ParseLine never fails; classification failures surface later, when the
// normalizer rejects tuples with too little information.
func (p *LineParser) ParseLine(line []byte) RawTuple {
	line = bytes.TrimSpace(line)

	left, right := p.cut(line)

	var tuple RawTuple
	if validation.IsFuzzyEmail(left) {
		tuple.Email = left
	} else {
		tuple.Username = left
	}
	tuple.Password = right
	return tuple
}

// cut splits the line at the first delimiter occurrence.
// The right side keeps any further delimiter bytes: passwords containing
// the delimiter are common enough that splitting more than once would
// corrupt them.
func (p *LineParser) cut(line []byte) (left, right []byte) {
	if p.delimiter != 0 {
		if i := bytes.IndexByte(line, p.delimiter); i >= 0 {
			return line[:i], line[i+1:]
		}
		return line, nil
	}

	// Auto-detection: earliest occurrence of any known delimiter wins,
	// so "user@example.com:pass;word" splits at the colon.
	best := -1
	for _, d := range delimiters {
		if i := bytes.IndexByte(line, d); i >= 0 && (best == -1 || i < best) {
			best = i
		}
	}
	if best == -1 {
		return line, nil
	}
	return line[:best], line[best+1:]
}

// SourceFingerprint computes the BLAKE2b-256 fingerprint of a dump file,
// hex-encoded. Two same-named files with different content get different
// provenance records.
func SourceFingerprint(r io.Reader) (string, error) {
	h, err := blake2b.New256(nil)
	if err != nil {
		return "", fmt.Errorf("failed to initialize fingerprint hash: %w", err)
	}
	if _, err := io.Copy(h, r); err != nil {
		return "", fmt.Errorf("failed to fingerprint source: %w", err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
