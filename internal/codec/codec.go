package codec

import (
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// Decode converts raw dump bytes to a string.
// Valid UTF-8 input is returned as-is. Anything else is treated as
// ISO 8859-1, which maps every byte to a code point, so Decode never fails.
func Decode(b []byte) string {
	if utf8.Valid(b) {
		return string(b)
	}
	// ISO 8859-1 decoding is total; the only possible error from the
	// decoder is an internal buffer issue, which cannot occur for a
	// one-shot Bytes call.
	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(b)
	if err != nil {
		// Last resort: replace invalid sequences with U+FFFD.
		return string([]rune(string(b)))
	}
	return string(decoded)
}

// Encode converts text back to raw bytes (UTF-8).
func Encode(s string) []byte {
	return []byte(s)
}

// RepairEncoding rewrites raw bytes so the result is always valid UTF-8.
// The output may be longer than the input: bytes above 0x7F in non-UTF-8
// input expand to two-byte UTF-8 sequences. Callers that carry length
// bounds must truncate after repairing, not before.
func RepairEncoding(b []byte) []byte {
	if utf8.Valid(b) {
		// Copy so callers never alias the input slice.
		return append([]byte(nil), b...)
	}
	return Encode(Decode(b))
}
