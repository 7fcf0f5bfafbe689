package codec

import (
	"bytes"
	"testing"
	"unicode/utf8"
)

// TestDecode tests decoding of valid and invalid byte sequences.
func TestDecode(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		input    []byte
		expected string
	}{
		{"ascii", []byte("hunter2"), "hunter2"},
		{"valid utf8", []byte("pässword"), "pässword"},
		{"empty", []byte{}, ""},
		// 0xE9 alone is invalid UTF-8; as ISO 8859-1 it is é.
		{"latin1 byte", []byte{'c', 'a', 'f', 0xE9}, "café"},
		// 0xFF is never valid in UTF-8.
		{"high byte", []byte{0xFF}, "ÿ"},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := Decode(tc.input); got != tc.expected {
				t.Errorf("Decode(%v) = %q, expected %q", tc.input, got, tc.expected)
			}
		})
	}
}

// TestRepairEncoding tests that repaired output is always valid UTF-8
// and that repair is idempotent.
func TestRepairEncoding(t *testing.T) {
	t.Parallel()

	inputs := [][]byte{
		[]byte("plain ascii"),
		{0xDE, 0xAD, 0xBE, 0xEF},
		{'a', 0x80, 'b'},
		[]byte("already valid ütf8"),
		{},
	}

	for _, input := range inputs {
		repaired := RepairEncoding(input)
		if !utf8.Valid(repaired) {
			t.Errorf("RepairEncoding(%v) = %v is not valid UTF-8", input, repaired)
		}
		again := RepairEncoding(repaired)
		if !bytes.Equal(repaired, again) {
			t.Errorf("RepairEncoding not idempotent for %v: %v != %v", input, repaired, again)
		}
	}
}

// TestRepairEncodingDoesNotAliasInput tests that mutating the result does
// not affect the original slice.
func TestRepairEncodingDoesNotAliasInput(t *testing.T) {
	t.Parallel()

	input := []byte("immutable")
	repaired := RepairEncoding(input)
	repaired[0] = 'X'
	if input[0] != 'i' {
		t.Error("RepairEncoding returned a slice aliasing its input")
	}
}

// TestEncodeDecodeRoundTrip tests that Encode inverts Decode for valid UTF-8.
func TestEncodeDecodeRoundTrip(t *testing.T) {
	t.Parallel()

	original := []byte("user@example.com")
	if got := Encode(Decode(original)); !bytes.Equal(got, original) {
		t.Errorf("round trip = %v, expected %v", got, original)
	}
}
