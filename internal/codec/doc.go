// Package codec converts between raw dump bytes and text, repairing
// invalid byte sequences along the way.
//
// Credential dumps are a mix of encodings: UTF-8, Latin-1, Windows code
// pages, and plain binary garbage, frequently inside a single file. The
// codec makes that mess deterministic: valid UTF-8 passes through
// untouched, and anything else is re-interpreted as ISO 8859-1 (which maps
// every byte to a code point, so decoding is total) and transcoded to
// UTF-8.
//
// Design decision: We use golang.org/x/text for the ISO 8859-1 transcoding
// rather than hand-rolling the byte-to-rune mapping because:
// 1. The charmap tables are maintained and exhaustively tested upstream
// 2. The transform.Transformer interface composes with streaming input
// 3. It keeps the door open for detecting other single-byte code pages
//
// Determinism matters more than fidelity here: two ingestions of the same
// raw bytes must always produce the same text, because record identity is
// derived from the repaired bytes.
package codec
