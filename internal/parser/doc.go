// Package parser splits raw dump lines into credential tuples.
//
// Dump files have no schema. The common case is two columns joined by a
// delimiter (email:password), but the left column may hold a username, the
// right column a hash, and the delimiter varies by dump. The parser only
// decides which raw slot each column lands in; all classification and
// cleanup beyond that is the normalizer's job, so a wrong guess here (a
// hash in the password slot, an email in the username slot) is corrected
// downstream.
//
// The package also fingerprints dump files (BLAKE2b-256) so provenance
// records can tell two same-named dumps apart.
package parser
