package model

import (
	"crypto/sha256"
	"encoding/base64"
	"strings"

	"github.com/dumpsift/dumpsift/internal/codec"
)

// Identifier layout constants.
const (
	// idSeparator splits the domain chunk from the fingerprint portion.
	idSeparator = "|"

	// shortFingerprintLen is the digest prefix length used when an email
	// is present. Two independent 6-byte (48-bit) fingerprints give a
	// ~2^-96 chance of an accidental full collision.
	shortFingerprintLen = 6

	// longFingerprintLen is the digest prefix length used without an
	// email: a single 12-byte (96-bit) fingerprint.
	longFingerprintLen = 12
)

// ID derives the compound content-addressed identifier for the account.
//
// The identifier serves two purposes at once: the leading byte-reversed
// domain groups records by TLD-then-domain for prefix range access, and the
// trailing fingerprints deduplicate exact-duplicate records across
// independent ingestions. Identical five-field records always produce the
// identical identifier; that is the sole deduplication mechanism.
//
// With an email: reverse(domain) + "|" + base64(SHA-256(local)[:6]) +
// base64(SHA-256(joined fields)[:6]). Without: "|" + base64(SHA-256(joined
// fields)[:12]).
func (a *Account) ID() string {
	full := sha256.Sum256(a.Bytes())

	if !a.HasEmail() {
		return idSeparator + base64.StdEncoding.EncodeToString(full[:longFingerprintLen])
	}

	local, domain := a.SplitEmail()
	localSum := sha256.Sum256(local)

	return codec.Decode(reverseBytes(domain)) + idSeparator +
		base64.StdEncoding.EncodeToString(localSum[:shortFingerprintLen]) +
		base64.StdEncoding.EncodeToString(full[:shortFingerprintLen])
}

// DomainChunkOf extracts the byte-reversed domain prefix from an
// identifier. Identifiers without an email carry an empty chunk.
func DomainChunkOf(id string) string {
	chunk, _, _ := strings.Cut(id, idSeparator)
	return chunk
}

// EmailIDPrefix computes the identifier prefix shared by every record of
// one email address: the reversed domain, the separator, and the local-part
// fingerprint. The email is canonicalized exactly as ingestion would
// canonicalize it, so lookups agree with stored identifiers byte-for-byte.
func EmailIDPrefix(email []byte) string {
	canonical := filterEmail(email)
	local, domain := splitAtFirstAt(canonical)
	localSum := sha256.Sum256(local)

	return codec.Decode(reverseBytes(domain)) + idSeparator +
		base64.StdEncoding.EncodeToString(localSum[:shortFingerprintLen])
}

// DomainIDPrefix computes the identifier prefix shared by every record
// under a domain: the byte-reversed domain. Subdomain chunks extend this
// value past a dot, so a scan anchored on it covers subdomains too.
// Scans must require the identifier to continue with the separator or a
// dot; an unanchored prefix match would also pick up domains that merely
// end with the queried one.
func DomainIDPrefix(domain []byte) string {
	canonical := filterEmail(domain)
	return codec.Decode(reverseBytes(canonical))
}

// splitAtFirstAt splits at the first '@'; no '@' means all local part.
func splitAtFirstAt(email []byte) (local, domain []byte) {
	for i, c := range email {
		if c == '@' {
			return email[:i], email[i+1:]
		}
	}
	return email, nil
}

// reverseBytes returns a byte-reversed copy of b.
func reverseBytes(b []byte) []byte {
	out := make([]byte, len(b))
	for i, c := range b {
		out[len(b)-1-i] = c
	}
	return out
}

// reverseString returns a byte-reversed copy of s. Domain chunks are
// reversed bytewise, so reconstruction must reverse bytewise too.
func reverseString(s string) string {
	return string(reverseBytes([]byte(s)))
}
