package validation

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidQuery is returned when a search query matches neither the email
// nor the domain shape. This is a data-quality error: it is never retried
// and should be surfaced to the caller as invalid input.
var ErrInvalidQuery = errors.New("query is neither an email address nor a domain")

// QueryType identifies how a search query should be interpreted.
type QueryType string

const (
	// QueryTypeEmail searches for a single email address.
	QueryTypeEmail QueryType = "email"
	// QueryTypeDomain searches for every account under a domain.
	QueryTypeDomain QueryType = "domain"
	// QueryTypeAuto lets the validator detect the query type.
	QueryTypeAuto QueryType = "auto"
)

const (
	// maxEmailLen is the longest value the email predicates will consider.
	// Matches the canonical record's email bound.
	maxEmailLen = 128

	// maxMatchLen is the hard ceiling for all other predicates. Values
	// beyond this cannot be legitimate domains or hashes, and rejecting
	// them up front keeps pathological inputs away from the regexp engine.
	maxMatchLen = 1024

	// minExtendedHashLen is the shortest possible $scheme$digest string
	// worth testing against the extended hash pattern.
	minExtendedHashLen = 23

	// minBase64HashLen is the length above which a trailing-'=' token is
	// probed as base64.
	minBase64HashLen = 10
)

// IsEmail reports whether s is a well-formed email address: a single
// local part, domain, and a 2-8 letter TLD. Values over 128 bytes are
// rejected without pattern evaluation.
func IsEmail(s []byte) bool {
	if len(s) > maxEmailLen {
		return false
	}
	return emailRegex.Match(s)
}

// IsFuzzyEmail reports whether s loosely resembles an email address:
// anything@anything.anything. Used for classifying dump columns where the
// strict shape would reject too much.
func IsFuzzyEmail(s []byte) bool {
	if len(s) > maxEmailLen {
		return false
	}
	return fuzzyEmailRegex.Match(s)
}

// IsDomain reports whether s is a bare domain with a 2-8 letter TLD.
func IsDomain(s []byte) bool {
	if len(s) > maxMatchLen {
		return false
	}
	return domainRegex.Match(s)
}

// IsHash reports whether s looks like a password hash rather than a
// plaintext password. The heuristics run in order; the first match wins:
//
//  1. A token over 10 bytes ending in '=' is probed as base64. Decodable
//     means hash — intentionally including false positives, since '='
//     padded base64 is overwhelmingly hash material in dump data. A failed
//     decode is a definitive no, not a fallthrough.
//  2. A run of 20 or more contiguous hex characters anywhere in the value.
//  3. A crypt(3)-style $scheme$digest shape with a 20+ character digest.
func IsHash(s []byte) bool {
	if len(s) > maxMatchLen {
		return false
	}

	if len(s) > minBase64HashLen && s[len(s)-1] == '=' {
		_, err := base64.StdEncoding.DecodeString(string(s))
		return err == nil
	}

	if hexRunRegex.Match(s) {
		return true
	}

	if len(s) >= minExtendedHashLen && extendedHashRegex.Match(s) {
		return true
	}

	return false
}

// ValidateQueryType resolves the type of a search query, auto-detecting
// when queryType is empty or "auto". An explicitly requested type is
// honored only if the query actually matches that shape; otherwise
// detection falls back to email first, then domain.
// Returns ErrInvalidQuery (wrapped with the offending query) when the
// query matches neither shape.
func ValidateQueryType(query []byte, queryType string) (QueryType, error) {
	requested := QueryType(strings.ToLower(strings.TrimSpace(queryType)))

	if requested == QueryTypeEmail && IsEmail(query) {
		return QueryTypeEmail, nil
	}
	if requested == QueryTypeDomain && IsDomain(query) {
		return QueryTypeDomain, nil
	}

	// Auto-detection: email is the more specific shape, so it wins.
	if IsEmail(query) {
		return QueryTypeEmail, nil
	}
	if IsDomain(query) {
		return QueryTypeDomain, nil
	}

	return "", fmt.Errorf("%w: %q", ErrInvalidQuery, string(query))
}
