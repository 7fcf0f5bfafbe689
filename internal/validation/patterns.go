package validation

import "regexp"

// Precompiled matchers, initialized once at package load and read-only
// afterwards. Safe for unsynchronized concurrent use.
var (
	// emailRegex is the strict email shape: one local part, one domain,
	// and a 2-8 letter TLD.
	emailRegex = regexp.MustCompile(`(?i)^[A-Z0-9_.+\-]+@[A-Z0-9_.\-]+\.[A-Z]{2,8}$`)

	// fuzzyEmailRegex is the relaxed shape: anything@anything.anything.
	// Anchored only at the start, matching the original classifier.
	fuzzyEmailRegex = regexp.MustCompile(`^.+@.+\..+`)

	// domainRegex matches a bare domain with a 2-8 letter TLD.
	domainRegex = regexp.MustCompile(`(?i)^[A-Z0-9_.\-]*\.[A-Z]{2,8}$`)

	// hexRunRegex matches 20 or more contiguous hex characters anywhere
	// in the value. MD5 is 32, SHA-1 is 40; 20 catches truncated digests
	// while staying clear of short hex-looking passwords.
	hexRunRegex = regexp.MustCompile(`(?i)[A-F0-9]{20,}`)

	// extendedHashRegex matches crypt(3)-style $scheme$digest values such
	// as $2a$10$... or $6$rounds=...$....
	extendedHashRegex = regexp.MustCompile(`(?i)^\$.{1,13}\$[a-z0-9:/.]{20,}`)
)
