package model

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/dumpsift/dumpsift/internal/codec"
	"github.com/dumpsift/dumpsift/internal/validation"
)

// Account errors.
var (
	// ErrAccountCreation is returned when a raw tuple cannot become a
	// canonical record: the validity gate fails, strict mode rejects a
	// malformed email, or a field cannot be rendered at the persistence
	// boundary. These are permanent data-quality failures; callers should
	// skip the offending raw record and continue.
	ErrAccountCreation = errors.New("account creation failed")
)

// Field length bounds, applied after encoding repair.
const (
	// MaxCredentialLen bounds the email, username, and password fields.
	MaxCredentialLen = 128
	// MaxBlobLen bounds the hash and misc fields, which legitimately carry
	// long values (crypt strings, notes, serialized blobs).
	MaxBlobLen = 1000

	// overlongPasswordLen is the threshold above which a "password" value
	// is reclassified as misc: nothing that long is a usable password, but
	// dump columns routinely bleed notes into the password slot.
	overlongPasswordLen = 100
)

// fieldSeparator joins the five fields for identity derivation.
const fieldSeparator = "\x00"

// Account is the canonical credential record: five bounded byte fields,
// immutable once constructed. All reclassification happens inside
// NewAccount; nothing mutates an Account afterwards, so unsynchronized
// concurrent reads are safe.
type Account struct {
	email    []byte
	username []byte
	password []byte
	hash     []byte
	misc     []byte
}

// NewAccount builds a canonical record from a raw dump tuple.
//
// The pipeline order is load-bearing; later steps observe the results of
// earlier ones:
//  1. Email: trim, lowercase, drop every byte outside [a-z0-9-_.+@].
//  2. Username: trim whitespace, strip apostrophes and backslashes.
//  3. Password/hash/misc: trim leading/trailing CR and LF only.
//  4. Promote an email-shaped username into the empty email slot.
//  5. Demote an invalid email into the empty username slot, or fail when
//     strict is set.
//  6. Move a hash-shaped password into the empty hash slot.
//  7. Move an overlong password into the empty misc slot.
//  8. Reject records with too little information to be worth keeping.
//  9. Repair encodings and truncate to the field bounds. Email keeps its
//     tail so the domain and TLD survive a runaway local part; all other
//     fields keep their head.
//
// Failure is permanent: the input itself is malformed or insufficient, so
// no retry is meaningful.
func NewAccount(email, username, password, hash, misc []byte, strict bool) (*Account, error) {
	a := &Account{
		email:    filterEmail(email),
		username: cleanUsername(username),
		password: trimLineBreaks(password),
		hash:     trimLineBreaks(hash),
		misc:     trimLineBreaks(misc),
	}

	// Username -> email promotion: dump columns are mislabeled often
	// enough that an email-shaped username is almost certainly an email.
	if isEmpty(a.email) {
		if validation.IsEmail(a.username) {
			a.email = bytes.ToLower(a.username)
			a.username = nil
		}
	} else if !validation.IsEmail(a.email) {
		// Invalid-email demotion. In strict mode a bad email kills the
		// record; otherwise it is still a usable login name.
		if strict {
			return nil, fmt.Errorf("%w: email %q failed strict validation", ErrAccountCreation, string(a.email))
		}
		if isEmpty(a.username) {
			a.username = a.email
			a.email = nil
		}
	}

	// Password -> hash reclassification.
	if isEmpty(a.hash) && !isEmpty(a.password) && validation.IsHash(a.password) {
		a.hash = a.password
		a.password = nil
	}

	// Overlong password -> misc reclassification.
	if isEmpty(a.misc) && len(a.password) >= overlongPasswordLen {
		a.misc = a.password
		a.password = nil
	}

	// Validity gate. A bare email is worth keeping (it ties an address to
	// a leak even without a secret); a bare username is not.
	if isEmpty(a.email) && (isEmpty(a.username) || (isEmpty(a.password) && isEmpty(a.hash) && isEmpty(a.misc))) {
		return nil, fmt.Errorf("%w: not enough information in %.64q", ErrAccountCreation, a.String())
	}

	a.email = truncateTail(codec.RepairEncoding(a.email), MaxCredentialLen)
	a.username = truncateHead(codec.RepairEncoding(a.username), MaxCredentialLen)
	a.password = truncateHead(codec.RepairEncoding(a.password), MaxCredentialLen)
	a.hash = truncateHead(codec.RepairEncoding(a.hash), MaxBlobLen)
	a.misc = truncateHead(codec.RepairEncoding(a.misc), MaxBlobLen)

	return a, nil
}

// Email returns a copy of the canonical email field.
func (a *Account) Email() []byte { return copyBytes(a.email) }

// Username returns a copy of the canonical username field.
func (a *Account) Username() []byte { return copyBytes(a.username) }

// Password returns a copy of the canonical password field.
func (a *Account) Password() []byte { return copyBytes(a.password) }

// Hash returns a copy of the canonical hash field.
func (a *Account) Hash() []byte { return copyBytes(a.hash) }

// Misc returns a copy of the canonical misc field.
func (a *Account) Misc() []byte { return copyBytes(a.misc) }

// HasEmail reports whether the record carries an email address.
func (a *Account) HasEmail() bool { return !isEmpty(a.email) }

// SplitEmail splits the email at the first '@' into local part and domain.
// A value without '@' is all local part with an empty domain.
func (a *Account) SplitEmail() (local, domain []byte) {
	parts := bytes.SplitN(a.email, []byte("@"), 2)
	if len(parts) < 2 {
		return copyBytes(a.email), nil
	}
	return copyBytes(parts[0]), copyBytes(parts[1])
}

// Bytes returns the NUL-joined concatenation of the five fields in their
// fixed order. This byte sequence defines record identity: two accounts are
// equal iff their Bytes are equal, and the identifier is derived from it.
func (a *Account) Bytes() []byte {
	return bytes.Join([][]byte{a.email, a.username, a.password, a.hash, a.misc}, []byte(fieldSeparator))
}

// Equal reports whether two accounts have identical canonical fields.
func (a *Account) Equal(other *Account) bool {
	if other == nil {
		return false
	}
	return bytes.Equal(a.Bytes(), other.Bytes())
}

// String returns a colon-joined, decoded rendering of the five fields.
// Intended for diagnostics; empty fields render as empty segments.
func (a *Account) String() string {
	fields := [][]byte{a.email, a.username, a.password, a.hash, a.misc}
	decoded := make([]string, len(fields))
	for i, f := range fields {
		decoded[i] = codec.Decode(f)
	}
	return strings.Join(decoded, ":")
}

// filterEmail trims, lowercases, and drops every byte outside the email
// allow-set. Dropping (rather than substituting) is lossy but deterministic.
func filterEmail(email []byte) []byte {
	trimmed := bytes.ToLower(bytes.TrimSpace(email))
	out := make([]byte, 0, len(trimmed))
	for _, c := range trimmed {
		if isValidEmailByte(c) {
			out = append(out, c)
		}
	}
	return out
}

// isValidEmailByte reports membership in the fixed email allow-set
// [a-z0-9-_.+@]. Input is lowercased before this check.
func isValidEmailByte(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z':
		return true
	case c >= '0' && c <= '9':
		return true
	case c == '-' || c == '_' || c == '.' || c == '+' || c == '@':
		return true
	default:
		return false
	}
}

// cleanUsername trims whitespace and strips apostrophes and backslashes,
// the two bytes most often injected by sloppy dump exports.
func cleanUsername(username []byte) []byte {
	trimmed := bytes.TrimSpace(username)
	out := make([]byte, 0, len(trimmed))
	for _, c := range trimmed {
		if c != '\'' && c != '\\' {
			out = append(out, c)
		}
	}
	return out
}

// trimLineBreaks trims leading and trailing CR/LF bytes only. Internal
// whitespace is significant in passwords and must survive.
func trimLineBreaks(b []byte) []byte {
	return bytes.Trim(b, "\r\n")
}

// isEmpty is the explicit emptiness predicate for bounded byte fields.
func isEmpty(b []byte) bool {
	return len(b) == 0
}

// truncateHead keeps at most n leading bytes.
func truncateHead(b []byte, n int) []byte {
	if len(b) > n {
		return b[:n]
	}
	return b
}

// truncateTail keeps at most n trailing bytes.
func truncateTail(b []byte, n int) []byte {
	if len(b) > n {
		return b[len(b)-n:]
	}
	return b
}

func copyBytes(b []byte) []byte {
	if b == nil {
		return nil
	}
	return append([]byte(nil), b...)
}
