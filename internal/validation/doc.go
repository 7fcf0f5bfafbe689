// Package validation provides the classification predicates used to resolve
// field ambiguity in raw credential tuples.
//
// Dump fields are semantically overloaded: a "username" column may hold an
// email address, a "password" column may hold a hash or a multi-hundred-byte
// note. The predicates here decide, byte-for-byte deterministically, what a
// value actually is:
//   - IsEmail / IsFuzzyEmail: strict and relaxed email shapes
//   - IsDomain: bare domain shape
//   - IsHash: heuristic hash detection (base64, hex runs, crypt(3) style)
//   - ValidateQueryType: classifies a search query as email or domain
//
// All pattern matchers are precompiled at package init and never rebuilt.
// They are read-only afterwards, so concurrent use needs no synchronization.
//
// Every predicate rejects inputs above a hard length ceiling before running
// any pattern. This guards against pathological inputs driving the regexp
// engine, and it is cheaper than letting the matcher scan a megabyte of
// garbage only to fail.
package validation
