// Package database provides SQLite-based storage for canonical credential
// records.
//
// This package implements the CredDB, which stores:
//   - Account documents keyed by their compound identifier
//   - Source provenance rows recording which dump each record came from
//
// The identifier's leading byte-reversed domain makes the primary key
// double as a domain index: every query in this package is a prefix scan
// over the key, so lookups by domain (and all its subdomains) or by email
// hit the B-tree directly.
//
// Design decision: We use SQLite (via modernc.org/sqlite) because:
// 1. No external dependencies - the database is a single file
// 2. CGO-free implementation allows easy cross-compilation
// 3. INSERT OR IGNORE on the identifier gives deduplication for free
// 4. WAL mode provides good concurrent read performance
package database
