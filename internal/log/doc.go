// Package log provides secure logging functionality with automatic
// sanitization of credential material, built on top of the standard slog
// package.
//
// dumpsift handles leaked secrets by design: every ingested line is a
// live credential until proven otherwise. The SecureHandler makes sure
// none of it reaches log output, even in verbose mode:
//   - Attribute keys naming secrets (password, hash, secret, ...)
//   - Values shaped like password hashes (hex digests, crypt(3) strings)
//   - Values shaped like raw dump lines (email:secret combos)
//
// # Usage
//
//	logger := log.NewSecureLogger(os.Stderr, true) // verbose=true
//
//	logger.Info("skipping malformed record",
//	    "line", "user@example.com:hunter2",  // sanitized
//	    "file", "combo.txt",                 // preserved
//	)
//
//	slog.SetDefault(logger)
package log
