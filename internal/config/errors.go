package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() and provide specific
// information about what is wrong with the configuration.
//
// Design decision: We use package-level sentinel errors rather than
// creating new error instances in Validate(). This allows callers to use
// errors.Is() for programmatic error handling while still providing
// human-readable messages.
var (
	// ErrNoInput is returned when no dump file is specified for ingestion.
	ErrNoInput = errors.New("no input specified: provide at least one dump file")

	// ErrInvalidWorkers is returned when the worker count is not positive.
	// Zero workers would mean no ingestion at all.
	ErrInvalidWorkers = errors.New("invalid worker count: must be positive")

	// ErrInvalidLimit is returned when the search result limit is negative.
	// Use 0 for no limit.
	ErrInvalidLimit = errors.New("invalid result limit: must be non-negative")

	// ErrConflictingFormats is returned when both --json and --markdown
	// are specified. Only one output format can be used at a time.
	ErrConflictingFormats = errors.New("conflicting output formats: --json and --markdown cannot be used together")
)
