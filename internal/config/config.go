package config

import (
	"path/filepath"
	"runtime"

	"github.com/adrg/xdg"
)

// Default configuration values.
const (
	// AppName is the application name used for XDG directory paths.
	AppName = "dumpsift"

	// DefaultSearchLimit caps search output at a terminal-friendly size.
	// Domain queries over large dumps can hit millions of rows; callers
	// that want everything pass --limit 0 explicitly.
	DefaultSearchLimit = 1000

	// DefaultTopDomains is how many domains the stats breakdown shows.
	DefaultTopDomains = 20
)

// DefaultWorkers returns the default ingestion worker count. Normalization
// is CPU-bound, so one worker per core is the sweet spot; the single-writer
// store serializes the inserts regardless.
func DefaultWorkers() int {
	return runtime.NumCPU()
}

// Config holds all configuration options for dumpsift.
// This struct is populated from CLI flags and passed through the
// application via dependency injection rather than global state.
//
// Design decision: We use a single flat struct instead of nested structs
// for simplicity. The number of options is manageable, and nesting would
// add complexity without significant benefit.
type Config struct {
	// DBDir is the directory holding the SQLite database.
	// Defaults to the XDG data directory (~/.local/share/dumpsift on Linux).
	DBDir string

	// Inputs is the list of dump files to ingest.
	Inputs []string

	// Strict rejects records whose email fails strict validation instead
	// of demoting the value to the username slot.
	Strict bool

	// Workers is the number of concurrent normalization workers during
	// ingestion.
	Workers int

	// Verbose enables detailed log output using slog.LevelDebug.
	// When false, only warnings and errors are logged.
	Verbose bool

	// JSONOutput switches search/stats output to JSON.
	// Mutually exclusive with MarkdownOutput.
	JSONOutput bool

	// MarkdownOutput switches search/stats output to Markdown.
	// Mutually exclusive with JSONOutput.
	MarkdownOutput bool

	// Limit caps the number of search results. 0 means unlimited.
	Limit int

	// QueryType forces the search query interpretation ("email", "domain",
	// or "auto" to detect).
	QueryType string

	// ConfigFilePath is the path to the configuration file.
	// If empty, the tool searches for .dumpsift in the current directory
	// and then in the user's home directory.
	ConfigFilePath string

	// SourceConfigs holds per-source parsing overrides loaded from the
	// config file.
	SourceConfigs *File
}

// NewConfig creates a new Config with default values.
//
// Design decision: We use a constructor function instead of relying on
// zero values because several defaults are non-zero. This also serves as
// documentation of what the defaults are.
func NewConfig() *Config {
	return &Config{
		DBDir:     XDGDataDir(),
		Workers:   DefaultWorkers(),
		Limit:     DefaultSearchLimit,
		QueryType: "auto",
	}
}

// XDGDataDir returns the XDG data directory for dumpsift.
// On Linux: ~/.local/share/dumpsift
// On macOS: ~/Library/Application Support/dumpsift
// On Windows: %LOCALAPPDATA%\dumpsift
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for dumpsift.
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks if the configuration is valid for ingestion or search.
// It returns the first specific error found; fixing one error often makes
// the others irrelevant.
func (c *Config) Validate() error {
	if c.Workers <= 0 {
		return ErrInvalidWorkers
	}
	if c.Limit < 0 {
		return ErrInvalidLimit
	}
	if c.JSONOutput && c.MarkdownOutput {
		return ErrConflictingFormats
	}
	return nil
}

// ValidateIngest checks the configuration for the ingest command, which
// additionally requires at least one input file.
func (c *Config) ValidateIngest() error {
	if len(c.Inputs) == 0 {
		return ErrNoInput
	}
	return c.Validate()
}
