package config

// SourceConfig holds parsing overrides for a single dump source.
// Dump formats vary wildly; these overrides let a known-bad source be
// ingested without guesswork.
type SourceConfig struct {
	// Delimiter forces the column delimiter for this source instead of
	// auto-detection (e.g. ":", ";", "\t").
	Delimiter string `yaml:"delimiter,omitempty"`

	// Strict rejects malformed emails from this source instead of
	// demoting them to usernames.
	Strict *bool `yaml:"strict,omitempty"`

	// Label overrides the provenance label recorded for this source.
	// Defaults to the file name.
	Label string `yaml:"label,omitempty"`
}

// File represents the structure of the .dumpsift configuration file.
type File struct {
	// Sources maps dump file names (base name, no directory) to their
	// parsing overrides.
	Sources map[string]SourceConfig `yaml:"sources,omitempty"`

	// Defaults contains the source configuration applied to all sources
	// unless overridden per source.
	Defaults SourceConfig `yaml:"defaults,omitempty"`
}

// GetSourceConfig returns the configuration for a dump file name,
// merging the source-specific overrides with the defaults.
func (cf *File) GetSourceConfig(name string) SourceConfig {
	result := cf.Defaults

	if sc, ok := cf.Sources[name]; ok {
		if sc.Delimiter != "" {
			result.Delimiter = sc.Delimiter
		}
		if sc.Strict != nil {
			result.Strict = sc.Strict
		}
		if sc.Label != "" {
			result.Label = sc.Label
		}
	}

	return result
}
