// Package config provides configuration structures and utilities for
// dumpsift. It defines the main options for ingestion, search, and report
// generation, plus the optional YAML config file with per-source overrides.
package config
