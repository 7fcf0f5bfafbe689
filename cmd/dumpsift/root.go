// Package main provides the entry point for the dumpsift CLI.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dumpsift/dumpsift/internal/config"
	"github.com/dumpsift/dumpsift/internal/log"
	"github.com/dumpsift/dumpsift/internal/report"
)

// NewRootCmd creates the root command for dumpsift.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dumpsift",
		Short: "Normalize and query credential dump files",
		Long: `dumpsift ingests credential dump files (combo lists, database leaks),
normalizes each line into a canonical record, deduplicates records across
dumps by a content-derived identifier, and answers email and domain queries
against the resulting store.

Records are stored in a local SQLite database under the XDG data directory.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().String("db-dir", config.XDGDataDir(), "Directory holding the record store")

	// Add subcommands
	cmd.AddCommand(NewIngestCmd())
	cmd.AddCommand(NewSearchCmd())
	cmd.AddCommand(NewStatsCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// setupLogger creates a redacting structured logger based on verbosity.
// Everything the tool logs may carry credential material, so all command
// logging goes through the secure handler.
func setupLogger(verbose bool) *slog.Logger {
	return log.NewSecureLogger(os.Stderr, verbose)
}

// newResultWriter builds the report writer selected by the output flags.
// The destination is the command's stdout unless an output file is given,
// in which case parent directories are created as needed.
func newResultWriter(cmd *cobra.Command, cfg *config.Config, outputPath string, showSources bool) (report.Writer, func() error, error) {
	var out io.Writer = cmd.OutOrStdout()
	closer := func() error { return nil }

	if outputPath != "" {
		if dir := filepath.Dir(outputPath); dir != "." {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return nil, nil, fmt.Errorf("failed to create output directory: %w", err)
			}
		}
		f, err := os.Create(outputPath) //nolint:gosec // User-provided output path is intentional
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create output file: %w", err)
		}
		out = f
		closer = f.Close
	}

	switch {
	case cfg.JSONOutput:
		return report.NewJSONWriter(out, report.WithPrettyPrint()), closer, nil
	case cfg.MarkdownOutput:
		return report.NewMarkdownWriter(out), closer, nil
	default:
		var opts []report.SimpleWriterOption
		if showSources {
			opts = append(opts, report.WithSources())
		}
		return report.NewSimpleWriter(out, opts...), closer, nil
	}
}
