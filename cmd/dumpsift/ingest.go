package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dumpsift/dumpsift/internal/config"
	"github.com/dumpsift/dumpsift/internal/database"
	"github.com/dumpsift/dumpsift/internal/model"
	"github.com/dumpsift/dumpsift/internal/parser"
	"github.com/dumpsift/dumpsift/internal/pipeline"
)

// NewIngestCmd creates the ingest command.
func NewIngestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ingest <dump-files...>",
		Short: "Normalize dump files into the record store",
		Long: `Ingest reads credential dump files line by line, normalizes each line into
a canonical record, and stores it. Records already present (by identifier)
are recorded as duplicates and their provenance is extended.

Examples:
  # Ingest a single dump
  dumpsift ingest combo.txt

  # Ingest several dumps at once
  dumpsift ingest leak1.txt leak2.txt leak3.txt

  # Reject malformed emails instead of demoting them to usernames
  dumpsift ingest --strict combo.txt

  # Use per-source parsing overrides from a configuration file
  dumpsift ingest -c myconfig.yaml combo.txt

Configuration file (.dumpsift) example:
  defaults:
    strict: false
  sources:
    combo.txt:
      delimiter: ";"
      label: "2024 combo collection"`,
		Args: cobra.MinimumNArgs(1),
		RunE: runIngestCmd,
	}

	cmd.Flags().BoolP("strict", "s", false,
		"Reject records with malformed emails instead of demoting them")
	cmd.Flags().IntP("workers", "w", config.DefaultWorkers(),
		"Number of concurrent normalization workers")
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .dumpsift in current or home directory)")

	return cmd
}

// runIngestCmd executes the ingest command.
func runIngestCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildIngestConfig(cmd, args)
	if err != nil {
		return err
	}
	if err := cfg.ValidateIngest(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := setupLogger(getVerboseFlag(cmd))
	slog.SetDefault(logger)

	// Set up context with signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			logger.Info("received shutdown signal, cancelling...")
			cancel()
		case <-ctx.Done():
		}
	}()

	db, err := database.Open(cfg.DBDir, database.DefaultOptions())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close() //nolint:errcheck // Read path already reported errors

	logger.Info("database opened", "dir", cfg.DBDir)

	var total pipeline.IngestStats
	for _, path := range cfg.Inputs {
		stats, err := ingestOne(ctx, db, cfg, path, logger)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%s: %d lines, %d new, %d duplicate, %d skipped\n",
			filepath.Base(path), stats.Lines, stats.Created, stats.Duplicates, stats.Skipped)

		total.Lines += stats.Lines
		total.Created += stats.Created
		total.Duplicates += stats.Duplicates
		total.Skipped += stats.Skipped
	}

	if len(cfg.Inputs) > 1 {
		fmt.Fprintf(cmd.OutOrStdout(), "total: %d lines, %d new, %d duplicate, %d skipped\n",
			total.Lines, total.Created, total.Duplicates, total.Skipped)
	}
	return nil
}

// ingestOne ingests a single dump file, honoring its per-source overrides.
// Each file gets its own Ingestor because the parser and strictness can
// differ per source; the store underneath is shared.
func ingestOne(ctx context.Context, db *database.CredDB, cfg *config.Config, path string, logger *slog.Logger) (pipeline.IngestStats, error) {
	sc := cfg.SourceConfigs.GetSourceConfig(filepath.Base(path))

	strict := cfg.Strict
	if sc.Strict != nil {
		strict = *sc.Strict
	}

	opts := []pipeline.Option{
		pipeline.WithLogger(logger),
		pipeline.WithStrict(strict),
		pipeline.WithWorkers(cfg.Workers),
	}
	if sc.Delimiter != "" {
		opts = append(opts, pipeline.WithParser(parser.NewLineParser(parser.WithDelimiter(sc.Delimiter[0]))))
	}

	ingestor := pipeline.NewIngestor(db, opts...)

	if sc.Label == "" {
		return ingestor.IngestFile(ctx, path)
	}
	return ingestLabeled(ctx, ingestor, path, sc.Label)
}

// ingestLabeled ingests a file under an overridden provenance label. The
// fingerprint still comes from the file content, so relabeled dumps remain
// distinguishable from genuinely different ones.
func ingestLabeled(ctx context.Context, ingestor *pipeline.Ingestor, path, label string) (pipeline.IngestStats, error) {
	f, err := os.Open(path) //nolint:gosec // User-provided dump path is intentional
	if err != nil {
		return pipeline.IngestStats{}, fmt.Errorf("failed to open dump file: %w", err)
	}
	defer f.Close() //nolint:errcheck // Read-only file

	fingerprint, err := parser.SourceFingerprint(f)
	if err != nil {
		return pipeline.IngestStats{}, err
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return pipeline.IngestStats{}, fmt.Errorf("failed to rewind dump file: %w", err)
	}

	return ingestor.IngestReader(ctx, f, model.Source{Name: label, Fingerprint: fingerprint})
}

// buildIngestConfig creates a Config from ingest command flags.
func buildIngestConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()
	cfg.Inputs = args

	var err error

	cfg.DBDir, err = cmd.Flags().GetString("db-dir")
	if err != nil {
		return nil, err
	}

	cfg.Strict, err = cmd.Flags().GetBool("strict")
	if err != nil {
		return nil, err
	}

	cfg.Workers, err = cmd.Flags().GetInt("workers")
	if err != nil {
		return nil, err
	}

	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	// Load per-source configurations from config file.
	// If user explicitly specified a config file path, error if not found.
	// If no path specified, silently use empty config if no file found.
	explicitConfigPath := cfg.ConfigFilePath != ""
	configPath := config.FindConfigFile(cfg.ConfigFilePath)

	if configPath != "" {
		cfg.SourceConfigs, err = config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	} else if explicitConfigPath {
		return nil, fmt.Errorf("configuration file not found: %s", cfg.ConfigFilePath)
	} else {
		cfg.SourceConfigs = &config.File{
			Sources: make(map[string]config.SourceConfig),
		}
	}

	return cfg, nil
}
