package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/dumpsift/dumpsift/internal/config"
	"github.com/dumpsift/dumpsift/internal/database"
	"github.com/dumpsift/dumpsift/internal/report"
)

// chunkOverfetch is how many identifier chunks are fetched per requested
// domain row. Subdomain chunks collapse into their registered domain during
// rollup, so the raw chunk list has to be deeper than the final table.
const chunkOverfetch = 10

// NewStatsCmd creates the stats command.
func NewStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show record store statistics",
		Long: `Stats reports the total number of stored records and a breakdown of the
most frequent domains. Subdomains are rolled up under their registered
domain, so mail.example.com and www.example.com count toward example.com.

Examples:
  # Show the default breakdown
  dumpsift stats

  # Show the top 50 domains as Markdown
  dumpsift stats --top 50 --markdown`,
		Args: cobra.NoArgs,
		RunE: runStatsCmd,
	}

	cmd.Flags().IntP("top", "n", config.DefaultTopDomains,
		"Number of domains to show in the breakdown")
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write statistics to specified file path (creates directories if needed)")

	return cmd
}

// runStatsCmd executes the stats command.
func runStatsCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildStatsConfig(cmd)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := setupLogger(getVerboseFlag(cmd))
	slog.SetDefault(logger)

	top, err := cmd.Flags().GetInt("top")
	if err != nil {
		return err
	}
	if top <= 0 {
		top = config.DefaultTopDomains
	}

	opts := database.DefaultOptions()
	opts.CreateIfNotExists = false
	db, err := database.Open(cfg.DBDir, opts)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close() //nolint:errcheck // Read-only use

	ctx := cmd.Context()

	total, err := db.CountAccounts(ctx)
	if err != nil {
		return fmt.Errorf("failed to count records: %w", err)
	}

	chunks, err := db.TopDomainChunks(ctx, top*chunkOverfetch)
	if err != nil {
		return fmt.Errorf("failed to query domain breakdown: %w", err)
	}

	stats := report.NewStats(total)
	for _, chunk := range chunks {
		stats.AddChunk(chunk.Chunk, chunk.Count)
	}
	stats.Finalize(top)

	logger.Debug("statistics computed", "records", total, "domains", len(stats.Domains))

	outputPath, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}

	writer, closeOutput, err := newResultWriter(cmd, cfg, outputPath, false)
	if err != nil {
		return err
	}

	if _, err := writer.WriteStats(stats); err != nil {
		_ = closeOutput()
		return fmt.Errorf("failed to write statistics: %w", err)
	}
	return closeOutput()
}

// buildStatsConfig creates a Config from stats command flags.
func buildStatsConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.NewConfig()

	var err error

	cfg.DBDir, err = cmd.Flags().GetString("db-dir")
	if err != nil {
		return nil, err
	}

	cfg.JSONOutput, err = cmd.Flags().GetBool("json")
	if err != nil {
		return nil, err
	}

	cfg.MarkdownOutput, err = cmd.Flags().GetBool("markdown")
	if err != nil {
		return nil, err
	}

	return cfg, nil
}
