package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/dumpsift/dumpsift/internal/config"
	"github.com/dumpsift/dumpsift/internal/database"
	"github.com/dumpsift/dumpsift/internal/model"
	"github.com/dumpsift/dumpsift/internal/report"
	"github.com/dumpsift/dumpsift/internal/validation"
)

// NewSearchCmd creates the search command.
func NewSearchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search the record store by email or domain",
		Long: `Search looks up records by email address or by domain. Domain queries
cover the domain itself and every subdomain under it.

The query type is detected automatically: anything that validates as an
email is an email query, anything that validates as a domain is a domain
query. Use --type to force an interpretation.

Examples:
  # Find every record for one address
  dumpsift search alice@example.com

  # Find every record under a domain, subdomains included
  dumpsift search example.com

  # Force domain interpretation and emit JSON
  dumpsift search --type domain --json example.com

  # Show which dumps each record was seen in
  dumpsift search --sources alice@example.com`,
		Args: cobra.ExactArgs(1),
		RunE: runSearchCmd,
	}

	cmd.Flags().StringP("type", "t", "auto",
		"Query interpretation: email, domain, or auto")
	cmd.Flags().IntP("limit", "l", config.DefaultSearchLimit,
		"Maximum number of results (0 for unlimited)")
	cmd.Flags().BoolP("sources", "s", false,
		"Include dump provenance for each record (text output)")
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write results to specified file path (creates directories if needed)")

	return cmd
}

// runSearchCmd executes the search command.
func runSearchCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildSearchConfig(cmd)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := setupLogger(getVerboseFlag(cmd))
	slog.SetDefault(logger)

	query := args[0]
	queryType, err := validation.ValidateQueryType([]byte(query), cfg.QueryType)
	if err != nil {
		return err
	}

	opts := database.DefaultOptions()
	opts.CreateIfNotExists = false
	db, err := database.Open(cfg.DBDir, opts)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close() //nolint:errcheck // Read-only use

	ctx := cmd.Context()

	var docs []model.Document
	switch queryType {
	case validation.QueryTypeEmail:
		docs, err = db.SearchEmail(ctx, []byte(query), cfg.Limit)
	case validation.QueryTypeDomain:
		docs, err = db.SearchDomain(ctx, []byte(query), cfg.Limit)
	}
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	logger.Debug("search complete", "type", string(queryType), "hits", len(docs))

	result := &report.SearchResult{
		Query:   query,
		Type:    queryType,
		Entries: make([]report.Entry, 0, len(docs)),
	}
	for _, doc := range docs {
		account, err := model.FromDocument(doc)
		if err != nil {
			return err
		}

		sources, err := db.Sources(ctx, doc.ID)
		if err != nil {
			return fmt.Errorf("failed to load sources for %s: %w", doc.ID, err)
		}

		result.Entries = append(result.Entries, report.Entry{
			Account: account.Presentation(),
			Sources: sources,
		})
	}

	showSources, err := cmd.Flags().GetBool("sources")
	if err != nil {
		return err
	}
	outputPath, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}

	writer, closeOutput, err := newResultWriter(cmd, cfg, outputPath, showSources)
	if err != nil {
		return err
	}

	if _, err := writer.WriteSearch(result); err != nil {
		_ = closeOutput()
		return fmt.Errorf("failed to write results: %w", err)
	}
	return closeOutput()
}

// buildSearchConfig creates a Config from search command flags.
func buildSearchConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.NewConfig()

	var err error

	cfg.DBDir, err = cmd.Flags().GetString("db-dir")
	if err != nil {
		return nil, err
	}

	cfg.QueryType, err = cmd.Flags().GetString("type")
	if err != nil {
		return nil, err
	}

	cfg.Limit, err = cmd.Flags().GetInt("limit")
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
