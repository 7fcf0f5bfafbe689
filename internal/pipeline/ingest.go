package pipeline

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/dumpsift/dumpsift/internal/model"
	"github.com/dumpsift/dumpsift/internal/parser"
)

// maxLineLen bounds a single dump line. Lines beyond this are almost
// certainly binary garbage or an entire file without newlines; the scanner
// skips the file with an error rather than buffering without limit.
const maxLineLen = 1 << 20 // 1MB

// AccountStore is the subset of the database used by ingestion.
type AccountStore interface {
	// InsertAccount stores a canonical record with its provenance and
	// reports whether it was new.
	InsertAccount(ctx context.Context, account *model.Account, source model.Source) (bool, error)
}

// IngestStats accumulates counters for one ingestion run.
type IngestStats struct {
	// Lines is the number of non-empty lines read.
	Lines int64

	// Created is the number of new records stored.
	Created int64

	// Duplicates is the number of records whose identifier was already
	// present.
	Duplicates int64

	// Skipped is the number of lines the normalizer rejected.
	Skipped int64
}

// add merges other into s.
func (s *IngestStats) add(other IngestStats) {
	s.Lines += other.Lines
	s.Created += other.Created
	s.Duplicates += other.Duplicates
	s.Skipped += other.Skipped
}

// Ingestor streams dump files through parsing, normalization, and storage.
//
// Design decision: The worker pool lives here rather than in the database
// layer because normalization dominates the cost of a line. The store is a
// single writer anyway; parallelizing the pure transform is where the
// cores go.
type Ingestor struct {
	// store receives canonical records.
	store AccountStore

	// parser splits lines into raw tuples.
	parser *parser.LineParser

	// strict rejects records with malformed emails instead of demoting
	// them.
	strict bool

	// workers is the normalization concurrency.
	workers int

	// logger is used for structured logging during ingestion.
	logger *slog.Logger

	// stats accumulates across files. Guarded by mu.
	stats IngestStats
	mu    sync.Mutex
}

// Option configures an Ingestor.
// This follows the functional options pattern for clean API design.
type Option func(*Ingestor)

// WithLogger sets a custom logger for the ingestor.
// If not set, slog.Default() is used.
func WithLogger(logger *slog.Logger) Option {
	return func(in *Ingestor) {
		in.logger = logger
	}
}

// WithStrict makes the normalizer reject malformed emails instead of
// demoting them to usernames.
func WithStrict(strict bool) Option {
	return func(in *Ingestor) {
		in.strict = strict
	}
}

// WithWorkers sets the normalization concurrency. Default is 1.
func WithWorkers(n int) Option {
	return func(in *Ingestor) {
		if n > 0 {
			in.workers = n
		}
	}
}

// WithParser sets a custom line parser, e.g. one with a forced delimiter
// for a known source format.
func WithParser(p *parser.LineParser) Option {
	return func(in *Ingestor) {
		in.parser = p
	}
}

// NewIngestor creates an Ingestor writing to the given store.
func NewIngestor(store AccountStore, opts ...Option) *Ingestor {
	in := &Ingestor{
		store:   store,
		parser:  parser.NewLineParser(),
		workers: 1,
	}

	for _, opt := range opts {
		opt(in)
	}

	if in.logger == nil {
		in.logger = slog.Default()
	}

	return in
}

// IngestFile ingests one dump file. The file is fingerprinted first so the
// provenance record can distinguish same-named dumps, then streamed
// line-by-line through the worker pool.
func (in *Ingestor) IngestFile(ctx context.Context, path string) (IngestStats, error) {
	fingerprint, err := fingerprintFile(path)
	if err != nil {
		return IngestStats{}, err
	}

	f, err := os.Open(path) //nolint:gosec // User-provided dump path is intentional
	if err != nil {
		return IngestStats{}, fmt.Errorf("failed to open dump file: %w", err)
	}
	defer f.Close() //nolint:errcheck // Read-only file

	source := model.Source{
		Name:        filepath.Base(path),
		Fingerprint: fingerprint,
	}

	in.logger.Info("ingesting dump",
		"file", source.Name,
		"workers", in.workers,
	)

	stats, err := in.ingest(ctx, f, source)
	if err != nil {
		return stats, fmt.Errorf("failed to ingest %s: %w", source.Name, err)
	}

	in.logger.Info("dump ingested",
		"file", source.Name,
		"records", stats.Created,
		"duplicates", stats.Duplicates,
		"skipped", stats.Skipped,
	)
	return stats, nil
}

// IngestReader ingests lines from an arbitrary reader under the given
// source label. Used for stdin ingestion and tests.
func (in *Ingestor) IngestReader(ctx context.Context, r io.Reader, source model.Source) (IngestStats, error) {
	return in.ingest(ctx, r, source)
}

// Stats returns the counters accumulated across all ingestions so far.
func (in *Ingestor) Stats() IngestStats {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.stats
}

// ingest runs the producer and the worker pool over one line stream.
func (in *Ingestor) ingest(ctx context.Context, r io.Reader, source model.Source) (IngestStats, error) {
	g, ctx := errgroup.WithContext(ctx)
	lines := make(chan []byte, in.workers*4)

	// Producer: stream lines, copying each out of the scanner's reusable
	// buffer before it crosses the channel.
	g.Go(func() error {
		defer close(lines)

		scanner := bufio.NewScanner(r)
		scanner.Buffer(make([]byte, 64*1024), maxLineLen)

		for scanner.Scan() {
			raw := scanner.Bytes()
			if len(raw) == 0 {
				continue
			}
			line := append([]byte(nil), raw...)

			select {
			case lines <- line:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		if err := scanner.Err(); err != nil {
			return fmt.Errorf("failed to read dump: %w", err)
		}
		return nil
	})

	// Workers: parse, normalize, store. Each worker keeps private
	// counters and merges them once at the end; the hot path takes no
	// locks.
	results := make([]IngestStats, in.workers)
	for i := 0; i < in.workers; i++ {
		i := i
		g.Go(func() error {
			local := &results[i]
			for line := range lines {
				local.Lines++
				created, err := in.processLine(ctx, line, source)
				if err != nil {
					if errors.Is(err, model.ErrAccountCreation) {
						local.Skipped++
						in.logger.Debug("skipping malformed record",
							"file", source.Name,
							"line", string(line),
							"error", err,
						)
						continue
					}
					return err
				}
				if created {
					local.Created++
				} else {
					local.Duplicates++
				}
			}
			return nil
		})
	}

	err := g.Wait()

	var stats IngestStats
	for _, r := range results {
		stats.add(r)
	}

	in.mu.Lock()
	in.stats.add(stats)
	in.mu.Unlock()

	return stats, err
}

// processLine runs one line through parsing, normalization, and storage.
// Reports whether the record was new. Returns ErrAccountCreation (wrapped)
// for lines that cannot become a record; any other error is fatal for the
// ingestion.
func (in *Ingestor) processLine(ctx context.Context, line []byte, source model.Source) (bool, error) {
	tuple := in.parser.ParseLine(line)

	account, err := model.NewAccount(tuple.Email, tuple.Username, tuple.Password, tuple.Hash, tuple.Misc, in.strict)
	if err != nil {
		return false, err
	}

	created, err := in.store.InsertAccount(ctx, account, source)
	if err != nil {
		return false, fmt.Errorf("failed to store record: %w", err)
	}
	return created, nil
}

// fingerprintFile computes the source fingerprint in a separate pass so
// the line scanner reads a fresh handle.
func fingerprintFile(path string) (string, error) {
	f, err := os.Open(path) //nolint:gosec // User-provided dump path is intentional
	if err != nil {
		return "", fmt.Errorf("failed to open dump file: %w", err)
	}
	defer f.Close() //nolint:errcheck // Read-only file

	fingerprint, err := parser.SourceFingerprint(f)
	if err != nil {
		return "", err
	}
	return fingerprint, nil
}
