// Package pipeline orchestrates concurrent ingestion of dump files.
//
// The Ingestor streams lines from a dump, fans them out to a pool of
// normalization workers, and writes the resulting canonical records to the
// store. Normalization is pure and per-record deterministic, so workers
// need no coordination; the store serializes writes itself.
//
// Malformed records are a fact of dump life, not a failure mode: lines the
// normalizer rejects are counted and skipped, and ingestion continues.
package pipeline
