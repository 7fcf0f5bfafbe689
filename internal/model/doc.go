// Package model defines the canonical credential record and its identity.
//
// This package contains the following main types:
//   - Account: the immutable, classified, length-bounded five-field record
//   - Document: the persistence shape keyed by the compound identifier
//   - Presentation: the human-facing JSON shape
//   - SourceList: provenance labels attached to a record after the fact
//
// An Account is created exactly once, either from a raw dump tuple via
// NewAccount (the ingestion path) or from a persisted Document via
// FromDocument (the read path). All reclassification happens during
// construction; a constructed Account never changes.
//
// Design decision: Account is a fixed struct of five bounded byte fields
// rather than an open-ended map. At dump-scale ingestion volume the per-record
// overhead of a map (hashing, buckets, boxed values) dominates; five slices
// keep the footprint compact and the identity derivation trivial.
package model
