// Package model defines the core data structures used throughout linkprobe.
//
// This package contains the following main types:
//   - Status: classification of a single probe result
//   - Outcome: the result of probing one address
//   - Tally: aggregate good/bad/error counters for a run
//
// The models are kept in their own package because the extractor, prober,
// engine, report writers, and database all share them; centralizing them
// prevents import cycles. All types serialize to JSON for report output
// and database storage.
package model
