// Package extract finds candidate web addresses in documents.
//
// Two extraction paths exist: a regex scan over plain text (the default)
// and a DOM walk for HTML documents using golang.org/x/net/html, which
// handles the malformed markup common on the web better than patterns.
// Both paths return a deduplicated, lexically sorted address list, so
// extraction is deterministic and idempotent for identical input.
package extract
