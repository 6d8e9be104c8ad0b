// Package services defines shared utilities consumed by the classifier,
// resolver, renamer, and the batch organizer.
//
// Key responsibilities:
//   - Context helpers that stamp batch and correlation identifiers for
//     logging.
//   - Structured error markers plus the Wrap helper so callers can tell a
//     skippable per-file failure from one that must abort the call.
//
// Use these helpers when wiring new logic so error handling and
// observability stay uniform across the tool.
package services
