// Package organizer drives batches over a directory tree: it discovers video
// files, classifies them, records which configured subtitle languages are
// missing, and renames files to their canonical names.
//
// Rename batches take an exclusive flock in the state directory so two
// processes never rename the same library at once. Both entry points stop
// between files when their context is cancelled.
package organizer
