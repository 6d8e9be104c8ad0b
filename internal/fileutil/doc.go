// Package fileutil moves and writes files without leaving partial results:
// renames refuse to overwrite and report cross-device failures as a typed
// error, copies are hash-verified, and writes go through a temp file.
package fileutil
