// Package video models video files and their subtitles and implements the
// operations on them.
//
// Factory classifies a path into a bare video, a movie, or an episode using
// a SignatureProbe and a MetadataGuesser, and retypes bare videos. Resolver
// answers "does this video already have a subtitle in language L" by
// checking embedded Matroska tracks and sidecar files named
// <base>.<code>.<ext>. Renamer moves movies and episodes to names built from
// a Naming, and NameScope lets a batch override the naming temporarily.
//
// Failures that affect one file are logged and returned as values wrapping
// the markers in internal/services; only sidecar enumeration failures abort
// a subtitle check.
package video
