// Package ffprobe provides a typed wrapper around ffprobe JSON output and a
// subtitle track reader built on it.
//
// Primary entry points:
//   - Inspect: executes ffprobe and returns the parsed Result
//   - Reader: media.TrackReader that maps subtitle streams to tracks
package ffprobe
