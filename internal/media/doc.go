// Package media defines the container track model shared by the native
// Matroska reader (media/mkv) and the ffprobe-backed reader (media/ffprobe).
package media
