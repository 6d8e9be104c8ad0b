// Package mkv lists subtitle tracks in Matroska files by walking the EBML
// element tree up to the Tracks element.
package mkv
