// Package config loads, normalizes, and validates sublime configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours the SUBLIME_LANGUAGES environment
// fallback. The Config type centralizes the naming pattern, subtitle languages,
// and probe selection the CLI needs.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
