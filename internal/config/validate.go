package config

import (
	"errors"
	"fmt"
	"strings"

	"sublime/internal/language"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateNaming(); err != nil {
		return err
	}
	if err := c.validateSubtitles(); err != nil {
		return err
	}
	if err := c.validateProbe(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateNaming() error {
	pattern := c.Naming.EpisodePattern
	if strings.TrimSpace(pattern) == "" {
		return errors.New("naming.episode_pattern must be set")
	}
	if strings.Count(pattern, "{") != strings.Count(pattern, "}") {
		return fmt.Errorf("naming.episode_pattern %q has unbalanced braces", pattern)
	}
	if strings.ContainsAny(pattern, `/\`) {
		return fmt.Errorf("naming.episode_pattern %q must not contain path separators", pattern)
	}
	return nil
}

func (c *Config) validateSubtitles() error {
	if len(c.Subtitles.Languages) == 0 {
		return errors.New("subtitles.languages must include at least one language")
	}
	for _, code := range c.Subtitles.Languages {
		if _, err := language.Parse(code); err != nil {
			return fmt.Errorf("subtitles.languages: %w", err)
		}
	}
	return nil
}

func (c *Config) validateProbe() error {
	switch c.Probe.EmbeddedReader {
	case EmbeddedReaderNative, EmbeddedReaderFFprobe:
		return nil
	default:
		return fmt.Errorf("probe.embedded_reader must be %q or %q, got %q", EmbeddedReaderNative, EmbeddedReaderFFprobe, c.Probe.EmbeddedReader)
	}
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error; got %q", c.Logging.Level)
	}
}
