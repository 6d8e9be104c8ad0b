package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"sublime/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Paths.StateDir = filepath.Join(base, "state")

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithLanguages overrides the subtitle languages on the test config.
func WithLanguages(codes ...string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Subtitles.Languages = append([]string(nil), codes...)
	}
}

// WithEpisodePattern overrides the episode rename pattern.
func WithEpisodePattern(pattern string, underscore bool) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Naming.EpisodePattern = pattern
		b.cfg.Naming.Underscore = underscore
	}
}

// WithStubbedFFprobe writes an executable that prints the given JSON payload
// and points the probe configuration at it.
func WithStubbedFFprobe(payload string) ConfigOption {
	return func(b *configBuilder) {
		binDir := filepath.Join(b.baseDir, "bin")
		if err := os.MkdirAll(binDir, 0o755); err != nil {
			b.t.Fatalf("mkdir bin dir: %v", err)
		}
		payloadPath := filepath.Join(binDir, "ffprobe.json")
		if err := os.WriteFile(payloadPath, []byte(payload), 0o644); err != nil {
			b.t.Fatalf("write ffprobe payload: %v", err)
		}
		script := []byte("#!/bin/sh\ncat '" + payloadPath + "'\n")
		target := filepath.Join(binDir, "ffprobe")
		if err := os.WriteFile(target, script, 0o755); err != nil {
			b.t.Fatalf("write stub ffprobe: %v", err)
		}
		b.cfg.Probe.EmbeddedReader = config.EmbeddedReaderFFprobe
		b.cfg.Probe.FFprobeBinary = target
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.StateDir)
}
