package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"sublime/internal/fileutil"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	LogDir   string `toml:"log_dir"`
	StateDir string `toml:"state_dir"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Naming contains the rename pattern applied to episodes and the underscore
// substitution shared by movies and episodes.
type Naming struct {
	EpisodePattern  string `toml:"episode_pattern"`
	Underscore      bool   `toml:"underscore"`
	CrossDeviceCopy bool   `toml:"cross_device_copy"`
}

// Subtitles contains the languages a video is expected to carry.
type Subtitles struct {
	Languages []string `toml:"languages"`
}

// Probe contains configuration for content inspection.
type Probe struct {
	// EmbeddedReader selects how Matroska subtitle tracks are listed:
	// "native" walks the EBML structure in-process, "ffprobe" shells out.
	EmbeddedReader string `toml:"embedded_reader"`
	FFprobeBinary  string `toml:"ffprobe_binary"`
}

// Config encapsulates all configuration values for sublime.
//
// Configuration sections by subsystem:
//   - Paths: log and lock file directories
//   - Logging: log format and level
//   - Naming: episode rename pattern, underscore substitution, cross-device moves
//   - Subtitles: languages checked by scan
//   - Probe: embedded subtitle reader selection
type Config struct {
	Paths     Paths     `toml:"paths"`
	Logging   Logging   `toml:"logging"`
	Naming    Naming    `toml:"naming"`
	Subtitles Subtitles `toml:"subtitles"`
	Probe     Probe     `toml:"probe"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath(defaultConfigPath)
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("sublime.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the log and state directories.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.LogDir, c.Paths.StateDir} {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// FFprobeBinary returns the ffprobe executable name used by the ffprobe track reader.
func (c *Config) FFprobeBinary() string {
	if bin := strings.TrimSpace(c.Probe.FFprobeBinary); bin != "" {
		return bin
	}
	return defaultFFprobeBinary
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

var sampleLanguagesLine = regexp.MustCompile(`(?m)^languages = .*$`)

// Sample returns the sample configuration. When languages is non-empty it
// replaces the sample's subtitles.languages value; the result keeps the
// sample's comments.
func Sample(languages []string) ([]byte, error) {
	if len(languages) == 0 {
		return []byte(sampleConfig), nil
	}
	encoded, err := toml.Marshal(struct {
		Languages []string `toml:"languages"`
	}{Languages: languages})
	if err != nil {
		return nil, fmt.Errorf("encode sample languages: %w", err)
	}
	line := strings.TrimSpace(string(encoded))
	return []byte(sampleLanguagesLine.ReplaceAllLiteralString(sampleConfig, line)), nil
}

// CreateSample atomically writes the sample configuration to path, seeding
// subtitles.languages when languages is non-empty.
func CreateSample(path string, languages []string) error {
	content, err := Sample(languages)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	if err := fileutil.WriteFileAtomic(path, content, 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
