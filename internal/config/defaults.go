package config

const (
	defaultConfigPath     = "~/.config/sublime/config.toml"
	defaultLogDir         = "~/.local/share/sublime/logs"
	defaultStateDir       = "~/.local/state/sublime"
	defaultLogFormat      = "console"
	defaultLogLevel       = "info"
	defaultEpisodePattern = "{serie_name} S{season:02d}E{episode:02d} {episode_name}"
	defaultEmbeddedReader = EmbeddedReaderNative
	defaultFFprobeBinary  = "ffprobe"
	defaultLanguage       = "en"
)

// Embedded subtitle reader names accepted by probe.embedded_reader.
const (
	EmbeddedReaderNative  = "native"
	EmbeddedReaderFFprobe = "ffprobe"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			LogDir:   defaultLogDir,
			StateDir: defaultStateDir,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
		Naming: Naming{
			EpisodePattern: defaultEpisodePattern,
			Underscore:     true,
		},
		Subtitles: Subtitles{
			Languages: []string{defaultLanguage},
		},
		Probe: Probe{
			EmbeddedReader: defaultEmbeddedReader,
			FFprobeBinary:  defaultFFprobeBinary,
		},
	}
}

// DefaultEpisodePattern returns the built-in episode rename pattern.
func DefaultEpisodePattern() string {
	return defaultEpisodePattern
}
