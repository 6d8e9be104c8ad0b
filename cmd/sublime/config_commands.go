package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"sublime/internal/config"
	"sublime/internal/organizer"
)

type configSummaryJSON struct {
	Path      string   `json:"path"`
	FromFile  bool     `json:"from_file"`
	LogDir    string   `json:"log_dir"`
	StateDir  string   `json:"state_dir"`
	Pattern   string   `json:"episode_pattern"`
	Languages []string `json:"languages"`
	Reader    string   `json:"embedded_reader"`
}

func newConfigCommand(ctx *commandContext) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Create or check the sublime configuration file",
	}
	configCmd.AddCommand(newConfigInitCommand(ctx))
	configCmd.AddCommand(newConfigValidateCommand(ctx))
	return configCmd
}

// configTarget resolves the file config commands act on: the global
// --config flag when set, the default location otherwise.
func configTarget(ctx *commandContext) (string, error) {
	if ctx.configFlag != nil {
		if flagPath := strings.TrimSpace(*ctx.configFlag); flagPath != "" {
			return config.ExpandPath(flagPath)
		}
	}
	return config.DefaultConfigPath()
}

func newConfigInitCommand(ctx *commandContext) *cobra.Command {
	var languageFlags []string
	var overwrite bool

	cmd := &cobra.Command{
		Use:         "init",
		Short:       "Write a commented sample configuration",
		Long:        "Write a commented sample configuration to --config (or the default location).\nRepeat --language to seed subtitles.languages.",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			// Reject unknown languages before anything touches the disk.
			if _, err := organizer.ParseLanguages(languageFlags); err != nil {
				return err
			}
			target, err := configTarget(ctx)
			if err != nil {
				return fmt.Errorf("resolve config path: %w", err)
			}
			if _, err := os.Stat(target); err == nil && !overwrite {
				return fmt.Errorf("%s already exists; pass --overwrite to replace it", target)
			} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
				return fmt.Errorf("check config path: %w", err)
			}

			if err := config.CreateSample(target, languageFlags); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderStatusLine("Config", statusOK, "Wrote "+target, shouldColorize(out)))
			return nil
		},
	}

	cmd.Flags().StringArrayVarP(&languageFlags, "language", "l", nil, "Subtitle language to seed (repeatable)")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Replace an existing configuration file")
	return cmd
}

func newConfigValidateCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:         "validate",
		Short:       "Load the configuration and show the resolved settings",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			var flagPath string
			if ctx.configFlag != nil {
				flagPath = strings.TrimSpace(*ctx.configFlag)
			}
			cfg, path, exists, err := config.Load(flagPath)
			if err != nil {
				return err
			}
			if err := cfg.EnsureDirectories(); err != nil {
				return err
			}

			summary := configSummaryJSON{
				Path:      path,
				FromFile:  exists,
				LogDir:    cfg.Paths.LogDir,
				StateDir:  cfg.Paths.StateDir,
				Pattern:   cfg.Naming.EpisodePattern,
				Languages: cfg.Subtitles.Languages,
				Reader:    cfg.Probe.EmbeddedReader,
			}
			if ctx.jsonOutput() {
				return writeJSON(cmd, summary)
			}

			source := "file"
			if !exists {
				source = "defaults (file not found)"
			}
			out := cmd.OutOrStdout()
			fmt.Fprint(out, renderTable(tableLayout{headers: []string{"Setting", "Value"}}, [][]string{
				{"config", path},
				{"source", source},
				{"paths.log_dir", cfg.Paths.LogDir},
				{"paths.state_dir", cfg.Paths.StateDir},
				{"naming.episode_pattern", cfg.Naming.EpisodePattern},
				{"subtitles.languages", strings.Join(cfg.Subtitles.Languages, ", ")},
				{"probe.embedded_reader", cfg.Probe.EmbeddedReader},
			}))
			fmt.Fprintln(out)
			fmt.Fprintln(out, renderStatusLine("Config", statusOK, "Configuration valid", shouldColorize(out)))
			return nil
		},
	}
}
