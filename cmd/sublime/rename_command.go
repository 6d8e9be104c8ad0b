package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"sublime/internal/organizer"
	"sublime/internal/video"
)

type renameOutcomeJSON struct {
	Path    string `json:"path"`
	Target  string `json:"target,omitempty"`
	Kind    string `json:"kind,omitempty"`
	Renamed bool   `json:"renamed"`
	Error   string `json:"error,omitempty"`
}

type renameReportJSON struct {
	BatchID  string              `json:"batch_id"`
	Outcomes []renameOutcomeJSON `json:"outcomes"`
}

func newRenameCommand(ctx *commandContext) *cobra.Command {
	var patternFlag string
	var noUnderscore bool
	var assumeFlag string

	cmd := &cobra.Command{
		Use:   "rename <dir>",
		Short: "Rename classified videos to their canonical names",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			assume, err := parseAssumeKind(assumeFlag)
			if err != nil {
				return err
			}
			org, err := ctx.organizer()
			if err != nil {
				return err
			}
			opts := org.DefaultRenameOptions()
			if strings.TrimSpace(patternFlag) != "" {
				opts.Pattern = patternFlag
			}
			if noUnderscore {
				opts.Underscore = false
			}
			opts.AssumeKind = assume

			report, err := org.Rename(cmd.Context(), args[0], opts)
			if err != nil {
				return fmt.Errorf("rename %s: %w", args[0], err)
			}
			if ctx.jsonOutput() {
				return writeJSON(cmd, renameReportToJSON(report))
			}
			printRenameReport(cmd, args[0], report)
			return nil
		},
	}

	cmd.Flags().StringVar(&patternFlag, "pattern", "", "Episode pattern for this batch (defaults to naming.episode_pattern)")
	cmd.Flags().BoolVar(&noUnderscore, "no-underscore", false, "Keep spaces in renamed files")
	cmd.Flags().StringVar(&assumeFlag, "as", "", "Treat unclassified videos as movie or episode")
	return cmd
}

func parseAssumeKind(value string) (video.Kind, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "":
		return video.KindVideo, nil
	case "movie":
		return video.KindMovie, nil
	case "episode":
		return video.KindEpisode, nil
	default:
		return video.KindVideo, fmt.Errorf("invalid --as value %q (want movie or episode)", value)
	}
}

func printRenameReport(cmd *cobra.Command, root string, report organizer.RenameReport) {
	out := cmd.OutOrStdout()
	if len(report.Outcomes) == 0 {
		fmt.Fprintln(out, "No videos found")
		return
	}

	rows := make([][]string, 0, len(report.Outcomes))
	renamed, failed := 0, 0
	for _, outcome := range report.Outcomes {
		status := "unchanged"
		target := displayPath(root, outcome.Result.Path)
		switch {
		case outcome.Result.Err != nil:
			failed++
			status = "error: " + outcome.Result.Err.Error()
			target = "-"
		case outcome.Result.Renamed():
			renamed++
			status = "renamed"
		}
		kind := "-"
		if outcome.Video != nil {
			kind = outcome.Video.Kind().String()
		}
		rows = append(rows, []string{displayPath(root, outcome.Path), kind, target, status})
	}

	fmt.Fprint(out, renderTable(tableLayout{
		headers: []string{"File", "Kind", "Target", "Status"},
		aligns:  []columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft},
	}, rows))
	fmt.Fprintln(out)

	message := fmt.Sprintf("Renamed %d of %d", renamed, len(report.Outcomes))
	if failed > 0 {
		message += fmt.Sprintf(", %d failed", failed)
	}
	fmt.Fprintln(out, renderStatusLine("Rename", summaryKind(failed), message, shouldColorize(out)))
}

func renameReportToJSON(report organizer.RenameReport) renameReportJSON {
	out := renameReportJSON{BatchID: report.BatchID, Outcomes: make([]renameOutcomeJSON, 0, len(report.Outcomes))}
	for _, outcome := range report.Outcomes {
		item := renameOutcomeJSON{Path: outcome.Path, Renamed: outcome.Result.Renamed()}
		if outcome.Video != nil {
			item.Kind = outcome.Video.Kind().String()
		}
		if outcome.Result.Err != nil {
			item.Error = outcome.Result.Err.Error()
		} else {
			item.Target = outcome.Result.Path
		}
		out.Outcomes = append(out.Outcomes, item)
	}
	return out
}
