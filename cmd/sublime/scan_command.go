package main

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"sublime/internal/organizer"
	"sublime/internal/video"
)

type scanEntryJSON struct {
	Path      string              `json:"path"`
	Kind      string              `json:"kind,omitempty"`
	Signature string              `json:"signature,omitempty"`
	Video     string              `json:"video,omitempty"`
	Present   map[string][]string `json:"present,omitempty"`
	Missing   []string            `json:"missing,omitempty"`
	Error     string              `json:"error,omitempty"`
}

type scanReportJSON struct {
	BatchID string          `json:"batch_id"`
	Entries []scanEntryJSON `json:"entries"`
}

func newScanCommand(ctx *commandContext) *cobra.Command {
	var languageFlags []string

	cmd := &cobra.Command{
		Use:   "scan <dir>",
		Short: "Classify videos and report which subtitles they carry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			langs, err := organizer.ParseLanguages(languageFlags)
			if err != nil {
				return err
			}
			org, err := ctx.organizer()
			if err != nil {
				return err
			}
			report, err := org.Scan(cmd.Context(), args[0], langs)
			if err != nil {
				return fmt.Errorf("scan %s: %w", args[0], err)
			}
			if ctx.jsonOutput() {
				return writeJSON(cmd, scanReportToJSON(report))
			}
			printScanReport(cmd, args[0], report)
			return nil
		},
	}

	cmd.Flags().StringArrayVarP(&languageFlags, "language", "l", nil, "Language to check (repeatable; defaults to subtitles.languages)")
	return cmd
}

func printScanReport(cmd *cobra.Command, root string, report organizer.ScanReport) {
	out := cmd.OutOrStdout()
	if len(report.Entries) == 0 {
		fmt.Fprintln(out, "No videos found")
		return
	}

	rows := make([][]string, 0, len(report.Entries))
	complete, failed := 0, 0
	for _, entry := range report.Entries {
		rows = append(rows, scanRow(root, entry))
		switch {
		case entry.Err != nil:
			failed++
		case len(entry.Missing) == 0:
			complete++
		}
	}

	fmt.Fprint(out, renderTable(tableLayout{
		headers: []string{"File", "Kind", "Signature", "Present", "Missing"},
		aligns:  []columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignLeft},
	}, rows))
	fmt.Fprintln(out)

	message := fmt.Sprintf("%d of %d videos have every subtitle", complete, len(report.Entries))
	if failed > 0 {
		message += fmt.Sprintf(", %d failed", failed)
	}
	kind := summaryKind(failed)
	if complete < len(report.Entries) && kind == statusOK {
		kind = statusWarn
	}
	fmt.Fprintln(out, renderStatusLine("Scan", kind, message, shouldColorize(out)))
}

func scanRow(root string, entry organizer.Entry) []string {
	file := displayPath(root, entry.Path)
	if entry.Err != nil || entry.Video == nil {
		msg := "unknown error"
		if entry.Err != nil {
			msg = entry.Err.Error()
		}
		return []string{file, "-", "-", "-", "error: " + msg}
	}
	missing := make([]string, 0, len(entry.Missing))
	for _, lang := range entry.Missing {
		missing = append(missing, lang.String())
	}
	return []string{
		file,
		entry.Video.Kind().String(),
		string(entry.Video.Signature()),
		formatPresence(entry.Present),
		strings.Join(missing, ", "),
	}
}

func formatPresence(present map[string]video.Presence) string {
	if len(present) == 0 {
		return ""
	}
	codes := make([]string, 0, len(present))
	for code := range present {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	parts := make([]string, 0, len(codes))
	for _, code := range codes {
		parts = append(parts, fmt.Sprintf("%s (%s)", code, strings.Join(presenceSources(present[code]), "+")))
	}
	return strings.Join(parts, ", ")
}

func presenceSources(p video.Presence) []string {
	var sources []string
	if p.Embedded {
		sources = append(sources, "embedded")
	}
	if len(p.Sidecars) > 0 {
		sources = append(sources, "sidecar")
	}
	return sources
}

func scanReportToJSON(report organizer.ScanReport) scanReportJSON {
	out := scanReportJSON{BatchID: report.BatchID, Entries: make([]scanEntryJSON, 0, len(report.Entries))}
	for _, entry := range report.Entries {
		item := scanEntryJSON{Path: entry.Path}
		if entry.Err != nil {
			item.Error = entry.Err.Error()
		}
		if entry.Video != nil {
			item.Kind = entry.Video.Kind().String()
			item.Signature = string(entry.Video.Signature())
			item.Video = entry.Video.String()
		}
		if len(entry.Present) > 0 {
			item.Present = make(map[string][]string, len(entry.Present))
			for code, presence := range entry.Present {
				item.Present[code] = presenceSources(presence)
			}
		}
		for _, lang := range entry.Missing {
			item.Missing = append(item.Missing, lang.String())
		}
		out.Entries = append(out.Entries, item)
	}
	return out
}

func displayPath(root, path string) string {
	if abs, err := filepath.Abs(root); err == nil {
		root = abs
	}
	if rel, err := filepath.Rel(root, path); err == nil && !strings.HasPrefix(rel, "..") {
		return rel
	}
	return path
}
