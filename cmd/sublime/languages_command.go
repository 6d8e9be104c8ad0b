package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"sublime/internal/language"
)

type languageJSON struct {
	Code2 string `json:"code2,omitempty"`
	Code3 string `json:"code3"`
	Name  string `json:"name"`
}

func newLanguagesCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:         "languages",
		Short:       "List the languages sublime can resolve",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			known := language.Known()
			entries := make([]languageJSON, 0, len(known))
			for _, lang := range known {
				code2, _ := lang.ISO2()
				entries = append(entries, languageJSON{Code2: code2, Code3: lang.ISO3(), Name: lang.Name()})
			}
			if ctx.jsonOutput() {
				return writeJSON(cmd, entries)
			}

			rows := make([][]string, 0, len(entries))
			for _, e := range entries {
				rows = append(rows, []string{e.Code2, e.Code3, e.Name})
			}
			out := cmd.OutOrStdout()
			fmt.Fprint(out, renderTable(tableLayout{
				headers: []string{"ISO 639-1", "ISO 639-2", "Name"},
				aligns:  []columnAlignment{alignLeft, alignLeft, alignLeft},
				footer:  []string{"", "", fmt.Sprintf("%d languages", len(entries))},
			}, rows))
			fmt.Fprintln(out)
			return nil
		},
	}
}
