package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"remixd/internal/preset"
)

func newPresetsCommand(ctx *commandContext) *cobra.Command {
	var showFilters bool

	cmd := &cobra.Command{
		Use:         "presets",
		Short:       "List available audio presets",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			presets := preset.List()

			if !isTerminal(out) {
				for _, p := range presets {
					if showFilters {
						fmt.Fprintf(out, "%s\t%s\t%s\n", p.ID, p.Description, p.FilterGraph())
					} else {
						fmt.Fprintf(out, "%s\t%s\n", p.ID, p.Description)
					}
				}
				return nil
			}

			headers := []string{"ID", "Name", "Description"}
			if showFilters {
				headers = append(headers, "Filter Graph")
			}
			rows := make([][]string, 0, len(presets))
			for _, p := range presets {
				row := []string{p.ID, p.Name, p.Description}
				if showFilters {
					row = append(row, p.FilterGraph())
				}
				rows = append(rows, row)
			}
			fmt.Fprintln(out, renderTable(headers, rows))
			return nil
		},
	}

	cmd.Flags().BoolVar(&showFilters, "filters", false, "Include the filter graph for each preset")
	return cmd
}
