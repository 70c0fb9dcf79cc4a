package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"subgen/internal/deps"
)

func newDepsCommand(configFlag *string) *cobra.Command {
	return &cobra.Command{
		Use:   "deps",
		Short: "Report availability of the external tools and the model",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, _, err := loadConfig(configFlag)
			if err != nil {
				return fmt.Errorf("load configuration: %w", err)
			}

			statuses := deps.Check(cfg)
			rows := make([][]string, 0, len(statuses))
			missing := 0
			for _, status := range statuses {
				state := "ok"
				detail := status.Command
				if !status.Available {
					state = "missing"
					detail = status.Detail
					missing++
				}
				rows = append(rows, []string{status.Name, state, detail})
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable(
				[]string{"Dependency", "Status", "Detail"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft},
			))
			if missing > 0 {
				return fmt.Errorf("%d dependency check(s) failed", missing)
			}
			return nil
		},
	}
}
