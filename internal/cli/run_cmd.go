package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/viva/internal/cli/formatter"
)

func newRunCmd(app *App) *cobra.Command {
	var (
		paramPairs []string
		seed       int
		demo       bool
	)

	cmd := &cobra.Command{
		Use:   "run <algorithm-tag>",
		Short: "Execute a scheduling algorithm and publish the schedule",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			if demo {
				if err := app.SeedDemo(ctx); err != nil {
					return fmt.Errorf("seeding demo data: %w", err)
				}
			}

			params, err := parseParams(paramPairs)
			if err != nil {
				return err
			}
			if seed != 0 {
				params["seed"] = seed
			}

			record, err := app.Orch.RunAlgorithm(ctx, args[0], params, "")
			if err != nil {
				if record != nil {
					fmt.Println(formatter.RunReport(record))
				}
				return err
			}

			fmt.Println(formatter.RunReport(record))
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&paramPairs, "param", nil, "Strategy parameter as key=value (repeatable)")
	cmd.Flags().IntVar(&seed, "seed", 0, "RNG seed for reproducible runs")
	cmd.Flags().BoolVar(&demo, "demo", false, "Seed the demo dataset into an empty database first")
	return cmd
}
