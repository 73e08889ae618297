package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/viva/internal/cli/formatter"
)

func newScheduleCmd(app *App) *cobra.Command {
	var makeupOnly, regularOnly bool

	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Show the published schedule",
		RunE: func(cmd *cobra.Command, args []string) error {
			if makeupOnly && regularOnly {
				return fmt.Errorf("--makeup and --regular are mutually exclusive")
			}
			var makeup *bool
			if makeupOnly || regularOnly {
				makeup = &makeupOnly
			}

			rows, err := app.Schedule.List(context.Background(), makeup)
			if err != nil {
				return err
			}
			if len(rows) == 0 {
				fmt.Println("No schedule published yet. Run an algorithm first.")
				return nil
			}
			fmt.Println(formatter.ScheduleTable(rows))
			return nil
		},
	}

	cmd.Flags().BoolVar(&makeupOnly, "makeup", false, "Only makeup sessions")
	cmd.Flags().BoolVar(&regularOnly, "regular", false, "Only regular sessions")
	return cmd
}
