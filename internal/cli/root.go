// Package cli wires the cobra command tree for the viva binary.
package cli

import (
	"context"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/viva/internal/orchestrator"
	"github.com/alexanderramin/viva/internal/repository"
)

// App holds the wired engine pieces the commands operate on.
type App struct {
	Orch     *orchestrator.Orchestrator
	Runs     repository.RunRepo
	Schedule repository.ScheduleRepo
	API      http.Handler

	// SeedDemo populates an empty database with the demo defense day.
	SeedDemo func(ctx context.Context) error
}

// NewRootCmd creates the top-level "viva" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "viva",
		Short: "Thesis and interim defense day scheduler",
	}

	root.AddCommand(
		newRunCmd(app),
		newAlgorithmsCmd(app),
		newRunsCmd(app),
		newScheduleCmd(app),
		newServeCmd(app),
	)

	return root
}
