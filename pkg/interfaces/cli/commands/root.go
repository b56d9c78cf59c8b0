// Package commands wires the CLI surface of the production planner.
package commands

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// App holds the shared dependencies of all CLI commands.
type App struct {
	Logger *zap.Logger
}

// NewRootCmd creates the top-level "smartsched" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "smartsched",
		Short: "Multi-site production planning and packing simulator",
	}

	root.AddCommand(
		newPlanCmd(app),
		newCatalogCmd(app),
	)

	return root
}
