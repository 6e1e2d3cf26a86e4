package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wmtykrqqy6-ship-it/gigstaffpro-sub000/pkg/core/services"
)

// ImportWorkersCmd creates the importWorkers command
func ImportWorkersCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "importWorkers",
		Short: "Import the worker roster from the roster sheet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Authenticate with Google
			sheets, err := app.Sheets()
			if err != nil {
				return err
			}

			result, err := services.ImportWorkers(app.Ctx, app.Database, sheets, app.Cfg, app.Logger)
			if err != nil {
				return err
			}

			// Display summary
			fmt.Printf("\n✓ Imported %d workers", result.Imported)
			if result.GeneratedIDs > 0 {
				fmt.Printf(" (%d without a Worker ID were given one)", result.GeneratedIDs)
			}
			fmt.Print("\n\n")
			for _, w := range result.Workers {
				fmt.Printf("  %-36s  %-25s %-8s %s\n", w.ID, w.FullName(), w.Status, w.Email)
			}
			fmt.Println()
			return nil
		},
	}
}
