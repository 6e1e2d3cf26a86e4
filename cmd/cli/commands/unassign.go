package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wmtykrqqy6-ship-it/gigstaffpro-sub000/pkg/core/services"
)

// UnassignCmd creates the unassign command
func UnassignCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "unassign <assignment_id>",
		Short: "Remove an assignment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			removed, err := services.UnassignWorker(app.Ctx, app.Database, app.Logger, args[0])
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Removed %s from %s at event %s\n", removed.WorkerID, removed.Position, removed.EventID)
			// Removing a paid gig doesn't refund anything; warn the admin
			if removed.IsPaid() {
				fmt.Printf("  ⚠️  This assignment was already paid (%s)\n", money(removed.TotalPay))
			}
			fmt.Println()
			return nil
		},
	}
}
