package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wmtykrqqy6-ship-it/gigstaffpro-sub000/pkg/core/services"
)

// AddWorkerCmd creates the addWorker command
func AddWorkerCmd(app *AppContext) *cobra.Command {
	var req services.AddWorkerRequest

	cmd := &cobra.Command{
		Use:   "addWorker <first_name> <last_name> <email>",
		Short: "Add or update a worker on the roster",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			req.FirstName, req.LastName, req.Email = args[0], args[1], args[2]

			// ID is derived from email when --id is omitted
			worker, err := services.AddWorker(app.Ctx, app.Database, app.Logger, req)
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Saved %s (%s)\n", worker.FullName(), worker.ID)
			if len(worker.Skills) > 0 {
				fmt.Printf("  Skills: %s\n", strings.Join(worker.Skills, ", "))
			}
			fmt.Println()
			return nil
		},
	}

	cmd.Flags().StringVar(&req.ID, "id", "", "Worker ID (generated when empty)")
	cmd.Flags().StringVar(&req.Phone, "phone", "", "Phone number")
	cmd.Flags().StringVar(&req.Address, "address", "", "Home address, used for distance lookups")
	cmd.Flags().StringSliceVar(&req.Skills, "skill", nil, "Skill tag, e.g. \"Blackjack Dealer\" (repeatable)")
	cmd.Flags().StringVar(&req.Status, "status", "", "active or inactive")

	return cmd
}
