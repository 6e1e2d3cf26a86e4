package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wmtykrqqy6-ship-it/gigstaffpro-sub000/pkg/core/services"
)

// EligibleCmd creates the eligible command
func EligibleCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "eligible <event_id> <position>",
		Short: "List active workers qualified for a position, with conflicts",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			eligible, err := services.EligibleWorkers(app.Ctx, app.Database, app.Logger, args[0], args[1])
			if err != nil {
				return err
			}

			fmt.Printf("\n%d qualified worker(s) for %s:\n\n", len(eligible), args[1])
			for _, e := range eligible {
				// Explain why a listed worker might not be assignable
				note := ""
				switch {
				case e.Conflict != nil:
					note = fmt.Sprintf("busy: %s at %s %s-%s", e.Conflict.Position, e.Conflict.EventName,
						e.Conflict.StartTime, e.Conflict.EndTime)
				case e.CurrentPosition == args[1]:
					note = "already assigned"
				case e.CurrentPosition != "":
					note = "currently " + e.CurrentPosition + " (assigning moves them)"
				}
				fmt.Printf("  %-36s  %-25s %s\n", e.Worker.ID, e.Worker.FullName(), note)
			}
			fmt.Println()
			return nil
		},
	}
}
