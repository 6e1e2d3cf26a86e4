package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wmtykrqqy6-ship-it/gigstaffpro-sub000/pkg/core/services"
)

// StaffingCmd creates the staffing command
func StaffingCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "staffing <event_id>",
		Short: "Show filled and needed counts per position for an event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			staffing, err := services.ViewEventStaffing(app.Ctx, app.Database, app.Logger, args[0])
			if err != nil {
				return err
			}

			// Event header
			e := staffing.Event
			fmt.Printf("\n%s, %s %s", e.Name, e.Date, e.StartTime)
			if e.HasEndTime() {
				fmt.Printf("-%s", e.EndTime)
			}
			fmt.Println()

			// One block per position
			for _, p := range staffing.Positions {
				mark := "✗"
				if p.IsFilled {
					mark = "✓"
				}
				fmt.Printf("\n  %s %s: %d/%d\n", mark, p.Name, p.Filled, p.Needed)
				for _, w := range p.Workers {
					fmt.Printf("      %-25s %-8s %s\n", w.Name, w.PaymentStatus, w.AssignmentID)
				}
			}

			if staffing.FullyStaffed {
				fmt.Println("\nFully staffed")
			}
			fmt.Println()
			return nil
		},
	}
}
