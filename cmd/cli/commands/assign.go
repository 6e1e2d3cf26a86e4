package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wmtykrqqy6-ship-it/gigstaffpro-sub000/pkg/core/services"
)

// AssignCmd creates the assign command
func AssignCmd(app *AppContext) *cobra.Command {
	var hours, miles string
	var noNotify bool

	cmd := &cobra.Command{
		Use:   "assign <event_id> <worker_id> <position>",
		Short: "Assign a worker to a position, checking capacity and schedule conflicts",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := services.AssignWorkerRequest{EventID: args[0], WorkerID: args[1], Position: args[2]}
			var err error
			if req.Hours, err = optionalDecimal("hours", hours); err != nil {
				return err
			}
			if req.Miles, err = optionalDecimal("miles", miles); err != nil {
				return err
			}

			// --no-notify overrides notifyOnAssign
			collab, err := app.Collaborators(app.Cfg.NotifyOnAssign && !noNotify)
			if err != nil {
				return err
			}

			app.Logger.Debug("assign command", zap.Any("request", req))

			result, err := services.AssignWorker(app.Ctx, app.Database, collab, app.Logger, req)
			if errors.Is(err, services.ErrAssignmentRefused) {
				fmt.Printf("\n✗ Refused (%s): %s\n\n", result.Refusal.Kind, result.Refusal.Message)
				return nil
			}
			if err != nil {
				return err
			}

			// Display result
			a := result.Assignment
			if result.MovedFrom != nil {
				fmt.Printf("\n✓ Moved from %s to %s (%s)\n\n", result.MovedFrom.Position, a.Position, a.ID)
			} else {
				fmt.Printf("\n✓ Assigned as %s (%s)\n\n", a.Position, a.ID)
			}
			fmt.Printf("  Position filled: %d of %d\n", result.Capacity.Filled+1, result.Capacity.Needed)
			fmt.Printf("  Hours:           %s\n", a.Hours.Round(2))
			if a.Miles != nil {
				fmt.Printf("  Miles:           %s (%s)\n", a.Miles, result.MilesSource)
			} else {
				fmt.Printf("  Miles:           unset, enter with recalcPay --miles\n")
			}
			printBreakdown(result.Breakdown)

			// Warnings
			if !result.Qualified {
				fmt.Println("  ⚠️  Worker has no matching skill for this position")
			}
			if result.DistanceError != "" {
				fmt.Printf("  ⚠️  Distance lookup failed: %s\n", result.DistanceError)
			}
			switch {
			case result.Notified:
				fmt.Println("  ✉  Worker notified")
			case result.NotifyError != "":
				fmt.Printf("  ⚠️  Email not sent: %s\n", result.NotifyError)
			}
			fmt.Println()
			return nil
		},
	}

	cmd.Flags().StringVar(&hours, "hours", "", "Hours worked (defaults to the event duration)")
	cmd.Flags().StringVar(&miles, "miles", "", "Miles travelled (defaults to a distance lookup)")
	cmd.Flags().BoolVar(&noNotify, "no-notify", false, "Do not email the worker")

	return cmd
}
