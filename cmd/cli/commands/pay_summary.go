package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wmtykrqqy6-ship-it/gigstaffpro-sub000/pkg/core/services"
)

// PaySummaryCmd creates the paySummary command
func PaySummaryCmd(app *AppContext) *cobra.Command {
	var filter services.PaymentFilter

	cmd := &cobra.Command{
		Use:   "paySummary",
		Short: "Show pending and paid totals per worker",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			summary, err := services.ViewPaymentSummary(app.Ctx, app.Database, app.Logger, filter)
			if err != nil {
				return err
			}

			// Look up names for display
			workers, err := app.Database.GetWorkers(app.Ctx)
			if err != nil {
				return fmt.Errorf("failed to fetch workers: %w", err)
			}
			names := make(map[string]string, len(workers))
			for _, w := range workers {
				names[w.ID] = w.FullName()
			}

			fmt.Printf("\n%-25s %6s %12s %12s\n", "Worker", "Gigs", "Pending", "Paid")
			for _, w := range summary.Workers {
				name := names[w.WorkerID]
				// Fall back to the ID for removed workers
				if name == "" {
					name = w.WorkerID
				}
				fmt.Printf("%-25s %6d %12s %12s\n", name, w.Assignments, money(w.PendingTotal), money(w.PaidTotal))
			}
			fmt.Printf("%-25s %6s %12s %12s\n\n", "Total", "", money(summary.PendingTotal), money(summary.PaidTotal))
			return nil
		},
	}

	cmd.Flags().StringVar(&filter.WorkerID, "worker", "", "Only this worker")
	cmd.Flags().StringVar(&filter.From, "from", "", "Events on or after YYYY-MM-DD")
	cmd.Flags().StringVar(&filter.To, "to", "", "Events on or before YYYY-MM-DD")

	return cmd
}
