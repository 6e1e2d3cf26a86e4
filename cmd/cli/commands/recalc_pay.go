package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wmtykrqqy6-ship-it/gigstaffpro-sub000/pkg/core/services"
)

// RecalcPayCmd creates the recalcPay command
func RecalcPayCmd(app *AppContext) *cobra.Command {
	var hours, miles string

	cmd := &cobra.Command{
		Use:   "recalcPay <assignment_id>",
		Short: "Reprice an assignment, optionally with corrected hours or miles",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := services.RecalculatePayRequest{AssignmentID: args[0]}
			var err error
			if req.Hours, err = optionalDecimal("hours", hours); err != nil {
				return err
			}
			if req.Miles, err = optionalDecimal("miles", miles); err != nil {
				return err
			}

			// Unset flags keep the stored values
			a, breakdown, err := services.RecalculatePay(app.Ctx, app.Database, app.Logger, req)
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Repriced %s (%s, %s hours)\n", a.ID, a.Position, a.Hours.Round(2))
			printBreakdown(breakdown)
			fmt.Println()
			return nil
		},
	}

	cmd.Flags().StringVar(&hours, "hours", "", "Corrected hours")
	cmd.Flags().StringVar(&miles, "miles", "", "Miles, e.g. after a failed distance lookup")

	return cmd
}
