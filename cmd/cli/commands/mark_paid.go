package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/wmtykrqqy6-ship-it/gigstaffpro-sub000/pkg/core/model"
	"github.com/wmtykrqqy6-ship-it/gigstaffpro-sub000/pkg/core/services"
)

// MarkPaidCmd creates the markPaid command
func MarkPaidCmd(app *AppContext) *cobra.Command {
	var pending bool

	cmd := &cobra.Command{
		Use:   "markPaid <assignment_id>...",
		Short: "Mark assignments as paid (or back to pending with --pending)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			status := model.PaymentPaid
			if pending {
				status = model.PaymentPending
			}

			// Unknown IDs are skipped, not errors
			updated, err := services.SetPaymentStatus(app.Ctx, app.Database, app.Logger, args, status, time.Now())
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ %d of %d assignment(s) marked %s\n\n", updated, len(args), status)
			return nil
		},
	}

	cmd.Flags().BoolVar(&pending, "pending", false, "Mark as pending instead of paid")

	return cmd
}
