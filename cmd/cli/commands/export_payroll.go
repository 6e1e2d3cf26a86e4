package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/wmtykrqqy6-ship-it/gigstaffpro-sub000/pkg/core/services"
)

// ExportPayrollCmd creates the exportPayroll command
func ExportPayrollCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "exportPayroll",
		Short: "Write pending assignments to a new tab of the payroll sheet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Authenticate with Google
			sheets, err := app.Sheets()
			if err != nil {
				return err
			}

			// Tab is named after today's date
			title, rows, err := services.ExportPayroll(app.Ctx, app.Database, sheets,
				app.Cfg.PayrollSheetID, time.Now().Format("2006-01-02"), app.Logger)
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Wrote %d pending assignment(s) to tab %q\n\n", rows, title)
			return nil
		},
	}
}
