package commands

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/wmtykrqqy6-ship-it/gigstaffpro-sub000/pkg/core/payroll"
	"github.com/wmtykrqqy6-ship-it/gigstaffpro-sub000/pkg/core/services"
)

// PreviewPayCmd creates the previewPay command
func PreviewPayCmd(app *AppContext) *cobra.Command {
	var miles string
	var lakeGeneva, holiday bool

	cmd := &cobra.Command{
		Use:   "previewPay <position> <hours>",
		Short: "Show the pay breakdown for a hypothetical assignment",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			hours, err := parseDecimalArg("hours", args[1])
			if err != nil {
				return err
			}
			input := payroll.PayInput{
				Position:     args[0],
				Hours:        hours,
				Miles:        decimal.Zero,
				IsLakeGeneva: lakeGeneva,
				IsHoliday:    holiday,
			}
			if miles != "" {
				if input.Miles, err = parseDecimalArg("miles", miles); err != nil {
					return err
				}
			}

			// Nothing is stored
			breakdown, err := services.PreviewPay(app.Ctx, app.Database, app.Logger, input)
			if err != nil {
				return err
			}

			fmt.Printf("\n%s, %s hours, %s miles\n", input.Position, input.Hours, input.Miles)
			printBreakdown(breakdown)
			fmt.Println()
			return nil
		},
	}

	cmd.Flags().StringVar(&miles, "miles", "", "Miles travelled")
	cmd.Flags().BoolVar(&lakeGeneva, "lake-geneva", false, "Include the Lake Geneva bonus")
	cmd.Flags().BoolVar(&holiday, "holiday", false, "Apply the holiday multiplier")

	return cmd
}

func printBreakdown(b payroll.PayBreakdown) {
	fmt.Printf("  Base pay:        %s\n", money(b.BasePay))
	fmt.Printf("  Travel pay:      %s\n", money(b.TravelPay))
	if !b.LakeGenevaBonus.IsZero() {
		fmt.Printf("  Lake Geneva:     %s\n", money(b.LakeGenevaBonus))
	}
	fmt.Printf("  Subtotal:        %s\n", money(b.Subtotal))
	if !b.HolidayMultiplier.Equal(decimal.NewFromInt(1)) {
		fmt.Printf("  Holiday:         x%s\n", b.HolidayMultiplier.StringFixed(2))
	}
	fmt.Printf("  Total:           %s\n", money(b.TotalPay))

	if len(b.Warnings) > 0 {
		warnings := make([]string, len(b.Warnings))
		for i, w := range b.Warnings {
			warnings[i] = string(w)
		}
		fmt.Printf("  ⚠️  %s\n", strings.Join(warnings, ", "))
	}
}
