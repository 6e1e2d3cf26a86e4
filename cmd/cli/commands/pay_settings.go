package commands

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/wmtykrqqy6-ship-it/gigstaffpro-sub000/pkg/core/payroll"
	"github.com/wmtykrqqy6-ship-it/gigstaffpro-sub000/pkg/core/services"
)

// SetPayRateCmd creates the setPayRate command
func SetPayRateCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "setPayRate <position> <hourly_rate>",
		Short: "Set the hourly rate for a position",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			rate, err := parseDecimalArg("hourly rate", args[1])
			if err != nil {
				return err
			}
			settings, err := services.SetPayRate(app.Ctx, app.Database, app.Logger, args[0], rate)
			if err != nil {
				return err
			}
			printPaySettings(settings)
			return nil
		},
	}
}

// SetBonusCmd creates the setBonus command
func SetBonusCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "setBonus <name> <amount>",
		Short: `Set a bonus, e.g. "Lake Geneva" or "Holiday Multiplier"`,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := parseDecimalArg("amount", args[1])
			if err != nil {
				return err
			}
			settings, err := services.SetBonus(app.Ctx, app.Database, app.Logger, args[0], amount)
			if err != nil {
				return err
			}
			printPaySettings(settings)
			return nil
		},
	}
}

// SetTiersCmd creates the setTiers command
func SetTiersCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:     "setTiers <min-max=pay>...",
		Short:   "Replace the travel pay tiers",
		Example: "  setTiers 0-19=0 20-40=10 41-80=25",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tiers, err := parseTiers(args)
			if err != nil {
				return err
			}
			settings, err := services.SetTravelTiers(app.Ctx, app.Database, app.Logger, tiers)
			if err != nil {
				return err
			}
			printPaySettings(settings)
			return nil
		},
	}
}

// PaySettingsCmd creates the paySettings command
func PaySettingsCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "paySettings",
		Short: "Show pay rates, travel tiers and bonuses",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := app.Database.GetPaySettings(app.Ctx)
			if err != nil {
				return fmt.Errorf("failed to fetch pay settings: %w", err)
			}
			printPaySettings(settings)
			return nil
		},
	}
}

func printPaySettings(s payroll.PaySettings) {
	positions := make([]string, 0, len(s.Rates))
	for p := range s.Rates {
		positions = append(positions, p)
	}
	// Sorted for stable output
	sort.Strings(positions)

	fmt.Println("\nHourly rates:")
	for _, p := range positions {
		fmt.Printf("  %-25s %s\n", p, money(s.Rates[p]))
	}

	fmt.Println("\nTravel tiers:")
	for _, t := range s.Tiers {
		fmt.Printf("  %6s - %-6s miles  %s\n", t.MinMiles, t.MaxMiles, money(t.PayAmount))
	}

	fmt.Println("\nBonuses:")
	fmt.Printf("  %-25s %s\n", payroll.BonusLakeGeneva, money(s.LakeGenevaBonus()))
	fmt.Printf("  %-25s x%s\n", payroll.BonusHolidayMultiplier, s.HolidayMultiplier().StringFixed(2))
	fmt.Println()
}
