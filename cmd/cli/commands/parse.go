package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/wmtykrqqy6-ship-it/gigstaffpro-sub000/pkg/core/model"
	"github.com/wmtykrqqy6-ship-it/gigstaffpro-sub000/pkg/core/payroll"
)

// parseDecimalArg parses a numeric argument, naming it in the error
func parseDecimalArg(name, value string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(value))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%s must be a number, got %q", name, value)
	}
	return d, nil
}

// optionalDecimal parses value, returning nil when it is empty
func optionalDecimal(name, value string) (*decimal.Decimal, error) {
	if value == "" {
		return nil, nil
	}
	d, err := parseDecimalArg(name, value)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// parsePositions parses "Name=count" args, e.g. "Blackjack Dealer=3"
func parsePositions(args []string) ([]model.PositionRequirement, error) {
	positions := make([]model.PositionRequirement, 0, len(args))
	for _, arg := range args {
		// Split on the first '=' so names keep any later ones
		name, count, ok := strings.Cut(arg, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("position %q must look like Name=count", arg)
		}
		n, err := strconv.Atoi(strings.TrimSpace(count))
		if err != nil || n < 1 {
			return nil, fmt.Errorf("position %q needs a positive count", arg)
		}
		positions = append(positions, model.PositionRequirement{Name: name, CountNeeded: n})
	}
	return positions, nil
}

// parseTiers parses "min-max=pay" args, e.g. "20-40=10"
func parseTiers(args []string) ([]payroll.TravelTier, error) {
	tiers := make([]payroll.TravelTier, 0, len(args))
	for _, arg := range args {
		bounds, pay, ok := strings.Cut(arg, "=")
		if !ok {
			return nil, fmt.Errorf("tier %q must look like min-max=pay", arg)
		}
		// Split bounds
		lo, hi, ok := strings.Cut(bounds, "-")
		if !ok {
			return nil, fmt.Errorf("tier %q must look like min-max=pay", arg)
		}

		// Parse each number; ordering is checked by the settings validator
		var tier payroll.TravelTier
		var err error
		if tier.MinMiles, err = parseDecimalArg("min miles", lo); err != nil {
			return nil, err
		}
		if tier.MaxMiles, err = parseDecimalArg("max miles", hi); err != nil {
			return nil, err
		}
		if tier.PayAmount, err = parseDecimalArg("pay amount", pay); err != nil {
			return nil, err
		}
		tiers = append(tiers, tier)
	}
	return tiers, nil
}

func money(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}
