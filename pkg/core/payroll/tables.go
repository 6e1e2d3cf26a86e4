package payroll

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Recognized bonus keys
const (
	BonusLakeGeneva        = "Lake Geneva"
	BonusHolidayMultiplier = "Holiday Multiplier"
)

var (
	defaultLakeGenevaBonus   = decimal.NewFromInt(15)
	defaultHolidayMultiplier = decimal.RequireFromString("1.5")
)

// PayRateTable maps a position name (case-sensitive) to its hourly rate
type PayRateTable map[string]decimal.Decimal

// BonusTable maps a bonus name to its amount
type BonusTable map[string]decimal.Decimal

// TravelTier is a mileage bracket with a flat travel payment.
// Both bounds are inclusive.
type TravelTier struct {
	MinMiles  decimal.Decimal
	MaxMiles  decimal.Decimal
	PayAmount decimal.Decimal
}

// Contains reports whether miles falls inside the tier
func (t TravelTier) Contains(miles decimal.Decimal) bool {
	return miles.GreaterThanOrEqual(t.MinMiles) && miles.LessThanOrEqual(t.MaxMiles)
}

// PaySettings bundles the tables the calculator reads.
// Callers load it from storage and pass it explicitly.
type PaySettings struct {
	Rates   PayRateTable
	Tiers   []TravelTier
	Bonuses BonusTable
}

// LakeGenevaBonus returns the configured flat bonus, or the default of 15
func (s PaySettings) LakeGenevaBonus() decimal.Decimal {
	if v, ok := s.Bonuses[BonusLakeGeneva]; ok {
		return v
	}
	return defaultLakeGenevaBonus
}

// HolidayMultiplier returns the configured multiplier, or the default of 1.5
func (s PaySettings) HolidayMultiplier() decimal.Decimal {
	if v, ok := s.Bonuses[BonusHolidayMultiplier]; ok {
		return v
	}
	return defaultHolidayMultiplier
}

// Validate checks rates and bonuses are non-negative and the tier table is well formed
func (s PaySettings) Validate() error {
	// Rates
	for position, rate := range s.Rates {
		if position == "" {
			return fmt.Errorf("pay rate has empty position name")
		}
		if rate.IsNegative() {
			return fmt.Errorf("pay rate for %q is negative: %s", position, rate)
		}
	}
	// Bonuses
	for name, amount := range s.Bonuses {
		if amount.IsNegative() {
			return fmt.Errorf("bonus %q is negative: %s", name, amount)
		}
	}
	return ValidateTiers(s.Tiers)
}

// ValidateTiers checks that tiers are sorted ascending by MinMiles and do not overlap.
// With inclusive bounds, a tier must start strictly after the previous one ends.
func ValidateTiers(tiers []TravelTier) error {
	for i, t := range tiers {
		if t.MinMiles.IsNegative() || t.MaxMiles.IsNegative() || t.PayAmount.IsNegative() {
			return fmt.Errorf("travel tier %d has a negative value", i)
		}
		if t.MinMiles.GreaterThan(t.MaxMiles) {
			return fmt.Errorf("travel tier %d: min miles %s is greater than max miles %s", i, t.MinMiles, t.MaxMiles)
		}
		if i == 0 {
			continue
		}
		// Inclusive bounds: equal edges overlap
		prev := tiers[i-1]
		if t.MinMiles.LessThanOrEqual(prev.MaxMiles) {
			return fmt.Errorf("travel tier %d (%s-%s) overlaps or precedes tier %d (%s-%s)",
				i, t.MinMiles, t.MaxMiles, i-1, prev.MinMiles, prev.MaxMiles)
		}
	}
	return nil
}
