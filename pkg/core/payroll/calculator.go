package payroll

import (
	"github.com/shopspring/decimal"
)

// PayWarning flags an input the calculator tolerated by falling back to a zero or default value
type PayWarning string

const (
	WarnUnknownPosition  PayWarning = "unknown_position"
	WarnNonPositiveHours PayWarning = "non_positive_hours"
	WarnNegativeMiles    PayWarning = "negative_miles"
	WarnNoTravelTier     PayWarning = "no_travel_tier"
)

const moneyPlaces = 2

// PayInput holds the per-assignment inputs to a pay calculation
type PayInput struct {
	Position     string
	Hours        decimal.Decimal
	Miles        decimal.Decimal
	IsLakeGeneva bool
	IsHoliday    bool
}

// PayBreakdown is the result of a pay calculation. All amounts are rounded to 2 places.
type PayBreakdown struct {
	BasePay           decimal.Decimal `json:"basePay"`
	TravelPay         decimal.Decimal `json:"travelPay"`
	LakeGenevaBonus   decimal.Decimal `json:"lakeGenevaBonus"`
	Subtotal          decimal.Decimal `json:"subtotal"`
	HolidayMultiplier decimal.Decimal `json:"holidayMultiplier"`
	TotalPay          decimal.Decimal `json:"totalPay"`
	Warnings          []PayWarning    `json:"warnings,omitempty"`
}

// Degraded reports whether any input fell back to a zero or default value
func (b PayBreakdown) Degraded() bool {
	return len(b.Warnings) > 0
}

// HasWarning reports whether the breakdown carries the given warning
func (b PayBreakdown) HasWarning(w PayWarning) bool {
	for _, got := range b.Warnings {
		if got == w {
			return true
		}
	}
	return false
}

// Calculate computes the pay breakdown for one assignment.
//
// Each of the six amounts is rounded from its own unrounded expression, so
// TotalPay is round(base+travel+bonus * multiplier) over unrounded terms and
// not the product of the rounded Subtotal and HolidayMultiplier.
//
// Calculate never fails. Unknown positions, non-positive hours, negative
// miles and unmatched mileage produce zero amounts and a warning.
func Calculate(in PayInput, settings PaySettings) PayBreakdown {
	var warnings []PayWarning

	// 1. base pay
	rate, ok := settings.Rates[in.Position]
	if !ok {
		rate = decimal.Zero
		warnings = append(warnings, WarnUnknownPosition)
	}
	if !in.Hours.IsPositive() {
		warnings = append(warnings, WarnNonPositiveHours)
	}
	basePay := in.Hours.Mul(rate)

	// 2. travel pay
	if in.Miles.IsNegative() {
		warnings = append(warnings, WarnNegativeMiles)
	}
	travelPay, matched := lookupTravelPay(settings.Tiers, in.Miles)
	if !matched && (in.Miles.IsPositive() || len(settings.Tiers) == 0) {
		warnings = append(warnings, WarnNoTravelTier)
	}

	// 3. Lake Geneva bonus
	lakeGenevaBonus := decimal.Zero
	if in.IsLakeGeneva {
		lakeGenevaBonus = settings.LakeGenevaBonus()
	}

	// 4. subtotal
	subtotal := basePay.Add(travelPay).Add(lakeGenevaBonus)

	// 5. holiday multiplier
	multiplier := decimal.NewFromInt(1)
	if in.IsHoliday {
		multiplier = settings.HolidayMultiplier()
	}

	// 6. total
	total := subtotal.Mul(multiplier)

	return PayBreakdown{
		BasePay:           roundMoney(basePay),
		TravelPay:         roundMoney(travelPay),
		LakeGenevaBonus:   roundMoney(lakeGenevaBonus),
		Subtotal:          roundMoney(subtotal),
		HolidayMultiplier: roundMoney(multiplier),
		TotalPay:          roundMoney(total),
		Warnings:          warnings,
	}
}

// lookupTravelPay returns the pay of the first tier containing miles
func lookupTravelPay(tiers []TravelTier, miles decimal.Decimal) (decimal.Decimal, bool) {
	for _, tier := range tiers {
		if tier.Contains(miles) {
			return tier.PayAmount, true
		}
	}
	return decimal.Zero, false
}

func roundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(moneyPlaces)
}
