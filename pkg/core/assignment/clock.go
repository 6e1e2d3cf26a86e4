package assignment

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	clockLayout   = "15:04"
	minutesPerDay = 24 * 60
)

// DefaultHoursWithoutEnd is used to pre-fill hours when an event has no end time
var DefaultHoursWithoutEnd = decimal.NewFromInt(4)

// ParseClock parses an "HH:MM" venue-local time into minutes since midnight.
// It accepts the same values as the "15:04" layout used to validate event input.
func ParseClock(s string) (int, error) {
	t, err := time.Parse(clockLayout, strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("invalid time %q: expected HH:MM", s)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// DefaultHours derives the hours to pre-fill for an event.
// With both times it is end - start in fractional hours, plus 24 when the
// event runs past midnight. Without an end time it is 4 hours.
// The result is not rounded; pay rounds only its own outputs.
func DefaultHours(startTime, endTime string) (decimal.Decimal, error) {
	if endTime == "" {
		return DefaultHoursWithoutEnd, nil
	}

	start, err := ParseClock(startTime)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to parse start time: %w", err)
	}
	end, err := ParseClock(endTime)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to parse end time: %w", err)
	}

	// Overnight events end on the next day
	elapsed := end - start
	if elapsed < 0 {
		elapsed += minutesPerDay
	}

	return decimal.NewFromInt(int64(elapsed)).Div(decimal.NewFromInt(60)), nil
}
