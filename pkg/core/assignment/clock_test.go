package assignment

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClock(t *testing.T) {
	minutes, err := ParseClock("18:30")
	require.NoError(t, err)
	assert.Equal(t, 1110, minutes)

	minutes, err = ParseClock("00:00")
	require.NoError(t, err)
	assert.Equal(t, 0, minutes)

	minutes, err = ParseClock("9:05")
	require.NoError(t, err, "single-digit hours match the event time layout")
	assert.Equal(t, 545, minutes)

	for _, bad := range []string{"", "1830", "24:00", "12:60", "ab:cd", "-1:30", "+9:05", "9:5", "09:5", "+09:05", "18:30:00"} {
		_, err := ParseClock(bad)
		assert.Error(t, err, bad)
	}
}

func TestDefaultHours(t *testing.T) {
	tests := []struct {
		name     string
		start    string
		end      string
		expected string
	}{
		{"same evening", "18:00", "22:00", "4.00"},
		{"half hours", "18:30", "23:00", "4.50"},
		{"overnight", "22:00", "02:00", "4.00"},
		{"overnight with minutes", "21:45", "01:15", "3.50"},
		{"twenty minutes past", "18:00", "22:20", "4.33"},
		{"no end time", "18:00", "", "4.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hours, err := DefaultHours(tt.start, tt.end)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, hours.StringFixed(2))
		})
	}
}

func TestDefaultHours_NotRounded(t *testing.T) {
	hours, err := DefaultHours("18:00", "22:20")
	require.NoError(t, err)

	exact := decimal.NewFromInt(260).Div(decimal.NewFromInt(60))
	assert.True(t, hours.Equal(exact), "got %s", hours)
	assert.False(t, hours.Equal(decimal.RequireFromString("4.33")))

	// $20/hr over 4h20m is 86.67, not 20 x 4.33
	assert.Equal(t, "86.67", hours.Mul(decimal.NewFromInt(20)).StringFixed(2))
}

func TestDefaultHours_InvalidTime(t *testing.T) {
	_, err := DefaultHours("6pm", "22:00")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "start time")
}
