package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/wmtykrqqy6-ship-it/gigstaffpro-sub000/pkg/core/payroll"
	"github.com/wmtykrqqy6-ship-it/gigstaffpro-sub000/pkg/db"
)

// SetPayRate sets the hourly rate for a position (exact, case-sensitive name)
func SetPayRate(ctx context.Context, store db.SettingsStore, logger *zap.Logger, position string, rate decimal.Decimal) (payroll.PaySettings, error) {
	position = strings.TrimSpace(position)
	if position == "" {
		return payroll.PaySettings{}, fmt.Errorf("%w: position is required", ErrInvalidInput)
	}
	return updatePaySettings(ctx, store, logger, func(s *payroll.PaySettings) {
		s.Rates[position] = rate
	})
}

// SetBonus sets a bonus amount, e.g. "Lake Geneva" or "Holiday Multiplier"
func SetBonus(ctx context.Context, store db.SettingsStore, logger *zap.Logger, name string, amount decimal.Decimal) (payroll.PaySettings, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return payroll.PaySettings{}, fmt.Errorf("%w: bonus name is required", ErrInvalidInput)
	}
	if name != payroll.BonusLakeGeneva && name != payroll.BonusHolidayMultiplier {
		logger.Warn("Bonus is not used by the pay calculator", zap.String("name", name))
	}
	return updatePaySettings(ctx, store, logger, func(s *payroll.PaySettings) {
		s.Bonuses[name] = amount
	})
}

// SetTravelTiers replaces the travel tier table
func SetTravelTiers(ctx context.Context, store db.SettingsStore, logger *zap.Logger, tiers []payroll.TravelTier) (payroll.PaySettings, error) {
	return updatePaySettings(ctx, store, logger, func(s *payroll.PaySettings) {
		s.Tiers = tiers
	})
}

// SeedPaySettings saves seed when no pay rates are stored yet. It reports whether it wrote anything.
func SeedPaySettings(ctx context.Context, store db.SettingsStore, logger *zap.Logger, seed payroll.PaySettings) (bool, error) {
	current, err := store.GetPaySettings(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to fetch pay settings: %w", err)
	}
	// Existing rates mean the store was already seeded
	if len(current.Rates) > 0 {
		logger.Debug("Pay settings already present, skipping seed", zap.Int("rates", len(current.Rates)))
		return false, nil
	}

	if _, err := updatePaySettings(ctx, store, logger, func(s *payroll.PaySettings) {
		for position, rate := range seed.Rates {
			s.Rates[position] = rate
		}
		for name, amount := range seed.Bonuses {
			s.Bonuses[name] = amount
		}
		if len(seed.Tiers) > 0 {
			s.Tiers = seed.Tiers
		}
	}); err != nil {
		return false, err
	}
	return true, nil
}

// updatePaySettings loads settings, applies change, validates and saves
func updatePaySettings(ctx context.Context, store db.SettingsStore, logger *zap.Logger, change func(*payroll.PaySettings)) (payroll.PaySettings, error) {
	// Load current settings
	settings, err := store.GetPaySettings(ctx)
	if err != nil {
		return payroll.PaySettings{}, fmt.Errorf("failed to fetch pay settings: %w", err)
	}
	// An empty store returns nil tables
	if settings.Rates == nil {
		settings.Rates = payroll.PayRateTable{}
	}
	if settings.Bonuses == nil {
		settings.Bonuses = payroll.BonusTable{}
	}

	change(&settings)

	// Validate before writing anything
	if err := settings.Validate(); err != nil {
		return payroll.PaySettings{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := store.SavePaySettings(ctx, settings); err != nil {
		return payroll.PaySettings{}, fmt.Errorf("failed to save pay settings: %w", err)
	}

	logger.Info("Pay settings saved",
		zap.Int("rates", len(settings.Rates)),
		zap.Int("tiers", len(settings.Tiers)),
		zap.Int("bonuses", len(settings.Bonuses)))

	return settings, nil
}
