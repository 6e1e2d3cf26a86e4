package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/wmtykrqqy6-ship-it/gigstaffpro-sub000/pkg/core/payroll"
	"github.com/wmtykrqqy6-ship-it/gigstaffpro-sub000/pkg/db"
)

// PreviewPay prices a hypothetical assignment with the stored settings without writing anything
func PreviewPay(ctx context.Context, store db.SettingsStore, logger *zap.Logger, input payroll.PayInput) (payroll.PayBreakdown, error) {
	// DB query - Fetch pay settings
	settings, err := store.GetPaySettings(ctx)
	if err != nil {
		return payroll.PayBreakdown{}, fmt.Errorf("failed to fetch pay settings: %w", err)
	}

	// Price only; nothing is written
	breakdown := payroll.Calculate(input, settings)
	logger.Debug("Previewed pay",
		zap.String("position", input.Position),
		zap.String("hours", input.Hours.String()),
		zap.String("miles", input.Miles.String()),
		zap.String("total_pay", breakdown.TotalPay.StringFixed(2)),
		zap.Strings("warnings", warningStrings(breakdown.Warnings)))

	return breakdown, nil
}
