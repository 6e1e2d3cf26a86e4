package services

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/wmtykrqqy6-ship-it/gigstaffpro-sub000/pkg/clients/sheetsclient"
	"github.com/wmtykrqqy6-ship-it/gigstaffpro-sub000/pkg/core/model"
)

// DistanceClient looks up driving distance in whole miles.
// mapsclient.Client implements this interface.
type DistanceClient interface {
	DistanceMiles(ctx context.Context, origin, destination string) (decimal.Decimal, error)
}

// Notifier delivers a plain-text email.
// gmailclient.Client implements this interface.
type Notifier interface {
	SendEmail(ctx context.Context, to, subject, body string) error
}

// RosterClient reads the worker roster.
// sheetsclient.Client implements this interface.
type RosterClient interface {
	ListWorkers(spreadsheetID, tab string) ([]model.Worker, error)
}

// PayrollPublisher writes payroll rows to a spreadsheet tab.
// sheetsclient.Client implements this interface.
type PayrollPublisher interface {
	PublishPayroll(spreadsheetID, title string, rows []sheetsclient.PayrollRow) error
}
