package sheetsclient

import (
	"fmt"
)

// PayrollRow is one assignment line on the payroll export
type PayrollRow struct {
	Date       string
	EventName  string
	WorkerName string
	Email      string
	Position   string
	Hours      string
	Miles      string // blank when mileage is unset
	BasePay    string
	TravelPay  string
	Bonus      string
	Multiplier string
	TotalPay   string
}

var payrollHeader = []interface{}{
	"Date", "Event", "Worker", "Email", "Position", "Hours", "Miles",
	"Base pay", "Travel pay", "Lake Geneva bonus", "Holiday multiplier", "Total pay",
}

// PublishPayroll writes rows to the tab named title, creating the tab if needed.
// An existing tab is cleared first so re-exporting replaces it.
func (c *Client) PublishPayroll(spreadsheetID, title string, rows []PayrollRow) error {
	// Check if tab exists
	exists, err := c.HasSheet(spreadsheetID, title)
	if err != nil {
		return err
	}

	if exists {
		if err := c.ClearValues(spreadsheetID, title); err != nil {
			return err
		}
	} else if _, err := c.CreateSheet(spreadsheetID, title); err != nil {
		return err
	}

	// Write header and rows from A1
	if err := c.UpdateValues(spreadsheetID, fmt.Sprintf("'%s'!A1", title), payrollValues(rows)); err != nil {
		return fmt.Errorf("failed to write payroll: %w", err)
	}

	return nil
}

func payrollValues(rows []PayrollRow) [][]interface{} {
	values := make([][]interface{}, 0, len(rows)+1)
	values = append(values, payrollHeader)
	for _, r := range rows {
		values = append(values, []interface{}{
			r.Date, r.EventName, r.WorkerName, r.Email, r.Position, r.Hours, r.Miles,
			r.BasePay, r.TravelPay, r.Bonus, r.Multiplier, r.TotalPay,
		})
	}
	return values
}
