package sheetsclient

import (
	"fmt"
	"slices"
	"strings"

	"github.com/wmtykrqqy6-ship-it/gigstaffpro-sub000/pkg/core/model"
)

// Roster column names. Only the required ones must appear in the header row.
const (
	colWorkerID  = "Worker ID"
	colFirstName = "First name"
	colLastName  = "Last name"
	colEmail     = "Email"
	colPhone     = "Phone"
	colAddress   = "Address"
	colSkills    = "Skills"
	colStatus    = "Status"
)

var requiredRosterFields = []string{colFirstName, colLastName, colEmail}

var optionalRosterFields = []string{colWorkerID, colPhone, colAddress, colSkills, colStatus}

// ListWorkers reads and parses the roster tab. Workers without a Worker ID
// are returned with an empty ID for the caller to assign.
func (c *Client) ListWorkers(spreadsheetID, tab string) ([]model.Worker, error) {
	values, err := c.GetValues(spreadsheetID, tab)
	if err != nil {
		return nil, fmt.Errorf("failed to get roster data: %w", err)
	}

	if len(values) == 0 {
		return nil, fmt.Errorf("spreadsheet is empty")
	}

	workers, err := parseWorkers(values)
	if err != nil {
		return nil, fmt.Errorf("failed to parse roster: %w", err)
	}

	return workers, nil
}

// parseWorkers converts raw roster rows into workers using the header row to locate columns
func parseWorkers(raw [][]interface{}) ([]model.Worker, error) {
	if len(raw) < 1 {
		return nil, fmt.Errorf("no header row found")
	}

	// Build header index from first row
	fieldIndexes := make(map[string]int)
	for i, cell := range raw[0] {
		if name, ok := cell.(string); ok {
			fieldIndexes[strings.TrimSpace(name)] = i
		}
	}
	// Verify all required fields are present
	for _, field := range requiredRosterFields {
		if _, ok := fieldIndexes[field]; !ok {
			return nil, fmt.Errorf("missing required field in header: %s", field)
		}
	}
	// Drop columns we don't know
	for field := range fieldIndexes {
		if !isRosterField(field) {
			delete(fieldIndexes, field)
		}
	}

	getField := func(field string, row []interface{}) string {
		index, ok := fieldIndexes[field]
		if !ok || index >= len(row) {
			return ""
		}
		return strings.TrimSpace(fmt.Sprint(row[index]))
	}

	// Parse data rows
	workers := make([]model.Worker, 0, len(raw)-1)
	for i := 1; i < len(raw); i++ {
		row := raw[i]

		firstName := getField(colFirstName, row)
		// Skip blank rows
		if firstName == "" {
			continue
		}

		status := model.WorkerStatus(strings.ToLower(getField(colStatus, row)))
		if status != "" && status != model.WorkerActive && status != model.WorkerInactive {
			return nil, fmt.Errorf("invalid status %q for worker in row %d", status, i+1)
		}

		workers = append(workers, model.Worker{
			ID:        getField(colWorkerID, row),
			FirstName: firstName,
			LastName:  getField(colLastName, row),
			Email:     getField(colEmail, row),
			Phone:     getField(colPhone, row),
			Address:   getField(colAddress, row),
			Skills:    splitSkills(getField(colSkills, row)),
			Status:    status,
		})
	}

	return workers, nil
}

func isRosterField(field string) bool {
	return slices.Contains(requiredRosterFields, field) || slices.Contains(optionalRosterFields, field)
}

// splitSkills splits a comma or semicolon separated skills cell
func splitSkills(cell string) []string {
	parts := strings.FieldsFunc(cell, func(r rune) bool {
		return r == ',' || r == ';'
	})
	skills := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			skills = append(skills, s)
		}
	}
	return skills
}
