package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/wmtykrqqy6-ship-it/gigstaffpro-sub000/pkg/core/model"
	"github.com/wmtykrqqy6-ship-it/gigstaffpro-sub000/pkg/db"
)

const assignmentColumns = `id, event_id, worker_id, position, hours, miles, is_lake_geneva, is_holiday,
	base_pay, travel_pay, lake_geneva_bonus, subtotal, holiday_multiplier, total_pay,
	payment_status, paid_at, created_at`

// GetAssignments retrieves all assignment records in creation order
func (d *DB) GetAssignments(ctx context.Context) ([]model.Assignment, error) {
	rows, err := d.pool.Query(ctx, `SELECT `+assignmentColumns+` FROM assignment ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query assignments: %w", err)
	}

	// Scan rows into assignments
	assignments, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.Assignment, error) {
		return scanAssignment(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan assignments: %w", err)
	}
	return assignments, nil
}

// GetAssignment retrieves one assignment by ID. Returns db.ErrNotFound if it does not exist.
func (d *DB) GetAssignment(ctx context.Context, id string) (*model.Assignment, error) {
	a, err := scanAssignment(d.pool.QueryRow(ctx, `SELECT `+assignmentColumns+` FROM assignment WHERE id = $1`, id))
	if err != nil {
		// No row means the ID is unknown
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("assignment %s: %w", id, db.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get assignment: %w", err)
	}
	return &a, nil
}

// InsertAssignment inserts an assignment, deleting replaceID first in the same
// transaction when the assignment moves a worker between positions
func (d *DB) InsertAssignment(ctx context.Context, a *model.Assignment, replaceID string) error {
	return d.withTx(ctx, func(tx pgx.Tx) error {
		// A move removes the worker's old position first
		if replaceID != "" {
			tag, err := tx.Exec(ctx, `DELETE FROM assignment WHERE id = $1`, replaceID)
			if err != nil {
				return fmt.Errorf("failed to delete replaced assignment: %w", err)
			}
			if tag.RowsAffected() == 0 {
				return fmt.Errorf("replaced assignment %s: %w", replaceID, db.ErrNotFound)
			}
		}

		// Insert the new assignment
		_, err := tx.Exec(ctx, `
			INSERT INTO assignment (`+assignmentColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		`, a.ID, a.EventID, a.WorkerID, a.Position, a.Hours, nullableDecimal(a.Miles), a.IsLakeGeneva, a.IsHoliday,
			a.BasePay, a.TravelPay, a.LakeGenevaBonus, a.Subtotal, a.HolidayMultiplier, a.TotalPay,
			string(a.PaymentStatus), a.PaidAt, a.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to insert assignment: %w", err)
		}
		return nil
	})
}

// DeleteAssignment removes an assignment. Returns db.ErrNotFound if it does not exist.
func (d *DB) DeleteAssignment(ctx context.Context, id string) error {
	// Delete and check a row was affected
	tag, err := d.pool.Exec(ctx, `DELETE FROM assignment WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete assignment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("assignment %s: %w", id, db.ErrNotFound)
	}
	return nil
}

// UpdateAssignmentPay rewrites the hours, mileage and pay breakdown of an assignment
func (d *DB) UpdateAssignmentPay(ctx context.Context, a *model.Assignment) error {
	tag, err := d.pool.Exec(ctx, `
		UPDATE assignment SET
			hours = $2, miles = $3,
			base_pay = $4, travel_pay = $5, lake_geneva_bonus = $6,
			subtotal = $7, holiday_multiplier = $8, total_pay = $9
		WHERE id = $1
	`, a.ID, a.Hours, nullableDecimal(a.Miles),
		a.BasePay, a.TravelPay, a.LakeGenevaBonus, a.Subtotal, a.HolidayMultiplier, a.TotalPay)
	if err != nil {
		return fmt.Errorf("failed to update assignment pay: %w", err)
	}
	// Zero rows means the ID is unknown
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("assignment %s: %w", a.ID, db.ErrNotFound)
	}
	return nil
}

// SetPaymentStatus updates the payment status of the given assignments and
// returns how many rows changed
func (d *DB) SetPaymentStatus(ctx context.Context, ids []string, status model.PaymentStatus, paidAt *time.Time) (int, error) {
	// Nothing to update
	if len(ids) == 0 {
		return 0, nil
	}

	tag, err := d.pool.Exec(ctx, `
		UPDATE assignment SET payment_status = $2, paid_at = $3
		WHERE id = ANY($1::uuid[])
	`, ids, string(status), paidAt)
	if err != nil {
		return 0, fmt.Errorf("failed to set payment status: %w", err)
	}
	return int(tag.RowsAffected()), nil
}

func scanAssignment(row pgx.Row) (model.Assignment, error) {
	var a model.Assignment
	var miles decimal.NullDecimal
	var status string
	err := row.Scan(&a.ID, &a.EventID, &a.WorkerID, &a.Position, &a.Hours, &miles, &a.IsLakeGeneva, &a.IsHoliday,
		&a.BasePay, &a.TravelPay, &a.LakeGenevaBonus, &a.Subtotal, &a.HolidayMultiplier, &a.TotalPay,
		&status, &a.PaidAt, &a.CreatedAt)
	if err != nil {
		return a, err
	}
	// Miles stay nil when the lookup never filled them
	if miles.Valid {
		m := miles.Decimal
		a.Miles = &m
	}
	// Convert status string to type
	a.PaymentStatus = model.PaymentStatus(status)
	return a, nil
}

func nullableDecimal(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: *d, Valid: true}
}
