package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/wmtykrqqy6-ship-it/gigstaffpro-sub000/pkg/core/payroll"
)

// GetPaySettings loads pay rates, travel tiers (in tier order) and bonuses
func (d *DB) GetPaySettings(ctx context.Context) (payroll.PaySettings, error) {
	settings := payroll.PaySettings{
		Rates:   payroll.PayRateTable{},
		Bonuses: payroll.BonusTable{},
	}

	// Pay rates
	rows, err := d.pool.Query(ctx, `SELECT position, hourly_rate FROM pay_rate`)
	if err != nil {
		return settings, fmt.Errorf("failed to query pay rates: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var position string
		var rate decimal.Decimal
		if err := rows.Scan(&position, &rate); err != nil {
			return settings, fmt.Errorf("failed to scan pay rate: %w", err)
		}
		settings.Rates[position] = rate
	}
	if err := rows.Err(); err != nil {
		return settings, fmt.Errorf("error iterating pay rates: %w", err)
	}

	// Travel tiers, in the order they are scanned
	tierRows, err := d.pool.Query(ctx, `SELECT min_miles, max_miles, pay_amount FROM travel_tier ORDER BY sort_order`)
	if err != nil {
		return settings, fmt.Errorf("failed to query travel tiers: %w", err)
	}
	settings.Tiers, err = pgx.CollectRows(tierRows, func(row pgx.CollectableRow) (payroll.TravelTier, error) {
		var t payroll.TravelTier
		err := row.Scan(&t.MinMiles, &t.MaxMiles, &t.PayAmount)
		return t, err
	})
	if err != nil {
		return settings, fmt.Errorf("failed to scan travel tiers: %w", err)
	}

	// Bonuses
	bonusRows, err := d.pool.Query(ctx, `SELECT name, amount FROM bonus`)
	if err != nil {
		return settings, fmt.Errorf("failed to query bonuses: %w", err)
	}
	defer bonusRows.Close()
	for bonusRows.Next() {
		var name string
		var amount decimal.Decimal
		if err := bonusRows.Scan(&name, &amount); err != nil {
			return settings, fmt.Errorf("failed to scan bonus: %w", err)
		}
		settings.Bonuses[name] = amount
	}
	if err := bonusRows.Err(); err != nil {
		return settings, fmt.Errorf("error iterating bonuses: %w", err)
	}

	return settings, nil
}

// SavePaySettings replaces all pay rates, tiers and bonuses in one transaction
func (d *DB) SavePaySettings(ctx context.Context, settings payroll.PaySettings) error {
	return d.withTx(ctx, func(tx pgx.Tx) error {
		// Clear existing settings
		for _, table := range []string{"pay_rate", "travel_tier", "bonus"} {
			if _, err := tx.Exec(ctx, `DELETE FROM `+table); err != nil {
				return fmt.Errorf("failed to clear %s: %w", table, err)
			}
		}

		// Write the new settings
		for position, rate := range settings.Rates {
			if _, err := tx.Exec(ctx, `INSERT INTO pay_rate (position, hourly_rate) VALUES ($1, $2)`, position, rate); err != nil {
				return fmt.Errorf("failed to insert pay rate %q: %w", position, err)
			}
		}
		// sort_order preserves tier scan order
		for i, t := range settings.Tiers {
			if _, err := tx.Exec(ctx, `
				INSERT INTO travel_tier (sort_order, min_miles, max_miles, pay_amount)
				VALUES ($1, $2, $3, $4)
			`, i, t.MinMiles, t.MaxMiles, t.PayAmount); err != nil {
				return fmt.Errorf("failed to insert travel tier %d: %w", i, err)
			}
		}
		for name, amount := range settings.Bonuses {
			if _, err := tx.Exec(ctx, `INSERT INTO bonus (name, amount) VALUES ($1, $2)`, name, amount); err != nil {
				return fmt.Errorf("failed to insert bonus %q: %w", name, err)
			}
		}
		return nil
	})
}
