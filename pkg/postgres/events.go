package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/wmtykrqqy6-ship-it/gigstaffpro-sub000/pkg/core/model"
	"github.com/wmtykrqqy6-ship-it/gigstaffpro-sub000/pkg/db"
)

const eventColumns = `id, name, event_date, start_time, end_time, venue, is_lake_geneva, is_holiday, series_id, notes`

// GetEvents retrieves all events with their position requirements, ordered by date and start time
func (d *DB) GetEvents(ctx context.Context) ([]model.Event, error) {
	// Fetch events
	rows, err := d.pool.Query(ctx, `SELECT `+eventColumns+` FROM event ORDER BY event_date, start_time, name`)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer rows.Close()

	var events []model.Event
	// Remember each event's slice position so positions can be attached
	index := make(map[string]int)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		index[e.ID] = len(events)
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating events: %w", err)
	}

	// Fetch position requirements for all events
	posRows, err := d.pool.Query(ctx, `
		SELECT event_id, name, count_needed
		FROM event_position
		ORDER BY event_id, sort_order
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query event positions: %w", err)
	}
	defer posRows.Close()

	for posRows.Next() {
		var eventID string
		var p model.PositionRequirement
		if err := posRows.Scan(&eventID, &p.Name, &p.CountNeeded); err != nil {
			return nil, fmt.Errorf("failed to scan event position: %w", err)
		}
		// Attach to the owning event
		if i, ok := index[eventID]; ok {
			events[i].Positions = append(events[i].Positions, p)
		}
	}
	if err := posRows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating event positions: %w", err)
	}

	return events, nil
}

// GetEvent retrieves one event by ID. Returns db.ErrNotFound if it does not exist.
func (d *DB) GetEvent(ctx context.Context, id string) (*model.Event, error) {
	row := d.pool.QueryRow(ctx, `SELECT `+eventColumns+` FROM event WHERE id = $1`, id)
	e, err := scanEvent(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("event %s: %w", id, db.ErrNotFound)
		}
		return nil, err
	}

	// Fetch this event's position requirements
	rows, err := d.pool.Query(ctx, `
		SELECT name, count_needed
		FROM event_position
		WHERE event_id = $1
		ORDER BY sort_order
	`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query event positions: %w", err)
	}
	e.Positions, err = pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.PositionRequirement, error) {
		var p model.PositionRequirement
		err := row.Scan(&p.Name, &p.CountNeeded)
		return p, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan event positions: %w", err)
	}

	return &e, nil
}

// InsertEvents inserts events and their position requirements in one transaction
func (d *DB) InsertEvents(ctx context.Context, events []model.Event) error {
	if len(events) == 0 {
		return nil
	}

	return d.withTx(ctx, func(tx pgx.Tx) error {
		for _, e := range events {
			// Optional columns are stored as NULL
			var endTime, seriesID *string
			if e.EndTime != "" {
				endTime = &e.EndTime
			}
			if e.SeriesID != "" {
				seriesID = &e.SeriesID
			}

			_, err := tx.Exec(ctx, `
				INSERT INTO event (`+eventColumns+`)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			`, e.ID, e.Name, e.Date, e.StartTime, endTime, e.Venue, e.IsLakeGeneva, e.IsHoliday, seriesID, e.Notes)
			if err != nil {
				return fmt.Errorf("failed to insert event %s: %w", e.ID, err)
			}

			// Positions keep their input order
			for i, p := range e.Positions {
				_, err := tx.Exec(ctx, `
					INSERT INTO event_position (event_id, name, count_needed, sort_order)
					VALUES ($1, $2, $3, $4)
				`, e.ID, p.Name, p.CountNeeded, i)
				if err != nil {
					return fmt.Errorf("failed to insert position %q for event %s: %w", p.Name, e.ID, err)
				}
			}
		}
		return nil
	})
}

func scanEvent(row pgx.Row) (model.Event, error) {
	var e model.Event
	var date time.Time
	var endTime, seriesID *string
	if err := row.Scan(&e.ID, &e.Name, &date, &e.StartTime, &endTime, &e.Venue,
		&e.IsLakeGeneva, &e.IsHoliday, &seriesID, &e.Notes); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return e, err
		}
		return e, fmt.Errorf("failed to scan event: %w", err)
	}
	// Dates are exchanged as YYYY-MM-DD strings
	e.Date = date.Format(dateLayout)
	if endTime != nil {
		e.EndTime = *endTime
	}
	if seriesID != nil {
		e.SeriesID = *seriesID
	}
	return e, nil
}
