package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/wmtykrqqy6-ship-it/gigstaffpro-sub000/pkg/core/model"
	"github.com/wmtykrqqy6-ship-it/gigstaffpro-sub000/pkg/db"
)

const workerColumns = `id, first_name, last_name, email, phone, address, skills, status`

// GetWorkers retrieves the whole roster ordered by name
func (d *DB) GetWorkers(ctx context.Context) ([]model.Worker, error) {
	rows, err := d.pool.Query(ctx, `SELECT `+workerColumns+` FROM worker ORDER BY first_name, last_name, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query workers: %w", err)
	}

	workers, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.Worker, error) {
		return scanWorker(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan workers: %w", err)
	}
	return workers, nil
}

// GetWorker retrieves one worker by ID. Returns db.ErrNotFound if it does not exist.
func (d *DB) GetWorker(ctx context.Context, id string) (*model.Worker, error) {
	w, err := scanWorker(d.pool.QueryRow(ctx, `SELECT `+workerColumns+` FROM worker WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("worker %s: %w", id, db.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get worker: %w", err)
	}
	return &w, nil
}

// UpsertWorkers inserts workers, replacing existing rows with the same ID
func (d *DB) UpsertWorkers(ctx context.Context, workers []model.Worker) error {
	if len(workers) == 0 {
		return nil
	}

	// Queue one upsert per worker
	batch := &pgx.Batch{}
	for _, w := range workers {
		skills := w.Skills
		// skills is NOT NULL
		if skills == nil {
			skills = []string{}
		}
		status := w.Status
		// Workers without a status are active
		if status == "" {
			status = model.WorkerActive
		}
		batch.Queue(`
			INSERT INTO worker (`+workerColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			ON CONFLICT (id) DO UPDATE SET
				first_name = EXCLUDED.first_name,
				last_name = EXCLUDED.last_name,
				email = EXCLUDED.email,
				phone = EXCLUDED.phone,
				address = EXCLUDED.address,
				skills = EXCLUDED.skills,
				status = EXCLUDED.status
		`, w.ID, w.FirstName, w.LastName, w.Email, w.Phone, w.Address, skills, string(status))
	}

	// Send the whole batch in one transaction
	return d.withTx(ctx, func(tx pgx.Tx) error {
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("failed to upsert workers: %w", err)
		}
		return nil
	})
}

func scanWorker(row pgx.Row) (model.Worker, error) {
	var w model.Worker
	var status string
	err := row.Scan(&w.ID, &w.FirstName, &w.LastName, &w.Email, &w.Phone, &w.Address, &w.Skills, &status)
	w.Status = model.WorkerStatus(status)
	return w, err
}
