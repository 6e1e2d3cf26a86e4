package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/wmtykrqqy6-ship-it/gigstaffpro-sub000/internal/config"
	"github.com/wmtykrqqy6-ship-it/gigstaffpro-sub000/pkg/core/model"
	"github.com/wmtykrqqy6-ship-it/gigstaffpro-sub000/pkg/db"
)

// workerNamespace derives stable IDs for roster rows without a Worker ID
var workerNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("gigstaff:worker"))

// ImportResult summarises a roster import
type ImportResult struct {
	Imported     int
	GeneratedIDs int
	Workers      []model.Worker
}

// ImportWorkers reads the roster sheet and upserts every worker by ID.
// Rows without an ID get one derived from their email (or name), so
// re-importing the same sheet updates rather than duplicates.
func ImportWorkers(ctx context.Context, store db.WorkerStore, roster RosterClient, cfg *config.Config, logger *zap.Logger) (*ImportResult, error) {
	if cfg.RosterSheetID == "" {
		return nil, fmt.Errorf("%w: rosterSheetID is not configured", ErrInvalidInput)
	}

	// Step 1: Sheets query - Fetch the roster
	logger.Debug("Fetching roster", zap.String("sheet_id", cfg.RosterSheetID), zap.String("tab", cfg.RosterTab))
	workers, err := roster.ListWorkers(cfg.RosterSheetID, cfg.RosterTab)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch roster: %w", err)
	}

	// Step 2: Fill in IDs and statuses, rejecting rows that collide
	result := &ImportResult{}
	seen := make(map[string]int, len(workers))
	for i := range workers {
		w := &workers[i]
		if w.ID == "" {
			w.ID = derivedWorkerID(*w)
			result.GeneratedIDs++
		}
		if w.Status == "" {
			w.Status = model.WorkerActive
		}
		if prev, dup := seen[w.ID]; dup {
			return nil, fmt.Errorf("%w: roster rows for %s and %s share ID %s",
				ErrInvalidInput, workers[prev].FullName(), w.FullName(), w.ID)
		}
		seen[w.ID] = i
	}

	// Step 3: DB write - Upsert every row
	if len(workers) > 0 {
		if err := store.UpsertWorkers(ctx, workers); err != nil {
			return nil, fmt.Errorf("failed to save workers: %w", err)
		}
	}

	result.Imported = len(workers)
	result.Workers = workers

	logger.Info("Roster imported",
		zap.Int("workers", result.Imported),
		zap.Int("generated_ids", result.GeneratedIDs))

	return result, nil
}

func derivedWorkerID(w model.Worker) string {
	key := strings.ToLower(strings.TrimSpace(w.Email))
	// Fall back to the name when there is no email
	if key == "" {
		key = strings.ToLower(w.FullName())
	}
	return uuid.NewSHA1(workerNamespace, []byte(key)).String()
}
