package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/wmtykrqqy6-ship-it/gigstaffpro-sub000/pkg/core/model"
	"github.com/wmtykrqqy6-ship-it/gigstaffpro-sub000/pkg/db"
)

// AddWorkerRequest describes a roster entry. ID is generated when empty.
type AddWorkerRequest struct {
	ID        string   `json:"id,omitempty"`
	FirstName string   `json:"firstName" validate:"required"`
	LastName  string   `json:"lastName"`
	Email     string   `json:"email" validate:"omitempty,email"`
	Phone     string   `json:"phone"`
	Address   string   `json:"address"`
	Skills    []string `json:"skills" validate:"dive,required"`
	Status    string   `json:"status" validate:"omitempty,oneof=active inactive"`
}

// AddWorker inserts or updates a single worker
func AddWorker(ctx context.Context, store db.WorkerStore, logger *zap.Logger, req AddWorkerRequest) (*model.Worker, error) {
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// Normalize the entry
	worker := model.Worker{
		ID:        strings.TrimSpace(req.ID),
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
		Email:     strings.TrimSpace(req.Email),
		Phone:     strings.TrimSpace(req.Phone),
		Address:   strings.TrimSpace(req.Address),
		Skills:    req.Skills,
		Status:    model.WorkerStatus(req.Status),
	}
	// New workers get a generated ID
	if worker.ID == "" {
		worker.ID = uuid.New().String()
	}
	if worker.Status == "" {
		worker.Status = model.WorkerActive
	}

	// DB write - Upsert the worker
	if err := store.UpsertWorkers(ctx, []model.Worker{worker}); err != nil {
		return nil, fmt.Errorf("failed to save worker: %w", err)
	}

	logger.Info("Worker saved",
		zap.String("id", worker.ID),
		zap.String("name", worker.FullName()),
		zap.Strings("skills", worker.Skills))

	return &worker, nil
}
