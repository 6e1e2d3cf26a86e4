package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/wmtykrqqy6-ship-it/gigstaffpro-sub000/internal/config"
	"github.com/wmtykrqqy6-ship-it/gigstaffpro-sub000/pkg/core/model"
)

func TestAddWorker(t *testing.T) {
	store := &mockStore{}

	w, err := AddWorker(context.Background(), store, zap.NewNop(), AddWorkerRequest{
		FirstName: "Alex",
		LastName:  "Rivera",
		Email:     "alex@example.com",
		Skills:    []string{"Poker Dealer"},
	})
	require.NoError(t, err)

	assert.NotEmpty(t, w.ID)
	assert.Equal(t, model.WorkerActive, w.Status)
	require.Len(t, store.workers, 1)
	assert.Equal(t, "Alex Rivera", store.workers[0].FullName())
}

func TestAddWorker_InvalidEmail(t *testing.T) {
	store := &mockStore{}

	_, err := AddWorker(context.Background(), store, zap.NewNop(), AddWorkerRequest{
		FirstName: "Alex",
		LastName:  "Rivera",
		Email:     "not-an-email",
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Empty(t, store.workers)
}

func TestImportWorkers_DerivesStableIDs(t *testing.T) {
	store := &mockStore{}
	roster := &mockRoster{workers: []model.Worker{
		{ID: "w-1", FirstName: "Pat", LastName: "Lee", Email: "pat@example.com"},
		{FirstName: "Sam", LastName: "Ortiz", Email: "Sam@Example.com"},
		{FirstName: "Jo", LastName: "Kim", Status: model.WorkerInactive},
	}}
	cfg := &config.Config{RosterSheetID: "sheet", RosterTab: "Workers"}

	first, err := ImportWorkers(context.Background(), store, roster, cfg, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, 3, first.Imported)
	assert.Equal(t, 2, first.GeneratedIDs)
	assert.Equal(t, model.WorkerActive, first.Workers[1].Status)
	assert.Equal(t, model.WorkerInactive, first.Workers[2].Status)

	second, err := ImportWorkers(context.Background(), store, roster, cfg, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, first.Workers[1].ID, second.Workers[1].ID)
	assert.Len(t, store.workers, 3, "re-importing updates rather than duplicates")
}

func TestImportWorkers_DuplicateIDs(t *testing.T) {
	store := &mockStore{}
	roster := &mockRoster{workers: []model.Worker{
		{FirstName: "Sam", LastName: "Ortiz", Email: "sam@example.com"},
		{FirstName: "Samuel", LastName: "Ortiz", Email: "SAM@example.com"},
	}}
	cfg := &config.Config{RosterSheetID: "sheet"}

	_, err := ImportWorkers(context.Background(), store, roster, cfg, zap.NewNop())
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Empty(t, store.workers)
}

func TestImportWorkers_Errors(t *testing.T) {
	_, err := ImportWorkers(context.Background(), &mockStore{}, &mockRoster{}, &config.Config{}, zap.NewNop())
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = ImportWorkers(context.Background(), &mockStore{}, &mockRoster{err: errBoom},
		&config.Config{RosterSheetID: "sheet"}, zap.NewNop())
	assert.ErrorIs(t, err, errBoom)
}
