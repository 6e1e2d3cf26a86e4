package sheetsclient

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wmtykrqqy6-ship-it/gigstaffpro-sub000/pkg/core/model"
)

func TestParseWorkers(t *testing.T) {
	raw := [][]interface{}{
		{"Worker ID", "First name", "Last name", "Email", "Skills", "Status", "Notes"},
		{"w-1", "Pat", "Lee", "pat@example.com", "Blackjack Dealer, Roulette", "Active", "ignored"},
		{"", "Sam", "Ortiz", "sam@example.com", "Bartender;Mixology"},
		{"", "", "", ""},
		{"w-3", "Kim", "Park", "kim@example.com", "", "inactive"},
	}

	workers, err := parseWorkers(raw)
	require.NoError(t, err)
	require.Len(t, workers, 3)

	assert.Equal(t, "w-1", workers[0].ID)
	assert.Equal(t, []string{"Blackjack Dealer", "Roulette"}, workers[0].Skills)
	assert.Equal(t, model.WorkerActive, workers[0].Status)

	assert.Equal(t, "", workers[1].ID, "missing ID is left for the caller")
	assert.Equal(t, []string{"Bartender", "Mixology"}, workers[1].Skills)
	assert.True(t, workers[1].Status.IsActive(), "blank status counts as active")

	assert.Equal(t, model.WorkerInactive, workers[2].Status)
	assert.Empty(t, workers[2].Skills)
}

func TestParseWorkers_MissingRequiredColumn(t *testing.T) {
	_, err := parseWorkers([][]interface{}{{"First name", "Last name"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Email")
}

func TestParseWorkers_InvalidStatus(t *testing.T) {
	_, err := parseWorkers([][]interface{}{
		{"First name", "Last name", "Email", "Status"},
		{"Pat", "Lee", "pat@example.com", "on leave"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 2")
}

func TestSplitSkills(t *testing.T) {
	assert.Equal(t, []string{"Poker", "Craps"}, splitSkills(" Poker ,, Craps "))
	assert.Empty(t, splitSkills(""))
}
