package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"whoannex/extraction"
)

// newTestStore открывает хранилище во временной директории теста
func newTestStore(t *testing.T) *SessionStore {
	t.Helper()
	store, err := OpenSessionStore(filepath.Join(t.TempDir(), "sessions.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func extractionResult(indicators map[string]float64) *extraction.Result {
	return &extraction.Result{
		Dataset: extraction.Dataset{
			"FRA": &extraction.CountryData{Name: "France", Indicators: indicators},
		},
		SkippedRows: 3,
	}
}

func TestSessionStore_CompleteSession(t *testing.T) {
	store := newTestStore(t)

	id, err := store.BeginSession("annex.csv", 10)
	require.NoError(t, err)
	require.NotEmpty(t, id)

	result := extractionResult(map[string]float64{
		"Life expectancy at birth (years)": 82.5,
		"UHC: Service coverage index":      80,
	})
	require.NoError(t, store.CompleteSession(id, result))

	sessions, err := store.ListSessions(10)
	require.NoError(t, err)
	require.Len(t, sessions, 1)

	info := sessions[0]
	assert.Equal(t, id, info.ID)
	assert.Equal(t, "annex.csv", info.SourceFile)
	assert.Equal(t, "completed", info.Status)
	assert.Equal(t, 1, info.Countries)
	assert.Equal(t, 2, info.Indicators)
	assert.Equal(t, 3, info.SkippedRows)
	assert.Equal(t, 10, info.MinIndicators)
	assert.NotNil(t, info.FinishedAt)

	loaded, err := store.LoadSessionValues(id)
	require.NoError(t, err)
	require.Contains(t, loaded, "FRA")
	assert.Equal(t, "France", loaded["FRA"].Name)
	assert.Equal(t, 82.5, loaded["FRA"].Indicators["Life expectancy at birth (years)"])
}

func TestSessionStore_FailSession(t *testing.T) {
	store := newTestStore(t)

	id, err := store.BeginSession("annex.csv", 10)
	require.NoError(t, err)
	require.NoError(t, store.FailSession(id))

	sessions, err := store.ListSessions(10)
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, "failed", sessions[0].Status)

	_, err = store.LoadSessionValues(id)
	assert.Error(t, err)
}

func TestSessionStore_DiffSessions(t *testing.T) {
	store := newTestStore(t)

	oldID, err := store.BeginSession("annex_v1.csv", 10)
	require.NoError(t, err)
	require.NoError(t, store.CompleteSession(oldID, extractionResult(map[string]float64{
		"Life expectancy at birth (years)":                82.5,
		"UHC: Service coverage index":                     80,
		"Suicide mortality rate (per 100 000 population)": 13.8,
	})))

	newID, err := store.BeginSession("annex_v2.csv", 10)
	require.NoError(t, err)
	require.NoError(t, store.CompleteSession(newID, extractionResult(map[string]float64{
		"Life expectancy at birth (years)":                82.7, // изменилось
		"UHC: Service coverage index":                     80,   // без изменений
		"Tuberculosis incidence (per 100 000 population)": 8.2,  // появилось
		// Суицидальная смертность пропала
	})))

	changes, err := store.DiffSessions(oldID, newID)
	require.NoError(t, err)
	require.Len(t, changes, 3)

	byIndicator := make(map[string]ValueChange)
	for _, change := range changes {
		byIndicator[change.Indicator] = change
	}

	changed := byIndicator["Life expectancy at birth (years)"]
	require.NotNil(t, changed.OldValue)
	require.NotNil(t, changed.NewValue)
	assert.Equal(t, 82.5, *changed.OldValue)
	assert.Equal(t, 82.7, *changed.NewValue)

	added := byIndicator["Tuberculosis incidence (per 100 000 population)"]
	assert.Nil(t, added.OldValue)
	require.NotNil(t, added.NewValue)
	assert.Equal(t, 8.2, *added.NewValue)

	removed := byIndicator["Suicide mortality rate (per 100 000 population)"]
	require.NotNil(t, removed.OldValue)
	assert.Nil(t, removed.NewValue)
}

func TestSessionStore_ListOrder(t *testing.T) {
	store := newTestStore(t)

	first, err := store.BeginSession("a.csv", 10)
	require.NoError(t, err)
	second, err := store.BeginSession("b.csv", 10)
	require.NoError(t, err)

	sessions, err := store.ListSessions(10)
	require.NoError(t, err)
	require.Len(t, sessions, 2)

	// Обе сессии на месте; при равных метках времени порядок не гарантирован
	ids := []string{sessions[0].ID, sessions[1].ID}
	assert.Contains(t, ids, first)
	assert.Contains(t, ids, second)
}

func TestMigration_Idempotent(t *testing.T) {
	store := newTestStore(t)
	// Повторная миграция по открытой базе не должна падать
	require.NoError(t, MigrateExtractionSessions(store.db))
}
