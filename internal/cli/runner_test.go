package cli

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"kibble-ration/internal/model"
	"kibble-ration/internal/ration"
	"kibble-ration/internal/store"
)

// writeConfig points the file backend and exports at a temp dir.
func writeConfig(t *testing.T) (configPath, dataPath string) {
	t.Helper()
	dir := t.TempDir()
	dataPath = filepath.Join(dir, "ration.json")
	configPath = filepath.Join(dir, "kibble-ration.yaml")
	yml := "storage:\n  backend: file\n  path: " + dataPath + "\nlog:\n  level: error\n"
	require.NoError(t, os.WriteFile(configPath, []byte(yml), 0o644))
	return configPath, dataPath
}

func TestRun_PersistsEdits(t *testing.T) {
	configPath, dataPath := writeConfig(t)

	var out bytes.Buffer
	err := Run(RunnerConfig{
		ConfigPath:     configPath,
		SplittingCount: 2,
		Weights:        []float64{1, 1},
		Quantities:     []model.DailyQuantity{{Quantity: 200, Distribution: 100}},
		Remove:         -1,
	}, &out)
	require.NoError(t, err)

	require.Contains(t, out.String(), "=== Kibble Ration ===")
	require.Contains(t, out.String(), "100.00")

	saved, err := store.NewFileStore(dataPath).Load()
	require.NoError(t, err)
	require.NotNil(t, saved)
	require.Equal(t, 2, saved.SplittingCount)
	require.Equal(t, []float64{1, 1}, saved.Splittings)
	require.Equal(t, 200.0, saved.DailyQuantities[0].Quantity)
}

func TestRun_NoSaveLeavesStoreUntouched(t *testing.T) {
	configPath, dataPath := writeConfig(t)

	var out bytes.Buffer
	err := Run(RunnerConfig{
		ConfigPath:     configPath,
		Add:            1,
		SplittingCount: -1,
		Remove:         -1,
		NoSave:         true,
		JSON:           true,
	}, &out)
	require.NoError(t, err)
	require.Contains(t, out.String(), `"dailyQuantities"`)

	_, err = os.Stat(dataPath)
	require.True(t, os.IsNotExist(err), "no-save run should not create %s", dataPath)
}

func TestRun_RejectsInvalidEdit(t *testing.T) {
	configPath, _ := writeConfig(t)

	err := Run(RunnerConfig{
		ConfigPath:     configPath,
		SplittingCount: -1,
		Remove:         -1,
		Edits:          []string{"splittings.0=-1"},
	}, &bytes.Buffer{})
	require.Error(t, err)
	require.True(t, errors.Is(err, ration.ErrValidation))
}

func TestRun_Export(t *testing.T) {
	configPath, _ := writeConfig(t)
	exportPath := filepath.Join(t.TempDir(), "out", "ration.csv")

	err := Run(RunnerConfig{
		ConfigPath:     configPath,
		SplittingCount: -1,
		Remove:         -1,
		OutputPath:     exportPath,
	}, &bytes.Buffer{})
	require.NoError(t, err)

	data, err := os.ReadFile(exportPath)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(string(data), "split;weight;food_1;total"))
}

func TestApplyEdits_QuantitiesReplaceFoodList(t *testing.T) {
	m := ration.New(nil)
	require.NoError(t, m.AddDefaultDailyQuantity())
	require.NoError(t, m.AddDefaultDailyQuantity())

	saveErr, err := ApplyEdits(m, RunnerConfig{
		SplittingCount: -1,
		Remove:         -1,
		Quantities: []model.DailyQuantity{
			{Quantity: 180, Distribution: 70},
			{Quantity: 90, Distribution: 30},
		},
	})
	require.NoError(t, err)
	require.NoError(t, saveErr)

	got := m.Snapshot().DailyQuantities
	require.Equal(t, []model.DailyQuantity{
		{Quantity: 180, Distribution: 70},
		{Quantity: 90, Distribution: 30},
	}, got)
}

func TestApplyEdits_QuantitiesIgnoreStoredRows(t *testing.T) {
	quantities := []model.DailyQuantity{
		{Quantity: 180, Distribution: 70},
		{Quantity: 90, Distribution: 50},
	}

	for _, stored := range []int{1, 2, 4} {
		m := ration.New(nil)
		for len(m.Snapshot().DailyQuantities) < stored {
			require.NoError(t, m.AddDefaultDailyQuantity())
		}

		_, err := ApplyEdits(m, RunnerConfig{SplittingCount: -1, Remove: -1, Quantities: quantities})
		require.NoError(t, err)

		// the second distribution is the complement of the first
		require.Equal(t, []model.DailyQuantity{
			{Quantity: 180, Distribution: 70},
			{Quantity: 90, Distribution: 30},
		}, m.Snapshot().DailyQuantities, "stored rows: %d", stored)
	}
}

func TestApplyEdits_ZeroSplittingCountRejected(t *testing.T) {
	m := ration.New(nil)

	_, err := ApplyEdits(m, RunnerConfig{SplittingCount: 0, Remove: -1})
	require.ErrorIs(t, err, ration.ErrValidation)
	require.Equal(t, 1, m.Snapshot().SplittingCount)
}

func TestApplyEdits_Order(t *testing.T) {
	m := ration.New(nil)

	// reset first, then count, then the field edit on the grown list
	_, err := ApplyEdits(m, RunnerConfig{
		Reset:          true,
		SplittingCount: 3,
		Remove:         -1,
		Edits:          []string{"splittings.2=4"},
	})
	require.NoError(t, err)

	cfg := m.Snapshot()
	require.Equal(t, 3, cfg.SplittingCount)
	require.Equal(t, []float64{1, 1, 4}, cfg.Splittings)
}

type failingStore struct{}

func (failingStore) Load() (*model.RationConfig, error) { return nil, nil }
func (failingStore) Save(model.RationConfig) error      { return errors.New("disk full") }

func TestApplyEdits_SaveErrorsContinue(t *testing.T) {
	m := ration.New(failingStore{})

	saveErr, err := ApplyEdits(m, RunnerConfig{SplittingCount: 2, Add: 1, Remove: -1})
	require.NoError(t, err)
	require.True(t, errors.Is(saveErr, ration.ErrPersistence))

	cfg := m.Snapshot()
	require.Equal(t, 2, cfg.SplittingCount)
	require.Len(t, cfg.DailyQuantities, 2)
}

func TestRun_HistoryFromSQLite(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "kibble-ration.yaml")
	yml := "storage:\n  backend: sqlite\n  path: " + filepath.Join(dir, "ration.db") + "\nlog:\n  level: error\n"
	require.NoError(t, os.WriteFile(configPath, []byte(yml), 0o644))

	for _, n := range []int{2, 3} {
		require.NoError(t, Run(RunnerConfig{ConfigPath: configPath, SplittingCount: n, Remove: -1}, &bytes.Buffer{}))
	}

	var out bytes.Buffer
	require.NoError(t, Run(RunnerConfig{ConfigPath: configPath, SplittingCount: -1, Remove: -1, History: 5}, &out))
	require.Contains(t, out.String(), "--- Last 2 saved snapshots ---")
	require.Contains(t, out.String(), "3 feedings, 1 foods, 100.00 g")
}

func TestRun_HistoryNeedsSQLite(t *testing.T) {
	configPath, _ := writeConfig(t)

	err := Run(RunnerConfig{ConfigPath: configPath, SplittingCount: -1, Remove: -1, History: 1}, &bytes.Buffer{})
	require.Error(t, err)
}
