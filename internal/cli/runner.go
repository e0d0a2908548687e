package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"fyne.io/fyne/v2/app"

	"kibble-ration/internal/config"
	"kibble-ration/internal/export"
	"kibble-ration/internal/format"
	"kibble-ration/internal/logging"
	"kibble-ration/internal/model"
	"kibble-ration/internal/ration"
	"kibble-ration/internal/store"
)

// RunnerConfig holds all CLI options for one run.
type RunnerConfig struct {
	ConfigPath string

	// Edits
	Reset          bool
	SplittingCount int // -1 = unchanged
	Splittings     string
	Weights        []float64
	Quantities     []model.DailyQuantity
	Add            int
	Remove         int // -1 = none
	Edits          []string

	// Output
	OutputPath string
	JSON       bool
	History    int
	NoSave     bool
	Verbose    bool
}

// readOnly loads from the wrapped backend and drops every save.
type readOnly struct {
	store.Backend
}

func (readOnly) Save(model.RationConfig) error { return nil }

// Run loads the stored ration, applies the requested edits, prints the split
// table and optionally exports it.
func Run(rc RunnerConfig, out io.Writer) error {
	appCfg, err := config.Load(rc.ConfigPath, store.BackendFile)
	if err != nil {
		return err
	}
	if rc.Verbose {
		appCfg.Log.Level = "debug"
	}
	if err := appCfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	logger, err := logging.New(os.Stderr, appCfg.Log.Level, appCfg.Log.Format)
	if err != nil {
		return err
	}

	backend, err := openBackend(appCfg)
	if err != nil {
		return err
	}
	defer backend.Close()

	var st ration.Store = backend
	if rc.NoSave {
		st = readOnly{backend}
	}

	m := ration.New(st,
		ration.WithLogger(logger),
		ration.WithStrictInvariants(appCfg.Strict),
	)
	if err := m.LoadErr(); err != nil {
		logger.Warn("starting from the default ration", "error", err)
	}

	saveErr, err := ApplyEdits(m, rc)
	if err != nil {
		return err
	}

	cfg := m.Snapshot()
	derived := m.Derived()

	fmt.Fprintln(out, format.FormatMatrix(cfg, derived))
	if rc.JSON {
		fmt.Fprintln(out, format.FormatSnapshot(cfg))
	}

	if rc.History > 0 {
		if err := printHistory(backend, rc.History, out); err != nil {
			return err
		}
	}

	if rc.OutputPath != "" {
		if err := export.Write(rc.OutputPath, cfg, derived); err != nil {
			return fmt.Errorf("export: %w", err)
		}
		if rc.Verbose {
			fmt.Fprintf(out, "Exported to: %s\n", rc.OutputPath)
		}
	}

	return saveErr
}

// historian is implemented by backends that keep past snapshots.
type historian interface {
	History(limit int) ([]store.HistoryEntry, error)
}

func printHistory(backend store.Backend, limit int, out io.Writer) error {
	h, ok := backend.(historian)
	if !ok {
		return fmt.Errorf("-history needs the sqlite backend")
	}
	entries, err := h.History(limit)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "\n--- Last %d saved snapshots ---\n", len(entries))
	for _, e := range entries {
		fmt.Fprintf(out, "%s  %d feedings, %d foods, %s g\n",
			e.SavedAt.Format("2006-01-02 15:04:05"),
			e.Config.SplittingCount,
			len(e.Config.DailyQuantities),
			format.Grams(e.Config.TotalQuantity()),
		)
	}
	return nil
}

func openBackend(cfg *config.Config) (store.Backend, error) {
	if cfg.Storage.Backend == store.BackendPreferences {
		// Shares the GUI's preferences file.
		a := app.NewWithID(config.AppID)
		return store.NewPreferencesStore(a.Preferences()), nil
	}
	return store.Open(cfg.Storage.Backend, cfg.Storage.Path, nil)
}

// ApplyEdits runs the edits of rc against m in a fixed order: reset, count,
// weights, foods, add, remove, field edits. A validation error stops the run.
// Persistence errors do not; the last one is returned as saveErr.
func ApplyEdits(m *ration.Model, rc RunnerConfig) (saveErr error, err error) {
	step := func(what string, e error) error {
		if e == nil {
			return nil
		}
		if errors.Is(e, ration.ErrPersistence) && !errors.Is(e, ration.ErrValidation) {
			saveErr = e
			return nil
		}
		return fmt.Errorf("%s: %w", what, e)
	}

	if rc.Reset {
		if err := step("-reset", m.Reset()); err != nil {
			return saveErr, err
		}
	}
	if rc.SplittingCount >= 0 {
		if err := step("-n", m.SetSplittingCount(rc.SplittingCount)); err != nil {
			return saveErr, err
		}
	}
	for i, w := range rc.Weights {
		if err := step("-s", m.SetSplitting(i, w)); err != nil {
			return saveErr, err
		}
	}
	if len(rc.Quantities) > 0 {
		// The list is cut down to one row, so the outcome does not depend on
		// what was stored. With two entries the second row's distribution is
		// the complement of the first.
		for n := len(m.Snapshot().DailyQuantities); n > 1; n-- {
			if err := step("-q", m.RemoveDailyQuantity(n-1)); err != nil {
				return saveErr, err
			}
		}
		first := rc.Quantities[0]
		patch := ration.DailyQuantityPatch{Quantity: &first.Quantity, Distribution: &first.Distribution}
		if err := step("-q", m.SetDailyQuantity(0, patch)); err != nil {
			return saveErr, err
		}
		for _, q := range rc.Quantities[1:] {
			if err := step("-q", m.AddDailyQuantity(q)); err != nil {
				return saveErr, err
			}
		}
	}
	for i := 0; i < rc.Add; i++ {
		if err := step("-add", m.AddDefaultDailyQuantity()); err != nil {
			return saveErr, err
		}
	}
	if rc.Remove >= 0 {
		if err := step("-remove", m.RemoveDailyQuantity(rc.Remove)); err != nil {
			return saveErr, err
		}
	}
	for _, raw := range rc.Edits {
		edit, e := ration.ParseEdit(raw)
		if e == nil {
			e = m.Apply(edit)
		}
		if err := step("-set "+raw, e); err != nil {
			return saveErr, err
		}
	}
	return saveErr, nil
}
