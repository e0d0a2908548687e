package ration

import (
	"fmt"
	"sync"

	"kibble-ration/internal/logging"
	"kibble-ration/internal/model"
)

// Store persists the ration snapshot.
//
// Load returns (nil, nil) when nothing has been stored yet.
type Store interface {
	Load() (*model.RationConfig, error)
	Save(cfg model.RationConfig) error
}

// Listener receives the new snapshot and its derived values after every
// successful mutation.
type Listener func(cfg model.RationConfig, derived Derived)

// DailyQuantityPatch is a partial update of one daily quantity row.
// Nil fields are left untouched.
type DailyQuantityPatch struct {
	Quantity     *float64
	Distribution *float64
}

// Option configures a Model.
type Option func(*Model)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l logging.Logger) Option {
	return func(m *Model) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithStrictInvariants makes internal invariant violations panic instead of
// being logged and skipped.
func WithStrictInvariants(strict bool) Option {
	return func(m *Model) { m.strict = strict }
}

type subscription struct {
	id int
	fn Listener
}

// Model owns the ration configuration, keeps it consistent and derives the
// per-split quantities from it.
type Model struct {
	mu      sync.Mutex
	cfg     model.RationConfig
	store   Store
	logger  logging.Logger
	strict  bool
	loadErr error

	listeners []subscription
	nextID    int
}

// New creates a model, restoring the stored snapshot when there is a valid
// one and falling back to the default otherwise. store may be nil.
func New(store Store, opts ...Option) *Model {
	m := &Model{
		cfg:    model.DefaultRation(),
		store:  store,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.load()
	return m
}

func (m *Model) load() {
	if m.store == nil {
		return
	}
	cfg, err := m.store.Load()
	if err != nil {
		m.loadErr = &PersistenceError{Op: "load", Err: err}
		m.logger.Warn("stored ration unreadable, using default", "error", err)
		return
	}
	if cfg == nil {
		m.logger.Debug("no stored ration, using default")
		return
	}
	if err := Validate(*cfg); err != nil {
		m.loadErr = &PersistenceError{Op: "load", Err: err}
		m.logger.Warn("stored ration invalid, using default", "error", err)
		return
	}
	m.cfg = cfg.Clone()
	m.logger.Info("ration restored",
		"splittings", m.cfg.SplittingCount, "foods", len(m.cfg.DailyQuantities))
}

// LoadErr returns the error that made New fall back to the default, if any.
func (m *Model) LoadErr() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loadErr
}

// Snapshot returns a copy of the current configuration.
func (m *Model) Snapshot() model.RationConfig {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cfg.Clone()
}

// Subscribe registers fn to be called after each successful mutation.
// The returned function removes the subscription.
func (m *Model) Subscribe(fn Listener) (cancel func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	id := m.nextID
	m.listeners = append(m.listeners, subscription{id: id, fn: fn})
	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		for i, s := range m.listeners {
			if s.id == id {
				m.listeners = append(m.listeners[:i:i], m.listeners[i+1:]...)
				return
			}
		}
	}
}

// SetSplittingCount grows or shrinks the split weights to n entries.
// New splits get the default weight; shrinking drops from the tail.
func (m *Model) SetSplittingCount(n int) error {
	return m.mutate("setSplittingCount", func(cfg *model.RationConfig) error {
		if err := validateSplittingCount(n); err != nil {
			return err
		}
		resizeSplittings(cfg, n)
		return nil
	})
}

func resizeSplittings(cfg *model.RationConfig, n int) {
	switch {
	case n < len(cfg.Splittings):
		cfg.Splittings = cfg.Splittings[:n]
	case n > len(cfg.Splittings):
		for len(cfg.Splittings) < n {
			cfg.Splittings = append(cfg.Splittings, model.DefaultSplitting)
		}
	}
	cfg.SplittingCount = n
}

// SetSplitting updates the weight of one split.
func (m *Model) SetSplitting(index int, weight float64) error {
	return m.mutate("setSplitting", func(cfg *model.RationConfig) error {
		field := fmt.Sprintf("splittings.%d", index)
		if index < 0 || index >= len(cfg.Splittings) {
			return invalid(field, index, "index out of range")
		}
		if err := validateSplitting(field, weight); err != nil {
			return err
		}
		cfg.Splittings[index] = weight
		return nil
	})
}

// AddDefaultDailyQuantity appends a 100 g / 100 % row.
func (m *Model) AddDefaultDailyQuantity() error {
	return m.AddDailyQuantity(model.DefaultDailyQuantity())
}

// AddDailyQuantity appends a row. When this makes exactly two rows, the new
// row's distribution becomes the complement of the first.
func (m *Model) AddDailyQuantity(initial model.DailyQuantity) error {
	return m.mutate("addDailyQuantity", func(cfg *model.RationConfig) error {
		index := len(cfg.DailyQuantities)
		if err := validateDailyQuantity(index, initial); err != nil {
			return err
		}
		cfg.DailyQuantities = append(cfg.DailyQuantities, initial)
		if len(cfg.DailyQuantities) == 2 {
			cfg.DailyQuantities[1].Distribution = model.MaxDistribution - cfg.DailyQuantities[0].Distribution
		}
		return nil
	})
}

// RemoveDailyQuantity deletes a row. The last remaining row cannot be
// removed. Distributions are not rebalanced.
func (m *Model) RemoveDailyQuantity(index int) error {
	return m.mutate("removeDailyQuantity", func(cfg *model.RationConfig) error {
		field := fmt.Sprintf("dailyQuantities.%d", index)
		if index < 0 || index >= len(cfg.DailyQuantities) {
			return invalid(field, index, "index out of range")
		}
		if len(cfg.DailyQuantities) == 1 {
			return invalid(field, index, "at least one daily quantity is required")
		}
		cfg.DailyQuantities = append(cfg.DailyQuantities[:index], cfg.DailyQuantities[index+1:]...)
		return nil
	})
}

// SetDailyQuantity applies a partial update to one row. With exactly two
// rows, a distribution change also sets the other row to the complement.
func (m *Model) SetDailyQuantity(index int, patch DailyQuantityPatch) error {
	return m.mutate("setDailyQuantity", func(cfg *model.RationConfig) error {
		if index < 0 || index >= len(cfg.DailyQuantities) {
			return invalid(fmt.Sprintf("dailyQuantities.%d", index), index, "index out of range")
		}
		row := cfg.DailyQuantities[index]
		if patch.Quantity != nil {
			row.Quantity = *patch.Quantity
		}
		if patch.Distribution != nil {
			row.Distribution = *patch.Distribution
		}
		if err := validateDailyQuantity(index, row); err != nil {
			return err
		}
		cfg.DailyQuantities[index] = row

		// The link is applied once, here; the other row is written directly
		// and never goes back through this path.
		if patch.Distribution != nil && len(cfg.DailyQuantities) == 2 {
			other := 1 - index
			cfg.DailyQuantities[other].Distribution = model.MaxDistribution - row.Distribution
		}
		return nil
	})
}

// Reset restores the default configuration in a single step.
func (m *Model) Reset() error {
	return m.mutate("reset", func(cfg *model.RationConfig) error {
		*cfg = model.DefaultRation()
		return nil
	})
}

// ComputeSplitMatrix returns the quantity of each food for each split.
func (m *Model) ComputeSplitMatrix() ([][]float64, error) {
	matrix, err := SplitMatrix(m.Snapshot())
	if err != nil {
		m.invariantFailed(err)
		return nil, err
	}
	return matrix, nil
}

// IsOverDistributed reports whether the distributions add up to more than 100 %.
func (m *Model) IsOverDistributed() bool {
	return overDistributed(m.Snapshot())
}

// HasDiverged reports whether the configuration differs from the default.
func (m *Model) HasDiverged() bool {
	return diverged(m.Snapshot())
}

// Derived computes every derived value from the current configuration.
func (m *Model) Derived() Derived {
	return m.derive(m.Snapshot())
}

func (m *Model) derive(cfg model.RationConfig) Derived {
	d := Derive(cfg)
	if d.Err != nil {
		m.invariantFailed(d.Err)
	}
	return d
}

func (m *Model) invariantFailed(err error) {
	if m.strict {
		panic(err)
	}
	m.logger.Error("split computation skipped", "error", err)
}

// mutate runs fn against a copy of the configuration and commits it only if
// fn succeeds. The committed snapshot is saved, then listeners are notified.
// A save failure is returned but does not roll the edit back.
func (m *Model) mutate(op string, fn func(cfg *model.RationConfig) error) error {
	m.mu.Lock()
	next := m.cfg.Clone()
	if err := fn(&next); err != nil {
		m.mu.Unlock()
		m.logger.Debug("edit rejected", "op", op, "error", err)
		return err
	}
	m.cfg = next
	snap := next.Clone()
	saveErr := m.save(snap)
	listeners := make([]subscription, len(m.listeners))
	copy(listeners, m.listeners)
	m.mu.Unlock()

	m.logger.Debug("ration updated", "op", op,
		"splittings", snap.SplittingCount, "foods", len(snap.DailyQuantities))

	derived := m.derive(snap)
	for _, l := range listeners {
		l.fn(snap.Clone(), derived)
	}
	return saveErr
}

func (m *Model) save(cfg model.RationConfig) error {
	if m.store == nil {
		return nil
	}
	if err := m.store.Save(cfg); err != nil {
		m.logger.Error("saving ration failed", "error", err)
		return &PersistenceError{Op: "save", Err: err}
	}
	return nil
}
