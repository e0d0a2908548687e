// Package store persists the ration snapshot.
//
// Every backend keeps exactly one JSON document under SnapshotKey and
// overwrites it in full on each save.
package store

import (
	"encoding/json"
	"errors"
	"fmt"

	"kibble-ration/internal/model"
)

// SnapshotKey is the fixed key the snapshot is stored under.
const SnapshotKey = "form"

// Backend names accepted by Open.
const (
	BackendPreferences = "preferences"
	BackendFile        = "file"
	BackendSQLite      = "sqlite"
	BackendMemory      = "memory"
)

// ErrDecode is returned when a stored snapshot is not valid JSON for a ration.
var ErrDecode = errors.New("decode snapshot")

// Backend is a snapshot store. Load returns (nil, nil) when nothing is stored.
type Backend interface {
	Load() (*model.RationConfig, error)
	Save(cfg model.RationConfig) error
	Close() error
}

// Encode serializes cfg into the persisted snapshot format.
func Encode(cfg model.RationConfig) ([]byte, error) {
	if cfg.Splittings == nil {
		cfg.Splittings = []float64{}
	}
	if cfg.DailyQuantities == nil {
		cfg.DailyQuantities = []model.DailyQuantity{}
	}
	data, err := json.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return data, nil
}

// snapshot mirrors model.RationConfig with pointer fields so that a missing
// or null number can be told apart from zero.
type snapshot struct {
	SplittingCount  *int             `json:"splittingCount"`
	Splittings      *[]*float64      `json:"splittings"`
	DailyQuantities *[]dailyQuantity `json:"dailyQuantities"`
}

type dailyQuantity struct {
	Quantity     *float64 `json:"quantity"`
	Distribution *float64 `json:"distribution"`
}

// Decode parses a persisted snapshot. Every field is required; a missing or
// null value is a decode error. Range checks are left to the caller.
func Decode(data []byte) (*model.RationConfig, error) {
	var raw snapshot
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if raw.SplittingCount == nil {
		return nil, missing("splittingCount")
	}
	if raw.Splittings == nil {
		return nil, missing("splittings")
	}
	if raw.DailyQuantities == nil {
		return nil, missing("dailyQuantities")
	}

	cfg := model.RationConfig{
		SplittingCount:  *raw.SplittingCount,
		Splittings:      make([]float64, len(*raw.Splittings)),
		DailyQuantities: make([]model.DailyQuantity, len(*raw.DailyQuantities)),
	}
	for i, w := range *raw.Splittings {
		if w == nil {
			return nil, missing(fmt.Sprintf("splittings.%d", i))
		}
		cfg.Splittings[i] = *w
	}
	for i, q := range *raw.DailyQuantities {
		if q.Quantity == nil {
			return nil, missing(fmt.Sprintf("dailyQuantities.%d.quantity", i))
		}
		if q.Distribution == nil {
			return nil, missing(fmt.Sprintf("dailyQuantities.%d.distribution", i))
		}
		cfg.DailyQuantities[i] = model.DailyQuantity{Quantity: *q.Quantity, Distribution: *q.Distribution}
	}
	return &cfg, nil
}

func missing(field string) error {
	return fmt.Errorf("%w: %s is missing or null", ErrDecode, field)
}
