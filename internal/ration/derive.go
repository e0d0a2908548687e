package ration

import (
	"fmt"

	"kibble-ration/internal/model"
)

// Derived holds every value computed from a configuration.
type Derived struct {
	// Matrix[split][food] is the quantity of a food served at a split.
	Matrix            [][]float64
	RowTotals         []float64 // per split, all foods
	ColumnTotals      []float64 // per food, all splits
	TotalDistribution float64
	OverDistributed   bool
	Diverged          bool
	// ShowSplittings is false while there is a single feeding, in which
	// case the weights are not worth editing.
	ShowSplittings bool
	// Err is set when the matrix could not be computed.
	Err error
}

// Derive computes the derived values of cfg. It has no side effects.
func Derive(cfg model.RationConfig) Derived {
	d := Derived{
		TotalDistribution: cfg.TotalDistribution(),
		OverDistributed:   overDistributed(cfg),
		Diverged:          diverged(cfg),
		ShowSplittings:    cfg.SplittingCount > 1,
	}

	matrix, err := SplitMatrix(cfg)
	if err != nil {
		d.Err = err
		return d
	}
	d.Matrix = matrix
	d.RowTotals = make([]float64, len(matrix))
	d.ColumnTotals = make([]float64, len(cfg.DailyQuantities))
	for i, row := range matrix {
		for j, v := range row {
			d.RowTotals[i] += v
			d.ColumnTotals[j] += v
		}
	}
	return d
}

// SplitMatrix computes, for each split s and each daily quantity q,
// q.Quantity * q.Distribution/100 * s/sum(splittings).
func SplitMatrix(cfg model.RationConfig) ([][]float64, error) {
	if len(cfg.Splittings) != cfg.SplittingCount {
		return nil, &InvariantViolation{Detail: fmt.Sprintf(
			"%d splittings for splittingCount %d", len(cfg.Splittings), cfg.SplittingCount)}
	}
	total := cfg.TotalSplitting()
	if !model.IsFinite(total) || total <= 0 {
		return nil, &InvariantViolation{Detail: fmt.Sprintf("splitting weights sum to %v", total)}
	}

	matrix := make([][]float64, 0, len(cfg.Splittings))
	for _, s := range cfg.Splittings {
		share := s / total
		row := make([]float64, len(cfg.DailyQuantities))
		for j, q := range cfg.DailyQuantities {
			row[j] = q.Quantity * (q.Distribution / 100) * share
		}
		matrix = append(matrix, row)
	}
	return matrix, nil
}

func overDistributed(cfg model.RationConfig) bool {
	return cfg.TotalDistribution() > model.MaxDistribution
}

func diverged(cfg model.RationConfig) bool {
	return !cfg.Equal(model.DefaultRation())
}
