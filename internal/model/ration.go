package model

import "math"

// DailyQuantity is the total daily amount of one food type and the share of
// it that goes into the ration.
type DailyQuantity struct {
	Quantity     float64 `json:"quantity"`     // grams per day
	Distribution float64 `json:"distribution"` // percent, 0..100
}

// RationConfig is the full ration form state.
type RationConfig struct {
	SplittingCount  int             `json:"splittingCount"`
	Splittings      []float64       `json:"splittings"`
	DailyQuantities []DailyQuantity `json:"dailyQuantities"`
}

// Defaults applied to new rows and to a reset.
const (
	DefaultSplitting    = 1.0
	DefaultQuantity     = 100.0
	DefaultDistribution = 100.0
	MaxDistribution     = 100.0
)

// DefaultDailyQuantity returns the row appended by "add food".
func DefaultDailyQuantity() DailyQuantity {
	return DailyQuantity{Quantity: DefaultQuantity, Distribution: DefaultDistribution}
}

// DefaultRation returns the compiled-in starting configuration.
func DefaultRation() RationConfig {
	return RationConfig{
		SplittingCount:  1,
		Splittings:      []float64{DefaultSplitting},
		DailyQuantities: []DailyQuantity{DefaultDailyQuantity()},
	}
}

// Clone returns a deep copy.
func (c RationConfig) Clone() RationConfig {
	out := RationConfig{SplittingCount: c.SplittingCount}
	if c.Splittings != nil {
		out.Splittings = make([]float64, len(c.Splittings))
		copy(out.Splittings, c.Splittings)
	}
	if c.DailyQuantities != nil {
		out.DailyQuantities = make([]DailyQuantity, len(c.DailyQuantities))
		copy(out.DailyQuantities, c.DailyQuantities)
	}
	return out
}

// Equal reports full structural equality.
func (c RationConfig) Equal(other RationConfig) bool {
	if c.SplittingCount != other.SplittingCount ||
		len(c.Splittings) != len(other.Splittings) ||
		len(c.DailyQuantities) != len(other.DailyQuantities) {
		return false
	}
	for i, s := range c.Splittings {
		if s != other.Splittings[i] {
			return false
		}
	}
	for i, q := range c.DailyQuantities {
		if q != other.DailyQuantities[i] {
			return false
		}
	}
	return true
}

// TotalSplitting returns the sum of all split weights.
func (c RationConfig) TotalSplitting() float64 {
	return sum(c.Splittings)
}

// TotalDistribution returns the sum of the distribution percentages.
func (c RationConfig) TotalDistribution() float64 {
	var total float64
	for _, q := range c.DailyQuantities {
		total += q.Distribution
	}
	return total
}

// TotalQuantity returns the sum of the daily quantities.
func (c RationConfig) TotalQuantity() float64 {
	var total float64
	for _, q := range c.DailyQuantities {
		total += q.Quantity
	}
	return total
}

func sum(numbers []float64) float64 {
	var total float64
	for _, n := range numbers {
		total += n
	}
	return total
}

// IsFinite reports whether v is neither NaN nor infinite.
func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
