package ration

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Edit is a single field change coming from a form widget, addressed by the
// control path of the form: "splittingCount", "splittings.<i>",
// "dailyQuantities.<i>.quantity" or "dailyQuantities.<i>.distribution".
type Edit struct {
	Path  string
	Value float64
}

// ParseEdit parses "path=value".
func ParseEdit(s string) (Edit, error) {
	path, raw, ok := strings.Cut(s, "=")
	if !ok {
		return Edit{}, fmt.Errorf("edit %q: expected path=value", s)
	}
	path = strings.TrimSpace(path)
	value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return Edit{}, invalid(path, raw, "must be a number")
	}
	return Edit{Path: path, Value: value}, nil
}

// Apply routes an edit to the matching operation.
func (m *Model) Apply(e Edit) error {
	parts := strings.Split(e.Path, ".")
	switch parts[0] {
	case "splittingCount":
		if len(parts) != 1 {
			break
		}
		if math.IsNaN(e.Value) || e.Value != math.Trunc(e.Value) {
			return invalid(e.Path, e.Value, "must be a whole number")
		}
		if e.Value < 1 || e.Value > MaxSplittingCount {
			return invalid(e.Path, e.Value, fmt.Sprintf("must be between 1 and %d", MaxSplittingCount))
		}
		return m.SetSplittingCount(int(e.Value))

	case "splittings":
		if len(parts) != 2 {
			break
		}
		index, err := strconv.Atoi(parts[1])
		if err != nil {
			break
		}
		return m.SetSplitting(index, e.Value)

	case "dailyQuantities":
		if len(parts) != 3 {
			break
		}
		index, err := strconv.Atoi(parts[1])
		if err != nil {
			break
		}
		v := e.Value
		switch parts[2] {
		case "quantity":
			return m.SetDailyQuantity(index, DailyQuantityPatch{Quantity: &v})
		case "distribution":
			return m.SetDailyQuantity(index, DailyQuantityPatch{Distribution: &v})
		}
	}
	return invalid(e.Path, e.Value, "unknown field")
}
