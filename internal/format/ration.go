package format

import (
	"encoding/json"
	"fmt"
	"strings"

	"kibble-ration/internal/model"
	"kibble-ration/internal/ration"
)

// Grams formats a computed quantity for display.
func Grams(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

// FoodLabel returns the column title of the food at index i.
func FoodLabel(i int) string {
	return fmt.Sprintf("Food %d", i+1)
}

// SplitLabel returns the row title of the split at index i.
func SplitLabel(i int) string {
	return fmt.Sprintf("Split %d", i+1)
}

// Warnings returns the user-facing warnings for d.
func Warnings(d ration.Derived) []string {
	var out []string
	if d.OverDistributed {
		out = append(out, fmt.Sprintf("WARNING: distributions add up to %.2f %% (more than 100 %%)", d.TotalDistribution))
	}
	if d.Err != nil {
		out = append(out, fmt.Sprintf("ERROR: split quantities unavailable: %v", d.Err))
	}
	return out
}

// FormatMatrixHeader returns the header line of the split table.
func FormatMatrixHeader(foods int) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%-10s %8s", "Split", "Weight"))
	for j := 0; j < foods; j++ {
		b.WriteString(fmt.Sprintf(" %10s", FoodLabel(j)))
	}
	b.WriteString(fmt.Sprintf(" %10s", "Total"))
	return b.String()
}

// FormatMatrix produces a human-readable table of the split quantities.
func FormatMatrix(cfg model.RationConfig, d ration.Derived) string {
	var b strings.Builder

	b.WriteString("=== Kibble Ration ===\n")
	b.WriteString(fmt.Sprintf("Feedings:        %d\n", cfg.SplittingCount))
	b.WriteString(fmt.Sprintf("Foods:           %d\n", len(cfg.DailyQuantities)))
	for j, q := range cfg.DailyQuantities {
		b.WriteString(fmt.Sprintf("  %-14s %s g at %.2f %%\n", FoodLabel(j)+":", Grams(q.Quantity), q.Distribution))
	}
	b.WriteString(fmt.Sprintf("Distribution:    %.2f %%\n", d.TotalDistribution))

	if d.Err != nil {
		b.WriteString(fmt.Sprintf("\nError: %v\n", d.Err))
		b.WriteString("====================")
		return b.String()
	}

	b.WriteString("\n--- Split Quantities (g) ---\n")
	b.WriteString(FormatMatrixHeader(len(cfg.DailyQuantities)))
	b.WriteString("\n")
	for i, row := range d.Matrix {
		b.WriteString(fmt.Sprintf("%-10s %8.2f", SplitLabel(i), cfg.Splittings[i]))
		for _, v := range row {
			b.WriteString(fmt.Sprintf(" %10s", Grams(v)))
		}
		b.WriteString(fmt.Sprintf(" %10s\n", Grams(d.RowTotals[i])))
	}

	var total float64
	b.WriteString(fmt.Sprintf("%-10s %8s", "Total", ""))
	for _, v := range d.ColumnTotals {
		total += v
		b.WriteString(fmt.Sprintf(" %10s", Grams(v)))
	}
	b.WriteString(fmt.Sprintf(" %10s\n", Grams(total)))

	for _, w := range Warnings(d) {
		b.WriteString(w)
		b.WriteString("\n")
	}

	b.WriteString("====================")
	return b.String()
}

// FormatSnapshot renders cfg as indented JSON, the same shape that is persisted.
func FormatSnapshot(cfg model.RationConfig) string {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Sprintf("<unprintable: %v>", err)
	}
	return string(data)
}
