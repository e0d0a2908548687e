package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"kibble-ration/internal/model"
	"kibble-ration/internal/ration"
)

// WriteCSV writes the split table to a semicolon-separated file, replacing
// any previous content. The last row holds the per-food totals.
func WriteCSV(path string, cfg model.RationConfig, d ration.Derived) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("open csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	w.Comma = ';'

	if err := w.Write(header(len(cfg.DailyQuantities))); err != nil {
		return fmt.Errorf("write csv headers: %w", err)
	}

	for i, row := range d.Matrix {
		rec := []string{strconv.Itoa(i + 1), number(cfg.Splittings[i])}
		for _, v := range row {
			rec = append(rec, number(v))
		}
		rec = append(rec, number(d.RowTotals[i]))
		if err := w.Write(rec); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}

	totals := []string{"total", number(cfg.TotalSplitting())}
	var grand float64
	for _, v := range d.ColumnTotals {
		grand += v
		totals = append(totals, number(v))
	}
	totals = append(totals, number(grand))
	if err := w.Write(totals); err != nil {
		return fmt.Errorf("write csv totals: %w", err)
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

func number(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
