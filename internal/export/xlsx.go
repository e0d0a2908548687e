package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"kibble-ration/internal/format"
	"kibble-ration/internal/model"
	"kibble-ration/internal/ration"
)

// SheetName is the worksheet holding the split table.
const SheetName = "Ration"

// WriteXLSX writes the split table to an Excel workbook.
func WriteXLSX(path string, cfg model.RationConfig, d ration.Derived) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	headers := []string{"Split", "Weight"}
	for j := range cfg.DailyQuantities {
		headers = append(headers, format.FoodLabel(j))
	}
	headers = append(headers, "Total")
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(SheetName, cell, h); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#E2E8F0"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}
	if err := f.SetRowStyle(SheetName, 1, 1, headerStyle); err != nil {
		return fmt.Errorf("apply header style: %w", err)
	}

	numStyle, err := f.NewStyle(&excelize.Style{NumFmt: 2}) // 0.00
	if err != nil {
		return fmt.Errorf("create number style: %w", err)
	}

	for i, row := range d.Matrix {
		values := []any{format.SplitLabel(i), cfg.Splittings[i]}
		for _, v := range row {
			values = append(values, v)
		}
		values = append(values, d.RowTotals[i])
		if err := setRow(f, i+2, values); err != nil {
			return err
		}
	}

	totalRow := len(d.Matrix) + 2
	var grand float64
	totals := []any{"Total", cfg.TotalSplitting()}
	for _, v := range d.ColumnTotals {
		grand += v
		totals = append(totals, v)
	}
	totals = append(totals, grand)
	if err := setRow(f, totalRow, totals); err != nil {
		return err
	}

	first, _ := excelize.CoordinatesToCellName(2, 2)
	last, _ := excelize.CoordinatesToCellName(len(headers), totalRow)
	if err := f.SetCellStyle(SheetName, first, last, numStyle); err != nil {
		return fmt.Errorf("apply number style: %w", err)
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save xlsx file: %w", err)
	}
	return nil
}

func setRow(f *excelize.File, row int, values []any) error {
	cell, _ := excelize.CoordinatesToCellName(1, row)
	if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
		return fmt.Errorf("write row %d: %w", row, err)
	}
	return nil
}
