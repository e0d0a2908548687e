package ui

import (
	"fmt"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"kibble-ration/internal/format"
	"kibble-ration/internal/model"
	"kibble-ration/internal/ration"
)

// SplitTable shows the grams of each food for each feeding.
type SplitTable struct {
	mu      sync.Mutex
	cfg     model.RationConfig
	derived ration.Derived

	table     *widget.Table
	message   *widget.Label
	container *fyne.Container
	columns   int
}

// NewSplitTable creates an empty split table.
func NewSplitTable() *SplitTable {
	st := &SplitTable{}

	st.table = widget.NewTable(
		st.tableSize,
		st.createCell,
		st.updateCell,
	)

	st.message = widget.NewLabel("")
	st.message.Importance = widget.DangerImportance
	st.message.Wrapping = fyne.TextWrapWord
	st.message.Hide()

	st.container = container.NewBorder(st.message, nil, nil, nil, st.table)
	return st
}

// Container returns the table with its error line.
func (st *SplitTable) Container() *fyne.Container {
	return st.container
}

// Update replaces the displayed ration. Must run on the Fyne goroutine.
func (st *SplitTable) Update(cfg model.RationConfig, d ration.Derived) {
	st.mu.Lock()
	st.cfg = cfg
	st.derived = d
	_, cols := st.sizeLocked()
	st.mu.Unlock()

	if d.Err != nil {
		st.message.SetText(fmt.Sprintf("Split quantities unavailable: %v", d.Err))
		st.message.Show()
	} else {
		st.message.Hide()
	}

	if cols != st.columns {
		st.columns = cols
		st.table.SetColumnWidth(0, labelColumnWidth)
		for c := 1; c < cols; c++ {
			st.table.SetColumnWidth(c, numberColumnWidth)
		}
	}
	st.table.Refresh()
}

func (st *SplitTable) tableSize() (rows int, cols int) {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.sizeLocked()
}

func (st *SplitTable) sizeLocked() (rows int, cols int) {
	return splitTableSize(st.cfg, st.derived)
}

func (st *SplitTable) createCell() fyne.CanvasObject {
	return widget.NewLabel("")
}

func (st *SplitTable) updateCell(id widget.TableCellID, obj fyne.CanvasObject) {
	st.mu.Lock()
	text, header := splitCellText(st.cfg, st.derived, id.Row, id.Col)
	st.mu.Unlock()

	label := obj.(*widget.Label)
	label.TextStyle = fyne.TextStyle{Bold: header}
	if header {
		label.Alignment = fyne.TextAlignLeading
	} else {
		label.Alignment = fyne.TextAlignTrailing
	}
	label.SetText(text)
}

// splitTableSize counts a header row, one row per split and a totals row;
// columns are the split label, its weight, one per food and the row total.
func splitTableSize(cfg model.RationConfig, d ration.Derived) (rows int, cols int) {
	if d.Err != nil || d.Matrix == nil {
		return 0, 0
	}
	return len(d.Matrix) + 2, len(cfg.DailyQuantities) + 3
}

// splitCellText returns the text of one cell and whether it is a header.
func splitCellText(cfg model.RationConfig, d ration.Derived, row, col int) (string, bool) {
	rows, cols := splitTableSize(cfg, d)
	if row < 0 || col < 0 || row >= rows || col >= cols {
		return "", false
	}
	foods := len(cfg.DailyQuantities)
	last := cols - 1

	if row == 0 {
		switch {
		case col == 0:
			return "Split", true
		case col == 1:
			return "Weight", true
		case col == last:
			return "Total", true
		default:
			return format.FoodLabel(col - 2), true
		}
	}

	if row == rows-1 {
		switch {
		case col == 0:
			return "Total", true
		case col == 1:
			return format.Grams(cfg.TotalSplitting()), false
		case col == last:
			var total float64
			for _, v := range d.ColumnTotals {
				total += v
			}
			return format.Grams(total), false
		default:
			return format.Grams(d.ColumnTotals[col-2]), false
		}
	}

	i := row - 1
	switch {
	case col == 0:
		return format.SplitLabel(i), true
	case col == 1:
		return format.Grams(cfg.Splittings[i]), false
	case col == last:
		return format.Grams(d.RowTotals[i]), false
	case col-2 < foods:
		return format.Grams(d.Matrix[i][col-2]), false
	}
	return "", false
}
