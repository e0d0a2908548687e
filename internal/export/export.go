package export

import (
	"fmt"
	"path/filepath"
	"strings"

	"kibble-ration/internal/model"
	"kibble-ration/internal/ration"
)

// Supported export extensions.
const (
	ExtCSV  = ".csv"
	ExtTXT  = ".txt"
	ExtXLSX = ".xlsx"
)

// Write exports the split table to path, choosing the format from the file
// extension. The parent directory is created when missing.
func Write(path string, cfg model.RationConfig, d ration.Derived) error {
	if d.Err != nil {
		return fmt.Errorf("nothing to export: %w", d.Err)
	}
	if err := EnsureDir(path); err != nil {
		return fmt.Errorf("create export dir: %w", err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ExtCSV:
		return WriteCSV(path, cfg, d)
	case ExtTXT:
		return WriteTXT(path, cfg, d)
	case ExtXLSX:
		return WriteXLSX(path, cfg, d)
	}
	return fmt.Errorf("unsupported export format %q (use .csv, .txt or .xlsx)", filepath.Ext(path))
}

// header returns split, weight, one column per food, total.
func header(foods int) []string {
	h := []string{"split", "weight"}
	for j := 0; j < foods; j++ {
		h = append(h, fmt.Sprintf("food_%d", j+1))
	}
	return append(h, "total")
}
