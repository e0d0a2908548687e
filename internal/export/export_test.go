package export

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"kibble-ration/internal/model"
	"kibble-ration/internal/ration"
)

func sampleRation() (model.RationConfig, ration.Derived) {
	cfg := model.RationConfig{
		SplittingCount: 2,
		Splittings:     []float64{1, 3},
		DailyQuantities: []model.DailyQuantity{
			{Quantity: 200, Distribution: 50},
			{Quantity: 80, Distribution: 50},
		},
	}
	return cfg, ration.Derive(cfg)
}

func TestWriteCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ration.csv")
	cfg, d := sampleRation()

	if err := WriteCSV(path, cfg, d); err != nil {
		t.Fatalf("WriteCSV() error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read file: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines (header + 2 splits + totals), got %d:\n%s", len(lines), data)
	}

	if lines[0] != "split;weight;food_1;food_2;total" {
		t.Errorf("unexpected header: %s", lines[0])
	}
	if lines[1] != "1;1.00;25.00;10.00;35.00" {
		t.Errorf("unexpected split 1 row: %s", lines[1])
	}
	if lines[2] != "2;3.00;75.00;30.00;105.00" {
		t.Errorf("unexpected split 2 row: %s", lines[2])
	}
	if lines[3] != "total;4.00;100.00;40.00;140.00" {
		t.Errorf("unexpected totals row: %s", lines[3])
	}
}

func TestWriteCSV_Overwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ration.csv")
	cfg, d := sampleRation()

	for i := 0; i < 2; i++ {
		if err := WriteCSV(path, cfg, d); err != nil {
			t.Fatalf("WriteCSV() error: %v", err)
		}
	}
	data, _ := os.ReadFile(path)
	if n := strings.Count(string(data), "split;weight"); n != 1 {
		t.Errorf("expected a single header after rewrite, got %d", n)
	}
}

func TestWriteTXT(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ration.txt")
	cfg, d := sampleRation()

	if err := WriteTXT(path, cfg, d); err != nil {
		t.Fatalf("WriteTXT() error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read file: %v", err)
	}
	content := string(data)
	if !strings.Contains(content, "=== Kibble Ration ===") {
		t.Error("missing header")
	}
	if !strings.Contains(content, "105.00") {
		t.Error("missing split 2 total")
	}
	if !strings.HasSuffix(content, "\n") {
		t.Error("file should end with a newline")
	}
}

func TestWriteXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ration.xlsx")
	cfg, d := sampleRation()

	if err := WriteXLSX(path, cfg, d); err != nil {
		t.Fatalf("WriteXLSX() error: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(SheetName)
	if err != nil {
		t.Fatalf("GetRows() error: %v", err)
	}
	if len(rows) != 4 {
		t.Fatalf("expected 4 rows, got %d", len(rows))
	}
	wantHeader := []string{"Split", "Weight", "Food 1", "Food 2", "Total"}
	for i, h := range wantHeader {
		if rows[0][i] != h {
			t.Errorf("header[%d] = %q, want %q", i, rows[0][i], h)
		}
	}
	if rows[2][0] != "Split 2" || rows[3][0] != "Total" {
		t.Errorf("unexpected row labels: %q, %q", rows[2][0], rows[3][0])
	}

	raw, err := f.GetCellValue(SheetName, "C3", excelize.Options{RawCellValue: true})
	if err != nil {
		t.Fatalf("GetCellValue() error: %v", err)
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v != 75 {
		t.Errorf("C3 = %q, want 75", raw)
	}
}

func TestWrite_DispatchesByExtension(t *testing.T) {
	dir := t.TempDir()
	cfg, d := sampleRation()

	for _, name := range []string{"a.csv", "b.TXT", "nested/c.xlsx"} {
		path := filepath.Join(dir, name)
		if err := Write(path, cfg, d); err != nil {
			t.Errorf("Write(%s) error: %v", name, err)
			continue
		}
		if _, err := os.Stat(path); err != nil {
			t.Errorf("Write(%s) did not create the file: %v", name, err)
		}
	}

	if err := Write(filepath.Join(dir, "d.pdf"), cfg, d); err == nil {
		t.Error("expected error for unsupported extension")
	}
}

func TestWrite_RefusesBrokenMatrix(t *testing.T) {
	cfg, _ := sampleRation()
	d := ration.Derived{Err: errors.New("zero weights")}
	if err := Write(filepath.Join(t.TempDir(), "x.csv"), cfg, d); err == nil {
		t.Error("expected error when the matrix is unavailable")
	}
}
