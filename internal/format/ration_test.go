package format

import (
	"errors"
	"strings"
	"testing"

	"kibble-ration/internal/model"
	"kibble-ration/internal/ration"
)

func threeSplits() model.RationConfig {
	return model.RationConfig{
		SplittingCount: 3,
		Splittings:     []float64{1, 2, 1},
		DailyQuantities: []model.DailyQuantity{
			{Quantity: 200, Distribution: 60},
			{Quantity: 100, Distribution: 40},
		},
	}
}

func TestFormatMatrix(t *testing.T) {
	cfg := threeSplits()
	out := FormatMatrix(cfg, ration.Derive(cfg))

	if !strings.Contains(out, "=== Kibble Ration ===") {
		t.Error("missing header")
	}
	if !strings.Contains(out, "Feedings:        3") {
		t.Error("missing feeding count")
	}
	if !strings.Contains(out, FormatMatrixHeader(2)) {
		t.Errorf("missing table header:\n%s", out)
	}
	// 200 g * 60 % * 2/4 = 60 g
	if !strings.Contains(out, "60.00") {
		t.Errorf("missing split 2 quantity:\n%s", out)
	}
	// 120 + 40 = 160 g served in total
	if !strings.Contains(out, "160.00") {
		t.Errorf("missing grand total:\n%s", out)
	}
	if strings.Contains(out, "WARNING") {
		t.Error("unexpected warning for a 100 % distribution")
	}
}

func TestFormatMatrix_OverDistributed(t *testing.T) {
	cfg := threeSplits()
	cfg.DailyQuantities[1].Distribution = 50
	out := FormatMatrix(cfg, ration.Derive(cfg))

	if !strings.Contains(out, "WARNING: distributions add up to 110.00 %") {
		t.Errorf("missing over-distribution warning:\n%s", out)
	}
}

func TestFormatMatrix_Error(t *testing.T) {
	cfg := model.DefaultRation()
	d := ration.Derived{TotalDistribution: 100, Err: errors.New("broken weights")}
	out := FormatMatrix(cfg, d)

	if !strings.Contains(out, "Error: broken weights") {
		t.Errorf("missing error line:\n%s", out)
	}
	if strings.Contains(out, "Split Quantities") {
		t.Error("table should be skipped on error")
	}
}

func TestWarnings(t *testing.T) {
	if w := Warnings(ration.Derived{}); len(w) != 0 {
		t.Errorf("Warnings() = %v, want none", w)
	}
	w := Warnings(ration.Derived{OverDistributed: true, TotalDistribution: 120, Err: errors.New("x")})
	if len(w) != 2 {
		t.Fatalf("Warnings() returned %d lines, want 2", len(w))
	}
}

func TestFormatSnapshot(t *testing.T) {
	out := FormatSnapshot(model.DefaultRation())
	for _, want := range []string{`"splittingCount": 1`, `"quantity": 100`, `"distribution": 100`} {
		if !strings.Contains(out, want) {
			t.Errorf("snapshot missing %s:\n%s", want, out)
		}
	}
}
