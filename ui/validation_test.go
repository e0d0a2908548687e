package ui

import "testing"

func TestParseNumber(t *testing.T) {
	tests := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{"12", 12, false},
		{" 12.5 ", 12.5, false},
		{"12,5", 12.5, false},
		{"0", 0, false},
		{"-3", -3, false},
		{"", 0, true},
		{"abc", 0, true},
		{"NaN", 0, true},
		{"Inf", 0, true},
	}

	for _, tt := range tests {
		got, err := parseNumber(tt.in, "quantity")
		if (err != nil) != tt.wantErr {
			t.Errorf("parseNumber(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("parseNumber(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseIntInRange(t *testing.T) {
	if v, err := parseIntInRange("3", 1, 12, "count"); err != nil || v != 3 {
		t.Errorf("parseIntInRange(3) = %d, %v", v, err)
	}
	if _, err := parseIntInRange("13", 1, 12, "count"); err == nil {
		t.Error("parseIntInRange(13) should be out of range")
	}
	if _, err := parseIntInRange("", 1, 12, "count"); err == nil {
		t.Error("parseIntInRange(\"\") should fail")
	}
}

func TestSameNumber(t *testing.T) {
	if !sameNumber("1.50", 1.5) {
		t.Error("sameNumber(1.50, 1.5) = false, want true")
	}
	if sameNumber("1.", 2) {
		t.Error("sameNumber(1., 2) = true, want false")
	}
	if sameNumber("", 0) {
		t.Error("sameNumber(\"\", 0) = true, want false")
	}
}

func TestCountOptions(t *testing.T) {
	if got := countOptions(3); len(got) != SplittingCountChoices || got[0] != "1" {
		t.Errorf("countOptions(3) = %v", got)
	}
	if got := countOptions(20); len(got) != 20 || got[19] != "20" {
		t.Errorf("countOptions(20) = %v", got)
	}
}

func TestFormatNumber(t *testing.T) {
	if got := formatNumber(100); got != "100" {
		t.Errorf("formatNumber(100) = %q", got)
	}
	if got := formatNumber(0.25); got != "0.25" {
		t.Errorf("formatNumber(0.25) = %q", got)
	}
}
