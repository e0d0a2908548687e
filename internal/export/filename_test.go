package export

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

var testDate = time.Date(2026, 2, 18, 14, 32, 7, 0, time.UTC)

func TestDateSuffix(t *testing.T) {
	got := DateSuffix(testDate)
	want := "18.02.2026"
	if got != want {
		t.Errorf("DateSuffix() = %q, want %q", got, want)
	}
}

func TestBuildPath_Simple(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "ration")
	got := BuildPath(base, "", ".csv", testDate)
	want := filepath.Join(dir, "ration_18.02.2026.csv")
	if got != want {
		t.Errorf("BuildPath() = %q, want %q", got, want)
	}
}

func TestBuildPath_WithSuffix(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "ration")
	got := BuildPath(base, "_matrix", ".xlsx", testDate)
	want := filepath.Join(dir, "ration_matrix_18.02.2026.xlsx")
	if got != want {
		t.Errorf("BuildPath(_matrix) = %q, want %q", got, want)
	}
}

func TestDefaultPath(t *testing.T) {
	got := DefaultPath("results", ".txt", testDate)
	want := filepath.Join("results", "ration_18.02.2026.txt")
	if got != want {
		t.Errorf("DefaultPath() = %q, want %q", got, want)
	}
}

func TestEnsureDir(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sub", "dir", "file.csv")
	if err := EnsureDir(path); err != nil {
		t.Fatalf("EnsureDir() error: %v", err)
	}
	info, err := os.Stat(filepath.Join(dir, "sub", "dir"))
	if err != nil {
		t.Fatalf("directory not created: %v", err)
	}
	if !info.IsDir() {
		t.Error("expected a directory")
	}
}

func TestEnsureDir_ExistingDir(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "file.csv")
	// dir already exists, EnsureDir should be a no-op
	if err := EnsureDir(path); err != nil {
		t.Fatalf("EnsureDir() on existing dir error: %v", err)
	}
}
