package ui

import (
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"kibble-ration/internal/export"
	"kibble-ration/internal/logging"
)

// ExportFile is one ration export found on disk.
type ExportFile struct {
	Name     string // relative to the export directory
	Path     string
	Format   string // CSV, TXT or XLSX
	Size     int64
	Modified time.Time
}

// SavedFilesList lists the ration exports in the export directory. Picking
// one opens it with the system viewer.
type SavedFilesList struct {
	mu      sync.Mutex
	dir     string
	exports []ExportFile
	logger  logging.Logger

	header    *widget.Label
	list      *widget.List
	container *fyne.Container
}

// NewSavedFilesList creates the list and scans dir once.
func NewSavedFilesList(dir string, logger logging.Logger) *SavedFilesList {
	sfl := &SavedFilesList{dir: dir, logger: logger}

	sfl.list = widget.NewList(sfl.length, func() fyne.CanvasObject {
		return widget.NewLabel("")
	}, sfl.updateItem)
	sfl.list.OnSelected = sfl.onSelected

	sfl.header = widget.NewLabel("")
	sfl.header.TextStyle = fyne.TextStyle{Bold: true}

	sfl.container = container.NewBorder(
		container.NewVBox(sfl.header, widget.NewSeparator()),
		nil, nil, nil,
		sfl.list,
	)

	sfl.Refresh()
	return sfl
}

// Container returns the list with its header.
func (sfl *SavedFilesList) Container() *fyne.Container {
	return sfl.container
}

// Refresh rescans the export directory. A missing directory means no exports
// have been written yet.
func (sfl *SavedFilesList) Refresh() {
	exports, err := scanExports(sfl.dir)
	if err != nil && !os.IsNotExist(err) {
		sfl.logger.Warn("scanning exports failed", "dir", sfl.dir, "error", err)
		return
	}

	sfl.mu.Lock()
	sfl.exports = exports
	sfl.mu.Unlock()

	sfl.header.SetText(fmt.Sprintf("Saved Exports (%d) in %s", len(exports), sfl.dir))
	sfl.list.Refresh()
}

func (sfl *SavedFilesList) length() int {
	sfl.mu.Lock()
	defer sfl.mu.Unlock()
	return len(sfl.exports)
}

func (sfl *SavedFilesList) updateItem(id widget.ListItemID, obj fyne.CanvasObject) {
	sfl.mu.Lock()
	defer sfl.mu.Unlock()
	if id >= len(sfl.exports) {
		return
	}
	obj.(*widget.Label).SetText(exportLabel(sfl.exports[id], time.Now()))
}

func (sfl *SavedFilesList) onSelected(id widget.ListItemID) {
	sfl.mu.Lock()
	if id >= len(sfl.exports) {
		sfl.mu.Unlock()
		return
	}
	path := sfl.exports[id].Path
	sfl.mu.Unlock()

	go sfl.open(path)
	sfl.list.UnselectAll()
}

func (sfl *SavedFilesList) open(path string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", path)
	case "linux":
		cmd = exec.Command("xdg-open", path)
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", path)
	default:
		sfl.logger.Warn("opening exports is not supported", "os", runtime.GOOS)
		return
	}
	if err := cmd.Start(); err != nil {
		sfl.logger.Error("opening export failed", "path", path, "error", err)
	}
}

// scanExports walks dir for CSV, TXT and XLSX files, newest first.
// Unreadable entries are skipped.
func scanExports(dir string) ([]ExportFile, error) {
	var exports []ExportFile
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		format, ok := exportFormat(path)
		if !ok {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		name, err := filepath.Rel(dir, path)
		if err != nil {
			name = path
		}
		exports = append(exports, ExportFile{
			Name:     name,
			Path:     path,
			Format:   format,
			Size:     info.Size(),
			Modified: info.ModTime(),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(exports, func(i, j int) bool {
		return exports[i].Modified.After(exports[j].Modified)
	})
	return exports, nil
}

// exportFormat names the export format of path, if it is one.
func exportFormat(path string) (string, bool) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case export.ExtCSV, export.ExtTXT, export.ExtXLSX:
		return strings.ToUpper(strings.TrimPrefix(ext, ".")), true
	}
	return "", false
}

// exportLabel renders one list row. Exports from today show the time,
// older ones the date.
func exportLabel(e ExportFile, now time.Time) string {
	when := e.Modified.Format("2006-01-02")
	if e.Modified.Year() == now.Year() && e.Modified.YearDay() == now.YearDay() {
		when = e.Modified.Format("15:04:05")
	}

	size := fmt.Sprintf("%d B", e.Size)
	if e.Size >= 1024 {
		size = fmt.Sprintf("%.1f KB", float64(e.Size)/1024)
	}

	return fmt.Sprintf("[%s] %s  (%s, %s)", e.Format, e.Name, size, when)
}
