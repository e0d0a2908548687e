package ui

import (
	"fmt"
	"image/color"
	"path/filepath"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"kibble-ration/internal/export"
	"kibble-ration/internal/logging"
	"kibble-ration/internal/ration"
)

var exportFormats = []string{"CSV", "TXT", "XLSX"}

// Controls manages the Reset and Export buttons.
type Controls struct {
	model     *ration.Model
	exportDir string
	logger    logging.Logger

	resetBtn     *StyledButton
	exportBtn    *widget.Button
	exportAsBtn  *widget.Button
	formatSelect *widget.Select

	outputView *OutputView
	savedFiles *SavedFilesList

	container *fyne.Container
}

// NewControls creates the control buttons wired to the given views.
func NewControls(m *ration.Model, ov *OutputView, sfl *SavedFilesList, exportDir string, logger logging.Logger) *Controls {
	c := &Controls{
		model:      m,
		exportDir:  exportDir,
		logger:     logger,
		outputView: ov,
		savedFiles: sfl,
	}

	c.resetBtn = NewStyledButton("Reset", c.onReset,
		color.NRGBA{R: 178, G: 58, B: 48, A: 255},
		color.NRGBA{R: 255, G: 255, B: 255, A: 255},
	)
	c.resetBtn.Disable()

	c.formatSelect = widget.NewSelect(exportFormats, nil)
	c.formatSelect.SetSelected(exportFormats[0])
	c.exportBtn = widget.NewButton("Export", c.onExport)
	c.exportAsBtn = widget.NewButton("Export As...", c.onExportAs)

	c.container = container.NewHBox(c.resetBtn, widget.NewSeparator(), c.formatSelect, c.exportBtn, c.exportAsBtn)
	return c
}

// Container returns the controls container.
func (c *Controls) Container() *fyne.Container {
	return c.container
}

// Update enables Reset only when the ration differs from the default, and
// Export only when there is a table to write.
func (c *Controls) Update(d ration.Derived) {
	if d.Diverged {
		c.resetBtn.Enable()
	} else {
		c.resetBtn.Disable()
	}
	if d.Err == nil {
		c.exportBtn.Enable()
		c.exportAsBtn.Enable()
	} else {
		c.exportBtn.Disable()
		c.exportAsBtn.Disable()
	}
}

func (c *Controls) onReset() {
	if err := c.model.Reset(); err != nil {
		c.outputView.AppendLine(fmt.Sprintf("Saving failed: %v", err))
		return
	}
	c.outputView.AppendLine("Ration reset to the default.")
}

func (c *Controls) extension() string {
	return "." + strings.ToLower(c.formatSelect.Selected)
}

func (c *Controls) onExport() {
	c.exportTo(export.DefaultPath(c.exportDir, c.extension(), time.Now()))
}

func (c *Controls) onExportAs() {
	win := fyne.CurrentApp().Driver().AllWindows()
	if len(win) == 0 {
		return
	}
	dialog.ShowFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		path := writer.URI().Path()
		writer.Close()

		if filepath.Ext(path) == "" {
			path += c.extension()
		}
		c.exportTo(path)
	}, win[0])
}

func (c *Controls) exportTo(path string) {
	cfg := c.model.Snapshot()
	if err := export.Write(path, cfg, ration.Derive(cfg)); err != nil {
		c.logger.Error("export failed", "path", path, "error", err)
		c.outputView.AppendLine(fmt.Sprintf("Export error: %v", err))
		return
	}
	c.logger.Info("ration exported", "path", path)
	c.outputView.AppendLine(fmt.Sprintf("Exported %d feedings to %s", cfg.SplittingCount, path))
	c.savedFiles.Refresh()
}
