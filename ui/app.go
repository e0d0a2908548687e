package ui

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"

	"kibble-ration/internal/format"
	"kibble-ration/internal/logging"
	"kibble-ration/internal/model"
	"kibble-ration/internal/ration"
)

// Options configures the main window.
type Options struct {
	ExportDir string
	Logger    logging.Logger
}

// BuildMainWindow creates the main window around m. The views follow every
// change the model publishes until the window closes.
func BuildMainWindow(app fyne.App, m *ration.Model, opts Options) fyne.Window {
	if opts.Logger == nil {
		opts.Logger = logging.NewNop()
	}

	win := app.NewWindow("Kibble Ration")
	win.Resize(NewWindowSize())

	outputView := NewOutputView()
	rationForm := NewRationForm(m, func(err error) {
		outputView.AppendLine(fmt.Sprintf("Saving failed: %v", err))
	})
	splitTable := NewSplitTable()
	snapshot := newSnapshotView()
	savedFiles := NewSavedFilesList(opts.ExportDir, opts.Logger)
	controls := NewControls(m, outputView, savedFiles, opts.ExportDir, opts.Logger)

	refresh := func(cfg model.RationConfig, d ration.Derived) {
		rationForm.Refresh(cfg, d)
		splitTable.Update(cfg, d)
		snapshot.SetText(format.FormatSnapshot(cfg))
		controls.Update(d)
	}

	cfg := m.Snapshot()
	refresh(cfg, ration.Derive(cfg))

	// Redraws read the latest snapshot, not the one that was published.
	cancel := m.Subscribe(func(model.RationConfig, ration.Derived) {
		fyne.Do(func() {
			cfg := m.Snapshot()
			refresh(cfg, ration.Derive(cfg))
		})
	})

	if err := m.LoadErr(); err != nil {
		outputView.AppendLine(fmt.Sprintf("Stored ration not restored, using the default: %v", err))
	}

	leftPanel := container.NewBorder(nil, controls.Container(), nil, nil,
		container.NewVScroll(rationForm.Container()),
	)

	tabs := container.NewAppTabs(
		container.NewTabItem("Split Table", splitTable.Container()),
		container.NewTabItem("Snapshot", snapshot),
		container.NewTabItem("Output", outputView.Container()),
		container.NewTabItem("Exports", savedFiles.Container()),
	)

	content := container.NewHSplit(leftPanel, tabs)
	content.SetOffset(MainSplitRatio)

	win.SetContent(content)

	win.SetCloseIntercept(func() {
		cancel()
		win.Close()
	})

	return win
}
