package ui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"kibble-ration/internal/format"
	"kibble-ration/internal/model"
	"kibble-ration/internal/ration"
)

// RationForm holds the GUI fields for the ration. Every edit goes through the
// model; the fields are redrawn from the snapshot the model publishes.
type RationForm struct {
	model       *ration.Model
	onSaveError func(error)

	// syncing is set while fields are refreshed from a snapshot so their
	// change callbacks do not write back to the model.
	syncing bool

	countSelect  *widget.Select
	splitEntries []*widget.Entry
	splitBox     *fyne.Container
	splitSection *fyne.Container
	foodRows     []*foodRow
	foodBox      *fyne.Container
	addBtn       *widget.Button
	warning      *widget.Label
	status       *widget.Label
	form         *fyne.Container
}

type foodRow struct {
	quantity     *widget.Entry
	distribution *widget.Entry
	remove       *widget.Button
}

// NewRationForm creates the form and fills it from the model's current state.
// onSaveError receives persistence failures; it may be nil.
func NewRationForm(m *ration.Model, onSaveError func(error)) *RationForm {
	rf := &RationForm{model: m, onSaveError: onSaveError}

	rf.countSelect = widget.NewSelect(countOptions(1), rf.onCountChanged)

	rf.splitBox = container.NewVBox()
	weightsHeader := widget.NewLabel("Feeding weights")
	weightsHeader.TextStyle = fyne.TextStyle{Bold: true}
	rf.splitSection = container.NewVBox(weightsHeader, rf.splitBox)

	rf.foodBox = container.NewVBox()
	rf.addBtn = widget.NewButtonWithIcon("Add food", theme.ContentAddIcon(), func() {
		rf.apply(rf.model.AddDefaultDailyQuantity())
	})

	rf.warning = widget.NewLabel("")
	rf.warning.Importance = widget.WarningImportance
	rf.warning.Wrapping = fyne.TextWrapWord
	rf.warning.Hide()

	rf.status = widget.NewLabel("")
	rf.status.Importance = widget.DangerImportance
	rf.status.Wrapping = fyne.TextWrapWord
	rf.status.Hide()

	foodsHeader := widget.NewLabel("Daily quantities")
	foodsHeader.TextStyle = fyne.TextStyle{Bold: true}
	columns := container.NewGridWithColumns(2,
		widget.NewLabel("Quantity (g)"),
		widget.NewLabel("Distribution (%)"),
	)

	rf.form = container.NewVBox(
		widget.NewForm(widget.NewFormItem("Feedings per day", rf.countSelect)),
		rf.splitSection,
		widget.NewSeparator(),
		foodsHeader,
		columns,
		rf.foodBox,
		rf.addBtn,
		rf.warning,
		rf.status,
	)

	cfg := m.Snapshot()
	rf.Refresh(cfg, ration.Derive(cfg))
	return rf
}

// Container returns the form's Fyne container.
func (rf *RationForm) Container() *fyne.Container {
	return rf.form
}

// Refresh redraws the form from cfg. Must run on the Fyne goroutine.
func (rf *RationForm) Refresh(cfg model.RationConfig, d ration.Derived) {
	rf.syncing = true
	defer func() { rf.syncing = false }()

	rf.countSelect.Options = countOptions(cfg.SplittingCount)
	rf.countSelect.SetSelected(strconv.Itoa(cfg.SplittingCount))

	if len(rf.splitEntries) != len(cfg.Splittings) {
		rf.rebuildSplits(len(cfg.Splittings))
	}
	for i, w := range cfg.Splittings {
		setNumber(rf.splitEntries[i], w)
	}
	if d.ShowSplittings {
		rf.splitSection.Show()
	} else {
		rf.splitSection.Hide()
	}

	if len(rf.foodRows) != len(cfg.DailyQuantities) {
		rf.rebuildFoods(len(cfg.DailyQuantities))
	}
	for i, q := range cfg.DailyQuantities {
		row := rf.foodRows[i]
		setNumber(row.quantity, q.Quantity)
		setNumber(row.distribution, q.Distribution)
		if len(cfg.DailyQuantities) > 1 {
			row.remove.Enable()
		} else {
			row.remove.Disable()
		}
	}

	if d.OverDistributed {
		rf.warning.SetText(strings.Join(format.Warnings(d), "\n"))
		rf.warning.Show()
	} else {
		rf.warning.Hide()
	}
}

func setNumber(e *widget.Entry, v float64) {
	if !sameNumber(e.Text, v) {
		e.SetText(formatNumber(v))
	}
}

func (rf *RationForm) rebuildSplits(n int) {
	rf.splitEntries = make([]*widget.Entry, n)
	items := make([]*widget.FormItem, n)
	for i := 0; i < n; i++ {
		index := i
		e := widget.NewEntry()
		e.SetPlaceHolder("weight")
		e.OnChanged = func(text string) { rf.onSplittingChanged(index, text) }
		rf.splitEntries[i] = e
		items[i] = widget.NewFormItem(format.SplitLabel(i), e)
	}
	rf.splitBox.Objects = []fyne.CanvasObject{widget.NewForm(items...)}
	rf.splitBox.Refresh()
}

func (rf *RationForm) rebuildFoods(n int) {
	rf.foodRows = make([]*foodRow, n)
	objects := make([]fyne.CanvasObject, n)
	for i := 0; i < n; i++ {
		index := i
		row := &foodRow{
			quantity:     widget.NewEntry(),
			distribution: widget.NewEntry(),
		}
		row.quantity.SetPlaceHolder("g")
		row.distribution.SetPlaceHolder("%")
		row.quantity.OnChanged = func(text string) { rf.onQuantityChanged(index, text) }
		row.distribution.OnChanged = func(text string) { rf.onDistributionChanged(index, text) }
		row.remove = widget.NewButtonWithIcon("", theme.DeleteIcon(), func() {
			rf.apply(rf.model.RemoveDailyQuantity(index))
		})
		rf.foodRows[i] = row
		objects[i] = container.NewBorder(nil, nil,
			widget.NewLabel(format.FoodLabel(i)), row.remove,
			container.NewGridWithColumns(2, row.quantity, row.distribution),
		)
	}
	rf.foodBox.Objects = objects
	rf.foodBox.Refresh()
}

func (rf *RationForm) onCountChanged(selected string) {
	if rf.syncing {
		return
	}
	n, err := parseIntInRange(selected, 1, ration.MaxSplittingCount, "Feedings per day")
	if err != nil {
		rf.showInvalid(err)
		return
	}
	rf.apply(rf.model.SetSplittingCount(n))
}

func (rf *RationForm) onSplittingChanged(index int, text string) {
	if rf.syncing {
		return
	}
	v, err := parseNumber(text, format.SplitLabel(index)+" weight")
	if err != nil {
		rf.showInvalid(err)
		return
	}
	rf.apply(rf.model.SetSplitting(index, v))
}

func (rf *RationForm) onQuantityChanged(index int, text string) {
	if rf.syncing {
		return
	}
	v, err := parseNumber(text, format.FoodLabel(index)+" quantity")
	if err != nil {
		rf.showInvalid(err)
		return
	}
	rf.apply(rf.model.SetDailyQuantity(index, ration.DailyQuantityPatch{Quantity: &v}))
}

func (rf *RationForm) onDistributionChanged(index int, text string) {
	if rf.syncing {
		return
	}
	v, err := parseNumber(text, format.FoodLabel(index)+" distribution")
	if err != nil {
		rf.showInvalid(err)
		return
	}
	rf.apply(rf.model.SetDailyQuantity(index, ration.DailyQuantityPatch{Distribution: &v}))
}

// apply reports the outcome of a model edit. A rejected edit leaves the model
// unchanged and is shown under the form.
func (rf *RationForm) apply(err error) {
	switch {
	case err == nil:
		rf.status.Hide()
	case errors.Is(err, ration.ErrPersistence):
		rf.status.Hide()
		if rf.onSaveError != nil {
			rf.onSaveError(err)
		}
	default:
		rf.showInvalid(err)
	}
}

func (rf *RationForm) showInvalid(err error) {
	rf.status.SetText(fmt.Sprintf("Not applied: %v", err))
	rf.status.Show()
}
