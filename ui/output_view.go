package ui

import (
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// OutputView lists timestamped status messages: saves, exports, errors.
type OutputView struct {
	text      *widget.Entry
	scrollBox *container.Scroll
	now       func() time.Time
}

// NewOutputView creates a new scrollable output view.
func NewOutputView() *OutputView {
	ov := &OutputView{now: time.Now}

	ov.text = widget.NewMultiLineEntry()
	ov.text.Wrapping = fyne.TextWrapWord
	ov.text.Disable() // read-only

	ov.scrollBox = container.NewVScroll(ov.text)
	ov.scrollBox.SetMinSize(NewOutputViewMinSize())

	return ov
}

// Container returns the output view's container.
func (ov *OutputView) Container() *container.Scroll {
	return ov.scrollBox
}

// AppendLine adds a message, safe to call from any goroutine.
func (ov *OutputView) AppendLine(line string) {
	stamped := ov.now().Format("15:04:05") + "  " + line
	fyne.Do(func() {
		current := ov.text.Text
		if current != "" {
			current += "\n"
		}
		ov.text.SetText(current + stamped)
		ov.scrollBox.ScrollToBottom()
	})
}

// Clear empties the output view, safe to call from any goroutine.
func (ov *OutputView) Clear() {
	fyne.Do(func() {
		ov.text.SetText("")
	})
}
