package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

var (
	disabledFill = color.NRGBA{R: 60, G: 60, B: 60, A: 255}
	disabledText = color.NRGBA{R: 100, G: 100, B: 100, A: 255}
)

// StyledButton is a button with its own fill and text colors. It is used
// for Reset, which should stand out from the other controls while enabled.
type StyledButton struct {
	widget.Button
	fill color.Color
	text color.Color
}

// NewStyledButton creates a button with custom colors.
func NewStyledButton(label string, tapped func(), fill, text color.Color) *StyledButton {
	btn := &StyledButton{fill: fill, text: text}
	btn.Text = label
	btn.OnTapped = tapped
	btn.ExtendBaseWidget(btn)
	return btn
}

// CreateRenderer returns a custom renderer.
func (b *StyledButton) CreateRenderer() fyne.WidgetRenderer {
	b.ExtendBaseWidget(b)

	bg := canvas.NewRectangle(b.fill)
	bg.CornerRadius = theme.InputRadiusSize()

	label := canvas.NewText(b.Text, b.text)
	label.Alignment = fyne.TextAlignCenter
	label.TextStyle = fyne.TextStyle{Bold: true}

	r := &styledBtnRenderer{btn: b, bg: bg, label: label}
	r.Refresh()
	return r
}

type styledBtnRenderer struct {
	btn   *StyledButton
	bg    *canvas.Rectangle
	label *canvas.Text
}

func (r *styledBtnRenderer) Layout(size fyne.Size) {
	r.bg.Resize(size)
	labelMin := r.label.MinSize()
	r.label.Move(fyne.NewPos(
		(size.Width-labelMin.Width)/2,
		(size.Height-labelMin.Height)/2,
	))
	r.label.Resize(labelMin)
}

func (r *styledBtnRenderer) MinSize() fyne.Size {
	labelMin := r.label.MinSize()
	pad := theme.InnerPadding()
	return fyne.NewSize(labelMin.Width+pad*4, labelMin.Height+pad*2)
}

func (r *styledBtnRenderer) Refresh() {
	r.label.Text = r.btn.Text
	if r.btn.Disabled() {
		r.bg.FillColor = disabledFill
		r.label.Color = disabledText
	} else {
		r.bg.FillColor = r.btn.fill
		r.label.Color = r.btn.text
	}
	r.bg.Refresh()
	r.label.Refresh()
}

func (r *styledBtnRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.bg, r.label}
}

func (r *styledBtnRenderer) Destroy() {}
