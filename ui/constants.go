package ui

import "fyne.io/fyne/v2"

// Window dimensions
const (
	WindowWidth  = 980
	WindowHeight = 640
)

// Split ratios
const (
	MainSplitRatio = 0.42 // form on the left, views on the right
)

// OutputView dimensions
const (
	OutputViewMinWidth  = 200
	OutputViewMinHeight = 100
)

// SplittingCountChoices is how many feedings the count select offers.
const SplittingCountChoices = 12

// Split table column widths
const (
	labelColumnWidth  = 90
	numberColumnWidth = 85
)

// NewWindowSize returns the default window size
func NewWindowSize() fyne.Size {
	return fyne.NewSize(WindowWidth, WindowHeight)
}

// NewOutputViewMinSize returns the minimum size for the output view
func NewOutputViewMinSize() fyne.Size {
	return fyne.NewSize(OutputViewMinWidth, OutputViewMinHeight)
}
