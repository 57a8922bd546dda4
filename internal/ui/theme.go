package ui

import (
	"github.com/gdamore/tcell/v2"
)

// Theme defines the color scheme for the browser.
var Theme = struct {
	Primary tcell.Color
	Success tcell.Color
	Warning tcell.Color

	Text    tcell.Color
	TextDim tcell.Color

	Background tcell.Color
	Border     tcell.Color
	Header     tcell.Color
	Selection  tcell.Color
}{
	Primary: tcell.ColorBlue,
	Success: tcell.ColorGreen,
	Warning: tcell.ColorYellow,

	Text:    tcell.ColorWhite,
	TextDim: tcell.ColorGray,

	Background: tcell.ColorBlack,
	Border:     tcell.ColorGray,
	Header:     tcell.ColorYellow,
	Selection:  tcell.ColorTeal,
}

// tview color tags.
const (
	TagEnd      = "[-:-]"
	TagSelected = "[black:white]"
	TagKeyword  = "[fuchsia::b]"
	TagLiteral  = "[yellow]"
	TagReset    = "[-::-]"
)

// Tab identifiers
const (
	TabTables = "tables"
	TabScript = "script"
)

// Keyboard hints
const (
	HintsTables = "q quit  1/2 tabs  Tab panels  j/k navigate"
	HintsScript = "q quit  1/2 tabs  j/k scroll"
)
