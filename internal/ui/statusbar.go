package ui

import (
	"github.com/rivo/tview"
)

// StatusBar is a one-line bar with keyboard hints.
type StatusBar struct {
	*tview.TextView
}

// NewStatusBar creates a status bar showing hints.
func NewStatusBar(hints string) *StatusBar {
	bar := &StatusBar{
		TextView: tview.NewTextView(),
	}

	bar.SetText(" " + hints + " ").
		SetTextColor(Theme.TextDim).
		SetTextAlign(tview.AlignCenter).
		SetBackgroundColor(Theme.Background)

	return bar
}

// SetHints updates the hints text.
func (s *StatusBar) SetHints(hints string) *StatusBar {
	s.SetText(" " + hints + " ")
	return s
}

// HeaderBar is a one-line title bar.
type HeaderBar struct {
	*tview.TextView
}

// NewHeaderBar creates a header bar.
func NewHeaderBar(title string) *HeaderBar {
	h := &HeaderBar{
		TextView: tview.NewTextView(),
	}

	h.SetText(" " + title + " ").
		SetTextColor(Theme.Text).
		SetTextAlign(tview.AlignLeft).
		SetBackgroundColor(Theme.Primary)

	return h
}
