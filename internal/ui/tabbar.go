package ui

import (
	"fmt"
	"strings"

	"github.com/rivo/tview"
)

// TabBar renders numbered tabs with the active one inverted.
type TabBar struct {
	*tview.TextView
	tabs        []string
	activeIndex int
}

// NewTabBar creates a tab bar. Labels are numbered: ["Tables"] -> "1 Tables".
func NewTabBar(names []string, activeIndex int) *TabBar {
	tabs := make([]string, len(names))
	for i, name := range names {
		tabs[i] = fmt.Sprintf("%d %s", i+1, name)
	}

	bar := &TabBar{
		TextView:    tview.NewTextView(),
		tabs:        tabs,
		activeIndex: activeIndex,
	}

	bar.SetDynamicColors(true).
		SetTextAlign(tview.AlignLeft).
		SetBackgroundColor(Theme.Background)

	bar.render()
	return bar
}

// SetActiveTab sets the active tab by index. Out-of-range indexes are ignored.
func (t *TabBar) SetActiveTab(index int) *TabBar {
	if index >= 0 && index < len(t.tabs) {
		t.activeIndex = index
		t.render()
	}
	return t
}

// ActiveIndex returns the current active tab index.
func (t *TabBar) ActiveIndex() int {
	return t.activeIndex
}

func (t *TabBar) render() {
	var text strings.Builder
	text.WriteString(" ")

	for i, tab := range t.tabs {
		if i == t.activeIndex {
			text.WriteString(TagSelected + " " + tab + " " + TagEnd + " ")
		} else {
			text.WriteString(" " + tab + "  ")
		}
	}

	t.Clear()
	t.SetText(text.String())
}
