package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Table provides aligned column output.
type Table struct {
	headers []string
	rows    [][]string
	widths  []int
}

// NewTable creates a new table with the given headers.
func NewTable(headers ...string) *Table {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	return &Table{
		headers: headers,
		widths:  widths,
	}
}

// AddRow adds a row. Missing cells are blank; extra cells are dropped.
func (t *Table) AddRow(cells ...string) {
	row := make([]string, len(t.headers))
	copy(row, cells)
	for i, cell := range row {
		if w := lipgloss.Width(cell); w > t.widths[i] {
			t.widths[i] = w
		}
	}
	t.rows = append(t.rows, row)
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// String renders the table.
func (t *Table) String() string {
	if len(t.headers) == 0 {
		return ""
	}

	var b strings.Builder

	for i, h := range t.headers {
		if i > 0 {
			b.WriteString("  ")
		}
		if i == len(t.headers)-1 {
			b.WriteString(Header(h))
			continue
		}
		b.WriteString(Header(padRight(h, t.widths[i])))
	}
	b.WriteString("\n")

	for i, w := range t.widths {
		if i > 0 {
			b.WriteString("  ")
		}
		b.WriteString(Dim(strings.Repeat("─", w)))
	}
	b.WriteString("\n")

	for _, row := range t.rows {
		for i, cell := range row {
			if i > 0 {
				b.WriteString("  ")
			}
			if i == len(row)-1 {
				b.WriteString(cell)
				continue
			}
			b.WriteString(padRight(cell, t.widths[i]))
		}
		b.WriteString("\n")
	}

	return b.String()
}

// padRight pads to a display width, ignoring ANSI sequences.
func padRight(s string, width int) string {
	w := lipgloss.Width(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}

// List provides bulleted output.
type List struct {
	items []listItem
}

type listItem struct {
	marker  string
	content string
}

// NewList creates a new list.
func NewList() *List {
	return &List{}
}

// Add adds a plain item.
func (l *List) Add(content string) {
	l.items = append(l.items, listItem{"•", content})
}

// AddSuccess adds an item marked as passing.
func (l *List) AddSuccess(content string) {
	l.items = append(l.items, listItem{Success("✓"), content})
}

// AddError adds an item marked as failing.
func (l *List) AddError(content string) {
	l.items = append(l.items, listItem{Error("✗"), content})
}

// AddWarning adds an item marked as changed.
func (l *List) AddWarning(content string) {
	l.items = append(l.items, listItem{Warning("~"), content})
}

// String renders the list indented by two spaces.
func (l *List) String() string {
	var b strings.Builder
	for _, item := range l.items {
		b.WriteString("  ")
		b.WriteString(item.marker)
		b.WriteString(" ")
		b.WriteString(item.content)
		b.WriteString("\n")
	}
	return b.String()
}

// panelStyle frames Panel output in TTY mode.
var panelStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("12")).
	Padding(0, 1)

// Panel renders content under a title. In TTY mode the content is framed.
func Panel(title, content string) string {
	content = strings.TrimRight(content, "\n")
	if !EnableColors() {
		return Section(title, content+"\n")
	}
	return Header(title) + "\n" + panelStyle.Render(content) + "\n"
}

// Section renders a header, an underline and content.
func Section(title string, content string) string {
	var b strings.Builder
	b.WriteString(Header(title))
	b.WriteString("\n")
	b.WriteString(strings.Repeat("─", lipgloss.Width(title)))
	b.WriteString("\n")
	b.WriteString(content)
	return b.String()
}

// FormatKeyValue formats a key-value pair.
func FormatKeyValue(key, value string) string {
	return fmt.Sprintf("%s: %s", Dim(key), value)
}

// FormatCount formats a count with singular/plural form.
func FormatCount(count int, singular, plural string) string {
	if count == 1 {
		return fmt.Sprintf("%d %s", count, singular)
	}
	return fmt.Sprintf("%d %s", count, plural)
}

// WriteJSON writes v as indented JSON followed by a newline.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
