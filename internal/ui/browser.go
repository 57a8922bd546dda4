// Package ui provides the interactive schema browser.
package ui

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/devinci-it/hssql/internal/cli"
	"github.com/devinci-it/hssql/pkg/ddl"
)

// Browser is a two-tab terminal view of a database: its tables (columns and
// CREATE TABLE preview) and its script log.
type Browser struct {
	db     *ddl.Database
	script []string
	app    *tview.Application

	root    *tview.Flex
	pages   *tview.Pages
	tabBar  *TabBar
	status  *StatusBar
	tables  *tview.List
	columns *tview.Table
	preview *tview.TextView
	log     *tview.TextView

	panels   []tview.Primitive
	panelIdx int
	tab      string
}

// NewBrowser builds the browser widgets for db. script is shown on the
// script tab; pass the stored history or db.Script().
func NewBrowser(db *ddl.Database, script []string) *Browser {
	b := &Browser{db: db, script: script}

	b.tables = tview.NewList().
		ShowSecondaryText(true).
		SetHighlightFullLine(true).
		SetSelectedBackgroundColor(Theme.Selection)
	b.tables.SetBorder(true).SetTitle(" Tables ").SetBorderColor(Theme.Border)

	b.columns = tview.NewTable().
		SetBorders(false).
		SetSelectable(true, false).
		SetFixed(1, 0)
	b.columns.SetBorder(true).SetTitle(" Columns ").SetBorderColor(Theme.Border)

	b.preview = tview.NewTextView().SetDynamicColors(true)
	b.preview.SetBorder(true).SetTitle(" DDL ").SetBorderColor(Theme.Border)

	b.log = tview.NewTextView().SetDynamicColors(true).SetScrollable(true)
	b.log.SetBorder(true).SetTitle(" Script ").SetBorderColor(Theme.Border)

	for _, t := range db.Tables() {
		b.tables.AddItem(t.Name(), describeTable(t), 0, nil)
	}
	b.tables.SetChangedFunc(func(index int, _, _ string, _ rune) {
		b.SelectTable(index)
	})
	b.log.SetText(renderScript(script))

	right := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(b.columns, 0, 1, false).
		AddItem(b.preview, 0, 1, false)
	tablesView := tview.NewFlex().
		AddItem(b.tables, 0, 1, true).
		AddItem(right, 0, 3, false)

	b.pages = tview.NewPages().
		AddPage(TabTables, tablesView, true, true).
		AddPage(TabScript, b.log, true, false)

	header := NewHeaderBar(fmt.Sprintf("%s  %s  %s / %s",
		db.Name(), db.Schema(), db.Charset(), db.Collation()))
	b.tabBar = NewTabBar([]string{"Tables", "Script"}, 0)
	b.status = NewStatusBar(HintsTables)

	b.root = tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(header, 1, 0, false).
		AddItem(b.tabBar, 1, 0, false).
		AddItem(b.pages, 0, 1, true).
		AddItem(b.status, 1, 0, false)

	b.panels = []tview.Primitive{b.tables, b.columns, b.preview}
	b.tab = TabTables
	b.SelectTable(0)
	return b
}

// Root returns the top-level primitive.
func (b *Browser) Root() tview.Primitive {
	return b.root
}

// Run starts the terminal application and blocks until the user quits.
func (b *Browser) Run() error {
	b.app = tview.NewApplication()
	b.app.SetInputCapture(b.HandleKey)
	return b.app.SetRoot(b.root, true).SetFocus(b.tables).Run()
}

// SelectTable fills the columns grid and DDL preview for the table at index.
// An out-of-range index clears both.
func (b *Browser) SelectTable(index int) {
	b.columns.Clear()
	b.preview.Clear()

	headers := []string{"NAME", "TYPE", "CONSTRAINTS"}
	for c, h := range headers {
		b.columns.SetCell(0, c, tview.NewTableCell(h).
			SetTextColor(Theme.Header).
			SetAttributes(tcell.AttrBold).
			SetSelectable(false))
	}

	tables := b.db.Tables()
	if index < 0 || index >= len(tables) {
		return
	}
	t := tables[index]

	for r, col := range t.Columns() {
		b.columns.SetCell(r+1, 0, tview.NewTableCell(col.Name()).SetAttributes(tcell.AttrBold))
		b.columns.SetCell(r+1, 1, tview.NewTableCell(col.DataType()))
		b.columns.SetCell(r+1, 2, tview.NewTableCell(strings.Join(col.Constraints(), " ")))
	}

	// Table-level constraints follow the columns, dimmed.
	row := len(t.Columns()) + 1
	for _, c := range t.Constraints() {
		b.columns.SetCell(row, 0, tview.NewTableCell("(table)").SetTextColor(Theme.TextDim))
		b.columns.SetCell(row, 1, tview.NewTableCell(""))
		b.columns.SetCell(row, 2, tview.NewTableCell(c).SetTextColor(Theme.TextDim))
		row++
	}

	b.preview.SetText(highlight(t.GenerateCreateTable()))
}

// ShowTab switches to TabTables or TabScript. Unknown names are ignored.
func (b *Browser) ShowTab(name string) {
	switch name {
	case TabTables:
		b.tabBar.SetActiveTab(0)
		b.status.SetHints(HintsTables)
	case TabScript:
		b.tabBar.SetActiveTab(1)
		b.status.SetHints(HintsScript)
	default:
		return
	}
	b.tab = name
	b.pages.SwitchToPage(name)
	if b.app != nil {
		if name == TabScript {
			b.app.SetFocus(b.log)
		} else {
			b.app.SetFocus(b.panels[b.panelIdx])
		}
	}
}

// CurrentTab returns the visible tab name.
func (b *Browser) CurrentTab() string {
	return b.tab
}

// HandleKey processes global keys. Consumed events return nil.
func (b *Browser) HandleKey(event *tcell.EventKey) *tcell.EventKey {
	switch event.Key() {
	case tcell.KeyEscape:
		b.stop()
		return nil
	case tcell.KeyTab:
		if b.tab == TabTables {
			b.panelIdx = (b.panelIdx + 1) % len(b.panels)
			if b.app != nil {
				b.app.SetFocus(b.panels[b.panelIdx])
			}
		}
		return nil
	case tcell.KeyRune:
		switch event.Rune() {
		case 'q':
			b.stop()
			return nil
		case '1':
			b.ShowTab(TabTables)
			return nil
		case '2':
			b.ShowTab(TabScript)
			return nil
		case 'j':
			return tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone)
		case 'k':
			return tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone)
		}
	}
	return event
}

func (b *Browser) stop() {
	if b.app != nil {
		b.app.Stop()
	}
}

func describeTable(t *ddl.Table) string {
	s := cli.FormatCount(len(t.Columns()), "column", "columns")
	if n := len(t.Constraints()); n > 0 {
		s += ", " + cli.FormatCount(n, "constraint", "constraints")
	}
	return s
}

// highlight escapes stmt for tview and tags keywords and literals.
func highlight(stmt string) string {
	return cli.MarkSQL(tview.Escape(stmt),
		func(s string) string { return TagKeyword + s + TagReset },
		func(s string) string { return TagLiteral + s + TagReset },
	)
}

func renderScript(script []string) string {
	if len(script) == 0 {
		return "[gray]no statements generated yet" + TagReset
	}
	var sb strings.Builder
	for i, stmt := range script {
		fmt.Fprintf(&sb, "[gray]%3d[-]  %s\n\n", i+1, highlight(stmt))
	}
	return sb.String()
}
