package ui

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/devinci-it/hssql/internal/testutil"
	"github.com/devinci-it/hssql/pkg/ddl"
)

func loadShop(t *testing.T) *ddl.Database {
	t.Helper()
	return testutil.MustValue(ddl.UnmarshalDocument([]byte(testutil.SampleSchemaYAML)))(t)
}

// ===========================================================================
// Browser Tests
// ===========================================================================

func TestBrowserTablesList(t *testing.T) {
	b := NewBrowser(loadShop(t), nil)

	if got := b.tables.GetItemCount(); got != 2 {
		t.Fatalf("GetItemCount() = %d, want 2", got)
	}
	main, secondary := b.tables.GetItemText(1)
	if main != "orders" {
		t.Errorf("item 1 = %q, want orders", main)
	}
	if secondary != "2 columns, 1 constraint" {
		t.Errorf("item 1 secondary = %q", secondary)
	}
}

func TestBrowserSelectTable(t *testing.T) {
	b := NewBrowser(loadShop(t), nil)

	// users is selected initially: header + 2 columns
	if got := b.columns.GetRowCount(); got != 3 {
		t.Fatalf("GetRowCount() = %d, want 3", got)
	}
	if got := b.columns.GetCell(0, 2).Text; got != "CONSTRAINTS" {
		t.Errorf("header cell = %q", got)
	}
	if got := b.columns.GetCell(2, 1).Text; got != "VARCHAR(255)" {
		t.Errorf("email type cell = %q", got)
	}
	if got := b.columns.GetCell(2, 2).Text; got != "NOT NULL UNIQUE" {
		t.Errorf("email constraints cell = %q", got)
	}

	// orders: header + 2 columns + 1 table constraint
	b.SelectTable(1)
	if got := b.columns.GetRowCount(); got != 4 {
		t.Fatalf("GetRowCount() = %d, want 4", got)
	}
	if got := b.columns.GetCell(3, 0).Text; got != "(table)" {
		t.Errorf("table constraint row = %q", got)
	}
	if got := b.columns.GetCell(3, 2).Text; got != "FOREIGN KEY (user_id) REFERENCES users(id)" {
		t.Errorf("table constraint text = %q", got)
	}

	preview := b.preview.GetText(true)
	if !strings.HasPrefix(preview, "CREATE TABLE orders (") {
		t.Errorf("preview should show CREATE TABLE, got %q", preview)
	}
}

func TestBrowserSelectOutOfRange(t *testing.T) {
	b := NewBrowser(loadShop(t), nil)
	b.SelectTable(9)

	if got := b.columns.GetRowCount(); got != 1 {
		t.Errorf("GetRowCount() = %d, want header only", got)
	}
	if got := b.preview.GetText(true); got != "" {
		t.Errorf("preview = %q, want empty", got)
	}
}

func TestBrowserEmptyDatabase(t *testing.T) {
	b := NewBrowser(ddl.NewDatabase("empty"), nil)
	if b.tables.GetItemCount() != 0 {
		t.Error("expected no tables")
	}
	if !strings.Contains(b.log.GetText(true), "no statements") {
		t.Errorf("empty script text = %q", b.log.GetText(true))
	}
}

func TestBrowserScript(t *testing.T) {
	db := loadShop(t)
	db.GenerateCreateDatabase()
	db.GenerateShowTables()

	b := NewBrowser(db, db.Script())
	text := b.log.GetText(true)

	first := strings.Index(text, "CREATE DATABASE shop")
	second := strings.Index(text, "SHOW TABLES;")
	if first < 0 || second < 0 || first > second {
		t.Errorf("script should list statements in order:\n%s", text)
	}
}

func TestBrowserKeys(t *testing.T) {
	b := NewBrowser(loadShop(t), nil)

	key := func(r rune) *tcell.EventKey { return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone) }

	if ev := b.HandleKey(key('2')); ev != nil {
		t.Error("'2' should be consumed")
	}
	if b.CurrentTab() != TabScript || b.tabBar.ActiveIndex() != 1 {
		t.Errorf("tab = %q/%d, want script/1", b.CurrentTab(), b.tabBar.ActiveIndex())
	}

	b.HandleKey(key('1'))
	if b.CurrentTab() != TabTables {
		t.Errorf("tab = %q, want tables", b.CurrentTab())
	}

	if ev := b.HandleKey(key('j')); ev == nil || ev.Key() != tcell.KeyDown {
		t.Error("'j' should map to KeyDown")
	}
	if ev := b.HandleKey(key('x')); ev == nil || ev.Rune() != 'x' {
		t.Error("unbound keys should pass through")
	}

	b.HandleKey(tcell.NewEventKey(tcell.KeyTab, 0, tcell.ModNone))
	if b.panelIdx != 1 {
		t.Errorf("panelIdx = %d after Tab, want 1", b.panelIdx)
	}

	// Without a running application quitting is a no-op.
	if ev := b.HandleKey(key('q')); ev != nil {
		t.Error("'q' should be consumed")
	}
}

// ===========================================================================
// Component Tests
// ===========================================================================

func TestTabBar(t *testing.T) {
	bar := NewTabBar([]string{"Tables", "Script"}, 0)
	if !strings.Contains(bar.GetText(true), "1 Tables") {
		t.Errorf("tab bar text = %q", bar.GetText(true))
	}

	bar.SetActiveTab(5)
	if bar.ActiveIndex() != 0 {
		t.Error("out-of-range SetActiveTab should be ignored")
	}
	bar.SetActiveTab(1)
	if bar.ActiveIndex() != 1 {
		t.Error("SetActiveTab(1) did not switch")
	}
}

func TestHighlight(t *testing.T) {
	got := highlight("SHOW TABLES;")
	if got != TagKeyword+"SHOW"+TagReset+" "+TagKeyword+"TABLES"+TagReset+";" {
		t.Errorf("highlight() = %q", got)
	}
}
