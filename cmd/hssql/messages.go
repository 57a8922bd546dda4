package main

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/devinci-it/hssql/internal/alerr"
	"github.com/devinci-it/hssql/internal/cli"
	"github.com/devinci-it/hssql/pkg/ddl"
)

// renderDatabase prints settings followed by one column table per table.
func renderDatabase(db *ddl.Database) string {
	var b strings.Builder

	settings := []string{
		cli.FormatKeyValue("schema", db.Schema()),
		cli.FormatKeyValue("charset", db.Charset()),
		cli.FormatKeyValue("collation", db.Collation()),
		cli.FormatKeyValue("tables", fmt.Sprint(len(db.Tables()))),
	}
	opts := db.Options()
	for _, k := range slices.Sorted(maps.Keys(opts)) {
		settings = append(settings, cli.FormatKeyValue("option "+k, fmt.Sprint(opts[k])))
	}
	b.WriteString(cli.Panel(db.Name(), strings.Join(settings, "\n")))

	for _, t := range db.Tables() {
		b.WriteString("\n")
		b.WriteString(renderTable(t))
	}
	return b.String()
}

// renderTable prints a table's columns and constraints.
func renderTable(t *ddl.Table) string {
	var b strings.Builder
	b.WriteString(cli.Header(t.Name()))
	b.WriteString("\n")

	if len(t.Columns()) == 0 {
		b.WriteString(cli.Dim("  (no columns)"))
		b.WriteString("\n")
	} else {
		table := cli.NewTable("COLUMN", "TYPE", "CONSTRAINTS")
		for _, c := range t.Columns() {
			table.AddRow(c.Name(), c.DataType(), strings.Join(c.Constraints(), ", "))
		}
		b.WriteString(table.String())
	}

	if cs := t.Constraints(); len(cs) > 0 {
		list := cli.NewList()
		for _, c := range cs {
			list.Add(c)
		}
		b.WriteString(cli.Dim("constraints:"))
		b.WriteString("\n")
		b.WriteString(list.String())
	}
	return b.String()
}

// withTableContext attaches table context to an alerr error.
func withTableContext(err error, table string) error {
	var e *alerr.Error
	if errors.As(err, &e) {
		e.WithTable(table)
	}
	return err
}
