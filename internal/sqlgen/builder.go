// Package sqlgen provides fluent DDL building helpers to reduce string concatenation.
//
// Output targets a single MySQL-flavoured dialect. Identifiers are written exactly as
// given; callers own naming.
package sqlgen

import (
	"strings"
)

// Indent is the prefix written before each definition inside CREATE TABLE.
const Indent = "  "

// Builder provides fluent DDL construction.
type Builder struct {
	buf strings.Builder
}

// New creates a new, empty Builder.
func New() *Builder {
	return &Builder{}
}

// ----------------------------------------------------------------------------
// Database Statements
// ----------------------------------------------------------------------------

// CreateDatabase appends "CREATE DATABASE <name>" to the buffer.
func (b *Builder) CreateDatabase(name string) *Builder {
	b.buf.WriteString("CREATE DATABASE ")
	b.buf.WriteString(name)
	return b
}

// AlterDatabase appends "ALTER DATABASE <name>" to the buffer.
func (b *Builder) AlterDatabase(name string) *Builder {
	b.buf.WriteString("ALTER DATABASE ")
	b.buf.WriteString(name)
	return b
}

// DropDatabase appends "DROP DATABASE IF EXISTS <name>" to the buffer.
func (b *Builder) DropDatabase(name string) *Builder {
	b.buf.WriteString("DROP DATABASE IF EXISTS ")
	b.buf.WriteString(name)
	return b
}

// ShowTables appends "SHOW TABLES" to the buffer.
func (b *Builder) ShowTables() *Builder {
	b.buf.WriteString("SHOW TABLES")
	return b
}

// ShowDatabase appends "SHOW DATABASE <name>" to the buffer.
func (b *Builder) ShowDatabase(name string) *Builder {
	b.buf.WriteString("SHOW DATABASE ")
	b.buf.WriteString(name)
	return b
}

// CharacterSet appends " CHARACTER SET <charset>" to the buffer.
func (b *Builder) CharacterSet(charset string) *Builder {
	b.buf.WriteString(" CHARACTER SET ")
	b.buf.WriteString(charset)
	return b
}

// Collate appends " COLLATE <collation>" to the buffer.
func (b *Builder) Collate(collation string) *Builder {
	b.buf.WriteString(" COLLATE ")
	b.buf.WriteString(collation)
	return b
}

// ----------------------------------------------------------------------------
// Table Statements
// ----------------------------------------------------------------------------

// CreateTable appends "CREATE TABLE <name>" to the buffer.
func (b *Builder) CreateTable(name string) *Builder {
	b.buf.WriteString("CREATE TABLE ")
	b.buf.WriteString(name)
	return b
}

// Column appends "<name> <typ>" followed by each constraint, space separated.
func (b *Builder) Column(name, typ string, constraints ...string) *Builder {
	b.buf.WriteString(name)
	b.buf.WriteString(" ")
	b.buf.WriteString(typ)
	for _, c := range constraints {
		b.buf.WriteString(" ")
		b.buf.WriteString(c)
	}
	return b
}

// Definitions appends each definition on its own indented line, separated by ",\n".
// Nothing is written for an empty list.
func (b *Builder) Definitions(defs []string) *Builder {
	for i, def := range defs {
		if i > 0 {
			b.buf.WriteString(",\n")
		}
		b.buf.WriteString(Indent)
		b.buf.WriteString(def)
	}
	return b
}

// ----------------------------------------------------------------------------
// Utilities
// ----------------------------------------------------------------------------

// OpenParen appends " (" to the buffer.
func (b *Builder) OpenParen() *Builder {
	b.buf.WriteString(" (")
	return b
}

// CloseParen appends ")" to the buffer.
func (b *Builder) CloseParen() *Builder {
	b.buf.WriteString(")")
	return b
}

// Newline appends a newline character to the buffer.
func (b *Builder) Newline() *Builder {
	b.buf.WriteString("\n")
	return b
}

// End terminates the statement with ";".
func (b *Builder) End() *Builder {
	b.buf.WriteString(";")
	return b
}

// String returns the accumulated SQL string.
func (b *Builder) String() string {
	return b.buf.String()
}

// Reset clears the buffer so the builder can be reused.
func (b *Builder) Reset() *Builder {
	b.buf.Reset()
	return b
}

// ----------------------------------------------------------------------------
// Standalone Helpers
// ----------------------------------------------------------------------------

// CreateTableStatement renders a complete CREATE TABLE statement:
//
//	CREATE TABLE <name> (
//	  <def>,
//	  <def>
//	);
func CreateTableStatement(name string, defs []string) string {
	return New().
		CreateTable(name).OpenParen().Newline().
		Definitions(defs).Newline().
		CloseParen().End().
		String()
}

// CreateDatabaseStatement renders "CREATE DATABASE <name> CHARACTER SET <cs> COLLATE <co>;".
func CreateDatabaseStatement(name, charset, collation string) string {
	return New().CreateDatabase(name).CharacterSet(charset).Collate(collation).End().String()
}

// AlterDatabaseStatement renders "ALTER DATABASE <name> CHARACTER SET <cs> COLLATE <co>;".
func AlterDatabaseStatement(name, charset, collation string) string {
	return New().AlterDatabase(name).CharacterSet(charset).Collate(collation).End().String()
}

// List returns a comma-separated list of items without quoting.
// Example: List("a", "b", "c") -> "a, b, c"
func List(items ...string) string {
	return strings.Join(items, ", ")
}
