package ddl

import (
	"errors"
	"maps"
	"slices"
	"strings"

	"github.com/devinci-it/hssql/internal/alerr"
	"github.com/devinci-it/hssql/internal/sqlgen"
)

// Database defaults.
const (
	DefaultSchema    = "public"
	DefaultCharset   = "utf8"
	DefaultCollation = "utf8_general_ci"
)

// Database is a named set of tables with schema, charset and collation
// settings. Every Generate* call appends its statement to the script log.
//
// Database-level statements never recurse into tables.
type Database struct {
	name      string
	tables    []*Table
	schema    string
	charset   string
	collation string
	options   map[string]any
	script    []string
}

// NewDatabase creates an empty database with the default schema, charset and collation.
func NewDatabase(name string) *Database {
	return &Database{
		name:      name,
		tables:    []*Table{},
		schema:    DefaultSchema,
		charset:   DefaultCharset,
		collation: DefaultCollation,
		options:   map[string]any{},
	}
}

// Name returns the database name.
func (d *Database) Name() string { return d.name }

// SetName replaces the database name.
func (d *Database) SetName(name string) { d.name = name }

// Schema returns the schema namespace.
func (d *Database) Schema() string { return d.schema }

// SetSchema replaces the schema namespace.
func (d *Database) SetSchema(schema string) { d.schema = schema }

// Charset returns the character set.
func (d *Database) Charset() string { return d.charset }

// SetCharset replaces the character set.
func (d *Database) SetCharset(charset string) { d.charset = charset }

// Collation returns the collation.
func (d *Database) Collation() string { return d.collation }

// SetCollation replaces the collation.
func (d *Database) SetCollation(collation string) { d.collation = collation }

// Options returns a shallow copy of the free-form options.
func (d *Database) Options() map[string]any {
	return maps.Clone(d.options)
}

// SetOption sets one free-form option. Options are carried in the map form
// and are not used when rendering statements.
func (d *Database) SetOption(key string, value any) {
	if d.options == nil {
		d.options = map[string]any{}
	}
	d.options[key] = value
}

// AddTable appends a table. A nil table is ignored.
func (d *Database) AddTable(t *Table) {
	if t == nil {
		return
	}
	d.tables = append(d.tables, t)
}

// RemoveTable removes every table with the given name. A missing name is not an error.
func (d *Database) RemoveTable(name string) {
	d.tables = slices.DeleteFunc(d.tables, func(t *Table) bool {
		return t.name == name
	})
}

// Table returns the first table with the given name, or nil.
func (d *Database) Table(name string) *Table {
	for _, t := range d.tables {
		if t.name == name {
			return t
		}
	}
	return nil
}

// Tables returns the tables in insertion order. The slice is a copy; the tables are shared.
func (d *Database) Tables() []*Table {
	return slices.Clone(d.tables)
}

// TableNames returns the table names in insertion order.
func (d *Database) TableNames() []string {
	names := make([]string, len(d.tables))
	for i, t := range d.tables {
		names[i] = t.name
	}
	return names
}

// ----------------------------------------------------------------------------
// Statement generation
// ----------------------------------------------------------------------------

// GenerateCreateDatabase returns
// "CREATE DATABASE <name> CHARACTER SET <charset> COLLATE <collation>;".
func (d *Database) GenerateCreateDatabase() string {
	return d.record(sqlgen.CreateDatabaseStatement(d.name, d.charset, d.collation))
}

// GenerateAlterDatabase returns
// "ALTER DATABASE <name> CHARACTER SET <charset> COLLATE <collation>;".
func (d *Database) GenerateAlterDatabase() string {
	return d.record(sqlgen.AlterDatabaseStatement(d.name, d.charset, d.collation))
}

// GenerateDropDatabase returns "DROP DATABASE IF EXISTS <name>;".
func (d *Database) GenerateDropDatabase() string {
	return d.record(sqlgen.New().DropDatabase(d.name).End().String())
}

// GenerateShowTables returns "SHOW TABLES;".
func (d *Database) GenerateShowTables() string {
	return d.record(sqlgen.New().ShowTables().End().String())
}

// GenerateShowDatabaseInfo returns "SHOW DATABASE <name>;".
func (d *Database) GenerateShowDatabaseInfo() string {
	return d.record(sqlgen.New().ShowDatabase(d.name).End().String())
}

// GenerateCreateTables returns the CREATE TABLE statement of every table and
// appends each to the script log.
func (d *Database) GenerateCreateTables() []string {
	out := make([]string, len(d.tables))
	for i, t := range d.tables {
		out[i] = d.record(t.GenerateCreateTable())
	}
	return out
}

func (d *Database) record(stmt string) string {
	d.script = append(d.script, stmt)
	return stmt
}

// Script returns a copy of every generated statement in call order.
func (d *Database) Script() []string {
	return slices.Clone(d.script)
}

// ScriptText joins the script log with newlines.
func (d *Database) ScriptText() string {
	return strings.Join(d.script, "\n")
}

// Validate checks every column of every table.
func (d *Database) Validate() error {
	var errs []error
	for _, t := range d.tables {
		for _, c := range t.columns {
			if err := c.Validate(); err != nil {
				errs = append(errs, withDatabase(withTable(err, t.name), d.name))
			}
		}
	}
	return errors.Join(errs...)
}

// ----------------------------------------------------------------------------
// Map form
// ----------------------------------------------------------------------------

// ToMap returns the map form {database_name, tables, schema, charset,
// collation, options}. Tables are embedded in their own map form. The script
// log is not included.
func (d *Database) ToMap() map[string]any {
	tables := make([]map[string]any, len(d.tables))
	for i, t := range d.tables {
		tables[i] = t.ToMap()
	}
	opts := maps.Clone(d.options)
	if opts == nil {
		opts = map[string]any{}
	}
	return map[string]any{
		keyDatabaseName: d.name,
		keyTables:       tables,
		keySchema:       d.schema,
		keyCharset:      d.charset,
		keyCollation:    d.collation,
		keyOptions:      opts,
	}
}

// DatabaseFromMap rebuilds a database, its tables and their columns from the
// map form. database_name is required; the other keys take their defaults when absent.
func DatabaseFromMap(m map[string]any) (*Database, error) {
	name, err := requiredString(m, "database", keyDatabaseName)
	if err != nil {
		return nil, err
	}

	d := NewDatabase(name)
	if d.schema, err = optionalString(m, "database", keySchema, DefaultSchema); err != nil {
		return nil, withDatabase(err, name)
	}
	if d.charset, err = optionalString(m, "database", keyCharset, DefaultCharset); err != nil {
		return nil, withDatabase(err, name)
	}
	if d.collation, err = optionalString(m, "database", keyCollation, DefaultCollation); err != nil {
		return nil, withDatabase(err, name)
	}
	if d.options, err = optionsMap(m, "database", keyOptions); err != nil {
		return nil, withDatabase(err, name)
	}

	tableMaps, err := mapList(m, "database", keyTables)
	if err != nil {
		return nil, withDatabase(err, name)
	}
	for _, tm := range tableMaps {
		t, err := TableFromMap(tm)
		if err != nil {
			return nil, withDatabase(err, name)
		}
		d.tables = append(d.tables, t)
	}

	logDecoded("database", name, "tables", len(d.tables))
	return d, nil
}

func withDatabase(err error, name string) error {
	var e *alerr.Error
	if errors.As(err, &e) {
		return e.WithDatabase(name)
	}
	return err
}
