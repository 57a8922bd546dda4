package ddl

import (
	"errors"
	"slices"

	"github.com/devinci-it/hssql/internal/alerr"
	"github.com/devinci-it/hssql/internal/sqlgen"
)

// Table is a named, ordered set of columns plus free-form table-level
// constraints such as "PRIMARY KEY (id)". The table owns its columns.
//
// Column names are not required to be unique; lookups return the first match.
type Table struct {
	name        string
	columns     []*Column
	constraints []string
}

// NewTable creates an empty table.
func NewTable(name string) *Table {
	return &Table{
		name:        name,
		columns:     []*Column{},
		constraints: []string{},
	}
}

// Name returns the table name.
func (t *Table) Name() string {
	return t.name
}

// SetName replaces the table name.
func (t *Table) SetName(name string) {
	t.name = name
}

// AddColumn appends a column. A nil column is ignored.
func (t *Table) AddColumn(c *Column) {
	if c == nil {
		return
	}
	t.columns = append(t.columns, c)
}

// RemoveColumn removes every column with the given name. A missing name is not an error.
func (t *Table) RemoveColumn(name string) {
	t.columns = slices.DeleteFunc(t.columns, func(c *Column) bool {
		return c.name == name
	})
}

// Column returns the first column with the given name, or nil.
func (t *Table) Column(name string) *Column {
	for _, c := range t.columns {
		if c.name == name {
			return c
		}
	}
	return nil
}

// Columns returns the columns in insertion order. The slice is a copy; the
// columns are shared.
func (t *Table) Columns() []*Column {
	return slices.Clone(t.columns)
}

// Constraints returns a copy of the table constraints in insertion order.
func (t *Table) Constraints() []string {
	return slices.Clone(t.constraints)
}

// AddConstraint appends a table-level constraint. The text is not validated.
func (t *Table) AddConstraint(constraint string) {
	t.constraints = append(t.constraints, constraint)
}

// RemoveConstraint removes the first constraint equal to the given value.
func (t *Table) RemoveConstraint(constraint string) error {
	i := slices.Index(t.constraints, constraint)
	if i < 0 {
		return alerr.New(alerr.ErrValueNotFound, "table constraint not found").
			WithTable(t.name).
			With("constraint", constraint).
			WithSuggestion(constraint, t.constraints)
	}
	t.constraints = slices.Delete(t.constraints, i, i+1)
	return nil
}

// GenerateCreateTable renders the CREATE TABLE statement: column definitions
// first, then table constraints, each in insertion order.
func (t *Table) GenerateCreateTable() string {
	defs := make([]string, 0, len(t.columns)+len(t.constraints))
	for _, c := range t.columns {
		defs = append(defs, c.Definition())
	}
	defs = append(defs, t.constraints...)
	return sqlgen.CreateTableStatement(t.name, defs)
}

// Validate checks every column against the supported types and constraints.
func (t *Table) Validate() error {
	var errs []error
	for _, c := range t.columns {
		if err := c.Validate(); err != nil {
			errs = append(errs, withTable(err, t.name))
		}
	}
	return errors.Join(errs...)
}

// ToMap returns the map form {name, columns, constraints}.
func (t *Table) ToMap() map[string]any {
	cols := make([]map[string]any, len(t.columns))
	for i, c := range t.columns {
		cols[i] = c.ToMap()
	}
	return map[string]any{
		keyName:        t.name,
		keyColumns:     cols,
		keyConstraints: slices.Clone(t.constraints),
	}
}

// TableFromMap rebuilds a table and its columns from the map form.
// columns and constraints default to empty.
func TableFromMap(m map[string]any) (*Table, error) {
	name, err := requiredString(m, "table", keyName)
	if err != nil {
		return nil, err
	}
	colMaps, err := mapList(m, "table", keyColumns)
	if err != nil {
		return nil, withTable(err, name)
	}
	cons, err := stringList(m, "table", keyConstraints)
	if err != nil {
		return nil, withTable(err, name)
	}

	t := &Table{
		name:        name,
		columns:     make([]*Column, 0, len(colMaps)),
		constraints: cons,
	}
	for _, cm := range colMaps {
		c, err := ColumnFromMap(cm)
		if err != nil {
			return nil, withTable(err, name)
		}
		t.columns = append(t.columns, c)
	}

	logDecoded("table", name, "columns", len(t.columns), "constraints", len(t.constraints))
	return t, nil
}

func withTable(err error, name string) error {
	var e *alerr.Error
	if errors.As(err, &e) && name != "" {
		return e.WithTable(name)
	}
	return err
}
