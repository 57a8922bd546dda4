package ddl

import (
	"slices"

	"github.com/devinci-it/hssql/internal/alerr"
	"github.com/devinci-it/hssql/internal/sqlgen"
	"github.com/devinci-it/hssql/internal/types"
)

// Column is a single column definition: a name, a data type such as INT or
// VARCHAR(255), and an ordered list of column constraints.
//
// Mutations validate their input and leave the column unchanged on failure.
// A Column is not safe for concurrent mutation.
type Column struct {
	name        string
	dataType    string
	constraints []string
}

// NewColumn creates a column. dataType may be empty, or a rendered type such as
// "INT" or "VARCHAR(255)" which is validated like SetDataType.
func NewColumn(name, dataType string) (*Column, error) {
	c := &Column{name: name, constraints: []string{}}
	if dataType == "" {
		return c, nil
	}

	base, param, err := types.SplitTypeSpec(dataType)
	if err != nil {
		return nil, withColumn(err, name)
	}
	if err := c.SetDataType(base, param); err != nil {
		return nil, err
	}
	return c, nil
}

// Name returns the column name.
func (c *Column) Name() string {
	return c.name
}

// SetName replaces the column name.
func (c *Column) SetName(name string) {
	c.name = name
}

// DataType returns the stored type, "TYPE" or "TYPE(param)".
func (c *Column) DataType() string {
	return c.dataType
}

// SetDataType sets the type from a base keyword and an optional parameter
// ("" means none). The type is stored with the casing given.
func (c *Column) SetDataType(dataType, param string) error {
	if err := types.ValidateDataType(dataType, param); err != nil {
		return withColumn(err, c.name)
	}
	c.dataType = types.FormatTypeSpec(dataType, param)
	return nil
}

// Constraints returns a copy of the column constraints in insertion order.
func (c *Column) Constraints() []string {
	return slices.Clone(c.constraints)
}

// AddConstraint appends a constraint as given. Matching against the supported
// set ignores case; duplicates are kept.
func (c *Column) AddConstraint(constraint string) error {
	if err := types.ValidateConstraint(constraint); err != nil {
		return withColumn(err, c.name)
	}
	c.constraints = append(c.constraints, constraint)
	return nil
}

// RemoveConstraint removes every constraint equal to the given value. The
// comparison is exact; a missing value is not an error.
func (c *Column) RemoveConstraint(constraint string) {
	c.constraints = slices.DeleteFunc(c.constraints, func(s string) bool {
		return s == constraint
	})
}

// IsValidDataType reports whether SetDataType would accept the arguments.
func (c *Column) IsValidDataType(dataType, param string) bool {
	return types.ValidateDataType(dataType, param) == nil
}

// IsValidConstraint reports whether AddConstraint would accept the argument.
func (c *Column) IsValidConstraint(constraint string) bool {
	return types.ValidateConstraint(constraint) == nil
}

// Validate re-checks the stored type and constraints. Columns decoded from a
// map form are not validated on load.
func (c *Column) Validate() error {
	if err := types.ValidateTypeSpec(c.dataType); err != nil {
		return withColumn(err, c.name)
	}
	for _, con := range c.constraints {
		if err := types.ValidateConstraint(con); err != nil {
			return withColumn(err, c.name)
		}
	}
	return nil
}

// Definition renders the column for embedding in CREATE TABLE:
// "<name> <data_type> <constraint> ...".
func (c *Column) Definition() string {
	return sqlgen.New().Column(c.name, c.dataType, c.constraints...).String()
}

// String returns a one-line human-readable summary.
func (c *Column) String() string {
	cons := "None"
	if len(c.constraints) > 0 {
		cons = sqlgen.List(c.constraints...)
	}
	return "Column: " + c.name + ", Data Type: " + c.dataType + ", Constraints: " + cons
}

// ToMap returns the map form {name, data_type, constraints}.
func (c *Column) ToMap() map[string]any {
	return map[string]any{
		keyName:        c.name,
		keyDataType:    c.dataType,
		keyConstraints: slices.Clone(c.constraints),
	}
}

// ColumnFromMap rebuilds a column from its map form. name and data_type are
// required; constraints defaults to empty. Values are not validated.
func ColumnFromMap(m map[string]any) (*Column, error) {
	name, err := requiredString(m, "column", keyName)
	if err != nil {
		return nil, err
	}
	dataType, err := requiredString(m, "column", keyDataType)
	if err != nil {
		return nil, withColumn(err, name)
	}
	cons, err := stringList(m, "column", keyConstraints)
	if err != nil {
		return nil, withColumn(err, name)
	}

	logDecoded("column", name, "data_type", dataType)
	return &Column{name: name, dataType: dataType, constraints: cons}, nil
}

// withColumn attaches column context to a coded error.
func withColumn(err error, name string) error {
	if e, ok := err.(*alerr.Error); ok && name != "" {
		return e.WithColumn(name)
	}
	return err
}
