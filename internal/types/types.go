// Package types defines the closed set of SQL data types and column constraints
// that hssql accepts.
//
// Both sets are fixed at compile time. Lookups are case-insensitive; the values
// callers supply are stored as given by the schema model, so these tables only
// decide membership.
package types

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/devinci-it/hssql/internal/alerr"
)

// -----------------------------------------------------------------------------
// Data types
// -----------------------------------------------------------------------------

// DataType is a base SQL type keyword such as INT or VARCHAR.
type DataType string

// Supported data types.
const (
	Bit        DataType = "BIT"
	TinyInt    DataType = "TINYINT"
	Bool       DataType = "BOOL"
	Boolean    DataType = "BOOLEAN"
	SmallInt   DataType = "SMALLINT"
	MediumInt  DataType = "MEDIUMINT"
	Int        DataType = "INT"
	Integer    DataType = "INTEGER"
	BigInt     DataType = "BIGINT"
	Float      DataType = "FLOAT"
	Double     DataType = "DOUBLE"
	Decimal    DataType = "DECIMAL"
	Char       DataType = "CHAR"
	Varchar    DataType = "VARCHAR"
	Binary     DataType = "BINARY"
	VarBinary  DataType = "VARBINARY"
	TinyBlob   DataType = "TINYBLOB"
	TinyText   DataType = "TINYTEXT"
	Blob       DataType = "BLOB"
	Text       DataType = "TEXT"
	MediumBlob DataType = "MEDIUMBLOB"
	MediumText DataType = "MEDIUMTEXT"
	LongBlob   DataType = "LONGBLOB"
	LongText   DataType = "LONGTEXT"
	Enum       DataType = "ENUM"
	Set        DataType = "SET"
	Date       DataType = "DATE"
	DateTime   DataType = "DATETIME"
	Timestamp  DataType = "TIMESTAMP"
	Time       DataType = "TIME"
	Year       DataType = "YEAR"
)

// Category groups data types for display.
type Category string

const (
	CategoryNumeric  Category = "numeric"
	CategoryString   Category = "string"
	CategoryBinary   Category = "binary"
	CategoryTemporal Category = "temporal"
)

// typeDef describes one supported data type.
type typeDef struct {
	typ           DataType
	category      Category
	parameterized bool // accepts a single integer parameter, e.g. VARCHAR(255)
}

// dataTypes lists every supported type in display order.
var dataTypes = []typeDef{
	{Bit, CategoryNumeric, false},
	{TinyInt, CategoryNumeric, false},
	{Bool, CategoryNumeric, false},
	{Boolean, CategoryNumeric, false},
	{SmallInt, CategoryNumeric, false},
	{MediumInt, CategoryNumeric, false},
	{Int, CategoryNumeric, false},
	{Integer, CategoryNumeric, false},
	{BigInt, CategoryNumeric, false},
	{Float, CategoryNumeric, true},
	{Double, CategoryNumeric, true},
	{Decimal, CategoryNumeric, true},
	{Char, CategoryString, true},
	{Varchar, CategoryString, true},
	{Binary, CategoryBinary, true},
	{VarBinary, CategoryBinary, true},
	{TinyBlob, CategoryBinary, false},
	{TinyText, CategoryString, false},
	{Blob, CategoryBinary, false},
	{Text, CategoryString, false},
	{MediumBlob, CategoryBinary, false},
	{MediumText, CategoryString, false},
	{LongBlob, CategoryBinary, false},
	{LongText, CategoryString, false},
	{Enum, CategoryString, true},
	{Set, CategoryString, true},
	{Date, CategoryTemporal, false},
	{DateTime, CategoryTemporal, false},
	{Timestamp, CategoryTemporal, false},
	{Time, CategoryTemporal, false},
	{Year, CategoryTemporal, false},
}

// byName indexes dataTypes by keyword. Built once, never mutated.
var byName = func() map[DataType]typeDef {
	m := make(map[DataType]typeDef, len(dataTypes))
	for _, d := range dataTypes {
		m[d.typ] = d
	}
	return m
}()

// ParseDataType looks up a type keyword, ignoring case.
func ParseDataType(name string) (DataType, bool) {
	d, ok := byName[DataType(strings.ToUpper(name))]
	return d.typ, ok
}

// Parameterized reports whether the type accepts a parameter.
func (t DataType) Parameterized() bool {
	return byName[t].parameterized
}

// Category returns the display category of the type.
func (t DataType) Category() Category {
	return byName[t].category
}

// String returns the keyword.
func (t DataType) String() string {
	return string(t)
}

// DataTypes returns every supported type in display order.
func DataTypes() []DataType {
	out := make([]DataType, len(dataTypes))
	for i, d := range dataTypes {
		out[i] = d.typ
	}
	return out
}

// ParameterizedTypes returns the types that accept a parameter.
func ParameterizedTypes() []DataType {
	var out []DataType
	for _, d := range dataTypes {
		if d.parameterized {
			out = append(out, d.typ)
		}
	}
	return out
}

// IsValidParameter reports whether param is a non-negative integer literal.
func IsValidParameter(param string) bool {
	if param == "" {
		return false
	}
	for i := 0; i < len(param); i++ {
		if param[i] < '0' || param[i] > '9' {
			return false
		}
	}
	return true
}

// ValidateDataType checks a base keyword and an optional parameter ("" means absent).
func ValidateDataType(name, param string) error {
	if name == "" {
		return alerr.New(alerr.ErrInvalidDataType, "data type is required")
	}

	t, ok := ParseDataType(name)
	if !ok {
		return alerr.New(alerr.ErrInvalidDataType, "unknown data type").
			With("type", name).
			WithSuggestion(name, typeNames(DataTypes()))
	}

	if param == "" {
		return nil
	}

	if !t.Parameterized() {
		return alerr.New(alerr.ErrInvalidDataType, "data type does not accept a parameter").
			With("type", name).
			With("parameter", param).
			WithAllowed(typeNames(ParameterizedTypes()))
	}

	if !IsValidParameter(param) {
		return alerr.New(alerr.ErrInvalidDataType, "data type parameter must be a non-negative integer").
			With("type", name).
			With("parameter", param)
	}

	return nil
}

// typeSpecPattern splits "VARCHAR(255)" into base and parameter.
// [1] base keyword, [3] parameter text (may be empty)
var typeSpecPattern = regexp.MustCompile(`^\s*([A-Za-z]+)\s*(\(([^()]*)\))?\s*$`)

// SplitTypeSpec splits a rendered type such as "VARCHAR(255)" into its base keyword
// and parameter. It checks shape only; use ValidateDataType for membership.
func SplitTypeSpec(spec string) (base, param string, err error) {
	m := typeSpecPattern.FindStringSubmatch(spec)
	if m == nil {
		return "", "", alerr.New(alerr.ErrInvalidDataType, "malformed data type").
			With("type", spec)
	}
	if m[2] != "" && m[3] == "" {
		return "", "", alerr.New(alerr.ErrInvalidDataType, "empty data type parameter").
			With("type", spec)
	}
	return m[1], m[3], nil
}

// ValidateTypeSpec validates a rendered type string such as "VARCHAR(255)".
func ValidateTypeSpec(spec string) error {
	base, param, err := SplitTypeSpec(spec)
	if err != nil {
		return err
	}
	return ValidateDataType(base, param)
}

// FormatTypeSpec renders a base keyword with an optional parameter.
func FormatTypeSpec(name, param string) string {
	if param == "" {
		return name
	}
	return fmt.Sprintf("%s(%s)", name, param)
}

func typeNames(ts []DataType) []string {
	out := make([]string, len(ts))
	for i, t := range ts {
		out[i] = string(t)
	}
	return out
}

// -----------------------------------------------------------------------------
// Constraints
// -----------------------------------------------------------------------------

// Constraint is a column-level constraint keyword.
type Constraint string

// Supported column constraints.
const (
	PrimaryKey Constraint = "PRIMARY KEY"
	Unique     Constraint = "UNIQUE"
	NotNull    Constraint = "NOT NULL"
	Check      Constraint = "CHECK"
	Default    Constraint = "DEFAULT"
)

var constraints = []Constraint{PrimaryKey, Unique, NotNull, Check, Default}

// ParseConstraint looks up a constraint keyword, ignoring case.
func ParseConstraint(s string) (Constraint, bool) {
	upper := Constraint(strings.ToUpper(s))
	for _, c := range constraints {
		if c == upper {
			return c, true
		}
	}
	return "", false
}

// Constraints returns every supported column constraint.
func Constraints() []Constraint {
	out := make([]Constraint, len(constraints))
	copy(out, constraints)
	return out
}

// ValidateConstraint checks a column constraint against the supported set.
func ValidateConstraint(s string) error {
	if _, ok := ParseConstraint(s); ok {
		return nil
	}
	names := make([]string, len(constraints))
	for i, c := range constraints {
		names[i] = string(c)
	}
	return alerr.New(alerr.ErrInvalidConstraint, "unsupported column constraint").
		With("constraint", s).
		WithSuggestion(s, names).
		WithAllowed(names)
}
