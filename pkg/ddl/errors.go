package ddl

import (
	"github.com/devinci-it/hssql/internal/alerr"
)

// Sentinel errors for the failure kinds of the schema model.
// Every error returned by this package carries one of these codes, so errors.Is
// matches them regardless of the attached context.
var (
	// ErrInvalidDataType is returned when a data type or parameter is outside the
	// supported grammar. The column keeps its previous type.
	ErrInvalidDataType error = alerr.New(alerr.ErrInvalidDataType, "ddl: invalid data type")

	// ErrInvalidConstraint is returned when a column constraint is not one of
	// PRIMARY KEY, UNIQUE, NOT NULL, CHECK or DEFAULT.
	ErrInvalidConstraint error = alerr.New(alerr.ErrInvalidConstraint, "ddl: invalid constraint")

	// ErrValueNotFound is returned when removing a table constraint that is not present.
	ErrValueNotFound error = alerr.New(alerr.ErrValueNotFound, "ddl: value not found")

	// ErrMalformedInput is returned when a map form is missing required keys or
	// holds values of the wrong type.
	ErrMalformedInput error = alerr.New(alerr.ErrMalformedInput, "ddl: malformed input")
)

// malformed builds an ErrMalformedInput error for a key of the given entity.
func malformed(entity, key, problem string) *alerr.Error {
	return alerr.Newf(alerr.ErrMalformedInput, "%s %s", entity, problem).
		With("key", key)
}
