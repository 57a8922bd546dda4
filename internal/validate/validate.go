// Package validate checks the names hssql accepts for databases, tables and
// columns on the command line.
//
// The schema model itself stores any name it is given; these checks apply to
// interactive edits so sessions stay loadable by a MySQL-compatible server and
// usable as script file names.
package validate

import (
	"regexp"
	"strings"

	"github.com/devinci-it/hssql/internal/alerr"
)

// MaxIdentifierLength is the longest name MySQL accepts for databases, tables
// and columns.
const MaxIdentifierLength = 64

// -----------------------------------------------------------------------------
// Reserved Words
// -----------------------------------------------------------------------------

// reservedWords contains MySQL reserved words that cannot be used unquoted.
var reservedWords = map[string]bool{
	"add": true, "all": true, "alter": true, "and": true, "as": true,
	"asc": true, "between": true, "bigint": true, "binary": true, "blob": true,
	"by": true, "cascade": true, "case": true, "change": true, "char": true,
	"character": true, "check": true, "collate": true, "column": true, "constraint": true,
	"create": true, "cross": true, "database": true, "databases": true, "decimal": true,
	"default": true, "delete": true, "desc": true, "distinct": true, "double": true,
	"drop": true, "else": true, "exists": true, "float": true, "for": true,
	"foreign": true, "from": true, "group": true, "having": true, "if": true,
	"in": true, "index": true, "inner": true, "insert": true, "int": true,
	"integer": true, "interval": true, "into": true, "is": true, "join": true,
	"key": true, "keys": true, "left": true, "like": true, "limit": true,
	"not": true, "null": true, "on": true, "or": true, "order": true,
	"outer": true, "primary": true, "references": true, "rename": true, "right": true,
	"schema": true, "select": true, "set": true, "show": true, "smallint": true,
	"table": true, "then": true, "tinyint": true, "to": true, "union": true,
	"unique": true, "update": true, "use": true, "using": true, "values": true,
	"varbinary": true, "varchar": true, "when": true, "where": true, "with": true,
}

// IsReservedWord checks if the given string is a MySQL reserved word.
// The check is case-insensitive.
func IsReservedWord(s string) bool {
	return reservedWords[strings.ToLower(s)]
}

// -----------------------------------------------------------------------------
// Identifiers
// -----------------------------------------------------------------------------

// identifierRegex matches unquoted identifiers: a letter or underscore followed
// by letters, digits, underscores or '$'.
var identifierRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_$]*$`)

// Identifier validates an unquoted identifier. kind names the entity in the
// error message ("database", "table", "column").
func Identifier(kind, s string) error {
	if s == "" {
		return alerr.New(alerr.ErrInvalidIdentifier, kind+" name cannot be empty")
	}

	if len(s) > MaxIdentifierLength {
		return alerr.Newf(alerr.ErrInvalidIdentifier, "%s name exceeds maximum length of %d characters", kind, MaxIdentifierLength).
			With("name", s).
			With("length", len(s))
	}

	if !identifierRegex.MatchString(s) {
		err := alerr.New(alerr.ErrInvalidIdentifier, kind+" name contains invalid characters").
			With("name", s).
			WithNote("names start with a letter or '_' and contain only letters, digits, '_' and '$'")
		if fixed := sanitize(s); fixed != "" && fixed != s {
			err.WithHelp("did you mean '" + fixed + "'?")
		}
		return err
	}

	if IsReservedWord(s) {
		return alerr.New(alerr.ErrInvalidIdentifier, "'"+s+"' is a reserved word").
			With("name", s).
			WithHelp("try '" + s + "_" + kind + "' or a plural such as '" + s + "s'")
	}

	return nil
}

// Database validates a database name.
func Database(s string) error { return Identifier("database", s) }

// Table validates a table name.
func Table(s string) error { return Identifier("table", s) }

// Column validates a column name.
func Column(s string) error { return Identifier("column", s) }

// sanitize replaces invalid characters with '_' and prefixes names starting
// with a digit.
func sanitize(s string) string {
	var b strings.Builder
	for i, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r == '_', r == '$':
			b.WriteRune(r)
		case r >= '0' && r <= '9':
			if i == 0 {
				b.WriteByte('_')
			}
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	out := b.String()
	if strings.Trim(out, "_") == "" {
		return ""
	}
	return out
}
