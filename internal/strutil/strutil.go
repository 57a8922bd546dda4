// Package strutil provides string utilities for naming and script formatting
// used throughout the hssql codebase.
package strutil

import (
	"strings"
	"unicode"
)

// -----------------------------------------------------------------------------
// Naming
// -----------------------------------------------------------------------------

// ToSnakeCase converts a string to snake_case.
// Examples: userName -> user_name, UserName -> user_name, HTTPServer -> http_server
func ToSnakeCase(s string) string {
	if s == "" {
		return ""
	}

	var result strings.Builder
	result.Grow(len(s) + 4)

	for i, r := range s {
		if unicode.IsUpper(r) {
			// Underscore before an upper-case letter that starts a new word.
			if i > 0 {
				prev := rune(s[i-1])
				if unicode.IsLower(prev) {
					result.WriteByte('_')
				} else if i+1 < len(s) && unicode.IsLower(rune(s[i+1])) {
					result.WriteByte('_')
				}
			}
			result.WriteRune(unicode.ToLower(r))
		} else if r == '-' || r == ' ' {
			result.WriteByte('_')
		} else {
			result.WriteRune(r)
		}
	}

	return result.String()
}

// ScriptFileName returns the file name used when exporting a database script.
// Examples: ("Shop", "") -> shop.sql, ("shop", "drop") -> shop_drop.sql
func ScriptFileName(database, kind string) string {
	name := ToSnakeCase(database)
	if name == "" {
		name = "script"
	}
	if kind != "" {
		name += "_" + ToSnakeCase(kind)
	}
	return name + ".sql"
}

// -----------------------------------------------------------------------------
// Scripts
// -----------------------------------------------------------------------------

// SplitStatements splits concatenated DDL on ";" and re-terminates each
// statement. Blank fragments are dropped. A ";" inside a quoted string or a
// quoted identifier ('…', "…", `…`) does not end a statement; a doubled quote
// stays inside its literal.
func SplitStatements(script string) []string {
	var out []string
	add := func(part string) {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part+";")
		}
	}

	var quote byte
	start := 0
	for i := 0; i < len(script); i++ {
		c := script[i]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '\'', c == '"', c == '`':
			quote = c
		case c == ';':
			add(script[start:i])
			start = i + 1
		}
	}
	add(script[start:])
	return out
}

// JoinStatements joins statements one per line with a trailing newline,
// the layout of exported .sql files.
func JoinStatements(stmts []string) string {
	if len(stmts) == 0 {
		return ""
	}
	return strings.Join(stmts, "\n") + "\n"
}

// -----------------------------------------------------------------------------
// Formatting
// -----------------------------------------------------------------------------

// Indent indents each non-empty line of text with the given number of spaces.
func Indent(text string, spaces int) string {
	prefix := strings.Repeat(" ", spaces)
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = prefix + line
		}
	}
	return strings.Join(lines, "\n")
}

// FirstLine returns the first line of text, with "…" appended when more lines follow.
func FirstLine(text string) string {
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		return text[:i] + " …"
	}
	return text
}
