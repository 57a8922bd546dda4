// Package alerr provides standardized error handling for hssql.
// All errors have stable, machine-readable codes, structured context, and proper wrapping.
package alerr

import (
	"errors"
	"fmt"
	"runtime"
	"sort"
	"strings"
)

// Code represents a stable, machine-readable error code.
// Format: E{category}{number} where category is 1-9 and number is 001-999.
type Code string

// Error codes organized by category.
const (
	// Schema errors (E1xxx) - problems with schema documents and lookups
	ErrSchemaInvalid   Code = "E1001" // Schema document is malformed or invalid
	ErrSchemaNotFound  Code = "E1002" // Referenced database, table or column does not exist
	ErrSchemaDuplicate Code = "E1003" // Entity with same name already exists
	ErrMalformedInput  Code = "E1005" // Serialized form is missing keys or has wrong types

	// Validation errors (E2xxx) - problems with mutation input
	ErrInvalidIdentifier Code = "E2001" // Identifier is empty or unusable
	ErrInvalidDataType   Code = "E2005" // Data type or parameter outside the supported grammar
	ErrInvalidConstraint Code = "E2009" // Column constraint outside the whitelist
	ErrValueNotFound     Code = "E2010" // Value to remove is not present

	// Generation errors (E4xxx) - problems writing or checking generated scripts
	ErrScriptWrite    Code = "E4001" // Script file could not be written
	ErrScriptMismatch Code = "E4002" // Script file does not match its recorded checksum

	// Config errors (E5xxx)
	ErrConfigInvalid Code = "E5001" // Configuration file could not be parsed

	// Store errors (E8xxx) - problems with the local session store
	ErrCacheInit    Code = "E8001" // Store initialization failed
	ErrCacheRead    Code = "E8002" // Store read failed
	ErrCacheWrite   Code = "E8003" // Store write failed
	ErrCacheCorrupt Code = "E8004" // Stored document cannot be decoded

	// Internal errors (E9xxx) - unexpected internal errors
	EInternalError Code = "E9001" // Internal error
)

// Error is the standard error type for hssql.
// It provides structured error information with codes, context, and wrapping support.
type Error struct {
	code    Code           // Machine-readable error code
	message string         // Human-readable error message
	context map[string]any // Structured context data
	cause   error          // Wrapped underlying error
	stack   string         // Stack trace for debugging
}

// Error returns the formatted error string.
// Format:
//
//	[E2005] invalid data type
//	  column: id
//	  type: INTEGR
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("[%s] %s", e.code, e.message))

	// Context in sorted order for deterministic output
	if len(e.context) > 0 {
		keys := make([]string, 0, len(e.context))
		for k := range e.context {
			if k == "helps" || k == "notes" {
				continue
			}
			keys = append(keys, k)
		}
		sort.Strings(keys)

		for _, k := range keys {
			b.WriteString(fmt.Sprintf("\n  %s: %v", k, e.context[k]))
		}
	}

	if e.cause != nil {
		b.WriteString(fmt.Sprintf("\n  cause: %v", e.cause))
	}

	return b.String()
}

// Unwrap returns the underlying cause error for errors.Unwrap compatibility.
func (e *Error) Unwrap() error {
	return e.cause
}

// Is reports whether the target error matches this error.
// It matches if target is an *Error with the same code.
func (e *Error) Is(target error) bool {
	if target == nil {
		return false
	}

	var targetErr *Error
	if errors.As(target, &targetErr) {
		return e.code == targetErr.code
	}

	return false
}

// GetCode returns the error code.
func (e *Error) GetCode() Code {
	return e.code
}

// GetMessage returns the error message.
func (e *Error) GetMessage() string {
	return e.message
}

// GetContext returns the error context map.
func (e *Error) GetContext() map[string]any {
	return e.context
}

// GetCause returns the underlying cause error.
func (e *Error) GetCause() error {
	return e.cause
}

// GetStack returns the stack trace.
func (e *Error) GetStack() string {
	return e.stack
}

// With adds a key-value pair to the error context.
// Returns the error for method chaining.
func (e *Error) With(key string, value any) *Error {
	if e.context == nil {
		e.context = make(map[string]any)
	}
	e.context[key] = value
	return e
}

// WithDatabase adds database context to the error.
func (e *Error) WithDatabase(name string) *Error {
	return e.With("database", name)
}

// WithTable adds table context to the error.
func (e *Error) WithTable(name string) *Error {
	return e.With("table", name)
}

// WithColumn adds column context to the error.
func (e *Error) WithColumn(name string) *Error {
	return e.With("column", name)
}

// WithFile adds file context to the error.
func (e *Error) WithFile(path string) *Error {
	return e.With("file", path)
}

// WithNote adds a note to the error (displayed as "note: ...").
func (e *Error) WithNote(note string) *Error {
	notes, _ := e.context["notes"].([]string)
	notes = append(notes, note)
	return e.With("notes", notes)
}

// WithHelp adds a help suggestion to the error (displayed as "help: ...").
func (e *Error) WithHelp(help string) *Error {
	if help == "" {
		return e
	}
	helps, _ := e.context["helps"].([]string)
	helps = append(helps, help)
	return e.With("helps", helps)
}

// Notes returns all notes attached to this error.
func (e *Error) Notes() []string {
	notes, _ := e.context["notes"].([]string)
	return notes
}

// Helps returns all help suggestions attached to this error.
func (e *Error) Helps() []string {
	helps, _ := e.context["helps"].([]string)
	return helps
}

// captureStack captures a stack trace for debugging.
func captureStack(skip int) string {
	const maxDepth = 32
	var pcs [maxDepth]uintptr
	n := runtime.Callers(skip, pcs[:])
	if n == 0 {
		return ""
	}

	var b strings.Builder
	frames := runtime.CallersFrames(pcs[:n])
	for {
		frame, more := frames.Next()
		if strings.Contains(frame.File, "runtime/") {
			if !more {
				break
			}
			continue
		}
		b.WriteString(fmt.Sprintf("%s\n\t%s:%d\n", frame.Function, frame.File, frame.Line))
		if !more {
			break
		}
	}
	return b.String()
}

// New creates a new Error with the given code and message.
func New(code Code, msg string) *Error {
	return &Error{
		code:    code,
		message: msg,
		context: make(map[string]any),
		stack:   captureStack(3),
	}
}

// Newf creates a new Error with the given code and formatted message.
func Newf(code Code, format string, args ...any) *Error {
	return &Error{
		code:    code,
		message: fmt.Sprintf(format, args...),
		context: make(map[string]any),
		stack:   captureStack(3),
	}
}

// Wrap creates a new Error that wraps an existing error.
func Wrap(code Code, err error, msg string) *Error {
	if err == nil {
		return New(code, msg)
	}
	return &Error{
		code:    code,
		message: msg,
		context: make(map[string]any),
		cause:   err,
		stack:   captureStack(3),
	}
}

// Wrapf creates a new Error that wraps an existing error with a formatted message.
func Wrapf(code Code, err error, format string, args ...any) *Error {
	return Wrap(code, err, fmt.Sprintf(format, args...))
}

// GetErrorCode extracts the error code from an error chain.
// Returns empty string if no code is found.
func GetErrorCode(err error) Code {
	if err == nil {
		return ""
	}

	var e *Error
	if errors.As(err, &e) {
		return e.code
	}

	return ""
}

// Is checks if an error has the specified code.
func Is(err error, code Code) bool {
	return GetErrorCode(err) == code
}

// HasCode checks if an error has any error code.
func HasCode(err error) bool {
	return GetErrorCode(err) != ""
}
