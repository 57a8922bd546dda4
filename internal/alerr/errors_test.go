package alerr

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

// -----------------------------------------------------------------------------
// Constructor Tests
// -----------------------------------------------------------------------------

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    Code
		message string
	}{
		{"data type", ErrInvalidDataType, "invalid data type"},
		{"constraint", ErrInvalidConstraint, "invalid constraint"},
		{"not found", ErrValueNotFound, "constraint not found"},
		{"malformed", ErrMalformedInput, "missing key"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.code, tt.message)
			if err.GetCode() != tt.code {
				t.Errorf("code = %v, want %v", err.GetCode(), tt.code)
			}
			if err.GetMessage() != tt.message {
				t.Errorf("message = %v, want %v", err.GetMessage(), tt.message)
			}
			if err.GetCause() != nil {
				t.Error("expected nil cause for New()")
			}
			if err.GetStack() == "" {
				t.Error("expected stack trace to be captured")
			}
		})
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("disk full")
	err := Wrap(ErrCacheWrite, cause, "failed to save session")

	if err.GetCode() != ErrCacheWrite {
		t.Errorf("code = %v, want %v", err.GetCode(), ErrCacheWrite)
	}
	if err.GetCause() != cause {
		t.Error("cause should be the wrapped error")
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is should find the cause")
	}

	nilWrapped := Wrap(ErrCacheWrite, nil, "nothing to wrap")
	if nilWrapped.GetCause() != nil {
		t.Error("wrapping nil should produce no cause")
	}
}

func TestWrapf(t *testing.T) {
	err := Wrapf(ErrCacheRead, errors.New("io"), "failed to load %q", "shop")
	if err.GetMessage() != `failed to load "shop"` {
		t.Errorf("message = %q", err.GetMessage())
	}
}

// -----------------------------------------------------------------------------
// Context Tests
// -----------------------------------------------------------------------------

func TestContextHelpers(t *testing.T) {
	err := New(ErrInvalidDataType, "invalid data type").
		WithDatabase("shop").
		WithTable("orders").
		WithColumn("total").
		WithFile("schema.yaml").
		With("type", "MONEY")

	ctx := err.GetContext()
	want := map[string]any{
		"database": "shop",
		"table":    "orders",
		"column":   "total",
		"file":     "schema.yaml",
		"type":     "MONEY",
	}
	for k, v := range want {
		if ctx[k] != v {
			t.Errorf("context[%q] = %v, want %v", k, ctx[k], v)
		}
	}
}

func TestHelpsAndNotes(t *testing.T) {
	err := New(ErrInvalidConstraint, "invalid constraint").
		WithSuggestion("UNIQE", []string{"UNIQUE", "CHECK"}).
		WithAllowed([]string{"UNIQUE", "CHECK"}).
		WithHelp("")

	if helps := err.Helps(); len(helps) != 1 || helps[0] != "did you mean 'UNIQUE'?" {
		t.Errorf("Helps() = %v", helps)
	}
	if notes := err.Notes(); len(notes) != 1 || notes[0] != "allowed: UNIQUE, CHECK" {
		t.Errorf("Notes() = %v", notes)
	}
}

func TestErrorFormat(t *testing.T) {
	err := New(ErrInvalidDataType, "invalid data type").
		With("type", "VARCHR").
		WithColumn("name").
		WithHelp("did you mean 'VARCHAR'?")

	got := err.Error()
	want := "[E2005] invalid data type\n  column: name\n  type: VARCHR"
	if got != want {
		t.Errorf("Error() =\n%s\nwant:\n%s", got, want)
	}

	wrapped := Wrap(ErrCacheRead, errors.New("locked"), "failed to read")
	if !strings.HasSuffix(wrapped.Error(), "\n  cause: locked") {
		t.Errorf("Error() should end with the cause, got %q", wrapped.Error())
	}
}

// -----------------------------------------------------------------------------
// Matching Tests
// -----------------------------------------------------------------------------

func TestIs(t *testing.T) {
	sentinel := New(ErrValueNotFound, "value not found")
	err := New(ErrValueNotFound, "constraint \"UNIQUE (a)\" not found")

	if !errors.Is(err, sentinel) {
		t.Error("errors with the same code should match")
	}
	if errors.Is(err, New(ErrInvalidConstraint, "other")) {
		t.Error("errors with different codes should not match")
	}
	if err.Is(nil) {
		t.Error("Is(nil) should be false")
	}

	outer := fmt.Errorf("loading: %w", err)
	if !errors.Is(outer, sentinel) {
		t.Error("match should survive fmt wrapping")
	}
}

func TestGetErrorCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Code
	}{
		{"nil", nil, ""},
		{"plain", errors.New("x"), ""},
		{"coded", New(ErrMalformedInput, "x"), ErrMalformedInput},
		{"wrapped", fmt.Errorf("ctx: %w", New(ErrSchemaNotFound, "x")), ErrSchemaNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetErrorCode(tt.err); got != tt.want {
				t.Errorf("GetErrorCode() = %q, want %q", got, tt.want)
			}
			if got := HasCode(tt.err); got != (tt.want != "") {
				t.Errorf("HasCode() = %v", got)
			}
			if tt.want != "" && !Is(tt.err, tt.want) {
				t.Errorf("Is(%v) = false", tt.want)
			}
		})
	}
}
