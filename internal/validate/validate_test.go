package validate

import (
	"errors"
	"strings"
	"testing"

	"github.com/devinci-it/hssql/internal/alerr"
)

// -----------------------------------------------------------------------------
// Identifier Tests
// -----------------------------------------------------------------------------

func TestIdentifier(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		// Valid identifiers
		{"simple", "account", false},
		{"with_underscore", "user_name", false},
		{"starts_underscore", "_account", false},
		{"with_numbers", "account123", false},
		{"mixed_case", "OrderItems", false},
		{"dollar", "price$", false},
		{"max_length", strings.Repeat("a", MaxIdentifierLength), false},

		// Invalid
		{"empty", "", true},
		{"too_long", strings.Repeat("a", MaxIdentifierLength+1), true},
		{"starts_with_number", "1user", true},
		{"hyphen", "user-name", true},
		{"space", "user name", true},
		{"dot", "shop.users", true},
		{"path", "../etc", true},
		{"reserved", "order", true},
		{"reserved_upper", "SELECT", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Identifier("table", tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Identifier(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !alerr.Is(err, alerr.ErrInvalidIdentifier) {
				t.Errorf("expected %s, got %v", alerr.ErrInvalidIdentifier, alerr.GetErrorCode(err))
			}
		})
	}
}

func TestIdentifierMessages(t *testing.T) {
	tests := []struct {
		fn       func(string) error
		input    string
		wantMsg  string
		wantHelp string
	}{
		{Database, "", "database name cannot be empty", ""},
		{Table, "user-name", "table name contains invalid characters", "did you mean 'user_name'?"},
		{Column, "2fa", "column name contains invalid characters", "did you mean '_2fa'?"},
		{Table, "order", "'order' is a reserved word", "try 'order_table' or a plural such as 'orders'"},
		{Column, "---", "column name contains invalid characters", ""},
	}

	for _, tt := range tests {
		t.Run(tt.wantMsg, func(t *testing.T) {
			var e *alerr.Error
			if !errors.As(tt.fn(tt.input), &e) {
				t.Fatalf("expected *alerr.Error for %q", tt.input)
			}
			if e.GetMessage() != tt.wantMsg {
				t.Errorf("message = %q, want %q", e.GetMessage(), tt.wantMsg)
			}
			helps := e.Helps()
			switch {
			case tt.wantHelp == "" && len(helps) != 0:
				t.Errorf("unexpected helps %v", helps)
			case tt.wantHelp != "" && (len(helps) != 1 || helps[0] != tt.wantHelp):
				t.Errorf("helps = %v, want [%s]", helps, tt.wantHelp)
			}
		})
	}
}

// -----------------------------------------------------------------------------
// Reserved Word Tests
// -----------------------------------------------------------------------------

func TestIsReservedWord(t *testing.T) {
	for _, w := range []string{"select", "SELECT", "Table", "primary", "key"} {
		if !IsReservedWord(w) {
			t.Errorf("IsReservedWord(%q) = false, want true", w)
		}
	}
	for _, w := range []string{"users", "orders", "email", "created_at"} {
		if IsReservedWord(w) {
			t.Errorf("IsReservedWord(%q) = true, want false", w)
		}
	}
}
