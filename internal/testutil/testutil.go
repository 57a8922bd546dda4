package testutil

import (
	"errors"
	"flag"
	"os"
	"path/filepath"
	"reflect"
	"regexp"
	"strings"
	"testing"

	"github.com/devinci-it/hssql/internal/alerr"
)

// updateGolden is a flag to update golden files.
// Use -update-golden to update golden files during test runs.
var updateGolden = flag.Bool("update-golden", false, "update golden files")

// -----------------------------------------------------------------------------
// SQL Assertions
// -----------------------------------------------------------------------------

// NormalizeSQL normalizes a SQL string for comparison.
// It collapses multiple whitespace characters into a single space,
// trims leading/trailing whitespace, and converts to uppercase.
func NormalizeSQL(sql string) string {
	sql = whitespace.ReplaceAllString(sql, " ")
	return strings.ToUpper(strings.TrimSpace(sql))
}

var whitespace = regexp.MustCompile(`\s+`)

// AssertSQL compares two SQL strings after normalizing them.
// Normalization includes collapsing whitespace and converting to uppercase.
func AssertSQL(t *testing.T, got, want string) {
	t.Helper()

	gotNorm := NormalizeSQL(got)
	wantNorm := NormalizeSQL(want)

	if gotNorm != wantNorm {
		t.Errorf("SQL mismatch:\ngot:  %s\nwant: %s\n\noriginal got:\n%s\n\noriginal want:\n%s",
			gotNorm, wantNorm, got, want)
	}
}

// AssertSQLContains checks if a SQL string contains a substring.
// Both strings are normalized before comparison.
func AssertSQLContains(t *testing.T, sql, substr string) {
	t.Helper()

	sqlNorm := NormalizeSQL(sql)
	substrNorm := NormalizeSQL(substr)

	if !strings.Contains(sqlNorm, substrNorm) {
		t.Errorf("SQL does not contain expected substring:\nsql:    %s\nsubstr: %s\n\noriginal sql:\n%s",
			sqlNorm, substrNorm, sql)
	}
}

// -----------------------------------------------------------------------------
// Error Assertions
// -----------------------------------------------------------------------------

// AssertError checks that an error has the expected error code.
// If err is nil or doesn't have the expected code, the test fails.
func AssertError(t *testing.T, err error, code alerr.Code) {
	t.Helper()

	if err == nil {
		t.Errorf("expected error with code %s, got nil", code)
		return
	}

	gotCode := alerr.GetErrorCode(err)
	if gotCode != code {
		t.Errorf("expected error code %s, got %s\nerror: %v", code, gotCode, err)
	}
}

// AssertIs checks that errors.Is(err, target) holds.
func AssertIs(t *testing.T, err, target error) {
	t.Helper()

	if !errors.Is(err, target) {
		t.Errorf("expected error matching %v, got: %v", target, err)
	}
}

// AssertNoError checks that an error is nil.
// If err is not nil, the test fails with the error message.
func AssertNoError(t *testing.T, err error) {
	t.Helper()

	if err != nil {
		t.Errorf("expected no error, got: %v", err)
	}
}

// AssertErrorContains checks that an error message contains a substring.
// If err is nil, the test fails.
func AssertErrorContains(t *testing.T, err error, substr string) {
	t.Helper()

	if err == nil {
		t.Errorf("expected error containing %q, got nil", substr)
		return
	}

	if !strings.Contains(err.Error(), substr) {
		t.Errorf("error message does not contain %q\ngot: %v", substr, err)
	}
}

// -----------------------------------------------------------------------------
// Golden File Testing
// -----------------------------------------------------------------------------

// goldenDir returns the path to the testdata directory for golden files.
// It uses the test's file location to determine the correct path.
func goldenDir(t *testing.T) string {
	t.Helper()

	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("failed to get working directory: %v", err)
	}

	return filepath.Join(wd, "testdata")
}

// goldenPath returns the path to a golden file.
func goldenPath(t *testing.T, name, ext string) string {
	t.Helper()

	dir := goldenDir(t)
	return filepath.Join(dir, name+ext)
}

// Golden compares a string against a golden file.
// If -update-golden flag is passed, updates the golden file instead.
// Golden files are stored in testdata/ directory with .golden extension.
func Golden(t *testing.T, name string, got string) {
	t.Helper()

	path := goldenPath(t, name, ".golden")

	if *updateGolden {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			t.Fatalf("failed to create golden directory: %v", err)
		}

		if err := os.WriteFile(path, []byte(got), 0644); err != nil {
			t.Fatalf("failed to write golden file: %v", err)
		}
		return
	}

	want, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			t.Fatalf("golden file does not exist: %s\nrun with -update-golden to create it\n\ngot:\n%s",
				path, got)
		}
		t.Fatalf("failed to read golden file: %v", err)
	}

	if got != string(want) {
		t.Errorf("golden file mismatch: %s\n\ngot:\n%s\n\nwant:\n%s\n\nrun with -update-golden to update",
			path, got, string(want))
	}
}

// -----------------------------------------------------------------------------
// Test Helpers
// -----------------------------------------------------------------------------

// WriteFile writes content to a file, creating parent directories as needed.
func WriteFile(t *testing.T, path, content string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("failed to create parent directories: %v", err)
	}

	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
}

// AssertEqual is a generic equality check for testing.
func AssertEqual[T comparable](t *testing.T, got, want T) {
	t.Helper()

	if got != want {
		t.Errorf("values not equal:\ngot:  %v\nwant: %v", got, want)
	}
}

// AssertDeepEqual compares values with reflect.DeepEqual.
// Use it for map forms and slices, which are not comparable.
func AssertDeepEqual(t *testing.T, got, want any) {
	t.Helper()

	if !reflect.DeepEqual(got, want) {
		t.Errorf("values not deeply equal:\ngot:  %#v\nwant: %#v", got, want)
	}
}

// AssertTrue checks that a condition is true.
func AssertTrue(t *testing.T, condition bool, msg string) {
	t.Helper()

	if !condition {
		t.Errorf("expected true: %s", msg)
	}
}

// AssertFalse checks that a condition is false.
func AssertFalse(t *testing.T, condition bool, msg string) {
	t.Helper()

	if condition {
		t.Errorf("expected false: %s", msg)
	}
}
