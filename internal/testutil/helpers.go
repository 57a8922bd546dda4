package testutil

import (
	"path/filepath"
	"testing"
)

// StorePath returns a path for a throwaway SQLite store file inside a
// per-test temporary directory. The file itself is not created.
//
// Example:
//
//	store, err := session.Open(ctx, testutil.StorePath(t))
func StorePath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "sessions.db")
}

// Must asserts that err is nil, or fails the test immediately.
// Useful for test setup code.
//
// Example:
//
//	testutil.Must(t, col.AddConstraint("NOT NULL"))
func Must(t *testing.T, err error) {
	t.Helper()

	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
}

// MustValue takes the results of a (value, error) call and returns a function
// that fails the test immediately when err is non-nil. The call must be the
// only argument, so the test is passed to the returned function.
//
// Example:
//
//	col := testutil.MustValue(ddl.NewColumn("id", "INT"))(t)
func MustValue[T any](value T, err error) func(t *testing.T) T {
	return func(t *testing.T) T {
		t.Helper()

		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}

		return value
	}
}
