package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// SampleSchemaYAML is a small schema document used across package tests.
const SampleSchemaYAML = `database_name: shop
schema: public
charset: utf8
collation: utf8_general_ci
options:
  engine: InnoDB
tables:
  - name: users
    columns:
      - name: id
        data_type: INT
        constraints: [PRIMARY KEY]
      - name: email
        data_type: VARCHAR(255)
        constraints: [NOT NULL, UNIQUE]
    constraints: []
  - name: orders
    columns:
      - name: id
        data_type: INT
        constraints: [PRIMARY KEY]
      - name: user_id
        data_type: INT
        constraints: [NOT NULL]
    constraints:
      - FOREIGN KEY (user_id) REFERENCES users(id)
`

// LoadFixture loads a fixture file as a string.
// The path should be relative to the project root.
//
// Example:
//
//	doc := testutil.LoadFixture(t, "examples/shop.yaml")
func LoadFixture(t *testing.T, relativePath string) string {
	t.Helper()

	content, err := os.ReadFile(filepath.Join(findProjectRoot(t), relativePath))
	if err != nil {
		t.Fatalf("Failed to load fixture %s: %v", relativePath, err)
	}

	return string(content)
}

// WriteSchema writes SampleSchemaYAML, or the given content, to name inside dir
// and returns the full path.
func WriteSchema(t *testing.T, dir, name, content string) string {
	t.Helper()

	if content == "" {
		content = SampleSchemaYAML
	}
	path := filepath.Join(dir, name)
	WriteFile(t, path, content)
	return path
}

// FixtureExists checks if a fixture file exists.
func FixtureExists(t *testing.T, relativePath string) bool {
	t.Helper()

	_, err := os.Stat(filepath.Join(findProjectRoot(t), relativePath))
	return err == nil
}

// findProjectRoot walks up the directory tree to find the project root (go.mod location).
func findProjectRoot(t *testing.T) string {
	t.Helper()

	dir, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatal("Could not find project root (go.mod)")
		}
		dir = parent
	}
}
