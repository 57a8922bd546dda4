package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/devinci-it/hssql/internal/alerr"
	"github.com/devinci-it/hssql/internal/testutil"
)

// runCLI executes the command tree against a throwaway session directory.
func runCLI(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()
	t.Setenv(EnvSessionDir, "")
	t.Setenv(EnvScriptsDir, "")
	t.Setenv(EnvLogLevel, "")

	config := filepath.Join(dir, DefaultConfigFile)
	if _, err := os.Stat(config); os.IsNotExist(err) {
		testutil.WriteFile(t, config, "log_level: warn\n")
	}

	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{"--session-dir", dir, "--config", config}, args...))
	err := cmd.Execute()
	return out.String(), err
}

// mustRun fails the test when the command fails.
func mustRun(t *testing.T, dir string, args ...string) string {
	t.Helper()
	out, err := runCLI(t, dir, args...)
	if err != nil {
		t.Fatalf("hssql %s: %v", strings.Join(args, " "), err)
	}
	return out
}

// buildShop creates a two-table session through the CLI.
func buildShop(t *testing.T, dir string) {
	t.Helper()
	mustRun(t, dir, "session", "new", "shop", "--charset", "utf8mb4", "--collation", "utf8mb4_bin")
	mustRun(t, dir, "table", "add", "shop", "users")
	mustRun(t, dir, "column", "add", "shop", "users", "id", "INT", "-C", "PRIMARY KEY")
	mustRun(t, dir, "column", "add", "shop", "users", "email", "VARCHAR", "--param", "255", "-C", "NOT NULL", "-C", "UNIQUE")
	mustRun(t, dir, "table", "add", "shop", "orders")
	mustRun(t, dir, "column", "add", "shop", "orders", "id", "INT")
	mustRun(t, dir, "table", "constraint", "shop", "orders", "PRIMARY KEY (id)")
}

// -----------------------------------------------------------------------------
// Session Tests
// -----------------------------------------------------------------------------

func TestSessionLifecycle(t *testing.T) {
	dir := t.TempDir()
	buildShop(t, dir)

	out := mustRun(t, dir, "session", "list")
	testutil.AssertTrue(t, strings.Contains(out, "shop"), "list should name the session")

	out = mustRun(t, dir, "session", "show", "shop")
	for _, want := range []string{"users", "orders", "VARCHAR(255)", "PRIMARY KEY (id)", "utf8mb4_bin"} {
		testutil.AssertTrue(t, strings.Contains(out, want), "show should contain "+want)
	}

	mustRun(t, dir, "session", "delete", "shop")
	_, err := runCLI(t, dir, "session", "show", "shop")
	testutil.AssertError(t, err, alerr.ErrSchemaNotFound)
}

func TestSessionNewDuplicate(t *testing.T) {
	dir := t.TempDir()
	mustRun(t, dir, "session", "new", "shop")
	_, err := runCLI(t, dir, "session", "new", "shop")
	testutil.AssertError(t, err, alerr.ErrSchemaDuplicate)
}

func TestSessionShowJSON(t *testing.T) {
	dir := t.TempDir()
	buildShop(t, dir)

	out := mustRun(t, dir, "--json", "session", "show", "shop")
	var doc map[string]any
	if err := json.Unmarshal([]byte(out), &doc); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, out)
	}
	testutil.AssertEqual(t, doc["database_name"], any("shop"))
	testutil.AssertEqual(t, doc["charset"], any("utf8mb4"))
	tables, _ := doc["tables"].([]any)
	testutil.AssertEqual(t, len(tables), 2)
}

func TestExportImportRoundTrip(t *testing.T) {
	dir := t.TempDir()
	buildShop(t, dir)

	file := filepath.Join(dir, "out", "shop.json")
	mustRun(t, dir, "session", "export", "shop", "-o", file)
	data, err := os.ReadFile(file)
	testutil.AssertNoError(t, err)
	testutil.AssertTrue(t, json.Valid(data), "export to .json should write JSON")

	_, err = runCLI(t, dir, "session", "import", file)
	testutil.AssertError(t, err, alerr.ErrSchemaDuplicate)

	mustRun(t, dir, "session", "import", file, "--name", "shop_copy")
	original := mustRun(t, dir, "--json", "session", "show", "shop")
	copied := mustRun(t, dir, "--json", "session", "show", "shop_copy")
	testutil.AssertEqual(t, strings.Replace(copied, "shop_copy", "shop", 1), original)
}

func TestImportInvalidDocument(t *testing.T) {
	dir := t.TempDir()
	path := testutil.WriteSchema(t, dir, "bad.yaml", `database_name: shop
tables:
  - name: users
    columns:
      - name: id
        data_type: MONEY
        constraints: []
    constraints: []
`)
	_, err := runCLI(t, dir, "session", "import", path)
	testutil.AssertError(t, err, alerr.ErrInvalidDataType)
}

// -----------------------------------------------------------------------------
// Mutation Tests
// -----------------------------------------------------------------------------

func TestTableAndColumnErrors(t *testing.T) {
	dir := t.TempDir()
	buildShop(t, dir)

	tests := []struct {
		name string
		args []string
		code alerr.Code
	}{
		{"duplicate table", []string{"table", "add", "shop", "users"}, alerr.ErrSchemaDuplicate},
		{"missing table", []string{"table", "remove", "shop", "user"}, alerr.ErrSchemaNotFound},
		{"missing session", []string{"table", "add", "nope", "t"}, alerr.ErrSchemaNotFound},
		{"bad type", []string{"column", "add", "shop", "users", "age", "INTEGR"}, alerr.ErrInvalidDataType},
		{"bad parameter", []string{"column", "add", "shop", "users", "age", "INT", "--param", "11"}, alerr.ErrInvalidDataType},
		{"bad constraint", []string{"column", "add", "shop", "users", "age", "INT", "-C", "AUTO_INCREMENT"}, alerr.ErrInvalidConstraint},
		{"missing column", []string{"column", "remove", "shop", "users", "mail"}, alerr.ErrSchemaNotFound},
		{"missing constraint", []string{"table", "constraint", "shop", "orders", "UNIQUE (id)", "--remove"}, alerr.ErrValueNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runCLI(t, dir, tt.args...)
			testutil.AssertError(t, err, tt.code)
		})
	}
}

func TestFailedMutationIsNotSaved(t *testing.T) {
	dir := t.TempDir()
	buildShop(t, dir)

	before := mustRun(t, dir, "--json", "session", "show", "shop")
	_, err := runCLI(t, dir, "column", "add", "shop", "users", "age", "INTEGR")
	testutil.AssertError(t, err, alerr.ErrInvalidDataType)
	after := mustRun(t, dir, "--json", "session", "show", "shop")
	testutil.AssertEqual(t, after, before)
}

func TestRemoveColumnAndTable(t *testing.T) {
	dir := t.TempDir()
	buildShop(t, dir)

	mustRun(t, dir, "column", "remove", "shop", "users", "email")
	mustRun(t, dir, "table", "remove", "shop", "orders")

	out := mustRun(t, dir, "generate", "shop", "--statement", "tables")
	testutil.AssertSQL(t, out, "CREATE TABLE users (\n  id INT PRIMARY KEY\n);")
}

// -----------------------------------------------------------------------------
// Generate and Verify Tests
// -----------------------------------------------------------------------------

func TestGenerateStatements(t *testing.T) {
	dir := t.TempDir()
	buildShop(t, dir)

	tests := []struct {
		kind string
		want string
	}{
		{"create", "CREATE DATABASE shop CHARACTER SET utf8mb4 COLLATE utf8mb4_bin;"},
		{"alter", "ALTER DATABASE shop CHARACTER SET utf8mb4 COLLATE utf8mb4_bin;"},
		{"drop", "DROP DATABASE IF EXISTS shop;"},
		{"show-tables", "SHOW TABLES;"},
		{"show-info", "SHOW DATABASE shop;"},
	}

	for _, tt := range tests {
		t.Run(tt.kind, func(t *testing.T) {
			out := mustRun(t, dir, "generate", "shop", "--statement", tt.kind)
			testutil.AssertEqual(t, strings.TrimSpace(out), tt.want)
		})
	}
}

func TestGenerateUnknownKind(t *testing.T) {
	dir := t.TempDir()
	buildShop(t, dir)
	_, err := runCLI(t, dir, "generate", "shop", "--statement", "truncate")
	testutil.AssertError(t, err, alerr.ErrSchemaInvalid)
}

func TestGenerateRecordsHistory(t *testing.T) {
	dir := t.TempDir()
	buildShop(t, dir)

	mustRun(t, dir, "generate", "shop", "--statement", "drop")
	mustRun(t, dir, "generate", "shop", "--statement", "show-tables")

	out := mustRun(t, dir, "--json", "session", "history", "shop")
	var entries []map[string]any
	if err := json.Unmarshal([]byte(out), &entries); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, out)
	}
	testutil.AssertEqual(t, len(entries), 2)
	testutil.AssertEqual(t, entries[0]["statement"], any("DROP DATABASE IF EXISTS shop;"))
	testutil.AssertEqual(t, entries[1]["statement"], any("SHOW TABLES;"))
}

func TestGenerateWriteAndVerify(t *testing.T) {
	dir := t.TempDir()
	buildShop(t, dir)

	mustRun(t, dir, "generate", "shop", "--write")
	script := filepath.Join(dir, "scripts", "shop.sql")
	data, err := os.ReadFile(script)
	testutil.AssertNoError(t, err)
	testutil.AssertSQLContains(t, string(data), "CREATE DATABASE shop CHARACTER SET utf8mb4 COLLATE utf8mb4_bin;")
	testutil.AssertSQLContains(t, string(data), "CREATE TABLE orders ( id INT, PRIMARY KEY (id) );")

	out := mustRun(t, dir, "verify")
	testutil.AssertTrue(t, strings.Contains(out, "shop.sql"), "verify should list the script")

	testutil.WriteFile(t, script, string(data)+"\nDROP TABLE users;\n")
	_, err = runCLI(t, dir, "verify")
	testutil.AssertError(t, err, alerr.ErrScriptMismatch)
}

func TestVerifyWithoutLock(t *testing.T) {
	_, err := runCLI(t, t.TempDir(), "verify")
	testutil.AssertError(t, err, alerr.ErrScriptMismatch)
}

// -----------------------------------------------------------------------------
// Inspect and Types Tests
// -----------------------------------------------------------------------------

func TestInspectAgainstDocument(t *testing.T) {
	dir := t.TempDir()
	path := testutil.WriteSchema(t, dir, "shop.yaml", "")
	mustRun(t, dir, "session", "import", path)

	out := mustRun(t, dir, "inspect", "shop", "--against", path)
	testutil.AssertTrue(t, strings.Contains(out, "No drift detected"), "identical document should not drift:\n"+out)

	mustRun(t, dir, "table", "remove", "shop", "orders")
	out = mustRun(t, dir, "--json", "inspect", "shop", "--against", path)
	var result map[string]any
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, out)
	}
	testutil.AssertEqual(t, result["drift"], any(true))
}

func TestInspectFingerprint(t *testing.T) {
	dir := t.TempDir()
	buildShop(t, dir)

	out := mustRun(t, dir, "inspect", "shop")
	for _, want := range []string{"fingerprint", "users", "orders"} {
		testutil.AssertTrue(t, strings.Contains(out, want), "inspect should contain "+want)
	}
}

func TestTypes(t *testing.T) {
	out := mustRun(t, t.TempDir(), "types")
	for _, want := range []string{"VARCHAR(n)", "temporal", "PRIMARY KEY", "NOT NULL"} {
		testutil.AssertTrue(t, strings.Contains(out, want), "types should contain "+want)
	}
}

func TestBrowseRequiresTerminal(t *testing.T) {
	dir := t.TempDir()
	buildShop(t, dir)
	_, err := runCLI(t, dir, "browse", "shop")
	testutil.AssertError(t, err, alerr.EInternalError)
}

func TestInvalidIdentifiers(t *testing.T) {
	dir := t.TempDir()
	mustRun(t, dir, "session", "new", "shop")
	mustRun(t, dir, "table", "add", "shop", "users")

	for _, args := range [][]string{
		{"session", "new", "../shop"},
		{"table", "add", "shop", "order"},
		{"table", "add", "shop", "user-profiles"},
		{"column", "add", "shop", "users", "2fa", "BOOL"},
	} {
		_, err := runCLI(t, dir, args...)
		testutil.AssertError(t, err, alerr.ErrInvalidIdentifier)
	}
}

func TestMissingExplicitConfig(t *testing.T) {
	t.Setenv(EnvSessionDir, "")
	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--config", filepath.Join(t.TempDir(), "missing.yaml"), "types"})
	testutil.AssertError(t, cmd.Execute(), alerr.ErrConfigInvalid)
}

func TestRootHelp(t *testing.T) {
	out := mustRun(t, t.TempDir(), "--help")
	for _, want := range []string{"Sessions", "Generation", "Inspection", "generate", "--session-dir"} {
		testutil.AssertTrue(t, strings.Contains(out, want), "help should contain "+want)
	}
}

func TestHistoryPreview(t *testing.T) {
	dir := t.TempDir()
	buildShop(t, dir)
	mustRun(t, dir, "generate", "shop", "--statement", "tables")

	out := mustRun(t, dir, "session", "history", "shop")
	testutil.AssertTrue(t, strings.Contains(out, "  1 CREATE TABLE users ( …\n"), "history should show first lines:\n"+out)
	testutil.AssertFalse(t, strings.Contains(out, "PRIMARY KEY (id)"), "history should not print full statements by default")

	out = mustRun(t, dir, "session", "history", "shop", "--full")
	testutil.AssertTrue(t, strings.Contains(out, "      PRIMARY KEY (id)\n"), "--full should indent complete statements:\n"+out)
}

func TestVerifyCountsQuotedSemicolons(t *testing.T) {
	dir := t.TempDir()
	mustRun(t, dir, "session", "new", "notes")
	mustRun(t, dir, "table", "add", "notes", "entries")
	mustRun(t, dir, "column", "add", "notes", "entries", "body", "TEXT")
	mustRun(t, dir, "table", "constraint", "notes", "entries", "CHECK (body <> ';')")
	mustRun(t, dir, "generate", "notes", "--write")

	out := mustRun(t, dir, "verify")
	testutil.AssertTrue(t, strings.Contains(out, "notes.sql  2 statements"), "verify should count two statements:\n"+out)
}
