package drift

import (
	"strings"
	"testing"

	"github.com/devinci-it/hssql/internal/testutil"
	"github.com/devinci-it/hssql/pkg/ddl"
)

func loadShop(t *testing.T) *ddl.Database {
	t.Helper()
	return testutil.MustValue(ddl.UnmarshalDocument([]byte(testutil.SampleSchemaYAML)))(t)
}

func hashOf(t *testing.T, db *ddl.Database) *SchemaHash {
	t.Helper()
	return testutil.MustValue(ComputeSchemaHash(db))(t)
}

// -----------------------------------------------------------------------------
// Hash Tests
// -----------------------------------------------------------------------------

func TestComputeSchemaHash_Nil(t *testing.T) {
	hash := hashOf(t, nil)
	if hash.Root != emptyHash() {
		t.Errorf("nil database should hash to the empty hash")
	}
	if len(hash.Tables) != 0 {
		t.Errorf("expected 0 tables, got %d", len(hash.Tables))
	}
}

func TestComputeSchemaHash_EmptyDatabase(t *testing.T) {
	hash := hashOf(t, ddl.NewDatabase("d"))
	if hash.Root == "" || hash.Root == emptyHash() {
		t.Errorf("empty database should still hash its settings, got %q", hash.Root)
	}
}

func TestComputeSchemaHash_Tables(t *testing.T) {
	hash := hashOf(t, loadShop(t))

	if len(hash.Tables) != 2 {
		t.Fatalf("expected 2 tables, got %d", len(hash.Tables))
	}
	users, ok := hash.Tables["users"]
	if !ok {
		t.Fatal("expected users table hash")
	}
	if len(users.Columns) != 2 {
		t.Errorf("expected 2 column hashes, got %d", len(users.Columns))
	}
	if len(hash.Tables["orders"].Constraints) != 1 {
		t.Errorf("expected 1 constraint hash, got %d", len(hash.Tables["orders"].Constraints))
	}
}

func TestComputeSchemaHash_Deterministic(t *testing.T) {
	a := hashOf(t, loadShop(t))
	b := hashOf(t, loadShop(t))
	testutil.AssertEqual(t, a.Root, b.Root)
}

func TestComputeSchemaHash_IgnoresNameAndScript(t *testing.T) {
	a := loadShop(t)
	b := loadShop(t)
	b.SetName("renamed")
	b.GenerateCreateDatabase()

	testutil.AssertEqual(t, hashOf(t, a).Root, hashOf(t, b).Root)
}

func TestComputeSchemaHash_Changes(t *testing.T) {
	base := hashOf(t, loadShop(t)).Root

	tests := []struct {
		name   string
		mutate func(t *testing.T, db *ddl.Database)
	}{
		{"column type", func(t *testing.T, db *ddl.Database) {
			testutil.Must(t, db.Table("users").Column("email").SetDataType("VARCHAR", "128"))
		}},
		{"column constraint", func(t *testing.T, db *ddl.Database) {
			testutil.Must(t, db.Table("orders").Column("user_id").AddConstraint("UNIQUE"))
		}},
		{"table constraint", func(t *testing.T, db *ddl.Database) {
			db.Table("users").AddConstraint("UNIQUE (email)")
		}},
		{"new table", func(t *testing.T, db *ddl.Database) {
			db.AddTable(ddl.NewTable("audit"))
		}},
		{"charset", func(t *testing.T, db *ddl.Database) {
			db.SetCharset("utf8mb4")
		}},
		{"column order", func(t *testing.T, db *ddl.Database) {
			users := db.Table("users")
			id := users.Column("id")
			users.RemoveColumn("id")
			users.AddColumn(id)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := loadShop(t)
			tt.mutate(t, db)
			if hashOf(t, db).Root == base {
				t.Error("root hash should change")
			}
		})
	}
}

func TestComputeSchemaHash_CaseInsensitiveTypes(t *testing.T) {
	a := ddl.NewDatabase("d")
	ta := ddl.NewTable("t")
	ta.AddColumn(testutil.MustValue(ddl.NewColumn("a", "INT"))(t))
	a.AddTable(ta)

	b := ddl.NewDatabase("d")
	tb := ddl.NewTable("t")
	tb.AddColumn(testutil.MustValue(ddl.NewColumn("a", "int"))(t))
	b.AddTable(tb)

	testutil.AssertEqual(t, hashOf(t, a).Root, hashOf(t, b).Root)
}

func TestUniqueKeys(t *testing.T) {
	got := uniqueKeys([]string{"a", "b", "a", "a"})
	testutil.AssertDeepEqual(t, got, []string{"a", "b", "a#2", "a#3"})
}

// -----------------------------------------------------------------------------
// Comparison Tests
// -----------------------------------------------------------------------------

func TestCompareHashes_Match(t *testing.T) {
	comp := CompareHashes(hashOf(t, loadShop(t)), hashOf(t, loadShop(t)))
	if !comp.Match {
		t.Error("identical databases should match")
	}
	if len(comp.TableDiffs) != 0 {
		t.Errorf("expected no table diffs, got %d", len(comp.TableDiffs))
	}
}

func TestCompareHashes_Differences(t *testing.T) {
	expected := loadShop(t)
	actual := loadShop(t)

	actual.RemoveTable("orders")
	actual.AddTable(ddl.NewTable("audit"))
	users := actual.Table("users")
	users.RemoveColumn("email")
	users.AddColumn(testutil.MustValue(ddl.NewColumn("name", "TEXT"))(t))
	testutil.Must(t, users.Column("id").SetDataType("BIGINT", ""))
	users.AddConstraint("UNIQUE (name)")

	comp := CompareHashes(hashOf(t, expected), hashOf(t, actual))
	if comp.Match {
		t.Fatal("expected differences")
	}
	testutil.AssertDeepEqual(t, comp.MissingTables, []string{"orders"})
	testutil.AssertDeepEqual(t, comp.ExtraTables, []string{"audit"})
	testutil.AssertFalse(t, comp.SettingsChanged, "settings are unchanged")

	diff, ok := comp.TableDiffs["users"]
	if !ok {
		t.Fatal("expected users diff")
	}
	testutil.AssertDeepEqual(t, diff.MissingColumns, []string{"email"})
	testutil.AssertDeepEqual(t, diff.ExtraColumns, []string{"name"})
	testutil.AssertDeepEqual(t, diff.ModifiedColumns, []string{"id"})
	testutil.AssertDeepEqual(t, diff.ExtraConstraints, []string{"UNIQUE (name)"})
	testutil.AssertFalse(t, diff.Reordered, "members changed")
	testutil.AssertTrue(t, diff.HasDifferences(), "diff should report differences")
}

func TestCompareHashes_Reordered(t *testing.T) {
	expected := loadShop(t)
	actual := loadShop(t)
	users := actual.Table("users")
	id := users.Column("id")
	users.RemoveColumn("id")
	users.AddColumn(id)

	comp := CompareHashes(hashOf(t, expected), hashOf(t, actual))
	diff := comp.TableDiffs["users"]
	if diff == nil || !diff.Reordered {
		t.Fatalf("expected a reordered diff, got %+v", diff)
	}
}

// -----------------------------------------------------------------------------
// Detect / Format Tests
// -----------------------------------------------------------------------------

func TestDetectAndFormat(t *testing.T) {
	expected := loadShop(t)

	result, err := Detect(expected, loadShop(t))
	testutil.AssertNoError(t, err)
	testutil.AssertFalse(t, result.HasDrift, "identical databases have no drift")
	if !strings.Contains(FormatResult(result), "Schema check passed") {
		t.Errorf("unexpected output:\n%s", FormatResult(result))
	}
	testutil.AssertEqual(t, FormatSummary(Summarize(result)), "No drift detected. 2 tables in sync.")

	actual := loadShop(t)
	actual.SetCollation("utf8_bin")
	actual.RemoveTable("orders")
	result, err = Detect(expected, actual)
	testutil.AssertNoError(t, err)
	testutil.AssertTrue(t, result.HasDrift, "expected drift")

	out := FormatResult(result)
	for _, want := range []string{"Schema drift detected", "- orders", "settings differ"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	testutil.AssertEqual(t, FormatSummary(Summarize(result)), "Drift detected: 1 missing, settings changed")
}

func TestFingerprint(t *testing.T) {
	fp, err := Fingerprint(loadShop(t))
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, len(fp), 64)
}

func TestFormatQuickStatus(t *testing.T) {
	testutil.AssertEqual(t, FormatQuickStatus(false, "abcdefabcdefabcdef", ""), "OK  abcdefabcdef")
	testutil.AssertEqual(t, FormatQuickStatus(true, "aaaaaaaaaaaaaaaa", "bbbb"), "DRIFT  expected: aaaaaaaaaaaa  actual: bbbb")
}
