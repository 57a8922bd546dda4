package lockfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/devinci-it/hssql/internal/alerr"
	"github.com/devinci-it/hssql/internal/testutil"
)

func setupScripts(t *testing.T) (scriptsDir, lockPath string) {
	t.Helper()
	dir := t.TempDir()
	scriptsDir = filepath.Join(dir, "scripts")
	testutil.WriteFile(t, filepath.Join(scriptsDir, "shop.sql"),
		"CREATE DATABASE shop CHARACTER SET utf8 COLLATE utf8_general_ci;\n")
	testutil.WriteFile(t, filepath.Join(scriptsDir, "shop_drop.sql"), "DROP DATABASE IF EXISTS shop;\n")
	testutil.WriteFile(t, filepath.Join(scriptsDir, "notes.txt"), "ignored")
	return scriptsDir, filepath.Join(dir, DefaultPath())
}

// -----------------------------------------------------------------------------
// Read / Write Tests
// -----------------------------------------------------------------------------

func TestWriteAndRead(t *testing.T) {
	scriptsDir, lockPath := setupScripts(t)

	testutil.Must(t, Write(scriptsDir, lockPath))

	lf, err := Read(lockPath)
	testutil.AssertNoError(t, err)
	if lf == nil {
		t.Fatal("expected lock file, got nil")
	}
	if len(lf.Aggregate) != 64 {
		t.Errorf("aggregate should be a SHA-256 hex digest, got %q", lf.Aggregate)
	}
	if len(lf.Entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(lf.Entries))
	}
	testutil.AssertEqual(t, lf.Entries[0].Filename, "shop.sql")
	testutil.AssertEqual(t, lf.Entries[1].Filename, "shop_drop.sql")
	testutil.AssertEqual(t, lf.Entries[1].Checksum, Checksum([]byte("DROP DATABASE IF EXISTS shop;\n")))
}

func TestRead_NotFound(t *testing.T) {
	lf, err := Read(filepath.Join(t.TempDir(), "nonexistent.lock"))
	testutil.AssertNoError(t, err)
	if lf != nil {
		t.Fatalf("expected nil lock file, got %+v", lf)
	}
}

func TestRead_Empty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hssql.lock")
	testutil.WriteFile(t, path, "\n")

	_, err := Read(path)
	testutil.AssertError(t, err, alerr.ErrScriptMismatch)
}

func TestWrite_NoScripts(t *testing.T) {
	dir := t.TempDir()
	lockPath := filepath.Join(dir, "hssql.lock")

	testutil.Must(t, Write(filepath.Join(dir, "missing"), lockPath))
	testutil.AssertNoError(t, Verify(filepath.Join(dir, "missing"), lockPath))
}

// -----------------------------------------------------------------------------
// Verify Tests
// -----------------------------------------------------------------------------

func TestVerify_OK(t *testing.T) {
	scriptsDir, lockPath := setupScripts(t)
	testutil.Must(t, Write(scriptsDir, lockPath))

	testutil.AssertNoError(t, Verify(scriptsDir, lockPath))
}

func TestVerify_Failures(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(t *testing.T, scriptsDir string)
		want   string
	}{
		{
			"modified",
			func(t *testing.T, dir string) {
				testutil.WriteFile(t, filepath.Join(dir, "shop.sql"), "DROP DATABASE shop;\n")
			},
			"script checksum mismatch",
		},
		{
			"new file",
			func(t *testing.T, dir string) {
				testutil.WriteFile(t, filepath.Join(dir, "shop_alter.sql"), "ALTER DATABASE shop CHARACTER SET utf8 COLLATE utf8_bin;\n")
			},
			"script not in lock file",
		},
		{
			"removed file",
			func(t *testing.T, dir string) {
				testutil.Must(t, os.Remove(filepath.Join(dir, "shop_drop.sql")))
			},
			"script in lock file but not on disk",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scriptsDir, lockPath := setupScripts(t)
			testutil.Must(t, Write(scriptsDir, lockPath))

			tt.mutate(t, scriptsDir)

			err := Verify(scriptsDir, lockPath)
			testutil.AssertError(t, err, alerr.ErrScriptMismatch)
			testutil.AssertErrorContains(t, err, tt.want)
		})
	}
}

func TestVerify_NoLockFile(t *testing.T) {
	scriptsDir, lockPath := setupScripts(t)

	err := Verify(scriptsDir, lockPath)
	testutil.AssertError(t, err, alerr.ErrScriptMismatch)
	testutil.AssertErrorContains(t, err, "lock file not found")
}

func TestVerifyDetailed(t *testing.T) {
	scriptsDir, lockPath := setupScripts(t)
	testutil.Must(t, Write(scriptsDir, lockPath))

	testutil.WriteFile(t, filepath.Join(scriptsDir, "shop.sql"), "SHOW TABLES;\n")
	testutil.WriteFile(t, filepath.Join(scriptsDir, "shop_info.sql"), "SHOW DATABASE shop;\n")

	result, err := VerifyDetailed(scriptsDir, lockPath)
	testutil.AssertNoError(t, err)
	testutil.AssertFalse(t, result.Valid, "result should be invalid")
	testutil.AssertFalse(t, result.AggregateMatch, "aggregate should not match")
	testutil.AssertDeepEqual(t, result.ModifiedFiles, []string{"shop.sql"})
	testutil.AssertDeepEqual(t, result.NewFiles, []string{"shop_info.sql"})
	testutil.AssertDeepEqual(t, result.VerifiedFiles, []string{"shop_drop.sql"})
	if len(result.RemovedFiles) != 0 {
		t.Errorf("expected no removed files, got %v", result.RemovedFiles)
	}
}

func TestVerifyDetailed_NoLockFile(t *testing.T) {
	scriptsDir, lockPath := setupScripts(t)

	result, err := VerifyDetailed(scriptsDir, lockPath)
	testutil.AssertNoError(t, err)
	testutil.AssertFalse(t, result.LockFileExists, "lock file should be reported missing")
	testutil.AssertFalse(t, result.Valid, "result should be invalid")
}
