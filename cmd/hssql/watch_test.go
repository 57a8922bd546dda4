package main

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/devinci-it/hssql/internal/cli"
	"github.com/devinci-it/hssql/internal/testutil"
	"github.com/devinci-it/hssql/pkg/ddl"
)

type revision struct {
	db  *ddl.Database
	err error
}

func TestWatchFileReloads(t *testing.T) {
	dir := t.TempDir()
	path := testutil.WriteSchema(t, dir, "shop.yaml", "")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	revisions := make(chan revision, 16)
	done := make(chan error, 1)
	go func() {
		done <- watchFile(ctx, path, func(db *ddl.Database, err error) {
			select {
			case revisions <- revision{db, err}:
			case <-ctx.Done():
			}
		})
	}()

	first := waitRevision(t, revisions, func(r revision) bool { return r.err == nil })
	testutil.AssertEqual(t, len(first.db.Tables()), 2)

	testutil.WriteFile(t, path, `database_name: shop
tables:
  - name: users
    columns:
      - name: id
        data_type: INT
        constraints: []
    constraints: []
`)
	next := waitRevision(t, revisions, func(r revision) bool {
		return r.err == nil && len(r.db.Tables()) == 1
	})
	testutil.AssertEqual(t, next.db.Tables()[0].Name(), "users")

	testutil.WriteFile(t, path, "database_name: [\n")
	waitRevision(t, revisions, func(r revision) bool { return r.err != nil })

	cancel()
	select {
	case err := <-done:
		testutil.AssertNoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watchFile did not return after cancel")
	}
}

func TestWatchFileMissingDirectory(t *testing.T) {
	err := watchFile(context.Background(), "/does/not/exist/shop.yaml", func(*ddl.Database, error) {})
	if err == nil {
		t.Fatal("expected an error for a missing directory")
	}
}

func TestPrintRevision(t *testing.T) {
	cli.SetDefault(cli.NewConfigWithMode(cli.ModePlain))
	dir := t.TempDir()
	db, err := readDocument(testutil.WriteSchema(t, dir, "shop.yaml", ""))
	testutil.AssertNoError(t, err)

	var buf bytes.Buffer
	printRevision(&buf, db)
	out := buf.String()
	testutil.AssertTrue(t, strings.HasPrefix(out, "shop (2 tables)"), "header should name the database:\n"+out)
	testutil.AssertSQLContains(t, out, "CREATE TABLE users ( id INT PRIMARY KEY, email VARCHAR(255) NOT NULL UNIQUE );")
}

// waitRevision returns the first revision matching ok or fails after a timeout.
func waitRevision(t *testing.T, ch <-chan revision, ok func(revision) bool) revision {
	t.Helper()
	timeout := time.After(5 * time.Second)
	for {
		select {
		case r := <-ch:
			if ok(r) {
				return r
			}
		case <-timeout:
			t.Fatal("timed out waiting for a revision")
			return revision{}
		}
	}
}
