// Package session persists schema sessions in a local SQLite database.
//
// A session is one database document (its map form) plus an append-only log
// of every statement generated for it. The store lives in the session
// directory (Generated_Scripts by default) and is safe for concurrent use.
package session

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/devinci-it/hssql/internal/alerr"
	"github.com/devinci-it/hssql/internal/drift"
	"github.com/devinci-it/hssql/pkg/ddl"

	_ "modernc.org/sqlite" // SQLite driver
)

// StoreFile is the SQLite database file name inside the session directory.
const StoreFile = "sessions.db"

// Store provides persistence of sessions and their script logs.
type Store struct {
	db   *sql.DB
	path string
	mu   sync.RWMutex

	// persisted counts the script statements already appended per database.
	persisted map[*ddl.Database]int
}

// Info describes a stored session without decoding its document.
type Info struct {
	Name        string
	Fingerprint string
	Tables      int
	Statements  int
	UpdatedAt   time.Time
}

// ScriptEntry is one logged statement.
type ScriptEntry struct {
	Seq       int
	Statement string
	CreatedAt time.Time
}

// OpenDir opens or creates the store inside a session directory.
func OpenDir(ctx context.Context, dir string) (*Store, error) {
	return Open(ctx, filepath.Join(dir, StoreFile))
}

// Open opens or creates the store at path. Parent directories are created.
func Open(ctx context.Context, path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, alerr.Wrap(alerr.ErrCacheInit, err, "failed to create session directory").
			With("path", filepath.Dir(path))
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, alerr.Wrap(alerr.ErrCacheInit, err, "failed to open session store").
			With("path", path)
	}
	// One writer at a time; SQLite serializes writes anyway.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, alerr.Wrap(alerr.ErrCacheInit, err, "failed to connect to session store").
			With("path", path)
	}

	s := &Store{db: db, path: path, persisted: make(map[*ddl.Database]int)}
	if err := s.initSchema(ctx); err != nil {
		db.Close()
		return nil, err
	}

	slog.Debug("session store opened", "path", path)
	return s, nil
}

// Close closes the store.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the path to the store file.
func (s *Store) Path() string {
	if s == nil {
		return ""
	}
	return s.path
}

// initSchema creates the store tables if they don't exist.
func (s *Store) initSchema(ctx context.Context) error {
	schema := `
		-- Latest document per session
		CREATE TABLE IF NOT EXISTS sessions (
			name          TEXT PRIMARY KEY,
			document      TEXT NOT NULL,
			fingerprint   TEXT NOT NULL,
			table_count   INTEGER NOT NULL,
			updated_at    TEXT NOT NULL
		);

		-- Generated statements, in call order
		CREATE TABLE IF NOT EXISTS script_log (
			session     TEXT NOT NULL,
			seq         INTEGER NOT NULL,
			statement   TEXT NOT NULL,
			created_at  TEXT NOT NULL,
			PRIMARY KEY (session, seq)
		);

		CREATE TABLE IF NOT EXISTS store_meta (
			key   TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);

		INSERT OR REPLACE INTO store_meta (key, value) VALUES ('version', '1');
	`

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return alerr.Wrap(alerr.ErrCacheInit, err, "failed to initialize session store schema")
	}
	return nil
}

// -----------------------------------------------------------------------------
// Session Operations
// -----------------------------------------------------------------------------

// Save stores the database document under its name and appends the
// statements of its script log that this store has not yet persisted.
// Saving the same database twice records each statement once; a database
// returned by Load starts with an empty log.
func (s *Store) Save(ctx context.Context, db *ddl.Database) error {
	doc, err := encodeDocument(db)
	if err != nil {
		return err
	}
	fp, err := drift.Fingerprint(db)
	if err != nil {
		return err
	}
	now := timestamp()

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return alerr.Wrap(alerr.ErrCacheWrite, err, "failed to begin transaction").WithDatabase(db.Name())
	}
	defer tx.Rollback() //nolint:errcheck

	_, err = tx.ExecContext(ctx,
		"INSERT OR REPLACE INTO sessions (name, document, fingerprint, table_count, updated_at) VALUES (?, ?, ?, ?, ?)",
		db.Name(), doc, fp, len(db.Tables()), now,
	)
	if err != nil {
		return alerr.Wrap(alerr.ErrCacheWrite, err, "failed to write session").WithDatabase(db.Name())
	}

	script := db.Script()
	pending := script[min(s.persisted[db], len(script)):]
	if err := appendStatements(ctx, tx, db.Name(), pending, now); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return alerr.Wrap(alerr.ErrCacheWrite, err, "failed to commit session").WithDatabase(db.Name())
	}
	s.persisted[db] = len(script)

	slog.Debug("session saved", "name", db.Name(), "fingerprint", fp[:12], "statements", len(pending))
	return nil
}

// Load decodes the stored document of a session. The returned database has
// an empty script log; use History for logged statements.
func (s *Store) Load(ctx context.Context, name string) (*ddl.Database, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var doc string
	err := s.db.QueryRowContext(ctx, "SELECT document FROM sessions WHERE name = ?", name).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, s.notFound(ctx, name)
	}
	if err != nil {
		return nil, alerr.Wrap(alerr.ErrCacheRead, err, "failed to read session").WithDatabase(name)
	}

	return decodeDocument(name, doc)
}

// Exists reports whether a session is stored under name.
func (s *Store) Exists(ctx context.Context, name string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM sessions WHERE name = ?", name).Scan(&n); err != nil {
		return false, alerr.Wrap(alerr.ErrCacheRead, err, "failed to read session").WithDatabase(name)
	}
	return n > 0, nil
}

// List returns every stored session ordered by name.
func (s *Store) List(ctx context.Context) ([]Info, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT s.name, s.fingerprint, s.table_count, s.updated_at,
		       (SELECT COUNT(*) FROM script_log l WHERE l.session = s.name)
		FROM sessions s
		ORDER BY s.name`)
	if err != nil {
		return nil, alerr.Wrap(alerr.ErrCacheRead, err, "failed to list sessions")
	}
	defer rows.Close()

	var out []Info
	for rows.Next() {
		var info Info
		var updated string
		if err := rows.Scan(&info.Name, &info.Fingerprint, &info.Tables, &updated, &info.Statements); err != nil {
			return nil, alerr.Wrap(alerr.ErrCacheRead, err, "failed to scan session")
		}
		info.UpdatedAt = parseTimestamp(updated)
		out = append(out, info)
	}

	return out, rows.Err()
}

// Delete removes a session and its script log.
func (s *Store) Delete(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return alerr.Wrap(alerr.ErrCacheWrite, err, "failed to begin transaction").WithDatabase(name)
	}
	defer tx.Rollback() //nolint:errcheck

	res, err := tx.ExecContext(ctx, "DELETE FROM sessions WHERE name = ?", name)
	if err != nil {
		return alerr.Wrap(alerr.ErrCacheWrite, err, "failed to delete session").WithDatabase(name)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return alerr.New(alerr.ErrSchemaNotFound, "session not found").WithDatabase(name)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM script_log WHERE session = ?", name); err != nil {
		return alerr.Wrap(alerr.ErrCacheWrite, err, "failed to delete script log").WithDatabase(name)
	}

	if err := tx.Commit(); err != nil {
		return alerr.Wrap(alerr.ErrCacheWrite, err, "failed to commit delete").WithDatabase(name)
	}
	for db := range s.persisted {
		if db.Name() == name {
			delete(s.persisted, db)
		}
	}
	return nil
}

// Fingerprint returns the stored merkle root of a session.
func (s *Store) Fingerprint(ctx context.Context, name string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var fp string
	err := s.db.QueryRowContext(ctx, "SELECT fingerprint FROM sessions WHERE name = ?", name).Scan(&fp)
	if errors.Is(err, sql.ErrNoRows) {
		return "", s.notFound(ctx, name)
	}
	if err != nil {
		return "", alerr.Wrap(alerr.ErrCacheRead, err, "failed to read fingerprint").WithDatabase(name)
	}
	return fp, nil
}

// -----------------------------------------------------------------------------
// Script Log Operations
// -----------------------------------------------------------------------------

// AppendScript appends statements to the log of an existing session.
func (s *Store) AppendScript(ctx context.Context, name string, stmts []string) error {
	if len(stmts) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return alerr.Wrap(alerr.ErrCacheWrite, err, "failed to begin transaction").WithDatabase(name)
	}
	defer tx.Rollback() //nolint:errcheck

	var n int
	if err := tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM sessions WHERE name = ?", name).Scan(&n); err != nil {
		return alerr.Wrap(alerr.ErrCacheRead, err, "failed to read session").WithDatabase(name)
	}
	if n == 0 {
		return alerr.New(alerr.ErrSchemaNotFound, "session not found").WithDatabase(name)
	}

	if err := appendStatements(ctx, tx, name, stmts, timestamp()); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return alerr.Wrap(alerr.ErrCacheWrite, err, "failed to commit script log").WithDatabase(name)
	}
	return nil
}

// History returns the logged statements of a session in call order.
func (s *Store) History(ctx context.Context, name string) ([]ScriptEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT seq, statement, created_at FROM script_log WHERE session = ? ORDER BY seq", name)
	if err != nil {
		return nil, alerr.Wrap(alerr.ErrCacheRead, err, "failed to read script log").WithDatabase(name)
	}
	defer rows.Close()

	var out []ScriptEntry
	for rows.Next() {
		var e ScriptEntry
		var created string
		if err := rows.Scan(&e.Seq, &e.Statement, &created); err != nil {
			return nil, alerr.Wrap(alerr.ErrCacheRead, err, "failed to scan script entry").WithDatabase(name)
		}
		e.CreatedAt = parseTimestamp(created)
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, alerr.Wrap(alerr.ErrCacheRead, err, "failed to read script log").WithDatabase(name)
	}

	if len(out) == 0 {
		if err := s.requireSession(ctx, name); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Statements returns just the statement text of History.
func (s *Store) Statements(ctx context.Context, name string) ([]string, error) {
	entries, err := s.History(ctx, name)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Statement
	}
	return out, nil
}

// -----------------------------------------------------------------------------
// Helpers
// -----------------------------------------------------------------------------

func appendStatements(ctx context.Context, tx *sql.Tx, name string, stmts []string, now string) error {
	if len(stmts) == 0 {
		return nil
	}

	var next int
	if err := tx.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(seq), 0) + 1 FROM script_log WHERE session = ?", name,
	).Scan(&next); err != nil {
		return alerr.Wrap(alerr.ErrCacheRead, err, "failed to read script log").WithDatabase(name)
	}

	for i, stmt := range stmts {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO script_log (session, seq, statement, created_at) VALUES (?, ?, ?, ?)",
			name, next+i, stmt, now,
		); err != nil {
			return alerr.Wrap(alerr.ErrCacheWrite, err, "failed to append statement").WithDatabase(name)
		}
	}
	return nil
}

// requireSession returns ErrSchemaNotFound when name is not stored.
// Callers hold the read lock.
func (s *Store) requireSession(ctx context.Context, name string) error {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM sessions WHERE name = ?", name).Scan(&n); err != nil {
		return alerr.Wrap(alerr.ErrCacheRead, err, "failed to read session").WithDatabase(name)
	}
	if n == 0 {
		return s.notFound(ctx, name)
	}
	return nil
}

// notFound builds ErrSchemaNotFound with a suggestion from the stored names.
// Callers hold the read lock.
func (s *Store) notFound(ctx context.Context, name string) error {
	e := alerr.New(alerr.ErrSchemaNotFound, "session not found").WithDatabase(name)

	rows, err := s.db.QueryContext(ctx, "SELECT name FROM sessions ORDER BY name")
	if err != nil {
		return e
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var n string
		if rows.Scan(&n) == nil {
			names = append(names, n)
		}
	}
	return e.WithSuggestion(name, names)
}

func timestamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}

func parseTimestamp(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
