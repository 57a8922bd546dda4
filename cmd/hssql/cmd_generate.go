package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/devinci-it/hssql/internal/alerr"
	"github.com/devinci-it/hssql/internal/cli"
	"github.com/devinci-it/hssql/internal/lockfile"
	"github.com/devinci-it/hssql/internal/session"
	"github.com/devinci-it/hssql/internal/strutil"
	"github.com/devinci-it/hssql/pkg/ddl"
)

// generateCmd renders DDL for a session, logs it and optionally exports it.
func generateCmd(opts *globalOptions) *cobra.Command {
	kind := statementKind("all")
	var write bool

	cmd := &cobra.Command{
		Use:   "generate <db>",
		Short: "Render DDL statements and export .sql scripts",
		Long: `Render DDL statements for a session.

Statement kinds:
  create       CREATE DATABASE
  alter        ALTER DATABASE (charset and collation)
  drop         DROP DATABASE IF EXISTS
  show-tables  SHOW TABLES
  show-info    SHOW DATABASE
  tables       CREATE TABLE for every table
  all          CREATE DATABASE followed by every CREATE TABLE

Every generated statement is appended to the session's script log.
With --write the statements are also saved to the scripts directory and
hssql.lock is refreshed.`,
		Example: `  hssql generate shop
  hssql generate shop --statement drop
  hssql generate shop --write`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withStore(cmd, func(ctx context.Context, store *session.Store) error {
				db, err := store.Load(ctx, args[0])
				if err != nil {
					return err
				}

				stmts, err := generateStatements(db, string(kind))
				if err != nil {
					return err
				}
				if err := store.Save(ctx, db); err != nil {
					return err
				}
				slog.Debug("statements generated", "database", db.Name(), "kind", kind, "count", len(stmts))

				var file string
				if write {
					file, err = writeScript(opts.cfg, db.Name(), string(kind), stmts)
					if err != nil {
						return err
					}
				}

				out := cmd.OutOrStdout()
				if cli.Default().IsJSON() {
					return cli.WriteJSON(out, map[string]any{
						"database":   db.Name(),
						"statements": stmts,
						"file":       file,
					})
				}

				for i, stmt := range stmts {
					if i > 0 {
						fmt.Fprintln(out)
					}
					fmt.Fprintln(out, cli.HighlightSQL(stmt))
				}
				if file != "" {
					fmt.Fprintln(out)
					fmt.Fprint(out, cli.FormatSuccess("wrote "+file))
				}
				return nil
			})
		},
	}

	cmd.Flags().VarP(&kind, "statement", "s", "Statement kind: create|alter|drop|show-tables|show-info|tables|all")
	cmd.Flags().BoolVarP(&write, "write", "w", false, "Export the statements to the scripts directory and update hssql.lock")
	return cmd
}

// generateStatements runs the Generate* calls for kind. CREATE TABLE output
// requires every column to pass validation first.
func generateStatements(db *ddl.Database, kind string) ([]string, error) {
	switch kind {
	case "create":
		return []string{db.GenerateCreateDatabase()}, nil
	case "alter":
		return []string{db.GenerateAlterDatabase()}, nil
	case "drop":
		return []string{db.GenerateDropDatabase()}, nil
	case "show-tables":
		return []string{db.GenerateShowTables()}, nil
	case "show-info":
		return []string{db.GenerateShowDatabaseInfo()}, nil
	case "tables":
		if err := db.Validate(); err != nil {
			return nil, err
		}
		return db.GenerateCreateTables(), nil
	case "all", "":
		if err := db.Validate(); err != nil {
			return nil, err
		}
		stmts := []string{db.GenerateCreateDatabase()}
		return append(stmts, db.GenerateCreateTables()...), nil
	}
	return nil, alerr.New(alerr.ErrSchemaInvalid, "unknown statement kind").With("statement", kind)
}

// writeScript saves statements as <db>[_<kind>].sql and refreshes the lock file.
func writeScript(cfg *Config, database, kind string, stmts []string) (string, error) {
	if kind == "all" {
		kind = ""
	}
	if err := os.MkdirAll(cfg.ScriptsDir, DirPerm); err != nil {
		return "", alerr.Wrap(alerr.ErrScriptWrite, err, "failed to create scripts directory").
			WithFile(cfg.ScriptsDir)
	}

	path := filepath.Join(cfg.ScriptsDir, strutil.ScriptFileName(database, kind))
	if err := os.WriteFile(path, []byte(strutil.JoinStatements(stmts)), FilePerm); err != nil {
		return "", alerr.Wrap(alerr.ErrScriptWrite, err, "failed to write script").WithFile(path)
	}

	if err := lockfile.Write(cfg.ScriptsDir, cfg.LockPath()); err != nil {
		return "", err
	}
	slog.Debug("script written", "file", path, "lock", cfg.LockPath())
	return path, nil
}
