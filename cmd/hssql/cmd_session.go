package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/devinci-it/hssql/internal/alerr"
	"github.com/devinci-it/hssql/internal/cli"
	"github.com/devinci-it/hssql/internal/session"
	"github.com/devinci-it/hssql/internal/strutil"
	"github.com/devinci-it/hssql/internal/validate"
	"github.com/devinci-it/hssql/pkg/ddl"
)

// sessionCmd groups session lifecycle commands.
func sessionCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Create, list, import and export schema sessions",
	}
	cmd.AddCommand(
		sessionNewCmd(opts),
		sessionListCmd(opts),
		sessionShowCmd(opts),
		sessionDeleteCmd(opts),
		sessionHistoryCmd(opts),
		sessionImportCmd(opts),
		sessionExportCmd(opts),
	)
	return cmd
}

func sessionNewCmd(opts *globalOptions) *cobra.Command {
	var schema, charset, collation string

	cmd := &cobra.Command{
		Use:   "new <db>",
		Short: "Start a new session for a database",
		Example: `  hssql session new shop
  hssql session new shop --charset utf8mb4 --collation utf8mb4_unicode_ci`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			if err := validate.Database(name); err != nil {
				return err
			}
			return opts.withStore(cmd, func(ctx context.Context, store *session.Store) error {
				exists, err := store.Exists(ctx, name)
				if err != nil {
					return err
				}
				if exists {
					return alerr.New(alerr.ErrSchemaDuplicate, "session already exists").
						WithDatabase(name).
						WithHelp("delete it first with 'hssql session delete " + name + "'")
				}

				db := ddl.NewDatabase(name)
				db.SetSchema(firstNonEmpty(schema, opts.cfg.Schema))
				db.SetCharset(firstNonEmpty(charset, opts.cfg.Charset))
				db.SetCollation(firstNonEmpty(collation, opts.cfg.Collation))

				if err := store.Save(ctx, db); err != nil {
					return err
				}
				return report(cmd, fmt.Sprintf("created session '%s'", name), db.ToMap())
			})
		},
	}

	cmd.Flags().StringVar(&schema, "schema", "", "Schema name (default from config)")
	cmd.Flags().StringVar(&charset, "charset", "", "Character set (default from config)")
	cmd.Flags().StringVar(&collation, "collation", "", "Collation (default from config)")
	return cmd
}

func sessionListCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored sessions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withStore(cmd, func(ctx context.Context, store *session.Store) error {
				infos, err := store.List(ctx)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				if cli.Default().IsJSON() {
					rows := make([]map[string]any, len(infos))
					for i, info := range infos {
						rows[i] = map[string]any{
							"name":        info.Name,
							"tables":      info.Tables,
							"statements":  info.Statements,
							"fingerprint": info.Fingerprint,
							"updated_at":  info.UpdatedAt.Format(time.RFC3339),
						}
					}
					return cli.WriteJSON(out, rows)
				}

				if len(infos) == 0 {
					fmt.Fprint(out, cli.FormatNote("no sessions yet; start one with 'hssql session new <db>'"))
					return nil
				}

				table := cli.NewTable("NAME", "TABLES", "STATEMENTS", "FINGERPRINT", "UPDATED")
				for _, info := range infos {
					table.AddRow(
						info.Name,
						fmt.Sprint(info.Tables),
						fmt.Sprint(info.Statements),
						shortHash(info.Fingerprint),
						info.UpdatedAt.Local().Format("2006-01-02 15:04"),
					)
				}
				fmt.Fprint(out, table.String())
				return nil
			})
		},
	}
}

func sessionShowCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show <db>",
		Short: "Show a session's settings, tables and columns",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withStore(cmd, func(ctx context.Context, store *session.Store) error {
				db, err := store.Load(ctx, args[0])
				if err != nil {
					return err
				}
				if cli.Default().IsJSON() {
					return cli.WriteJSON(cmd.OutOrStdout(), db.ToMap())
				}
				fmt.Fprint(cmd.OutOrStdout(), renderDatabase(db))
				return nil
			})
		},
	}
}

func sessionDeleteCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <db>",
		Short: "Delete a session and its script log",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withStore(cmd, func(ctx context.Context, store *session.Store) error {
				if err := store.Delete(ctx, args[0]); err != nil {
					return err
				}
				return report(cmd, fmt.Sprintf("deleted session '%s'", args[0]), map[string]any{"deleted": args[0]})
			})
		},
	}
}

func sessionHistoryCmd(opts *globalOptions) *cobra.Command {
	var full bool

	cmd := &cobra.Command{
		Use:   "history <db>",
		Short: "Show every statement generated for a session",
		Long: `Show every statement generated for a session, oldest first.

Multi-line statements are shortened to their first line unless --full is given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withStore(cmd, func(ctx context.Context, store *session.Store) error {
				entries, err := store.History(ctx, args[0])
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				if cli.Default().IsJSON() {
					rows := make([]map[string]any, len(entries))
					for i, e := range entries {
						rows[i] = map[string]any{
							"seq":        e.Seq,
							"statement":  e.Statement,
							"created_at": e.CreatedAt.Format(time.RFC3339),
						}
					}
					return cli.WriteJSON(out, rows)
				}

				if len(entries) == 0 {
					fmt.Fprint(out, cli.FormatNote("no statements generated yet; run 'hssql generate "+args[0]+"'"))
					return nil
				}
				for _, e := range entries {
					seq := cli.Dim(fmt.Sprintf("%3d", e.Seq))
					if full {
						fmt.Fprintln(out, seq)
						fmt.Fprintln(out, strutil.Indent(cli.HighlightSQL(e.Statement), 4))
						continue
					}
					fmt.Fprintf(out, "%s %s\n", seq, cli.HighlightSQL(strutil.FirstLine(e.Statement)))
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&full, "full", false, "Print complete statements instead of their first line")
	return cmd
}

func sessionImportCmd(opts *globalOptions) *cobra.Command {
	var name string
	var replace bool

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import a YAML or JSON schema document as a session",
		Example: `  hssql session import schemas/shop.yaml
  hssql session import shop.json --name shop_copy --replace`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := readDocument(args[0])
			if err != nil {
				return err
			}
			if name != "" {
				db.SetName(name)
			}

			return opts.withStore(cmd, func(ctx context.Context, store *session.Store) error {
				exists, err := store.Exists(ctx, db.Name())
				if err != nil {
					return err
				}
				if exists && !replace {
					return alerr.New(alerr.ErrSchemaDuplicate, "session already exists").
						WithDatabase(db.Name()).
						WithHelp("pass --replace to overwrite it, or --name to import under another name")
				}
				if err := store.Save(ctx, db); err != nil {
					return err
				}
				msg := fmt.Sprintf("imported '%s' (%s)", db.Name(), cli.FormatCount(len(db.Tables()), "table", "tables"))
				return report(cmd, msg, db.ToMap())
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Session name (default: the document's database_name)")
	cmd.Flags().BoolVar(&replace, "replace", false, "Overwrite an existing session")
	return cmd
}

func sessionExportCmd(opts *globalOptions) *cobra.Command {
	var output string
	format := &formatValue{}

	cmd := &cobra.Command{
		Use:   "export <db>",
		Short: "Export a session as a YAML or JSON schema document",
		Example: `  hssql session export shop
  hssql session export shop -o shop.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withStore(cmd, func(ctx context.Context, store *session.Store) error {
				db, err := store.Load(ctx, args[0])
				if err != nil {
					return err
				}

				f := format.format
				if f == "" {
					f = ddl.FormatYAML
					if output != "" {
						f = ddl.FormatForPath(output)
					}
				}

				data, err := ddl.MarshalDocument(db, f)
				if err != nil {
					return err
				}

				if output == "" {
					_, err := cmd.OutOrStdout().Write(data)
					return err
				}
				if err := os.MkdirAll(filepath.Dir(output), DirPerm); err != nil {
					return fmt.Errorf("failed to create output directory: %w", err)
				}
				if err := os.WriteFile(output, data, FilePerm); err != nil {
					return fmt.Errorf("failed to write %s: %w", output, err)
				}
				return report(cmd, fmt.Sprintf("exported '%s' to %s", db.Name(), output), map[string]any{"file": output})
			})
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default: stdout)")
	cmd.Flags().Var(format, "format", "Document format: yaml or json (default from file extension)")
	return cmd
}

// readDocument decodes and validates a schema document file.
func readDocument(path string) (*ddl.Database, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, alerr.Wrap(alerr.ErrSchemaNotFound, err, "failed to read schema document").WithFile(path)
	}
	db, err := ddl.UnmarshalDocument(data)
	if err != nil {
		return nil, withFile(err, path)
	}
	if err := db.Validate(); err != nil {
		return nil, err
	}
	return db, nil
}

// withFile attaches file context to an alerr error.
func withFile(err error, path string) error {
	var e *alerr.Error
	if errors.As(err, &e) {
		e.WithFile(path)
	}
	return err
}

// report prints a success line, or v as JSON in JSON mode.
func report(cmd *cobra.Command, msg string, v any) error {
	if cli.Default().IsJSON() {
		return cli.WriteJSON(cmd.OutOrStdout(), v)
	}
	fmt.Fprint(cmd.OutOrStdout(), cli.FormatSuccess(msg))
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// shortHash truncates a hex fingerprint for display.
func shortHash(h string) string {
	if len(h) > 12 {
		return h[:12]
	}
	return h
}
