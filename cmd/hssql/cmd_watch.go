package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/devinci-it/hssql/internal/alerr"
	"github.com/devinci-it/hssql/internal/cli"
	"github.com/devinci-it/hssql/internal/session"
	"github.com/devinci-it/hssql/pkg/ddl"
)

// watchCmd re-renders a schema document every time it changes on disk.
func watchCmd(opts *globalOptions) *cobra.Command {
	var save bool

	cmd := &cobra.Command{
		Use:   "watch <file>",
		Short: "Re-render DDL whenever a schema document changes",
		Long: `Watch a schema document (.yaml or .json) and print its CREATE statements
every time the file is saved. Errors are reported and watching continues.

With --save each valid revision also replaces the session of the same name.`,
		Example: `  hssql watch schema/shop.yaml
  hssql watch schema/shop.yaml --save`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, cli.Dim("watching "+args[0]+" (ctrl+c to stop)"))

			return watchFile(ctx, args[0], func(db *ddl.Database, err error) {
				if err != nil {
					fmt.Fprint(cmd.ErrOrStderr(), cli.FormatError(err))
					return
				}
				if save {
					if err := opts.withStore(cmd, func(ctx context.Context, store *session.Store) error {
						return store.Save(ctx, db)
					}); err != nil {
						fmt.Fprint(cmd.ErrOrStderr(), cli.FormatError(err))
						return
					}
				}
				printRevision(out, db)
			})
		},
	}

	cmd.Flags().BoolVar(&save, "save", false, "Store every valid revision in the session store")
	return cmd
}

// watchFile calls onChange with the parsed document once at start and again
// after every write, create or rename touching path. It returns when ctx is
// cancelled.
func watchFile(ctx context.Context, path string, onChange func(*ddl.Database, error)) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return alerr.Wrap(alerr.ErrSchemaNotFound, err, "failed to resolve path").WithFile(path)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return alerr.Wrap(alerr.EInternalError, err, "file watcher failed")
	}
	defer watcher.Close()

	// Editors often replace the file, so watch the directory.
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return alerr.Wrap(alerr.ErrSchemaNotFound, err, "failed to watch directory").WithFile(filepath.Dir(abs))
	}

	onChange(readDocument(abs))

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			slog.Debug("schema document changed", "file", abs, "op", event.Op.String())
			onChange(readDocument(abs))
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Warn("file watcher error", "error", err)
		}
	}
}

// printRevision writes the CREATE statements for one document revision.
func printRevision(w io.Writer, db *ddl.Database) {
	fmt.Fprintln(w, cli.Header(fmt.Sprintf("%s (%s)", db.Name(),
		cli.FormatCount(len(db.Tables()), "table", "tables"))))
	fmt.Fprintln(w, cli.HighlightSQL(db.GenerateCreateDatabase()))
	for _, stmt := range db.GenerateCreateTables() {
		fmt.Fprintln(w)
		fmt.Fprintln(w, cli.HighlightSQL(stmt))
	}
	fmt.Fprintln(w)
}
