package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/devinci-it/hssql/internal/alerr"
	"github.com/devinci-it/hssql/internal/cli"
	"github.com/devinci-it/hssql/internal/session"
	"github.com/devinci-it/hssql/internal/ui"
)

// browseCmd opens the interactive schema browser.
func browseCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "browse <db>",
		Short: "Browse a session interactively",
		Long: `Open a terminal browser over a session's tables, columns, DDL and
script log.

Keys: tab switches panels, 1/2 switch tabs, j/k move, q quits.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cli.Default().IsTTY() {
				return alerr.New(alerr.EInternalError, "browse requires an interactive terminal").
					WithHelp("use 'hssql session show " + args[0] + "' instead")
			}

			var browser *ui.Browser
			err := opts.withStore(cmd, func(ctx context.Context, store *session.Store) error {
				db, err := store.Load(ctx, args[0])
				if err != nil {
					return err
				}
				script, err := store.Statements(ctx, args[0])
				if err != nil {
					return err
				}
				browser = ui.NewBrowser(db, script)
				return nil
			})
			if err != nil {
				return err
			}
			return browser.Run()
		},
	}
}
