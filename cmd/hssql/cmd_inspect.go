package main

import (
	"context"
	"fmt"
	"maps"
	"slices"

	"github.com/spf13/cobra"

	"github.com/devinci-it/hssql/internal/cli"
	"github.com/devinci-it/hssql/internal/drift"
	"github.com/devinci-it/hssql/internal/session"
)

// inspectCmd prints fingerprints for a session and optionally compares it
// with a schema document.
func inspectCmd(opts *globalOptions) *cobra.Command {
	var against string

	cmd := &cobra.Command{
		Use:   "inspect <db>",
		Short: "Show schema fingerprints and detect drift against a document",
		Long: `Show the merkle fingerprint of a session and of each of its tables.

With --against, the session is compared with a schema document on disk and
missing, extra and modified tables are reported.`,
		Example: `  hssql inspect shop
  hssql inspect shop --against schema/shop.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withStore(cmd, func(ctx context.Context, store *session.Store) error {
				db, err := store.Load(ctx, args[0])
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()

				if against != "" {
					doc, err := readDocument(against)
					if err != nil {
						return err
					}
					result, err := drift.Detect(db, doc)
					if err != nil {
						return err
					}
					if cli.Default().IsJSON() {
						return cli.WriteJSON(out, map[string]any{
							"drift":    result.HasDrift,
							"expected": result.ExpectedHash,
							"actual":   result.ActualHash,
							"summary":  drift.Summarize(result),
						})
					}
					fmt.Fprint(out, drift.FormatResult(result))
					fmt.Fprintln(out, drift.FormatSummary(drift.Summarize(result)))
					return nil
				}

				hash, err := drift.ComputeSchemaHash(db)
				if err != nil {
					return err
				}
				if cli.Default().IsJSON() {
					tables := make(map[string]string, len(hash.Tables))
					for k, th := range hash.Tables {
						tables[k] = th.Hash
					}
					return cli.WriteJSON(out, map[string]any{
						"database":    db.Name(),
						"fingerprint": hash.Root,
						"settings":    hash.Settings,
						"tables":      tables,
					})
				}

				fmt.Fprintln(out, cli.FormatKeyValue("database", db.Name()))
				fmt.Fprintln(out, cli.FormatKeyValue("fingerprint", hash.Root))
				fmt.Fprintln(out, cli.FormatKeyValue("settings", shortHash(hash.Settings)))
				if len(hash.Tables) == 0 {
					return nil
				}
				fmt.Fprintln(out)
				table := cli.NewTable("TABLE", "COLUMNS", "HASH")
				for _, key := range slices.Sorted(maps.Keys(hash.Tables)) {
					th := hash.Tables[key]
					table.AddRow(key, fmt.Sprint(len(th.Columns)), shortHash(th.Hash))
				}
				fmt.Fprint(out, table.String())
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&against, "against", "", "Schema document (.yaml or .json) to compare with")
	return cmd
}
