package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/devinci-it/hssql/internal/alerr"
	"github.com/devinci-it/hssql/internal/validate"
	"github.com/devinci-it/hssql/pkg/ddl"
)

// tableCmd groups table mutations.
func tableCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "table",
		Short: "Add or remove tables and table constraints",
	}
	cmd.AddCommand(
		tableAddCmd(opts),
		tableRemoveCmd(opts),
		tableConstraintCmd(opts),
	)
	return cmd
}

func tableAddCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "add <db> <table>",
		Short:   "Add an empty table",
		Example: `  hssql table add shop users`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			dbName, tableName := args[0], args[1]
			if err := validate.Table(tableName); err != nil {
				return err
			}
			err := opts.mutate(cmd, dbName, func(db *ddl.Database) error {
				if db.Table(tableName) != nil {
					return alerr.New(alerr.ErrSchemaDuplicate, "table already exists").
						WithDatabase(dbName).
						WithTable(tableName)
				}
				db.AddTable(ddl.NewTable(tableName))
				return nil
			})
			if err != nil {
				return err
			}
			return report(cmd, fmt.Sprintf("added table '%s' to '%s'", tableName, dbName),
				map[string]any{"database": dbName, "table": tableName})
		},
	}
}

func tableRemoveCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <db> <table>",
		Short: "Remove a table",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			dbName, tableName := args[0], args[1]
			err := opts.mutate(cmd, dbName, func(db *ddl.Database) error {
				if _, err := requireTable(db, tableName); err != nil {
					return err
				}
				db.RemoveTable(tableName)
				return nil
			})
			if err != nil {
				return err
			}
			return report(cmd, fmt.Sprintf("removed table '%s' from '%s'", tableName, dbName),
				map[string]any{"database": dbName, "removed": tableName})
		},
	}
}

func tableConstraintCmd(opts *globalOptions) *cobra.Command {
	var remove bool

	cmd := &cobra.Command{
		Use:   "constraint <db> <table> <text>",
		Short: "Add (or --remove) a table-level constraint",
		Example: `  hssql table constraint shop orders "FOREIGN KEY (user_id) REFERENCES users(id)"
  hssql table constraint shop orders "UNIQUE (email)" --remove`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			dbName, tableName, text := args[0], args[1], args[2]
			err := opts.mutate(cmd, dbName, func(db *ddl.Database) error {
				t, err := requireTable(db, tableName)
				if err != nil {
					return err
				}
				if remove {
					return t.RemoveConstraint(text)
				}
				t.AddConstraint(text)
				return nil
			})
			if err != nil {
				return err
			}

			verb := "added"
			if remove {
				verb = "removed"
			}
			return report(cmd, fmt.Sprintf("%s constraint on '%s': %s", verb, tableName, text),
				map[string]any{"table": tableName, "constraint": text, "removed": remove})
		},
	}

	cmd.Flags().BoolVar(&remove, "remove", false, "Remove the constraint instead of adding it")
	return cmd
}
