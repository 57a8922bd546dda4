package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/devinci-it/hssql/internal/validate"
	"github.com/devinci-it/hssql/pkg/ddl"
)

// columnCmd groups column mutations.
func columnCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "column",
		Short: "Add or remove columns",
	}
	cmd.AddCommand(
		columnAddCmd(opts),
		columnRemoveCmd(opts),
	)
	return cmd
}

func columnAddCmd(opts *globalOptions) *cobra.Command {
	var param string
	var constraints []string

	cmd := &cobra.Command{
		Use:   "add <db> <table> <column> <type>",
		Short: "Add a column with a data type and constraints",
		Example: `  hssql column add shop users id INT --constraint "PRIMARY KEY"
  hssql column add shop users email VARCHAR --param 255 -C "NOT NULL" -C UNIQUE
  hssql column add shop users name "VARCHAR(100)"`,
		Args: cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			dbName, tableName, colName, typ := args[0], args[1], args[2], args[3]
			if err := validate.Column(colName); err != nil {
				return withTableContext(err, tableName)
			}

			var def string
			err := opts.mutate(cmd, dbName, func(db *ddl.Database) error {
				t, err := requireTable(db, tableName)
				if err != nil {
					return err
				}
				col, err := buildColumn(colName, typ, param, constraints)
				if err != nil {
					return withTableContext(err, tableName)
				}
				t.AddColumn(col)
				def = col.Definition()
				return nil
			})
			if err != nil {
				return err
			}
			return report(cmd, fmt.Sprintf("added column to '%s': %s", tableName, def),
				map[string]any{"table": tableName, "definition": def})
		},
	}

	cmd.Flags().StringVar(&param, "param", "", "Type parameter, e.g. 255 for VARCHAR")
	cmd.Flags().StringArrayVarP(&constraints, "constraint", "C", nil, "Column constraint (repeatable)")
	return cmd
}

// buildColumn assembles a validated column. A type given as "TYPE(n)" is
// parsed; --param supplies the parameter separately.
func buildColumn(name, typ, param string, constraints []string) (*ddl.Column, error) {
	var col *ddl.Column
	var err error
	if param == "" {
		col, err = ddl.NewColumn(name, typ)
	} else {
		col, err = ddl.NewColumn(name, "")
		if err == nil {
			err = col.SetDataType(typ, param)
		}
	}
	if err != nil {
		return nil, err
	}
	for _, c := range constraints {
		if err := col.AddConstraint(c); err != nil {
			return nil, err
		}
	}
	return col, nil
}

func columnRemoveCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <db> <table> <column>",
		Short: "Remove a column",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			dbName, tableName, colName := args[0], args[1], args[2]
			err := opts.mutate(cmd, dbName, func(db *ddl.Database) error {
				t, err := requireTable(db, tableName)
				if err != nil {
					return err
				}
				if _, err := requireColumn(t, colName); err != nil {
					return err
				}
				t.RemoveColumn(colName)
				return nil
			})
			if err != nil {
				return err
			}
			return report(cmd, fmt.Sprintf("removed column '%s' from '%s'", colName, tableName),
				map[string]any{"table": tableName, "removed": colName})
		},
	}
}
