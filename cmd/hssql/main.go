// Package main provides the hssql command-line tool.
// hssql keeps relational schemas (databases, tables, columns) in a local
// session store and renders them to MySQL-flavoured DDL.
//
// Usage:
//
//	hssql session new <db>                   # Start a schema session
//	hssql table add <db> <table>             # Add a table
//	hssql column add <db> <t> <c> <type>     # Add a column
//	hssql generate <db> --statement all      # Print DDL (and log it)
//	hssql generate <db> --write              # Export DDL to .sql and update hssql.lock
//	hssql verify                             # Check exported scripts against hssql.lock
//	hssql inspect <db> --against schema.yaml # Compare a session with a document
//	hssql watch schema.yaml                  # Re-render DDL on every save
//	hssql browse <db>                        # Interactive browser
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/devinci-it/hssql/internal/cli"
)

// version is set via ldflags during build: -ldflags="-X main.version=v1.0.0"
var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprint(os.Stderr, cli.FormatError(err))
		os.Exit(1)
	}
}

// newRootCmd builds the full command tree. Each call returns fresh state so
// tests can execute commands independently.
func newRootCmd() *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:           "hssql",
		Short:         "Relational schema modeller and DDL generator",
		Long:          `hssql models databases, tables and columns and renders them to SQL DDL (CREATE/ALTER/DROP/SHOW).`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.init(cmd)
		},
	}

	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		if cmd != rootCmd {
			cmd.Println(cmd.UsageString())
			return
		}
		customHelp(cmd)
	})

	opts.bind(rootCmd.PersistentFlags())

	rootCmd.AddCommand(
		sessionCmd(opts),
		tableCmd(opts),
		columnCmd(opts),
		generateCmd(opts),
		verifyCmd(opts),
		inspectCmd(opts),
		watchCmd(opts),
		browseCmd(opts),
		typesCmd(opts),
	)

	return rootCmd
}
