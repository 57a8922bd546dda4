package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/devinci-it/hssql/internal/cli"
)

const (
	MainTitle   = "hssql"
	MainSummary = "Relational schemas in, DDL out"
)

// CommandCategory groups commands in the root help screen.
type CommandCategory struct {
	Title    string
	Commands []CommandInfo
}

// CommandInfo is one line of the root help screen.
type CommandInfo struct {
	Name string
	Desc string
}

// customHelp displays a grouped help message for the root command.
func customHelp(cmd *cobra.Command) {
	categories := []CommandCategory{
		{
			Title: "Sessions",
			Commands: []CommandInfo{
				{"session", "Create, list, import and export schema sessions"},
				{"table", "Add or remove tables and table constraints"},
				{"column", "Add or remove columns"},
			},
		},
		{
			Title: "Generation",
			Commands: []CommandInfo{
				{"generate", "Render DDL statements and export .sql scripts"},
				{"verify", "Check exported scripts against hssql.lock"},
			},
		},
		{
			Title: "Inspection",
			Commands: []CommandInfo{
				{"inspect", "Show attributes, fingerprint and drift of a session"},
				{"watch", "Re-render DDL whenever a schema document changes"},
				{"browse", "Interactive table and column browser"},
				{"types", "List supported data types and constraints"},
			},
		},
	}

	flags := []struct{ flag, desc string }{
		{"-c, --config", "Path to config file (default: hssql.yaml)"},
		{"    --session-dir", "Session store directory"},
		{"    --json", "Machine-readable output"},
		{"-v, --verbose", "Debug logging"},
		{"-h, --help", "Show help information"},
	}

	renderCategoryHelp(cmd.OutOrStdout(), categories, flags)
}

// renderCategoryHelp writes the title, grouped commands and global flags.
func renderCategoryHelp(w io.Writer, categories []CommandCategory, flags []struct{ flag, desc string }) {
	fmt.Fprintln(w, cli.Header(MainTitle)+"  "+cli.Dim(MainSummary))
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage: hssql <command> [arguments] [flags]")

	width := 0
	for _, cat := range categories {
		for _, c := range cat.Commands {
			width = max(width, len(c.Name))
		}
	}

	for _, cat := range categories {
		fmt.Fprintln(w)
		fmt.Fprintln(w, cli.Header(cat.Title+":"))
		for _, c := range cat.Commands {
			fmt.Fprintf(w, "  %s  %s\n", cli.Highlight(c.Name+strings.Repeat(" ", width-len(c.Name))), c.Desc)
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, cli.Header("Flags:"))
	for _, f := range flags {
		fmt.Fprintf(w, "  %-18s  %s\n", f.flag, f.desc)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, cli.Dim("Run 'hssql <command> --help' for details on a command."))
}
