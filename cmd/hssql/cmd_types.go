package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/devinci-it/hssql/internal/cli"
	"github.com/devinci-it/hssql/internal/types"
)

// typesCmd lists the supported data types and column constraints.
func typesCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "types",
		Short: "List supported data types and column constraints",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			if cli.Default().IsJSON() {
				type typeInfo struct {
					Name          string `json:"name"`
					Category      string `json:"category"`
					Parameterized bool   `json:"parameterized"`
				}
				var ts []typeInfo
				for _, t := range types.DataTypes() {
					ts = append(ts, typeInfo{t.String(), string(t.Category()), t.Parameterized()})
				}
				return cli.WriteJSON(out, map[string]any{
					"types":       ts,
					"constraints": types.Constraints(),
				})
			}

			table := cli.NewTable("TYPE", "CATEGORY", "PARAMETER")
			for _, t := range types.DataTypes() {
				param := ""
				if t.Parameterized() {
					param = types.FormatTypeSpec(t.String(), "n")
				}
				table.AddRow(t.String(), string(t.Category()), param)
			}
			fmt.Fprint(out, table.String())
			fmt.Fprintln(out)

			list := cli.NewList()
			for _, c := range types.Constraints() {
				list.Add(string(c))
			}
			fmt.Fprint(out, cli.Section("Column constraints", list.String()))
			return nil
		},
	}
}
