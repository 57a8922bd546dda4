package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/devinci-it/hssql/internal/cli"
	"github.com/devinci-it/hssql/internal/lockfile"
	"github.com/devinci-it/hssql/internal/strutil"
)

// verifyCmd checks exported scripts against hssql.lock.
func verifyCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "verify",
		Short: "Check exported scripts against hssql.lock",
		Long: `Check exported .sql scripts against the checksums in hssql.lock.

Hand-edited, added or deleted scripts are reported; the command fails when
anything differs.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := opts.cfg
			result, err := lockfile.VerifyDetailed(cfg.ScriptsDir, cfg.LockPath())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if cli.Default().IsJSON() {
				if err := cli.WriteJSON(out, result); err != nil {
					return err
				}
				return verifyError(result, cfg)
			}

			if !result.LockFileExists {
				return verifyError(result, cfg)
			}

			list := cli.NewList()
			for _, f := range result.VerifiedFiles {
				list.AddSuccess(fmt.Sprintf("%s  %s", f, cli.Dim(countStatements(filepath.Join(cfg.ScriptsDir, f)))))
			}
			for _, f := range result.ModifiedFiles {
				list.AddError(f + "  modified")
			}
			for _, f := range result.NewFiles {
				list.AddWarning(f + "  not in lock file")
			}
			for _, f := range result.RemovedFiles {
				list.AddError(f + "  missing")
			}

			fmt.Fprintln(out, cli.Header("Scripts in "+cfg.ScriptsDir))
			fmt.Fprint(out, list.String())
			fmt.Fprintln(out)

			if result.Valid {
				fmt.Fprint(out, cli.FormatSuccess(fmt.Sprintf("%s match hssql.lock",
					cli.FormatCount(len(result.VerifiedFiles), "script", "scripts"))))
				return nil
			}
			return verifyError(result, cfg)
		},
	}
}

// verifyError converts a failed verification into ErrScriptMismatch.
func verifyError(result *lockfile.VerificationResult, cfg *Config) error {
	if result.Valid {
		return nil
	}
	return lockfile.Verify(cfg.ScriptsDir, cfg.LockPath())
}

// countStatements describes how many statements a script holds.
func countStatements(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	n := len(strutil.SplitStatements(string(data)))
	return cli.FormatCount(n, "statement", "statements")
}
