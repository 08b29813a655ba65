package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newFmtCmd(a *app) *cobra.Command {
	var write bool
	cmd := &cobra.Command{
		Use:   "fmt [path|-]...",
		Short: "Rewrites source files in canonical form",
		Long: `The fmt command parses each file and prints it in canonical form: one
statement per line, single spaces after commas, no blank lines.  With -w the
files are rewritten in place and the names of changed files are printed.
Files containing comments are reported and never rewritten, since comments
do not survive formatting.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := a.load(cmd, args)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if write {
				changed, err := a.loader.Format(result)
				for _, p := range changed {
					fmt.Fprintln(out, p)
				}
				if err != nil {
					return err
				}
			} else {
				for _, p := range result.Paths {
					if module, ok := result.Modules[p]; ok {
						if err := a.printModule(out, p, module, len(result.Paths) > 1); err != nil {
							return err
						}
					}
				}
			}
			printErrors(cmd.ErrOrStderr(), result.Errors)
			return failureSummary(result)
		},
	}
	cmd.Flags().BoolVarP(&write, "write", "w", false, "Write the result back to the source files")
	return cmd
}
