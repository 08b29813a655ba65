package commands

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/panyam/pystmt/decl"
	"github.com/spf13/cobra"
)

func newValidateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <path|url|->...",
		Short: "Parses and checks source files",
		Long: `The validate command parses one or more files and then checks each
module for statements that are not allowed at module level, such as break
outside a loop or nonlocal declarations.  It prints OK or FAIL per file.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			paths, err := a.resolvePaths(cmd, args)
			if err != nil {
				return err
			}
			result, _ := a.loader.LoadFilesAndValidate(a.cfg.MaxErrors, paths...)

			out := cmd.OutOrStdout()
			for _, p := range result.Paths {
				analysis, parsed := result.Analysis[p]
				if !parsed || analysis.HasErrors() {
					fmt.Fprintf(out, "%s %s\n", color.RedString("FAIL"), p)
				} else {
					fmt.Fprintf(out, "%s   %s\n", color.GreenString("OK"), p)
				}
				if parsed {
					for _, d := range analysis.Diagnostics {
						if d.Severity == decl.SeverityWarning {
							fmt.Fprintf(out, "     %s:%s\n", p, d)
						}
					}
				}
			}
			printErrors(cmd.ErrOrStderr(), result.Errors)
			return failureSummary(result)
		},
	}
}
