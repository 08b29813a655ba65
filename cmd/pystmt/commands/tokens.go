package commands

import (
	"bytes"
	"fmt"

	"github.com/panyam/pystmt/parser"
	"github.com/spf13/cobra"
)

func newTokensCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tokens [path|url|-]",
		Short: "Prints the token stream of a file",
		Long: `The tokens command runs only the lexer and prints one token per line
with its line:column.  Lexing stops at the first invalid token.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			paths, err := a.resolvePaths(cmd, args)
			if err != nil {
				return err
			}
			src, err := a.fs.ReadFile(paths[0])
			if err != nil {
				return fmt.Errorf("cannot read '%s': %w", paths[0], err)
			}
			lexemes := parser.Collect(parser.NewLexer(bytes.NewReader(src)))
			for _, line := range parser.FormatLexemes(lexemes) {
				fmt.Fprintln(cmd.OutOrStdout(), line)
			}
			if n := len(lexemes); n > 0 && lexemes[n-1].Err != nil {
				return fmt.Errorf("%s:%w", paths[0], lexemes[n-1].Err)
			}
			return nil
		},
	}
}
