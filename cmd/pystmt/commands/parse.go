package commands

import (
	"fmt"
	"io"

	"github.com/panyam/pystmt/decl"
	"github.com/spf13/cobra"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
)

func newParseCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "parse [path|url|-]...",
		Short: "Parses source files and prints the resulting modules",
		Long: `The parse command parses each file (directories expand to their .py
files, "-" or no arguments reads stdin) and prints the module either as
canonical source or, with --format json, as a JSON syntax tree.  Files that
fail to parse are reported on stderr and do not stop the others.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := a.load(cmd, args)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, p := range result.Paths {
				module, ok := result.Modules[p]
				if !ok {
					continue
				}
				if err := a.printModule(out, p, module, len(result.Paths) > 1); err != nil {
					return err
				}
			}
			printErrors(cmd.ErrOrStderr(), result.Errors)
			return failureSummary(result)
		},
	}
}

func (a *app) printModule(w io.Writer, path string, module *decl.Module, withHeader bool) error {
	if a.cfg.Format == FormatJSON {
		tree, err := decl.ToStruct(module)
		if err != nil {
			return err
		}
		doc := &structpb.Struct{Fields: map[string]*structpb.Value{
			"path":   structpb.NewStringValue(path),
			"module": structpb.NewStructValue(tree),
		}}
		data, err := protojson.MarshalOptions{Multiline: true, Indent: "  "}.Marshal(doc)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	}
	if withHeader {
		if _, err := fmt.Fprintf(w, "# %s\n", path); err != nil {
			return err
		}
	}
	return decl.PPrint(w, module)
}
