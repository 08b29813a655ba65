package commands

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/panyam/pystmt/loader"
	"github.com/spf13/cobra"
)

// stdinPath is the name stdin is loaded under when "-" is given as a path.
const stdinPath = "<stdin>"

// app is the state shared by all subcommands of one invocation.
type app struct {
	cfg    Config
	fs     *loader.CompositeFS
	loader *loader.Loader
	stdin  bool

	// flag values; they override cfg only when set
	logLevel  string
	format    string
	noColor   bool
	maxErrors int
}

// NewRootCmd builds the full command tree.  Each call returns an independent tree.
func NewRootCmd() *cobra.Command {
	a := &app{}
	rootCmd := &cobra.Command{
		Use:   "pystmt",
		Short: "pystmt parses the statement subset of Python source files",
		Long: `pystmt lexes and parses Python source files containing pass, break,
continue, return, global and nonlocal statements, and reports the first
error in each file with a source snippet.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	rootCmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Log level: debug, info, warn, error or off (default: "+EnvLogLevel+" or warn)")
	rootCmd.PersistentFlags().StringVarP(&a.format, "format", "o", "", "Output format: source or json (default: "+EnvFormat+" or source)")
	rootCmd.PersistentFlags().BoolVar(&a.noColor, "no-color", false, "Disable coloured output (default: "+EnvNoColor+")")
	rootCmd.PersistentFlags().IntVar(&a.maxErrors, "max-errors", 0, "Stop after this many failing files, 0 for no limit (default: "+EnvMaxErrors+")")

	rootCmd.AddCommand(
		newParseCmd(a),
		newTokensCmd(a),
		newValidateCmd(a),
		newFmtCmd(a),
		newVersionCmd(),
	)
	return rootCmd
}

// Execute runs the command line and exits the process on failure.
// This is called by main.main().
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("Error:"), err)
		os.Exit(1)
	}
}

func (a *app) setup(cmd *cobra.Command, args []string) error {
	cfg, err := LoadConfig(nil)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("log-level") {
		if cfg.LogLevel, err = ParseLogLevel(a.logLevel); err != nil {
			return err
		}
	}
	if flags.Changed("format") {
		cfg.Format = a.format
	}
	if flags.Changed("no-color") {
		cfg.NoColor = a.noColor
	}
	if flags.Changed("max-errors") {
		cfg.MaxErrors = a.maxErrors
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg

	if cfg.NoColor {
		color.NoColor = true
	}
	slog.SetDefault(slog.New(NewPrettyHandler(cmd.ErrOrStderr(), PrettyHandlerOptions{
		SlogOpts: slog.HandlerOptions{Level: cfg.LogLevel.SlogLevel()},
	})))

	a.fs = loader.NewDefaultFS("", nil)
	a.loader = loader.NewLoader(nil, a.fs)
	slog.Debug("configured", "logLevel", cfg.LogLevel.String(), "format", cfg.Format, "maxErrors", cfg.MaxErrors)
	return nil
}

// resolvePaths swaps "-" for stdin, which is read once into memory and
// mounted so the loader can treat it like any other file.  No paths means stdin.
func (a *app) resolvePaths(cmd *cobra.Command, args []string) ([]string, error) {
	if len(args) == 0 {
		args = []string{"-"}
	}
	out := make([]string, len(args))
	for i, p := range args {
		if p != "-" {
			out[i] = p
			continue
		}
		if !a.stdin {
			data, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return nil, fmt.Errorf("reading stdin: %w", err)
			}
			mem := loader.NewMemoryFS()
			mem.PreloadFiles(map[string]string{stdinPath: string(data)})
			a.fs.Mount(stdinPath, mem)
			a.stdin = true
		}
		out[i] = stdinPath
	}
	return out, nil
}

func (a *app) load(cmd *cobra.Command, args []string) (*loader.LoadResult, error) {
	paths, err := a.resolvePaths(cmd, args)
	if err != nil {
		return nil, err
	}
	return a.loader.LoadFiles(a.cfg.MaxErrors, paths...), nil
}

// printErrors writes each error to stderr with its first line highlighted.
func printErrors(w io.Writer, errs []error) {
	for _, err := range errs {
		header, rest, _ := strings.Cut(err.Error(), "\n")
		color.New(color.FgRed, color.Bold).Fprintln(w, header)
		if rest != "" {
			fmt.Fprintln(w, strings.TrimRight(rest, "\n"))
		}
	}
}

func failureSummary(result *loader.LoadResult) error {
	if !result.HasErrors() {
		return nil
	}
	failed := len(result.Paths) - len(result.Modules)
	if failed > 0 {
		return fmt.Errorf("%d of %d files failed to parse", failed, len(result.Paths))
	}
	return fmt.Errorf("%d problems found", len(result.Errors))
}
