package loader

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"

	"github.com/panyam/pystmt/decl"
	"github.com/panyam/pystmt/parser"
)

// SourceExt is the extension of files picked up when a directory is loaded.
const SourceExt = ".py"

// DefaultParser adapts parser.Parse to the Parser interface.  Parse errors
// come back rendered against the source text.
type DefaultParser struct{}

func (DefaultParser) Parse(input io.Reader, sourceName string) (*decl.Module, error) {
	src, err := io.ReadAll(input)
	if err != nil {
		return nil, fmt.Errorf("reading '%s': %w", sourceName, err)
	}
	module, err := parser.Parse(bytes.NewReader(src))
	if err != nil {
		return nil, parser.WrapErrorWithSource(err, sourceName, string(src))
	}
	return module, nil
}

// LoadResult holds the outcome of a loading operation.
type LoadResult struct {
	// Paths of every file that was attempted, in load order.
	Paths []string

	// Modules that parsed successfully, keyed by path.
	Modules map[string]*decl.Module

	// Analysis results keyed by path, filled in by Validate.
	Analysis map[string]*decl.AnalysisResult

	ErrorCollector
}

// Loader reads source files from a FileSystem and parses each one on its own.
// Files are parsed sequentially; a Loader may be shared but loads are serialised.
type Loader struct {
	parser Parser
	fs     FileSystem

	mutex sync.Mutex
}

// NewLoader creates a new loader.  A nil parser means DefaultParser.
func NewLoader(p Parser, fs FileSystem) *Loader {
	if p == nil {
		p = DefaultParser{}
	}
	return &Loader{parser: p, fs: fs}
}

// LoadFile parses a single file.
func (l *Loader) LoadFile(filePath string) (*decl.Module, error) {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	return l.loadFile(filePath)
}

func (l *Loader) loadFile(filePath string) (*decl.Module, error) {
	content, err := l.fs.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("cannot read '%s': %w", filePath, err)
	}
	slog.Debug("parsing file", "path", filePath, "bytes", len(content))
	return l.parser.Parse(bytes.NewReader(content), filePath)
}

// LoadFiles parses every given file.  Directories expand to the source files
// directly inside them.  A failure in one file does not stop the others unless
// maxErrors (0 for no limit) errors have been collected.
func (l *Loader) LoadFiles(maxErrors int, paths ...string) *LoadResult {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	result := &LoadResult{
		Modules:        make(map[string]*decl.Module),
		Analysis:       make(map[string]*decl.AnalysisResult),
		ErrorCollector: ErrorCollector{MaxErrors: maxErrors},
	}
	seen := make(map[string]bool)
	for _, p := range l.expandPaths(paths, &result.ErrorCollector) {
		if result.Full() {
			break
		}
		if seen[p] {
			continue
		}
		seen[p] = true
		result.Paths = append(result.Paths, p)
		module, err := l.loadFile(p)
		if err != nil {
			result.AddErrors(err)
			continue
		}
		result.Modules[p] = module
	}
	slog.Debug("loaded files", "files", len(result.Paths), "parsed", len(result.Modules), "errors", len(result.Errors))
	return result
}

func (l *Loader) expandPaths(paths []string, ec *ErrorCollector) (out []string) {
	for _, p := range paths {
		if !l.fs.IsDir(p) {
			out = append(out, p)
			continue
		}
		files, err := l.fs.ListFiles(p)
		if err != nil {
			ec.AddErrors(fmt.Errorf("cannot list '%s': %w", p, err))
			continue
		}
		for _, f := range files {
			if isSourceFile(f) {
				out = append(out, f)
			}
		}
	}
	return
}

func isSourceFile(p string) bool {
	return strings.EqualFold(filepath.Ext(p), SourceExt)
}

// ErrHasComments is recorded by Format for files it will not rewrite.
var ErrHasComments = errors.New("file has comments, not rewriting")

// Format renders every loaded module in canonical form and writes it back
// through the file system.  Returns the paths whose content changed.
// Comments are not part of the AST, so files containing any are left alone
// and an ErrHasComments error is added to result for each.
func (l *Loader) Format(result *LoadResult) ([]string, error) {
	var changed []string
	for _, p := range result.Paths {
		module, ok := result.Modules[p]
		if !ok {
			continue
		}
		original, err := l.fs.ReadFile(p)
		if err != nil {
			return changed, err
		}
		formatted := decl.Format(module)
		if string(original) == formatted {
			continue
		}
		if comments := parser.ScanComments(bytes.NewReader(original)); len(comments) > 0 {
			slog.Warn("skipping file with comments", "path", p, "comments", len(comments))
			result.AddErrors(fmt.Errorf("%s:%s: %w", p, comments[0], ErrHasComments))
			continue
		}
		if err := l.fs.WriteFile(p, []byte(formatted)); err != nil {
			return changed, fmt.Errorf("writing '%s': %w", p, err)
		}
		changed = append(changed, p)
	}
	return changed, nil
}
