package loader

import (
	"io"

	"github.com/panyam/pystmt/decl"
)

// Parser turns one source file into a module.
type Parser interface {
	// Parse reads from the input reader and returns the parsed module.
	// sourceName is used for context in error messages (e.g., file path).
	Parse(input io.Reader, sourceName string) (*decl.Module, error)
}
