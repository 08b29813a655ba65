package parser

import (
	"io"
	"log/slog"
	"strings"

	"github.com/panyam/pystmt/decl"
)

// Parse lexes and parses a complete source file.
func Parse(input io.Reader) (*decl.Module, error) {
	return ParseTokens(NewLexer(input))
}

// ParseString is Parse over a string.
func ParseString(input string) (*decl.Module, error) {
	return Parse(strings.NewReader(input))
}

// ParseTokens parses a module from an arbitrary token source.  Parsing stops
// at the first error; no partial module is returned.
func ParseTokens(src TokenSource) (*decl.Module, error) {
	la, module, err := ParseFileInput(src.Next(), src)
	if err != nil {
		return nil, err
	}
	if err := expectEndOfStream(la, src); err != nil {
		return nil, err
	}
	slog.Debug("parsed module", "statements", len(module.Body), "end", module.End().String())
	return module, nil
}

// expectEndOfStream fails if anything is left after the module grammar is done.
func expectEndOfStream(la *Lexeme, src TokenSource) error {
	if la == nil {
		return nil
	}
	if _, err := kindOf(la); err != nil {
		return err
	}
	return syntaxErrorf(la, src, EndOfStream)
}
