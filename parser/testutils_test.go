package parser

import (
	"errors"
	"strconv"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/panyam/pystmt/decl"
	"github.com/stretchr/testify/require"
)

// ignorePositions compares ASTs by shape only; positions are asserted separately where they matter.
var ignorePositions = cmpopts.IgnoreTypes(decl.NodeInfo{})

func printWithLineNumbers(t *testing.T, input string) {
	t.Helper()
	for i, line := range strings.Split(input, "\n") {
		if len(line) > 0 {
			t.Logf("%03d: %s", i+1, line)
		}
	}
}

func parseString(t *testing.T, input string) *decl.Module {
	t.Helper()
	printWithLineNumbers(t, input)
	module, err := ParseString(input)
	require.NoError(t, err, "Input:\n%s", input)
	require.NotNil(t, module, "Input:\n%s", input)
	return module
}

func parseStringWithError(t *testing.T, input string) *ParseError {
	t.Helper()
	printWithLineNumbers(t, input)
	module, err := ParseString(input)
	require.Error(t, err, "Expected parsing to fail for Input:\n%s", input)
	require.Nil(t, module, "A failed parse must not return a partial module")
	var pe *ParseError
	require.True(t, errors.As(err, &pe), "expected *ParseError, got %T", err)
	return pe
}

// sourceFor lexes the whole input up front so productions can be driven one at a time.
func sourceFor(t *testing.T, input string) *SliceSource {
	t.Helper()
	lexer := NewLexer(strings.NewReader(input))
	lexemes := Collect(lexer)
	return NewSliceSource(lexemes, lexer.End())
}

// lexeme builds a lexeme by hand, for streams the lexer would never produce.
func lexeme(kind TokenKind, text string, line, col int) *Lexeme {
	start := Location{Pos: col - 1, Line: line, Col: col}
	stop := Location{Pos: col - 1 + len(text), Line: line, Col: col + len(text)}
	return &Lexeme{Token: Token{Kind: kind, Text: text}, Start: start, Stop: stop}
}

func errorLexeme(msg string, line, col int) *Lexeme {
	loc := Location{Pos: col - 1, Line: line, Col: col}
	return &Lexeme{Start: loc, Stop: loc, Err: &LexError{Location: loc, Msg: msg}}
}

func assertModuleEqual(t *testing.T, input string, expected, actual *decl.Module) {
	t.Helper()
	if diff := cmp.Diff(expected, actual, ignorePositions); diff != "" {
		t.Errorf("Input: %q\nAST mismatch (-expected +actual):\n%s", input, diff)
	}
}

func assertNodeEqual(t *testing.T, input string, expected, actual decl.Node) {
	t.Helper()
	if diff := cmp.Diff(expected, actual, ignorePositions); diff != "" {
		t.Errorf("Input: %q\nNode mismatch (-expected +actual):\n%s", input, diff)
	}
}

// assertLookahead checks the lexeme a production handed back.  A nil kind means end of stream.
func assertLookahead(t *testing.T, la *Lexeme, kind TokenKind, text string) {
	t.Helper()
	if kind == endOfStream {
		require.Nil(t, la, "expected end of stream, found %s", la)
		return
	}
	require.NotNil(t, la, "expected %s, found end of stream", kind)
	require.NoError(t, la.Err)
	require.Equal(t, kind, la.Token.Kind, "lookahead kind mismatch, found %s", la)
	require.Equal(t, text, la.Token.Text)
}

func assertErrorKind(t *testing.T, err error, kind ErrorKind, errorContains string) *ParseError {
	t.Helper()
	require.Error(t, err)
	pe, ok := AsParseError(err)
	require.True(t, ok, "expected *ParseError, got %T: %v", err, err)
	require.Equal(t, kind, pe.Kind, "error kind mismatch: %v", err)
	if errorContains != "" {
		require.Contains(t, err.Error(), errorContains)
	}
	return pe
}

// --- AST builders; positions are left zero and ignored by the comparisons ---

func newIdent(name string) *decl.Identifier {
	return &decl.Identifier{Name: name}
}

func newIdents(names ...string) []*decl.Identifier {
	out := make([]*decl.Identifier, len(names))
	for i, n := range names {
		out[i] = newIdent(n)
	}
	return out
}

func newGlobal(names ...string) *decl.GlobalStmt {
	return &decl.GlobalStmt{Names: newIdents(names...)}
}

func newNonlocal(names ...string) *decl.NonlocalStmt {
	return &decl.NonlocalStmt{Names: newIdents(names...)}
}

func newNum(v uint64) *decl.NumberLiteral {
	return &decl.NumberLiteral{Text: strconv.FormatUint(v, 10), Value: v}
}

func newReturn(value decl.Expr) *decl.ReturnStmt {
	return &decl.ReturnStmt{Value: value}
}

func newModule(stmts ...decl.Stmt) *decl.Module {
	if stmts == nil {
		stmts = []decl.Stmt{}
	}
	return &decl.Module{Body: stmts}
}
