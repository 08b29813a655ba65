package parser

import (
	"testing"

	"github.com/panyam/pystmt/decl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Each production must hand back exactly the first lexeme it did not consume.
// These tests drive one production at a time and check both its result and
// the lookahead it returns.

func TestParseFlowStmt(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected decl.Stmt
		laKind   TokenKind
		laText   string
	}{
		{"break then semicolon", "break; pass", &decl.BreakStmt{}, SEMICOLON, ";"},
		{"continue then newline", "continue\n", &decl.ContinueStmt{}, NEWLINE, "\n"},
		{"bare return", "return\n", newReturn(nil), NEWLINE, "\n"},
		{"bare return then semicolon", "return; pass", newReturn(nil), SEMICOLON, ";"},
		{"return with value", "return 42; x", newReturn(newNum(42)), SEMICOLON, ";"},
		{"return hex value", "return 0x10\n", newReturn(&decl.NumberLiteral{Text: "0x10", Value: 16}), NEWLINE, "\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := sourceFor(t, tt.input)
			la, stmt, err := ParseFlowStmt(src.Next(), src)
			require.NoError(t, err)
			assertNodeEqual(t, tt.input, tt.expected, stmt)
			assertLookahead(t, la, tt.laKind, tt.laText)
		})
	}
}

func TestParseReturnAtEndOfStream(t *testing.T) {
	// A hand built stream with no terminating NEWLINE
	src := NewSliceSource([]*Lexeme{lexeme(RETURN, "return", 1, 1)}, Location{Pos: 6, Line: 1, Col: 7})
	la, stmt, err := ParseReturnStmt(src.Next(), src)
	require.NoError(t, err)
	assertNodeEqual(t, "return", newReturn(nil), stmt)
	assertLookahead(t, la, endOfStream, "")

	src = NewSliceSource([]*Lexeme{lexeme(RETURN, "return", 1, 1), lexeme(NUMBER, "3", 1, 8)}, Location{Pos: 8, Line: 1, Col: 9})
	la, stmt, err = ParseReturnStmt(src.Next(), src)
	require.NoError(t, err)
	assertNodeEqual(t, "return 3", newReturn(newNum(3)), stmt)
	assertLookahead(t, la, endOfStream, "")
	assert.Equal(t, 1, stmt.Pos().Col)
	assert.Equal(t, 9, stmt.End().Col)
}

func TestParseFlowStmtUnimplemented(t *testing.T) {
	for _, input := range []string{"raise\n", "yield 1\n"} {
		src := sourceFor(t, input)
		_, _, err := ParseFlowStmt(src.Next(), src)
		pe := assertErrorKind(t, err, NotImplementedError, "statement")
		assert.Equal(t, 1, pe.Location.Col)
	}
}

func TestParseFlowStmtRejectsOtherTokens(t *testing.T) {
	src := sourceFor(t, "pass\n")
	_, _, err := ParseFlowStmt(src.Next(), src)
	assertErrorKind(t, err, InternalError, "flow statement")
	assert.ErrorIs(t, err, ErrInternal)
	assert.NotErrorIs(t, err, ErrSyntax)

	src = sourceFor(t, "break\n")
	_, _, err = ParseReturnStmt(src.Next(), src)
	assertErrorKind(t, err, InternalError, "'return'")
}

func TestParseNameList(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
		laKind   TokenKind
		laText   string
	}{
		{"single", "a\n", []string{"a"}, NEWLINE, "\n"},
		{"several", "a, b, c\n", []string{"a", "b", "c"}, NEWLINE, "\n"},
		{"stops at semicolon", "x,y;pass", []string{"x", "y"}, SEMICOLON, ";"},
		{"stops without comma", "a b", []string{"a"}, IDENTIFIER, "b"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := sourceFor(t, tt.input)
			la, names, err := ParseNameList(src.Next(), src)
			require.NoError(t, err)
			got := make([]string, len(names))
			for i, n := range names {
				got[i] = n.Name
			}
			assert.Equal(t, tt.expected, got)
			assertLookahead(t, la, tt.laKind, tt.laText)
		})
	}
}

func TestParseNameListErrors(t *testing.T) {
	tests := []struct {
		name          string
		input         string
		errorContains string
		col           int
	}{
		{"trailing comma", "a,\n", "expected identifier, found NEWLINE", 3},
		{"leading comma", ", a\n", "expected identifier, found ','", 1},
		{"keyword", "a, pass\n", "expected identifier, found 'pass'", 4},
		{"number", "1\n", `expected identifier, found NUMBER "1"`, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := sourceFor(t, tt.input)
			_, _, err := ParseNameList(src.Next(), src)
			pe := assertErrorKind(t, err, SyntaxError, tt.errorContains)
			assert.Equal(t, "identifier", pe.Expected)
			assert.Equal(t, tt.col, pe.Location.Col)
		})
	}

	// Running out of tokens reports the end of the stream
	src := NewSliceSource([]*Lexeme{lexeme(IDENTIFIER, "a", 1, 1), lexeme(COMMA, ",", 1, 2)}, Location{Pos: 2, Line: 1, Col: 3})
	_, _, err := ParseNameList(src.Next(), src)
	pe := assertErrorKind(t, err, SyntaxError, "expected identifier, found end-of-stream")
	assert.Equal(t, Location{Pos: 2, Line: 1, Col: 3}, pe.Location)
}

func TestParseGlobalAndNonlocal(t *testing.T) {
	src := sourceFor(t, "global x, y; nonlocal z")
	la, stmt, err := ParseGlobalStmt(src.Next(), src)
	require.NoError(t, err)
	assertNodeEqual(t, "global x, y", newGlobal("x", "y"), stmt)
	assertLookahead(t, la, SEMICOLON, ";")
	assert.Equal(t, Location{Pos: 0, Line: 1, Col: 1}, stmt.Pos())
	assert.Equal(t, Location{Pos: 11, Line: 1, Col: 12}, stmt.End())

	la, stmt, err = ParseNonlocalStmt(src.Next(), src)
	require.NoError(t, err)
	assertNodeEqual(t, "nonlocal z", newNonlocal("z"), stmt)
	assertLookahead(t, la, NEWLINE, "")

	src = sourceFor(t, "nonlocal z\n")
	_, _, err = ParseGlobalStmt(src.Next(), src)
	assertErrorKind(t, err, InternalError, "'global'")
}

func TestParseSmallStmt(t *testing.T) {
	src := sourceFor(t, "pass x")
	la, stmt, err := ParseSmallStmt(src.Next(), src)
	require.NoError(t, err)
	assertNodeEqual(t, "pass", &decl.PassStmt{}, stmt)
	assertLookahead(t, la, IDENTIFIER, "x")

	for _, input := range []string{"x = 1\n", "42\n", "'doc'\n"} {
		src = sourceFor(t, input)
		_, _, err = ParseSmallStmt(src.Next(), src)
		assertErrorKind(t, err, NotImplementedError, "expression statement")
	}

	src = sourceFor(t, "import os\n")
	_, _, err = ParseSmallStmt(src.Next(), src)
	assertErrorKind(t, err, NotImplementedError, "small statement")
}

func TestParseSimpleStmt(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []decl.Stmt
		laKind   TokenKind
		laText   string
	}{
		{"one", "pass\nbreak", []decl.Stmt{&decl.PassStmt{}}, BREAK, "break"},
		{"two", "pass; break\nglobal a", []decl.Stmt{&decl.PassStmt{}, &decl.BreakStmt{}}, GLOBAL, "global"},
		{"trailing semicolon", "pass;\nx", []decl.Stmt{&decl.PassStmt{}}, IDENTIFIER, "x"},
		{"last line", "continue; return 1", []decl.Stmt{&decl.ContinueStmt{}, newReturn(newNum(1))}, endOfStream, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := sourceFor(t, tt.input)
			la, stmts, err := ParseSimpleStmt(src.Next(), src)
			require.NoError(t, err)
			require.Len(t, stmts, len(tt.expected))
			for i := range stmts {
				assertNodeEqual(t, tt.input, tt.expected[i], stmts[i])
			}
			assertLookahead(t, la, tt.laKind, tt.laText)
		})
	}
}

func TestParseSimpleStmtErrors(t *testing.T) {
	src := sourceFor(t, "pass pass\n")
	_, _, err := ParseSimpleStmt(src.Next(), src)
	pe := assertErrorKind(t, err, SyntaxError, "expected ';' or newline, found 'pass'")
	assert.Equal(t, 6, pe.Location.Col)

	src = sourceFor(t, "break,\n")
	_, _, err = ParseSimpleStmt(src.Next(), src)
	assertErrorKind(t, err, SyntaxError, "expected ';' or newline, found ','")

	// ';' followed directly by the end of the stream
	src = NewSliceSource([]*Lexeme{lexeme(PASS, "pass", 1, 1), lexeme(SEMICOLON, ";", 1, 5)}, Location{Pos: 5, Line: 1, Col: 6})
	_, _, err = ParseSimpleStmt(src.Next(), src)
	assertErrorKind(t, err, SyntaxError, "expected statement or newline, found end-of-stream")
}

func TestParseStmt(t *testing.T) {
	src := sourceFor(t, "pass; pass\n")
	la, stmts, err := ParseStmt(src.Next(), src)
	require.NoError(t, err)
	assert.Len(t, stmts, 2)
	assertLookahead(t, la, endOfStream, "")

	for _, input := range []string{"if x:\n    pass\n", "def f():\n    pass\n", "@decorator\n"} {
		src = sourceFor(t, input)
		_, _, err = ParseStmt(src.Next(), src)
		assertErrorKind(t, err, NotImplementedError, "compound statement")
	}
}

func TestParseExpr(t *testing.T) {
	src := sourceFor(t, "1_000 x")
	la, expr, err := ParseExpr(src.Next(), src)
	require.NoError(t, err)
	assertNodeEqual(t, "1_000", &decl.NumberLiteral{Text: "1_000", Value: 1000}, expr)
	assertLookahead(t, la, IDENTIFIER, "x")

	src = sourceFor(t, "x\n")
	_, _, err = ParseExpr(src.Next(), src)
	assertErrorKind(t, err, NotImplementedError, "expression")

	// A token source that is not our lexer may hand over garbage
	src = NewSliceSource([]*Lexeme{lexeme(NUMBER, "12ab", 1, 1)}, Location{})
	_, _, err = ParseExpr(src.Next(), src)
	assertErrorKind(t, err, SyntaxError, "expected integer literal")
}

func TestProductionsPropagateLexicalErrors(t *testing.T) {
	productions := map[string]func(*Lexeme, TokenSource) error{
		"FileInput": func(la *Lexeme, src TokenSource) error { _, _, err := ParseFileInput(la, src); return err },
		"Stmt":      func(la *Lexeme, src TokenSource) error { _, _, err := ParseStmt(la, src); return err },
		"Compound":  func(la *Lexeme, src TokenSource) error { _, _, err := ParseCompoundStmt(la, src); return err },
		"Simple":    func(la *Lexeme, src TokenSource) error { _, _, err := ParseSimpleStmt(la, src); return err },
		"Small":     func(la *Lexeme, src TokenSource) error { _, _, err := ParseSmallStmt(la, src); return err },
		"Global":    func(la *Lexeme, src TokenSource) error { _, _, err := ParseGlobalStmt(la, src); return err },
		"Nonlocal":  func(la *Lexeme, src TokenSource) error { _, _, err := ParseNonlocalStmt(la, src); return err },
		"NameList":  func(la *Lexeme, src TokenSource) error { _, _, err := ParseNameList(la, src); return err },
		"Flow":      func(la *Lexeme, src TokenSource) error { _, _, err := ParseFlowStmt(la, src); return err },
		"Return":    func(la *Lexeme, src TokenSource) error { _, _, err := ParseReturnStmt(la, src); return err },
		"Expr":      func(la *Lexeme, src TokenSource) error { _, _, err := ParseExpr(la, src); return err },
	}
	for name, parse := range productions {
		t.Run(name, func(t *testing.T) {
			src := NewSliceSource(nil, Location{})
			err := parse(errorLexeme("bad character", 2, 3), src)
			pe := assertErrorKind(t, err, LexicalError, "bad character")
			assert.Equal(t, Location{Pos: 2, Line: 2, Col: 3}, pe.Location)
			assert.ErrorIs(t, err, ErrLexical)
		})
	}
}

func TestLexicalErrorAfterKeyword(t *testing.T) {
	// The lexeme following a keyword is checked before it is matched
	src := NewSliceSource([]*Lexeme{lexeme(GLOBAL, "global", 1, 1), errorLexeme("oops", 1, 8)}, Location{})
	_, _, err := ParseGlobalStmt(src.Next(), src)
	assertErrorKind(t, err, LexicalError, "oops")

	src = NewSliceSource([]*Lexeme{lexeme(RETURN, "return", 1, 1), errorLexeme("oops", 1, 8)}, Location{})
	_, _, err = ParseReturnStmt(src.Next(), src)
	assertErrorKind(t, err, LexicalError, "oops")
}
