package parser

import (
	"fmt"

	gfn "github.com/panyam/goutils/fn"
	"github.com/panyam/pystmt/decl"
)

// endOfStream is the kind reported by kindOf for a nil lookahead.
const endOfStream TokenKind = 0

// kindOf returns the kind of a lookahead, or endOfStream for nil.  A lexeme
// carrying a lexical error is turned into the parse error instead.
func kindOf(la *Lexeme) (TokenKind, error) {
	if la == nil {
		return endOfStream, nil
	}
	if la.Err != nil {
		return endOfStream, lexicalError(la)
	}
	return la.Token.Kind, nil
}

func tokenInfo(la *Lexeme) decl.NodeInfo {
	return decl.NewNodeInfo(la.Start, la.Stop)
}

func isFlowStmtStart(kind TokenKind) bool {
	switch kind {
	case BREAK, CONTINUE, RETURN, RAISE, YIELD:
		return true
	}
	return false
}

// isExprStart is deliberately loose: it only decides that a line is an
// expression statement so the error says so.
func isExprStart(kind TokenKind) bool {
	return kind == IDENTIFIER || kind == NUMBER || kind == STRING
}

func isSimpleStmtStart(kind TokenKind) bool {
	switch kind {
	case PASS, GLOBAL, NONLOCAL:
		return true
	}
	return isFlowStmtStart(kind) || isExprStart(kind)
}

func isStmtTerminator(la *Lexeme, kind TokenKind) bool {
	return la == nil || kind == SEMICOLON || kind == NEWLINE
}

// FormatLexeme renders a lexeme as "line:col KIND text" for token dumps.
func FormatLexeme(lx *Lexeme) string {
	return fmt.Sprintf("%-7s %s", lx.Start.String(), lx.String())
}

// FormatLexemes renders each lexeme with FormatLexeme.
func FormatLexemes(lexemes []*Lexeme) []string {
	return gfn.Map(lexemes, FormatLexeme)
}
