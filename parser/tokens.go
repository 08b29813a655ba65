package parser

import (
	"fmt"

	"github.com/panyam/pystmt/decl"
)

type Location = decl.Location

// TokenKind is the lexical category of a token.
// End-of-stream is not a kind: it is signalled by a nil *Lexeme.
type TokenKind int

const (
	IDENTIFIER TokenKind = iota + 1
	NUMBER
	STRING

	// Keywords the statement grammar dispatches on
	PASS
	BREAK
	CONTINUE
	RETURN
	RAISE
	YIELD
	GLOBAL
	NONLOCAL

	// Any other reserved word (if, def, class, import, ...).  Text holds the word.
	KEYWORD

	SEMICOLON
	COMMA
	// Any other operator or delimiter.  Text holds the operator.
	OPERATOR

	NEWLINE
)

var tokenNames = map[TokenKind]string{
	IDENTIFIER: "IDENTIFIER",
	NUMBER:     "NUMBER",
	STRING:     "STRING",
	PASS:       "'pass'",
	BREAK:      "'break'",
	CONTINUE:   "'continue'",
	RETURN:     "'return'",
	RAISE:      "'raise'",
	YIELD:      "'yield'",
	GLOBAL:     "'global'",
	NONLOCAL:   "'nonlocal'",
	KEYWORD:    "KEYWORD",
	SEMICOLON:  "';'",
	COMMA:      "','",
	OPERATOR:   "OPERATOR",
	NEWLINE:    "NEWLINE",
}

// EndOfStream is how the end of the token stream is named in diagnostics.
const EndOfStream = "end-of-stream"

func (k TokenKind) String() string {
	if name, ok := tokenNames[k]; ok {
		return name
	}
	return fmt.Sprintf("TokenKind(%d)", int(k))
}

// keywords maps reserved words to their kind.  Words mapped to KEYWORD are
// reserved but have no production of their own yet.
var keywords = map[string]TokenKind{
	"pass":     PASS,
	"break":    BREAK,
	"continue": CONTINUE,
	"return":   RETURN,
	"raise":    RAISE,
	"yield":    YIELD,
	"global":   GLOBAL,
	"nonlocal": NONLOCAL,

	"False": KEYWORD, "None": KEYWORD, "True": KEYWORD,
	"and": KEYWORD, "as": KEYWORD, "assert": KEYWORD,
	"async": KEYWORD, "await": KEYWORD, "class": KEYWORD,
	"def": KEYWORD, "del": KEYWORD, "elif": KEYWORD,
	"else": KEYWORD, "except": KEYWORD, "finally": KEYWORD,
	"for": KEYWORD, "from": KEYWORD, "if": KEYWORD,
	"import": KEYWORD, "in": KEYWORD, "is": KEYWORD,
	"lambda": KEYWORD, "not": KEYWORD, "or": KEYWORD,
	"try": KEYWORD, "while": KEYWORD, "with": KEYWORD,
}

// Token is a lexical category plus its payload (identifier name, literal text...).
type Token struct {
	Kind TokenKind
	Text string
}

func (t Token) String() string {
	switch t.Kind {
	case IDENTIFIER, NUMBER, KEYWORD, OPERATOR:
		return fmt.Sprintf("%s %q", t.Kind, t.Text)
	case STRING:
		return fmt.Sprintf("STRING %q", t.Text)
	}
	return t.Kind.String()
}

// Lexeme is one occurrence of a token in the stream.  When Err is non-nil
// the lexer failed at Start and Token must not be matched on.
type Lexeme struct {
	Token Token
	Start Location
	Stop  Location
	Err   error
}

func (l *Lexeme) String() string {
	if l == nil {
		return EndOfStream
	}
	if l.Err != nil {
		return fmt.Sprintf("<error: %v>", l.Err)
	}
	return l.Token.String()
}

// TokenSource produces lexemes on demand.
type TokenSource interface {
	// Next returns the next lexeme, or nil once the stream is exhausted.
	Next() *Lexeme

	// End returns the location of the end of the stream.
	End() Location
}

// SliceSource replays a fixed list of lexemes.
type SliceSource struct {
	Lexemes []*Lexeme
	EndLoc  Location
	next    int
}

func NewSliceSource(lexemes []*Lexeme, end Location) *SliceSource {
	return &SliceSource{Lexemes: lexemes, EndLoc: end}
}

func (s *SliceSource) Next() *Lexeme {
	if s.next >= len(s.Lexemes) {
		return nil
	}
	out := s.Lexemes[s.next]
	s.next++
	return out
}

func (s *SliceSource) End() Location { return s.EndLoc }

// Collect drains a source into a slice, stopping at the first lexical error
// (which is included).
func Collect(src TokenSource) (out []*Lexeme) {
	for lx := src.Next(); lx != nil; lx = src.Next() {
		out = append(out, lx)
		if lx.Err != nil {
			break
		}
	}
	return
}
