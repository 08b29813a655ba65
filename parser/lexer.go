package parser

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

const eof rune = -1

// Lexer turns source text into a stream of lexemes.  It implements TokenSource.
//
// Every line break outside brackets becomes a NEWLINE (blank lines included),
// and a final NEWLINE is synthesised when the input does not end with one.
// Indentation is not tokenised.
type Lexer struct {
	lookaheadRunes  []rune
	lookaheadWidths []int
	reader          *bufio.Reader
	buf             bytes.Buffer // Temporary buffer for scanned text

	// Current position in the input
	pos  int
	line int
	col  int

	tokenStart Location

	// Number of currently open brackets; newlines inside brackets are not emitted
	depth int

	// Whether a token has been emitted on the current logical line
	lineHasTokens bool
	done          bool

	// Start of every comment skipped so far
	comments []Location
}

// NewLexer creates a new lexer instance
func NewLexer(r io.Reader) *Lexer {
	return &Lexer{
		reader: bufio.NewReader(r),
		line:   1,
		col:    1,
	}
}

func (l *Lexer) loc() Location {
	return Location{Pos: l.pos, Line: l.line, Col: l.col}
}

// End returns the current position; once Next has returned nil this is the
// end of the input.
func (l *Lexer) End() Location {
	return l.loc()
}

// Comments returns where each comment skipped so far begins.  Comments never
// reach the token stream, so this is the only record of them.
func (l *Lexer) Comments() []Location {
	return slices.Clone(l.comments)
}

// ScanComments lexes r to the end and returns where each of its comments
// begins.  A '#' inside a string literal does not start a comment.
func ScanComments(r io.Reader) []Location {
	l := NewLexer(r)
	for lx := l.Next(); lx != nil; lx = l.Next() {
	}
	return l.comments
}

// --- Rune Reading Helpers (with line/col tracking) ---
func (l *Lexer) read() rune {
	if l.peek() == eof {
		return eof
	}
	r, width := l.lookaheadRunes[0], l.lookaheadWidths[0]
	l.lookaheadRunes, l.lookaheadWidths = l.lookaheadRunes[1:], l.lookaheadWidths[1:]
	l.pos += width
	if r == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	return r
}

func (l *Lexer) peek() rune {
	return l.peekN(0)
}

func (l *Lexer) peekN(nthchar int) rune {
	if l.ensureLookAhead(nthchar+1) <= nthchar {
		return eof
	}
	return l.lookaheadRunes[nthchar]
}

func (l *Lexer) ensureLookAhead(numchars int) int {
	for len(l.lookaheadRunes) < numchars {
		r, width, err := l.reader.ReadRune()
		if err != nil {
			break
		}
		l.lookaheadRunes = append(l.lookaheadRunes, r)
		l.lookaheadWidths = append(l.lookaheadWidths, width)
	}
	return len(l.lookaheadRunes)
}

// hasPrefix checks whether the upcoming runes spell prefix, consuming them on a match if asked to.
func (l *Lexer) hasPrefix(prefix string, consume bool) bool {
	runes := []rune(prefix)
	if l.ensureLookAhead(len(runes)) < len(runes) {
		return false
	}
	for i, r := range runes {
		if l.lookaheadRunes[i] != r {
			return false
		}
	}
	if consume {
		for range runes {
			l.read()
		}
	}
	return true
}

func (l *Lexer) emit(kind TokenKind, text string) *Lexeme {
	l.lineHasTokens = true
	return &Lexeme{
		Token: Token{Kind: kind, Text: text},
		Start: l.tokenStart,
		Stop:  l.loc(),
	}
}

func (l *Lexer) errorf(format string, args ...any) *Lexeme {
	l.lineHasTokens = true
	return &Lexeme{
		Start: l.tokenStart,
		Stop:  l.loc(),
		Err:   &LexError{Location: l.tokenStart, Msg: fmt.Sprintf(format, args...)},
	}
}

// --- Scanning Functions ---

// skipWhitespace skips blanks, comments and backslash line joins, stopping
// before a line break.
func (l *Lexer) skipWhitespace() {
	for {
		r := l.peek()
		switch {
		case r == ' ' || r == '\t' || r == '\f':
			l.read()
		case r == '#':
			l.comments = append(l.comments, l.loc())
			for r = l.peek(); r != eof && r != '\n' && r != '\r'; r = l.peek() {
				l.read()
			}
		case r == '\\' && (l.peekN(1) == '\n' || l.peekN(1) == '\r'):
			l.read()
			if l.read() == '\r' && l.peek() == '\n' {
				l.read()
			}
		default:
			return
		}
	}
}

// Next returns the next lexeme or nil at end of input.
func (l *Lexer) Next() *Lexeme {
	if l.done {
		return nil
	}
	for {
		l.skipWhitespace()
		l.tokenStart = l.loc()
		r := l.peek()
		if r == eof {
			if l.lineHasTokens {
				out := l.emit(NEWLINE, "")
				l.lineHasTokens = false
				return out
			}
			l.done = true
			return nil
		}
		if r != '\n' && r != '\r' {
			break
		}
		l.read()
		if r == '\r' && l.peek() == '\n' {
			l.read()
		}
		if l.depth > 0 {
			continue
		}
		out := l.emit(NEWLINE, "\n")
		l.lineHasTokens = false
		return out
	}

	r := l.peek()
	switch {
	case isIdentStart(r):
		return l.scanIdentifierOrKeyword()
	case unicode.IsDigit(r) && r < unicode.MaxASCII:
		return l.scanNumber()
	case r == '\'' || r == '"':
		return l.scanString(r)
	}
	return l.scanOperator()
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.In(r, unicode.Mn, unicode.Mc, unicode.Pc)
}

func (l *Lexer) scanIdentifierOrKeyword() *Lexeme {
	l.buf.Reset()
	for r := l.peek(); r != eof && isIdentPart(r); r = l.peek() {
		l.buf.WriteRune(l.read())
	}
	// Identifiers are compared in NFKC form, so "ﬁle" and "file" are the same name.
	text := norm.NFKC.String(l.buf.String())
	if kind, ok := keywords[text]; ok {
		return l.emit(kind, text)
	}
	return l.emit(IDENTIFIER, text)
}

func (l *Lexer) scanNumber() *Lexeme {
	l.buf.Reset()
	for r := l.peek(); r != eof && (r == '_' || r < unicode.MaxASCII && (unicode.IsDigit(r) || unicode.IsLetter(r))); r = l.peek() {
		l.buf.WriteRune(l.read())
	}
	text := l.buf.String()

	if l.peek() == '.' {
		l.read()
		for r := l.peek(); r != eof && (unicode.IsDigit(r) || r == '_'); r = l.peek() {
			l.read()
		}
		return l.errorf("floating point literals are not supported")
	}
	if strings.HasSuffix(text, "_") || strings.Contains(text, "__") {
		return l.errorf("invalid integer literal %q", text)
	}
	digits := strings.ReplaceAll(text, "_", "")
	if len(digits) > 1 && digits[0] == '0' && unicode.IsDigit(rune(digits[1])) && strings.Trim(digits, "0") != "" {
		return l.errorf("leading zeros in decimal integer literals are not permitted: %q", text)
	}
	if _, err := strconv.ParseUint(text, 0, 64); err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return l.errorf("integer literal too large: %q", text)
		}
		return l.errorf("invalid integer literal %q", text)
	}
	return l.emit(NUMBER, text)
}

func (l *Lexer) scanString(quote rune) *Lexeme {
	l.buf.Reset()
	l.read() // Consume opening quote
	if l.peek() == quote && l.peekN(1) == quote {
		l.read()
		l.read()
		return l.errorf("triple-quoted strings are not supported")
	}
	for {
		r := l.peek()
		if r == eof || r == '\n' || r == '\r' {
			return l.errorf("unterminated string literal")
		}
		l.read()
		if r == quote {
			break
		}
		if r != '\\' {
			l.buf.WriteRune(r)
			continue
		}
		esc := l.peek()
		if esc == eof {
			return l.errorf("unterminated string literal after escape")
		}
		l.read()
		switch esc {
		case 'n':
			l.buf.WriteRune('\n')
		case 't':
			l.buf.WriteRune('\t')
		case 'r':
			l.buf.WriteRune('\r')
		case '0':
			l.buf.WriteRune(0)
		case '\\', '\'', '"':
			l.buf.WriteRune(esc)
		case '\n':
			// escaped line break continues the literal
		case '\r':
			if l.peek() == '\n' {
				l.read()
			}
		default:
			// unknown escapes are kept verbatim
			l.buf.WriteRune('\\')
			l.buf.WriteRune(esc)
		}
	}
	return l.emit(STRING, l.buf.String())
}

// Longest operators first so that "**=" wins over "**" and "*".
var operators = []string{
	"**=", "//=", ">>=", "<<=", "...",
	"**", "//", "<<", ">>", "<=", ">=", "==", "!=", "->",
	"+=", "-=", "*=", "/=", "%=", "&=", "|=", "^=", "@=", ":=",
	"+", "-", "*", "/", "%", "@", "&", "|", "^", "~", "<", ">",
	"(", ")", "[", "]", "{", "}", ".", ":", "=",
}

func (l *Lexer) scanOperator() *Lexeme {
	r := l.peek()
	switch r {
	case ';':
		l.read()
		return l.emit(SEMICOLON, ";")
	case ',':
		l.read()
		return l.emit(COMMA, ",")
	}

	for _, op := range operators {
		if !l.hasPrefix(op, true) {
			continue
		}
		switch op {
		case "(", "[", "{":
			l.depth++
		case ")", "]", "}":
			if l.depth == 0 {
				return l.errorf("unmatched '%s'", op)
			}
			l.depth--
		}
		return l.emit(OPERATOR, op)
	}

	l.read()
	return l.errorf("unexpected character %q", r)
}
