package parser

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a parse failure.
type ErrorKind int

const (
	// LexicalError: the token source reported an invalid lexeme.
	LexicalError ErrorKind = iota + 1
	// SyntaxError: the input does not match the grammar.
	SyntaxError
	// NotImplementedError: the construct is valid in principle but has no production yet.
	NotImplementedError
	// InternalError: a production was called with a lookahead its caller should have rejected.
	InternalError
)

var (
	ErrLexical        = errors.New("lexical error")
	ErrSyntax         = errors.New("syntax error")
	ErrNotImplemented = errors.New("not implemented")
	ErrInternal       = errors.New("internal parser error")
)

func (k ErrorKind) sentinel() error {
	switch k {
	case LexicalError:
		return ErrLexical
	case SyntaxError:
		return ErrSyntax
	case NotImplementedError:
		return ErrNotImplemented
	case InternalError:
		return ErrInternal
	}
	return nil
}

func (k ErrorKind) String() string {
	if s := k.sentinel(); s != nil {
		return s.Error()
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// LexError is carried by a Lexeme the lexer could not produce.
type LexError struct {
	Location Location
	Msg      string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("%s: %s", e.Location, e.Msg)
}

// ParseError is the single terminal failure of a parse.
type ParseError struct {
	Kind     ErrorKind
	Location Location

	// Expected names the construct that was required, Found what was there instead.
	// Either may be empty (for instance a lexical error has only Msg).
	Expected string
	Found    string
	Msg      string

	Cause error
}

func (e *ParseError) Error() string {
	detail := e.Msg
	if e.Expected != "" {
		detail = fmt.Sprintf("expected %s, found %s", e.Expected, e.Found)
		if e.Msg != "" {
			detail = e.Msg + ": " + detail
		}
	}
	return fmt.Sprintf("%s at %s: %s", e.Kind, e.Location, detail)
}

func (e *ParseError) Unwrap() error { return e.Cause }

// Is lets errors.Is(err, ErrSyntax) and friends match on the kind.
func (e *ParseError) Is(target error) bool {
	return target != nil && target == e.Kind.sentinel()
}

// AsParseError extracts a *ParseError from an error chain.
func AsParseError(err error) (*ParseError, bool) {
	var pe *ParseError
	ok := errors.As(err, &pe)
	return pe, ok
}

// lookaheadLocation is where a lookahead starts, or the end of the stream when there is none.
func lookaheadLocation(la *Lexeme, src TokenSource) Location {
	if la == nil {
		return src.End()
	}
	return la.Start
}

func syntaxErrorf(la *Lexeme, src TokenSource, expected string) error {
	return &ParseError{
		Kind:     SyntaxError,
		Location: lookaheadLocation(la, src),
		Expected: expected,
		Found:    la.String(),
	}
}

func notImplementedf(la *Lexeme, src TokenSource, format string, args ...any) error {
	return &ParseError{
		Kind:     NotImplementedError,
		Location: lookaheadLocation(la, src),
		Found:    la.String(),
		Msg:      fmt.Sprintf(format, args...) + fmt.Sprintf(" (found %s)", la),
	}
}

func internalErrorf(la *Lexeme, src TokenSource, format string, args ...any) error {
	return &ParseError{
		Kind:     InternalError,
		Location: lookaheadLocation(la, src),
		Found:    la.String(),
		Msg:      fmt.Sprintf(format, args...) + fmt.Sprintf(" (found %s)", la),
	}
}

func lexicalError(la *Lexeme) error {
	pe := &ParseError{Kind: LexicalError, Location: la.Start, Cause: la.Err}
	var lexErr *LexError
	if errors.As(la.Err, &lexErr) {
		pe.Msg = lexErr.Msg
		pe.Location = lexErr.Location
	} else {
		pe.Msg = la.Err.Error()
	}
	return pe
}
