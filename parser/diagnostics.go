package parser

import (
	"fmt"
	"strings"
)

// SourceError is a ParseError rendered against the source it came from.
// Error() returns a multi-line snippet with a caret under the failing column:
//
//	syntax error in mod.py at 1:10: expected identifier, found NEWLINE
//
//	   1 | global a,
//	     |          ^
//	   2 | pass
type SourceError struct {
	*ParseError
	SourceName string
	Snippet    string
}

func (e *SourceError) Error() string { return e.Snippet }

func (e *SourceError) Unwrap() error { return e.ParseError }

// WrapErrorWithSource attaches a caret snippet to parse errors.  Any other
// error is returned unchanged.
func WrapErrorWithSource(err error, srcName, src string) error {
	pe, ok := err.(*ParseError)
	if !ok {
		return err
	}
	return &SourceError{
		ParseError: pe,
		SourceName: srcName,
		Snippet:    renderSnippet(src, srcName, pe),
	}
}

// renderSnippet shows at most one line before and after the error line.
// Out of range coordinates are clamped to the source.
func renderSnippet(src, name string, pe *ParseError) string {
	lines := strings.Split(src, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	line, col := pe.Location.Line, pe.Location.Col
	if line < 1 {
		line = 1
	}
	if line > len(lines) {
		line = len(lines)
	}
	if col < 1 {
		col = 1
	}
	lineTxt := lines[line-1]

	// ParseError.Error() starts with "<kind> at <pos>: "; we re-label it with the source name.
	detail := strings.TrimPrefix(pe.Error(), fmt.Sprintf("%s at %s: ", pe.Kind, pe.Location))

	var b strings.Builder
	if name != "" {
		fmt.Fprintf(&b, "%s in %s at %d:%d: %s\n\n", pe.Kind, name, line, col, detail)
	} else {
		fmt.Fprintf(&b, "%s at %d:%d: %s\n\n", pe.Kind, line, col, detail)
	}
	if line > 1 {
		fmt.Fprintf(&b, "%4d | %s\n", line-1, lines[line-2])
	}
	fmt.Fprintf(&b, "%4d | %s\n", line, lineTxt)
	fmt.Fprintf(&b, "     | %s^\n", caretPadding(lineTxt, col))
	if line < len(lines) && (line < len(lines)-1 || lines[line] != "") {
		fmt.Fprintf(&b, "%4d | %s\n", line+1, lines[line])
	}
	return b.String()
}

// caretPadding keeps tabs from the source line so the caret lines up.
func caretPadding(lineTxt string, col int) string {
	var b strings.Builder
	i := 1
	for _, r := range lineTxt {
		if i >= col {
			break
		}
		if r == '\t' {
			b.WriteRune('\t')
		} else {
			b.WriteRune(' ')
		}
		i++
	}
	for ; i < col; i++ {
		b.WriteRune(' ')
	}
	return b.String()
}
