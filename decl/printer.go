package decl

import (
	"fmt"
	"io"
	"strings"
)

type CodePrinter interface {
	Print(str string)
	Printf(fmt string, args ...any)
	Println(str string)
}

// codePrinter accumulates output; statements have no nested blocks, so
// there is no indentation to track.
type codePrinter struct {
	builder strings.Builder
}

func (c *codePrinter) Print(str string) {
	c.builder.WriteString(str)
}

func (c *codePrinter) Println(str string) {
	c.Print(str + "\n")
}

func (c *codePrinter) Printf(format string, args ...any) {
	c.Print(fmt.Sprintf(format, args...))
}

func (c *codePrinter) String() string {
	return c.builder.String()
}

// Format renders a node back to canonical source.
func Format(node Node) string {
	cp := &codePrinter{}
	node.PrettyPrint(cp)
	return cp.String()
}

func PPrint(w io.Writer, node Node) error {
	_, err := io.WriteString(w, Format(node))
	return err
}
