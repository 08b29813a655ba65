package decl

import (
	"fmt"
	"strings"

	gfn "github.com/panyam/goutils/fn"
)

// --- Interfaces ---

// Node represents any node in the Abstract Syntax Tree.
type Node interface {
	Pos() Location // Starting position (for error reporting)
	End() Location // Ending position
	String() string
	PrettyPrint(cp CodePrinter)
}

// Location is a position in the source text.
// Pos is a 0-based byte offset, Line and Col are 1-based (Col counts runes).
type Location struct {
	Pos  int
	Line int
	Col  int
}

func (l Location) String() string { return fmt.Sprintf("%d:%d", l.Line, l.Col) }

// --- Base Struct ---

// NodeInfo embeddable struct for position tracking.
type NodeInfo struct{ StartPos, StopPos Location }

func (n *NodeInfo) Pos() Location  { return n.StartPos }
func (n *NodeInfo) End() Location  { return n.StopPos }
func (n *NodeInfo) String() string { return "{Node}" }

// NewNodeInfo builds a NodeInfo spanning start to end.
func NewNodeInfo(start, end Location) NodeInfo {
	return NodeInfo{StartPos: start, StopPos: end}
}

// --- Top level ---

// Module is the root of a parsed source file.  Body is in source order and may be empty.
type Module struct {
	NodeInfo
	Body []Stmt
}

func (m *Module) String() string {
	return strings.Join(gfn.Map(m.Body, func(s Stmt) string { return s.String() }), "\n")
}

func (m *Module) PrettyPrint(cp CodePrinter) {
	for _, stmt := range m.Body {
		stmt.PrettyPrint(cp)
		cp.Println("")
	}
}

// Identifier is a single name, as found in a global or nonlocal list.
type Identifier struct {
	NodeInfo
	Name string
}

func (i *Identifier) String() string             { return i.Name }
func (i *Identifier) PrettyPrint(cp CodePrinter) { cp.Print(i.Name) }
