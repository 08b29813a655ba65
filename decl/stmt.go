package decl

import (
	"fmt"
	"strings"

	gfn "github.com/panyam/goutils/fn"
)

// --- Statements ---

// Stmt represents a statement node.
type Stmt interface {
	Node
	stmtNode() // Marker method for statements
}

// PassStmt represents `pass`
type PassStmt struct {
	NodeInfo
}

func (p *PassStmt) stmtNode()                  {}
func (p *PassStmt) String() string             { return "pass" }
func (p *PassStmt) PrettyPrint(cp CodePrinter) { cp.Print(p.String()) }

// BreakStmt represents `break`.  Whether it appears inside a loop is not checked.
type BreakStmt struct {
	NodeInfo
}

func (b *BreakStmt) stmtNode()                  {}
func (b *BreakStmt) String() string             { return "break" }
func (b *BreakStmt) PrettyPrint(cp CodePrinter) { cp.Print(b.String()) }

// ContinueStmt represents `continue`
type ContinueStmt struct {
	NodeInfo
}

func (c *ContinueStmt) stmtNode()                  {}
func (c *ContinueStmt) String() string             { return "continue" }
func (c *ContinueStmt) PrettyPrint(cp CodePrinter) { cp.Print(c.String()) }

// ReturnStmt represents `return [expr]`
type ReturnStmt struct {
	NodeInfo
	Value Expr // nil for a bare return
}

func (r *ReturnStmt) stmtNode() {}
func (r *ReturnStmt) String() string {
	if r.Value == nil {
		return "return"
	}
	return fmt.Sprintf("return %s", r.Value)
}
func (r *ReturnStmt) PrettyPrint(cp CodePrinter) {
	cp.Print("return")
	if r.Value != nil {
		cp.Print(" ")
		r.Value.PrettyPrint(cp)
	}
}

// GlobalStmt represents `global a, b, c`
type GlobalStmt struct {
	NodeInfo
	Names []*Identifier
}

func (g *GlobalStmt) stmtNode()                  {}
func (g *GlobalStmt) NameList() []string         { return identNames(g.Names) }
func (g *GlobalStmt) String() string             { return "global " + strings.Join(g.NameList(), ", ") }
func (g *GlobalStmt) PrettyPrint(cp CodePrinter) { cp.Print(g.String()) }

// NonlocalStmt represents `nonlocal a, b, c`
type NonlocalStmt struct {
	NodeInfo
	Names []*Identifier
}

func (n *NonlocalStmt) stmtNode()                  {}
func (n *NonlocalStmt) NameList() []string         { return identNames(n.Names) }
func (n *NonlocalStmt) String() string             { return "nonlocal " + strings.Join(n.NameList(), ", ") }
func (n *NonlocalStmt) PrettyPrint(cp CodePrinter) { cp.Print(n.String()) }

func identNames(idents []*Identifier) []string {
	return gfn.Map(idents, func(i *Identifier) string { return i.Name })
}
