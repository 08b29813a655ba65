package decl

// Expr represents an expression node.  Only numeric literals exist so far.
type Expr interface {
	Node
	exprNode() // Marker method for expressions
}

// NumberLiteral is an integer literal.  Text is the literal as written
// (including any base prefix or underscores), Value its decoded value.
type NumberLiteral struct {
	NodeInfo
	Text  string
	Value uint64
}

func (n *NumberLiteral) exprNode()                  {}
func (n *NumberLiteral) String() string             { return n.Text }
func (n *NumberLiteral) PrettyPrint(cp CodePrinter) { cp.Print(n.Text) }
