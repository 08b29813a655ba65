package parser

import (
	"strconv"

	"github.com/panyam/pystmt/decl"
)

// Every production below takes the lookahead lexeme that has already been
// pulled from src (nil at end of stream) and returns the new lookahead along
// with its result.  The returned lookahead is always the first lexeme the
// production did not consume.  On error the returned lookahead is nil and
// must not be used.

// ParseFileInput parses a whole module.
// Grammar: file_input: (NEWLINE | stmt)* end-of-stream
func ParseFileInput(la *Lexeme, src TokenSource) (*Lexeme, *decl.Module, error) {
	module := &decl.Module{
		NodeInfo: decl.NewNodeInfo(Location{Line: 1, Col: 1}, Location{Line: 1, Col: 1}),
		Body:     []decl.Stmt{},
	}
	for la != nil {
		kind, err := kindOf(la)
		if err != nil {
			return nil, nil, err
		}
		if kind == NEWLINE {
			// blank line
			la = src.Next()
			continue
		}
		var stmts []decl.Stmt
		if la, stmts, err = ParseStmt(la, src); err != nil {
			return nil, nil, err
		}
		module.Body = append(module.Body, stmts...)
	}
	module.StopPos = src.End()
	return la, module, nil
}

// ParseStmt parses one statement line, which may hold several simple statements.
// Grammar: stmt: simple_stmt | compound_stmt
func ParseStmt(la *Lexeme, src TokenSource) (*Lexeme, []decl.Stmt, error) {
	kind, err := kindOf(la)
	if err != nil {
		return nil, nil, err
	}
	if isSimpleStmtStart(kind) {
		return ParseSimpleStmt(la, src)
	}
	la, stmt, err := ParseCompoundStmt(la, src)
	if err != nil {
		return nil, nil, err
	}
	return la, []decl.Stmt{stmt}, nil
}

// ParseCompoundStmt parses if/while/for/try/with/def/class statements.
// None of these have productions yet.
func ParseCompoundStmt(la *Lexeme, src TokenSource) (*Lexeme, decl.Stmt, error) {
	if _, err := kindOf(la); err != nil {
		return nil, nil, err
	}
	return nil, nil, notImplementedf(la, src, "compound statement")
}

// ParseSimpleStmt parses semicolon separated small statements up to and
// including the terminating NEWLINE.
// Grammar: simple_stmt: small_stmt (';' small_stmt)* [';'] NEWLINE
func ParseSimpleStmt(la *Lexeme, src TokenSource) (*Lexeme, []decl.Stmt, error) {
	var stmts []decl.Stmt
	for {
		var stmt decl.Stmt
		var err error
		if la, stmt, err = ParseSmallStmt(la, src); err != nil {
			return nil, nil, err
		}
		stmts = append(stmts, stmt)

		kind, err := kindOf(la)
		if err != nil {
			return nil, nil, err
		}
		switch {
		case kind == NEWLINE:
			return src.Next(), stmts, nil
		case kind != SEMICOLON:
			return nil, nil, syntaxErrorf(la, src, "';' or newline")
		}

		// After a ';' either the line ends (trailing semicolon) or another small statement follows
		la = src.Next()
		if kind, err = kindOf(la); err != nil {
			return nil, nil, err
		}
		if kind == NEWLINE {
			return src.Next(), stmts, nil
		}
		if la == nil {
			return nil, nil, syntaxErrorf(la, src, "statement or newline")
		}
	}
}

// ParseSmallStmt parses a single statement that cannot contain a block.
// Grammar: small_stmt: pass_stmt | global_stmt | nonlocal_stmt | flow_stmt
func ParseSmallStmt(la *Lexeme, src TokenSource) (*Lexeme, decl.Stmt, error) {
	kind, err := kindOf(la)
	if err != nil {
		return nil, nil, err
	}
	switch {
	case kind == PASS:
		return src.Next(), &decl.PassStmt{NodeInfo: tokenInfo(la)}, nil
	case kind == GLOBAL:
		return ParseGlobalStmt(la, src)
	case kind == NONLOCAL:
		return ParseNonlocalStmt(la, src)
	case isFlowStmtStart(kind):
		return ParseFlowStmt(la, src)
	case isExprStart(kind):
		return nil, nil, notImplementedf(la, src, "expression statement")
	}
	return nil, nil, notImplementedf(la, src, "small statement")
}

// ParseGlobalStmt parses a global declaration.
// Grammar: global_stmt: 'global' NAME (',' NAME)*
func ParseGlobalStmt(la *Lexeme, src TokenSource) (*Lexeme, decl.Stmt, error) {
	return parseNameListStmt(la, src, GLOBAL, func(info decl.NodeInfo, names []*decl.Identifier) decl.Stmt {
		return &decl.GlobalStmt{NodeInfo: info, Names: names}
	})
}

// ParseNonlocalStmt parses a nonlocal declaration.
// Grammar: nonlocal_stmt: 'nonlocal' NAME (',' NAME)*
func ParseNonlocalStmt(la *Lexeme, src TokenSource) (*Lexeme, decl.Stmt, error) {
	return parseNameListStmt(la, src, NONLOCAL, func(info decl.NodeInfo, names []*decl.Identifier) decl.Stmt {
		return &decl.NonlocalStmt{NodeInfo: info, Names: names}
	})
}

func parseNameListStmt(la *Lexeme, src TokenSource, keyword TokenKind,
	build func(info decl.NodeInfo, names []*decl.Identifier) decl.Stmt) (*Lexeme, decl.Stmt, error) {
	kind, err := kindOf(la)
	if err != nil {
		return nil, nil, err
	}
	if kind != keyword {
		return nil, nil, internalErrorf(la, src, "expected %s to start a name list statement", keyword)
	}
	start := la.Start
	la, names, err := ParseNameList(src.Next(), src)
	if err != nil {
		return nil, nil, err
	}
	info := decl.NewNodeInfo(start, names[len(names)-1].End())
	return la, build(info, names), nil
}

// ParseNameList parses a non-empty comma separated list of identifiers.
// Names are returned in source order.
// Grammar: NAME (',' NAME)*
func ParseNameList(la *Lexeme, src TokenSource) (*Lexeme, []*decl.Identifier, error) {
	var names []*decl.Identifier
	for {
		kind, err := kindOf(la)
		if err != nil {
			return nil, nil, err
		}
		if kind != IDENTIFIER {
			return nil, nil, syntaxErrorf(la, src, "identifier")
		}
		names = append(names, &decl.Identifier{NodeInfo: tokenInfo(la), Name: la.Token.Text})

		la = src.Next()
		if kind, err = kindOf(la); err != nil {
			return nil, nil, err
		}
		if kind != COMMA {
			return la, names, nil
		}
		la = src.Next()
	}
}

// ParseFlowStmt parses a flow control statement.  Callers must only invoke
// it when the lookahead is a flow statement keyword.
// Grammar: flow_stmt: 'break' | 'continue' | return_stmt | raise_stmt | yield_stmt
func ParseFlowStmt(la *Lexeme, src TokenSource) (*Lexeme, decl.Stmt, error) {
	kind, err := kindOf(la)
	if err != nil {
		return nil, nil, err
	}
	switch kind {
	case BREAK:
		return src.Next(), &decl.BreakStmt{NodeInfo: tokenInfo(la)}, nil
	case CONTINUE:
		return src.Next(), &decl.ContinueStmt{NodeInfo: tokenInfo(la)}, nil
	case RETURN:
		return ParseReturnStmt(la, src)
	case RAISE:
		return nil, nil, notImplementedf(la, src, "raise statement")
	case YIELD:
		return nil, nil, notImplementedf(la, src, "yield statement")
	}
	return nil, nil, internalErrorf(la, src, "ParseFlowStmt called without a flow statement keyword")
}

// ParseReturnStmt parses a return statement with an optional value.
// Grammar: return_stmt: 'return' [expr]
func ParseReturnStmt(la *Lexeme, src TokenSource) (*Lexeme, decl.Stmt, error) {
	kind, err := kindOf(la)
	if err != nil {
		return nil, nil, err
	}
	if kind != RETURN {
		return nil, nil, internalErrorf(la, src, "ParseReturnStmt called without 'return'")
	}
	out := &decl.ReturnStmt{NodeInfo: tokenInfo(la)}

	la = src.Next()
	if kind, err = kindOf(la); err != nil {
		return nil, nil, err
	}
	if isStmtTerminator(la, kind) {
		return la, out, nil
	}
	if la, out.Value, err = ParseExpr(la, src); err != nil {
		return nil, nil, err
	}
	out.StopPos = out.Value.End()
	return la, out, nil
}

// ParseExpr parses an expression.  Only integer literals are supported so far.
func ParseExpr(la *Lexeme, src TokenSource) (*Lexeme, decl.Expr, error) {
	kind, err := kindOf(la)
	if err != nil {
		return nil, nil, err
	}
	if kind != NUMBER {
		return nil, nil, notImplementedf(la, src, "expression")
	}
	value, err := strconv.ParseUint(la.Token.Text, 0, 64)
	if err != nil {
		return nil, nil, &ParseError{
			Kind:     SyntaxError,
			Location: la.Start,
			Expected: "integer literal",
			Found:    la.String(),
			Cause:    err,
		}
	}
	return src.Next(), &decl.NumberLiteral{NodeInfo: tokenInfo(la), Text: la.Token.Text, Value: value}, nil
}
