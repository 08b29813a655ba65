package decl

import (
	"fmt"

	gfn "github.com/panyam/goutils/fn"
	"google.golang.org/protobuf/types/known/structpb"
)

// ToStruct converts a node into a generic protobuf Struct so it can be
// emitted as JSON (via protojson) or shipped inside other messages.
// Every node map carries "type" and "pos" ("line:col") keys.
func ToStruct(node Node) (*structpb.Struct, error) {
	m, err := toMap(node)
	if err != nil {
		return nil, err
	}
	return structpb.NewStruct(m)
}

func toMap(node Node) (map[string]any, error) {
	out := map[string]any{"pos": node.Pos().String()}
	switch n := node.(type) {
	case *Module:
		out["type"] = "Module"
		body := make([]any, 0, len(n.Body))
		for _, stmt := range n.Body {
			m, err := toMap(stmt)
			if err != nil {
				return nil, err
			}
			body = append(body, m)
		}
		out["body"] = body
	case *PassStmt:
		out["type"] = "Pass"
	case *BreakStmt:
		out["type"] = "Break"
	case *ContinueStmt:
		out["type"] = "Continue"
	case *ReturnStmt:
		out["type"] = "Return"
		if n.Value != nil {
			m, err := toMap(n.Value)
			if err != nil {
				return nil, err
			}
			out["value"] = m
		}
	case *GlobalStmt:
		out["type"] = "Global"
		out["names"] = namesAsList(n.Names)
	case *NonlocalStmt:
		out["type"] = "Nonlocal"
		out["names"] = namesAsList(n.Names)
	case *NumberLiteral:
		out["type"] = "Num"
		out["text"] = n.Text
		out["value"] = n.Value
	default:
		return nil, fmt.Errorf("cannot export node of type %T", node)
	}
	return out, nil
}

func namesAsList(idents []*Identifier) []any {
	return gfn.Map(idents, func(i *Identifier) any { return i.Name })
}
