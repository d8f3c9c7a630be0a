package syntax

import (
	"encoding/json"
	"io"
)

// FprintJSON writes a JSON representation of the AST to w.
func FprintJSON(w io.Writer, node Node) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(toJSON(node))
}

func toJSON(node Node) interface{} {
	if node == nil {
		return nil
	}

	switch n := node.(type) {
	case *Program:
		return map[string]interface{}{
			"type":  "Program",
			"pos":   n.pos.String(),
			"stmts": mapSliceStmt(n.Stmts, toJSON),
		}

	case *AssignStmt:
		return map[string]interface{}{
			"type":     "AssignStmt",
			"pos":      n.pos.String(),
			"decltype": n.DeclType.String(),
			"name":     toJSON(n.Name),
			"value":    toJSON(n.Value),
		}

	case *CallStmt:
		return map[string]interface{}{
			"type": "CallStmt",
			"pos":  n.pos.String(),
			"fun":  toJSON(n.Fun),
			"arg":  toJSON(n.Arg),
		}

	case *CondStmt:
		return map[string]interface{}{
			"type":     "CondStmt",
			"pos":      n.pos.String(),
			"branches": mapSlice(n.Branches, func(br *Branch) interface{} { return toJSON(br) }),
		}

	case *Branch:
		m := map[string]interface{}{
			"type": "Branch",
			"pos":  n.pos.String(),
			"kind": n.Kind.String(),
			"body": mapSliceStmt(n.Body, toJSON),
		}
		if n.Cond != nil {
			m["cond"] = toJSON(n.Cond)
		}
		return m

	case *ForStmt:
		return map[string]interface{}{
			"type": "ForStmt",
			"pos":  n.pos.String(),
			"init": toJSON(n.Init),
			"cond": toJSON(n.Cond),
			"step": toJSON(n.Step),
			"body": mapSliceStmt(n.Body, toJSON),
		}

	case *FuncDecl:
		return map[string]interface{}{
			"type":   "FuncDecl",
			"pos":    n.pos.String(),
			"name":   toJSON(n.Name),
			"params": mapSlice(n.Params, func(p *Param) interface{} { return toJSON(p) }),
			"body":   mapSliceStmt(n.Body, toJSON),
		}

	case *Param:
		return map[string]interface{}{
			"type":      "Param",
			"pos":       n.pos.String(),
			"paramtype": n.Type.String(),
			"name":      n.Name,
		}

	case *ContinueStmt:
		return map[string]interface{}{
			"type": "ContinueStmt",
			"pos":  n.pos.String(),
		}

	case *VarRef:
		return map[string]interface{}{
			"type": "VarRef",
			"pos":  n.pos.String(),
			"path": n.Path,
		}

	case *BasicLit:
		return map[string]interface{}{
			"type":  "BasicLit",
			"pos":   n.pos.String(),
			"kind":  n.Kind.String(),
			"value": n.Value,
		}

	case *IncDecExpr:
		return map[string]interface{}{
			"type": "IncDecExpr",
			"pos":  n.pos.String(),
			"op":   n.Op.String(),
			"x":    toJSON(n.X),
		}

	case *Operation:
		return map[string]interface{}{
			"type": "Operation",
			"pos":  n.pos.String(),
			"op":   n.Op.String(),
			"x":    toJSON(n.X),
			"y":    toJSON(n.Y),
		}

	case *ParenExpr:
		return map[string]interface{}{
			"type": "ParenExpr",
			"pos":  n.pos.String(),
			"x":    toJSON(n.X),
		}

	case *CallExpr:
		return map[string]interface{}{
			"type": "CallExpr",
			"pos":  n.pos.String(),
			"fun":  toJSON(n.Fun),
			"arg":  toJSON(n.Arg),
		}

	default:
		return map[string]interface{}{
			"type": "Unknown",
		}
	}
}

// Helper functions to map slices

func mapSlice[T any](s []T, f func(T) interface{}) []interface{} {
	result := make([]interface{}, len(s))
	for i, v := range s {
		result[i] = f(v)
	}
	return result
}

func mapSliceStmt(s []Stmt, f func(Node) interface{}) []interface{} {
	result := make([]interface{}, len(s))
	for i, v := range s {
		result[i] = f(v)
	}
	return result
}
