package syntax

// Visitor is called for each node during Walk.
// If it returns false, the children of the node are not visited.
type Visitor func(node Node) bool

// Walk traverses an AST in depth-first order.
// If visitor returns false, children are not visited.
func Walk(node Node, v Visitor) {
	if node == nil || !v(node) {
		return
	}

	switch n := node.(type) {
	case *Program:
		for _, s := range n.Stmts {
			Walk(s, v)
		}

	case *AssignStmt:
		Walk(n.Name, v)
		Walk(n.Value, v)

	case *CallStmt:
		Walk(n.Fun, v)
		Walk(n.Arg, v)

	case *CondStmt:
		for _, br := range n.Branches {
			Walk(br, v)
		}

	case *Branch:
		if n.Cond != nil {
			Walk(n.Cond, v)
		}
		for _, s := range n.Body {
			Walk(s, v)
		}

	case *ForStmt:
		Walk(n.Init, v)
		Walk(n.Cond, v)
		Walk(n.Step, v)
		for _, s := range n.Body {
			Walk(s, v)
		}

	case *FuncDecl:
		Walk(n.Name, v)
		for _, p := range n.Params {
			Walk(p, v)
		}
		for _, s := range n.Body {
			Walk(s, v)
		}

	case *IncDecExpr:
		Walk(n.X, v)

	case *Operation:
		Walk(n.X, v)
		Walk(n.Y, v)

	case *ParenExpr:
		Walk(n.X, v)

	case *CallExpr:
		Walk(n.Fun, v)
		Walk(n.Arg, v)

	// Leaf nodes: VarRef, BasicLit, Param, ContinueStmt
	// No children to visit
	}
}

// Inspect traverses an AST and calls f for each node.
// Convenience wrapper around Walk.
func Inspect(node Node, f func(Node) bool) {
	Walk(node, Visitor(f))
}
