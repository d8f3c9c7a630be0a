package syntax

import (
	"fmt"
	"io"
	"strings"
)

// Fprint writes a textual representation of the AST to w.
func Fprint(w io.Writer, node Node) {
	p := &printer{w: w}
	p.print(node)
}

type printer struct {
	w      io.Writer
	indent int
}

func (p *printer) printf(format string, args ...interface{}) {
	fmt.Fprintf(p.w, "%s%s", strings.Repeat("  ", p.indent), fmt.Sprintf(format, args...))
}

func (p *printer) stmts(list []Stmt) {
	for _, s := range list {
		p.print(s)
	}
}

func (p *printer) print(node Node) {
	if node == nil {
		return
	}

	switch n := node.(type) {
	case *Program:
		p.printf("Program %s\n", n.pos)
		p.indent++
		p.stmts(n.Stmts)
		p.indent--

	case *AssignStmt:
		p.printf("AssignStmt %s %s\n", n.pos, n.DeclType)
		p.indent++
		p.printf("Name:\n")
		p.indent++
		p.print(n.Name)
		p.indent--
		p.printf("Value:\n")
		p.indent++
		p.print(n.Value)
		p.indent--
		p.indent--

	case *CallStmt:
		p.printf("CallStmt %s\n", n.pos)
		p.indent++
		p.printf("Fun:\n")
		p.indent++
		p.print(n.Fun)
		p.indent--
		p.printf("Arg:\n")
		p.indent++
		p.print(n.Arg)
		p.indent--
		p.indent--

	case *CondStmt:
		p.printf("CondStmt %s\n", n.pos)
		p.indent++
		for _, br := range n.Branches {
			p.print(br)
		}
		p.indent--

	case *Branch:
		p.printf("Branch %s %s\n", n.pos, n.Kind)
		p.indent++
		if n.Cond != nil {
			p.printf("Cond:\n")
			p.indent++
			p.print(n.Cond)
			p.indent--
		}
		p.printf("Body:\n")
		p.indent++
		p.stmts(n.Body)
		p.indent--
		p.indent--

	case *ForStmt:
		p.printf("ForStmt %s\n", n.pos)
		p.indent++
		p.printf("Init:\n")
		p.indent++
		p.print(n.Init)
		p.indent--
		p.printf("Cond:\n")
		p.indent++
		p.print(n.Cond)
		p.indent--
		p.printf("Step:\n")
		p.indent++
		p.print(n.Step)
		p.indent--
		p.printf("Body:\n")
		p.indent++
		p.stmts(n.Body)
		p.indent--
		p.indent--

	case *FuncDecl:
		p.printf("FuncDecl %s\n", n.pos)
		p.indent++
		p.printf("Name: %s\n", pathString(n.Name))
		if len(n.Params) > 0 {
			p.printf("Params:\n")
			p.indent++
			for _, f := range n.Params {
				p.printf("%s %s\n", f.Name, f.Type)
			}
			p.indent--
		}
		p.printf("Body:\n")
		p.indent++
		p.stmts(n.Body)
		p.indent--
		p.indent--

	case *ContinueStmt:
		p.printf("ContinueStmt %s\n", n.pos)

	case *VarRef:
		p.printf("VarRef %s %q\n", n.pos, pathString(n))

	case *BasicLit:
		p.printf("BasicLit %s %s %q\n", n.pos, n.Kind, n.Value)

	case *IncDecExpr:
		p.printf("IncDecExpr %s %s\n", n.pos, n.Op)
		p.indent++
		p.print(n.X)
		p.indent--

	case *Operation:
		p.printf("Operation %s %s\n", n.pos, n.Op)
		p.indent++
		p.printf("X:\n")
		p.indent++
		p.print(n.X)
		p.indent--
		p.printf("Y:\n")
		p.indent++
		p.print(n.Y)
		p.indent--
		p.indent--

	case *ParenExpr:
		p.printf("ParenExpr %s\n", n.pos)
		p.indent++
		p.print(n.X)
		p.indent--

	case *CallExpr:
		p.printf("CallExpr %s\n", n.pos)
		p.indent++
		p.printf("Fun:\n")
		p.indent++
		p.print(n.Fun)
		p.indent--
		p.printf("Arg:\n")
		p.indent++
		p.print(n.Arg)
		p.indent--
		p.indent--

	default:
		p.printf("<%T>\n", node)
	}
}

// pathString returns the dotted form of a variable reference.
func pathString(v *VarRef) string {
	if v == nil {
		return "<nil>"
	}
	return strings.Join(v.Path, ".")
}
