package syntax

import (
	"fmt"
	"io"
	"strings"
)

// FprintSource writes node back out as Kiri source. The output is
// normalized: tab indentation, one statement per line, single spaces
// around operators. Parsing the output yields the same tree.
func FprintSource(w io.Writer, node Node) {
	p := &sourcePrinter{w: w}
	switch n := node.(type) {
	case *Program:
		p.stmtList(n.Stmts)
	case Stmt:
		p.stmt(n)
	case Expr:
		io.WriteString(w, exprSource(n))
	}
}

type sourcePrinter struct {
	w      io.Writer
	indent int
}

func (p *sourcePrinter) tabs() {
	io.WriteString(p.w, strings.Repeat("\t", p.indent))
}

func (p *sourcePrinter) line(format string, args ...interface{}) {
	p.tabs()
	fmt.Fprintf(p.w, format, args...)
	io.WriteString(p.w, "\n")
}

func (p *sourcePrinter) stmtList(list []Stmt) {
	for _, s := range list {
		p.stmt(s)
	}
}

func (p *sourcePrinter) stmt(s Stmt) {
	switch n := s.(type) {
	case *AssignStmt:
		p.line("%s", assignSource(n))

	case *CallStmt:
		p.line("%s%s;", pathString(n.Fun), exprSource(n.Arg))

	case *ContinueStmt:
		p.line("continue;")

	case *CondStmt:
		p.cond(n)

	case *ForStmt:
		p.tabs()
		fmt.Fprintf(p.w, "for (%s %s; %s) {\n",
			assignSource(n.Init), exprSource(n.Cond), exprSource(n.Step))
		p.body(n.Body)
		p.line("}")

	case *FuncDecl:
		params := make([]string, len(n.Params))
		for i, f := range n.Params {
			params[i] = f.Type.String() + " " + f.Name
		}
		p.tabs()
		fmt.Fprintf(p.w, "fn %s(%s) {\n", pathString(n.Name), strings.Join(params, ", "))
		p.body(n.Body)
		p.line("}")
	}
}

func (p *sourcePrinter) body(list []Stmt) {
	p.indent++
	p.stmtList(list)
	p.indent--
}

// cond prints a conditional chain with each follow-up branch on the
// closing brace line of the previous one.
func (p *sourcePrinter) cond(n *CondStmt) {
	for i, br := range n.Branches {
		if i == 0 {
			p.tabs()
		} else {
			io.WriteString(p.w, " ")
		}
		if br.Kind == ElseBranch {
			io.WriteString(p.w, "else {\n")
		} else {
			fmt.Fprintf(p.w, "%s (%s) {\n", br.Kind, exprSource(br.Cond))
		}
		p.body(br.Body)
		p.tabs()
		io.WriteString(p.w, "}")
	}
	io.WriteString(p.w, "\n")
}

// assignSource renders a typed assignment, semicolon included.
func assignSource(n *AssignStmt) string {
	return fmt.Sprintf("%s %s = %s;", n.DeclType, pathString(n.Name), exprSource(n.Value))
}

// exprSource renders an expression on one line. String literals are
// emitted raw between quotes: Kiri has no escape sequences, so the
// content scans back to itself.
func exprSource(e Expr) string {
	if e == nil {
		return "<nil>"
	}
	switch x := e.(type) {
	case *VarRef:
		return pathString(x)
	case *BasicLit:
		if x.Kind == StringLit {
			return `"` + x.Value + `"`
		}
		return x.Value
	case *IncDecExpr:
		return pathString(x.X) + x.Op.String()
	case *Operation:
		return exprSource(x.X) + " " + x.Op.String() + " " + exprSource(x.Y)
	case *ParenExpr:
		return "(" + exprSource(x.X) + ")"
	case *CallExpr:
		return exprSource(x.Fun) + exprSource(x.Arg)
	}
	return fmt.Sprintf("<%T>", e)
}
