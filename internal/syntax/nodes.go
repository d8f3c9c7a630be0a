// Package syntax implements lexical and syntactic analysis for the Kiri programming language.
package syntax

// ----------------------------------------------------------------------------
// Interfaces
//
// There are 2 main classes of nodes: Expressions and Statements.
// All nodes implement the Node interface. Declarations (typed assignments,
// function declarations) appear in statement position in Kiri, so they are
// statement nodes.

// Node is the interface implemented by all AST nodes.
type Node interface {
	Pos() Pos // position of first character belonging to the node
	aNode()   // marker method to restrict implementations to this package
}

// Expr is the interface for all expression nodes.
type Expr interface {
	Node
	aExpr()
}

// Stmt is the interface for all statement nodes.
type Stmt interface {
	Node
	aStmt()
}

// ----------------------------------------------------------------------------
// Base node types

// node is the base struct embedded in all AST nodes.
type node struct {
	pos Pos
}

func (n *node) Pos() Pos { return n.pos }
func (n *node) aNode()   {}

// expr is embedded in all expression nodes.
type expr struct{ node }

func (*expr) aExpr() {}

// stmt is embedded in all statement nodes.
type stmt struct{ node }

func (*stmt) aStmt() {}

// ----------------------------------------------------------------------------
// Programs

// Program represents a complete source file: a non-empty statement sequence.
type Program struct {
	node
	Stmts []Stmt
}

// ----------------------------------------------------------------------------
// Statements

// AssignStmt represents a typed assignment: DeclType Name = Value ;
// Every assignment in Kiri carries a type keyword, whether it introduces
// a variable or overwrites one.
type AssignStmt struct {
	stmt
	DeclType Token   // _Int, _Char, _String, _Bool, or _Float
	Name     *VarRef // assignment target (may be a dotted path)
	Value    Expr
}

// CallStmt represents a call in statement position: Fun(Arg) ;
type CallStmt struct {
	stmt
	Fun *VarRef    // callee (may be a dotted path)
	Arg *ParenExpr // single parenthesized argument
}

// CondStmt represents a conditional chain: an if branch followed by any
// number of elif branches and at most one else branch.
type CondStmt struct {
	stmt
	Branches []*Branch
}

// BranchKind discriminates the branches of a CondStmt.
type BranchKind uint8

const (
	IfBranch BranchKind = iota
	ElifBranch
	ElseBranch
)

var branchKindNames = [...]string{
	IfBranch:   "if",
	ElifBranch: "elif",
	ElseBranch: "else",
}

func (k BranchKind) String() string {
	if int(k) < len(branchKindNames) {
		return branchKindNames[k]
	}
	return "branch"
}

// Branch is one arm of a CondStmt.
type Branch struct {
	node
	Kind BranchKind
	Cond Expr // nil for an else branch
	Body []Stmt
}

// ForStmt represents a loop: for (Init Cond ; Step) { Body }
// The init clause is a full typed assignment and supplies the first
// semicolon of the header.
type ForStmt struct {
	stmt
	Init *AssignStmt
	Cond Expr
	Step Expr
	Body []Stmt
}

// FuncDecl represents a function declaration: fn Name(Params) { Body }
// A function takes at least one parameter.
type FuncDecl struct {
	stmt
	Name   *VarRef
	Params []*Param
	Body   []Stmt
}

// Param is one typed parameter of a function declaration.
type Param struct {
	node
	Type Token // _Int, _Char, _String, _Bool, or _Float
	Name string
}

// ContinueStmt represents a continue statement.
type ContinueStmt struct {
	stmt
}

// ----------------------------------------------------------------------------
// Expressions

// BasicLit represents a literal value (int, float, string, bool).
type BasicLit struct {
	expr
	Value string  // literal text (raw content for strings)
	Kind  LitKind // IntLit, FloatLit, StringLit, BoolLit
}

// VarRef represents a variable reference: a name optionally followed by
// dotted field selections, such as x or rect.size.width.
type VarRef struct {
	expr
	Path []string // at least one element
}

// IncDecExpr represents a postfix increment or decrement: X++ or X--.
type IncDecExpr struct {
	expr
	X  *VarRef
	Op Token // _Inc or _Dec
}

// Operation represents a binary operation: X Op Y.
// Operators associate to the right and share one precedence level.
type Operation struct {
	expr
	Op Token // operator token
	X  Expr  // left operand
	Y  Expr  // right operand
}

// ParenExpr represents a parenthesized expression: (X).
// Parentheses appear only as call-argument syntax in Kiri.
type ParenExpr struct {
	expr
	X Expr // inner expression
}

// CallExpr represents a call in expression position: Fun(Arg).
// The call terminates its operator chain, so nothing follows it inside
// the enclosing expression.
type CallExpr struct {
	expr
	Fun Expr       // callee: the atom preceding the argument list
	Arg *ParenExpr // single parenthesized argument
}
