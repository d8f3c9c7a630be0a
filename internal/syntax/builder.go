package syntax

import (
	"fmt"
	"io"
)

// ----------------------------------------------------------------------------
// Tree construction
//
// The builder replays the Machine's event stream and constructs the
// syntax tree. It mirrors the grammar one method per nonterminal: each
// method consumes the expand event for its nonterminal, dispatches on
// the production, and consumes the match events for the terminals of
// that production. The machine and the builder walk the same table, so
// any disagreement between them is a bug, reported as a BuildError
// rather than a panic.
//
// Two well-formedness rules live here and not in the grammar. A branch
// keyword only continues a conditional chain that is still open in the
// same statement sequence, and a ++ or -- may not end the variable path
// in a name position (assignment target, call target, function name).

// Parse reads a Kiri program from src and returns its syntax tree.
// The error is a *LexError, *SyntaxError, or *BuildError.
func Parse(filename string, src io.Reader) (*Program, error) {
	b := &builder{m: NewMachine(filename, src)}
	prog, err := b.program()
	if err != nil {
		return nil, err
	}
	ev, err := b.m.Next()
	switch {
	case err == io.EOF:
		return prog, nil
	case err != nil:
		return nil, err
	}
	return nil, &BuildError{Pos: ev.Pos, Msg: fmt.Sprintf("unexpected %v after program end", ev)}
}

type builder struct {
	m *Machine
}

// expand consumes the next event, which must apply a production of n,
// and returns the production index and the lookahead position.
func (b *builder) expand(n nonterm) (int, Pos, error) {
	ev, err := b.m.Next()
	if err != nil {
		return -1, Pos{}, err
	}
	if ev.Kind != ExpandEvent || productions[ev.Prod].lhs != n {
		return -1, Pos{}, b.desync(ev, n.String())
	}
	return ev.Prod, ev.Pos, nil
}

// match consumes the next event, which must match the terminal tok.
func (b *builder) match(tok Token) (Event, error) {
	ev, err := b.m.Next()
	if err != nil {
		return Event{}, err
	}
	if ev.Kind != MatchEvent || ev.Tok != tok {
		return Event{}, b.desync(ev, tok.String())
	}
	return ev, nil
}

func (b *builder) desync(ev Event, want string) error {
	return &BuildError{Pos: ev.Pos, Msg: fmt.Sprintf("%v while building %s", ev, want)}
}

// ----------------------------------------------------------------------------
// Statement sequences

// seq accumulates one statement sequence, folding elif and else
// branches into the conditional chain they extend.
type seq struct {
	stmts []Stmt
	open  *CondStmt // trailing conditional still accepting branches
}

func (q *seq) add(s Stmt) {
	q.open = nil
	q.stmts = append(q.stmts, s)
}

func (q *seq) addBranch(br *Branch) error {
	switch br.Kind {
	case IfBranch:
		cs := &CondStmt{Branches: []*Branch{br}}
		cs.pos = br.pos
		q.stmts = append(q.stmts, cs)
		q.open = cs
	case ElifBranch:
		if q.open == nil {
			return &BuildError{Pos: br.pos, Msg: "elif without preceding if"}
		}
		q.open.Branches = append(q.open.Branches, br)
	case ElseBranch:
		if q.open == nil {
			return &BuildError{Pos: br.pos, Msg: "else without preceding if"}
		}
		q.open.Branches = append(q.open.Branches, br)
		q.open = nil // nothing may extend the chain past an else
	}
	return nil
}

func (b *builder) program() (*Program, error) {
	_, pos, err := b.expand(ntProgram) // P -> S
	if err != nil {
		return nil, err
	}
	var q seq
	if err := b.stmt(&q); err != nil {
		return nil, err
	}
	prog := &Program{Stmts: q.stmts}
	prog.pos = pos
	return prog, nil
}

// stmt builds one S: a single construct followed by the trailing
// sequence continuation.
func (b *builder) stmt(q *seq) error {
	p, _, err := b.expand(ntStmt)
	if err != nil {
		return err
	}

	switch p {
	case pStmtAssign:
		a, err := b.assign()
		if err != nil {
			return err
		}
		q.add(a)

	case pStmtCall:
		cs, err := b.callStmt()
		if err != nil {
			return err
		}
		q.add(cs)

	case pStmtCond:
		br, cont, err := b.cond()
		if err != nil {
			return err
		}
		if cont != nil {
			q.add(cont)
		} else if err := q.addBranch(br); err != nil {
			return err
		}

	case pStmtLoop:
		f, err := b.loop()
		if err != nil {
			return err
		}
		q.add(f)

	case pStmtFunc:
		d, err := b.funcDecl()
		if err != nil {
			return err
		}
		q.add(d)
	}

	return b.seqTail(q)
}

// seqTail builds S': either the next statement or the end of the
// sequence.
func (b *builder) seqTail(q *seq) error {
	p, _, err := b.expand(ntStmtSeq)
	if err != nil {
		return err
	}
	if p == pSeqEnd {
		return nil
	}
	return b.stmt(q) // pSeqMore
}

// block builds B and returns the enclosed statements. The conditional
// chain state does not cross the braces in either direction.
func (b *builder) block() ([]Stmt, error) {
	if _, _, err := b.expand(ntBlock); err != nil {
		return nil, err
	}
	if _, err := b.match(_Lbrace); err != nil {
		return nil, err
	}
	var q seq
	if err := b.seqTail(&q); err != nil {
		return nil, err
	}
	if _, err := b.match(_Rbrace); err != nil {
		return nil, err
	}
	return q.stmts, nil
}

// ----------------------------------------------------------------------------
// Statements

// assign builds A: a typed assignment including its semicolon.
func (b *builder) assign() (*AssignStmt, error) {
	_, pos, err := b.expand(ntAssign)
	if err != nil {
		return nil, err
	}
	declType, _, err := b.typeKeyword()
	if err != nil {
		return nil, err
	}
	name, err := b.varRef("declaration name")
	if err != nil {
		return nil, err
	}
	if _, err := b.match(_Assign); err != nil {
		return nil, err
	}
	val, err := b.expr()
	if err != nil {
		return nil, err
	}
	if _, err := b.match(_Semi); err != nil {
		return nil, err
	}
	a := &AssignStmt{DeclType: declType, Name: name, Value: val}
	a.pos = pos
	return a, nil
}

// callStmt builds the V ( E ) ; part of a call statement.
func (b *builder) callStmt() (*CallStmt, error) {
	fun, err := b.varRef("call target")
	if err != nil {
		return nil, err
	}
	arg, err := b.parenArg()
	if err != nil {
		return nil, err
	}
	if _, err := b.match(_Semi); err != nil {
		return nil, err
	}
	cs := &CallStmt{Fun: fun, Arg: arg}
	cs.pos = fun.Pos()
	return cs, nil
}

// parenArg builds a parenthesized call argument: ( E ).
func (b *builder) parenArg() (*ParenExpr, error) {
	lparen, err := b.match(_Lparen)
	if err != nil {
		return nil, err
	}
	arg, err := b.expr()
	if err != nil {
		return nil, err
	}
	if _, err := b.match(_Rparen); err != nil {
		return nil, err
	}
	p := &ParenExpr{X: arg}
	p.pos = lparen.Pos
	return p, nil
}

// cond builds Q: one branch of a conditional chain, or a continue
// statement. Exactly one of the results is non-nil.
func (b *builder) cond() (*Branch, *ContinueStmt, error) {
	p, pos, err := b.expand(ntCond)
	if err != nil {
		return nil, nil, err
	}

	switch p {
	case pCondIf, pCondElif:
		kw, kind := _If, IfBranch
		if p == pCondElif {
			kw, kind = _Elif, ElifBranch
		}
		if _, err := b.match(kw); err != nil {
			return nil, nil, err
		}
		if _, err := b.match(_Lparen); err != nil {
			return nil, nil, err
		}
		cond, err := b.expr()
		if err != nil {
			return nil, nil, err
		}
		if _, err := b.match(_Rparen); err != nil {
			return nil, nil, err
		}
		body, err := b.block()
		if err != nil {
			return nil, nil, err
		}
		br := &Branch{Kind: kind, Cond: cond, Body: body}
		br.pos = pos
		return br, nil, nil

	case pCondElse:
		if _, err := b.match(_Else); err != nil {
			return nil, nil, err
		}
		body, err := b.block()
		if err != nil {
			return nil, nil, err
		}
		br := &Branch{Kind: ElseBranch, Body: body}
		br.pos = pos
		return br, nil, nil

	default: // pCondCont
		ev, err := b.match(_Continue)
		if err != nil {
			return nil, nil, err
		}
		if _, err := b.match(_Semi); err != nil {
			return nil, nil, err
		}
		c := &ContinueStmt{}
		c.pos = ev.Pos
		return nil, c, nil
	}
}

// loop builds F. The init clause is a full assignment and brings the
// first of the two header semicolons with it.
func (b *builder) loop() (*ForStmt, error) {
	_, pos, err := b.expand(ntLoop)
	if err != nil {
		return nil, err
	}
	if _, err := b.match(_For); err != nil {
		return nil, err
	}
	if _, err := b.match(_Lparen); err != nil {
		return nil, err
	}
	init, err := b.assign()
	if err != nil {
		return nil, err
	}
	cond, err := b.expr()
	if err != nil {
		return nil, err
	}
	if _, err := b.match(_Semi); err != nil {
		return nil, err
	}
	step, err := b.expr()
	if err != nil {
		return nil, err
	}
	if _, err := b.match(_Rparen); err != nil {
		return nil, err
	}
	body, err := b.block()
	if err != nil {
		return nil, err
	}
	f := &ForStmt{Init: init, Cond: cond, Step: step, Body: body}
	f.pos = pos
	return f, nil
}

// funcDecl builds D.
func (b *builder) funcDecl() (*FuncDecl, error) {
	_, pos, err := b.expand(ntFunc)
	if err != nil {
		return nil, err
	}
	if _, err := b.match(_Fn); err != nil {
		return nil, err
	}
	name, err := b.varRef("function name")
	if err != nil {
		return nil, err
	}
	if _, err := b.match(_Lparen); err != nil {
		return nil, err
	}
	params, err := b.params()
	if err != nil {
		return nil, err
	}
	if _, err := b.match(_Rparen); err != nil {
		return nil, err
	}
	body, err := b.block()
	if err != nil {
		return nil, err
	}
	d := &FuncDecl{Name: name, Params: params, Body: body}
	d.pos = pos
	return d, nil
}

// params builds R and its R' continuations: one or more comma-separated
// typed parameters.
func (b *builder) params() ([]*Param, error) {
	var list []*Param
	for {
		if _, _, err := b.expand(ntParams); err != nil { // R -> K id R'
			return nil, err
		}
		typ, typPos, err := b.typeKeyword()
		if err != nil {
			return nil, err
		}
		name, err := b.match(_Name)
		if err != nil {
			return nil, err
		}
		p := &Param{Type: typ, Name: name.Lit}
		p.pos = typPos
		list = append(list, p)

		pt, _, err := b.expand(ntParamsTail)
		if err != nil {
			return nil, err
		}
		if pt == pParamEnd {
			return list, nil
		}
		if _, err := b.match(_Comma); err != nil { // pParamMore
			return nil, err
		}
	}
}

// typeKeyword builds K and returns the keyword token.
func (b *builder) typeKeyword() (Token, Pos, error) {
	p, _, err := b.expand(ntType)
	if err != nil {
		return 0, Pos{}, err
	}
	ev, err := b.match(productions[p].rhs[0].tok)
	if err != nil {
		return 0, Pos{}, err
	}
	return ev.Tok, ev.Pos, nil
}

// ----------------------------------------------------------------------------
// Expressions

// expr builds E. Operator chains associate to the right: the whole rest
// of the chain becomes the right operand. A call argument list ends the
// chain instead.
func (b *builder) expr() (Expr, error) {
	if _, _, err := b.expand(ntExpr); err != nil {
		return nil, err
	}
	atom, err := b.atom()
	if err != nil {
		return nil, err
	}

	p, _, err := b.expand(ntExprTail)
	if err != nil {
		return nil, err
	}

	switch p {
	case pExprEnd:
		return atom, nil

	case pExprCall:
		arg, err := b.parenArg()
		if err != nil {
			return nil, err
		}
		call := &CallExpr{Fun: atom, Arg: arg}
		call.pos = atom.Pos()
		return call, nil

	default: // operator production
		op := productions[p].rhs[0].tok
		if _, err := b.match(op); err != nil {
			return nil, err
		}
		rest, err := b.expr()
		if err != nil {
			return nil, err
		}
		o := &Operation{Op: op, X: atom, Y: rest}
		o.pos = atom.Pos()
		return o, nil
	}
}

// atom builds I.
func (b *builder) atom() (Expr, error) {
	p, _, err := b.expand(ntAtom)
	if err != nil {
		return nil, err
	}

	switch p {
	case pAtomVar:
		return b.varOrIncDec()

	case pAtomNum:
		np, _, err := b.expand(ntNum)
		if err != nil {
			return nil, err
		}
		ev, err := b.match(productions[np].rhs[0].tok)
		if err != nil {
			return nil, err
		}
		lit := &BasicLit{Value: ev.Lit, Kind: litKindOf(ev.Tok)}
		lit.pos = ev.Pos
		return lit, nil

	case pAtomString:
		ev, err := b.match(_StringLit)
		if err != nil {
			return nil, err
		}
		lit := &BasicLit{Value: ev.Lit, Kind: StringLit}
		lit.pos = ev.Pos
		return lit, nil

	default: // pAtomBool
		ev, err := b.match(_BoolLit)
		if err != nil {
			return nil, err
		}
		lit := &BasicLit{Value: ev.Lit, Kind: BoolLit}
		lit.pos = ev.Pos
		return lit, nil
	}
}

// varOrIncDec builds V in expression position, where a trailing ++ or
// -- forms a postfix expression.
func (b *builder) varOrIncDec() (Expr, error) {
	v, op, _, err := b.varCore()
	if err != nil {
		return nil, err
	}
	if op == _Inc || op == _Dec {
		x := &IncDecExpr{X: v, Op: op}
		x.pos = v.pos
		return x, nil
	}
	return v, nil
}

// varRef builds V in a name position, where a trailing ++ or -- has no
// meaning and is rejected.
func (b *builder) varRef(role string) (*VarRef, error) {
	v, op, opPos, err := b.varCore()
	if err != nil {
		return nil, err
	}
	if op == _Inc || op == _Dec {
		return nil, &BuildError{
			Pos: opPos,
			Msg: fmt.Sprintf("cannot use %q in a %s", op.String(), role),
		}
	}
	return v, nil
}

// varCore builds V -> id L: a dotted path with an optional trailing
// ++ or --. The trailing operator is returned for the caller to accept
// or reject; op is _EOF when there is none.
func (b *builder) varCore() (v *VarRef, op Token, opPos Pos, err error) {
	if _, _, err = b.expand(ntVar); err != nil {
		return nil, 0, Pos{}, err
	}
	name, err := b.match(_Name)
	if err != nil {
		return nil, 0, Pos{}, err
	}
	v = &VarRef{Path: []string{name.Lit}}
	v.pos = name.Pos

	for {
		p, _, err := b.expand(ntVarTail)
		if err != nil {
			return nil, 0, Pos{}, err
		}
		switch p {
		case pPathDot:
			if _, err := b.match(_Dot); err != nil {
				return nil, 0, Pos{}, err
			}
			field, err := b.match(_Name)
			if err != nil {
				return nil, 0, Pos{}, err
			}
			v.Path = append(v.Path, field.Lit)

		case pPathInc, pPathDec:
			tok := _Inc
			if p == pPathDec {
				tok = _Dec
			}
			ev, err := b.match(tok)
			if err != nil {
				return nil, 0, Pos{}, err
			}
			return v, ev.Tok, ev.Pos, nil

		default: // pPathEnd
			return v, _EOF, Pos{}, nil
		}
	}
}
