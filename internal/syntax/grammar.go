package syntax

import "fmt"

// ----------------------------------------------------------------------------
// The Kiri grammar
//
// Kiri is parsed by a table-driven LL(1) pushdown automaton. The grammar
// below is the authority on what the language accepts:
//
//	P  -> S
//	S  -> A S' | V ( E ) ; S' | Q S' | F S' | D S'
//	S' -> S | ε
//	A  -> K V = E ;
//	Q  -> if ( E ) B | elif ( E ) B | else B | continue ;
//	F  -> for ( A E ; E ) B
//	D  -> fn V ( R ) B
//	R  -> K id R'
//	R' -> , R | ε
//	B  -> { S' }
//	E  -> I E'
//	E' -> + E | - E | * E | / E | == E | != E | < E | <= E | > E | >= E
//	    | && E | || E | ( E ) | ε
//	I  -> V | N | string-lit | bool-lit
//	V  -> id L
//	L  -> . id L | ++ | -- | ε
//	N  -> int-lit | float-lit
//	K  -> int | char | string | bool | float
//
// Consequences worth knowing: all binary operators share one precedence
// level and associate to the right; parentheses are call-argument syntax
// only, so (5) is not an expression; a call in expression position ends
// its operator chain; R is not nullable, so every function takes at
// least one parameter.
//
// First, follow, and nullable sets are computed by fixpoint at package
// init, and the parse table is checked for conflicts then: a grammar
// change that breaks the LL(1) property fails loudly at startup.

// nonterm identifies a nonterminal of the grammar.
type nonterm uint8

const (
	ntProgram   nonterm = iota // P
	ntStmt                     // S
	ntStmtSeq                  // S'
	ntAssign                   // A
	ntCond                     // Q
	ntLoop                     // F
	ntFunc                     // D
	ntParams                   // R
	ntParamsTail               // R'
	ntBlock                    // B
	ntExpr                     // E
	ntExprTail                 // E'
	ntAtom                     // I
	ntVar                      // V
	ntVarTail                  // L
	ntNum                      // N
	ntType                     // K
	ntCount
)

var nontermNames = [ntCount]string{
	ntProgram:    "P",
	ntStmt:       "S",
	ntStmtSeq:    "S'",
	ntAssign:     "A",
	ntCond:       "Q",
	ntLoop:       "F",
	ntFunc:       "D",
	ntParams:     "R",
	ntParamsTail: "R'",
	ntBlock:      "B",
	ntExpr:       "E",
	ntExprTail:   "E'",
	ntAtom:       "I",
	ntVar:        "V",
	ntVarTail:    "L",
	ntNum:        "N",
	ntType:       "K",
}

func (n nonterm) String() string {
	if n < ntCount {
		return nontermNames[n]
	}
	return fmt.Sprintf("nonterm(%d)", uint8(n))
}

// symbol is one grammar symbol: a terminal token or a nonterminal.
type symbol struct {
	tok  Token
	nt   nonterm
	term bool
}

func term(tok Token) symbol { return symbol{tok: tok, term: true} }
func nt(n nonterm) symbol   { return symbol{nt: n} }

func (s symbol) String() string {
	if s.term {
		return s.tok.String()
	}
	return s.nt.String()
}

// production is one grammar rule. An empty rhs is an ε production.
type production struct {
	lhs nonterm
	rhs []symbol
}

func (p *production) String() string {
	s := p.lhs.String() + " ->"
	if len(p.rhs) == 0 {
		return s + " ε"
	}
	for _, sym := range p.rhs {
		s += " " + sym.String()
	}
	return s
}

// Production indices. The parse table stores these.
const (
	pProgram    = iota // P  -> S
	pStmtAssign        // S  -> A S'
	pStmtCall          // S  -> V ( E ) ; S'
	pStmtCond          // S  -> Q S'
	pStmtLoop          // S  -> F S'
	pStmtFunc          // S  -> D S'
	pSeqMore           // S' -> S
	pSeqEnd            // S' -> ε
	pAssign            // A  -> K V = E ;
	pCondIf            // Q  -> if ( E ) B
	pCondElif          // Q  -> elif ( E ) B
	pCondElse          // Q  -> else B
	pCondCont          // Q  -> continue ;
	pLoop              // F  -> for ( A E ; E ) B
	pFunc              // D  -> fn V ( R ) B
	pParam             // R  -> K id R'
	pParamMore         // R' -> , R
	pParamEnd          // R' -> ε
	pBlock             // B  -> { S' }
	pExpr              // E  -> I E'
	pExprAdd           // E' -> + E
	pExprSub           // E' -> - E
	pExprMul           // E' -> * E
	pExprDiv           // E' -> / E
	pExprEql           // E' -> == E
	pExprNeq           // E' -> != E
	pExprLss           // E' -> < E
	pExprLeq           // E' -> <= E
	pExprGtr           // E' -> > E
	pExprGeq           // E' -> >= E
	pExprAnd           // E' -> && E
	pExprOr            // E' -> || E
	pExprCall          // E' -> ( E )
	pExprEnd           // E' -> ε
	pAtomVar           // I  -> V
	pAtomNum           // I  -> N
	pAtomString        // I  -> string-lit
	pAtomBool          // I  -> bool-lit
	pVar               // V  -> id L
	pPathDot           // L  -> . id L
	pPathInc           // L  -> ++
	pPathDec           // L  -> --
	pPathEnd           // L  -> ε
	pNumInt            // N  -> int-lit
	pNumFloat          // N  -> float-lit
	pTypeInt           // K  -> int
	pTypeChar          // K  -> char
	pTypeString        // K  -> string
	pTypeBool          // K  -> bool
	pTypeFloat         // K  -> float
	numProductions
)

var productions = [numProductions]production{
	pProgram:    {ntProgram, []symbol{nt(ntStmt)}},
	pStmtAssign: {ntStmt, []symbol{nt(ntAssign), nt(ntStmtSeq)}},
	pStmtCall:   {ntStmt, []symbol{nt(ntVar), term(_Lparen), nt(ntExpr), term(_Rparen), term(_Semi), nt(ntStmtSeq)}},
	pStmtCond:   {ntStmt, []symbol{nt(ntCond), nt(ntStmtSeq)}},
	pStmtLoop:   {ntStmt, []symbol{nt(ntLoop), nt(ntStmtSeq)}},
	pStmtFunc:   {ntStmt, []symbol{nt(ntFunc), nt(ntStmtSeq)}},
	pSeqMore:    {ntStmtSeq, []symbol{nt(ntStmt)}},
	pSeqEnd:     {ntStmtSeq, nil},
	pAssign:     {ntAssign, []symbol{nt(ntType), nt(ntVar), term(_Assign), nt(ntExpr), term(_Semi)}},
	pCondIf:     {ntCond, []symbol{term(_If), term(_Lparen), nt(ntExpr), term(_Rparen), nt(ntBlock)}},
	pCondElif:   {ntCond, []symbol{term(_Elif), term(_Lparen), nt(ntExpr), term(_Rparen), nt(ntBlock)}},
	pCondElse:   {ntCond, []symbol{term(_Else), nt(ntBlock)}},
	pCondCont:   {ntCond, []symbol{term(_Continue), term(_Semi)}},
	pLoop:       {ntLoop, []symbol{term(_For), term(_Lparen), nt(ntAssign), nt(ntExpr), term(_Semi), nt(ntExpr), term(_Rparen), nt(ntBlock)}},
	pFunc:       {ntFunc, []symbol{term(_Fn), nt(ntVar), term(_Lparen), nt(ntParams), term(_Rparen), nt(ntBlock)}},
	pParam:      {ntParams, []symbol{nt(ntType), term(_Name), nt(ntParamsTail)}},
	pParamMore:  {ntParamsTail, []symbol{term(_Comma), nt(ntParams)}},
	pParamEnd:   {ntParamsTail, nil},
	pBlock:      {ntBlock, []symbol{term(_Lbrace), nt(ntStmtSeq), term(_Rbrace)}},
	pExpr:       {ntExpr, []symbol{nt(ntAtom), nt(ntExprTail)}},
	pExprAdd:    {ntExprTail, []symbol{term(_Add), nt(ntExpr)}},
	pExprSub:    {ntExprTail, []symbol{term(_Sub), nt(ntExpr)}},
	pExprMul:    {ntExprTail, []symbol{term(_Mul), nt(ntExpr)}},
	pExprDiv:    {ntExprTail, []symbol{term(_Div), nt(ntExpr)}},
	pExprEql:    {ntExprTail, []symbol{term(_Eql), nt(ntExpr)}},
	pExprNeq:    {ntExprTail, []symbol{term(_Neq), nt(ntExpr)}},
	pExprLss:    {ntExprTail, []symbol{term(_Lss), nt(ntExpr)}},
	pExprLeq:    {ntExprTail, []symbol{term(_Leq), nt(ntExpr)}},
	pExprGtr:    {ntExprTail, []symbol{term(_Gtr), nt(ntExpr)}},
	pExprGeq:    {ntExprTail, []symbol{term(_Geq), nt(ntExpr)}},
	pExprAnd:    {ntExprTail, []symbol{term(_AndAnd), nt(ntExpr)}},
	pExprOr:     {ntExprTail, []symbol{term(_OrOr), nt(ntExpr)}},
	pExprCall:   {ntExprTail, []symbol{term(_Lparen), nt(ntExpr), term(_Rparen)}},
	pExprEnd:    {ntExprTail, nil},
	pAtomVar:    {ntAtom, []symbol{nt(ntVar)}},
	pAtomNum:    {ntAtom, []symbol{nt(ntNum)}},
	pAtomString: {ntAtom, []symbol{term(_StringLit)}},
	pAtomBool:   {ntAtom, []symbol{term(_BoolLit)}},
	pVar:        {ntVar, []symbol{term(_Name), nt(ntVarTail)}},
	pPathDot:    {ntVarTail, []symbol{term(_Dot), term(_Name), nt(ntVarTail)}},
	pPathInc:    {ntVarTail, []symbol{term(_Inc)}},
	pPathDec:    {ntVarTail, []symbol{term(_Dec)}},
	pPathEnd:    {ntVarTail, nil},
	pNumInt:     {ntNum, []symbol{term(_IntLit)}},
	pNumFloat:   {ntNum, []symbol{term(_FloatLit)}},
	pTypeInt:    {ntType, []symbol{term(_Int)}},
	pTypeChar:   {ntType, []symbol{term(_Char)}},
	pTypeString: {ntType, []symbol{term(_String)}},
	pTypeBool:   {ntType, []symbol{term(_Bool)}},
	pTypeFloat:  {ntType, []symbol{term(_Float)}},
}

// ----------------------------------------------------------------------------
// Token sets

// tokset is a set of tokens. tokenCount fits in a machine word.
type tokset uint64

func (s tokset) has(tok Token) bool {
	return s&(1<<tok) != 0
}

// add inserts tok and reports whether the set changed.
func (s *tokset) add(tok Token) bool {
	if s.has(tok) {
		return false
	}
	*s |= 1 << tok
	return true
}

// union merges other into s and reports whether the set changed.
func (s *tokset) union(other tokset) bool {
	old := *s
	*s |= other
	return *s != old
}

// tokens returns the members in token order.
func (s tokset) tokens() []Token {
	var toks []Token
	for tok := Token(0); tok < tokenCount; tok++ {
		if s.has(tok) {
			toks = append(toks, tok)
		}
	}
	return toks
}

// ----------------------------------------------------------------------------
// Parse table construction

var (
	nullable [ntCount]bool
	first    [ntCount]tokset
	follow   [ntCount]tokset

	// table[n][tok] is the production to apply for nonterminal n on
	// lookahead tok, or -1 when no production applies.
	table [ntCount][tokenCount]int16
)

func init() {
	computeSets()
	buildTable()
	verifyGrammar()
}

// computeSets runs the standard fixpoint over the productions until the
// nullable, first, and follow sets stop growing.
func computeSets() {
	follow[ntProgram].add(_EOF)

	for changed := true; changed; {
		changed = false
		for i := range productions {
			p := &productions[i]

			if !nullable[p.lhs] && seqNullable(p.rhs) {
				nullable[p.lhs] = true
				changed = true
			}

			if first[p.lhs].union(firstOfSeq(p.rhs)) {
				changed = true
			}

			for j, sym := range p.rhs {
				if sym.term {
					continue
				}
				rest := p.rhs[j+1:]
				if follow[sym.nt].union(firstOfSeq(rest)) {
					changed = true
				}
				if seqNullable(rest) && follow[sym.nt].union(follow[p.lhs]) {
					changed = true
				}
			}
		}
	}
}

// seqNullable reports whether every symbol of the sequence can derive ε.
func seqNullable(syms []symbol) bool {
	for _, sym := range syms {
		if sym.term || !nullable[sym.nt] {
			return false
		}
	}
	return true
}

// firstOfSeq returns the first set of a symbol sequence.
func firstOfSeq(syms []symbol) tokset {
	var s tokset
	for _, sym := range syms {
		if sym.term {
			s.add(sym.tok)
			return s
		}
		s.union(first[sym.nt])
		if !nullable[sym.nt] {
			return s
		}
	}
	return s
}

// predictSet returns the lookahead tokens that select production p.
func predictSet(p *production) tokset {
	s := firstOfSeq(p.rhs)
	if seqNullable(p.rhs) {
		s.union(follow[p.lhs])
	}
	return s
}

// buildTable fills the parse table and panics on an LL(1) conflict.
func buildTable() {
	for n := range table {
		for tok := range table[n] {
			table[n][tok] = -1
		}
	}
	for i := range productions {
		p := &productions[i]
		for _, tok := range predictSet(p).tokens() {
			if prev := table[p.lhs][tok]; prev >= 0 {
				panic(fmt.Sprintf("grammar not LL(1): %v and %v both apply for %v on %v",
					&productions[prev], p, p.lhs, tok))
			}
			table[p.lhs][tok] = int16(i)
		}
	}
}

// verifyGrammar panics when the production set leaves a nonterminal
// unreachable from the start symbol or a production selected by no
// lookahead. Either is a defect in the grammar itself, not an input
// error.
func verifyGrammar() {
	if n := unreachableNonterm(&productions); n >= 0 {
		panic(fmt.Sprintf("grammar: %v is unreachable from %v", nonterm(n), ntProgram))
	}
	if p := deadProduction(&table); p >= 0 {
		panic(fmt.Sprintf("grammar: %v is selected by no lookahead", &productions[p]))
	}
}

// unreachableNonterm returns the first nonterminal not reachable from
// the start symbol through the right-hand sides of prods, or -1.
func unreachableNonterm(prods *[numProductions]production) int {
	var seen [ntCount]bool
	seen[ntProgram] = true
	for changed := true; changed; {
		changed = false
		for i := range prods {
			p := &prods[i]
			if !seen[p.lhs] {
				continue
			}
			for _, sym := range p.rhs {
				if !sym.term && !seen[sym.nt] {
					seen[sym.nt] = true
					changed = true
				}
			}
		}
	}
	for n, ok := range seen {
		if !ok {
			return n
		}
	}
	return -1
}

// deadProduction returns the index of the first production no table
// entry selects, or -1.
func deadProduction(tab *[ntCount][tokenCount]int16) int {
	var seen [numProductions]bool
	for n := range tab {
		for _, p := range tab[n] {
			if p >= 0 {
				seen[p] = true
			}
		}
	}
	for i, ok := range seen {
		if !ok {
			return i
		}
	}
	return -1
}

// predict returns the production index for nonterminal n on lookahead
// tok, or -1 when the token is a syntax error at that point.
func predict(n nonterm, tok Token) int {
	return int(table[n][tok])
}

// accepts returns the tokens that select some production for n, in
// token order. Error messages list these as the expected tokens.
func accepts(n nonterm) []Token {
	var toks []Token
	for tok := Token(0); tok < tokenCount; tok++ {
		if table[n][tok] >= 0 {
			toks = append(toks, tok)
		}
	}
	return toks
}
