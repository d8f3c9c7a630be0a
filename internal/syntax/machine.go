package syntax

import (
	"fmt"
	"io"
)

// ----------------------------------------------------------------------------
// Pushdown automaton
//
// The Machine runs the LL(1) parse: a stack of grammar symbols, seeded
// with the end marker and the start symbol, consumed against the token
// stream under parse table control. Each step either expands the top
// nonterminal by a production chosen on one token of lookahead, or
// matches the top terminal against the current token.
//
// The Machine reports its steps as Events, one per Next call, in the
// manner of a streaming decoder. Next returns io.EOF once the input is
// accepted. The builder replays the events to construct the tree; the
// trace command prints them.

// EventKind discriminates machine events.
type EventKind uint8

const (
	ExpandEvent EventKind = iota // a production was applied
	MatchEvent                   // a terminal was consumed
)

// Event is one step of the parse.
type Event struct {
	Kind EventKind
	Prod int    // applied production index (ExpandEvent); -1 for matches
	Tok  Token  // consumed token (MatchEvent)
	Lit  string // consumed token's literal (MatchEvent)
	Pos  Pos    // position of the lookahead driving the step
}

func (e Event) String() string {
	switch e.Kind {
	case ExpandEvent:
		return "expand " + productions[e.Prod].String()
	case MatchEvent:
		return fmt.Sprintf("match %v %q", e.Tok, e.Lit)
	}
	return fmt.Sprintf("event(%d)", uint8(e.Kind))
}

// Machine is the pushdown automaton over a token stream.
type Machine struct {
	scan  *Scanner
	stack []symbol // parse stack; the top is the last element
	err   error    // sticky: io.EOF after accept, or the first failure
}

// NewMachine returns a Machine ready to parse src.
func NewMachine(filename string, src io.Reader) *Machine {
	m := &Machine{}
	m.scan = NewScanner(filename, src, nil)
	m.scan.Next()
	m.stack = append(m.stack, term(_EOF), nt(ntProgram))
	return m
}

// Next performs one step of the parse and returns the resulting event.
// It returns io.EOF when the input has been accepted. Any other error
// ends the parse; further calls return the same error.
func (m *Machine) Next() (Event, error) {
	if m.err != nil {
		return Event{}, m.err
	}

	if m.scan.Token() == _Error {
		m.err = &LexError{Pos: m.scan.Pos(), Reason: m.scan.Literal()}
		return Event{}, m.err
	}

	top := m.stack[len(m.stack)-1]
	tok := m.scan.Token()

	if top.term {
		if top.tok == _EOF {
			// End marker exposed: the start symbol has been fully
			// matched. Anything but EOF is trailing input.
			if tok == _EOF {
				m.err = io.EOF
				return Event{}, m.err
			}
			m.err = m.syntaxError([]Token{_EOF})
			return Event{}, m.err
		}
		if tok != top.tok {
			m.err = m.syntaxError([]Token{top.tok})
			return Event{}, m.err
		}
		ev := Event{
			Kind: MatchEvent,
			Prod: -1,
			Tok:  tok,
			Lit:  m.scan.Literal(),
			Pos:  m.scan.Pos(),
		}
		m.stack = m.stack[:len(m.stack)-1]
		m.scan.Next()
		return ev, nil
	}

	p := predict(top.nt, tok)
	if p < 0 {
		m.err = m.syntaxError(accepts(top.nt))
		return Event{}, m.err
	}

	ev := Event{
		Kind: ExpandEvent,
		Prod: p,
		Pos:  m.scan.Pos(),
	}

	// Replace the nonterminal with the production body, rightmost
	// symbol pushed first so the leftmost ends up on top.
	m.stack = m.stack[:len(m.stack)-1]
	rhs := productions[p].rhs
	for i := len(rhs) - 1; i >= 0; i-- {
		m.stack = append(m.stack, rhs[i])
	}
	return ev, nil
}

// syntaxError builds the error for the current lookahead.
func (m *Machine) syntaxError(expected []Token) error {
	names := make([]string, len(expected))
	for i, tok := range expected {
		names[i] = tok.String()
	}
	return &SyntaxError{
		Pos:      m.scan.Pos(),
		Found:    foundString(m.scan.Token(), m.scan.Literal()),
		Expected: names,
	}
}

// foundString renders the offending token for an error message: the
// lexeme for names and literals, the token name otherwise.
func foundString(tok Token, lit string) string {
	if tok == _Name || tok.IsLiteral() {
		return lit
	}
	return tok.String()
}
