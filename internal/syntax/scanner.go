package syntax

import (
	"fmt"
	"io"
	"strings"
)

// Scanner performs lexical analysis on Kiri source code.
//
// Lexical errors are fatal: the scanner reports the error through errh,
// produces a single _Error token carrying the reason, and stays on it.
type Scanner struct {
	source // embedded character reader

	// Current token info
	tok    Token  // token type
	lit    string // token literal (identifier name, number, string content)
	tokPos Pos    // token start position

	// Literal accumulation
	litBuf strings.Builder
}

// NewScanner creates a new Scanner for the given source.
// The errh function is called for each lexical error; if nil, errors are
// only observable through the _Error token.
func NewScanner(filename string, src io.Reader, errh func(line, col uint32, msg string)) *Scanner {
	s := &Scanner{
		source: *newSource(filename, src, errh),
	}
	return s
}

// Next advances to the next token.
func (s *Scanner) Next() {
	if s.tok == _Error {
		return // lexical errors are fatal; stay on the error token
	}

	s.skipWhitespace()

	// Record token start position
	s.tokPos = s.pos()

	// Scan token based on current character
	switch {
	case s.ch < 0:
		s.tok = _EOF
		s.lit = ""

	case isLetter(s.ch):
		s.scanIdent()

	case isDigit(s.ch):
		s.scanNumber()

	case s.ch == '"':
		s.scanString()

	case isOperatorStart(s.ch):
		s.scanOperator()

	default:
		s.errorAt(s.pos(), fmt.Sprintf("unexpected character %q", s.ch))
	}
}

// Token returns the current token type.
func (s *Scanner) Token() Token {
	return s.tok
}

// Literal returns the current token's literal value.
// For an _Error token it holds the error reason.
func (s *Scanner) Literal() string {
	return s.lit
}

// Pos returns the current token's start position.
// For an _Error token it holds the error position.
func (s *Scanner) Pos() Pos {
	return s.tokPos
}

// skipWhitespace skips space, tab, carriage return, and newline.
// Kiri has no semicolon insertion, so newlines carry no meaning.
func (s *Scanner) skipWhitespace() {
	for isWhitespace(s.ch) {
		s.nextch()
	}
}

// errorAt reports a lexical error and turns the current token into an
// _Error token with the reason as its literal.
func (s *Scanner) errorAt(pos Pos, msg string) {
	if s.errh != nil {
		s.errh(pos.Line(), pos.Col(), msg)
	}
	s.tokPos = pos
	s.tok = _Error
	s.lit = msg
}

// startLit begins accumulating a literal.
func (s *Scanner) startLit() {
	s.litBuf.Reset()
	s.litBuf.WriteRune(s.ch)
}

// continueLit adds the current character to the literal being accumulated.
func (s *Scanner) continueLit() {
	s.litBuf.WriteRune(s.ch)
}

// stopLit ends literal accumulation and returns the accumulated string.
func (s *Scanner) stopLit() string {
	return s.litBuf.String()
}

// scanIdent scans an identifier, keyword, or boolean literal.
func (s *Scanner) scanIdent() {
	s.startLit()
	s.nextch()

	for isLetter(s.ch) || isDigit(s.ch) {
		s.continueLit()
		s.nextch()
	}

	s.lit = s.stopLit()

	// Reserved words become keywords (or boolean literals)
	s.tok = LookupKeyword(s.lit)
}

// scanNumber scans an integer or float literal.
// A digit run is an integer; digit run '.' digit run is a float.
// A digit run followed by '.' with no digit after it is malformed.
func (s *Scanner) scanNumber() {
	s.startLit()
	s.nextch()

	for isDigit(s.ch) {
		s.continueLit()
		s.nextch()
	}
	s.tok = _IntLit

	if s.ch == '.' {
		s.continueLit()
		s.nextch()
		if !isDigit(s.ch) {
			s.errorAt(s.pos(), "malformed number literal")
			return
		}
		for isDigit(s.ch) {
			s.continueLit()
			s.nextch()
		}
		s.tok = _FloatLit
	}

	s.lit = s.stopLit()
}

// scanString scans a string literal.
// The literal is the raw content between the quotes: Kiri strings have
// no escape sequences, and any character (including newline) may appear.
func (s *Scanner) scanString() {
	s.nextch() // skip opening "
	var b strings.Builder

	for {
		switch {
		case s.ch == '"':
			s.nextch()
			s.lit = b.String()
			s.tok = _StringLit
			return

		case s.ch < 0:
			s.errorAt(s.pos(), "unterminated string literal")
			return

		default:
			b.WriteRune(s.ch)
			s.nextch()
		}
	}
}

// scanOperator scans an operator or delimiter, preferring the longest
// match: == over =, ++ over +, <= over <.
func (s *Scanner) scanOperator() {
	ch := s.ch
	s.nextch()

	switch ch {
	case '+':
		if s.ch == '+' {
			s.nextch()
			s.tok = _Inc
			s.lit = "++"
		} else {
			s.tok = _Add
			s.lit = "+"
		}
	case '-':
		if s.ch == '-' {
			s.nextch()
			s.tok = _Dec
			s.lit = "--"
		} else {
			s.tok = _Sub
			s.lit = "-"
		}
	case '*':
		s.tok = _Mul
		s.lit = "*"
	case '/':
		// No comment syntax: "//" scans as two division operators.
		s.tok = _Div
		s.lit = "/"
	case '&':
		if s.ch == '&' {
			s.nextch()
			s.tok = _AndAnd
			s.lit = "&&"
		} else {
			s.errorAt(s.tokPos, fmt.Sprintf("unexpected character %q", ch))
		}
	case '|':
		if s.ch == '|' {
			s.nextch()
			s.tok = _OrOr
			s.lit = "||"
		} else {
			s.errorAt(s.tokPos, fmt.Sprintf("unexpected character %q", ch))
		}
	case '<':
		if s.ch == '=' {
			s.nextch()
			s.tok = _Leq
			s.lit = "<="
		} else {
			s.tok = _Lss
			s.lit = "<"
		}
	case '>':
		if s.ch == '=' {
			s.nextch()
			s.tok = _Geq
			s.lit = ">="
		} else {
			s.tok = _Gtr
			s.lit = ">"
		}
	case '=':
		if s.ch == '=' {
			s.nextch()
			s.tok = _Eql
			s.lit = "=="
		} else {
			s.tok = _Assign
			s.lit = "="
		}
	case '!':
		if s.ch == '=' {
			s.nextch()
			s.tok = _Neq
			s.lit = "!="
		} else {
			s.errorAt(s.tokPos, fmt.Sprintf("unexpected character %q", ch))
		}
	case '(':
		s.tok = _Lparen
		s.lit = "("
	case ')':
		s.tok = _Rparen
		s.lit = ")"
	case '{':
		s.tok = _Lbrace
		s.lit = "{"
	case '}':
		s.tok = _Rbrace
		s.lit = "}"
	case ',':
		s.tok = _Comma
		s.lit = ","
	case ';':
		s.tok = _Semi
		s.lit = ";"
	case '.':
		s.tok = _Dot
		s.lit = "."
	}
}
