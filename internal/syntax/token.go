package syntax

import "fmt"

// Token represents the type of a lexical token.
type Token uint

const (
	// Special tokens
	_EOF   Token = iota // end of file
	_Error              // lexical error

	// Names and literals.
	// Each literal kind is its own token: the parse table selects
	// productions by literal kind, so a single catch-all literal token
	// would not carry enough information for the lookahead decision.
	_Name      // identifier: foo, bar, rect
	_IntLit    // 123
	_FloatLit  // 3.14
	_StringLit // "hello"
	_BoolLit   // true, false

	// Operators.
	// All binary operators share one precedence level and associate to
	// the right; the grammar defines no precedence climbing.
	_Assign // =
	_Eql    // ==
	_Neq    // !=
	_Lss    // <
	_Leq    // <=
	_Gtr    // >
	_Geq    // >=
	_AndAnd // &&
	_OrOr   // ||
	_Add    // +
	_Sub    // -
	_Mul    // *
	_Div    // /
	_Inc    // ++
	_Dec    // --

	// Delimiters
	_Lparen // (
	_Rparen // )
	_Lbrace // {
	_Rbrace // }
	_Comma  // ,
	_Semi   // ;
	_Dot    // .

	// Keywords.
	// The type keywords and the control keywords are distinct token
	// kinds rather than one keyword class: statement dispatch needs the
	// specific keyword identity as lookahead.
	_Int
	_Char
	_String
	_Bool
	_Float
	_If
	_Elif
	_Else
	_Continue
	_For
	_Fn

	tokenCount
)

// tokenNames maps tokens to their string representation.
var tokenNames = [...]string{
	_EOF:   "EOF",
	_Error: "ERROR",

	_Name:      "NAME",
	_IntLit:    "INT_LIT",
	_FloatLit:  "FLOAT_LIT",
	_StringLit: "STRING_LIT",
	_BoolLit:   "BOOL_LIT",

	_Assign: "=",
	_Eql:    "==",
	_Neq:    "!=",
	_Lss:    "<",
	_Leq:    "<=",
	_Gtr:    ">",
	_Geq:    ">=",
	_AndAnd: "&&",
	_OrOr:   "||",
	_Add:    "+",
	_Sub:    "-",
	_Mul:    "*",
	_Div:    "/",
	_Inc:    "++",
	_Dec:    "--",

	_Lparen: "(",
	_Rparen: ")",
	_Lbrace: "{",
	_Rbrace: "}",
	_Comma:  ",",
	_Semi:   ";",
	_Dot:    ".",

	_Int:      "int",
	_Char:     "char",
	_String:   "string",
	_Bool:     "bool",
	_Float:    "float",
	_If:       "if",
	_Elif:     "elif",
	_Else:     "else",
	_Continue: "continue",
	_For:      "for",
	_Fn:       "fn",
}

// String returns the string representation of the token.
func (t Token) String() string {
	if t < tokenCount {
		return tokenNames[t]
	}
	return fmt.Sprintf("token(%d)", t)
}

// IsKeyword reports whether t is a keyword token.
func (t Token) IsKeyword() bool {
	return t >= _Int && t <= _Fn
}

// IsTypeKeyword reports whether t is one of the declaration type
// keywords (int, char, string, bool, float).
func (t Token) IsTypeKeyword() bool {
	return t >= _Int && t <= _Float
}

// IsLiteral reports whether t is a literal token.
func (t Token) IsLiteral() bool {
	return t >= _IntLit && t <= _BoolLit
}

// IsOperator reports whether t is an operator token.
func (t Token) IsOperator() bool {
	return t >= _Assign && t <= _Dec
}

// IsEOF reports whether t is the EOF token.
func (t Token) IsEOF() bool {
	return t == _EOF
}

// LitKind classifies literal values in the AST.
type LitKind uint8

const (
	IntLit    LitKind = iota // 123
	FloatLit                 // 3.14
	StringLit                // "hello"
	BoolLit                  // true, false
)

// litKindNames maps literal kinds to their string representation.
var litKindNames = [...]string{
	IntLit:    "int",
	FloatLit:  "float",
	StringLit: "string",
	BoolLit:   "bool",
}

// String returns the string representation of the literal kind.
func (k LitKind) String() string {
	if k <= BoolLit {
		return litKindNames[k]
	}
	return fmt.Sprintf("LitKind(%d)", k)
}

// litKindOf maps a literal token to its AST literal kind.
func litKindOf(tok Token) LitKind {
	switch tok {
	case _IntLit:
		return IntLit
	case _FloatLit:
		return FloatLit
	case _StringLit:
		return StringLit
	default:
		return BoolLit
	}
}

// keywords maps reserved words to their token type. true and false are
// reserved too, but lex as boolean literals rather than keywords.
var keywords = map[string]Token{
	"int":      _Int,
	"char":     _Char,
	"string":   _String,
	"bool":     _Bool,
	"float":    _Float,
	"if":       _If,
	"elif":     _Elif,
	"else":     _Else,
	"continue": _Continue,
	"for":      _For,
	"fn":       _Fn,
	"true":     _BoolLit,
	"false":    _BoolLit,
}

// LookupKeyword returns the token for the given identifier string.
// Reserved words map to their keyword (or boolean literal) token;
// everything else is _Name.
func LookupKeyword(ident string) Token {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return _Name
}
