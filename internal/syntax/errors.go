package syntax

import (
	"fmt"
	"strings"
)

// LexError is reported when the scanner cannot form a token.
// Lexing errors are fatal: no tokens follow one.
type LexError struct {
	Pos    Pos
	Reason string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Reason)
}

// SyntaxError is reported when the parser sees a token that no
// production can accept. Expected lists the token names that would
// have been accepted, in token order.
type SyntaxError struct {
	Pos      Pos
	Found    string
	Expected []string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s: unexpected %q, expected %s", e.Pos, e.Found, orList(e.Expected))
}

// BuildError is reported when a parse succeeds but the statement
// sequence cannot form a well-formed tree, such as an elif with no
// preceding if.
type BuildError struct {
	Pos Pos
	Msg string
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Msg)
}

// orList joins names as "a", "a or b", "a, b or c".
func orList(names []string) string {
	switch len(names) {
	case 0:
		return ""
	case 1:
		return names[0]
	}
	return strings.Join(names[:len(names)-1], ", ") + " or " + names[len(names)-1]
}
