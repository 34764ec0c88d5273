package parser

import (
	"fmt"
	"strings"

	"github.com/npillmayer/parserjunior/lexer"
	"github.com/npillmayer/parserjunior/lr"
)

// ParseError is a syntax error: no action exists for a token in the
// current state.
type ParseError struct {
	Token    lexer.Token // the offending token
	Expected []lr.Symbol // terminals which would have been accepted
	State    int         // parser state
}

func (e *ParseError) Error() string {
	unexpected := fmt.Sprintf("%q", e.Token.Text)
	if e.Token.IsEOF() {
		unexpected = "end of input"
	}
	return fmt.Sprintf("syntax error at %s: unexpected %s, expected one of [%s]",
		e.Token.Pos, unexpected, strings.Join(e.ExpectedNames(), ", "))
}

// ExpectedNames returns the names of the expected terminals.
func (e *ParseError) ExpectedNames() []string {
	names := make([]string, len(e.Expected))
	for i, sym := range e.Expected {
		names[i] = sym.Name()
	}
	return names
}
