package lexer

import (
	"errors"
	"fmt"

	pj "github.com/npillmayer/parserjunior"
)

// LexicalError is raised when no lexeme matches the input at some position.
// Pos is the end of the last token which has been committed, i.e. the start
// of the unmatched text.
type LexicalError struct {
	Pos  pj.Position
	Text string // characters read without finding a match
}

func (e *LexicalError) Error() string {
	return fmt.Sprintf("lexical error at %s: no lexeme matches %q", e.Pos, e.Text)
}

// ErrPushbackFull is returned when pushing back more than one token.
var ErrPushbackFull = errors.New("lexer: cannot push back more than one token")
