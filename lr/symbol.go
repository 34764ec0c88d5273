package lr

import (
	"github.com/emirpasic/gods/utils"
	"github.com/npillmayer/parserjunior/lexer"
)

// Symbol is a grammar symbol, either a terminal or a non-terminal.
// Terminals are lexemes (type *lexer.Lexeme), non-terminals are of type
// *NonTerminal. Within a grammar, symbols are identified by name and kind.
type Symbol interface {
	Name() string
	IsTerminal() bool
}

var _ Symbol = (*lexer.Lexeme)(nil)

// NonTerminal is a grammar symbol which is defined by rules.
type NonTerminal struct {
	name string
}

// NewNonTerminal creates a free-standing non-terminal. Grammars intern
// non-terminals by name, see Grammar.NonTerminal.
func NewNonTerminal(name string) *NonTerminal {
	return &NonTerminal{name: name}
}

// Name returns the name of the non-terminal.
func (n *NonTerminal) Name() string {
	return n.name
}

// IsTerminal is always false for non-terminals.
func (n *NonTerminal) IsTerminal() bool {
	return false
}

func (n *NonTerminal) String() string {
	return n.name
}

// symKey identifies a symbol within a grammar.
type symKey struct {
	name     string
	terminal bool
}

func keyOf(sym Symbol) symKey {
	return symKey{name: sym.Name(), terminal: sym.IsTerminal()}
}

// sameSymbol compares two symbols by identity within a grammar.
func sameSymbol(a, b Symbol) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return keyOf(a) == keyOf(b)
}

// symbolComparator orders terminals before non-terminals, then by name.
func symbolComparator(s1, s2 interface{}) int {
	a, b := s1.(Symbol), s2.(Symbol)
	if a.IsTerminal() != b.IsTerminal() {
		if a.IsTerminal() {
			return -1
		}
		return 1
	}
	return utils.StringComparator(a.Name(), b.Name())
}
