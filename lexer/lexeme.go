package lexer

import "fmt"

// Default priorities of lexemes. Longer matches always win; priority only
// decides between matches of equal length.
const (
	LiteralPriority = 2
	WordPriority    = 1
	DefaultPriority = 0
)

// Lexeme is a token category, i.e. a terminal of a grammar. It owns the
// automaton recognizing it. A lexeme without an automaton never matches;
// this is the case for sentinels like EOF and for artificial lexemes.
type Lexeme struct {
	name      string
	priority  int
	automaton *Automaton
}

// NewLexeme creates a lexeme from an automaton.
func NewLexeme(name string, priority int, a *Automaton) *Lexeme {
	return &Lexeme{name: name, priority: priority, automaton: a}
}

// Sentinel lexemes.
var (
	// EOF is the type of the last token of every token stream.
	EOF = &Lexeme{name: "EOF", priority: -1}
	// Empty stands for the absence of any token. It may be used as the
	// lookahead of ε-alternatives, but is never produced by a lexer stream.
	Empty = &Lexeme{name: "ε", priority: -1}
)

// Artificial creates a lexeme which is never matched by a lexer stream. Token
// listeners may produce it, e.g. when re-classifying identifiers as type names.
func Artificial(name string) *Lexeme {
	return &Lexeme{name: name}
}

// Name returns the name of the lexeme. Within a grammar, terminals are
// identified by name.
func (l *Lexeme) Name() string {
	return l.name
}

// IsTerminal is always true for lexemes.
func (l *Lexeme) IsTerminal() bool {
	return true
}

// Priority returns the tie-break priority.
func (l *Lexeme) Priority() int {
	return l.priority
}

// Automaton returns the recognizer of this lexeme, or nil.
func (l *Lexeme) Automaton() *Automaton {
	return l.automaton
}

// IsArtificial is true for lexemes which cannot be matched from input.
func (l *Lexeme) IsArtificial() bool {
	return l.automaton == nil
}

// WithPriority returns a copy of l with a different priority.
func (l *Lexeme) WithPriority(p int) *Lexeme {
	c := *l
	c.priority = p
	return &c
}

// Named returns a copy of l with a different name.
func (l *Lexeme) Named(name string) *Lexeme {
	c := *l
	c.name = name
	return &c
}

func (l *Lexeme) String() string {
	if l == nil {
		return "<nil>"
	}
	return l.name
}

// GoString shows priority and automaton size.
func (l *Lexeme) GoString() string {
	n := 0
	if l.automaton != nil {
		n = l.automaton.StateCount()
	}
	return fmt.Sprintf("Lexeme{%q, prio=%d, states=%d}", l.name, l.priority, n)
}
