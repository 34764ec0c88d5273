/*
Package lexer turns character streams into token streams.

Every lexeme is recognized by a small finite automaton whose transitions are
labelled with character constraints. Automata are assembled explicitly with a
builder, so even complex lexemes (numbers with suffixes, strings with escape
sequences, block comments) need O(1) work per input character.

A LexerStream runs the automata of all lexemes of a language side by side.
When every automaton has died (or at the end of input) it emits a token for
the longest match found. Equal lengths are decided by lexeme priority, and
remaining ties by declaration order.

Usage

	plus := lexer.Literal("+")
	num := lexer.CInteger()
	stream := lexer.NewLexerStream(strings.NewReader("1+2"),
	    []*lexer.Lexeme{plus, num},
	    lexer.Ignore(lexer.Whitespace()))
	for {
	    tok, err := stream.Next()
	    if err != nil { ... }            // a *LexicalError
	    if tok.IsEOF() { break }
	    fmt.Println(tok)
	}

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package lexer

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'pj.lexer'.
func tracer() tracing.Trace {
	return tracing.Select("pj.lexer")
}
