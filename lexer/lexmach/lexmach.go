/*
Package lexmach provides an adapter to use the lexmachine scanner generator
as a token stream for the parsers of parserjunior.

For more information on lexmachine, see e.g.
https://hackthology.com/how-to-tokenize-complex-strings-with-lexmachine.html

Lexmachine has to be initialized by providing regular expressions. Package
lexmach is opinionated on how to do the setup of lexmachine: patterns are
bound to the lexemes of a grammar, so the tokens produced are ordinary
lexer.Tokens, with lexer.Lexeme token types.

	num := lexer.CInteger().Named("int")
	plus := lexer.Literal("+")
	init := func(lm *lexmach.LMAdapter) {
		lm.Lexer.Add([]byte(`[0-9]+`), lm.MakeToken(num))
		lm.Lexer.Add([]byte(`( |\t|\n|\r)+`), lexmach.Skip)
	}
	LM, err := lexmach.NewLMAdapter(init, []*lexer.Lexeme{plus}, nil)

Literals are matched verbatim by their name, keywords by their lower-case
name. Both take precedence over patterns of the init function.
NewLMAdapter will return an error if compiling the DFA failed. A scanner
is instantiated for each concrete input sequence and implements
lexer.TokenStream:

	scan, err := LM.Scanner("1 + 2")
	ast, err := p.Parse(scan)

________________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package lexmach

import (
	"errors"
	"strings"
	"unicode"
	"unicode/utf8"

	pj "github.com/npillmayer/parserjunior"
	"github.com/npillmayer/parserjunior/lexer"
	"github.com/npillmayer/schuko/tracing"

	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"
)

// tracer traces with key 'pj.lexer'.
func tracer() tracing.Trace {
	return tracing.Select("pj.lexer")
}

// LMAdapter is a lexmachine adapter to use lexmachine as a token stream.
type LMAdapter struct {
	Lexer   *lexmachine.Lexer
	lexemes []*lexer.Lexeme // lexmachine token types are indices
}

// NewLMAdapter creates a new lexmachine adapter. It receives an init
// function for custom patterns, a list of literals ('[', ';', …) and a
// list of keywords ("if", "for", …).
//
// NewLMAdapter will return an error if compiling the DFA failed.
func NewLMAdapter(init func(*LMAdapter), literals []*lexer.Lexeme, keywords []*lexer.Lexeme) (*LMAdapter, error) {
	adapter := &LMAdapter{Lexer: lexmachine.NewLexer()}
	// lexmachine prefers earlier patterns for matches of equal length
	for _, lit := range literals {
		adapter.Lexer.Add([]byte(Escape(lit.Name())), adapter.MakeToken(lit))
	}
	for _, kw := range keywords {
		adapter.Lexer.Add([]byte(strings.ToLower(kw.Name())), adapter.MakeToken(kw))
	}
	if init != nil {
		init(adapter)
	}
	if err := adapter.Lexer.Compile(); err != nil {
		tracer().Errorf("error compiling DFA: %v", err)
		return nil, err
	}
	return adapter, nil
}

// Escape quotes all characters of a literal which are not letters or digits,
// making it a regular expression matching the literal.
func Escape(literal string) string {
	var b strings.Builder
	for _, r := range literal {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// MakeToken creates an action which wraps a scanned match into a token of
// type l.
func (lm *LMAdapter) MakeToken(l *lexer.Lexeme) lexmachine.Action {
	id := -1
	for i, m := range lm.lexemes {
		if m == l {
			id = i
		}
	}
	if id < 0 {
		id = len(lm.lexemes)
		lm.lexemes = append(lm.lexemes, l)
	}
	return func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		return s.Token(id, string(m.Bytes), m), nil
	}
}

// Skip is a pre-defined action which ignores the scanned match.
func Skip(*lexmachine.Scanner, *machines.Match) (interface{}, error) {
	return nil, nil
}

// Lexemes returns the lexemes the adapter produces tokens for.
func (lm *LMAdapter) Lexemes() []*lexer.Lexeme {
	return lm.lexemes
}

// Scanner creates a scanner for a given input.
func (lm *LMAdapter) Scanner(input string) (*LMScanner, error) {
	s, err := lm.Lexer.Scanner([]byte(input))
	if err != nil {
		return nil, err
	}
	return &LMScanner{
		scanner: s,
		lexemes: lm.lexemes,
		input:   input,
		pos:     pj.StartPosition,
		Error:   logError,
	}, nil
}

// LMScanner is a scanner type for lexmachine scanners, implementing the
// lexer.TokenStream interface.
type LMScanner struct {
	scanner    *lexmachine.Scanner
	lexemes    []*lexer.Lexeme
	input      string
	tc         int         // byte offset pos refers to
	pos        pj.Position // position at tc
	pushedBack *lexer.Token
	Error      func(error) // error handler
}

var _ lexer.TokenStream = (*LMScanner)(nil)

// SetErrorHandler sets an error handler for the scanner.
func (lms *LMScanner) SetErrorHandler(h func(error)) {
	if h == nil {
		lms.Error = logError
		return
	}
	lms.Error = h
}

// Default error reporting function for lexmachine-based scanners
func logError(e error) {
	tracer().Errorf("scanner error: " + e.Error())
}

// Pushback requeues a token. Only one token may be pushed back at a time.
func (lms *LMScanner) Pushback(tok lexer.Token) error {
	if lms.pushedBack != nil {
		return lexer.ErrPushbackFull
	}
	lms.pushedBack = &tok
	return nil
}

// Next is part of the lexer.TokenStream interface. Input lexmachine cannot
// match is reported as a lexer.LexicalError; scanning resumes behind it.
func (lms *LMScanner) Next() (lexer.Token, error) {
	if lms.pushedBack != nil {
		tok := *lms.pushedBack
		lms.pushedBack = nil
		return tok, nil
	}
	tok, err, eos := lms.scanner.Next()
	if err != nil {
		var ui *machines.UnconsumedInput
		if errors.As(err, &ui) {
			lexerr, end := lms.lexicalError(ui.StartTC, ui.FailTC)
			lms.scanner.TC = end
			lms.Error(lexerr)
			return lexer.Token{}, lexerr
		}
		lms.Error(err)
		return lexer.Token{}, err
	}
	if eos {
		return lexer.MakeToken(lexer.EOF, "", lms.positionAt(len(lms.input))), nil
	}
	token := tok.(*lexmachine.Token)
	tracer().Debugf("lexmachine token %d %q", token.Type, token.Lexeme)
	if token.Type < 0 || token.Type >= len(lms.lexemes) {
		return lexer.Token{}, errors.New("lexmachine produced a token of unknown type")
	}
	return lexer.MakeToken(lms.lexemes[token.Type], string(token.Lexeme), lms.positionAt(token.TC)), nil
}

// lexicalError covers the unmatched input from..to, but at least one rune.
// It returns the offset to resume scanning at.
func (lms *LMScanner) lexicalError(from, to int) (*lexer.LexicalError, int) {
	if from > len(lms.input) {
		from = len(lms.input)
	}
	if to <= from && from < len(lms.input) {
		_, size := utf8.DecodeRuneInString(lms.input[from:])
		to = from + size
	}
	if to > len(lms.input) {
		to = len(lms.input)
	}
	return &lexer.LexicalError{Pos: lms.positionAt(from), Text: lms.input[from:to]}, to
}

// positionAt advances the scanner's position to byte offset tc. Offsets
// only grow, as lexmachine reads the input front to back.
func (lms *LMScanner) positionAt(tc int) pj.Position {
	if tc < lms.tc {
		return lms.pos
	}
	for _, r := range lms.input[lms.tc:tc] {
		lms.pos = lms.pos.Advance(r)
	}
	lms.tc = tc
	return lms.pos
}
