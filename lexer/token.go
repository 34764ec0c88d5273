package lexer

import (
	"fmt"
	"unicode/utf8"

	pj "github.com/npillmayer/parserjunior"
)

// Token is an immutable unit of input, as produced by a token stream.
//
// An example would be a token for a floating point number:
//
//	Type  = cFloatingPoint   // the lexeme which matched
//	Text  = "3.1416"         // the matched input
//	Pos   = 3:7              // line and column of the first character
//	Value = 3.1416           // optional, set by a token listener
type Token struct {
	Type  *Lexeme
	Text  string
	Pos   pj.Position
	Value interface{}
}

// MakeToken creates a token without a value.
func MakeToken(typ *Lexeme, text string, pos pj.Position) Token {
	return Token{Type: typ, Text: text, Pos: pos}
}

// IsEOF is true for the sentinel token ending every stream.
func (t Token) IsEOF() bool {
	return t.Type == EOF
}

// Span returns the rune offsets covered by the token.
func (t Token) Span() pj.Span {
	from := t.Pos.Offset
	return pj.Span{from, from + uint64(utf8.RuneCountInString(t.Text))}
}

// WithType returns a copy of t with another token type.
func (t Token) WithType(l *Lexeme) Token {
	t.Type = l
	return t
}

// WithValue returns a copy of t carrying value v.
func (t Token) WithValue(v interface{}) Token {
	t.Value = v
	return t
}

func (t Token) String() string {
	if t.IsEOF() {
		return fmt.Sprintf("EOF@%s", t.Pos)
	}
	return fmt.Sprintf("%s(%q)@%s", t.Type, t.Text, t.Pos)
}

// TokenStream is the interface parsers use to receive tokens. A stream ends
// with an EOF token, which is repeated on every further call of Next.
// Pushback requeues one token, which is returned by the next call of Next.
type TokenStream interface {
	Next() (Token, error)
	Pushback(Token) error
}

// TokenListener may rewrite a token before it is emitted. Returning false
// discards the token.
type TokenListener func(Token) (Token, bool)

// Tokenize reads all tokens of a stream, up to and including EOF.
func Tokenize(stream TokenStream) ([]Token, error) {
	var tokens []Token
	for {
		tok, err := stream.Next()
		if err != nil {
			return tokens, err
		}
		tokens = append(tokens, tok)
		if tok.IsEOF() {
			return tokens, nil
		}
	}
}
