package lexer

import (
	"io"
	"strings"

	pj "github.com/npillmayer/parserjunior"
)

// LexerStream tokenizes a character stream. All lexemes of a stream
// compete for every token: the stream feeds each character to every live
// automaton until all of them have died, then chooses the longest match.
// Matches of equal length are decided by lexeme priority, then by the order
// in which lexemes have been passed to NewLexerStream.
//
// A LexerStream is not safe for concurrent use.
type LexerStream struct {
	lexemes    []*Lexeme
	cursors    []*Cursor
	ignored    map[*Lexeme]bool
	src        *runeReader
	listener   TokenListener
	pushedBack *Token
	err        error       // sticky lexical error
	Error      func(error) // error handler
}

var _ TokenStream = (*LexerStream)(nil)

// Option configures a lexer stream.
type Option func(ls *LexerStream)

// Ignore adds lexemes which are recognized but not emitted, e.g. whitespace
// and comments.
func Ignore(lexemes ...*Lexeme) Option {
	return func(ls *LexerStream) {
		for _, l := range lexemes {
			if !ls.contains(l) {
				ls.lexemes = append(ls.lexemes, l)
			}
			ls.ignored[l] = true
		}
	}
}

// WithListener installs a token listener, which sees every token just before
// it is emitted. The EOF token is not passed to listeners. A pushed-back token
// is passed to the listener again when it is re-read, so listeners have to
// tolerate seeing their own output.
func WithListener(listener TokenListener) Option {
	return func(ls *LexerStream) {
		ls.listener = listener
	}
}

// Default error reporting function for lexer streams
func logError(e error) {
	tracer().Errorf("lexer error: " + e.Error())
}

// NewLexerStream creates a stream over input for a set of lexemes.
// Lexemes without an automaton (EOF, artificial lexemes) are skipped.
func NewLexerStream(input io.Reader, lexemes []*Lexeme, opts ...Option) *LexerStream {
	ls := &LexerStream{
		ignored: make(map[*Lexeme]bool),
		src:     newRuneReader(input),
		Error:   logError,
	}
	for _, l := range lexemes {
		if !ls.contains(l) {
			ls.lexemes = append(ls.lexemes, l)
		}
	}
	for _, opt := range opts {
		opt(ls)
	}
	for _, l := range ls.lexemes {
		if l.automaton != nil {
			ls.cursors = append(ls.cursors, l.automaton.NewCursor())
		} else {
			ls.cursors = append(ls.cursors, nil)
		}
	}
	tracer().Debugf("lexer stream with %d lexemes", len(ls.lexemes))
	return ls
}

// NewStringStream is a shortcut for a lexer stream over a string.
func NewStringStream(input string, lexemes []*Lexeme, opts ...Option) *LexerStream {
	return NewLexerStream(strings.NewReader(input), lexemes, opts...)
}

func (ls *LexerStream) contains(l *Lexeme) bool {
	for _, m := range ls.lexemes {
		if m == l {
			return true
		}
	}
	return false
}

// SetErrorHandler sets an error handler for the stream. It is called for every
// error, before the error is returned from Next.
func (ls *LexerStream) SetErrorHandler(h func(error)) {
	if h == nil {
		ls.Error = logError
		return
	}
	ls.Error = h
}

// Lexemes returns the lexemes the stream recognizes, including ignored ones.
func (ls *LexerStream) Lexemes() []*Lexeme {
	return ls.lexemes
}

// Position returns the position of the next unread character.
func (ls *LexerStream) Position() pj.Position {
	return ls.src.Position()
}

// Pushback requeues a token. Only one token may be pushed back at a time.
func (ls *LexerStream) Pushback(tok Token) error {
	if ls.pushedBack != nil {
		return ErrPushbackFull
	}
	ls.pushedBack = &tok
	return nil
}

// Next returns the next token. After the end of input, EOF is returned
// forever. A lexical error ends tokenization: every later call returns it again.
func (ls *LexerStream) Next() (Token, error) {
	if ls.pushedBack != nil {
		tok := *ls.pushedBack
		ls.pushedBack = nil
		if tok, keep := ls.filter(tok); keep {
			return tok, nil
		}
	}
	for {
		tok, err := ls.scan()
		if err != nil {
			return tok, err
		}
		if ls.ignored[tok.Type] {
			tracer().Debugf("ignoring %v", tok)
			continue
		}
		if tok, keep := ls.filter(tok); keep {
			return tok, nil
		}
	}
}

// filter passes a token to the listener, if any.
func (ls *LexerStream) filter(tok Token) (Token, bool) {
	if ls.listener == nil || tok.IsEOF() {
		return tok, true
	}
	tok, keep := ls.listener(tok)
	if !keep {
		tracer().Debugf("token discarded by listener")
	}
	return tok, keep
}

// scan recognizes the next token, including ignored ones.
func (ls *LexerStream) scan() (Token, error) {
	if ls.err != nil {
		return Token{}, ls.err
	}
	start := ls.src.Position()
	for _, c := range ls.cursors {
		if c != nil {
			c.Reset()
		}
	}
	buf := make([]positioned, 0, 32)
	for {
		p, err := ls.src.read()
		if err == io.EOF {
			if len(buf) == 0 { // nothing consumed since the last token
				return MakeToken(EOF, "", start), nil
			}
			break
		} else if err != nil {
			return Token{}, ls.fail(err)
		}
		buf = append(buf, p)
		alive := false
		for _, c := range ls.cursors {
			if c != nil && !c.Step(p.r) {
				alive = true
			}
		}
		if !alive {
			break
		}
	}
	best := ls.bestMatch()
	if best < 0 {
		return Token{}, ls.fail(&LexicalError{Pos: start, Text: runesOf(buf)})
	}
	n := ls.cursors[best].MatchedLength()
	ls.src.unreadAll(buf[n:])
	tok := MakeToken(ls.lexemes[best], runesOf(buf[:n]), start)
	tracer().Debugf("scanned %v", tok)
	return tok, nil
}

// bestMatch selects the cursor with the longest match. Ties go to the higher
// priority, then to the earlier lexeme. It returns -1 if nothing matched.
func (ls *LexerStream) bestMatch() int {
	best, bestLen := -1, 0
	for i, c := range ls.cursors {
		if c == nil {
			continue
		}
		n := c.MatchedLength()
		if n == 0 {
			continue
		}
		if n > bestLen || n == bestLen && ls.lexemes[i].priority > ls.lexemes[best].priority {
			best, bestLen = i, n
		}
	}
	return best
}

func (ls *LexerStream) fail(err error) error {
	ls.err = err
	if ls.Error != nil {
		ls.Error(err)
	}
	return err
}

func runesOf(buf []positioned) string {
	var sb strings.Builder
	for _, p := range buf {
		sb.WriteRune(p.r)
	}
	return sb.String()
}
