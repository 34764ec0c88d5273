package lexer

import (
	"bufio"
	"fmt"
	"io"

	pj "github.com/npillmayer/parserjunior"
)

// positioned is a rune together with the position it has been read from.
type positioned struct {
	r   rune
	pos pj.Position
}

// runeReader reads runes from an input and tracks their positions. Runes
// which have been read too far may be unread again, in any number.
type runeReader struct {
	reader  io.RuneReader
	pos     pj.Position  // position of the next rune to read
	unread  []positioned // stack of unread runes, top is next
	isEOF   bool
	lastErr error
}

func newRuneReader(input io.Reader) *runeReader {
	rr, ok := input.(io.RuneReader)
	if !ok {
		rr = bufio.NewReader(input)
	}
	return &runeReader{
		reader: rr,
		pos:    pj.StartPosition,
	}
}

// Position returns the position of the next rune.
func (rs *runeReader) Position() pj.Position {
	return rs.pos
}

// read returns the next rune, or io.EOF.
func (rs *runeReader) read() (positioned, error) {
	if n := len(rs.unread); n > 0 {
		p := rs.unread[n-1]
		rs.unread = rs.unread[:n-1]
		rs.pos = p.pos.Advance(p.r)
		return p, nil
	}
	if rs.isEOF {
		return positioned{pos: rs.pos}, io.EOF
	}
	if rs.lastErr != nil {
		return positioned{pos: rs.pos}, rs.lastErr
	}
	r, _, err := rs.reader.ReadRune()
	if err == io.EOF {
		tracer().Debugf("end of input at %s", rs.pos)
		rs.isEOF = true
		return positioned{pos: rs.pos}, io.EOF
	} else if err != nil {
		rs.lastErr = fmt.Errorf("lexer cannot read input (%w)", err)
		return positioned{pos: rs.pos}, rs.lastErr
	}
	p := positioned{r: r, pos: rs.pos}
	rs.pos = rs.pos.Advance(r)
	return p, nil
}

// unreadAll puts back a sequence of runes, which will be read again in order.
func (rs *runeReader) unreadAll(runes []positioned) {
	if len(runes) == 0 {
		return
	}
	for i := len(runes) - 1; i >= 0; i-- {
		rs.unread = append(rs.unread, runes[i])
	}
	rs.pos = runes[0].pos
}
