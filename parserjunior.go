package parserjunior

import "fmt"

// --- Positions --------------------------------------------------------

// Position is a location in an input stream. Lines and columns start at 1,
// Offset counts runes from the start of the input, starting at 0.
type Position struct {
	Line   int
	Column int
	Offset uint64
}

// StartPosition is the position of the first character of any input.
var StartPosition = Position{Line: 1, Column: 1}

// Advance returns the position just behind rune r.
func (p Position) Advance(r rune) Position {
	p.Offset++
	if r == '\n' {
		p.Line++
		p.Column = 1
	} else {
		p.Column++
	}
	return p
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// --- Spans ------------------------------------------------------------

// Span is a small type for capturing a length of input token run. Every
// node of a syntax tree tracks which input positions it covers. A span
// denotes a start offset and the offset just behind the end.
type Span [2]uint64 // (x…y)

// From returns the start value of a span.
func (s Span) From() uint64 {
	return s[0]
}

// To returns the end value of a span.
func (s Span) To() uint64 {
	return s[1]
}

// Len returns the length of (x…y)
func (s Span) Len() uint64 {
	return s[1] - s[0]
}

// IsNull is true for the zero span, which is what ε-productions cover.
func (s Span) IsNull() bool {
	return s == Span{}
}

// Extend returns the smallest span covering s and other. Null spans are neutral.
func (s Span) Extend(other Span) Span {
	if s.IsNull() {
		return other
	}
	if other.IsNull() {
		return s
	}
	if other[0] < s[0] {
		s[0] = other[0]
	}
	if other[1] > s[1] {
		s[1] = other[1]
	}
	return s
}

func (s Span) String() string {
	return fmt.Sprintf("(%d…%d)", s[0], s[1])
}
