package lexer

import (
	"fmt"
	"strings"
)

// ConstraintKind tells which kind of predicate a CharConstraint is.
type ConstraintKind int8

// Kinds of character constraints.
const (
	AnyChar ConstraintKind = iota
	EqualsChar
	InRange
	InList
	Negation
	Union
	Intersection
	Custom
)

var kindNames = [...]string{"ANY", "EQ", "INRANGE", "INLIST", "NOT", "OR", "AND", "CUSTOM"}

func (k ConstraintKind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "?"
}

// CharConstraint is a predicate over a single character, labelling a
// transition of an automaton. Constraints are immutable values; their
// expression string is what identifies them in diagrams and debug output.
type CharConstraint struct {
	kind  ConstraintKind
	expr  string
	match func(rune) bool
}

// Matches is true if r satisfies the constraint.
func (c CharConstraint) Matches(r rune) bool {
	if c.match == nil {
		return false
	}
	return c.match(r)
}

// Kind returns the kind of predicate.
func (c CharConstraint) Kind() ConstraintKind {
	return c.kind
}

// Expression returns the symbolic expression of the constraint.
func (c CharConstraint) Expression() string {
	return c.expr
}

// Equals compares two constraints by their symbolic expression.
func (c CharConstraint) Equals(other CharConstraint) bool {
	return c.kind == other.kind && c.expr == other.expr
}

func (c CharConstraint) String() string {
	return c.expr
}

// --- Constructors ----------------------------------------------------------

// Any matches every character.
func Any() CharConstraint {
	return CharConstraint{
		kind:  AnyChar,
		expr:  "true",
		match: func(rune) bool { return true },
	}
}

// Eq matches exactly character x.
func Eq(x rune) CharConstraint {
	return CharConstraint{
		kind:  EqualsChar,
		expr:  fmt.Sprintf("c == %s", quoteRune(x)),
		match: func(r rune) bool { return r == x },
	}
}

// Range matches characters from lo to hi, inclusive.
func Range(lo, hi rune) CharConstraint {
	return CharConstraint{
		kind:  InRange,
		expr:  fmt.Sprintf("(c >= %s && c <= %s)", quoteRune(lo), quoteRune(hi)),
		match: func(r rune) bool { return r >= lo && r <= hi },
	}
}

// OneOfChars matches any character contained in chars.
func OneOfChars(chars string) CharConstraint {
	set := make(map[rune]struct{}, len(chars))
	for _, r := range chars {
		set[r] = struct{}{}
	}
	return CharConstraint{
		kind: InList,
		expr: fmt.Sprintf("c in %q", chars),
		match: func(r rune) bool {
			_, ok := set[r]
			return ok
		},
	}
}

// Not negates a constraint.
func Not(c CharConstraint) CharConstraint {
	return CharConstraint{
		kind:  Negation,
		expr:  "!(" + c.expr + ")",
		match: func(r rune) bool { return !c.Matches(r) },
	}
}

// Or matches if any of cs matches.
func Or(cs ...CharConstraint) CharConstraint {
	return CharConstraint{
		kind: Union,
		expr: join(cs, " || "),
		match: func(r rune) bool {
			for _, c := range cs {
				if c.Matches(r) {
					return true
				}
			}
			return false
		},
	}
}

// And matches if all of cs match.
func And(cs ...CharConstraint) CharConstraint {
	return CharConstraint{
		kind: Intersection,
		expr: join(cs, " && "),
		match: func(r rune) bool {
			for _, c := range cs {
				if !c.Matches(r) {
					return false
				}
			}
			return true
		},
	}
}

// Predicate wraps an arbitrary function, e.g. unicode.IsLetter. The name is
// used as the constraint's expression.
func Predicate(name string, f func(rune) bool) CharConstraint {
	return CharConstraint{
		kind:  Custom,
		expr:  name + "(c)",
		match: f,
	}
}

func join(cs []CharConstraint, op string) string {
	exprs := make([]string, len(cs))
	for i, c := range cs {
		exprs[i] = c.expr
	}
	return "(" + strings.Join(exprs, op) + ")"
}

func quoteRune(r rune) string {
	return fmt.Sprintf("%q", r)
}
