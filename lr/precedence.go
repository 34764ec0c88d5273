package lr

import (
	"github.com/npillmayer/parserjunior/lexer"
)

// Arbitration is a preference of a rule for shift/reduce conflicts.
type Arbitration int8

// Arbitrations for shift/reduce conflicts.
const (
	NoArbitration Arbitration = iota
	PreferShift
	PreferReduce
)

func (a Arbitration) String() string {
	switch a {
	case PreferShift:
		return "prefer-shift"
	case PreferReduce:
		return "prefer-reduce"
	}
	return "none"
}

// Associativity decides between operators of equal precedence.
type Associativity int8

// Associativity of operators.
const (
	LeftAssoc Associativity = iota
	RightAssoc
	NonAssoc
)

type precedence struct {
	level int
	assoc Associativity
}

// SetPrecedence declares a precedence level for terminals. Higher levels
// bind tighter. Level 0 removes a declaration.
func (g *Grammar) SetPrecedence(level int, assoc Associativity, terminals ...*lexer.Lexeme) {
	for _, t := range terminals {
		if level <= 0 {
			delete(g.precedence, t.Name())
			continue
		}
		g.precedence[t.Name()] = precedence{level: level, assoc: assoc}
	}
}

// Precedence returns the precedence level of a terminal, or 0.
func (g *Grammar) Precedence(t Symbol) int {
	return g.precedence[t.Name()].level
}

// RulePrecedence returns the precedence of a rule: its explicit level, if
// set, otherwise the level of its rightmost terminal, or 0.
func (g *Grammar) RulePrecedence(r *Rule) int {
	if r.precedence > 0 {
		return r.precedence
	}
	for i := len(r.Clause) - 1; i >= 0; i-- {
		if r.Clause[i].IsTerminal() {
			return g.Precedence(r.Clause[i])
		}
	}
	return 0
}

// resolveShiftReduce decides a shift/reduce conflict between reducing r
// and shifting t. If both have a precedence level, the levels decide. On
// equal levels the rule's arbitration decides, then the associativity of t.
// Without levels only the arbitration counts. If ok is false, the conflict
// cannot be resolved.
func (g *Grammar) resolveShiftReduce(r *Rule, t Symbol) (shift bool, ok bool) {
	rp, tp := g.RulePrecedence(r), g.precedence[t.Name()]
	if rp > 0 && tp.level > 0 {
		switch {
		case tp.level > rp:
			return true, true
		case tp.level < rp:
			return false, true
		}
	} else if r.arbitration == NoArbitration {
		return false, false
	}
	switch r.arbitration {
	case PreferShift:
		return true, true
	case PreferReduce:
		return false, true
	}
	switch tp.assoc {
	case LeftAssoc:
		return false, true
	case RightAssoc:
		return true, true
	}
	return false, false // non-associative
}
