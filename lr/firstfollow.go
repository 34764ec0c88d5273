package lr

import (
	"fmt"

	"github.com/npillmayer/parserjunior/lexer"
)

// epsilon marks nullable sequences within FIRST sets. It is different from
// lexer.Empty, which may be used as a terminal in grammars.
var epsilon = lexer.Artificial("<ε>")

// setAnalysis computes FIRST and FOLLOW sets for the symbols of an extended
// grammar.
type setAnalysis struct {
	ext      []*ExtendedRule
	byTarget map[extKey][]*ExtendedRule
	nullable map[extKey]bool
	first    map[extKey]*LazySet
	follow   map[extKey]*LazySet
	order    []*LazySet // all sets, in order of creation
}

func analyzeSets(ext []*ExtendedRule, start *ExtendedRule) (*setAnalysis, error) {
	sa := &setAnalysis{
		ext:      ext,
		byTarget: make(map[extKey][]*ExtendedRule),
		nullable: make(map[extKey]bool),
		first:    make(map[extKey]*LazySet),
		follow:   make(map[extKey]*LazySet),
	}
	for _, r := range ext {
		k := r.Target.key()
		sa.byTarget[k] = append(sa.byTarget[k], r)
	}
	sa.computeNullable()
	for _, r := range ext {
		sa.makeSets(r.Target)
		for _, x := range r.Clause {
			if !x.IsTerminal() {
				sa.makeSets(x)
			}
		}
	}
	for _, r := range ext {
		sa.composeFirst(r)
	}
	if start != nil {
		sa.follow[start.Target.key()].Add(lexer.EOF)
	}
	for _, r := range ext {
		sa.composeFollow(r)
	}
	if err := resolveAll(sa.order); err != nil {
		return sa, err
	}
	return sa, nil
}

func (sa *setAnalysis) makeSets(x ExtendedSymbol) {
	k := x.key()
	if _, ok := sa.first[k]; ok {
		return
	}
	f := newLazySet(fmt.Sprintf("FIRST(%s)", x))
	sa.first[k] = f
	l := newLazySet(fmt.Sprintf("FOLLOW(%s)", x))
	sa.follow[k] = l
	sa.order = append(sa.order, f, l)
}

// computeNullable finds all extended non-terminals deriving ε.
func (sa *setAnalysis) computeNullable() {
	for changed := true; changed; {
		changed = false
		for _, r := range sa.ext {
			k := r.Target.key()
			if sa.nullable[k] {
				continue
			}
			if sa.sequenceNullable(r.Clause) {
				sa.nullable[k] = true
				changed = true
			}
		}
	}
}

func (sa *setAnalysis) sequenceNullable(seq []ExtendedSymbol) bool {
	for _, x := range seq {
		if x.IsTerminal() || !sa.nullable[x.key()] {
			return false
		}
	}
	return true
}

// composeFirst adds the FIRST set of a rule's right hand side to the FIRST
// set of its target.
func (sa *setAnalysis) composeFirst(r *ExtendedRule) {
	first := sa.first[r.Target.key()]
	if sa.addFirstOfSequence(first, r.Clause) {
		first.Add(epsilon)
	}
}

// addFirstOfSequence adds FIRST(seq) to set s, by descending into seq as
// long as its symbols are nullable. It returns true if seq is nullable.
func (sa *setAnalysis) addFirstOfSequence(s *LazySet, seq []ExtendedSymbol) bool {
	for _, x := range seq {
		if x.IsTerminal() {
			s.Add(x.Symbol)
			return false
		}
		s.Compose(sa.first[x.key()])
		if !sa.nullable[x.key()] {
			return false
		}
	}
	return true
}

// composeFollow adds to the FOLLOW sets of all non-terminals of a rule's
// right hand side.
func (sa *setAnalysis) composeFollow(r *ExtendedRule) {
	for i, x := range r.Clause {
		if x.IsTerminal() {
			continue
		}
		follow := sa.follow[x.key()]
		if sa.addFirstOfSequence(follow, r.Clause[i+1:]) {
			follow.Compose(sa.follow[r.Target.key()])
		}
	}
}

// First returns FIRST(x) without the ε-marker, and whether x is nullable.
func (sa *setAnalysis) First(x ExtendedSymbol) ([]Symbol, bool) {
	if x.IsTerminal() {
		return []Symbol{x.Symbol}, false
	}
	set, ok := sa.first[x.key()]
	if !ok {
		return nil, false
	}
	return withoutEpsilon(set.Values()), sa.nullable[x.key()]
}

// Follow returns FOLLOW(x).
func (sa *setAnalysis) Follow(x ExtendedSymbol) []Symbol {
	set, ok := sa.follow[x.key()]
	if !ok {
		return nil
	}
	return withoutEpsilon(set.Values())
}

func withoutEpsilon(syms []Symbol) []Symbol {
	r := syms[:0:0]
	for _, sym := range syms {
		if sym.Name() != epsilon.Name() {
			r = append(r, sym)
		}
	}
	return r
}
