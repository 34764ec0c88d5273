package lr

import (
	"github.com/emirpasic/gods/sets/treeset"
	"github.com/npillmayer/parserjunior/lexer"
)

// LALR1Builder constructs LALR(1) action tables. The construction follows
// the approach of merging LR(0) states with the help of an extended grammar
// (see Bermudez & Logothetis, "Simple computation of LALR(1) lookahead
// sets", and the description by Stephen Jackson):
//
//  1. build the canonical collection of LR(0) item sets
//  2. derive the extended grammar from it
//  3. compute FIRST and FOLLOW sets of the extended grammar
//  4. merge FOLLOW sets of extended rules sharing a base rule and a final
//     state, and create reduce actions for the merged lookaheads
//
// A builder is used for exactly one table.
type LALR1Builder struct {
	g      *Grammar
	strict bool // ignore precedence and arbitration
	start  *Rule
	cfsm   *CFSM
	ext    []*ExtendedRule
	sets   *setAnalysis
	table  *ActionTable
}

// BuildOption configures an LALR1Builder.
type BuildOption func(*LALR1Builder)

// StrictConflicts makes every conflict an error, ignoring operator
// precedence and rule arbitrations.
func StrictConflicts() BuildOption {
	return func(b *LALR1Builder) {
		b.strict = true
	}
}

// NewLALR1Builder creates a table builder for a grammar.
func NewLALR1Builder(g *Grammar, opts ...BuildOption) *LALR1Builder {
	b := &LALR1Builder{g: g}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// BuildActionTable is a shortcut for NewLALR1Builder(g, opts...).Build().
func BuildActionTable(g *Grammar, opts ...BuildOption) (*ActionTable, error) {
	return NewLALR1Builder(g, opts...).Build()
}

// Build constructs the action table. Conflicts which cannot be resolved are
// reported as *ConflictError, grammars with unresolvable FIRST or FOLLOW
// sets as *ResolutionError.
func (b *LALR1Builder) Build() (*ActionTable, error) {
	if b.table != nil {
		return b.table, nil
	}
	if err := b.g.Validate(); err != nil {
		return nil, err
	}
	b.g.Dump()
	b.start = startRule(b.g)
	b.cfsm = buildCFSM(b.g, b.start)
	var err error
	if b.ext, err = extendGrammar(b.cfsm); err != nil {
		return nil, err
	}
	var startExt *ExtendedRule
	for _, r := range b.ext {
		if r.Base == b.start {
			startExt = r
			break
		}
	}
	if b.sets, err = analyzeSets(b.ext, startExt); err != nil {
		tracer().Errorf("grammar %s: %v", b.g.Name, err)
		return nil, err
	}
	table := newActionTable(b.g, b.start, b.cfsm)
	b.installTransitions(table)
	if err = b.installReductions(table); err != nil {
		tracer().Errorf("grammar %s: %v", b.g.Name, err)
		return nil, err
	}
	if err = b.installAccept(table); err != nil {
		tracer().Errorf("grammar %s: %v", b.g.Name, err)
		return nil, err
	}
	tracer().Infof("LALR(1) table for %s: %d states, %d entries", b.g.Name,
		table.StateCount(), table.ActionCount())
	b.table = table
	return table, nil
}

// CFSM returns the canonical collection, available after Build.
func (b *LALR1Builder) CFSM() *CFSM {
	return b.cfsm
}

// ExtendedRules returns the extended grammar, available after Build.
func (b *LALR1Builder) ExtendedRules() []*ExtendedRule {
	return b.ext
}

// First returns FIRST(x) and whether x is nullable, available after Build.
func (b *LALR1Builder) First(x ExtendedSymbol) ([]Symbol, bool) {
	if b.sets == nil {
		return nil, false
	}
	return b.sets.First(x)
}

// Follow returns FOLLOW(x), available after Build.
func (b *LALR1Builder) Follow(x ExtendedSymbol) []Symbol {
	if b.sets == nil {
		return nil
	}
	return b.sets.Follow(x)
}

// startRule returns the target rule of g if it may serve as a start rule,
// i.e. its non-terminal has no other rules and does not appear on any right
// hand side. Otherwise a synthetic rule S' ➞ S is created, which is not
// part of the grammar.
func startRule(g *Grammar) *Rule {
	target := g.target
	proper := len(g.RulesFor(target.Target)) == 1
	for _, r := range g.rules {
		for _, sym := range r.Clause {
			if !sym.IsTerminal() && sym.Name() == target.Target.Name() {
				proper = false
			}
		}
	}
	if proper {
		return target
	}
	name := target.Target.Name() + "'"
	for g.ntByName[name] != nil {
		name += "'"
	}
	tracer().Debugf("grammar %s: adding start rule %s ➞ %s", g.Name, name, target.Target.Name())
	return &Rule{
		ID:        len(g.rules),
		Target:    &NonTerminal{name: name},
		Clause:    []Symbol{target.Target},
		synthetic: true,
	}
}

// installTransitions creates Shift and Goto actions from the CFSM.
func (b *LALR1Builder) installTransitions(table *ActionTable) {
	for _, s := range b.cfsm.states {
		for _, A := range s.symbols {
			kind := Goto
			if A.IsTerminal() {
				kind = Shift
			}
			table.set(s.ID, A, Action{Kind: kind, Target: s.Goto(A).ID})
		}
	}
}

type mergeKey struct {
	rule  int
	final int
}

// installReductions merges the lookaheads of extended rules by base rule and
// final state, and creates Reduce actions for them.
func (b *LALR1Builder) installReductions(table *ActionTable) error {
	merged := make(map[mergeKey]*treeset.Set)
	var order []mergeKey
	for _, r := range b.ext {
		if r.Base == b.start {
			continue
		}
		k := mergeKey{rule: r.Base.ID, final: r.final}
		la, ok := merged[k]
		if !ok {
			la = treeset.NewWith(symbolComparator)
			merged[k] = la
			order = append(order, k)
		}
		for _, sym := range b.sets.Follow(r.Target) {
			la.Add(sym)
		}
	}
	for _, k := range order {
		for _, x := range merged[k].Values() {
			a := Action{Kind: Reduce, Target: k.rule}
			if err := b.install(table, k.final, x.(Symbol), a); err != nil {
				return err
			}
		}
	}
	return nil
}

// installAccept creates Accept actions on EOF for states containing the
// completed start rule.
func (b *LALR1Builder) installAccept(table *ActionTable) error {
	for _, s := range b.cfsm.states {
		if s.Accept {
			if err := b.install(table, s.ID, lexer.EOF, Action{Kind: Accept}); err != nil {
				return err
			}
		}
	}
	return nil
}

// install sets an action, checking for conflicts with an existing one.
func (b *LALR1Builder) install(table *ActionTable, state int, t Symbol, a Action) error {
	old := table.Action(state, t)
	if old.Kind == Fail || old == a {
		table.set(state, t, a)
		return nil
	}
	if old.Kind == Shift && a.Kind == Reduce && !b.strict {
		r := b.g.Rule(a.Target)
		if shift, ok := b.g.resolveShiftReduce(r, t); ok {
			tracer().Debugf("state %d on %s: resolved %v/%v, shift=%v", state, t.Name(), old, a, shift)
			if !shift {
				table.set(state, t, a)
			}
			return nil
		}
	}
	err := &ConflictError{State: state, Terminal: t, Existing: old, New: a}
	for _, x := range []Action{old, a} {
		if x.Kind == Reduce {
			err.Rules = append(err.Rules, b.g.Rule(x.Target))
		}
	}
	return err
}
