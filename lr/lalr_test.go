package lr

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/npillmayer/parserjunior/lexer"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestCFSM(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pj.lr")
	defer teardown()
	//
	g := exprGrammar(t)
	b := NewLALR1Builder(g)
	if _, err := b.Build(); err != nil {
		t.Fatal(err)
	}
	cfsm := b.CFSM()
	if len(cfsm.States()) != 6 {
		t.Fatalf("expected 6 LR(0) states, have %d", len(cfsm.States()))
	}
	start := cfsm.StartRule()
	if !start.IsSynthetic() || start.Target.Name() != "E'" {
		t.Errorf("expected synthetic start rule E' ➞ E, have %v", start)
	}
	s1 := cfsm.S0.Goto(g.NonTerminal("E"))
	if s1 == nil || !s1.Accept {
		t.Fatalf("expected goto(0,E) to be accepting")
	}
	// E ➞ E + • T is reached from state 1 and 0 only via E +
	s4 := s1.Goto(g.Terminal("+"))
	if k := s4.Kernel(); len(k) != 1 || k[0].String() != "E ➞ E + • T" {
		t.Errorf("unexpected kernel %v", k)
	}
	if s4.Goto(g.Terminal("int")) != cfsm.S0.Goto(g.Terminal("int")) {
		t.Errorf("expected states with equal kernels to be identical")
	}
	var buf bytes.Buffer
	if err := cfsm.CFSM2GraphViz(&buf); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "s001 -> s004") {
		t.Errorf("expected edge from state 1 to state 4 in graph")
	}
}

func TestExtendedGrammar(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pj.lr")
	defer teardown()
	//
	g := exprGrammar(t)
	b := NewLALR1Builder(g)
	if _, err := b.Build(); err != nil {
		t.Fatal(err)
	}
	ext := b.ExtendedRules()
	// from state 0: E' ➞ E, E ➞ E + T, E ➞ T, T ➞ int; from state 4: T ➞ int
	if len(ext) != 5 {
		t.Fatalf("expected 5 extended rules, have %d: %v", len(ext), ext)
	}
	var tAt0, tAt4 *ExtendedRule
	for _, r := range ext {
		if r.Base == g.Rule(2) && r.Target.From == 0 {
			tAt0 = r
		} else if r.Base == g.Rule(2) {
			tAt4 = r
		}
	}
	if tAt0 == nil || tAt4 == nil {
		t.Fatalf("expected T ➞ int to be extended from two states")
	}
	if tAt0.FinalState() != tAt4.FinalState() {
		t.Errorf("expected T ➞ int to share its final state")
	}
	follow0 := names(b.Follow(tAt0.Target))
	if follow0 != "+ EOF" {
		t.Errorf("expected FOLLOW(%v) = {+ EOF}, got {%s}", tAt0.Target, follow0)
	}
	first, nullable := b.First(tAt0.Target)
	if names(first) != "int" || nullable {
		t.Errorf("expected FIRST(T) = {int}, got {%s}", names(first))
	}
}

func TestActionTable(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pj.lr")
	defer teardown()
	//
	g := exprGrammar(t)
	table, err := BuildActionTable(g)
	if err != nil {
		t.Fatal(err)
	}
	t.Logf("\n%s", table)
	plus, num := g.Terminal("+"), g.Terminal("int")
	if a := table.Action(0, num); a.Kind != Shift {
		t.Errorf("expected shift on int in state 0, got %v", a)
	}
	if a := table.Action(1, lexer.EOF); a.Kind != Accept {
		t.Errorf("expected accept on EOF in state 1, got %v", a)
	}
	s3 := table.Action(0, num).Target
	for _, la := range []Symbol{plus, lexer.EOF} {
		if a := table.Action(s3, la); a.Kind != Reduce || a.Target != 2 {
			t.Errorf("expected reduce T ➞ int on %s, got %v", la.Name(), a)
		}
	}
	if a := table.Action(s3, num); a.Kind != Fail {
		t.Errorf("expected fail on int after int, got %v", a)
	}
	s4 := table.Action(1, plus).Target
	if e := names(table.Expected(s4)); e != "int" {
		t.Errorf("expected only int after +, got %s", e)
	}
	if e := names(table.Expected(1)); e != "EOF +" {
		t.Errorf("expected EOF and + in state 1, got %s", e)
	}
	if _, ok := table.Goto(0, g.NonTerminal("T")); !ok {
		t.Errorf("expected goto on T in state 0")
	}
	if a := table.Action(0, lexer.Literal("?")); a.Kind != Fail {
		t.Errorf("expected unknown symbols to fail, got %v", a)
	}
	rows, cells := table.Rows(), 0
	for state, row := range rows[1:] {
		for j, cell := range row[1:] {
			if cell == "" {
				continue
			}
			cells++
			if a := table.Action(state, table.Symbols()[j]); cell != a.String() {
				t.Errorf("row %d, column %s: expected %v, have %q", state, rows[0][j+1], a, cell)
			}
		}
	}
	if cells != table.ActionCount() {
		t.Errorf("expected %d cells in table rows, have %d", table.ActionCount(), cells)
	}
	var buf bytes.Buffer
	ActionTableAsHTML(table, &buf)
	if !strings.Contains(buf.String(), "<td>acc</td>") {
		t.Errorf("expected accept cell in HTML export")
	}
}

func TestTableConstructionIsIdempotent(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pj.lr")
	defer teardown()
	//
	g := exprGrammar(t)
	t1, err := BuildActionTable(g)
	if err != nil {
		t.Fatal(err)
	}
	t2, _ := BuildActionTable(g)
	if !t1.Equal(t2) {
		t.Errorf("expected tables to be equal")
	}
	if t1.Equal(nil) {
		t.Errorf("expected table to differ from nil")
	}
}

func TestProperStartRule(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pj.lr")
	defer teardown()
	//
	b := NewGrammarBuilder("G")
	b.LHS("S").N("A").End()
	b.LHS("A").L("a").End()
	g, _ := b.Grammar()
	table, err := BuildActionTable(g)
	if err != nil {
		t.Fatal(err)
	}
	if table.StartRule() != g.Rule(0) {
		t.Errorf("expected S ➞ A to serve as start rule")
	}
}

func TestEpsilonRules(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pj.lr")
	defer teardown()
	//
	b := NewGrammarBuilder("G")
	b.LHS("S").N("A").L("b").End()
	b.LHS("A").L("a").End()
	b.LHS("A").Epsilon()
	g, _ := b.Grammar()
	lalr := NewLALR1Builder(g)
	table, err := lalr.Build()
	if err != nil {
		t.Fatal(err)
	}
	// in state 0, ε-rule for A is reduced on lookahead b
	if a := table.Action(0, g.Terminal("b")); a.Kind != Reduce || a.Target != 2 {
		t.Errorf("expected reduce A ➞ ε on b, got %v", a)
	}
	for _, r := range lalr.ExtendedRules() {
		if r.Base == g.Rule(0) {
			first, nullable := lalr.First(r.Clause[0])
			if names(first) != "a" || !nullable {
				t.Errorf("expected FIRST(A) = {a} and A nullable, got {%s}, %v", names(first), nullable)
			}
		}
	}
}

func TestNonProductiveGrammar(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pj.lr")
	defer teardown()
	//
	b := NewGrammarBuilder("G")
	b.LHS("S").N("A").End()
	b.LHS("A").N("B").L("x").End()
	b.LHS("B").N("A").L("y").End()
	g, _ := b.Grammar()
	_, err := BuildActionTable(g)
	var rerr *ResolutionError
	if !errors.As(err, &rerr) {
		t.Fatalf("expected resolution failure, got %v", err)
	}
	t.Logf("error: %v", err)
	if len(rerr.Unresolved) == 0 || rerr.Resolved >= rerr.Total {
		t.Errorf("expected unresolved sets to be listed")
	}
}

// S ➞ if E then S | if E then S else S | x
// E ➞ b
func danglingElse(preferShift bool) *Grammar {
	b := NewGrammarBuilder("Dangling Else")
	r := b.LHS("S").L("if").N("E").L("then").N("S").End()
	if preferShift {
		r.Prefer(PreferShift)
	}
	b.LHS("S").L("if").N("E").L("then").N("S").L("else").N("S").End()
	b.LHS("S").L("x").End()
	b.LHS("E").L("b").End()
	g, _ := b.Grammar()
	return g
}

func TestShiftReduceConflict(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pj.lr")
	defer teardown()
	//
	_, err := BuildActionTable(danglingElse(false))
	var cerr *ConflictError
	if !errors.As(err, &cerr) {
		t.Fatalf("expected conflict, got %v", err)
	}
	if cerr.Terminal.Name() != "else" || cerr.Existing.Kind != Shift || cerr.New.Kind != Reduce {
		t.Errorf("expected shift/reduce conflict on else, got %v", cerr)
	}
	if !strings.HasPrefix(cerr.Error(), "shift/reduce") {
		t.Errorf("unexpected message %q", cerr.Error())
	}
}

func TestArbitration(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pj.lr")
	defer teardown()
	//
	g := danglingElse(true)
	table, err := BuildActionTable(g)
	if err != nil {
		t.Fatal(err)
	}
	shifts := 0
	for state := 0; state < table.StateCount(); state++ {
		a := table.Action(state, g.Terminal("else"))
		if a.Kind == Reduce {
			t.Errorf("expected no reduction on else, found %v in state %d", a, state)
		} else if a.Kind == Shift {
			shifts++
		}
	}
	if shifts != 1 {
		t.Errorf("expected exactly one state to shift else, have %d", shifts)
	}
	if _, err = BuildActionTable(g, StrictConflicts()); err == nil {
		t.Errorf("expected strict table construction to fail")
	}
}

func TestReduceReduceConflict(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pj.lr")
	defer teardown()
	//
	b := NewGrammarBuilder("G")
	b.LHS("S").N("A").End()
	b.LHS("S").N("B").End()
	b.LHS("A").L("x").End().Prefer(PreferReduce)
	b.LHS("B").L("x").End()
	g, _ := b.Grammar()
	_, err := BuildActionTable(g)
	var cerr *ConflictError
	if !errors.As(err, &cerr) {
		t.Fatalf("expected conflict, got %v", err)
	}
	if len(cerr.Rules) != 2 || !strings.HasPrefix(cerr.Error(), "reduce/reduce") {
		t.Errorf("expected reduce/reduce conflict, got %v", cerr)
	}
}

func TestOperatorPrecedence(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pj.lr")
	defer teardown()
	//
	plus, times := lexer.Literal("+"), lexer.Literal("*")
	b := NewGrammarBuilder("Ambiguous")
	b.LHS("E").N("E").T(plus).N("E").End()
	b.LHS("E").N("E").T(times).N("E").End()
	b.LHS("E").L("x").End()
	g, _ := b.Grammar()
	if _, err := BuildActionTable(g); err == nil {
		t.Fatalf("expected ambiguous grammar to fail without precedence")
	}
	g.SetPrecedence(1, LeftAssoc, plus)
	g.SetPrecedence(2, LeftAssoc, times)
	if _, err := BuildActionTable(g); err != nil {
		t.Errorf("expected precedence to resolve all conflicts, got %v", err)
	}
}

func TestLazySetCycle(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pj.lr")
	defer teardown()
	//
	a, b, c := newLazySet("A"), newLazySet("B"), newLazySet("C")
	a.Compose(b)
	b.Compose(a)
	b.Compose(c)
	c.Add(lexer.Literal("x"))
	a.Add(lexer.Literal("y"))
	if err := resolveAll([]*LazySet{a, b, c}); err != nil {
		t.Fatal(err)
	}
	if names(a.Values()) != "x y" || names(b.Values()) != "x y" {
		t.Errorf("expected A = B = {x y}, got %v and %v", a, b)
	}
	d, e := newLazySet("D"), newLazySet("E")
	d.Compose(e)
	e.Compose(d)
	err := resolveAll([]*LazySet{d, e})
	if err == nil || d.IsResolved() {
		t.Errorf("expected unanchored cycle to fail")
	}
}

func names(syms []Symbol) string {
	var n []string
	for _, sym := range syms {
		n = append(n, sym.Name())
	}
	return strings.Join(n, " ")
}
