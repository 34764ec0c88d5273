package lr

import (
	"fmt"
	"strings"
)

// ExtendedSymbol is a grammar symbol annotated with the CFSM transition it
// causes: the parser moves from state From to state To when recognizing it.
// To is -1 if there is no such transition, which is the case for the
// target of the start rule only.
type ExtendedSymbol struct {
	From   int
	Symbol Symbol
	To     int
}

type extKey struct {
	from int
	sym  symKey
	to   int
}

func (x ExtendedSymbol) key() extKey {
	return extKey{from: x.From, sym: keyOf(x.Symbol), to: x.To}
}

// IsTerminal is true if the underlying symbol is a terminal.
func (x ExtendedSymbol) IsTerminal() bool {
	return x.Symbol.IsTerminal()
}

func (x ExtendedSymbol) String() string {
	if x.To < 0 {
		return fmt.Sprintf("%d_%s_$", x.From, x.Symbol.Name())
	}
	return fmt.Sprintf("%d_%s_%d", x.From, x.Symbol.Name(), x.To)
}

// ExtendedRule is a rule of the extended grammar. It is derived from a base
// rule by replaying its right hand side on the CFSM, starting from a state
// which contains the rule's start item.
type ExtendedRule struct {
	Base   *Rule
	Target ExtendedSymbol
	Clause []ExtendedSymbol
	final  int
}

// FinalState is the state the CFSM is in after recognizing the right hand
// side of the rule. The base rule is reduced in this state.
func (r *ExtendedRule) FinalState() int {
	return r.final
}

func (r *ExtendedRule) String() string {
	var b strings.Builder
	b.WriteString(r.Target.String())
	b.WriteString(" ➞")
	if len(r.Clause) == 0 {
		b.WriteString(" ε")
	}
	for _, x := range r.Clause {
		b.WriteByte(' ')
		b.WriteString(x.String())
	}
	return b.String()
}

// extendGrammar derives the extended grammar from a CFSM. Extended rules are
// produced in order of states, then of items.
func extendGrammar(c *CFSM) ([]*ExtendedRule, error) {
	var ext []*ExtendedRule
	for _, s := range c.states {
		for _, i := range s.Items() {
			if i.dot != 0 {
				continue
			}
			r := i.rule
			er := &ExtendedRule{
				Base:   r,
				Target: ExtendedSymbol{From: s.ID, Symbol: r.Target, To: -1},
				Clause: make([]ExtendedSymbol, 0, len(r.Clause)),
			}
			if to := s.Goto(r.Target); to != nil {
				er.Target.To = to.ID
			}
			cur := s
			for _, sym := range r.Clause {
				next := cur.Goto(sym)
				if next == nil {
					return nil, fmt.Errorf("internal error: no transition for %s in state %d", sym.Name(), cur.ID)
				}
				er.Clause = append(er.Clause, ExtendedSymbol{From: cur.ID, Symbol: sym, To: next.ID})
				cur = next
			}
			er.final = cur.ID
			tracer().Debugf("extended rule %v, final state %d", er, er.final)
			ext = append(ext, er)
		}
	}
	return ext, nil
}
