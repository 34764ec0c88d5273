package lr

import (
	"fmt"
	"io"
	"strings"

	"github.com/emirpasic/gods/sets/treeset"
)

// CFSM is the characteristic finite state machine for an LR grammar, i.e. the
// canonical collection of LR(0) item sets, connected by a translation table.
// It will be constructed by an LALR1Builder.
// Clients normally do not use it directly. Nevertheless, there are some methods
// defined on it, e.g, for debugging purposes.
type CFSM struct {
	g        *Grammar
	start    *Rule
	states   []*ItemSet // indexed by ID
	byKernel map[string]*ItemSet
	rulesFor map[string][]*Rule
	S0       *ItemSet // start state
}

// buildCFSM constructs the canonical collection for a grammar, starting
// with the start item of rule start.
func buildCFSM(g *Grammar, start *Rule) *CFSM {
	tracer().Debugf("=== build CFSM ==================================================")
	c := &CFSM{
		g:        g,
		start:    start,
		byKernel: make(map[string]*ItemSet),
		rulesFor: make(map[string][]*Rule),
	}
	for _, r := range g.rules {
		c.rulesFor[r.Target.Name()] = append(c.rulesFor[r.Target.Name()], r)
	}
	k0 := newItemSet()
	k0.Add(StartItem(start))
	c.S0 = c.addState(k0)
	for n := 0; n < len(c.states); n++ { // states grows while we iterate
		s := c.states[n]
		for _, A := range nextSymbols(s) {
			succ := c.addState(gotoKernel(s, A))
			s.symbols = append(s.symbols, A)
			s.next[keyOf(A)] = succ
			tracer().Debugf("goto(%d) --%s--> %d", s.ID, A.Name(), succ.ID)
		}
	}
	tracer().Infof("CFSM for %s has %d states", g.Name, len(c.states))
	return c
}

// addState returns the state for a kernel, creating it if necessary.
func (c *CFSM) addState(kernel *treeset.Set) *ItemSet {
	key := kernelKey(kernel)
	if s, ok := c.byKernel[key]; ok {
		return s
	}
	s := &ItemSet{
		ID:     len(c.states),
		kernel: kernel,
		items:  c.closure(kernel),
		next:   make(map[symKey]*ItemSet),
	}
	for _, i := range s.Kernel() {
		if i.rule == c.start && i.IsComplete() {
			s.Accept = true
		}
	}
	c.states = append(c.states, s)
	c.byKernel[key] = s
	s.Dump()
	return s
}

// nextSymbols lists the symbols after the dot of the items of s, in item order.
func nextSymbols(s *ItemSet) []Symbol {
	var syms []Symbol
	seen := make(map[symKey]bool)
	for _, x := range s.items.Values() {
		if A := asItem(x).PeekSymbol(); A != nil && !seen[keyOf(A)] {
			seen[keyOf(A)] = true
			syms = append(syms, A)
		}
	}
	return syms
}

// States returns all states, indexed by ID.
func (c *CFSM) States() []*ItemSet {
	return c.states
}

// State returns the state with a given ID, or nil.
func (c *CFSM) State(id int) *ItemSet {
	if id < 0 || id >= len(c.states) {
		return nil
	}
	return c.states[id]
}

// StartRule returns the rule the CFSM has been started with.
func (c *CFSM) StartRule() *Rule {
	return c.start
}

// CFSM2GraphViz exports a CFSM to the Graphviz Dot format.
func (c *CFSM) CFSM2GraphViz(w io.Writer) error {
	var b strings.Builder
	b.WriteString(`digraph {
graph [splines=true, fontname=Helvetica, fontsize=10];
node [shape=Mrecord, style=filled, fontname=Helvetica, fontsize=10];
edge [fontname=Helvetica, fontsize=10];

`)
	for _, s := range c.states {
		fmt.Fprintf(&b, "s%03d [fillcolor=%s label=\"{%03d | %s}\"]\n",
			s.ID, nodecolor(s), s.ID, forGraphviz(s))
	}
	for _, s := range c.states {
		for _, A := range s.symbols {
			fmt.Fprintf(&b, "s%03d -> s%03d [label=\"%s\"]\n", s.ID, s.Goto(A).ID,
				escapeDot(A.Name()))
		}
	}
	b.WriteString("}\n")
	_, err := io.WriteString(w, b.String())
	return err
}

func nodecolor(s *ItemSet) string {
	if s.Accept {
		return "lightgray"
	}
	return "white"
}

func forGraphviz(s *ItemSet) string {
	var lines []string
	for _, i := range s.Items() {
		lines = append(lines, escapeDot(i.String()))
	}
	return strings.Join(lines, "\\l") + "\\l"
}

var dotEscaper = strings.NewReplacer(`"`, `\"`, `{`, `\{`, `}`, `\}`,
	`|`, `\|`, `<`, `\<`, `>`, `\>`)

func escapeDot(s string) string {
	return dotEscaper.Replace(s)
}
