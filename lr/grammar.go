package lr

import (
	"fmt"
	"strings"

	"github.com/npillmayer/parserjunior/lexer"
)

// Rule is a production of a grammar:
//
//    Target  ➞  Clause[0] … Clause[n-1]
//
// Rules are numbered in the order they are added to a grammar. A rule may
// carry a semantic action, which is run by the parser whenever the rule
// is reduced.
type Rule struct {
	ID          int          // serial number within the grammar
	Target      *NonTerminal // left hand side
	Clause      []Symbol     // right hand side, empty for ε-rules
	Action      ReduceAction // optional semantic action
	Label       string       // optional name, used e.g. by AST walkers
	precedence  int          // explicit precedence level, 0 if unset
	arbitration Arbitration
	aux         bool // rule has been created by a combinator
	synthetic   bool // start rule created by the table builder
}

// ReduceAction is a semantic action, called whenever the parser reduces a
// rule. An error aborts the parse.
type ReduceAction func(ctx ReduceContext) error

// Len returns the number of symbols of the right hand side.
func (r *Rule) Len() int {
	return len(r.Clause)
}

// IsEpsilon is true for rules with an empty right hand side.
func (r *Rule) IsEpsilon() bool {
	return len(r.Clause) == 0
}

// IsSynthetic is true for start rules added by the table builder.
func (r *Rule) IsSynthetic() bool {
	return r.synthetic
}

// WithAction sets the semantic action of a rule.
func (r *Rule) WithAction(action ReduceAction) *Rule {
	r.Action = action
	return r
}

// Named sets a label for a rule.
func (r *Rule) Named(label string) *Rule {
	r.Label = label
	return r
}

// WithPrecedence sets an explicit precedence level for a rule, overriding
// the precedence of its rightmost terminal. Levels must be positive;
// higher levels bind tighter.
func (r *Rule) WithPrecedence(level int) *Rule {
	r.precedence = level
	return r
}

// Prefer sets an arbitration for shift/reduce conflicts involving this rule.
func (r *Rule) Prefer(a Arbitration) *Rule {
	r.arbitration = a
	return r
}

func (r *Rule) String() string {
	var b strings.Builder
	b.WriteString(r.Target.Name())
	b.WriteString(" ➞")
	if len(r.Clause) == 0 {
		b.WriteString(" ε")
	}
	for _, sym := range r.Clause {
		b.WriteByte(' ')
		b.WriteString(sym.Name())
	}
	return b.String()
}

// ---------------------------------------------------------------------------

// Grammar is a context free grammar. A grammar owns its rules and interns
// its symbols by name.
type Grammar struct {
	Name         string
	rules        []*Rule
	target       *Rule
	terminals    []*lexer.Lexeme
	termByName   map[string]*lexer.Lexeme
	nonterminals []*NonTerminal
	ntByName     map[string]*NonTerminal
	precedence   map[string]precedence
	auxCount     int
}

// NewGrammar creates an empty grammar.
func NewGrammar(name string) *Grammar {
	return &Grammar{
		Name:       name,
		termByName: make(map[string]*lexer.Lexeme),
		ntByName:   make(map[string]*NonTerminal),
		precedence: make(map[string]precedence),
	}
}

// NonTerminal returns the non-terminal with a given name, creating it
// if necessary.
func (g *Grammar) NonTerminal(name string) *NonTerminal {
	if nt, ok := g.ntByName[name]; ok {
		return nt
	}
	nt := &NonTerminal{name: name}
	g.ntByName[name] = nt
	g.nonterminals = append(g.nonterminals, nt)
	return nt
}

// Terminal returns the terminal with a given name, or nil.
func (g *Grammar) Terminal(name string) *lexer.Lexeme {
	return g.termByName[name]
}

func (g *Grammar) internTerminal(sym Symbol) *lexer.Lexeme {
	if t, ok := g.termByName[sym.Name()]; ok {
		return t
	}
	t, ok := sym.(*lexer.Lexeme)
	if !ok {
		t = lexer.Artificial(sym.Name())
	}
	g.termByName[t.Name()] = t
	g.terminals = append(g.terminals, t)
	return t
}

func (g *Grammar) intern(sym Symbol) Symbol {
	if sym.IsTerminal() {
		return g.internTerminal(sym)
	}
	return g.NonTerminal(sym.Name())
}

// AddRule appends a rule to the grammar. The first rule added (except
// rules created by combinators) becomes the target rule.
func (g *Grammar) AddRule(target *NonTerminal, clause ...Symbol) *Rule {
	return g.addRule(target, false, clause)
}

func (g *Grammar) addRule(target *NonTerminal, aux bool, clause []Symbol) *Rule {
	r := &Rule{
		ID:     len(g.rules),
		Target: g.NonTerminal(target.Name()),
		Clause: make([]Symbol, len(clause)),
		aux:    aux,
	}
	for i, sym := range clause {
		r.Clause[i] = g.intern(sym)
	}
	g.rules = append(g.rules, r)
	if g.target == nil && !aux {
		g.target = r
	}
	tracer().Debugf("%s: %3d: %v", g.Name, r.ID, r)
	return r
}

// SetTargetRule makes r the target rule of the grammar.
func (g *Grammar) SetTargetRule(r *Rule) error {
	if r == nil || r.ID < 0 || r.ID >= len(g.rules) || g.rules[r.ID] != r {
		return &GrammarError{Grammar: g.Name, Msg: "target rule is not part of grammar"}
	}
	g.target = r
	return nil
}

// TargetRule returns the target rule of the grammar.
func (g *Grammar) TargetRule() *Rule {
	return g.target
}

// Rules returns all rules in order of their IDs.
func (g *Grammar) Rules() []*Rule {
	return g.rules
}

// Rule returns the rule with a given ID, or nil.
func (g *Grammar) Rule(id int) *Rule {
	if id < 0 || id >= len(g.rules) {
		return nil
	}
	return g.rules[id]
}

// RulesFor returns all rules for a non-terminal.
func (g *Grammar) RulesFor(nt *NonTerminal) []*Rule {
	var rules []*Rule
	for _, r := range g.rules {
		if r.Target.Name() == nt.Name() {
			rules = append(rules, r)
		}
	}
	return rules
}

// Terminals returns the terminals of the grammar in order of appearance.
func (g *Grammar) Terminals() []*lexer.Lexeme {
	return g.terminals
}

// NonTerminals returns the non-terminals of the grammar in order of appearance.
func (g *Grammar) NonTerminals() []*NonTerminal {
	return g.nonterminals
}

// EachSymbol iterates over all terminals, then all non-terminals.
func (g *Grammar) EachSymbol(f func(sym Symbol)) {
	for _, t := range g.terminals {
		f(t)
	}
	for _, n := range g.nonterminals {
		f(n)
	}
}

// Validate checks that the grammar has a target rule and that every
// non-terminal is defined by at least one rule.
func (g *Grammar) Validate() error {
	if g.target == nil {
		return &GrammarError{Grammar: g.Name, Msg: "grammar has no rules"}
	}
	defined := make(map[string]bool, len(g.nonterminals))
	for _, r := range g.rules {
		defined[r.Target.Name()] = true
	}
	for _, nt := range g.nonterminals {
		if !defined[nt.Name()] {
			return &GrammarError{Grammar: g.Name,
				Msg: fmt.Sprintf("non-terminal %s has no rules", nt.Name())}
		}
	}
	return nil
}

// Dump is a debugging helper, tracing all rules of the grammar.
func (g *Grammar) Dump() {
	tracer().Debugf("--- grammar %s ---------------------------------", g.Name)
	for _, r := range g.rules {
		tracer().Debugf("%3d: %s", r.ID, ruleDumpString(r))
	}
	tracer().Debugf("-------------------------------------------------")
}

// ruleDumpString returns a rule in the format [S] ::= [A a #eof].
func ruleDumpString(r *Rule) string {
	names := make([]string, len(r.Clause))
	for i, sym := range r.Clause {
		names[i] = sym.Name()
	}
	return fmt.Sprintf("[%s] ::= [%s]", r.Target.Name(), strings.Join(names, " "))
}

func (g *Grammar) String() string {
	var b strings.Builder
	for _, r := range g.rules {
		fmt.Fprintf(&b, "%3d: %s\n", r.ID, ruleDumpString(r))
	}
	return b.String()
}

// ---------------------------------------------------------------------------

// GrammarBuilder is a helper for constructing grammars rule by rule.
//
//    b := lr.NewGrammarBuilder("G")
//    b.LHS("S").N("A").L("a").End()   // S ➞ A a
//    b.LHS("A").Epsilon()             // A ➞ ε
//    g, err := b.Grammar()
type GrammarBuilder struct {
	g *Grammar
}

// NewGrammarBuilder creates a builder for a new grammar.
func NewGrammarBuilder(name string) *GrammarBuilder {
	return &GrammarBuilder{g: NewGrammar(name)}
}

// LHS starts a new rule for non-terminal name.
func (gb *GrammarBuilder) LHS(name string) *RuleBuilder {
	return &RuleBuilder{gb: gb, target: gb.g.NonTerminal(name)}
}

// Precedence declares a precedence level and associativity for terminals.
func (gb *GrammarBuilder) Precedence(level int, assoc Associativity, terminals ...*lexer.Lexeme) *GrammarBuilder {
	gb.g.SetPrecedence(level, assoc, terminals...)
	return gb
}

// Optional adds a combinator rule set, see Grammar.Optional.
func (gb *GrammarBuilder) Optional(syms ...Symbol) *NonTerminal {
	return gb.g.Optional(syms...)
}

// OneOf adds a combinator rule set, see Grammar.OneOf.
func (gb *GrammarBuilder) OneOf(syms ...Symbol) *NonTerminal {
	return gb.g.OneOf(syms...)
}

// ZeroOrMore adds a combinator rule set, see Grammar.ZeroOrMore.
func (gb *GrammarBuilder) ZeroOrMore(syms ...Symbol) *NonTerminal {
	return gb.g.ZeroOrMore(syms...)
}

// OneOrMore adds a combinator rule set, see Grammar.OneOrMore.
func (gb *GrammarBuilder) OneOrMore(syms ...Symbol) *NonTerminal {
	return gb.g.OneOrMore(syms...)
}

// List adds a combinator rule set, see Grammar.List.
func (gb *GrammarBuilder) List(item, sep Symbol, allowEmpty bool) *NonTerminal {
	return gb.g.List(item, sep, allowEmpty)
}

// Grammar returns the grammar, after validating it.
func (gb *GrammarBuilder) Grammar() (*Grammar, error) {
	if err := gb.g.Validate(); err != nil {
		return nil, err
	}
	return gb.g, nil
}

// RuleBuilder collects the right hand side of a rule.
type RuleBuilder struct {
	gb     *GrammarBuilder
	target *NonTerminal
	clause []Symbol
}

// N appends a non-terminal.
func (rb *RuleBuilder) N(name string) *RuleBuilder {
	rb.clause = append(rb.clause, rb.gb.g.NonTerminal(name))
	return rb
}

// T appends a terminal.
func (rb *RuleBuilder) T(l *lexer.Lexeme) *RuleBuilder {
	rb.clause = append(rb.clause, l)
	return rb
}

// L appends a literal terminal. If the grammar already knows a terminal
// of this name, it is reused.
func (rb *RuleBuilder) L(literal string) *RuleBuilder {
	if t := rb.gb.g.Terminal(literal); t != nil {
		return rb.T(t)
	}
	return rb.T(lexer.Literal(literal))
}

// S appends an arbitrary symbol, e.g. one created by a combinator.
func (rb *RuleBuilder) S(sym Symbol) *RuleBuilder {
	rb.clause = append(rb.clause, sym)
	return rb
}

// End completes the rule and adds it to the grammar.
func (rb *RuleBuilder) End() *Rule {
	return rb.gb.g.AddRule(rb.target, rb.clause...)
}

// Epsilon adds an ε-rule for the non-terminal.
func (rb *RuleBuilder) Epsilon() *Rule {
	rb.clause = nil
	return rb.End()
}
