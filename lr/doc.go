/*
Package lr implements the construction of LALR(1) parser tables.

Building a Grammar

Grammars are specified using a grammar builder object. Clients add
rules, consisting of non-terminal symbols and terminals. Terminals are
lexemes of package lexer. Grammars may contain epsilon-productions.

Example:

    plus := lexer.Literal("+")
    num := lexer.CInteger().Named("int")

    b := lr.NewGrammarBuilder("G")
    b.LHS("S").N("E").End()                   // S  ->  E
    b.LHS("E").N("E").T(plus).N("T").End()    // E  ->  E + T
    b.LHS("E").N("T").End()                   // E  ->  T
    b.LHS("T").T(num).End()                   // T  ->  int
    g, err := b.Grammar()

This results in the following trivial grammar:

   g.Dump()

   0: [S] ::= [E]
   1: [E] ::= [E + T]
   2: [E] ::= [T]
   3: [T] ::= [int]

The first rule added is the target rule of the grammar, unless another one
is set with SetTargetRule. If the target rule is not a proper start rule,
i.e. its non-terminal has alternatives or appears on the right hand side of
any rule, the table builder wraps it into a synthetic start rule.

Parser Construction

Parser tables are created by an LALR1Builder. It first constructs the
canonical collection of LR(0) item sets, the characteristic finite state
machine (CFSM). From the CFSM it derives an extended grammar, where every
symbol is annotated with the states the parser is in before and after
recognizing it. FIRST and FOLLOW sets are computed on the extended grammar
as lazily composed sets, resolved by fixed point iteration. Finally, reduce
actions of extended rules sharing a base rule and a final state are merged.

    table, err := lr.BuildActionTable(g)
    if err != nil {
        // conflicts or an unresolvable grammar
    }

The CFSM is made available to clients for debugging purposes. It can be
exported to Graphviz's Dot-format.

Conflicts

A conflict aborts table construction with a *ConflictError. Clients may
declare operator precedence for terminals, or set a preference on a rule
(PreferShift or PreferReduce), which resolves shift/reduce conflicts.
Reduce/reduce conflicts are never resolved.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package lr

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'pj.lr'.
func tracer() tracing.Trace {
	return tracing.Select("pj.lr")
}
