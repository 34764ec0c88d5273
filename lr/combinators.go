package lr

import "fmt"

// Combinators create auxiliary non-terminals for common rule patterns.
// Repetitions are flattened: the AST node of a repetition holds all the
// repeated items as direct children.

func (g *Grammar) auxNonTerminal(kind string) *NonTerminal {
	g.auxCount++
	return g.NonTerminal(fmt.Sprintf("%s_%d", kind, g.auxCount))
}

// OneOf creates a non-terminal deriving exactly one of syms.
func (g *Grammar) OneOf(syms ...Symbol) *NonTerminal {
	nt := g.auxNonTerminal("oneOf")
	for _, sym := range syms {
		g.addRule(nt, true, []Symbol{sym})
	}
	return nt
}

// Optional creates a non-terminal deriving either the sequence syms or ε.
func (g *Grammar) Optional(syms ...Symbol) *NonTerminal {
	nt := g.auxNonTerminal("optional")
	g.addRule(nt, true, syms)
	g.addRule(nt, true, nil)
	return nt
}

// ZeroOrMore creates a non-terminal deriving any number of repetitions of
// the sequence syms.
func (g *Grammar) ZeroOrMore(syms ...Symbol) *NonTerminal {
	nt := g.auxNonTerminal("zeroOrMore")
	g.addRule(nt, true, nil)
	g.addRule(nt, true, append([]Symbol{nt}, syms...)).WithAction(flatten(0))
	return nt
}

// OneOrMore creates a non-terminal deriving at least one repetition of
// the sequence syms.
func (g *Grammar) OneOrMore(syms ...Symbol) *NonTerminal {
	nt := g.auxNonTerminal("oneOrMore")
	g.addRule(nt, true, syms)
	g.addRule(nt, true, append([]Symbol{nt}, syms...)).WithAction(flatten(0))
	return nt
}

// List creates a non-terminal deriving a list of items, separated by sep.
// Separators are dropped from the AST. If allowEmpty is set, the list may
// be empty.
func (g *Grammar) List(item, sep Symbol, allowEmpty bool) *NonTerminal {
	nt := g.auxNonTerminal("list")
	g.addRule(nt, true, []Symbol{item})
	g.addRule(nt, true, []Symbol{nt, sep, item}).WithAction(flatten(1))
	if !allowEmpty {
		return nt
	}
	opt := g.auxNonTerminal("optionalList")
	g.addRule(opt, true, nil)
	g.addRule(opt, true, []Symbol{nt}).WithAction(flatten(0))
	return opt
}

// flatten merges the children of a node's first child into the node,
// skipping the next skip children.
func flatten(skip int) ReduceAction {
	return func(ctx ReduceContext) error {
		node := ctx.Node()
		if len(node.Children) == 0 {
			return nil
		}
		head, ok := node.Children[0].(*NonLeaf)
		if !ok {
			return nil
		}
		children := make([]Node, 0, len(head.Children)+len(node.Children))
		children = append(children, head.Children...)
		if 1+skip < len(node.Children) {
			children = append(children, node.Children[1+skip:]...)
		}
		node.ReplaceChildren(children)
		return nil
	}
}
