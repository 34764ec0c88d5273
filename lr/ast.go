package lr

import (
	"fmt"
	"io"
	"strings"

	pj "github.com/npillmayer/parserjunior"
	"github.com/npillmayer/parserjunior/lexer"
)

// Node is a node of an abstract syntax tree, as built by the parser.
// Leafs carry tokens, inner nodes carry the rule which has been reduced.
type Node interface {
	Symbol() Symbol
	Span() pj.Span
	String() string
}

// Leaf is a node for a shifted token.
type Leaf struct {
	Token lexer.Token
}

var _ Node = (*Leaf)(nil)

// Symbol returns the token's lexeme.
func (l *Leaf) Symbol() Symbol {
	return l.Token.Type
}

// Span returns the input span of the token.
func (l *Leaf) Span() pj.Span {
	return l.Token.Span()
}

func (l *Leaf) String() string {
	if l.Token.Text == "" {
		return l.Token.Type.Name()
	}
	return fmt.Sprintf("%s(%s)", l.Token.Type.Name(), l.Token.Text)
}

// NonLeaf is a node for a reduced rule. Value may be set by semantic
// actions.
type NonLeaf struct {
	Rule     *Rule
	Children []Node
	Value    interface{}
}

var _ Node = (*NonLeaf)(nil)

// Symbol returns the non-terminal of the reduced rule.
func (n *NonLeaf) Symbol() Symbol {
	return n.Rule.Target
}

// Span returns the union of the children's spans.
func (n *NonLeaf) Span() pj.Span {
	var span pj.Span
	for _, ch := range n.Children {
		span = span.Extend(ch.Span())
	}
	return span
}

// Child returns the i-th child, or nil.
func (n *NonLeaf) Child(i int) Node {
	if i < 0 || i >= len(n.Children) {
		return nil
	}
	return n.Children[i]
}

// ReplaceChildren sets a new list of children. Semantic actions may
// use it to restructure a node.
func (n *NonLeaf) ReplaceChildren(children []Node) {
	n.Children = children
}

func (n *NonLeaf) String() string {
	return n.Rule.Target.Name()
}

// PrintTree writes an indented representation of an AST.
func PrintTree(w io.Writer, node Node) {
	printTree(w, node, "", "")
}

func printTree(w io.Writer, node Node, prefix, childPrefix string) {
	if node == nil {
		return
	}
	fmt.Fprintf(w, "%s%s\n", prefix, node)
	nl, ok := node.(*NonLeaf)
	if !ok {
		return
	}
	for i, ch := range nl.Children {
		if i == len(nl.Children)-1 {
			printTree(w, ch, childPrefix+"└─ ", childPrefix+"   ")
		} else {
			printTree(w, ch, childPrefix+"├─ ", childPrefix+"│  ")
		}
	}
}

// TreeString returns PrintTree's output as a string.
func TreeString(node Node) string {
	var b strings.Builder
	PrintTree(&b, node)
	return b.String()
}
