/*
Package walk traverses abstract syntax trees as built by package parser.

Clients register handlers in a dispatch table, keyed by the name of a
grammar symbol. For inner nodes the label of the reduced rule (see
lr.Rule.Named) may be used as a key, too:

	d := walk.NewDispatch()
	d.After("E", func(n lr.Node, ctx walk.Context) error {
		...
	})
	d.Leaf("int", func(n lr.Node, ctx walk.Context) error {
		...
	})
	err := walk.Walk(ast, d)

Before-handlers are called on the way down, after-handlers on the way up.
A before-handler may return SkipChildren to prune the sub-tree below a node.
Any other error aborts the walk.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package walk

import (
	"errors"
	"fmt"

	pj "github.com/npillmayer/parserjunior"
	"github.com/npillmayer/parserjunior/lr"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'pj.parser'.
func tracer() tracing.Trace {
	return tracing.Select("pj.parser")
}

// SkipChildren may be returned by before-handlers to signal that the
// children of a node should not be visited.
var SkipChildren = errors.New("skip children")

// Direction lets clients decide wether children nodes should be traversed
// left-to-right (default) or right-to-left.
type Direction int

// Children nodes may be traversed left-to-right (default) or right-to-left.
const (
	LtoR Direction = 1
	RtoL Direction = -1
)

// Context is contextual information for handlers.
type Context struct {
	Span   pj.Span     // span of input covered by the node
	Level  int         // nesting level, 0 for the root
	Rule   *lr.Rule    // nil for leafs
	Parent *lr.NonLeaf // nil for the root
}

// Handler is a function called for a node during a walk.
type Handler func(lr.Node, Context) error

// Dispatch is a table of handlers, keyed by symbol name or rule label.
type Dispatch struct {
	before    map[string][]Handler
	after     map[string][]Handler
	leaf      map[string][]Handler
	direction Direction
}

// NewDispatch creates an empty dispatch table for a left-to-right walk.
func NewDispatch() *Dispatch {
	return &Dispatch{
		before:    make(map[string][]Handler),
		after:     make(map[string][]Handler),
		leaf:      make(map[string][]Handler),
		direction: LtoR,
	}
}

// Before adds a handler for inner nodes, called before the children are
// visited.
func (d *Dispatch) Before(name string, h Handler) *Dispatch {
	d.before[name] = append(d.before[name], h)
	return d
}

// After adds a handler for inner nodes, called after the children have
// been visited.
func (d *Dispatch) After(name string, h Handler) *Dispatch {
	d.after[name] = append(d.after[name], h)
	return d
}

// Leaf adds a handler for leafs of a terminal.
func (d *Dispatch) Leaf(name string, h Handler) *Dispatch {
	d.leaf[name] = append(d.leaf[name], h)
	return d
}

// WithDirection sets the order in which children are visited.
func (d *Dispatch) WithDirection(dir Direction) *Dispatch {
	d.direction = dir
	return d
}

// Walk traverses the tree below node depth-first. Errors returned by
// handlers abort the walk and are returned, wrapped with the node's position.
func Walk(node lr.Node, d *Dispatch) error {
	if node == nil {
		return nil
	}
	if d == nil {
		d = NewDispatch()
	}
	return d.walk(node, Context{Span: node.Span()})
}

func (d *Dispatch) walk(node lr.Node, ctx Context) error {
	nl, ok := node.(*lr.NonLeaf)
	if !ok {
		if err := d.call(d.leaf, node, ctx, node.Symbol().Name()); err != SkipChildren {
			return err
		}
		return nil
	}
	ctx.Rule = nl.Rule
	tracer().Debugf(">>> %s", nl)
	skip := false
	if err := d.call(d.before, node, ctx, keys(nl)...); err == SkipChildren {
		skip = true
	} else if err != nil {
		return err
	}
	if !skip {
		n := len(nl.Children)
		i := 0
		if d.direction == RtoL {
			i = n - 1
		}
		for ; i >= 0 && i < n; i += int(d.direction) {
			ch := nl.Children[i]
			if ch == nil {
				continue
			}
			chctx := Context{Span: ch.Span(), Level: ctx.Level + 1, Parent: nl}
			if err := d.walk(ch, chctx); err != nil {
				return err
			}
		}
	}
	tracer().Debugf("<<< %s", nl)
	if err := d.call(d.after, node, ctx, keys(nl)...); err != SkipChildren {
		return err
	}
	return nil
}

// keys returns the dispatch keys for an inner node: the rule label, if any,
// and the name of the rule's non-terminal.
func keys(nl *lr.NonLeaf) []string {
	if nl.Rule.Label != "" && nl.Rule.Label != nl.Rule.Target.Name() {
		return []string{nl.Rule.Label, nl.Rule.Target.Name()}
	}
	return []string{nl.Rule.Target.Name()}
}

func (d *Dispatch) call(table map[string][]Handler, node lr.Node, ctx Context, names ...string) error {
	var result error
	for _, name := range names {
		for _, h := range table[name] {
			err := h(node, ctx)
			if err == SkipChildren {
				result = err
			} else if err != nil {
				return fmt.Errorf("walking %s at %v: %w", name, ctx.Span, err)
			}
		}
	}
	return result
}
