/*
Package parser provides an LALR(1)-parser. Clients have to use the tools
of package lr to prepare the necessary parse tables. The parser
utilizes these tables to create an abstract syntax tree (AST) for a given
input, provided through a token stream.

The main focus for this implementation is adaptability and on-the-fly usage.
Clients are able to construct the parse tables from a grammar and use the
parser directly, without a code-generation or compile step. If you want, you
can create a grammar from user input and use a parser for it in a couple of
lines of code.

Usage

Clients construct a grammar, usually by using a grammar builder:

	b := lr.NewGrammarBuilder("Signed Variables Grammar")
	b.LHS("Var").N("Sign").T(lexer.CIdentifier()).End()  // Var  ➞ Sign Id
	b.LHS("Sign").L("+").End()                           // Sign ➞ +
	b.LHS("Sign").L("-").End()                           // Sign ➞ -
	b.LHS("Sign").Epsilon()                              // Sign ➞
	g, err := b.Grammar()

Then create a parser and parse some input:

	tables := lr.NewTableCache()
	p, err := parser.NewParserFor(g, tables)
	ast, err := p.ParseString("+a")

Action tables in a table cache are keyed by grammar structure, so creating
parsers for the same grammar repeatedly is cheap. Clients may instrument the grammar with
semantic actions, which are run on every reduction of a rule.

A Parser is not safe for concurrent use; create one parser per goroutine.
Parsers may share an action table.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package parser

import (
	"fmt"
	"io"
	"strings"

	"github.com/emirpasic/gods/stacks/arraystack"
	"github.com/npillmayer/schuko/tracing"

	"github.com/npillmayer/parserjunior/lexer"
	"github.com/npillmayer/parserjunior/lr"
	"github.com/npillmayer/parserjunior/runtime"
)

// tracer traces with key 'pj.parser'.
func tracer() tracing.Trace {
	return tracing.Select("pj.parser")
}

// Parser is an LALR(1)-parser type. Create and initialize one with
// parser.NewParser(...) or parser.NewParserFor(...).
type Parser struct {
	g              *lr.Grammar
	table          *lr.ActionTable
	stack          *arraystack.Stack // of stackitem
	stream         lexer.TokenStream
	typeNames      *runtime.TypeNames
	reduceListener func(lr.ReduceContext)
	errorListener  func(*ParseError) bool
	lexOpts        []lexer.Option
	reclassify     [2]*lexer.Lexeme // identifier, type name
}

// We store pairs of state-IDs and AST nodes on the parse stack.
type stackitem struct {
	state int
	node  lr.Node
}

// Option configures a parser.
type Option func(*Parser)

// WithReduceListener installs a listener which is called after every
// reduction, after the rule's semantic action.
func WithReduceListener(l func(lr.ReduceContext)) Option {
	return func(p *Parser) {
		p.reduceListener = l
	}
}

// WithErrorListener installs a listener for syntax errors. If it returns
// true, the parser drops the offending token and continues. Errors at the
// end of input always abort the parse.
func WithErrorListener(l func(*ParseError) bool) Option {
	return func(p *Parser) {
		p.errorListener = l
	}
}

// WithLexerOptions sets the options for lexer streams the parser creates
// for ParseString and ParseReader. They replace the default, which is to
// ignore whitespace and newlines.
func WithLexerOptions(opts ...lexer.Option) Option {
	return func(p *Parser) {
		p.lexOpts = opts
	}
}

// WithTypeNames makes the parser use a given type name registry, e.g. one
// which is shared with a token listener of a client's lexer stream.
func WithTypeNames(tn *runtime.TypeNames) Option {
	return func(p *Parser) {
		p.typeNames = tn
	}
}

// ReclassifyTypeNames makes lexer streams created by the parser re-classify
// identifier tokens as typeName tokens, whenever their text has been
// declared in the parser's type name registry.
func ReclassifyTypeNames(identifier, typeName *lexer.Lexeme) Option {
	return func(p *Parser) {
		p.reclassify = [2]*lexer.Lexeme{identifier, typeName}
	}
}

// NewParser creates a parser for a grammar and its action table.
func NewParser(g *lr.Grammar, table *lr.ActionTable, opts ...Option) *Parser {
	p := &Parser{
		g:       g,
		table:   table,
		stack:   arraystack.New(),
		lexOpts: []lexer.Option{lexer.Ignore(lexer.Whitespace(), lexer.NewLine())},
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.typeNames == nil {
		p.typeNames = runtime.NewTypeNames()
	}
	return p
}

// NewParserFor creates a parser for a grammar, taking the action table from
// a table cache. If cache is nil, the table is built without caching.
func NewParserFor(g *lr.Grammar, cache *lr.TableCache, opts ...Option) (*Parser, error) {
	var table *lr.ActionTable
	var err error
	if cache != nil {
		table, err = cache.TableFor(g)
	} else {
		table, err = lr.BuildActionTable(g)
	}
	if err != nil {
		return nil, err
	}
	return NewParser(g, table, opts...), nil
}

// Table returns the action table of the parser.
func (p *Parser) Table() *lr.ActionTable {
	return p.table
}

// TypeNames returns the type name registry of the parser.
func (p *Parser) TypeNames() *runtime.TypeNames {
	return p.typeNames
}

// Lexer creates a lexer stream for the terminals of the grammar.
func (p *Parser) Lexer(input io.Reader) *lexer.LexerStream {
	opts := p.lexOpts
	if p.reclassify[0] != nil {
		l := runtime.TypeNameListener(p.typeNames, p.reclassify[0], p.reclassify[1])
		opts = append(opts[:len(opts):len(opts)], lexer.WithListener(l))
	}
	return lexer.NewLexerStream(input, p.g.Terminals(), opts...)
}

// ParseString parses an input string, using a lexer stream for the
// terminals of the grammar.
func (p *Parser) ParseString(input string) (lr.Node, error) {
	return p.Parse(p.Lexer(strings.NewReader(input)))
}

// ParseReader parses input from a reader, using a lexer stream for the
// terminals of the grammar.
func (p *Parser) ParseReader(input io.Reader) (lr.Node, error) {
	return p.Parse(p.Lexer(input))
}

// Parse parses the tokens of a stream and returns the AST. Syntax errors
// are reported as *ParseError, errors of the token stream and of semantic
// actions are returned as they are (actions' errors wrapped).
func (p *Parser) Parse(stream lexer.TokenStream) (lr.Node, error) {
	tracer().Debugf("~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~")
	if p.g == nil || p.table == nil {
		return nil, fmt.Errorf("parser not initialized")
	}
	p.stream = stream
	p.stack.Clear()
	p.stack.Push(stackitem{state: 0})
	tok, err := stream.Next()
	if err != nil {
		return nil, err
	}
	for {
		tos := p.top()
		action := p.table.Action(tos.state, tok.Type)
		tracer().Debugf("action(%d, %v) = %v", tos.state, tok, action)
		if action.Kind == lr.Fail {
			if alt := p.table.Action(tos.state, lexer.Empty); alt.Kind != lr.Fail {
				tracer().Debugf("taking ε-alternative before %v", tok)
				if err = stream.Pushback(tok); err != nil {
					return nil, err
				}
				tok = lexer.MakeToken(lexer.Empty, "", tok.Pos)
				action = alt
			} else {
				perr := &ParseError{Token: tok, Expected: p.table.Expected(tos.state), State: tos.state}
				if !tok.IsEOF() && p.errorListener != nil && p.errorListener(perr) {
					tracer().Infof("skipping token after %v", perr)
					if tok, err = stream.Next(); err != nil {
						return nil, err
					}
					continue
				}
				tracer().Errorf("%v", perr)
				return nil, perr
			}
		}
		switch action.Kind {
		case lr.Shift:
			tracer().Debugf("shifting, next state = %d", action.Target)
			p.stack.Push(stackitem{state: action.Target, node: &lr.Leaf{Token: tok}})
			if tok, err = stream.Next(); err != nil {
				return nil, err
			}
		case lr.Reduce:
			rule := p.g.Rule(action.Target)
			if rule == nil {
				return nil, fmt.Errorf("action table refers to unknown rule %d", action.Target)
			}
			// the lookahead goes back to the stream before the semantic action
			// runs, and is re-read in the new state
			if tok.Type != lexer.Empty {
				if err = stream.Pushback(tok); err != nil {
					return nil, err
				}
			}
			if err = p.reduce(rule); err != nil {
				return nil, err
			}
			if tok, err = stream.Next(); err != nil {
				return nil, err
			}
		case lr.Accept:
			return p.accept()
		default:
			return nil, fmt.Errorf("unexpected action %v in state %d", action, tos.state)
		}
	}
}

func (p *Parser) top() stackitem {
	x, _ := p.stack.Peek()
	return x.(stackitem)
}

// reduce performs a reduce action for a rule
//
//    LHS ➞ X1 ... Xn   (with X being terminals or non-terminals)
//
// Symbols X1 to Xn are represented on the stack as states
//
//    [TOS]  Sn(Xn) ... S1(X1)  ...
//
// and replaced by a state for LHS.
func (p *Parser) reduce(rule *lr.Rule) error {
	tracer().Debugf("reduce %v", rule)
	node, err := p.reduceNode(rule)
	if err != nil {
		return err
	}
	next, ok := p.table.Goto(p.top().state, rule.Target)
	if !ok {
		return fmt.Errorf("no goto for %s in state %d", rule.Target.Name(), p.top().state)
	}
	tracer().Debugf("reduced to next state = %d", next)
	p.stack.Push(stackitem{state: next, node: node})
	return nil
}

// reduceNode pops the handle of a rule from the stack and creates an AST node
// for it, then calls the rule's semantic action and the reduce listener.
func (p *Parser) reduceNode(rule *lr.Rule) (*lr.NonLeaf, error) {
	n := rule.Len()
	children := make([]lr.Node, n)
	for i := n - 1; i >= 0; i-- {
		x, ok := p.stack.Pop()
		if !ok {
			return nil, fmt.Errorf("parse stack underflow reducing %v", rule)
		}
		children[i] = x.(stackitem).node
	}
	node := &lr.NonLeaf{Rule: rule, Children: children}
	ctx := &reduceContext{p: p, node: node}
	if rule.Action != nil {
		if err := rule.Action(ctx); err != nil {
			return nil, fmt.Errorf("semantic action for %v failed: %w", rule, err)
		}
	}
	if p.reduceListener != nil {
		p.reduceListener(ctx)
	}
	return node, nil
}

// accept reduces the start rule one last time. A synthetic start rule is
// not part of the AST.
func (p *Parser) accept() (lr.Node, error) {
	start := p.table.StartRule()
	if start.IsSynthetic() {
		tracer().Debugf("accept")
		return p.top().node, nil
	}
	rule := p.g.Rule(start.ID)
	if rule == nil {
		rule = start
	}
	tracer().Debugf("accept, reducing %v", rule)
	return p.reduceNode(rule)
}

// reduceContext is the parser's view for semantic actions.
type reduceContext struct {
	p    *Parser
	node *lr.NonLeaf
}

var _ lr.ReduceContext = (*reduceContext)(nil)

func (ctx *reduceContext) Node() *lr.NonLeaf {
	return ctx.node
}

func (ctx *reduceContext) Stream() lexer.TokenStream {
	return ctx.p.stream
}

func (ctx *reduceContext) Table() *lr.ActionTable {
	return ctx.p.table
}

func (ctx *reduceContext) Grammar() *lr.Grammar {
	return ctx.p.g
}

func (ctx *reduceContext) TypeNames() *runtime.TypeNames {
	return ctx.p.typeNames
}
