package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/pterm/pterm"

	"github.com/npillmayer/parserjunior/lexer"
	"github.com/npillmayer/parserjunior/lexer/lexmach"
	"github.com/npillmayer/parserjunior/lr"
	"github.com/npillmayer/parserjunior/lr/parser"
)

// Calculator bundles the demo expression grammar with a parser and scanners
// for it.
//
//	Expr ➞ Expr + Expr  |  Expr - Expr
//	Expr ➞ Expr * Expr  |  Expr / Expr
//	Expr ➞ - Expr  |  ( Expr )  |  number
//
// Operator precedence and associativity disambiguate the grammar.
type Calculator struct {
	G      *lr.Grammar
	Parser *parser.Parser
	number *lexer.Lexeme
	lm     *lexmach.LMAdapter
}

var errDivisionByZero = errors.New("division by zero")

// NewCalculator creates the demo grammar and its parser.
func NewCalculator() (*Calculator, error) {
	calc := &Calculator{number: lexer.CInteger().Named("number")}
	plus, minus := lexer.Literal("+"), lexer.Literal("-")
	times, div := lexer.Literal("*"), lexer.Literal("/")
	lparen, rparen := lexer.Literal("("), lexer.Literal(")")
	b := lr.NewGrammarBuilder("Calc")
	b.Precedence(1, lr.LeftAssoc, plus, minus).Precedence(2, lr.LeftAssoc, times, div)
	b.LHS("Expr").N("Expr").T(plus).N("Expr").End().Named("add").WithAction(binary(
		func(x, y int) (int, error) { return x + y, nil }))
	b.LHS("Expr").N("Expr").T(minus).N("Expr").End().Named("sub").WithAction(binary(
		func(x, y int) (int, error) { return x - y, nil }))
	b.LHS("Expr").N("Expr").T(times).N("Expr").End().Named("mul").WithAction(binary(
		func(x, y int) (int, error) { return x * y, nil }))
	b.LHS("Expr").N("Expr").T(div).N("Expr").End().Named("div").WithAction(binary(
		func(x, y int) (int, error) {
			if y == 0 {
				return 0, errDivisionByZero
			}
			return x / y, nil
		}))
	b.LHS("Expr").T(minus).N("Expr").End().Named("neg").WithPrecedence(3).WithAction(
		func(ctx lr.ReduceContext) error {
			n := ctx.Node()
			n.Value = -valueOf(n.Child(1))
			return nil
		})
	b.LHS("Expr").T(lparen).N("Expr").T(rparen).End().Named("group").WithAction(
		func(ctx lr.ReduceContext) error {
			n := ctx.Node()
			n.Value = valueOf(n.Child(1))
			return nil
		})
	b.LHS("Expr").T(calc.number).End().Named("number").WithAction(
		func(ctx lr.ReduceContext) error {
			n := ctx.Node()
			v, err := strconv.Atoi(n.Child(0).(*lr.Leaf).Token.Text)
			if err != nil {
				return err
			}
			n.Value = v
			return nil
		})
	var err error
	if calc.G, err = b.Grammar(); err != nil {
		return nil, fmt.Errorf("error creating grammar: %w", err)
	}
	if calc.Parser, err = parser.NewParserFor(calc.G, nil); err != nil {
		return nil, err
	}
	init := func(lm *lexmach.LMAdapter) {
		lm.Lexer.Add([]byte(`[0-9]+`), lm.MakeToken(calc.number))
		lm.Lexer.Add([]byte(`( |\t|\n|\r)+`), lexmach.Skip)
	}
	operators := []*lexer.Lexeme{plus, minus, times, div, lparen, rparen}
	if calc.lm, err = lexmach.NewLMAdapter(init, operators, nil); err != nil {
		return nil, err
	}
	return calc, nil
}

func binary(op func(x, y int) (int, error)) lr.ReduceAction {
	return func(ctx lr.ReduceContext) error {
		n := ctx.Node()
		v, err := op(valueOf(n.Child(0)), valueOf(n.Child(2)))
		if err != nil {
			return err
		}
		n.Value = v
		return nil
	}
}

func valueOf(n lr.Node) int {
	if nl, ok := n.(*lr.NonLeaf); ok {
		v, _ := nl.Value.(int)
		return v
	}
	return 0
}

// Lexer creates the built-in lexer stream for input.
func (calc *Calculator) Lexer(input string) lexer.TokenStream {
	return calc.Parser.Lexer(strings.NewReader(input))
}

// LMScanner creates a lexmachine scanner for input.
func (calc *Calculator) LMScanner(input string) (lexer.TokenStream, error) {
	return calc.lm.Scanner(input)
}

// Eval parses the tokens of a stream and evaluates the expression.
func (calc *Calculator) Eval(stream lexer.TokenStream) (lr.Node, int, error) {
	ast, err := calc.Parser.Parse(stream)
	if err != nil {
		return nil, 0, err
	}
	return ast, valueOf(ast), nil
}

// --- Display ---------------------------------------------------------------

// treeOf converts an AST into a pterm tree.
func treeOf(ast lr.Node) pterm.TreeNode {
	ll := leveledNode(ast, pterm.LeveledList{}, 0)
	tracer().Debugf("|ll| = %d", len(ll))
	return pterm.NewTreeFromLeveledList(ll)
}

func leveledNode(node lr.Node, ll pterm.LeveledList, level int) pterm.LeveledList {
	if node == nil {
		return ll
	}
	text := node.String()
	nl, ok := node.(*lr.NonLeaf)
	if ok && nl.Value != nil {
		text = fmt.Sprintf("%s = %v", text, nl.Value)
	}
	ll = append(ll, pterm.LeveledListItem{Level: level, Text: text})
	if ok {
		for _, ch := range nl.Children {
			ll = leveledNode(ch, ll, level+1)
		}
	}
	return ll
}

// printTree renders an AST as a tree on the terminal.
func printTree(ast lr.Node) {
	pterm.DefaultTree.WithRoot(treeOf(ast)).Render()
}
