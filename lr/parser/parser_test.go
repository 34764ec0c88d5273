package parser

import (
	"errors"
	"strconv"
	"strings"
	"testing"

	"github.com/npillmayer/parserjunior/lexer"
	"github.com/npillmayer/parserjunior/lr"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

// E ➞ E + T | T
// T ➞ int
func exprGrammar(t *testing.T) *lr.Grammar {
	b := lr.NewGrammarBuilder("Expr")
	b.LHS("E").N("E").L("+").N("T").End()
	b.LHS("E").N("T").End()
	b.LHS("T").T(lexer.CInteger().Named("int")).End()
	g, err := b.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	return g
}

var tables = lr.NewTableCache()

func value(n lr.Node) int {
	switch x := n.(type) {
	case *lr.Leaf:
		v, _ := strconv.Atoi(x.Token.Text)
		return v
	case *lr.NonLeaf:
		v, _ := x.Value.(int)
		return v
	}
	return 0
}

func TestParseLeftRecursion(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pj.parser")
	defer teardown()
	//
	p, err := NewParserFor(exprGrammar(t), tables)
	if err != nil {
		t.Fatal(err)
	}
	ast, err := p.ParseString("1 + 2 + 3")
	if err != nil {
		t.Fatal(err)
	}
	expected := `E
├─ E
│  ├─ E
│  │  └─ T
│  │     └─ int(1)
│  ├─ +(+)
│  └─ T
│     └─ int(2)
├─ +(+)
└─ T
   └─ int(3)
`
	if s := lr.TreeString(ast); s != expected {
		t.Errorf("unexpected AST:\n%s", s)
	}
	if span := ast.Span(); span.From() != 0 || span.To() != 9 {
		t.Errorf("expected AST to span the input, spans %v", span)
	}
}

func TestSyntaxError(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pj.parser")
	defer teardown()
	//
	p, _ := NewParserFor(exprGrammar(t), tables)
	_, err := p.ParseString("1 + + 2")
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected parse error, got %v", err)
	}
	if perr.Token.Text != "+" || perr.Token.Pos.Column != 5 {
		t.Errorf("expected error at second '+', is at %v", perr.Token)
	}
	if names := strings.Join(perr.ExpectedNames(), " "); names != "int" {
		t.Errorf("expected [int] to be expected, have [%s]", names)
	}
	t.Logf("error: %v", err)
	_, err = p.ParseString("1 +")
	if !errors.As(err, &perr) || !perr.Token.IsEOF() {
		t.Errorf("expected parse error at end of input, got %v", err)
	}
}

func TestLexicalError(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pj.parser")
	defer teardown()
	//
	p, _ := NewParserFor(exprGrammar(t), tables)
	_, err := p.ParseString("1 ? 2")
	var lexerr *lexer.LexicalError
	if !errors.As(err, &lexerr) {
		t.Fatalf("expected lexical error, got %v", err)
	}
}

func TestErrorRecovery(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pj.parser")
	defer teardown()
	//
	var reported []*ParseError
	p, _ := NewParserFor(exprGrammar(t), tables, WithErrorListener(func(e *ParseError) bool {
		reported = append(reported, e)
		return true
	}))
	ast, err := p.ParseString("1 + + 2")
	if err != nil {
		t.Fatal(err)
	}
	if len(reported) != 1 {
		t.Errorf("expected 1 error to be reported, have %d", len(reported))
	}
	if n := ast.(*lr.NonLeaf); len(n.Children) != 3 {
		t.Errorf("expected AST for 1 + 2, have\n%s", lr.TreeString(ast))
	}
}

func calculator(t *testing.T) *lr.Grammar {
	plus, times := lexer.Literal("+"), lexer.Literal("*")
	b := lr.NewGrammarBuilder("Calc")
	b.Precedence(1, lr.LeftAssoc, plus).Precedence(2, lr.LeftAssoc, times)
	b.LHS("E").N("E").T(plus).N("E").End().WithAction(func(ctx lr.ReduceContext) error {
		n := ctx.Node()
		n.Value = value(n.Child(0)) + value(n.Child(2))
		return nil
	})
	b.LHS("E").N("E").T(times).N("E").End().WithAction(func(ctx lr.ReduceContext) error {
		n := ctx.Node()
		n.Value = value(n.Child(0)) * value(n.Child(2))
		return nil
	})
	b.LHS("E").T(lexer.CInteger().Named("int")).End().WithAction(func(ctx lr.ReduceContext) error {
		n := ctx.Node()
		n.Value = value(n.Child(0))
		return nil
	})
	g, err := b.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func TestSemanticActions(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pj.parser")
	defer teardown()
	//
	reductions := 0
	p, err := NewParserFor(calculator(t), tables, WithReduceListener(func(ctx lr.ReduceContext) {
		reductions++
	}))
	if err != nil {
		t.Fatal(err)
	}
	for input, result := range map[string]int{
		"1 + 2 * 3": 7,
		"2 * 3 + 4": 10,
		"8 + 1 + 1": 10,
		"42":        42,
	} {
		ast, err := p.ParseString(input)
		if err != nil {
			t.Fatal(err)
		}
		if v := value(ast); v != result {
			t.Errorf("expected %s = %d, have %d", input, result, v)
		}
	}
	if reductions != 5+5+5+1 {
		t.Errorf("expected 16 reductions, have %d", reductions)
	}
}

func TestActionError(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pj.parser")
	defer teardown()
	//
	boom := errors.New("boom")
	g := exprGrammar(t)
	g.Rule(2).WithAction(func(ctx lr.ReduceContext) error {
		if ctx.Node().Child(0).(*lr.Leaf).Token.Text == "0" {
			return boom
		}
		return nil
	})
	p, _ := NewParserFor(g, tables)
	if _, err := p.ParseString("1 + 2"); err != nil {
		t.Fatal(err)
	}
	if _, err := p.ParseString("1 + 0"); !errors.Is(err, boom) {
		t.Errorf("expected action error, got %v", err)
	}
}

func TestFlattenedList(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pj.parser")
	defer teardown()
	//
	b := lr.NewGrammarBuilder("List")
	list := b.List(lexer.CInteger().Named("int"), lexer.Literal(","), false)
	b.LHS("Vector").L("[").S(list).L("]").End()
	g, err := b.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	p, err := NewParserFor(g, tables)
	if err != nil {
		t.Fatal(err)
	}
	ast, err := p.ParseString("[1, 2, 3, 4]")
	if err != nil {
		t.Fatal(err)
	}
	items := ast.(*lr.NonLeaf).Child(1).(*lr.NonLeaf)
	if len(items.Children) != 4 {
		t.Errorf("expected flat list of 4 items, have\n%s", lr.TreeString(ast))
	}
	for i, item := range items.Children {
		if value(item) != i+1 {
			t.Errorf("expected item %d to be %d, is %v", i, i+1, item)
		}
	}
}

func TestEmptyAlternative(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pj.parser")
	defer teardown()
	//
	b := lr.NewGrammarBuilder("Opt")
	b.LHS("S").N("A").L("b").End()
	b.LHS("A").L("a").End()
	b.LHS("A").T(lexer.Empty).End()
	g, err := b.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	p, err := NewParserFor(g, tables)
	if err != nil {
		t.Fatal(err)
	}
	ast, err := p.ParseString("b")
	if err != nil {
		t.Fatal(err)
	}
	A := ast.(*lr.NonLeaf).Child(0).(*lr.NonLeaf)
	if leaf, ok := A.Child(0).(*lr.Leaf); !ok || leaf.Token.Type != lexer.Empty {
		t.Errorf("expected A to be derived from ε, have\n%s", lr.TreeString(ast))
	}
	if _, err = p.ParseString("a b"); err != nil {
		t.Error(err)
	}
}

func TestTypeNames(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pj.parser")
	defer teardown()
	//
	ident := lexer.CIdentifier().Named("ident")
	typeName := lexer.Artificial("TypeName")
	b := lr.NewGrammarBuilder("Decls")
	decl := lr.NewNonTerminal("Decl")
	b.LHS("Program").S(b.OneOrMore(decl)).End()
	b.LHS("Decl").L("typedef").T(ident).L(";").End().WithAction(func(ctx lr.ReduceContext) error {
		ctx.TypeNames().Declare(ctx.Node().Child(1).(*lr.Leaf).Token.Text)
		return nil
	})
	b.LHS("Decl").T(typeName).T(ident).L(";").End().Named("typed")
	b.LHS("Decl").T(ident).L(";").End()
	g, err := b.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	p, err := NewParserFor(g, tables, ReclassifyTypeNames(ident, typeName))
	if err != nil {
		t.Fatal(err)
	}
	ast, err := p.ParseString("typedef T; T x; x;")
	if err != nil {
		t.Fatal(err)
	}
	decls := ast.(*lr.NonLeaf).Child(0).(*lr.NonLeaf)
	if len(decls.Children) != 3 {
		t.Fatalf("expected 3 declarations, have\n%s", lr.TreeString(ast))
	}
	if r := decls.Children[1].(*lr.NonLeaf).Rule; r.Label != "typed" {
		t.Errorf("expected T to be recognized as a type name, have\n%s", lr.TreeString(ast))
	}
	if !p.TypeNames().IsTypeName("T") {
		t.Errorf("expected T to be declared")
	}
}

func TestTableSharing(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pj.parser")
	defer teardown()
	//
	p1, _ := NewParserFor(exprGrammar(t), tables)
	p2, _ := NewParserFor(exprGrammar(t), tables)
	if p1.Table() != p2.Table() {
		t.Errorf("expected parsers for equal grammars to share a table")
	}
	table, err := lr.BuildActionTable(exprGrammar(t))
	if err != nil {
		t.Fatal(err)
	}
	p3 := NewParser(exprGrammar(t), table)
	if _, err = p3.Parse(p3.Lexer(strings.NewReader("4+5"))); err != nil {
		t.Error(err)
	}
}

// The typedef rule is reduced with the following identifier as lookahead,
// which has been scanned before the type name was declared.
func TestLookaheadReclassifiedAfterAction(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pj.parser")
	defer teardown()
	//
	ident := lexer.CIdentifier().Named("ident")
	typeName := lexer.Artificial("TypeName")
	b := lr.NewGrammarBuilder("Typedef")
	b.LHS("Decls").N("Decl").N("Decl").End()
	b.LHS("Decl").L("typedef").T(ident).L(";").End().WithAction(func(ctx lr.ReduceContext) error {
		ctx.TypeNames().Declare(ctx.Node().Child(1).(*lr.Leaf).Token.Text)
		return nil
	})
	b.LHS("Decl").T(typeName).T(ident).L(";").End().Named("typed")
	b.LHS("Decl").T(ident).L(";").End()
	g, err := b.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	p, err := NewParserFor(g, tables, ReclassifyTypeNames(ident, typeName))
	if err != nil {
		t.Fatal(err)
	}
	ast, err := p.ParseString("typedef T; T x;")
	if err != nil {
		t.Fatal(err)
	}
	second := ast.(*lr.NonLeaf).Child(1).(*lr.NonLeaf)
	if second.Rule.Label != "typed" {
		t.Errorf("expected T to be a type name, have\n%s", lr.TreeString(ast))
	}
}

func TestActionReadsAhead(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pj.parser")
	defer teardown()
	//
	g := exprGrammar(t)
	var peeked []string
	g.Rule(2).WithAction(func(ctx lr.ReduceContext) error {
		tok, err := ctx.Stream().Next()
		if err != nil {
			return err
		}
		peeked = append(peeked, tok.Text)
		return ctx.Stream().Pushback(tok)
	})
	p, err := NewParserFor(g, nil)
	if err != nil {
		t.Fatal(err)
	}
	ast, err := p.ParseString("1 + 2")
	if err != nil {
		t.Fatal(err)
	}
	if len(peeked) != 2 || peeked[0] != "+" || peeked[1] != "" {
		t.Errorf("expected actions to see lookaheads [+ EOF], have %q", peeked)
	}
	if sp := ast.Span(); sp.From() != 0 || sp.To() != 5 {
		t.Errorf("expected AST to span 0..5, has %v", sp)
	}
}
