package lexmach

import (
	"errors"
	"testing"

	"github.com/npillmayer/parserjunior/lexer"
	"github.com/npillmayer/parserjunior/lr"
	"github.com/npillmayer/parserjunior/lr/parser"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

var (
	id     = lexer.CIdentifier().Named("ID")
	num    = lexer.CInteger().Named("NUM")
	str    = lexer.CString().Named("STRING")
	plus   = lexer.Literal("+")
	assign = lexer.Literal("=")
	nilkw  = lexer.Literal("nil")
)

func adapter(t *testing.T) *LMAdapter {
	init := func(lm *LMAdapter) {
		lm.Lexer.Add([]byte(`//[^\n]*\n?`), Skip)
		lm.Lexer.Add([]byte(`\"[^"]*\"`), lm.MakeToken(str))
		lm.Lexer.Add([]byte(`#?([a-z]|[A-Z])([a-z]|[A-Z]|[0-9]|_|-)*[!\?]?`), lm.MakeToken(id))
		lm.Lexer.Add([]byte(`[1-9][0-9]*`), lm.MakeToken(num))
		lm.Lexer.Add([]byte(`( |\,|\t|\n|\r)+`), Skip)
	}
	LM, err := NewLMAdapter(init, []*lexer.Lexeme{plus, assign}, []*lexer.Lexeme{nilkw})
	if err != nil {
		t.Fatal(err)
	}
	return LM
}

func TestLM(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pj.lexer")
	defer teardown()
	//
	LM := adapter(t)
	for i, c := range []struct {
		input string
		count int
	}{
		{"1", 1},
		{"1+12", 3},
		{"Hello #World", 2},
		{`x="mystring" // commented `, 3},
		{"1,22,333", 3},
		{"x = nil", 3},
	} {
		sc, err := LM.Scanner(c.input)
		if err != nil {
			t.Fatal(err)
		}
		tokens, err := lexer.Tokenize(sc)
		if err != nil {
			t.Fatal(err)
		}
		for _, tok := range tokens {
			t.Logf(" %10s | %15q | @%v", tok.Type.Name(), tok.Text, tok.Pos)
		}
		if len(tokens)-1 != c.count {
			t.Errorf("expected token count for #%d to be %d, is %d", i, c.count, len(tokens)-1)
		}
	}
}

func TestLMPositions(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pj.lexer")
	defer teardown()
	//
	sc, _ := adapter(t).Scanner("x = nil\n  y = 12")
	tokens, err := lexer.Tokenize(sc)
	if err != nil {
		t.Fatal(err)
	}
	if len(tokens) != 7 {
		t.Fatalf("expected 7 tokens, have %d", len(tokens))
	}
	if tokens[2].Type != nilkw {
		t.Errorf("expected keyword nil, have %v", tokens[2])
	}
	y := tokens[3]
	if y.Type != id || y.Pos.Line != 2 || y.Pos.Column != 3 || y.Pos.Offset != 10 {
		t.Errorf("expected identifier y at 2:3, have %v", y)
	}
	if !tokens[6].IsEOF() || tokens[6].Pos.Offset != 16 {
		t.Errorf("expected EOF at offset 16, have %v", tokens[6])
	}
}

func TestLMError(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pj.lexer")
	defer teardown()
	//
	sc, _ := adapter(t).Scanner("1 ; 2")
	reported := 0
	sc.SetErrorHandler(func(error) { reported++ })
	sc.Next()
	_, err := sc.Next()
	var lexerr *lexer.LexicalError
	if !errors.As(err, &lexerr) {
		t.Fatalf("expected lexical error, got %v", err)
	}
	if lexerr.Pos.Column != 3 || lexerr.Text != ";" {
		t.Errorf("expected error for ';' at column 3, have %v", lexerr)
	}
	if reported != 1 {
		t.Errorf("expected error handler to be called")
	}
}

func TestLMParse(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pj.lexer")
	defer teardown()
	//
	b := lr.NewGrammarBuilder("Sum")
	b.LHS("S").N("S").T(plus).T(num).End()
	b.LHS("S").T(num).End()
	g, err := b.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	p, err := parser.NewParserFor(g, nil)
	if err != nil {
		t.Fatal(err)
	}
	sc, _ := adapter(t).Scanner("1 + 2 + 3")
	ast, err := p.Parse(sc)
	if err != nil {
		t.Fatal(err)
	}
	if ast.Span().To() != 9 {
		t.Errorf("expected AST to span 9 runes, spans %v", ast.Span())
	}
}
