package lexer

import (
	"errors"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestConstraints(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pj.lexer")
	defer teardown()
	//
	for i, test := range []struct {
		c    CharConstraint
		in   string
		out  string
		expr string
	}{
		{Eq('x'), "x", "yX", "c == 'x'"},
		{Range('a', 'f'), "acf", "gA0", "(c >= 'a' && c <= 'f')"},
		{OneOfChars("+-"), "+-", "*/", `c in "+-"`},
		{Not(Eq('\n')), "a ", "\n", `!(c == '\n')`},
		{Or(Eq('a'), Eq('b')), "ab", "c", "(c == 'a' || c == 'b')"},
		{And(Range('a', 'z'), Not(Eq('q'))), "az", "qA", "((c >= 'a' && c <= 'z') && !(c == 'q'))"},
		{Any(), "a\n€", "", "true"},
	} {
		for _, r := range test.in {
			if !test.c.Matches(r) {
				t.Errorf("test %d: expected %s to match %q", i, test.c, r)
			}
		}
		for _, r := range test.out {
			if test.c.Matches(r) {
				t.Errorf("test %d: expected %s not to match %q", i, test.c, r)
			}
		}
		if test.c.Expression() != test.expr {
			t.Errorf("test %d: expected expression %q, is %q", i, test.expr, test.c.Expression())
		}
	}
	if !Eq('x').Equals(Eq('x')) || Eq('x').Equals(Eq('y')) {
		t.Error("constraints should compare by expression")
	}
}

func TestAutomatonCursor(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pj.lexer")
	defer teardown()
	//
	b := NewBuilder()
	digits := b.NewFinalState()
	b.InitialState().When(Range('0', '9')).GoTo(digits)
	digits.When(Range('0', '9')).GoTo(digits)
	a := b.Build()
	c := a.NewCursor()
	for _, r := range "123" {
		if dead := c.Step(r); dead {
			t.Fatalf("cursor died on %q", r)
		}
	}
	if !c.IsInFinalState() || c.MatchedLength() != 3 {
		t.Errorf("expected final state with length 3, have %v/%d", c.IsInFinalState(), c.MatchedLength())
	}
	if dead := c.Step('x'); !dead {
		t.Error("expected cursor to die on 'x'")
	}
	if dead := c.Step('4'); !dead {
		t.Error("expected dead cursor to stay dead")
	}
	if c.MatchedLength() != 3 {
		t.Errorf("matched length should survive death, is %d", c.MatchedLength())
	}
	c.Reset()
	if c.MatchedLength() != 0 || c.IsInFinalState() || !c.Alive() {
		t.Error("reset did not restore initial state")
	}
}

func TestFirstTransitionWins(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pj.lexer")
	defer teardown()
	//
	b := NewBuilder()
	b.InitialState().When(Eq('a')).GoTo(b.FailedState())
	b.InitialState().When(Any()).GoTo(b.NewFinalState())
	c := b.Build().NewCursor()
	if !c.Step('a') {
		t.Error("expected first transition into failed state to be taken")
	}
	c.Reset()
	if c.Step('b') || !c.IsInFinalState() {
		t.Error("expected 'b' to be accepted")
	}
}

func exprLexemes() []*Lexeme {
	return []*Lexeme{
		CInteger().Named("int"),
		Literal("+"), Literal("-"), Literal("*"), Literal("/"),
		Literal("("), Literal(")"),
	}
}

func types(tokens []Token) string {
	s := make([]string, len(tokens))
	for i, tok := range tokens {
		if tok.IsEOF() {
			s[i] = "EOF"
		} else if tok.Type.Name() == tok.Text {
			s[i] = tok.Text
		} else {
			s[i] = tok.Type.Name() + "(" + tok.Text + ")"
		}
	}
	return strings.Join(s, " ")
}

func TestArithmeticTokens(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pj.lexer")
	defer teardown()
	//
	stream := NewStringStream("12+3*4", exprLexemes())
	tokens, err := Tokenize(stream)
	if err != nil {
		t.Fatal(err)
	}
	if s := types(tokens); s != "int(12) + int(3) * int(4) EOF" {
		t.Errorf("unexpected token sequence: %s", s)
	}
}

func TestLongestMatchBeatsPriority(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pj.lexer")
	defer teardown()
	//
	lexemes := []*Lexeme{Literal("if"), CIdentifier(), Whitespace()}
	for _, test := range []struct {
		input, tokens string
	}{
		{"iffy", "cIdentifier(iffy) EOF"},
		{"if", "if EOF"},
		{"if fy", "if Whitespace( ) cIdentifier(fy) EOF"},
	} {
		tokens, err := Tokenize(NewStringStream(test.input, lexemes))
		if err != nil {
			t.Fatal(err)
		}
		if s := types(tokens); s != test.tokens {
			t.Errorf("input %q: expected %s, have %s", test.input, test.tokens, s)
		}
	}
}

func TestEqualPriorityIsDeterministic(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pj.lexer")
	defer teardown()
	//
	a := Word("A", Alpha, Alpha)
	b := Word("B", Alpha, Alpha)
	for i := 0; i < 5; i++ {
		tokens, err := Tokenize(NewStringStream("abc", []*Lexeme{a, b}))
		if err != nil {
			t.Fatal(err)
		}
		if tokens[0].Type != a {
			t.Errorf("expected earlier lexeme to win tie, got %v", tokens[0].Type)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pj.lexer")
	defer teardown()
	//
	input := "int x = 0x1F; /* a ** comment */\nfloat y = 3.14e+2f; // done\n\"str\\\"ing\" 'c'"
	lexemes := []*Lexeme{
		Literal("int"), Literal("float"), Literal("="), Literal(";"),
		CIdentifier(), CHexNumber(), CInteger(), CFloatingPoint(),
		CString(), CCharacter(), Whitespace(), NewLine(),
		LineComment("//"), MultilineComment("/*", "*/"),
	}
	tokens, err := Tokenize(NewStringStream(input, lexemes))
	if err != nil {
		t.Fatal(err)
	}
	var sb strings.Builder
	for _, tok := range tokens {
		sb.WriteString(tok.Text)
	}
	if sb.String() != input {
		t.Errorf("round trip failed:\n%q\n%q", input, sb.String())
	}
}

func TestLexemeLibrary(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pj.lexer")
	defer teardown()
	//
	for _, test := range []struct {
		lexeme *Lexeme
		input  string
		length int
	}{
		{CInteger(), "1234UL;", 6},
		{CInteger(), "0;", 1},
		{CHexNumber(), "0xCAFEu+", 7},
		{COctal(), "0777", 4},
		{CBinary(), "0b1012", 5},
		{CFloatingPoint(), "1.5e-3f", 7},
		{CFloatingPoint(), ".5", 2},
		{CFloatingPoint(), "15", 0},
		{CString(), `"a\"b" rest`, 6},
		{CString(), "\"a\nb\"", 0},
		{CCharacter(), `'\n'`, 4},
		{CCharacter(), `'\x4f'`, 6},
		{CCharacter(), `'\u00e9'`, 8},
		{CCharacter(), `'é'`, 0},
		{LineComment("#"), "# note\nx", 6},
		{MultilineComment("/*", "*/"), "/* x **/ y", 8},
		{MultilineComment("<!--", "-->"), "<!-- a -- b --->c", 16},
		{NewLine(), "\r\n", 2},
		{Whitespace(), " \t x", 3},
		{CIdentifier(), "_a1 b", 3},
	} {
		c := test.lexeme.Automaton().NewCursor()
		for _, r := range test.input {
			if c.Step(r) {
				break
			}
		}
		if c.MatchedLength() != test.length {
			t.Errorf("%s on %q: expected match length %d, is %d",
				test.lexeme, test.input, test.length, c.MatchedLength())
		}
	}
}

func TestPositions(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pj.lexer")
	defer teardown()
	//
	stream := NewStringStream("a b\n  cd", []*Lexeme{CIdentifier()},
		Ignore(Whitespace(), NewLine()))
	tokens, err := Tokenize(stream)
	if err != nil {
		t.Fatal(err)
	}
	expected := []string{"1:1", "1:3", "2:3", "2:5"}
	if len(tokens) != len(expected) {
		t.Fatalf("expected %d tokens, have %d", len(expected), len(tokens))
	}
	for i, tok := range tokens {
		if tok.Pos.String() != expected[i] {
			t.Errorf("token %v: expected position %s", tok, expected[i])
		}
	}
	if span := tokens[2].Span(); span.From() != 6 || span.To() != 8 {
		t.Errorf("unexpected span %v for %v", span, tokens[2])
	}
}

func TestLexicalError(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pj.lexer")
	defer teardown()
	//
	stream := NewStringStream("12+?3", exprLexemes())
	stream.SetErrorHandler(func(error) {})
	_, err := Tokenize(stream)
	var lexerr *LexicalError
	if !errors.As(err, &lexerr) {
		t.Fatalf("expected lexical error, got %v", err)
	}
	if lexerr.Pos.Column != 4 || lexerr.Pos.Offset != 3 {
		t.Errorf("expected error at column 4, is %s", lexerr.Pos)
	}
	if _, again := stream.Next(); again != err {
		t.Error("expected lexical error to be sticky")
	}
}

func TestIncompleteTokenAtEOF(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pj.lexer")
	defer teardown()
	//
	stream := NewStringStream(`1 "open`, []*Lexeme{CInteger(), CString()}, Ignore(Whitespace()))
	stream.SetErrorHandler(func(error) {})
	tokens, err := Tokenize(stream)
	if err == nil || len(tokens) != 1 {
		t.Errorf("expected one token and an error, have %v / %v", tokens, err)
	}
}

func TestPushback(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pj.lexer")
	defer teardown()
	//
	stream := NewStringStream("1+2", exprLexemes())
	first, _ := stream.Next()
	if err := stream.Pushback(first); err != nil {
		t.Fatal(err)
	}
	if err := stream.Pushback(first); err != ErrPushbackFull {
		t.Errorf("expected second pushback to fail, got %v", err)
	}
	again, _ := stream.Next()
	if again != first {
		t.Errorf("expected %v after pushback, got %v", first, again)
	}
	plus, _ := stream.Next()
	if plus.Text != "+" {
		t.Errorf("expected '+', got %v", plus)
	}
}

func TestEmptyInputAndRepeatedEOF(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pj.lexer")
	defer teardown()
	//
	stream := NewStringStream("", exprLexemes())
	for i := 0; i < 3; i++ {
		tok, err := stream.Next()
		if err != nil || !tok.IsEOF() {
			t.Errorf("expected EOF, got %v / %v", tok, err)
		}
	}
}

func TestListener(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pj.lexer")
	defer teardown()
	//
	typeName := Artificial("TypeName")
	listener := func(tok Token) (Token, bool) {
		if tok.Text == "-" {
			return tok, false
		}
		if tok.Text == "T" {
			return tok.WithType(typeName), true
		}
		return tok, true
	}
	stream := NewStringStream("T x-y", []*Lexeme{CIdentifier(), Literal("-")},
		Ignore(Whitespace()), WithListener(listener))
	tokens, err := Tokenize(stream)
	if err != nil {
		t.Fatal(err)
	}
	if s := types(tokens); s != "TypeName(T) cIdentifier(x) cIdentifier(y) EOF" {
		t.Errorf("unexpected tokens %s", s)
	}
}

func TestListenerSeesPushedBackToken(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pj.lexer")
	defer teardown()
	//
	ident := CIdentifier()
	typeName := Artificial("TypeName")
	declared := false
	listener := func(tok Token) (Token, bool) {
		if declared && tok.Type == ident && tok.Text == "T" {
			return tok.WithType(typeName), true
		}
		return tok, true
	}
	stream := NewStringStream("T x", []*Lexeme{ident}, Ignore(Whitespace()), WithListener(listener))
	tok, _ := stream.Next()
	if tok.Type != ident {
		t.Fatalf("expected an identifier before declaration, got %v", tok)
	}
	if err := stream.Pushback(tok); err != nil {
		t.Fatal(err)
	}
	declared = true
	tok, _ = stream.Next()
	if tok.Type != typeName {
		t.Errorf("expected T to be re-classified on re-read, got %v", tok)
	}
	if tok.Pos.Offset != 0 || tok.Text != "T" {
		t.Errorf("expected re-read token to keep its text and position, got %v", tok)
	}
}
