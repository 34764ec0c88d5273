package lexer

// Character classes used by the lexeme library.
const (
	LowercaseLetters      = "abcdefghijklmnopqrstuvwxyz"
	UppercaseLetters      = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	Digits                = "0123456789"
	NonZeroDigits         = "123456789"
	OctalDigits           = "01234567"
	HexDigits             = Digits + "abcdefABCDEF"
	Alpha                 = LowercaseLetters + UppercaseLetters
	AlphaNum              = Alpha + Digits
	WhitespacesNonNewLine = " \u00A0\u2007\u202F\u000B\u001C\u001D\u001E\u001F\t\f\r"
)

// Literal matches exactly s. The lexeme is named s.
func Literal(s string) *Lexeme {
	b := NewBuilder()
	state := b.InitialState()
	runes := []rune(s)
	for i, r := range runes {
		var next *BuilderState
		if i == len(runes)-1 {
			next = b.NewFinalState()
		} else {
			next = b.NewNonFinalState()
		}
		state = state.When(Eq(r)).GoTo(next)
	}
	return NewLexeme(s, LiteralPriority, b.Build())
}

// Word matches one character out of first followed by any number of
// characters out of next.
func Word(name, first, next string) *Lexeme {
	b := NewBuilder()
	ok := b.NewFinalState()
	b.InitialState().When(OneOfChars(first)).GoTo(ok)
	ok.When(OneOfChars(next)).GoTo(ok)
	return NewLexeme(name, WordPriority, b.Build())
}

// SingleChar matches character c. It is named after c.
func SingleChar(c rune) *Lexeme {
	b := NewBuilder()
	b.InitialState().When(Eq(c)).GoTo(b.NewFinalState())
	return NewLexeme(string(c), DefaultPriority, b.Build())
}

// OneOf matches a single character out of chars.
func OneOf(name, chars string) *Lexeme {
	b := NewBuilder()
	b.InitialState().When(OneOfChars(chars)).GoTo(b.NewFinalState())
	return NewLexeme(name, DefaultPriority, b.Build())
}

// Whitespace matches runs of blanks, tabs and other non-newline whitespace.
func Whitespace() *Lexeme {
	return Word("Whitespace", WhitespacesNonNewLine, WhitespacesNonNewLine).WithPriority(DefaultPriority)
}

// NewLine matches "\n" and "\r\n".
func NewLine() *Lexeme {
	b := NewBuilder()
	final := b.NewFinalState()
	cr := b.NewNonFinalState()
	b.InitialState().When(Eq('\n')).GoTo(final)
	b.InitialState().When(Eq('\r')).GoTo(cr)
	cr.When(Eq('\n')).GoTo(final)
	return NewLexeme("NewLine", DefaultPriority, b.Build())
}

// CIdentifier matches C-style identifiers.
func CIdentifier() *Lexeme {
	return Word("cIdentifier", "_"+Alpha, "_"+AlphaNum).WithPriority(DefaultPriority)
}

// QuotedString matches strings enclosed in start and end, where escape
// protects the following character and characters in forbidden make the
// automaton fail.
func QuotedString(name string, start, end, escape rune, forbidden string) *Lexeme {
	b := NewBuilder()
	inString := b.NewNonFinalState()
	escaping := b.NewNonFinalState()
	b.InitialState().When(Eq(start)).GoTo(inString)
	inString.When(Eq(escape)).GoTo(escaping)
	if forbidden != "" {
		inString.When(OneOfChars(forbidden)).GoTo(b.FailedState())
	}
	inString.When(Eq(end)).GoTo(b.NewFinalState())
	inString.When(Any()).GoTo(inString)
	escaping.When(Any()).GoTo(inString)
	return NewLexeme(name, DefaultPriority, b.Build())
}

// CString matches double-quoted C strings.
func CString() *Lexeme {
	return QuotedString("cString", '"', '"', '\\', "\n")
}

// CCharacter matches C character constants like 'a', '\n', '\012', '\x4f' or '\u00e9'.
func CCharacter() *Lexeme {
	b := NewBuilder()
	gotQuote := b.NewNonFinalState()
	escaped := b.NewNonFinalState()
	octal1 := b.NewNonFinalState()
	octal2 := b.NewNonFinalState()
	hex := b.NewNonFinalState()
	universal := b.NewNonFinalState()
	gotChar := b.NewNonFinalState()
	done := b.NewFinalState()
	b.InitialState().When(Eq('\'')).GoTo(gotQuote)
	gotQuote.When(Eq('\\')).GoTo(escaped)
	gotQuote.When(And(Range(0x20, 0x7f), Not(Eq('\'')))).GoTo(gotChar)
	escaped.When(OneOfChars("'\"?abfnrtv\\")).GoTo(gotChar)
	escaped.When(OneOfChars(OctalDigits)).GoTo(octal1)
	octal1.When(OneOfChars(OctalDigits)).GoTo(octal2)
	octal1.When(Eq('\'')).GoTo(done)
	octal2.When(OneOfChars(OctalDigits)).GoTo(gotChar)
	octal2.When(Eq('\'')).GoTo(done)
	escaped.When(Eq('x')).GoTo(hex)
	hex.When(OneOfChars(HexDigits)).GoTo(hex)
	hex.When(Eq('\'')).GoTo(done)
	escaped.When(OneOfChars("uU")).GoTo(universal)
	quad := addHexQuad(b, universal)
	quad.When(Eq('\'')).GoTo(done)
	addHexQuad(b, quad).When(Eq('\'')).GoTo(done)
	gotChar.When(Eq('\'')).GoTo(done)
	return NewLexeme("cCharacter", DefaultPriority, b.Build())
}

func addHexQuad(b *Builder, from *BuilderState) *BuilderState {
	current := from
	for i := 0; i < 4; i++ {
		current = current.When(OneOfChars(HexDigits)).GoTo(b.NewNonFinalState())
	}
	return current
}

// CInteger matches decimal C integers with optional U/L suffixes.
func CInteger() *Lexeme {
	b := NewBuilder()
	zero := b.NewFinalState()
	final := b.NewFinalState()
	b.InitialState().When(Eq('0')).GoTo(zero)
	b.InitialState().When(OneOfChars(NonZeroDigits)).GoTo(final)
	final.When(OneOfChars(Digits)).GoTo(final)
	addIntegerSuffix(b, final)
	addIntegerSuffix(b, zero)
	return NewLexeme("cInteger", DefaultPriority, b.Build())
}

// CHexNumber matches 0x-prefixed hexadecimal numbers.
func CHexNumber() *Lexeme {
	b := NewBuilder()
	final := b.NewFinalState()
	x := b.InitialState().When(Eq('0')).GoTo(b.NewNonFinalState()).
		When(OneOfChars("xX")).GoTo(b.NewNonFinalState())
	x.When(OneOfChars(HexDigits)).GoTo(final)
	final.When(OneOfChars(HexDigits)).GoTo(final)
	addIntegerSuffix(b, final)
	return NewLexeme("cHexNumber", DefaultPriority, b.Build())
}

// COctal matches 0-prefixed octal numbers.
func COctal() *Lexeme {
	b := NewBuilder()
	final := b.NewFinalState()
	b.InitialState().When(Eq('0')).GoTo(b.NewNonFinalState()).
		When(OneOfChars(OctalDigits)).GoTo(final)
	final.When(OneOfChars(OctalDigits)).GoTo(final)
	addIntegerSuffix(b, final)
	return NewLexeme("cOctal", DefaultPriority, b.Build())
}

// CBinary matches binary constants like 0b1011.
func CBinary() *Lexeme {
	b := NewBuilder()
	final := b.NewFinalState()
	b.InitialState().When(Eq('0')).GoTo(b.NewNonFinalState()).
		When(OneOfChars("bB")).GoTo(b.NewNonFinalState()).
		When(OneOfChars("01")).GoTo(final)
	final.When(OneOfChars("01")).GoTo(final)
	addIntegerSuffix(b, final)
	return NewLexeme("cBinary", DefaultPriority, b.Build())
}

func addIntegerSuffix(b *Builder, state *BuilderState) {
	suffixU := b.NewFinalState()
	suffixL := b.NewFinalState()
	both := b.NewFinalState()
	state.When(OneOfChars("uU")).GoTo(suffixU)
	suffixU.When(OneOfChars("lL")).GoTo(both)
	state.When(OneOfChars("lL")).GoTo(suffixL)
	suffixL.When(OneOfChars("uU")).GoTo(both)
}

// CFloatingPoint matches [0-9]+ '.' [0-9]* or '.' [0-9]+, followed by an
// optional exponent and an optional suffix out of "lfLF".
func CFloatingPoint() *Lexeme {
	b := NewBuilder()
	beforeDot := b.NewNonFinalState()
	leadingDot := b.NewNonFinalState()
	fraction := b.NewFinalState()
	b.InitialState().When(OneOfChars(Digits)).GoTo(beforeDot)
	beforeDot.When(OneOfChars(Digits)).GoTo(beforeDot)
	beforeDot.When(Eq('.')).GoTo(fraction)
	b.InitialState().When(Eq('.')).GoTo(leadingDot)
	leadingDot.When(OneOfChars(Digits)).GoTo(fraction)
	fraction.When(OneOfChars(Digits)).GoTo(fraction)
	suffix := b.NewFinalState()
	fraction.When(OneOfChars("lfLF")).GoTo(suffix)
	exponent := addExponent(b, fraction)
	exponent.When(OneOfChars("lfLF")).GoTo(suffix)
	return NewLexeme("cFloatingPoint", DefaultPriority, b.Build())
}

func addExponent(b *Builder, state *BuilderState) *BuilderState {
	gotE := b.NewNonFinalState()
	gotSign := b.NewNonFinalState()
	final := b.NewFinalState()
	state.When(OneOfChars("eE")).GoTo(gotE)
	gotE.When(OneOfChars(Digits)).GoTo(final)
	gotE.When(OneOfChars("+-")).GoTo(gotSign)
	gotSign.When(OneOfChars(Digits)).GoTo(final)
	final.When(OneOfChars(Digits)).GoTo(final)
	return final
}

// LineComment matches start and everything up to, but not including, the
// next newline.
func LineComment(start string) *Lexeme {
	b := NewBuilder()
	state := b.InitialState()
	for _, r := range start {
		state = state.When(Eq(r)).GoTo(b.NewNonFinalState())
	}
	state.SetFinal(true)
	state.When(Not(Eq('\n'))).GoTo(state)
	return NewLexeme("LineComment("+start+")", DefaultPriority, b.Build())
}

// MultilineComment matches start, then everything up to and including the
// first occurrence of end.
func MultilineComment(start, end string) *Lexeme {
	b := NewBuilder()
	state := b.InitialState()
	for _, r := range start {
		state = state.When(Eq(r)).GoTo(b.NewNonFinalState())
	}
	// states[k] means: the last k characters read are a prefix of end
	e := []rune(end)
	states := make([]*BuilderState, len(e)+1)
	states[0] = state
	for k := 1; k < len(e); k++ {
		states[k] = b.NewNonFinalState()
	}
	states[len(e)] = b.NewFinalState()
	fail := prefixFunction(e)
	for k := 0; k < len(e); k++ {
		states[k].When(Eq(e[k])).GoTo(states[k+1])
		// on mismatch fall back to the longest border which can be extended
		seen := map[rune]bool{e[k]: true}
		for j := k; j > 0; {
			j = fail[j-1]
			if !seen[e[j]] {
				seen[e[j]] = true
				states[k].When(Eq(e[j])).GoTo(states[j+1])
			}
		}
		states[k].When(Any()).GoTo(states[0])
	}
	return NewLexeme("MultilineComment("+start+".."+end+")", DefaultPriority, b.Build())
}

// prefixFunction is the KMP failure function of s.
func prefixFunction(s []rune) []int {
	pi := make([]int, len(s))
	for i := 1; i < len(s); i++ {
		k := pi[i-1]
		for k > 0 && s[i] != s[k] {
			k = pi[k-1]
		}
		if s[i] == s[k] {
			k++
		}
		pi[i] = k
	}
	return pi
}
