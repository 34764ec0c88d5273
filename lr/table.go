package lr

import (
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/npillmayer/parserjunior/lexer"
	"github.com/npillmayer/parserjunior/lr/sparse"
)

// ActionKind is the kind of a parser action.
type ActionKind int8

// Kinds of parser actions. Fail is the zero value, i.e. the action of
// every empty table cell.
const (
	Fail ActionKind = iota
	Shift
	Reduce
	Accept
	Goto
)

// Action is an entry of an action table. Target is the next state for
// Shift and Goto, and the rule ID for Reduce.
type Action struct {
	Kind   ActionKind
	Target int
}

func (a Action) String() string {
	switch a.Kind {
	case Shift:
		return fmt.Sprintf("s%d", a.Target)
	case Reduce:
		return fmt.Sprintf("r%d", a.Target)
	case Accept:
		return "acc"
	case Goto:
		return fmt.Sprintf("g%d", a.Target)
	}
	return "fail"
}

// ActionTable maps (state, symbol) to parser actions. Columns for terminals
// hold Shift, Reduce and Accept actions, columns for non-terminals hold Goto
// actions. An ActionTable is immutable once built and may be shared between
// parsers.
type ActionTable struct {
	g       *Grammar
	start   *Rule
	cfsm    *CFSM
	symbols []Symbol // in column order
	columns map[symKey]int
	matrix  *sparse.IntMatrix
}

func newActionTable(g *Grammar, start *Rule, cfsm *CFSM) *ActionTable {
	t := &ActionTable{
		g:       g,
		start:   start,
		cfsm:    cfsm,
		columns: make(map[symKey]int),
	}
	t.addColumn(lexer.EOF)
	g.EachSymbol(func(sym Symbol) {
		t.addColumn(sym)
	})
	t.matrix = sparse.NewIntMatrix(len(cfsm.states), len(t.symbols), sparse.DefaultNullValue)
	return t
}

func (t *ActionTable) addColumn(sym Symbol) {
	if _, ok := t.columns[keyOf(sym)]; ok {
		return
	}
	t.columns[keyOf(sym)] = len(t.symbols)
	t.symbols = append(t.symbols, sym)
}

// Action returns the action for a state and a symbol. Symbols unknown to
// the grammar yield Fail.
func (t *ActionTable) Action(state int, sym Symbol) Action {
	j, ok := t.columns[keyOf(sym)]
	if !ok {
		return Action{}
	}
	k, p := t.matrix.Values(state, j)
	if k == t.matrix.NullValue() {
		return Action{}
	}
	return Action{Kind: ActionKind(k), Target: int(p)}
}

func (t *ActionTable) set(state int, sym Symbol, a Action) {
	j := t.columns[keyOf(sym)]
	if err := t.matrix.Set(state, j, int32(a.Kind), int32(a.Target)); err != nil {
		tracer().Errorf("action table: %v", err)
	}
}

// Goto returns the successor state after reducing to a non-terminal.
func (t *ActionTable) Goto(state int, nt *NonTerminal) (int, bool) {
	a := t.Action(state, nt)
	if a.Kind != Goto {
		return 0, false
	}
	return a.Target, true
}

// Expected returns the terminals with a non-failing action in a state,
// in column order.
func (t *ActionTable) Expected(state int) []Symbol {
	var expected []Symbol
	for _, sym := range t.symbols {
		if sym.IsTerminal() && t.Action(state, sym).Kind != Fail {
			expected = append(expected, sym)
		}
	}
	return expected
}

// StateCount returns the number of states (rows).
func (t *ActionTable) StateCount() int {
	return t.matrix.M()
}

// Symbols returns the symbols of the table's columns.
func (t *ActionTable) Symbols() []Symbol {
	return t.symbols
}

// StartRule returns the start rule, which may be synthetic.
func (t *ActionTable) StartRule() *Rule {
	return t.start
}

// Grammar returns the grammar the table has been built for.
func (t *ActionTable) Grammar() *Grammar {
	return t.g
}

// CFSM returns the characteristic finite state machine of the grammar.
func (t *ActionTable) CFSM() *CFSM {
	return t.cfsm
}

// ActionCount returns the number of non-empty cells.
func (t *ActionTable) ActionCount() int {
	return t.matrix.ValueCount()
}

// Equal compares two tables cell by cell. Columns are matched by symbol.
func (t *ActionTable) Equal(other *ActionTable) bool {
	if other == nil || t.StateCount() != other.StateCount() || len(t.symbols) != len(other.symbols) {
		return false
	}
	if t.ActionCount() != other.ActionCount() {
		return false
	}
	for state := 0; state < t.StateCount(); state++ {
		for _, sym := range t.symbols {
			if t.Action(state, sym) != other.Action(state, sym) {
				return false
			}
		}
	}
	return true
}

// Rows returns the table as rows of strings, with a header row of symbol
// names. Empty cells are empty strings.
func (t *ActionTable) Rows() [][]string {
	rows := make([][]string, 0, t.StateCount()+1)
	header := []string{""}
	for _, sym := range t.symbols {
		header = append(header, sym.Name())
	}
	rows = append(rows, header)
	for state := 0; state < t.StateCount(); state++ {
		row := make([]string, len(header))
		row[0] = fmt.Sprintf("%d", state)
		rows = append(rows, row)
	}
	t.matrix.Each(func(i, j int, a, b int32) {
		if a != t.matrix.NullValue() {
			rows[i+1][j+1] = Action{Kind: ActionKind(a), Target: int(b)}.String()
		}
	})
	return rows
}

func (t *ActionTable) String() string {
	var b strings.Builder
	for _, row := range t.Rows() {
		for _, cell := range row {
			fmt.Fprintf(&b, "%-6s", cell)
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// ActionTableAsHTML exports an action table in HTML-format.
func ActionTableAsHTML(t *ActionTable, w io.Writer) error {
	var b strings.Builder
	b.WriteString("<html><body>\n")
	fmt.Fprintf(&b, "ACTION table for %s, %d entries<p>", html.EscapeString(t.g.Name), t.ActionCount())
	b.WriteString("<table border=1 cellspacing=0 cellpadding=5>\n")
	for r, row := range t.Rows() {
		if r == 0 {
			b.WriteString("<tr bgcolor=#cccccc>")
		} else {
			b.WriteString("<tr>")
		}
		for _, cell := range row {
			if cell == "" {
				cell = "&nbsp;"
			} else {
				cell = html.EscapeString(cell)
			}
			fmt.Fprintf(&b, "<td>%s</td>", cell)
		}
		b.WriteString("</tr>\n")
	}
	b.WriteString("</table></body></html>\n")
	_, err := io.WriteString(w, b.String())
	return err
}
