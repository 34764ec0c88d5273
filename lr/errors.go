package lr

import (
	"fmt"
	"strings"

	"github.com/npillmayer/parserjunior/lexer"
	"github.com/npillmayer/parserjunior/runtime"
)

// ReduceContext is the view of a parser a semantic action gets.
//
// While an action runs, the parser's lookahead is pending in the stream:
// the stream's next token is the lookahead, and the parser re-reads it after
// the action returns. An action may read tokens ahead, provided it pushes
// back the last one it read; tokens it consumes are lost to the parser.
type ReduceContext interface {
	Node() *NonLeaf                // the node for the rule just reduced
	Stream() lexer.TokenStream     // next token read is the parser's lookahead
	Table() *ActionTable           // the table driving the parser
	Grammar() *Grammar             // the grammar of the parser
	TypeNames() *runtime.TypeNames // names declared as types, may be nil
}

// GrammarError is raised for malformed grammars.
type GrammarError struct {
	Grammar string
	Msg     string
}

func (e *GrammarError) Error() string {
	return fmt.Sprintf("grammar %s: %s", e.Grammar, e.Msg)
}

// ConflictError is raised when a table cell would receive two different
// actions, and the conflict cannot be resolved by precedence.
type ConflictError struct {
	State    int
	Terminal Symbol
	Existing Action
	New      Action
	Rules    []*Rule // rules involved in reduce actions
}

func (e *ConflictError) Error() string {
	kind := "shift/reduce"
	if e.Existing.Kind == Reduce && e.New.Kind == Reduce {
		kind = "reduce/reduce"
	} else if e.Existing.Kind == Accept || e.New.Kind == Accept {
		kind = "accept/reduce"
	}
	var rules []string
	for _, r := range e.Rules {
		rules = append(rules, r.String())
	}
	return fmt.Sprintf("%s conflict in state %d on %s: %s vs %s [%s]",
		kind, e.State, e.Terminal.Name(), e.Existing, e.New, strings.Join(rules, "; "))
}

// ResolutionError is raised when FIRST or FOLLOW sets of a grammar cannot be
// resolved, which happens for non-terminals which derive no terminal string.
type ResolutionError struct {
	Resolved   int
	Total      int
	Unresolved []string
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("resolution failure: resolved %d of %d sets, unresolved: %s",
		e.Resolved, e.Total, strings.Join(e.Unresolved, ", "))
}
