package lexer

import (
	"fmt"
	"io"
)

// StateID identifies a state within the arena of an automaton.
type StateID int

// Every automaton has a failed state (a sink) and an initial state.
const (
	FailedState  StateID = 0
	InitialState StateID = 1
)

type transition struct {
	constraint CharConstraint
	target     StateID
}

type autState struct {
	final       bool
	transitions []transition // in declaration order
}

// Automaton is a state graph for one lexeme. States are stored in an arena
// and referenced by index. An automaton is immutable once built; recognition
// runs on Cursors, so one automaton may be shared by any number of streams.
type Automaton struct {
	states []autState
}

// StateCount returns the number of states, including the failed state.
func (a *Automaton) StateCount() int {
	return len(a.states)
}

// IsFinal is true if state s is accepting.
func (a *Automaton) IsFinal(s StateID) bool {
	return a.states[s].final
}

// next returns the target of the first transition out of s accepting r.
func (a *Automaton) next(s StateID, r rune) StateID {
	for _, t := range a.states[s].transitions {
		if t.constraint.Matches(r) {
			return t.target
		}
	}
	return FailedState
}

// GraphViz exports the automaton to the Graphviz Dot format.
func (a *Automaton) GraphViz(name string, w io.Writer) {
	io.WriteString(w, fmt.Sprintf("digraph %q {\nrankdir=LR;\nnode [fontname=Helvetica, fontsize=10];\n", name))
	for i, s := range a.states {
		shape := "circle"
		if s.final {
			shape = "doublecircle"
		}
		io.WriteString(w, fmt.Sprintf("s%d [shape=%s label=\"%d\"]\n", i, shape, i))
	}
	for i, s := range a.states {
		for _, t := range s.transitions {
			io.WriteString(w, fmt.Sprintf("s%d -> s%d [label=%q]\n", i, t.target, t.constraint.expr))
		}
	}
	io.WriteString(w, "}\n")
}

// --- Cursors ---------------------------------------------------------------

// Cursor is a running instance of an automaton. It tracks the current state and
// how many characters have been consumed up to the last accepting state.
type Cursor struct {
	a        *Automaton
	current  StateID
	consumed int
	matched  int
}

// NewCursor creates a cursor positioned at the initial state.
func (a *Automaton) NewCursor() *Cursor {
	return &Cursor{a: a, current: InitialState}
}

// Step feeds character r to the cursor. It returns true if the automaton is
// dead, i.e. no transition accepted r now or at an earlier step. A dead cursor
// stays dead until Reset.
func (c *Cursor) Step(r rune) bool {
	if c.current == FailedState {
		return true
	}
	c.current = c.a.next(c.current, r)
	if c.current == FailedState {
		return true
	}
	c.consumed++
	if c.a.states[c.current].final {
		c.matched = c.consumed
	}
	return false
}

// IsInFinalState is true if the characters consumed so far form a complete match.
func (c *Cursor) IsInFinalState() bool {
	return c.current != FailedState && c.a.states[c.current].final
}

// Alive is true as long as the cursor has not died.
func (c *Cursor) Alive() bool {
	return c.current != FailedState
}

// MatchedLength returns the number of characters consumed when the cursor was
// last in an accepting state. It survives the death of the cursor.
func (c *Cursor) MatchedLength() int {
	return c.matched
}

// Reset moves the cursor back to the initial state.
func (c *Cursor) Reset() {
	c.current = InitialState
	c.consumed = 0
	c.matched = 0
}

// --- Builder ---------------------------------------------------------------

// Builder assembles an automaton state by state.
//
//	b := lexer.NewBuilder()
//	digits := b.NewFinalState()
//	b.InitialState().When(lexer.Range('0', '9')).GoTo(digits)
//	digits.When(lexer.Range('0', '9')).GoTo(digits)
//	a := b.Build()
//
// Transitions are tried in the order they have been declared, the first
// matching one is taken.
type Builder struct {
	states []autState
}

// NewBuilder creates a builder holding a failed state and a non-final initial state.
func NewBuilder() *Builder {
	return &Builder{states: make([]autState, 2, 8)}
}

// BuilderState is a handle for a state under construction.
type BuilderState struct {
	b  *Builder
	id StateID
}

// ID returns the arena index of the state.
func (s *BuilderState) ID() StateID {
	return s.id
}

// InitialState returns the initial state.
func (b *Builder) InitialState() *BuilderState {
	return &BuilderState{b: b, id: InitialState}
}

// FailedState returns the sink state. Transitions into it make the automaton die.
func (b *Builder) FailedState() *BuilderState {
	return &BuilderState{b: b, id: FailedState}
}

// NewFinalState adds an accepting state.
func (b *Builder) NewFinalState() *BuilderState {
	return b.newState(true)
}

// NewNonFinalState adds a non-accepting state.
func (b *Builder) NewNonFinalState() *BuilderState {
	return b.newState(false)
}

func (b *Builder) newState(final bool) *BuilderState {
	b.states = append(b.states, autState{final: final})
	return &BuilderState{b: b, id: StateID(len(b.states) - 1)}
}

// SetFinal changes the accepting flag of a state. The failed state cannot be
// made final.
func (s *BuilderState) SetFinal(final bool) *BuilderState {
	if s.id != FailedState {
		s.b.states[s.id].final = final
	}
	return s
}

// When starts a transition out of s, labelled with constraint c.
func (s *BuilderState) When(c CharConstraint) TransitionBuilder {
	return TransitionBuilder{from: s, constraint: c}
}

// TransitionBuilder is the pending part of a transition, waiting for its target.
type TransitionBuilder struct {
	from       *BuilderState
	constraint CharConstraint
}

// GoTo completes the transition and returns the target state.
func (t TransitionBuilder) GoTo(target *BuilderState) *BuilderState {
	if t.from.id == FailedState {
		tracer().Errorf("ignoring transition out of failed state")
		return target
	}
	st := &t.from.b.states[t.from.id]
	st.transitions = append(st.transitions, transition{constraint: t.constraint, target: target.id})
	return target
}

// Build returns the finished automaton. The builder may not be used afterwards.
func (b *Builder) Build() *Automaton {
	a := &Automaton{states: b.states}
	b.states = nil
	return a
}
