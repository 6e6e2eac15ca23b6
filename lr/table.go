package lr

import (
	"fmt"

	"github.com/npillmayer/lexlr"
	"github.com/npillmayer/lexlr/lr/sparse"
	"github.com/pkg/errors"
)

// ActionKind is the kind of a parser action.
type ActionKind int8

// Parser actions.
const (
	ErrorAction ActionKind = iota
	ShiftAction
	ReduceAction
)

// Action is an entry of an ACTION table.
type Action struct {
	Kind       ActionKind
	State      int // target state for shift actions
	Production int // production to reduce for reduce actions
}

// Shift creates a shift action.
func Shift(state int) Action {
	return Action{Kind: ShiftAction, State: state}
}

// Reduce creates a reduce action.
func Reduce(production int) Action {
	return Action{Kind: ReduceAction, Production: production}
}

func (a Action) String() string {
	switch a.Kind {
	case ShiftAction:
		return fmt.Sprintf("<shift %d>", a.State)
	case ReduceAction:
		return fmt.Sprintf("<reduce %d>", a.Production)
	}
	return "<error>"
}

// ActionTable maps a parser state and a lookahead token type (or EOF) to an action.
type ActionTable interface {
	Action(state int, la lexlr.TokType) Action
}

// GotoTable maps a parser state and a non-terminal to a successor state.
type GotoTable interface {
	Goto(state int, nt NonTerminal) (int, bool)
}

// ConflictError is reported for table entries with more than one action.
type ConflictError struct {
	State    int
	Symbol   Symbol
	Existing interface{} // existing action or goto state
	New      interface{}
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("conflict in state %d for %v: %v vs. %v", e.State, e.Symbol, e.Existing, e.New)
}

// --- Tables ----------------------------------------------------------------

// Tables holds an ACTION table and a GOTO table, both stored as sparse
// matrices. Tables implements ActionTable and GotoTable.
//
// Action entries are encoded as integers: a shift to state s is stored as
// s+1, a reduction of production p as -(p+1). Goto entries store the target
// state.
type Tables struct {
	actions *sparse.IntMatrix
	mincol  lexlr.TokType // lowest token type => offset for access
	gotos   *sparse.IntMatrix
	ntcols  map[NonTerminal]int
	ntorder []NonTerminal
}

var _ ActionTable = (*Tables)(nil)
var _ GotoTable = (*Tables)(nil)

func newTables(states int, terminals []lexlr.TokType, nonterminals []NonTerminal) *Tables {
	mintok, maxtok := EOF, EOF
	for _, t := range terminals {
		if t < mintok {
			mintok = t
		}
		if t > maxtok {
			maxtok = t
		}
	}
	extent := int(maxtok-mintok) + 1
	tracer().Infof("ACTION table of size %d x (%d-%d=%d)", states, maxtok, mintok, extent)
	t := &Tables{
		actions: sparse.NewIntMatrix(states, extent, sparse.DefaultNullValue),
		mincol:  mintok,
		ntcols:  make(map[NonTerminal]int, len(nonterminals)),
	}
	for _, nt := range nonterminals {
		if _, ok := t.ntcols[nt]; !ok {
			t.ntcols[nt] = len(t.ntorder)
			t.ntorder = append(t.ntorder, nt)
		}
	}
	t.gotos = sparse.NewIntMatrix(states, max(len(t.ntorder), 1), sparse.DefaultNullValue)
	return t
}

// States returns the number of parser states.
func (t *Tables) States() int {
	return t.actions.M()
}

// Action returns the action for state and lookahead la. Token types unknown
// to the table yield an error action.
func (t *Tables) Action(state int, la lexlr.TokType) Action {
	j := int(la - t.mincol)
	if j < 0 || j >= t.actions.N() {
		return Action{}
	}
	return decodeAction(t.actions.Value(state, j), t.actions.NullValue())
}

// Goto returns the successor of state for non-terminal nt.
func (t *Tables) Goto(state int, nt NonTerminal) (int, bool) {
	j, ok := t.ntcols[nt]
	if !ok {
		return 0, false
	}
	v := t.gotos.Value(state, j)
	if v == t.gotos.NullValue() {
		return 0, false
	}
	return int(v), true
}

func (t *Tables) setAction(state int, la lexlr.TokType, a Action) error {
	j := int(la - t.mincol)
	if j < 0 || j >= t.actions.N() {
		return errors.Errorf("token type %d out of table range", la)
	}
	v := encodeAction(a)
	if old := t.actions.Value(state, j); old != t.actions.NullValue() {
		if old == v {
			return nil
		}
		return &ConflictError{State: state, Symbol: T(la),
			Existing: decodeAction(old, t.actions.NullValue()), New: a}
	}
	t.actions.Set(state, j, v)
	return nil
}

func (t *Tables) setGoto(state int, nt NonTerminal, to int) error {
	j, ok := t.ntcols[nt]
	if !ok {
		return errors.Errorf("non-terminal %s unknown to GOTO table", nt)
	}
	if old := t.gotos.Value(state, j); old != t.gotos.NullValue() {
		if int(old) == to {
			return nil
		}
		return &ConflictError{State: state, Symbol: N(nt), Existing: int(old), New: to}
	}
	t.gotos.Set(state, j, int32(to))
	return nil
}

func encodeAction(a Action) int32 {
	switch a.Kind {
	case ShiftAction:
		return int32(a.State + 1)
	case ReduceAction:
		return int32(-(a.Production + 1))
	}
	panic("cannot store error action in ACTION table")
}

func decodeAction(v, null int32) Action {
	switch {
	case v == null:
		return Action{}
	case v > 0:
		return Shift(int(v - 1))
	}
	return Reduce(int(-v - 1))
}

// --- Table builder ---------------------------------------------------------

// TableBuilder creates parse tables entry by entry, e.g., for hand-made
// tables in tests.
type TableBuilder struct {
	t *Tables
}

// NewTableBuilder creates a builder for tables with the given number of
// states, for the given token types (EOF is always included) and
// non-terminals.
func NewTableBuilder(states int, terminals []lexlr.TokType, nonterminals []NonTerminal) *TableBuilder {
	return &TableBuilder{t: newTables(states, terminals, nonterminals)}
}

// Shift sets a shift action. Setting a different action for an entry
// already set returns a *ConflictError.
func (tb *TableBuilder) Shift(state int, la lexlr.TokType, to int) error {
	return tb.t.setAction(state, la, Shift(to))
}

// Reduce sets a reduce action.
func (tb *TableBuilder) Reduce(state int, la lexlr.TokType, production int) error {
	return tb.t.setAction(state, la, Reduce(production))
}

// Goto sets a GOTO entry.
func (tb *TableBuilder) Goto(state int, nt NonTerminal, to int) error {
	return tb.t.setGoto(state, nt, to)
}

// Tables returns the tables built.
func (tb *TableBuilder) Tables() *Tables {
	return tb.t
}
