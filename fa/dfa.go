package fa

import (
	"github.com/npillmayer/lexlr/lr/sparse"
)

// DFA is a deterministic finite automaton. For every pair (state, class) there
// is at most one transition; a missing transition means the input is rejected.
// Like NFAs, DFAs are immutable.
type DFA[I any, O comparable] struct {
	span
	classify func(I) Class
	delta    *sparse.IntMatrix // states x classes
	accept   map[int]O
}

// NewDFA creates a DFA with the given number of states and input classes,
// and without any transitions.
func NewDFA[I any, O comparable](states, classes int, classify func(I) Class) *DFA[I, O] {
	sp := makeSpan("NewDFA", states, classes)
	return &DFA[I, O]{
		span:     sp,
		classify: classify,
		delta:    sparse.NewIntMatrix(states, classes, sparse.DefaultNullValue),
		accept:   map[int]O{},
	}
}

// Classify maps a raw input symbol to its input class.
func (dfa *DFA[I, O]) Classify(input I) Class {
	return dfa.classify(input)
}

// WithTransition returns a new DFA with a transition from → to on input class c.
// An existing transition for (from, c) is replaced.
func (dfa *DFA[I, O]) WithTransition(from int, c Class, to int) *DFA[I, O] {
	dfa.validateState("WithTransition", from)
	dfa.validateState("WithTransition", to)
	dfa.validateClass("WithTransition", c)
	d := *dfa
	d.delta = dfa.delta.Copy()
	d.delta.Set(from, int(c), int32(to))
	return &d
}

// WithAcceptingState returns a new DFA where state s is accepting, with output out.
func (dfa *DFA[I, O]) WithAcceptingState(s int, out O) *DFA[I, O] {
	dfa.validateState("WithAcceptingState", s)
	d := *dfa
	d.accept = copyOutputs(dfa.accept)
	d.accept[s] = out
	return &d
}

// Output returns the output of state s, if s is accepting.
func (dfa *DFA[I, O]) Output(s int) (O, bool) {
	dfa.validateState("Output", s)
	out, ok := dfa.accept[s]
	return out, ok
}

// Accepting is a predicate: is s an accepting state?
func (dfa *DFA[I, O]) Accepting(s int) bool {
	_, ok := dfa.Output(s)
	return ok
}

// Step returns the successor of state s for input class c. If there is no
// transition, or c is not a valid class, Step returns false.
func (dfa *DFA[I, O]) Step(s int, c Class) (int, bool) {
	dfa.validateState("Step", s)
	if !dfa.validClass(c) {
		return 0, false
	}
	to := dfa.delta.Value(s, int(c))
	if to == dfa.delta.NullValue() {
		return 0, false
	}
	return int(to), true
}

// Transition returns the successor of state s for a raw input symbol.
func (dfa *DFA[I, O]) Transition(s int, input I) (int, bool) {
	return dfa.Step(s, dfa.classify(input))
}

// Graph returns the transition graph of the DFA, suitable as input for
// ReachableSets.
func (dfa *DFA[I, O]) Graph() [][]int {
	g := make([][]int, dfa.states)
	seen := make([]map[int]bool, dfa.states)
	dfa.delta.Each(func(i, j int, to, _ int32) {
		if seen[i] == nil {
			seen[i] = map[int]bool{}
		}
		if !seen[i][int(to)] {
			seen[i][int(to)] = true
			g[i] = append(g[i], int(to))
		}
	})
	return g
}

// Reachable returns all states reachable from the start state, in ascending order.
func (dfa *DFA[I, O]) Reachable() []int {
	return ReachableSets(dfa.Graph())[0]
}

// DeadStates returns all states from which no accepting state is reachable.
// A lexer entering a dead state will never produce a longer match.
func (dfa *DFA[I, O]) DeadStates() []int {
	var dead []int
	for s, reach := range ReachableSets(dfa.Graph()) {
		alive := false
		for _, r := range reach {
			if _, ok := dfa.accept[r]; ok {
				alive = true
				break
			}
		}
		if !alive {
			dead = append(dead, s)
		}
	}
	return dead
}
