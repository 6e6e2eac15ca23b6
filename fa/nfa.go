package fa

import (
	"github.com/emirpasic/gods/sets/treeset"
)

// NFA is a nondeterministic finite automaton with epsilon transitions.
// I is the type of raw input symbols, O is the type of outputs for accepting
// states. NFAs are immutable: all builder methods return a new NFA.
//
// Edge sets are shared between an NFA and the NFAs derived from it. They are
// never modified after construction.
type NFA[I any, O comparable] struct {
	span
	classify func(I) Class
	delta    []*treeset.Set // index s*classes+c; nil is the empty set
	epsilon  []*treeset.Set // per state; nil is the empty set
	accept   map[int]O
}

// NewNFA creates an NFA with the given number of states and input classes,
// and without any transitions. classify maps raw input symbols to input classes.
func NewNFA[I any, O comparable](states, classes int, classify func(I) Class) *NFA[I, O] {
	return &NFA[I, O]{
		span:     makeSpan("NewNFA", states, classes),
		classify: classify,
		delta:    make([]*treeset.Set, states*classes),
		epsilon:  make([]*treeset.Set, states),
		accept:   map[int]O{},
	}
}

// Classify maps a raw input symbol to its input class.
func (nfa *NFA[I, O]) Classify(input I) Class {
	return nfa.classify(input)
}

// WithSingleTransition returns a new NFA with an additional transition
// from → to on input class c.
func (nfa *NFA[I, O]) WithSingleTransition(from, to int, c Class) *NFA[I, O] {
	nfa.validateState("WithSingleTransition", from)
	nfa.validateState("WithSingleTransition", to)
	nfa.validateClass("WithSingleTransition", c)
	n := *nfa
	n.delta = make([]*treeset.Set, len(nfa.delta))
	copy(n.delta, nfa.delta)
	inx := from*nfa.classes + int(c)
	n.delta[inx] = extended(nfa.delta[inx], to)
	return &n
}

// WithEpsilonTransition returns a new NFA with an additional epsilon transition
// from → to.
func (nfa *NFA[I, O]) WithEpsilonTransition(from, to int) *NFA[I, O] {
	nfa.validateState("WithEpsilonTransition", from)
	nfa.validateState("WithEpsilonTransition", to)
	n := *nfa
	n.epsilon = make([]*treeset.Set, len(nfa.epsilon))
	copy(n.epsilon, nfa.epsilon)
	n.epsilon[from] = extended(nfa.epsilon[from], to)
	return &n
}

// WithAcceptingState returns a new NFA where state s is accepting, with output out.
// If s has been accepting before, its output is replaced.
func (nfa *NFA[I, O]) WithAcceptingState(s int, out O) *NFA[I, O] {
	nfa.validateState("WithAcceptingState", s)
	n := *nfa
	n.accept = copyOutputs(nfa.accept)
	n.accept[s] = out
	return &n
}

// Output returns the output of state s, if s is accepting.
func (nfa *NFA[I, O]) Output(s int) (O, bool) {
	nfa.validateState("Output", s)
	out, ok := nfa.accept[s]
	return out, ok
}

// Accepting is a predicate: is s an accepting state?
func (nfa *NFA[I, O]) Accepting(s int) bool {
	_, ok := nfa.Output(s)
	return ok
}

// Targets returns the states reachable from s with input class c, in
// ascending order. Epsilon transitions are not followed.
func (nfa *NFA[I, O]) Targets(s int, c Class) []int {
	nfa.validateState("Targets", s)
	nfa.validateClass("Targets", c)
	return ints(nfa.delta[s*nfa.classes+int(c)])
}

// EpsilonTargets returns the states directly reachable from s by an epsilon
// transition, in ascending order.
func (nfa *NFA[I, O]) EpsilonTargets(s int) []int {
	nfa.validateState("EpsilonTargets", s)
	return ints(nfa.epsilon[s])
}

// EpsilonGraph returns the graph of epsilon transitions, suitable as input for
// ReachableSets.
func (nfa *NFA[I, O]) EpsilonGraph() [][]int {
	g := make([][]int, nfa.states)
	for s := range g {
		g[s] = ints(nfa.epsilon[s])
	}
	return g
}

// Graph returns the graph of all transitions, epsilon transitions included.
func (nfa *NFA[I, O]) Graph() [][]int {
	g := make([][]int, nfa.states)
	for s := range g {
		set := treeset.NewWithIntComparator()
		addAll(set, nfa.epsilon[s])
		for c := 0; c < nfa.classes; c++ {
			addAll(set, nfa.delta[s*nfa.classes+c])
		}
		g[s] = ints(set)
	}
	return g
}

// --- Set helpers -----------------------------------------------------------

// extended returns a new set containing the elements of set plus s.
// set may be nil.
func extended(set *treeset.Set, s int) *treeset.Set {
	n := treeset.NewWithIntComparator()
	addAll(n, set)
	n.Add(s)
	return n
}

func addAll(dst, src *treeset.Set) {
	if src != nil {
		dst.Add(src.Values()...)
	}
}

// ints returns the elements of an int-set in ascending order.
func ints(set *treeset.Set) []int {
	if set == nil {
		return []int{}
	}
	r := make([]int, 0, set.Size())
	for _, v := range set.Values() {
		r = append(r, v.(int))
	}
	return r
}
