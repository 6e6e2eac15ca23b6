package fa

import (
	"fmt"
	"slices"

	"github.com/cnf/structhash"
	"github.com/emirpasic/gods/sets/treeset"
	"github.com/npillmayer/lexlr/lr/sparse"
	"github.com/pkg/errors"
)

// AmbiguityError is returned by NFAToDFA if a DFA state merges accepting NFA
// states with different outputs, and no precedence ranking resolves the conflict.
type AmbiguityError struct {
	DFAState  int           // the DFA state being constructed
	NFAStates []int         // the NFA states merged into DFAState
	Outputs   []interface{} // the conflicting outputs
}

func (e *AmbiguityError) Error() string {
	return fmt.Sprintf("ambiguous accepting state %d (NFA states %v): conflicting outputs %v",
		e.DFAState, e.NFAStates, e.Outputs)
}

// NFAToDFA converts an NFA to a DFA using the subset construction.
//
// The start state of the DFA is the epsilon-closure of NFA state 0. DFA states
// are numbered in the order of their discovery, which makes the conversion
// deterministic. A DFA state is accepting if any of its NFA states is
// accepting. If NFA states with different outputs end up in the same DFA state,
// ranking is consulted: it is an ordered list of output groups, highest priority
// first. The output of the first group containing any of the candidates wins.
// If there is no ranking, or more than one candidate falls into the winning
// group, or no group contains any candidate, NFAToDFA returns an *AmbiguityError.
func NFAToDFA[I any, O comparable](nfa *NFA[I, O], ranking ...[]O) (*DFA[I, O], error) {
	tracer().Debugf("=== NFA → DFA ==========================================")
	closures := ReachableSets(nfa.EpsilonGraph())
	start := treeset.NewWithIntComparator()
	addClosures(start, closures, 0)
	sets := [][]int{ints(start)}
	ids := map[string]int{}
	key, err := stateSetKey(sets[0])
	if err != nil {
		return nil, err
	}
	ids[key] = 0
	var edges []dfaEdge
	for k := 0; k < len(sets); k++ { // sets grows while we iterate
		for c := 0; c < nfa.classes; c++ {
			moved := treeset.NewWithIntComparator()
			for _, s := range sets[k] {
				for _, t := range ints(nfa.delta[s*nfa.classes+c]) {
					addClosures(moved, closures, t)
				}
			}
			if moved.Empty() {
				continue
			}
			succ := ints(moved)
			if key, err = stateSetKey(succ); err != nil {
				return nil, err
			}
			id, ok := ids[key]
			if !ok {
				id = len(sets)
				sets = append(sets, succ)
				ids[key] = id
				tracer().Debugf("new DFA state %d = %v", id, succ)
			}
			edges = append(edges, dfaEdge{from: k, class: c, to: id})
		}
	}
	dfa := &DFA[I, O]{
		span:     span{states: len(sets), classes: nfa.classes},
		classify: nfa.classify,
		delta:    sparse.NewIntMatrix(len(sets), nfa.classes, sparse.DefaultNullValue),
		accept:   map[int]O{},
	}
	for _, e := range edges {
		dfa.delta.Set(e.from, e.class, int32(e.to))
	}
	for id, set := range sets {
		out, accepting, err := resolveOutput(nfa, id, set, ranking)
		if err != nil {
			tracer().Errorf("%v", err)
			return nil, err
		}
		if accepting {
			dfa.accept[id] = out
		}
	}
	tracer().Infof("converted NFA of %d states to DFA of %d states", nfa.states, dfa.states)
	return dfa, nil
}

type dfaEdge struct {
	from, class, to int
}

func addClosures(set *treeset.Set, closures [][]int, s int) {
	for _, t := range closures[s] {
		set.Add(t)
	}
}

// stateSet is hashed to find DFA states already constructed.
type stateSet struct {
	States []int
}

func stateSetKey(states []int) (string, error) {
	h, err := structhash.Hash(stateSet{States: states}, 1)
	if err != nil {
		return "", errors.Wrapf(err, "cannot hash NFA state set %v", states)
	}
	return h, nil
}

// resolveOutput finds the output of a DFA state, given its NFA states.
func resolveOutput[I any, O comparable](nfa *NFA[I, O], id int, set []int, ranking [][]O) (O, bool, error) {
	var candidates []O
	for _, s := range set {
		if out, ok := nfa.accept[s]; ok && !slices.Contains(candidates, out) {
			candidates = append(candidates, out)
		}
	}
	var none O
	switch len(candidates) {
	case 0:
		return none, false, nil
	case 1:
		return candidates[0], true, nil
	}
	ambiguous := &AmbiguityError{DFAState: id, NFAStates: set}
	for _, c := range candidates {
		ambiguous.Outputs = append(ambiguous.Outputs, c)
	}
	for _, group := range ranking {
		var winners []O
		for _, c := range candidates {
			if slices.Contains(group, c) {
				winners = append(winners, c)
			}
		}
		if len(winners) == 1 {
			tracer().Debugf("DFA state %d: %v wins over %v", id, winners[0], candidates)
			return winners[0], true, nil
		} else if len(winners) > 1 {
			ambiguous.Outputs = ambiguous.Outputs[:0]
			for _, w := range winners {
				ambiguous.Outputs = append(ambiguous.Outputs, w)
			}
			return none, false, ambiguous
		}
	}
	return none, false, ambiguous
}
