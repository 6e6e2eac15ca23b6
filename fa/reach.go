package fa

import (
	"github.com/emirpasic/gods/sets/treeset"
)

// ReachableSets computes, for every state s of a graph, the set of states
// reachable from s via zero or more edges. graph[s] lists the direct successors
// of s. Every result set contains s itself and is sorted in ascending order.
// Cycles are fine.
//
// Edges pointing outside of the graph panic with an *InvalidStateError.
func ReachableSets(graph [][]int) [][]int {
	for _, edges := range graph {
		for _, t := range edges {
			if t < 0 || t >= len(graph) {
				panic(&InvalidStateError{Op: "ReachableSets", State: t, Size: len(graph)})
			}
		}
	}
	reach := make([][]int, len(graph))
	for s := range graph {
		reach[s] = reachableFrom(graph, s)
	}
	return reach
}

// reachableFrom walks the graph from s, using a worklist.
func reachableFrom(graph [][]int, s int) []int {
	visited := treeset.NewWithIntComparator(s)
	worklist := []int{s}
	for len(worklist) > 0 {
		n := len(worklist) - 1
		u := worklist[n]
		worklist = worklist[:n]
		for _, t := range graph[u] {
			if !visited.Contains(t) {
				visited.Add(t)
				worklist = append(worklist, t)
			}
		}
	}
	return ints(visited)
}

// EpsilonClosure returns all states reachable from s by epsilon transitions only,
// s included.
func EpsilonClosure[I any, O comparable](nfa *NFA[I, O], s int) []int {
	nfa.validateState("EpsilonClosure", s)
	return reachableFrom(nfa.EpsilonGraph(), s)
}
