package fa

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
)

// Dump writes the transition table of a DFA to w. Rows are states, columns are
// input classes. Accepting states are marked with their output.
func (dfa *DFA[I, O]) Dump(w io.Writer) {
	table := tablewriter.NewWriter(w)
	table.SetHeader(classHeader(dfa.classes))
	for s := 0; s < dfa.states; s++ {
		row := []string{stateLabel(s, dfa.accept)}
		for c := 0; c < dfa.classes; c++ {
			if to, ok := dfa.Step(s, Class(c)); ok {
				row = append(row, strconv.Itoa(to))
			} else {
				row = append(row, "")
			}
		}
		table.Append(row)
	}
	table.Render()
}

// Dump writes the transition table of an NFA to w. The last column lists the
// epsilon transitions.
func (nfa *NFA[I, O]) Dump(w io.Writer) {
	table := tablewriter.NewWriter(w)
	table.SetHeader(append(classHeader(nfa.classes), "ε"))
	for s := 0; s < nfa.states; s++ {
		row := []string{stateLabel(s, nfa.accept)}
		for c := 0; c < nfa.classes; c++ {
			row = append(row, setLabel(ints(nfa.delta[s*nfa.classes+c])))
		}
		row = append(row, setLabel(ints(nfa.epsilon[s])))
		table.Append(row)
	}
	table.Render()
}

func classHeader(classes int) []string {
	h := []string{"state"}
	for c := 0; c < classes; c++ {
		h = append(h, fmt.Sprintf("#%d", c))
	}
	return h
}

func stateLabel[O comparable](s int, accept map[int]O) string {
	if out, ok := accept[s]; ok {
		return fmt.Sprintf("%d [%v]", s, out)
	}
	return strconv.Itoa(s)
}

func setLabel(states []int) string {
	if len(states) == 0 {
		return ""
	}
	s := make([]string, len(states))
	for i, t := range states {
		s[i] = strconv.Itoa(t)
	}
	return "{" + strings.Join(s, ",") + "}"
}
