/*
Package fa implements finite automata for lexical analysis.

Automata do not work on raw input symbols directly, but on input classes.
A client-supplied classifier maps every raw symbol to one of a finite number
of classes (e.g., "digit", "letter", "blank"). Transition tables are indexed
by (state, class), which keeps them small even for large alphabets.
States are plain integers, 0 being the start state of every automaton.

Building Automata

Automata are immutable values. Builder methods return a new automaton and
never modify the receiver, therefore automata may be shared between
goroutines without locking.

    nfa := fa.NewNFA[rune, Tok](5, 2, classify).
        WithSingleTransition(0, 1, Letter).
        WithEpsilonTransition(1, 2).
        WithAcceptingState(2, Ident)

Referencing a state or class out of range panics with an *InvalidStateError
(*InvalidClassError, respectively). Use Catch to turn this into an error.

Subset Construction

NFAToDFA converts an NFA to an equivalent DFA. If a DFA state merges NFA
states with different outputs, conversion fails with an *AmbiguityError,
unless clients provide a precedence ranking, i.e. an ordered list of output
groups, highest priority first:

    dfa, err := fa.NFAToDFA(nfa, []Tok{Keyword}, []Tok{Ident})

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package fa

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'lexlr.fa'.
func tracer() tracing.Trace {
	return tracing.Select("lexlr.fa")
}
