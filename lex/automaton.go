package lex

import (
	"github.com/npillmayer/lexlr/fa"
)

// Automaton is what a lexer needs from a deterministic automaton:
// a transition function on raw input symbols, and for accepting states an output
// function applied to the lexer's current context.
type Automaton[I, D, C any] interface {
	Transition(state int, in I) (int, bool)
	Accept(state int, ctx C) (D, bool)
}

// Actions adapts a DFA to the Automaton interface. The output of an accepting
// state is handed to action, together with the lexer context at the time the
// state has been reached, to compute the token data.
//
//     auto := lex.Actions(dfa, func(t Tok, ctx charlex.Context) Tok { return t })
//
func Actions[I any, O comparable, D, C any](dfa *fa.DFA[I, O], action func(O, C) D) Automaton[I, D, C] {
	return dfaActions[I, O, D, C]{dfa: dfa, action: action}
}

type dfaActions[I any, O comparable, D, C any] struct {
	dfa    *fa.DFA[I, O]
	action func(O, C) D
}

func (a dfaActions[I, O, D, C]) Transition(state int, in I) (int, bool) {
	return a.dfa.Transition(state, in)
}

func (a dfaActions[I, O, D, C]) Accept(state int, ctx C) (D, bool) {
	out, ok := a.dfa.Output(state)
	if !ok {
		var none D
		return none, false
	}
	return a.action(out, ctx), true
}
