package fa

import (
	"fmt"

	"github.com/pkg/errors"
)

// Class is an input class. Classes of an automaton are numbered 0…n-1.
type Class int

// NoClass may be returned by classifiers for input symbols outside of the
// alphabet. Automata never have a transition for it.
const NoClass Class = -1

// StateMachine is the contract shared by all automata: integer-indexed states,
// a validity predicate and an optional output for accepting states.
type StateMachine[O any] interface {
	Size() int              // states are numbered 0…Size()-1
	ValidState(s int) bool  // is s a state of this machine?
	Output(s int) (O, bool) // output of accepting state s; panics for invalid s
	Accepting(s int) bool   // is s an accepting state?
}

var _ StateMachine[int] = (*NFA[rune, int])(nil)
var _ StateMachine[int] = (*DFA[rune, int])(nil)

// --- Errors ----------------------------------------------------------------

// InvalidStateError is raised (as a panic) whenever an automaton is asked to
// handle a state outside of its state range.
type InvalidStateError struct {
	Op    string // operation which found the invalid state
	State int
	Size  int // number of states of the automaton
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("%s: invalid state %d (automaton has %d states)", e.Op, e.State, e.Size)
}

// InvalidClassError is raised (as a panic) whenever an automaton is asked to
// handle an input class outside of its class range.
type InvalidClassError struct {
	Op      string
	Class   Class
	Classes int
}

func (e *InvalidClassError) Error() string {
	return fmt.Sprintf("%s: invalid input class %d (automaton has %d classes)", e.Op, e.Class, e.Classes)
}

// Catch calls f and returns an *InvalidStateError or *InvalidClassError raised
// by f as an error. Other panics are passed on.
//
//     err := fa.Catch(func() {
//         nfa = nfa.WithEpsilonTransition(0, 99)
//     })
//
func Catch(f func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			switch e := r.(type) {
			case *InvalidStateError:
				err = e
			case *InvalidClassError:
				err = e
			default:
				panic(r)
			}
		}
	}()
	f()
	return nil
}

// --- Helpers shared by the automata ----------------------------------------

// span describes the dimensions of an automaton.
type span struct {
	states  int
	classes int
}

func makeSpan(op string, states, classes int) span {
	if states < 1 {
		panic(&InvalidStateError{Op: op, State: states - 1, Size: states})
	}
	if classes < 0 {
		panic(errors.Errorf("%s: negative number of input classes: %d", op, classes))
	}
	return span{states: states, classes: classes}
}

// ValidState is a predicate: is s a state of this machine?
func (sp span) ValidState(s int) bool {
	return s >= 0 && s < sp.states
}

// Size returns the number of states.
func (sp span) Size() int {
	return sp.states
}

// Classes returns the number of input classes.
func (sp span) Classes() int {
	return sp.classes
}

func (sp span) validateState(op string, s int) {
	if !sp.ValidState(s) {
		panic(&InvalidStateError{Op: op, State: s, Size: sp.states})
	}
}

func (sp span) validateClass(op string, c Class) {
	if c < 0 || int(c) >= sp.classes {
		panic(&InvalidClassError{Op: op, Class: c, Classes: sp.classes})
	}
}

func (sp span) validClass(c Class) bool {
	return c >= 0 && int(c) < sp.classes
}

// copyOutputs returns a copy of an output map, with room for one more entry.
func copyOutputs[O comparable](m map[int]O) map[int]O {
	c := make(map[int]O, len(m)+1)
	for k, v := range m {
		c[k] = v
	}
	return c
}
