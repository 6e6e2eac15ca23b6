package lr

import (
	"fmt"
	"strings"
	"text/scanner"

	"github.com/cnf/structhash"
	"github.com/npillmayer/lexlr"
	"github.com/pkg/errors"
)

// EOF is the token type of the end-of-input lookahead. It is identical to
// text/scanner.EOF.
const EOF lexlr.TokType = scanner.EOF

// NonTerminal is the name of a non-terminal grammar symbol.
type NonTerminal string

// Symbol is a grammar symbol, either a terminal or a non-terminal.
// Symbols are comparable.
type Symbol struct {
	NonTerminal NonTerminal   // valid for non-terminals
	Token       lexlr.TokType // valid for terminals
	Terminal    bool
}

// N creates a non-terminal symbol.
func N(nt NonTerminal) Symbol {
	return Symbol{NonTerminal: nt}
}

// T creates a terminal symbol.
func T(tok lexlr.TokType) Symbol {
	return Symbol{Token: tok, Terminal: true}
}

// IsTerminal is a predicate.
func (s Symbol) IsTerminal() bool {
	return s.Terminal
}

func (s Symbol) String() string {
	if s.Terminal {
		if s.Token == EOF {
			return "#eof"
		}
		return fmt.Sprintf("#%d", s.Token)
	}
	return string(s.NonTerminal)
}

func (s Symbol) key() string {
	if s.Terminal {
		return fmt.Sprintf("T%d", s.Token)
	}
	return "N" + string(s.NonTerminal)
}

// --- Rules -----------------------------------------------------------------

// Rule is the structural part of a grammar production: Source ::= RHS.
type Rule struct {
	Source NonTerminal
	RHS    []Symbol
}

// Len returns the length of the right hand side.
func (r Rule) Len() int {
	return len(r.RHS)
}

// IsEpsilon is a predicate: does r have an empty right hand side?
func (r Rule) IsEpsilon() bool {
	return len(r.RHS) == 0
}

// Equals compares two rules structurally.
func (r Rule) Equals(other Rule) bool {
	if r.Source != other.Source || len(r.RHS) != len(other.RHS) {
		return false
	}
	for i, sym := range r.RHS {
		if sym != other.RHS[i] {
			return false
		}
	}
	return true
}

// Less orders rules by source, then lexicographically by right hand side,
// shorter rules first.
func (r Rule) Less(other Rule) bool {
	if r.Source != other.Source {
		return r.Source < other.Source
	}
	for i := 0; i < len(r.RHS) && i < len(other.RHS); i++ {
		if a, b := r.RHS[i].key(), other.RHS[i].key(); a != b {
			return a < b
		}
	}
	return len(r.RHS) < len(other.RHS)
}

type ruleSignature struct {
	Source string
	RHS    []string
}

// Signature returns a structural hash of the rule. Rules are equal iff their
// signatures are.
func (r Rule) Signature() string {
	sig := ruleSignature{Source: string(r.Source), RHS: make([]string, len(r.RHS))}
	for i, sym := range r.RHS {
		sig.RHS[i] = sym.key()
	}
	h, err := structhash.Hash(sig, 1)
	if err != nil {
		panic(errors.Wrapf(err, "cannot hash rule %v", r))
	}
	return h
}

func (r Rule) String() string {
	syms := make([]string, len(r.RHS))
	for i, sym := range r.RHS {
		syms[i] = sym.String()
	}
	return fmt.Sprintf("[%s] ::= [%s]", r.Source, strings.Join(syms, " "))
}

// --- Productions -----------------------------------------------------------

// Builder computes the result of a reduction from the results of the
// right hand side symbols, in left-to-right order.
type Builder[R any] func(children []R) (R, error)

// Production is a rule together with a builder for its results.
type Production[R any] struct {
	Rule
	Build Builder[R]
}

// ArityError is returned by BuildResult if the number of children does not
// match the length of a rule.
type ArityError struct {
	Rule     Rule
	Children int
}

func (e *ArityError) Error() string {
	return fmt.Sprintf("rule %v expects %d children, got %d", e.Rule, e.Rule.Len(), e.Children)
}

// BuildResult calls the production's builder. It fails with an *ArityError
// without calling the builder if len(children) differs from the length of the
// production's rule.
func (p Production[R]) BuildResult(children []R) (R, error) {
	if len(children) != len(p.RHS) {
		var none R
		return none, &ArityError{Rule: p.Rule, Children: len(children)}
	}
	if p.Build == nil {
		var none R
		return none, errors.Errorf("production %v has no builder", p.Rule)
	}
	return p.Build(children)
}
