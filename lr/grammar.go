package lr

import (
	"fmt"
	"io"
	"sort"

	"github.com/npillmayer/lexlr"
	"github.com/pkg/errors"
)

// Grammar is a context-free grammar with productions building results of
// type R. L and D are the lexeme and data types of the input tokens; they are
// needed for the terminal-result constructor, which builds a result for every
// terminal shifted by a parser.
//
// Grammars are immutable.
type Grammar[L, D, R any] struct {
	Name        string
	start       NonTerminal
	productions []Production[R]
	sigs        map[string]int // signature -> index of production
	termResult  func(L, D) (R, error)
	tokenNames  map[lexlr.TokType]string
	augmented   bool
}

// NewGrammar creates a grammar without productions.
func NewGrammar[L, D, R any](name string, start NonTerminal, termResult func(L, D) (R, error)) *Grammar[L, D, R] {
	return &Grammar[L, D, R]{
		Name:       name,
		start:      start,
		sigs:       map[string]int{},
		termResult: termResult,
		tokenNames: map[lexlr.TokType]string{},
	}
}

// WithProduction returns a new grammar with an additional production.
// Adding a production structurally equal to an existing one is an error.
func (g *Grammar[L, D, R]) WithProduction(p Production[R]) (*Grammar[L, D, R], error) {
	sig := p.Signature()
	if inx, dup := g.sigs[sig]; dup {
		return g, errors.Errorf("grammar %s: duplicate production %v (see #%d)", g.Name, p.Rule, inx)
	}
	ng := *g
	ng.productions = make([]Production[R], len(g.productions), len(g.productions)+1)
	copy(ng.productions, g.productions)
	p.RHS = append([]Symbol(nil), p.RHS...)
	ng.productions = append(ng.productions, p)
	ng.sigs = make(map[string]int, len(g.sigs)+1)
	for k, v := range g.sigs {
		ng.sigs[k] = v
	}
	ng.sigs[sig] = len(ng.productions) - 1
	return &ng, nil
}

// WithTokenName returns a new grammar which displays terminal tok as name.
func (g *Grammar[L, D, R]) WithTokenName(tok lexlr.TokType, name string) *Grammar[L, D, R] {
	ng := *g
	ng.tokenNames = make(map[lexlr.TokType]string, len(g.tokenNames)+1)
	for k, v := range g.tokenNames {
		ng.tokenNames[k] = v
	}
	ng.tokenNames[tok] = name
	return &ng
}

// Start returns the start symbol.
func (g *Grammar[L, D, R]) Start() NonTerminal {
	return g.start
}

// Size returns the number of productions.
func (g *Grammar[L, D, R]) Size() int {
	return len(g.productions)
}

// Production returns production #i.
func (g *Grammar[L, D, R]) Production(i int) Production[R] {
	if i < 0 || i >= len(g.productions) {
		panic(fmt.Sprintf("grammar %s has no production #%d", g.Name, i))
	}
	return g.productions[i]
}

// Rules returns the rules of all productions, in order.
func (g *Grammar[L, D, R]) Rules() []Rule {
	rules := make([]Rule, len(g.productions))
	for i, p := range g.productions {
		rules[i] = p.Rule
	}
	return rules
}

// Find returns the index of the production structurally equal to rule.
func (g *Grammar[L, D, R]) Find(rule Rule) (int, bool) {
	inx, ok := g.sigs[rule.Signature()]
	return inx, ok
}

// TerminalResult builds the result for a shifted terminal.
func (g *Grammar[L, D, R]) TerminalResult(lexeme L, data D) (R, error) {
	if g.termResult == nil {
		var none R
		return none, errors.Errorf("grammar %s has no terminal result constructor", g.Name)
	}
	return g.termResult(lexeme, data)
}

// TokenName returns a display name for a terminal.
func (g *Grammar[L, D, R]) TokenName(tok lexlr.TokType) string {
	if name, ok := g.tokenNames[tok]; ok {
		return name
	}
	return T(tok).String()
}

// SymbolName returns a display name for a grammar symbol.
func (g *Grammar[L, D, R]) SymbolName(sym Symbol) string {
	if sym.Terminal {
		return g.TokenName(sym.Token)
	}
	return string(sym.NonTerminal)
}

// NonTerminals returns all non-terminals, in order of first appearance.
func (g *Grammar[L, D, R]) NonTerminals() []NonTerminal {
	seen := map[NonTerminal]bool{}
	var nts []NonTerminal
	add := func(nt NonTerminal) {
		if !seen[nt] {
			seen[nt] = true
			nts = append(nts, nt)
		}
	}
	add(g.start)
	for _, p := range g.productions {
		add(p.Source)
		for _, sym := range p.RHS {
			if !sym.Terminal {
				add(sym.NonTerminal)
			}
		}
	}
	return nts
}

// Terminals returns all token types used by the grammar, sorted ascending.
// EOF is not included.
func (g *Grammar[L, D, R]) Terminals() []lexlr.TokType {
	seen := map[lexlr.TokType]bool{}
	var toks []lexlr.TokType
	for _, p := range g.productions {
		for _, sym := range p.RHS {
			if sym.Terminal && !seen[sym.Token] {
				seen[sym.Token] = true
				toks = append(toks, sym.Token)
			}
		}
	}
	sort.Slice(toks, func(i, j int) bool { return toks[i] < toks[j] })
	return toks
}

// Validate checks that the start symbol and every non-terminal used on a
// right hand side have at least one production.
func (g *Grammar[L, D, R]) Validate() error {
	defined := map[NonTerminal]bool{}
	for _, p := range g.productions {
		defined[p.Source] = true
	}
	if !defined[g.start] {
		return errors.Errorf("grammar %s: no production for start symbol %s", g.Name, g.start)
	}
	for _, p := range g.productions {
		for _, sym := range p.RHS {
			if !sym.Terminal && !defined[sym.NonTerminal] {
				return errors.Errorf("grammar %s: no production for non-terminal %s, used in %v",
					g.Name, sym.NonTerminal, p.Rule)
			}
			if sym.Terminal && sym.Token == EOF {
				return errors.Errorf("grammar %s: EOF used in %v", g.Name, p.Rule)
			}
		}
	}
	return nil
}

// IsAugmented is a predicate: has g been created by Augment?
func (g *Grammar[L, D, R]) IsAugmented() bool {
	return g.augmented
}

// Augment returns a new grammar with a new start symbol S' and an additional
// production S' -> S, which becomes production #0. Its builder passes on the
// result of S. Augmenting an augmented grammar returns it unchanged.
func (g *Grammar[L, D, R]) Augment() *Grammar[L, D, R] {
	if g.augmented {
		return g
	}
	start := g.start + "'"
	for g.uses(start) {
		start += "'"
	}
	ag := NewGrammar(g.Name, start, g.termResult)
	ag.tokenNames = g.tokenNames
	ag.augmented = true
	ag.productions = make([]Production[R], 0, len(g.productions)+1)
	ag.productions = append(ag.productions, Production[R]{
		Rule:  Rule{Source: start, RHS: []Symbol{N(g.start)}},
		Build: func(children []R) (R, error) { return children[0], nil },
	})
	ag.productions = append(ag.productions, g.productions...)
	for i, p := range ag.productions {
		ag.sigs[p.Signature()] = i
	}
	return ag
}

func (g *Grammar[L, D, R]) uses(nt NonTerminal) bool {
	for _, n := range g.NonTerminals() {
		if n == nt {
			return true
		}
	}
	return false
}

// Dump writes the productions of g to w.
func (g *Grammar[L, D, R]) Dump(w io.Writer) {
	for i, p := range g.productions {
		fmt.Fprintf(w, "%3d: %s\n", i, g.RuleString(p.Rule))
	}
}

// RuleString returns a rule with terminals displayed by their names.
func (g *Grammar[L, D, R]) RuleString(r Rule) string {
	s := fmt.Sprintf("[%s] ::= [", r.Source)
	for i, sym := range r.RHS {
		if i > 0 {
			s += " "
		}
		s += g.SymbolName(sym)
	}
	return s + "]"
}

// --- Grammar builder -------------------------------------------------------

// GrammarBuilder is a helper to construct grammars step by step. The first
// rule added defines the start symbol.
type GrammarBuilder[L, D, R any] struct {
	name   string
	start  NonTerminal
	prods  []Production[R]
	names  map[lexlr.TokType]string
	errors []error
}

// NewGrammarBuilder creates a builder for a grammar named name.
func NewGrammarBuilder[L, D, R any](name string) *GrammarBuilder[L, D, R] {
	return &GrammarBuilder[L, D, R]{name: name, names: map[lexlr.TokType]string{}}
}

// RuleBuilder builds the right hand side of a rule.
type RuleBuilder[L, D, R any] struct {
	gb   *GrammarBuilder[L, D, R]
	rule Rule
}

// LHS starts a new rule with left hand side nt.
func (gb *GrammarBuilder[L, D, R]) LHS(nt string) *RuleBuilder[L, D, R] {
	if gb.start == "" {
		gb.start = NonTerminal(nt)
	}
	return &RuleBuilder[L, D, R]{gb: gb, rule: Rule{Source: NonTerminal(nt)}}
}

// N appends a non-terminal.
func (rb *RuleBuilder[L, D, R]) N(nt string) *RuleBuilder[L, D, R] {
	rb.rule.RHS = append(rb.rule.RHS, N(NonTerminal(nt)))
	return rb
}

// T appends a terminal with token type tok, displayed as name.
func (rb *RuleBuilder[L, D, R]) T(name string, tok lexlr.TokType) *RuleBuilder[L, D, R] {
	rb.rule.RHS = append(rb.rule.RHS, T(tok))
	if name != "" {
		rb.gb.names[tok] = name
	}
	return rb
}

// End completes the rule, with build as the builder for its results.
func (rb *RuleBuilder[L, D, R]) End(build Builder[R]) *GrammarBuilder[L, D, R] {
	if build == nil {
		rb.gb.errors = append(rb.gb.errors, errors.Errorf("rule %v has no builder", rb.rule))
	}
	rb.gb.prods = append(rb.gb.prods, Production[R]{Rule: rb.rule, Build: build})
	return rb.gb
}

// Epsilon completes the rule as an epsilon-rule. Its RHS must be empty.
func (rb *RuleBuilder[L, D, R]) Epsilon(build Builder[R]) *GrammarBuilder[L, D, R] {
	if len(rb.rule.RHS) > 0 {
		rb.gb.errors = append(rb.gb.errors, errors.Errorf("epsilon rule %v has symbols", rb.rule))
	}
	return rb.End(build)
}

// Grammar creates the grammar, given a constructor for terminal results.
// It reports the first error found, including duplicate productions and
// validation errors.
func (gb *GrammarBuilder[L, D, R]) Grammar(termResult func(L, D) (R, error)) (*Grammar[L, D, R], error) {
	if len(gb.errors) > 0 {
		return nil, gb.errors[0]
	}
	g := NewGrammar(gb.name, gb.start, termResult)
	for tok, name := range gb.names {
		g.tokenNames[tok] = name
	}
	var err error
	for _, p := range gb.prods {
		if g, err = g.WithProduction(p); err != nil {
			return nil, err
		}
	}
	if err = g.Validate(); err != nil {
		return nil, err
	}
	tracer().Infof("grammar %s has %d productions", g.Name, g.Size())
	return g, nil
}
