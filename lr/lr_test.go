package lr

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/npillmayer/lexlr"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func leaf(lexeme string, _ int) (string, error) {
	return lexeme, nil
}

func concat(children []string) (string, error) {
	return "(" + strings.Join(children, " ") + ")", nil
}

func exprGrammar(t *testing.T) *Grammar[string, int, string] {
	b := NewGrammarBuilder[string, int, string]("Expr")
	b.LHS("E").N("E").T("+", '+').N("T").End(concat)
	b.LHS("E").N("T").End(concat)
	b.LHS("T").N("T").T("*", '*').N("F").End(concat)
	b.LHS("T").N("F").End(concat)
	b.LHS("F").T("(", '(').N("E").T(")", ')').End(concat)
	b.LHS("F").T("id", 'i').End(concat)
	g, err := b.Grammar(leaf)
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func TestBuildResultArity(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lexlr.lr")
	defer teardown()
	//
	called := false
	p := Production[string]{
		Rule: Rule{Source: "A", RHS: []Symbol{T('a'), N("B")}},
		Build: func(children []string) (string, error) {
			called = true
			return "", nil
		},
	}
	_, err := p.BuildResult([]string{"a"})
	var arity *ArityError
	if !errors.As(err, &arity) {
		t.Fatalf("expected arity error, got %v", err)
	}
	if called {
		t.Errorf("builder must not be called on arity mismatch")
	}
	if arity.Children != 1 || arity.Rule.Len() != 2 {
		t.Errorf("unexpected arity error %v", arity)
	}
	if _, err = p.BuildResult([]string{"a", "b"}); err != nil || !called {
		t.Errorf("expected builder to be called, err = %v", err)
	}
}

func TestRuleStructuralEquality(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lexlr.lr")
	defer teardown()
	//
	r1 := Rule{Source: "A", RHS: []Symbol{T('a'), N("B")}}
	r2 := Rule{Source: "A", RHS: []Symbol{T('a'), N("B")}}
	r3 := Rule{Source: "A", RHS: []Symbol{T('a')}}
	if !r1.Equals(r2) || r1.Signature() != r2.Signature() {
		t.Errorf("expected %v and %v to be equal", r1, r2)
	}
	if r1.Equals(r3) || r1.Signature() == r3.Signature() {
		t.Errorf("expected %v and %v to differ", r1, r3)
	}
	if !r3.Less(r1) || r1.Less(r3) {
		t.Errorf("expected shorter rule to be less")
	}
	g := NewGrammar[string, int, string]("dup", "A", leaf)
	g1, err := g.WithProduction(Production[string]{Rule: r1, Build: concat})
	if err != nil {
		t.Fatal(err)
	}
	other := func(children []string) (string, error) { return "", nil }
	if _, err = g1.WithProduction(Production[string]{Rule: r2, Build: other}); err == nil {
		t.Errorf("expected duplicate production to be rejected")
	}
	if g.Size() != 0 || g1.Size() != 1 {
		t.Errorf("expected grammars to be immutable, have sizes %d and %d", g.Size(), g1.Size())
	}
	if inx, ok := g1.Find(r2); !ok || inx != 0 {
		t.Errorf("expected to find rule at #0, have %d, %v", inx, ok)
	}
}

func TestGrammarValidation(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lexlr.lr")
	defer teardown()
	//
	b := NewGrammarBuilder[string, int, string]("missing")
	b.LHS("S").N("A").T("x", 'x').End(concat)
	if _, err := b.Grammar(leaf); err == nil {
		t.Errorf("expected error for undefined non-terminal A")
	}
	b = NewGrammarBuilder[string, int, string]("eps")
	b.LHS("S").T("x", 'x').Epsilon(concat)
	if _, err := b.Grammar(leaf); err == nil {
		t.Errorf("expected error for epsilon rule with symbols")
	}
	b = NewGrammarBuilder[string, int, string]("nobuilder")
	b.LHS("S").T("x", 'x').End(nil)
	if _, err := b.Grammar(leaf); err == nil {
		t.Errorf("expected error for rule without builder")
	}
}

func TestAugment(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lexlr.lr")
	defer teardown()
	//
	g := exprGrammar(t)
	ag := g.Augment()
	if !ag.IsAugmented() || g.IsAugmented() {
		t.Fatalf("expected only the new grammar to be augmented")
	}
	if ag.Start() != "E'" || ag.Size() != g.Size()+1 {
		t.Errorf("expected start E' and %d productions, have %s and %d", g.Size()+1, ag.Start(), ag.Size())
	}
	p0 := ag.Production(0)
	if p0.Source != "E'" || len(p0.RHS) != 1 || p0.RHS[0] != N("E") {
		t.Errorf("unexpected start production %v", p0.Rule)
	}
	if r, err := p0.BuildResult([]string{"x"}); err != nil || r != "x" {
		t.Errorf("expected start production to pass on its child, have %q", r)
	}
	if ag.Augment() != ag {
		t.Errorf("expected augmenting twice to be a no-op")
	}
	b := NewGrammarBuilder[string, int, string]("primed")
	b.LHS("S").N("S'").End(concat)
	b.LHS("S'").T("x", 'x').End(concat)
	g, _ = b.Grammar(leaf)
	if start := g.Augment().Start(); start != "S''" {
		t.Errorf("expected fresh start symbol S'', have %s", start)
	}
}

func TestFirstSets(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lexlr.lr")
	defer teardown()
	//
	b := NewGrammarBuilder[string, int, string]("G")
	b.LHS("S").N("A").T("a", 1).End(concat)
	b.LHS("A").N("B").N("D").End(concat)
	b.LHS("B").T("b", 2).End(concat)
	b.LHS("B").Epsilon(concat)
	b.LHS("D").T("d", 3).End(concat)
	b.LHS("D").Epsilon(concat)
	g, err := b.Grammar(leaf)
	if err != nil {
		t.Fatal(err)
	}
	lrgen := NewTableGenerator(g)
	if !lrgen.Nullable("A") || lrgen.Nullable("S") {
		t.Errorf("expected A to be nullable, but not S")
	}
	first := lrgen.First("S")
	if len(first) != 3 || first[0] != 1 || first[1] != 2 || first[2] != 3 {
		t.Errorf("expected FIRST(S) = {1,2,3}, have %v", first)
	}
	if first = lrgen.First("A"); len(first) != 2 {
		t.Errorf("expected FIRST(A) = {2,3}, have %v", first)
	}
}

func TestTableBuilderConflicts(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lexlr.lr")
	defer teardown()
	//
	tb := NewTableBuilder(3, []lexlr.TokType{'a', 'b'}, []NonTerminal{"S"})
	if err := tb.Shift(0, 'a', 1); err != nil {
		t.Fatal(err)
	}
	if err := tb.Shift(0, 'a', 1); err != nil {
		t.Errorf("expected identical entry to be accepted, got %v", err)
	}
	var conflict *ConflictError
	if err := tb.Reduce(0, 'a', 2); !errors.As(err, &conflict) {
		t.Errorf("expected shift/reduce conflict, got %v", err)
	}
	if err := tb.Reduce(1, EOF, 0); err != nil {
		t.Error(err)
	}
	if err := tb.Goto(0, "S", 2); err != nil {
		t.Error(err)
	}
	if err := tb.Goto(0, "S", 1); !errors.As(err, &conflict) {
		t.Errorf("expected goto conflict, got %v", err)
	}
	if err := tb.Shift(0, 'z', 1); err == nil {
		t.Errorf("expected token out of range to be rejected")
	}
	tables := tb.Tables()
	if a := tables.Action(0, 'a'); a != Shift(1) {
		t.Errorf("expected shift 1, have %v", a)
	}
	if a := tables.Action(1, EOF); a != Reduce(0) {
		t.Errorf("expected reduce 0, have %v", a)
	}
	if a := tables.Action(1, 'b'); a.Kind != ErrorAction {
		t.Errorf("expected error action, have %v", a)
	}
	if a := tables.Action(1, 4711); a.Kind != ErrorAction {
		t.Errorf("expected error action for unknown token, have %v", a)
	}
	if to, ok := tables.Goto(0, "S"); !ok || to != 2 {
		t.Errorf("expected goto 2, have %d", to)
	}
	if _, ok := tables.Goto(1, "X"); ok {
		t.Errorf("expected no goto for unknown non-terminal")
	}
}

func TestExprTables(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lexlr.lr")
	defer teardown()
	//
	ga, tables, err := Compile(exprGrammar(t))
	if err != nil {
		t.Fatal(err)
	}
	if a := tables.Action(0, 'i'); a.Kind != ShiftAction {
		t.Errorf("expected shift on id in state 0, have %v", a)
	}
	if a := tables.Action(0, '+'); a.Kind != ErrorAction {
		t.Errorf("expected error on + in state 0, have %v", a)
	}
	s, ok := tables.Goto(0, "E")
	if !ok {
		t.Fatalf("expected goto for E in state 0")
	}
	if a := tables.Action(s, EOF); a != Reduce(0) {
		t.Errorf("expected reduction of %v in state %d, have %v", ga.Production(0).Rule, s, a)
	}
	if a := tables.Action(s, '+'); a.Kind != ShiftAction {
		t.Errorf("expected shift on + in state %d, have %v", s, a)
	}
	var buf bytes.Buffer
	tables.Dump(&buf, ga)
	if !strings.Contains(buf.String(), "id") || !strings.Contains(buf.String(), "r0") {
		t.Errorf("expected table dump to show token names and reduce 0")
	}
	buf.Reset()
	ActionTableAsHTML(tables, ga, &buf)
	if !strings.Contains(buf.String(), "<table") {
		t.Errorf("expected HTML table")
	}
}

func TestCanonicalLR1(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lexlr.lr")
	defer teardown()
	//
	// LR(1), but merging states with equal cores would produce a conflict
	b := NewGrammarBuilder[string, int, string]("LR1")
	b.LHS("S").T("a", 'a').N("A").T("d", 'd').End(concat)
	b.LHS("S").T("b", 'b').N("B").T("d", 'd').End(concat)
	b.LHS("S").T("a", 'a').N("B").T("e", 'e').End(concat)
	b.LHS("S").T("b", 'b').N("A").T("e", 'e').End(concat)
	b.LHS("A").T("c", 'c').End(concat)
	b.LHS("B").T("c", 'c').End(concat)
	g, err := b.Grammar(leaf)
	if err != nil {
		t.Fatal(err)
	}
	lrgen := NewTableGenerator(g.Augment())
	if err := lrgen.CreateTables(); err != nil {
		t.Fatalf("expected grammar to be LR(1), got %v", err)
	}
	accepting := 0
	for k := 0; k < lrgen.CFSM().Size(); k++ {
		if lrgen.CFSM().State(k).Accept {
			accepting++
		}
	}
	if accepting != 1 {
		t.Errorf("expected exactly 1 accepting state, have %d", accepting)
	}
	var buf bytes.Buffer
	if err := lrgen.CFSM().WriteGraphViz(&buf); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(buf.String(), "digraph") {
		t.Errorf("expected Graphviz output")
	}
}

func TestAmbiguousGrammarConflicts(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lexlr.lr")
	defer teardown()
	//
	b := NewGrammarBuilder[string, int, string]("Ambiguous")
	b.LHS("E").N("E").T("+", '+').N("E").End(concat)
	b.LHS("E").T("id", 'i').End(concat)
	g, err := b.Grammar(leaf)
	if err != nil {
		t.Fatal(err)
	}
	_, _, err = Compile(g)
	var conflict *ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
	if conflict.Symbol != T('+') {
		t.Errorf("expected conflict on +, have %v", conflict.Symbol)
	}
}
