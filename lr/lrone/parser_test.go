package lrone

import (
	"errors"
	"strconv"
	"strings"
	"testing"

	"github.com/npillmayer/lexlr"
	"github.com/npillmayer/lexlr/lex"
	"github.com/npillmayer/lexlr/lr"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

type tok lexlr.TokType

func (t tok) TokType() lexlr.TokType { return lexlr.TokType(t) }

const num = tok('n')

func tokens(lexemes ...string) []lex.Token[string, tok] {
	var toks []lex.Token[string, tok]
	for _, l := range lexemes {
		if _, err := strconv.Atoi(l); err == nil {
			toks = append(toks, lex.Token[string, tok]{Lexeme: l, Data: num})
		} else {
			toks = append(toks, lex.Token[string, tok]{Lexeme: l, Data: tok(l[0])})
		}
	}
	return toks
}

func value(lexeme string, t tok) (int, error) {
	if t == num {
		return strconv.Atoi(lexeme)
	}
	return 0, nil
}

func first(c []int) (int, error)  { return c[0], nil }
func second(c []int) (int, error) { return c[1], nil }
func plus(c []int) (int, error)   { return c[0] + c[2], nil }
func times(c []int) (int, error)  { return c[0] * c[2], nil }

func exprParser(t *testing.T) *Parser[string, tok, int] {
	b := lr.NewGrammarBuilder[string, tok, int]("Expr")
	b.LHS("E").N("E").T("+", '+').N("T").End(plus)
	b.LHS("E").N("T").End(first)
	b.LHS("T").N("T").T("*", '*').N("F").End(times)
	b.LHS("T").N("F").End(first)
	b.LHS("F").T("(", '(').N("E").T(")", ')').End(second)
	b.LHS("F").T("num", lexlr.TokType(num)).End(first)
	g, err := b.Grammar(value)
	if err != nil {
		t.Fatal(err)
	}
	ga, tables, err := lr.Compile(g)
	if err != nil {
		t.Fatal(err)
	}
	return NewParser(ga, tables, tables)
}

func TestParseExpressions(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lexlr.lr")
	defer teardown()
	//
	p := exprParser(t)
	for i, x := range []struct {
		input []string
		value int
	}{
		{[]string{"7"}, 7},
		{[]string{"2", "+", "3", "*", "4"}, 14},
		{[]string{"(", "2", "+", "3", ")", "*", "4"}, 20},
		{[]string{"1", "+", "1", "+", "1"}, 3},
	} {
		v, err := p.Parse(tokens(x.input...))
		if err != nil {
			t.Errorf("test #%d: %v", i, err)
			continue
		}
		if v != x.value {
			t.Errorf("test #%d: expected %d, have %d", i, x.value, v)
		}
	}
}

func TestParseSyntaxErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lexlr.lr")
	defer teardown()
	//
	p := exprParser(t)
	_, err := p.Parse(tokens("2", "+", "*"))
	var serr *SyntaxError
	if !errors.As(err, &serr) {
		t.Fatalf("expected syntax error, got %v", err)
	}
	if serr.EOF || serr.Lexeme != "*" || serr.Name != "*" {
		t.Errorf("expected error for token *, have %v", serr)
	}
	_, err = p.Parse(tokens("2", "+"))
	if !errors.As(err, &serr) || !serr.EOF {
		t.Errorf("expected error for end of input, got %v", err)
	}
	_, err = p.Parse(nil)
	if !errors.As(err, &serr) || !serr.EOF {
		t.Errorf("expected error for empty input, got %v", err)
	}
}

var errToken = errors.New("unexpected token")
var errEOF = errors.New("unexpected end of input")

// Hand-made tables for the unaugmented grammar A -> a
func singleRuleParser(t *testing.T) *Parser[string, tok, int] {
	b := lr.NewGrammarBuilder[string, tok, int]("A")
	b.LHS("A").T("a", 'a').End(func(c []int) (int, error) { return 42, nil })
	g, err := b.Grammar(value)
	if err != nil {
		t.Fatal(err)
	}
	tb := lr.NewTableBuilder(2, []lexlr.TokType{'a'}, []lr.NonTerminal{"A"})
	if err = tb.Shift(0, 'a', 1); err == nil {
		err = tb.Reduce(1, lr.EOF, 0)
	}
	if err != nil {
		t.Fatal(err)
	}
	p := NewParser(g, tb.Tables(), tb.Tables())
	p.SetErrorHandlers(
		func(lex.Token[string, tok]) error { return errToken },
		func() error { return errEOF },
	)
	return p
}

func TestParseErrorHandlers(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lexlr.lr")
	defer teardown()
	//
	p := singleRuleParser(t)
	if v, err := p.Parse(tokens("a")); err != nil || v != 42 {
		t.Errorf("expected result 42, have %d, %v", v, err)
	}
	if _, err := p.Parse(tokens("a", "a")); err != errToken {
		t.Errorf("expected token error, got %v", err)
	}
	if _, err := p.Parse(nil); err != errEOF {
		t.Errorf("expected EOF error, got %v", err)
	}
}

func TestGotoErrorReportedAsTokenError(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lexlr.lr")
	defer teardown()
	//
	b := lr.NewGrammarBuilder[string, tok, int]("S")
	b.LHS("S").N("A").T("b", 'b').End(first)
	b.LHS("A").T("a", 'a').End(first)
	g, err := b.Grammar(value)
	if err != nil {
		t.Fatal(err)
	}
	tb := lr.NewTableBuilder(2, []lexlr.TokType{'a', 'b'}, []lr.NonTerminal{"S", "A"})
	tb.Shift(0, 'a', 1)
	tb.Reduce(1, 'b', 1) // goto(0, A) is missing
	p := NewParser(g, tb.Tables(), tb.Tables())
	var seen string
	p.SetErrorHandlers(func(t lex.Token[string, tok]) error {
		seen = t.Lexeme
		return errToken
	}, nil)
	if _, err := p.Parse(tokens("a", "b")); err != errToken || seen != "b" {
		t.Errorf("expected token error for b, got %v", err)
	}
}

func TestParseStopsAtLexError(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lexlr.lr")
	defer teardown()
	//
	p := exprParser(t)
	toks := tokens("1", "+")
	toks = append(toks, lex.Token[string, tok]{Lexeme: "$", Err: &lex.LexError{Lexeme: "$"}})
	_, err := p.Parse(toks)
	var lerr *lex.LexError
	if !errors.As(err, &lerr) {
		t.Errorf("expected wrapped lex error, got %v", err)
	}
}

func TestBuildErrorNamesRule(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lexlr.lr")
	defer teardown()
	//
	b := lr.NewGrammarBuilder[string, tok, int]("Quotients")
	b.LHS("Q").N("Q").T("/", '/').T("num", lexlr.TokType(num)).End(func(c []int) (int, error) {
		if c[2] == 0 {
			return 0, errors.New("division by zero")
		}
		return c[0] / c[2], nil
	})
	b.LHS("Q").T("num", lexlr.TokType(num)).End(first)
	g, err := b.Grammar(value)
	if err != nil {
		t.Fatal(err)
	}
	ga, tables, err := lr.Compile(g)
	if err != nil {
		t.Fatal(err)
	}
	p := NewParser(ga, tables, tables)
	if q, err := p.Parse(tokens("12", "/", "3")); err != nil || q != 4 {
		t.Fatalf("expected 12/3 = 4, have %d (%v)", q, err)
	}
	_, err = p.Parse(tokens("1", "/", "0"))
	if err == nil {
		t.Fatal("expected division by zero")
	}
	if msg := err.Error(); !strings.Contains(msg, "reduce [Q] ::= [Q / num]: division by zero") {
		t.Errorf("expected error to name the rule by its symbols, have %q", msg)
	}
}
