package lexmach

import (
	"errors"
	"strconv"
	"testing"

	"github.com/npillmayer/lexlr"
	"github.com/npillmayer/lexlr/lex"
	"github.com/npillmayer/lexlr/lr"
	"github.com/npillmayer/lexlr/lr/lrone"
	"github.com/npillmayer/lexlr/lr/scanner"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

const Nil lexlr.TokType = 10

func testLexer(t *testing.T) *Lexer {
	lx, err := Compile(
		Skip(`//[^\n]*\n?`),
		Pattern(`\"[^"]*\"`, scanner.String),
		Keyword("NIL", Nil),
		Pattern(`#?([a-z]|[A-Z])([a-z]|[A-Z]|[0-9]|_|-)*[!\?]?`, scanner.Ident),
		Pattern(`[1-9][0-9]*`, scanner.Int),
		Literal("(", '('),
		Literal(")", ')'),
		Literal("=", '='),
		Literal("+", '+'),
		Literal(":=", ':'),
		Skip(`( |\,|\t|\n|\r)+`),
	)
	if err != nil {
		t.Fatal(err)
	}
	return lx
}

func TestTokenCounts(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lexlr.scanner")
	defer teardown()
	//
	lx := testLexer(t)
	for _, x := range []struct {
		input string
		count int
	}{
		{"1", 1},
		{"1+12", 3},
		{"Hello #World", 2},
		{`x="mystring" // commented `, 3},
		{"1,22,333", 3},
		{"a := nil", 3},
	} {
		tokens, err := lx.Collect(x.input)
		if err != nil {
			t.Fatal(err)
		}
		for _, tok := range tokens {
			if tok.Err != nil {
				t.Errorf("%q: unexpected error token %v", x.input, tok)
			}
		}
		if len(tokens) != x.count {
			t.Errorf("%q: expected %d tokens, have %d", x.input, x.count, len(tokens))
		}
	}
}

func TestKeywordBeforeIdent(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lexlr.scanner")
	defer teardown()
	//
	tokens, err := testLexer(t).Collect("nil nils")
	if err != nil {
		t.Fatal(err)
	}
	if len(tokens) != 2 || tokens[0].Data.TokType() != Nil || tokens[1].Data.TokType() != scanner.Ident {
		t.Errorf("expected keyword followed by identifier, have %v", tokens)
	}
}

func TestSpansAndValues(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lexlr.scanner")
	defer teardown()
	//
	tokens, err := testLexer(t).Collect("(ab  cde)")
	if err != nil {
		t.Fatal(err)
	}
	if len(tokens) != 4 {
		t.Fatalf("expected 4 tokens, have %d", len(tokens))
	}
	if span := tokens[2].Data.Span(); span.From() != 5 || span.To() != 8 {
		t.Errorf("expected span (5…8) for 'cde', have %v", span)
	}
	if v := tokens[1].Data.Value(); v != "ab" {
		t.Errorf("expected value \"ab\", have %v", v)
	}
	if tokens[3].Data.TokType() != ')' {
		t.Errorf("expected closing parenthesis, have %v", tokens[3].Data)
	}
}

func TestUnmatchedInputIsSkipped(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lexlr.scanner")
	defer teardown()
	//
	tokens, err := testLexer(t).Collect("ab $ cd")
	if err != nil {
		t.Fatal(err)
	}
	var lexemes []string
	failed := 0
	for _, tok := range tokens {
		if tok.Err != nil {
			failed++
			var lerr *lex.LexError
			if !errors.As(tok.Err, &lerr) {
				t.Errorf("expected a lex error, have %v", tok.Err)
			}
			continue
		}
		lexemes = append(lexemes, tok.Lexeme)
	}
	if failed == 0 {
		t.Errorf("expected '$' to produce a failed token")
	}
	if len(lexemes) != 2 || lexemes[0] != "ab" || lexemes[1] != "cd" {
		t.Errorf("expected lexing to resume after '$', have %q", lexemes)
	}
}

func TestParseTokenStream(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lexlr.scanner")
	defer teardown()
	//
	b := lr.NewGrammarBuilder[string, lexlr.Token, int]("Sums")
	b.LHS("Sum").N("Sum").T("+", '+').T("num", scanner.Int).End(func(c []int) (int, error) {
		return c[0] + c[2], nil
	})
	b.LHS("Sum").T("num", scanner.Int).End(func(c []int) (int, error) {
		return c[0], nil
	})
	g, err := b.Grammar(func(lexeme string, tok lexlr.Token) (int, error) {
		if tok.TokType() != scanner.Int {
			return 0, nil
		}
		return strconv.Atoi(lexeme)
	})
	if err != nil {
		t.Fatal(err)
	}
	ga, tables, err := lr.Compile(g)
	if err != nil {
		t.Fatal(err)
	}
	p := lrone.NewParser(ga, tables, tables)
	tokens, err := testLexer(t).Tokens("1 + 22 + 333")
	if err != nil {
		t.Fatal(err)
	}
	sum, err := p.ParseStream(tokens)
	if err != nil {
		t.Fatal(err)
	}
	if sum != 356 {
		t.Errorf("expected sum 356, have %d", sum)
	}
	tokens, _ = testLexer(t).Tokens("1 + $")
	if _, err = p.ParseStream(tokens); err == nil {
		t.Errorf("expected parse to stop at unmatched input")
	}
}
