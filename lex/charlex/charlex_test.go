package charlex

import (
	"errors"
	"strings"
	"testing"
	"unicode"

	"github.com/npillmayer/lexlr"
	"github.com/npillmayer/lexlr/fa"
	"github.com/npillmayer/lexlr/lex"
	"github.com/npillmayer/lexlr/lr/scanner/lexmach"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

const (
	NUM = iota + 1
	ID
	WS
	OP
)

var cats = Categorizer(
	In(unicode.Digit),
	AnyOf("abcdefghijklmnopqrstuvwxyz"),
	AnyOf(" \n"),
	AnyOf("+*"),
)

func testDFA(t *testing.T) *fa.DFA[rune, int] {
	nfa := fa.NewNFA[rune, int](9, cats.Classes(), cats.Cat)
	for i, tok := range []int{NUM, ID, WS} {
		s := 1 + 2*i
		nfa = nfa.WithEpsilonTransition(0, s).
			WithSingleTransition(s, s+1, fa.Class(i)).
			WithSingleTransition(s+1, s+1, fa.Class(i)).
			WithAcceptingState(s+1, tok)
	}
	nfa = nfa.WithEpsilonTransition(0, 7).
		WithSingleTransition(7, 8, 3).
		WithAcceptingState(8, OP)
	dfa, err := fa.NFAToDFA(nfa)
	if err != nil {
		t.Fatal(err)
	}
	return dfa
}

func TestCategorizer(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lexlr.lex")
	defer teardown()
	//
	for r, c := range map[rune]fa.Class{'7': 0, 'x': 1, '\n': 2, '*': 3, '$': fa.NoClass} {
		if cats.Cat(r) != c {
			t.Errorf("expected %#U to be of class %d, is %d", r, c, cats.Cat(r))
		}
	}
	ops := Categorizer(In(unicode.Digit), AnyOf("+-"))
	if ops.Classes() != 2 || ops.Cat('-') != 1 || ops.Cat('*') != fa.NoClass {
		t.Errorf("expected 2 classes with '-' in class 1 and '*' in none")
	}
}

func TestPositions(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lexlr.lex")
	defer teardown()
	//
	lx := NewSimple(Positioned(testDFA(t)))
	tokens := lx.TokenStream(Runes("ab 12\ncd"), Init).Collect()
	expected := []struct {
		lexeme       string
		tok          int
		line, column int
	}{
		{"ab", ID, 1, 1},
		{" ", WS, 1, 3},
		{"12", NUM, 1, 4},
		{"\n", WS, 1, 6},
		{"cd", ID, 2, 1},
	}
	if len(tokens) != len(expected) {
		t.Fatalf("expected %d tokens, have %v", len(expected), tokens)
	}
	for i, x := range expected {
		tok := tokens[i]
		if !tok.OK() || tok.Lexeme != x.lexeme || tok.Data.Type != x.tok ||
			tok.Data.Line != x.line || tok.Data.Column != x.column {
			t.Errorf("token #%d: expected %q %d@%d:%d, have %v", i, x.lexeme, x.tok, x.line, x.column, tok)
		}
	}
}

func TestOffsets(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lexlr.lex")
	defer teardown()
	//
	auto := lex.Actions(testDFA(t), func(_ int, ctx Context) lexlr.Span {
		return ctx.Span()
	})
	tokens := NewSimple(auto).TokenStream(Runes("ab 12\ncd"), Init).Collect()
	expected := []lexlr.Span{{0, 2}, {2, 3}, {3, 5}, {5, 6}, {6, 8}}
	if len(tokens) != len(expected) {
		t.Fatalf("expected %d tokens, have %v", len(expected), tokens)
	}
	for i, span := range expected {
		if tokens[i].Data != span {
			t.Errorf("token #%d: expected span %v, have %v", i, span, tokens[i].Data)
		}
	}
}

func TestLineError(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lexlr.lex")
	defer teardown()
	//
	lx := NewSimple(Positioned(testDFA(t)))
	stream := lx.TokenStream(Runes("ab $x"), Init)
	tokens := stream.Collect()
	if len(tokens) != 4 {
		t.Fatalf("expected 4 tokens, have %v", tokens)
	}
	var lerr *LineError
	if !errors.As(tokens[2].Err, &lerr) {
		t.Fatalf("expected a LineError, have %v", tokens[2])
	}
	if lerr.Line != 1 || lerr.Column != 4 || lerr.Lexeme != "$" {
		t.Errorf("unexpected line error %v", lerr)
	}
	if x := tokens[3]; x.Lexeme != "x" || x.Data.Column != 5 {
		t.Errorf("expected token x at column 5, have %v", x)
	}
	if ctx := stream.Context(); ctx.Column.Starting != 6 {
		t.Errorf("expected lexer to end at column 6, is at %v", ctx)
	}
}

func TestOnErrorRewinds(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lexlr.lex")
	defer teardown()
	//
	lx := NewSimple(Positioned(testDFA(t)))
	tok, ctx, rest := lx.Build(Runes("$$"), Init)
	if tok.OK() || len(rest) != 2 {
		t.Errorf("expected failed token, have %v", tok)
	}
	if ctx != Init {
		t.Errorf("expected context to be rewound to start, is %+v", ctx)
	}
}

func TestRuneSource(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lexlr.lex")
	defer teardown()
	//
	input := "ab 12\ncd+x"
	lx := NewLinear(8, Positioned(testDFA(t)))
	buf := RuneSource(strings.NewReader(input))
	streamed := lx.StreamFrom(buf, Init).Collect()
	sliced := NewSimple(Positioned(testDFA(t))).TokenStream(Runes(input), Init).Collect()
	if len(streamed) != len(sliced) {
		t.Fatalf("expected %d tokens from rune source, have %d", len(sliced), len(streamed))
	}
	for i := range sliced {
		if streamed[i].Lexeme != sliced[i].Lexeme || streamed[i].Data != sliced[i].Data {
			t.Errorf("token #%d differs: %v vs %v", i, streamed[i], sliced[i])
		}
	}
	if buf.Err() != nil {
		t.Error(buf.Err())
	}
}

// lexmachine serves as an oracle for maximal munch.
func TestAgainstLexmachine(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lexlr.lex")
	defer teardown()
	//
	oracle, err := lexmach.Compile(
		lexmach.Pattern(`[0-9]+`, NUM),
		lexmach.Pattern(`[a-z]+`, ID),
		lexmach.Pattern(`( |\n)+`, WS),
		lexmach.Pattern(`\+|\*`, OP),
	)
	if err != nil {
		t.Fatal(err)
	}
	lx := NewSimple(Positioned(testDFA(t)))
	for _, input := range []string{
		"1+12",
		"abc  def*9",
		"x\n\ny+  77 * zz",
		"123abc456",
	} {
		tokens, err := oracle.Collect(input)
		if err != nil {
			t.Fatal(err)
		}
		var want []string
		for _, tok := range tokens {
			if tok.Err != nil {
				t.Fatal(tok.Err)
			}
			want = append(want, tok.Lexeme)
		}
		var have []string
		for _, tok := range lx.SuccessfulTokenStream(Runes(input), Init).Collect() {
			have = append(have, tok.Lexeme)
		}
		if strings.Join(have, "|") != strings.Join(want, "|") {
			t.Errorf("%q: expected tokens %q, have %q", input, want, have)
		}
	}
}
