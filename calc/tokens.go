package calc

import (
	"fmt"
	"text/scanner"
	"unicode"

	"github.com/npillmayer/lexlr"
	"github.com/npillmayer/lexlr/fa"
	"github.com/npillmayer/lexlr/lex"
	"github.com/npillmayer/lexlr/lex/charlex"
)

// Token types of the calculator language. Operators use their rune as token
// type.
const (
	Number lexlr.TokType = scanner.Int
	Ident  lexlr.TokType = scanner.Ident
	Const  lexlr.TokType = -20
	Space  lexlr.TokType = ' '
)

// TokenName returns a display name for a token type.
func TokenName(t lexlr.TokType) string {
	switch t {
	case Number:
		return "number"
	case Ident:
		return "ident"
	case Const:
		return "const"
	case Space:
		return "space"
	case lexlr.TokType(scanner.EOF):
		return "#eof"
	}
	return string(rune(t))
}

// Token is the token data of the calculator lexer.
type Token struct {
	Kind   lexlr.TokType
	Line   int
	Column int
	Span   lexlr.Span // rune offsets
}

// TokType is part of the lexlr.Typed interface.
func (t Token) TokType() lexlr.TokType {
	return t.Kind
}

func (t Token) String() string {
	return fmt.Sprintf("%s@%d:%d", TokenName(t.Kind), t.Line, t.Column)
}

// Input classes.
const (
	digit fa.Class = iota
	dot
	space
	plus
	minus
	star
	slash
	lparen
	rparen
	equals
	letterP
	letterI
	letterE
	letter
)

var categories = charlex.Categorizer(
	charlex.In(unicode.Digit),
	charlex.AnyOf("."),
	charlex.AnyOf(" \t\r\n"),
	charlex.AnyOf("+"),
	charlex.AnyOf("-"),
	charlex.AnyOf("*"),
	charlex.AnyOf("/"),
	charlex.AnyOf("("),
	charlex.AnyOf(")"),
	charlex.AnyOf("="),
	charlex.AnyOf("p"),
	charlex.AnyOf("i"),
	charlex.AnyOf("e"),
	charlex.In(unicode.Letter),
)

var letters = []fa.Class{letterP, letterI, letterE, letter}

// Ranking for ambiguous accepting states: keywords before identifiers.
var ranking = [][]lexlr.TokType{{Const}, {Ident}}

// tokenNFA creates an NFA for the tokens of the calculator language.
// Every token has its own arm, connected to state 0 by an epsilon transition.
//
//	 1 -d-> 2 -.-> 3 -d-> 4        numbers: d+ (. d+)?
//	 5 -s-> 6                      white space
//	 7 -op-> 8…14                  operators, parentheses and '='
//	15 -l-> 16                     identifiers
//	17 -p-> 18 -i-> 19, 20 -e-> 21 constants
func tokenNFA() *fa.NFA[rune, lexlr.TokType] {
	nfa := fa.NewNFA[rune, lexlr.TokType](22, categories.Classes(), categories.Cat)
	for _, arm := range []int{1, 5, 7, 15, 17, 20} {
		nfa = nfa.WithEpsilonTransition(0, arm)
	}
	nfa = nfa.WithSingleTransition(1, 2, digit).
		WithSingleTransition(2, 2, digit).
		WithSingleTransition(2, 3, dot).
		WithSingleTransition(3, 4, digit).
		WithSingleTransition(4, 4, digit).
		WithAcceptingState(2, Number).
		WithAcceptingState(4, Number)
	nfa = nfa.WithSingleTransition(5, 6, space).
		WithSingleTransition(6, 6, space).
		WithAcceptingState(6, Space)
	for i, op := range []struct {
		class fa.Class
		tok   rune
	}{{plus, '+'}, {minus, '-'}, {star, '*'}, {slash, '/'}, {lparen, '('}, {rparen, ')'}, {equals, '='}} {
		nfa = nfa.WithSingleTransition(7, 8+i, op.class).
			WithAcceptingState(8+i, lexlr.TokType(op.tok))
	}
	for _, l := range letters {
		nfa = nfa.WithSingleTransition(15, 16, l).
			WithSingleTransition(16, 16, l)
	}
	nfa = nfa.WithAcceptingState(16, Ident)
	nfa = nfa.WithSingleTransition(17, 18, letterP).
		WithSingleTransition(18, 19, letterI).
		WithAcceptingState(19, Const).
		WithSingleTransition(20, 21, letterE).
		WithAcceptingState(21, Const)
	return nfa
}

// TokenDFA creates the DFA for the tokens of the calculator language.
func TokenDFA() (*fa.DFA[rune, lexlr.TokType], error) {
	return fa.NFAToDFA(tokenNFA(), ranking...)
}

func automaton(dfa *fa.DFA[rune, lexlr.TokType]) lex.Automaton[rune, Token, charlex.Context] {
	return lex.Actions(dfa, func(t lexlr.TokType, ctx charlex.Context) Token {
		return Token{Kind: t, Line: ctx.Line.Starting, Column: ctx.Column.Starting, Span: ctx.Span()}
	})
}

// skipSpace is a token source dropping white space tokens.
type skipSpace struct {
	src interface {
		Next() (lex.Token[string, Token], bool)
	}
}

func (s skipSpace) Next() (lex.Token[string, Token], bool) {
	for {
		t, ok := s.src.Next()
		if !ok || t.Err != nil || t.Data.Kind != Space {
			return t, ok
		}
	}
}
