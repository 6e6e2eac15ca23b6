package charlex

import (
	"fmt"

	"github.com/npillmayer/lexlr"
	"github.com/npillmayer/lexlr/fa"
	"github.com/npillmayer/lexlr/lex"
)

// Position tracks one dimension (line, column or offset) of a lexer's position.
type Position struct {
	Starting int // start of the current token
	Current  int // next position to read
	Ending   int // position after the last accepted prefix
}

func (p Position) read(n int) Position {
	p.Current = n
	return p
}

// Context is the lexer context of rune lexers.
type Context struct {
	Line   Position
	Column Position
	Offset Position // in runes
}

// Init is the context at the beginning of input: line 1, column 1, offset 0.
var Init = Context{
	Line:   Position{1, 1, 1},
	Column: Position{1, 1, 1},
}

// Span returns the rune offsets from the start of the current token up to
// the last rune read.
func (c Context) Span() lexlr.Span {
	return lexlr.Span{uint64(c.Offset.Starting), uint64(c.Offset.Current)}
}

func (c Context) String() string {
	return fmt.Sprintf("(%d:%d)", c.Line.Starting, c.Column.Starting)
}

// Data is the token data of positioned tokens: a token type plus the
// position where the token starts.
type Data[T any] struct {
	Type   T
	Line   int
	Column int
}

func (d Data[T]) String() string {
	return fmt.Sprintf("%v@%d:%d", d.Type, d.Line, d.Column)
}

// Positioned adapts a DFA to a lexer automaton. The output of an accepting
// state becomes the type of a token, decorated with its start position.
func Positioned[T comparable](dfa *fa.DFA[rune, T]) lex.Automaton[rune, Data[T], Context] {
	return lex.Actions(dfa, func(t T, ctx Context) Data[T] {
		return Data[T]{Type: t, Line: ctx.Line.Starting, Column: ctx.Column.Starting}
	})
}

// LineError is the lex error of rune lexers.
type LineError struct {
	Line, Column int
	Lexeme       string
}

func (e *LineError) Error() string {
	return fmt.Sprintf("(%d:%d) lexeme cannot be lexed: %q", e.Line, e.Column, e.Lexeme)
}

// Hooks returns the lexer hooks for rune lexers with string lexemes.
func Hooks[D any]() lex.Hooks[rune, string, D, Context] {
	return lex.Hooks[rune, string, D, Context]{
		ReadInput:    readInput,
		CombineInput: combineInput,
		OnToken: func(lexeme string, data D, ctx Context) Context {
			ctx.Line.Ending = ctx.Line.Current
			ctx.Column.Ending = ctx.Column.Current
			ctx.Offset.Ending = ctx.Offset.Current
			return ctx
		},
		MakeError: makeError,
		OnError:   onError,
		OnSuccess: func(lexeme string, data D, ctx Context) Context {
			ctx.Line.Starting, ctx.Line.Current = ctx.Line.Ending, ctx.Line.Ending
			ctx.Column.Starting, ctx.Column.Current = ctx.Column.Ending, ctx.Column.Ending
			ctx.Offset.Starting, ctx.Offset.Current = ctx.Offset.Ending, ctx.Offset.Ending
			return ctx
		},
		Skip: func(r rune, ctx Context) Context {
			ctx = readInput(r, ctx)
			ctx.Line.Starting, ctx.Line.Ending = ctx.Line.Current, ctx.Line.Current
			ctx.Column.Starting, ctx.Column.Ending = ctx.Column.Current, ctx.Column.Current
			ctx.Offset.Starting, ctx.Offset.Ending = ctx.Offset.Current, ctx.Offset.Current
			return ctx
		},
	}
}

// A newline moves to column 1 of the next line.
func readInput(r rune, ctx Context) Context {
	ctx.Offset = ctx.Offset.read(ctx.Offset.Current + 1)
	if r == '\n' {
		ctx.Line = ctx.Line.read(ctx.Line.Current + 1)
		ctx.Column = ctx.Column.read(1)
		return ctx
	}
	ctx.Column = ctx.Column.read(ctx.Column.Current + 1)
	return ctx
}

func combineInput(lexeme string, r rune) string {
	return lexeme + string(r)
}

func makeError(lexeme string, ctx Context) error {
	return &LineError{Line: ctx.Line.Starting, Column: ctx.Column.Starting, Lexeme: lexeme}
}

// Nothing has been consumed after an error.
func onError(lexeme string, ctx Context) Context {
	ctx.Line.Current, ctx.Line.Ending = ctx.Line.Starting, ctx.Line.Starting
	ctx.Column.Current, ctx.Column.Ending = ctx.Column.Starting, ctx.Column.Starting
	ctx.Offset.Current, ctx.Offset.Ending = ctx.Offset.Starting, ctx.Offset.Starting
	return ctx
}

// NewSimple creates a simple lexer on runes.
func NewSimple[D any](auto lex.Automaton[rune, D, Context]) *lex.Simple[rune, string, D, Context] {
	return lex.NewSimple("", auto, Hooks[D]())
}

// NewLinear creates a lexer on runes with a read-ahead window.
func NewLinear[D any](window int, auto lex.Automaton[rune, D, Context]) *lex.Linear[rune, string, D, Context] {
	return lex.NewLinear(window, "", auto, Hooks[D]())
}

// Runes converts a string into lexer input.
func Runes(s string) []rune {
	return []rune(s)
}
