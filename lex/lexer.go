package lex

import (
	"github.com/pkg/errors"
)

// Lexer is the capability shared by all lexer variants.
type Lexer[I, L, D, C any] interface {
	// Build scans the longest token at the start of input. It returns the
	// token, the new context and the input remaining after the token.
	// If no prefix of input is accepted, the token carries an error and the
	// remaining input is input itself.
	Build(input []I, ctx C) (Token[L, D], C, []I)
	// Skip drops the first input symbol. Token streams use it to
	// resynchronize after failed tokens.
	Skip(input []I, ctx C) ([]I, C)
}

var _ Lexer[rune, string, int, int] = (*Simple[rune, string, int, int])(nil)
var _ Lexer[rune, string, int, int] = (*Linear[rune, string, int, int])(nil)

// source delivers input symbols, counted from the start of the current token.
type source[I any] interface {
	peek(k int) (I, bool)
}

type sliceSource[I any] []I

func (s sliceSource[I]) peek(k int) (I, bool) {
	if k < len(s) {
		return s[k], true
	}
	var none I
	return none, false
}

// scanner holds the parts shared by the lexer variants.
type scanner[I, L, D, C any] struct {
	initial L // lexeme to start with
	auto    Automaton[I, D, C]
	hooks   Hooks[I, L, D, C]
	window  int // read-ahead limit past the last accept; 0 is unlimited
}

func makeScanner[I, L, D, C any](initial L, auto Automaton[I, D, C], hooks Hooks[I, L, D, C],
	window int) scanner[I, L, D, C] {
	//
	if auto == nil {
		panic(errors.New("lexer needs an automaton"))
	}
	if hooks.CombineInput == nil {
		panic(errors.New("lexer needs a CombineInput hook"))
	}
	if window < 0 {
		window = 0
	}
	return scanner[I, L, D, C]{initial: initial, auto: auto, hooks: hooks, window: window}
}

// scan walks the automaton over src, starting in state 0. It returns the
// longest match and the number of input symbols it covers. If there is no
// match, n is -1 and the token carries an error.
func (sc *scanner[I, L, D, C]) scan(src source[I], ctx C) (Token[L, D], C, int) {
	state, lexeme := 0, sc.initial
	var tok Token[L, D]
	n := -1
	for k := 0; ; k++ {
		if data, ok := sc.auto.Accept(state, ctx); ok {
			tok, n = Token[L, D]{Lexeme: lexeme, Data: data}, k
			ctx = sc.hooks.onToken(lexeme, data, ctx)
		}
		if sc.window > 0 && k-max(n, 0) >= sc.window {
			tracer().Debugf("lexer reached read-ahead limit of %d", sc.window)
			break
		}
		in, ok := src.peek(k)
		if !ok {
			break
		}
		ctx = sc.hooks.readInput(in, ctx)
		lexeme = sc.hooks.CombineInput(lexeme, in)
		if state, ok = sc.auto.Transition(state, in); !ok {
			break
		}
	}
	if n < 0 {
		err := sc.hooks.makeError(lexeme, ctx)
		tracer().Debugf("lexer failed: %v", err)
		return Token[L, D]{Lexeme: lexeme, Err: err}, sc.hooks.onError(lexeme, ctx), -1
	}
	return tok, sc.hooks.onSuccess(tok.Lexeme, tok.Data, ctx), n
}

func (sc *scanner[I, L, D, C]) build(input []I, ctx C) (Token[L, D], C, []I) {
	tok, ctx, n := sc.scan(sliceSource[I](input), ctx)
	if n < 0 {
		return tok, ctx, input
	}
	return tok, ctx, input[n:]
}

func (sc *scanner[I, L, D, C]) skip(input []I, ctx C) ([]I, C) {
	if len(input) == 0 {
		return input, ctx
	}
	return input[1:], sc.hooks.skip(input[0], ctx)
}

// --- Simple lexer ----------------------------------------------------------

// Simple is a lexer working on fully materialized input. It reads ahead as
// far as the automaton allows and backtracks to the last accepting position.
type Simple[I, L, D, C any] struct {
	sc scanner[I, L, D, C]
}

// NewSimple creates a simple lexer. initial is the empty lexeme new tokens
// start with. NewSimple panics if auto or hooks.CombineInput is nil.
func NewSimple[I, L, D, C any](initial L, auto Automaton[I, D, C], hooks Hooks[I, L, D, C]) *Simple[I, L, D, C] {
	return &Simple[I, L, D, C]{sc: makeScanner(initial, auto, hooks, 0)}
}

// Build scans the longest token at the start of input.
// See interface Lexer.
func (lx *Simple[I, L, D, C]) Build(input []I, ctx C) (Token[L, D], C, []I) {
	return lx.sc.build(input, ctx)
}

// Skip drops the first input symbol.
func (lx *Simple[I, L, D, C]) Skip(input []I, ctx C) ([]I, C) {
	return lx.sc.skip(input, ctx)
}

// TokenStream returns a lazy stream of all tokens of input, failed ones included.
func (lx *Simple[I, L, D, C]) TokenStream(input []I, ctx C) *Stream[L, D, C] {
	return BuildTokenStream[I, L, D, C](lx, input, ctx)
}

// SuccessfulTokenStream returns a lazy stream of the successfully lexed tokens of input.
func (lx *Simple[I, L, D, C]) SuccessfulTokenStream(input []I, ctx C) *Stream[L, D, C] {
	return BuildOnlySuccessfulTokenStream[I, L, D, C](lx, input, ctx)
}

// --- Linear lexer ----------------------------------------------------------

// Linear is a lexer with bounded read-ahead: it never reads more than Window
// symbols past the last accepting position (or past the start of the token, if
// nothing has been accepted yet). A match is therefore never extended by more
// than Window symbols without an accept in between. Memory used for streaming
// input is bounded by the length of the current lexeme plus Window.
//
// With a window of 0 (unlimited), Linear behaves exactly like Simple.
type Linear[I, L, D, C any] struct {
	sc scanner[I, L, D, C]
}

// NewLinear creates a lexer with a read-ahead window. window <= 0 means unlimited.
// NewLinear panics if auto or hooks.CombineInput is nil.
func NewLinear[I, L, D, C any](window int, initial L, auto Automaton[I, D, C],
	hooks Hooks[I, L, D, C]) *Linear[I, L, D, C] {
	//
	return &Linear[I, L, D, C]{sc: makeScanner(initial, auto, hooks, window)}
}

// Window returns the read-ahead limit of the lexer; 0 means unlimited.
func (lx *Linear[I, L, D, C]) Window() int {
	return lx.sc.window
}

// Build scans the longest token at the start of input, reading ahead at most
// Window symbols past the last accept.
func (lx *Linear[I, L, D, C]) Build(input []I, ctx C) (Token[L, D], C, []I) {
	return lx.sc.build(input, ctx)
}

// Skip drops the first input symbol.
func (lx *Linear[I, L, D, C]) Skip(input []I, ctx C) ([]I, C) {
	return lx.sc.skip(input, ctx)
}

// BuildFrom scans the longest token from a buffer. On success, the matched
// symbols are removed from the buffer; on failure, the buffer is left
// unchanged (apart from symbols read ahead into it).
func (lx *Linear[I, L, D, C]) BuildFrom(buf *Buffer[I], ctx C) (Token[L, D], C) {
	tok, ctx, n := lx.sc.scan(buf, ctx)
	if n > 0 {
		buf.discard(n)
	}
	return tok, ctx
}

// SkipFrom drops the next symbol of a buffer.
func (lx *Linear[I, L, D, C]) SkipFrom(buf *Buffer[I], ctx C) C {
	in, ok := buf.peek(0)
	if !ok {
		return ctx
	}
	buf.discard(1)
	return lx.sc.hooks.skip(in, ctx)
}

// TokenStream returns a lazy stream of all tokens of input, failed ones included.
func (lx *Linear[I, L, D, C]) TokenStream(input []I, ctx C) *Stream[L, D, C] {
	return BuildTokenStream[I, L, D, C](lx, input, ctx)
}

// SuccessfulTokenStream returns a lazy stream of the successfully lexed tokens of input.
func (lx *Linear[I, L, D, C]) SuccessfulTokenStream(input []I, ctx C) *Stream[L, D, C] {
	return BuildOnlySuccessfulTokenStream[I, L, D, C](lx, input, ctx)
}

// StreamFrom returns a lazy stream of all tokens read from a buffer. The stream
// ends when the buffer is exhausted or its reader fails; check buf.Err().
func (lx *Linear[I, L, D, C]) StreamFrom(buf *Buffer[I], ctx C) *Stream[L, D, C] {
	return newStream(ctx, func(ctx C) (Token[L, D], C, bool) {
		if buf.Empty() {
			return Token[L, D]{}, ctx, false
		}
		before := buf.Consumed()
		tok, ctx := lx.BuildFrom(buf, ctx)
		if tok.Err != nil {
			return tok, lx.SkipFrom(buf, ctx), true
		}
		if buf.Consumed() == before {
			tok.Err = ErrNoProgress
			buf.close()
		}
		return tok, ctx, true
	})
}
