package lex

// Stream is a lazy sequence of tokens. Tokens are built on demand by Next.
// A stream is not restartable: tokens, once pulled, are gone.
//
// After a failed token the stream drops one input symbol (see Hooks.Skip) and
// continues, so a stream always makes progress and ends on finite input.
type Stream[L, D, C any] struct {
	ctx            C
	step           func(C) (Token[L, D], C, bool)
	done           bool
	successfulOnly bool
}

func newStream[L, D, C any](ctx C, step func(C) (Token[L, D], C, bool)) *Stream[L, D, C] {
	return &Stream[L, D, C]{ctx: ctx, step: step}
}

// BuildTokenStream returns a lazy stream of all tokens of input, failed ones
// included. The context is threaded from token to token.
func BuildTokenStream[I, L, D, C any](lx Lexer[I, L, D, C], input []I, ctx C) *Stream[L, D, C] {
	rest := input
	return newStream(ctx, func(ctx C) (Token[L, D], C, bool) {
		if len(rest) == 0 {
			return Token[L, D]{}, ctx, false
		}
		tok, ctx, remaining := lx.Build(rest, ctx)
		switch {
		case tok.Err != nil:
			rest, ctx = lx.Skip(rest, ctx)
		case len(remaining) == len(rest):
			tok.Err = ErrNoProgress
			rest = nil
		default:
			rest = remaining
		}
		return tok, ctx, true
	})
}

// BuildOnlySuccessfulTokenStream returns a lazy stream of the successfully
// lexed tokens of input. Failed tokens are dropped silently.
func BuildOnlySuccessfulTokenStream[I, L, D, C any](lx Lexer[I, L, D, C], input []I, ctx C) *Stream[L, D, C] {
	return BuildTokenStream(lx, input, ctx).Successful()
}

// Next returns the next token, if any.
func (s *Stream[L, D, C]) Next() (Token[L, D], bool) {
	for !s.done {
		tok, ctx, ok := s.step(s.ctx)
		if !ok {
			s.done = true
			break
		}
		s.ctx = ctx
		if s.successfulOnly && tok.Err != nil {
			tracer().Debugf("dropping token %v", tok)
			continue
		}
		return tok, true
	}
	return Token[L, D]{}, false
}

// Context returns the lexer context after the last token pulled.
func (s *Stream[L, D, C]) Context() C {
	return s.ctx
}

// Successful switches the stream to drop failed tokens, and returns it.
func (s *Stream[L, D, C]) Successful() *Stream[L, D, C] {
	s.successfulOnly = true
	return s
}

// Collect pulls all remaining tokens.
func (s *Stream[L, D, C]) Collect() []Token[L, D] {
	var tokens []Token[L, D]
	for tok, ok := s.Next(); ok; tok, ok = s.Next() {
		tokens = append(tokens, tok)
	}
	return tokens
}
