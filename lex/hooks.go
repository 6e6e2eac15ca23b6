package lex

// Hooks are the functions by which a lexer communicates with its client.
// Every hook receives the current context and returns a new one; the lexer
// keeps no other state between steps. CombineInput is mandatory, all other
// hooks may be left nil.
type Hooks[I, L, D, C any] struct {
	// ReadInput is called for every input symbol consumed.
	ReadInput func(in I, ctx C) C
	// CombineInput appends an input symbol to a lexeme.
	CombineInput func(lexeme L, in I) L
	// OnToken is called whenever the automaton reaches an accepting state.
	// This does not end the scan, as a longer match may follow.
	OnToken func(lexeme L, data D, ctx C) C
	// MakeError creates the error for input without an accepting prefix.
	// If nil, a *LexError is created.
	MakeError func(lexeme L, ctx C) error
	// OnError derives the context after a failed scan.
	OnError func(lexeme L, ctx C) C
	// OnSuccess derives the context after a successful scan, i.e. after the
	// longest match has been selected.
	OnSuccess func(lexeme L, data D, ctx C) C
	// Skip is called by token streams when they drop an input symbol to
	// resynchronize after a failed token. If nil, ReadInput is used.
	Skip func(in I, ctx C) C
}

func (h Hooks[I, L, D, C]) readInput(in I, ctx C) C {
	if h.ReadInput == nil {
		return ctx
	}
	return h.ReadInput(in, ctx)
}

func (h Hooks[I, L, D, C]) onToken(lexeme L, data D, ctx C) C {
	if h.OnToken == nil {
		return ctx
	}
	return h.OnToken(lexeme, data, ctx)
}

func (h Hooks[I, L, D, C]) makeError(lexeme L, ctx C) error {
	if h.MakeError == nil {
		return &LexError{Lexeme: lexeme}
	}
	return h.MakeError(lexeme, ctx)
}

func (h Hooks[I, L, D, C]) onError(lexeme L, ctx C) C {
	if h.OnError == nil {
		return ctx
	}
	return h.OnError(lexeme, ctx)
}

func (h Hooks[I, L, D, C]) onSuccess(lexeme L, data D, ctx C) C {
	if h.OnSuccess == nil {
		return ctx
	}
	return h.OnSuccess(lexeme, data, ctx)
}

func (h Hooks[I, L, D, C]) skip(in I, ctx C) C {
	if h.Skip == nil {
		return h.readInput(in, ctx)
	}
	return h.Skip(in, ctx)
}
