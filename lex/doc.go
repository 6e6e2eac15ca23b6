/*
Package lex implements a maximal-munch lexer runtime on top of deterministic
automata.

A lexer walks a DFA one input symbol at a time, remembers the longest prefix
which reached an accepting state, and returns it as a token. The lexer itself
never inspects its context: a caller-defined value of type C is threaded
through every step, and only the caller's hooks derive new contexts from it.
This is how line/column tracking or error decoration is plugged in (see
package charlex for a preset working on runes).

Type parameters are named consistently throughout this package:

    I   raw input symbol (e.g., rune)
    L   lexeme, i.e. the accumulated matched input (e.g., string)
    D   token data, computed by an accepting state
    C   lexer context

Two variants are provided: Simple works on a fully materialized input slice
and may read ahead without limit; Linear restricts the read-ahead to a window
of N symbols past the last accepting position, and may therefore also work on
a Buffer fed lazily from a reader.

    lx := lex.NewSimple[rune, string, Tok, Ctx]("", lex.Actions(dfa, makeTok), hooks)
    tok, ctx, rest := lx.Build(input, ctx)

Token streams pull tokens on demand:

    stream := lx.TokenStream(input, ctx)
    for tok, ok := stream.Next(); ok; tok, ok = stream.Next() {
        …
    }

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package lex

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'lexlr.lex'.
func tracer() tracing.Trace {
	return tracing.Select("lexlr.lex")
}
