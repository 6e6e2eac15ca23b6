/*
Package charlex provides lexers on runes which keep track of line and column
positions.

The lexer context is a Context value, holding for lines, columns and rune
offsets the starting position of the current token, the position of the
last rune read, and the ending position of the last accepting prefix. Lines
and columns are 1-based, offsets count runes from 0.

    auto := charlex.Positioned(dfa)          // data carries token type + position
    lx := charlex.NewSimple(auto)
    tokens := lx.SuccessfulTokenStream(charlex.Runes("x = 7"), charlex.Init).Collect()

Lex errors are reported as *LineError, pointing to the start of the
offending input.

Input classes are usually defined by a RuneCategorizer:

    cats := charlex.Categorizer(
        charlex.In(unicode.Digit),   // class 0
        charlex.AnyOf("+-"),         // class 1
    )
    nfa := fa.NewNFA[rune, Tok](states, cats.Classes(), cats.Cat)

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package charlex

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'lexlr.lex'.
func tracer() tracing.Trace {
	return tracing.Select("lexlr.lex")
}
