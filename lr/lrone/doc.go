/*
Package lrone provides a table-driven LR(1) parser runtime.

The parser is an interpreter over an ACTION table and a GOTO table, as
created by package lr. It performs no grammar analysis of its own. Input
is a sequence of tokens as produced by the lexers of package lex, i.e.
pairs of a lexeme and token data, where the token data is able to tell its
token type.

Usage

	ga, tables, err := lr.Compile(g)   // g is an *lr.Grammar[L, D, R]
	if err != nil { ... }              // grammar is not LR(1)
	p := lrone.NewParser(ga, tables, tables)
	result, err := p.Parse(tokens)

For every reduction the parser calls the builder of the production
reduced, and for every shift the grammar's terminal result constructor.
The result of the final reduction of the start symbol is the result of the
parse.

Parse errors are fatal to a parse. Clients may supply their own error
constructors for unexpected tokens and for an unexpected end of input, in
order to produce tailored diagnostics.

Configuration

If the global configuration flag "panic-on-parser-error" is set, the
parser panics instead of returning an error. This may help with a
post-mortem of a grammar's tables.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package lrone

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'lexlr.lr'.
func tracer() tracing.Trace {
	return tracing.Select("lexlr.lr")
}
