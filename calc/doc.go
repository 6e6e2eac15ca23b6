/*
Package calc is a small calculator language, built with the tools of
package lexlr. It serves as an example of the complete pipeline: an NFA for
the tokens is converted into a DFA, which drives a rune lexer; the token
stream is parsed by a table-driven LR(1) parser with tables generated from
a grammar. Reductions build a parse tree, decorated with the values of
sub-expressions.

The language consists of arithmetic expressions over floating point
numbers, with the constants pi and e, a handful of functions and variables:

    Stmt   ➞ ident = Expr  |  Expr
    Expr   ➞ Expr + Term  |  Expr - Term  |  Term
    Term   ➞ Term * Factor  |  Term / Factor  |  Factor
    Factor ➞ number  |  const  |  ident  |  ( Expr )  |  - Factor  |  ident ( Expr )

Names are resolved in a runtime environment (see package runtime). Built-in
constants and functions live in the global scope, assignments define
variables in a nested scope, which may shadow built-ins. Reset discards the
variable scope.

Constants are keywords: the input "pi" matches both the rule for constants
and the rule for identifiers. The token automaton resolves this by a
precedence ranking, with constants ranked above identifiers.

Usage

    c, err := calc.New()
    v, err := c.Eval("2 * (3 + 4)")    // v = 14
    v, err = c.Eval("x = sqrt(16)")    // v = 4, defines x

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package calc

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'lexlr.calc'.
func tracer() tracing.Trace {
	return tracing.Select("lexlr.calc")
}
