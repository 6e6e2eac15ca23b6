/*
Package lr implements grammars and parse tables for LR(1) parsing.

Building a Grammar

Grammars are specified using a grammar builder object. Clients add
rules, consisting of non-terminal symbols and terminals. Terminals
carry a token type. Every rule has a builder function, which computes the
result of a reduction from the results of the right hand side symbols.
The first rule defines the start symbol.

Example:

    b := lr.NewGrammarBuilder[string, Tok, *Node]("G")
    b.LHS("S").N("A").T("a", 1).End(node)  // S  ->  A a
    b.LHS("A").N("B").N("D").End(node)     // A  ->  B D
    b.LHS("B").T("b", 2).End(node)         // B  ->  b
    b.LHS("B").Epsilon(node)               // B  ->
    b.LHS("D").T("d", 3).End(node)         // D  ->  d
    b.LHS("D").Epsilon(node)               // D  ->
    g, err := b.Grammar(leaf)              // leaf builds results for terminals

This results in the following trivial grammar:

    g.Dump(os.Stdout)

    0: [S] ::= [A a]
    1: [A] ::= [B D]
    2: [B] ::= [b]
    3: [B] ::= []
    4: [D] ::= [d]
    5: [D] ::= []

Grammars are immutable. Productions are compared structurally (left hand
side and right hand side), never by their builder functions; a grammar never
contains two structurally equal productions.

Parse Tables

Parsers of package lrone are driven by an ACTION table and a GOTO table.
Clients may create them by hand with a TableBuilder, or have them
generated for a grammar. Table generation is canonical LR(1): a
characteristic finite state machine (CFSM) of LR(1) item sets is built from
the grammar and transformed into ACTION and GOTO tables. The CFSM will not be
thrown away, but is made available to the client. This is intended for
debugging purposes. It can be exported to Graphviz's Dot-format.

    ga, tables, err := lr.Compile(g)    // augment g and generate tables

Compile augments the grammar with a new start rule S' -> S before
generating the tables, and the parser has to use the augmented grammar.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package lr

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'lexlr.lr'.
func tracer() tracing.Trace {
	return tracing.Select("lexlr.lr")
}
