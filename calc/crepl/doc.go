/*
Package crepl/main provides an interactive command line tool (C.REPL) for
the calculator language of package calc. Users enter arithmetic expressions,
one per line. C.REPL prints the value of the expression, and optionally the
tokens and the parse tree. Assignments "name = expression" define variables.
The commands ":vars" and ":reset" list and discard variables.

    crepl -tokens -trace=Debug "1 + 2 * 3"

Flags:

    -trace   trace level [Debug|Info|Error]
    -tokens  print the tokens of every input line
    -tree    print the parse tree of every input line
    -tables  print the grammar, the token automaton and the parse tables
    -check   cross-check the tokens of every input line against lexmachine

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package main

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'lexlr.calc'
func tracer() tracing.Trace {
	return tracing.Select("lexlr.calc")
}
