/*
Package lexlr is a toolkit for compiler front-ends: lexical analyzers driven
by finite automata and LR(1) parsers driven by action and goto tables.

lexlr does not emit code. Clients describe automata and grammars as data,
and the packages of this module execute them. Package structure is
as follows:

■ fa: Package fa implements nondeterministic and deterministic finite
automata over input classes, together with the subset construction to
convert between them.

■ lex: Package lex implements maximal-munch lexers walking a DFA and
threading a client-defined context through every step. Sub-package charlex
provides a ready-made lexer for runes with line/column tracking.

■ lr: Package lr implements grammars, LR(1) parse tables and their
construction. Sub-package lrone is the table-driven LR(1) parser runtime.

■ calc: A small arithmetic language wiring all of the above together.

The base package contains data types which are used throughout all the other packages.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package lexlr
