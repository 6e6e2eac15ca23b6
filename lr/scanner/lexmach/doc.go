/*
Package lexmach lets the lexmachine scanner generator produce token streams
for the LR(1) parsers of package lrone.

For more information on lexmachine, see e.g.
https://hackthology.com/how-to-tokenize-complex-strings-with-lexmachine.html

A lexer is compiled from a list of rules. Each rule pairs a lexmachine
regular expression with the token type to produce. Rules added earlier win
over later ones for matches of equal length, so keywords go first:

	lx, err := lexmach.Compile(
	    lexmach.Keyword("let", Let),
	    lexmach.Pattern(`[a-z]+`, scanner.Ident),
	    lexmach.Pattern(`[0-9]+`, scanner.Int),
	    lexmach.Literal("=", '='),
	    lexmach.Skip(`( |\t|\n)+`),
	)

Tokens of an input are delivered as a stream of lex.Token[string, lexlr.Token].
Token data is a scanner.DefaultToken carrying the byte span of the token
and, as its value, the lexeme. Input no rule matches results in a token with
an error, after which lexing resumes behind the offending input.

	tokens, err := lx.Tokens("let x = 7")
	result, err := parser.ParseStream(tokens)   // parser is an *lrone.Parser

Package calc uses a lexmachine lexer to cross-check its own token automaton.

________________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package lexmach
