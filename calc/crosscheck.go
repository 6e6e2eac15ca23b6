package calc

import (
	"github.com/npillmayer/lexlr/lr/scanner/lexmach"
	"github.com/pkg/errors"
)

// lexmachineTokens creates a lexmachine lexer for the tokens of the
// calculator language, restricted to ASCII letters. Constants are added
// before identifiers, as lexmachine prefers earlier rules for matches of
// equal length.
func lexmachineTokens() (*lexmach.Lexer, error) {
	return lexmach.Compile(
		lexmach.Pattern(`pi|e`, Const),
		lexmach.Pattern(`[0-9]+(\.[0-9]+)?`, Number),
		lexmach.Pattern(`([a-z]|[A-Z])+`, Ident),
		lexmach.Literal("+", '+'),
		lexmach.Literal("-", '-'),
		lexmach.Literal("*", '*'),
		lexmach.Literal("/", '/'),
		lexmach.Literal("(", '('),
		lexmach.Literal(")", ')'),
		lexmach.Literal("=", '='),
		lexmach.Skip(`( |\t|\r|\n)+`),
	)
}

// CrossCheck lexes input with both the calculator's token automaton and a
// lexer generated by lexmachine, and reports the first token where they
// disagree. Failed tokens agree if both lexers fail at the same token
// index. Non-ASCII letters are not recognized by lexmachine.
func (c *Calculator) CrossCheck(input string) error {
	want, err := c.oracle.Collect(input)
	if err != nil {
		return err
	}
	have := c.Tokens(input)
	for i := 0; i < len(want) || i < len(have); i++ {
		switch {
		case i >= len(have):
			return errors.Errorf("token #%d: automaton ended, lexmachine has %v", i, want[i])
		case i >= len(want):
			return errors.Errorf("token #%d: lexmachine ended, automaton has %v", i, have[i])
		}
		h, w := have[i], want[i]
		if h.Err != nil || w.Err != nil {
			if h.Err == nil || w.Err == nil {
				return errors.Errorf("token #%d: automaton has %v, lexmachine has %v", i, h, w)
			}
			continue
		}
		if h.Lexeme != w.Lexeme || h.Data.Kind != w.Data.TokType() {
			return errors.Errorf("token #%d: automaton has %q/%s, lexmachine has %q/%s", i,
				h.Lexeme, TokenName(h.Data.Kind), w.Lexeme, TokenName(w.Data.TokType()))
		}
	}
	tracer().Debugf("lexmachine agrees on %d tokens", len(have))
	return nil
}
