package lex

import (
	"fmt"

	"github.com/pkg/errors"
)

// Token is the result of a lexer run: the matched lexeme together with either
// the token data or a lex error.
type Token[L, D any] struct {
	Lexeme L
	Data   D     // valid if Err is nil
	Err    error // non-nil for failed tokens
}

// OK is a predicate: has the token been lexed successfully?
func (t Token[L, D]) OK() bool {
	return t.Err == nil
}

func (t Token[L, D]) String() string {
	if t.Err != nil {
		return fmt.Sprintf("<%v | error: %v>", t.Lexeme, t.Err)
	}
	return fmt.Sprintf("<%v | %v>", t.Lexeme, t.Data)
}

// LexError is the default error for input without any accepting prefix.
type LexError struct {
	Lexeme interface{} // the lexeme read until the automaton stopped
}

func (e *LexError) Error() string {
	return fmt.Sprintf("no token matches input %q", fmt.Sprint(e.Lexeme))
}

// ErrNoProgress is set on a stream token if an automaton accepted the empty
// lexeme but could not match any of the remaining input. Streams end after
// such a token.
var ErrNoProgress = errors.New("lexer accepted empty input without progress")
