/*
Package scanner defines an interface for scanners to be used with parsers of package lrone.

Two default scanner implementations are provided: (1) a thin wrapper over the Go std lib
'text/scanner', and (2) an adapter for lexmachine, living in sub-package `lexmach`.

Tokenizers produce tokens of type lexlr.Token. The LR(1) parser consumes tokens of
package lex, i.e. pairs of a lexeme and token data. Use Tokens or Collect to convert
the output of a tokenizer:

    p := lrone.NewParser(g, tables, tables)   // g has token data of type lexlr.Token
    result, err := p.ParseStream(scanner.Tokens(tokenizer))

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package scanner

import (
	"fmt"
	"io"
	"text/scanner"

	"github.com/npillmayer/lexlr"
	"github.com/npillmayer/lexlr/lex"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'lexlr.scanner'.
func tracer() tracing.Trace {
	return tracing.Select("lexlr.scanner")
}

// EOF is identical to text/scanner.EOF.
// Token types are replicated here for practical reasons.
const (
	EOF       = scanner.EOF
	Ident     = scanner.Ident
	Int       = scanner.Int
	Float     = scanner.Float
	Char      = scanner.Char
	String    = scanner.String
	RawString = scanner.RawString
	Comment   = scanner.Comment
)

// Tokenizer is a scanner interface.
type Tokenizer interface {
	NextToken() lexlr.Token
	SetErrorHandler(func(error))
}

// DefaultTokenizer is a default implementation, backed by scanner.Scanner.
// Create one with GoTokenizer.
type DefaultTokenizer struct {
	scanner.Scanner
	lastToken    rune        // last token this scanner has produced
	Error        func(error) // error handler
	unifyStrings bool        // convert single chars to strings
}

var _ Tokenizer = (*DefaultTokenizer)(nil)

// Default error reporting function for scanners
func logError(e error) {
	tracer().Errorf("scanner error: %v", e)
}

// GoTokenizer creates a scanner/tokenizer accepting tokens similar to the Go language.
func GoTokenizer(sourceID string, input io.Reader, opts ...Option) *DefaultTokenizer {
	t := &DefaultTokenizer{}
	t.Error = logError
	t.Init(input)
	t.Filename = sourceID
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// SetErrorHandler sets an error handler for the scanner.
func (t *DefaultTokenizer) SetErrorHandler(h func(error)) {
	if h == nil {
		t.Error = logError
		return
	}
	t.Error = h
}

// NextToken is part of the Tokenizer interface.
func (t *DefaultTokenizer) NextToken() lexlr.Token {
	t.lastToken = t.Scan()
	if t.lastToken == scanner.EOF {
		tracer().Debugf("DefaultTokenizer reached end of input")
	}
	if t.unifyStrings &&
		(t.lastToken == scanner.RawString || t.lastToken == scanner.Char) {
		t.lastToken = scanner.String
	}
	return DefaultToken{
		kind:   lexlr.TokType(t.lastToken),
		lexeme: t.TokenText(),
		span:   lexlr.Span{uint64(t.Position.Offset), uint64(t.Pos().Offset)},
	}
}

// --- Default tokens --------------------------------------------------------

// DefaultToken is a very unsophisticated token type, used as default for the Go
// tokenizer as well as the LexMachine scanner.
type DefaultToken struct {
	kind   lexlr.TokType
	lexeme string
	Val    interface{}
	span   lexlr.Span
}

// MakeDefaultToken creates a token from its parts.
func MakeDefaultToken(typ lexlr.TokType, lexeme string, span lexlr.Span) DefaultToken {
	return DefaultToken{
		kind:   typ,
		lexeme: lexeme,
		span:   span,
	}
}

// WithValue returns a copy of t carrying a value.
func (t DefaultToken) WithValue(v interface{}) DefaultToken {
	t.Val = v
	return t
}

func (t DefaultToken) String() string {
	return fmt.Sprintf("<%d|%q>", t.kind, t.lexeme)
}

// TokType is part of the lexlr.Token interface.
func (t DefaultToken) TokType() lexlr.TokType {
	return t.kind
}

func (t DefaultToken) Value() interface{} {
	return t.Val
}

func (t DefaultToken) Lexeme() string {
	return t.lexeme
}

func (t DefaultToken) Span() lexlr.Span {
	return t.span
}

// --- Scanner options for the default (Go) tokenizer ---------------------------

// Option configures a default tokenier.
type Option func(p *DefaultTokenizer)

// SkipComments sets or clears mode-flag SkipComments.
func SkipComments(b bool) Option {
	return func(t *DefaultTokenizer) {
		if b {
			t.Mode |= scanner.SkipComments
		} else {
			t.Mode &^= scanner.SkipComments
		}
	}
}

// UnifyStrings sets or clears option UnifyStrings:
// treat raw strings and single chars as strings.
func UnifyStrings(b bool) Option {
	return func(t *DefaultTokenizer) {
		t.unifyStrings = b
	}
}

// Lexeme is a helper function to receive a string from a token.
func Lexeme(token interface{}) string {
	switch t := token.(type) {
	case string:
		return t
	case []byte:
		return string(t)
	default:
		return fmt.Sprintf("%v", t)
	}
}

// --- Token streams ---------------------------------------------------------

// TokenStream reads tokens from a tokenizer, until EOF. It implements
// lrone.TokenSource.
type TokenStream struct {
	tokenizer Tokenizer
	done      bool
}

// Tokens creates a token stream for a tokenizer.
func Tokens(t Tokenizer) *TokenStream {
	return &TokenStream{tokenizer: t}
}

// Next returns the next token, with the lexeme as a string and the token
// itself as token data. The EOF token is not passed on.
func (ts *TokenStream) Next() (lex.Token[string, lexlr.Token], bool) {
	if ts.done {
		return lex.Token[string, lexlr.Token]{}, false
	}
	token := ts.tokenizer.NextToken()
	if token.TokType() == EOF {
		ts.done = true
		return lex.Token[string, lexlr.Token]{}, false
	}
	return lex.Token[string, lexlr.Token]{Lexeme: token.Lexeme(), Data: token}, true
}

// Collect drains a tokenizer and returns all tokens read before EOF.
func Collect(t Tokenizer) []lex.Token[string, lexlr.Token] {
	var tokens []lex.Token[string, lexlr.Token]
	ts := Tokens(t)
	for token, ok := ts.Next(); ok; token, ok = ts.Next() {
		tokens = append(tokens, token)
	}
	tracer().Debugf("collected %d tokens", len(tokens))
	return tokens
}
