package lexmach

import (
	"strings"

	"github.com/npillmayer/lexlr"
	"github.com/npillmayer/lexlr/lex"
	"github.com/npillmayer/lexlr/lr/lrone"
	"github.com/npillmayer/lexlr/lr/scanner"
	"github.com/npillmayer/schuko/tracing"
	"github.com/pkg/errors"

	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"
)

// tracer traces with key 'lexlr.scanner'.
func tracer() tracing.Trace {
	return tracing.Select("lexlr.scanner")
}

// Rule pairs a lexmachine regular expression with the token type it produces.
type Rule struct {
	Pattern string
	Type    lexlr.TokType
	skip    bool
}

// Pattern is a rule for a regular expression.
func Pattern(re string, t lexlr.TokType) Rule {
	return Rule{Pattern: re, Type: t}
}

// Literal is a rule matching lit verbatim.
func Literal(lit string, t lexlr.TokType) Rule {
	var b strings.Builder
	for _, r := range lit {
		b.WriteRune('\\')
		b.WriteRune(r)
	}
	return Rule{Pattern: b.String(), Type: t}
}

// Keyword is a rule matching the lower case form of kw.
func Keyword(kw string, t lexlr.TokType) Rule {
	return Rule{Pattern: strings.ToLower(kw), Type: t}
}

// Skip is a rule for input to drop, e.g. white space or comments.
func Skip(re string) Rule {
	return Rule{Pattern: re, skip: true}
}

func (r Rule) action() lexmachine.Action {
	if r.skip {
		return func(*lexmachine.Scanner, *machines.Match) (interface{}, error) {
			return nil, nil
		}
	}
	return func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		return s.Token(int(r.Type), string(m.Bytes), m), nil
	}
}

// Lexer is a compiled lexmachine lexer.
type Lexer struct {
	lm *lexmachine.Lexer
}

// Compile creates a lexer from rules. It fails if lexmachine is unable to
// construct a DFA from the rules' patterns.
func Compile(rules ...Rule) (*Lexer, error) {
	lm := lexmachine.NewLexer()
	for _, r := range rules {
		lm.Add([]byte(r.Pattern), r.action())
	}
	if err := lm.Compile(); err != nil {
		tracer().Errorf("lexmachine cannot compile %d rules: %v", len(rules), err)
		return nil, errors.Wrap(err, "cannot compile lexmachine DFA")
	}
	return &Lexer{lm: lm}, nil
}

// Tokens creates a token stream for input.
func (lx *Lexer) Tokens(input string) (*Stream, error) {
	text := []byte(input)
	sc, err := lx.lm.Scanner(text)
	if err != nil {
		return nil, errors.Wrap(err, "cannot create lexmachine scanner")
	}
	return &Stream{scanner: sc, text: text}, nil
}

// Collect lexes input and returns all tokens, failed ones included.
func (lx *Lexer) Collect(input string) ([]lex.Token[string, lexlr.Token], error) {
	s, err := lx.Tokens(input)
	if err != nil {
		return nil, err
	}
	var tokens []lex.Token[string, lexlr.Token]
	for t, ok := s.Next(); ok; t, ok = s.Next() {
		tokens = append(tokens, t)
	}
	return tokens, nil
}

// Stream is a stream of tokens, delivered by a lexmachine scanner.
type Stream struct {
	scanner *lexmachine.Scanner
	text    []byte
	done    bool
}

var _ lrone.TokenSource[string, lexlr.Token] = (*Stream)(nil)

// Next returns the next token, if any. Token spans are byte offsets into
// the input.
func (s *Stream) Next() (lex.Token[string, lexlr.Token], bool) {
	if s.done {
		return lex.Token[string, lexlr.Token]{}, false
	}
	tok, err, eos := s.scanner.Next()
	if eos {
		s.done = true
		return lex.Token[string, lexlr.Token]{}, false
	}
	if err != nil {
		return s.unconsumed(err), true
	}
	t := tok.(*lexmachine.Token)
	tracer().Debugf("lexmachine token %d %q @%d", t.Type, t.Lexeme, t.TC)
	lexeme := string(t.Lexeme)
	span := lexlr.Span{uint64(t.TC), uint64(t.TC + len(t.Lexeme))}
	data := scanner.MakeDefaultToken(lexlr.TokType(t.Type), lexeme, span).WithValue(t.Value)
	return lex.Token[string, lexlr.Token]{Lexeme: lexeme, Data: data}, true
}

// unconsumed turns a scanner error into a failed token. After unmatched
// input, the scanner resumes behind it; any other error ends the stream.
func (s *Stream) unconsumed(err error) lex.Token[string, lexlr.Token] {
	ui, ok := err.(*machines.UnconsumedInput)
	if !ok {
		s.done = true
		return lex.Token[string, lexlr.Token]{Err: errors.Wrap(err, "lexmachine")}
	}
	start, resume := ui.StartTC, ui.FailTC
	if resume <= start {
		resume = start + 1
	}
	if resume > len(s.text) {
		resume = len(s.text)
	}
	s.scanner.TC = resume
	lexeme := string(s.text[start:resume])
	tracer().Debugf("lexmachine skips unmatched input %q", lexeme)
	return lex.Token[string, lexlr.Token]{
		Lexeme: lexeme,
		Err:    &lex.LexError{Lexeme: lexeme},
	}
}
