package lrone

import (
	"fmt"

	"github.com/npillmayer/lexlr"
	"github.com/npillmayer/lexlr/lex"
	"github.com/npillmayer/lexlr/lr"
	"github.com/npillmayer/schuko/gconf"
	"github.com/pkg/errors"
)

// Parser is an LR(1)-parser type. Create and initialize one with
// lrone.NewParser(...). A parser may be used for more than one parse, but
// not concurrently.
type Parser[L any, D lexlr.Typed, R any] struct {
	G       *lr.Grammar[L, D, R]
	actionT lr.ActionTable
	gotoT   lr.GotoTable
	onToken func(lex.Token[L, D]) error
	onEOF   func() error
}

// TokenSource is a source of tokens for a parse. *lex.Stream implements it.
type TokenSource[L, D any] interface {
	Next() (lex.Token[L, D], bool)
}

// SyntaxError is the default error for a parse running into an error entry
// of the ACTION or GOTO table.
type SyntaxError struct {
	Lexeme  interface{}   // lexeme of the offending token, if any
	TokType lexlr.TokType // type of the offending token
	Name    string        // display name of the token type
	EOF     bool          // parser ran into an unexpected end of input
	State   int           // parser state
}

func (e *SyntaxError) Error() string {
	if e.EOF {
		return fmt.Sprintf("syntax error: unexpected end of input (state %d)", e.State)
	}
	return fmt.Sprintf("syntax error: unexpected %s %q (state %d)", e.Name, fmt.Sprint(e.Lexeme), e.State)
}

// NewParser creates an LR(1) parser for a grammar. The tables have to be
// created for the same grammar; if lr.Compile has been used, this is the
// augmented grammar.
func NewParser[L any, D lexlr.Typed, R any](g *lr.Grammar[L, D, R], actions lr.ActionTable,
	gotos lr.GotoTable) *Parser[L, D, R] {
	//
	return &Parser[L, D, R]{G: g, actionT: actions, gotoT: gotos}
}

// SetErrorHandlers sets constructors for parse errors. onToken is called
// for an unexpected token, onEOF for an unexpected end of input. Either may
// be nil, resulting in a *SyntaxError.
func (p *Parser[L, D, R]) SetErrorHandlers(onToken func(lex.Token[L, D]) error, onEOF func() error) {
	p.onToken = onToken
	p.onEOF = onEOF
}

type sliceSource[L, D any] struct {
	tokens []lex.Token[L, D]
}

func (s *sliceSource[L, D]) Next() (lex.Token[L, D], bool) {
	if len(s.tokens) == 0 {
		return lex.Token[L, D]{}, false
	}
	t := s.tokens[0]
	s.tokens = s.tokens[1:]
	return t, true
}

// Parse parses a sequence of tokens and returns the result built for the
// start symbol.
func (p *Parser[L, D, R]) Parse(tokens []lex.Token[L, D]) (R, error) {
	return p.ParseStream(&sliceSource[L, D]{tokens: tokens})
}

// ParseStream parses tokens read from a token source until the start symbol
// has been reduced at the end of input. Tokens carrying a lex error abort
// the parse.
func (p *Parser[L, D, R]) ParseStream(src TokenSource[L, D]) (R, error) {
	tracer().Debugf("~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~")
	var none R
	if p.G == nil || p.actionT == nil || p.gotoT == nil {
		tracer().Errorf("LR(1)-parser not initialized")
		return none, errors.New("LR(1)-parser not initialized")
	}
	states := []int{0} // state stack, bottom state is 0
	var results []R    // results of the symbols, parallel to states[1:]
	la, more, err := next(src)
	if err != nil {
		return none, p.fail(err)
	}
	for {
		state := states[len(states)-1]
		tokval := lr.EOF
		if more {
			tokval = la.Data.TokType()
		}
		action := p.actionT.Action(state, tokval)
		tracer().Debugf("action(%d,%s) = %v", state, p.G.TokenName(tokval), action)
		switch action.Kind {
		case lr.ShiftAction:
			r, err := p.G.TerminalResult(la.Lexeme, la.Data)
			if err != nil {
				return none, p.fail(errors.Wrapf(err, "cannot build result for %v", la.Lexeme))
			}
			tracer().Debugf("shift %v, next state = %d", la.Lexeme, action.State)
			results = append(results, r)
			states = append(states, action.State)
			if la, more, err = next(src); err != nil {
				return none, p.fail(err)
			}
		case lr.ReduceAction:
			prod := p.G.Production(action.Production)
			n := prod.Len()
			if n > len(results) {
				return none, p.fail(errors.Errorf("parser stack underflow reducing %s", p.G.RuleString(prod.Rule)))
			}
			children := append([]R(nil), results[len(results)-n:]...)
			results = results[:len(results)-n]
			states = states[:len(states)-n]
			r, err := prod.BuildResult(children)
			if err != nil {
				return none, p.fail(errors.Wrapf(err, "reduce %s", p.G.RuleString(prod.Rule)))
			}
			tracer().Debugf("reduce %s", p.G.RuleString(prod.Rule))
			if prod.Source == p.G.Start() && !more {
				tracer().Infof("accept")
				return r, nil
			}
			results = append(results, r)
			to, ok := p.gotoT.Goto(states[len(states)-1], prod.Source)
			if !ok {
				return none, p.fail(p.syntaxError(la, more, states[len(states)-1]))
			}
			states = append(states, to)
		default:
			return none, p.fail(p.syntaxError(la, more, state))
		}
	}
}

func next[L, D any](src TokenSource[L, D]) (lex.Token[L, D], bool, error) {
	t, ok := src.Next()
	if ok && t.Err != nil {
		return t, ok, errors.Wrapf(t.Err, "lexical error at %v", t.Lexeme)
	}
	return t, ok, nil
}

func (p *Parser[L, D, R]) syntaxError(la lex.Token[L, D], more bool, state int) error {
	if !more {
		if p.onEOF != nil {
			return p.onEOF()
		}
		return &SyntaxError{EOF: true, TokType: lr.EOF, Name: p.G.TokenName(lr.EOF), State: state}
	}
	if p.onToken != nil {
		return p.onToken(la)
	}
	tokval := la.Data.TokType()
	return &SyntaxError{Lexeme: la.Lexeme, TokType: tokval, Name: p.G.TokenName(tokval), State: state}
}

func (p *Parser[L, D, R]) fail(err error) error {
	tracer().Errorf("%v", err)
	if gconf.GetBool("panic-on-parser-error") {
		panic(fmt.Sprintf(`LR(1)-parser failed: %v

Configuration flag panic-on-parser-error is set to true. It is aimed at helping
to debug a parser and do a post-mortem of why it failed. If you did not expect
this to panic, please unset panic-on-parser-error to its default (false).`, err))
	}
	return err
}
