package calc

import (
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/npillmayer/lexlr"
	"github.com/npillmayer/lexlr/fa"
	"github.com/npillmayer/lexlr/lex"
	"github.com/npillmayer/lexlr/lex/charlex"
	"github.com/npillmayer/lexlr/lr"
	"github.com/npillmayer/lexlr/lr/lrone"
	"github.com/npillmayer/lexlr/lr/scanner/lexmach"
	"github.com/npillmayer/lexlr/runtime"
	"github.com/pkg/errors"
)

// Node is a node of a parse tree. Inner nodes carry the non-terminal they
// have been reduced to, leaves carry the token they have been built for.
// Every node holds the value of the expression it spans.
type Node struct {
	Symbol   string
	Token    *Token // nil for inner nodes
	Value    float64
	Span     lexlr.Span // rune offsets of the input covered
	Children []*Node
}

func (n *Node) String() string {
	if n.Token != nil {
		return fmt.Sprintf("%s (%s)", n.Symbol, n.Token)
	}
	return fmt.Sprintf("%s %v = %g", n.Symbol, n.Span, n.Value)
}

// Each calls f for n and all nodes below n, depth first, with their depth.
func (n *Node) Each(f func(node *Node, depth int)) {
	n.each(f, 0)
}

func (n *Node) each(f func(*Node, int), depth int) {
	f(n, depth)
	for _, ch := range n.Children {
		ch.each(f, depth+1)
	}
}

var constants = map[string]float64{
	"pi": math.Pi,
	"e":  math.E,
}

var functions = map[string]func(float64) float64{
	"sqrt": math.Sqrt,
	"abs":  math.Abs,
	"sin":  math.Sin,
	"cos":  math.Cos,
	"exp":  math.Exp,
	"ln":   math.Log,
}

// Environment creates a runtime environment with the built-in constants and
// functions in its global scope and an empty scope for variables on top.
func Environment() *runtime.Runtime {
	rt := runtime.NewRuntimeEnvironment()
	for name, v := range constants {
		tag, _ := rt.Globals().DefineTag(name)
		tag.WithType(runtime.Value).UData = v
	}
	for name, f := range functions {
		tag, _ := rt.Globals().DefineTag(name)
		tag.WithType(runtime.Function).UData = f
	}
	rt.ScopeTree.PushNewScope("variables")
	return rt
}

func leaf(lexeme string, tok Token) (*Node, error) {
	n := &Node{Symbol: lexeme, Token: &tok, Span: tok.Span}
	if tok.Kind == Number {
		v, err := strconv.ParseFloat(lexeme, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "(%d:%d) illegal number", tok.Line, tok.Column)
		}
		n.Value = v
	}
	return n, nil
}

// node creates a builder for inner nodes, computing the value of a node
// from the values of its children.
func node(nt string, value func(c []*Node) (float64, error)) lr.Builder[*Node] {
	return func(children []*Node) (*Node, error) {
		v, err := value(children)
		if err != nil {
			return nil, err
		}
		n := &Node{Symbol: nt, Value: v, Children: children}
		for _, ch := range children {
			n.Span = n.Span.Extend(ch.Span)
		}
		return n, nil
	}
}

func pass(c []*Node) (float64, error) { return c[0].Value, nil }

// lookup resolves the name of a leaf in rt and checks the type of the tag.
func lookup(rt *runtime.Runtime, n *Node, typ runtime.TagType) (*runtime.Tag, error) {
	what := "variable"
	if typ == runtime.Function {
		what = "function"
	}
	tag := rt.Resolve(n.Symbol)
	if tag == nil {
		return nil, errors.Errorf("(%d:%d) unknown %s %s", n.Token.Line, n.Token.Column, what, n.Symbol)
	}
	if tag.Typ != typ {
		return nil, errors.Errorf("(%d:%d) %s is not a %s", n.Token.Line, n.Token.Column, n.Symbol, what)
	}
	return tag, nil
}

// Grammar creates the grammar of the calculator language. Names are resolved
// in rt, and assignments define variables in the current scope of rt.
func Grammar(rt *runtime.Runtime) (*lr.Grammar[string, Token, *Node], error) {
	b := lr.NewGrammarBuilder[string, Token, *Node]("Calc")
	b.LHS("Stmt").T("ident", Ident).T("=", '=').N("Expr").End(node("Stmt", func(c []*Node) (float64, error) {
		tag, _ := rt.ScopeTree.Current().DefineTag(c[0].Symbol)
		tag.WithType(runtime.Value).UData = c[2].Value
		tracer().Debugf("%s = %g", c[0].Symbol, c[2].Value)
		return c[2].Value, nil
	}))
	b.LHS("Stmt").N("Expr").End(node("Stmt", pass))
	b.LHS("Expr").N("Expr").T("+", '+').N("Term").End(node("Expr", func(c []*Node) (float64, error) {
		return c[0].Value + c[2].Value, nil
	}))
	b.LHS("Expr").N("Expr").T("-", '-').N("Term").End(node("Expr", func(c []*Node) (float64, error) {
		return c[0].Value - c[2].Value, nil
	}))
	b.LHS("Expr").N("Term").End(node("Expr", pass))
	b.LHS("Term").N("Term").T("*", '*').N("Factor").End(node("Term", func(c []*Node) (float64, error) {
		return c[0].Value * c[2].Value, nil
	}))
	b.LHS("Term").N("Term").T("/", '/').N("Factor").End(node("Term", func(c []*Node) (float64, error) {
		if c[2].Value == 0 {
			return 0, errors.Errorf("division by zero")
		}
		return c[0].Value / c[2].Value, nil
	}))
	b.LHS("Term").N("Factor").End(node("Term", pass))
	b.LHS("Factor").T("number", Number).End(node("Factor", pass))
	b.LHS("Factor").T("const", Const).End(node("Factor", func(c []*Node) (float64, error) {
		tag, err := lookup(rt, c[0], runtime.Value)
		if err != nil {
			return 0, err
		}
		return tag.UData.(float64), nil
	}))
	b.LHS("Factor").T("ident", Ident).End(node("Factor", func(c []*Node) (float64, error) {
		tag, err := lookup(rt, c[0], runtime.Value)
		if err != nil {
			return 0, err
		}
		return tag.UData.(float64), nil
	}))
	b.LHS("Factor").T("(", '(').N("Expr").T(")", ')').End(node("Factor", func(c []*Node) (float64, error) {
		return c[1].Value, nil
	}))
	b.LHS("Factor").T("-", '-').N("Factor").End(node("Factor", func(c []*Node) (float64, error) {
		return -c[1].Value, nil
	}))
	b.LHS("Factor").T("ident", Ident).T("(", '(').N("Expr").T(")", ')').End(node("Factor",
		func(c []*Node) (float64, error) {
			tag, err := lookup(rt, c[0], runtime.Function)
			if err != nil {
				return 0, err
			}
			return tag.UData.(func(float64) float64)(c[2].Value), nil
		}))
	return b.Grammar(leaf)
}

// Calculator lexes, parses and evaluates expressions of the calculator
// language.
type Calculator struct {
	Env     *runtime.Runtime
	DFA     *fa.DFA[rune, lexlr.TokType]
	Grammar *lr.Grammar[string, Token, *Node] // augmented grammar
	Tables  *lr.Tables
	auto    lex.Automaton[rune, Token, charlex.Context]
	oracle  *lexmach.Lexer
	parser  *lrone.Parser[string, Token, *Node]
}

// New creates a calculator. It fails if either the token automaton or the
// grammar is defective.
func New() (*Calculator, error) {
	dfa, err := TokenDFA()
	if err != nil {
		return nil, errors.Wrap(err, "cannot create token automaton")
	}
	env := Environment()
	g, err := Grammar(env)
	if err != nil {
		return nil, errors.Wrap(err, "cannot create grammar")
	}
	ga, tables, err := lr.Compile(g)
	if err != nil {
		return nil, errors.Wrap(err, "cannot create parse tables")
	}
	oracle, err := lexmachineTokens()
	if err != nil {
		return nil, errors.Wrap(err, "cannot create lexmachine lexer")
	}
	c := &Calculator{
		oracle:  oracle,
		Env:     env,
		DFA:     dfa,
		Grammar: ga,
		Tables:  tables,
		auto:    automaton(dfa),
	}
	c.parser = lrone.NewParser(ga, tables, tables)
	c.parser.SetErrorHandlers(c.unexpected, nil)
	tracer().Infof("calculator has %d token automaton states and %d parser states",
		dfa.Size(), tables.States())
	return c, nil
}

func (c *Calculator) unexpected(t lex.Token[string, Token]) error {
	return errors.Errorf("(%d:%d) unexpected %s %q", t.Data.Line, t.Data.Column, TokenName(t.Data.Kind), t.Lexeme)
}

// Tokens lexes input and returns all tokens, white space excluded. Failed
// tokens are included.
func (c *Calculator) Tokens(input string) []lex.Token[string, Token] {
	lx := charlex.NewSimple(c.auto)
	var tokens []lex.Token[string, Token]
	src := skipSpace{src: lx.TokenStream(charlex.Runes(input), charlex.Init)}
	for t, ok := src.Next(); ok; t, ok = src.Next() {
		tokens = append(tokens, t)
	}
	return tokens
}

// Parse parses input and returns its parse tree.
func (c *Calculator) Parse(input string) (*Node, error) {
	lx := charlex.NewSimple(c.auto)
	return c.parser.ParseStream(skipSpace{src: lx.TokenStream(charlex.Runes(input), charlex.Init)})
}

// ParseReader parses input read from r. Input is lexed in a streaming
// fashion, with a read-ahead window of window runes.
func (c *Calculator) ParseReader(r io.RuneReader, window int) (*Node, error) {
	lx := charlex.NewLinear(window, c.auto)
	buf := charlex.RuneSource(r)
	tree, err := c.parser.ParseStream(skipSpace{src: lx.StreamFrom(buf, charlex.Init)})
	if buf.Err() != nil {
		return nil, buf.Err()
	}
	return tree, err
}

// Variables returns the names and values of the variables defined so far.
func (c *Calculator) Variables() map[string]float64 {
	vars := make(map[string]float64)
	c.Env.ScopeTree.Current().Tags().Each(func(name string, tag *runtime.Tag) {
		vars[name] = tag.UData.(float64)
	})
	return vars
}

// Reset discards all variables.
func (c *Calculator) Reset() {
	c.Env.ScopeTree.PopScope()
	c.Env.ScopeTree.PushNewScope("variables")
}

// Eval parses input and returns its value.
func (c *Calculator) Eval(input string) (float64, error) {
	tree, err := c.Parse(input)
	if err != nil {
		return 0, err
	}
	return tree.Value, nil
}

// DumpTables writes the grammar and the parse tables to w.
func (c *Calculator) DumpTables(w io.Writer) {
	c.Grammar.Dump(w)
	c.Tables.Dump(w, c.Grammar)
}
