package main

import (
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/chzyer/readline"
	"github.com/npillmayer/lexlr/calc"
	"github.com/pterm/pterm"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
)

// main() starts an interactive CLI ("C.REPL"), where users may enter
// expressions of the calculator language. C.REPL will evaluate the
// expression and print out the result. If an expression is given as an
// argument, it is evaluated and C.REPL exits.
func main() {
	// set up logging
	initDisplay()
	gtrace.SyntaxTracer = gologadapter.New()
	tlevel := flag.String("trace", "Error", "Trace level [Debug|Info|Error]")
	showTokens := flag.Bool("tokens", false, "Print tokens")
	showTree := flag.Bool("tree", false, "Print parse trees")
	showTables := flag.Bool("tables", false, "Print grammar and parse tables")
	crossCheck := flag.Bool("check", false, "Cross-check tokens against lexmachine")
	flag.Parse()
	tracer().SetTraceLevel(traceLevel(*tlevel))
	pterm.Info.Println("Welcome to CREPL") // colored welcome message
	tracer().Infof("Trace level is %s", *tlevel)
	//
	c, err := calc.New()
	if err != nil {
		pterm.Error.Println(err.Error())
		os.Exit(3)
	}
	if *showTables {
		c.DFA.Dump(os.Stdout)
		c.DumpTables(os.Stdout)
	}
	intp := &Intp{
		calc:   c,
		tokens: *showTokens,
		tree:   *showTree,
		check:  *crossCheck,
	}
	input := strings.TrimSpace(strings.Join(flag.Args(), " "))
	if input != "" {
		if err := intp.Eval(input); err != nil {
			os.Exit(2)
		}
		return
	}
	//
	// set up REPL
	repl, err := readline.New("crepl> ")
	if err != nil {
		tracer().Errorf("%v", err)
		os.Exit(3)
	}
	defer repl.Close()
	intp.repl = repl
	tracer().Infof("Quit with <ctrl>D") // inform user how to stop the CLI
	intp.REPL()                         // go into interactive mode
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.EnableDebugMessages()
	pterm.Info.Prefix = pterm.Prefix{
		Text:  "  >>",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "  Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

// Intp is our interpreter object
type Intp struct {
	calc   *calc.Calculator
	repl   *readline.Instance
	tokens bool // print tokens
	tree   bool // print parse tree
	check  bool // cross-check tokens against lexmachine
}

// REPL starts interactive mode.
func (intp *Intp) REPL() {
	for {
		line, err := intp.repl.Readline()
		if err != nil { // io.EOF
			break
		}
		switch line = strings.TrimSpace(line); line {
		case "":
		case ":vars":
			intp.listVariables()
		case ":reset":
			intp.calc.Reset()
			pterm.Info.Println("variables cleared")
		default:
			intp.Eval(line)
		}
	}
	println("Good bye!")
}

// Eval evaluates an expression, given on a line by itself.
func (intp *Intp) Eval(line string) error {
	if intp.tokens {
		for _, t := range intp.calc.Tokens(line) {
			if t.Err != nil {
				pterm.Error.Println(t.Err.Error())
				continue
			}
			pterm.Println(fmt.Sprintf("%-8s %q", t.Data, t.Lexeme))
		}
	}
	if intp.check {
		if err := intp.calc.CrossCheck(line); err != nil {
			pterm.Warning.Println(err.Error())
		}
	}
	tree, err := intp.calc.Parse(line)
	if err != nil {
		pterm.Error.Println(err.Error())
		return err
	}
	if intp.tree {
		pterm.DefaultTree.WithRoot(treeFrom(tree)).Render()
	}
	pterm.Info.Println(fmt.Sprintf("%g", tree.Value))
	return nil
}

func (intp *Intp) listVariables() {
	vars := intp.calc.Variables()
	names := make([]string, 0, len(vars))
	for name := range vars {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		pterm.Println(fmt.Sprintf("%-10s = %g", name, vars[name]))
	}
}

// treeFrom converts a parse tree into a pterm tree, via a leveled list.
func treeFrom(root *calc.Node) pterm.TreeNode {
	var ll pterm.LeveledList
	root.Each(func(n *calc.Node, depth int) {
		ll = append(ll, pterm.LeveledListItem{
			Level: depth,
			Text:  n.String(),
		})
	})
	tracer().Debugf("|ll| = %d", len(ll))
	return pterm.NewTreeFromLeveledList(ll)
}

func traceLevel(l string) tracing.TraceLevel {
	return tracing.TraceLevelFromString(l)
}
