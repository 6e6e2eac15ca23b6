package lr

import (
	"fmt"
	"html"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/npillmayer/lexlr"
	"github.com/olekukonko/tablewriter"
	"github.com/pkg/errors"
)

// SymbolNamer provides display names for grammar symbols. *Grammar
// implements it.
type SymbolNamer interface {
	SymbolName(Symbol) string
}

type plainNames struct{}

func (plainNames) SymbolName(sym Symbol) string { return sym.String() }

// terminalColumns lists the token types with at least one action, in
// ascending order.
func (t *Tables) terminalColumns() []lexlr.TokType {
	var cols []lexlr.TokType
	for j := 0; j < t.actions.N(); j++ {
		for i := 0; i < t.actions.M(); i++ {
			if t.actions.Value(i, j) != t.actions.NullValue() {
				cols = append(cols, t.mincol+lexlr.TokType(j))
				break
			}
		}
	}
	return cols
}

func actionCell(a Action) string {
	switch a.Kind {
	case ShiftAction:
		return "s" + strconv.Itoa(a.State)
	case ReduceAction:
		return "r" + strconv.Itoa(a.Production)
	}
	return ""
}

func (t *Tables) gotoCell(state int, nt NonTerminal) string {
	if to, ok := t.Goto(state, nt); ok {
		return strconv.Itoa(to)
	}
	return ""
}

// Dump writes the ACTION and GOTO tables side by side to w. Shifts are
// displayed as "s<state>", reductions as "r<production>". names may be nil.
func (t *Tables) Dump(w io.Writer, names SymbolNamer) {
	if names == nil {
		names = plainNames{}
	}
	cols := t.terminalColumns()
	header := []string{"state"}
	for _, tok := range cols {
		header = append(header, names.SymbolName(T(tok)))
	}
	for _, nt := range t.ntorder {
		header = append(header, names.SymbolName(N(nt)))
	}
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetAutoFormatHeaders(false)
	for s := 0; s < t.States(); s++ {
		row := []string{strconv.Itoa(s)}
		for _, tok := range cols {
			row = append(row, actionCell(t.Action(s, tok)))
		}
		for _, nt := range t.ntorder {
			row = append(row, t.gotoCell(s, nt))
		}
		table.Append(row)
	}
	table.Render()
}

// ActionTableAsHTML exports an ACTION table in HTML-format.
func ActionTableAsHTML(t *Tables, names SymbolNamer, w io.Writer) {
	if t == nil {
		tracer().Errorf("ACTION table not yet created, cannot export to HTML")
		return
	}
	if names == nil {
		names = plainNames{}
	}
	cols := t.terminalColumns()
	header := make([]string, len(cols))
	for i, tok := range cols {
		header[i] = names.SymbolName(T(tok))
	}
	tableAsHTML("ACTION", t.actions.ValueCount(), t.States(), header, w, func(s, j int) string {
		return actionCell(t.Action(s, cols[j]))
	})
}

// GotoTableAsHTML exports a GOTO table in HTML-format.
func GotoTableAsHTML(t *Tables, names SymbolNamer, w io.Writer) {
	if t == nil {
		tracer().Errorf("GOTO table not yet created, cannot export to HTML")
		return
	}
	if names == nil {
		names = plainNames{}
	}
	header := make([]string, len(t.ntorder))
	for i, nt := range t.ntorder {
		header[i] = names.SymbolName(N(nt))
	}
	tableAsHTML("GOTO", t.gotos.ValueCount(), t.States(), header, w, func(s, j int) string {
		return t.gotoCell(s, t.ntorder[j])
	})
}

func tableAsHTML(tname string, size, states int, header []string, w io.Writer, cell func(int, int) string) {
	io.WriteString(w, "<html><body>\n")
	io.WriteString(w, fmt.Sprintf("%s table of size = %d<p>", tname, size))
	io.WriteString(w, "<table border=1 cellspacing=0 cellpadding=5>\n")
	io.WriteString(w, "<tr bgcolor=#cccccc><td></td>\n")
	for _, h := range header {
		io.WriteString(w, fmt.Sprintf("<td>%s</td>", html.EscapeString(h)))
	}
	io.WriteString(w, "</tr>\n")
	for s := 0; s < states; s++ {
		io.WriteString(w, fmt.Sprintf("<tr><td>state %d</td>\n", s))
		for j := range header {
			td := cell(s, j)
			if td == "" {
				td = "&nbsp;"
			}
			io.WriteString(w, "<td>"+td+"</td>\n")
		}
		io.WriteString(w, "</tr>\n")
	}
	io.WriteString(w, "</table></body></html>\n")
}

// === CFSM export ===========================================================

// CFSM2GraphViz exports a CFSM to the Graphviz Dot format, given a filename.
func (c *CFSM) CFSM2GraphViz(filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return errors.Wrapf(err, "cannot export CFSM")
	}
	defer f.Close()
	return c.WriteGraphViz(f)
}

// WriteGraphViz writes a CFSM in Graphviz Dot format to w.
func (c *CFSM) WriteGraphViz(w io.Writer) error {
	var b strings.Builder
	b.WriteString(`digraph {
graph [splines=true, fontname=Helvetica, fontsize=10];
node [shape=Mrecord, style=filled, fontname=Helvetica, fontsize=10];
edge [fontname=Helvetica, fontsize=10];

`)
	for k := 0; k < c.Size(); k++ {
		s := c.State(k)
		b.WriteString(fmt.Sprintf("s%03d [fillcolor=%s label=\"{%03d | %s}\"]\n",
			s.ID, nodecolor(s), s.ID, c.forGraphviz(s)))
	}
	c.eachEdge(func(e *cfsmEdge) {
		b.WriteString(fmt.Sprintf("s%03d -> s%03d [label=%q]\n", e.from.ID, e.to.ID, e.label.String()))
	})
	b.WriteString("}\n")
	_, err := io.WriteString(w, b.String())
	return err
}

func nodecolor(state *CFSMState) string {
	if state.Accept {
		return "lightgray"
	}
	return "white"
}

func (c *CFSM) forGraphviz(s *CFSMState) string {
	var items []string
	for _, i := range s.Items() {
		str := fmt.Sprintf("%v", i)
		if c.istr != nil {
			str = c.istr(i)
		}
		items = append(items, graphvizEscaper.Replace(str))
	}
	return strings.Join(items, "\\l") + "\\l"
}

var graphvizEscaper = strings.NewReplacer(
	`"`, `\"`, `{`, `\{`, `}`, `\}`, `|`, `\|`, `<`, `\<`, `>`, `\>`,
)
