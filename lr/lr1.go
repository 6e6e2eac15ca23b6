package lr

import (
	"fmt"
	"strings"

	"github.com/cnf/structhash"
	"github.com/emirpasic/gods/lists/arraylist"
	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/utils"
	"github.com/npillmayer/lexlr"
	"github.com/pkg/errors"
)

// Structure is what table generation needs to know about a grammar.
// *Grammar implements it.
type Structure interface {
	Start() NonTerminal
	Rules() []Rule
	NonTerminals() []NonTerminal
	Terminals() []lexlr.TokType
}

// === Items =================================================================

// Item is an LR(1) item: a production with a dot position and a lookahead.
type Item struct {
	Production int
	Dot        int
	Lookahead  lexlr.TokType
}

func itemComparator(a, b interface{}) int {
	i1, i2 := a.(Item), b.(Item)
	if c := utils.IntComparator(i1.Production, i2.Production); c != 0 {
		return c
	}
	if c := utils.IntComparator(i1.Dot, i2.Dot); c != 0 {
		return c
	}
	return utils.IntComparator(int(i1.Lookahead), int(i2.Lookahead))
}

func newItemSet() *treeset.Set {
	return treeset.NewWith(itemComparator)
}

type itemSetKey struct {
	Items []Item
}

func itemSetSignature(iset *treeset.Set) string {
	key := itemSetKey{Items: make([]Item, 0, iset.Size())}
	for _, x := range iset.Values() {
		key.Items = append(key.Items, x.(Item))
	}
	h, err := structhash.Hash(key, 1)
	if err != nil {
		panic(errors.Wrap(err, "cannot hash LR(1) item set"))
	}
	return h
}

// === Table generator =======================================================

// TableGenerator is a generator object to construct canonical LR(1) parser
// tables. Clients usually create a Grammar G, then a table generator for G.
// TableGenerator.CreateTables() constructs the CFSM and parser tables for an
// LR(1)-parser recognizing grammar G.
type TableGenerator struct {
	g            Structure
	rules        []Rule
	bySource     map[NonTerminal][]int
	first        map[NonTerminal]*treeset.Set // FIRST sets of token types
	nullable     map[NonTerminal]bool
	dfa          *CFSM
	tables       *Tables
	conflicts    []*ConflictError
	HasConflicts bool
}

// NewTableGenerator creates a new TableGenerator for a grammar and computes
// FIRST sets for all non-terminals.
func NewTableGenerator(g Structure) *TableGenerator {
	lrgen := &TableGenerator{
		g:        g,
		rules:    g.Rules(),
		bySource: map[NonTerminal][]int{},
	}
	for i, r := range lrgen.rules {
		lrgen.bySource[r.Source] = append(lrgen.bySource[r.Source], i)
	}
	lrgen.computeFirstSets()
	return lrgen
}

func (lrgen *TableGenerator) computeFirstSets() {
	lrgen.first = map[NonTerminal]*treeset.Set{}
	lrgen.nullable = map[NonTerminal]bool{}
	for _, nt := range lrgen.g.NonTerminals() {
		lrgen.first[nt] = treeset.NewWithIntComparator()
	}
	for changed := true; changed; {
		changed = false
		for _, r := range lrgen.rules {
			F := lrgen.first[r.Source]
			size := F.Size()
			allNullable := true
			for _, sym := range r.RHS {
				if sym.Terminal {
					F.Add(int(sym.Token))
					allNullable = false
					break
				}
				F.Add(lrgen.first[sym.NonTerminal].Values()...)
				if !lrgen.nullable[sym.NonTerminal] {
					allNullable = false
					break
				}
			}
			if allNullable && !lrgen.nullable[r.Source] {
				lrgen.nullable[r.Source] = true
				changed = true
			}
			if F.Size() != size {
				changed = true
			}
		}
	}
}

// First returns FIRST(nt), sorted ascending. Whether nt derives epsilon is
// reported by Nullable.
func (lrgen *TableGenerator) First(nt NonTerminal) []lexlr.TokType {
	F, ok := lrgen.first[nt]
	if !ok {
		return nil
	}
	toks := make([]lexlr.TokType, 0, F.Size())
	for _, v := range F.Values() {
		toks = append(toks, lexlr.TokType(v.(int)))
	}
	return toks
}

// Nullable is a predicate: does nt derive the empty word?
func (lrgen *TableGenerator) Nullable(nt NonTerminal) bool {
	return lrgen.nullable[nt]
}

// firstOfSequence computes FIRST(syms la).
func (lrgen *TableGenerator) firstOfSequence(syms []Symbol, la lexlr.TokType) []lexlr.TokType {
	set := treeset.NewWithIntComparator()
	for _, sym := range syms {
		if sym.Terminal {
			set.Add(int(sym.Token))
			return toTokTypes(set)
		}
		set.Add(lrgen.first[sym.NonTerminal].Values()...)
		if !lrgen.nullable[sym.NonTerminal] {
			return toTokTypes(set)
		}
	}
	set.Add(int(la))
	return toTokTypes(set)
}

func toTokTypes(set *treeset.Set) []lexlr.TokType {
	toks := make([]lexlr.TokType, 0, set.Size())
	for _, v := range set.Values() {
		toks = append(toks, lexlr.TokType(v.(int)))
	}
	return toks
}

// === Closure and Goto-Set Operations =======================================

func (lrgen *TableGenerator) peek(i Item) (Symbol, bool) {
	rhs := lrgen.rules[i.Production].RHS
	if i.Dot >= len(rhs) {
		return Symbol{}, false
	}
	return rhs[i.Dot], true
}

// closure adds to S all items [B -> .γ, b] for items [A -> α.Bβ, a] in S and
// b in FIRST(βa), until nothing changes.
func (lrgen *TableGenerator) closure(S *treeset.Set) *treeset.Set {
	C := newItemSet()
	C.Add(S.Values()...)
	worklist := S.Values()
	for len(worklist) > 0 {
		item := worklist[0].(Item)
		worklist = worklist[1:]
		B, ok := lrgen.peek(item)
		if !ok || B.Terminal {
			continue
		}
		beta := lrgen.rules[item.Production].RHS[item.Dot+1:]
		lookaheads := lrgen.firstOfSequence(beta, item.Lookahead)
		for _, p := range lrgen.bySource[B.NonTerminal] {
			for _, b := range lookaheads {
				ni := Item{Production: p, Dot: 0, Lookahead: b}
				if !C.Contains(ni) {
					C.Add(ni)
					worklist = append(worklist, ni)
				}
			}
		}
	}
	return C
}

func (lrgen *TableGenerator) gotoSetClosure(S *treeset.Set, A Symbol) *treeset.Set {
	gotoset := newItemSet()
	for _, x := range S.Values() {
		i := x.(Item)
		if sym, ok := lrgen.peek(i); ok && sym == A {
			gotoset.Add(Item{Production: i.Production, Dot: i.Dot + 1, Lookahead: i.Lookahead})
		}
	}
	return lrgen.closure(gotoset)
}

// === CFSM Construction =====================================================

// CFSMState is a state within the CFSM for a grammar.
type CFSMState struct {
	ID     int          // serial ID of this state
	items  *treeset.Set // LR(1) items within this state
	Accept bool         // does this state contain a completed start item?
}

func (s *CFSMState) String() string {
	return fmt.Sprintf("(state %d | [%d])", s.ID, s.items.Size())
}

// Items returns the LR(1) items of the state, sorted.
func (s *CFSMState) Items() []Item {
	items := make([]Item, 0, s.items.Size())
	for _, x := range s.items.Values() {
		items = append(items, x.(Item))
	}
	return items
}

// CFSM edge between 2 states, directed and labeled with a grammar symbol.
type cfsmEdge struct {
	from  *CFSMState
	to    *CFSMState
	label Symbol
}

// CFSM is the characteristic finite state machine for an LR(1) grammar.
// It is constructed by a TableGenerator.
type CFSM struct {
	states *arraylist.List // all the states, index = ID
	edges  *arraylist.List // all the edges between states
	index  map[string]*CFSMState
	S0     *CFSMState // start state
	istr   func(Item) string
}

func emptyCFSM(istr func(Item) string) *CFSM {
	return &CFSM{
		states: arraylist.New(),
		edges:  arraylist.New(),
		index:  map[string]*CFSMState{},
		istr:   istr,
	}
}

// Size returns the number of states.
func (c *CFSM) Size() int {
	return c.states.Size()
}

// State returns the state with serial ID id.
func (c *CFSM) State(id int) *CFSMState {
	s, ok := c.states.Get(id)
	if !ok {
		return nil
	}
	return s.(*CFSMState)
}

// addState adds a state for an item set, if not yet present.
func (c *CFSM) addState(iset *treeset.Set) (*CFSMState, bool) {
	sig := itemSetSignature(iset)
	if s, ok := c.index[sig]; ok {
		return s, false
	}
	s := &CFSMState{ID: c.states.Size(), items: iset}
	c.states.Add(s)
	c.index[sig] = s
	return s, true
}

func (c *CFSM) addEdge(from, to *CFSMState, label Symbol) {
	c.edges.Add(&cfsmEdge{from: from, to: to, label: label})
}

func (c *CFSM) eachEdge(f func(e *cfsmEdge)) {
	it := c.edges.Iterator()
	for it.Next() {
		f(it.Value().(*cfsmEdge))
	}
}

// CFSM returns the characteristic finite state machine (CFSM) for the
// grammar. It is created if it has not been constructed previously.
func (lrgen *TableGenerator) CFSM() *CFSM {
	if lrgen.dfa == nil {
		lrgen.dfa = lrgen.buildCFSM()
	}
	return lrgen.dfa
}

// Construct the characteristic finite state machine CFSM for a grammar.
func (lrgen *TableGenerator) buildCFSM() *CFSM {
	tracer().Debugf("=== build CFSM ==================================================")
	cfsm := emptyCFSM(lrgen.ItemString)
	start := newItemSet()
	for _, p := range lrgen.bySource[lrgen.g.Start()] {
		start.Add(Item{Production: p, Dot: 0, Lookahead: EOF})
	}
	cfsm.S0, _ = cfsm.addState(lrgen.closure(start))
	for k := 0; k < cfsm.Size(); k++ { // states are added while we iterate
		s := cfsm.State(k)
		s.Accept = lrgen.containsCompletedStartItem(s)
		for _, A := range lrgen.symbolsAfterDot(s) {
			gotoset := lrgen.gotoSetClosure(s.items, A)
			snew, isNew := cfsm.addState(gotoset)
			if isNew {
				tracer().Debugf("new state %d = goto(%d, %v)", snew.ID, s.ID, A)
			}
			cfsm.addEdge(s, snew, A)
		}
	}
	tracer().Infof("CFSM has %d states", cfsm.Size())
	return cfsm
}

// symbolsAfterDot lists the symbols following a dot, in item order.
func (lrgen *TableGenerator) symbolsAfterDot(s *CFSMState) []Symbol {
	var syms []Symbol
	seen := map[Symbol]bool{}
	for _, x := range s.items.Values() {
		if A, ok := lrgen.peek(x.(Item)); ok && !seen[A] {
			seen[A] = true
			syms = append(syms, A)
		}
	}
	return syms
}

func (lrgen *TableGenerator) containsCompletedStartItem(s *CFSMState) bool {
	for _, x := range s.items.Values() {
		i := x.(Item)
		r := lrgen.rules[i.Production]
		if r.Source == lrgen.g.Start() && i.Dot == len(r.RHS) && i.Lookahead == EOF {
			return true
		}
	}
	return false
}

// === Tables ================================================================

// CreateTables creates the CFSM and the ACTION and GOTO tables. If the
// grammar is not LR(1), the tables are created nevertheless (keeping the
// first action for every conflicting entry), HasConflicts is set, and the
// first conflict is returned as an error.
func (lrgen *TableGenerator) CreateTables() error {
	cfsm := lrgen.CFSM()
	tables := newTables(cfsm.Size(), lrgen.g.Terminals(), lrgen.g.NonTerminals())
	record := func(err error) error {
		if err == nil {
			return nil
		}
		var conflict *ConflictError
		if errors.As(err, &conflict) {
			tracer().Infof("%v", conflict)
			lrgen.conflicts = append(lrgen.conflicts, conflict)
			lrgen.HasConflicts = true
			return nil
		}
		return err
	}
	var err error
	cfsm.eachEdge(func(e *cfsmEdge) {
		if e.label.Terminal {
			err = firstError(err, record(tables.setAction(e.from.ID, e.label.Token, Shift(e.to.ID))))
		} else {
			err = firstError(err, record(tables.setGoto(e.from.ID, e.label.NonTerminal, e.to.ID)))
		}
	})
	for k := 0; k < cfsm.Size(); k++ {
		s := cfsm.State(k)
		for _, i := range s.Items() {
			if i.Dot == len(lrgen.rules[i.Production].RHS) {
				err = firstError(err, record(tables.setAction(s.ID, i.Lookahead, Reduce(i.Production))))
			}
		}
	}
	lrgen.tables = tables
	if err != nil {
		return err
	}
	if lrgen.HasConflicts {
		return lrgen.conflicts[0]
	}
	return nil
}

func firstError(err, next error) error {
	if err != nil {
		return err
	}
	return next
}

// Tables returns the parse tables. The tables have to be built by calling
// CreateTables() previously.
func (lrgen *TableGenerator) Tables() *Tables {
	if lrgen.tables == nil {
		tracer().Errorf("tables not yet initialized")
	}
	return lrgen.tables
}

// Conflicts returns all conflicts found by CreateTables.
func (lrgen *TableGenerator) Conflicts() []*ConflictError {
	return lrgen.conflicts
}

// ItemString returns an LR(1) item in a readable format.
func (lrgen *TableGenerator) ItemString(i Item) string {
	r := lrgen.rules[i.Production]
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] ::= [", r.Source)
	for k, sym := range r.RHS {
		if k == i.Dot {
			b.WriteString("• ")
		}
		b.WriteString(sym.String())
		b.WriteString(" ")
	}
	if i.Dot == len(r.RHS) {
		b.WriteString("•")
	}
	fmt.Fprintf(&b, "], %s", T(i.Lookahead))
	return b.String()
}

// Compile augments a grammar and generates LR(1) tables for it. Parsers
// have to use the augmented grammar returned.
func Compile[L, D, R any](g *Grammar[L, D, R]) (*Grammar[L, D, R], *Tables, error) {
	if err := g.Validate(); err != nil {
		return nil, nil, err
	}
	ag := g.Augment()
	lrgen := NewTableGenerator(ag)
	if err := lrgen.CreateTables(); err != nil {
		tracer().Errorf("grammar %s is not LR(1): %v", g.Name, err)
		return ag, lrgen.Tables(), err
	}
	return ag, lrgen.Tables(), nil
}
