// Package automaton builds the canonical collection of LR(0) item sets and
// assembles the SLR(1) shift/goto/reduce tables from it, reporting conflicts
// through a diagnostics channel instead of failing construction.
package automaton

import (
	"github.com/ThePerkinrex/grammar-gen/internal/diag"
	"github.com/ThePerkinrex/grammar-gen/internal/grammar"
)

const stageAutomaton = "automaton"

// State is one node of the canonical collection: a closed item set together
// with its outgoing shift, goto, and reduce tables.
type State struct {
	No     int
	Items  *grammar.ItemSet
	Shift  map[grammar.Token]int
	Goto   map[grammar.Symbol]int
	Reduce map[grammar.Token]int // keyed on grammar.EndOfInput for $
}

func newState(no int, items *grammar.ItemSet) *State {
	return &State{
		No:     no,
		Items:  items,
		Shift:  map[grammar.Token]int{},
		Goto:   map[grammar.Symbol]int{},
		Reduce: map[grammar.Token]int{},
	}
}

// Automaton is the frozen canonical collection: a dense, state_no-indexed
// slice of States plus the canonical-key index used during construction.
type Automaton struct {
	States []*State

	keyToState map[string]int
}

// StateCount returns the number of states in the canonical collection.
func (a *Automaton) StateCount() int { return len(a.States) }

// Build runs the worklist BFS described by the automaton builder: starting
// from the closure of the axiom rule's initial item, it discovers states in
// breadth-first order, assigns dense state numbers in discovery order, and
// fills in each state's shift/goto/reduce tables. Conflicts are reported to
// d and do not stop construction.
func Build(g *grammar.Grammar, ff *grammar.FirstFollow, d *diag.Channel) *Automaton {
	a := &Automaton{keyToState: map[string]int{}}

	i0 := grammar.NewItemSet()
	i0.Add(grammar.Item{RuleNo: 0, Position: 0})
	grammar.Closure(i0, g)

	a.addState(i0)
	worklist := []int{0}

	for len(worklist) > 0 {
		stateNo := worklist[0]
		worklist = worklist[1:]
		state := a.States[stateNo]

		shiftKeys, gotoKeys, reduceItems := partition(state.Items, g)

		// Reduce entries first (SLR(1): one per FOLLOW(lhs) token), so the
		// shift pass below can detect collisions with them.
		for _, it := range reduceItems {
			lhs := g.Rules[it.RuleNo].LHS
			for _, t := range ff.Follow(lhs).Elements() {
				if existing, occupied := state.Reduce[t]; occupied && existing != it.RuleNo {
					// earlier entry wins; report, do not overwrite.
					first, second := existing, it.RuleNo
					d.WarnAt(stageAutomaton, stateNo, second,
						"reduce-reduce conflict between rule %d and rule %d on %s, keeping rule %d",
						first, second, tokenLabel(g, t), first)
					continue
				}
				state.Reduce[t] = it.RuleNo
			}
		}

		// Goto transitions (nonterminal successors).
		for sym, items := range gotoKeys {
			next := successorSet(items, g)
			target := a.internState(next, &worklist)
			state.Goto[sym] = target
		}

		// Shift transitions (terminal successors). Recording a shift under a
		// token that already has a reduce entry is a shift-reduce conflict;
		// per the spec's tie-break, shift wins in the emitted tables, so the
		// reduce entry for that token is removed.
		for tok, items := range shiftKeys {
			if ruleNo, occupied := state.Reduce[tok]; occupied {
				d.WarnAt(stageAutomaton, stateNo, ruleNo,
					"shift-reduce conflict: reduce by rule %d vs shift on %s, shift wins",
					ruleNo, tokenLabel(g, tok))
				delete(state.Reduce, tok)
			}
			next := successorSet(items, g)
			target := a.internState(next, &worklist)
			state.Shift[tok] = target
		}
	}

	return a
}

func (a *Automaton) addState(items *grammar.ItemSet) int {
	no := len(a.States)
	a.States = append(a.States, newState(no, items))
	a.keyToState[items.Key()] = no
	return no
}

// internState looks up items's canonical key; if new, assigns the next free
// state number and enqueues it for processing.
func (a *Automaton) internState(items *grammar.ItemSet, worklist *[]int) int {
	key := items.Key()
	if no, ok := a.keyToState[key]; ok {
		return no
	}
	no := a.addState(items)
	*worklist = append(*worklist, no)
	return no
}

// partition splits an item set's items by the symbol immediately after the
// dot: terminal successors (shift), nonterminal successors (goto), and
// dot-at-end items (reduce candidates).
func partition(items *grammar.ItemSet, g *grammar.Grammar) (
	shiftKeys map[grammar.Token][]grammar.Item,
	gotoKeys map[grammar.Symbol][]grammar.Item,
	reduceItems []grammar.Item,
) {
	shiftKeys = map[grammar.Token][]grammar.Item{}
	gotoKeys = map[grammar.Symbol][]grammar.Item{}

	for _, it := range items.Items() {
		gs, ok := it.SymbolAfterDot(g)
		if !ok {
			reduceItems = append(reduceItems, it)
			continue
		}
		if gs.IsTerminal() {
			shiftKeys[gs.Token] = append(shiftKeys[gs.Token], it)
		} else {
			gotoKeys[gs.Symbol] = append(gotoKeys[gs.Symbol], it)
		}
	}
	return
}

// successorSet advances every item in items and closes the result.
func successorSet(items []grammar.Item, g *grammar.Grammar) *grammar.ItemSet {
	next := grammar.NewItemSet()
	for _, it := range items {
		next.Add(it.Advance())
	}
	grammar.Closure(next, g)
	return next
}

func tokenLabel(g *grammar.Grammar, t grammar.Token) string {
	return g.Table.TokenName(t)
}
