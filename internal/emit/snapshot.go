package emit

import (
	"github.com/ThePerkinrex/grammar-gen/internal/automaton"
	"github.com/ThePerkinrex/grammar-gen/internal/diag"
	"github.com/ThePerkinrex/grammar-gen/internal/grammar"
	"github.com/ThePerkinrex/grammar-gen/internal/semantic"
)

// RuleView is the flattened, serialization-friendly view of a grammar rule.
type RuleView struct {
	LHS             int
	LHSName         string
	RHS             []SymbolRef
	InlineSemantics []int
	ReduceSemantic  int
}

// SymbolRef is a flattened GrammarSymbol: Terminal true means Value is a
// Token id, otherwise it is a Symbol id.
type SymbolRef struct {
	Terminal bool
	Value    int
	Name     string
}

// StateView is the flattened, serialization-friendly view of one automaton
// state.
type StateView struct {
	No     int
	Items  []ItemView
	Shift  map[int]int // token id -> next state
	Goto   map[int]int // symbol id -> next state
	Reduce map[int]int // token id (grammar.EndOfInput for $) -> rule no
}

// ItemView is the flattened view of an LR(0) item plus its rendered form.
type ItemView struct {
	RuleNo   int
	Position int
	Display  string
}

// AutomatonSnapshot is the complete, self-contained result of a build: it
// carries everything the template renderer, the explorer, the inspection
// server, and the build cache need, without requiring the original Grammar
// or Automaton objects to still be in memory.
type AutomatonSnapshot struct {
	SymbolNames   []string
	TokenNames    []string
	SemanticNames []string

	Rules  []RuleView
	States []StateView

	StateSemantics  map[int]int // state no -> semantic id
	ReduceSemantics map[int]int // rule no -> semantic id

	Diagnostics []string
}

// Snapshot flattens a Grammar, Automaton, and semantic Dispatch into a single
// serializable AutomatonSnapshot, recording the channel's diagnostics as
// rendered strings (ordering is preserved).
func Snapshot(g *grammar.Grammar, a *automaton.Automaton, disp *semantic.Dispatch, d *diag.Channel) *AutomatonSnapshot {
	snap := &AutomatonSnapshot{
		SymbolNames:     namesOf(g.Table.Symbols(), g.Table.SymbolName),
		TokenNames:      namesOf(g.Table.Tokens(), g.Table.TokenName),
		StateSemantics:  map[int]int{},
		ReduceSemantics: map[int]int{},
	}
	snap.Rules = make([]RuleView, len(g.Rules))
	for i, r := range g.Rules {
		rv := RuleView{
			LHS:            int(r.LHS),
			LHSName:        g.Table.SymbolName(r.LHS),
			ReduceSemantic: int(r.ReduceSemantic),
		}
		for _, gs := range r.RHS {
			if gs.IsTerminal() {
				rv.RHS = append(rv.RHS, SymbolRef{Terminal: true, Value: int(gs.Token), Name: g.Table.TokenName(gs.Token)})
			} else {
				rv.RHS = append(rv.RHS, SymbolRef{Terminal: false, Value: int(gs.Symbol), Name: g.Table.SymbolName(gs.Symbol)})
			}
		}
		for _, s := range r.InlineSemantics {
			rv.InlineSemantics = append(rv.InlineSemantics, int(s))
		}
		snap.Rules[i] = rv
	}

	snap.States = make([]StateView, len(a.States))
	for i, st := range a.States {
		sv := StateView{
			No:     st.No,
			Shift:  map[int]int{},
			Goto:   map[int]int{},
			Reduce: map[int]int{},
		}
		for _, it := range st.Items.Items() {
			sv.Items = append(sv.Items, ItemView{RuleNo: it.RuleNo, Position: it.Position, Display: it.String(g)})
		}
		for tok, next := range st.Shift {
			sv.Shift[int(tok)] = next
		}
		for sym, next := range st.Goto {
			sv.Goto[int(sym)] = next
		}
		for tok, rule := range st.Reduce {
			sv.Reduce[int(tok)] = rule
		}
		snap.States[i] = sv
	}

	for state, sem := range disp.StateSemantics {
		snap.StateSemantics[state] = int(sem)
	}
	for rule, sem := range disp.ReduceSemantics {
		snap.ReduceSemantics[rule] = int(sem)
	}

	for _, e := range d.Entries() {
		snap.Diagnostics = append(snap.Diagnostics, e.String())
	}

	// semantic names: collect by walking every semantic id referenced, since
	// SymbolTable does not expose a bulk accessor the way it does for
	// symbols/tokens.
	maxSem := -1
	for _, rv := range snap.Rules {
		if rv.ReduceSemantic > maxSem {
			maxSem = rv.ReduceSemantic
		}
		for _, s := range rv.InlineSemantics {
			if s > maxSem {
				maxSem = s
			}
		}
	}
	snap.SemanticNames = make([]string, maxSem+1)
	for i := 0; i <= maxSem; i++ {
		snap.SemanticNames[i] = g.Table.SemanticName(grammar.Semantic(i))
	}

	return snap
}

func namesOf[T ~int](ids []T, name func(T) string) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = name(id)
	}
	return out
}
