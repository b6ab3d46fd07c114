// Package semantic reconciles the inline "{name}" and reduce "R{name}"
// markers attached to a Grammar's rules into per-state and per-rule
// dispatch tables, once the automaton's states are known.
package semantic

import (
	"github.com/ThePerkinrex/grammar-gen/internal/automaton"
	"github.com/ThePerkinrex/grammar-gen/internal/diag"
	"github.com/ThePerkinrex/grammar-gen/internal/grammar"
	"github.com/ThePerkinrex/grammar-gen/internal/util"
)

const stageSemantic = "semantic"

// Dispatch holds the resolved semantic dispatch tables: which state fires
// which inline semantic when entered, and which rule fires which semantic
// when reduced.
type Dispatch struct {
	StateSemantics  map[int]grammar.Semantic
	ReduceSemantics map[int]grammar.Semantic
}

// Resolve walks every state's item set looking for inline semantic markers
// bound to the item's current dot position, and every rule's reduce marker,
// producing the two dispatch maps described by the resolver's contract.
//
// A marker immediately after a nonterminal position is suspect (it would
// fire before that nonterminal's subtree is reduced and bound) and produces
// a warning naming the prior symbol. Two distinct markers binding to the
// same state produce a duplicate-state-semantic warning; identical
// duplicates are silently merged.
func Resolve(g *grammar.Grammar, a *automaton.Automaton, d *diag.Channel) *Dispatch {
	disp := &Dispatch{
		StateSemantics:  map[int]grammar.Semantic{},
		ReduceSemantics: map[int]grammar.Semantic{},
	}

	seenByState := map[int][]grammar.Semantic{}

	for _, state := range a.States {
		for _, it := range state.Items.Items() {
			sem := it.CurrentSemantic(g)
			if sem == grammar.NoSemantic {
				continue
			}

			if it.Position > 0 {
				prior := g.Rules[it.RuleNo].RHS[it.Position-1]
				if prior.IsNonterminal() {
					d.WarnAt(stageSemantic, state.No, it.RuleNo,
						"semantic %q attached immediately after nonterminal %q may fire before its subtree is reduced",
						g.Table.SemanticName(sem), prior.String(g.Table))
				}
			}

			if _, bound := disp.StateSemantics[state.No]; !bound {
				disp.StateSemantics[state.No] = sem
			}

			already := false
			for _, s := range seenByState[state.No] {
				if s == sem {
					already = true
					break
				}
			}
			if !already {
				seenByState[state.No] = append(seenByState[state.No], sem)
			}
		}
	}

	for stateNo, sems := range seenByState {
		if len(sems) < 2 {
			continue
		}
		names := make([]string, len(sems))
		for i, s := range sems {
			names[i] = g.Table.SemanticName(s)
		}
		d.WarnAt(stageSemantic, stateNo, -1,
			"duplicate state semantics %s all bind to state %d, keeping %q",
			util.MakeTextList(names), stateNo, g.Table.SemanticName(disp.StateSemantics[stateNo]))
	}

	for ruleNo, rule := range g.Rules {
		if rule.ReduceSemantic != grammar.NoSemantic {
			disp.ReduceSemantics[ruleNo] = rule.ReduceSemantic
		}
	}

	return disp
}
