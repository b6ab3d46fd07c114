package emit

import (
	"fmt"
	"sort"
	"strings"
)

// DisplayNames resolves a snapshot's raw token names through the config's
// token_replace map, falling back to the raw name when no replacement is
// configured. Per the context contract, only terminal ("token") display
// names are ever replaced; "symbol_not_replaced" fields are always the raw,
// unreplaced nonterminal name.
type DisplayNames struct {
	TokenReplace map[string]string
}

func (dn DisplayNames) resolveToken(raw string) string {
	if r, ok := dn.TokenReplace[raw]; ok {
		return r
	}
	return raw
}

// Shifts returns state stateNo's shift entries in token-id order.
func (s *AutomatonSnapshot) Shifts(stateNo int, dn DisplayNames) []ShiftContext {
	st := s.States[stateNo]
	toks := sortedIntKeys(st.Shift)
	out := make([]ShiftContext, 0, len(toks))
	for _, tok := range toks {
		out = append(out, ShiftContext{
			State: stateNo,
			Token: dn.resolveToken(s.tokenName(tok)),
			Next:  st.Shift[tok],
		})
	}
	return out
}

// Reduces returns state stateNo's reduce entries in token-id order.
func (s *AutomatonSnapshot) Reduces(stateNo int, dn DisplayNames) []ReduceContext {
	st := s.States[stateNo]
	toks := sortedIntKeys(st.Reduce)
	out := make([]ReduceContext, 0, len(toks))
	for _, tok := range toks {
		ruleNo := st.Reduce[tok]
		rule := s.Rules[ruleNo]
		out = append(out, ReduceContext{
			State:             stateNo,
			Token:             dn.resolveToken(s.tokenName(tok)),
			Elements:          len(rule.RHS),
			RuleNo:            ruleNo,
			SymbolNo:          rule.LHS,
			SymbolNotReplaced: rule.LHSName,
		})
	}
	return out
}

// Gotos returns state stateNo's goto entries in symbol-id order.
func (s *AutomatonSnapshot) Gotos(stateNo int) []GotoContext {
	st := s.States[stateNo]
	syms := sortedIntKeys(st.Goto)
	out := make([]GotoContext, 0, len(syms))
	for _, sym := range syms {
		out = append(out, GotoContext{
			State:             stateNo,
			SymbolNo:          sym,
			SymbolNotReplaced: s.SymbolNames[sym],
			Next:              st.Goto[sym],
		})
	}
	return out
}

// StateSemanticLines returns every (state, semantic) pair in state order.
func (s *AutomatonSnapshot) StateSemanticLines() []SemanticStateLine {
	states := sortedIntKeys(s.StateSemantics)
	out := make([]SemanticStateLine, 0, len(states))
	for _, st := range states {
		sem := s.StateSemantics[st]
		out = append(out, SemanticStateLine{
			SemanticCaseState: SemanticCaseState{State: st},
			SemanticBody:      SemanticBody{Semantic: sem, SemanticName: s.SemanticNames[sem]},
		})
	}
	return out
}

// ReduceSemanticLines returns every (rule, semantic) pair in rule order.
func (s *AutomatonSnapshot) ReduceSemanticLines() []SemanticReduceLine {
	rules := sortedIntKeys(s.ReduceSemantics)
	out := make([]SemanticReduceLine, 0, len(rules))
	for _, r := range rules {
		sem := s.ReduceSemantics[r]
		out = append(out, SemanticReduceLine{
			SemanticCaseReduce: SemanticCaseReduce{RuleNo: r},
			SemanticBody:       SemanticBody{Semantic: sem, SemanticName: s.SemanticNames[sem]},
		})
	}
	return out
}

func (s *AutomatonSnapshot) tokenName(tok int) string {
	if tok < 0 {
		return "$"
	}
	return s.TokenNames[tok]
}

// Dot renders the automaton as Graphviz dot source: one node per state, one
// edge per shift or goto transition.
func (s *AutomatonSnapshot) Dot() string {
	var b strings.Builder
	b.WriteString("digraph automata {\n")
	for _, st := range s.States {
		var lines []string
		for _, it := range st.Items {
			lines = append(lines, it.Display)
		}
		label := strings.ReplaceAll(strings.Join(lines, "\\n"), `"`, `\"`)
		fmt.Fprintf(&b, "  i%d [label=\"%s\"];\n", st.No, label)
	}
	for _, st := range s.States {
		for _, tok := range sortedIntKeys(st.Shift) {
			fmt.Fprintf(&b, "  i%d -> i%d [label=\"%s\"];\n", st.No, st.Shift[tok], s.tokenName(tok))
		}
		for _, sym := range sortedIntKeys(st.Goto) {
			fmt.Fprintf(&b, "  i%d -> i%d [label=\"%s\"];\n", st.No, st.Goto[sym], s.SymbolNames[sym])
		}
	}
	b.WriteString("}\n")
	return b.String()
}

func sortedIntKeys(m map[int]int) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

