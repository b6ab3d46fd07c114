package grammar

import "fmt"

// GrammarSymbolKind distinguishes the two cases of GrammarSymbol.
type GrammarSymbolKind int

const (
	KindTerminal GrammarSymbolKind = iota
	KindNonterminal
)

// GrammarSymbol is a tagged union: a terminal (Token) or a nonterminal
// (Symbol) appearing in a rule's right-hand side.
type GrammarSymbol struct {
	Kind   GrammarSymbolKind
	Token  Token
	Symbol Symbol
}

func Terminal(t Token) GrammarSymbol    { return GrammarSymbol{Kind: KindTerminal, Token: t} }
func Nonterminal(s Symbol) GrammarSymbol { return GrammarSymbol{Kind: KindNonterminal, Symbol: s} }

func (gs GrammarSymbol) IsTerminal() bool    { return gs.Kind == KindTerminal }
func (gs GrammarSymbol) IsNonterminal() bool { return gs.Kind == KindNonterminal }

func (gs GrammarSymbol) Equal(o GrammarSymbol) bool {
	if gs.Kind != o.Kind {
		return false
	}
	if gs.Kind == KindTerminal {
		return gs.Token == o.Token
	}
	return gs.Symbol == o.Symbol
}

func (gs GrammarSymbol) String(tab *SymbolTable) string {
	if gs.Kind == KindTerminal {
		return tab.TokenName(gs.Token)
	}
	return tab.SymbolName(gs.Symbol)
}

// Rule is a single production LHS -> RHS, with semantic markers attached to
// positions in the RHS and, optionally, to the rule as a whole.
//
// InlineSemantics has length len(RHS)+1: InlineSemantics[i] is the marker
// that appeared immediately before position i was reached while parsing the
// rule text, with index len(RHS) holding a marker written after the last
// token on the line.
type Rule struct {
	LHS             Symbol
	RHS             []GrammarSymbol
	InlineSemantics []Semantic
	ReduceSemantic  Semantic
}

func newRule(lhs Symbol) Rule {
	return Rule{
		LHS:             lhs,
		InlineSemantics: []Semantic{NoSemantic},
		ReduceSemantic:  NoSemantic,
	}
}

// Grammar is a frozen, numbered sequence of Rules over a SymbolTable. Rule 0's
// LHS is the axiom.
type Grammar struct {
	Table *SymbolTable
	Rules []Rule
}

// Axiom returns the start symbol: rule 0's LHS.
func (g *Grammar) Axiom() Symbol {
	return g.Rules[0].LHS
}

// RulesForLHS returns, in rule-number order, the indices of every rule whose
// LHS is s.
func (g *Grammar) RulesForLHS(s Symbol) []int {
	var out []int
	for i, r := range g.Rules {
		if r.LHS == s {
			out = append(out, i)
		}
	}
	return out
}

// RuleString renders a rule in "LHS -> X Y Z" form for diagnostics.
func (g *Grammar) RuleString(ruleNo int) string {
	r := g.Rules[ruleNo]
	s := g.Table.SymbolName(r.LHS) + " ->"
	for _, gs := range r.RHS {
		s += " " + gs.String(g.Table)
	}
	return s
}

// String renders the whole grammar, one rule per line, for debugging.
func (g *Grammar) String() string {
	s := ""
	for i := range g.Rules {
		s += fmt.Sprintf("%d: %s\n", i, g.RuleString(i))
	}
	return s
}
