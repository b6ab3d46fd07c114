package grammar

import (
	"fmt"
	"sort"
	"strings"
)

// Item is an LR(0) item: a rule together with a dot position in 0..len(rhs).
// Equality, hashing, and ordering depend only on (RuleNo, Position), matching
// the canonical form used throughout the automaton builder.
type Item struct {
	RuleNo   int
	Position int
}

// Less gives Item its total order: lexicographic on (RuleNo, Position).
func (it Item) Less(o Item) bool {
	if it.RuleNo != o.RuleNo {
		return it.RuleNo < o.RuleNo
	}
	return it.Position < o.Position
}

// AtEnd returns whether the dot is at the end of the rule's RHS (reducible).
func (it Item) AtEnd(g *Grammar) bool {
	return it.Position == len(g.Rules[it.RuleNo].RHS)
}

// Advance returns the item with the dot moved one position to the right. The
// caller is responsible for only calling this when !AtEnd.
func (it Item) Advance() Item {
	return Item{RuleNo: it.RuleNo, Position: it.Position + 1}
}

// SymbolAfterDot returns the grammar symbol immediately after the dot, or ok
// == false if the dot is at the end.
func (it Item) SymbolAfterDot(g *Grammar) (GrammarSymbol, bool) {
	rhs := g.Rules[it.RuleNo].RHS
	if it.Position >= len(rhs) {
		return GrammarSymbol{}, false
	}
	return rhs[it.Position], true
}

// CurrentSemantic returns the inline semantic marker bound to the dot's
// current position, i.e. InlineSemantics[Position].
func (it Item) CurrentSemantic(g *Grammar) Semantic {
	return g.Rules[it.RuleNo].InlineSemantics[it.Position]
}

// String renders "LHS -> alpha . beta" for diagnostics, with alpha/beta
// around the dot.
func (it Item) String(g *Grammar) string {
	r := g.Rules[it.RuleNo]
	left := make([]string, 0, it.Position)
	for _, gs := range r.RHS[:it.Position] {
		left = append(left, gs.String(g.Table))
	}
	right := make([]string, 0, len(r.RHS)-it.Position)
	for _, gs := range r.RHS[it.Position:] {
		right = append(right, gs.String(g.Table))
	}
	return fmt.Sprintf("%s -> %s . %s", g.Table.SymbolName(r.LHS), strings.Join(left, " "), strings.Join(right, " "))
}

// ItemSet is a closure-stable set of Items. It maintains (I1) no duplicates
// and (I2) an ordered view sorted in Item's total order; that ordered view is
// the set's identity when used as a canonical map key (see Key).
type ItemSet struct {
	members map[Item]struct{}
	ordered []Item
}

// NewItemSet returns an empty ItemSet.
func NewItemSet() *ItemSet {
	return &ItemSet{members: map[Item]struct{}{}}
}

// Add inserts it into the set, preserving the ordered view via binary-search
// insertion. Returns true if the set grew.
func (s *ItemSet) Add(it Item) bool {
	if _, ok := s.members[it]; ok {
		return false
	}
	s.members[it] = struct{}{}
	idx := sort.Search(len(s.ordered), func(i int) bool {
		return !s.ordered[i].Less(it)
	})
	s.ordered = append(s.ordered, Item{})
	copy(s.ordered[idx+1:], s.ordered[idx:])
	s.ordered[idx] = it
	return true
}

// Len returns the number of items in the set.
func (s *ItemSet) Len() int { return len(s.ordered) }

// Items returns the ordered view: a copy, safe for the caller to keep.
func (s *ItemSet) Items() []Item {
	out := make([]Item, len(s.ordered))
	copy(out, s.ordered)
	return out
}

// Key returns the canonical string key for this set, derived from its
// ordered view: two ItemSets are equal iff their ordered views are
// elementwise equal, which this string encodes exactly.
func (s *ItemSet) Key() string {
	var b strings.Builder
	for i, it := range s.ordered {
		if i > 0 {
			b.WriteByte('|')
		}
		fmt.Fprintf(&b, "%d.%d", it.RuleNo, it.Position)
	}
	return b.String()
}

// Closure extends s in place by repeatedly adding, for every item with a
// nonterminal B immediately after the dot, the item "B -> . gamma" for every
// rule B -> gamma not already present. Iterates to a fixed point.
func Closure(s *ItemSet, g *Grammar) {
	for {
		grew := false
		for _, it := range s.Items() {
			gs, ok := it.SymbolAfterDot(g)
			if !ok || gs.IsTerminal() {
				continue
			}
			for _, ruleNo := range g.RulesForLHS(gs.Symbol) {
				if s.Add(Item{RuleNo: ruleNo, Position: 0}) {
					grew = true
				}
			}
		}
		if !grew {
			return
		}
	}
}

// Goto returns closure({ it.Advance() | it in s, symbol after it's dot == X }).
func Goto(s *ItemSet, x GrammarSymbol, g *Grammar) *ItemSet {
	next := NewItemSet()
	for _, it := range s.Items() {
		gs, ok := it.SymbolAfterDot(g)
		if !ok || !gs.Equal(x) {
			continue
		}
		next.Add(it.Advance())
	}
	Closure(next, g)
	return next
}
