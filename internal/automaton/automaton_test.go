package automaton

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ThePerkinrex/grammar-gen/internal/diag"
	"github.com/ThePerkinrex/grammar-gen/internal/grammar"
)

func buildGrammar(t *testing.T, lines []string) (*grammar.Grammar, *diag.Channel) {
	t.Helper()
	d := diag.NewChannel()
	g := grammar.Parse(lines, d)
	assert.False(t, d.HasFatal())
	return g, d
}

func Test_Build_expressionGrammarHasNoConflicts(t *testing.T) {
	g, d := buildGrammar(t, []string{
		"E -> E plus T",
		"E -> T",
		"T -> T star F",
		"T -> F",
		"F -> lparen E rparen",
		"F -> id",
	})

	ff := grammar.Compute(g)
	a := Build(g, ff, d)

	assert.Empty(t, d.Warnings())
	assert.Greater(t, a.StateCount(), 1)

	// state 0 must shift on every terminal that can start E.
	s0 := a.States[0]
	idTok, _ := g.Table.LookupToken("id")
	lparenTok, _ := g.Table.LookupToken("lparen")
	assert.Contains(t, s0.Shift, idTok)
	assert.Contains(t, s0.Shift, lparenTok)
}

func Test_Build_shiftReduceConflict_shiftWinsInEmittedTable(t *testing.T) {
	// the classic dangling-else ambiguity: after "if E then S" the state can
	// both shift "else" and reduce by rule 0, since else is in FOLLOW(S).
	g, d := buildGrammar(t, []string{
		"S -> if E then S",
		"S -> if E then S else S",
		"S -> other",
	})

	ff := grammar.Compute(g)
	a := Build(g, ff, d)

	elseTok, ok := g.Table.LookupToken("else")
	assert.True(t, ok)

	foundConflict := false
	for _, st := range a.States {
		if _, shiftable := st.Shift[elseTok]; shiftable {
			_, alsoReduce := st.Reduce[elseTok]
			assert.False(t, alsoReduce, "shift-reduce conflict must leave no reduce entry for the same token")
			foundConflict = true
		}
	}
	assert.True(t, foundConflict, "expected at least one state shifting on else")

	warned := false
	for _, w := range d.Warnings() {
		if w.Stage == stageAutomaton {
			warned = true
		}
	}
	assert.True(t, warned, "expected a shift-reduce conflict diagnostic")
}

func Test_Build_reduceReduceConflict_keepsEarliestRule(t *testing.T) {
	g, d := buildGrammar(t, []string{
		"S -> A",
		"S -> B",
		"A -> id",
		"B -> id",
	})

	ff := grammar.Compute(g)
	a := Build(g, ff, d)

	// FOLLOW(A) = FOLLOW(B) = {$}, so the A -> id / B -> id collision is on
	// $; rule 2 (A -> id) was entered first and must be the one kept.
	reduceStates := 0
	for _, st := range a.States {
		if rule, ok := st.Reduce[grammar.EndOfInput]; ok && (rule == 2 || rule == 3) {
			assert.Equal(t, 2, rule)
			reduceStates++
		}
	}
	assert.Greater(t, reduceStates, 0)

	warned := false
	for _, w := range d.Warnings() {
		if w.Stage == stageAutomaton {
			warned = true
		}
	}
	assert.True(t, warned, "expected a reduce-reduce conflict diagnostic")
}
