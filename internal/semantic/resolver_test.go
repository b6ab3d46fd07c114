package semantic

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ThePerkinrex/grammar-gen/internal/automaton"
	"github.com/ThePerkinrex/grammar-gen/internal/diag"
	"github.com/ThePerkinrex/grammar-gen/internal/grammar"
)

func Test_Resolve_inlineAndReduceSemantics(t *testing.T) {
	lines := []string{
		"E -> T {sawTerm} plus T R{addExpr}",
		"E -> T",
		"T -> id",
	}
	d := diag.NewChannel()
	g := grammar.Parse(lines, d)
	assert.False(t, d.HasFatal())

	ff := grammar.Compute(g)
	a := automaton.Build(g, ff, d)
	disp := Resolve(g, a, d)

	assert.NotEmpty(t, disp.StateSemantics)
	assert.Contains(t, disp.ReduceSemantics, 0)
}

func Test_Resolve_semanticAfterNonterminalWarns(t *testing.T) {
	lines := []string{
		"S -> A {late} b",
		"A -> a",
	}
	d := diag.NewChannel()
	g := grammar.Parse(lines, d)
	assert.False(t, d.HasFatal())

	ff := grammar.Compute(g)
	a := automaton.Build(g, ff, d)
	Resolve(g, a, d)

	found := false
	for _, w := range d.Warnings() {
		if w.Stage == stageSemantic {
			found = true
		}
	}
	assert.True(t, found, "expected a warning about a semantic marker after a nonterminal")
}

func Test_Resolve_identicalDuplicateStateSemanticIsSilent(t *testing.T) {
	lines := []string{
		"S -> a {mark} b",
		"S -> a {mark} c",
	}
	d := diag.NewChannel()
	g := grammar.Parse(lines, d)
	assert.False(t, d.HasFatal())

	ff := grammar.Compute(g)
	a := automaton.Build(g, ff, d)
	Resolve(g, a, d)

	for _, w := range d.Warnings() {
		assert.NotContains(t, w.Message, "duplicate state semantics")
	}
}
