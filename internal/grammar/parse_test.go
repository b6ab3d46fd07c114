package grammar

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ThePerkinrex/grammar-gen/internal/diag"
)

func Test_Parse_simpleGrammar(t *testing.T) {
	lines := []string{
		"S -> E",
		"E -> E plus T",
		"E -> T",
		"T -> id",
	}

	d := diag.NewChannel()
	g := Parse(lines, d)

	assert.False(t, d.HasFatal())
	assert.Len(t, g.Rules, 4)

	axiom, ok := g.Table.LookupSymbol("S")
	assert.True(t, ok)
	assert.Equal(t, axiom, g.Axiom())

	plusTok, ok := g.Table.LookupSymbol("plus")
	assert.False(t, ok, "plus should have been interned as a token, not a symbol")

	_ = plusTok
	_, ok = g.Table.LookupSymbol("id")
	assert.False(t, ok)
}

func Test_Parse_inlineAndReduceSemantics(t *testing.T) {
	lines := []string{
		"S -> E",
		"E -> T {push} plus T R{add}",
		"E -> T",
		"T -> id",
	}

	d := diag.NewChannel()
	g := Parse(lines, d)
	assert.False(t, d.HasFatal())

	rule := g.Rules[1]
	assert.Equal(t, 3, len(rule.RHS))
	assert.Equal(t, 4, len(rule.InlineSemantics))
	assert.NotEqual(t, NoSemantic, rule.InlineSemantics[1])
	assert.NotEqual(t, NoSemantic, rule.ReduceSemantic)
}

func Test_Parse_conflictingInlineSemanticIsFatal(t *testing.T) {
	lines := []string{
		"S -> a {one} {two} b",
	}

	d := diag.NewChannel()
	Parse(lines, d)
	assert.True(t, d.HasFatal())
}

func Test_Parse_malformedLineWarnsAndSkips(t *testing.T) {
	lines := []string{
		"S -> E",
		"this line has no arrow",
		"E -> id",
	}

	d := diag.NewChannel()
	g := Parse(lines, d)
	assert.False(t, d.HasFatal())
	assert.Len(t, g.Rules, 2)
	assert.NotEmpty(t, d.Warnings())
}
