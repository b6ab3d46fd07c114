package grammar

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ThePerkinrex/grammar-gen/internal/diag"
)

// classic expression grammar, unambiguous, no epsilon productions.
func exprGrammar(t *testing.T) *Grammar {
	t.Helper()
	lines := []string{
		"E -> E plus T",
		"E -> T",
		"T -> T star F",
		"T -> F",
		"F -> lparen E rparen",
		"F -> id",
	}
	d := diag.NewChannel()
	g := Parse(lines, d)
	assert.False(t, d.HasFatal())
	return g
}

func Test_FirstFollow_expressionGrammar(t *testing.T) {
	g := exprGrammar(t)
	ff := Compute(g)

	e, _ := g.Table.LookupSymbol("E")
	f, _ := g.Table.LookupSymbol("F")

	lparen, _ := g.Table.LookupToken("lparen")
	id, _ := g.Table.LookupToken("id")
	plus, _ := g.Table.LookupToken("plus")
	rparen, _ := g.Table.LookupToken("rparen")

	firstE := ff.FirstOfSymbol(e)
	assert.True(t, firstE.Has(lparen))
	assert.True(t, firstE.Has(id))
	assert.False(t, firstE.Has(plus))

	firstF := ff.FirstOfSymbol(f)
	assert.Equal(t, 2, firstF.Len())

	followE := ff.Follow(e)
	assert.True(t, followE.Has(plus))
	assert.True(t, followE.Has(rparen))
	assert.True(t, followE.Has(EndOfInput))
}

func Test_FirstFollow_axiomFollowExcludesInnerTokens(t *testing.T) {
	lines := []string{
		"S -> A b",
		"A -> a",
	}
	d := diag.NewChannel()
	g := Parse(lines, d)
	assert.False(t, d.HasFatal())

	ff := Compute(g)
	s, _ := g.Table.LookupSymbol("S")
	b, _ := g.Table.LookupToken("b")

	followS := ff.Follow(s)
	assert.True(t, followS.Has(EndOfInput))
	assert.False(t, followS.Has(b))
}
