package emit

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ThePerkinrex/grammar-gen/internal/automaton"
	"github.com/ThePerkinrex/grammar-gen/internal/diag"
	"github.com/ThePerkinrex/grammar-gen/internal/grammar"
	"github.com/ThePerkinrex/grammar-gen/internal/semantic"
)

func buildSnapshot(t *testing.T, lines []string) *AutomatonSnapshot {
	t.Helper()
	d := diag.NewChannel()
	g := grammar.Parse(lines, d)
	require.False(t, d.HasFatal())
	ff := grammar.Compute(g)
	a := automaton.Build(g, ff, d)
	disp := semantic.Resolve(g, a, d)
	return Snapshot(g, a, disp, d)
}

func Test_Snapshot_flattensRulesAndStates(t *testing.T) {
	snap := buildSnapshot(t, []string{
		"S -> a R{done}",
	})

	require.Len(t, snap.Rules, 1)
	assert.Equal(t, "S", snap.Rules[0].LHSName)
	assert.NotEmpty(t, snap.States)
	assert.Contains(t, snap.ReduceSemantics, 0)
	assert.Equal(t, "done", snap.SemanticNames[snap.ReduceSemantics[0]])
}

func Test_Shifts_appliesTokenReplaceOnlyToToken(t *testing.T) {
	snap := buildSnapshot(t, []string{
		"S -> a",
	})
	dn := DisplayNames{TokenReplace: map[string]string{"a": "TOK_A"}}

	shifts := snap.Shifts(0, dn)
	require.Len(t, shifts, 1)
	assert.Equal(t, "TOK_A", shifts[0].Token)
}

func Test_Reduces_symbolNotReplacedIgnoresTokenReplace(t *testing.T) {
	snap := buildSnapshot(t, []string{
		"S -> a",
	})
	dn := DisplayNames{TokenReplace: map[string]string{"S": "SHOULD_NOT_APPLY"}}

	// advance past the shift to reach the reducing state.
	state0 := snap.States[0]
	aTok := -1
	for tok := range state0.Shift {
		aTok = tok
	}
	require.NotEqual(t, -1, aTok)
	next := state0.Shift[aTok]

	reduces := snap.Reduces(next, dn)
	require.Len(t, reduces, 1)
	assert.Equal(t, "S", reduces[0].SymbolNotReplaced, "token_replace must never affect symbol_not_replaced")
}

func Test_Dot_rendersOneNodePerState(t *testing.T) {
	snap := buildSnapshot(t, []string{
		"S -> a",
	})
	dot := snap.Dot()
	assert.Contains(t, dot, "digraph automata")
	for _, st := range snap.States {
		assert.Contains(t, dot, "i"+strconv.Itoa(st.No))
	}
}
