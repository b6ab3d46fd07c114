package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ThePerkinrex/grammar-gen/internal/emit"
)

func Test_Digest_stableAndSensitiveToInputs(t *testing.T) {
	a, err := Digest([]byte("S -> a\n"), map[string]string{"a": "A"})
	require.NoError(t, err)

	b, err := Digest([]byte("S -> a\n"), map[string]string{"a": "A"})
	require.NoError(t, err)
	assert.Equal(t, a, b, "same inputs must produce the same digest")

	c, err := Digest([]byte("S -> a\n"), map[string]string{"a": "B"})
	require.NoError(t, err)
	assert.NotEqual(t, a, c, "a different token_replace must change the digest")

	e, err := Digest([]byte("S -> b\n"), map[string]string{"a": "A"})
	require.NoError(t, err)
	assert.NotEqual(t, a, e, "different grammar bytes must change the digest")
}

func Test_Store_and_Lookup_roundTrip(t *testing.T) {
	dir := t.TempDir()
	c := New(dir)

	snap := &emit.AutomatonSnapshot{
		SymbolNames: []string{"S"},
		TokenNames:  []string{"a"},
		Rules:       []emit.RuleView{{LHS: 0, LHSName: "S"}},
		States:      []emit.StateView{{No: 0}},
	}

	digest, err := Digest([]byte("S -> a\n"), nil)
	require.NoError(t, err)

	require.NoError(t, c.Store(digest, snap))

	got, ok := c.Lookup(digest)
	require.True(t, ok)
	assert.Equal(t, snap.SymbolNames, got.SymbolNames)
	assert.Equal(t, snap.TokenNames, got.TokenNames)
}

func Test_Lookup_missUnknownDigest(t *testing.T) {
	c := New(t.TempDir())
	_, ok := c.Lookup("does-not-exist")
	assert.False(t, ok)
}
