package pipeline

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ThePerkinrex/grammar-gen/internal/config"
)

func writeConfig(t *testing.T, dir string) string {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "grammar.txt"), []byte("S -> a\n"), 0o644))
	cfgPath := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`{"grammar": "grammar.txt"}`), 0o644))
	return cfgPath
}

func Test_Build_noCacheProducesFreshSnapshot(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeConfig(t, dir)

	cfg, err := config.Load(cfgPath)
	require.NoError(t, err)

	result, err := Build(cfg, Options{NoCache: true})
	require.NoError(t, err)

	assert.False(t, result.FromCache)
	assert.NotEmpty(t, result.Snapshot.States)
	assert.NotEqual(t, uuid.UUID{}, result.RunID)
}

func Test_Build_cacheHitOnSecondRun(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeConfig(t, dir)
	cacheDir := filepath.Join(dir, "cache")

	cfg, err := config.Load(cfgPath)
	require.NoError(t, err)

	first, err := Build(cfg, Options{CacheDir: cacheDir})
	require.NoError(t, err)
	assert.False(t, first.FromCache)

	second, err := Build(cfg, Options{CacheDir: cacheDir})
	require.NoError(t, err)
	assert.True(t, second.FromCache)
	assert.Equal(t, first.Snapshot.SymbolNames, second.Snapshot.SymbolNames)
}

func Test_Build_fatalGrammarErrorReturnsError(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "grammar.txt"), []byte("S -> a {one} {two}\n"), 0o644))
	cfgPath := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`{"grammar": "grammar.txt"}`), 0o644))

	cfg, err := config.Load(cfgPath)
	require.NoError(t, err)

	_, err = Build(cfg, Options{NoCache: true})
	assert.Error(t, err)
}
