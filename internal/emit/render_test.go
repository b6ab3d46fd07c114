package emit

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ThePerkinrex/grammar-gen/internal/config"
)

func Test_RenderAll_shiftAndReduceToFile(t *testing.T) {
	snap := buildSnapshot(t, []string{"S -> a"})

	dir := t.TempDir()
	outPath := filepath.Join(dir, "out.txt")

	cfg := &config.Config{
		ShiftTemplate:  "SHIFT {{.State}} {{.Token}} {{.Next}}\n",
		ReduceTemplate: "REDUCE {{.State}} {{.Token}} rule={{.RuleNo}}\n",
		Results: map[string][]config.PrintOption{
			outPath: {config.OptShift, config.OptReduce},
		},
	}

	r, err := NewRenderer(snap, cfg)
	require.NoError(t, err)
	require.NoError(t, r.RenderAll())

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "SHIFT 0")
}

func Test_RenderAll_semanticsLineFormReplacesName(t *testing.T) {
	snap := buildSnapshot(t, []string{"S -> a R{done}"})

	dir := t.TempDir()
	outPath := filepath.Join(dir, "semantics.txt")

	cfg := &config.Config{
		SemanticsReduceLine: "RULE {{.RuleNo}} -> {{.SemanticName}}\n",
		SemanticsReplace:    map[string]string{"done": "DoneAction"},
		Results: map[string][]config.PrintOption{
			outPath: {config.OptSemanticsRule},
		},
	}

	r, err := NewRenderer(snap, cfg)
	require.NoError(t, err)
	require.NoError(t, r.RenderAll())

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "DoneAction")
}

func Test_NewRenderer_badTemplateFailsFast(t *testing.T) {
	snap := buildSnapshot(t, []string{"S -> a"})
	cfg := &config.Config{ShiftTemplate: "{{.NoSuchField"}

	_, err := NewRenderer(snap, cfg)
	assert.Error(t, err)
}
