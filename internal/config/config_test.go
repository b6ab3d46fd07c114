package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func Test_Load_inlineTemplatesAndResults(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "grammar.txt", "S -> a\n")

	cfgPath := writeFile(t, dir, "config.json", `{
		"grammar": "grammar.txt",
		"shift_template": "shift {{.Token}}",
		"reduce_template": "reduce {{.Token}}",
		"goto_template": "goto {{.Next}}",
		"token_replace": {"a": "A_TOKEN"},
		"results": {"out.txt": ["shift", "reduce"]}
	}`)

	cfg, err := Load(cfgPath)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "grammar.txt"), cfg.GrammarPath)
	assert.Equal(t, "shift {{.Token}}", cfg.ShiftTemplate)
	assert.Equal(t, "A_TOKEN", cfg.TokenReplace["a"])
	assert.Contains(t, cfg.Results, filepath.Join(dir, "out.txt"))
	assert.Equal(t, []PrintOption{OptShift, OptReduce}, cfg.Results[filepath.Join(dir, "out.txt")])
}

func Test_Load_fileTemplateSource(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "grammar.txt", "S -> a\n")
	writeFile(t, dir, "shift.tmpl", "templated shift")

	cfgPath := writeFile(t, dir, "config.json", `{
		"grammar": "grammar.txt",
		"shift_template": {"file": "shift.tmpl"}
	}`)

	cfg, err := Load(cfgPath)
	require.NoError(t, err)
	assert.Equal(t, "templated shift", cfg.ShiftTemplate)
}

func Test_Load_tomlDefaultsLayerUnderJSON(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "grammar.txt", "S -> a\n")
	writeFile(t, dir, ".ggenrc.toml", "[token_replace]\na = \"FROM_DEFAULTS\"\nb = \"ALSO_DEFAULTS\"\n")

	cfgPath := writeFile(t, dir, "config.json", `{
		"grammar": "grammar.txt",
		"token_replace": {"a": "FROM_JSON"}
	}`)

	cfg, err := Load(cfgPath)
	require.NoError(t, err)

	assert.Equal(t, "FROM_JSON", cfg.TokenReplace["a"], "JSON value must win over the TOML default")
	assert.Equal(t, "ALSO_DEFAULTS", cfg.TokenReplace["b"], "TOML-only key should still be present")
}

func Test_Load_missingGrammarFileIsNotFatalAtLoadTime(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeFile(t, dir, "config.json", `{"grammar": "does-not-exist.txt"}`)

	cfg, err := Load(cfgPath)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "does-not-exist.txt"), cfg.GrammarPath)
}
