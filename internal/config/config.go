// Package config loads and resolves the JSON run configuration described in
// the external interfaces contract, optionally layered over a TOML defaults
// profile.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// PrintOption names one of the result kinds a results entry may request.
type PrintOption string

const (
	OptShift          PrintOption = "shift"
	OptReduce         PrintOption = "reduce"
	OptGoto           PrintOption = "goto"
	OptSemanticsState PrintOption = "semantics/state"
	OptSemanticsRule  PrintOption = "semantics/reduce"
	OptDot            PrintOption = "dot"
)

// TemplateSource is either an inline string or a path to a file holding the
// template text; exactly one of the two should be set in the raw JSON.
type TemplateSource struct {
	Inline string
	File   string
}

// UnmarshalJSON accepts either a bare JSON string (the inline form) or an
// object of shape {"file": "path"}.
func (ts *TemplateSource) UnmarshalJSON(data []byte) error {
	var asString string
	if err := json.Unmarshal(data, &asString); err == nil {
		ts.Inline = asString
		return nil
	}

	var asFile struct {
		File string `json:"file"`
	}
	if err := json.Unmarshal(data, &asFile); err != nil {
		return fmt.Errorf("template source must be a string or {\"file\": path}: %w", err)
	}
	ts.File = asFile.File
	return nil
}

// Load resolves ts to its final text. A file source is read relative to
// baseDir (the config file's directory).
func (ts TemplateSource) Load(baseDir string) (string, error) {
	if ts.File == "" {
		return ts.Inline, nil
	}
	p := ts.File
	if !filepath.IsAbs(p) {
		p = filepath.Join(baseDir, p)
	}
	b, err := os.ReadFile(p)
	if err != nil {
		return "", fmt.Errorf("read template file %q: %w", p, err)
	}
	return string(b), nil
}

// SemanticTemplateSource is the tagged shape for a semantics template: either
// a {case, body} pair rendered separately, or a single combined {line}.
type SemanticTemplateSource struct {
	Case *TemplateSource `json:"case,omitempty"`
	Body *TemplateSource `json:"body,omitempty"`
	Line *TemplateSource `json:"line,omitempty"`
}

// SemanticsConfig is the "semantics" object of the config file.
type SemanticsConfig struct {
	ReduceTemplate SemanticTemplateSource `json:"reduce_template"`
	StateTemplate  SemanticTemplateSource `json:"state_template"`
	Replacements   map[string]string      `json:"replacements"`
}

// rawConfig mirrors the JSON config's fields exactly.
type rawConfig struct {
	Grammar        string              `json:"grammar"`
	ReduceTemplate TemplateSource      `json:"reduce_template"`
	ShiftTemplate  TemplateSource      `json:"shift_template"`
	GotoTemplate   TemplateSource      `json:"goto_template"`
	TokenReplace   map[string]string   `json:"token_replace"`
	Semantics      SemanticsConfig     `json:"semantics"`
	Results        map[string][]string `json:"results"`
}

// Config is the resolved, post-layering view the generator pipeline
// consumes: absolute grammar path, resolved template text, and a concrete
// results set.
type Config struct {
	ConfigDir   string
	GrammarPath string

	ReduceTemplate string
	ShiftTemplate  string
	GotoTemplate   string

	TokenReplace map[string]string

	SemanticsReduceCase string
	SemanticsReduceBody string
	SemanticsReduceLine string
	SemanticsStateCase  string
	SemanticsStateBody  string
	SemanticsStateLine  string
	SemanticsReplace    map[string]string

	Results map[string][]PrintOption
}

// Load reads the JSON config at path, layers in a TOML defaults profile if
// one is found (see loadDefaultsProfile), and resolves every template source
// and the results map.
func Load(path string) (*Config, error) {
	dir := filepath.Dir(path)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %q: %w", path, err)
	}

	var raw rawConfig
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse config %q: %w", path, err)
	}

	defaults := loadDefaultsProfile(dir)

	cfg := &Config{
		ConfigDir:        dir,
		GrammarPath:      resolvePath(dir, raw.Grammar),
		TokenReplace:     mergeStringMaps(defaults.TokenReplace, raw.TokenReplace),
		SemanticsReplace: raw.Semantics.Replacements,
		Results:          map[string][]PrintOption{},
	}

	cfg.ReduceTemplate, err = raw.ReduceTemplate.Load(dir)
	if err != nil {
		return nil, err
	}
	cfg.ShiftTemplate, err = raw.ShiftTemplate.Load(dir)
	if err != nil {
		return nil, err
	}
	cfg.GotoTemplate, err = raw.GotoTemplate.Load(dir)
	if err != nil {
		return nil, err
	}

	if err := loadSemanticSource(raw.Semantics.ReduceTemplate, dir, &cfg.SemanticsReduceCase, &cfg.SemanticsReduceBody, &cfg.SemanticsReduceLine); err != nil {
		return nil, err
	}
	if err := loadSemanticSource(raw.Semantics.StateTemplate, dir, &cfg.SemanticsStateCase, &cfg.SemanticsStateBody, &cfg.SemanticsStateLine); err != nil {
		return nil, err
	}

	results := raw.Results
	if len(results) == 0 {
		results = defaults.Results
	}
	for outPath, kinds := range results {
		opts := make([]PrintOption, 0, len(kinds))
		for _, k := range kinds {
			opts = append(opts, PrintOption(k))
		}
		cfg.Results[resolvePath(dir, outPath)] = opts
	}

	return cfg, nil
}

func loadSemanticSource(src SemanticTemplateSource, dir string, caseOut, bodyOut, lineOut *string) error {
	var err error
	if src.Case != nil {
		if *caseOut, err = src.Case.Load(dir); err != nil {
			return err
		}
	}
	if src.Body != nil {
		if *bodyOut, err = src.Body.Load(dir); err != nil {
			return err
		}
	}
	if src.Line != nil {
		if *lineOut, err = src.Line.Load(dir); err != nil {
			return err
		}
	}
	return nil
}

func resolvePath(dir, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(dir, p)
}

func mergeStringMaps(base, override map[string]string) map[string]string {
	out := make(map[string]string, len(base)+len(override))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range override {
		out[k] = v
	}
	return out
}

// defaultsProfile is the shape of the optional ".ggenrc.toml" layering file.
type defaultsProfile struct {
	TokenReplace map[string]string `toml:"token_replace"`
	Results      map[string][]string
}

// loadDefaultsProfile looks for ".ggenrc.toml" in dir, then for
// "ggen/defaults.toml" in the user's config directory, and returns the first one found parsed, or a zero-value
// profile if neither exists. A malformed defaults file is ignored, not
// fatal: it only ever supplies fallback values, never a setting the JSON
// schema doesn't already define.
func loadDefaultsProfile(dir string) defaultsProfile {
	candidates := []string{filepath.Join(dir, ".ggenrc.toml")}
	if userCfg, err := os.UserConfigDir(); err == nil {
		candidates = append(candidates, filepath.Join(userCfg, "ggen", "defaults.toml"))
	}

	for _, p := range candidates {
		data, err := os.ReadFile(p)
		if err != nil {
			continue
		}
		var raw struct {
			TokenReplace map[string]string `toml:"token_replace"`
			Results      []struct {
				Path  string   `toml:"path"`
				Kinds []string `toml:"kinds"`
			} `toml:"results"`
		}
		if err := toml.Unmarshal(data, &raw); err != nil {
			continue
		}
		prof := defaultsProfile{TokenReplace: raw.TokenReplace, Results: map[string][]string{}}
		for _, r := range raw.Results {
			prof.Results[r.Path] = r.Kinds
		}
		return prof
	}
	return defaultsProfile{}
}
