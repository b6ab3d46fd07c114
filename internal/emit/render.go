package emit

import (
	"bytes"
	"fmt"
	"os"
	"text/template"

	"github.com/ThePerkinrex/grammar-gen/internal/config"
)

// Renderer renders a finished AutomatonSnapshot through the config's
// templates and writes the results to their configured output paths.
type Renderer struct {
	Snapshot *AutomatonSnapshot
	Config   *config.Config

	shiftTmpl, reduceTmpl, gotoTmpl              *template.Template
	semStateCase, semStateBody, semStateLine     *template.Template
	semReduceCase, semReduceBody, semReduceLine  *template.Template
}

// NewRenderer parses every configured template once, up front, so a parse
// failure is reported before any output file is touched.
func NewRenderer(snap *AutomatonSnapshot, cfg *config.Config) (*Renderer, error) {
	r := &Renderer{Snapshot: snap, Config: cfg}

	var err error
	if r.shiftTmpl, err = parseTmpl("shift", cfg.ShiftTemplate); err != nil {
		return nil, err
	}
	if r.reduceTmpl, err = parseTmpl("reduce", cfg.ReduceTemplate); err != nil {
		return nil, err
	}
	if r.gotoTmpl, err = parseTmpl("goto", cfg.GotoTemplate); err != nil {
		return nil, err
	}
	if r.semStateCase, err = parseTmpl("semantics/state/case", cfg.SemanticsStateCase); err != nil {
		return nil, err
	}
	if r.semStateBody, err = parseTmpl("semantics/state/body", cfg.SemanticsStateBody); err != nil {
		return nil, err
	}
	if r.semStateLine, err = parseTmpl("semantics/state/line", cfg.SemanticsStateLine); err != nil {
		return nil, err
	}
	if r.semReduceCase, err = parseTmpl("semantics/reduce/case", cfg.SemanticsReduceCase); err != nil {
		return nil, err
	}
	if r.semReduceBody, err = parseTmpl("semantics/reduce/body", cfg.SemanticsReduceBody); err != nil {
		return nil, err
	}
	if r.semReduceLine, err = parseTmpl("semantics/reduce/line", cfg.SemanticsReduceLine); err != nil {
		return nil, err
	}

	return r, nil
}

func parseTmpl(name, text string) (*template.Template, error) {
	if text == "" {
		return nil, nil
	}
	t, err := template.New(name).Parse(text)
	if err != nil {
		return nil, fmt.Errorf("parse %s template: %w", name, err)
	}
	return t, nil
}

// RenderAll renders every configured results entry and writes it to its
// output path. Each file is rendered to a buffer first and only then
// written, so a mid-render failure never leaves a truncated file on disk.
func (r *Renderer) RenderAll() error {
	for path, kinds := range r.Config.Results {
		var buf bytes.Buffer
		for _, kind := range kinds {
			if err := r.renderKind(&buf, kind); err != nil {
				return fmt.Errorf("render %q for %q: %w", kind, path, err)
			}
		}
		if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
			return fmt.Errorf("write %q: %w", path, err)
		}
	}
	return nil
}

func (r *Renderer) renderKind(buf *bytes.Buffer, kind config.PrintOption) error {
	dn := DisplayNames{TokenReplace: r.Config.TokenReplace}

	switch kind {
	case config.OptDot:
		buf.WriteString(r.Snapshot.Dot())
		return nil

	case config.OptShift:
		for _, st := range r.Snapshot.States {
			for _, ctx := range r.Snapshot.Shifts(st.No, dn) {
				if err := execTmpl(buf, r.shiftTmpl, ctx); err != nil {
					return err
				}
			}
		}
		return nil

	case config.OptReduce:
		for _, st := range r.Snapshot.States {
			for _, ctx := range r.Snapshot.Reduces(st.No, dn) {
				if err := execTmpl(buf, r.reduceTmpl, ctx); err != nil {
					return err
				}
			}
		}
		return nil

	case config.OptGoto:
		for _, st := range r.Snapshot.States {
			for _, ctx := range r.Snapshot.Gotos(st.No) {
				if err := execTmpl(buf, r.gotoTmpl, ctx); err != nil {
					return err
				}
			}
		}
		return nil

	case config.OptSemanticsState:
		for _, line := range r.Snapshot.StateSemanticLines() {
			line.SemanticName = replaceSemantic(r.Config.SemanticsReplace, line.SemanticName)
			if r.semStateLine != nil {
				if err := execTmpl(buf, r.semStateLine, line); err != nil {
					return err
				}
				continue
			}
			if err := execTmpl(buf, r.semStateCase, line.SemanticCaseState); err != nil {
				return err
			}
			if err := execTmpl(buf, r.semStateBody, line.SemanticBody); err != nil {
				return err
			}
		}
		return nil

	case config.OptSemanticsRule:
		for _, line := range r.Snapshot.ReduceSemanticLines() {
			line.SemanticName = replaceSemantic(r.Config.SemanticsReplace, line.SemanticName)
			if r.semReduceLine != nil {
				if err := execTmpl(buf, r.semReduceLine, line); err != nil {
					return err
				}
				continue
			}
			if err := execTmpl(buf, r.semReduceCase, line.SemanticCaseReduce); err != nil {
				return err
			}
			if err := execTmpl(buf, r.semReduceBody, line.SemanticBody); err != nil {
				return err
			}
		}
		return nil

	default:
		return fmt.Errorf("unknown result kind %q", kind)
	}
}

func execTmpl(buf *bytes.Buffer, t *template.Template, ctx any) error {
	if t == nil {
		return nil
	}
	if err := t.Execute(buf, ctx); err != nil {
		return err
	}
	if buf.Len() > 0 && buf.Bytes()[buf.Len()-1] != '\n' {
		buf.WriteByte('\n')
	}
	return nil
}

func replaceSemantic(replacements map[string]string, name string) string {
	if r, ok := replacements[name]; ok {
		return r
	}
	return name
}

