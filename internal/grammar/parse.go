package grammar

import (
	"strings"

	"github.com/ThePerkinrex/grammar-gen/internal/diag"
)

const stageParse = "grammar-parse"

// Parse builds a Grammar from an already-trimmed, blank-free sequence of
// grammar-file lines (see the grammar file reader for how those lines are
// produced from a file).
//
// Each line is "LHS -> rhs-tokens". A two-pass algorithm is used: the first
// pass interns every LHS name as a Symbol so the second pass can tell
// terminals from nonterminals while walking right-hand sides. Rule 0 is
// always the first well-formed line's rule, making its LHS the axiom.
func Parse(lines []string, d *diag.Channel) *Grammar {
	tab := NewSymbolTable()

	type splitLine struct {
		lhsName string
		rhsText string
	}
	var split []splitLine

	for _, line := range lines {
		idx := strings.Index(line, "->")
		if idx < 0 {
			d.WarnAt(stageParse, -1, -1, "line missing '->', skipped: %q", line)
			continue
		}
		lhsName := strings.TrimSpace(line[:idx])
		rhsText := strings.TrimSpace(line[idx+2:])
		if lhsName == "" {
			d.WarnAt(stageParse, -1, -1, "line has empty left-hand side, skipped: %q", line)
			continue
		}
		tab.InternSymbol(lhsName)
		split = append(split, splitLine{lhsName: lhsName, rhsText: rhsText})
	}

	g := &Grammar{Table: tab}

	for ruleNo, sl := range split {
		lhs, _ := tab.LookupSymbol(sl.lhsName)
		rule := newRule(lhs)

		fields := strings.Fields(sl.rhsText)
		for _, f := range fields {
			switch {
			case strings.HasPrefix(f, "R{") && strings.HasSuffix(f, "}"):
				name := f[2 : len(f)-1]
				sem := tab.InternSemantic(name)
				if rule.ReduceSemantic != NoSemantic && rule.ReduceSemantic != sem {
					d.WarnAt(stageParse, -1, ruleNo, "duplicate reduce semantic on rule (%q and %q), keeping first",
						tab.SemanticName(rule.ReduceSemantic), name)
				} else {
					rule.ReduceSemantic = sem
				}

			case strings.HasPrefix(f, "{") && strings.HasSuffix(f, "}"):
				name := f[1 : len(f)-1]
				sem := tab.InternSemantic(name)
				pos := len(rule.RHS)
				if rule.InlineSemantics[pos] != NoSemantic {
					if rule.InlineSemantics[pos] == sem {
						// identical duplicate: silently merged.
					} else {
						d.Fatalf(stageParse, "rule %d: two distinct inline semantic markers at the same position (%q and %q)",
							ruleNo, tab.SemanticName(rule.InlineSemantics[pos]), name)
					}
				} else {
					rule.InlineSemantics[pos] = sem
				}

			default:
				var gs GrammarSymbol
				if sym, ok := tab.LookupSymbol(f); ok {
					gs = Nonterminal(sym)
				} else {
					gs = Terminal(tab.InternToken(f))
				}
				rule.RHS = append(rule.RHS, gs)
				rule.InlineSemantics = append(rule.InlineSemantics, NoSemantic)
			}
		}

		g.Rules = append(g.Rules, rule)
	}

	tab.Freeze()
	return g
}
