// Package emit exposes the read-only emission interface over a finished
// automaton: state/transition iterators, the template context objects the
// external rendering collaborator consumes, and the snapshot type the build
// cache persists.
package emit

// ShiftContext is the template context for a single shift entry.
type ShiftContext struct {
	State int    `json:"state"`
	Token string `json:"token"`
	Next  int    `json:"next"`
}

// ReduceContext is the template context for a single reduce entry.
//
// Elements is the rhs length at rule definition, independent of how many
// inline semantic markers the rule carries.
type ReduceContext struct {
	State             int    `json:"state"`
	Token             string `json:"token"`
	Elements          int    `json:"elements"`
	RuleNo            int    `json:"ruleno"`
	SymbolNo          int    `json:"symbol_no"`
	SymbolNotReplaced string `json:"symbol_not_replaced"`
}

// GotoContext is the template context for a single goto entry.
type GotoContext struct {
	State             int    `json:"state"`
	SymbolNo          int    `json:"symbol_no"`
	SymbolNotReplaced string `json:"symbol_not_replaced"`
	Next              int    `json:"next"`
}

// SemanticCaseState is the "case" half of a state-variant semantic context.
type SemanticCaseState struct {
	State int `json:"state"`
}

// SemanticCaseReduce is the "case" half of a reduce-variant semantic context.
type SemanticCaseReduce struct {
	RuleNo int `json:"ruleno"`
}

// SemanticBody is the shared "body" half of a semantic context, regardless of
// whether it is bound to a state or a rule.
type SemanticBody struct {
	Semantic     int    `json:"semantic"`
	SemanticName string `json:"semantic_name"`
	SemanticBody string `json:"semantic_body"`
}

// SemanticStateLine is the flat union used by the combined "line" template
// form for a state-bound semantic.
type SemanticStateLine struct {
	SemanticCaseState
	SemanticBody
}

// SemanticReduceLine is the flat union used by the combined "line" template
// form for a rule-bound semantic.
type SemanticReduceLine struct {
	SemanticCaseReduce
	SemanticBody
}
