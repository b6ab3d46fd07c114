// Package grammar holds the grammar data model (symbol table, rules, LR(0)
// items and item sets) and the FIRST/FOLLOW fixed-point solvers built on top
// of it.
package grammar

// Symbol identifies a nonterminal. Token identifies a terminal. Semantic
// identifies a named semantic action. All three are dense, zero-based ids
// drawn from disjoint namespaces.
type Symbol int
type Token int
type Semantic int

// NoSemantic is the sentinel meaning "no semantic marker attached here".
const NoSemantic Semantic = -1

// EndOfInput is the sentinel Token used in a FOLLOW set to mean $. The same
// value, when it appears in a FIRST set, means ε.
const EndOfInput Token = -1

// SymbolTable interns nonterminal, terminal, and semantic names into dense
// integer ids, append-only until Freeze is called.
//
// The grammar parser is the only writer: a name on the left of '->' is
// interned as a Symbol; an unrecognized bare name on a right-hand side is
// interned as a Token; names inside '{...}' or 'R{...}' are interned as
// Semantics.
type SymbolTable struct {
	symbolNames []string
	symbolIDs   map[string]Symbol

	tokenNames []string
	tokenIDs   map[string]Token

	semanticNames []string
	semanticIDs   map[string]Semantic

	frozen bool
}

// NewSymbolTable returns an empty, writable symbol table.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{
		symbolIDs:   map[string]Symbol{},
		tokenIDs:    map[string]Token{},
		semanticIDs: map[string]Semantic{},
	}
}

// Freeze marks the table read-only. Later Intern* calls panic when the name
// is not already interned; an existing name still returns its id.
func (t *SymbolTable) Freeze() { t.frozen = true }

// LookupSymbol returns the id for name if it has already been interned as a
// symbol.
func (t *SymbolTable) LookupSymbol(name string) (Symbol, bool) {
	id, ok := t.symbolIDs[name]
	return id, ok
}

// InternSymbol returns name's existing Symbol id, or interns and returns a
// new one.
func (t *SymbolTable) InternSymbol(name string) Symbol {
	if id, ok := t.symbolIDs[name]; ok {
		return id
	}
	t.mustBeWritable("intern symbol")
	id := Symbol(len(t.symbolNames))
	t.symbolNames = append(t.symbolNames, name)
	t.symbolIDs[name] = id
	return id
}

// LookupToken returns the id for name if it has already been interned as a
// token.
func (t *SymbolTable) LookupToken(name string) (Token, bool) {
	id, ok := t.tokenIDs[name]
	return id, ok
}

// InternToken returns name's existing Token id, or interns and returns a new
// one.
func (t *SymbolTable) InternToken(name string) Token {
	if id, ok := t.tokenIDs[name]; ok {
		return id
	}
	t.mustBeWritable("intern token")
	id := Token(len(t.tokenNames))
	t.tokenNames = append(t.tokenNames, name)
	t.tokenIDs[name] = id
	return id
}

// InternSemantic returns name's existing Semantic id, or interns and returns
// a new one.
func (t *SymbolTable) InternSemantic(name string) Semantic {
	if id, ok := t.semanticIDs[name]; ok {
		return id
	}
	t.mustBeWritable("intern semantic")
	id := Semantic(len(t.semanticNames))
	t.semanticNames = append(t.semanticNames, name)
	t.semanticIDs[name] = id
	return id
}

func (t *SymbolTable) mustBeWritable(op string) {
	if t.frozen {
		panic("grammar: cannot " + op + " on a frozen symbol table")
	}
}

// SymbolName returns the display name of a symbol id.
func (t *SymbolTable) SymbolName(s Symbol) string { return t.symbolNames[s] }

// TokenName returns the display name of a token id.
func (t *SymbolTable) TokenName(tok Token) string {
	if tok == EndOfInput {
		return "$"
	}
	return t.tokenNames[tok]
}

// SemanticName returns the display name of a semantic id.
func (t *SymbolTable) SemanticName(s Semantic) string { return t.semanticNames[s] }

// NumSymbols returns the number of interned symbols.
func (t *SymbolTable) NumSymbols() int { return len(t.symbolNames) }

// NumTokens returns the number of interned tokens.
func (t *SymbolTable) NumTokens() int { return len(t.tokenNames) }

// Symbols returns every interned symbol id in interning order.
func (t *SymbolTable) Symbols() []Symbol {
	out := make([]Symbol, len(t.symbolNames))
	for i := range out {
		out[i] = Symbol(i)
	}
	return out
}

// Tokens returns every interned token id in interning order.
func (t *SymbolTable) Tokens() []Token {
	out := make([]Token, len(t.tokenNames))
	for i := range out {
		out[i] = Token(i)
	}
	return out
}
