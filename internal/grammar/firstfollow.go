package grammar

import "github.com/ThePerkinrex/grammar-gen/internal/util"

// FirstFollow holds the memoized results of the FIRST and FOLLOW
// fixed-point solvers for a Grammar. Both maps grow only during Compute and
// are read-only afterward.
//
// Epsilon and end-of-input are both represented by the EndOfInput sentinel:
// in a FIRST set it means the form can derive the empty string; in a FOLLOW
// set it means $ can follow the symbol. The two sets are never confused with
// each other since they live in separate maps.
type FirstFollow struct {
	g *Grammar

	firstOfSymbol map[Symbol]util.Set[Token]
	follow        map[Symbol]util.Set[Token]
}

// Compute runs both fixed points over g and returns the resulting
// FirstFollow. This is the only constructor; there is no lazy variant, per
// the iterative-worklist requirement that makes the computation correct in
// the presence of epsilon productions.
func Compute(g *Grammar) *FirstFollow {
	ff := &FirstFollow{
		g:             g,
		firstOfSymbol: map[Symbol]util.Set[Token]{},
		follow:        map[Symbol]util.Set[Token]{},
	}
	ff.computeFirst()
	ff.computeFollow()
	return ff
}

// computeFirst populates firstOfSymbol with the least fixed point: a
// worklist loop that keeps unioning rhs-derived sets into each nonterminal's
// FIRST set until nothing changes. This avoids recursion so epsilon cycles
// and mutually recursive nonterminals are handled correctly.
func (ff *FirstFollow) computeFirst() {
	for _, s := range ff.g.Table.Symbols() {
		set := util.NewSet[Token]()
		ff.firstOfSymbol[s] = set
	}

	for {
		grew := false
		for _, rule := range ff.g.Rules {
			rhsFirst := ff.firstOfSequenceLocked(rule.RHS)
			set := ff.firstOfSymbol[rule.LHS]
			if set.AddAll(rhsFirst) {
				grew = true
				ff.firstOfSymbol[rule.LHS] = set
			}
		}
		if !grew {
			return
		}
	}
}

// firstOfSequenceLocked composes FIRST(X1...Xn) from the (possibly still
// growing) per-symbol memo. Safe to call mid-fixed-point: using a partial
// memo can only undercount, which the outer loop's "repeat until no change"
// termination condition corrects.
func (ff *FirstFollow) firstOfSequenceLocked(seq []GrammarSymbol) util.Set[Token] {
	result := util.NewSet[Token]()
	result.Add(EndOfInput) // start with {epsilon}

	for _, gs := range seq {
		if !result.Has(EndOfInput) {
			break
		}
		// remove epsilon, union in FIRST(gs)
		withoutEps := util.NewSet[Token]()
		for _, t := range result.Elements() {
			if t != EndOfInput {
				withoutEps.Add(t)
			}
		}
		result = withoutEps

		if gs.IsTerminal() {
			result.Add(gs.Token)
		} else {
			result.AddAll(ff.firstOfSymbol[gs.Symbol])
		}
	}

	return result
}

// FirstOfSymbol returns FIRST(A) for a nonterminal A.
func (ff *FirstFollow) FirstOfSymbol(s Symbol) util.Set[Token] {
	return ff.firstOfSymbol[s].Copy()
}

// FirstOfSequence returns FIRST(X1...Xn) for an arbitrary sentential form,
// composed on demand from the frozen per-symbol memo.
func (ff *FirstFollow) FirstOfSequence(seq []GrammarSymbol) util.Set[Token] {
	return ff.firstOfSequenceLocked(seq)
}

// computeFollow runs the global FOLLOW fixed point: FOLLOW(axiom) starts at
// {$}, every other FOLLOW(A) starts empty, and for every rule A -> alpha B
// beta, FIRST(beta)\{eps} is added to FOLLOW(B), with FOLLOW(A) added too
// when beta is empty or nullable.
func (ff *FirstFollow) computeFollow() {
	for _, s := range ff.g.Table.Symbols() {
		ff.follow[s] = util.NewSet[Token]()
	}
	axiom := util.NewSet[Token]()
	axiom.Add(EndOfInput)
	ff.follow[ff.g.Axiom()] = axiom

	for {
		grew := false
		for _, rule := range ff.g.Rules {
			for i, gs := range rule.RHS {
				if gs.IsNonterminal() {
					beta := rule.RHS[i+1:]
					betaFirst := ff.firstOfSequenceLocked(beta)

					followB := ff.follow[gs.Symbol]
					for _, t := range betaFirst.Elements() {
						if t == EndOfInput {
							continue
						}
						if followB.Add(t) {
							grew = true
						}
					}
					if betaFirst.Has(EndOfInput) {
						followA := ff.follow[rule.LHS]
						if followB.AddAll(followA) {
							grew = true
						}
					}
					ff.follow[gs.Symbol] = followB
				}
			}
		}
		if !grew {
			return
		}
	}
}

// Follow returns FOLLOW(A).
func (ff *FirstFollow) Follow(s Symbol) util.Set[Token] {
	return ff.follow[s].Copy()
}
