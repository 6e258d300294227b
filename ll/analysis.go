package ll

import (
	"bytes"

	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/utils"
)

// === Terminal Sets =========================================================

// TerminalSet is an ordered set of grammar symbols, as used for FIRST and
// FOLLOW sets. Besides terminals it may contain the epsilon symbol (FIRST)
// and the end-marker (FOLLOW). Symbols are ordered by serial ID.
//
// Sets handed out by an LLAnalysis are read-only for clients.
type TerminalSet struct {
	set *treeset.Set
}

// We need this for the sets of symbols. It sorts symbols by serial ID.
func symbolComparator(s1, s2 interface{}) int {
	return utils.IntComparator(s1.(*Symbol).ID, s2.(*Symbol).ID)
}

func newTerminalSet(symbols ...*Symbol) *TerminalSet {
	S := &TerminalSet{set: treeset.NewWith(symbolComparator)}
	for _, A := range symbols {
		S.set.Add(A)
	}
	return S
}

// add inserts A and reports if the set grew.
func (S *TerminalSet) add(A *Symbol) bool {
	if S.set.Contains(A) {
		return false
	}
	S.set.Add(A)
	return true
}

// union adds all symbols of T, optionally except epsilon, and reports if the set grew.
func (S *TerminalSet) union(T *TerminalSet, withEpsilon bool) bool {
	grew := false
	it := T.set.Iterator()
	for it.Next() {
		A := it.Value().(*Symbol)
		if A.IsEpsilon() && !withEpsilon {
			continue
		}
		if S.add(A) {
			grew = true
		}
	}
	return grew
}

// Contains checks if A is a member of S.
func (S *TerminalSet) Contains(A *Symbol) bool {
	return S.set.Contains(A)
}

// ContainsEpsilon checks if S contains the epsilon symbol.
func (S *TerminalSet) ContainsEpsilon() bool {
	it := S.set.Iterator() // ε has the lowest serial ID of all symbols
	return it.Next() && it.Value().(*Symbol).IsEpsilon()
}

// Size returns the number of symbols in S.
func (S *TerminalSet) Size() int {
	return S.set.Size()
}

// Empty returns true if S has no members.
func (S *TerminalSet) Empty() bool {
	return S.set.Empty()
}

// Symbols returns the members of S, ordered by serial ID.
func (S *TerminalSet) Symbols() []*Symbol {
	syms := make([]*Symbol, 0, S.set.Size())
	it := S.set.Iterator()
	for it.Next() {
		syms = append(syms, it.Value().(*Symbol))
	}
	return syms
}

// Names returns the names of the members of S, ordered by serial ID.
func (S *TerminalSet) Names() []string {
	names := make([]string, 0, S.set.Size())
	for _, A := range S.Symbols() {
		names = append(names, A.Name)
	}
	return names
}

// Equals checks if S and T have the same members.
func (S *TerminalSet) Equals(T *TerminalSet) bool {
	if S.Size() != T.Size() {
		return false
	}
	return S.set.Contains(T.set.Values()...)
}

func (S *TerminalSet) String() string {
	var b bytes.Buffer
	b.WriteByte('{')
	for i, A := range S.Symbols() {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(A.Name)
	}
	b.WriteByte('}')
	return b.String()
}

// === Grammar Analysis ======================================================

// LLAnalysis is an object for grammar analysis (computing FIRST and FOLLOW sets).
type LLAnalysis struct {
	g      *Grammar
	first  map[*Symbol]*TerminalSet // FIRST sets of non-terminals
	follow map[*Symbol]*TerminalSet // FOLLOW sets of non-terminals
}

// Analysis creates an analyser for a grammar. The analyser immediately
// computes the FIRST and FOLLOW sets of all non-terminals.
func Analysis(g *Grammar) *LLAnalysis {
	ga := &LLAnalysis{
		g:      g,
		first:  make(map[*Symbol]*TerminalSet, len(g.nonterminals)),
		follow: make(map[*Symbol]*TerminalSet, len(g.nonterminals)),
	}
	for _, N := range g.nonterminals {
		ga.first[N] = newTerminalSet()
		ga.follow[N] = newTerminalSet()
	}
	ga.computeFirst()
	ga.computeFollow()
	return ga
}

// Grammar returns the grammar this analyser operates on.
func (ga *LLAnalysis) Grammar() *Grammar {
	return ga.g
}

// First returns FIRST(A). For a terminal or the end-marker this is {A}, for
// epsilon it is {ε}.
func (ga *LLAnalysis) First(A *Symbol) *TerminalSet {
	switch A.Kind() {
	case TerminalKind, EndMarkerKind, EpsilonKind:
		return newTerminalSet(A)
	case NonTerminalKind:
		return ga.first[A]
	}
	panic("unknown symbol kind")
}

// FirstOfSequence returns FIRST(X1 X2 … Xn). The symbols are scanned left to
// right until the first one which does not derive ε. If all of them derive ε,
// ε is a member of the result. FIRST of the empty sequence is {ε}.
func (ga *LLAnalysis) FirstOfSequence(seq []*Symbol) *TerminalSet {
	S := newTerminalSet()
	for _, X := range seq {
		F := ga.First(X)
		S.union(F, false)
		if !F.ContainsEpsilon() {
			return S
		}
	}
	S.add(ga.g.epsilon)
	return S
}

// Follow returns FOLLOW(N) for a non-terminal N. Returns nil for
// other kinds of symbols.
func (ga *LLAnalysis) Follow(N *Symbol) *TerminalSet {
	return ga.follow[N]
}

// DerivesEpsilon returns true if A ⇒* ε.
func (ga *LLAnalysis) DerivesEpsilon(A *Symbol) bool {
	return ga.First(A).ContainsEpsilon()
}

func (ga *LLAnalysis) computeFirst() {
	iteration := 0
	for changed := true; changed; {
		changed = false
		iteration++
		for _, r := range ga.g.rules {
			F := ga.FirstOfSequence(r.rhs)
			if ga.first[r.LHS].union(F, true) {
				tracer().Debugf("FIRST(%s) grows to %v", r.LHS, ga.first[r.LHS])
				changed = true
			}
		}
	}
	tracer().Debugf("FIRST sets stable after %d iterations", iteration)
}

func (ga *LLAnalysis) computeFollow() {
	ga.follow[ga.g.start].add(ga.g.eof)
	iteration := 0
	for changed := true; changed; {
		changed = false
		iteration++
		for _, r := range ga.g.rules {
			for i, A := range r.rhs {
				if !A.IsNonTerminal() {
					continue
				}
				F := ga.FirstOfSequence(r.rhs[i+1:])
				if ga.follow[A].union(F, false) {
					changed = true
				}
				if F.ContainsEpsilon() && ga.follow[A].union(ga.follow[r.LHS], false) {
					changed = true
				}
			}
		}
	}
	tracer().Debugf("FOLLOW sets stable after %d iterations", iteration)
}
