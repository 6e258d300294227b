package ll

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/require"
)

func TestFirstFollow(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lfdc.ll")
	defer teardown()
	//
	g := makeGrammar(t)
	ga := Analysis(g)
	for _, tc := range []struct {
		N, first, follow string
	}{
		{"S", "{a b d}", "{$}"},
		{"A", "{ε b d}", "{a}"},
		{"B", "{ε b}", "{a d}"},
		{"D", "{ε d}", "{a}"},
	} {
		N := g.SymbolByName(tc.N)
		require.Equal(t, tc.first, ga.First(N).String(), "FIRST(%s)", tc.N)
		require.Equal(t, tc.follow, ga.Follow(N).String(), "FOLLOW(%s)", tc.N)
	}
	a := g.SymbolByName("a")
	require.Equal(t, "{a}", ga.First(a).String())
	require.Equal(t, "{ε}", ga.First(g.Epsilon()).String())
	require.Nil(t, ga.Follow(a))
}

func TestFirstOfSequence(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lfdc.ll")
	defer teardown()
	//
	g := makeGrammar(t)
	ga := Analysis(g)
	B, D, a := g.SymbolByName("B"), g.SymbolByName("D"), g.SymbolByName("a")
	require.Equal(t, "{ε}", ga.FirstOfSequence(nil).String())
	require.Equal(t, "{ε b d}", ga.FirstOfSequence([]*Symbol{B, D}).String())
	require.Equal(t, "{a b d}", ga.FirstOfSequence([]*Symbol{B, D, a}).String())
	require.Equal(t, "{a}", ga.FirstOfSequence([]*Symbol{a, B}).String())
}

// nullable computes the set of nullable non-terminals independently of FIRST.
func nullable(g *Grammar) map[*Symbol]bool {
	null := make(map[*Symbol]bool)
	for changed := true; changed; {
		changed = false
		for _, r := range g.Rules() {
			if null[r.LHS] {
				continue
			}
			all := true
			for _, A := range r.RHS() {
				if !A.IsEpsilon() && !null[A] {
					all = false
					break
				}
			}
			if all {
				null[r.LHS] = true
				changed = true
			}
		}
	}
	return null
}

func TestEpsilonInFirstIffNullable(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lfdc.ll")
	defer teardown()
	//
	b := NewGrammarBuilder("chain")
	b.LHS("S").N("X").N("Y").N("Z").End()
	b.LHS("X").N("Y").N("Z").End()
	b.LHS("Y").T("y", 1).End()
	b.LHS("Y").N("Z").End()
	b.LHS("Z").Epsilon()
	b.LHS("W").T("w", 2).N("W").End()
	b.LHS("W").T("v", 3).End()
	g, err := b.Grammar()
	require.NoError(t, err)
	for _, gg := range []*Grammar{g, makeGrammar(t)} {
		ga := Analysis(gg)
		null := nullable(gg)
		gg.EachNonTerminal(func(N *Symbol) {
			require.Equal(t, null[N], ga.First(N).ContainsEpsilon(), "FIRST(%s)=%v", N, ga.First(N))
			require.Equal(t, null[N], ga.DerivesEpsilon(N))
		})
	}
}

func TestTerminalSetEquals(t *testing.T) {
	g := makeGrammar(t)
	a, b := g.SymbolByName("a"), g.SymbolByName("b")
	S1 := newTerminalSet(a, b)
	S2 := newTerminalSet(b, a)
	require.True(t, S1.Equals(S2))
	require.True(t, S2.add(g.Epsilon()))
	require.False(t, S2.add(g.Epsilon()))
	require.False(t, S1.Equals(S2))
	require.Equal(t, []string{"ε", "a", "b"}, S2.Names())
}
