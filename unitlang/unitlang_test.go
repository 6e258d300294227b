package unitlang

import (
	"errors"
	"strings"
	"testing"

	"github.com/markurti/lfdc"
	"github.com/markurti/lfdc/ll"
	"github.com/markurti/lfdc/ll/parsetree"
	"github.com/markurti/lfdc/ll/predictive"
	"github.com/markurti/lfdc/ll/scanner"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func frontier(tree *parsetree.Tree) []string {
	var names []string
	for _, n := range tree.Frontier() {
		names = append(names, n.Symbol.Name)
	}
	return names
}

func indexOf(d predictive.Derivation, rule string) int {
	for i, s := range d.Strings() {
		if s == rule {
			return i
		}
	}
	return -1
}

func TestKinds(t *testing.T) {
	require.Equal(t, "IDENTIFIER", Identifier.String())
	require.Equal(t, "COMMA", Comma.String())
	require.Equal(t, "Kind(99)", Kind(99).String())
	require.Len(t, Kinds(), 30)
	k, ok := Resolve("LBRACKET")
	require.True(t, ok)
	require.Equal(t, LBracket.TokType(), k)
	_, ok = Resolve("lbracket")
	require.False(t, ok)
	require.Equal(t, "$", TokenName(lfdc.EOF))
	require.Equal(t, "UNIT", TokenName(Unit.TokType()))
}

func TestScan(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lfdc.scanner")
	defer teardown()
	//
	tokens, err := Scan("convert x to km\nprint -5 kg >= 3")
	require.NoError(t, err)
	var kinds []string
	for _, tok := range tokens {
		kinds = append(kinds, TokenName(tok.Type))
	}
	require.Equal(t, []string{
		"CONVERT", "IDENTIFIER", "TO", "UNIT",
		"PRINT", "NUMBER", "UNIT", "GE", "NUMBER", "$",
	}, kinds)
	require.Equal(t, "-5", tokens[5].Lexeme)
}

func TestScanLexicalError(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lfdc.scanner")
	defer teardown()
	//
	_, err := Scan("1var = 5")
	var lexerrs scanner.LexicalErrors
	require.True(t, errors.As(err, &lexerrs))
	require.Len(t, lexerrs, 1)
	require.Equal(t, uint64(0), lexerrs[0].Offset)
	require.Equal(t, "1var", lexerrs[0].Lexeme)
	_, _, err = Parse("1var = 5")
	require.Error(t, err)
	//
	_, err = Scan("1var@x y = 2")
	require.True(t, errors.As(err, &lexerrs))
	require.Len(t, lexerrs, 1)
	require.Equal(t, "1var@x", lexerrs[0].Lexeme)
	_, err = Scan("x = 5\fkg")
	require.NoError(t, err)
}

func TestGrammarIsLL1(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lfdc.ll")
	defer teardown()
	//
	g, err := Grammar()
	require.NoError(t, err)
	require.Equal(t, "program", g.Start().Name)
	require.Len(t, g.Terminals(), 31) // including end-marker
	gen := ll.NewTableGenerator(ll.Analysis(g))
	_, err = gen.CreateTable()
	require.NoError(t, err)
	require.False(t, gen.HasConflicts())
}

func TestFirstContainsEpsilonIffNullable(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lfdc.ll")
	defer teardown()
	//
	g, err := Grammar()
	require.NoError(t, err)
	ga := ll.Analysis(g)
	nullable := map[string]bool{
		"stmt_list_tail": true, "else_opt": true, "list_elems": true, "list_tail": true,
		"expr_tail": true, "term_tail": true, "unit_opt": true,
	}
	g.EachNonTerminal(func(A *ll.Symbol) {
		assert.Equal(t, nullable[A.Name], ga.First(A).ContainsEpsilon(), A.Name)
		assert.Equal(t, nullable[A.Name], ga.DerivesEpsilon(A), A.Name)
	})
	require.Equal(t, "{$ RBRACE}", ga.Follow(g.SymbolByName("stmt_list_tail")).String())
	require.ElementsMatch(t, []string{"ε", "NUMBER", "IDENTIFIER", "LPAREN"},
		ga.First(g.SymbolByName("list_elems")).Names())
}

func TestParseAssignment(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lfdc.ll")
	defer teardown()
	//
	tree, d, err := Parse("x = 5 kg")
	require.NoError(t, err)
	require.Equal(t, "program → stmt_list", d[0].String())
	require.NotEqual(t, -1, indexOf(d, "assign_stmt → IDENTIFIER ASSIGN expression unit_opt"))
	require.NotEqual(t, -1, indexOf(d, "unit_opt → UNIT"))
	require.Equal(t, []string{"IDENTIFIER", "ASSIGN", "NUMBER", "UNIT"}, frontier(tree))
	leaves := tree.Frontier()
	require.Equal(t, "kg", leaves[3].Value)
	require.Equal(t, lfdc.Span{6, 8}, leaves[3].Span)
}

func TestParseIfWithoutElse(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lfdc.ll")
	defer teardown()
	//
	_, d, err := Parse("if x > 10 then { print x }")
	require.NoError(t, err)
	i := indexOf(d, "if_stmt → IF condition THEN block else_opt")
	j := indexOf(d, "else_opt → ε")
	require.NotEqual(t, -1, i)
	require.Greater(t, j, i)
	require.NotEqual(t, -1, indexOf(d, "comp_op → GT"))
}

func TestParsePrograms(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lfdc.ll")
	defer teardown()
	//
	for _, src := range []string{
		"x = 5 kg convert x to g print x",
		"print (a + 2) * b / 4 - c",
		"if x == 10 then { y = x } else { y = 0 print y }",
		"for i in [1, 2, 3] do { print i * 10 }",
		"for i in [] do { print i }",
		"if a != b then { if a <= b then { print a } }",
		"dist = -100 km\nconvert dist to m",
	} {
		tree, d, err := Parse(src)
		require.NoError(t, err, src)
		tokens, err := Scan(src)
		require.NoError(t, err)
		var names []string
		for _, tok := range tokens[:len(tokens)-1] {
			names = append(names, TokenName(tok.Type))
		}
		require.Equal(t, names, frontier(tree), src)
		g, _ := Grammar()
		replayed, err := parsetree.Replay(g, d, tokens)
		require.NoError(t, err, src)
		require.True(t, tree.Equal(replayed), src)
	}
}

func TestParseSyntaxErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lfdc.ll")
	defer teardown()
	//
	for _, c := range []struct {
		src    string
		offset uint64
		token  string
	}{
		{"x = ", 4, "$"},
		{"x 5", 2, "NUMBER"},
		{"print 5 kg", 8, "UNIT"},
		{"if x then { print x }", 5, "THEN"},
		{"for i in [1,] do { print i }", 12, "RBRACKET"},
		{"{ print x }", 0, "LBRACE"},
	} {
		_, _, err := Parse(c.src)
		var serr *predictive.SyntaxError
		require.True(t, errors.As(err, &serr), c.src)
		require.Equal(t, c.offset, serr.Token.Offset, c.src)
		require.Equal(t, c.token, serr.TokenName, c.src)
	}
}

func TestGrammarFingerprintCache(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lfdc.ll")
	defer teardown()
	//
	g, err := Grammar()
	require.NoError(t, err)
	table, err := Table()
	require.NoError(t, err)
	again, err := TableFor(g)
	require.NoError(t, err)
	require.Same(t, table, again)
	l, err := NewLanguage(g)
	require.NoError(t, err)
	require.Same(t, table, l.Table())
	//
	sums := func(name string) *ll.Grammar {
		b := ll.NewGrammarBuilder(name)
		b.LHS("sum").T("NUMBER", Number.TokType()).N("more").End()
		b.LHS("more").T("PLUS", Plus.TokType()).T("NUMBER", Number.TokType()).N("more").End()
		b.LHS("more").Epsilon()
		g, err := b.Grammar()
		require.NoError(t, err)
		return g
	}
	g1, g2 := sums("Sums A"), sums("Sums B")
	require.Equal(t, g1.Fingerprint(), g2.Fingerprint())
	t1, err := TableFor(g1)
	require.NoError(t, err)
	t2, err := TableFor(g2)
	require.NoError(t, err)
	require.NotSame(t, t1, t2)
	require.Equal(t, "Sums B", t2.Grammar().Name)
	t3, err := TableFor(sums("Sums A"))
	require.NoError(t, err)
	require.Same(t, t1, t3)
}

func TestCustomGrammar(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lfdc.ll")
	defer teardown()
	//
	b := ll.NewGrammarBuilder("Sums")
	b.LHS("sum").T("NUMBER", Number.TokType()).N("more").End()
	b.LHS("more").T("PLUS", Plus.TokType()).T("NUMBER", Number.TokType()).N("more").End()
	b.LHS("more").Epsilon()
	g, err := b.Grammar()
	require.NoError(t, err)
	l, err := NewLanguage(g)
	require.NoError(t, err)
	tree, _, err := l.Parse("1 + 2 + 3")
	require.NoError(t, err)
	require.Equal(t, "NUMBER PLUS NUMBER PLUS NUMBER", strings.Join(frontier(tree), " "))
	_, _, err = l.Parse("1 - 2")
	require.Error(t, err)
}
