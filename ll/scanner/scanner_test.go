package scanner

import (
	"errors"
	"testing"

	"github.com/markurti/lfdc"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/require"
)

func TestIdentifierFA(t *testing.T) {
	for i, tc := range []struct {
		input  string
		accept bool
		at     int
	}{
		{"x", true, 1},
		{"value1", true, 6},
		{"CamelCase", true, 9},
		{"1var", false, 0},
		{"snake_case", false, 5},
		{"", false, 0},
	} {
		ok, at := IdentifierFA.Recognize(tc.input)
		if ok != tc.accept || at != tc.at {
			t.Errorf("test %d: identifier %q: expected (%v,%d), have (%v,%d)",
				i, tc.input, tc.accept, tc.at, ok, at)
		}
	}
}

func TestIntegerFA(t *testing.T) {
	for i, tc := range []struct {
		input  string
		accept bool
		at     int
	}{
		{"0", true, 1},
		{"42", true, 2},
		{"-42", true, 3},
		{"100", true, 3},
		{"00", false, 1},
		{"007", false, 1},
		{"-0", false, 1},
		{"-", false, 1},
		{"1var", false, 1},
		{"4-2", false, 1},
	} {
		ok, at := IntegerFA.Recognize(tc.input)
		if ok != tc.accept || at != tc.at {
			t.Errorf("test %d: integer %q: expected (%v,%d), have (%v,%d)",
				i, tc.input, tc.accept, tc.at, ok, at)
		}
	}
}

// Token types for a tiny test language.
const (
	tIdent lfdc.TokType = iota + 1
	tNum
	tPrint
	tAssign
	tEq
	tGE
	tGT
	tMinus
	tUnit
)

func testLexicon() *Lexicon {
	return &Lexicon{
		Keywords: []Literal{{"print", tPrint}},
		Operators: []Literal{
			{"=", tAssign}, {"==", tEq}, {">=", tGE}, {">", tGT}, {"-", tMinus},
		},
		Words:      []Literal{{"kg", tUnit}, {"m", tUnit}},
		Identifier: tIdent,
		Number:     tNum,
	}
}

func types(tokens []lfdc.Token) []lfdc.TokType {
	var tt []lfdc.TokType
	for _, t := range tokens {
		tt = append(tt, t.Type)
	}
	return tt
}

func TestScan(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lfdc.scanner")
	defer teardown()
	//
	sc, err := NewScanner(testLexicon())
	require.NoError(t, err)
	for _, tc := range []struct {
		input string
		types []lfdc.TokType
	}{
		{"x = 5 kg", []lfdc.TokType{tIdent, tAssign, tNum, tUnit, lfdc.EOF}},
		{"printx", []lfdc.TokType{tIdent, lfdc.EOF}},
		{"print x", []lfdc.TokType{tPrint, tIdent, lfdc.EOF}},
		{"kgs m", []lfdc.TokType{tIdent, tUnit, lfdc.EOF}},
		{"a>=b>c==d", []lfdc.TokType{tIdent, tGE, tIdent, tGT, tIdent, tEq, tIdent, lfdc.EOF}},
		{"-5", []lfdc.TokType{tNum, lfdc.EOF}},
		{"- 5", []lfdc.TokType{tMinus, tNum, lfdc.EOF}},
		{"-x", []lfdc.TokType{tMinus, tIdent, lfdc.EOF}},
		{"0", []lfdc.TokType{tNum, lfdc.EOF}},
		{"", []lfdc.TokType{lfdc.EOF}},
	} {
		tokens, err := sc.Scan(tc.input)
		require.NoError(t, err, tc.input)
		require.Equal(t, tc.types, types(tokens), tc.input)
	}
}

func TestScanOffsets(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lfdc.scanner")
	defer teardown()
	//
	sc, err := NewScanner(testLexicon())
	require.NoError(t, err)
	tokens, err := sc.Scan("x  = 10\n  m")
	require.NoError(t, err)
	require.Equal(t, []lfdc.Token{
		{Type: tIdent, Lexeme: "x", Offset: 0},
		{Type: tAssign, Lexeme: "=", Offset: 3},
		{Type: tNum, Lexeme: "10", Offset: 5},
		{Type: tUnit, Lexeme: "m", Offset: 10},
		lfdc.EOFToken(11),
	}, tokens)
}

func TestLexicalErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lfdc.scanner")
	defer teardown()
	//
	sc, err := NewScanner(testLexicon())
	require.NoError(t, err)
	//
	_, err = sc.Scan("1var")
	var lexerrs LexicalErrors
	require.True(t, errors.As(err, &lexerrs))
	require.Len(t, lexerrs, 1)
	require.Equal(t, uint64(0), lexerrs[0].Offset)
	require.Equal(t, "1var", lexerrs[0].Lexeme)
	//
	_, err = sc.Scan("x = 00")
	require.True(t, errors.As(err, &lexerrs))
	require.Equal(t, uint64(4), lexerrs[0].Offset)
	require.Equal(t, uint64(5), lexerrs[0].At)
	//
	_, err = sc.Scan("a @# b 007 c $ d")
	require.True(t, errors.As(err, &lexerrs))
	require.Len(t, lexerrs, 3, "all errors collected: %v", err)
	require.Equal(t, "@#", lexerrs[0].Lexeme)
	require.Equal(t, uint64(2), lexerrs[0].Offset)
	require.Equal(t, "007", lexerrs[1].Lexeme)
	require.Equal(t, "$", lexerrs[2].Lexeme)
	require.Equal(t, uint64(13), lexerrs[2].Offset)
}

func TestLexicalErrorResync(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lfdc.scanner")
	defer teardown()
	//
	sc, err := NewScanner(testLexicon())
	require.NoError(t, err)
	for _, tc := range []struct {
		input  string
		lexeme string
		offset uint64
		at     uint64
	}{
		{"1var@x y", "1var@x", 0, 1},
		{"x = 007+y z", "007+y", 4, 5},
		{"print 12ab=3\n", "12ab=3", 6, 8},
		{"9", "", 0, 0}, // accepted
	} {
		_, err := sc.Scan(tc.input)
		if tc.lexeme == "" {
			require.NoError(t, err, tc.input)
			continue
		}
		var lexerrs LexicalErrors
		require.True(t, errors.As(err, &lexerrs), tc.input)
		require.Len(t, lexerrs, 1, "one error for %q: %v", tc.input, err)
		require.Equal(t, tc.lexeme, lexerrs[0].Lexeme)
		require.Equal(t, tc.offset, lexerrs[0].Offset)
		require.Equal(t, tc.at, lexerrs[0].At)
	}
	tokens, err := sc.Scan("1var@x y")
	require.Error(t, err)
	require.Nil(t, tokens)
}

func TestScanWhitespace(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lfdc.scanner")
	defer teardown()
	//
	sc, err := NewScanner(testLexicon())
	require.NoError(t, err)
	tokens, err := sc.Scan("x =\t5\fkg\vm\r\n")
	require.NoError(t, err)
	require.Equal(t, []lfdc.TokType{tIdent, tAssign, tNum, tUnit, tUnit, lfdc.EOF}, types(tokens))
	_, err = sc.Scan("1a\fx")
	var lexerrs LexicalErrors
	require.True(t, errors.As(err, &lexerrs))
	require.Equal(t, "1a", lexerrs[0].Lexeme)
}

func TestLiteralsWithPatternCharacters(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lfdc.scanner")
	defer teardown()
	//
	sc, err := NewScanner(&Lexicon{
		Keywords:   []Literal{{"do", tPrint}, {"c++", tPrint}},
		Operators:  []Literal{{"(*", tEq}, {"|", tGT}},
		Words:      []Literal{{"dws", tUnit}, {"m.s", tUnit}},
		Identifier: tIdent,
		Number:     tNum,
	})
	require.NoError(t, err)
	tokens, err := sc.Scan("do dws c++ m.s (* | d")
	require.NoError(t, err)
	require.Equal(t, []lfdc.TokType{tPrint, tUnit, tPrint, tUnit, tEq, tGT, tIdent, lfdc.EOF}, types(tokens))
	tokens, err = sc.Scan("mxs") // '.' is not a wildcard
	require.NoError(t, err)
	require.Equal(t, []lfdc.TokType{tIdent, lfdc.EOF}, types(tokens))
}
