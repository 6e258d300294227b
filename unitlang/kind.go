package unitlang

import (
	"strings"

	"github.com/markurti/lfdc"
	"github.com/markurti/lfdc/ll/scanner"
)

//go:generate stringer -type=Kind -linecomment

// Kind is the kind of a token of the unit conversion language.
// The names of the kinds are the names of terminals in the grammar.
type Kind int

// Token kinds.
const (
	Identifier Kind = iota + 1 // IDENTIFIER
	Number                     // NUMBER
	Unit                       // UNIT
	Convert                    // CONVERT
	To                         // TO
	Print                      // PRINT
	If                         // IF
	Then                       // THEN
	Else                       // ELSE
	For                        // FOR
	In                         // IN
	Do                         // DO
	Assign                     // ASSIGN
	Eq                         // EQ
	Ne                         // NE
	Gt                         // GT
	Lt                         // LT
	Ge                         // GE
	Le                         // LE
	Plus                       // PLUS
	Minus                      // MINUS
	Multiply                   // MULTIPLY
	Divide                     // DIVIDE
	LParen                     // LPAREN
	RParen                     // RPAREN
	LBrace                     // LBRACE
	RBrace                     // RBRACE
	LBracket                   // LBRACKET
	RBracket                   // RBRACKET
	Comma                      // COMMA
)

// TokType returns k as a token type.
func (k Kind) TokType() lfdc.TokType {
	return lfdc.TokType(k)
}

// Kinds returns all token kinds.
func Kinds() []Kind {
	kinds := make([]Kind, 0, int(Comma))
	for k := Identifier; k <= Comma; k++ {
		kinds = append(kinds, k)
	}
	return kinds
}

var kindByName = func() map[string]Kind {
	m := make(map[string]Kind, int(Comma))
	for _, k := range Kinds() {
		m[k.String()] = k
	}
	return m
}()

// Resolve binds the name of a terminal to a token kind. It may be used as a
// token resolver for grammar files over unit language tokens.
func Resolve(terminal string) (lfdc.TokType, bool) {
	k, ok := kindByName[terminal]
	return k.TokType(), ok
}

// TokenName returns the name of a token type, with "$" for end of input.
func TokenName(t lfdc.TokType) string {
	if t == lfdc.EOF {
		return lfdc.EOFLexeme
	}
	return Kind(t).String()
}

// Keywords of the language.
var Keywords = []string{"convert", "to", "print", "if", "then", "else", "for", "in", "do"}

// Units of measurement known to the language.
var Units = []string{
	"ml", "cl", "dl", "l",
	"mm", "cm", "dm", "m", "dam", "hm", "km",
	"ms", "s", "min", "hr", "d", "wk", "mo", "yr",
	"mg", "cg", "dg", "g", "dag", "hg", "kg", "t",
}

var operators = []scanner.Literal{
	{Text: "==", Type: Eq.TokType()},
	{Text: "!=", Type: Ne.TokType()},
	{Text: ">=", Type: Ge.TokType()},
	{Text: "<=", Type: Le.TokType()},
	{Text: ">", Type: Gt.TokType()},
	{Text: "<", Type: Lt.TokType()},
	{Text: "=", Type: Assign.TokType()},
	{Text: "+", Type: Plus.TokType()},
	{Text: "-", Type: Minus.TokType()},
	{Text: "*", Type: Multiply.TokType()},
	{Text: "/", Type: Divide.TokType()},
	{Text: "(", Type: LParen.TokType()},
	{Text: ")", Type: RParen.TokType()},
	{Text: "{", Type: LBrace.TokType()},
	{Text: "}", Type: RBrace.TokType()},
	{Text: "[", Type: LBracket.TokType()},
	{Text: "]", Type: RBracket.TokType()},
	{Text: ",", Type: Comma.TokType()},
}

// Lexicon returns the lexicon of the unit conversion language.
func Lexicon() *scanner.Lexicon {
	lex := &scanner.Lexicon{
		Operators:  operators,
		Identifier: Identifier.TokType(),
		Number:     Number.TokType(),
	}
	for _, kw := range Keywords {
		k := kindByName[strings.ToUpper(kw)]
		lex.Keywords = append(lex.Keywords, scanner.Literal{Text: kw, Type: k.TokType()})
	}
	for _, u := range Units {
		lex.Words = append(lex.Words, scanner.Literal{Text: u, Type: Unit.TokType()})
	}
	return lex
}
