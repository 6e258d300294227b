package lfdc

import "fmt"

// --- Tokens ----------------------------------------------------------------

// TokType is a category type for a Token. We do not define any constants here
// except EOF, as it is up to applications to define them.
type TokType int

// EOF is the token type of the explicit end-of-input token which terminates
// every token sequence produced by a scanner.
const EOF TokType = -1

// EOFLexeme is the lexeme of the end-of-input token.
const EOFLexeme = "$"

// TokTypeStringer is a type to be provided by a scanner/parser combination to be able
// to print out token categories.
type TokTypeStringer func(TokType) string

// Token represents an input token of the Program Internal Form (PIF).
// Tokens are produced by a scanner in source order and reflect terminals
// of a grammar.
//
// An example would be a token for an integer constant:
//
//    Type   = Number      // identifier for this kind of tokens (application specific)
//    Lexeme = "-42"       // lexeme as it appeared in the input
//    Offset = 67          // byte offset of the lexeme in the source
//
type Token struct {
	Type   TokType
	Lexeme string
	Offset uint64
}

// EOFToken creates the end-of-input token for a source of length pos.
func EOFToken(pos uint64) Token {
	return Token{Type: EOF, Lexeme: EOFLexeme, Offset: pos}
}

// Span returns the input span covered by the token. The end-of-input token
// covers an empty span.
func (t Token) Span() Span {
	if t.Type == EOF {
		return Span{t.Offset, t.Offset}
	}
	return Span{t.Offset, t.Offset + uint64(len(t.Lexeme))}
}

func (t Token) String() string {
	return fmt.Sprintf("(%d, %q @%d)", t.Type, t.Lexeme, t.Offset)
}

// --- Spans ------------------------------------------------------------

// Span is a small type for capturing a run of input positions. A span denotes a
// start position and the position just behind the end.
type Span [2]uint64 // (x…y)

// From returns the start value of a span.
func (s Span) From() uint64 {
	return s[0]
}

// To returns the end value of a span.
func (s Span) To() uint64 {
	return s[1]
}

// IsNull is true for the empty span (0…0), i.e. for no input at all.
func (s Span) IsNull() bool {
	return s == Span{}
}

// Extend returns the smallest span covering s and other.
func (s Span) Extend(other Span) Span {
	if other[0] < s[0] {
		s[0] = other[0]
	}
	if other[1] > s[1] {
		s[1] = other[1]
	}
	return s
}

func (s Span) String() string {
	return fmt.Sprintf("(%d…%d)", s[0], s[1])
}
