/*
Package scanner implements a lexical scanner producing the program internal
form (PIF) of a source text, i.e. a sequence of tokens terminated by an
end-of-input token.

The scanner is built on a lexmachine DFA. Candidates for identifiers and
integer constants are verified by small finite automata (IdentifierFA and
IntegerFA), which reject malformed runs such as "1var" or "007".

Patterns are tried with longest-match semantics. If two patterns match runs
of equal length, the pattern registered first wins. Patterns are registered
in the following order: whitespace, keywords, multi-character operators,
further reserved words (e.g. units), identifier and number candidates,
single-character operators. Reserved words therefore only match whole words:
"printx" is an identifier, not the keyword "print" followed by "x".

Lexical errors do not stop the scanner. All errors of a source text are
collected, and scanning resumes at the next whitespace.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

*/
package scanner

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/markurti/lfdc"
	"github.com/npillmayer/schuko/tracing"
	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"
)

// tracer traces with key 'lfdc.scanner'.
func tracer() tracing.Trace {
	return tracing.Select("lfdc.scanner")
}

// Literal is a fixed lexeme together with its token type.
type Literal struct {
	Text string
	Type lfdc.TokType
}

// Lexicon describes the tokens of a language.
type Lexicon struct {
	Keywords   []Literal // reserved words
	Operators  []Literal // operators and punctuation
	Words      []Literal // further reserved words, with lower priority than operators
	Identifier lfdc.TokType
	Number     lfdc.TokType
}

// Scanner is a lexical scanner for a lexicon. A scanner is immutable after
// construction and may be shared between goroutines.
type Scanner struct {
	lexer   *lexmachine.Lexer
	lexicon *Lexicon
}

// NewScanner creates a scanner for a lexicon. It will return an error if
// compiling the DFA failed.
func NewScanner(lexicon *Lexicon) (*Scanner, error) {
	if lexicon == nil {
		return nil, fmt.Errorf("scanner needs a lexicon")
	}
	sc := &Scanner{lexer: lexmachine.NewLexer(), lexicon: lexicon}
	sc.lexer.Add([]byte("( |\t|\n|\r|\f|\v)+"), Skip)
	for _, kw := range lexicon.Keywords {
		sc.lexer.Add(quote(kw.Text), makeToken(kw.Type))
	}
	var multi, single []Literal
	for _, op := range lexicon.Operators {
		if len(op.Text) > 1 {
			multi = append(multi, op)
		} else {
			single = append(single, op)
		}
	}
	sort.SliceStable(multi, func(i, j int) bool { return len(multi[i].Text) > len(multi[j].Text) })
	for _, op := range multi {
		sc.lexer.Add(quote(op.Text), makeToken(op.Type))
	}
	for _, w := range lexicon.Words {
		sc.lexer.Add(quote(w.Text), makeToken(w.Type))
	}
	sc.lexer.Add([]byte(`[a-zA-Z][a-zA-Z0-9]*`), sc.identifier)
	sc.lexer.Add([]byte(`[0-9][a-zA-Z0-9]*`), sc.number)
	sc.lexer.Add([]byte(`\-[0-9]+`), sc.number)
	for _, op := range single {
		sc.lexer.Add(quote(op.Text), makeToken(op.Type))
	}
	if err := sc.lexer.Compile(); err != nil {
		tracer().Errorf("Error compiling DFA: %v", err)
		return nil, err
	}
	return sc, nil
}

// Scan tokenizes a source text. The resulting token sequence is terminated by
// an end-of-input token. If the source contains lexical errors, Scan returns
// all of them as LexicalErrors.
func (sc *Scanner) Scan(source string) ([]lfdc.Token, error) {
	text := []byte(source)
	s, err := sc.lexer.Scanner(text)
	if err != nil {
		return nil, err
	}
	var tokens []lfdc.Token
	var errs LexicalErrors
	for tok, err, eof := s.Next(); !eof; tok, err, eof = s.Next() {
		if err != nil {
			ui, ok := err.(*machines.UnconsumedInput)
			if !ok {
				return nil, err
			}
			resync := nextWhitespace(text, ui.StartTC)
			lexerr := &LexicalError{
				Lexeme: string(text[ui.StartTC:resync]),
				Offset: uint64(ui.StartTC),
				At:     uint64(ui.FailTC),
				Line:   ui.StartLine,
				Column: ui.StartColumn,
				Reason: "no token matches",
			}
			if lexerr.At < lexerr.Offset || lexerr.At >= uint64(resync) {
				lexerr.At = lexerr.Offset
			}
			tracer().Debugf("scanner error: %v", lexerr)
			errs = append(errs, lexerr)
			s.TC = resync
			continue
		}
		switch t := tok.(type) {
		case lfdc.Token:
			tracer().Debugf("token %v", t)
			tokens = append(tokens, t)
		case *LexicalError:
			tracer().Debugf("scanner error: %v", t)
			errs = append(errs, t)
		default:
			panic(fmt.Sprintf("unexpected token type %T from lexer", tok))
		}
	}
	if len(errs) > 0 {
		return nil, errs
	}
	return append(tokens, lfdc.EOFToken(uint64(len(text)))), nil
}

// identifier is the action for identifier candidates.
func (sc *Scanner) identifier(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
	return sc.verify(IdentifierFA, sc.lexicon.Identifier, s, m), nil
}

// number is the action for integer constant candidates.
func (sc *Scanner) number(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
	return sc.verify(IntegerFA, sc.lexicon.Number, s, m), nil
}

// verify checks a candidate with fa. A rejected run extends to the next
// whitespace, where the scanner resumes.
func (sc *Scanner) verify(fa *FA, toktype lfdc.TokType, s *lexmachine.Scanner, m *machines.Match) interface{} {
	lexeme := string(m.Bytes)
	if ok, at := fa.Recognize(lexeme); !ok {
		reason := fmt.Sprintf("not a valid %s", fa.Name)
		if at < len(lexeme) {
			reason = fmt.Sprintf("%s, %q rejected at index %d", reason, lexeme[at], at)
		}
		resync := nextWhitespace(s.Text, m.TC)
		s.TC = resync
		return &LexicalError{
			Lexeme: string(s.Text[m.TC:resync]),
			Offset: uint64(m.TC),
			At:     uint64(m.TC + at),
			Line:   m.StartLine,
			Column: m.StartColumn,
			Reason: reason,
		}
	}
	return lfdc.Token{Type: toktype, Lexeme: lexeme, Offset: uint64(m.TC)}
}

// Skip is a pre-defined action which ignores the scanned match.
func Skip(*lexmachine.Scanner, *machines.Match) (interface{}, error) {
	return nil, nil
}

// makeToken is a pre-defined action which wraps a scanned match into a token.
func makeToken(toktype lfdc.TokType) lexmachine.Action {
	return func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		return lfdc.Token{Type: toktype, Lexeme: string(m.Bytes), Offset: uint64(m.TC)}, nil
	}
}

// quote escapes the regex operators of a literal for use as a lexmachine
// pattern. Other characters stay unescaped, as lexmachine reads "\\d", "\\s"
// and "\\w" as character classes.
func quote(lit string) []byte {
	var b bytes.Buffer
	for i := 0; i < len(lit); i++ {
		if strings.IndexByte(`\|+*?()[]^.`, lit[i]) >= 0 {
			b.WriteByte('\\')
		}
		b.WriteByte(lit[i])
	}
	return b.Bytes()
}

const whitespace = " \t\n\r\f\v"

func nextWhitespace(text []byte, from int) int {
	if i := bytes.IndexAny(text[from:], whitespace); i >= 0 {
		return from + i
	}
	return len(text)
}

// --- Errors ----------------------------------------------------------------

// LexicalError reports a run of input which is not a token. Offset is the
// byte position of the run, At the byte position of the offending character.
type LexicalError struct {
	Lexeme string
	Offset uint64
	At     uint64
	Line   int
	Column int
	Reason string
}

func (e *LexicalError) Error() string {
	return fmt.Sprintf("lexical error at offset %d (%d:%d): %q: %s",
		e.Offset, e.Line, e.Column, e.Lexeme, e.Reason)
}

// LexicalErrors collects all lexical errors of a source text.
type LexicalErrors []*LexicalError

func (errs LexicalErrors) Error() string {
	switch len(errs) {
	case 0:
		return "no lexical errors"
	case 1:
		return errs[0].Error()
	}
	msgs := make([]string, len(errs))
	for i, e := range errs {
		msgs[i] = e.Error()
	}
	return fmt.Sprintf("%d lexical errors: %s", len(errs), strings.Join(msgs, "; "))
}
