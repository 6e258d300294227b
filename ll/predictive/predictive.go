/*
Package predictive provides a table-driven LL(1) parser. Clients have to use
the tools of package ll to prepare the parsing table. The parser utilizes
the table to create a leftmost derivation and a parse tree for a given
token sequence.

Usage

Clients construct a grammar, usually by using a grammar builder:

	b := ll.NewGrammarBuilder("Signed Variables Grammar")
	b.LHS("Var").N("Sign").T("a", 1).End()  // Var  --> Sign a
	b.LHS("Sign").T("+", 2).End()           // Sign --> +
	b.LHS("Sign").T("-", 3).End()           // Sign --> -
	b.LHS("Sign").Epsilon()                 // Sign --> ε
	g, err := b.Grammar()

This grammar is subjected to grammar analysis and table generation.

	table, err := ll.NewTableGenerator(ll.Analysis(g)).CreateTable()
	if err != nil { ... }  // grammar is not LL(1)

Finally parse some input. The token sequence has to end with an end-of-input
token (lfdc.EOF):

	p := predictive.NewParser(table)
	tree, derivation, err := p.Parse(tokens)

A parser holds no state between calls to Parse. It may be used by
concurrent goroutines.

The parser does not recover from syntax errors. The first error aborts the
parse with a *SyntaxError.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

*/
package predictive

import (
	"fmt"
	"strings"

	"github.com/emirpasic/gods/stacks/arraystack"
	"github.com/markurti/lfdc"
	"github.com/markurti/lfdc/ll"
	"github.com/markurti/lfdc/ll/parsetree"
	"github.com/npillmayer/schuko/gconf"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'lfdc.ll'.
func tracer() tracing.Trace {
	return tracing.Select("lfdc.ll")
}

// Parser is an LL(1)-parser type. Create and initialize one with predictive.NewParser(...)
type Parser struct {
	table      *ll.ParsingTable
	TraceSteps bool                 // trace every step of the automaton
	TokenName  lfdc.TokTypeStringer // optional, names token types in errors
}

// NewParser creates a predictive parser for a parsing table.
func NewParser(table *ll.ParsingTable) *Parser {
	return &Parser{table: table}
}

// Derivation is a leftmost derivation, i.e. the rules expanded during a parse,
// in order.
type Derivation []*ll.Rule

// Strings returns the rules of a derivation in textual form.
func (d Derivation) Strings() []string {
	s := make([]string, len(d))
	for i, r := range d {
		s[i] = r.String()
	}
	return s
}

func (d Derivation) String() string {
	var b strings.Builder
	for i, r := range d {
		fmt.Fprintf(&b, "%3d. %s\n", i+1, r)
	}
	return b.String()
}

// We store pairs of grammar symbols and parse tree node IDs on the parse stack.
type stackitem struct {
	sym  *ll.Symbol
	node int // node of sym in the parse tree, NoNode for the end-marker
}

// Parse parses a token sequence, which has to be terminated by exactly one
// end-of-input token. It returns the parse tree and the leftmost derivation
// of the input.
//
// If the input is not a sentence of the grammar, Parse returns a *SyntaxError.
func (p *Parser) Parse(tokens []lfdc.Token) (*parsetree.Tree, Derivation, error) {
	tracer().Debugf("~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~")
	if p.table == nil {
		return nil, nil, fmt.Errorf("LL(1)-parser not initialized")
	}
	g := p.table.Grammar()
	if len(tokens) == 0 || tokens[len(tokens)-1].Type != lfdc.EOF {
		var at lfdc.Token
		if len(tokens) > 0 {
			last := tokens[len(tokens)-1]
			at = lfdc.EOFToken(last.Span().To())
		} else {
			at = lfdc.EOFToken(0)
		}
		return nil, nil, &SyntaxError{Token: at, Top: g.EOF(), Expected: []*ll.Symbol{g.EOF()},
			Msg: "input not terminated by end-of-input"}
	}
	traceSteps := p.TraceSteps || gconf.GetBool("trace-parse-steps")
	tree := parsetree.New()
	var derivation Derivation
	stack := arraystack.New()
	stack.Push(stackitem{sym: g.EOF(), node: parsetree.NoNode})
	stack.Push(stackitem{sym: g.Start(), node: tree.Add(g.Start(), parsetree.NoNode)})
	pos := 0
	for !stack.Empty() {
		x, _ := stack.Peek()
		top := x.(stackitem)
		token := tokens[pos]
		switch top.sym.Kind() {
		case ll.TerminalKind, ll.EndMarkerKind:
			if token.Type != top.sym.TokenType() {
				return nil, nil, p.syntaxError(token, top.sym, []*ll.Symbol{top.sym})
			}
			if traceSteps {
				p.traceStep(stack, tokens[pos:], "match "+top.sym.Name)
			}
			if top.node != parsetree.NoNode {
				tree.SetValue(top.node, token)
			}
			stack.Pop()
			pos++
		case ll.EpsilonKind:
			if traceSteps {
				p.traceStep(stack, tokens[pos:], "pop ε")
			}
			stack.Pop()
		case ll.NonTerminalKind:
			rule, ok := p.table.Lookup(top.sym, token.Type)
			if !ok {
				return nil, nil, p.syntaxError(token, top.sym, p.table.Expected(top.sym))
			}
			if traceSteps {
				p.traceStep(stack, tokens[pos:], rule.String())
			}
			stack.Pop()
			rhs := rule.RHS()
			children := make([]stackitem, len(rhs))
			for i, A := range rhs {
				children[i] = stackitem{sym: A, node: tree.Add(A, top.node)}
			}
			for i := len(children) - 1; i >= 0; i-- {
				stack.Push(children[i])
			}
			derivation = append(derivation, rule)
		}
	}
	if pos != len(tokens) {
		return nil, nil, &SyntaxError{Token: tokens[pos], Top: g.EOF(),
			Msg: "input continues after end-of-input"}
	}
	tracer().Infof("accepted %d tokens with %d derivation steps", len(tokens), len(derivation))
	return tree, derivation, nil
}

// traceStep logs a step of the automaton: stack contents (top first), remaining
// input and the action taken.
func (p *Parser) traceStep(stack *arraystack.Stack, input []lfdc.Token, action string) {
	var st strings.Builder
	for i, x := range stack.Values() {
		if i > 0 {
			st.WriteByte(' ')
		}
		st.WriteString(x.(stackitem).sym.Name)
	}
	var in strings.Builder
	for i, t := range input {
		if i > 0 {
			in.WriteByte(' ')
		}
		if i == 5 {
			in.WriteString("…")
			break
		}
		in.WriteString(t.Lexeme)
	}
	tracer().Infof("%-40s | %-30s | %s", st.String(), in.String(), action)
}

func (p *Parser) syntaxError(token lfdc.Token, top *ll.Symbol, expected []*ll.Symbol) *SyntaxError {
	err := &SyntaxError{Token: token, Top: top, Expected: expected}
	if p.TokenName != nil {
		err.TokenName = p.TokenName(token.Type)
	} else if t := p.table.Grammar().Terminal(token.Type); t != nil {
		err.TokenName = t.Name
	}
	tracer().Errorf(err.Error())
	return err
}

// SyntaxError is returned by the parser for input which cannot be derived
// from the grammar. It reports the offending token, the symbol on top of the
// parse stack and the terminals which would have been acceptable.
type SyntaxError struct {
	Token     lfdc.Token
	TokenName string // name of the token's type, if known
	Top       *ll.Symbol
	Expected  []*ll.Symbol
	Msg       string
}

func (e *SyntaxError) Error() string {
	if e.Msg != "" {
		return fmt.Sprintf("syntax error at offset %d: %s", e.Token.Offset, e.Msg)
	}
	name := e.TokenName
	if name == "" {
		name = fmt.Sprintf("token type %d", e.Token.Type)
	}
	exp := make([]string, len(e.Expected))
	for i, A := range e.Expected {
		exp[i] = A.Name
	}
	return fmt.Sprintf("syntax error at offset %d: unexpected %s %q with %s on top of stack, expected one of [%s]",
		e.Token.Offset, name, e.Token.Lexeme, e.Top, strings.Join(exp, " "))
}
