package grammarfile

import (
	"fmt"
	"io"

	"github.com/markurti/lfdc/ll"
	"golang.org/x/exp/ebnf"
)

// ReadEBNF reads a grammar in EBNF notation. The grammar is verified against
// start symbol start, i.e. every name has to be defined and every production
// has to be reachable from start.
//
// EBNF constructs are rewritten into plain rules:
//
//    N = [ α ] .     ⟹   N → α | ε
//    N = … [ α ] … . ⟹   N → … N_opt1 … ,  N_opt1 → α | ε
//    N = … { α } … . ⟹   N → … N_rep1 … ,  N_rep1 → α N_rep1 | ε
//    N = … ( α ) … . ⟹   N → … N_grp1 … ,  N_grp1 → α
//
// Character ranges are not supported.
func ReadEBNF(r io.Reader, name, start string, resolve TokenResolver) (*ll.Grammar, error) {
	eg, err := ebnf.Parse(name, r)
	if err != nil {
		return nil, fmt.Errorf("cannot read EBNF grammar: %w", err)
	}
	if err = ebnf.Verify(eg, start); err != nil {
		return nil, fmt.Errorf("EBNF grammar %q: %w", name, err)
	}
	conv := &ebnfConverter{
		d:       &draft{name: name, start: start},
		grammar: eg,
		seen:    map[string]bool{start: true},
		queue:   []string{start},
	}
	for len(conv.queue) > 0 { // breadth-first from start, for a deterministic rule order
		N := conv.queue[0]
		conv.queue = conv.queue[1:]
		if err := conv.production(N, eg[N].Expr); err != nil {
			return nil, fmt.Errorf("EBNF grammar %q: %w", name, err)
		}
	}
	return conv.d.grammar(resolve)
}

type ebnfConverter struct {
	d       *draft
	grammar ebnf.Grammar
	seen    map[string]bool
	queue   []string
	helpers map[string]int
}

// production converts the body of non-terminal N into rules.
func (conv *ebnfConverter) production(N string, expr ebnf.Expression) error {
	for _, alt := range alternativesOf(expr) {
		if opt, ok := alt.(*ebnf.Option); ok { // option forming an entire body
			if err := conv.production(N, opt.Body); err != nil {
				return err
			}
			conv.d.prods = append(conv.d.prods, production{lhs: N})
			continue
		}
		p := production{lhs: N}
		for _, x := range sequenceOf(alt) {
			it, err := conv.item(N, x)
			if err != nil {
				return err
			}
			p.rhs = append(p.rhs, it)
		}
		conv.d.prods = append(conv.d.prods, p)
	}
	return nil
}

// item converts a factor of a sequence into a grammar symbol, creating helper
// non-terminals for options, repetitions and groups.
func (conv *ebnfConverter) item(N string, x ebnf.Expression) (item, error) {
	switch e := x.(type) {
	case *ebnf.Name:
		if !conv.seen[e.String] {
			conv.seen[e.String] = true
			conv.queue = append(conv.queue, e.String)
		}
		return item{name: e.String}, nil
	case *ebnf.Token:
		conv.d.addTerminal(e.String)
		return item{name: e.String, terminal: true}, nil
	case *ebnf.Group:
		H := conv.helper(N, "grp")
		return item{name: H}, conv.production(H, e.Body)
	case *ebnf.Option:
		H := conv.helper(N, "opt")
		if err := conv.production(H, e.Body); err != nil {
			return item{}, err
		}
		conv.d.prods = append(conv.d.prods, production{lhs: H})
		return item{name: H}, nil
	case *ebnf.Repetition:
		H := conv.helper(N, "rep")
		for _, alt := range alternativesOf(e.Body) {
			p := production{lhs: H}
			for _, y := range sequenceOf(alt) {
				it, err := conv.item(H, y)
				if err != nil {
					return item{}, err
				}
				p.rhs = append(p.rhs, it)
			}
			p.rhs = append(p.rhs, item{name: H})
			conv.d.prods = append(conv.d.prods, p)
		}
		conv.d.prods = append(conv.d.prods, production{lhs: H})
		return item{name: H}, nil
	case *ebnf.Range:
		return item{}, fmt.Errorf("%s: character ranges not supported", e.Pos())
	}
	return item{}, fmt.Errorf("unsupported EBNF expression %T in production %s", x, N)
}

func (conv *ebnfConverter) helper(N, kind string) string {
	if conv.helpers == nil {
		conv.helpers = make(map[string]int)
	}
	conv.helpers[N]++
	H := fmt.Sprintf("%s_%s%d", N, kind, conv.helpers[N])
	for conv.grammar[H] != nil { // avoid clashes with user-defined names
		conv.helpers[N]++
		H = fmt.Sprintf("%s_%s%d", N, kind, conv.helpers[N])
	}
	return H
}

func alternativesOf(expr ebnf.Expression) []ebnf.Expression {
	if alt, ok := expr.(ebnf.Alternative); ok {
		return alt
	}
	return []ebnf.Expression{expr}
}

func sequenceOf(expr ebnf.Expression) []ebnf.Expression {
	switch e := expr.(type) {
	case nil:
		return nil
	case ebnf.Sequence:
		return e
	}
	return []ebnf.Expression{expr}
}
