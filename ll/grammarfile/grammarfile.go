/*
Package grammarfile reads grammars from files. Two formats are supported:

YAML files list productions per non-terminal, every alternative being a
space-separated sequence of symbols, with the keyword 'epsilon' denoting
the empty sequence:

    name: Signed Variables
    start: var
    terminals: [ ID, PLUS, MINUS ]
    productions:
      var:
        - sign ID
      sign:
        - PLUS
        - MINUS
        - epsilon

EBNF files follow the notation of golang.org/x/exp/ebnf. Quoted strings are
terminals, names are non-terminals. Options, repetitions and groups are
rewritten into plain rules with generated helper non-terminals:

    var  = sign "ID" .
    sign = [ "PLUS" | "MINUS" ] .

Terminal names are bound to token types by a TokenResolver. If no resolver
is given, terminals are numbered in order of their first appearance,
starting at 1.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

*/
package grammarfile

import (
	"fmt"

	"github.com/markurti/lfdc"
	"github.com/markurti/lfdc/ll"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'lfdc.ll'.
func tracer() tracing.Trace {
	return tracing.Select("lfdc.ll")
}

// EpsilonKeyword denotes the empty sequence in YAML grammar files.
const EpsilonKeyword = "epsilon"

// TokenResolver binds terminal names to token types.
type TokenResolver func(terminal string) (lfdc.TokType, bool)

// Intermediate representation of a grammar, shared by all file formats.

type item struct {
	name     string
	terminal bool
}

type production struct {
	lhs string
	rhs []item // empty for epsilon-productions
}

type draft struct {
	name      string
	start     string
	prods     []production
	terminals []string // in order of first appearance
}

func (d *draft) addTerminal(t string) {
	for _, known := range d.terminals {
		if known == t {
			return
		}
	}
	d.terminals = append(d.terminals, t)
}

// grammar feeds a draft into a grammar builder.
func (d *draft) grammar(resolve TokenResolver) (*ll.Grammar, error) {
	tokvals := make(map[string]lfdc.TokType, len(d.terminals))
	for i, t := range d.terminals {
		if resolve == nil {
			tokvals[t] = lfdc.TokType(i + 1)
			continue
		}
		v, ok := resolve(t)
		if !ok {
			return nil, fmt.Errorf("grammar %q: cannot resolve token type of terminal %s", d.name, t)
		}
		tokvals[t] = v
	}
	b := ll.NewGrammarBuilder(d.name)
	if d.start != "" {
		b.StartSymbol(d.start)
	}
	for _, p := range d.prods {
		rb := b.LHS(p.lhs)
		if len(p.rhs) == 0 {
			rb.Epsilon()
			continue
		}
		for _, it := range p.rhs {
			if it.terminal {
				rb.T(it.name, tokvals[it.name])
			} else {
				rb.N(it.name)
			}
		}
		rb.End()
	}
	g, err := b.Grammar()
	if err != nil {
		return nil, err
	}
	tracer().Infof("read grammar %q with %d rules", g.Name, g.Size())
	return g, nil
}
