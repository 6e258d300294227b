package grammarfile

import (
	"fmt"
	"io"
	"strings"

	"github.com/markurti/lfdc/ll"
	"gopkg.in/yaml.v3"
)

type yamlGrammar struct {
	Name         string    `yaml:"name"`
	Start        string    `yaml:"start"`
	Terminals    []string  `yaml:"terminals"`
	NonTerminals []string  `yaml:"nonterminals"`
	Productions  yaml.Node `yaml:"productions"` // a node, to keep the order of productions
}

// ReadYAML reads a grammar in YAML format. If the file declares terminals,
// every symbol of a production has to be either a declared terminal or a
// non-terminal with productions. Otherwise every symbol without productions
// is a terminal.
func ReadYAML(r io.Reader, resolve TokenResolver) (*ll.Grammar, error) {
	var yg yamlGrammar
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&yg); err != nil {
		return nil, fmt.Errorf("cannot read YAML grammar: %w", err)
	}
	if yg.Productions.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("YAML grammar %q: productions must be a mapping (line %d)",
			yg.Name, yg.Productions.Line)
	}
	d := &draft{name: yg.Name, start: yg.Start}
	if d.name == "" {
		d.name = "G"
	}
	declared := make(map[string]bool, len(yg.Terminals))
	for _, t := range yg.Terminals {
		declared[t] = true
		d.addTerminal(t)
	}
	type alternatives struct {
		lhs  string
		alts []*yaml.Node
	}
	var rules []alternatives
	lhs := make(map[string]bool)
	content := yg.Productions.Content
	for i := 0; i+1 < len(content); i += 2 {
		key, value := content[i], content[i+1]
		if lhs[key.Value] {
			return nil, fmt.Errorf("YAML grammar %q: duplicate productions for %s (line %d)",
				d.name, key.Value, key.Line)
		}
		if declared[key.Value] {
			return nil, fmt.Errorf("YAML grammar %q: terminal %s has productions (line %d)",
				d.name, key.Value, key.Line)
		}
		lhs[key.Value] = true
		switch value.Kind {
		case yaml.ScalarNode:
			rules = append(rules, alternatives{key.Value, []*yaml.Node{value}})
		case yaml.SequenceNode:
			rules = append(rules, alternatives{key.Value, value.Content})
		default:
			return nil, fmt.Errorf("YAML grammar %q: alternatives of %s must be a list of strings (line %d)",
				d.name, key.Value, value.Line)
		}
	}
	for _, N := range yg.NonTerminals {
		if !lhs[N] {
			return nil, fmt.Errorf("YAML grammar %q: non-terminal %s has no productions", d.name, N)
		}
	}
	for _, r := range rules {
		for _, alt := range r.alts {
			if alt.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("YAML grammar %q: alternative for %s is not a string (line %d)",
					d.name, r.lhs, alt.Line)
			}
			for _, body := range strings.Split(alt.Value, "|") {
				p, err := yamlProduction(d, r.lhs, body, lhs, declared, len(yg.Terminals) > 0)
				if err != nil {
					return nil, fmt.Errorf("YAML grammar %q, line %d: %w", d.name, alt.Line, err)
				}
				d.prods = append(d.prods, p)
			}
		}
	}
	return d.grammar(resolve)
}

func yamlProduction(d *draft, lhs, body string, nonterms, terms map[string]bool, strict bool) (production, error) {
	p := production{lhs: lhs}
	fields := strings.Fields(body)
	if len(fields) == 0 || len(fields) == 1 && fields[0] == EpsilonKeyword {
		return p, nil
	}
	for _, name := range fields {
		switch {
		case name == EpsilonKeyword:
			return p, fmt.Errorf("%s must be the only symbol of an alternative of %s", EpsilonKeyword, lhs)
		case nonterms[name]:
			p.rhs = append(p.rhs, item{name: name})
		case terms[name] || !strict:
			d.addTerminal(name)
			p.rhs = append(p.rhs, item{name: name, terminal: true})
		default:
			return p, fmt.Errorf("undeclared symbol %s in alternative of %s", name, lhs)
		}
	}
	return p, nil
}
