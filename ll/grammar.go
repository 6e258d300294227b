package ll

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cnf/structhash"
	"github.com/markurti/lfdc"
)

// Names of the two symbols every grammar carries implicitly.
const (
	EpsilonName   = "ε"
	EndMarkerName = "$"
)

// === Symbols ===============================================================

// SymbolKind is the closed enumeration of kinds a grammar symbol may be of.
type SymbolKind uint8

// Kinds of grammar symbols.
const (
	TerminalKind SymbolKind = iota
	NonTerminalKind
	EpsilonKind   // the designated empty sequence
	EndMarkerKind // end of input
)

func (k SymbolKind) String() string {
	switch k {
	case TerminalKind:
		return "terminal"
	case NonTerminalKind:
		return "non-terminal"
	case EpsilonKind:
		return "epsilon"
	case EndMarkerKind:
		return "end-marker"
	}
	return fmt.Sprintf("SymbolKind(%d)", k)
}

// Symbol is a grammar symbol. Terminals carry the token type of the input
// tokens they match. Symbols are created by a grammar builder and are
// immutable afterwards; clients may compare them by pointer.
type Symbol struct {
	Name  string
	Value lfdc.TokType // token type for terminals and the end-marker
	ID    int          // serial ID, unique within a grammar
	kind  SymbolKind
	index int // row (non-terminals) or column (terminals) in the parsing table
}

// Kind returns the kind of the symbol.
func (A *Symbol) Kind() SymbolKind {
	return A.kind
}

// IsTerminal returns true for terminals and for the end-marker.
func (A *Symbol) IsTerminal() bool {
	return A.kind == TerminalKind || A.kind == EndMarkerKind
}

// IsNonTerminal returns true for non-terminals.
func (A *Symbol) IsNonTerminal() bool {
	return A.kind == NonTerminalKind
}

// IsEpsilon returns true for the epsilon symbol.
func (A *Symbol) IsEpsilon() bool {
	return A.kind == EpsilonKind
}

// IsEndMarker returns true for the end-of-input symbol.
func (A *Symbol) IsEndMarker() bool {
	return A.kind == EndMarkerKind
}

// TokenType returns the token type a terminal symbol matches.
func (A *Symbol) TokenType() lfdc.TokType {
	return A.Value
}

func (A *Symbol) String() string {
	return A.Name
}

// === Rules =================================================================

// Rule is a production of a grammar. The RHS of an epsilon-production
// consists of the epsilon symbol alone.
type Rule struct {
	Serial int     // ordinal number of this rule within the grammar
	LHS    *Symbol // non-terminal on the left hand side
	rhs    []*Symbol
}

// RHS returns the right hand side of a rule. Clients must not modify the
// returned slice.
func (r *Rule) RHS() []*Symbol {
	return r.rhs
}

// IsEpsilon returns true if r is an epsilon-production.
func (r *Rule) IsEpsilon() bool {
	return len(r.rhs) == 1 && r.rhs[0].IsEpsilon()
}

func (r *Rule) String() string {
	var b strings.Builder
	b.WriteString(r.LHS.Name)
	b.WriteString(" →")
	for _, A := range r.rhs {
		b.WriteByte(' ')
		b.WriteString(A.Name)
	}
	return b.String()
}

// === Grammar ===============================================================

// Grammar is a context-free grammar. Create one with a GrammarBuilder.
// A grammar is immutable.
type Grammar struct {
	Name         string
	rules        []*Rule
	terminals    []*Symbol // index 0 is the end-marker
	nonterminals []*Symbol
	alternatives [][]*Rule // rules per non-terminal, in rule order
	epsilon      *Symbol
	eof          *Symbol
	start        *Symbol
	symbols      map[string]*Symbol
	tokens       map[lfdc.TokType]*Symbol
}

// Start returns the start symbol of the grammar.
func (g *Grammar) Start() *Symbol {
	return g.start
}

// Epsilon returns the epsilon symbol of the grammar.
func (g *Grammar) Epsilon() *Symbol {
	return g.epsilon
}

// EOF returns the end-marker of the grammar.
func (g *Grammar) EOF() *Symbol {
	return g.eof
}

// Size returns the number of rules.
func (g *Grammar) Size() int {
	return len(g.rules)
}

// Rule returns rule number no. Panics if no is out of range.
func (g *Grammar) Rule(no int) *Rule {
	if no < 0 || no >= len(g.rules) {
		panic(fmt.Sprintf("rule number %d out of range", no))
	}
	return g.rules[no]
}

// Rules returns all rules of the grammar, in order.
func (g *Grammar) Rules() []*Rule {
	return append([]*Rule(nil), g.rules...)
}

// Terminals returns all terminals, including the end-marker as the first one.
func (g *Grammar) Terminals() []*Symbol {
	return append([]*Symbol(nil), g.terminals...)
}

// NonTerminals returns all non-terminals, in order of their first definition.
func (g *Grammar) NonTerminals() []*Symbol {
	return append([]*Symbol(nil), g.nonterminals...)
}

// Alternatives returns the rules with LHS N, in rule order.
func (g *Grammar) Alternatives(N *Symbol) []*Rule {
	if N == nil || !N.IsNonTerminal() {
		return nil
	}
	return g.alternatives[N.index]
}

// SymbolByName finds a symbol by name. Returns nil if no symbol is found.
func (g *Grammar) SymbolByName(name string) *Symbol {
	return g.symbols[name]
}

// Terminal returns the terminal for a token type, or nil.
func (g *Grammar) Terminal(tokval lfdc.TokType) *Symbol {
	return g.tokens[tokval]
}

// EachNonTerminal iterates over all non-terminals of the grammar.
func (g *Grammar) EachNonTerminal(mapper func(N *Symbol)) {
	for _, N := range g.nonterminals {
		mapper(N)
	}
}

// EachSymbol iterates over all terminals and non-terminals, including the
// end-marker and excluding epsilon.
func (g *Grammar) EachSymbol(mapper func(A *Symbol)) {
	for _, A := range g.terminals {
		mapper(A)
	}
	for _, A := range g.nonterminals {
		mapper(A)
	}
}

// Dump is a debugging helper.
func (g *Grammar) Dump() {
	tracer().Debugf("--- %s --------------------------------------------", g.Name)
	tracer().Debugf("start symbol %s, %d terminals, %d non-terminals",
		g.start, len(g.terminals), len(g.nonterminals))
	for _, r := range g.rules {
		tracer().Debugf("%3d: [%s] ::= %v", r.Serial, r.LHS, r.rhs)
	}
	tracer().Debugf("-------------------------------------------------------")
}

type fingerprint struct {
	Start  string
	Rules  []string
	Tokens []string
}

// Fingerprint returns a hash of the grammar's start symbol, rules and token
// bindings. Grammars with equal fingerprints produce identical parsing tables.
// The name of the grammar does not contribute to its fingerprint.
func (g *Grammar) Fingerprint() string {
	fp := fingerprint{Start: g.start.Name}
	for _, r := range g.rules {
		fp.Rules = append(fp.Rules, r.String())
	}
	for _, t := range g.terminals[1:] {
		fp.Tokens = append(fp.Tokens, fmt.Sprintf("%s=%d", t.Name, t.Value))
	}
	h, err := structhash.Hash(fp, 1)
	if err != nil {
		tracer().Errorf("cannot hash grammar %q: %v", g.Name, err)
		return ""
	}
	return h
}

// === Grammar Builder =======================================================

// GrammarBuilder is used to construct a Grammar.
//
//    b := NewGrammarBuilder("G")
//    b.LHS("S").N("A").T("a", 1).End()  // S  ->  A a
//    b.LHS("A").N("B").N("D").End()     // A  ->  B D
//    b.LHS("B").T("b", 2).End()         // B  ->  b
//    b.LHS("B").Epsilon()               // B  ->  ε
//    b.LHS("D").T("d", 3).End()         // D  ->  d
//    b.LHS("D").Epsilon()               // D  ->  ε
//
// Call Grammar() to receive the completed grammar.
type GrammarBuilder struct {
	name  string
	start string
	rules []pendingRule
}

type pendingRule struct {
	lhs string
	rhs []symref
}

type symref struct {
	name     string
	terminal bool
	epsilon  bool
	tokval   lfdc.TokType
}

// NewGrammarBuilder gets a new grammar builder, given the name of the grammar to build.
func NewGrammarBuilder(gname string) *GrammarBuilder {
	return &GrammarBuilder{name: gname}
}

// StartSymbol sets the start symbol of the grammar. If not set, the LHS of
// the first rule is the start symbol.
func (gb *GrammarBuilder) StartSymbol(name string) *GrammarBuilder {
	gb.start = name
	return gb
}

// RuleBuilder is a builder type for rules. Create one with GrammarBuilder.LHS(…).
type RuleBuilder struct {
	gb  *GrammarBuilder
	lhs string
	rhs []symref
}

// LHS starts a rule given the left hand side symbol (non-terminal).
func (gb *GrammarBuilder) LHS(s string) *RuleBuilder {
	return &RuleBuilder{gb: gb, lhs: s}
}

// N appends a non-terminal to the builder.
func (rb *RuleBuilder) N(s string) *RuleBuilder {
	rb.rhs = append(rb.rhs, symref{name: s})
	return rb
}

// T appends a terminal to the builder, given its name and the token type
// of the input tokens it matches.
func (rb *RuleBuilder) T(s string, tokval lfdc.TokType) *RuleBuilder {
	rb.rhs = append(rb.rhs, symref{name: s, terminal: true, tokval: tokval})
	return rb
}

// End ends a rule.
func (rb *RuleBuilder) End() {
	rb.gb.rules = append(rb.gb.rules, pendingRule{lhs: rb.lhs, rhs: rb.rhs})
}

// Epsilon sets epsilon as the RHS of a production and ends the rule.
// Symbols appended before are an error, reported by GrammarBuilder.Grammar().
func (rb *RuleBuilder) Epsilon() {
	rb.rhs = append(rb.rhs, symref{name: EpsilonName, epsilon: true})
	rb.End()
}

// Grammar returns the grammar under construction, or an error if the rules
// do not form a well-defined grammar.
func (gb *GrammarBuilder) Grammar() (*Grammar, error) {
	if len(gb.rules) == 0 {
		return nil, fmt.Errorf("grammar %q has no rules", gb.name)
	}
	g := &Grammar{
		Name:    gb.name,
		symbols: make(map[string]*Symbol),
		tokens:  make(map[lfdc.TokType]*Symbol),
	}
	g.epsilon = &Symbol{Name: EpsilonName, ID: 0, kind: EpsilonKind, index: -1}
	g.eof = &Symbol{Name: EndMarkerName, Value: lfdc.EOF, ID: 1, kind: EndMarkerKind}
	g.terminals = []*Symbol{g.eof}
	g.tokens[lfdc.EOF] = g.eof
	serial := 2
	for _, pr := range gb.rules { // non-terminals first, in order of definition
		if pr.lhs == EpsilonName || pr.lhs == EndMarkerName {
			return nil, fmt.Errorf("grammar %q: reserved symbol %q used as LHS", gb.name, pr.lhs)
		}
		if _, ok := g.symbols[pr.lhs]; ok {
			continue
		}
		N := &Symbol{Name: pr.lhs, ID: serial, kind: NonTerminalKind, index: len(g.nonterminals)}
		serial++
		g.symbols[pr.lhs] = N
		g.nonterminals = append(g.nonterminals, N)
	}
	g.alternatives = make([][]*Rule, len(g.nonterminals))
	for no, pr := range gb.rules {
		rule := &Rule{Serial: no, LHS: g.symbols[pr.lhs]}
		if len(pr.rhs) == 0 {
			return nil, fmt.Errorf("grammar %q: rule %d for %s has an empty RHS, use Epsilon()",
				gb.name, no, pr.lhs)
		}
		for _, ref := range pr.rhs {
			A, err := g.resolve(ref, &serial)
			if err != nil {
				return nil, fmt.Errorf("grammar %q, rule %d: %w", gb.name, no, err)
			}
			if A.IsEpsilon() && len(pr.rhs) > 1 {
				return nil, fmt.Errorf("grammar %q, rule %d: epsilon must be the only symbol of a RHS",
					gb.name, no)
			}
			rule.rhs = append(rule.rhs, A)
		}
		g.rules = append(g.rules, rule)
		g.alternatives[rule.LHS.index] = append(g.alternatives[rule.LHS.index], rule)
	}
	if gb.start == "" {
		g.start = g.rules[0].LHS
	} else if g.start = g.symbols[gb.start]; g.start == nil || !g.start.IsNonTerminal() {
		return nil, fmt.Errorf("grammar %q: start symbol %q has no rules", gb.name, gb.start)
	}
	return g, nil
}

var errUndefined = errors.New("non-terminal has no rules")

func (g *Grammar) resolve(ref symref, serial *int) (*Symbol, error) {
	if ref.epsilon {
		return g.epsilon, nil
	}
	if ref.name == EpsilonName || ref.name == EndMarkerName {
		return nil, fmt.Errorf("reserved symbol %q used in RHS", ref.name)
	}
	A, ok := g.symbols[ref.name]
	if !ref.terminal {
		if !ok {
			return nil, fmt.Errorf("%s: %w", ref.name, errUndefined)
		}
		if !A.IsNonTerminal() {
			return nil, fmt.Errorf("symbol %s used as terminal and as non-terminal", ref.name)
		}
		return A, nil
	}
	if ok {
		if !A.IsTerminal() {
			return nil, fmt.Errorf("symbol %s used as terminal and as non-terminal", ref.name)
		}
		if A.Value != ref.tokval {
			return nil, fmt.Errorf("terminal %s bound to token types %d and %d", ref.name, A.Value, ref.tokval)
		}
		return A, nil
	}
	if other, dup := g.tokens[ref.tokval]; dup {
		return nil, fmt.Errorf("terminals %s and %s share token type %d", other.Name, ref.name, ref.tokval)
	}
	A = &Symbol{Name: ref.name, Value: ref.tokval, ID: *serial, kind: TerminalKind, index: len(g.terminals)}
	*serial++
	g.symbols[ref.name] = A
	g.tokens[ref.tokval] = A
	g.terminals = append(g.terminals, A)
	return A, nil
}
