package ll

import (
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/markurti/lfdc"
	"github.com/markurti/lfdc/ll/sparse"
)

// === Conflicts =============================================================

// Conflict is a cell of a predictive table claimed by more than one rule.
type Conflict struct {
	NonTerminal *Symbol
	Lookahead   *Symbol
	Rules       []*Rule // competing rules, in order of registration
}

func (c Conflict) String() string {
	rs := make([]string, len(c.Rules))
	for i, r := range c.Rules {
		rs[i] = fmt.Sprintf("%d: %s", r.Serial, r)
	}
	return fmt.Sprintf("M[%s, %s] = { %s }", c.NonTerminal, c.Lookahead, strings.Join(rs, " | "))
}

// GrammarConflictError is returned by table construction if a grammar is not LL(1).
// It lists every conflicting cell of the table.
type GrammarConflictError struct {
	Grammar   string
	Conflicts []Conflict
}

func (e *GrammarConflictError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "grammar %q is not LL(1): %d conflict", e.Grammar, len(e.Conflicts))
	if len(e.Conflicts) != 1 {
		b.WriteByte('s')
	}
	for _, c := range e.Conflicts {
		b.WriteString("; ")
		b.WriteString(c.String())
	}
	return b.String()
}

// === Table Generator =======================================================

// TableGenerator is an object type to create a predictive parsing table
// from a grammar analysis.
type TableGenerator struct {
	g         *Grammar
	ga        *LLAnalysis
	table     *ParsingTable
	conflicts []Conflict
}

// NewTableGenerator creates a new TableGenerator for a (previously analysed) grammar.
func NewTableGenerator(ga *LLAnalysis) *TableGenerator {
	return &TableGenerator{g: ga.Grammar(), ga: ga}
}

// HasConflicts returns true if table construction found conflicting entries.
// Valid only after CreateTable() has been called.
func (gen *TableGenerator) HasConflicts() bool {
	return len(gen.conflicts) > 0
}

// Conflicts returns the conflicts found by CreateTable().
func (gen *TableGenerator) Conflicts() []Conflict {
	return gen.conflicts
}

// CreateTable builds the predictive parsing table. For every rule N → α and
// every terminal t in FIRST(α), the cell (N,t) is set to the rule. If α derives
// ε, the cell (N,t) is set to the rule for every t in FOLLOW(N) as well.
//
// If any cell would receive two different rules, CreateTable returns a
// *GrammarConflictError. Registering the same rule twice for a cell is not
// a conflict.
func (gen *TableGenerator) CreateTable() (*ParsingTable, error) {
	if gen.table != nil {
		if gen.HasConflicts() {
			return nil, gen.conflictError()
		}
		return gen.table, nil
	}
	matrix := sparse.NewIntMatrix(len(gen.g.nonterminals), len(gen.g.terminals), sparse.DefaultNullValue)
	tracer().Infof("predictive table of size %d x %d", matrix.M(), matrix.N())
	table := &ParsingTable{g: gen.g, matrix: matrix}
	cells := make(map[[2]int]int) // cell -> index into gen.conflicts
	for _, r := range gen.g.rules {
		F := gen.ga.FirstOfSequence(r.rhs)
		for _, t := range F.Symbols() {
			if !t.IsEpsilon() {
				gen.register(table, cells, r, t)
			}
		}
		if F.ContainsEpsilon() {
			for _, t := range gen.ga.Follow(r.LHS).Symbols() {
				gen.register(table, cells, r, t)
			}
		}
	}
	gen.table = table
	if gen.HasConflicts() {
		err := gen.conflictError()
		tracer().Errorf(err.Error())
		return nil, err
	}
	tracer().Infof("predictive table for %q has %d entries", gen.g.Name, matrix.ValueCount())
	return table, nil
}

func (gen *TableGenerator) register(table *ParsingTable, cells map[[2]int]int, r *Rule, t *Symbol) {
	N := r.LHS
	tracer().Debugf("M[%s, %s] += %d: %s", N, t, r.Serial, r)
	prev := table.matrix.Value(N.index, t.index)
	if !table.matrix.Add(N.index, t.index, int32(r.Serial)) {
		return
	}
	cell := [2]int{N.index, t.index}
	if k, ok := cells[cell]; ok {
		for _, rr := range gen.conflicts[k].Rules {
			if rr == r {
				return
			}
		}
		gen.conflicts[k].Rules = append(gen.conflicts[k].Rules, r)
		return
	}
	cells[cell] = len(gen.conflicts)
	gen.conflicts = append(gen.conflicts, Conflict{
		NonTerminal: N,
		Lookahead:   t,
		Rules:       []*Rule{gen.g.rules[prev], r},
	})
}

func (gen *TableGenerator) conflictError() error {
	return &GrammarConflictError{Grammar: gen.g.Name, Conflicts: gen.conflicts}
}

// === Parsing Table =========================================================

// ParsingTable is a predictive parsing table. It maps pairs of
// (non-terminal, lookahead terminal) to rules. A table is immutable and may
// be used by concurrent parsers.
type ParsingTable struct {
	g      *Grammar
	matrix *sparse.IntMatrix // rows = non-terminals, columns = terminals
}

// Entry is a non-empty cell of a parsing table.
type Entry struct {
	NonTerminal *Symbol
	Lookahead   *Symbol
	Rule        *Rule
}

// Grammar returns the grammar the table has been created for.
func (t *ParsingTable) Grammar() *Grammar {
	return t.g
}

// Lookup returns the rule to expand non-terminal N with, given a lookahead
// token type. The end of input is denoted by lfdc.EOF.
func (t *ParsingTable) Lookup(N *Symbol, lookahead lfdc.TokType) (*Rule, bool) {
	if N == nil || !N.IsNonTerminal() {
		return nil, false
	}
	la := t.g.Terminal(lookahead)
	if la == nil {
		return nil, false
	}
	v := t.matrix.Value(N.index, la.index)
	if v == t.matrix.NullValue() {
		return nil, false
	}
	return t.g.rules[v], true
}

// Expected returns the terminals with a table entry for non-terminal N.
func (t *ParsingTable) Expected(N *Symbol) []*Symbol {
	if N == nil || !N.IsNonTerminal() {
		return nil
	}
	var syms []*Symbol
	for _, la := range t.g.terminals {
		if t.matrix.Value(N.index, la.index) != t.matrix.NullValue() {
			syms = append(syms, la)
		}
	}
	return syms
}

// Size returns the number of non-empty cells.
func (t *ParsingTable) Size() int {
	return t.matrix.ValueCount()
}

// Entries returns all non-empty cells, ordered by non-terminal and then by terminal.
func (t *ParsingTable) Entries() []Entry {
	entries := make([]Entry, 0, t.matrix.ValueCount())
	t.matrix.Each(func(i, j int, a int32) {
		entries = append(entries, Entry{
			NonTerminal: t.g.nonterminals[i],
			Lookahead:   t.g.terminals[j],
			Rule:        t.g.rules[a],
		})
	})
	return entries
}

// WriteHTML exports the table in HTML-format. Rows are non-terminals, columns
// are terminals and cells show rule numbers.
func (t *ParsingTable) WriteHTML(w io.Writer) error {
	var b strings.Builder
	b.WriteString("<html><body>\n")
	fmt.Fprintf(&b, "<p>%s: predictive table with %d entries</p>\n", t.g.Name, t.matrix.ValueCount())
	b.WriteString("<table border=1 cellspacing=0 cellpadding=5>\n")
	b.WriteString("<tr bgcolor=#cccccc><td></td>")
	for _, A := range t.g.terminals {
		fmt.Fprintf(&b, "<td>%s</td>", html.EscapeString(A.Name))
	}
	b.WriteString("</tr>\n")
	for _, N := range t.g.nonterminals {
		fmt.Fprintf(&b, "<tr><td>%s</td>", html.EscapeString(N.Name))
		for _, A := range t.g.terminals {
			td := "&nbsp;"
			if v := t.matrix.Value(N.index, A.index); v != t.matrix.NullValue() {
				td = fmt.Sprintf("%d", v)
			}
			fmt.Fprintf(&b, "<td>%s</td>", td)
		}
		b.WriteString("</tr>\n")
	}
	b.WriteString("</table></body></html>\n")
	_, err := io.WriteString(w, b.String())
	return err
}
