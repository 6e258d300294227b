/*
Package unitlang implements the front end of a small language for unit
conversions:

    x = 5 kg
    convert x to g
    if x > 1000 then { print x } else { print 0 }
    for i in [1, 2, 3] do { print i * 10 }

The package provides the token kinds and lexicon of the language, and its
LL(1) grammar. Grammar and parsing table are created on first use and
shared by all subsequent calls.

    tree, derivation, err := unitlang.Parse("x = 5 kg")

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

*/
package unitlang

import (
	"bytes"
	_ "embed"
	"fmt"
	"sync"

	"github.com/markurti/lfdc"
	"github.com/markurti/lfdc/ll"
	"github.com/markurti/lfdc/ll/grammarfile"
	"github.com/markurti/lfdc/ll/parsetree"
	"github.com/markurti/lfdc/ll/predictive"
	"github.com/markurti/lfdc/ll/scanner"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'lfdc.unitlang'.
func tracer() tracing.Trace {
	return tracing.Select("lfdc.unitlang")
}

//go:embed grammar.yaml
var grammarSource []byte

var (
	startOnce   sync.Once
	lang        *Language
	startupErr  error
	tablesMutex sync.Mutex
	tables      = make(map[string]*ll.ParsingTable) // by grammar name and fingerprint
)

// Language bundles a scanner for the unit language lexicon with a parser for
// a grammar over unit language tokens. A Language is safe for concurrent use.
type Language struct {
	scanner *scanner.Scanner
	table   *ll.ParsingTable
}

// NewLanguage creates a scanner and parser combination for a grammar over
// unit language tokens (see Resolve). Parsing tables are shared (see TableFor).
func NewLanguage(g *ll.Grammar) (*Language, error) {
	sc, err := scanner.NewScanner(Lexicon())
	if err != nil {
		return nil, err
	}
	table, err := TableFor(g)
	if err != nil {
		return nil, err
	}
	return &Language{scanner: sc, table: table}, nil
}

// TableFor returns the parsing table for g, creating it if no table for a
// grammar with the same name and fingerprint exists. Grammars equal in both
// share one table, and its Grammar() is the grammar the table was first
// created for.
func TableFor(g *ll.Grammar) (*ll.ParsingTable, error) {
	fp := g.Fingerprint()
	key := g.Name + "/" + fp
	tablesMutex.Lock()
	defer tablesMutex.Unlock()
	if table, ok := tables[key]; ok && fp != "" {
		tracer().Debugf("re-using parsing table for grammar %q", g.Name)
		return table, nil
	}
	table, err := ll.NewTableGenerator(ll.Analysis(g)).CreateTable()
	if err != nil {
		return nil, err
	}
	if fp != "" {
		tables[key] = table
	}
	return table, nil
}

// Default returns the language with the built-in grammar.
func Default() (*Language, error) {
	startOnce.Do(func() {
		level := tracer().GetTraceLevel()
		tracer().SetTraceLevel(tracing.LevelError)
		defer tracer().SetTraceLevel(level)
		var g *ll.Grammar
		g, startupErr = grammarfile.ReadYAML(bytes.NewReader(grammarSource), Resolve)
		if startupErr != nil {
			startupErr = fmt.Errorf("built-in grammar: %w", startupErr)
			return
		}
		lang, startupErr = NewLanguage(g)
	})
	return lang, startupErr
}

// Grammar returns the grammar of a language.
func (l *Language) Grammar() *ll.Grammar {
	return l.table.Grammar()
}

// Table returns the parsing table of a language.
func (l *Language) Table() *ll.ParsingTable {
	return l.table
}

// Scan tokenizes a source text. The resulting token sequence ends with an
// end-of-input token.
func (l *Language) Scan(source string) ([]lfdc.Token, error) {
	return l.scanner.Scan(source)
}

// Parser returns a new parser for the language.
func (l *Language) Parser() *predictive.Parser {
	p := predictive.NewParser(l.table)
	p.TokenName = TokenName
	return p
}

// Parse scans and parses a source text.
func (l *Language) Parse(source string) (*parsetree.Tree, predictive.Derivation, error) {
	tokens, err := l.Scan(source)
	if err != nil {
		return nil, nil, err
	}
	return l.Parser().Parse(tokens)
}

// Grammar returns the built-in grammar of the unit conversion language.
func Grammar() (*ll.Grammar, error) {
	l, err := Default()
	if err != nil {
		return nil, err
	}
	return l.Grammar(), nil
}

// Table returns the parsing table for the built-in grammar.
func Table() (*ll.ParsingTable, error) {
	l, err := Default()
	if err != nil {
		return nil, err
	}
	return l.Table(), nil
}

// Scan tokenizes a source text of the unit conversion language.
func Scan(source string) ([]lfdc.Token, error) {
	l, err := Default()
	if err != nil {
		return nil, err
	}
	return l.Scan(source)
}

// Parse scans and parses a source text of the unit conversion language.
// It returns a parse tree and the leftmost derivation of the program.
func Parse(source string) (*parsetree.Tree, predictive.Derivation, error) {
	l, err := Default()
	if err != nil {
		return nil, nil, err
	}
	return l.Parse(source)
}
