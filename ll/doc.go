/*
Package ll implements prerequisites for LL(1) parsing.

Building a Grammar

Grammars are specified using a grammar builder object. Clients add
rules, consisting of non-terminal symbols and terminals. Terminals
carry a token value of type lfdc.TokType. Grammars may contain epsilon-productions.
The left hand side of the first rule is the start symbol, unless set explicitly.

Example:

    b := ll.NewGrammarBuilder("G")
    b.LHS("S").N("A").T("a", 1).End()  // S  ->  A a
    b.LHS("A").N("B").N("D").End()     // A  ->  B D
    b.LHS("B").T("b", 2).End()         // B  ->  b
    b.LHS("B").Epsilon()               // B  ->  ε
    b.LHS("D").T("d", 3).End()         // D  ->  d
    b.LHS("D").Epsilon()               // D  ->  ε
    g, err := b.Grammar()

This results in the following trivial grammar:

   g.Dump()

   0: [S] ::= [A a]
   1: [A] ::= [B D]
   2: [B] ::= [b]
   3: [B] ::= [ε]
   4: [D] ::= [d]
   5: [D] ::= [ε]

Grammars may as well be read from files, see package grammarfile.

Static Grammar Analysis

After the grammar is complete, it has to be analysed. For this end, the
grammar is subjected to an LLAnalysis object, which computes FIRST and
FOLLOW sets for the grammar by iterating to a fixed point.

    ga := ll.Analysis(g)  // analyser for grammar above
    for _, N := range g.NonTerminals() {
        fmt.Printf("FIRST(%s) = %v\n", N, ga.First(N))
    }

    // Output:
    FIRST(S) = {a b d}
    FIRST(A) = {ε b d}
    FIRST(B) = {ε b}
    FIRST(D) = {ε d}

Table Construction

Using grammar analysis as input, a predictive parsing table is constructed.
Every cell (N, t) of the table holds at most one rule. If two rules compete
for the same cell, the grammar is not LL(1) and table construction fails
with a *GrammarConflictError, listing all the conflicting cells.

    table, err := ll.NewTableGenerator(ga).CreateTable()
    if err != nil { ... }  // grammar is not LL(1)

A table is immutable and may be shared between any number of concurrent
parsers (see package predictive).

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

*/
package ll

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'lfdc.ll'.
func tracer() tracing.Trace {
	return tracing.Select("lfdc.ll")
}
