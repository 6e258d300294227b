/*
Package urepl/main provides an interactive command line tool (U.REPL) for
programs of the Unit Conversion Language. For every line entered, U.REPL
prints the program internal form produced by the scanner, the leftmost
derivation found by the predictive parser and the resulting parse tree.

U.REPL serves as a sandbox for experiments with grammars over unit
language tokens: flag --grammar loads a YAML grammar file in place of the
built-in grammar.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

*/

package main

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'lfdc.unitlang'
func tracer() tracing.Trace {
	return tracing.Select("lfdc.unitlang")
}
