/*
Package lfdc is an LL(1) parsing toolbox for small languages.

It pairs a finite-automaton based scanner with a grammar-driven predictive
parser. Grammars are supplied as data (builder API, YAML or EBNF files),
analysed once for FIRST and FOLLOW sets, and compiled into an immutable
predictive parsing table which may be shared by any number of parses.
Package structure is as follows:

■ ll: Package ll implements grammars, grammar analysis and LL(1) table
construction. Sub-packages contain the scanner, the predictive parser,
the parse tree arena and loaders for grammar files.

■ unitlang: Package unitlang implements the Unit Conversion Language on top
of package ll.

The base package contains data types which are used throughout all the other packages.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

*/
package lfdc
