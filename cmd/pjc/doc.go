/*
Command pjc is a command line tool for experimenting with the LALR(1)
toolkit of parserjunior. It comes with a small expression grammar and
offers sub-commands to tokenize input, print the grammar's action table,
parse input into an AST and evaluate it, and an interactive REPL.

	pjc tokens "1 + 2 * 3"
	pjc table --html table.html --dot cfsm.dot
	pjc parse "(1 + 2) * 3"
	pjc repl

Flag --lexmachine switches from the built-in lexer to a lexmachine-based
scanner, flag --trace sets the trace level [Debug|Info|Error].

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package main

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'pj.cli'
func tracer() tracing.Trace {
	return tracing.Select("pj.cli")
}
