/*
Package parserjunior is a toolbox for compiling lexers and LALR(1) parsers
at runtime.

Clients describe lexemes as small character automata and a language as a
context-free grammar. Both are built in memory, without a code-generation step.
Package structure is as follows:

■ lexer: Package lexer implements character-constraint automata, a library of
common lexemes and a lexer stream which runs all automata in parallel, choosing
the longest match and breaking ties by priority.

■ lr: Package lr implements grammars, item sets and the construction of LALR(1)
action tables. Sub-package parser executes these tables, sub-package walk
traverses the resulting syntax trees.

■ runtime: Package runtime provides scoped registries of type names, used for
context-sensitive lexing.

The base package contains data types which are used throughout all the other packages.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package parserjunior
