/*
Package runtime implements scoped name registries for parser sessions.

Some languages cannot be tokenized without knowing which identifiers have
been declared before. A prominent example is C, where

    T * x;

is a declaration if T has been declared as a type name (by a typedef), and
a multiplication otherwise. Semantic actions of the parser register type
names in a TypeNames registry, and a token listener on the lexer stream
consults the registry to re-classify identifiers as type names.

Symbol Table and Scope Tree

Names are stored as tags in symbol tables, which are attached to scopes.
Scopes are organized in a tree, which is built by pushing and popping
scopes during a parse. A declaration in an inner scope hides declarations
of the same name in outer scopes.

For a thorough discussion of an interpreter's runtime environment, refer to
"Language Implementation Patterns" by Terence Parr.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package runtime

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'pj.runtime'.
func tracer() tracing.Trace {
	return tracing.Select("pj.runtime")
}
