package runtime

import (
	"github.com/npillmayer/parserjunior/lexer"
)

// TypeNames is a scoped registry of names declared as types. It belongs to
// a single parse session and is not safe for concurrent use.
type TypeNames struct {
	scopes ScopeTree
}

// NewTypeNames creates a registry with an empty global scope.
func NewTypeNames() *TypeNames {
	tn := &TypeNames{}
	tn.scopes.PushNewScope("globals")
	return tn
}

// Declare registers name as a type name in the current scope.
func (tn *TypeNames) Declare(name string) {
	tag, found := tn.scopes.Current().Tags().ResolveOrDefineTag(name)
	if tag == nil {
		return
	}
	if found && tag.Kind == TypeName {
		tracer().Debugf("type name %q re-declared in %v", name, tn.scopes.Current())
		return
	}
	tag.WithKind(TypeName)
	tracer().Debugf("declared type name %q in %v", name, tn.scopes.Current())
}

// Shadow declares name as an ordinary name in the current scope, hiding
// type names of outer scopes.
func (tn *TypeNames) Shadow(name string) {
	tag, _ := tn.scopes.Current().DefineTag(name)
	if tag != nil {
		tag.WithKind(OrdinaryName)
	}
}

// IsTypeName checks if name refers to a type in the current scope.
func (tn *TypeNames) IsTypeName(name string) bool {
	tag, _ := tn.scopes.Current().ResolveTag(name)
	return tag != nil && tag.Kind == TypeName
}

// PushScope opens a new scope.
func (tn *TypeNames) PushScope(name string) {
	tn.scopes.PushNewScope(name)
}

// PopScope closes the current scope. Declarations of the scope are dropped.
// The global scope is never closed.
func (tn *TypeNames) PopScope() {
	tn.scopes.PopScope()
}

// Depth returns the number of open scopes, including the global one.
func (tn *TypeNames) Depth() int {
	d := 0
	for sc := tn.scopes.ScopeTOS; sc != nil; sc = sc.Parent {
		d++
	}
	return d
}

// TypeNameListener creates a token listener which re-classifies identifier
// tokens as typeName tokens, if their text has been declared as a type name.
func TypeNameListener(tn *TypeNames, identifier, typeName *lexer.Lexeme) lexer.TokenListener {
	return func(tok lexer.Token) (lexer.Token, bool) {
		if tok.Type.Name() == identifier.Name() && tn.IsTypeName(tok.Text) {
			tracer().Debugf("%q is a type name", tok.Text)
			return tok.WithType(typeName), true
		}
		return tok, true
	}
}
