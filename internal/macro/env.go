// Package macro implements the lexically scoped macro environment that the
// compiler resolves `#name` references against.
//
// An Env is an immutable cons-cell scope chain: Push never mutates an
// existing Env, it returns a new child (or, for an empty binding set, the
// same Env unchanged). This keeps environments safe to share across
// concurrent compiles, which matters because the root environment (the
// built-in table) is constructed once and reused for every call.
package macro

import "github.com/SonOfLilit/kleenexp/internal/ir"

// Env is one scope in the lookup chain. The zero value is not usable;
// construct the root scope with Push on a nil *Env.
type Env struct {
	parent   *Env
	bindings map[string]ir.Node
}

// Push returns a new Env with bindings layered in front of e. Pushing an
// empty map is a no-op: it returns e itself rather than an equivalent copy,
// so repeatedly compiling empty-definition Concats does not grow the chain.
func (e *Env) Push(bindings map[string]ir.Node) *Env {
	if len(bindings) == 0 {
		return e
	}
	return &Env{parent: e, bindings: bindings}
}

// Get looks up name in the innermost scope that binds it, falling through
// to outer scopes and finally to the built-ins at the root.
func (e *Env) Get(name string) (ir.Node, bool) {
	for env := e; env != nil; env = env.parent {
		if v, ok := env.bindings[name]; ok {
			return v, true
		}
	}
	return nil, false
}

// HasLocal reports whether name is bound in e's own scope, ignoring
// parents, so a binding here can be told apart from one that only shadows
// an outer scope.
func (e *Env) HasLocal(name string) bool {
	if e == nil {
		return false
	}
	_, ok := e.bindings[name]
	return ok
}
