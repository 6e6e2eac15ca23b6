/*
Package runtime implements the runtime environment of an interpreter,
consisting of nested scopes and the symbols (tags) defined within them.

The calculator in package calc keeps its built-in constants and functions
in an outer scope and user variables in an inner scope, which may be
discarded and re-created at any time:

	rt := runtime.NewRuntimeEnvironment()
	pi, _ := rt.Globals().DefineTag("pi")
	pi.WithType(runtime.Value).UData = math.Pi
	rt.ScopeTree.PushNewScope("variables")
	...
	tag, scope := rt.ScopeTree.Current().ResolveTag("pi") // found in globals

For a thorough discussion of an interpreter's runtime environment, refer to
"Language Implementation Patterns" by Terence Parr.

Tracing is done with key "lexlr.runtime".

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package runtime

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'lexlr.runtime'.
func tracer() tracing.Trace {
	return tracing.Select("lexlr.runtime")
}

// Runtime is a type implementing a runtime environment for an interpreter.
type Runtime struct {
	ScopeTree *ScopeTree  // collect scopes
	UData     interface{} // extension point
}

// NewRuntimeEnvironment constructs a new runtime environment, with the
// global scope already pushed.
func NewRuntimeEnvironment() *Runtime {
	rt := &Runtime{ScopeTree: new(ScopeTree)}
	rt.ScopeTree.PushNewScope("globals")
	return rt
}

// Globals returns the outermost scope of the runtime environment.
func (rt *Runtime) Globals() *Scope {
	return rt.ScopeTree.Globals()
}

// Resolve finds a tag, starting the search at the current scope.
// Returns nil if no scope on the path to the global scope defines tagname.
func (rt *Runtime) Resolve(tagname string) *Tag {
	tag, _ := rt.ScopeTree.Current().ResolveTag(tagname)
	return tag
}
