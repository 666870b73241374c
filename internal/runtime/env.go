package runtime

import (
	"fmt"
	"sort"
)

// Environment is a variable scope with a parent chain. Lookup walks the
// parent links until a binding is found; definition always writes into the
// current frame regardless of what an ancestor holds.
type Environment struct {
	values map[string]Value
	consts map[string]bool
	parent *Environment
}

// NewEnvironment creates a new environment with an optional parent scope.
func NewEnvironment(parent *Environment) *Environment {
	return &Environment{
		values: make(map[string]Value),
		consts: make(map[string]bool),
		parent: parent,
	}
}

// Define binds name in the current frame, shadowing any binding of the
// same name in this or an ancestor frame. Redeclaring a name in the same
// frame is allowed and simply rebinds it — LLL has no "already declared"
// error, matching a scripting language where re-running `let x = ...` at
// the REPL is the common case.
func (e *Environment) Define(name string, value Value, isConst bool) {
	e.values[name] = value
	if isConst {
		e.consts[name] = true
	} else {
		delete(e.consts, name)
	}
}

// Get looks up a variable by walking the scope chain.
func (e *Environment) Get(name string) (Value, bool) {
	for env := e; env != nil; env = env.parent {
		if val, exists := env.values[name]; exists {
			return val, true
		}
	}
	return nil, false
}

// Has reports whether name is bound in this environment or an ancestor.
func (e *Environment) Has(name string) bool {
	_, ok := e.Get(name)
	return ok
}

// Set assigns to an existing variable, walking the scope chain to find
// it. It fails if the name is unbound anywhere in the chain or if the
// binding that owns it is constant.
func (e *Environment) Set(name string, value Value) error {
	for env := e; env != nil; env = env.parent {
		if _, exists := env.values[name]; exists {
			if env.consts[name] {
				return fmt.Errorf("Cannot reassign constant '%s'", name)
			}
			env.values[name] = value
			return nil
		}
	}
	return fmt.Errorf("undefined variable '%s'", name)
}

// OwnNames returns the names bound directly in this frame, not walking the
// parent chain. Used by the module loader to compute a module's exports.
// The result is sorted so export order is deterministic.
func (e *Environment) OwnNames() []string {
	names := make([]string, 0, len(e.values))
	for name := range e.values {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// OwnEntry returns the value and constness of a name bound directly in
// this frame, without walking the parent chain.
func (e *Environment) OwnEntry(name string) (value Value, isConst bool, ok bool) {
	value, ok = e.values[name]
	if !ok {
		return nil, false, false
	}
	return value, e.consts[name], true
}
