package symbols

import "github.com/girderhq/girder/internal/numeric"

// Binding is a resolved value with its unit tag, as seen by one
// evaluation.
type Binding struct {
	Value numeric.Value
	Unit  string
}

// Context is the merged, per-call view of constants, variables, and
// caller overrides used to resolve identifiers during evaluation.
//
// A Context is immutable for the duration of one evaluation and is
// never persisted; BuildContext constructs a fresh one per call.
type Context struct {
	bindings  map[string]Binding
	functions map[string]Function
}

// BuildContext merges constants, variables, and overrides, in that
// order, with later layers shadowing earlier ones by name.
func (s *Store) BuildContext(overrides map[string]Binding) Context {
	s.mu.RLock()
	defer s.mu.RUnlock()

	bindings := make(map[string]Binding, len(s.constants)+len(s.variables)+len(overrides))
	for name, c := range s.constants {
		bindings[name] = Binding{Value: c.Value, Unit: c.Unit}
	}
	for name, v := range s.variables {
		bindings[name] = Binding{Value: v.Value, Unit: v.Unit}
	}
	for name, b := range overrides {
		bindings[name] = b
	}

	functions := make(map[string]Function, len(s.functions))
	for name, f := range s.functions {
		functions[name] = f
	}

	return Context{bindings: bindings, functions: functions}
}

// Resolve looks up a bare identifier in the merged value namespace.
func (c Context) Resolve(name string) (Binding, bool) {
	b, ok := c.bindings[name]
	return b, ok
}

// Function looks up a name in the function table.
func (c Context) Function(name string) (Function, bool) {
	f, ok := c.functions[name]
	return f, ok
}

// WithBindings layers additional bindings over the context, returning a
// derived context. Used for parameter shadowing in user-defined
// function calls; the receiver is not modified.
func (c Context) WithBindings(extra map[string]Binding) Context {
	bindings := make(map[string]Binding, len(c.bindings)+len(extra))
	for name, b := range c.bindings {
		bindings[name] = b
	}
	for name, b := range extra {
		bindings[name] = b
	}
	return Context{bindings: bindings, functions: c.functions}
}
