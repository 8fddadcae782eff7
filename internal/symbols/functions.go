package symbols

import (
	"fmt"

	"github.com/girderhq/girder/internal/numeric"
)

// NativeImpl is the implementation of a built-in function. Arity is
// checked by the evaluator before dispatch.
type NativeImpl func(args []numeric.Value) (numeric.Value, error)

// Function is a callable definition, native or user-defined.
//
// Exactly one of Native and Body is set. User-defined functions keep
// Body as an uninterpreted expression string; it is parsed and
// evaluated lazily at call time, in a context where the parameters
// shadow outer variables of the same name.
type Function struct {
	// Name is the identifier the function is called by.
	Name string

	// Params is the ordered parameter name list. Arity is len(Params).
	Params []string

	// Body is the expression string of a user-defined function.
	Body string

	// Native is the implementation of a built-in function.
	Native NativeImpl

	// Description is free-form documentation.
	Description string

	// OutputUnit, when set, is the unit symbol the function's result is
	// expressed in. The evaluator propagates it onto call results.
	OutputUnit string
}

// IsNative reports whether the function is a built-in.
func (f Function) IsNative() bool { return f.Native != nil }

// Arity returns the number of parameters the function accepts.
func (f Function) Arity() int { return len(f.Params) }

// DefineFunction registers a user-defined function.
//
// Fails with INVALID_IDENTIFIER on a bad function or parameter name and
// with DUPLICATE_DEFINITION when the name belongs to a native function.
// Redefining an existing user-defined function overwrites it.
func (s *Store) DefineFunction(name string, params []string, body, description string) (Function, error) {
	if !ValidIdentifier(name) {
		return Function{}, newInvalidIdentifierError(name, "function name fails identifier grammar")
	}
	seen := make(map[string]bool, len(params))
	for _, p := range params {
		if !ValidIdentifier(p) {
			return Function{}, newInvalidIdentifierError(p, "parameter name fails identifier grammar")
		}
		if seen[p] {
			return Function{}, newInvalidIdentifierError(p, "duplicate parameter name")
		}
		seen[p] = true
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.functions[name]; ok && existing.IsNative() {
		return Function{}, &SymbolError{
			Code:    ErrCodeDuplicateDefinition,
			Name:    name,
			Message: "name is bound to a built-in function",
		}
	}

	f := Function{
		Name:        name,
		Params:      append([]string(nil), params...),
		Body:        body,
		Description: description,
	}
	s.functions[name] = f
	return f, nil
}

// DeleteFunction removes a user-defined function.
// Native functions cannot be deleted.
func (s *Store) DeleteFunction(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, ok := s.functions[name]
	if !ok {
		return &SymbolError{Code: ErrCodeUnknownSymbol, Name: name, Message: "function is not defined"}
	}
	if f.IsNative() {
		return &SymbolError{
			Code:    ErrCodeDuplicateDefinition,
			Name:    name,
			Message: "built-in functions cannot be deleted",
		}
	}
	delete(s.functions, name)
	return nil
}

// Function returns a function definition by name.
func (s *Store) Function(name string) (Function, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	f, ok := s.functions[name]
	return f, ok
}

// CheckArity validates an argument count against the definition.
func (f Function) CheckArity(got int) error {
	if got != f.Arity() {
		return &SymbolError{
			Code:    ErrCodeArityMismatch,
			Name:    f.Name,
			Message: fmt.Sprintf("expects %d argument(s), got %d", f.Arity(), got),
		}
	}
	return nil
}
