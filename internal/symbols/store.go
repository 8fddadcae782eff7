package symbols

import (
	"regexp"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/girderhq/girder/internal/numeric"
)

// identifierPattern is the identifier grammar: a letter followed by
// letters, digits, or underscores.
var identifierPattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]*$`)

// ValidIdentifier reports whether a name satisfies the grammar.
func ValidIdentifier(name string) bool {
	return identifierPattern.MatchString(name)
}

// Variable is a mutable named value with unit and provenance metadata.
type Variable struct {
	// Name is the identifier the variable is bound to.
	Name string

	// ID is a UUIDv7 assigned at first declaration. Overwriting a
	// variable keeps its identity (same ID, new value).
	ID string

	// Value is the bound value (number, complex, or matrix).
	Value numeric.Value

	// Unit is the unit symbol the value is expressed in (may be empty).
	Unit string

	// Description is free-form caller documentation.
	Description string

	// Scope records where the declaration came from ("session",
	// "worksheet", a sheet id, ...). Provenance only; no lookup rules
	// hang off it.
	Scope string

	// CreatedAt is the first-declaration timestamp.
	CreatedAt time.Time
}

// Store holds constants, variables, and function definitions.
//
// Constants and native functions are fixed at construction. Variables
// and user-defined functions mutate only through the explicit Declare /
// Define / Delete operations, never through evaluation.
type Store struct {
	mu        sync.RWMutex
	constants map[string]Constant
	variables map[string]Variable
	functions map[string]Function
}

// NewStore creates a store seeded with the built-in constants and the
// given native functions.
func NewStore(natives ...Function) *Store {
	s := &Store{
		constants: make(map[string]Constant, len(builtinConstants)),
		variables: make(map[string]Variable),
		functions: make(map[string]Function, len(natives)),
	}
	for _, c := range builtinConstants {
		s.constants[c.Name] = c
	}
	for _, f := range natives {
		s.functions[f.Name] = f
	}
	return s
}

// DeclareVariable binds a value to a name.
//
// Fails with INVALID_IDENTIFIER when the name breaks the grammar or
// collides with a constant. Re-declaring an existing variable
// overwrites its value in place, keeping the original ID and CreatedAt.
func (s *Store) DeclareVariable(name string, value numeric.Value, unit, description, scope string) (Variable, error) {
	if !ValidIdentifier(name) {
		return Variable{}, newInvalidIdentifierError(name, "identifier must start with a letter and contain only letters, digits, and underscores")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, isConst := s.constants[name]; isConst {
		return Variable{}, newInvalidIdentifierError(name, "name is bound to a constant")
	}

	v := Variable{
		Name:        name,
		ID:          uuid.Must(uuid.NewV7()).String(),
		Value:       value,
		Unit:        unit,
		Description: description,
		Scope:       scope,
		CreatedAt:   time.Now().UTC(),
	}
	if existing, ok := s.variables[name]; ok {
		// Mutation, same identity.
		v.ID = existing.ID
		v.CreatedAt = existing.CreatedAt
	}
	s.variables[name] = v
	return v, nil
}

// DeleteVariable removes a variable binding.
// Fails with UNKNOWN_SYMBOL if the name is not declared.
func (s *Store) DeleteVariable(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.variables[name]; !ok {
		return &SymbolError{Code: ErrCodeUnknownSymbol, Name: name, Message: "variable is not declared"}
	}
	delete(s.variables, name)
	return nil
}

// Variable returns a declared variable by name.
func (s *Store) Variable(name string) (Variable, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.variables[name]
	return v, ok
}

// Constant returns a constant by name.
func (s *Store) Constant(name string) (Constant, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.constants[name]
	return c, ok
}

// Variables returns a name-sorted snapshot of declared variables.
func (s *Store) Variables() []Variable {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Variable, 0, len(s.variables))
	for _, v := range s.variables {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Constants returns a name-sorted snapshot of the constant catalog.
func (s *Store) Constants() []Constant {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Constant, 0, len(s.constants))
	for _, c := range s.constants {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Functions returns a name-sorted snapshot of the function table.
func (s *Store) Functions() []Function {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Function, 0, len(s.functions))
	for _, f := range s.functions {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
