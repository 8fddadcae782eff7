// Package engine is the façade of the unit-aware calculation engine.
//
// The engine composes the unit registry, the symbol store, the
// expression evaluator, the equation solver, the numeric calculus
// routines, and the result formatter behind one small surface
// consumed by outer layers (CLI, worksheets, export).
//
// ARCHITECTURE:
//
// Dependency Injection:
// There are no process-wide singletons. An Engine is constructed over
// an explicit Registry and Store, so multiple isolated sessions can
// coexist and tests build throwaway engines freely.
//
// Purity:
// Evaluate, Solve, Convert, Differentiate, and Integrate are pure,
// CPU-bound, synchronous calls. Each evaluation builds a fresh merged
// context (constants, variables, caller overrides) and discards it;
// evaluation never mutates the store. Mutation happens only through
// the explicit DeclareVariable / DefineFunction / RegisterCustomUnit
// family, which serializes behind the store and registry locks.
//
// Bounded Work:
// There is no cancellation primitive. The solver's iteration budget
// and the quadrature step counts are the only latency guards; callers
// needing hard wall-clock limits impose an external timeout.
//
// ERROR HANDLING:
// Every failure is a structured, recoverable error (parse, unknown
// identifier, unit mismatch, non-convergence). Malformed input never
// panics the host process.
package engine
