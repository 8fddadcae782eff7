// Package symbols manages the calculation engine's namespaces:
// constants, variables, and function definitions.
//
// Namespace rules:
//   - Constants are immutable and seeded at store construction.
//   - Variables share the constant namespace: declaring a variable with
//     a constant's name is rejected. Re-declaring an existing variable
//     overwrites it in place.
//   - Functions live in their own table, resolved only by call syntax.
//     Native functions are registered once at engine start; user-defined
//     functions store their body as an uninterpreted expression string
//     evaluated lazily at call time.
//
// Identifier grammar: a letter followed by letters, digits, or
// underscores. Everything entering a namespace is validated against it.
//
// Evaluation never mutates the store. Each evaluation call builds a
// fresh Context through BuildContext (constants, then variables, then
// caller overrides, each layer shadowing the previous) and discards it
// afterwards.
//
// Thread-safety model:
//   - reads (BuildContext, enumeration snapshots): safe from any goroutine
//   - mutation (DeclareVariable, DefineFunction, DeleteVariable):
//     serialized behind the store mutex
package symbols
