// Package units owns the unit and dimension catalog of the calculation
// engine and performs conversions between compatible units.
//
// ARCHITECTURE:
//
// Registry Instances:
// There is no process-wide unit table. Each Registry is an explicit
// instance injected into the engine, so isolated sessions carry isolated
// catalogs (a custom unit in one session never leaks into another).
//
// Conversion Model:
// Every dimension has exactly one base unit. Linear conversion routes
// through the base: toBase(v, from) then fromBase(base, to), where
// toBase(v, u) = v*u.Factor + u.Offset. Temperature is the exception:
// K/C/F conversions go through a fixed table of six affine formulas so
// that the fixed points (0 C = 273.15 K = 32 F) hold exactly, and the
// ConversionResult reports NonLinear instead of a ratio.
//
// Thread-safety model:
//   - reads (IsValid, Lookup, Convert, Compatible, DefaultUnit): safe
//     from any goroutine
//   - mutation (Register, RegisterCustom, RemoveCustom): serialized
//     behind the registry mutex
//
// INVARIANTS:
//   - Unit symbols are unique across the whole registry, not per dimension
//   - Exactly one unit per dimension has Base = true
//   - Built-in units are never removable; only custom units are
package units
