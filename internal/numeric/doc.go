// Package numeric implements the calculation engine's numeric kernel.
//
// The kernel knows nothing about units, symbols, or expressions. It
// provides exactly three value shapes and the arithmetic over them:
//
//   - Number: a real scalar (float64)
//   - Complex: a real/imaginary pair with parsing of engineering
//     notation ("3+4i", "2-5j", "i", "-i")
//   - Matrix: a dense rectangular grid of real scalars
//
// Value is a sealed interface: only Number, Complex, and Matrix
// implement it, so operator sites can type-switch exhaustively without
// a default-case escape hatch for unknown shapes.
//
// Matrix determinants and linear solves use Gaussian elimination with
// partial pivoting; a pivot whose magnitude falls below PivotEpsilon is
// treated as zero (singular).
//
// All precondition violations return structured *KernelError values with
// machine-readable codes. Nothing in this package panics on bad input.
package numeric
