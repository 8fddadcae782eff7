package numeric

import (
	"errors"
	"fmt"
)

// KernelError represents a precondition violation in a kernel operation.
//
// Kernel errors include:
//   - Shape mismatch: matrix operands incompatible for the operator
//   - Not square: determinant/solve requested on a non-square matrix
//   - Singular: elimination hit a pivot below PivotEpsilon during solve
//   - Malformed literal: a complex literal failed to parse
//   - Division by zero: a zero denominator reached scalar or complex division
type KernelError struct {
	// Code identifies the error category.
	Code KernelErrorCode

	// Op names the operation that failed ("multiply", "det", ...).
	Op string

	// Message is a human-readable description.
	Message string
}

// KernelErrorCode categorizes kernel errors.
type KernelErrorCode string

const (
	// ErrCodeMatrixDimensionMismatch indicates incompatible operand shapes.
	ErrCodeMatrixDimensionMismatch KernelErrorCode = "MATRIX_DIMENSION_MISMATCH"

	// ErrCodeNotSquare indicates a square-only operation on a non-square matrix.
	ErrCodeNotSquare KernelErrorCode = "NOT_SQUARE"

	// ErrCodeSingular indicates a singular system in Solve.
	ErrCodeSingular KernelErrorCode = "SINGULAR"

	// ErrCodeMalformedComplex indicates an unparseable complex literal.
	ErrCodeMalformedComplex KernelErrorCode = "MALFORMED_COMPLEX"

	// ErrCodeDivisionByZero indicates a zero denominator at runtime.
	ErrCodeDivisionByZero KernelErrorCode = "DIVISION_BY_ZERO"
)

// Error implements the error interface.
func (e *KernelError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("%s: %s: %s", e.Code, e.Op, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsShapeError returns true if the error is a matrix shape mismatch.
// Uses errors.As to handle wrapped errors.
func IsShapeError(err error) bool {
	var ke *KernelError
	if errors.As(err, &ke) {
		return ke.Code == ErrCodeMatrixDimensionMismatch || ke.Code == ErrCodeNotSquare
	}
	return false
}

// IsDivisionByZero returns true if the error is a zero-denominator error.
func IsDivisionByZero(err error) bool {
	var ke *KernelError
	if errors.As(err, &ke) {
		return ke.Code == ErrCodeDivisionByZero
	}
	return false
}

// newShapeError creates a KernelError naming both offending shapes.
func newShapeError(op string, a, b Matrix) *KernelError {
	return &KernelError{
		Code:    ErrCodeMatrixDimensionMismatch,
		Op:      op,
		Message: fmt.Sprintf("incompatible shapes %s and %s", a.Shape(), b.Shape()),
	}
}

func newNotSquareError(op string, m Matrix) *KernelError {
	return &KernelError{
		Code:    ErrCodeNotSquare,
		Op:      op,
		Message: fmt.Sprintf("requires a square matrix, got %s", m.Shape()),
	}
}
