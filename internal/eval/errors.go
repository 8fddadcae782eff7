package eval

import (
	"errors"
	"fmt"
)

// EvalError represents a failed parse or evaluation.
type EvalError struct {
	// Code identifies the error category.
	Code EvalErrorCode

	// Pos is the byte offset in the expression, when known (-1 otherwise).
	Pos int

	// Symbol is the offending identifier, when one exists.
	Symbol string

	// Message is a human-readable description.
	Message string
}

// EvalErrorCode categorizes evaluation errors.
type EvalErrorCode string

const (
	// ErrCodeParse indicates malformed expression syntax.
	ErrCodeParse EvalErrorCode = "PARSE_ERROR"

	// ErrCodeUnknownIdentifier indicates a symbol missing from the
	// merged context.
	ErrCodeUnknownIdentifier EvalErrorCode = "UNKNOWN_IDENTIFIER"

	// ErrCodeUnknownFunction indicates call syntax naming no function.
	ErrCodeUnknownFunction EvalErrorCode = "UNKNOWN_FUNCTION"

	// ErrCodeDivisionByZero indicates a runtime-zero denominator.
	ErrCodeDivisionByZero EvalErrorCode = "DIVISION_BY_ZERO"

	// ErrCodeUnitMismatch indicates +/- over quantities of different
	// dimensions (or temperature quantities in different units).
	ErrCodeUnitMismatch EvalErrorCode = "UNIT_MISMATCH"

	// ErrCodeUnsupportedOperand indicates an operator applied to value
	// shapes it is not defined over (e.g. matrix modulo).
	ErrCodeUnsupportedOperand EvalErrorCode = "UNSUPPORTED_OPERAND"

	// ErrCodeRecursionLimit indicates user-defined function calls
	// nested past the evaluation depth limit, as with a function
	// defined in terms of itself.
	ErrCodeRecursionLimit EvalErrorCode = "RECURSION_LIMIT"
)

// Error implements the error interface.
func (e *EvalError) Error() string {
	switch {
	case e.Symbol != "" && e.Pos >= 0:
		return fmt.Sprintf("%s: %s (symbol=%s, pos=%d)", e.Code, e.Message, e.Symbol, e.Pos)
	case e.Symbol != "":
		return fmt.Sprintf("%s: %s (symbol=%s)", e.Code, e.Message, e.Symbol)
	case e.Pos >= 0:
		return fmt.Sprintf("%s: %s (pos=%d)", e.Code, e.Message, e.Pos)
	default:
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
}

// IsParseError returns true if the error is a syntax error.
// Uses errors.As to handle wrapped errors.
func IsParseError(err error) bool {
	var ee *EvalError
	if errors.As(err, &ee) {
		return ee.Code == ErrCodeParse
	}
	return false
}

// IsUnknownIdentifier returns true if the error is an unresolved-symbol
// error.
func IsUnknownIdentifier(err error) bool {
	var ee *EvalError
	if errors.As(err, &ee) {
		return ee.Code == ErrCodeUnknownIdentifier || ee.Code == ErrCodeUnknownFunction
	}
	return false
}

// IsDivisionByZero returns true if the error is a zero-denominator
// error.
func IsDivisionByZero(err error) bool {
	var ee *EvalError
	if errors.As(err, &ee) {
		return ee.Code == ErrCodeDivisionByZero
	}
	return false
}

// IsUnitMismatch returns true if the error is a cross-dimension
// arithmetic error.
func IsUnitMismatch(err error) bool {
	var ee *EvalError
	if errors.As(err, &ee) {
		return ee.Code == ErrCodeUnitMismatch
	}
	return false
}

func parseError(pos int, format string, args ...any) *EvalError {
	return &EvalError{Code: ErrCodeParse, Pos: pos, Message: fmt.Sprintf(format, args...)}
}
