package symbols

import (
	"errors"
	"fmt"
)

// SymbolError represents a failed namespace operation.
type SymbolError struct {
	// Code identifies the error category.
	Code SymbolErrorCode

	// Name is the offending identifier.
	Name string

	// Message is a human-readable description.
	Message string
}

// SymbolErrorCode categorizes symbol errors.
type SymbolErrorCode string

const (
	// ErrCodeInvalidIdentifier indicates a name that fails the identifier
	// grammar or shadows a constant.
	ErrCodeInvalidIdentifier SymbolErrorCode = "INVALID_IDENTIFIER"

	// ErrCodeDuplicateDefinition indicates a collision where uniqueness
	// is required (e.g. redefining a native function).
	ErrCodeDuplicateDefinition SymbolErrorCode = "DUPLICATE_DEFINITION"

	// ErrCodeUnknownSymbol indicates a lookup of an undeclared name.
	ErrCodeUnknownSymbol SymbolErrorCode = "UNKNOWN_SYMBOL"

	// ErrCodeArityMismatch indicates a call with the wrong argument count.
	ErrCodeArityMismatch SymbolErrorCode = "ARITY_MISMATCH"
)

// Error implements the error interface.
func (e *SymbolError) Error() string {
	return fmt.Sprintf("%s: %s (name=%s)", e.Code, e.Message, e.Name)
}

// IsInvalidIdentifier returns true if the error is an identifier
// grammar or constant-shadowing violation.
// Uses errors.As to handle wrapped errors.
func IsInvalidIdentifier(err error) bool {
	var se *SymbolError
	if errors.As(err, &se) {
		return se.Code == ErrCodeInvalidIdentifier
	}
	return false
}

// IsDuplicateDefinition returns true if the error is a uniqueness
// collision.
func IsDuplicateDefinition(err error) bool {
	var se *SymbolError
	if errors.As(err, &se) {
		return se.Code == ErrCodeDuplicateDefinition
	}
	return false
}

func newInvalidIdentifierError(name, reason string) *SymbolError {
	return &SymbolError{
		Code:    ErrCodeInvalidIdentifier,
		Name:    name,
		Message: reason,
	}
}
