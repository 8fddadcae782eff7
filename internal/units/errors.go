package units

import (
	"errors"
	"fmt"
)

// UnitError represents a failed registry or conversion operation.
type UnitError struct {
	// Code identifies the error category.
	Code UnitErrorCode

	// Symbol is the offending unit symbol, when one exists.
	Symbol string

	// Message is a human-readable description.
	Message string
}

// UnitErrorCode categorizes unit errors.
type UnitErrorCode string

const (
	// ErrCodeDuplicateUnit indicates a symbol collision on registration.
	ErrCodeDuplicateUnit UnitErrorCode = "DUPLICATE_UNIT"

	// ErrCodeUnknownUnit indicates an unregistered unit symbol.
	ErrCodeUnknownUnit UnitErrorCode = "UNKNOWN_UNIT"

	// ErrCodeDimensionMismatch indicates a conversion across dimensions.
	ErrCodeDimensionMismatch UnitErrorCode = "DIMENSION_MISMATCH"

	// ErrCodeDuplicateBase indicates a second base unit for a dimension.
	ErrCodeDuplicateBase UnitErrorCode = "DUPLICATE_BASE"

	// ErrCodeNotRemovable indicates an attempt to remove a built-in unit.
	ErrCodeNotRemovable UnitErrorCode = "NOT_REMOVABLE"
)

// Error implements the error interface.
func (e *UnitError) Error() string {
	if e.Symbol != "" {
		return fmt.Sprintf("%s: %s (unit=%s)", e.Code, e.Message, e.Symbol)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsUnknownUnit returns true if the error is an unknown-unit error.
// Uses errors.As to handle wrapped errors.
func IsUnknownUnit(err error) bool {
	var ue *UnitError
	if errors.As(err, &ue) {
		return ue.Code == ErrCodeUnknownUnit
	}
	return false
}

// IsDuplicate returns true if the error is a registration collision
// (duplicate symbol or second base unit for a dimension).
func IsDuplicate(err error) bool {
	var ue *UnitError
	if errors.As(err, &ue) {
		return ue.Code == ErrCodeDuplicateUnit || ue.Code == ErrCodeDuplicateBase
	}
	return false
}

// IsDimensionMismatch returns true if the error is a cross-dimension
// conversion error.
func IsDimensionMismatch(err error) bool {
	var ue *UnitError
	if errors.As(err, &ue) {
		return ue.Code == ErrCodeDimensionMismatch
	}
	return false
}

func newUnknownUnitError(symbol string) *UnitError {
	return &UnitError{
		Code:    ErrCodeUnknownUnit,
		Symbol:  symbol,
		Message: "unit is not registered",
	}
}

func newDimensionMismatchError(from, to Unit) *UnitError {
	return &UnitError{
		Code:   ErrCodeDimensionMismatch,
		Symbol: from.Symbol,
		Message: fmt.Sprintf("cannot convert %s (%s) to %s (%s)",
			from.Symbol, from.Dimension, to.Symbol, to.Dimension),
	}
}
