package engine

import (
	"errors"

	"github.com/girderhq/girder/internal/calculus"
	"github.com/girderhq/girder/internal/eval"
	"github.com/girderhq/girder/internal/numeric"
	"github.com/girderhq/girder/internal/solver"
	"github.com/girderhq/girder/internal/symbols"
	"github.com/girderhq/girder/internal/units"
)

// ErrorCode extracts the taxonomy code from any structured engine
// error, or "INTERNAL" for anything else. Outer layers key their
// output and exit behavior off these codes.
func ErrorCode(err error) string {
	var evalErr *eval.EvalError
	if errors.As(err, &evalErr) {
		return string(evalErr.Code)
	}
	var symErr *symbols.SymbolError
	if errors.As(err, &symErr) {
		return string(symErr.Code)
	}
	var unitErr *units.UnitError
	if errors.As(err, &unitErr) {
		return string(unitErr.Code)
	}
	var kernErr *numeric.KernelError
	if errors.As(err, &kernErr) {
		return string(kernErr.Code)
	}
	var ncErr *solver.NonConvergenceError
	if errors.As(err, &ncErr) {
		return "NON_CONVERGENCE"
	}
	var orderErr *calculus.UnsupportedOrderError
	if errors.As(err, &orderErr) {
		return "UNSUPPORTED_ORDER"
	}
	var methodErr *calculus.UnknownMethodError
	if errors.As(err, &methodErr) {
		return "UNKNOWN_METHOD"
	}
	var goalErr *calculus.UnknownGoalError
	if errors.As(err, &goalErr) {
		return "UNKNOWN_GOAL"
	}
	var intervalErr *calculus.InvalidIntervalError
	if errors.As(err, &intervalErr) {
		return "INVALID_INTERVAL"
	}
	return "INTERNAL"
}
