// Package solver implements the Newton-Raphson equation solver.
//
// One Solve invocation is one bounded run to convergence or failure:
// there is no persistent state, no multi-root search, and no bracketing
// fallback, just a single deterministic trajectory from the initial
// guess.
// The iteration budget and the flat-derivative guard are the only
// latency bounds; callers needing wall-clock limits wrap the call.
package solver

import (
	"errors"
	"fmt"
	"math"
)

// Defaults for Solve options.
const (
	DefaultTolerance     = 1e-12
	DefaultMaxIterations = 100

	// derivativeStep is the finite-difference step for estimating f'.
	// Chosen near sqrt(machine epsilon); independent of the calculus
	// package's step size.
	derivativeStep = 1e-8
)

// Objective is a scalar function of one variable, typically an
// evaluator-backed closure over "left - right" of an equation.
type Objective func(x float64) (float64, error)

// Options configure a Solve run. The zero value means: guess 0,
// tolerance 1e-12, 100 iterations.
type Options struct {
	InitialGuess  float64
	Tolerance     float64 // convergence threshold on |f(x)|
	MaxIterations int
}

func (o Options) withDefaults() Options {
	if o.Tolerance <= 0 {
		o.Tolerance = DefaultTolerance
	}
	if o.MaxIterations <= 0 {
		o.MaxIterations = DefaultMaxIterations
	}
	return o
}

// Result reports a successful solve.
type Result struct {
	// Solution is the root found.
	Solution float64

	// Iterations is the number of Newton steps taken.
	Iterations int

	// Residual is |f(solution)| at termination.
	Residual float64
}

// NonConvergenceError reports a solve that exhausted its iteration
// budget or hit a derivative too flat to trust.
type NonConvergenceError struct {
	// Reason distinguishes the two failure modes.
	Reason NonConvergenceReason

	// Iterations is the number of steps completed before giving up.
	Iterations int

	// LastX is the final iterate.
	LastX float64

	// Residual is |f(LastX)|.
	Residual float64
}

// NonConvergenceReason categorizes solver failures.
type NonConvergenceReason string

const (
	// ReasonFlatDerivative means |f'(x)| fell below the tolerance.
	ReasonFlatDerivative NonConvergenceReason = "FLAT_DERIVATIVE"

	// ReasonBudgetExhausted means MaxIterations ran out.
	ReasonBudgetExhausted NonConvergenceReason = "BUDGET_EXHAUSTED"

	// ReasonDiverged means the iterate left the representable range.
	ReasonDiverged NonConvergenceReason = "DIVERGED"
)

// Error implements the error interface.
func (e *NonConvergenceError) Error() string {
	return fmt.Sprintf("NON_CONVERGENCE: %s after %d iteration(s) (x=%g, residual=%g)",
		e.Reason, e.Iterations, e.LastX, e.Residual)
}

// IsNonConvergence returns true if the error is a solver failure.
// Uses errors.As to handle wrapped errors.
func IsNonConvergence(err error) bool {
	var nce *NonConvergenceError
	return errors.As(err, &nce)
}

// Solve runs Newton-Raphson on the objective.
//
// Each iteration evaluates f(x), succeeds when |f(x)| < tolerance,
// estimates f'(x) by central finite difference, fails with
// NonConvergenceError when the derivative magnitude drops below the
// tolerance, and otherwise steps x' = x - f(x)/f'(x). Objective
// evaluation errors abort the run immediately.
func Solve(f Objective, opts Options) (Result, error) {
	opts = opts.withDefaults()
	x := opts.InitialGuess

	for i := 0; i < opts.MaxIterations; i++ {
		fx, err := f(x)
		if err != nil {
			return Result{}, err
		}
		if math.Abs(fx) < opts.Tolerance {
			return Result{Solution: x, Iterations: i, Residual: math.Abs(fx)}, nil
		}

		dfx, err := derivative(f, x)
		if err != nil {
			return Result{}, err
		}
		if math.Abs(dfx) < opts.Tolerance {
			return Result{}, &NonConvergenceError{
				Reason:     ReasonFlatDerivative,
				Iterations: i,
				LastX:      x,
				Residual:   math.Abs(fx),
			}
		}

		x = x - fx/dfx
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return Result{}, &NonConvergenceError{
				Reason:     ReasonDiverged,
				Iterations: i + 1,
				LastX:      x,
				Residual:   math.Abs(fx),
			}
		}
	}

	fx, err := f(x)
	if err != nil {
		return Result{}, err
	}
	if math.Abs(fx) < opts.Tolerance {
		return Result{Solution: x, Iterations: opts.MaxIterations, Residual: math.Abs(fx)}, nil
	}
	return Result{}, &NonConvergenceError{
		Reason:     ReasonBudgetExhausted,
		Iterations: opts.MaxIterations,
		LastX:      x,
		Residual:   math.Abs(fx),
	}
}

// derivative estimates f'(x) by central difference with a step scaled
// to the magnitude of x.
func derivative(f Objective, x float64) (float64, error) {
	h := derivativeStep * math.Max(1, math.Abs(x))
	fPlus, err := f(x + h)
	if err != nil {
		return 0, err
	}
	fMinus, err := f(x - h)
	if err != nil {
		return 0, err
	}
	return (fPlus - fMinus) / (2 * h), nil
}
