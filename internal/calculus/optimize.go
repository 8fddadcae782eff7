package calculus

import (
	"errors"
	"fmt"
	"math"
)

// DefaultOptimizeTolerance is the interval-width convergence threshold
// when the caller passes 0.
const DefaultOptimizeTolerance = 1e-8

// maxOptimizeIterations caps the golden-section loop. The interval
// shrinks by a fixed ratio each step, so this is generous for any
// tolerance above machine epsilon.
const maxOptimizeIterations = 200

// invPhi is 1/phi, the golden-section interval reduction ratio.
const invPhi = 0.6180339887498949

// Goal selects the optimization direction.
type Goal string

const (
	// Minimize locates the lowest function value on the interval.
	Minimize Goal = "minimize"

	// Maximize locates the highest function value on the interval.
	Maximize Goal = "maximize"
)

// UnknownGoalError reports an unrecognized optimization goal.
type UnknownGoalError struct {
	Goal Goal
}

// Error implements the error interface.
func (e *UnknownGoalError) Error() string {
	return fmt.Sprintf("UNKNOWN_GOAL: optimization goal %q is not supported (minimize|maximize)", string(e.Goal))
}

// InvalidIntervalError reports a search interval with no interior.
type InvalidIntervalError struct {
	Lower float64
	Upper float64
}

// Error implements the error interface.
func (e *InvalidIntervalError) Error() string {
	return fmt.Sprintf("INVALID_INTERVAL: [%g, %g] is not a valid search interval", e.Lower, e.Upper)
}

// IsInvalidInterval returns true if the error is a degenerate-interval
// error. Uses errors.As to handle wrapped errors.
func IsInvalidInterval(err error) bool {
	var iie *InvalidIntervalError
	return errors.As(err, &iie)
}

// Optimum is a located extremum.
type Optimum struct {
	// X is the abscissa of the extremum.
	X float64

	// Value is f(X).
	Value float64

	// Iterations is the number of interval reductions performed.
	Iterations int
}

// Optimize locates an extremum of f on [lower, upper] by golden-section
// search. The function should be unimodal on the interval; on a
// multimodal function the search converges to one local extremum.
//
// tol <= 0 falls back to DefaultOptimizeTolerance. Requires
// lower < upper.
func Optimize(f Func, goal Goal, lower, upper, tol float64) (Optimum, error) {
	switch goal {
	case Minimize, Maximize:
	default:
		return Optimum{}, &UnknownGoalError{Goal: goal}
	}
	if !(lower < upper) || math.IsInf(lower, 0) || math.IsInf(upper, 0) {
		return Optimum{}, &InvalidIntervalError{Lower: lower, Upper: upper}
	}
	if tol <= 0 {
		tol = DefaultOptimizeTolerance
	}

	// Golden-section minimizes; maximization negates the objective.
	obj := f
	if goal == Maximize {
		obj = func(x float64) (float64, error) {
			v, err := f(x)
			return -v, err
		}
	}

	a, b := lower, upper
	c := b - (b-a)*invPhi
	d := a + (b-a)*invPhi
	fc, err := obj(c)
	if err != nil {
		return Optimum{}, err
	}
	fd, err := obj(d)
	if err != nil {
		return Optimum{}, err
	}

	iterations := 0
	for b-a > tol && iterations < maxOptimizeIterations {
		if fc < fd {
			b, d, fd = d, c, fc
			c = b - (b-a)*invPhi
			fc, err = obj(c)
		} else {
			a, c, fc = c, d, fd
			d = a + (b-a)*invPhi
			fd, err = obj(d)
		}
		if err != nil {
			return Optimum{}, err
		}
		iterations++
	}

	x := (a + b) / 2
	v, err := f(x)
	if err != nil {
		return Optimum{}, err
	}
	return Optimum{X: x, Value: v, Iterations: iterations}, nil
}
