// Package calculus provides numeric differentiation and quadrature over
// evaluator-backed scalar functions.
//
// Differentiation uses central finite differences (orders 1 and 2).
// Integration offers composite Simpson and trapezoidal rules; both
// evaluate the integrand at steps+1 equally spaced points.
package calculus

import (
	"errors"
	"fmt"
)

// DefaultSteps is the quadrature step count when the caller passes 0.
const DefaultSteps = 1000

// diffStep is the finite-difference step for Differentiate. Larger than
// the solver's internal step because the second-order formula divides
// by h^2.
const diffStep = 1e-6

// Func is a scalar function of one variable.
type Func func(x float64) (float64, error)

// Method selects a quadrature rule.
type Method string

const (
	// Simpson is the composite Simpson rule (1-4-2-...-4-1 weights).
	Simpson Method = "simpson"

	// Trapezoidal is the composite trapezoid rule.
	Trapezoidal Method = "trapezoidal"
)

// UnsupportedOrderError reports a differentiation order outside {1, 2}.
type UnsupportedOrderError struct {
	Order int
}

// Error implements the error interface.
func (e *UnsupportedOrderError) Error() string {
	return fmt.Sprintf("UNSUPPORTED_ORDER: differentiation order %d is not supported (orders 1 and 2 only)", e.Order)
}

// IsUnsupportedOrder returns true if the error is an order violation.
// Uses errors.As to handle wrapped errors.
func IsUnsupportedOrder(err error) bool {
	var uoe *UnsupportedOrderError
	return errors.As(err, &uoe)
}

// UnknownMethodError reports an unrecognized quadrature method.
type UnknownMethodError struct {
	Method Method
}

// Error implements the error interface.
func (e *UnknownMethodError) Error() string {
	return fmt.Sprintf("UNKNOWN_METHOD: quadrature method %q is not supported", string(e.Method))
}

// Differentiate returns the numeric derivative of f as a new function.
//
//	order 1: (f(x+h) - f(x-h)) / 2h
//	order 2: (f(x+h) - 2 f(x) + f(x-h)) / h^2
//
// Any other order fails with UnsupportedOrderError.
func Differentiate(f Func, order int) (Func, error) {
	switch order {
	case 1:
		return func(x float64) (float64, error) {
			fPlus, err := f(x + diffStep)
			if err != nil {
				return 0, err
			}
			fMinus, err := f(x - diffStep)
			if err != nil {
				return 0, err
			}
			return (fPlus - fMinus) / (2 * diffStep), nil
		}, nil
	case 2:
		return func(x float64) (float64, error) {
			fPlus, err := f(x + diffStep)
			if err != nil {
				return 0, err
			}
			fMid, err := f(x)
			if err != nil {
				return 0, err
			}
			fMinus, err := f(x - diffStep)
			if err != nil {
				return 0, err
			}
			return (fPlus - 2*fMid + fMinus) / (diffStep * diffStep), nil
		}, nil
	default:
		return nil, &UnsupportedOrderError{Order: order}
	}
}

// Integrate computes the definite integral of f from lower to upper.
//
// steps <= 0 falls back to DefaultSteps. Simpson requires an even step
// count; an odd count is silently incremented by one. Bounds may be in
// either order: a reversed interval negates the result.
func Integrate(f Func, lower, upper float64, method Method, steps int) (float64, error) {
	if steps <= 0 {
		steps = DefaultSteps
	}
	if lower == upper {
		return 0, nil
	}
	sign := 1.0
	if lower > upper {
		lower, upper = upper, lower
		sign = -1
	}

	switch method {
	case Simpson:
		if steps%2 != 0 {
			steps++
		}
		v, err := simpson(f, lower, upper, steps)
		return sign * v, err
	case Trapezoidal:
		v, err := trapezoid(f, lower, upper, steps)
		return sign * v, err
	default:
		return 0, &UnknownMethodError{Method: method}
	}
}

func simpson(f Func, a, b float64, n int) (float64, error) {
	h := (b - a) / float64(n)

	sum, err := f(a)
	if err != nil {
		return 0, err
	}
	fb, err := f(b)
	if err != nil {
		return 0, err
	}
	sum += fb

	for i := 1; i < n; i++ {
		fx, err := f(a + float64(i)*h)
		if err != nil {
			return 0, err
		}
		if i%2 == 1 {
			sum += 4 * fx
		} else {
			sum += 2 * fx
		}
	}
	return sum * h / 3, nil
}

func trapezoid(f Func, a, b float64, n int) (float64, error) {
	h := (b - a) / float64(n)

	fa, err := f(a)
	if err != nil {
		return 0, err
	}
	fb, err := f(b)
	if err != nil {
		return 0, err
	}
	sum := (fa + fb) / 2

	for i := 1; i < n; i++ {
		fx, err := f(a + float64(i)*h)
		if err != nil {
			return 0, err
		}
		sum += fx
	}
	return sum * h, nil
}
