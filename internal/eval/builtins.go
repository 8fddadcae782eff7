package eval

import (
	"math"
	"math/cmplx"

	"github.com/girderhq/girder/internal/numeric"
	"github.com/girderhq/girder/internal/symbols"
)

// Builtins returns the native function catalog. The engine seeds its
// symbol store with these at construction; they are not removable and
// user-defined functions cannot shadow them.
func Builtins() []symbols.Function {
	fns := []symbols.Function{
		realFn("sin", "sine (radians)", math.Sin),
		realFn("cos", "cosine (radians)", math.Cos),
		realFn("tan", "tangent (radians)", math.Tan),
		realFn("asin", "inverse sine", math.Asin),
		realFn("acos", "inverse cosine", math.Acos),
		realFn("atan", "inverse tangent", math.Atan),
		realFn("sinh", "hyperbolic sine", math.Sinh),
		realFn("cosh", "hyperbolic cosine", math.Cosh),
		realFn("tanh", "hyperbolic tangent", math.Tanh),
		realFn("exp", "natural exponential", math.Exp),
		realFn("ln", "natural logarithm", math.Log),
		realFn("log", "natural logarithm", math.Log),
		realFn("log10", "base-10 logarithm", math.Log10),
		realFn("floor", "round toward negative infinity", math.Floor),
		realFn("ceil", "round toward positive infinity", math.Ceil),
		realFn("round", "round half away from zero", math.Round),
		realFn2("atan2", "two-argument inverse tangent", math.Atan2),
		realFn2("min", "smaller of two numbers", math.Min),
		realFn2("max", "larger of two numbers", math.Max),
		realFn2("pow", "x raised to y", math.Pow),
		{
			Name:        "sqrt",
			Params:      []string{"x"},
			Description: "square root; negative input yields a complex result",
			Native:      nativeSqrt,
		},
		{
			Name:        "abs",
			Params:      []string{"x"},
			Description: "absolute value or complex magnitude",
			Native:      nativeAbs,
		},
		{
			Name:        "conj",
			Params:      []string{"z"},
			Description: "complex conjugate",
			Native:      complexFn(func(c numeric.Complex) numeric.Value { return numeric.Conj(c) }),
		},
		{
			Name:        "re",
			Params:      []string{"z"},
			Description: "real part",
			Native:      complexFn(func(c numeric.Complex) numeric.Value { return numeric.Number(c.Re) }),
		},
		{
			Name:        "im",
			Params:      []string{"z"},
			Description: "imaginary part",
			Native:      complexFn(func(c numeric.Complex) numeric.Value { return numeric.Number(c.Im) }),
		},
		{
			Name:        "arg",
			Params:      []string{"z"},
			Description: "complex phase in radians",
			Native:      complexFn(func(c numeric.Complex) numeric.Value { return numeric.Number(numeric.Phase(c)) }),
		},
		{
			Name:        "det",
			Params:      []string{"m"},
			Description: "matrix determinant",
			Native: matrixFn("det", func(m numeric.Matrix) (numeric.Value, error) {
				d, err := numeric.Det(m)
				if err != nil {
					return nil, err
				}
				return numeric.Number(d), nil
			}),
		},
		{
			Name:        "transpose",
			Params:      []string{"m"},
			Description: "matrix transpose",
			Native: matrixFn("transpose", func(m numeric.Matrix) (numeric.Value, error) {
				return numeric.Transpose(m), nil
			}),
		},
	}
	return fns
}

func realFn(name, desc string, fn func(float64) float64) symbols.Function {
	return symbols.Function{
		Name:        name,
		Params:      []string{"x"},
		Description: desc,
		Native: func(args []numeric.Value) (numeric.Value, error) {
			x, ok := realOnly(args[0])
			if !ok {
				return nil, nativeOperandError(name, "a real number")
			}
			return numeric.Number(fn(x)), nil
		},
	}
}

func realFn2(name, desc string, fn func(float64, float64) float64) symbols.Function {
	return symbols.Function{
		Name:        name,
		Params:      []string{"x", "y"},
		Description: desc,
		Native: func(args []numeric.Value) (numeric.Value, error) {
			x, okX := realOnly(args[0])
			y, okY := realOnly(args[1])
			if !okX || !okY {
				return nil, nativeOperandError(name, "real numbers")
			}
			return numeric.Number(fn(x, y)), nil
		},
	}
}

func complexFn(fn func(numeric.Complex) numeric.Value) symbols.NativeImpl {
	return func(args []numeric.Value) (numeric.Value, error) {
		c, ok := asComplex(args[0])
		if !ok {
			return nil, nativeOperandError("complex function", "a scalar")
		}
		return fn(c), nil
	}
}

func matrixFn(name string, fn func(numeric.Matrix) (numeric.Value, error)) symbols.NativeImpl {
	return func(args []numeric.Value) (numeric.Value, error) {
		m, ok := args[0].(numeric.Matrix)
		if !ok {
			return nil, nativeOperandError(name, "a matrix")
		}
		return fn(m)
	}
}

func nativeSqrt(args []numeric.Value) (numeric.Value, error) {
	switch v := args[0].(type) {
	case numeric.Number:
		if v >= 0 {
			return numeric.Number(math.Sqrt(float64(v))), nil
		}
		return numeric.Complex{Im: math.Sqrt(-float64(v))}, nil
	case numeric.Complex:
		c := cmplx.Sqrt(complex(v.Re, v.Im))
		return narrow(numeric.Complex{Re: real(c), Im: imag(c)}), nil
	default:
		return nil, nativeOperandError("sqrt", "a scalar")
	}
}

func nativeAbs(args []numeric.Value) (numeric.Value, error) {
	switch v := args[0].(type) {
	case numeric.Number:
		return numeric.Number(math.Abs(float64(v))), nil
	case numeric.Complex:
		return numeric.Number(numeric.Abs(v)), nil
	default:
		return nil, nativeOperandError("abs", "a scalar")
	}
}

func nativeOperandError(name, want string) *EvalError {
	return &EvalError{
		Code:    ErrCodeUnsupportedOperand,
		Pos:     -1,
		Symbol:  name,
		Message: "expects " + want,
	}
}
