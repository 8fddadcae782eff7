package eval

import (
	"math"
	"math/cmplx"

	"github.com/girderhq/girder/internal/numeric"
	"github.com/girderhq/girder/internal/symbols"
	"github.com/girderhq/girder/internal/units"
)

// Result is a typed, unit-tagged evaluation outcome.
type Result struct {
	// Value is the computed value.
	Value numeric.Value

	// Type is the value's shape (number, complex, matrix).
	Type numeric.Kind

	// Unit is the unit symbol the value is expressed in, when one was
	// derivable; empty otherwise.
	Unit string
}

// Evaluator evaluates expression strings against a symbol context.
// It consults the unit registry for quantity literals and +/- unit
// reconciliation, and dispatches matrix/complex arithmetic to the
// numeric kernel.
type Evaluator struct {
	registry *units.Registry
}

// New creates an evaluator over a unit registry.
func New(registry *units.Registry) *Evaluator {
	return &Evaluator{registry: registry}
}

// maxCallDepth bounds user-defined function call nesting. A Go stack
// overflow cannot be recovered, so self-referential definitions must
// fail before the runtime kills the process.
const maxCallDepth = 64

// Evaluate parses and evaluates an expression.
//
// The context is read-only for the whole call: evaluation never
// declares or mutates symbols.
func (e *Evaluator) Evaluate(expression string, ctx symbols.Context) (Result, error) {
	root, err := parse(expression)
	if err != nil {
		return Result{}, err
	}
	op, err := e.evalNode(root, ctx, 0)
	if err != nil {
		return Result{}, err
	}
	return Result{Value: op.val, Type: op.val.Kind(), Unit: op.unit}, nil
}

// operand is an in-flight value with its unit tag.
type operand struct {
	val  numeric.Value
	unit string
}

func (e *Evaluator) evalNode(n node, ctx symbols.Context, depth int) (operand, error) {
	switch expr := n.(type) {
	case numberLit:
		return operand{val: numeric.Number(expr.value)}, nil

	case imagLit:
		return operand{val: numeric.Complex{Im: expr.value}}, nil

	case quantityLit:
		if _, err := e.registry.Lookup(expr.unit); err != nil {
			return operand{}, err
		}
		return operand{val: numeric.Number(expr.value), unit: expr.unit}, nil

	case identRef:
		binding, ok := ctx.Resolve(expr.name)
		if !ok {
			return operand{}, &EvalError{
				Code:    ErrCodeUnknownIdentifier,
				Pos:     expr.pos,
				Symbol:  expr.name,
				Message: "identifier is not defined",
			}
		}
		return operand{val: binding.Value, unit: binding.Unit}, nil

	case unaryOp:
		inner, err := e.evalNode(expr.operand, ctx, depth)
		if err != nil {
			return operand{}, err
		}
		if expr.op == tokPlus {
			return inner, nil
		}
		return negate(inner, expr.pos)

	case binaryOp:
		left, err := e.evalNode(expr.left, ctx, depth)
		if err != nil {
			return operand{}, err
		}
		right, err := e.evalNode(expr.right, ctx, depth)
		if err != nil {
			return operand{}, err
		}
		return e.combine(expr.op, left, right, expr.pos)

	case callExpr:
		return e.evalCall(expr, ctx, depth)

	case matrixLit:
		return e.evalMatrix(expr, ctx, depth)

	default:
		return operand{}, parseError(n.position(), "unsupported expression node")
	}
}

func (e *Evaluator) evalCall(call callExpr, ctx symbols.Context, depth int) (operand, error) {
	fn, ok := ctx.Function(call.name)
	if !ok {
		return operand{}, &EvalError{
			Code:    ErrCodeUnknownFunction,
			Pos:     call.pos,
			Symbol:  call.name,
			Message: "function is not defined",
		}
	}
	if err := fn.CheckArity(len(call.args)); err != nil {
		return operand{}, err
	}

	args := make([]operand, len(call.args))
	for i, argNode := range call.args {
		arg, err := e.evalNode(argNode, ctx, depth)
		if err != nil {
			return operand{}, err
		}
		args[i] = arg
	}

	if fn.IsNative() {
		values := make([]numeric.Value, len(args))
		for i, a := range args {
			values[i] = a.val
		}
		out, err := fn.Native(values)
		if err != nil {
			return operand{}, err
		}
		return operand{val: out, unit: fn.OutputUnit}, nil
	}

	// User-defined: evaluate the stored body lazily, with parameters
	// shadowing outer variables of the same name.
	if depth >= maxCallDepth {
		return operand{}, &EvalError{
			Code:    ErrCodeRecursionLimit,
			Pos:     call.pos,
			Symbol:  call.name,
			Message: "function call nesting exceeds the evaluation limit",
		}
	}
	shadow := make(map[string]symbols.Binding, len(args))
	for i, param := range fn.Params {
		shadow[param] = symbols.Binding{Value: args[i].val, Unit: args[i].unit}
	}
	body, err := e.evalBody(fn, ctx.WithBindings(shadow), depth+1)
	if err != nil {
		return operand{}, err
	}
	if fn.OutputUnit != "" {
		body.unit = fn.OutputUnit
	}
	return body, nil
}

func (e *Evaluator) evalBody(fn symbols.Function, ctx symbols.Context, depth int) (operand, error) {
	root, err := parse(fn.Body)
	if err != nil {
		return operand{}, err
	}
	return e.evalNode(root, ctx, depth)
}

func (e *Evaluator) evalMatrix(lit matrixLit, ctx symbols.Context, depth int) (operand, error) {
	data := make([][]float64, len(lit.rows))
	for i, row := range lit.rows {
		data[i] = make([]float64, len(row))
		for j, cell := range row {
			el, err := e.evalNode(cell, ctx, depth)
			if err != nil {
				return operand{}, err
			}
			f, ok := numeric.AsNumber(el.val)
			if !ok || el.unit != "" {
				return operand{}, &EvalError{
					Code:    ErrCodeUnsupportedOperand,
					Pos:     cell.position(),
					Message: "matrix elements must be plain real numbers",
				}
			}
			data[i][j] = f
		}
	}
	m, err := numeric.NewMatrix(data)
	if err != nil {
		return operand{}, err
	}
	return operand{val: m}, nil
}

func negate(op operand, pos int) (operand, error) {
	switch v := op.val.(type) {
	case numeric.Number:
		return operand{val: numeric.Number(-v), unit: op.unit}, nil
	case numeric.Complex:
		return operand{val: numeric.Complex{Re: -v.Re, Im: -v.Im}, unit: op.unit}, nil
	case numeric.Matrix:
		return operand{val: numeric.ScaleMatrix(-1, v), unit: op.unit}, nil
	default:
		return operand{}, parseError(pos, "cannot negate operand")
	}
}

// combine applies a binary operator to two operands, reconciling unit
// tags for + and - and dropping them for everything else.
func (e *Evaluator) combine(op tokenKind, left, right operand, pos int) (operand, error) {
	switch op {
	case tokPlus, tokMinus:
		reconciled, unit, err := e.reconcileUnits(left, right, pos)
		if err != nil {
			return operand{}, err
		}
		val, err := addSub(op, left.val, reconciled, pos)
		if err != nil {
			return operand{}, err
		}
		return operand{val: val, unit: unit}, nil

	case tokStar:
		val, err := multiply(left.val, right.val, pos)
		if err != nil {
			return operand{}, err
		}
		return operand{val: val}, nil

	case tokSlash:
		val, err := divide(left.val, right.val, pos)
		if err != nil {
			return operand{}, err
		}
		return operand{val: val}, nil

	case tokPercent:
		val, err := modulo(left, right, pos)
		if err != nil {
			return operand{}, err
		}
		return operand{val: val}, nil

	case tokCaret:
		val, err := power(left.val, right.val, pos)
		if err != nil {
			return operand{}, err
		}
		return operand{val: val}, nil

	default:
		return operand{}, parseError(pos, "unsupported operator")
	}
}

// reconcileUnits prepares the right operand of +/- for combination with
// the left and decides the result unit.
//
// Rules:
//   - both untagged: no unit
//   - one tagged: the tag wins, values combine as-is
//   - both tagged, same symbol: tag kept
//   - both tagged, same dimension: right converted to the left's unit
//     (numbers only); temperature refuses implicit conversion because
//     affine mappings are not closed under addition
//   - different dimensions: UNIT_MISMATCH
func (e *Evaluator) reconcileUnits(left, right operand, pos int) (numeric.Value, string, error) {
	switch {
	case left.unit == "" && right.unit == "":
		return right.val, "", nil
	case left.unit == "":
		return right.val, right.unit, nil
	case right.unit == "" || left.unit == right.unit:
		return right.val, left.unit, nil
	}

	from, err := e.registry.Lookup(right.unit)
	if err != nil {
		return nil, "", err
	}
	to, err := e.registry.Lookup(left.unit)
	if err != nil {
		return nil, "", err
	}
	if from.Dimension != to.Dimension {
		return nil, "", &EvalError{
			Code:    ErrCodeUnitMismatch,
			Pos:     pos,
			Message: "cannot combine " + right.unit + " (" + string(from.Dimension) + ") with " + left.unit + " (" + string(to.Dimension) + ")",
		}
	}
	if from.Dimension == units.Temperature {
		return nil, "", &EvalError{
			Code:    ErrCodeUnitMismatch,
			Pos:     pos,
			Message: "temperature quantities must share a unit; convert explicitly",
		}
	}

	f, ok := numeric.AsNumber(right.val)
	if !ok {
		return nil, "", &EvalError{
			Code:    ErrCodeUnsupportedOperand,
			Pos:     pos,
			Message: "implicit unit conversion applies to scalar quantities only",
		}
	}
	converted, err := e.registry.Convert(f, right.unit, left.unit)
	if err != nil {
		return nil, "", err
	}
	return numeric.Number(converted.Value), left.unit, nil
}

func addSub(op tokenKind, left, right numeric.Value, pos int) (numeric.Value, error) {
	// Matrix arithmetic never mixes with scalars for + and -.
	lm, lIsM := left.(numeric.Matrix)
	rm, rIsM := right.(numeric.Matrix)
	switch {
	case lIsM && rIsM:
		if op == tokPlus {
			return numeric.AddMatrix(lm, rm)
		}
		return numeric.SubMatrix(lm, rm)
	case lIsM != rIsM:
		return nil, &EvalError{
			Code:    ErrCodeUnsupportedOperand,
			Pos:     pos,
			Message: "cannot add a matrix and a scalar",
		}
	}

	lc, lOK := asComplex(left)
	rc, rOK := asComplex(right)
	if !lOK || !rOK {
		return nil, &EvalError{Code: ErrCodeUnsupportedOperand, Pos: pos, Message: "unsupported operands"}
	}
	var out numeric.Complex
	if op == tokPlus {
		out = numeric.AddComplex(lc, rc)
	} else {
		out = numeric.SubComplex(lc, rc)
	}
	return narrow(out), nil
}

func multiply(left, right numeric.Value, pos int) (numeric.Value, error) {
	lm, lIsM := left.(numeric.Matrix)
	rm, rIsM := right.(numeric.Matrix)
	switch {
	case lIsM && rIsM:
		return numeric.MulMatrix(lm, rm)
	case lIsM:
		s, ok := numeric.AsNumber(right)
		if !ok {
			return nil, &EvalError{Code: ErrCodeUnsupportedOperand, Pos: pos, Message: "matrix scaling requires a real scalar"}
		}
		return numeric.ScaleMatrix(s, lm), nil
	case rIsM:
		s, ok := numeric.AsNumber(left)
		if !ok {
			return nil, &EvalError{Code: ErrCodeUnsupportedOperand, Pos: pos, Message: "matrix scaling requires a real scalar"}
		}
		return numeric.ScaleMatrix(s, rm), nil
	}

	lc, lOK := asComplex(left)
	rc, rOK := asComplex(right)
	if !lOK || !rOK {
		return nil, &EvalError{Code: ErrCodeUnsupportedOperand, Pos: pos, Message: "unsupported operands"}
	}
	return narrow(numeric.MulComplex(lc, rc)), nil
}

func divide(left, right numeric.Value, pos int) (numeric.Value, error) {
	if _, rIsM := right.(numeric.Matrix); rIsM {
		return nil, &EvalError{Code: ErrCodeUnsupportedOperand, Pos: pos, Message: "cannot divide by a matrix"}
	}

	if lm, lIsM := left.(numeric.Matrix); lIsM {
		s, ok := numeric.AsNumber(right)
		if !ok {
			return nil, &EvalError{Code: ErrCodeUnsupportedOperand, Pos: pos, Message: "matrix division requires a real scalar"}
		}
		if s == 0 {
			return nil, divisionByZero(pos)
		}
		return numeric.ScaleMatrix(1/s, lm), nil
	}

	lc, lOK := asComplex(left)
	rc, rOK := asComplex(right)
	if !lOK || !rOK {
		return nil, &EvalError{Code: ErrCodeUnsupportedOperand, Pos: pos, Message: "unsupported operands"}
	}
	if rc.Re == 0 && rc.Im == 0 {
		return nil, divisionByZero(pos)
	}
	out, err := numeric.DivComplex(lc, rc)
	if err != nil {
		return nil, err
	}
	return narrow(out), nil
}

func modulo(left, right operand, pos int) (numeric.Value, error) {
	if left.unit != "" || right.unit != "" {
		return nil, &EvalError{Code: ErrCodeUnsupportedOperand, Pos: pos, Message: "modulo is defined for plain numbers only"}
	}
	l, lOK := realOnly(left.val)
	r, rOK := realOnly(right.val)
	if !lOK || !rOK {
		return nil, &EvalError{Code: ErrCodeUnsupportedOperand, Pos: pos, Message: "modulo is defined for plain numbers only"}
	}
	if r == 0 {
		return nil, divisionByZero(pos)
	}
	return numeric.Number(math.Mod(l, r)), nil
}

func power(left, right numeric.Value, pos int) (numeric.Value, error) {
	if _, isM := left.(numeric.Matrix); isM {
		return nil, &EvalError{Code: ErrCodeUnsupportedOperand, Pos: pos, Message: "matrix exponentiation is not supported"}
	}
	if _, isM := right.(numeric.Matrix); isM {
		return nil, &EvalError{Code: ErrCodeUnsupportedOperand, Pos: pos, Message: "matrix exponent is not supported"}
	}

	lb, lIsN := realOnly(left)
	rb, rIsN := realOnly(right)
	if lIsN && rIsN {
		// Negative base with fractional exponent leaves the reals.
		if lb < 0 && rb != math.Trunc(rb) {
			c := cmplx.Pow(complex(lb, 0), complex(rb, 0))
			return narrow(numeric.Complex{Re: real(c), Im: imag(c)}), nil
		}
		return numeric.Number(math.Pow(lb, rb)), nil
	}

	lc, lOK := asComplex(left)
	rc, rOK := asComplex(right)
	if !lOK || !rOK {
		return nil, &EvalError{Code: ErrCodeUnsupportedOperand, Pos: pos, Message: "unsupported operands"}
	}
	c := cmplx.Pow(complex(lc.Re, lc.Im), complex(rc.Re, rc.Im))
	return narrow(numeric.Complex{Re: real(c), Im: imag(c)}), nil
}

func divisionByZero(pos int) *EvalError {
	return &EvalError{Code: ErrCodeDivisionByZero, Pos: pos, Message: "division by zero"}
}

// asComplex widens scalars to complex for shared arithmetic paths.
func asComplex(v numeric.Value) (numeric.Complex, bool) {
	switch val := v.(type) {
	case numeric.Number:
		return numeric.Complex{Re: float64(val)}, true
	case numeric.Complex:
		return val, true
	default:
		return numeric.Complex{}, false
	}
}

// realOnly extracts a strictly real scalar.
func realOnly(v numeric.Value) (float64, bool) {
	switch val := v.(type) {
	case numeric.Number:
		return float64(val), true
	case numeric.Complex:
		if val.Im == 0 {
			return val.Re, true
		}
		return 0, false
	default:
		return 0, false
	}
}

// narrow collapses a complex with zero imaginary part back to a real
// number so downstream formatting and unit handling see a scalar.
func narrow(c numeric.Complex) numeric.Value {
	if c.Im == 0 {
		return numeric.Number(c.Re)
	}
	return c
}
