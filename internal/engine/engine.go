package engine

import (
	"log/slog"

	"github.com/girderhq/girder/internal/calculus"
	"github.com/girderhq/girder/internal/eval"
	"github.com/girderhq/girder/internal/format"
	"github.com/girderhq/girder/internal/numeric"
	"github.com/girderhq/girder/internal/solver"
	"github.com/girderhq/girder/internal/symbols"
	"github.com/girderhq/girder/internal/units"
)

// Quantity is a caller-supplied value with an optional unit tag, used
// for per-call variable overrides.
type Quantity = symbols.Binding

// Engine ties the unit registry, symbol store, evaluator, solver,
// calculus routines, and formatter into one calculation session.
type Engine struct {
	registry  *units.Registry
	store     *symbols.Store
	evaluator *eval.Evaluator
	formatter *format.Formatter
	prefs     *units.Preferences
	logger    *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithPolicy sets the result formatting policy.
func WithPolicy(p format.Policy) Option {
	return func(e *Engine) {
		e.formatter = format.New(p)
	}
}

// WithPreferences sets the preferred display units. The preferences
// must be built over the same registry the engine uses.
func WithPreferences(p *units.Preferences) Option {
	return func(e *Engine) {
		e.prefs = p
	}
}

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = l
	}
}

// New creates an engine over an explicit registry and symbol store.
func New(registry *units.Registry, store *symbols.Store, opts ...Option) *Engine {
	e := &Engine{
		registry:  registry,
		store:     store,
		evaluator: eval.New(registry),
		formatter: format.New(format.DefaultPolicy()),
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.prefs == nil {
		e.prefs = units.NewPreferences(registry)
	}
	return e
}

// NewDefault creates an engine with the built-in unit catalog, the
// built-in constants, and the native function library.
func NewDefault(opts ...Option) *Engine {
	return New(units.NewDefaultRegistry(), symbols.NewStore(eval.Builtins()...), opts...)
}

// Registry exposes the engine's unit registry.
func (e *Engine) Registry() *units.Registry { return e.registry }

// Store exposes the engine's symbol store.
func (e *Engine) Store() *symbols.Store { return e.store }

// Preferences exposes the engine's preferred display units.
func (e *Engine) Preferences() *units.Preferences { return e.prefs }

// Formatter exposes the engine's result formatter.
func (e *Engine) Formatter() *format.Formatter { return e.formatter }

// EvaluationResult is an evaluation outcome with its rendered form.
type EvaluationResult struct {
	// Value is the computed value.
	Value numeric.Value

	// Type is the value's shape (number, complex, matrix).
	Type numeric.Kind

	// Unit is the unit symbol the value carries, when any.
	Unit string

	// Formatted is the value rendered under the engine's policy,
	// including the unit when one is attached.
	Formatted string
}

// Evaluate evaluates an expression against the stored symbols, with
// overrides shadowing stored variables for this call only.
func (e *Engine) Evaluate(expression string, overrides map[string]Quantity) (EvaluationResult, error) {
	ctx := e.store.BuildContext(overrides)
	res, err := e.evaluator.Evaluate(expression, ctx)
	if err != nil {
		e.logger.Debug("evaluation failed", "expression", expression, "error", err)
		return EvaluationResult{}, err
	}
	return EvaluationResult{
		Value:     res.Value,
		Type:      res.Type,
		Unit:      res.Unit,
		Formatted: e.formatter.Quantity(res.Value, res.Unit),
	}, nil
}

// SolveResult reports a successful equation solve.
type SolveResult struct {
	// Variable is the unknown that was solved for.
	Variable string

	// Solution is the root found.
	Solution float64

	// Iterations is the number of Newton steps taken.
	Iterations int

	// Residual is |left-right| at the solution.
	Residual float64

	// Formatted is the solution rendered under the engine's policy.
	Formatted string
}

// Solve finds a value of the named variable making both sides of
// "left = right" equal, via damped-free Newton-Raphson over the
// residual left-right. Both sides must evaluate to real scalars at
// every probed point.
func (e *Engine) Solve(equation, variable string, opts solver.Options) (SolveResult, error) {
	if !symbols.ValidIdentifier(variable) {
		return SolveResult{}, &symbols.SymbolError{
			Code:    symbols.ErrCodeInvalidIdentifier,
			Name:    variable,
			Message: "solve variable is not a valid identifier",
		}
	}
	left, right, err := eval.SplitEquation(equation)
	if err != nil {
		return SolveResult{}, err
	}
	objective := func(x float64) (float64, error) {
		lv, err := e.scalar(left, variable, x)
		if err != nil {
			return 0, err
		}
		rv, err := e.scalar(right, variable, x)
		if err != nil {
			return 0, err
		}
		return lv - rv, nil
	}
	res, err := solver.Solve(objective, opts)
	if err != nil {
		e.logger.Debug("solve failed", "equation", equation, "variable", variable, "error", err)
		return SolveResult{}, err
	}
	e.logger.Debug("solved", "variable", variable, "solution", res.Solution, "iterations", res.Iterations)
	return SolveResult{
		Variable:   variable,
		Solution:   res.Solution,
		Iterations: res.Iterations,
		Residual:   res.Residual,
		Formatted:  e.formatter.Number(res.Solution),
	}, nil
}

// Convert converts a plain numeric value between two units.
func (e *Engine) Convert(value float64, from, to string) (units.ConversionResult, error) {
	return e.registry.Convert(value, from, to)
}

// Preferred converts a value to the preferred unit of its dimension,
// when one is set; otherwise to the dimension's base unit.
func (e *Engine) Preferred(value float64, symbol string) (units.ConversionResult, error) {
	return e.prefs.ToPreferred(value, symbol)
}

// Differentiate numerically differentiates an expression with respect
// to a variable at a point. Orders 1 and 2 are supported.
func (e *Engine) Differentiate(expression, variable string, at float64, order int) (float64, error) {
	f := e.realFunc(expression, variable)
	df, err := calculus.Differentiate(f, order)
	if err != nil {
		return 0, err
	}
	return df(at)
}

// Integrate numerically integrates an expression with respect to a
// variable over [lower, upper]. steps <= 0 uses the default count.
func (e *Engine) Integrate(expression, variable string, lower, upper float64, method calculus.Method, steps int) (float64, error) {
	f := e.realFunc(expression, variable)
	return calculus.Integrate(f, lower, upper, method, steps)
}

// OptimizeResult reports a located extremum of a scalar expression.
type OptimizeResult struct {
	// Variable is the variable that was optimized over.
	Variable string

	// X is the abscissa of the extremum.
	X float64

	// Value is the expression's value at X.
	Value float64

	// Iterations is the number of search steps taken.
	Iterations int

	// Formatted is X rendered under the engine's policy.
	Formatted string
}

// Optimize locates a minimum or maximum of an expression over the
// named variable on [lower, upper], via golden-section search. The
// expression should be unimodal on the interval. tol <= 0 uses the
// default tolerance.
func (e *Engine) Optimize(expression, variable string, goal calculus.Goal, lower, upper, tol float64) (OptimizeResult, error) {
	if !symbols.ValidIdentifier(variable) {
		return OptimizeResult{}, &symbols.SymbolError{
			Code:    symbols.ErrCodeInvalidIdentifier,
			Name:    variable,
			Message: "optimization variable is not a valid identifier",
		}
	}
	opt, err := calculus.Optimize(e.realFunc(expression, variable), goal, lower, upper, tol)
	if err != nil {
		e.logger.Debug("optimize failed", "expression", expression, "variable", variable, "error", err)
		return OptimizeResult{}, err
	}
	e.logger.Debug("optimized", "variable", variable, "x", opt.X, "iterations", opt.Iterations)
	return OptimizeResult{
		Variable:   variable,
		X:          opt.X,
		Value:      opt.Value,
		Iterations: opt.Iterations,
		Formatted:  e.formatter.Number(opt.X),
	}, nil
}

// DeclareVariable validates the unit (when given) and stores the
// variable.
func (e *Engine) DeclareVariable(name string, value numeric.Value, unit, description, scope string) (symbols.Variable, error) {
	if unit != "" {
		if _, err := e.registry.Lookup(unit); err != nil {
			return symbols.Variable{}, err
		}
	}
	v, err := e.store.DeclareVariable(name, value, unit, description, scope)
	if err != nil {
		return symbols.Variable{}, err
	}
	e.logger.Debug("variable declared", "name", name, "unit", unit)
	return v, nil
}

// DeleteVariable removes a stored variable.
func (e *Engine) DeleteVariable(name string) error {
	return e.store.DeleteVariable(name)
}

// DefineFunction stores a user-defined function. The body is parsed
// lazily at call time, so forward references to not-yet-declared
// symbols are allowed here.
func (e *Engine) DefineFunction(name string, params []string, body, description string) (symbols.Function, error) {
	fn, err := e.store.DefineFunction(name, params, body, description)
	if err != nil {
		return symbols.Function{}, err
	}
	e.logger.Debug("function defined", "name", name, "arity", len(params))
	return fn, nil
}

// DeleteFunction removes a user-defined function.
func (e *Engine) DeleteFunction(name string) error {
	return e.store.DeleteFunction(name)
}

// RegisterCustomUnit registers a caller-defined unit.
func (e *Engine) RegisterCustomUnit(u units.Unit) error {
	if err := e.registry.RegisterCustom(u); err != nil {
		return err
	}
	e.logger.Debug("custom unit registered", "symbol", u.Symbol, "dimension", string(u.Dimension))
	return nil
}

// RemoveCustomUnit removes a caller-defined unit. Built-in units are
// not removable.
func (e *Engine) RemoveCustomUnit(symbol string) error {
	return e.registry.RemoveCustom(symbol)
}

// realFunc closes an expression over one real variable.
func (e *Engine) realFunc(expression, variable string) calculus.Func {
	return func(x float64) (float64, error) {
		return e.scalar(expression, variable, x)
	}
}

// scalar evaluates an expression with variable bound to x and requires
// a real scalar result.
func (e *Engine) scalar(expression, variable string, x float64) (float64, error) {
	ctx := e.store.BuildContext(map[string]Quantity{
		variable: {Value: numeric.Number(x)},
	})
	res, err := e.evaluator.Evaluate(expression, ctx)
	if err != nil {
		return 0, err
	}
	n, ok := numeric.AsNumber(res.Value)
	if !ok {
		return 0, &eval.EvalError{
			Code:    eval.ErrCodeUnsupportedOperand,
			Pos:     -1,
			Message: "expression must evaluate to a real scalar",
		}
	}
	return n, nil
}
