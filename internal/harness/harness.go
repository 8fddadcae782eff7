package harness

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/girderhq/girder/internal/calculus"
	"github.com/girderhq/girder/internal/engine"
	"github.com/girderhq/girder/internal/format"
	"github.com/girderhq/girder/internal/numeric"
	"github.com/girderhq/girder/internal/solver"
	"github.com/girderhq/girder/internal/units"
)

// defaultWithin is the tolerance for expect.value when the scenario
// does not set one.
const defaultWithin = 1e-9

// stepOutcome is what one executed step produced, before expect
// validation.
type stepOutcome struct {
	value     float64
	hasValue  bool
	formatted string
	unit      string
	err       error
}

// Run executes a scenario against a fresh engine and returns the
// result.
//
// Execution flow:
// 1. Build an engine from the default catalog plus the profile
// 2. Execute setup declarations (these must succeed)
// 3. Execute each step, recording a trace event
// 4. Validate expect clauses, collecting errors
func Run(scenario *Scenario) (*Result, error) {
	eng, err := buildEngine(scenario.Profile)
	if err != nil {
		return nil, fmt.Errorf("building engine: %w", err)
	}

	if err := runSetup(eng, scenario.Setup); err != nil {
		return nil, fmt.Errorf("setup: %w", err)
	}

	result := NewResult()
	for i, step := range scenario.Steps {
		outcome := executeStep(eng, &step)

		event := TraceEvent{
			Step:    i + 1,
			Op:      step.Op,
			Input:   stepInput(&step),
			Outcome: "ok",
		}
		if outcome.err != nil {
			event.Outcome = "error"
			event.Code = engine.ErrorCode(outcome.err)
		} else {
			event.Formatted = outcome.formatted
			event.Unit = outcome.unit
		}
		result.Trace = append(result.Trace, event)

		validateExpect(result, i, &step, outcome)
	}

	return result, nil
}

// buildEngine creates the scenario's engine from the profile.
func buildEngine(profile *ProfileFragment) (*engine.Engine, error) {
	var opts []engine.Option
	opts = append(opts, engine.WithLogger(slog.New(slog.DiscardHandler)))
	if profile != nil && profile.Precision != nil {
		opts = append(opts, engine.WithPolicy(format.Policy{
			SignificantDigits: profile.Precision.SignificantDigits,
			DecimalPlaces:     profile.Precision.DecimalPlaces,
			OutputFormat:      format.OutputFormat(profile.Precision.Format),
		}))
	}
	eng := engine.NewDefault(opts...)

	if profile == nil {
		return eng, nil
	}
	for _, u := range profile.Units {
		err := eng.RegisterCustomUnit(units.Unit{
			Symbol:    u.Symbol,
			Name:      u.Name,
			Dimension: units.Dimension(u.Dimension),
			Factor:    u.Factor,
			Offset:    u.Offset,
		})
		if err != nil {
			return nil, fmt.Errorf("unit %s: %w", u.Symbol, err)
		}
	}
	for name, v := range profile.Variables {
		if _, err := eng.DeclareVariable(name, numeric.Number(v.Value), v.Unit, v.Description, "scenario"); err != nil {
			return nil, fmt.Errorf("variable %s: %w", name, err)
		}
	}
	for _, symbol := range profile.Preferences {
		if err := eng.Preferences().Set(symbol); err != nil {
			return nil, fmt.Errorf("preference %s: %w", symbol, err)
		}
	}
	return eng, nil
}

// runSetup executes the scenario's declarations.
func runSetup(eng *engine.Engine, setup []SetupStep) error {
	for i, s := range setup {
		if s.Declare != "" {
			if _, err := eng.DeclareVariable(s.Declare, numeric.Number(s.Value), s.Unit, "", "scenario"); err != nil {
				return fmt.Errorf("setup[%d] declare %s: %w", i, s.Declare, err)
			}
			continue
		}
		if _, err := eng.DefineFunction(s.Define, s.Params, s.Body, ""); err != nil {
			return fmt.Errorf("setup[%d] define %s: %w", i, s.Define, err)
		}
	}
	return nil
}

// executeStep runs one step against the engine.
func executeStep(eng *engine.Engine, step *Step) stepOutcome {
	variable := step.Variable
	if variable == "" {
		variable = "x"
	}

	switch step.Op {
	case OpEvaluate:
		res, err := eng.Evaluate(step.Expression, nil)
		if err != nil {
			return stepOutcome{err: err}
		}
		out := stepOutcome{formatted: res.Formatted, unit: res.Unit}
		if n, ok := numeric.AsNumber(res.Value); ok {
			out.value = n
			out.hasValue = true
		}
		return out

	case OpConvert:
		res, err := eng.Convert(step.Value, step.From, step.To)
		if err != nil {
			return stepOutcome{err: err}
		}
		return stepOutcome{
			value:     res.Value,
			hasValue:  true,
			formatted: eng.Formatter().Quantity(numeric.Number(res.Value), res.Unit),
			unit:      res.Unit,
		}

	case OpSolve:
		res, err := eng.Solve(step.Equation, variable, solver.Options{InitialGuess: step.Guess})
		if err != nil {
			return stepOutcome{err: err}
		}
		return stepOutcome{value: res.Solution, hasValue: true, formatted: res.Formatted}

	case OpDiff:
		order := step.Order
		if order == 0 {
			order = 1
		}
		d, err := eng.Differentiate(step.Expression, variable, step.At, order)
		if err != nil {
			return stepOutcome{err: err}
		}
		return stepOutcome{value: d, hasValue: true, formatted: eng.Formatter().Number(d)}

	case OpIntegrate:
		method := calculus.Method(step.Method)
		if step.Method == "" {
			method = calculus.Simpson
		}
		v, err := eng.Integrate(step.Expression, variable, step.Lower, step.Upper, method, step.Steps)
		if err != nil {
			return stepOutcome{err: err}
		}
		return stepOutcome{value: v, hasValue: true, formatted: eng.Formatter().Number(v)}

	default:
		// validateScenario rejects unknown ops before execution.
		return stepOutcome{err: fmt.Errorf("unknown op %q", step.Op)}
	}
}

// stepInput renders a step's input for the trace.
func stepInput(step *Step) string {
	variable := step.Variable
	if variable == "" {
		variable = "x"
	}
	switch step.Op {
	case OpEvaluate:
		return step.Expression
	case OpConvert:
		return fmt.Sprintf("%g %s -> %s", step.Value, step.From, step.To)
	case OpSolve:
		return fmt.Sprintf("%s for %s", step.Equation, variable)
	case OpDiff:
		return fmt.Sprintf("d/d%s %s at %g", variable, step.Expression, step.At)
	case OpIntegrate:
		return fmt.Sprintf("%s d%s over [%g, %g]", step.Expression, variable, step.Lower, step.Upper)
	default:
		return ""
	}
}

// validateExpect checks a step's outcome against its expect clause.
func validateExpect(result *Result, index int, step *Step, outcome stepOutcome) {
	e := step.Expect

	if e == nil || e.Error == "" {
		if outcome.err != nil {
			result.AddError(fmt.Sprintf("steps[%d]: unexpected error: %v", index, outcome.err))
			return
		}
	}
	if e == nil {
		return
	}

	if e.Error != "" {
		if outcome.err == nil {
			result.AddError(fmt.Sprintf("steps[%d]: expected error %s, got success", index, e.Error))
			return
		}
		if code := engine.ErrorCode(outcome.err); code != e.Error {
			result.AddError(fmt.Sprintf("steps[%d]: expected error %s, got %s", index, e.Error, code))
		}
		return
	}

	if e.Value != nil {
		within := e.Within
		if within == 0 {
			within = defaultWithin
		}
		if !outcome.hasValue {
			result.AddError(fmt.Sprintf("steps[%d]: expected numeric value, got non-scalar result", index))
		} else if math.Abs(outcome.value-*e.Value) > within {
			result.AddError(fmt.Sprintf("steps[%d]: value %g not within %g of %g", index, outcome.value, within, *e.Value))
		}
	}
	if e.Formatted != "" && outcome.formatted != e.Formatted {
		result.AddError(fmt.Sprintf("steps[%d]: formatted %q, expected %q", index, outcome.formatted, e.Formatted))
	}
	if e.Unit != nil && outcome.unit != *e.Unit {
		result.AddError(fmt.Sprintf("steps[%d]: unit %q, expected %q", index, outcome.unit, *e.Unit))
	}
}
