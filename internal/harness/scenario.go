package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Scenario defines a conformance test scenario: an engine profile,
// setup declarations, and a sequence of calculation steps with
// expected outcomes.
type Scenario struct {
	// Name uniquely identifies this scenario (and its golden file).
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Profile configures the engine before setup runs.
	Profile *ProfileFragment `yaml:"profile,omitempty"`

	// Setup declares variables and functions before the steps.
	Setup []SetupStep `yaml:"setup,omitempty"`

	// Steps is the main flow - calculations with expected results.
	Steps []Step `yaml:"steps"`
}

// ProfileFragment configures the engine for a scenario.
type ProfileFragment struct {
	// Units are custom units to register.
	Units []UnitDecl `yaml:"units,omitempty"`

	// Variables are pre-declared named values.
	Variables map[string]VariableDecl `yaml:"variables,omitempty"`

	// Preferences are preferred display unit symbols.
	Preferences []string `yaml:"preferences,omitempty"`

	// Precision overrides the formatting policy.
	Precision *PrecisionDecl `yaml:"precision,omitempty"`
}

// UnitDecl declares a custom unit.
type UnitDecl struct {
	Symbol    string  `yaml:"symbol"`
	Name      string  `yaml:"name"`
	Dimension string  `yaml:"dimension"`
	Factor    float64 `yaml:"factor"`
	Offset    float64 `yaml:"offset,omitempty"`
}

// VariableDecl declares a variable.
type VariableDecl struct {
	Value       float64 `yaml:"value"`
	Unit        string  `yaml:"unit,omitempty"`
	Description string  `yaml:"description,omitempty"`
}

// PrecisionDecl overrides the formatting policy.
type PrecisionDecl struct {
	SignificantDigits int    `yaml:"significant_digits,omitempty"`
	DecimalPlaces     int    `yaml:"decimal_places,omitempty"`
	Format            string `yaml:"format,omitempty"`
}

// SetupStep declares one variable or one function. Exactly one of
// Declare and Define must be set.
type SetupStep struct {
	// Declare is a variable name.
	Declare string  `yaml:"declare,omitempty"`
	Value   float64 `yaml:"value,omitempty"`
	Unit    string  `yaml:"unit,omitempty"`

	// Define is a function name.
	Define string   `yaml:"define,omitempty"`
	Params []string `yaml:"params,omitempty"`
	Body   string   `yaml:"body,omitempty"`
}

// Step is one calculation of the main flow.
type Step struct {
	// Op selects the operation: evaluate, convert, solve, diff,
	// integrate.
	Op string `yaml:"op"`

	// Expression is the input for evaluate, diff, and integrate.
	Expression string `yaml:"expression,omitempty"`

	// Equation is the input for solve ("left = right").
	Equation string `yaml:"equation,omitempty"`

	// Variable is the unknown (solve) or integration/differentiation
	// variable (diff, integrate). Defaults to "x".
	Variable string `yaml:"variable,omitempty"`

	// Convert inputs.
	Value float64 `yaml:"value,omitempty"`
	From  string  `yaml:"from,omitempty"`
	To    string  `yaml:"to,omitempty"`

	// Solve inputs.
	Guess float64 `yaml:"guess,omitempty"`

	// Diff inputs.
	At    float64 `yaml:"at,omitempty"`
	Order int     `yaml:"order,omitempty"`

	// Integrate inputs.
	Lower  float64 `yaml:"lower,omitempty"`
	Upper  float64 `yaml:"upper,omitempty"`
	Method string  `yaml:"method,omitempty"`
	Steps  int     `yaml:"steps,omitempty"`

	// Expect validates the outcome. Nil means the step just has to
	// succeed.
	Expect *Expect `yaml:"expect,omitempty"`
}

// Expect specifies the expected outcome of a step.
type Expect struct {
	// Value is the expected numeric result, checked within Within.
	Value *float64 `yaml:"value,omitempty"`

	// Within is the tolerance for Value (default 1e-9).
	Within float64 `yaml:"within,omitempty"`

	// Formatted is the expected rendered result (exact match).
	Formatted string `yaml:"formatted,omitempty"`

	// Unit is the expected unit symbol (exact match, including "").
	Unit *string `yaml:"unit,omitempty"`

	// Error is the expected taxonomy code; set it for steps that must
	// fail.
	Error string `yaml:"error,omitempty"`
}

// Step operation constants.
const (
	OpEvaluate  = "evaluate"
	OpConvert   = "convert"
	OpSolve     = "solve"
	OpDiff      = "diff"
	OpIntegrate = "integrate"
)

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed, contains
// unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	// Strict field validation catches typos like "step:" vs "steps:".
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if len(s.Steps) == 0 {
		return fmt.Errorf("steps list is required and must be non-empty")
	}

	for i, step := range s.Setup {
		switch {
		case step.Declare != "" && step.Define != "":
			return fmt.Errorf("setup[%d]: declare and define are mutually exclusive", i)
		case step.Declare == "" && step.Define == "":
			return fmt.Errorf("setup[%d]: declare or define is required", i)
		case step.Define != "" && step.Body == "":
			return fmt.Errorf("setup[%d]: body is required for define", i)
		}
	}

	for i, step := range s.Steps {
		if err := validateStep(i, &step); err != nil {
			return err
		}
	}

	return nil
}

// validateStep validates a single step based on its operation.
func validateStep(index int, step *Step) error {
	switch step.Op {
	case OpEvaluate:
		if step.Expression == "" {
			return fmt.Errorf("steps[%d]: expression is required for evaluate", index)
		}
	case OpConvert:
		if step.From == "" || step.To == "" {
			return fmt.Errorf("steps[%d]: from and to are required for convert", index)
		}
	case OpSolve:
		if step.Equation == "" {
			return fmt.Errorf("steps[%d]: equation is required for solve", index)
		}
	case OpDiff, OpIntegrate:
		if step.Expression == "" {
			return fmt.Errorf("steps[%d]: expression is required for %s", index, step.Op)
		}
	case "":
		return fmt.Errorf("steps[%d]: op is required", index)
	default:
		return fmt.Errorf("steps[%d]: unknown op %q", index, step.Op)
	}

	if e := step.Expect; e != nil {
		if e.Error != "" && (e.Value != nil || e.Formatted != "" || e.Unit != nil) {
			return fmt.Errorf("steps[%d].expect: error excludes value/formatted/unit", index)
		}
	}

	return nil
}
