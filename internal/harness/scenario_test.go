package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeScenario(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadScenario(t *testing.T) {
	path := writeScenario(t, `
name: pressure_check
description: Evaluates a tagged quantity.
profile:
  units:
    - symbol: ksi
      name: kip per square inch
      dimension: pressure
      factor: 6894757.293168
  variables:
    phi:
      value: 0.9
      unit: ""
      description: resistance factor
  preferences: [MPa]
  precision:
    significant_digits: 4
setup:
  - declare: t
    value: 12
    unit: mm
  - define: area
    params: [r]
    body: pi * r^2
steps:
  - op: evaluate
    expression: phi * 10
    expect:
      value: 9
  - op: convert
    value: 1
    from: ksi
    to: MPa
`)

	scenario, err := LoadScenario(path)
	require.NoError(t, err)

	assert.Equal(t, "pressure_check", scenario.Name)
	require.NotNil(t, scenario.Profile)
	require.Len(t, scenario.Profile.Units, 1)
	assert.Equal(t, "ksi", scenario.Profile.Units[0].Symbol)
	assert.Equal(t, 0.9, scenario.Profile.Variables["phi"].Value)
	assert.Equal(t, []string{"MPa"}, scenario.Profile.Preferences)
	require.NotNil(t, scenario.Profile.Precision)
	assert.Equal(t, 4, scenario.Profile.Precision.SignificantDigits)

	require.Len(t, scenario.Setup, 2)
	assert.Equal(t, "t", scenario.Setup[0].Declare)
	assert.Equal(t, "area", scenario.Setup[1].Define)
	assert.Equal(t, []string{"r"}, scenario.Setup[1].Params)

	require.Len(t, scenario.Steps, 2)
	require.NotNil(t, scenario.Steps[0].Expect)
	require.NotNil(t, scenario.Steps[0].Expect.Value)
	assert.Equal(t, 9.0, *scenario.Steps[0].Expect.Value)
	assert.Nil(t, scenario.Steps[1].Expect)
}

func TestLoadScenarioMissingFile(t *testing.T) {
	_, err := LoadScenario(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read scenario file")
}

func TestLoadScenarioValidation(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name: "missing name",
			yaml: `
description: No name.
steps:
  - op: evaluate
    expression: 1 + 1
`,
			wantErr: "name is required",
		},
		{
			name: "missing description",
			yaml: `
name: unnamed
steps:
  - op: evaluate
    expression: 1 + 1
`,
			wantErr: "description is required",
		},
		{
			name: "no steps",
			yaml: `
name: empty
description: Has no steps.
`,
			wantErr: "steps list is required",
		},
		{
			name: "unknown field",
			yaml: `
name: typo
description: Misspells steps.
step:
  - op: evaluate
    expression: 1 + 1
`,
			wantErr: "failed to parse YAML",
		},
		{
			name: "setup declare and define",
			yaml: `
name: conflicted
description: Setup entry is both a variable and a function.
setup:
  - declare: a
    define: f
    body: a * 2
steps:
  - op: evaluate
    expression: 1 + 1
`,
			wantErr: "declare and define are mutually exclusive",
		},
		{
			name: "setup define without body",
			yaml: `
name: bodiless
description: Function definition has no body.
setup:
  - define: f
    params: [x]
steps:
  - op: evaluate
    expression: 1 + 1
`,
			wantErr: "body is required for define",
		},
		{
			name: "unknown op",
			yaml: `
name: mystery
description: Uses an op the harness does not know.
steps:
  - op: interpolate
    expression: 1 + 1
`,
			wantErr: `unknown op "interpolate"`,
		},
		{
			name: "evaluate without expression",
			yaml: `
name: missing-expr
description: Evaluate step has no input.
steps:
  - op: evaluate
`,
			wantErr: "expression is required for evaluate",
		},
		{
			name: "convert without to",
			yaml: `
name: missing-to
description: Convert step has no target unit.
steps:
  - op: convert
    value: 1
    from: m
`,
			wantErr: "from and to are required for convert",
		},
		{
			name: "solve without equation",
			yaml: `
name: missing-eq
description: Solve step has no equation.
steps:
  - op: solve
    variable: x
`,
			wantErr: "equation is required for solve",
		},
		{
			name: "expect error with value",
			yaml: `
name: over-specified
description: Expect clause mixes error with value.
steps:
  - op: evaluate
    expression: 1 m + 1 kg
    expect:
      error: UNIT_MISMATCH
      value: 2
`,
			wantErr: "error excludes value/formatted/unit",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadScenario(writeScenario(t, tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
