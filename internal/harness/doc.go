// Package harness provides conformance testing for the calculation
// engine.
//
// The harness loads YAML-defined scenarios, runs them against a fresh
// engine, and validates each step's outcome. Scenario traces can be
// compared against golden files for regression pinning.
//
// # Scenario Format
//
// Scenarios are defined in YAML files with the following structure:
//
//	name: scenario_name
//	description: "What this scenario validates"
//	profile:
//	  units:
//	    - {symbol: kip, name: kip, dimension: force, factor: 4448.2216}
//	  variables:
//	    F: {value: 12.5, unit: kN}
//	setup:
//	  - declare: A
//	    value: 0.5
//	    unit: m2
//	  - define: area
//	    params: [r]
//	    body: pi * r^2
//	steps:
//	  - op: evaluate
//	    expression: F / A
//	    expect: {formatted: "25"}
//	  - op: convert
//	    value: 100
//	    from: kPa
//	    to: psi
//	    expect: {value: 14.503774, within: 1e-5}
//	  - op: evaluate
//	    expression: 1 m + 1 kg
//	    expect: {error: UNIT_MISMATCH}
//
// # Step Operations
//
// The following operations are supported:
//
//   - evaluate: Evaluate an expression
//   - convert: Convert a value between units
//   - solve: Solve an equation for a variable
//   - diff: Differentiate an expression at a point
//   - integrate: Integrate an expression over an interval
//
// An expect clause may check the numeric value (within a tolerance),
// the formatted rendering, the unit, or an expected error code. Steps
// without an expect clause just have to succeed.
//
// # Deterministic Traces
//
// Every run builds the engine from the same catalog and profile, so
// the trace (op, input, outcome, formatted value per step) is
// byte-identical across runs and suitable for golden comparison via
// RunWithGolden.
package harness
