package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/girderhq/girder/internal/engine"
	"github.com/girderhq/girder/internal/numeric"
)

// EvalOptions holds flags for the eval command.
type EvalOptions struct {
	*RootOptions
	Set []string // name=value overrides
}

// NewEvalCommand creates the eval command.
func NewEvalCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &EvalOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "eval <expression>",
		Short: "Evaluate an expression",
		Long: `Evaluate an expression against the stored symbols.

Expressions may mix plain numbers, unit-tagged quantities, complex
literals, matrices, constants, variables, and function calls.

Example:
  girder eval "3 m + 40 cm"
  girder eval "sin(pi/4)^2"
  girder eval --set x=2 "x^3 + 1"`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEval(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringArrayVar(&opts.Set, "set", nil, "variable override (name=value, repeatable)")

	return cmd
}

func runEval(opts *EvalOptions, expression string, cmd *cobra.Command) error {
	f := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	s, err := newSession(cmd.Context(), opts.RootOptions)
	if err != nil {
		return err
	}
	defer s.Close()

	overrides, err := parseOverrides(opts.Set)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid --set", err)
	}

	res, err := s.engine.Evaluate(expression, overrides)
	if err != nil {
		return failure(f, err)
	}

	s.recordCalculation(cmd.Context(), expression, res.Formatted, res.Unit)

	return f.Success(res.Formatted, map[string]any{
		"expression": expression,
		"type":       string(res.Type),
		"unit":       res.Unit,
		"formatted":  res.Formatted,
	})
}

// parseOverrides parses repeated name=value flags. Values are plain
// real numbers; richer overrides go through variable declarations.
func parseOverrides(pairs []string) (map[string]engine.Quantity, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	out := make(map[string]engine.Quantity, len(pairs))
	for _, pair := range pairs {
		name, raw, found := strings.Cut(pair, "=")
		if !found || name == "" {
			return nil, fmt.Errorf("expected name=value, got %q", pair)
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("value for %s: %q is not a number", name, raw)
		}
		out[name] = engine.Quantity{Value: numeric.Number(v)}
	}
	return out, nil
}
