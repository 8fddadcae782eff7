package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/girderhq/girder/internal/calculus"
)

// DiffOptions holds flags for the diff command.
type DiffOptions struct {
	*RootOptions
	At    float64
	Order int
}

// NewDiffCommand creates the diff command.
func NewDiffCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &DiffOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "diff <expression> <variable>",
		Short: "Numerically differentiate an expression",
		Long: `Differentiate an expression with respect to a variable at a point,
using central finite differences. Orders 1 and 2 are supported.

Example:
  girder diff "x^3" x --at 2
  girder diff "sin(x)" x --at 0 --order 2`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDiff(opts, args[0], args[1], cmd)
		},
	}

	cmd.Flags().Float64Var(&opts.At, "at", 0, "point to differentiate at")
	cmd.Flags().IntVar(&opts.Order, "order", 1, "derivative order (1 or 2)")

	return cmd
}

func runDiff(opts *DiffOptions, expression, variable string, cmd *cobra.Command) error {
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

	d, err := s.engine.Differentiate(expression, variable, opts.At, opts.Order)
	if err != nil {
		return failure(f, err)
	}

	formatted := s.engine.Formatter().Number(d)
	s.recordCalculation(cmd.Context(), fmt.Sprintf("d^%d/d%s^%d (%s) at %g", opts.Order, variable, opts.Order, expression, opts.At), formatted, "")

	return f.Success(formatted, map[string]any{
		"expression": expression,
		"variable":   variable,
		"at":         opts.At,
		"order":      opts.Order,
		"derivative": d,
		"formatted":  formatted,
	})
}

// IntegrateOptions holds flags for the integrate command.
type IntegrateOptions struct {
	*RootOptions
	Lower  float64
	Upper  float64
	Method string
	Steps  int
}

// NewIntegrateCommand creates the integrate command.
func NewIntegrateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &IntegrateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "integrate <expression> <variable>",
		Short: "Numerically integrate an expression",
		Long: `Integrate an expression with respect to a variable over an interval,
using composite Simpson or trapezoidal quadrature.

Example:
  girder integrate "x^2" x --from 0 --to 1
  girder integrate "sin(x)" x --from 0 --to 3.14159 --method trapezoidal --steps 5000`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runIntegrate(opts, args[0], args[1], cmd)
		},
	}

	cmd.Flags().Float64Var(&opts.Lower, "from", 0, "lower bound")
	cmd.Flags().Float64Var(&opts.Upper, "to", 0, "upper bound")
	cmd.Flags().StringVar(&opts.Method, "method", string(calculus.Simpson), "quadrature method (simpson|trapezoidal)")
	cmd.Flags().IntVar(&opts.Steps, "steps", 0, "step count (default 1000)")

	return cmd
}

func runIntegrate(opts *IntegrateOptions, expression, variable string, cmd *cobra.Command) error {
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

	v, err := s.engine.Integrate(expression, variable, opts.Lower, opts.Upper, calculus.Method(opts.Method), opts.Steps)
	if err != nil {
		return failure(f, err)
	}

	formatted := s.engine.Formatter().Number(v)
	s.recordCalculation(cmd.Context(), fmt.Sprintf("integral of %s d%s over [%g, %g]", expression, variable, opts.Lower, opts.Upper), formatted, "")

	return f.Success(formatted, map[string]any{
		"expression": expression,
		"variable":   variable,
		"from":       opts.Lower,
		"to":         opts.Upper,
		"method":     opts.Method,
		"integral":   v,
		"formatted":  formatted,
	})
}

// OptimizeOptions holds flags for the optimize command.
type OptimizeOptions struct {
	*RootOptions
	Goal      string
	Lower     float64
	Upper     float64
	Tolerance float64
}

// NewOptimizeCommand creates the optimize command.
func NewOptimizeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &OptimizeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "optimize <expression> <variable>",
		Short: "Find an extremum of an expression",
		Long: `Locate a minimum or maximum of an expression over a variable on a
bounded interval, using golden-section search. The expression should
have a single extremum on the interval.

Example:
  girder optimize "(x - 2)^2" x --from 0 --to 5
  girder optimize "sin(x)" x --goal maximize --from 0 --to 3.14159`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOptimize(opts, args[0], args[1], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Goal, "goal", string(calculus.Minimize), "optimization goal (minimize|maximize)")
	cmd.Flags().Float64Var(&opts.Lower, "from", 0, "lower bound of the search interval")
	cmd.Flags().Float64Var(&opts.Upper, "to", 0, "upper bound of the search interval")
	cmd.Flags().Float64Var(&opts.Tolerance, "tolerance", 0, "interval-width tolerance (default 1e-8)")

	return cmd
}

func runOptimize(opts *OptimizeOptions, expression, variable string, cmd *cobra.Command) error {
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

	res, err := s.engine.Optimize(expression, variable, calculus.Goal(opts.Goal), opts.Lower, opts.Upper, opts.Tolerance)
	if err != nil {
		return failure(f, err)
	}
	f.VerboseLog("converged after %d iterations", res.Iterations)

	value := s.engine.Formatter().Number(res.Value)
	text := fmt.Sprintf("%s = %s, value = %s", variable, res.Formatted, value)
	s.recordCalculation(cmd.Context(), fmt.Sprintf("%s of %s over [%g, %g]", opts.Goal, expression, opts.Lower, opts.Upper), text, "")

	return f.Success(text, map[string]any{
		"expression": expression,
		"variable":   variable,
		"goal":       opts.Goal,
		"from":       opts.Lower,
		"to":         opts.Upper,
		"x":          res.X,
		"value":      res.Value,
		"iterations": res.Iterations,
		"formatted":  text,
	})
}
