package cli

import (
	"github.com/spf13/cobra"

	"github.com/girderhq/girder/internal/solver"
)

// SolveOptions holds flags for the solve command.
type SolveOptions struct {
	*RootOptions
	Guess         float64
	Tolerance     float64
	MaxIterations int
}

// NewSolveCommand creates the solve command.
func NewSolveCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SolveOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "solve <equation> <variable>",
		Short: "Solve an equation for one variable",
		Long: `Find a value of the variable making both sides of the equation equal,
via Newton-Raphson iteration from the initial guess.

The equation must contain exactly one '='. Other symbols resolve from
the stored variables and constants.

Example:
  girder solve "x^2 = 4" x --guess 1
  girder solve "sigma * A = 50" sigma`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSolve(opts, args[0], args[1], cmd)
		},
	}

	cmd.Flags().Float64Var(&opts.Guess, "guess", 0, "initial guess")
	cmd.Flags().Float64Var(&opts.Tolerance, "tolerance", 0, "convergence tolerance on the residual (default 1e-12)")
	cmd.Flags().IntVar(&opts.MaxIterations, "max-iterations", 0, "iteration budget (default 100)")

	return cmd
}

func runSolve(opts *SolveOptions, equation, variable string, cmd *cobra.Command) error {
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

	res, err := s.engine.Solve(equation, variable, solver.Options{
		InitialGuess:  opts.Guess,
		Tolerance:     opts.Tolerance,
		MaxIterations: opts.MaxIterations,
	})
	if err != nil {
		return failure(f, err)
	}

	f.VerboseLog("converged in %d iterations, residual %.3g", res.Iterations, res.Residual)
	s.recordCalculation(cmd.Context(), equation, res.Formatted, "")

	text := variable + " = " + res.Formatted
	return f.Success(text, map[string]any{
		"equation":   equation,
		"variable":   variable,
		"solution":   res.Solution,
		"formatted":  res.Formatted,
		"iterations": res.Iterations,
		"residual":   res.Residual,
	})
}
