package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/girderhq/girder/internal/numeric"
)

// NewConvertCommand creates the convert command.
func NewConvertCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert <value> <from> <to>",
		Short: "Convert a value between units",
		Long: `Convert a numeric value between two units of the same dimension.

Temperature conversions go through exact formulas; everything else is
a linear factor through the dimension's base unit.

Example:
  girder convert 100 kPa psi
  girder convert 25 C F`,
		Args:          cobra.ExactArgs(3),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(rootOpts, args, cmd)
		},
	}

	return cmd
}

func runConvert(opts *RootOptions, args []string, cmd *cobra.Command) error {
	f := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	value, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return WrapExitError(ExitCommandError, fmt.Sprintf("invalid value %q", args[0]), err)
	}
	from, to := args[1], args[2]

	s, err := newSession(cmd.Context(), opts)
	if err != nil {
		return err
	}
	defer s.Close()

	res, err := s.engine.Convert(value, from, to)
	if err != nil {
		return failure(f, err)
	}

	formatted := s.engine.Formatter().Quantity(numeric.Number(res.Value), res.Unit)
	s.recordCalculation(cmd.Context(), fmt.Sprintf("%s %s -> %s", args[0], from, to), formatted, res.Unit)

	text := fmt.Sprintf("%s (factor %s)", formatted, res.FactorString())
	return f.Success(text, map[string]any{
		"value":     value,
		"from":      from,
		"to":        to,
		"result":    res.Value,
		"formatted": formatted,
		"factor":    res.FactorString(),
	})
}
