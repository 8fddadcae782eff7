package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/girderhq/girder/internal/units"
)

// NewUnitsCommand creates the units command group.
func NewUnitsCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "units",
		Short: "Inspect and manage the unit catalog",
	}

	cmd.AddCommand(newUnitsListCommand(rootOpts))
	cmd.AddCommand(newUnitsCompatibleCommand(rootOpts))
	cmd.AddCommand(newUnitsAddCommand(rootOpts))
	cmd.AddCommand(newUnitsRemoveCommand(rootOpts))

	return cmd
}

func newUnitsListCommand(rootOpts *RootOptions) *cobra.Command {
	var dimension string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List registered units",
		Long: `List registered units, optionally filtered by dimension.

Example:
  girder units list
  girder units list --dimension pressure`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUnitsList(rootOpts, dimension, cmd)
		},
	}

	cmd.Flags().StringVar(&dimension, "dimension", "", "filter by dimension")

	return cmd
}

func runUnitsList(opts *RootOptions, dimension string, cmd *cobra.Command) error {
	f := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	s, err := newSession(cmd.Context(), opts)
	if err != nil {
		return err
	}
	defer s.Close()

	all := s.engine.Registry().Units()
	var filtered []units.Unit
	for _, u := range all {
		if dimension != "" && string(u.Dimension) != dimension {
			continue
		}
		filtered = append(filtered, u)
	}

	var b strings.Builder
	data := make([]map[string]any, 0, len(filtered))
	for _, u := range filtered {
		marker := ""
		if u.Base {
			marker = " (base)"
		}
		if u.Custom {
			marker = " (custom)"
		}
		fmt.Fprintf(&b, "%-10s %-24s %s%s\n", u.Symbol, u.Name, u.Dimension, marker)
		data = append(data, map[string]any{
			"symbol":    u.Symbol,
			"name":      u.Name,
			"dimension": string(u.Dimension),
			"factor":    u.Factor,
			"base":      u.Base,
			"custom":    u.Custom,
		})
	}

	return f.Success(strings.TrimRight(b.String(), "\n"), data)
}

func newUnitsCompatibleCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compatible <symbol>",
		Short: "List units convertible with a symbol",
		Long: `List the units sharing a dimension with the given symbol.

Example:
  girder units compatible kPa`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUnitsCompatible(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runUnitsCompatible(opts *RootOptions, symbol string, cmd *cobra.Command) error {
	f := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	s, err := newSession(cmd.Context(), opts)
	if err != nil {
		return err
	}
	defer s.Close()

	compatible, err := s.engine.Registry().Compatible(symbol)
	if err != nil {
		return failure(f, err)
	}

	symbols := make([]string, 0, len(compatible))
	for _, u := range compatible {
		symbols = append(symbols, u.Symbol)
	}

	return f.Success(strings.Join(symbols, " "), map[string]any{
		"symbol":     symbol,
		"compatible": symbols,
	})
}

func newUnitsAddCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		name      string
		dimension string
		factor    float64
		offset    float64
	)

	cmd := &cobra.Command{
		Use:   "add <symbol>",
		Short: "Register a custom unit",
		Long: `Register a custom unit. With an active worksheet the unit is also
persisted and restored on the next session.

Example:
  girder units add furlong --name furlong --dimension length --factor 201.168`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			u := units.Unit{
				Symbol:    args[0],
				Name:      name,
				Dimension: units.Dimension(dimension),
				Factor:    factor,
				Offset:    offset,
			}
			return runUnitsAdd(rootOpts, u, cmd)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "spelled-out unit name (required)")
	cmd.Flags().StringVar(&dimension, "dimension", "", "dimension (required)")
	cmd.Flags().Float64Var(&factor, "factor", 0, "factor to the dimension's base unit (required)")
	cmd.Flags().Float64Var(&offset, "offset", 0, "affine offset to the base unit")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("dimension")
	_ = cmd.MarkFlagRequired("factor")

	return cmd
}

func runUnitsAdd(opts *RootOptions, u units.Unit, cmd *cobra.Command) error {
	f := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	s, err := newSession(cmd.Context(), opts)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.engine.RegisterCustomUnit(u); err != nil {
		return failure(f, err)
	}
	if s.persistent() {
		registered, lookupErr := s.engine.Registry().Lookup(u.Symbol)
		if lookupErr != nil {
			return WrapExitError(ExitCommandError, "reading registered unit", lookupErr)
		}
		if err := s.store.SaveCustomUnit(cmd.Context(), s.sheet.ID, registered); err != nil {
			return WrapExitError(ExitCommandError, "persisting unit", err)
		}
	}

	return f.Success(fmt.Sprintf("registered %s (%s)", u.Symbol, u.Dimension), map[string]any{
		"symbol":    u.Symbol,
		"dimension": string(u.Dimension),
		"factor":    u.Factor,
	})
}

func newUnitsRemoveCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remove <symbol>",
		Short: "Remove a custom unit",
		Long: `Remove a previously registered custom unit. Built-in units are not
removable.

Example:
  girder units remove furlong`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUnitsRemove(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runUnitsRemove(opts *RootOptions, symbol string, cmd *cobra.Command) error {
	f := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	s, err := newSession(cmd.Context(), opts)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.engine.RemoveCustomUnit(symbol); err != nil {
		return failure(f, err)
	}
	if s.persistent() {
		if err := s.store.DeleteCustomUnit(cmd.Context(), s.sheet.ID, symbol); err != nil {
			return WrapExitError(ExitCommandError, "removing persisted unit", err)
		}
	}

	return f.Success(fmt.Sprintf("removed %s", symbol), map[string]any{
		"symbol": symbol,
	})
}
