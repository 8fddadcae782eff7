package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// NewVarsCommand creates the vars command group.
func NewVarsCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vars",
		Short: "Inspect and manage stored variables",
	}

	cmd.AddCommand(newVarsListCommand(rootOpts))
	cmd.AddCommand(newVarsSetCommand(rootOpts))
	cmd.AddCommand(newVarsDeleteCommand(rootOpts))

	return cmd
}

func newVarsListCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored variables",
		Long: `List the worksheet's variables with their values and units.

Example:
  girder --db work.db --worksheet beam vars list`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVarsList(rootOpts, cmd)
		},
	}

	return cmd
}

func runVarsList(opts *RootOptions, cmd *cobra.Command) error {
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

	variables := s.engine.Store().Variables()

	var b strings.Builder
	data := make([]map[string]any, 0, len(variables))
	for _, v := range variables {
		rendered := s.engine.Formatter().Quantity(v.Value, v.Unit)
		fmt.Fprintf(&b, "%-12s %s", v.Name, rendered)
		if v.Description != "" {
			fmt.Fprintf(&b, "  # %s", v.Description)
		}
		b.WriteString("\n")
		data = append(data, map[string]any{
			"name":        v.Name,
			"formatted":   rendered,
			"unit":        v.Unit,
			"description": v.Description,
		})
	}

	return f.Success(strings.TrimRight(b.String(), "\n"), data)
}

func newVarsSetCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		unit        string
		description string
	)

	cmd := &cobra.Command{
		Use:   "set <name> <expression>",
		Short: "Declare or overwrite a variable",
		Long: `Declare a variable, or overwrite its value keeping its identity.
The value is an expression evaluated against existing symbols, so
complex and matrix values work.

Example:
  girder --db work.db vars set F 12.5 --unit kN --desc "applied load"
  girder --db work.db vars set K "[[1,2],[3,4]]"`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVarsSet(rootOpts, args[0], args[1], unit, description, cmd)
		},
	}

	cmd.Flags().StringVar(&unit, "unit", "", "unit symbol")
	cmd.Flags().StringVar(&description, "desc", "", "free-form description")

	return cmd
}

func runVarsSet(opts *RootOptions, name, expression, unit, description string, cmd *cobra.Command) error {
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

	res, err := s.engine.Evaluate(expression, nil)
	if err != nil {
		return failure(f, err)
	}
	// A unit tag on the expression wins unless the flag names one.
	if unit == "" {
		unit = res.Unit
	}

	v, err := s.engine.DeclareVariable(name, res.Value, unit, description, "session")
	if err != nil {
		return failure(f, err)
	}
	if s.persistent() {
		if err := s.store.SaveVariable(cmd.Context(), s.sheet.ID, v); err != nil {
			return WrapExitError(ExitCommandError, "persisting variable", err)
		}
	}

	rendered := s.engine.Formatter().Quantity(v.Value, v.Unit)
	return f.Success(fmt.Sprintf("%s = %s", name, rendered), map[string]any{
		"name":      name,
		"formatted": rendered,
		"unit":      v.Unit,
	})
}

func newVarsDeleteCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "delete <name>",
		Short:         "Delete a variable",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVarsDelete(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runVarsDelete(opts *RootOptions, name string, cmd *cobra.Command) error {
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

	if err := s.engine.DeleteVariable(name); err != nil {
		return failure(f, err)
	}
	if s.persistent() {
		if err := s.store.DeleteVariable(cmd.Context(), s.sheet.ID, name); err != nil {
			return WrapExitError(ExitCommandError, "removing persisted variable", err)
		}
	}

	return f.Success(fmt.Sprintf("deleted %s", name), map[string]any{
		"name": name,
	})
}
