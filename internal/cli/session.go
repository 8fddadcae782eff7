package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/girderhq/girder/internal/engine"
	"github.com/girderhq/girder/internal/format"
	"github.com/girderhq/girder/internal/numeric"
	"github.com/girderhq/girder/internal/store"
	"github.com/girderhq/girder/internal/units"
)

// session is the per-invocation engine assembly: a fresh engine,
// optionally hydrated from a CUE profile and a persisted worksheet.
type session struct {
	engine *engine.Engine
	store  *store.Store // nil when persistence is disabled
	sheet  store.Worksheet
}

// newSession builds a session from the global flags. The caller must
// Close it.
func newSession(ctx context.Context, opts *RootOptions) (*session, error) {
	logLevel := slog.LevelWarn
	if opts.Verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))

	var profile *Profile
	if opts.Profile != "" {
		p, err := LoadProfile(opts.Profile)
		if err != nil {
			return nil, WrapExitError(ExitCommandError, "loading profile", err)
		}
		profile = p
	}

	engOpts := []engine.Option{engine.WithLogger(logger)}
	if profile != nil && profile.Precision != nil {
		engOpts = append(engOpts, engine.WithPolicy(format.Policy{
			SignificantDigits: profile.Precision.SignificantDigits,
			DecimalPlaces:     profile.Precision.DecimalPlaces,
			OutputFormat:      format.OutputFormat(profile.Precision.Format),
		}))
	}
	eng := engine.NewDefault(engOpts...)

	s := &session{engine: eng}
	if profile != nil {
		if err := s.applyProfile(profile); err != nil {
			return nil, WrapExitError(ExitCommandError, "applying profile", err)
		}
	}

	if opts.Database != "" {
		st, err := store.Open(opts.Database)
		if err != nil {
			return nil, WrapExitError(ExitCommandError, "opening database", err)
		}
		name := opts.Worksheet
		if name == "" {
			name = "default"
		}
		sheet, err := st.CreateWorksheet(ctx, name, "")
		if err != nil {
			st.Close()
			return nil, WrapExitError(ExitCommandError, "opening worksheet", err)
		}
		s.store = st
		s.sheet = sheet
		if err := s.hydrate(ctx); err != nil {
			st.Close()
			return nil, WrapExitError(ExitCommandError, "restoring worksheet", err)
		}
	}

	return s, nil
}

func (s *session) Close() error {
	if s.store == nil {
		return nil
	}
	return s.store.Close()
}

// applyProfile registers profile units, variables, and preferences
// into the engine.
func (s *session) applyProfile(p *Profile) error {
	for _, u := range p.Units {
		err := s.engine.RegisterCustomUnit(units.Unit{
			Symbol:    u.Symbol,
			Name:      u.Name,
			Dimension: units.Dimension(u.Dimension),
			Factor:    u.Factor,
			Offset:    u.Offset,
		})
		if err != nil {
			return fmt.Errorf("unit %s: %w", u.Symbol, err)
		}
	}
	for name, v := range p.Variables {
		if _, err := s.engine.DeclareVariable(name, numeric.Number(v.Value), v.Unit, v.Description, "profile"); err != nil {
			return fmt.Errorf("variable %s: %w", name, err)
		}
	}
	for _, symbol := range p.Preferences {
		if err := s.engine.Preferences().Set(symbol); err != nil {
			return fmt.Errorf("preference %s: %w", symbol, err)
		}
	}
	return nil
}

// hydrate loads the worksheet's custom units and variables into the
// engine. Profile declarations load first, so worksheet state wins.
func (s *session) hydrate(ctx context.Context) error {
	customUnits, err := s.store.CustomUnits(ctx, s.sheet.ID)
	if err != nil {
		return err
	}
	for _, u := range customUnits {
		if err := s.engine.RegisterCustomUnit(u); err != nil {
			// A profile may already have registered the same symbol.
			if !units.IsDuplicate(err) {
				return fmt.Errorf("unit %s: %w", u.Symbol, err)
			}
		}
	}

	variables, err := s.store.Variables(ctx, s.sheet.ID)
	if err != nil {
		return err
	}
	for _, v := range variables {
		if _, err := s.engine.DeclareVariable(v.Name, v.Value, v.Unit, v.Description, v.Scope); err != nil {
			return fmt.Errorf("variable %s: %w", v.Name, err)
		}
	}
	return nil
}

// persistent reports whether a worksheet store is attached.
func (s *session) persistent() bool {
	return s.store != nil
}

// recordCalculation appends to the worksheet history when persistence
// is active. History failures are non-fatal for the calculation.
func (s *session) recordCalculation(ctx context.Context, expression, result, unit string) {
	if s.store == nil {
		return
	}
	if _, err := s.store.AppendCalculation(ctx, s.sheet.ID, expression, result, unit); err != nil {
		slog.Warn("failed to record calculation", "error", err)
	}
}
