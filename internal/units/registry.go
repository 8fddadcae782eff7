package units

import (
	"fmt"
	"sort"
	"strconv"
	"sync"
)

// Registry is the unit and dimension catalog.
//
// Construct with NewRegistry (empty) or NewDefaultRegistry (seeded with
// the built-in catalog). All methods are safe for concurrent use;
// mutation is serialized behind an RWMutex.
type Registry struct {
	mu    sync.RWMutex
	units map[string]Unit      // symbol -> unit
	base  map[Dimension]string // dimension -> base unit symbol
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		units: make(map[string]Unit),
		base:  make(map[Dimension]string),
	}
}

// Register adds a unit to the catalog.
//
// Fails with DUPLICATE_UNIT if the symbol is already registered (symbols
// are unique across the whole registry, regardless of dimension) and
// with DUPLICATE_BASE if the unit claims Base for a dimension that
// already has a base unit.
func (r *Registry) Register(u Unit) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.registerLocked(u)
}

func (r *Registry) registerLocked(u Unit) error {
	if _, exists := r.units[u.Symbol]; exists {
		return &UnitError{
			Code:    ErrCodeDuplicateUnit,
			Symbol:  u.Symbol,
			Message: "unit symbol is already registered",
		}
	}
	if u.Base {
		if existing, ok := r.base[u.Dimension]; ok {
			return &UnitError{
				Code:    ErrCodeDuplicateBase,
				Symbol:  u.Symbol,
				Message: fmt.Sprintf("dimension %s already has base unit %s", u.Dimension, existing),
			}
		}
		r.base[u.Dimension] = u.Symbol
	}
	r.units[u.Symbol] = u
	return nil
}

// RegisterCustom adds a caller-defined, removable unit.
// Same uniqueness invariants as Register.
func (r *Registry) RegisterCustom(u Unit) error {
	u.Custom = true
	return r.Register(u)
}

// RemoveCustom removes a caller-defined unit.
// Fails with UNKNOWN_UNIT if the symbol is not registered and with
// NOT_REMOVABLE if the unit is built-in.
func (r *Registry) RemoveCustom(symbol string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.units[symbol]
	if !ok {
		return newUnknownUnitError(symbol)
	}
	if !u.Custom {
		return &UnitError{
			Code:    ErrCodeNotRemovable,
			Symbol:  symbol,
			Message: "built-in units cannot be removed",
		}
	}
	delete(r.units, symbol)
	if u.Base && r.base[u.Dimension] == symbol {
		delete(r.base, u.Dimension)
	}
	return nil
}

// IsValid reports whether a unit symbol is registered.
func (r *Registry) IsValid(symbol string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.units[symbol]
	return ok
}

// Lookup returns the unit for a symbol.
// Fails with UNKNOWN_UNIT if the symbol is not registered.
func (r *Registry) Lookup(symbol string) (Unit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.units[symbol]
	if !ok {
		return Unit{}, newUnknownUnitError(symbol)
	}
	return u, nil
}

// Convert converts value from one unit to another.
//
// Identity conversions return the value unchanged with factor 1.
// Temperature conversions use the fixed formula table (see
// temperature.go) and report NonLinear. Everything else routes through
// the dimension's base unit with the linear factor/offset mapping.
func (r *Registry) Convert(value float64, fromSymbol, toSymbol string) (ConversionResult, error) {
	r.mu.RLock()
	from, okFrom := r.units[fromSymbol]
	to, okTo := r.units[toSymbol]
	r.mu.RUnlock()

	if !okFrom {
		return ConversionResult{}, newUnknownUnitError(fromSymbol)
	}
	if !okTo {
		return ConversionResult{}, newUnknownUnitError(toSymbol)
	}
	if from.Dimension != to.Dimension {
		return ConversionResult{}, newDimensionMismatchError(from, to)
	}
	if from.Symbol == to.Symbol {
		return ConversionResult{Value: value, Unit: to.Symbol, Factor: 1}, nil
	}

	if from.Dimension == Temperature {
		converted, err := convertTemperature(value, from.Symbol, to.Symbol)
		if err != nil {
			return ConversionResult{}, err
		}
		return ConversionResult{Value: converted, Unit: to.Symbol, NonLinear: true}, nil
	}

	base := value*from.Factor + from.Offset
	converted := (base - to.Offset) / to.Factor
	return ConversionResult{
		Value:  converted,
		Unit:   to.Symbol,
		Factor: from.Factor / to.Factor,
	}, nil
}

// Compatible returns the units sharing a symbol's dimension, sorted by
// name and excluding the unit itself.
// Fails with UNKNOWN_UNIT if the symbol is not registered.
func (r *Registry) Compatible(symbol string) ([]Unit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.units[symbol]
	if !ok {
		return nil, newUnknownUnitError(symbol)
	}

	var out []Unit
	for _, candidate := range r.units {
		if candidate.Dimension == u.Dimension && candidate.Symbol != u.Symbol {
			out = append(out, candidate)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// DefaultUnit returns the base unit for a dimension.
// The second return is false when the dimension has no registered base.
func (r *Registry) DefaultUnit(d Dimension) (Unit, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	symbol, ok := r.base[d]
	if !ok {
		return Unit{}, false
	}
	return r.units[symbol], true
}

// Dimensions returns every dimension with at least one registered unit,
// sorted for stable enumeration.
func (r *Registry) Dimensions() []Dimension {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[Dimension]bool)
	for _, u := range r.units {
		seen[u.Dimension] = true
	}
	out := make([]Dimension, 0, len(seen))
	for d := range seen {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Units returns a snapshot of the whole catalog sorted by symbol.
func (r *Registry) Units() []Unit {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Unit, 0, len(r.units))
	for _, u := range r.units {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Symbol < out[j].Symbol })
	return out
}

func formatFactor(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
