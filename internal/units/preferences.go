package units

import "sync"

// Preferences maps each dimension to the unit a user wants results
// presented in. Unset dimensions fall back to the registry's base unit.
//
// Preferences are consulted only by the explicit ToPreferred helper;
// Convert never applies them silently.
type Preferences struct {
	mu       sync.RWMutex
	registry *Registry
	bySymbol map[Dimension]string
}

// NewPreferences creates an empty preference set over a registry.
func NewPreferences(registry *Registry) *Preferences {
	return &Preferences{
		registry: registry,
		bySymbol: make(map[Dimension]string),
	}
}

// Set records the preferred unit for its dimension.
// Fails with UNKNOWN_UNIT if the symbol is not registered.
func (p *Preferences) Set(symbol string) error {
	u, err := p.registry.Lookup(symbol)
	if err != nil {
		return err
	}
	p.mu.Lock()
	p.bySymbol[u.Dimension] = u.Symbol
	p.mu.Unlock()
	return nil
}

// Preferred returns the preferred unit for a dimension, falling back to
// the dimension's base unit. The second return is false when the
// dimension has neither a preference nor a base unit.
func (p *Preferences) Preferred(d Dimension) (Unit, bool) {
	p.mu.RLock()
	symbol, ok := p.bySymbol[d]
	p.mu.RUnlock()

	if ok {
		if u, err := p.registry.Lookup(symbol); err == nil {
			return u, true
		}
		// Preference points at a unit that was since removed; fall back.
	}
	return p.registry.DefaultUnit(d)
}

// ToPreferred converts a quantity to its dimension's preferred unit.
// A quantity already in the preferred unit passes through with factor 1.
func (p *Preferences) ToPreferred(value float64, symbol string) (ConversionResult, error) {
	u, err := p.registry.Lookup(symbol)
	if err != nil {
		return ConversionResult{}, err
	}
	target, ok := p.Preferred(u.Dimension)
	if !ok {
		return ConversionResult{Value: value, Unit: symbol, Factor: 1}, nil
	}
	return p.registry.Convert(value, symbol, target.Symbol)
}

// Snapshot returns the explicit preference mapping (no base-unit
// fallbacks), for persistence by callers.
func (p *Preferences) Snapshot() map[Dimension]string {
	p.mu.RLock()
	defer p.mu.RUnlock()

	out := make(map[Dimension]string, len(p.bySymbol))
	for d, s := range p.bySymbol {
		out[d] = s
	}
	return out
}
