package symbols

import (
	"math"

	"github.com/girderhq/girder/internal/numeric"
)

// Constant is an immutable named value. Constants share the variable
// namespace: no variable may shadow a constant's name.
type Constant struct {
	Name        string
	Value       numeric.Value
	Unit        string
	Description string
}

// builtinConstants are seeded into every store. Values are CODATA 2018
// exact or recommended values.
var builtinConstants = []Constant{
	{Name: "pi", Value: numeric.Number(math.Pi), Description: "circle circumference to diameter ratio"},
	{Name: "e", Value: numeric.Number(math.E), Description: "Euler's number"},
	{Name: "g", Value: numeric.Number(9.80665), Unit: "mps", Description: "standard gravity (per second)"},
	{Name: "c", Value: numeric.Number(299792458), Unit: "mps", Description: "speed of light in vacuum"},
	{Name: "h", Value: numeric.Number(6.62607015e-34), Unit: "J", Description: "Planck constant (J s)"},
	{Name: "k_B", Value: numeric.Number(1.380649e-23), Unit: "J", Description: "Boltzmann constant (J/K)"},
	{Name: "N_A", Value: numeric.Number(6.02214076e23), Description: "Avogadro constant (1/mol)"},
	{Name: "R", Value: numeric.Number(8.31446261815324), Unit: "J", Description: "molar gas constant (J/(mol K))"},
	{Name: "epsilon_0", Value: numeric.Number(8.8541878128e-12), Description: "vacuum permittivity (F/m)"},
	{Name: "mu_0", Value: numeric.Number(1.25663706212e-6), Description: "vacuum permeability (N/A^2)"},
	{Name: "sigma", Value: numeric.Number(5.670374419e-8), Description: "Stefan-Boltzmann constant (W/(m^2 K^4))"},
}
