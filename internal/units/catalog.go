package units

// Built-in catalog. One base unit per dimension (Factor 1); every other
// factor converts to that base. Symbols are the conventional short
// forms and must stay globally unique.
var builtinUnits = []Unit{
	// length (base: meter)
	{Symbol: "m", Name: "meter", Dimension: Length, Factor: 1, Base: true},
	{Symbol: "km", Name: "kilometer", Dimension: Length, Factor: 1000},
	{Symbol: "cm", Name: "centimeter", Dimension: Length, Factor: 0.01},
	{Symbol: "mm", Name: "millimeter", Dimension: Length, Factor: 0.001},
	{Symbol: "in", Name: "inch", Dimension: Length, Factor: 0.0254},
	{Symbol: "ft", Name: "foot", Dimension: Length, Factor: 0.3048},
	{Symbol: "yd", Name: "yard", Dimension: Length, Factor: 0.9144},
	{Symbol: "mi", Name: "mile", Dimension: Length, Factor: 1609.344},

	// mass (base: kilogram)
	{Symbol: "kg", Name: "kilogram", Dimension: Mass, Factor: 1, Base: true},
	{Symbol: "g", Name: "gram", Dimension: Mass, Factor: 0.001},
	{Symbol: "mg", Name: "milligram", Dimension: Mass, Factor: 1e-6},
	{Symbol: "t", Name: "tonne", Dimension: Mass, Factor: 1000},
	{Symbol: "lb", Name: "pound", Dimension: Mass, Factor: 0.45359237},
	{Symbol: "oz", Name: "ounce", Dimension: Mass, Factor: 0.028349523125},

	// time (base: second)
	{Symbol: "s", Name: "second", Dimension: Time, Factor: 1, Base: true},
	{Symbol: "min", Name: "minute", Dimension: Time, Factor: 60},
	{Symbol: "h", Name: "hour", Dimension: Time, Factor: 3600},
	{Symbol: "d", Name: "day", Dimension: Time, Factor: 86400},
	{Symbol: "wk", Name: "week", Dimension: Time, Factor: 604800},
	{Symbol: "yr", Name: "year", Dimension: Time, Factor: 31557600},

	// temperature (base: kelvin; conversions use the formula table)
	{Symbol: "K", Name: "kelvin", Dimension: Temperature, Factor: 1, Base: true},
	{Symbol: "C", Name: "celsius", Dimension: Temperature, Factor: 1, Offset: AbsoluteZeroOffset},
	{Symbol: "F", Name: "fahrenheit", Dimension: Temperature, Factor: 5.0 / 9.0, Offset: 459.67 * 5.0 / 9.0},

	// electric current (base: ampere)
	{Symbol: "A", Name: "ampere", Dimension: Current, Factor: 1, Base: true},
	{Symbol: "mA", Name: "milliampere", Dimension: Current, Factor: 0.001},
	{Symbol: "kA", Name: "kiloampere", Dimension: Current, Factor: 1000},

	// amount of substance (base: mole)
	{Symbol: "mol", Name: "mole", Dimension: Amount, Factor: 1, Base: true},
	{Symbol: "mmol", Name: "millimole", Dimension: Amount, Factor: 0.001},

	// luminous intensity (base: candela)
	{Symbol: "cd", Name: "candela", Dimension: LuminousIntensity, Factor: 1, Base: true},

	// area (base: square meter)
	{Symbol: "m2", Name: "square meter", Dimension: Area, Factor: 1, Base: true},
	{Symbol: "km2", Name: "square kilometer", Dimension: Area, Factor: 1e6},
	{Symbol: "ha", Name: "hectare", Dimension: Area, Factor: 1e4},
	{Symbol: "acre", Name: "acre", Dimension: Area, Factor: 4046.8564224},
	{Symbol: "ft2", Name: "square foot", Dimension: Area, Factor: 0.09290304},

	// volume (base: cubic meter)
	{Symbol: "m3", Name: "cubic meter", Dimension: Volume, Factor: 1, Base: true},
	{Symbol: "L", Name: "liter", Dimension: Volume, Factor: 0.001},
	{Symbol: "mL", Name: "milliliter", Dimension: Volume, Factor: 1e-6},
	{Symbol: "gal", Name: "gallon", Dimension: Volume, Factor: 0.003785411784},
	{Symbol: "qt", Name: "quart", Dimension: Volume, Factor: 0.000946352946},

	// speed (base: meter per second)
	{Symbol: "mps", Name: "meter per second", Dimension: Speed, Factor: 1, Base: true},
	{Symbol: "kph", Name: "kilometer per hour", Dimension: Speed, Factor: 1.0 / 3.6},
	{Symbol: "mph", Name: "mile per hour", Dimension: Speed, Factor: 0.44704},
	{Symbol: "kn", Name: "knot", Dimension: Speed, Factor: 0.514444444444},

	// force (base: newton)
	{Symbol: "N", Name: "newton", Dimension: Force, Factor: 1, Base: true},
	{Symbol: "kN", Name: "kilonewton", Dimension: Force, Factor: 1000},
	{Symbol: "lbf", Name: "pound-force", Dimension: Force, Factor: 4.4482216152605},
	{Symbol: "kgf", Name: "kilogram-force", Dimension: Force, Factor: 9.80665},

	// pressure (base: pascal)
	{Symbol: "Pa", Name: "pascal", Dimension: Pressure, Factor: 1, Base: true},
	{Symbol: "kPa", Name: "kilopascal", Dimension: Pressure, Factor: 1000},
	{Symbol: "MPa", Name: "megapascal", Dimension: Pressure, Factor: 1e6},
	{Symbol: "bar", Name: "bar", Dimension: Pressure, Factor: 1e5},
	{Symbol: "atm", Name: "atmosphere", Dimension: Pressure, Factor: 101325},
	{Symbol: "psi", Name: "pound per square inch", Dimension: Pressure, Factor: 6894.757293168},

	// energy (base: joule)
	{Symbol: "J", Name: "joule", Dimension: Energy, Factor: 1, Base: true},
	{Symbol: "kJ", Name: "kilojoule", Dimension: Energy, Factor: 1000},
	{Symbol: "cal", Name: "calorie", Dimension: Energy, Factor: 4.184},
	{Symbol: "kcal", Name: "kilocalorie", Dimension: Energy, Factor: 4184},
	{Symbol: "Wh", Name: "watt hour", Dimension: Energy, Factor: 3600},
	{Symbol: "kWh", Name: "kilowatt hour", Dimension: Energy, Factor: 3.6e6},
	{Symbol: "eV", Name: "electron volt", Dimension: Energy, Factor: 1.602176634e-19},

	// power (base: watt)
	{Symbol: "W", Name: "watt", Dimension: Power, Factor: 1, Base: true},
	{Symbol: "kW", Name: "kilowatt", Dimension: Power, Factor: 1000},
	{Symbol: "MW", Name: "megawatt", Dimension: Power, Factor: 1e6},
	{Symbol: "hp", Name: "horsepower", Dimension: Power, Factor: 745.69987158227},

	// voltage (base: volt)
	{Symbol: "V", Name: "volt", Dimension: Voltage, Factor: 1, Base: true},
	{Symbol: "mV", Name: "millivolt", Dimension: Voltage, Factor: 0.001},
	{Symbol: "kV", Name: "kilovolt", Dimension: Voltage, Factor: 1000},

	// resistance (base: ohm)
	{Symbol: "ohm", Name: "ohm", Dimension: Resistance, Factor: 1, Base: true},
	{Symbol: "kohm", Name: "kiloohm", Dimension: Resistance, Factor: 1000},
	{Symbol: "Mohm", Name: "megaohm", Dimension: Resistance, Factor: 1e6},

	// frequency (base: hertz)
	{Symbol: "Hz", Name: "hertz", Dimension: Frequency, Factor: 1, Base: true},
	{Symbol: "kHz", Name: "kilohertz", Dimension: Frequency, Factor: 1000},
	{Symbol: "MHz", Name: "megahertz", Dimension: Frequency, Factor: 1e6},
	{Symbol: "GHz", Name: "gigahertz", Dimension: Frequency, Factor: 1e9},

	// angle (base: radian)
	{Symbol: "rad", Name: "radian", Dimension: Angle, Factor: 1, Base: true},
	{Symbol: "deg", Name: "degree", Dimension: Angle, Factor: 0.017453292519943295},
	{Symbol: "arcmin", Name: "arcminute", Dimension: Angle, Factor: 0.0002908882086657216},
	{Symbol: "arcsec", Name: "arcsecond", Dimension: Angle, Factor: 4.84813681109536e-6},

	// data (base: byte)
	{Symbol: "B", Name: "byte", Dimension: Data, Factor: 1, Base: true},
	{Symbol: "bit", Name: "bit", Dimension: Data, Factor: 0.125},
	{Symbol: "kB", Name: "kilobyte", Dimension: Data, Factor: 1e3},
	{Symbol: "MB", Name: "megabyte", Dimension: Data, Factor: 1e6},
	{Symbol: "GB", Name: "gigabyte", Dimension: Data, Factor: 1e9},
	{Symbol: "TB", Name: "terabyte", Dimension: Data, Factor: 1e12},
}

// NewDefaultRegistry creates a registry seeded with the built-in
// catalog. The catalog is validated at init, so registration cannot
// fail here.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	for _, u := range builtinUnits {
		if err := r.Register(u); err != nil {
			// Unreachable for a well-formed catalog; callers cannot
			// recover from a corrupt built-in table.
			panic("units: built-in catalog is invalid: " + err.Error())
		}
	}
	return r
}
