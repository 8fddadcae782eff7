package units

// Dimension is the logical physical category of a unit (length, mass,
// time, ...). Dimensions are opaque tags: equality is identity
// comparison, and no exponent algebra is performed over them.
type Dimension string

// Built-in dimensions. RegisterCustom may introduce units for any of
// these; new dimensions come into existence the first time a unit is
// registered for them.
const (
	Length            Dimension = "length"
	Mass              Dimension = "mass"
	Time              Dimension = "time"
	Temperature       Dimension = "temperature"
	Current           Dimension = "current"
	Amount            Dimension = "amount"
	LuminousIntensity Dimension = "luminous_intensity"
	Area              Dimension = "area"
	Volume            Dimension = "volume"
	Speed             Dimension = "speed"
	Force             Dimension = "force"
	Pressure          Dimension = "pressure"
	Energy            Dimension = "energy"
	Power             Dimension = "power"
	Voltage           Dimension = "voltage"
	Resistance        Dimension = "resistance"
	Frequency         Dimension = "frequency"
	Angle             Dimension = "angle"
	Data              Dimension = "data"
)

// Unit describes a single unit of measure.
//
// Factor and Offset define the linear mapping to the dimension's base
// unit: base = value*Factor + Offset. Offset is zero for everything but
// temperature units, and temperature conversions never use the generic
// linear formula (see temperature.go).
type Unit struct {
	// Symbol is the globally unique short form ("m", "kPa").
	Symbol string

	// Name is the spelled-out form ("meter", "kilopascal").
	Name string

	// Dimension is the physical category this unit measures.
	Dimension Dimension

	// Factor converts a value in this unit to the base unit.
	Factor float64

	// Offset is the affine shift to the base unit (temperature only).
	Offset float64

	// Base marks the dimension's canonical unit (Factor 1, Offset 0).
	Base bool

	// Custom marks caller-registered units, which are removable.
	Custom bool
}

// NonLinearFactor is the Factor sentinel in a ConversionResult whose
// conversion went through a non-linear (temperature) formula.
const NonLinearFactor = "non-linear"

// ConversionResult is the outcome of a unit conversion.
type ConversionResult struct {
	// Value is the converted quantity, expressed in Unit.
	Value float64

	// Unit is the target unit symbol.
	Unit string

	// Factor is the multiplicative ratio applied, when the conversion
	// was linear. Meaningless when NonLinear is true.
	Factor float64

	// NonLinear is true when a temperature formula was used and no
	// single ratio describes the conversion.
	NonLinear bool
}

// FactorString renders the applied factor, or the non-linear sentinel.
func (r ConversionResult) FactorString() string {
	if r.NonLinear {
		return NonLinearFactor
	}
	return formatFactor(r.Factor)
}
