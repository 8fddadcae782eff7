package units

// Temperature conversions are affine, not multiplicative, so they never
// go through the generic factor/offset routing. The six directed pairs
// below are the complete table; fixed points (0 C = 273.15 K = 32 F)
// hold exactly within floating rounding.

const (
	// AbsoluteZeroOffset is the kelvin value of 0 degrees Celsius.
	AbsoluteZeroOffset = 273.15
)

type tempPair struct {
	from string
	to   string
}

var temperatureFormulas = map[tempPair]func(float64) float64{
	{"C", "K"}: func(v float64) float64 { return v + AbsoluteZeroOffset },
	{"K", "C"}: func(v float64) float64 { return v - AbsoluteZeroOffset },
	{"C", "F"}: func(v float64) float64 { return v*9/5 + 32 },
	{"F", "C"}: func(v float64) float64 { return (v - 32) * 5 / 9 },
	{"K", "F"}: func(v float64) float64 { return (v-AbsoluteZeroOffset)*9/5 + 32 },
	{"F", "K"}: func(v float64) float64 { return (v-32)*5/9 + AbsoluteZeroOffset },
}

// convertTemperature applies the formula table for a K/C/F pair.
// Identity pairs are handled by the caller; unknown temperature symbols
// (e.g. a custom temperature unit with no formula) are rejected rather
// than silently run through the linear path.
func convertTemperature(value float64, from, to string) (float64, error) {
	formula, ok := temperatureFormulas[tempPair{from: from, to: to}]
	if !ok {
		return 0, &UnitError{
			Code:    ErrCodeDimensionMismatch,
			Symbol:  from,
			Message: "no temperature formula for " + from + " to " + to,
		}
	}
	return formula(value), nil
}
