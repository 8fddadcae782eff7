// Package format renders engine results under a configurable precision
// policy: significant digits, decimal places, a zero-clamp tolerance,
// and one of four output notations.
package format

import (
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/girderhq/girder/internal/numeric"
)

// OutputFormat selects the rendering notation.
type OutputFormat string

const (
	// Scientific renders d.ddde±dd.
	Scientific OutputFormat = "scientific"

	// Engineering is scientific with the exponent snapped to a
	// multiple of three.
	Engineering OutputFormat = "engineering"

	// Fixed renders a grouped decimal with a fixed number of places.
	Fixed OutputFormat = "fixed"

	// Auto picks fixed-style for moderate magnitudes and scientific
	// otherwise.
	Auto OutputFormat = "auto"
)

// Policy is the caller-supplied precision policy.
type Policy struct {
	// SignificantDigits bounds the digits shown in scientific,
	// engineering, and auto notations.
	SignificantDigits int

	// DecimalPlaces is the scale used by the fixed notation.
	DecimalPlaces int

	// Tolerance clamps near-zero magnitudes to an exact "0".
	Tolerance float64

	// OutputFormat selects the notation.
	OutputFormat OutputFormat
}

// DefaultPolicy returns the policy used when a caller supplies none.
func DefaultPolicy() Policy {
	return Policy{
		SignificantDigits: 6,
		DecimalPlaces:     4,
		Tolerance:         1e-12,
		OutputFormat:      Auto,
	}
}

func (p Policy) withDefaults() Policy {
	if p.SignificantDigits <= 0 {
		p.SignificantDigits = 6
	}
	if p.DecimalPlaces < 0 {
		p.DecimalPlaces = 4
	}
	if p.OutputFormat == "" {
		p.OutputFormat = Auto
	}
	return p
}

// Formatter renders numbers, complex values, matrices, and quantities
// under one policy. Fixed notation is locale-aware (digit grouping).
type Formatter struct {
	policy  Policy
	printer *message.Printer
}

// New creates a formatter for a policy.
func New(policy Policy) *Formatter {
	return &Formatter{
		policy:  policy.withDefaults(),
		printer: message.NewPrinter(language.English),
	}
}

// Policy returns the formatter's (defaulted) policy.
func (f *Formatter) Policy() Policy { return f.policy }

// Number renders a real scalar under the policy.
func (f *Formatter) Number(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Inf"
	case math.IsInf(v, -1):
		return "-Inf"
	case v == 0 || math.Abs(v) < f.policy.Tolerance:
		return "0"
	}

	switch f.policy.OutputFormat {
	case Scientific:
		return strconv.FormatFloat(v, 'e', f.policy.SignificantDigits-1, 64)
	case Engineering:
		return f.engineering(v)
	case Fixed:
		return f.printer.Sprint(number.Decimal(v,
			number.Scale(f.policy.DecimalPlaces)))
	default: // Auto
		mag := math.Abs(v)
		if mag < 1e-4 || mag >= 1e7 {
			return strconv.FormatFloat(v, 'e', f.policy.SignificantDigits-1, 64)
		}
		return strconv.FormatFloat(v, 'g', f.policy.SignificantDigits, 64)
	}
}

// engineering snaps the exponent to a multiple of three so the
// mantissa lands in [1, 1000).
func (f *Formatter) engineering(v float64) string {
	exp := math.Floor(math.Log10(math.Abs(v)))
	eng := 3 * math.Floor(exp/3)
	mantissa := v / math.Pow(10, eng)
	mant := strconv.FormatFloat(mantissa, 'g', f.policy.SignificantDigits, 64)
	return mant + "e" + formatExponent(int(eng))
}

func formatExponent(e int) string {
	if e >= 0 {
		return "+" + strconv.Itoa(e)
	}
	return strconv.Itoa(e)
}

// Complex renders a complex scalar as "a+bi", with each part under the
// policy.
func (f *Formatter) Complex(c numeric.Complex) string {
	if c.Im == 0 {
		return f.Number(c.Re)
	}
	im := f.Number(math.Abs(c.Im)) + "i"
	sign := "+"
	if c.Im < 0 {
		sign = "-"
	}
	if c.Re == 0 {
		if sign == "-" {
			return "-" + im
		}
		return im
	}
	return f.Number(c.Re) + sign + im
}

// Matrix renders a matrix in row-list notation: "[[1, 2], [3, 4]]".
func (f *Formatter) Matrix(m numeric.Matrix) string {
	var b strings.Builder
	b.WriteByte('[')
	for i, row := range m.Data {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteByte('[')
		for j, cell := range row {
			if j > 0 {
				b.WriteString(", ")
			}
			b.WriteString(f.Number(cell))
		}
		b.WriteByte(']')
	}
	b.WriteByte(']')
	return b.String()
}

// Value dispatches on the value's shape.
func (f *Formatter) Value(v numeric.Value) string {
	switch val := v.(type) {
	case numeric.Number:
		return f.Number(float64(val))
	case numeric.Complex:
		return f.Complex(val)
	case numeric.Matrix:
		return f.Matrix(val)
	default:
		return ""
	}
}

// Quantity renders a value with its unit symbol appended.
func (f *Formatter) Quantity(v numeric.Value, unit string) string {
	rendered := f.Value(v)
	if unit == "" {
		return rendered
	}
	return rendered + " " + unit
}
