package format

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/girderhq/girder/internal/numeric"
)

func TestNumber_Auto(t *testing.T) {
	f := New(DefaultPolicy())

	assert.Equal(t, "42", f.Number(42))
	assert.Equal(t, "2.5", f.Number(2.5))
	assert.Equal(t, "0", f.Number(0))
	assert.Equal(t, "3.14159", f.Number(3.14159265358979))
	// Out of the moderate range: scientific.
	assert.Equal(t, "1.23000e+08", f.Number(1.23e8))
	assert.Equal(t, "5.00000e-05", f.Number(5e-5))
}

func TestNumber_Scientific(t *testing.T) {
	p := DefaultPolicy()
	p.OutputFormat = Scientific
	p.SignificantDigits = 4
	f := New(p)

	assert.Equal(t, "1.235e+04", f.Number(12345))
	assert.Equal(t, "-2.500e+00", f.Number(-2.5))
}

func TestNumber_Engineering(t *testing.T) {
	p := DefaultPolicy()
	p.OutputFormat = Engineering
	f := New(p)

	assert.Equal(t, "12.345e+3", f.Number(12345))
	assert.Equal(t, "1.5e+0", f.Number(1.5))
	assert.Equal(t, "470e-9", f.Number(4.7e-7))
	assert.Equal(t, "-12.345e+3", f.Number(-12345))
}

func TestNumber_Fixed(t *testing.T) {
	p := DefaultPolicy()
	p.OutputFormat = Fixed
	p.DecimalPlaces = 2
	f := New(p)

	assert.Equal(t, "1,234.57", f.Number(1234.5678))
	assert.Equal(t, "0.50", f.Number(0.5))
}

func TestNumber_ToleranceClamp(t *testing.T) {
	p := DefaultPolicy()
	p.Tolerance = 1e-9
	f := New(p)

	assert.Equal(t, "0", f.Number(1e-10))
	assert.NotEqual(t, "0", f.Number(1e-8))
}

func TestNumber_NonFinite(t *testing.T) {
	f := New(DefaultPolicy())

	assert.Equal(t, "NaN", f.Number(math.NaN()))
	assert.Equal(t, "Inf", f.Number(math.Inf(1)))
	assert.Equal(t, "-Inf", f.Number(math.Inf(-1)))
}

func TestComplex(t *testing.T) {
	f := New(DefaultPolicy())

	assert.Equal(t, "3+4i", f.Complex(numeric.Complex{Re: 3, Im: 4}))
	assert.Equal(t, "2-5i", f.Complex(numeric.Complex{Re: 2, Im: -5}))
	assert.Equal(t, "4i", f.Complex(numeric.Complex{Im: 4}))
	assert.Equal(t, "-4i", f.Complex(numeric.Complex{Im: -4}))
	assert.Equal(t, "7", f.Complex(numeric.Complex{Re: 7}))
}

func TestMatrix(t *testing.T) {
	f := New(DefaultPolicy())

	m, err := numeric.NewMatrix([][]float64{{1, 2}, {3, 4.5}})
	require.NoError(t, err)
	assert.Equal(t, "[[1, 2], [3, 4.5]]", f.Matrix(m))
}

func TestQuantity(t *testing.T) {
	f := New(DefaultPolicy())

	assert.Equal(t, "2.5 kPa", f.Quantity(numeric.Number(2.5), "kPa"))
	assert.Equal(t, "2.5", f.Quantity(numeric.Number(2.5), ""))
}

func TestValue_Dispatch(t *testing.T) {
	f := New(DefaultPolicy())

	assert.Equal(t, "1.5", f.Value(numeric.Number(1.5)))
	assert.Equal(t, "1+2i", f.Value(numeric.Complex{Re: 1, Im: 2}))
}

func TestPolicy_Defaulting(t *testing.T) {
	f := New(Policy{})
	p := f.Policy()
	assert.Equal(t, 6, p.SignificantDigits)
	assert.Equal(t, Auto, p.OutputFormat)
}
