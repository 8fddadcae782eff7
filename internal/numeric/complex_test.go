package numeric

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseComplex_Forms(t *testing.T) {
	tests := []struct {
		input string
		want  Complex
	}{
		{"3+4i", Complex{Re: 3, Im: 4}},
		{"2-5j", Complex{Re: 2, Im: -5}},
		{"i", Complex{Im: 1}},
		{"-i", Complex{Im: -1}},
		{"+i", Complex{Im: 1}},
		{"4i", Complex{Im: 4}},
		{"-2.5j", Complex{Im: -2.5}},
		{"7", Complex{Re: 7}},
		{"-1e3", Complex{Re: -1000}},
		{"1.5e-2+2i", Complex{Re: 0.015, Im: 2}},
		{" 3 + 4i ", Complex{Re: 3, Im: 4}},
		{"2 - 5 j", Complex{Re: 2, Im: -5}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseComplex(tt.input)
			require.NoError(t, err)
			assert.InDelta(t, tt.want.Re, got.Re, 1e-15)
			assert.InDelta(t, tt.want.Im, got.Im, 1e-15)
		})
	}
}

func TestParseComplex_Malformed(t *testing.T) {
	for _, input := range []string{"", "abc", "2i+3", "ii", "3+", "i4"} {
		t.Run(input, func(t *testing.T) {
			_, err := ParseComplex(input)
			require.Error(t, err)
			var ke *KernelError
			require.ErrorAs(t, err, &ke)
			assert.Equal(t, ErrCodeMalformedComplex, ke.Code)
		})
	}
}

func TestComplexArithmetic(t *testing.T) {
	a := Complex{Re: 3, Im: 4}
	b := Complex{Re: 1, Im: -2}

	sum := AddComplex(a, b)
	assert.Equal(t, Complex{Re: 4, Im: 2}, sum)

	prod := MulComplex(a, b)
	// (3+4i)(1-2i) = 3 - 6i + 4i + 8 = 11 - 2i
	assert.Equal(t, Complex{Re: 11, Im: -2}, prod)

	quot, err := DivComplex(a, b)
	require.NoError(t, err)
	// Multiply back should recover a.
	back := MulComplex(quot, b)
	assert.InDelta(t, a.Re, back.Re, 1e-12)
	assert.InDelta(t, a.Im, back.Im, 1e-12)
}

func TestDivComplex_ByZero(t *testing.T) {
	_, err := DivComplex(Complex{Re: 1}, Complex{})
	require.Error(t, err)
	assert.True(t, IsDivisionByZero(err))
}

func TestComplexMagnitudePhase(t *testing.T) {
	c := Complex{Re: 3, Im: 4}
	assert.InDelta(t, 5.0, Abs(c), 1e-15)
	assert.InDelta(t, math.Atan2(4, 3), Phase(c), 1e-15)
	assert.Equal(t, Complex{Re: 3, Im: -4}, Conj(c))
}

func TestComplexString(t *testing.T) {
	assert.Equal(t, "3+4i", Complex{Re: 3, Im: 4}.String())
	assert.Equal(t, "2-5i", Complex{Re: 2, Im: -5}.String())
	assert.Equal(t, "i", Complex{Im: 1}.String())
	assert.Equal(t, "-i", Complex{Im: -1}.String())
	assert.Equal(t, "7", Complex{Re: 7}.String())
}
