package units

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvert_Linear(t *testing.T) {
	r := NewDefaultRegistry()

	tests := []struct {
		value float64
		from  string
		to    string
		want  float64
	}{
		{1, "km", "m", 1000},
		{2500, "m", "km", 2.5},
		{1, "in", "cm", 2.54},
		{1, "mi", "km", 1.609344},
		{100, "kPa", "psi", 14.503773773020922},
		{1, "hp", "W", 745.69987158227},
		{90, "deg", "rad", 1.5707963267948966},
		{1, "kWh", "J", 3.6e6},
	}

	for _, tt := range tests {
		t.Run(tt.from+"_to_"+tt.to, func(t *testing.T) {
			got, err := r.Convert(tt.value, tt.from, tt.to)
			require.NoError(t, err)
			assert.InEpsilon(t, tt.want, got.Value, 1e-9)
			assert.Equal(t, tt.to, got.Unit)
			assert.False(t, got.NonLinear)
		})
	}
}

func TestConvert_Identity(t *testing.T) {
	r := NewDefaultRegistry()

	got, err := r.Convert(42.5, "kg", "kg")
	require.NoError(t, err)
	assert.Equal(t, 42.5, got.Value)
	assert.Equal(t, 1.0, got.Factor)
}

func TestConvert_ReportsFactor(t *testing.T) {
	r := NewDefaultRegistry()

	got, err := r.Convert(3, "km", "m")
	require.NoError(t, err)
	assert.InDelta(t, 1000, got.Factor, 1e-12)
	assert.Equal(t, "1000", got.FactorString())
}

func TestConvert_UnknownUnit(t *testing.T) {
	r := NewDefaultRegistry()

	_, err := r.Convert(1, "smoot", "m")
	assert.True(t, IsUnknownUnit(err))

	_, err = r.Convert(1, "m", "smoot")
	assert.True(t, IsUnknownUnit(err))
}

func TestConvert_DimensionMismatch(t *testing.T) {
	r := NewDefaultRegistry()

	_, err := r.Convert(1, "m", "kg")
	require.Error(t, err)
	assert.True(t, IsDimensionMismatch(err))

	var ue *UnitError
	require.ErrorAs(t, err, &ue)
	assert.Contains(t, ue.Message, "length")
	assert.Contains(t, ue.Message, "mass")
}

func TestConvert_TemperatureFixedPoints(t *testing.T) {
	r := NewDefaultRegistry()

	ck, err := r.Convert(0, "C", "K")
	require.NoError(t, err)
	assert.Equal(t, 273.15, ck.Value)
	assert.True(t, ck.NonLinear)
	assert.Equal(t, NonLinearFactor, ck.FactorString())

	fc, err := r.Convert(32, "F", "C")
	require.NoError(t, err)
	assert.Equal(t, 0.0, fc.Value)

	cf, err := r.Convert(100, "C", "F")
	require.NoError(t, err)
	assert.Equal(t, 212.0, cf.Value)

	kf, err := r.Convert(273.15, "K", "F")
	require.NoError(t, err)
	assert.InDelta(t, 32.0, kf.Value, 1e-10)

	fk, err := r.Convert(-40, "F", "C")
	require.NoError(t, err)
	assert.InDelta(t, -40.0, fk.Value, 1e-10)
}

// Round-trip property: for same-dimension non-temperature units,
// converting there and back recovers the value within float tolerance.
func TestConvert_RoundTrip(t *testing.T) {
	r := NewDefaultRegistry()

	values := []float64{1, -2.5, 1e-6, 1e9, 0.1234567}
	pairs := [][2]string{
		{"m", "ft"}, {"kg", "lb"}, {"s", "h"}, {"Pa", "atm"},
		{"J", "cal"}, {"W", "hp"}, {"rad", "arcsec"}, {"B", "bit"},
	}

	for _, p := range pairs {
		for _, v := range values {
			there, err := r.Convert(v, p[0], p[1])
			require.NoError(t, err)
			back, err := r.Convert(there.Value, p[1], p[0])
			require.NoError(t, err)
			assert.InEpsilon(t, v, back.Value, 1e-10, "%s<->%s value %v", p[0], p[1], v)
		}
	}
}

func TestPreferences(t *testing.T) {
	r := NewDefaultRegistry()
	p := NewPreferences(r)

	// Unset dimension falls back to base.
	u, ok := p.Preferred(Length)
	require.True(t, ok)
	assert.Equal(t, "m", u.Symbol)

	require.NoError(t, p.Set("mm"))
	u, ok = p.Preferred(Length)
	require.True(t, ok)
	assert.Equal(t, "mm", u.Symbol)

	res, err := p.ToPreferred(2.5, "m")
	require.NoError(t, err)
	assert.InDelta(t, 2500, res.Value, 1e-9)
	assert.Equal(t, "mm", res.Unit)

	assert.True(t, IsUnknownUnit(p.Set("smoot")))
	assert.Equal(t, map[Dimension]string{Length: "mm"}, p.Snapshot())
}
