package units

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister_DuplicateSymbol(t *testing.T) {
	r := NewDefaultRegistry()

	err := r.Register(Unit{Symbol: "m", Name: "other meter", Dimension: Length, Factor: 2})
	require.Error(t, err)

	var ue *UnitError
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, ErrCodeDuplicateUnit, ue.Code)
	assert.Equal(t, "m", ue.Symbol)
}

func TestRegister_DuplicateSymbolAcrossDimensions(t *testing.T) {
	r := NewDefaultRegistry()

	// Symbols are unique registry-wide, even for a different dimension.
	err := r.Register(Unit{Symbol: "ft", Name: "fortnight", Dimension: Time, Factor: 1209600})
	require.Error(t, err)
	var ue *UnitError
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, ErrCodeDuplicateUnit, ue.Code)
}

func TestRegister_SecondBaseRejected(t *testing.T) {
	r := NewDefaultRegistry()

	err := r.Register(Unit{Symbol: "cubit", Name: "cubit", Dimension: Length, Factor: 0.4572, Base: true})
	require.Error(t, err)
	var ue *UnitError
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, ErrCodeDuplicateBase, ue.Code)
}

func TestIsValid(t *testing.T) {
	r := NewDefaultRegistry()
	assert.True(t, r.IsValid("kPa"))
	assert.False(t, r.IsValid("furlong"))
}

func TestDefaultUnit(t *testing.T) {
	r := NewDefaultRegistry()

	base, ok := r.DefaultUnit(Pressure)
	require.True(t, ok)
	assert.Equal(t, "Pa", base.Symbol)
	assert.True(t, base.Base)

	_, ok = r.DefaultUnit(Dimension("flavor"))
	assert.False(t, ok)
}

func TestCompatible_SortedAndExcludesSelf(t *testing.T) {
	r := NewDefaultRegistry()

	got, err := r.Compatible("m")
	require.NoError(t, err)
	require.NotEmpty(t, got)

	for i, u := range got {
		assert.Equal(t, Length, u.Dimension)
		assert.NotEqual(t, "m", u.Symbol)
		if i > 0 {
			assert.LessOrEqual(t, got[i-1].Name, u.Name)
		}
	}
}

func TestCompatible_UnknownUnit(t *testing.T) {
	r := NewDefaultRegistry()
	_, err := r.Compatible("smoot")
	assert.True(t, IsUnknownUnit(err))
}

func TestRegisterCustom_AndRemove(t *testing.T) {
	r := NewDefaultRegistry()

	err := r.RegisterCustom(Unit{Symbol: "nmi", Name: "nautical mile", Dimension: Length, Factor: 1852})
	require.NoError(t, err)

	res, err := r.Convert(1, "nmi", "km")
	require.NoError(t, err)
	assert.InDelta(t, 1.852, res.Value, 1e-12)

	require.NoError(t, r.RemoveCustom("nmi"))
	assert.False(t, r.IsValid("nmi"))
}

func TestRemoveCustom_BuiltinRefused(t *testing.T) {
	r := NewDefaultRegistry()

	err := r.RemoveCustom("m")
	require.Error(t, err)
	var ue *UnitError
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, ErrCodeNotRemovable, ue.Code)

	err = r.RemoveCustom("smoot")
	assert.True(t, IsUnknownUnit(err))
}

func TestBuiltinCatalog_OneBasePerDimension(t *testing.T) {
	r := NewDefaultRegistry()

	bases := make(map[Dimension]int)
	for _, u := range r.Units() {
		if u.Base {
			bases[u.Dimension]++
		}
	}
	for _, d := range r.Dimensions() {
		assert.Equal(t, 1, bases[d], "dimension %s", d)
	}
}
