package symbols

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/girderhq/girder/internal/numeric"
)

func TestDeclareVariable(t *testing.T) {
	s := NewStore()

	v, err := s.DeclareVariable("span", numeric.Number(12.5), "m", "beam span", "session")
	require.NoError(t, err)
	assert.Equal(t, "span", v.Name)
	assert.NotEmpty(t, v.ID)
	assert.False(t, v.CreatedAt.IsZero())

	got, ok := s.Variable("span")
	require.True(t, ok)
	assert.Equal(t, numeric.Number(12.5), got.Value)
	assert.Equal(t, "m", got.Unit)
}

func TestDeclareVariable_OverwriteKeepsIdentity(t *testing.T) {
	s := NewStore()

	first, err := s.DeclareVariable("load", numeric.Number(10), "kN", "", "session")
	require.NoError(t, err)

	second, err := s.DeclareVariable("load", numeric.Number(25), "kN", "", "session")
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.CreatedAt, second.CreatedAt)
	assert.Equal(t, numeric.Number(25), second.Value)
}

func TestDeclareVariable_RejectsConstantName(t *testing.T) {
	s := NewStore()

	_, err := s.DeclareVariable("pi", numeric.Number(3), "", "", "")
	require.Error(t, err)
	assert.True(t, IsInvalidIdentifier(err))
}

func TestDeclareVariable_RejectsBadGrammar(t *testing.T) {
	s := NewStore()

	for _, name := range []string{"1x", "", "a-b", "x y", "_lead", "Ω"} {
		_, err := s.DeclareVariable(name, numeric.Number(1), "", "", "")
		assert.True(t, IsInvalidIdentifier(err), "name %q", name)
	}

	// Underscores and digits after the first letter are fine.
	_, err := s.DeclareVariable("x_1", numeric.Number(1), "", "", "")
	assert.NoError(t, err)
}

func TestDeleteVariable(t *testing.T) {
	s := NewStore()

	_, err := s.DeclareVariable("tmp", numeric.Number(1), "", "", "")
	require.NoError(t, err)
	require.NoError(t, s.DeleteVariable("tmp"))

	_, ok := s.Variable("tmp")
	assert.False(t, ok)

	err = s.DeleteVariable("tmp")
	require.Error(t, err)
	var se *SymbolError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, ErrCodeUnknownSymbol, se.Code)
}

func TestDefineFunction(t *testing.T) {
	s := NewStore()

	f, err := s.DefineFunction("area", []string{"w", "h"}, "w * h", "rectangle area")
	require.NoError(t, err)
	assert.Equal(t, 2, f.Arity())
	assert.False(t, f.IsNative())

	got, ok := s.Function("area")
	require.True(t, ok)
	assert.Equal(t, "w * h", got.Body)
}

func TestDefineFunction_Validation(t *testing.T) {
	s := NewStore()

	_, err := s.DefineFunction("2fast", nil, "1", "")
	assert.True(t, IsInvalidIdentifier(err))

	_, err = s.DefineFunction("f", []string{"x", "2y"}, "x", "")
	assert.True(t, IsInvalidIdentifier(err))

	_, err = s.DefineFunction("f", []string{"x", "x"}, "x", "")
	assert.True(t, IsInvalidIdentifier(err))
}

func TestDefineFunction_NativeProtected(t *testing.T) {
	native := Function{
		Name:   "sin",
		Params: []string{"x"},
		Native: func(args []numeric.Value) (numeric.Value, error) { return args[0], nil },
	}
	s := NewStore(native)

	_, err := s.DefineFunction("sin", []string{"x"}, "x", "")
	assert.True(t, IsDuplicateDefinition(err))

	err = s.DeleteFunction("sin")
	assert.True(t, IsDuplicateDefinition(err))
}

func TestCheckArity(t *testing.T) {
	f := Function{Name: "f", Params: []string{"a", "b"}}

	require.NoError(t, f.CheckArity(2))

	err := f.CheckArity(3)
	require.Error(t, err)
	var se *SymbolError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, ErrCodeArityMismatch, se.Code)
}

func TestBuildContext_Layering(t *testing.T) {
	s := NewStore()
	_, err := s.DeclareVariable("x", numeric.Number(1), "m", "", "")
	require.NoError(t, err)

	ctx := s.BuildContext(map[string]Binding{
		"x": {Value: numeric.Number(9), Unit: "ft"},
		"y": {Value: numeric.Number(2)},
	})

	// Override shadows the stored variable.
	b, ok := ctx.Resolve("x")
	require.True(t, ok)
	assert.Equal(t, numeric.Number(9), b.Value)
	assert.Equal(t, "ft", b.Unit)

	// Constants are visible underneath.
	b, ok = ctx.Resolve("pi")
	require.True(t, ok)
	n, _ := numeric.AsNumber(b.Value)
	assert.InDelta(t, 3.14159265, n, 1e-8)

	_, ok = ctx.Resolve("z")
	assert.False(t, ok)
}

func TestBuildContext_IsSnapshot(t *testing.T) {
	s := NewStore()
	_, err := s.DeclareVariable("x", numeric.Number(1), "", "", "")
	require.NoError(t, err)

	ctx := s.BuildContext(nil)

	// Mutating the store after the build must not leak into the context.
	_, err = s.DeclareVariable("x", numeric.Number(99), "", "", "")
	require.NoError(t, err)

	b, ok := ctx.Resolve("x")
	require.True(t, ok)
	assert.Equal(t, numeric.Number(1), b.Value)
}

func TestContext_WithBindings(t *testing.T) {
	s := NewStore()
	_, err := s.DeclareVariable("x", numeric.Number(1), "", "", "")
	require.NoError(t, err)

	base := s.BuildContext(nil)
	derived := base.WithBindings(map[string]Binding{"x": {Value: numeric.Number(7)}})

	b, _ := derived.Resolve("x")
	assert.Equal(t, numeric.Number(7), b.Value)

	// Base context unchanged.
	b, _ = base.Resolve("x")
	assert.Equal(t, numeric.Number(1), b.Value)
}

func TestSnapshots_Sorted(t *testing.T) {
	s := NewStore()
	for _, name := range []string{"zeta", "alpha", "mid"} {
		_, err := s.DeclareVariable(name, numeric.Number(1), "", "", "")
		require.NoError(t, err)
	}

	vars := s.Variables()
	require.Len(t, vars, 3)
	assert.Equal(t, "alpha", vars[0].Name)
	assert.Equal(t, "zeta", vars[2].Name)

	consts := s.Constants()
	require.NotEmpty(t, consts)
	for i := 1; i < len(consts); i++ {
		assert.Less(t, consts[i-1].Name, consts[i].Name)
	}
}
