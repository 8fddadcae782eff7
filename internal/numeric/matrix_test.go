package numeric

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mat(t *testing.T, data [][]float64) Matrix {
	t.Helper()
	m, err := NewMatrix(data)
	require.NoError(t, err)
	return m
}

func TestNewMatrix_RejectsRagged(t *testing.T) {
	_, err := NewMatrix([][]float64{{1, 2}, {3}})
	require.Error(t, err)
	assert.True(t, IsShapeError(err))
}

func TestNewMatrix_RejectsEmpty(t *testing.T) {
	_, err := NewMatrix(nil)
	require.Error(t, err)

	_, err = NewMatrix([][]float64{{}})
	require.Error(t, err)
}

func TestMulMatrix(t *testing.T) {
	a := mat(t, [][]float64{{1, 2, 3}, {4, 5, 6}})
	b := mat(t, [][]float64{{7, 8}, {9, 10}, {11, 12}})

	got, err := MulMatrix(a, b)
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{58, 64}, {139, 154}}, got.Data)
}

func TestMulMatrix_ShapeMismatch(t *testing.T) {
	a := mat(t, [][]float64{{1, 2, 3}, {4, 5, 6}}) // 2x3
	b := mat(t, [][]float64{{1, 2}, {3, 4}})       // 2x2

	_, err := MulMatrix(a, b)
	require.Error(t, err)

	var ke *KernelError
	require.ErrorAs(t, err, &ke)
	assert.Equal(t, ErrCodeMatrixDimensionMismatch, ke.Code)
	assert.Contains(t, ke.Message, "2x3")
	assert.Contains(t, ke.Message, "2x2")
}

func TestAddSubMatrix(t *testing.T) {
	a := mat(t, [][]float64{{1, 2}, {3, 4}})
	b := mat(t, [][]float64{{5, 6}, {7, 8}})

	sum, err := AddMatrix(a, b)
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{6, 8}, {10, 12}}, sum.Data)

	diff, err := SubMatrix(b, a)
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{4, 4}, {4, 4}}, diff.Data)

	_, err = AddMatrix(a, mat(t, [][]float64{{1, 2, 3}}))
	assert.True(t, IsShapeError(err))
}

func TestTranspose(t *testing.T) {
	m := mat(t, [][]float64{{1, 2, 3}, {4, 5, 6}})
	tr := Transpose(m)
	assert.Equal(t, 3, tr.Rows)
	assert.Equal(t, 2, tr.Cols)
	assert.Equal(t, [][]float64{{1, 4}, {2, 5}, {3, 6}}, tr.Data)
}

func TestDet(t *testing.T) {
	tests := []struct {
		name string
		data [][]float64
		want float64
	}{
		{"identity", [][]float64{{1, 0}, {0, 1}}, 1},
		{"2x2", [][]float64{{3, 8}, {4, 6}}, -14},
		{"3x3", [][]float64{{6, 1, 1}, {4, -2, 5}, {2, 8, 7}}, -306},
		{"singular", [][]float64{{1, 2}, {2, 4}}, 0},
		{"needs pivoting", [][]float64{{0, 1}, {1, 0}}, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Det(mat(t, tt.data))
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestDet_NotSquare(t *testing.T) {
	_, err := Det(mat(t, [][]float64{{1, 2, 3}, {4, 5, 6}}))
	require.Error(t, err)

	var ke *KernelError
	require.ErrorAs(t, err, &ke)
	assert.Equal(t, ErrCodeNotSquare, ke.Code)
}

func TestSolveLinear(t *testing.T) {
	// 2x + y = 5, x + 3y = 10 -> x = 1, y = 3
	a := mat(t, [][]float64{{2, 1}, {1, 3}})
	b := mat(t, [][]float64{{5}, {10}})

	x, err := SolveLinear(a, b)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, x.Data[0][0], 1e-12)
	assert.InDelta(t, 3.0, x.Data[1][0], 1e-12)
}

func TestSolveLinear_Singular(t *testing.T) {
	a := mat(t, [][]float64{{1, 2}, {2, 4}})
	b := mat(t, [][]float64{{1}, {2}})

	_, err := SolveLinear(a, b)
	require.Error(t, err)

	var ke *KernelError
	require.ErrorAs(t, err, &ke)
	assert.Equal(t, ErrCodeSingular, ke.Code)
}

func TestAsNumber(t *testing.T) {
	n, ok := AsNumber(Number(2.5))
	require.True(t, ok)
	assert.Equal(t, 2.5, n)

	n, ok = AsNumber(Complex{Re: 4})
	require.True(t, ok)
	assert.Equal(t, 4.0, n)

	_, ok = AsNumber(Complex{Re: 1, Im: 1})
	assert.False(t, ok)

	_, ok = AsNumber(Matrix{})
	assert.False(t, ok)
}
