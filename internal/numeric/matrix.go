package numeric

import (
	"fmt"
	"math"
)

// PivotEpsilon is the magnitude below which a pivot is treated as zero
// during Gaussian elimination.
const PivotEpsilon = 1e-12

// NewMatrix builds a Matrix from row-major data, enforcing rectangularity.
func NewMatrix(data [][]float64) (Matrix, error) {
	rows := len(data)
	if rows == 0 {
		return Matrix{}, &KernelError{
			Code:    ErrCodeMatrixDimensionMismatch,
			Op:      "new",
			Message: "matrix must have at least one row",
		}
	}
	cols := len(data[0])
	if cols == 0 {
		return Matrix{}, &KernelError{
			Code:    ErrCodeMatrixDimensionMismatch,
			Op:      "new",
			Message: "matrix must have at least one column",
		}
	}
	for i, row := range data {
		if len(row) != cols {
			return Matrix{}, &KernelError{
				Code:    ErrCodeMatrixDimensionMismatch,
				Op:      "new",
				Message: fmt.Sprintf("row %d has %d entries, expected %d", i, len(row), cols),
			}
		}
	}
	return Matrix{Rows: rows, Cols: cols, Data: data}, nil
}

// zeros allocates a Rows x Cols matrix of zeros.
func zeros(rows, cols int) Matrix {
	data := make([][]float64, rows)
	for i := range data {
		data[i] = make([]float64, cols)
	}
	return Matrix{Rows: rows, Cols: cols, Data: data}
}

// clone deep-copies m so elimination never mutates caller data.
func clone(m Matrix) Matrix {
	out := zeros(m.Rows, m.Cols)
	for i := range m.Data {
		copy(out.Data[i], m.Data[i])
	}
	return out
}

// AddMatrix returns a + b.
// PRECONDITION: identical shapes; MATRIX_DIMENSION_MISMATCH otherwise.
func AddMatrix(a, b Matrix) (Matrix, error) {
	if a.Rows != b.Rows || a.Cols != b.Cols {
		return Matrix{}, newShapeError("add", a, b)
	}
	out := zeros(a.Rows, a.Cols)
	for i := 0; i < a.Rows; i++ {
		for j := 0; j < a.Cols; j++ {
			out.Data[i][j] = a.Data[i][j] + b.Data[i][j]
		}
	}
	return out, nil
}

// SubMatrix returns a - b.
// PRECONDITION: identical shapes; MATRIX_DIMENSION_MISMATCH otherwise.
func SubMatrix(a, b Matrix) (Matrix, error) {
	if a.Rows != b.Rows || a.Cols != b.Cols {
		return Matrix{}, newShapeError("subtract", a, b)
	}
	out := zeros(a.Rows, a.Cols)
	for i := 0; i < a.Rows; i++ {
		for j := 0; j < a.Cols; j++ {
			out.Data[i][j] = a.Data[i][j] - b.Data[i][j]
		}
	}
	return out, nil
}

// MulMatrix returns the product a * b.
// PRECONDITION: a.Cols == b.Rows; MATRIX_DIMENSION_MISMATCH otherwise.
func MulMatrix(a, b Matrix) (Matrix, error) {
	if a.Cols != b.Rows {
		return Matrix{}, newShapeError("multiply", a, b)
	}
	out := zeros(a.Rows, b.Cols)
	for i := 0; i < a.Rows; i++ {
		for k := 0; k < a.Cols; k++ {
			aik := a.Data[i][k]
			if aik == 0 {
				continue
			}
			for j := 0; j < b.Cols; j++ {
				out.Data[i][j] += aik * b.Data[k][j]
			}
		}
	}
	return out, nil
}

// ScaleMatrix returns s * m.
func ScaleMatrix(s float64, m Matrix) Matrix {
	out := zeros(m.Rows, m.Cols)
	for i := 0; i < m.Rows; i++ {
		for j := 0; j < m.Cols; j++ {
			out.Data[i][j] = s * m.Data[i][j]
		}
	}
	return out
}

// Transpose returns the transpose of m.
func Transpose(m Matrix) Matrix {
	out := zeros(m.Cols, m.Rows)
	for i := 0; i < m.Rows; i++ {
		for j := 0; j < m.Cols; j++ {
			out.Data[j][i] = m.Data[i][j]
		}
	}
	return out
}

// Det computes the determinant by Gaussian elimination with partial
// pivoting. A pivot below PivotEpsilon short-circuits to exactly 0.
// PRECONDITION: square; NOT_SQUARE otherwise.
func Det(m Matrix) (float64, error) {
	if m.Rows != m.Cols {
		return 0, newNotSquareError("det", m)
	}

	work := clone(m)
	n := work.Rows
	det := 1.0

	for col := 0; col < n; col++ {
		pivot := col
		for row := col + 1; row < n; row++ {
			if math.Abs(work.Data[row][col]) > math.Abs(work.Data[pivot][col]) {
				pivot = row
			}
		}
		if math.Abs(work.Data[pivot][col]) < PivotEpsilon {
			return 0, nil
		}
		if pivot != col {
			work.Data[pivot], work.Data[col] = work.Data[col], work.Data[pivot]
			det = -det
		}
		det *= work.Data[col][col]
		for row := col + 1; row < n; row++ {
			factor := work.Data[row][col] / work.Data[col][col]
			for j := col; j < n; j++ {
				work.Data[row][j] -= factor * work.Data[col][j]
			}
		}
	}
	return det, nil
}

// SolveLinear solves A x = b for x using Gaussian elimination with
// partial pivoting and back-substitution.
//
// PRECONDITIONS:
//   - A is square (NOT_SQUARE otherwise)
//   - b is a column vector with A.Rows entries (MATRIX_DIMENSION_MISMATCH)
//   - A is non-singular (SINGULAR when a pivot falls below PivotEpsilon)
func SolveLinear(a, b Matrix) (Matrix, error) {
	if a.Rows != a.Cols {
		return Matrix{}, newNotSquareError("solve", a)
	}
	if b.Rows != a.Rows || b.Cols != 1 {
		return Matrix{}, newShapeError("solve", a, b)
	}

	n := a.Rows
	work := clone(a)
	rhs := clone(b)

	for col := 0; col < n; col++ {
		pivot := col
		for row := col + 1; row < n; row++ {
			if math.Abs(work.Data[row][col]) > math.Abs(work.Data[pivot][col]) {
				pivot = row
			}
		}
		if math.Abs(work.Data[pivot][col]) < PivotEpsilon {
			return Matrix{}, &KernelError{
				Code:    ErrCodeSingular,
				Op:      "solve",
				Message: fmt.Sprintf("matrix is singular at column %d", col),
			}
		}
		if pivot != col {
			work.Data[pivot], work.Data[col] = work.Data[col], work.Data[pivot]
			rhs.Data[pivot], rhs.Data[col] = rhs.Data[col], rhs.Data[pivot]
		}
		for row := col + 1; row < n; row++ {
			factor := work.Data[row][col] / work.Data[col][col]
			for j := col; j < n; j++ {
				work.Data[row][j] -= factor * work.Data[col][j]
			}
			rhs.Data[row][0] -= factor * rhs.Data[col][0]
		}
	}

	x := zeros(n, 1)
	for row := n - 1; row >= 0; row-- {
		sum := rhs.Data[row][0]
		for j := row + 1; j < n; j++ {
			sum -= work.Data[row][j] * x.Data[j][0]
		}
		x.Data[row][0] = sum / work.Data[row][row]
	}
	return x, nil
}
