package numeric

import (
	"fmt"
	"strconv"
)

// Kind identifies the shape of a Value.
type Kind string

const (
	// KindNumber is a real scalar.
	KindNumber Kind = "number"

	// KindComplex is a complex scalar.
	KindComplex Kind = "complex"

	// KindMatrix is a dense rectangular matrix.
	KindMatrix Kind = "matrix"
)

// Value is a sealed interface over the three value shapes the engine
// computes with. Only Number, Complex, and Matrix implement it.
type Value interface {
	Kind() Kind
	value() // sealed
}

// Number is a real scalar value.
type Number float64

func (Number) value() {}

// Kind returns KindNumber.
func (Number) Kind() Kind { return KindNumber }

// String renders the scalar with the shortest round-trippable form.
func (n Number) String() string {
	return strconv.FormatFloat(float64(n), 'g', -1, 64)
}

// Complex is a complex scalar value.
type Complex struct {
	Re float64
	Im float64
}

func (Complex) value() {}

// Kind returns KindComplex.
func (Complex) Kind() Kind { return KindComplex }

// Matrix is a dense rectangular matrix of real scalars.
// Data is row-major: element (i, j) is Data[i][j].
//
// INVARIANT: every row has exactly Cols entries and len(Data) == Rows.
// Construct through NewMatrix to have the invariant checked.
type Matrix struct {
	Rows int
	Cols int
	Data [][]float64
}

func (Matrix) value() {}

// Kind returns KindMatrix.
func (Matrix) Kind() Kind { return KindMatrix }

// Shape renders the matrix dimensions as "RxC" for diagnostics.
func (m Matrix) Shape() string {
	return fmt.Sprintf("%dx%d", m.Rows, m.Cols)
}

// FromFloat wraps a float64 as a Number value.
func FromFloat(f float64) Number { return Number(f) }

// AsNumber extracts a real scalar from a Value.
// A Complex with zero imaginary part narrows to its real part.
func AsNumber(v Value) (float64, bool) {
	switch val := v.(type) {
	case Number:
		return float64(val), true
	case Complex:
		if val.Im == 0 {
			return val.Re, true
		}
		return 0, false
	case Matrix:
		return 0, false
	default:
		return 0, false
	}
}
