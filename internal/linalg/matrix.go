package linalg

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// NormalSource produces standard normally distributed samples.
// *math/rand.Rand satisfies it.
type NormalSource interface {
	NormFloat64() float64
}

// Matrix is a dense row-major float64 matrix.
type Matrix struct {
	m *mat.Dense
}

// NewMatrix creates a matrix from a copy of the given rows.
//
// Returns ErrShapeMismatch if rows is empty, the first row is empty, or the
// rows have different lengths.
func NewMatrix(rows [][]float64) (*Matrix, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, shapeError("NewMatrix", "empty data")
	}
	cols := len(rows[0])
	data := make([]float64, 0, len(rows)*cols)
	for i, row := range rows {
		if len(row) != cols {
			return nil, shapeError("NewMatrix", "row %d has %d columns, expected %d", i, len(row), cols)
		}
		data = append(data, row...)
	}
	return &Matrix{m: mat.NewDense(len(rows), cols, data)}, nil
}

// ZeroMatrix creates a zero matrix with the given dimensions.
// Panics if rows or cols is not positive.
func ZeroMatrix(rows, cols int) *Matrix {
	if rows <= 0 || cols <= 0 {
		panic(fmt.Sprintf("linalg.ZeroMatrix: invalid dimensions %dx%d (must be > 0)", rows, cols))
	}
	return &Matrix{m: mat.NewDense(rows, cols, nil)}
}

// RandomMatrix creates a rows×cols matrix with entries drawn from src.
// Panics if rows or cols is not positive.
func RandomMatrix(rows, cols int, src NormalSource) *Matrix {
	m := ZeroMatrix(rows, cols)
	for i := 0; i < rows; i++ {
		row := m.m.RawRowView(i)
		for j := range row {
			row[j] = src.NormFloat64()
		}
	}
	return m
}

func wrapDense(d *mat.Dense) *Matrix {
	return &Matrix{m: d}
}

// Dims returns the number of rows and columns.
func (m *Matrix) Dims() (rows, cols int) {
	return m.m.Dims()
}

// Rows returns the number of rows.
func (m *Matrix) Rows() int {
	r, _ := m.m.Dims()
	return r
}

// Cols returns the number of columns.
func (m *Matrix) Cols() int {
	_, c := m.m.Dims()
	return c
}

// At returns the element at row i, column j.
func (m *Matrix) At(i, j int) float64 {
	return m.m.At(i, j)
}

// Set sets the element at row i, column j.
func (m *Matrix) Set(i, j int, x float64) {
	m.m.Set(i, j, x)
}

// Row returns a copy of row i as a vector.
func (m *Matrix) Row(i int) *Vector {
	return wrapVec(mat.NewVecDense(m.Cols(), mat.Row(nil, i, m.m)))
}

// RawRows returns a deep copy of the matrix as a slice of rows.
func (m *Matrix) RawRows() [][]float64 {
	rows, _ := m.m.Dims()
	out := make([][]float64, rows)
	for i := range out {
		out[i] = mat.Row(nil, i, m.m)
	}
	return out
}

// Clone returns a deep copy of the matrix.
func (m *Matrix) Clone() *Matrix {
	return wrapDense(mat.DenseCopyOf(m.m))
}

// SameShape reports whether m and o have identical dimensions.
func (m *Matrix) SameShape(o *Matrix) bool {
	r1, c1 := m.m.Dims()
	r2, c2 := o.m.Dims()
	return r1 == r2 && c1 == c2
}

// Add returns m + o.
func (m *Matrix) Add(o *Matrix) (*Matrix, error) {
	if !m.SameShape(o) {
		return nil, m.mismatch("Matrix.Add", o)
	}
	var r mat.Dense
	r.Add(m.m, o.m)
	return wrapDense(&r), nil
}

// Sub returns m - o.
func (m *Matrix) Sub(o *Matrix) (*Matrix, error) {
	if !m.SameShape(o) {
		return nil, m.mismatch("Matrix.Sub", o)
	}
	var r mat.Dense
	r.Sub(m.m, o.m)
	return wrapDense(&r), nil
}

// SubInPlace subtracts o from m, element by element.
func (m *Matrix) SubInPlace(o *Matrix) error {
	if !m.SameShape(o) {
		return m.mismatch("Matrix.SubInPlace", o)
	}
	m.m.Sub(m.m, o.m)
	return nil
}

// Scale returns s * m.
func (m *Matrix) Scale(s float64) *Matrix {
	var r mat.Dense
	r.Scale(s, m.m)
	return wrapDense(&r)
}

// Mul returns the matrix product m × o.
//
// m.Cols() must equal o.Rows().
func (m *Matrix) Mul(o *Matrix) (*Matrix, error) {
	if m.Cols() != o.Rows() {
		return nil, m.mismatch("Matrix.Mul", o)
	}
	var r mat.Dense
	r.Mul(m.m, o.m)
	return wrapDense(&r), nil
}

// MulVector returns the matrix-column-vector product m × v.
//
// v must have m.Cols() elements; the result has m.Rows() elements.
func (m *Matrix) MulVector(v *Vector) (*Vector, error) {
	rows, cols := m.Dims()
	if v.Len() != cols {
		return nil, shapeError("Matrix.MulVector", "%dx%d matrix times vector of length %d", rows, cols, v.Len())
	}
	var r mat.VecDense
	r.MulVec(m.m, v.v)
	return wrapVec(&r), nil
}

// T returns the transpose of m as a new matrix.
func (m *Matrix) T() *Matrix {
	return wrapDense(mat.DenseCopyOf(m.m.T()))
}

// Hadamard returns the elementwise product of m and o.
func (m *Matrix) Hadamard(o *Matrix) (*Matrix, error) {
	if !m.SameShape(o) {
		return nil, m.mismatch("Matrix.Hadamard", o)
	}
	var r mat.Dense
	r.MulElem(m.m, o.m)
	return wrapDense(&r), nil
}

// Map applies f to every element and returns the result as a new matrix.
func (m *Matrix) Map(f func(float64) float64) *Matrix {
	var r mat.Dense
	r.Apply(func(_, _ int, v float64) float64 { return f(v) }, m.m)
	return wrapDense(&r)
}

// String returns a compact representation of the matrix.
func (m *Matrix) String() string {
	return fmt.Sprintf("Matrix%v", m.RawRows())
}

func (m *Matrix) mismatch(op string, o *Matrix) error {
	r1, c1 := m.Dims()
	r2, c2 := o.Dims()
	return shapeError(op, "%dx%d and %dx%d", r1, c1, r2, c2)
}

// Outer returns the outer product col × row, a col.Len()×row.Len() matrix.
func Outer(col, row *Vector) *Matrix {
	var r mat.Dense
	r.Outer(1, col.v, row.v)
	return wrapDense(&r)
}
