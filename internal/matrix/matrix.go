// Package matrix provides a small row-major matrix with an exact
// cofactor-expansion determinant and adjugate inverse.
//
// The cost of Det and Inverse grows factorially with the order, so the type is
// meant for the handful-of-parameters systems solved by the regressor's
// Levenberg–Marquardt step. Use gonum for anything larger.
package matrix

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Errors returned by Matrix operations, wrapped with the operation and shapes.
var (
	// ErrShapeMismatch means the operands' dimensions are incompatible.
	ErrShapeMismatch = errors.New("matrix: shape mismatch")
	// ErrNotSquare means a square matrix was required.
	ErrNotSquare     = errors.New("matrix: not square")
	// ErrSingular means the determinant is zero.
	ErrSingular      = errors.New("matrix: singular")
)

// Matrix is a dense rows×cols matrix.
type Matrix struct {
	rows, cols int
	data       [][]float64
}

// New returns a zero rows×cols matrix. Panics on non-positive dimensions.
func New(rows, cols int) *Matrix {
	if rows <= 0 || cols <= 0 {
		panic(fmt.Sprintf("matrix.New: invalid dimensions %dx%d", rows, cols))
	}
	data := make([][]float64, rows)
	for i := range data {
		data[i] = make([]float64, cols)
	}
	return &Matrix{rows: rows, cols: cols, data: data}
}

// FromRows copies rows into a new matrix.
func FromRows(rows [][]float64) (*Matrix, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, errors.Wrap(ErrShapeMismatch, "FromRows: empty data")
	}
	m := New(len(rows), len(rows[0]))
	for i, row := range rows {
		if len(row) != m.cols {
			return nil, errors.Wrapf(ErrShapeMismatch, "FromRows: row %d has %d columns, expected %d", i, len(row), m.cols)
		}
		copy(m.data[i], row)
	}
	return m, nil
}

// Column returns an n×1 matrix holding v.
func Column(v []float64) *Matrix {
	m := New(len(v), 1)
	for i, x := range v {
		m.data[i][0] = x
	}
	return m
}

// Identity returns a rows×cols matrix with ones on the main diagonal.
func Identity(rows, cols int) *Matrix {
	m := New(rows, cols)
	for i := 0; i < min(rows, cols); i++ {
		m.data[i][i] = 1
	}
	return m
}

// Dims returns the number of rows and columns.
func (m *Matrix) Dims() (rows, cols int) { return m.rows, m.cols }

// At returns the element at row i, column j.
func (m *Matrix) At(i, j int) float64 { return m.data[i][j] }

// Set stores v at row i, column j.
func (m *Matrix) Set(i, j int, v float64) { m.data[i][j] = v }

// Rows returns a deep copy of the data.
func (m *Matrix) Rows() [][]float64 {
	out := make([][]float64, m.rows)
	for i, row := range m.data {
		out[i] = append([]float64(nil), row...)
	}
	return out
}

// Col returns a copy of column j.
func (m *Matrix) Col(j int) []float64 {
	out := make([]float64, m.rows)
	for i := range out {
		out[i] = m.data[i][j]
	}
	return out
}

// Add returns the elementwise sum m + o.
func (m *Matrix) Add(o *Matrix) (*Matrix, error) {
	if err := m.sameShape("Add", o); err != nil {
		return nil, err
	}
	return m.zip(o, func(a, b float64) float64 { return a + b }), nil
}

// Sub returns the elementwise difference m - o.
func (m *Matrix) Sub(o *Matrix) (*Matrix, error) {
	if err := m.sameShape("Sub", o); err != nil {
		return nil, err
	}
	return m.zip(o, func(a, b float64) float64 { return a - b }), nil
}

// Hadamard returns the elementwise product.
func (m *Matrix) Hadamard(o *Matrix) (*Matrix, error) {
	if err := m.sameShape("Hadamard", o); err != nil {
		return nil, err
	}
	return m.zip(o, func(a, b float64) float64 { return a * b }), nil
}

// Mul returns the matrix product m × o.
func (m *Matrix) Mul(o *Matrix) (*Matrix, error) {
	if m.cols != o.rows {
		return nil, errors.Wrapf(ErrShapeMismatch, "Mul: %dx%d times %dx%d", m.rows, m.cols, o.rows, o.cols)
	}
	out := New(m.rows, o.cols)
	for i := 0; i < m.rows; i++ {
		for j := 0; j < o.cols; j++ {
			var sum float64
			for k := 0; k < m.cols; k++ {
				sum += m.data[i][k] * o.data[k][j]
			}
			out.data[i][j] = sum
		}
	}
	return out, nil
}

// Scale returns m with every element multiplied by s.
func (m *Matrix) Scale(s float64) *Matrix {
	return m.Map(func(v float64) float64 { return v * s })
}

// Transpose returns the cols×rows transpose of m.
func (m *Matrix) Transpose() *Matrix {
	out := New(m.cols, m.rows)
	for i := 0; i < m.rows; i++ {
		for j := 0; j < m.cols; j++ {
			out.data[j][i] = m.data[i][j]
		}
	}
	return out
}

// Map returns a new matrix with f applied to every element.
func (m *Matrix) Map(f func(float64) float64) *Matrix {
	out := New(m.rows, m.cols)
	for i, row := range m.data {
		for j, v := range row {
			out.data[i][j] = f(v)
		}
	}
	return out
}

// Sum returns the sum of all elements.
func (m *Matrix) Sum() float64 {
	var sum float64
	for _, row := range m.data {
		for _, v := range row {
			sum += v
		}
	}
	return sum
}

// Det returns the determinant by cofactor expansion along the first row.
func (m *Matrix) Det() (float64, error) {
	if m.rows != m.cols {
		return 0, errors.Wrapf(ErrNotSquare, "Det: %dx%d", m.rows, m.cols)
	}
	return det(m.data), nil
}

// Cofactor returns the signed minor (-1)^(i+j) · det(m without row i and column j).
func (m *Matrix) Cofactor(i, j int) (float64, error) {
	if m.rows != m.cols {
		return 0, errors.Wrapf(ErrNotSquare, "Cofactor: %dx%d", m.rows, m.cols)
	}
	return sign(i+j) * det(minor(m.data, i, j)), nil
}

// Inverse returns adj(m) / det(m).
func (m *Matrix) Inverse() (*Matrix, error) {
	d, err := m.Det()
	if err != nil {
		return nil, err
	}
	if d == 0 {
		return nil, ErrSingular
	}
	adj := New(m.cols, m.rows)
	for i := 0; i < m.rows; i++ {
		for j := 0; j < m.cols; j++ {
			adj.data[j][i] = sign(i+j) * det(minor(m.data, i, j)) / d
		}
	}
	return adj, nil
}

// String formats m one row per line.
func (m *Matrix) String() string {
	var b strings.Builder
	for i, row := range m.data {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprint(&b, row)
	}
	return b.String()
}

func (m *Matrix) sameShape(op string, o *Matrix) error {
	if m.rows != o.rows || m.cols != o.cols {
		return errors.Wrapf(ErrShapeMismatch, "%s: %dx%d and %dx%d", op, m.rows, m.cols, o.rows, o.cols)
	}
	return nil
}

func (m *Matrix) zip(o *Matrix, f func(a, b float64) float64) *Matrix {
	out := New(m.rows, m.cols)
	for i := range m.data {
		for j := range m.data[i] {
			out.data[i][j] = f(m.data[i][j], o.data[i][j])
		}
	}
	return out
}

// det of a square slice; the empty matrix has determinant 1.
func det(a [][]float64) float64 {
	switch len(a) {
	case 0:
		return 1
	case 1:
		return a[0][0]
	case 2:
		return a[0][0]*a[1][1] - a[1][0]*a[0][1]
	}
	var sum float64
	for j := range a[0] {
		if a[0][j] == 0 {
			continue
		}
		sum += sign(j) * a[0][j] * det(minor(a, 0, j))
	}
	return sum
}

func minor(a [][]float64, row, col int) [][]float64 {
	out := make([][]float64, 0, len(a)-1)
	for i := range a {
		if i == row {
			continue
		}
		r := make([]float64, 0, len(a[i])-1)
		r = append(r, a[i][:col]...)
		r = append(r, a[i][col+1:]...)
		out = append(out, r)
	}
	return out
}

func sign(k int) float64 {
	if k%2 == 0 {
		return 1
	}
	return -1
}
