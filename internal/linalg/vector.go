// Package linalg implements the dense vector and matrix kernel used by the
// network engines.
//
// The kernel is a thin, shape-checked layer over gonum's mat package:
//   - Vector: a dense float64 vector (row or column depending on the operation)
//   - Matrix: a dense row-major float64 matrix
//
// Every binary operation validates the operand shapes up front and returns
// ErrShapeMismatch instead of broadcasting or panicking. All operations return
// new containers unless their name ends in InPlace.
package linalg

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Vector is a dense float64 vector.
//
// A Vector acts as a row vector when multiplied by a matrix on the right
// (MulMatrix) and as a column vector when a matrix multiplies it (Matrix.MulVector).
type Vector struct {
	v *mat.VecDense
}

// NewVector creates a vector holding a copy of data.
//
// Returns ErrShapeMismatch if data is empty.
func NewVector(data []float64) (*Vector, error) {
	if len(data) == 0 {
		return nil, shapeError("NewVector", "empty data")
	}
	buf := make([]float64, len(data))
	copy(buf, data)
	return &Vector{v: mat.NewVecDense(len(buf), buf)}, nil
}

// ZeroVector creates a zero vector of length n.
// Panics if n <= 0.
func ZeroVector(n int) *Vector {
	if n <= 0 {
		panic(fmt.Sprintf("linalg.ZeroVector: invalid length %d (must be > 0)", n))
	}
	return &Vector{v: mat.NewVecDense(n, nil)}
}

func wrapVec(v *mat.VecDense) *Vector {
	return &Vector{v: v}
}

// Len returns the number of elements.
func (v *Vector) Len() int {
	return v.v.Len()
}

// At returns the i-th element.
func (v *Vector) At(i int) float64 {
	return v.v.AtVec(i)
}

// SetAt sets the i-th element.
func (v *Vector) SetAt(i int, x float64) {
	v.v.SetVec(i, x)
}

// Data returns a copy of the elements.
func (v *Vector) Data() []float64 {
	out := make([]float64, v.Len())
	for i := range out {
		out[i] = v.v.AtVec(i)
	}
	return out
}

// Clone returns a deep copy of the vector.
func (v *Vector) Clone() *Vector {
	var c mat.VecDense
	c.CloneFromVec(v.v)
	return wrapVec(&c)
}

// Add returns v + o.
func (v *Vector) Add(o *Vector) (*Vector, error) {
	if v.Len() != o.Len() {
		return nil, shapeError("Vector.Add", "lengths %d and %d", v.Len(), o.Len())
	}
	var r mat.VecDense
	r.AddVec(v.v, o.v)
	return wrapVec(&r), nil
}

// Sub returns v - o.
func (v *Vector) Sub(o *Vector) (*Vector, error) {
	if v.Len() != o.Len() {
		return nil, shapeError("Vector.Sub", "lengths %d and %d", v.Len(), o.Len())
	}
	var r mat.VecDense
	r.SubVec(v.v, o.v)
	return wrapVec(&r), nil
}

// SubInPlace subtracts o from v, element by element.
func (v *Vector) SubInPlace(o *Vector) error {
	if v.Len() != o.Len() {
		return shapeError("Vector.SubInPlace", "lengths %d and %d", v.Len(), o.Len())
	}
	v.v.SubVec(v.v, o.v)
	return nil
}

// Scale returns s * v.
func (v *Vector) Scale(s float64) *Vector {
	var r mat.VecDense
	r.ScaleVec(s, v.v)
	return wrapVec(&r)
}

// Hadamard returns the elementwise product of v and o.
func (v *Vector) Hadamard(o *Vector) (*Vector, error) {
	if v.Len() != o.Len() {
		return nil, shapeError("Vector.Hadamard", "lengths %d and %d", v.Len(), o.Len())
	}
	var r mat.VecDense
	r.MulElemVec(v.v, o.v)
	return wrapVec(&r), nil
}

// Dot returns the inner product of v and o.
func (v *Vector) Dot(o *Vector) (float64, error) {
	if v.Len() != o.Len() {
		return 0, shapeError("Vector.Dot", "lengths %d and %d", v.Len(), o.Len())
	}
	return mat.Dot(v.v, o.v), nil
}

// MulMatrix returns the row-vector product v · m.
//
// v must have m.Rows() elements; the result has m.Cols() elements.
//
//	out[j] = Σ_i v[i] * m[i][j]
func (v *Vector) MulMatrix(m *Matrix) (*Vector, error) {
	rows, cols := m.Dims()
	if v.Len() != rows {
		return nil, shapeError("Vector.MulMatrix", "vector of length %d times %dx%d matrix", v.Len(), rows, cols)
	}
	var r mat.VecDense
	r.MulVec(m.m.T(), v.v)
	return wrapVec(&r), nil
}

// Map applies f to every element and returns the result as a new vector.
func (v *Vector) Map(f func(float64) float64) *Vector {
	out := make([]float64, v.Len())
	for i := range out {
		out[i] = f(v.v.AtVec(i))
	}
	return wrapVec(mat.NewVecDense(len(out), out))
}

// Sum returns the sum of all elements.
func (v *Vector) Sum() float64 {
	return floats.Sum(v.Data())
}

// Mean returns the arithmetic mean of the elements.
func (v *Vector) Mean() float64 {
	return v.Sum() / float64(v.Len())
}

// Softmax returns exp(v[i]) / Σ exp(v[j]).
//
// The maximum element is subtracted before exponentiation; the result is the
// same as the naive formula but does not overflow for large inputs.
func (v *Vector) Softmax() *Vector {
	data := v.Data()
	maxVal := floats.Max(data)
	for i := range data {
		data[i] = math.Exp(data[i] - maxVal)
	}
	floats.Scale(1/floats.Sum(data), data)
	return wrapVec(mat.NewVecDense(len(data), data))
}

// String returns a compact representation of the vector.
func (v *Vector) String() string {
	return fmt.Sprintf("Vector%v", v.Data())
}
