package matrix

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func fromRows(t *testing.T, rows ...[]float64) *Matrix {
	t.Helper()
	m, err := FromRows(rows)
	require.NoError(t, err)
	return m
}

func TestFromRows_Invalid(t *testing.T) {
	_, err := FromRows(nil)
	assert.ErrorIs(t, err, ErrShapeMismatch)
	_, err = FromRows([][]float64{{1, 2}, {3}})
	assert.ErrorIs(t, err, ErrShapeMismatch)

	assert.Panics(t, func() { New(0, 3) })
}

func TestIdentity(t *testing.T) {
	assert.Equal(t, [][]float64{{1, 0, 0}, {0, 1, 0}}, Identity(2, 3).Rows())
	assert.Equal(t, [][]float64{{1}, {2}}, Column([]float64{1, 2}).Rows())
}

func TestArithmetic(t *testing.T) {
	a := fromRows(t, []float64{1, 2}, []float64{3, 4})
	b := fromRows(t, []float64{5, 6}, []float64{7, 8})

	sum, err := a.Add(b)
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{6, 8}, {10, 12}}, sum.Rows())

	diff, err := b.Sub(a)
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{4, 4}, {4, 4}}, diff.Rows())

	prod, err := a.Mul(b)
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{19, 22}, {43, 50}}, prod.Rows())

	had, err := a.Hadamard(b)
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{5, 12}, {21, 32}}, had.Rows())

	assert.Equal(t, [][]float64{{2, 4}, {6, 8}}, a.Scale(2).Rows())
	assert.Equal(t, [][]float64{{1, 3}, {2, 4}}, a.Transpose().Rows())
	assert.Equal(t, 10.0, a.Sum())
	assert.Equal(t, []float64{2, 4}, a.Col(1))

	// Map leaves the receiver alone.
	sq := a.Map(func(v float64) float64 { return v * v })
	assert.Equal(t, [][]float64{{1, 4}, {9, 16}}, sq.Rows())
	assert.Equal(t, 1.0, a.At(0, 0))
}

func TestShapeErrors(t *testing.T) {
	a := New(2, 3)
	b := New(3, 2)

	_, err := a.Add(b)
	assert.ErrorIs(t, err, ErrShapeMismatch)
	_, err = a.Sub(b)
	assert.ErrorIs(t, err, ErrShapeMismatch)
	_, err = a.Hadamard(b)
	assert.ErrorIs(t, err, ErrShapeMismatch)
	_, err = a.Mul(a)
	assert.ErrorIs(t, err, ErrShapeMismatch)

	_, err = a.Det()
	assert.ErrorIs(t, err, ErrNotSquare)
	_, err = a.Inverse()
	assert.ErrorIs(t, err, ErrNotSquare)
	_, err = a.Cofactor(0, 0)
	assert.ErrorIs(t, err, ErrNotSquare)
}

func TestDet(t *testing.T) {
	tests := []struct {
		name string
		rows [][]float64
		want float64
	}{
		{"1x1", [][]float64{{-3}}, -3},
		{"2x2", [][]float64{{1, 2}, {3, 4}}, -2},
		{"3x3", [][]float64{{2, 0, 1}, {1, 3, 2}, {1, 1, 2}}, 6},
		{"singular", [][]float64{{1, 2, 3}, {2, 4, 6}, {0, 1, 1}}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := fromRows(t, tt.rows...).Det()
			require.NoError(t, err)
			assert.InDelta(t, tt.want, d, 1e-12)
		})
	}
}

func TestCofactor(t *testing.T) {
	m := fromRows(t, []float64{1, 2, 3}, []float64{0, 4, 5}, []float64{1, 0, 6})

	c, err := m.Cofactor(0, 0)
	require.NoError(t, err)
	assert.Equal(t, 24.0, c) // 4*6 - 5*0

	c, err = m.Cofactor(0, 1)
	require.NoError(t, err)
	assert.Equal(t, 5.0, c) // -(0*6 - 5*1)
}

// TestAgainstGonum compares Det and Inverse with gonum's LU based versions.
func TestAgainstGonum(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	for n := 1; n <= 5; n++ {
		rows := make([][]float64, n)
		flat := make([]float64, 0, n*n)
		for i := range rows {
			rows[i] = make([]float64, n)
			for j := range rows[i] {
				rows[i][j] = rng.Float64()*2 - 1
			}
			rows[i][i] += float64(n) // keep it well conditioned
			flat = append(flat, rows[i]...)
		}
		m := fromRows(t, rows...)
		ref := mat.NewDense(n, n, flat)

		d, err := m.Det()
		require.NoError(t, err)
		assert.InEpsilon(t, mat.Det(ref), d, 1e-9, "order %d", n)

		inv, err := m.Inverse()
		require.NoError(t, err)
		var refInv mat.Dense
		require.NoError(t, refInv.Inverse(ref))
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				assert.InDelta(t, refInv.At(i, j), inv.At(i, j), 1e-9)
			}
		}

		id, err := m.Mul(inv)
		require.NoError(t, err)
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				assert.InDelta(t, Identity(n, n).At(i, j), id.At(i, j), 1e-9)
			}
		}
	}
}

func TestInverse_Singular(t *testing.T) {
	_, err := fromRows(t, []float64{1, 2}, []float64{2, 4}).Inverse()
	assert.ErrorIs(t, err, ErrSingular)
}
