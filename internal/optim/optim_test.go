package optim_test

import (
	"math"
	"testing"

	"github.com/born-ml/morning/internal/linalg"
	"github.com/born-ml/morning/internal/optim"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func vec(t *testing.T, data ...float64) *linalg.Vector {
	t.Helper()
	v, err := linalg.NewVector(data)
	require.NoError(t, err)
	return v
}

func matrix(t *testing.T, rows ...[]float64) *linalg.Matrix {
	t.Helper()
	m, err := linalg.NewMatrix(rows)
	require.NoError(t, err)
	return m
}

// TestSGD_SimpleUpdate tests SGD without momentum.
func TestSGD_SimpleUpdate(t *testing.T) {
	opt := optim.NewSGD(optim.SGDConfig{})

	x := vec(t, 2.0)
	opt.Begin()
	require.NoError(t, opt.UpdateVector(x, vec(t, 1.0), 0.1))

	// x_new = x_old - lr * grad = 2.0 - 0.1 * 1.0 = 1.9
	assert.InDelta(t, 1.9, x.At(0), 1e-12)

	w := matrix(t, []float64{1, 2}, []float64{3, 4})
	require.NoError(t, opt.UpdateMatrix(w, matrix(t, []float64{1, 1}, []float64{-1, 0}), 0.5))
	assert.Equal(t, [][]float64{{0.5, 1.5}, {3.5, 4}}, w.RawRows())
}

// TestSGD_WithMomentum tests SGD with momentum.
func TestSGD_WithMomentum(t *testing.T) {
	opt := optim.NewSGD(optim.SGDConfig{Momentum: 0.9})
	assert.Equal(t, 0.9, opt.Momentum())

	x := vec(t, 1.0)

	// Step 1: v = 1, x = 1 - 0.1*1 = 0.9
	require.NoError(t, opt.UpdateVector(x, vec(t, 1.0), 0.1))
	assert.InDelta(t, 0.9, x.At(0), 1e-12)

	// Step 2: v = 0.9*1 + 1 = 1.9, x = 0.9 - 0.19 = 0.71
	require.NoError(t, opt.UpdateVector(x, vec(t, 1.0), 0.1))
	assert.InDelta(t, 0.71, x.At(0), 1e-12)

	// After Reset velocity starts from zero again: x = 0.71 - 0.1
	opt.Reset()
	require.NoError(t, opt.UpdateVector(x, vec(t, 1.0), 0.1))
	assert.InDelta(t, 0.61, x.At(0), 1e-12)
}

// TestSGD_MomentumMatrix tests that matrix velocities are tracked per parameter.
func TestSGD_MomentumMatrix(t *testing.T) {
	opt := optim.NewSGD(optim.SGDConfig{Momentum: 0.5})
	a := matrix(t, []float64{0})
	b := matrix(t, []float64{0})
	g := matrix(t, []float64{1})

	require.NoError(t, opt.UpdateMatrix(a, g, 1))
	require.NoError(t, opt.UpdateMatrix(a, g, 1))
	require.NoError(t, opt.UpdateMatrix(b, g, 1))

	assert.InDelta(t, -2.5, a.At(0, 0), 1e-12) // -1, then -1.5
	assert.InDelta(t, -1.0, b.At(0, 0), 1e-12)
}

// TestSGD_ShapeMismatch tests that mismatched gradients are rejected.
func TestSGD_ShapeMismatch(t *testing.T) {
	opt := optim.NewSGD(optim.SGDConfig{})
	err := opt.UpdateVector(vec(t, 1, 2), vec(t, 1), 0.1)
	assert.ErrorIs(t, err, linalg.ErrShapeMismatch)

	err = opt.UpdateMatrix(matrix(t, []float64{1, 2}), matrix(t, []float64{1}), 0.1)
	assert.ErrorIs(t, err, linalg.ErrShapeMismatch)
}

// TestAdam_FirstStep tests that the first bias-corrected step has magnitude lr.
func TestAdam_FirstStep(t *testing.T) {
	opt := optim.NewAdam(optim.AdamConfig{})

	x := vec(t, 1.0, -1.0)
	opt.Begin()
	require.NoError(t, opt.UpdateVector(x, vec(t, 0.5, -3), 0.01))
	assert.Equal(t, 1, opt.Timestep())

	// m_hat = g, v_hat = g², so the step is lr * g/|g| (up to eps).
	assert.InDelta(t, 0.99, x.At(0), 1e-6)
	assert.InDelta(t, -0.99, x.At(1), 1e-6)
}

// TestAdam_Convergence tests Adam on a 1-D quadratic.
func TestAdam_Convergence(t *testing.T) {
	opt := optim.NewAdam(optim.AdamConfig{})
	w := matrix(t, []float64{5})

	for i := 0; i < 2000; i++ {
		opt.Begin()
		grad := matrix(t, []float64{2 * (w.At(0, 0) - 3)})
		require.NoError(t, opt.UpdateMatrix(w, grad, 0.05))
	}

	assert.Less(t, math.Abs(w.At(0, 0)-3), 0.1)

	opt.Reset()
	assert.Equal(t, 0, opt.Timestep())

	err := opt.UpdateMatrix(w, matrix(t, []float64{1, 2}), 0.1)
	assert.ErrorIs(t, err, linalg.ErrShapeMismatch)
}
