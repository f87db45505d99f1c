package optim

import (
	"math"

	"github.com/born-ml/morning/internal/linalg"
)

// Adam implements the Adam (Adaptive Moment Estimation) optimizer.
//
// Update rule:
//
//	m_t = beta1 * m_{t-1} + (1-beta1) * gradient       // First moment
//	v_t = beta2 * v_{t-1} + (1-beta2) * gradient²      // Second moment
//	m_hat = m_t / (1 - beta1^t)                        // Bias correction
//	v_hat = v_t / (1 - beta2^t)                        // Bias correction
//	param = param - lr * m_hat / (sqrt(v_hat) + eps)   // Parameter update
//
// The timestep t advances on every Begin call.
//
// Reference: "Adam: A Method for Stochastic Optimization" (Kingma & Ba, 2014)
type Adam struct {
	beta1 float64
	beta2 float64
	eps   float64
	t     int

	matMoments map[*linalg.Matrix]*moments
	vecMoments map[*linalg.Vector]*moments
}

// moments holds flat first and second moment estimates for one parameter.
type moments struct {
	m []float64
	v []float64
}

// AdamConfig holds configuration for Adam optimizer.
type AdamConfig struct {
	Betas [2]float64 // Coefficients for computing running averages (default: [0.9, 0.999])
	Eps   float64    // Term for numerical stability (default: 1e-8)
}

// NewAdam creates a new Adam optimizer.
//
// Default hyperparameters:
//   - Beta1: 0.9
//   - Beta2: 0.999
//   - Eps: 1e-8
func NewAdam(config AdamConfig) *Adam {
	if config.Betas[0] == 0 {
		config.Betas[0] = 0.9
	}
	if config.Betas[1] == 0 {
		config.Betas[1] = 0.999
	}
	if config.Eps == 0 {
		config.Eps = 1e-8
	}

	return &Adam{
		beta1:      config.Betas[0],
		beta2:      config.Betas[1],
		eps:        config.Eps,
		matMoments: make(map[*linalg.Matrix]*moments),
		vecMoments: make(map[*linalg.Vector]*moments),
	}
}

// Begin advances the timestep used for bias correction.
func (a *Adam) Begin() {
	a.t++
}

// UpdateMatrix applies the Adam update to a matrix parameter.
func (a *Adam) UpdateMatrix(param, grad *linalg.Matrix, lr float64) error {
	if !param.SameShape(grad) {
		r, c := param.Dims()
		gr, gc := grad.Dims()
		return linalgShapeError("Adam.UpdateMatrix", r, c, gr, gc)
	}
	rows, cols := param.Dims()
	st, ok := a.matMoments[param]
	if !ok {
		st = newMoments(rows * cols)
		a.matMoments[param] = st
	}
	bc1, bc2 := a.biasCorrections()
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			k := i*cols + j
			param.Set(i, j, param.At(i, j)-a.step(st, k, grad.At(i, j), lr, bc1, bc2))
		}
	}
	return nil
}

// UpdateVector applies the Adam update to a vector parameter.
func (a *Adam) UpdateVector(param, grad *linalg.Vector, lr float64) error {
	if param.Len() != grad.Len() {
		return linalgShapeError("Adam.UpdateVector", param.Len(), 1, grad.Len(), 1)
	}
	st, ok := a.vecMoments[param]
	if !ok {
		st = newMoments(param.Len())
		a.vecMoments[param] = st
	}
	bc1, bc2 := a.biasCorrections()
	for i := 0; i < param.Len(); i++ {
		param.SetAt(i, param.At(i)-a.step(st, i, grad.At(i), lr, bc1, bc2))
	}
	return nil
}

// Reset clears all moment estimates and the timestep.
func (a *Adam) Reset() {
	a.t = 0
	a.matMoments = make(map[*linalg.Matrix]*moments)
	a.vecMoments = make(map[*linalg.Vector]*moments)
}

// Timestep returns the current timestep.
func (a *Adam) Timestep() int {
	return a.t
}

func newMoments(n int) *moments {
	return &moments{m: make([]float64, n), v: make([]float64, n)}
}

func (a *Adam) biasCorrections() (float64, float64) {
	t := float64(max(a.t, 1))
	return 1 - math.Pow(a.beta1, t), 1 - math.Pow(a.beta2, t)
}

// step updates the moments at index k and returns the amount to subtract.
func (a *Adam) step(st *moments, k int, g, lr, bc1, bc2 float64) float64 {
	st.m[k] = a.beta1*st.m[k] + (1-a.beta1)*g
	st.v[k] = a.beta2*st.v[k] + (1-a.beta2)*g*g
	mHat := st.m[k] / bc1
	vHat := st.v[k] / bc2
	return lr * mHat / (math.Sqrt(vHat) + a.eps)
}
