// Package tlnn implements a two-layer scalar regressor: one input, a single
// hidden layer and one linear output.
//
//	z = t·W + U
//	h = f(z)
//	n = h·V
//
// Training minimizes the squared error (n - y)² one sample at a time, either
// by gradient descent or by a per-vector Levenberg–Marquardt step.
package tlnn

import (
	"math"

	"github.com/born-ml/morning/internal/activation"
	"github.com/born-ml/morning/internal/linalg"
	"github.com/born-ml/morning/internal/matrix"
	"github.com/born-ml/morning/internal/optim"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

var (
	// ErrShapeMismatch is returned for empty or unequal sample slices and for
	// parameter vectors of the wrong length.
	ErrShapeMismatch = linalg.ErrShapeMismatch

	// ErrInvalidConfig is returned for a negative hidden size or learning rate,
	// or an unknown method.
	ErrInvalidConfig = errors.New("invalid regressor config")
)

// Regressor is a single-input single-output network with one hidden layer.
// It is not safe for concurrent use.
type Regressor struct {
	w, u, v *linalg.Vector

	// forward caches
	z, h *linalg.Vector
	n    float64

	f      activation.Function
	alpha  float64
	method Method
	sgd    *optim.SGD
	trace  *Trace
}

// New creates a regressor with initialized parameters.
//
// U is drawn from [-b, 0) with b = 0.7·hidden, W from [-0.5, 0.5) rescaled to
// norm b, and V from [-0.5, 0.5).
func New(cfg Config) (*Regressor, error) {
	cfg, err := cfg.withDefaults()
	if err != nil {
		return nil, err
	}

	hidden := cfg.Hidden
	b := 0.7 * float64(hidden)
	u := make([]float64, hidden)
	for i := range u {
		u[i] = -b + cfg.Rand.Float64()*b
	}
	w := make([]float64, hidden)
	var norm float64
	for i := range w {
		w[i] = -0.5 + cfg.Rand.Float64()
		norm += w[i] * w[i]
	}
	norm = math.Sqrt(norm)
	for i := range w {
		w[i] = b * w[i] / norm
	}
	v := make([]float64, hidden)
	for i := range v {
		v[i] = -0.5 + cfg.Rand.Float64()
	}

	r := &Regressor{
		f:      cfg.Activation,
		alpha:  cfg.LearningRate,
		method: cfg.Method,
		sgd:    optim.NewSGD(optim.SGDConfig{}),
		z:      linalg.ZeroVector(hidden),
		h:      linalg.ZeroVector(hidden),
	}
	if cfg.Trace {
		r.trace = &Trace{}
	}
	if err := r.SetParameters(w, u, v); err != nil {
		return nil, err
	}
	return r, nil
}

// Hidden returns the number of hidden units.
func (r *Regressor) Hidden() int {
	return r.w.Len()
}

// Parameters returns copies of W, U and V.
func (r *Regressor) Parameters() (w, u, v []float64) {
	return r.w.Data(), r.u.Data(), r.v.Data()
}

// SetParameters replaces W, U and V with copies of the given slices.
// The first call fixes the hidden size; later calls must keep it.
func (r *Regressor) SetParameters(w, u, v []float64) error {
	if len(w) != len(u) || len(w) != len(v) {
		return errors.Wrapf(ErrShapeMismatch, "parameter lengths %d, %d, %d", len(w), len(u), len(v))
	}
	if r.w != nil && len(w) != r.w.Len() {
		return errors.Wrapf(ErrShapeMismatch, "%d parameters for %d hidden units", len(w), r.w.Len())
	}
	wv, err := linalg.NewVector(w)
	if err != nil {
		return err
	}
	uv, err := linalg.NewVector(u)
	if err != nil {
		return err
	}
	vv, err := linalg.NewVector(v)
	if err != nil {
		return err
	}
	r.w, r.u, r.v = wv, uv, vv
	r.sgd.Reset()
	return nil
}

// Trace returns the recorded history, or nil when tracing is off.
func (r *Regressor) Trace() *Trace {
	return r.trace
}

// Forward computes n for input t and caches z and h.
func (r *Regressor) Forward(t float64) float64 {
	hidden := r.w.Len()
	z, h := linalg.ZeroVector(hidden), linalg.ZeroVector(hidden)
	var n float64
	for i := 0; i < hidden; i++ {
		zi := t*r.w.At(i) + r.u.At(i)
		hi := r.f.Activate(zi)
		z.SetAt(i, zi)
		h.SetAt(i, hi)
		n += hi * r.v.At(i)
	}
	r.z, r.h, r.n = z, h, n
	return n
}

// MSE returns the mean squared error over the samples.
func (r *Regressor) MSE(ts, ys []float64) (float64, error) {
	if err := checkSamples(ts, ys); err != nil {
		return 0, err
	}
	return r.mse(ts, ys), nil
}

// mse expects samples already accepted by checkSamples.
func (r *Regressor) mse(ts, ys []float64) float64 {
	var sum float64
	for i, t := range ts {
		d := ys[i] - r.Forward(t)
		sum += d * d
	}
	return sum / float64(len(ts))
}

// Train runs up to epochs passes over the samples and returns the error of
// each epoch.
//
// Every epoch first records the MSE of the current parameters, then updates
// once per sample. Training stops after the pass in which the recorded error
// fell below threshold.
func (r *Regressor) Train(ts, ys []float64, threshold float64, epochs int) ([]float64, error) {
	if err := checkSamples(ts, ys); err != nil {
		return nil, err
	}
	if epochs < 0 {
		return nil, errors.Wrapf(ErrInvalidConfig, "epochs is %d", epochs)
	}

	losses := make([]float64, 0, epochs)
	for k := 0; k < epochs; k++ {
		loss := r.mse(ts, ys)
		losses = append(losses, loss)
		klog.V(2).Infof("tlnn: epoch %d mse %g", k, loss)

		r.trace.beginEpoch()
		for i, t := range ts {
			if err := r.step(t, ys[i]); err != nil {
				return losses, errors.WithMessagef(err, "epoch %d sample %d", k, i)
			}
		}
		if loss < threshold {
			klog.V(1).Infof("tlnn: mse %g below threshold %g after %d epochs", loss, threshold, k+1)
			break
		}
	}
	return losses, nil
}

// step runs one forward pass and one parameter update for sample (t, y).
func (r *Regressor) step(t, y float64) error {
	r.Forward(t)

	dn := 2 * (r.n - y)
	dv := r.h.Scale(dn)
	dh := r.v.Scale(dn)
	dz, err := dh.Hadamard(r.z.Map(r.f.Derivative))
	if err != nil {
		return err
	}
	du := dz
	dw := dz.Scale(t)

	for _, p := range []struct{ param, grad *linalg.Vector }{{r.v, dv}, {r.u, du}, {r.w, dw}} {
		if err := r.update(p.param, p.grad); err != nil {
			return err
		}
	}

	if r.trace != nil {
		r.trace.record(Step{
			W: r.w.Data(), U: r.u.Data(), V: r.v.Data(),
			Z: r.z.Data(), H: r.h.Data(), N: r.n,
			DW: dw.Data(), DU: du.Data(), DV: dv.Data(),
			DZ: dz.Data(), DH: dh.Data(), DN: dn,
		})
	}
	return nil
}

func (r *Regressor) update(param, grad *linalg.Vector) error {
	if r.method == GradientDescent {
		return r.sgd.UpdateVector(param, grad, r.alpha)
	}
	delta, err := lmStep(grad.Data(), r.alpha)
	if err != nil {
		return err
	}
	return param.SubInPlace(delta)
}

// lmStep returns (g·gᵀ + α·I)⁻¹·g.
func lmStep(g []float64, alpha float64) (*linalg.Vector, error) {
	col := matrix.Column(g)
	outer, err := col.Mul(col.Transpose())
	if err != nil {
		return nil, err
	}
	damped, err := outer.Add(matrix.Identity(len(g), len(g)).Scale(alpha))
	if err != nil {
		return nil, err
	}
	inv, err := damped.Inverse()
	if err != nil {
		return nil, errors.WithMessage(err, "Levenberg-Marquardt step")
	}
	step, err := inv.Mul(col)
	if err != nil {
		return nil, err
	}
	return linalg.NewVector(step.Col(0))
}

func checkSamples(ts, ys []float64) error {
	if len(ts) == 0 {
		return errors.Wrap(ErrShapeMismatch, "no samples")
	}
	if len(ts) != len(ys) {
		return errors.Wrapf(ErrShapeMismatch, "%d inputs for %d targets", len(ts), len(ys))
	}
	return nil
}
