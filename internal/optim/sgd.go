package optim

import (
	"github.com/born-ml/morning/internal/linalg"
	"github.com/pkg/errors"
)

// SGD implements Stochastic Gradient Descent optimizer with optional momentum.
//
// Update rule without momentum:
//
//	param = param - lr * gradient
//
// Update rule with momentum:
//
//	velocity = momentum * velocity + gradient
//	param = param - lr * velocity
//
// With Momentum 0 this is exactly the plain per-sample update of classic
// backpropagation.
//
// Example:
//
//	sgd := optim.NewSGD(optim.SGDConfig{Momentum: 0.9})
type SGD struct {
	momentum    float64
	matVelocity map[*linalg.Matrix]*linalg.Matrix
	vecVelocity map[*linalg.Vector]*linalg.Vector
}

// SGDConfig holds configuration for SGD optimizer.
type SGDConfig struct {
	Momentum float64 // Momentum factor (default: 0.0, range: [0, 1))
}

// NewSGD creates a new SGD optimizer.
func NewSGD(config SGDConfig) *SGD {
	return &SGD{
		momentum:    config.Momentum,
		matVelocity: make(map[*linalg.Matrix]*linalg.Matrix),
		vecVelocity: make(map[*linalg.Vector]*linalg.Vector),
	}
}

// Begin is a no-op: SGD has no timestep.
func (s *SGD) Begin() {}

// UpdateMatrix applies param -= lr * grad (or the momentum variant).
func (s *SGD) UpdateMatrix(param, grad *linalg.Matrix, lr float64) error {
	step := grad
	if s.momentum != 0 {
		velocity, ok := s.matVelocity[param]
		if !ok {
			velocity = linalg.ZeroMatrix(param.Dims())
		}
		next, err := velocity.Scale(s.momentum).Add(grad)
		if err != nil {
			return errors.WithMessage(err, "SGD momentum")
		}
		s.matVelocity[param] = next
		step = next
	}
	return param.SubInPlace(step.Scale(lr))
}

// UpdateVector applies param -= lr * grad (or the momentum variant).
func (s *SGD) UpdateVector(param, grad *linalg.Vector, lr float64) error {
	step := grad
	if s.momentum != 0 {
		velocity, ok := s.vecVelocity[param]
		if !ok {
			velocity = linalg.ZeroVector(param.Len())
		}
		next, err := velocity.Scale(s.momentum).Add(grad)
		if err != nil {
			return errors.WithMessage(err, "SGD momentum")
		}
		s.vecVelocity[param] = next
		step = next
	}
	return param.SubInPlace(step.Scale(lr))
}

// Reset clears all velocity buffers.
func (s *SGD) Reset() {
	s.matVelocity = make(map[*linalg.Matrix]*linalg.Matrix)
	s.vecVelocity = make(map[*linalg.Vector]*linalg.Vector)
}

// Momentum returns the configured momentum factor.
func (s *SGD) Momentum() float64 {
	return s.momentum
}
