// Package optim implements the parameter update rules applied by the network
// engines after each backward pass.
//
// This package provides:
//   - Optimizer interface: Base interface for all update rules
//   - SGD: Stochastic Gradient Descent with optional momentum
//   - Adam: Adaptive Moment Estimation
//
// The learning rate is supplied with every update rather than stored in the
// optimizer.
//
// Example usage:
//
//	opt := optim.NewSGD(optim.SGDConfig{Momentum: 0.9})
//
//	// One training sample
//	opt.Begin()
//	_ = opt.UpdateMatrix(weight, weightGrad, 0.1)
//	_ = opt.UpdateVector(bias, biasGrad, 0.1)
//
// Optimizers keep per-parameter state and are not safe for concurrent use;
// each network owns its own optimizer.
package optim

import (
	"github.com/born-ml/morning/internal/linalg"
)

// Optimizer is the base interface for all update rules.
//
// Parameters are updated in place, so references held by callers observe the
// new values.
type Optimizer interface {
	// Begin marks the start of one optimization step (one training sample).
	//
	// Optimizers with a timestep, such as Adam, advance it here.
	Begin()

	// UpdateMatrix applies the update for a matrix parameter given its gradient.
	UpdateMatrix(param, grad *linalg.Matrix, lr float64) error

	// UpdateVector applies the update for a vector parameter given its gradient.
	UpdateVector(param, grad *linalg.Vector, lr float64) error

	// Reset drops all per-parameter state.
	//
	// Call it after replacing parameters so stale state is not reused.
	Reset()
}
