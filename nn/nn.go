// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"github.com/born-ml/morning/internal/activation"
	"github.com/born-ml/morning/internal/fcnn"
	"github.com/born-ml/morning/internal/linalg"
	"github.com/born-ml/morning/internal/optim"
	"github.com/born-ml/morning/internal/serialization"
	"github.com/born-ml/morning/internal/tlnn"
)

// Network is a fully-connected feed-forward network.
type Network = fcnn.Network

// Config holds construction options for a Network.
type Config = fcnn.Config

// TrainConfig holds the options of Network.TrainContext.
type TrainConfig = fcnn.TrainConfig

// Source draws standard normal initial weights. *math/rand.Rand satisfies it.
type Source = fcnn.Source

// New creates a network with the given layer sizes, input width first.
//
// Example:
//
//	net, err := nn.New(nn.Config{}, 2, 3, 1) // 2 inputs, 3 hidden, 1 output
func New(cfg Config, layerSizes ...int) (*Network, error) {
	return fcnn.New(cfg, layerSizes...)
}

// FromParameters creates a network from explicit weights and biases.
//
// Example:
//
//	net, err := nn.FromParameters(
//	    [][][]float64{{{0.15, 0.25}, {0.20, 0.30}}, {{0.40}, {0.45}}},
//	    [][]float64{{0.35, 0.35}, {0.60}},
//	    nn.Config{},
//	)
func FromParameters(weights [][][]float64, biases [][]float64, cfg Config) (*Network, error) {
	return fcnn.FromParameters(weights, biases, cfg)
}

// DefaultConfig returns the default construction options.
func DefaultConfig() Config {
	return fcnn.DefaultConfig()
}

// Activations

// Activation is an elementwise activation function with its derivative.
type Activation = activation.Function

// ReLU is the rectified linear unit max(0, x).
type ReLU = activation.ReLU

// Sigmoid is the logistic function 1/(1+e^-x).
type Sigmoid = activation.Sigmoid

// Tanh is the hyperbolic tangent.
type Tanh = activation.Tanh

// ActivationByName looks up "relu", "sigmoid", "tanh" or a registered name.
func ActivationByName(name string) (Activation, error) {
	return activation.ByName(name)
}

// RegisterActivation makes f available to ActivationByName. An empty name or
// a nil f is rejected.
func RegisterActivation(name string, f Activation) error {
	return activation.Register(name, f)
}

// Optimizers

// Optimizer applies parameter updates after each backward pass.
type Optimizer = optim.Optimizer

// SGD is stochastic gradient descent with optional momentum.
type SGD = optim.SGD

// Adam is the Adam optimizer.
type Adam = optim.Adam

// SGDConfig holds configuration for NewSGD.
type SGDConfig = optim.SGDConfig

// AdamConfig holds configuration for NewAdam.
type AdamConfig = optim.AdamConfig

// NewSGD creates a stochastic gradient descent optimizer.
//
// Example:
//
//	net, err := nn.New(nn.Config{Optimizer: nn.NewSGD(nn.SGDConfig{Momentum: 0.9})}, 2, 3, 1)
func NewSGD(cfg SGDConfig) *SGD {
	return optim.NewSGD(cfg)
}

// NewAdam creates an Adam optimizer.
func NewAdam(cfg AdamConfig) *Adam {
	return optim.NewAdam(cfg)
}

// Containers

// Matrix is a dense row-major matrix.
type Matrix = linalg.Matrix

// Vector is a dense vector.
type Vector = linalg.Vector

// Regressor

// Regressor is a single-input single-output network with one hidden layer.
type Regressor = tlnn.Regressor

// RegressorConfig holds the Regressor options.
type RegressorConfig = tlnn.Config

// RegressorMethod selects the Regressor update rule.
type RegressorMethod = tlnn.Method

// Regressor update rules.
const (
	GradientDescent    = tlnn.GradientDescent
	LevenbergMarquardt = tlnn.LevenbergMarquardt
)

// NewRegressor creates a Regressor.
//
// Example:
//
//	r, err := nn.NewRegressor(nn.RegressorConfig{Hidden: 5, Method: nn.GradientDescent})
func NewRegressor(cfg RegressorConfig) (*Regressor, error) {
	return tlnn.New(cfg)
}

// Checkpoints

// Save writes the weights and biases of net to a SafeTensors file at path.
func Save(path string, net *Network) error {
	return serialization.Save(path, serialization.FromNetwork(net))
}

// Load rebuilds a network saved by Save. A nil cfg.Activation uses the
// activation recorded in the file.
//
// Example:
//
//	net, err := nn.Load("xor.safetensors", nn.Config{})
func Load(path string, cfg Config) (*Network, error) {
	state, err := serialization.Load(path)
	if err != nil {
		return nil, err
	}
	return state.Network(cfg)
}

// Errors

var (
	// ErrShapeMismatch is returned when data does not fit the network.
	ErrShapeMismatch = fcnn.ErrShapeMismatch
	// ErrInvalidTopology is returned for bad layer sizes.
	ErrInvalidTopology = fcnn.ErrInvalidTopology
	// ErrInvalidTrainConfig is returned for a negative epoch count.
	ErrInvalidTrainConfig = fcnn.ErrInvalidTrainConfig
	// ErrLayerIndex is returned by setters called with an out-of-range layer.
	ErrLayerIndex = fcnn.ErrLayerIndex
	// ErrUnknownActivation is returned by ActivationByName.
	ErrUnknownActivation = activation.ErrUnknown
	// ErrChecksumMismatch is returned by Load for a corrupted file.
	ErrChecksumMismatch = serialization.ErrChecksumMismatch
)
