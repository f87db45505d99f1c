// Package activation implements the scalar activation functions applied by
// the network engines.
//
// This package provides:
//   - Function: the capability every activation implements
//   - ReLU, Sigmoid, Tanh: the built-in variants
//   - A name registry used to select activations from configuration
//
// All built-in variants are stateless value types. A single value can be
// shared by every layer of a network and by networks in different goroutines.
package activation

import (
	"math"
)

// Function is a scalar activation with its derivative.
//
// Derivative is expressed in terms of the raw (pre-activation) input x, even
// when the closed form is naturally written through Activate(x), as for Sigmoid.
type Function interface {
	// Activate returns f(x).
	Activate(x float64) float64

	// Derivative returns f'(x).
	Derivative(x float64) float64
}

// Named is implemented by activations that have a registry name.
type Named interface {
	Name() string
}

// ReLU is the non-negative clamp f(x) = max(0, x).
//
// The derivative at the boundary point x = 0 is defined as 1.
type ReLU struct{}

// Activate returns max(0, x).
func (ReLU) Activate(x float64) float64 {
	return math.Max(0, x)
}

// Derivative returns 1 for x >= 0 and 0 otherwise.
func (ReLU) Derivative(x float64) float64 {
	if x >= 0 {
		return 1
	}
	return 0
}

// Name returns "relu".
func (ReLU) Name() string { return "relu" }

// Sigmoid is the logistic function σ(x) = 1 / (1 + exp(-x)).
//
// Sigmoid squashes values to the range (0, 1).
type Sigmoid struct{}

// Activate returns 1 / (1 + exp(-x)).
func (Sigmoid) Activate(x float64) float64 {
	return 1.0 / (1.0 + math.Exp(-x))
}

// Derivative returns σ(x) * (1 - σ(x)).
func (s Sigmoid) Derivative(x float64) float64 {
	a := s.Activate(x)
	return a * (1 - a)
}

// Name returns "sigmoid".
func (Sigmoid) Name() string { return "sigmoid" }

// Tanh is the hyperbolic tangent, squashing values to the range (-1, 1).
type Tanh struct{}

// Activate returns tanh(x).
func (Tanh) Activate(x float64) float64 {
	return math.Tanh(x)
}

// Derivative returns 1 / cosh(x)².
func (Tanh) Derivative(x float64) float64 {
	c := math.Cosh(x)
	return 1 / (c * c)
}

// Name returns "tanh".
func (Tanh) Name() string { return "tanh" }

// NameOf returns the name ByName resolves back to f: Name() for Named
// functions, else the name f was registered under, else its Go type.
func NameOf(f Function) string {
	if n, ok := f.(Named); ok {
		return n.Name()
	}
	if name, ok := registeredName(f); ok {
		return name
	}
	return typeName(f)
}
