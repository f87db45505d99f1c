// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides fully-connected feed-forward networks trained by
// backpropagation, their activation functions and a small scalar regressor.
//
// # Overview
//
// This package contains:
//   - Network: dense layers with a shared activation, trained per sample
//   - Activations: ReLU, Sigmoid, Tanh, plus a name registry
//   - Optimizers: SGD (with optional momentum) and Adam
//   - Regressor: a one-hidden-layer scalar model with GD or Levenberg–Marquardt updates
//   - Matrix and Vector: the dense containers behind the parameters
//
// # Basic Usage
//
//	import "github.com/born-ml/morning/nn"
//
//	func main() {
//	    net, err := nn.New(nn.Config{Activation: nn.Sigmoid{}}, 2, 3, 1)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    inputs := [][]float64{{0, 0}, {0, 1}, {1, 0}, {1, 1}}
//	    outputs := [][]float64{{0}, {1}, {1}, {0}}
//	    errs, err := net.TrainUntil(outputs, inputs, 0.001, 0.5, 5000)
//
//	    out, err := net.Predict([]float64{1, 0})
//	}
//
// # Layers
//
// A network built with layer sizes n0, n1, ..., nL has L weight matrices of
// shape n(i-1)×n(i) and L bias vectors. The forward pass computes
//
//	output    = input · weight + bias
//	activated = f(output)
//
// for every layer, feeding each layer the previous layer's activated output.
//
// # Training
//
// Train and TrainUntil make one forward and one backward pass per row, in
// order, and return the average error of every epoch. The per-row error is
// (mean(activated - expected))² / 2.
//
// By default the output delta is the raw difference activated - expected and
// each layer is updated before the next shallower delta is computed. Set
// Config.TextbookGradient to include the output activation derivative and to
// compute all deltas from the pre-update weights.
//
// # Errors
//
// Shape problems return ErrShapeMismatch, bad layer sizes ErrInvalidTopology
// and negative epoch counts ErrInvalidTrainConfig. Use errors.Is to match them.
//
// # Concurrency
//
// A Network is not safe for concurrent use. Separate networks share no state
// and may be trained from different goroutines.
package nn
