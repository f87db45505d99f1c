// Package fcnn implements a fully-connected feed-forward network trained by
// per-sample backpropagation.
//
// A Network is a chain of dense layers. Each layer keeps its weight matrix
// (fanIn × fanOut), its bias vector and the caches written by the forward
// pass:
//
//	output    = input · weight + bias
//	activated = f(output)
//
// Layer 0 reads the raw input; layer i reads activated[i-1]. A single-layer
// network is valid.
//
// A Network is not safe for concurrent use. Distinct networks share no
// mutable state and may be trained in parallel.
package fcnn

import (
	"github.com/born-ml/morning/internal/activation"
	"github.com/born-ml/morning/internal/linalg"
	"github.com/born-ml/morning/internal/optim"
	"github.com/pkg/errors"
)

// layer is one dense layer with its parameters and per-sample caches.
type layer struct {
	weight *linalg.Matrix
	bias   *linalg.Vector

	input     *linalg.Vector
	output    *linalg.Vector
	activated *linalg.Vector
	delta     *linalg.Vector
}

func newLayer(weight *linalg.Matrix, bias *linalg.Vector) *layer {
	rows, cols := weight.Dims()
	return &layer{
		weight:    weight,
		bias:      bias,
		input:     linalg.ZeroVector(rows),
		output:    linalg.ZeroVector(cols),
		activated: linalg.ZeroVector(cols),
		delta:     linalg.ZeroVector(cols),
	}
}

// Network is a fully-connected feed-forward network.
type Network struct {
	layers     []*layer
	activation activation.Function
	optimizer  optim.Optimizer
	textbook   bool
}

// New creates a network with the given layer sizes, input width first.
//
// layerSizes needs at least two entries, all positive; otherwise
// ErrInvalidTopology is returned. Weights are drawn from cfg.Rand and biases
// start at zero.
//
// Example:
//
//	net, err := fcnn.New(fcnn.Config{}, 2, 3, 1) // 2 inputs, 3 hidden, 1 output
func New(cfg Config, layerSizes ...int) (*Network, error) {
	if len(layerSizes) < 2 {
		return nil, errors.Wrapf(ErrInvalidTopology, "need at least 2 layer sizes, got %d", len(layerSizes))
	}
	for i, size := range layerSizes {
		if size <= 0 {
			return nil, errors.Wrapf(ErrInvalidTopology, "layer size %d is %d (must be > 0)", i, size)
		}
	}

	cfg = cfg.withDefaults()
	n := newNetwork(cfg, len(layerSizes)-1)
	for i := 1; i < len(layerSizes); i++ {
		weight := linalg.RandomMatrix(layerSizes[i-1], layerSizes[i], cfg.Rand)
		n.layers = append(n.layers, newLayer(weight, linalg.ZeroVector(layerSizes[i])))
	}
	return n, nil
}

// FromParameters creates a network from explicit weights and biases.
//
// weights[i] is the fanIn × fanOut matrix of layer i and biases[i] its bias.
// The arrays are copied. Errors:
//   - ErrInvalidTopology if no layer is given
//   - ErrShapeMismatch if the counts differ, an array is empty or ragged, a
//     bias does not match its weight columns, or consecutive layers do not chain
func FromParameters(weights [][][]float64, biases [][]float64, cfg Config) (*Network, error) {
	if len(weights) == 0 {
		return nil, errors.Wrap(ErrInvalidTopology, "no layers")
	}
	if len(weights) != len(biases) {
		return nil, errors.Wrapf(ErrShapeMismatch, "%d weight matrices but %d bias vectors", len(weights), len(biases))
	}

	cfg = cfg.withDefaults()
	n := newNetwork(cfg, len(weights))
	for i := range weights {
		weight, err := linalg.NewMatrix(weights[i])
		if err != nil {
			return nil, errors.WithMessagef(err, "layer %d weight", i)
		}
		bias, err := linalg.NewVector(biases[i])
		if err != nil {
			return nil, errors.WithMessagef(err, "layer %d bias", i)
		}
		if bias.Len() != weight.Cols() {
			return nil, errors.Wrapf(ErrShapeMismatch, "layer %d: bias length %d, weight has %d columns",
				i, bias.Len(), weight.Cols())
		}
		if i > 0 {
			if prev := n.layers[i-1].weight.Cols(); weight.Rows() != prev {
				return nil, errors.Wrapf(ErrShapeMismatch, "layer %d: %d rows do not chain to %d columns of layer %d",
					i, weight.Rows(), prev, i-1)
			}
		}
		n.layers = append(n.layers, newLayer(weight, bias))
	}
	return n, nil
}

func newNetwork(cfg Config, layerCount int) *Network {
	return &Network{
		layers:     make([]*layer, 0, layerCount),
		activation: cfg.Activation,
		optimizer:  cfg.Optimizer,
		textbook:   cfg.TextbookGradient,
	}
}

// LayerCount returns the number of weight layers.
func (n *Network) LayerCount() int {
	return len(n.layers)
}

// InputWidth returns the number of inputs.
func (n *Network) InputWidth() int {
	return n.layers[0].weight.Rows()
}

// OutputWidth returns the number of outputs.
func (n *Network) OutputWidth() int {
	return n.layers[len(n.layers)-1].weight.Cols()
}

// Topology returns the layer sizes, input width first, as passed to New.
func (n *Network) Topology() []int {
	sizes := make([]int, 0, len(n.layers)+1)
	sizes = append(sizes, n.InputWidth())
	for _, l := range n.layers {
		sizes = append(sizes, l.weight.Cols())
	}
	return sizes
}

// Activation returns the activation function applied after every layer.
func (n *Network) Activation() activation.Function {
	return n.activation
}

// SetActivation replaces the activation function. The next Predict uses it.
func (n *Network) SetActivation(f activation.Function) error {
	if f == nil {
		return errors.New("fcnn: nil activation")
	}
	n.activation = f
	return nil
}

// TextbookGradient reports whether the textbook gradient mode is enabled.
func (n *Network) TextbookGradient() bool {
	return n.textbook
}

// SetTextbookGradient switches between the default and textbook gradient.
func (n *Network) SetTextbookGradient(enabled bool) {
	n.textbook = enabled
}

// Optimizer returns the optimizer applying the parameter updates.
func (n *Network) Optimizer() optim.Optimizer {
	return n.optimizer
}

// Weights returns the live weight matrices. Changes made through them are
// seen by the next Predict.
func (n *Network) Weights() []*linalg.Matrix {
	out := make([]*linalg.Matrix, len(n.layers))
	for i, l := range n.layers {
		out[i] = l.weight
	}
	return out
}

// Biases returns the live bias vectors.
func (n *Network) Biases() []*linalg.Vector {
	out := make([]*linalg.Vector, len(n.layers))
	for i, l := range n.layers {
		out[i] = l.bias
	}
	return out
}

// SetWeight copies rows into the weight matrix of layer i.
// The shape must equal the current one.
func (n *Network) SetWeight(i int, rows [][]float64) error {
	if err := n.checkIndex(i); err != nil {
		return err
	}
	m, err := linalg.NewMatrix(rows)
	if err != nil {
		return errors.WithMessagef(err, "SetWeight(%d)", i)
	}
	w := n.layers[i].weight
	if !w.SameShape(m) {
		return errors.Wrapf(ErrShapeMismatch, "SetWeight(%d): got %dx%d, layer is %dx%d",
			i, m.Rows(), m.Cols(), w.Rows(), w.Cols())
	}
	for r := 0; r < m.Rows(); r++ {
		for c := 0; c < m.Cols(); c++ {
			w.Set(r, c, m.At(r, c))
		}
	}
	return nil
}

// SetBias copies data into the bias vector of layer i.
func (n *Network) SetBias(i int, data []float64) error {
	if err := n.checkIndex(i); err != nil {
		return err
	}
	b := n.layers[i].bias
	if len(data) != b.Len() {
		return errors.Wrapf(ErrShapeMismatch, "SetBias(%d): got %d values, layer has %d", i, len(data), b.Len())
	}
	for k, x := range data {
		b.SetAt(k, x)
	}
	return nil
}

// Parameters returns deep copies of all weights and biases in the layout
// accepted by FromParameters.
func (n *Network) Parameters() (weights [][][]float64, biases [][]float64) {
	weights = make([][][]float64, len(n.layers))
	biases = make([][]float64, len(n.layers))
	for i, l := range n.layers {
		weights[i] = l.weight.RawRows()
		biases[i] = l.bias.Data()
	}
	return weights, biases
}

func (n *Network) checkIndex(i int) error {
	if i < 0 || i >= len(n.layers) {
		return errors.Wrapf(ErrLayerIndex, "index %d, network has %d layers", i, len(n.layers))
	}
	return nil
}
