package fcnn

import (
	"github.com/born-ml/morning/internal/linalg"
	"github.com/pkg/errors"
)

// Predict runs the forward pass and returns a copy of the last layer's
// activated output.
//
// input must have InputWidth() entries, otherwise ErrShapeMismatch is returned
// and the caches are left untouched. A successful call overwrites every
// forward cache.
func (n *Network) Predict(input []float64) ([]float64, error) {
	if len(input) != n.InputWidth() {
		return nil, errors.Wrapf(ErrShapeMismatch, "Predict: input has %d values, network expects %d",
			len(input), n.InputWidth())
	}
	x, err := linalg.NewVector(input)
	if err != nil {
		return nil, err
	}
	out, err := n.forward(x)
	if err != nil {
		return nil, err
	}
	return out.Data(), nil
}

// forward propagates x through every layer, filling the caches.
func (n *Network) forward(x *linalg.Vector) (*linalg.Vector, error) {
	for i, l := range n.layers {
		product, err := x.MulMatrix(l.weight)
		if err != nil {
			return nil, errors.WithMessagef(err, "layer %d", i)
		}
		output, err := product.Add(l.bias)
		if err != nil {
			return nil, errors.WithMessagef(err, "layer %d", i)
		}
		l.input = x
		l.output = output
		l.activated = output.Map(n.activation.Activate)
		x = l.activated
	}
	return x, nil
}
