package fcnn

import (
	"github.com/born-ml/morning/internal/linalg"
	"github.com/pkg/errors"
)

// backpropagate updates every layer from the caches of the last forward pass
// and returns the sample error (mean(activated - expected))² / 2.
//
// Default mode: the output delta is the raw difference, and layer i+1 is
// updated before delta[i] is computed from its (already updated) weights.
//
// Textbook mode: the output delta includes the activation derivative and all
// deltas are taken from the pre-update weights, which makes the update the
// exact gradient of ½‖activated - expected‖².
func (n *Network) backpropagate(expected *linalg.Vector, learningRate float64) (float64, error) {
	last := len(n.layers) - 1
	out := n.layers[last]

	difference, err := out.activated.Sub(expected)
	if err != nil {
		return 0, errors.WithMessage(err, "backpropagate")
	}
	out.delta = difference
	if n.textbook {
		out.delta, err = difference.Hadamard(out.output.Map(n.activation.Derivative))
		if err != nil {
			return 0, err
		}
	}

	n.optimizer.Begin()
	if n.textbook {
		for i := last - 1; i >= 0; i-- {
			if err := n.hiddenDelta(i); err != nil {
				return 0, err
			}
		}
		for i := last; i >= 0; i-- {
			if err := n.update(i, learningRate); err != nil {
				return 0, err
			}
		}
	} else {
		if err := n.update(last, learningRate); err != nil {
			return 0, err
		}
		for i := last - 1; i >= 0; i-- {
			if err := n.hiddenDelta(i); err != nil {
				return 0, err
			}
			if err := n.update(i, learningRate); err != nil {
				return 0, err
			}
		}
	}

	mean := difference.Mean()
	return mean * mean / 2, nil
}

// hiddenDelta sets delta[i] = (delta[i+1] · weight[i+1]ᵀ) ⊙ f'(output[i]).
func (n *Network) hiddenDelta(i int) error {
	l, next := n.layers[i], n.layers[i+1]
	back, err := next.delta.MulMatrix(next.weight.T())
	if err != nil {
		return errors.WithMessagef(err, "layer %d delta", i)
	}
	l.delta, err = back.Hadamard(l.output.Map(n.activation.Derivative))
	if err != nil {
		return errors.WithMessagef(err, "layer %d delta", i)
	}
	return nil
}

// update applies the gradients outer(input, delta) and delta to layer i.
func (n *Network) update(i int, learningRate float64) error {
	l := n.layers[i]
	if err := n.optimizer.UpdateMatrix(l.weight, linalg.Outer(l.input, l.delta), learningRate); err != nil {
		return errors.WithMessagef(err, "layer %d weight", i)
	}
	if err := n.optimizer.UpdateVector(l.bias, l.delta, learningRate); err != nil {
		return errors.WithMessagef(err, "layer %d bias", i)
	}
	return nil
}
