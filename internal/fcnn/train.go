package fcnn

import (
	"context"

	"github.com/born-ml/morning/internal/linalg"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// TrainConfig holds the options of TrainContext.
type TrainConfig struct {
	LearningRate float64
	Epochs       int

	// Threshold stops training after the first epoch whose error is at or
	// below it. Only used when StopOnThreshold is set.
	Threshold       float64
	StopOnThreshold bool

	// OnEpoch, if set, is called after every epoch with the 0-based epoch
	// index and the epoch error.
	OnEpoch func(epoch int, loss float64)
}

// sample is one validated training row.
type sample struct {
	input    *linalg.Vector
	expected *linalg.Vector
}

// Train runs exactly epochs passes over the rows and returns the error of
// every epoch.
//
// outputs[k] is the expected output for inputs[k]. The epoch error is the
// average of the per-sample errors.
func (n *Network) Train(outputs, inputs [][]float64, learningRate float64, epochs int) ([]float64, error) {
	return n.TrainContext(context.Background(), outputs, inputs, TrainConfig{
		LearningRate: learningRate,
		Epochs:       epochs,
	})
}

// TrainUntil is like Train but stops after the first epoch whose error is
// less than or equal to threshold.
func (n *Network) TrainUntil(outputs, inputs [][]float64, threshold, learningRate float64, epochs int) ([]float64, error) {
	return n.TrainContext(context.Background(), outputs, inputs, TrainConfig{
		LearningRate:    learningRate,
		Epochs:          epochs,
		Threshold:       threshold,
		StopOnThreshold: true,
	})
}

// TrainContext trains with the given options.
//
// All rows are validated before the first update. ctx is checked before each
// epoch; when it is done the errors recorded so far are returned together
// with ctx.Err().
func (n *Network) TrainContext(ctx context.Context, outputs, inputs [][]float64, cfg TrainConfig) ([]float64, error) {
	if cfg.Epochs < 0 {
		return nil, errors.Wrapf(ErrInvalidTrainConfig, "epochs is %d (must be >= 0)", cfg.Epochs)
	}
	samples, err := n.samples(outputs, inputs)
	if err != nil {
		return nil, err
	}

	losses := make([]float64, 0, cfg.Epochs)
	for epoch := 0; epoch < cfg.Epochs; epoch++ {
		if err := ctx.Err(); err != nil {
			klog.V(1).Infof("fcnn: training cancelled before epoch %d: %v", epoch, err)
			return losses, err
		}

		var total float64
		for k, s := range samples {
			if _, err := n.forward(s.input); err != nil {
				return losses, errors.WithMessagef(err, "epoch %d sample %d", epoch, k)
			}
			e, err := n.backpropagate(s.expected, cfg.LearningRate)
			if err != nil {
				return losses, errors.WithMessagef(err, "epoch %d sample %d", epoch, k)
			}
			total += e
		}
		loss := total / float64(len(samples))
		losses = append(losses, loss)
		klog.V(2).Infof("fcnn: epoch %d error %g", epoch, loss)

		if cfg.OnEpoch != nil {
			cfg.OnEpoch(epoch, loss)
		}
		if cfg.StopOnThreshold && loss <= cfg.Threshold {
			klog.V(1).Infof("fcnn: error %g reached threshold %g after %d epochs", loss, cfg.Threshold, epoch+1)
			break
		}
	}
	klog.V(1).Infof("fcnn: trained %d epochs on %d samples", len(losses), len(samples))
	return losses, nil
}

// samples validates the rows and converts them to vectors.
func (n *Network) samples(outputs, inputs [][]float64) ([]sample, error) {
	if len(inputs) == 0 {
		return nil, errors.Wrap(ErrShapeMismatch, "no training rows")
	}
	if len(outputs) != len(inputs) {
		return nil, errors.Wrapf(ErrShapeMismatch, "%d output rows for %d input rows", len(outputs), len(inputs))
	}

	in, out := n.InputWidth(), n.OutputWidth()
	samples := make([]sample, len(inputs))
	for k := range inputs {
		if len(inputs[k]) != in {
			return nil, errors.Wrapf(ErrShapeMismatch, "input row %d has %d values, network expects %d", k, len(inputs[k]), in)
		}
		if len(outputs[k]) != out {
			return nil, errors.Wrapf(ErrShapeMismatch, "output row %d has %d values, network produces %d", k, len(outputs[k]), out)
		}
		x, err := linalg.NewVector(inputs[k])
		if err != nil {
			return nil, err
		}
		y, err := linalg.NewVector(outputs[k])
		if err != nil {
			return nil, err
		}
		samples[k] = sample{input: x, expected: y}
	}
	return samples, nil
}
