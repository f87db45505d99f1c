package main

import (
	"context"
	"fmt"
	"io"

	"github.com/born-ml/morning/internal/activation"
	"github.com/born-ml/morning/internal/fcnn"
	"github.com/born-ml/morning/internal/serialization"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

func runTrain(ctx context.Context, args []string, out io.Writer) error {
	fs := newFlagSet("train", out)
	var data dataFlags
	data.register(fs, "xor")
	var (
		flagLayers     = fs.String("layers", "", "Comma-separated layer sizes, input first (default: <inputs>,3,<outputs>).")
		flagActivation = activationFlag(fs, "sigmoid")
		flagLR         = fs.Float64("lr", 0.5, "Learning rate.")
		flagEpochs     = fs.Int("epochs", 1000, "Maximum number of epochs.")
		flagThreshold  = fs.Float64("threshold", 0, "Stop after the first epoch with error at or below this value (0 disables).")
		flagSeed       = fs.Int64("seed", 0, "Seed for the initial weights (0 uses the clock).")
		flagTextbook   = fs.Bool("textbook", false, "Include the output activation derivative in the output delta.")
		flagOptimizer  = fs.String("optimizer", "sgd", "Update rule: sgd or adam.")
		flagMomentum   = fs.Float64("momentum", 0, "SGD momentum.")
		flagProgress   = fs.Bool("progress", true, "Show a progress bar.")
		flagSave       = fs.String("save", "", "Write the trained parameters to this SafeTensors file.")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}

	rows, err := data.load()
	if err != nil {
		return err
	}
	layers, err := parseInts(*flagLayers)
	if err != nil {
		return errors.WithMessage(err, "-layers")
	}
	layers = topology(layers, rows, 3)
	f, err := activation.ByName(*flagActivation)
	if err != nil {
		return err
	}
	newOptimizer, err := optimizerFactory(*flagOptimizer, *flagMomentum)
	if err != nil {
		return err
	}

	seed := seedOrNow(*flagSeed)
	net, err := fcnn.New(fcnn.Config{
		Activation:       f,
		Rand:             newRand(seed),
		Optimizer:        newOptimizer(),
		TextbookGradient: *flagTextbook,
	}, layers...)
	if err != nil {
		return err
	}
	klog.V(1).Infof("train: layers=%v activation=%s lr=%g seed=%d", layers, activation.NameOf(f), *flagLR, seed)

	var bar *epochBar
	if *flagProgress {
		bar = newEpochBar(out, *flagEpochs, "training")
	}
	losses, err := net.TrainContext(ctx, rows.Outputs, rows.Inputs, fcnn.TrainConfig{
		LearningRate:    *flagLR,
		Epochs:          *flagEpochs,
		Threshold:       *flagThreshold,
		StopOnThreshold: *flagThreshold > 0,
		OnEpoch:         bar.onEpoch,
	})
	bar.finish(out)
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	final := "n/a"
	if len(losses) > 0 {
		final = formatError(losses[len(losses)-1], *flagThreshold)
	}
	summary(out, "Training summary", [][2]string{
		{"layers", fmt.Sprint(net.Topology())},
		{"activation", activation.NameOf(f)},
		{"samples", formatCount(rows.Len())},
		{"epochs", formatCount(len(losses)) + " of " + formatCount(*flagEpochs)},
		{"final error", final},
		{"seed", fmt.Sprint(seed)},
	})
	if errors.Is(err, context.Canceled) {
		fmt.Fprintln(out, badStyle.Render("interrupted"))
	}

	table := newTable("#", "input", "expected", "predicted")
	for k := range rows.Inputs {
		predicted, err := net.Predict(rows.Inputs[k])
		if err != nil {
			return err
		}
		table.Row(fmt.Sprint(k), formatVector(rows.Inputs[k]), formatVector(rows.Outputs[k]), formatVector(predicted))
	}
	fmt.Fprintln(out, table.String())

	if *flagSave != "" {
		if err := serialization.Save(*flagSave, serialization.FromNetwork(net)); err != nil {
			return err
		}
		fmt.Fprintf(out, "saved %s\n", *flagSave)
	}
	return nil
}
