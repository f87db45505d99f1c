package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/born-ml/morning/internal/activation"
	"github.com/born-ml/morning/internal/fcnn"
	"github.com/born-ml/morning/internal/serialization"
	"github.com/pkg/errors"
)

func runPredict(_ context.Context, args []string, out io.Writer) error {
	fs := newFlagSet("predict", out)
	var data dataFlags
	data.register(fs, "xor")
	var (
		flagModel      = fs.String("model", "", "SafeTensors file written by 'train -save'.")
		flagInput      = fs.String("input", "", "Semicolon-separated input rows, e.g. \"0,1;1,1\". Overrides -data and -preset.")
		flagActivation = fs.String("activation", "", "Override the activation stored in the model.")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *flagModel == "" {
		return errors.New("-model is required")
	}

	state, err := serialization.Load(*flagModel)
	if err != nil {
		return err
	}
	var cfg fcnn.Config
	if *flagActivation != "" {
		if cfg.Activation, err = activation.ByName(*flagActivation); err != nil {
			return err
		}
	}
	net, err := state.Network(cfg)
	if err != nil {
		return err
	}

	var inputs, expected [][]float64
	if *flagInput != "" {
		for _, row := range strings.Split(*flagInput, ";") {
			x, err := parseFloats(row)
			if err != nil {
				return errors.WithMessage(err, "-input")
			}
			if len(x) > 0 {
				inputs = append(inputs, x)
			}
		}
	} else {
		rows, err := data.load()
		if err != nil {
			return err
		}
		inputs, expected = rows.Inputs, rows.Outputs
	}

	summary(out, "Model", [][2]string{
		{"file", *flagModel},
		{"layers", fmt.Sprint(net.Topology())},
		{"activation", activation.NameOf(net.Activation())},
	})

	headers := []string{"#", "input", "predicted"}
	if expected != nil {
		headers = []string{"#", "input", "expected", "predicted"}
	}
	table := newTable(headers...)
	for k, x := range inputs {
		y, err := net.Predict(x)
		if err != nil {
			return errors.WithMessagef(err, "row %d", k)
		}
		if expected != nil {
			table.Row(fmt.Sprint(k), formatVector(x), formatVector(expected[k]), formatVector(y))
		} else {
			table.Row(fmt.Sprint(k), formatVector(x), formatVector(y))
		}
	}
	fmt.Fprintln(out, table.String())
	return nil
}
