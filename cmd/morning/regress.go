package main

import (
	"context"
	"fmt"
	"io"

	"github.com/born-ml/morning/internal/activation"
	"github.com/born-ml/morning/internal/tlnn"
	"k8s.io/klog/v2"
)

func runRegress(ctx context.Context, args []string, out io.Writer) error {
	fs := newFlagSet("regress", out)
	var data dataFlags
	data.register(fs, "sine")
	var (
		flagHidden     = fs.Int("hidden", 5, "Hidden units.")
		flagActivation = activationFlag(fs, "tanh")
		flagMethod     = fs.String("method", "gd", "Update rule: gd (gradient descent) or lm (Levenberg-Marquardt).")
		flagLR         = fs.Float64("lr", 0.1, "Step size for gd, damping for lm.")
		flagEpochs     = fs.Int("epochs", 500, "Maximum number of epochs.")
		flagThreshold  = fs.Float64("threshold", 0, "Stop after the pass whose starting MSE is below this value.")
		flagSeed       = fs.Int64("seed", 0, "Seed for the initial parameters (0 uses the clock).")
		flagTrace      = fs.Bool("trace", false, "Record every step and print the last one.")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}

	rows, err := data.load()
	if err != nil {
		return err
	}
	ts, ys, err := rows.Scalars()
	if err != nil {
		return err
	}
	method, err := tlnn.ParseMethod(*flagMethod)
	if err != nil {
		return err
	}
	f, err := activation.ByName(*flagActivation)
	if err != nil {
		return err
	}

	seed := seedOrNow(*flagSeed)
	r, err := tlnn.New(tlnn.Config{
		Hidden:       *flagHidden,
		Activation:   f,
		LearningRate: *flagLR,
		Method:       method,
		Rand:         newRand(seed),
		Trace:        *flagTrace,
	})
	if err != nil {
		return err
	}
	klog.V(1).Infof("regress: hidden=%d method=%s lr=%g seed=%d", *flagHidden, method, *flagLR, seed)

	if err := ctx.Err(); err != nil {
		return err
	}
	losses, err := r.Train(ts, ys, *flagThreshold, *flagEpochs)
	if err != nil {
		return err
	}

	final := "n/a"
	if len(losses) > 0 {
		final = formatError(losses[len(losses)-1], *flagThreshold)
	}
	summary(out, "Regression summary", [][2]string{
		{"hidden", formatCount(r.Hidden())},
		{"method", method.String()},
		{"samples", formatCount(len(ts))},
		{"epochs", formatCount(len(losses)) + " of " + formatCount(*flagEpochs)},
		{"final mse", final},
		{"seed", fmt.Sprint(seed)},
	})

	table := newTable("t", "y", "n(t)")
	for i, t := range ts {
		table.Row(formatFloat(t), formatFloat(ys[i]), formatFloat(r.Forward(t)))
	}
	fmt.Fprintln(out, table.String())

	if tr := r.Trace(); tr != nil && len(tr.Epochs) > 0 {
		steps := tr.Epochs[len(tr.Epochs)-1].Steps
		last := steps[len(steps)-1]
		summary(out, "Last step", [][2]string{
			{"W", formatVector(last.W)},
			{"U", formatVector(last.U)},
			{"V", formatVector(last.V)},
			{"dn", formatFloat(last.DN)},
		})
	}
	return nil
}
