package main

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"time"

	"github.com/born-ml/morning/internal/activation"
	"github.com/born-ml/morning/internal/parallel"
	"github.com/born-ml/morning/internal/sweep"
	"github.com/pkg/errors"
)

func runSweep(ctx context.Context, args []string, out io.Writer) error {
	fs := newFlagSet("sweep", out)
	var data dataFlags
	data.register(fs, "xor")
	var (
		flagTopologies = fs.String("topologies", "", "Semicolon-separated layer lists, e.g. \"2,3,1;2,4,1\" (default: hidden sizes 2, 3 and 4).")
		flagLRs        = fs.String("lrs", "0.1,0.5,1", "Comma-separated learning rates.")
		flagActivation = activationFlag(fs, "sigmoid")
		flagEpochs     = fs.Int("epochs", 1000, "Maximum number of epochs per candidate.")
		flagThreshold  = fs.Float64("threshold", 0, "Stop a candidate at this error (0 disables).")
		flagSeed       = fs.Int64("seed", 1, "Seed of the first candidate; candidate k uses seed+k.")
		flagWorkers    = fs.Int("workers", runtime.NumCPU(), "Number of candidates trained at once.")
		flagTextbook   = fs.Bool("textbook", false, "Include the output activation derivative in the output delta.")
		flagOptimizer  = fs.String("optimizer", "sgd", "Update rule: sgd or adam.")
		flagMomentum   = fs.Float64("momentum", 0, "SGD momentum.")
		flagTop        = fs.Int("top", 10, "Number of results to print (0 prints all).")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}

	rows, err := data.load()
	if err != nil {
		return err
	}
	topologies, err := parseTopologies(*flagTopologies)
	if err != nil {
		return errors.WithMessage(err, "-topologies")
	}
	if len(topologies) == 0 {
		for _, hidden := range []int{2, 3, 4} {
			topologies = append(topologies, topology(nil, rows, hidden))
		}
	}
	lrs, err := parseFloats(*flagLRs)
	if err != nil {
		return errors.WithMessage(err, "-lrs")
	}
	f, err := activation.ByName(*flagActivation)
	if err != nil {
		return err
	}
	newOptimizer, err := optimizerFactory(*flagOptimizer, *flagMomentum)
	if err != nil {
		return err
	}

	cfg := sweep.Config{
		Topologies:       topologies,
		LearningRates:    lrs,
		Epochs:           *flagEpochs,
		Threshold:        *flagThreshold,
		StopOnThreshold:  *flagThreshold > 0,
		Activation:       f,
		TextbookGradient: *flagTextbook,
		NewOptimizer:     newOptimizer,
		Seed:             *flagSeed,
		Parallel: parallel.Config{
			Enabled:      *flagWorkers > 1,
			NumWorkers:   *flagWorkers,
			MinChunkSize: 1,
		},
	}

	start := time.Now()
	results, err := sweep.Run(ctx, rows, cfg)
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	summary(out, "Sweep summary", [][2]string{
		{"candidates", formatCount(len(cfg.Candidates()))},
		{"samples", formatCount(rows.Len())},
		{"workers", formatCount(*flagWorkers)},
		{"elapsed", time.Since(start).Round(time.Millisecond).String()},
	})

	table := newTable("rank", "layers", "lr", "seed", "epochs", "final error")
	for i, r := range results {
		if *flagTop > 0 && i >= *flagTop {
			break
		}
		final := formatError(r.FinalError, *flagThreshold)
		if r.Err != nil {
			final = badStyle.Render(r.Err.Error())
		}
		table.Row(fmt.Sprint(i+1), fmt.Sprint(r.Layers), formatFloat(r.LearningRate), fmt.Sprint(r.Seed),
			formatCount(r.Epochs), final)
	}
	fmt.Fprintln(out, table.String())
	return nil
}
