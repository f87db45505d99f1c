// Package main provides the morning CLI: train, sweep and regress on small
// tabular datasets.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"k8s.io/klog/v2"
)

const version = "v0.1.0-dev"

type command struct {
	name  string
	usage string
	run   func(ctx context.Context, args []string, out io.Writer) error
}

var commands = []command{
	{"train", "Train a fully-connected network", runTrain},
	{"sweep", "Train a grid of topologies and learning rates in parallel", runSweep},
	{"predict", "Run a saved network on input rows", runPredict},
	{"regress", "Fit the scalar regressor to a 1→1 dataset", runRegress},
	{"version", "Show version", runVersion},
}

func main() {
	if len(os.Args) < 2 {
		usage(os.Stderr)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	name := os.Args[1]
	for _, cmd := range commands {
		if cmd.name != name {
			continue
		}
		err := cmd.run(ctx, os.Args[2:], os.Stdout)
		klog.Flush()
		if err != nil {
			stop()
			klog.Exitf("%s: %+v", name, err)
		}
		return
	}

	fmt.Fprintf(os.Stderr, "unknown command %q\n\n", name)
	usage(os.Stderr)
	os.Exit(2)
}

func usage(w io.Writer) {
	fmt.Fprintf(w, "morning %s - feed-forward networks trained by backpropagation\n\n", version)
	fmt.Fprintln(w, "Commands:")
	for _, cmd := range commands {
		fmt.Fprintf(w, "  %-10s %s\n", cmd.name, cmd.usage)
	}
	fmt.Fprintln(w, "\nRun 'morning <command> -h' for the flags of a command.")
}

func runVersion(_ context.Context, _ []string, out io.Writer) error {
	_, err := fmt.Fprintf(out, "morning %s\n", version)
	return err
}
