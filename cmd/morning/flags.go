package main

import (
	"flag"
	"io"
	"math/rand"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/born-ml/morning/internal/activation"
	"github.com/born-ml/morning/internal/dataset"
	"github.com/born-ml/morning/internal/optim"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// newFlagSet returns a flag set for one subcommand with the klog flags
// registered on it.
func newFlagSet(name string, out io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(out)
	klog.InitFlags(fs)
	return fs
}

// dataFlags selects the training rows: a CSV file or a built-in preset.
type dataFlags struct {
	path    string
	preset  string
	outputs string
}

func (d *dataFlags) register(fs *flag.FlagSet, preset string) {
	fs.StringVar(&d.path, "data", "", "CSV file with a header row. Overrides -preset.")
	fs.StringVar(&d.preset, "preset", preset,
		"Built-in dataset: "+strings.Join(dataset.PresetNames(), ", ")+".")
	fs.StringVar(&d.outputs, "outputs", "", "Comma-separated output column names of -data (default: last column).")
}

func (d *dataFlags) load() (*dataset.Dataset, error) {
	if d.path == "" {
		return dataset.Preset(d.preset)
	}
	f, err := os.Open(d.path)
	if err != nil {
		return nil, errors.Wrap(err, "open dataset")
	}
	defer f.Close()

	var outputs []string
	if d.outputs != "" {
		outputs = strings.Split(d.outputs, ",")
	}
	data, err := dataset.ReadCSV(f, outputs...)
	if err != nil {
		return nil, errors.WithMessagef(err, "load %s", d.path)
	}
	klog.V(1).Infof("loaded %d rows (%d→%d) from %s", data.Len(), data.InputWidth(), data.OutputWidth(), d.path)
	return data, nil
}

// parseInts parses "2,3,1".
func parseInts(s string) ([]int, error) {
	var out []int
	for _, field := range strings.Split(s, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		n, err := strconv.Atoi(field)
		if err != nil {
			return nil, errors.Wrapf(err, "parse %q", s)
		}
		out = append(out, n)
	}
	return out, nil
}

// parseFloats parses "0.1,0.5,1".
func parseFloats(s string) ([]float64, error) {
	var out []float64
	for _, field := range strings.Split(s, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		x, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "parse %q", s)
		}
		out = append(out, x)
	}
	return out, nil
}

// parseTopologies parses "2,3,1;2,4,1".
func parseTopologies(s string) ([][]int, error) {
	var out [][]int
	for _, part := range strings.Split(s, ";") {
		layers, err := parseInts(part)
		if err != nil {
			return nil, err
		}
		if len(layers) > 0 {
			out = append(out, layers)
		}
	}
	return out, nil
}

// topology returns layers, or in,hidden,out when layers is empty.
func topology(layers []int, data *dataset.Dataset, hidden int) []int {
	if len(layers) > 0 {
		return layers
	}
	return []int{data.InputWidth(), hidden, data.OutputWidth()}
}

// seedOrNow returns seed, or a time-based seed when seed is 0.
func seedOrNow(seed int64) int64 {
	if seed != 0 {
		return seed
	}
	return time.Now().UnixNano()
}

func newRand(seed int64) *rand.Rand {
	//nolint:gosec // math/rand is appropriate for weight initialization
	return rand.New(rand.NewSource(seed))
}

// optimizerFactory maps -optimizer and -momentum to a constructor.
func optimizerFactory(name string, momentum float64) (func() optim.Optimizer, error) {
	switch strings.ToLower(name) {
	case "sgd":
		return func() optim.Optimizer { return optim.NewSGD(optim.SGDConfig{Momentum: momentum}) }, nil
	case "adam":
		return func() optim.Optimizer { return optim.NewAdam(optim.AdamConfig{}) }, nil
	}
	return nil, errors.Errorf("unknown optimizer %q (want sgd or adam)", name)
}

func activationFlag(fs *flag.FlagSet, def string) *string {
	return fs.String("activation", def, "Activation function: "+strings.Join(activation.Names(), ", ")+".")
}
