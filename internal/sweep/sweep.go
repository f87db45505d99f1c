// Package sweep trains one network per (topology, learning rate) pair and
// ranks the results.
//
// Every candidate gets its own Network, optimizer and random source, so the
// runs share no mutable state and execute in parallel.
package sweep

import (
	"context"
	"math"
	"math/rand"
	"sort"

	"github.com/born-ml/morning/internal/activation"
	"github.com/born-ml/morning/internal/dataset"
	"github.com/born-ml/morning/internal/fcnn"
	"github.com/born-ml/morning/internal/optim"
	"github.com/born-ml/morning/internal/parallel"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// ErrNoCandidates is returned when the grid is empty.
var ErrNoCandidates = errors.New("sweep: no candidates")

// Candidate is one point of the grid.
type Candidate struct {
	Layers       []int
	LearningRate float64
	Seed         int64
}

// Result is the outcome of training one candidate.
type Result struct {
	Candidate
	FinalError float64
	Epochs     int
	Errors     []float64
	Err        error
}

// Config describes the grid and the shared training options.
type Config struct {
	Topologies    [][]int
	LearningRates []float64

	Epochs          int
	Threshold       float64
	StopOnThreshold bool

	Activation       activation.Function // shared; activations are stateless
	TextbookGradient bool
	// NewOptimizer builds one optimizer per candidate (default: plain SGD).
	NewOptimizer func() optim.Optimizer

	// Seed of the first candidate; candidate k uses Seed+k.
	Seed     int64
	Parallel parallel.Config
}

// Candidates expands the grid in row-major order (topology, then learning rate).
func (c Config) Candidates() []Candidate {
	out := make([]Candidate, 0, len(c.Topologies)*len(c.LearningRates))
	for _, layers := range c.Topologies {
		for _, lr := range c.LearningRates {
			out = append(out, Candidate{
				Layers:       append([]int(nil), layers...),
				LearningRate: lr,
				Seed:         c.Seed + int64(len(out)),
			})
		}
	}
	return out
}

// Run trains every candidate on data and returns the results sorted by final
// error, failed candidates last.
//
// A candidate whose topology does not match the data fails on its own; Run
// itself only fails for an invalid dataset or an empty grid. ctx cancels the
// remaining epochs of every candidate.
func Run(ctx context.Context, data *dataset.Dataset, cfg Config) ([]Result, error) {
	if err := data.Validate(); err != nil {
		return nil, err
	}
	candidates := cfg.Candidates()
	if len(candidates) == 0 {
		return nil, ErrNoCandidates
	}

	results := make([]Result, len(candidates))
	parallel.ForGrid(len(cfg.Topologies), len(cfg.LearningRates), func(r, c int) {
		k := r*len(cfg.LearningRates) + c
		results[k] = train(ctx, data, cfg, candidates[k])
		klog.V(1).Infof("sweep: %v lr=%g error=%g epochs=%d err=%v",
			candidates[k].Layers, candidates[k].LearningRate, results[k].FinalError, results[k].Epochs, results[k].Err)
	}, cfg.Parallel)

	sort.SliceStable(results, func(i, j int) bool {
		return less(results[i], results[j])
	})
	return results, ctx.Err()
}

func train(ctx context.Context, data *dataset.Dataset, cfg Config, cand Candidate) Result {
	res := Result{Candidate: cand, FinalError: math.NaN()}

	netCfg := fcnn.Config{
		Activation:       cfg.Activation,
		Rand:             newSource(cand.Seed),
		TextbookGradient: cfg.TextbookGradient,
	}
	if cfg.NewOptimizer != nil {
		netCfg.Optimizer = cfg.NewOptimizer()
	}
	net, err := fcnn.New(netCfg, cand.Layers...)
	if err != nil {
		res.Err = err
		return res
	}

	res.Errors, res.Err = net.TrainContext(ctx, data.Outputs, data.Inputs, fcnn.TrainConfig{
		LearningRate:    cand.LearningRate,
		Epochs:          cfg.Epochs,
		Threshold:       cfg.Threshold,
		StopOnThreshold: cfg.StopOnThreshold,
	})
	res.Epochs = len(res.Errors)
	if res.Epochs > 0 {
		res.FinalError = res.Errors[res.Epochs-1]
	}
	return res
}

func newSource(seed int64) *rand.Rand {
	//nolint:gosec // math/rand is appropriate for reproducible weight initialization
	return rand.New(rand.NewSource(seed))
}

// less orders successful results by final error, NaN and failures last.
func less(a, b Result) bool {
	if (a.Err == nil) != (b.Err == nil) {
		return a.Err == nil
	}
	if math.IsNaN(a.FinalError) != math.IsNaN(b.FinalError) {
		return !math.IsNaN(a.FinalError)
	}
	return a.FinalError < b.FinalError
}
