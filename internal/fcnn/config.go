package fcnn

import (
	"math/rand"
	"time"

	"github.com/born-ml/morning/internal/activation"
	"github.com/born-ml/morning/internal/linalg"
	"github.com/born-ml/morning/internal/optim"
)

// Source draws the initial weights. *math/rand.Rand satisfies it.
type Source = linalg.NormalSource

// Config holds construction options for a Network.
//
// Zero-valued fields are replaced by the values of DefaultConfig, so
// Config{} is a valid configuration.
type Config struct {
	// Activation applied after every layer (default: Sigmoid).
	Activation activation.Function

	// Rand draws standard normal initial weights (default: time-seeded).
	Rand Source

	// Optimizer applies the parameter updates (default: plain SGD).
	// The network takes ownership; do not share one optimizer between networks.
	Optimizer optim.Optimizer

	// TextbookGradient multiplies the output delta by the activation
	// derivative and computes every delta from pre-update weights.
	TextbookGradient bool
}

// DefaultConfig returns a Config with the default activation, a time-seeded
// source and a fresh plain SGD optimizer.
func DefaultConfig() Config {
	return Config{}.withDefaults()
}

func (c Config) withDefaults() Config {
	if c.Activation == nil {
		c.Activation = activation.Sigmoid{}
	}
	if c.Rand == nil {
		//nolint:gosec // math/rand is appropriate for weight initialization
		c.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if c.Optimizer == nil {
		c.Optimizer = optim.NewSGD(optim.SGDConfig{})
	}
	return c
}
