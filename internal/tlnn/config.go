package tlnn

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/born-ml/morning/internal/activation"
	"github.com/pkg/errors"
)

// Method selects the parameter update rule.
type Method int

const (
	// GradientDescent applies p -= α·dp.
	GradientDescent Method = iota
	// LevenbergMarquardt applies p -= (dp·dpᵀ + α·I)⁻¹·dp.
	LevenbergMarquardt
)

func (m Method) String() string {
	switch m {
	case GradientDescent:
		return "gd"
	case LevenbergMarquardt:
		return "lm"
	default:
		return fmt.Sprintf("Method(%d)", int(m))
	}
}

// ParseMethod accepts "gd" or "lm".
func ParseMethod(s string) (Method, error) {
	switch strings.ToLower(s) {
	case "gd":
		return GradientDescent, nil
	case "lm":
		return LevenbergMarquardt, nil
	}
	return 0, errors.Wrapf(ErrInvalidConfig, "unknown method %q (want gd or lm)", s)
}

// Source draws uniform samples in [0, 1). *math/rand.Rand satisfies it.
type Source interface {
	Float64() float64
}

// Config holds the regressor options. Zero fields take the defaults.
type Config struct {
	Hidden       int                 // hidden units (default: 5)
	Activation   activation.Function // hidden activation (default: Tanh)
	LearningRate float64             // step size for GD, damping for LM (default: 0.1)
	Method       Method
	Rand         Source // default: time-seeded
	Trace        bool   // record every training step
}

func (c Config) withDefaults() (Config, error) {
	if c.Hidden == 0 {
		c.Hidden = 5
	}
	if c.Hidden < 0 {
		return c, errors.Wrapf(ErrInvalidConfig, "hidden is %d", c.Hidden)
	}
	if c.LearningRate == 0 {
		c.LearningRate = 0.1
	}
	if c.LearningRate < 0 {
		return c, errors.Wrapf(ErrInvalidConfig, "learning rate is %g", c.LearningRate)
	}
	if c.Method != GradientDescent && c.Method != LevenbergMarquardt {
		return c, errors.Wrapf(ErrInvalidConfig, "method %v", c.Method)
	}
	if c.Activation == nil {
		c.Activation = activation.Tanh{}
	}
	if c.Rand == nil {
		//nolint:gosec // math/rand is appropriate for weight initialization
		c.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return c, nil
}
