package fcnn

import (
	"math/rand"
	"testing"

	"github.com/born-ml/morning/internal/activation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seeded(seed int64) Config {
	return Config{Rand: rand.New(rand.NewSource(seed))}
}

// logisticExample is a 2→2→1 sigmoid network with fixed parameters.
func logisticExample(t *testing.T, cfg Config) *Network {
	t.Helper()
	net, err := FromParameters(
		[][][]float64{
			{{0.15, 0.25}, {0.20, 0.30}},
			{{0.40}, {0.45}},
		},
		[][]float64{{0.35, 0.35}, {0.60}},
		cfg,
	)
	require.NoError(t, err)
	return net
}

// TestNew tests construction and the derived accessors.
func TestNew(t *testing.T) {
	net, err := New(seeded(1), 2, 3, 1)
	require.NoError(t, err)

	assert.Equal(t, 2, net.LayerCount())
	assert.Equal(t, 2, net.InputWidth())
	assert.Equal(t, 1, net.OutputWidth())
	assert.Equal(t, []int{2, 3, 1}, net.Topology())
	assert.Equal(t, "sigmoid", activation.NameOf(net.Activation()))
	assert.False(t, net.TextbookGradient())
	assert.NotNil(t, net.Optimizer())

	weights, biases := net.Parameters()
	require.Len(t, weights, 2)
	assert.Len(t, weights[0], 2)
	assert.Len(t, weights[0][0], 3)
	assert.Equal(t, []float64{0, 0, 0}, biases[0])
	assert.Equal(t, []float64{0}, biases[1])
}

// TestNew_Deterministic tests that equal seeds give equal weights.
func TestNew_Deterministic(t *testing.T) {
	a, err := New(seeded(42), 3, 4, 2)
	require.NoError(t, err)
	b, err := New(seeded(42), 3, 4, 2)
	require.NoError(t, err)

	wa, _ := a.Parameters()
	wb, _ := b.Parameters()
	assert.Equal(t, wa, wb)
}

// TestNew_InvalidTopology tests rejected layer sizes.
func TestNew_InvalidTopology(t *testing.T) {
	tests := []struct {
		name  string
		sizes []int
	}{
		{"empty", nil},
		{"single", []int{3}},
		{"zero", []int{2, 0, 1}},
		{"negative", []int{2, -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(Config{}, tt.sizes...)
			assert.ErrorIs(t, err, ErrInvalidTopology)
		})
	}
}

// TestFromParameters_Invalid tests shape validation of explicit parameters.
func TestFromParameters_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		weights [][][]float64
		biases  [][]float64
		want    error
	}{
		{"no layers", nil, nil, ErrInvalidTopology},
		{"count mismatch", [][][]float64{{{1}}}, nil, ErrShapeMismatch},
		{"empty weight", [][][]float64{{}}, [][]float64{{1}}, ErrShapeMismatch},
		{"ragged weight", [][][]float64{{{1, 2}, {3}}}, [][]float64{{1, 2}}, ErrShapeMismatch},
		{"bias length", [][][]float64{{{1, 2}}}, [][]float64{{1}}, ErrShapeMismatch},
		{
			"layers do not chain",
			[][][]float64{{{1, 2}}, {{1}, {2}, {3}}},
			[][]float64{{0, 0}, {0}},
			ErrShapeMismatch,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromParameters(tt.weights, tt.biases, Config{})
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

// TestFromParameters_Copies tests that the network does not alias the caller's arrays.
func TestFromParameters_Copies(t *testing.T) {
	weights := [][][]float64{{{1, 2}}}
	biases := [][]float64{{0, 0}}
	net, err := FromParameters(weights, biases, Config{})
	require.NoError(t, err)

	weights[0][0][0] = 99
	biases[0][1] = 99
	w, b := net.Parameters()
	assert.Equal(t, 1.0, w[0][0][0])
	assert.Equal(t, 0.0, b[0][1])

	// Parameters returns copies as well.
	w[0][0][1] = -5
	assert.Equal(t, 2.0, net.Weights()[0].At(0, 1))
}

// TestSetters tests weight, bias and activation replacement.
func TestSetters(t *testing.T) {
	net := logisticExample(t, Config{})

	require.NoError(t, net.SetWeight(1, [][]float64{{1}, {2}}))
	assert.Equal(t, 2.0, net.Weights()[1].At(1, 0))
	require.NoError(t, net.SetBias(0, []float64{-1, -2}))
	assert.Equal(t, []float64{-1, -2}, net.Biases()[0].Data())

	assert.ErrorIs(t, net.SetWeight(1, [][]float64{{1, 2}}), ErrShapeMismatch)
	assert.ErrorIs(t, net.SetWeight(0, [][]float64{{1}, {2, 3}}), ErrShapeMismatch)
	assert.ErrorIs(t, net.SetBias(1, []float64{1, 2}), ErrShapeMismatch)
	assert.ErrorIs(t, net.SetWeight(2, [][]float64{{1}}), ErrLayerIndex)
	assert.ErrorIs(t, net.SetBias(-1, []float64{1}), ErrLayerIndex)

	require.NoError(t, net.SetActivation(activation.Tanh{}))
	assert.Equal(t, "tanh", activation.NameOf(net.Activation()))
	assert.Error(t, net.SetActivation(nil))

	net.SetTextbookGradient(true)
	assert.True(t, net.TextbookGradient())
}

// TestWeights_Live tests that changes through Weights reach Predict.
func TestWeights_Live(t *testing.T) {
	net, err := FromParameters([][][]float64{{{1}}}, [][]float64{{0}}, Config{Activation: activation.ReLU{}})
	require.NoError(t, err)

	out, err := net.Predict([]float64{3})
	require.NoError(t, err)
	assert.Equal(t, []float64{3}, out)

	net.Weights()[0].Set(0, 0, 2)
	net.Biases()[0].SetAt(0, 1)
	out, err = net.Predict([]float64{3})
	require.NoError(t, err)
	assert.Equal(t, []float64{7}, out)
}

// TestConfig_Defaults tests that zero fields are filled.
func TestConfig_Defaults(t *testing.T) {
	cfg := DefaultConfig()
	assert.IsType(t, activation.Sigmoid{}, cfg.Activation)
	assert.NotNil(t, cfg.Rand)
	assert.NotNil(t, cfg.Optimizer)
	assert.False(t, cfg.TextbookGradient)

	// Every default config gets its own optimizer.
	assert.NotSame(t, cfg.Optimizer, DefaultConfig().Optimizer)
}
