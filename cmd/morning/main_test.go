package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/born-ml/morning/internal/dataset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHelpers(t *testing.T) {
	ints, err := parseInts(" 2, 3 ,1,")
	require.NoError(t, err)
	assert.Equal(t, []int{2, 3, 1}, ints)

	_, err = parseInts("2,x")
	assert.Error(t, err)

	floats, err := parseFloats("0.1,0.5,1")
	require.NoError(t, err)
	assert.Equal(t, []float64{0.1, 0.5, 1}, floats)

	tops, err := parseTopologies("2,3,1;;2,4,1")
	require.NoError(t, err)
	assert.Equal(t, [][]int{{2, 3, 1}, {2, 4, 1}}, tops)

	empty, err := parseTopologies("")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestTopologyDefault(t *testing.T) {
	data := dataset.XOR()
	assert.Equal(t, []int{2, 3, 1}, topology(nil, data, 3))
	assert.Equal(t, []int{2, 5, 1}, topology([]int{2, 5, 1}, data, 3))
}

func TestOptimizerFactory(t *testing.T) {
	for _, name := range []string{"sgd", "SGD", "adam"} {
		newOptimizer, err := optimizerFactory(name, 0.9)
		require.NoError(t, err, name)
		a, b := newOptimizer(), newOptimizer()
		assert.NotSame(t, a, b, "each call must build a fresh optimizer")
	}
	_, err := optimizerFactory("rmsprop", 0)
	assert.Error(t, err)
}

func TestSeedOrNow(t *testing.T) {
	assert.Equal(t, int64(7), seedOrNow(7))
	assert.NotZero(t, seedOrNow(0))
}

func TestRunTrain(t *testing.T) {
	var out bytes.Buffer
	err := runTrain(context.Background(), []string{
		"-preset", "xor", "-epochs", "20", "-seed", "1", "-progress=false",
	}, &out)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Training summary")
	assert.Contains(t, out.String(), "20 of 20")
	assert.Contains(t, out.String(), "predicted")
}

func TestRunTrain_CSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "and.csv")
	csv := "a,b,y\n0,0,0\n0,1,0\n1,0,0\n1,1,1\n"
	require.NoError(t, os.WriteFile(path, []byte(csv), 0o600))

	var out bytes.Buffer
	err := runTrain(context.Background(), []string{
		"-data", path, "-outputs", "y", "-layers", "2,2,1", "-epochs", "5",
		"-seed", "3", "-optimizer", "adam", "-progress=false",
	}, &out)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "[2 2 1]")
}

func TestRunTrain_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"unknown preset", []string{"-preset", "nope"}},
		{"bad layers", []string{"-layers", "2,x,1"}},
		{"wrong input width", []string{"-layers", "3,2,1"}},
		{"unknown activation", []string{"-activation", "softplus"}},
		{"unknown optimizer", []string{"-optimizer", "rmsprop"}},
		{"missing file", []string{"-data", filepath.Join(t.TempDir(), "missing.csv")}},
		{"unknown flag", []string{"-nope"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			args := append([]string{"-epochs", "1", "-progress=false"}, tt.args...)
			assert.Error(t, runTrain(context.Background(), args, &out))
		})
	}
}

func TestRunTrain_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	err := runTrain(ctx, []string{"-epochs", "10", "-seed", "1", "-progress=false"}, &out)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "interrupted")
}

func TestRunSweep(t *testing.T) {
	var out bytes.Buffer
	err := runSweep(context.Background(), []string{
		"-preset", "or", "-topologies", "2,2,1;2,3,1", "-lrs", "0.5,1",
		"-epochs", "10", "-workers", "2", "-top", "3",
	}, &out)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Sweep summary")
	assert.Contains(t, out.String(), "rank")
	assert.Contains(t, out.String(), "[2 3 1]")
}

func TestRunSweep_Errors(t *testing.T) {
	var out bytes.Buffer
	assert.Error(t, runSweep(context.Background(), []string{"-lrs", "a"}, &out))
	assert.Error(t, runSweep(context.Background(), []string{"-topologies", "2,;x"}, &out))
	assert.Error(t, runSweep(context.Background(), []string{"-lrs", ""}, &out))
}

func TestRunRegress(t *testing.T) {
	var out bytes.Buffer
	err := runRegress(context.Background(), []string{
		"-epochs", "5", "-seed", "2", "-trace",
	}, &out)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Regression summary")
	assert.Contains(t, out.String(), "Last step")
	assert.Contains(t, out.String(), "gd")
}

func TestRunRegress_Errors(t *testing.T) {
	var out bytes.Buffer
	assert.Error(t, runRegress(context.Background(), []string{"-preset", "xor"}, &out))
	assert.Error(t, runRegress(context.Background(), []string{"-method", "newton"}, &out))
	assert.Error(t, runRegress(context.Background(), []string{"-hidden", "-1"}, &out))
}

func TestRunVersion(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, runVersion(context.Background(), nil, &out))
	assert.Equal(t, "morning "+version+"\n", out.String())
}

func TestUsage(t *testing.T) {
	var out bytes.Buffer
	usage(&out)
	for _, cmd := range commands {
		assert.Contains(t, out.String(), cmd.name)
	}
}

func TestTrainSaveAndPredict(t *testing.T) {
	path := filepath.Join(t.TempDir(), "xor.safetensors")

	var out bytes.Buffer
	err := runTrain(context.Background(), []string{
		"-epochs", "10", "-seed", "5", "-activation", "tanh", "-progress=false", "-save", path,
	}, &out)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "saved "+path)

	out.Reset()
	require.NoError(t, runPredict(context.Background(), []string{"-model", path, "-input", "0,1;1,1"}, &out))
	assert.Contains(t, out.String(), "tanh")
	assert.Contains(t, out.String(), "[1.0000 1.0000]")

	out.Reset()
	require.NoError(t, runPredict(context.Background(), []string{"-model", path, "-preset", "xor"}, &out))
	assert.Contains(t, out.String(), "expected")
}

func TestRunPredict_Errors(t *testing.T) {
	var out bytes.Buffer
	assert.Error(t, runPredict(context.Background(), nil, &out))
	assert.Error(t, runPredict(context.Background(), []string{"-model", filepath.Join(t.TempDir(), "none")}, &out))
}
