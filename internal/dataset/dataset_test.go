package dataset

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltins(t *testing.T) {
	x := XOR()
	require.NoError(t, x.Validate())
	assert.Equal(t, [][]float64{{0, 0}, {0, 1}, {1, 0}, {1, 1}}, x.Inputs)
	assert.Equal(t, [][]float64{{0}, {1}, {1}, {0}}, x.Outputs)
	assert.Equal(t, [][]float64{{0}, {0}, {0}, {1}}, AND().Outputs)
	assert.Equal(t, [][]float64{{0}, {1}, {1}, {1}}, OR().Outputs)
	assert.Equal(t, 2, x.InputWidth())
	assert.Equal(t, 1, x.OutputWidth())

	s := Sine(5)
	assert.Equal(t, 5, s.Len())
	ts, ys, err := s.Scalars()
	require.NoError(t, err)
	assert.InDelta(t, math.Pi, ts[4], 1e-15)
	assert.InDelta(t, 1, ys[2], 1e-15)

	_, _, err = x.Scalars()
	assert.ErrorIs(t, err, ErrInvalidData)
}

func TestPreset(t *testing.T) {
	d, err := Preset("XOR")
	require.NoError(t, err)
	assert.Equal(t, XOR(), d)

	_, err = Preset("nand")
	assert.ErrorIs(t, err, ErrInvalidData)
	assert.Equal(t, []string{"and", "or", "sine", "xor"}, PresetNames())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		d    Dataset
	}{
		{"empty", Dataset{}},
		{"row counts", Dataset{Inputs: [][]float64{{1}}, Outputs: nil}},
		{"empty rows", Dataset{Inputs: [][]float64{{}}, Outputs: [][]float64{{1}}}},
		{"ragged", Dataset{Inputs: [][]float64{{1, 2}, {3}}, Outputs: [][]float64{{1}, {2}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.d.Validate(), ErrInvalidData)
		})
	}
}

func TestReadCSV(t *testing.T) {
	const data = `a,b,y
0,0,0
0,1,1
1,0,1
1,1,0
`
	d, err := ReadCSV(strings.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, XOR(), d)
}

func TestReadCSV_OutputColumns(t *testing.T) {
	const data = `y1,x,y2
1,0.5,2
3,1.5,4
`
	d, err := ReadCSV(strings.NewReader(data), "y2", "y1")
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{0.5}, {1.5}}, d.Inputs)
	assert.Equal(t, [][]float64{{2, 1}, {4, 3}}, d.Outputs)
}

func TestReadCSV_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
		outs []string
	}{
		{"non numeric", "a,y\n1,yes\n2,no\n", nil},
		{"single column", "y\n1\n2\n", nil},
		{"unknown output", "a,y\n1,2\n", []string{"z"}},
		{"all outputs", "a,y\n1,2\n", []string{"a", "y"}},
		{"no rows", "a,y\n", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadCSV(strings.NewReader(tt.data), tt.outs...)
			assert.ErrorIs(t, err, ErrInvalidData)
		})
	}
}
