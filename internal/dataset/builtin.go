package dataset

import (
	"math"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

func truthTable(f func(a, b bool) bool) *Dataset {
	d := &Dataset{}
	for _, a := range []bool{false, true} {
		for _, b := range []bool{false, true} {
			d.Inputs = append(d.Inputs, []float64{bit(a), bit(b)})
			d.Outputs = append(d.Outputs, []float64{bit(f(a, b))})
		}
	}
	return d
}

func bit(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// XOR returns the four rows of exclusive or.
func XOR() *Dataset { return truthTable(func(a, b bool) bool { return a != b }) }

// AND returns the four rows of logical and.
func AND() *Dataset { return truthTable(func(a, b bool) bool { return a && b }) }

// OR returns the four rows of logical or.
func OR() *Dataset { return truthTable(func(a, b bool) bool { return a || b }) }

// Sine returns n evenly spaced samples of sin(t) on [0, π]. n must be at least 2.
func Sine(n int) *Dataset {
	if n < 2 {
		n = 2
	}
	d := &Dataset{}
	for i := 0; i < n; i++ {
		t := math.Pi * float64(i) / float64(n-1)
		d.Inputs = append(d.Inputs, []float64{t})
		d.Outputs = append(d.Outputs, []float64{math.Sin(t)})
	}
	return d
}

var presets = map[string]func() *Dataset{
	"xor":  XOR,
	"and":  AND,
	"or":   OR,
	"sine": func() *Dataset { return Sine(20) },
}

// Preset returns a built-in dataset by name.
func Preset(name string) (*Dataset, error) {
	f, ok := presets[strings.ToLower(name)]
	if !ok {
		return nil, errors.Wrapf(ErrInvalidData, "unknown preset %q (available: %s)", name, strings.Join(PresetNames(), ", "))
	}
	return f(), nil
}

// PresetNames returns the sorted names accepted by Preset.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
