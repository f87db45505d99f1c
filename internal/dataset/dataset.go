// Package dataset holds training rows for the networks and loads them from
// CSV files.
package dataset

import (
	"io"
	"math"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/pkg/errors"
)

// ErrInvalidData is returned for empty, ragged or non-numeric data.
var ErrInvalidData = errors.New("invalid dataset")

// Dataset is a set of input rows and their expected output rows.
type Dataset struct {
	Inputs  [][]float64
	Outputs [][]float64
}

// Len returns the number of rows.
func (d *Dataset) Len() int {
	return len(d.Inputs)
}

// InputWidth returns the width of the input rows, or 0 for an empty dataset.
func (d *Dataset) InputWidth() int {
	if len(d.Inputs) == 0 {
		return 0
	}
	return len(d.Inputs[0])
}

// OutputWidth returns the width of the output rows, or 0 for an empty dataset.
func (d *Dataset) OutputWidth() int {
	if len(d.Outputs) == 0 {
		return 0
	}
	return len(d.Outputs[0])
}

// Validate checks that the dataset is non-empty and rectangular.
func (d *Dataset) Validate() error {
	if len(d.Inputs) == 0 {
		return errors.Wrap(ErrInvalidData, "no rows")
	}
	if len(d.Inputs) != len(d.Outputs) {
		return errors.Wrapf(ErrInvalidData, "%d input rows, %d output rows", len(d.Inputs), len(d.Outputs))
	}
	in, out := d.InputWidth(), d.OutputWidth()
	if in == 0 || out == 0 {
		return errors.Wrap(ErrInvalidData, "empty rows")
	}
	for k := range d.Inputs {
		if len(d.Inputs[k]) != in || len(d.Outputs[k]) != out {
			return errors.Wrapf(ErrInvalidData, "row %d is %d→%d, expected %d→%d",
				k, len(d.Inputs[k]), len(d.Outputs[k]), in, out)
		}
	}
	return nil
}

// Scalars returns the single input and output column of a 1→1 dataset.
func (d *Dataset) Scalars() (ts, ys []float64, err error) {
	if err := d.Validate(); err != nil {
		return nil, nil, err
	}
	if d.InputWidth() != 1 || d.OutputWidth() != 1 {
		return nil, nil, errors.Wrapf(ErrInvalidData, "dataset is %d→%d, want 1→1", d.InputWidth(), d.OutputWidth())
	}
	ts = make([]float64, d.Len())
	ys = make([]float64, d.Len())
	for k := range d.Inputs {
		ts[k] = d.Inputs[k][0]
		ys[k] = d.Outputs[k][0]
	}
	return ts, ys, nil
}

// ReadCSV loads a CSV file with a header row.
//
// The named columns become the outputs and every other column an input. With
// no names, the last column is the output. Every cell must be numeric.
func ReadCSV(r io.Reader, outputColumns ...string) (*Dataset, error) {
	df := dataframe.ReadCSV(r, dataframe.HasHeader(true))
	if df.Err != nil {
		return nil, errors.Wrapf(ErrInvalidData, "read csv: %v", df.Err)
	}
	names := df.Names()
	if df.Nrow() == 0 || len(names) < 2 {
		return nil, errors.Wrapf(ErrInvalidData, "need at least one row and two columns, got %dx%d", df.Nrow(), len(names))
	}
	if len(outputColumns) == 0 {
		outputColumns = names[len(names)-1:]
	}

	isOutput := make(map[string]bool, len(outputColumns))
	for _, name := range outputColumns {
		isOutput[name] = true
	}
	var inputs, outputs [][]float64
	for _, name := range outputColumns {
		col, err := numericColumn(df, name)
		if err != nil {
			return nil, err
		}
		outputs = append(outputs, col)
	}
	for _, name := range names {
		if isOutput[name] {
			continue
		}
		col, err := numericColumn(df, name)
		if err != nil {
			return nil, err
		}
		inputs = append(inputs, col)
	}
	if len(inputs) == 0 {
		return nil, errors.Wrap(ErrInvalidData, "no input columns left")
	}

	d := &Dataset{Inputs: transpose(inputs), Outputs: transpose(outputs)}
	return d, d.Validate()
}

func numericColumn(df dataframe.DataFrame, name string) ([]float64, error) {
	s := df.Col(name)
	if s.Err != nil {
		return nil, errors.Wrapf(ErrInvalidData, "column %q: %v", name, s.Err)
	}
	if s.Type() == series.String || s.Type() == series.Bool {
		return nil, errors.Wrapf(ErrInvalidData, "column %q is not numeric", name)
	}
	values := s.Float()
	for i, v := range values {
		if math.IsNaN(v) {
			return nil, errors.Wrapf(ErrInvalidData, "column %q row %d is missing", name, i)
		}
	}
	return values, nil
}

// transpose turns columns into rows.
func transpose(cols [][]float64) [][]float64 {
	rows := make([][]float64, len(cols[0]))
	for i := range rows {
		rows[i] = make([]float64, len(cols))
		for j := range cols {
			rows[i][j] = cols[j][i]
		}
	}
	return rows
}
