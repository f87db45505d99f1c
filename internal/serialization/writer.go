package serialization

import (
	"bufio"
	"encoding/binary"
	"encoding/json"
	"io"
	"math"
	"os"
	"sort"

	"github.com/pkg/errors"
)

// Write encodes s to w.
//
// Tensor data is written in alphabetical order by name. The metadata of s is
// copied into the header together with the format name and the checksum of
// the data section.
func Write(w io.Writer, s *State) error {
	if err := s.validate(); err != nil {
		return errors.WithMessage(err, "write")
	}

	type tensor struct {
		name  string
		shape []int64
		data  []float64
	}
	tensors := make([]tensor, 0, 2*len(s.Weights))
	for i, weight := range s.Weights {
		flat := make([]float64, 0, len(weight)*len(weight[0]))
		for _, row := range weight {
			flat = append(flat, row...)
		}
		tensors = append(tensors,
			tensor{weightName(i), []int64{int64(len(weight)), int64(len(weight[0]))}, flat},
			tensor{biasName(i), []int64{int64(len(s.Biases[i]))}, s.Biases[i]},
		)
	}
	sort.Slice(tensors, func(i, j int) bool { return tensors[i].name < tensors[j].name })

	header := make(map[string]any, len(tensors)+1)
	var data []byte
	for _, t := range tensors {
		start := int64(len(data))
		for _, x := range t.data {
			data = binary.LittleEndian.AppendUint64(data, math.Float64bits(x))
		}
		header[t.name] = safeTensorHeader{
			DType:       DTypeF64,
			Shape:       t.shape,
			DataOffsets: [2]int64{start, int64(len(data))},
		}
	}

	meta := make(map[string]string, len(s.Metadata)+2)
	for k, v := range s.Metadata {
		meta[k] = v
	}
	meta[MetaFormat] = FormatName
	meta[MetaChecksum] = ComputeChecksum(data)
	header[metadataKey] = meta

	headerJSON, err := json.Marshal(header)
	if err != nil {
		return errors.Wrap(err, "marshal header")
	}

	var size [8]byte
	binary.LittleEndian.PutUint64(size[:], uint64(len(headerJSON)))
	if _, err := w.Write(size[:]); err != nil {
		return errors.Wrap(err, "write header size")
	}
	if _, err := w.Write(headerJSON); err != nil {
		return errors.Wrap(err, "write header")
	}
	if _, err := w.Write(data); err != nil {
		return errors.Wrap(err, "write tensor data")
	}
	return nil
}

// Save writes s to the file at path, replacing it if it exists.
func Save(path string, s *State) error {
	//nolint:gosec // G304: File path comes from user input, which is expected for model saving
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "create checkpoint")
	}
	bw := bufio.NewWriter(f)
	if err := Write(bw, s); err != nil {
		_ = f.Close()
		return err
	}
	if err := bw.Flush(); err != nil {
		_ = f.Close()
		return errors.Wrap(err, "flush checkpoint")
	}
	return errors.Wrap(f.Close(), "close checkpoint")
}
