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

// Read decodes a checkpoint written by Write.
//
// Every tensor name, shape and byte range is validated before any data is
// decoded, and the data checksum is verified when the header carries one.
func Read(r io.Reader) (*State, error) {
	var size [8]byte
	if _, err := io.ReadFull(r, size[:]); err != nil {
		return nil, errors.Wrap(err, "read header size")
	}
	headerSize := binary.LittleEndian.Uint64(size[:])
	if headerSize > MaxHeaderSize {
		return nil, errors.Wrapf(ErrHeaderTooLarge, "%d bytes", headerSize)
	}
	headerJSON := make([]byte, headerSize)
	if _, err := io.ReadFull(r, headerJSON); err != nil {
		return nil, errors.Wrap(err, "read header")
	}
	metas, metadata, err := parseHeader(headerJSON)
	if err != nil {
		return nil, err
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "read tensor data")
	}
	if err := ValidateTensorOffsets(metas, int64(len(data))); err != nil {
		return nil, err
	}
	if sum, ok := metadata[MetaChecksum]; ok {
		if err := ValidateChecksum(data, sum); err != nil {
			return nil, err
		}
	}
	return assemble(metas, metadata, data)
}

// Load reads the checkpoint file at path.
func Load(path string) (*State, error) {
	//nolint:gosec // G304: File path comes from user input, which is expected for model loading
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open checkpoint")
	}
	defer f.Close()

	s, err := Read(bufio.NewReader(f))
	if err != nil {
		return nil, errors.WithMessagef(err, "load %s", path)
	}
	return s, nil
}

// parseHeader decodes the JSON header into tensor metadata sorted by name
// and the string metadata map.
func parseHeader(headerJSON []byte) ([]TensorMeta, map[string]string, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(headerJSON, &raw); err != nil {
		return nil, nil, errors.Wrapf(ErrInvalidHeader, "%v", err)
	}
	if len(raw) > MaxTensorCount+1 {
		return nil, nil, invalid("too_many_tensors", "", "got %d, max %d", len(raw)-1, MaxTensorCount)
	}

	metadata := map[string]string{}
	metas := make([]TensorMeta, 0, len(raw))
	for name, msg := range raw {
		if name == metadataKey {
			if err := json.Unmarshal(msg, &metadata); err != nil {
				return nil, nil, errors.Wrapf(ErrInvalidHeader, "metadata: %v", err)
			}
			continue
		}
		if err := ValidateTensorName(name); err != nil {
			return nil, nil, err
		}
		var h safeTensorHeader
		if err := json.Unmarshal(msg, &h); err != nil {
			return nil, nil, errors.Wrapf(ErrInvalidHeader, "tensor %q: %v", name, err)
		}
		if h.DType != DTypeF64 {
			return nil, nil, errors.Wrapf(ErrUnsupportedDType, "tensor %q has dtype %q, want %s", name, h.DType, DTypeF64)
		}
		start, end := h.DataOffsets[0], h.DataOffsets[1]
		if start < 0 || end < start {
			return nil, nil, invalid("negative_offset", name, "data_offsets [%d, %d]", start, end)
		}
		shape := make([]int, len(h.Shape))
		for i, d := range h.Shape {
			if d <= 0 || d > maxElements {
				return nil, nil, invalid("bad_shape", name, "dimension %d", d)
			}
			shape[i] = int(d)
		}
		t := TensorMeta{
			Name:   name,
			DType:  h.DType,
			Shape:  shape,
			Offset: start,
			Size:   end - start,
		}
		if err := validateTensorShape(t); err != nil {
			return nil, nil, err
		}
		metas = append(metas, t)
	}
	sort.Slice(metas, func(i, j int) bool { return metas[i].Name < metas[j].Name })
	return metas, metadata, nil
}

// assemble decodes the tensors into per-layer weights and biases. Layers must
// be numbered 0..L-1 with exactly one weight and one bias each.
func assemble(metas []TensorMeta, metadata map[string]string, data []byte) (*State, error) {
	weights := map[int]TensorMeta{}
	biases := map[int]TensorMeta{}
	for _, t := range metas {
		layer, kind, _ := parseName(t.Name)
		if kind == "weight" {
			weights[layer] = t
		} else {
			biases[layer] = t
		}
	}

	s := &State{
		Weights:  make([][][]float64, len(weights)),
		Biases:   make([][]float64, len(weights)),
		Metadata: metadata,
	}
	for i := range s.Weights {
		w, ok := weights[i]
		if !ok {
			return nil, invalid("missing_tensor", weightName(i), "layers must be numbered from 0")
		}
		b, ok := biases[i]
		if !ok {
			return nil, invalid("missing_tensor", biasName(i), "every weight needs a bias")
		}
		flat := decode(data, w)
		rows, cols := w.Shape[0], w.Shape[1]
		s.Weights[i] = make([][]float64, rows)
		for r := 0; r < rows; r++ {
			s.Weights[i][r] = flat[r*cols : (r+1)*cols : (r+1)*cols]
		}
		s.Biases[i] = decode(data, b)
	}
	if len(biases) != len(weights) {
		return nil, invalid("layer_count", "", "%d weight tensors, %d bias tensors", len(weights), len(biases))
	}
	if err := s.validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func decode(data []byte, t TensorMeta) []float64 {
	raw := data[t.Offset : t.Offset+t.Size]
	out := make([]float64, len(raw)/float64Bytes)
	for i := range out {
		out[i] = math.Float64frombits(binary.LittleEndian.Uint64(raw[i*float64Bytes:]))
	}
	return out
}
