package serialization

import (
	"fmt"
	"strconv"
	"strings"
)

// Format constants.
const (
	DTypeF64     = "F64"          // the only dtype written and accepted
	metadataKey  = "__metadata__" // reserved header entry
	FormatName   = "morning-fcnn"
	float64Bytes = 8
)

// Metadata keys set by the writer and FromNetwork.
const (
	MetaFormat     = "format"
	MetaChecksum   = "sha256"
	MetaActivation = "activation"
	MetaTextbook   = "textbook_gradient"
)

// State is the raw parameter arrays of a network.
//
// Weights[i] is the [in][out] weight matrix of layer i and Biases[i] its bias
// vector, the same layout accepted by fcnn.FromParameters.
type State struct {
	Weights  [][][]float64
	Biases   [][]float64
	Metadata map[string]string
}

// TensorMeta describes a tensor in the file.
type TensorMeta struct {
	Name   string // e.g. "layer.0.weight"
	DType  string
	Shape  []int
	Offset int64 // bytes from the start of the data section
	Size   int64 // bytes
}

// safeTensorHeader is one tensor entry of the JSON header.
type safeTensorHeader struct {
	DType       string   `json:"dtype"`
	Shape       []int64  `json:"shape"`
	DataOffsets [2]int64 `json:"data_offsets"`
}

func weightName(i int) string { return fmt.Sprintf("layer.%d.weight", i) }
func biasName(i int) string   { return fmt.Sprintf("layer.%d.bias", i) }

// parseName splits "layer.<i>.weight" or "layer.<i>.bias".
func parseName(name string) (layer int, kind string, ok bool) {
	parts := strings.Split(name, ".")
	if len(parts) != 3 || parts[0] != "layer" {
		return 0, "", false
	}
	layer, err := strconv.Atoi(parts[1])
	if err != nil || layer < 0 || strconv.Itoa(layer) != parts[1] {
		return 0, "", false
	}
	if parts[2] != "weight" && parts[2] != "bias" {
		return 0, "", false
	}
	return layer, parts[2], true
}

// validate checks that the state has at least one layer and that every
// weight matrix is rectangular with a matching bias.
func (s *State) validate() error {
	if len(s.Weights) == 0 {
		return &ValidationError{Type: "no_layers", Details: "state has no layers"}
	}
	if len(s.Weights) != len(s.Biases) {
		return &ValidationError{
			Type:    "layer_count",
			Details: fmt.Sprintf("%d weight matrices, %d bias vectors", len(s.Weights), len(s.Biases)),
		}
	}
	for i, w := range s.Weights {
		if len(w) == 0 || len(w[0]) == 0 {
			return &ValidationError{Type: "bad_shape", Tensor: weightName(i), Details: "empty matrix"}
		}
		for r, row := range w {
			if len(row) != len(w[0]) {
				return &ValidationError{
					Type:    "bad_shape",
					Tensor:  weightName(i),
					Details: fmt.Sprintf("row %d has %d columns, expected %d", r, len(row), len(w[0])),
				}
			}
		}
		if len(s.Biases[i]) != len(w[0]) {
			return &ValidationError{
				Type:    "bad_shape",
				Tensor:  biasName(i),
				Details: fmt.Sprintf("length %d, weight has %d columns", len(s.Biases[i]), len(w[0])),
			}
		}
	}
	return nil
}
