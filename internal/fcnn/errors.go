package fcnn

import (
	"github.com/born-ml/morning/internal/linalg"
	"github.com/pkg/errors"
)

// Sentinel errors returned by the engine. Match them with errors.Is.
var (
	// ErrShapeMismatch is returned when an input, expected output or parameter
	// array does not fit the network topology.
	ErrShapeMismatch = linalg.ErrShapeMismatch

	// ErrInvalidTopology is returned for fewer than two layer sizes or a
	// non-positive size.
	ErrInvalidTopology = errors.New("invalid topology")

	// ErrInvalidTrainConfig is returned for a negative epoch count.
	ErrInvalidTrainConfig = errors.New("invalid train config")

	// ErrLayerIndex is returned by setters called with an out-of-range layer.
	ErrLayerIndex = errors.New("layer index out of range")
)
