package linalg

import "github.com/pkg/errors"

// ErrShapeMismatch is returned when operand dimensions are incompatible, or
// when a container would be built from empty or ragged data.
var ErrShapeMismatch = errors.New("shape mismatch")

// shapeError wraps ErrShapeMismatch with the operation name and the offending shapes.
func shapeError(op string, format string, args ...any) error {
	return errors.Wrapf(ErrShapeMismatch, op+": "+format, args...)
}
