package optim

import (
	"github.com/born-ml/morning/internal/linalg"
	"github.com/pkg/errors"
)

func linalgShapeError(op string, r1, c1, r2, c2 int) error {
	return errors.Wrapf(linalg.ErrShapeMismatch, "%s: parameter %dx%d, gradient %dx%d", op, r1, c1, r2, c2)
}
