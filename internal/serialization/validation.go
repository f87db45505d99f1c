package serialization

import (
	"fmt"
	"math"
	"slices"
	"strings"
)

// Validation limits for resource protection.
const (
	MaxHeaderSize    = 16 * 1024 * 1024 // 16MB - maximum header size
	MaxTensorCount   = 10_000           // Maximum number of tensors in a file
	MaxTensorNameLen = 256              // Maximum tensor name length
)

// maxElements is the largest element count whose byte size fits in int64.
const maxElements = math.MaxInt64 / float64Bytes

func invalid(typ, tensor, format string, args ...any) *ValidationError {
	return &ValidationError{Type: typ, Tensor: tensor, Details: fmt.Sprintf(format, args...)}
}

// ValidateTensorOffsets checks that every tensor's byte range lies inside a
// data section of dataSize bytes and that no two ranges overlap.
func ValidateTensorOffsets(tensors []TensorMeta, dataSize int64) error {
	if len(tensors) > MaxTensorCount {
		return invalid("too_many_tensors", "", "got %d, max %d", len(tensors), MaxTensorCount)
	}

	byOffset := slices.Clone(tensors)
	slices.SortFunc(byOffset, func(a, b TensorMeta) int {
		switch {
		case a.Offset < b.Offset:
			return -1
		case a.Offset > b.Offset:
			return 1
		}
		return 0
	})

	var prev *TensorMeta
	for i := range byOffset {
		t := &byOffset[i]
		// Offset <= dataSize-Size cannot overflow once both are non-negative.
		if t.Offset < 0 || t.Size < 0 {
			return invalid("negative_offset", t.Name, "offset=%d, size=%d", t.Offset, t.Size)
		}
		if t.Size > dataSize || t.Offset > dataSize-t.Size {
			return invalid("out_of_bounds", t.Name, "offset %d + size %d > data_size %d", t.Offset, t.Size, dataSize)
		}
		if prev != nil && prev.Offset+prev.Size > t.Offset {
			err := invalid("offset_overlap", prev.Name, "regions [%d-%d] and [%d-%d] overlap",
				prev.Offset, prev.Offset+prev.Size, t.Offset, t.Offset+t.Size)
			err.Tensor2 = t.Name
			return err
		}
		prev = t
	}
	return nil
}

// ValidateTensorName checks that name is a parameter of this format:
// "layer.<i>.weight" or "layer.<i>.bias".
func ValidateTensorName(name string) error {
	if len(name) > MaxTensorNameLen {
		return invalid("name_too_long", name, "length %d > max %d", len(name), MaxTensorNameLen)
	}
	if strings.Contains(name, "\x00") {
		return invalid("invalid_name", name, "contains null byte")
	}
	if _, _, ok := parseName(name); !ok {
		return invalid("invalid_name", name, `want "layer.<i>.weight" or "layer.<i>.bias"`)
	}
	return nil
}

// validateTensorShape checks the rank, that every dimension is positive and
// that the byte size implied by the shape equals the data_offsets span. The
// element count is checked against maxElements before every multiplication.
func validateTensorShape(t TensorMeta) error {
	_, kind, _ := parseName(t.Name)
	rank := 1
	if kind == "weight" {
		rank = 2
	}
	if len(t.Shape) != rank {
		return invalid("bad_shape", t.Name, "rank %d, want %d", len(t.Shape), rank)
	}

	elems := int64(1)
	for _, d := range t.Shape {
		if d <= 0 {
			return invalid("bad_shape", t.Name, "dimension %d", d)
		}
		if int64(d) > maxElements/elems {
			return invalid("bad_shape", t.Name, "shape %v exceeds %d elements", t.Shape, int64(maxElements))
		}
		elems *= int64(d)
	}
	if elems*float64Bytes != t.Size {
		return invalid("size_mismatch", t.Name, "shape %v needs %d bytes, data_offsets span %d",
			t.Shape, elems*float64Bytes, t.Size)
	}
	return nil
}
