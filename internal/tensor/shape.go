package tensor

import "github.com/pkg/errors"

// Shape represents the dimensions of a tensor.
// Zero-length axes are allowed; a tensor with one has no elements.
type Shape []int

// NumElements returns the total number of elements in the tensor.
func (s Shape) NumElements() int {
	if len(s) == 0 {
		return 1 // Scalar has 1 element
	}
	n := 1
	for _, dim := range s {
		n *= dim
	}
	return n
}

// Validate checks if the shape is valid (all dimensions >= 0).
func (s Shape) Validate() error {
	for i, dim := range s {
		if dim < 0 {
			return errors.Wrapf(ErrInvalidShape, "dimension at index %d is %d (must be >= 0)", i, dim)
		}
	}
	return nil
}

// Equal checks if two shapes are equal, rank included.
func (s Shape) Equal(other Shape) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}

// Clone returns a copy of the shape.
func (s Shape) Clone() Shape {
	clone := make(Shape, len(s))
	copy(clone, s)
	return clone
}

// ComputeStrides calculates row-major strides for the shape.
// Strides define memory layout: stride[i] = product of all dimensions after i.
func (s Shape) ComputeStrides() []int {
	strides := make([]int, len(s))
	if len(s) == 0 {
		return strides
	}

	strides[len(s)-1] = 1
	for i := len(s) - 2; i >= 0; i-- {
		strides[i] = strides[i+1] * s[i+1]
	}
	return strides
}

// NormalizeAxis maps a possibly negative axis into [0, len(s)).
// Valid inputs are in [-len(s), len(s)-1]; -1 is the last axis.
func (s Shape) NormalizeAxis(axis int) (int, error) {
	ndim := len(s)
	normalized := axis
	if normalized < 0 {
		normalized += ndim
	}
	if normalized < 0 || normalized >= ndim {
		return 0, errors.Wrapf(ErrIndexOutOfRange, "axis %d for %dD tensor (valid: [%d, %d])", axis, ndim, -ndim, ndim-1)
	}
	return normalized, nil
}

// Split returns the products of the dimensions before and after axis, and the axis size.
// A tensor viewed as [outer, size, inner] reduces along the middle dimension.
func (s Shape) Split(axis int) (outer, size, inner int) {
	outer, inner = 1, 1
	for i := 0; i < axis; i++ {
		outer *= s[i]
	}
	for i := axis + 1; i < len(s); i++ {
		inner *= s[i]
	}
	return outer, s[axis], inner
}

// Reduce returns the shape left after reducing axis, which must already be
// normalized. With keepDim the axis stays with size 1, otherwise it is removed.
func (s Shape) Reduce(axis int, keepDim bool) Shape {
	if keepDim {
		out := s.Clone()
		out[axis] = 1
		return out
	}
	out := make(Shape, 0, len(s)-1)
	out = append(out, s[:axis]...)
	return append(out, s[axis+1:]...)
}
