package cpu

import (
	"github.com/born-ml/tensorops/internal/tensor"
	"github.com/pkg/errors"
)

// Squeeze removes a dimension of size 1 at the specified position.
//
// Panics if the dimension size is not 1.
// Supports negative dim indexing.
// This is a view operation (no data copy).
//
// Example:
//
//	x := tensor.Zeros[float32](tensor.Shape{2, 1, 3}, backend)
//	y := backend.Squeeze(x.Raw(), 1)  // Shape: [2, 3]
func (cpu *CPUBackend) Squeeze(x *tensor.RawTensor, dim int) *tensor.RawTensor {
	shape := x.Shape()

	axis, err := shape.NormalizeAxis(dim)
	if err != nil {
		panic(errors.Wrap(err, "squeeze"))
	}

	// Check dimension is size 1
	if shape[axis] != 1 {
		panic(errors.Wrapf(tensor.ErrShapeMismatch, "squeeze: dimension %d has size %d, must be 1", axis, shape[axis]))
	}

	// Create new shape without the squeezed dimension
	newShape := make(tensor.Shape, 0, len(shape)-1)
	for i := range shape {
		if i != axis {
			newShape = append(newShape, shape[i])
		}
	}

	result, err := x.Reshape(newShape)
	if err != nil {
		panic(errors.Wrap(err, "squeeze"))
	}
	return result
}
