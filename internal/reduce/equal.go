package reduce

import (
	"github.com/born-ml/tensorops/internal/tensor"
	"github.com/pkg/errors"
)

// MaxAbsDiff returns max(|a - b|) over every element, widened to float64.
// x and y must have equal shapes. Tensors without elements give 0.
func MaxAbsDiff(b tensor.Backend, x, y *tensor.RawTensor) float64 {
	if !x.Shape().Equal(y.Shape()) {
		panic(errors.Wrapf(tensor.ErrShapeMismatch, "max abs diff: %v vs %v", x.Shape(), y.Shape()))
	}
	if x.NumElements() == 0 {
		return 0
	}
	d, err := b.Max(b.AbsDiff(x, y)).Float64Item()
	if err != nil {
		panic(errors.Wrap(err, "max abs diff"))
	}
	return d
}

// EqualWithin reports whether x and y have the same shape and every pair of
// elements differs by at most eps. Any NaN difference makes it false.
func EqualWithin(b tensor.Backend, x, y *tensor.RawTensor, eps float64) bool {
	if !x.Shape().Equal(y.Shape()) {
		return false
	}
	d := MaxAbsDiff(b, x, y)
	return 0 <= d && d <= eps
}
