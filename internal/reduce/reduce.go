// Package reduce implements multi-axis reductions and tolerance-based equality
// over raw tensors. Every function panics on misuse with an error wrapping one
// of the tensor sentinel errors, like the backends it calls.
package reduce

import (
	"slices"

	"github.com/born-ml/tensorops/internal/tensor"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// axisReducer reduces one axis; it is either Backend.SumDim or Backend.MeanDim.
type axisReducer func(x *tensor.RawTensor, dim int, keepDim bool) *tensor.RawTensor

// Mean averages x over dims. A nil dims averages every element into a scalar,
// ignores keepDim and leaves out untouched.
func Mean(b tensor.Backend, x *tensor.RawTensor, dims []int, keepDim bool, out *tensor.RawTensor) *tensor.RawTensor {
	if dims == nil {
		return b.Mean(x)
	}
	return writeBack("mean", reduceAxes("mean", b, b.MeanDim, x, dims, keepDim), out)
}

// Sum adds x over dims. A nil dims sums every element into a scalar, ignores
// keepDim and leaves out untouched.
func Sum(b tensor.Backend, x *tensor.RawTensor, dims []int, keepDim bool, out *tensor.RawTensor) *tensor.RawTensor {
	if dims == nil {
		return b.Sum(x)
	}
	return writeBack("sum", reduceAxes("sum", b, b.SumDim, x, dims, keepDim), out)
}

// SortedAxes normalizes dims against shape and returns them in ascending order.
// Fails on an out-of-range axis or an axis named twice.
// A scalar shape accepts axis 0 (or -1) as if it had a single size-1 axis.
func SortedAxes(shape tensor.Shape, dims []int) ([]int, error) {
	bounds := shape
	if len(shape) == 0 {
		bounds = tensor.Shape{1}
	}
	axes := make([]int, len(dims))
	for i, dim := range dims {
		axis, err := bounds.NormalizeAxis(dim)
		if err != nil {
			return nil, err
		}
		axes[i] = axis
	}
	slices.Sort(axes)
	for i := 1; i < len(axes); i++ {
		if axes[i] == axes[i-1] {
			return nil, errors.Wrapf(tensor.ErrDuplicateAxis, "axis %d in %v", axes[i], dims)
		}
	}
	return axes, nil
}

// reduceAxes reduces x along each axis in ascending order, keeping every
// intermediate at full rank, then squeezes the reduced axes unless keepDim.
// Squeezing the k-th reduced axis happens at axis-k, since k earlier axes are gone.
func reduceAxes(op string, b tensor.Backend, reduce axisReducer, x *tensor.RawTensor, dims []int, keepDim bool) *tensor.RawTensor {
	axes, err := SortedAxes(x.Shape(), dims)
	if err != nil {
		panic(errors.Wrap(err, op))
	}
	if len(axes) == 0 || len(x.Shape()) == 0 {
		return x.Clone()
	}

	result := x
	for _, axis := range axes {
		result = reduce(result, axis, true)
	}
	if !keepDim {
		for k, axis := range axes {
			result = b.Squeeze(result, axis-k)
		}
	}

	if klog.V(2).Enabled() {
		klog.Infof("%s over axes %v of %v on %s -> %v", op, axes, x.Shape(), b.Name(), result.Shape())
	}
	return result
}

// writeBack copies result into out when out is given and returns result.
func writeBack(op string, result, out *tensor.RawTensor) *tensor.RawTensor {
	if out == nil {
		return result
	}
	if err := out.CopyFrom(result); err != nil {
		panic(errors.Wrapf(err, "%s: writing result into out", op))
	}
	return result
}
