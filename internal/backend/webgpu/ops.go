//go:build windows

package webgpu

import (
	"math"

	"github.com/born-ml/tensorops/internal/tensor"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// requireFloat32 panics with tensor.ErrUnsupportedDType unless every tensor is float32.
func requireFloat32(op string, xs ...*tensor.RawTensor) {
	for _, x := range xs {
		if x.DType() != tensor.Float32 {
			panic(errors.Wrapf(tensor.ErrUnsupportedDType, "webgpu: %s: only float32 is supported, got %s", op, x.DType()))
		}
	}
}

// AbsDiff computes the element-wise absolute difference |a - b| on GPU.
func (b *Backend) AbsDiff(a, other *tensor.RawTensor) *tensor.RawTensor {
	if !a.Shape().Equal(other.Shape()) {
		panic(errors.Wrapf(tensor.ErrShapeMismatch, "webgpu: absdiff: %v vs %v", a.Shape(), other.Shape()))
	}
	if a.DType() != other.DType() {
		panic(errors.Wrapf(tensor.ErrDTypeMismatch, "webgpu: absdiff: %s vs %s", a.DType(), other.DType()))
	}
	requireFloat32("absdiff", a)

	if a.NumElements() == 0 {
		return b.alloc("absdiff", a.Shape())
	}
	result, err := b.runAbsDiff(a, other)
	if err != nil {
		panic(errors.Wrap(err, "webgpu: absdiff"))
	}
	return result
}

// SumDim sums along dim on GPU. Supports negative dim indexing.
func (b *Backend) SumDim(x *tensor.RawTensor, dim int, keepDim bool) *tensor.RawTensor {
	return b.reduceDim("sumdim", x, dim, keepDim, false)
}

// MeanDim averages along dim on GPU. Over a zero-length dim the mean is NaN.
func (b *Backend) MeanDim(x *tensor.RawTensor, dim int, keepDim bool) *tensor.RawTensor {
	return b.reduceDim("meandim", x, dim, keepDim, true)
}

// Sum computes the total sum (scalar result) by reducing a flat view.
func (b *Backend) Sum(x *tensor.RawTensor) *tensor.RawTensor {
	return b.reduceDim("sum", b.flatten("sum", x), 0, false, false)
}

// Mean computes the total mean (scalar result) by reducing a flat view.
func (b *Backend) Mean(x *tensor.RawTensor) *tensor.RawTensor {
	return b.reduceDim("mean", b.flatten("mean", x), 0, false, true)
}

// Max returns the largest element (scalar result). NaN propagates.
// The scan runs on the host; the result is tagged with the WebGPU device.
func (b *Backend) Max(x *tensor.RawTensor) *tensor.RawTensor {
	requireFloat32("max", x)
	if x.NumElements() == 0 {
		panic(errors.Wrapf(tensor.ErrInvalidShape, "webgpu: max: empty tensor of shape %v", x.Shape()))
	}

	data := x.AsFloat32()
	maxVal := data[0]
	for _, v := range data {
		if math.IsNaN(float64(v)) {
			maxVal = v
			break
		}
		if v > maxVal {
			maxVal = v
		}
	}

	result := b.alloc("max", tensor.Shape{})
	result.AsFloat32()[0] = maxVal
	return result
}

// Squeeze removes a dimension of size 1. This is a view operation (no data copy).
func (b *Backend) Squeeze(x *tensor.RawTensor, dim int) *tensor.RawTensor {
	shape := x.Shape()
	axis, err := shape.NormalizeAxis(dim)
	if err != nil {
		panic(errors.Wrap(err, "webgpu: squeeze"))
	}
	if shape[axis] != 1 {
		panic(errors.Wrapf(tensor.ErrShapeMismatch, "webgpu: squeeze: dimension %d has size %d, must be 1", axis, shape[axis]))
	}

	result, err := x.Reshape(shape.Reduce(axis, false))
	if err != nil {
		panic(errors.Wrap(err, "webgpu: squeeze"))
	}
	return result
}

func (b *Backend) reduceDim(op string, x *tensor.RawTensor, dim int, keepDim, mean bool) *tensor.RawTensor {
	requireFloat32(op, x)
	axis, err := x.Shape().NormalizeAxis(dim)
	if err != nil {
		panic(errors.Wrap(err, "webgpu: "+op))
	}
	outShape := x.Shape().Reduce(axis, keepDim)

	// Nothing to dispatch: either no outputs or an empty axis.
	if outShape.NumElements() == 0 || x.Shape()[axis] == 0 {
		result := b.alloc(op, outShape)
		if mean {
			for i := range result.AsFloat32() {
				result.AsFloat32()[i] = float32(math.NaN())
			}
		}
		return result
	}

	result, err := b.runReduceDim(x, axis, outShape, mean)
	if err != nil {
		panic(errors.Wrap(err, "webgpu: "+op))
	}
	if klog.V(3).Enabled() {
		klog.Infof("webgpu: %s axis %d of %v -> %v", op, axis, x.Shape(), outShape)
	}
	return result
}

func (b *Backend) flatten(op string, x *tensor.RawTensor) *tensor.RawTensor {
	flat, err := x.Reshape(tensor.Shape{x.NumElements()})
	if err != nil {
		panic(errors.Wrap(err, "webgpu: "+op))
	}
	return flat
}

func (b *Backend) alloc(op string, shape tensor.Shape) *tensor.RawTensor {
	result, err := tensor.NewRaw(shape, tensor.Float32, tensor.WebGPU)
	if err != nil {
		panic(errors.Wrapf(err, "webgpu: %s: failed to create result tensor", op))
	}
	return result
}
