// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package reduce

import (
	internalreduce "github.com/born-ml/tensorops/internal/reduce"
	"github.com/born-ml/tensorops/internal/tensor"
	"github.com/gomlx/exceptions"
	"github.com/pkg/errors"
)

// Mean averages x over dims.
//
// A nil dims averages every element into a scalar, ignores keepDim and never
// writes to out.
// Otherwise each axis in dims is reduced, in ascending order, and removed
// from the result unless keepDim is true. Over a zero-length axis the float
// mean is NaN. Integer means truncate toward zero.
//
// Otherwise, if out is non-nil the result is copied into it; out must have the
// result's shape.
//
// Example:
//
//	x, _ := tensor.FromSlice([]float64{1, 2, 3, 4}, tensor.Shape{2, 2}, backend)
//	m, err := reduce.Mean(x, []int{1}, false, nil) // [1.5 3.5]
func Mean[T tensor.DType, B tensor.Backend](x *tensor.Tensor[T, B], dims []int, keepDim bool, out *tensor.Tensor[T, B]) (*tensor.Tensor[T, B], error) {
	return run("mean", x, out, func(outRaw *tensor.RawTensor) *tensor.RawTensor {
		return internalreduce.Mean(x.Backend(), x.Raw(), dims, keepDim, outRaw)
	})
}

// MeanDim averages x over the single axis dim. See Mean.
func MeanDim[T tensor.DType, B tensor.Backend](x *tensor.Tensor[T, B], dim int, keepDim bool, out *tensor.Tensor[T, B]) (*tensor.Tensor[T, B], error) {
	return Mean(x, []int{dim}, keepDim, out)
}

// Sum adds up x over dims.
//
// A nil dims sums every element into a scalar, ignores keepDim and never
// writes to out.
// Otherwise each axis in dims is reduced, in ascending order, and removed
// from the result unless keepDim is true. A zero-length axis sums to 0.
// Sums accumulate in the element type.
//
// Otherwise, if out is non-nil the result is copied into it; out must have the
// result's shape.
//
// Example:
//
//	x := tensor.Ones[float32](tensor.Shape{2, 3, 4}, backend)
//	s, err := reduce.Sum(x, []int{-1, 0}, true, nil) // shape [1 3 1], every element 8
func Sum[T tensor.DType, B tensor.Backend](x *tensor.Tensor[T, B], dims []int, keepDim bool, out *tensor.Tensor[T, B]) (*tensor.Tensor[T, B], error) {
	return run("sum", x, out, func(outRaw *tensor.RawTensor) *tensor.RawTensor {
		return internalreduce.Sum(x.Backend(), x.Raw(), dims, keepDim, outRaw)
	})
}

// SumDim adds up x over the single axis dim. See Sum.
func SumDim[T tensor.DType, B tensor.Backend](x *tensor.Tensor[T, B], dim int, keepDim bool, out *tensor.Tensor[T, B]) (*tensor.Tensor[T, B], error) {
	return Sum(x, []int{dim}, keepDim, out)
}

// run calls fn, turning a backend panic into a returned error.
func run[T tensor.DType, B tensor.Backend](op string, x, out *tensor.Tensor[T, B], fn func(outRaw *tensor.RawTensor) *tensor.RawTensor) (*tensor.Tensor[T, B], error) {
	var outRaw *tensor.RawTensor
	if out != nil {
		outRaw = out.Raw()
	}

	var result *tensor.RawTensor
	err := exceptions.TryCatch[error](func() { result = fn(outRaw) })
	if err != nil {
		return nil, errors.WithMessagef(err, "reduce.%s of %s", op, x)
	}
	return tensor.New[T, B](result, x.Backend()), nil
}
