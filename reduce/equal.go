// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package reduce

import (
	internalreduce "github.com/born-ml/tensorops/internal/reduce"
	"github.com/born-ml/tensorops/internal/tensor"
	"github.com/gomlx/exceptions"
)

// DefaultEpsilon is the tolerance Equal uses.
const DefaultEpsilon = 1e-6

// Equal reports whether a and b are equal within DefaultEpsilon.
// See EqualWithin.
func Equal[T tensor.DType, B tensor.Backend](a, b *tensor.Tensor[T, B]) bool {
	return EqualWithin(a, b, DefaultEpsilon)
}

// EqualWithin reports whether a and b have exactly the same shape and
// 0 <= max(|a - b|) <= eps.
//
// Shapes that differ, even when broadcast-compatible, give false. A NaN
// difference gives false, and so does a negative eps. Two tensors without
// elements and with the same shape are equal.
//
// EqualWithin panics if the backend cannot compare the element type (bool).
//
// Example:
//
//	a, _ := tensor.FromSlice([]float64{1, 2}, tensor.Shape{2}, backend)
//	b, _ := tensor.FromSlice([]float64{1, 2.1}, tensor.Shape{2}, backend)
//	reduce.EqualWithin(a, b, 0.2) // true
//	reduce.Equal(a, b)            // false
func EqualWithin[T tensor.DType, B tensor.Backend](a, b *tensor.Tensor[T, B], eps float64) bool {
	return internalreduce.EqualWithin(a.Backend(), a.Raw(), b.Raw(), eps)
}

// MaxAbsDiff returns max(|a - b|) widened to float64, or 0 when the tensors
// have no elements. Unlike EqualWithin it fails on a shape mismatch.
func MaxAbsDiff[T tensor.DType, B tensor.Backend](a, b *tensor.Tensor[T, B]) (float64, error) {
	var d float64
	err := exceptions.TryCatch[error](func() { d = internalreduce.MaxAbsDiff(a.Backend(), a.Raw(), b.Raw()) })
	return d, err
}
