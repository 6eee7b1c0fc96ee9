// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package reduce provides multi-axis reductions and tolerance-based equality
// for tensors.
//
// # Reductions
//
// Mean and Sum reduce a tensor over a set of axes. The axes are normalized
// (negative axes count from the end), sorted ascending and reduced one at a
// time, each intermediate keeping its reduced axis with size 1. Unless keepDim
// is set, the reduced axes are then removed.
//
//	backend := cpu.New()
//	x, _ := tensor.FromSlice([]float32{1, 2, 3, 4}, tensor.Shape{2, 2}, backend)
//
//	rows, _ := reduce.MeanDim(x, 1, false, nil)        // [1.5 3.5], shape [2]
//	total, _ := reduce.Sum(x, []int{0, 1}, false, nil) // 10, shape []
//	kept, _ := reduce.Sum(x, []int{1, 0}, true, nil)   // [[10]], shape [1 1]
//
// A nil axis list reduces every element into a scalar and ignores keepDim.
// An empty, non-nil list reduces nothing and returns a copy of the input.
//
// When out is non-nil the result is also copied into it. The returned tensor
// is always the freshly computed one, never out.
//
// # Equality
//
// Equal and EqualWithin report whether two tensors have exactly the same
// shape (no broadcasting) and a maximum absolute element difference in
// [0, eps]. NaN anywhere makes the tensors unequal.
//
// # Errors
//
// Failures are returned as errors wrapping the tensor sentinels:
//   - tensor.ErrIndexOutOfRange: an axis outside [-rank, rank-1]
//   - tensor.ErrDuplicateAxis: the same axis named twice
//   - tensor.ErrShapeMismatch: out does not have the result's shape
//   - tensor.ErrUnsupportedDType: the backend cannot reduce the element type
//
// Test for them with errors.Is.
package reduce
