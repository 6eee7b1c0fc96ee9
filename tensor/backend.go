// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import "github.com/born-ml/tensorops/internal/tensor"

// Backend defines the interface that all compute backends must implement.
// Backends handle the actual computation for tensor operations.
//
// Implementations:
//   - backend/cpu: Pure Go, every dtype
//   - backend/webgpu: GPU compute via WebGPU (Windows, float32)
//
// Example:
//
//	import (
//	    "github.com/born-ml/tensorops/tensor"
//	    "github.com/born-ml/tensorops/backend/cpu"
//	)
//
//	backend := cpu.New()
//	x := tensor.Ones[float32](tensor.Shape{2, 3}, backend)
//	s := x.Sum()  // Uses backend.Sum under the hood
type Backend interface {
	// Element-wise operations.
	AbsDiff(a, b *RawTensor) *RawTensor // Element-wise |a - b|.

	// Reduction operations.
	Sum(x *RawTensor) *RawTensor                            // Total sum (scalar result).
	Mean(x *RawTensor) *RawTensor                           // Total mean (scalar result).
	Max(x *RawTensor) *RawTensor                            // Maximum element (scalar result).
	SumDim(x *RawTensor, dim int, keepDim bool) *RawTensor  // Sum along dimension.
	MeanDim(x *RawTensor, dim int, keepDim bool) *RawTensor // Mean along dimension.

	// Manipulation operations.
	Squeeze(x *RawTensor, dim int) *RawTensor // Remove dimension of size 1.

	// Metadata.
	Name() string   // Backend name (e.g., "CPU", "WebGPU").
	Device() Device // Device type.
}

// Compile-time check that internal Backend implements public Backend.
var _ Backend = tensor.Backend(nil)
