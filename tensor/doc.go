// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides type-safe tensors for the tensorops module.
//
// # Overview
//
// Tensors are dense, row-major N-dimensional arrays. This package provides:
//   - Generic type-safe tensors (Tensor[T, B])
//   - Per-axis reductions (SumDim, MeanDim) and whole-tensor reductions (Sum, Mean, Max)
//   - Device abstraction (CPU, WebGPU)
//
// Multi-axis reductions and tolerance-based equality live in the reduce package.
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/tensorops/tensor"
//	    "github.com/born-ml/tensorops/backend/cpu"
//	)
//
//	func main() {
//	    backend := cpu.New()
//
//	    x, _ := tensor.FromSlice([]float32{1, 2, 3, 4}, tensor.Shape{2, 2}, backend)
//	    rows := x.MeanDim(1, false)  // [1.5 3.5]
//	    total := x.Sum().Item()      // 10
//	}
//
// # Supported Data Types
//
// The tensor package supports the following data types via the DType constraint:
//   - float32, float64, float16.Float16 (floating-point)
//   - int32, int64 (signed integers)
//   - uint8 (unsigned integers, useful for images)
//   - bool (storage only; reductions reject it)
//
// # Device Support
//
// Tensors can reside on different devices:
//   - CPU: Pure Go implementation, every dtype
//   - WebGPU: Zero-CGO GPU acceleration (Windows, float32)
//
// # Broadcasting
//
// There is none. Element-wise operations require identical shapes.
//
// # Errors
//
// Backends panic on misuse with an error wrapping one of the Err* sentinels.
// The reduce package recovers those panics and returns them as errors.
package tensor
