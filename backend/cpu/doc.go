// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package cpu provides a pure Go CPU backend for tensor operations.
//
// # Overview
//
// This package implements a CPU backend with:
//   - Pure Go implementation (no CGO)
//   - Generic kernels for float32, float64, float16, int32, int64 and uint8
//   - Exact integer absolute differences (no unsigned wraparound)
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/tensorops/backend/cpu"
//	    "github.com/born-ml/tensorops/reduce"
//	    "github.com/born-ml/tensorops/tensor"
//	)
//
//	func main() {
//	    backend := cpu.New()
//	    x := tensor.Ones[float32](tensor.Shape{2, 3, 4}, backend)
//	    y, err := reduce.Sum(x, []int{0, 2}, false, nil)  // Shape: [3]
//	}
//
// # Numerics
//
// Sums accumulate in the element type; float16 accumulates in float32.
// Integer means truncate toward zero.
//
// # Thread Safety
//
// The CPU backend is safe for concurrent use. Each tensor operation
// is isolated and does not share mutable state.
package cpu
