//go:build windows

// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package webgpu provides the WebGPU backend for GPU-accelerated reductions.
//
// WebGPU is a cross-platform graphics and compute API. This backend is
// built on Windows and computes float32 tensors only.
//
// Example:
//
//	import (
//	    "github.com/born-ml/tensorops/backend/webgpu"
//	    "github.com/born-ml/tensorops/reduce"
//	    "github.com/born-ml/tensorops/tensor"
//	)
//
//	func main() {
//	    gpu, err := webgpu.New()
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    defer gpu.Release()
//
//	    x := tensor.Ones[float32](tensor.Shape{1024, 1024}, gpu)
//	    rows, err := reduce.MeanDim(x, -1, false, nil)
//	}
package webgpu

import (
	internalwebgpu "github.com/born-ml/tensorops/internal/backend/webgpu"
	"github.com/born-ml/tensorops/tensor"
)

// Backend represents the WebGPU backend implementation for GPU-accelerated
// tensor operations.
type Backend = internalwebgpu.Backend

// Compile-time check that Backend implements tensor.Backend.
var _ tensor.Backend = (*Backend)(nil)

// New creates a new WebGPU backend.
//
// This function initializes the WebGPU device and returns a backend
// ready for tensor operations. Call Release() when done to free GPU resources.
//
// Returns an error if WebGPU initialization fails (e.g., no compatible GPU).
func New() (*Backend, error) {
	return internalwebgpu.New()
}

// IsAvailable checks if WebGPU is available on the current system.
//
// It's useful for graceful fallback to the CPU backend when no GPU is present.
//
// Example:
//
//	if webgpu.IsAvailable() {
//	    gpu, _ := webgpu.New()
//	    defer gpu.Release()
//	    // reduce on gpu tensors
//	}
func IsAvailable() bool {
	return internalwebgpu.IsAvailable()
}
