// Package cpu implements the CPU backend in pure Go.
package cpu

import (
	"math"

	"github.com/born-ml/tensorops/internal/tensor"
	"github.com/pkg/errors"
	"github.com/x448/float16"
	"golang.org/x/exp/constraints"
)

// number is the set of element types the CPU kernels compute on directly.
// Float16 is widened to float32 before reaching a kernel.
type number interface {
	constraints.Integer | constraints.Float
}

// CPUBackend implements tensor operations on CPU.
type CPUBackend struct {
	device tensor.Device
}

// Verify that CPUBackend implements tensor.Backend.
var _ tensor.Backend = (*CPUBackend)(nil)

// New creates a new CPU backend.
func New() *CPUBackend {
	return &CPUBackend{
		device: tensor.CPU,
	}
}

// Name returns the backend name.
func (cpu *CPUBackend) Name() string {
	return "CPU"
}

// Device returns the compute device.
func (cpu *CPUBackend) Device() tensor.Device {
	return cpu.device
}

// alloc creates a result tensor or panics; shapes reaching here are already validated.
func (cpu *CPUBackend) alloc(op string, shape tensor.Shape, dtype tensor.DataType) *tensor.RawTensor {
	result, err := tensor.NewRaw(shape, dtype, cpu.device)
	if err != nil {
		panic(errors.Wrapf(err, "%s: failed to create result tensor", op))
	}
	return result
}

// AbsDiff computes the element-wise absolute difference: result = |a - b|.
// Shapes and dtypes must match exactly; there is no broadcasting.
// Unsigned inputs subtract the smaller value from the larger, so the result never wraps.
func (cpu *CPUBackend) AbsDiff(a, b *tensor.RawTensor) *tensor.RawTensor {
	if !a.Shape().Equal(b.Shape()) {
		panic(errors.Wrapf(tensor.ErrShapeMismatch, "absdiff: %v vs %v", a.Shape(), b.Shape()))
	}
	if a.DType() != b.DType() {
		panic(errors.Wrapf(tensor.ErrDTypeMismatch, "absdiff: %s vs %s", a.DType(), b.DType()))
	}

	result := cpu.alloc("absdiff", a.Shape(), a.DType())
	switch a.DType() {
	case tensor.Float32:
		dst := result.AsFloat32()
		bData := b.AsFloat32()
		for i, v := range a.AsFloat32() {
			dst[i] = float32(math.Abs(float64(v - bData[i])))
		}
	case tensor.Float64:
		dst := result.AsFloat64()
		bData := b.AsFloat64()
		for i, v := range a.AsFloat64() {
			dst[i] = math.Abs(v - bData[i])
		}
	case tensor.Float16:
		dst := make([]float32, a.NumElements())
		bData := widen(b.AsFloat16())
		for i, v := range widen(a.AsFloat16()) {
			dst[i] = float32(math.Abs(float64(v - bData[i])))
		}
		narrow(result.AsFloat16(), dst)
	case tensor.Int32:
		absDiffKernel(result.AsInt32(), a.AsInt32(), b.AsInt32())
	case tensor.Int64:
		absDiffKernel(result.AsInt64(), a.AsInt64(), b.AsInt64())
	case tensor.Uint8:
		absDiffKernel(result.AsUint8(), a.AsUint8(), b.AsUint8())
	default:
		panic(errors.Wrapf(tensor.ErrUnsupportedDType, "absdiff: %s", a.DType()))
	}
	return result
}

func absDiffKernel[T constraints.Integer](dst, a, b []T) {
	for i, v := range a {
		if v >= b[i] {
			dst[i] = v - b[i]
		} else {
			dst[i] = b[i] - v
		}
	}
}

// widen converts float16 values to float32 for computation.
func widen(src []float16.Float16) []float32 {
	dst := make([]float32, len(src))
	for i, v := range src {
		dst[i] = v.Float32()
	}
	return dst
}

// narrow rounds float32 results back into a float16 buffer.
func narrow(dst []float16.Float16, src []float32) {
	for i, v := range src {
		dst[i] = float16.Fromfloat32(v)
	}
}
