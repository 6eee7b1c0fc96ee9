package cpu

import (
	"math"

	"github.com/born-ml/tensorops/internal/tensor"
	"github.com/pkg/errors"
	"golang.org/x/exp/constraints"
	"gonum.org/v1/gonum/floats"
)

// reducedShape normalizes dim and returns it with the output shape of a
// reduction along it.
func reducedShape(op string, shape tensor.Shape, dim int, keepDim bool) (int, tensor.Shape) {
	axis, err := shape.NormalizeAxis(dim)
	if err != nil {
		panic(errors.Wrap(err, op))
	}
	return axis, shape.Reduce(axis, keepDim)
}

// SumDim sums tensor elements along the specified dimension.
//
// Parameters:
//   - dim: dimension to reduce (supports negative indexing: -1 = last dim)
//   - keepDim: if true, keep the reduced dimension with size 1; if false, remove it
//
// Sums accumulate in the element type. A zero-length dimension sums to 0.
//
// Example:
//
//	x := tensor.Zeros[float32](tensor.Shape{2, 3, 4}, backend)
//	y := backend.SumDim(x.Raw(), -1, true)   // shape: [2, 3, 1]
//	z := backend.SumDim(x.Raw(), -1, false)  // shape: [2, 3]
func (cpu *CPUBackend) SumDim(x *tensor.RawTensor, dim int, keepDim bool) *tensor.RawTensor {
	axis, outShape := reducedShape("sumdim", x.Shape(), dim, keepDim)
	result := cpu.alloc("sumdim", outShape, x.DType())
	outer, size, inner := x.Shape().Split(axis)

	switch x.DType() {
	case tensor.Float32:
		sumDim(x.AsFloat32(), result.AsFloat32(), outer, size, inner)
	case tensor.Float64:
		sumDim(x.AsFloat64(), result.AsFloat64(), outer, size, inner)
	case tensor.Float16:
		dst := make([]float32, result.NumElements())
		sumDim(widen(x.AsFloat16()), dst, outer, size, inner)
		narrow(result.AsFloat16(), dst)
	case tensor.Int32:
		sumDim(x.AsInt32(), result.AsInt32(), outer, size, inner)
	case tensor.Int64:
		sumDim(x.AsInt64(), result.AsInt64(), outer, size, inner)
	case tensor.Uint8:
		sumDim(x.AsUint8(), result.AsUint8(), outer, size, inner)
	default:
		panic(errors.Wrapf(tensor.ErrUnsupportedDType, "sumdim: %s", x.DType()))
	}

	return result
}

// MeanDim computes the mean of tensor elements along the specified dimension.
//
// Parameters:
//   - dim: dimension to reduce (supports negative indexing: -1 = last dim)
//   - keepDim: if true, keep the reduced dimension with size 1; if false, remove it
//
// Integer means truncate toward zero. Over a zero-length dimension the float
// mean is NaN and the integer mean is 0. Float16 is divided while still in
// float32, so only the mean itself has to fit in float16.
//
// Example:
//
//	x := tensor.Zeros[float32](tensor.Shape{2, 3, 4}, backend)
//	y := backend.MeanDim(x.Raw(), -1, true)   // shape: [2, 3, 1]
//	z := backend.MeanDim(x.Raw(), -1, false)  // shape: [2, 3]
func (cpu *CPUBackend) MeanDim(x *tensor.RawTensor, dim int, keepDim bool) *tensor.RawTensor {
	if x.DType() == tensor.Float16 {
		axis, outShape := reducedShape("meandim", x.Shape(), dim, keepDim)
		result := cpu.alloc("meandim", outShape, x.DType())
		outer, size, inner := x.Shape().Split(axis)
		dst := make([]float32, result.NumElements())
		sumDim(widen(x.AsFloat16()), dst, outer, size, inner)
		divideKernel(dst, size)
		narrow(result.AsFloat16(), dst)
		return result
	}

	sumResult := cpu.SumDim(x, dim, keepDim)

	// SumDim already validated dim.
	axis, _ := x.Shape().NormalizeAxis(dim)
	divideBy(sumResult, x.Shape()[axis])

	return sumResult
}

// Sum computes the total sum of all elements in the tensor (scalar result).
func (cpu *CPUBackend) Sum(x *tensor.RawTensor) *tensor.RawTensor {
	result := cpu.alloc("sum", tensor.Shape{}, x.DType())

	switch x.DType() {
	case tensor.Float32:
		result.AsFloat32()[0] = sumAll(x.AsFloat32())
	case tensor.Float64:
		result.AsFloat64()[0] = floats.Sum(x.AsFloat64())
	case tensor.Float16:
		narrow(result.AsFloat16(), []float32{sumAll(widen(x.AsFloat16()))})
	case tensor.Int32:
		result.AsInt32()[0] = sumAll(x.AsInt32())
	case tensor.Int64:
		result.AsInt64()[0] = sumAll(x.AsInt64())
	case tensor.Uint8:
		result.AsUint8()[0] = sumAll(x.AsUint8())
	default:
		panic(errors.Wrapf(tensor.ErrUnsupportedDType, "sum: %s", x.DType()))
	}

	return result
}

// Mean computes the mean of all elements in the tensor (scalar result).
// The mean of an empty float tensor is NaN; of an empty integer tensor, 0.
func (cpu *CPUBackend) Mean(x *tensor.RawTensor) *tensor.RawTensor {
	if x.DType() == tensor.Float16 {
		result := cpu.alloc("mean", tensor.Shape{}, x.DType())
		sum := []float32{sumAll(widen(x.AsFloat16()))}
		divideKernel(sum, x.NumElements())
		narrow(result.AsFloat16(), sum)
		return result
	}

	result := cpu.Sum(x)
	divideBy(result, x.NumElements())
	return result
}

// Max returns the largest element of the tensor (scalar result).
// Any NaN element makes the result NaN. Panics on an empty tensor.
func (cpu *CPUBackend) Max(x *tensor.RawTensor) *tensor.RawTensor {
	if x.NumElements() == 0 {
		panic(errors.Wrapf(tensor.ErrInvalidShape, "max: empty tensor of shape %v", x.Shape()))
	}
	result := cpu.alloc("max", tensor.Shape{}, x.DType())

	switch x.DType() {
	case tensor.Float32:
		result.AsFloat32()[0] = maxAll(x.AsFloat32())
	case tensor.Float64:
		data := x.AsFloat64()
		if floats.HasNaN(data) {
			result.AsFloat64()[0] = math.NaN()
		} else {
			result.AsFloat64()[0] = floats.Max(data)
		}
	case tensor.Float16:
		narrow(result.AsFloat16(), []float32{maxAll(widen(x.AsFloat16()))})
	case tensor.Int32:
		result.AsInt32()[0] = maxAll(x.AsInt32())
	case tensor.Int64:
		result.AsInt64()[0] = maxAll(x.AsInt64())
	case tensor.Uint8:
		result.AsUint8()[0] = maxAll(x.AsUint8())
	default:
		panic(errors.Wrapf(tensor.ErrUnsupportedDType, "max: %s", x.DType()))
	}

	return result
}

// divideBy divides every element of x in place by n.
// Integer tensors are left untouched when n is 0.
func divideBy(x *tensor.RawTensor, n int) {
	switch x.DType() {
	case tensor.Float32:
		divideKernel(x.AsFloat32(), n)
	case tensor.Float64:
		divideKernel(x.AsFloat64(), n)
	case tensor.Float16:
		data := widen(x.AsFloat16())
		divideKernel(data, n)
		narrow(x.AsFloat16(), data)
	case tensor.Int32:
		divideInts(x.AsInt32(), n)
	case tensor.Int64:
		divideInts(x.AsInt64(), n)
	case tensor.Uint8:
		divideInts(x.AsUint8(), n)
	default:
		panic(errors.Wrapf(tensor.ErrUnsupportedDType, "mean: %s", x.DType()))
	}
}

// sumDim reduces data viewed as [outer, size, inner] along the middle axis.
func sumDim[T number](data, result []T, outer, size, inner int) {
	for i := range result {
		result[i] = 0
	}
	for o := 0; o < outer; o++ {
		base := o * size * inner
		out := result[o*inner : (o+1)*inner]
		for k := 0; k < size; k++ {
			row := data[base+k*inner : base+(k+1)*inner]
			for i, v := range row {
				out[i] += v
			}
		}
	}
}

func sumAll[T number](data []T) T {
	var sum T
	for _, v := range data {
		sum += v
	}
	return sum
}

// maxAll returns the maximum of a non-empty slice, propagating NaN.
func maxAll[T number](data []T) T {
	maxVal := data[0]
	for _, v := range data {
		if v != v { //nolint:gocritic // NaN check that also compiles for integer T
			return v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	return maxVal
}

func divideKernel[T float32 | float64](data []T, n int) {
	divisor := T(n)
	for i := range data {
		data[i] /= divisor
	}
}

// divideInts divides in int64 so that a divisor larger than T's range stays exact.
func divideInts[T constraints.Integer](data []T, n int) {
	if n == 0 {
		return
	}
	divisor := int64(n)
	for i := range data {
		data[i] = T(int64(data[i]) / divisor)
	}
}
