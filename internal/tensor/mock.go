package tensor

import (
	"math"

	"github.com/pkg/errors"
	"github.com/x448/float16"
)

// Verify that MockBackend implements Backend.
var _ Backend = (*MockBackend)(nil)

// MockBackend is a simple backend for testing.
// It implements all operations naively in float64 for correctness verification.
type MockBackend struct{}

// NewMockBackend creates a new MockBackend.
func NewMockBackend() *MockBackend {
	return &MockBackend{}
}

// Name returns the backend name.
func (m *MockBackend) Name() string {
	return "mock"
}

// Device returns the device type.
func (m *MockBackend) Device() Device {
	return CPU
}

// AbsDiff computes the element-wise absolute difference.
func (m *MockBackend) AbsDiff(a, b *RawTensor) *RawTensor {
	if !a.Shape().Equal(b.Shape()) {
		panic(errors.Wrapf(ErrShapeMismatch, "mock absdiff: %v vs %v", a.Shape(), b.Shape()))
	}
	aData := m.toFloat64Slice(a)
	bData := m.toFloat64Slice(b)
	out := make([]float64, len(aData))
	for i := range out {
		out[i] = math.Abs(aData[i] - bData[i])
	}
	return m.newFrom(out, a.Shape(), a.DType())
}

// Sum computes the total sum.
func (m *MockBackend) Sum(x *RawTensor) *RawTensor {
	var sum float64
	for _, v := range m.toFloat64Slice(x) {
		sum += v
	}
	return m.newFrom([]float64{sum}, Shape{}, x.DType())
}

// Mean computes the total mean.
func (m *MockBackend) Mean(x *RawTensor) *RawTensor {
	var sum float64
	data := m.toFloat64Slice(x)
	for _, v := range data {
		sum += v
	}
	return m.newFrom([]float64{sum / float64(len(data))}, Shape{}, x.DType())
}

// Max returns the maximum element.
func (m *MockBackend) Max(x *RawTensor) *RawTensor {
	data := m.toFloat64Slice(x)
	if len(data) == 0 {
		panic(errors.Wrap(ErrInvalidShape, "mock max of empty tensor"))
	}
	maxVal := data[0]
	for _, v := range data[1:] {
		if math.IsNaN(v) || v > maxVal {
			maxVal = v
		}
		if math.IsNaN(maxVal) {
			break
		}
	}
	return m.newFrom([]float64{maxVal}, Shape{}, x.DType())
}

// SumDim sums along one dimension.
func (m *MockBackend) SumDim(x *RawTensor, dim int, keepDim bool) *RawTensor {
	return m.reduceDim(x, dim, keepDim, false)
}

// MeanDim averages along one dimension.
func (m *MockBackend) MeanDim(x *RawTensor, dim int, keepDim bool) *RawTensor {
	return m.reduceDim(x, dim, keepDim, true)
}

func (m *MockBackend) reduceDim(x *RawTensor, dim int, keepDim, mean bool) *RawTensor {
	shape := x.Shape()
	axis, err := shape.NormalizeAxis(dim)
	if err != nil {
		panic(err)
	}

	outer, size, inner := shape.Split(axis)
	data := m.toFloat64Slice(x)
	out := make([]float64, outer*inner)
	for o := 0; o < outer; o++ {
		for i := 0; i < inner; i++ {
			var sum float64
			for k := 0; k < size; k++ {
				sum += data[(o*size+k)*inner+i]
			}
			if mean {
				sum /= float64(size)
			}
			out[o*inner+i] = sum
		}
	}

	return m.newFrom(out, shape.Reduce(axis, keepDim), x.DType())
}

// Squeeze removes a dimension of size 1.
func (m *MockBackend) Squeeze(x *RawTensor, dim int) *RawTensor {
	shape := x.Shape()
	axis, err := shape.NormalizeAxis(dim)
	if err != nil {
		panic(err)
	}
	if shape[axis] != 1 {
		panic(errors.Wrapf(ErrShapeMismatch, "mock squeeze: dimension %d has size %d", axis, shape[axis]))
	}
	newShape := append(shape[:axis:axis], shape[axis+1:]...)
	result, err := x.Reshape(newShape)
	if err != nil {
		panic(err)
	}
	return result
}

// Helper functions

func (m *MockBackend) newFrom(data []float64, shape Shape, dtype DataType) *RawTensor {
	result, err := NewRaw(shape, dtype, m.Device())
	if err != nil {
		panic(err)
	}
	m.fromFloat64Slice(data, result)
	return result
}

func (m *MockBackend) toFloat64Slice(t *RawTensor) []float64 {
	dst := make([]float64, t.NumElements())
	switch t.DType() {
	case Float32:
		for i, v := range t.AsFloat32() {
			dst[i] = float64(v)
		}
	case Float64:
		copy(dst, t.AsFloat64())
	case Float16:
		for i, v := range t.AsFloat16() {
			dst[i] = float64(v.Float32())
		}
	case Int32:
		for i, v := range t.AsInt32() {
			dst[i] = float64(v)
		}
	case Int64:
		for i, v := range t.AsInt64() {
			dst[i] = float64(v)
		}
	case Uint8:
		for i, v := range t.AsUint8() {
			dst[i] = float64(v)
		}
	default:
		panic(errors.Wrapf(ErrUnsupportedDType, "mock backend: %s", t.DType()))
	}
	return dst
}

func (m *MockBackend) fromFloat64Slice(src []float64, t *RawTensor) {
	switch t.DType() {
	case Float32:
		dst := t.AsFloat32()
		for i, v := range src {
			dst[i] = float32(v)
		}
	case Float64:
		copy(t.AsFloat64(), src)
	case Float16:
		dst := t.AsFloat16()
		for i, v := range src {
			dst[i] = float16.Fromfloat32(float32(v))
		}
	case Int32:
		dst := t.AsInt32()
		for i, v := range src {
			dst[i] = int32(v)
		}
	case Int64:
		dst := t.AsInt64()
		for i, v := range src {
			dst[i] = int64(v)
		}
	case Uint8:
		dst := t.AsUint8()
		for i, v := range src {
			dst[i] = uint8(v)
		}
	}
}
