package tensor

import (
	"unsafe"

	"github.com/pkg/errors"
	"github.com/x448/float16"
)

// Device represents the compute device for tensor operations.
type Device int

// Supported compute devices.
const (
	CPU Device = iota
	WebGPU
)

// String returns a human-readable device name.
func (d Device) String() string {
	switch d {
	case CPU:
		return "CPU"
	case WebGPU:
		return "WebGPU"
	default:
		return "Unknown"
	}
}

// RawTensor is the low-level tensor representation: a dense row-major buffer
// with its shape and runtime type.
//
// Backends never write into their inputs, so a RawTensor handed to a backend
// keeps its contents. The only in-place write is CopyFrom.
type RawTensor struct {
	data   []byte   // Row-major element bytes
	shape  Shape    // Tensor dimensions
	stride []int    // Memory strides (row-major)
	dtype  DataType // Runtime type information
	device Device   // Compute device
}

// NewRaw creates a new RawTensor with the given shape and type.
// Memory is zero-initialized.
func NewRaw(shape Shape, dtype DataType, device Device) (*RawTensor, error) {
	if err := shape.Validate(); err != nil {
		return nil, err
	}

	return &RawTensor{
		data:   make([]byte, shape.NumElements()*dtype.Size()),
		shape:  shape.Clone(),
		stride: shape.ComputeStrides(),
		dtype:  dtype,
		device: device,
	}, nil
}

// Shape returns the tensor's shape.
func (r *RawTensor) Shape() Shape {
	return r.shape
}

// Strides returns the tensor's memory strides.
func (r *RawTensor) Strides() []int {
	return r.stride
}

// DType returns the tensor's data type.
func (r *RawTensor) DType() DataType {
	return r.dtype
}

// Device returns the tensor's compute device.
func (r *RawTensor) Device() Device {
	return r.device
}

// NumElements returns the total number of elements.
func (r *RawTensor) NumElements() int {
	return r.shape.NumElements()
}

// ByteSize returns the total memory size in bytes.
func (r *RawTensor) ByteSize() int {
	return r.NumElements() * r.dtype.Size()
}

// Data returns the raw byte slice.
// WARNING: Direct access to underlying memory. Use with caution.
func (r *RawTensor) Data() []byte {
	return r.data
}

// typedView reinterprets the buffer as a []T of NumElements() elements.
// Returns an empty slice for tensors without elements.
func typedView[T any](r *RawTensor) []T {
	n := r.NumElements()
	if n == 0 {
		return []T{}
	}
	//nolint:gosec // unsafe.Slice for zero-copy performance, bounds checked by NumElements()
	return unsafe.Slice((*T)(unsafe.Pointer(&r.data[0])), n)
}

func (r *RawTensor) mustBe(dtype DataType) {
	if r.dtype != dtype {
		panic(errors.Wrapf(ErrDTypeMismatch, "tensor dtype is %s, not %s", r.dtype, dtype))
	}
}

// AsFloat32 interprets the data as []float32.
// Panics if the tensor's dtype is not Float32.
func (r *RawTensor) AsFloat32() []float32 {
	r.mustBe(Float32)
	return typedView[float32](r)
}

// AsFloat64 interprets the data as []float64.
// Panics if the tensor's dtype is not Float64.
func (r *RawTensor) AsFloat64() []float64 {
	r.mustBe(Float64)
	return typedView[float64](r)
}

// AsFloat16 interprets the data as []float16.Float16.
// Panics if the tensor's dtype is not Float16.
func (r *RawTensor) AsFloat16() []float16.Float16 {
	r.mustBe(Float16)
	return typedView[float16.Float16](r)
}

// AsInt32 interprets the data as []int32.
// Panics if the tensor's dtype is not Int32.
func (r *RawTensor) AsInt32() []int32 {
	r.mustBe(Int32)
	return typedView[int32](r)
}

// AsInt64 interprets the data as []int64.
// Panics if the tensor's dtype is not Int64.
func (r *RawTensor) AsInt64() []int64 {
	r.mustBe(Int64)
	return typedView[int64](r)
}

// AsUint8 interprets the data as []uint8.
// Panics if the tensor's dtype is not Uint8.
func (r *RawTensor) AsUint8() []uint8 {
	r.mustBe(Uint8)
	return r.data
}

// AsBool interprets the data as []bool.
// Panics if the tensor's dtype is not Bool.
func (r *RawTensor) AsBool() []bool {
	r.mustBe(Bool)
	return typedView[bool](r)
}

// Float64Item returns the single element of a one-element tensor widened to float64.
func (r *RawTensor) Float64Item() (float64, error) {
	if r.NumElements() != 1 {
		return 0, errors.Wrapf(ErrInvalidShape, "Float64Item needs exactly one element, got shape %v", r.shape)
	}
	switch r.dtype {
	case Float32:
		return float64(r.AsFloat32()[0]), nil
	case Float64:
		return r.AsFloat64()[0], nil
	case Float16:
		return float64(r.AsFloat16()[0].Float32()), nil
	case Int32:
		return float64(r.AsInt32()[0]), nil
	case Int64:
		return float64(r.AsInt64()[0]), nil
	case Uint8:
		return float64(r.AsUint8()[0]), nil
	default:
		return 0, errors.Wrapf(ErrUnsupportedDType, "Float64Item of %s tensor", r.dtype)
	}
}

// Clone creates a deep copy of the RawTensor.
func (r *RawTensor) Clone() *RawTensor {
	data := make([]byte, len(r.data))
	copy(data, r.data)
	return &RawTensor{
		data:   data,
		shape:  r.shape.Clone(),
		stride: append([]int(nil), r.stride...),
		dtype:  r.dtype,
		device: r.device,
	}
}

// CopyFrom overwrites the tensor's elements with those of src.
// Shapes must be equal (rank included) and dtypes identical.
func (r *RawTensor) CopyFrom(src *RawTensor) error {
	if !r.shape.Equal(src.shape) {
		return errors.Wrapf(ErrShapeMismatch, "copy of %v into %v", src.shape, r.shape)
	}
	if r.dtype != src.dtype {
		return errors.Wrapf(ErrDTypeMismatch, "copy of %s into %s", src.dtype, r.dtype)
	}
	copy(r.data, src.data)
	return nil
}

// Reshape returns a view of the tensor with a new shape.
// The view shares memory with r; the element count must not change.
func (r *RawTensor) Reshape(newShape Shape) (*RawTensor, error) {
	if err := newShape.Validate(); err != nil {
		return nil, err
	}
	if newShape.NumElements() != r.NumElements() {
		return nil, errors.Wrapf(ErrInvalidShape, "cannot reshape %v (%d elements) to %v (%d elements)",
			r.shape, r.NumElements(), newShape, newShape.NumElements())
	}
	return &RawTensor{
		data:   r.data,
		shape:  newShape.Clone(),
		stride: newShape.ComputeStrides(),
		dtype:  r.dtype,
		device: r.device,
	}, nil
}
