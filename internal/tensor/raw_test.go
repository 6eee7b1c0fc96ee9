package tensor

import (
	"testing"

	"github.com/janpfeifer/must"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/x448/float16"
)

func TestNewRaw(t *testing.T) {
	r := must.M1(NewRaw(Shape{2, 3}, Float32, CPU))
	assert.Equal(t, 6, r.NumElements())
	assert.Equal(t, 24, r.ByteSize())
	assert.Equal(t, []int{3, 1}, r.Strides())
	assert.Equal(t, make([]float32, 6), r.AsFloat32())

	h := must.M1(NewRaw(Shape{4}, Float16, CPU))
	assert.Equal(t, 8, h.ByteSize())
	assert.Len(t, h.AsFloat16(), 4)

	_, err := NewRaw(Shape{-1}, Float32, CPU)
	require.ErrorIs(t, err, ErrInvalidShape)
}

func TestRaw_EmptyViews(t *testing.T) {
	r := must.M1(NewRaw(Shape{0, 3}, Float64, CPU))
	assert.Empty(t, r.AsFloat64())
	assert.Equal(t, 0, r.ByteSize())
}

func TestRaw_DTypeMismatchPanics(t *testing.T) {
	r := must.M1(NewRaw(Shape{2}, Int32, CPU))
	assert.Panics(t, func() { r.AsFloat32() })
	assert.NotPanics(t, func() { r.AsInt32() })
}

func TestRaw_CloneIsDeep(t *testing.T) {
	r := must.M1(NewRaw(Shape{2}, Int64, CPU))
	copy(r.AsInt64(), []int64{1, 2})

	c := r.Clone()
	c.AsInt64()[0] = 9
	assert.Equal(t, []int64{1, 2}, r.AsInt64())
	assert.True(t, c.Shape().Equal(r.Shape()))
}

func TestRaw_CopyFrom(t *testing.T) {
	src := must.M1(NewRaw(Shape{2, 2}, Float32, CPU))
	copy(src.AsFloat32(), []float32{1, 2, 3, 4})

	dst := must.M1(NewRaw(Shape{2, 2}, Float32, CPU))
	require.NoError(t, dst.CopyFrom(src))
	assert.Equal(t, src.AsFloat32(), dst.AsFloat32())

	flat := must.M1(NewRaw(Shape{4}, Float32, CPU))
	require.ErrorIs(t, flat.CopyFrom(src), ErrShapeMismatch)
	assert.Equal(t, make([]float32, 4), flat.AsFloat32())

	other := must.M1(NewRaw(Shape{2, 2}, Float64, CPU))
	require.ErrorIs(t, other.CopyFrom(src), ErrDTypeMismatch)
}

func TestRaw_Reshape(t *testing.T) {
	r := must.M1(NewRaw(Shape{2, 3}, Uint8, CPU))
	copy(r.AsUint8(), []uint8{1, 2, 3, 4, 5, 6})

	v := must.M1(r.Reshape(Shape{3, 1, 2}))
	assert.Equal(t, []int{2, 2, 1}, v.Strides())
	v.AsUint8()[0] = 42
	assert.Equal(t, uint8(42), r.AsUint8()[0], "reshape is a view")

	_, err := r.Reshape(Shape{4})
	require.ErrorIs(t, err, ErrInvalidShape)
}

func TestRaw_Float64Item(t *testing.T) {
	h := must.M1(NewRaw(Shape{}, Float16, CPU))
	h.AsFloat16()[0] = float16.Fromfloat32(0.5)
	assert.Equal(t, 0.5, must.M1(h.Float64Item()))

	u := must.M1(NewRaw(Shape{1, 1}, Uint8, CPU))
	u.AsUint8()[0] = 200
	assert.Equal(t, 200.0, must.M1(u.Float64Item()))

	_, err := must.M1(NewRaw(Shape{2}, Float32, CPU)).Float64Item()
	require.ErrorIs(t, err, ErrInvalidShape)

	_, err = must.M1(NewRaw(Shape{}, Bool, CPU)).Float64Item()
	require.ErrorIs(t, err, ErrUnsupportedDType)
}

func TestDataType(t *testing.T) {
	assert.Equal(t, "float16", Float16.String())
	assert.Equal(t, 2, Float16.Size())
	assert.True(t, Float16.IsFloat())
	assert.False(t, Uint8.IsFloat())
	assert.Equal(t, "WebGPU", WebGPU.String())
}
