package cpu

import (
	"math"
	"testing"

	"github.com/born-ml/tensorops/internal/tensor"
	"github.com/gomlx/exceptions"
	"github.com/janpfeifer/must"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/x448/float16"
)

func newFloat32(shape tensor.Shape, values ...float32) *tensor.RawTensor {
	x := must.M1(tensor.NewRaw(shape, tensor.Float32, tensor.CPU))
	copy(x.AsFloat32(), values)
	return x
}

func newFloat64(shape tensor.Shape, values ...float64) *tensor.RawTensor {
	x := must.M1(tensor.NewRaw(shape, tensor.Float64, tensor.CPU))
	copy(x.AsFloat64(), values)
	return x
}

func TestBackendMetadata(t *testing.T) {
	backend := New()
	assert.Equal(t, "CPU", backend.Name())
	assert.Equal(t, tensor.CPU, backend.Device())
}

func TestSumDim_ZeroLengthAxis(t *testing.T) {
	backend := New()
	x := newFloat32(tensor.Shape{2, 0, 3})

	sum := backend.SumDim(x, 1, false)
	require.True(t, sum.Shape().Equal(tensor.Shape{2, 3}), "got shape %v", sum.Shape())
	for _, v := range sum.AsFloat32() {
		assert.Equal(t, float32(0), v)
	}

	mean := backend.MeanDim(x, 1, true)
	require.True(t, mean.Shape().Equal(tensor.Shape{2, 1, 3}), "got shape %v", mean.Shape())
	for _, v := range mean.AsFloat32() {
		assert.True(t, math.IsNaN(float64(v)), "mean over empty axis should be NaN, got %v", v)
	}
}

func TestMeanDim_IntegerTruncates(t *testing.T) {
	backend := New()
	x := must.M1(tensor.NewRaw(tensor.Shape{2, 3}, tensor.Int32, tensor.CPU))
	copy(x.AsInt32(), []int32{1, 2, 4, -1, -2, -4})

	result := backend.MeanDim(x, 1, false)
	assert.Equal(t, []int32{2, -2}, result.AsInt32())

	empty := must.M1(tensor.NewRaw(tensor.Shape{0, 2}, tensor.Int64, tensor.CPU))
	result = backend.MeanDim(empty, 0, false)
	assert.Equal(t, []int64{0, 0}, result.AsInt64())
}

func TestSumDim_Float16(t *testing.T) {
	backend := New()
	x := must.M1(tensor.NewRaw(tensor.Shape{2, 2}, tensor.Float16, tensor.CPU))
	for i, v := range []float32{0.5, 1.5, 2, 4} {
		x.AsFloat16()[i] = float16.Fromfloat32(v)
	}

	sum := backend.SumDim(x, 0, false)
	assert.Equal(t, float32(2.5), sum.AsFloat16()[0].Float32())
	assert.Equal(t, float32(5.5), sum.AsFloat16()[1].Float32())

	mean := backend.MeanDim(x, -1, false)
	assert.Equal(t, float32(1), mean.AsFloat16()[0].Float32())
	assert.Equal(t, float32(3), mean.AsFloat16()[1].Float32())
}

func TestMean_Float16LargeSum(t *testing.T) {
	backend := New()
	x := must.M1(tensor.NewRaw(tensor.Shape{2, 100}, tensor.Float16, tensor.CPU))
	for i := range x.AsFloat16() {
		x.AsFloat16()[i] = float16.Fromfloat32(1000)
	}

	rows := backend.MeanDim(x, 1, false)
	require.True(t, rows.Shape().Equal(tensor.Shape{2}))
	for _, v := range rows.AsFloat16() {
		assert.Equal(t, float32(1000), v.Float32())
	}

	assert.Equal(t, float32(1000), backend.Mean(x).AsFloat16()[0].Float32())
	assert.True(t, backend.Sum(x).AsFloat16()[0].IsInf(1), "the sum itself overflows float16")

	empty := must.M1(tensor.NewRaw(tensor.Shape{0, 3}, tensor.Float16, tensor.CPU))
	assert.True(t, backend.MeanDim(empty, 0, true).AsFloat16()[0].IsNaN())
}

func TestSumDim_Uint8(t *testing.T) {
	backend := New()
	x := must.M1(tensor.NewRaw(tensor.Shape{3, 2}, tensor.Uint8, tensor.CPU))
	copy(x.AsUint8(), []uint8{1, 2, 3, 4, 5, 6})

	result := backend.SumDim(x, 0, true)
	require.True(t, result.Shape().Equal(tensor.Shape{1, 2}))
	assert.Equal(t, []uint8{9, 12}, result.AsUint8())
}

func TestSumDim_Errors(t *testing.T) {
	backend := New()
	x := newFloat32(tensor.Shape{2, 3})

	err := exceptions.TryCatch[error](func() { backend.SumDim(x, 2, false) })
	require.ErrorIs(t, err, tensor.ErrIndexOutOfRange)

	err = exceptions.TryCatch[error](func() { backend.MeanDim(x, -3, true) })
	require.ErrorIs(t, err, tensor.ErrIndexOutOfRange)

	b := must.M1(tensor.NewRaw(tensor.Shape{2}, tensor.Bool, tensor.CPU))
	err = exceptions.TryCatch[error](func() { backend.SumDim(b, 0, false) })
	require.ErrorIs(t, err, tensor.ErrUnsupportedDType)
}

func TestSumAndMean_Scalar(t *testing.T) {
	backend := New()

	x := newFloat64(tensor.Shape{2, 2}, 1, 2, 3, 4)
	sum := backend.Sum(x)
	require.Empty(t, sum.Shape())
	assert.Equal(t, 10.0, sum.AsFloat64()[0])

	mean := backend.Mean(x)
	assert.Equal(t, 2.5, mean.AsFloat64()[0])

	empty := newFloat32(tensor.Shape{0})
	assert.Equal(t, float32(0), backend.Sum(empty).AsFloat32()[0])
	assert.True(t, math.IsNaN(float64(backend.Mean(empty).AsFloat32()[0])))
}

func TestMax(t *testing.T) {
	backend := New()

	assert.Equal(t, float32(7), backend.Max(newFloat32(tensor.Shape{3}, -1, 7, 2)).AsFloat32()[0])
	assert.Equal(t, 7.0, backend.Max(newFloat64(tensor.Shape{3}, -1, 7, 2)).AsFloat64()[0])

	ints := must.M1(tensor.NewRaw(tensor.Shape{3}, tensor.Int64, tensor.CPU))
	copy(ints.AsInt64(), []int64{-5, -2, -9})
	assert.Equal(t, int64(-2), backend.Max(ints).AsInt64()[0])
}

func TestMax_NaNPropagates(t *testing.T) {
	backend := New()
	nan := math.NaN()

	got32 := backend.Max(newFloat32(tensor.Shape{3}, 1, float32(nan), 5)).AsFloat32()[0]
	assert.True(t, math.IsNaN(float64(got32)))

	got64 := backend.Max(newFloat64(tensor.Shape{3}, 1, 5, nan)).AsFloat64()[0]
	assert.True(t, math.IsNaN(got64))

	got64 = backend.Max(newFloat64(tensor.Shape{2}, nan, 5)).AsFloat64()[0]
	assert.True(t, math.IsNaN(got64))
}

func TestMax_Empty(t *testing.T) {
	backend := New()
	err := exceptions.TryCatch[error](func() { backend.Max(newFloat32(tensor.Shape{2, 0})) })
	require.ErrorIs(t, err, tensor.ErrInvalidShape)
}

func TestAbsDiff(t *testing.T) {
	backend := New()
	a := newFloat32(tensor.Shape{3}, 5, 1, -2)
	b := newFloat32(tensor.Shape{3}, 2, 3, -2)

	result := backend.AbsDiff(a, b)
	assert.Equal(t, []float32{3, 2, 0}, result.AsFloat32())
	assert.Equal(t, []float32{5, 1, -2}, a.AsFloat32(), "inputs must not be modified")
	assert.Equal(t, []float32{2, 3, -2}, b.AsFloat32(), "inputs must not be modified")

	assert.Equal(t, []float64{1.5, 0.25}, backend.AbsDiff(
		newFloat64(tensor.Shape{2}, -1, 0.5), newFloat64(tensor.Shape{2}, 0.5, 0.25)).AsFloat64())
}

func TestAbsDiff_Integers(t *testing.T) {
	backend := New()

	a := must.M1(tensor.NewRaw(tensor.Shape{3}, tensor.Uint8, tensor.CPU))
	b := must.M1(tensor.NewRaw(tensor.Shape{3}, tensor.Uint8, tensor.CPU))
	copy(a.AsUint8(), []uint8{0, 200, 7})
	copy(b.AsUint8(), []uint8{255, 100, 7})
	assert.Equal(t, []uint8{255, 100, 0}, backend.AbsDiff(a, b).AsUint8(), "unsigned difference must not wrap")

	c := must.M1(tensor.NewRaw(tensor.Shape{2}, tensor.Int32, tensor.CPU))
	d := must.M1(tensor.NewRaw(tensor.Shape{2}, tensor.Int32, tensor.CPU))
	copy(c.AsInt32(), []int32{-3, 4})
	copy(d.AsInt32(), []int32{2, -4})
	assert.Equal(t, []int32{5, 8}, backend.AbsDiff(c, d).AsInt32())
}

func TestAbsDiff_Float16(t *testing.T) {
	backend := New()
	a := must.M1(tensor.NewRaw(tensor.Shape{2}, tensor.Float16, tensor.CPU))
	b := must.M1(tensor.NewRaw(tensor.Shape{2}, tensor.Float16, tensor.CPU))
	a.AsFloat16()[0] = float16.Fromfloat32(-0.25)
	a.AsFloat16()[1] = float16.Fromfloat32(3)
	b.AsFloat16()[0] = float16.Fromfloat32(0.25)
	b.AsFloat16()[1] = float16.Fromfloat32(1)

	diff := backend.AbsDiff(a, b).AsFloat16()
	assert.Equal(t, float32(0.5), diff[0].Float32())
	assert.Equal(t, float32(2), diff[1].Float32())
}

func TestAbsDiff_Errors(t *testing.T) {
	backend := New()

	err := exceptions.TryCatch[error](func() {
		backend.AbsDiff(newFloat32(tensor.Shape{2, 1}), newFloat32(tensor.Shape{2}))
	})
	require.ErrorIs(t, err, tensor.ErrShapeMismatch)

	err = exceptions.TryCatch[error](func() {
		backend.AbsDiff(newFloat32(tensor.Shape{2}), newFloat64(tensor.Shape{2}))
	})
	require.ErrorIs(t, err, tensor.ErrDTypeMismatch)

	flags := must.M1(tensor.NewRaw(tensor.Shape{2}, tensor.Bool, tensor.CPU))
	err = exceptions.TryCatch[error](func() { backend.AbsDiff(flags, flags) })
	require.ErrorIs(t, err, tensor.ErrUnsupportedDType)
}

func TestSqueeze(t *testing.T) {
	backend := New()
	x := newFloat32(tensor.Shape{2, 1, 3}, 1, 2, 3, 4, 5, 6)

	y := backend.Squeeze(x, 1)
	assert.True(t, y.Shape().Equal(tensor.Shape{2, 3}))
	assert.Equal(t, x.AsFloat32(), y.AsFloat32())
	assert.True(t, x.Shape().Equal(tensor.Shape{2, 1, 3}), "input shape must not change")

	z := backend.Squeeze(x, -2)
	assert.True(t, z.Shape().Equal(tensor.Shape{2, 3}))

	err := exceptions.TryCatch[error](func() { backend.Squeeze(x, 0) })
	require.ErrorIs(t, err, tensor.ErrShapeMismatch)

	err = exceptions.TryCatch[error](func() { backend.Squeeze(x, 3) })
	require.ErrorIs(t, err, tensor.ErrIndexOutOfRange)
}

func TestAgreesWithMockBackend(t *testing.T) {
	backend := New()
	mock := tensor.NewMockBackend()

	x := newFloat64(tensor.Shape{2, 3, 4})
	for i := range x.AsFloat64() {
		x.AsFloat64()[i] = float64(i*7%11) - 3.5
	}

	for dim := -3; dim < 3; dim++ {
		for _, keepDim := range []bool{false, true} {
			want := mock.SumDim(x, dim, keepDim)
			got := backend.SumDim(x, dim, keepDim)
			require.True(t, want.Shape().Equal(got.Shape()), "dim=%d keepDim=%v", dim, keepDim)
			assert.InDeltaSlice(t, want.AsFloat64(), got.AsFloat64(), 1e-12, "sum dim=%d", dim)

			want = mock.MeanDim(x, dim, keepDim)
			got = backend.MeanDim(x, dim, keepDim)
			assert.InDeltaSlice(t, want.AsFloat64(), got.AsFloat64(), 1e-12, "mean dim=%d", dim)
		}
	}
}
