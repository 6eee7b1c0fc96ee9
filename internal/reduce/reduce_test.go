package reduce

import (
	"math"
	"testing"

	"github.com/born-ml/tensorops/internal/backend/cpu"
	"github.com/born-ml/tensorops/internal/tensor"
	"github.com/gomlx/exceptions"
	"github.com/janpfeifer/must"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func iota64(shape tensor.Shape) *tensor.RawTensor {
	x := must.M1(tensor.NewRaw(shape, tensor.Float64, tensor.CPU))
	for i := range x.AsFloat64() {
		x.AsFloat64()[i] = float64(i)
	}
	return x
}

func TestSortedAxes(t *testing.T) {
	shape := tensor.Shape{2, 3, 4}

	axes, err := SortedAxes(shape, []int{2, 0})
	require.NoError(t, err)
	assert.Equal(t, []int{0, 2}, axes)

	axes, err = SortedAxes(shape, []int{-1, 0})
	require.NoError(t, err)
	assert.Equal(t, []int{0, 2}, axes)

	axes, err = SortedAxes(shape, []int{})
	require.NoError(t, err)
	assert.Empty(t, axes)

	_, err = SortedAxes(shape, []int{1, -2})
	require.ErrorIs(t, err, tensor.ErrDuplicateAxis)

	_, err = SortedAxes(shape, []int{3})
	require.ErrorIs(t, err, tensor.ErrIndexOutOfRange)

	axes, err = SortedAxes(tensor.Shape{}, []int{-1})
	require.NoError(t, err)
	assert.Equal(t, []int{0}, axes)

	_, err = SortedAxes(tensor.Shape{}, []int{1})
	require.ErrorIs(t, err, tensor.ErrIndexOutOfRange)

	_, err = SortedAxes(tensor.Shape{}, []int{0, -1})
	require.ErrorIs(t, err, tensor.ErrDuplicateAxis)
}

func TestScalarAxis(t *testing.T) {
	backend := cpu.New()
	x := must.M1(tensor.NewRaw(tensor.Shape{}, tensor.Float64, tensor.CPU))
	x.AsFloat64()[0] = 4.5

	for _, keepDim := range []bool{false, true} {
		mean := Mean(backend, x, []int{0}, keepDim, nil)
		assert.Empty(t, mean.Shape())
		assert.Equal(t, 4.5, mean.AsFloat64()[0])
		assert.NotSame(t, x, mean)

		sum := Sum(backend, x, []int{-1}, keepDim, nil)
		assert.Empty(t, sum.Shape())
		assert.Equal(t, 4.5, sum.AsFloat64()[0])
	}

	err := exceptions.TryCatch[error](func() { Mean(backend, x, []int{1}, false, nil) })
	require.ErrorIs(t, err, tensor.ErrIndexOutOfRange)
}

func TestSum_Axes(t *testing.T) {
	backend := cpu.New()
	x := iota64(tensor.Shape{2, 3, 4})

	got := Sum(backend, x, []int{0, 2}, false, nil)
	require.True(t, got.Shape().Equal(tensor.Shape{3}), "got %v", got.Shape())
	// Row j of the middle axis holds 4j..4j+3 and 12+4j..12+4j+3.
	assert.Equal(t, []float64{60, 92, 124}, got.AsFloat64())

	kept := Sum(backend, x, []int{2, 0}, true, nil)
	require.True(t, kept.Shape().Equal(tensor.Shape{1, 3, 1}), "got %v", kept.Shape())
	assert.Equal(t, got.AsFloat64(), kept.AsFloat64())
}

func TestMean_SqueezeShiftsAxes(t *testing.T) {
	backend := cpu.New()
	x := iota64(tensor.Shape{2, 1, 3, 1, 2})

	got := Mean(backend, x, []int{1, 3, 4}, false, nil)
	require.True(t, got.Shape().Equal(tensor.Shape{2, 3}), "got %v", got.Shape())
	assert.Equal(t, []float64{0.5, 2.5, 4.5, 6.5, 8.5, 10.5}, got.AsFloat64())
}

func TestNilDimsIgnoresKeepDim(t *testing.T) {
	backend := cpu.New()
	x := iota64(tensor.Shape{2, 2})

	sum := Sum(backend, x, nil, true, nil)
	require.Empty(t, sum.Shape())
	assert.Equal(t, 6.0, sum.AsFloat64()[0])

	mean := Mean(backend, x, nil, true, nil)
	require.Empty(t, mean.Shape())
	assert.Equal(t, 1.5, mean.AsFloat64()[0])
}

func TestEmptyDimsCopiesInput(t *testing.T) {
	backend := cpu.New()
	x := iota64(tensor.Shape{2, 2})

	got := Sum(backend, x, []int{}, false, nil)
	require.True(t, got.Shape().Equal(x.Shape()))
	assert.Equal(t, x.AsFloat64(), got.AsFloat64())

	got.AsFloat64()[0] = 100
	assert.Equal(t, 0.0, x.AsFloat64()[0], "result must not alias the input")
}

func TestOutWriteBack(t *testing.T) {
	backend := cpu.New()
	x := iota64(tensor.Shape{2, 2})

	out := must.M1(tensor.NewRaw(tensor.Shape{2}, tensor.Float64, tensor.CPU))
	got := Mean(backend, x, []int{1}, false, out)
	assert.Equal(t, []float64{0.5, 2.5}, out.AsFloat64())
	assert.NotSame(t, out, got)

	wrong := must.M1(tensor.NewRaw(tensor.Shape{2, 1}, tensor.Float64, tensor.CPU))
	err := exceptions.TryCatch[error](func() { Sum(backend, x, []int{1}, false, wrong) })
	require.ErrorIs(t, err, tensor.ErrShapeMismatch)
}

func TestNilDimsSkipsOut(t *testing.T) {
	backend := cpu.New()
	x := iota64(tensor.Shape{2, 2})

	out := must.M1(tensor.NewRaw(tensor.Shape{2}, tensor.Float64, tensor.CPU))
	copy(out.AsFloat64(), []float64{-1, -1})

	mean := Mean(backend, x, nil, false, out)
	assert.Equal(t, 1.5, must.M1(mean.Float64Item()))
	sum := Sum(backend, x, nil, true, out)
	assert.Equal(t, 6.0, must.M1(sum.Float64Item()))
	assert.Equal(t, []float64{-1, -1}, out.AsFloat64())
}

func TestReduceErrors(t *testing.T) {
	backend := cpu.New()
	x := iota64(tensor.Shape{2, 2})

	err := exceptions.TryCatch[error](func() { Mean(backend, x, []int{2}, false, nil) })
	require.ErrorIs(t, err, tensor.ErrIndexOutOfRange)

	err = exceptions.TryCatch[error](func() { Sum(backend, x, []int{0, -2}, false, nil) })
	require.ErrorIs(t, err, tensor.ErrDuplicateAxis)
}

func TestEqualWithin(t *testing.T) {
	backend := cpu.New()
	a := iota64(tensor.Shape{2, 3})
	b := a.Clone()

	assert.True(t, EqualWithin(backend, a, b, 0))
	assert.False(t, EqualWithin(backend, a, b, -1), "negative eps is never satisfied")

	b.AsFloat64()[4] += 1e-7
	assert.True(t, EqualWithin(backend, a, b, 1e-6))
	assert.False(t, EqualWithin(backend, a, b, 1e-8))

	reshaped := must.M1(a.Reshape(tensor.Shape{3, 2}))
	assert.False(t, EqualWithin(backend, a, reshaped, 1))

	b.AsFloat64()[0] = math.NaN()
	assert.False(t, EqualWithin(backend, a, b, math.Inf(1)))

	empty := iota64(tensor.Shape{0, 3})
	assert.True(t, EqualWithin(backend, empty, empty.Clone(), 0))
	assert.Equal(t, 0.0, MaxAbsDiff(backend, empty, empty))
}
