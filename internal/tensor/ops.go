package tensor

// AbsDiff returns the element-wise absolute difference |t - other|.
// Shapes must match exactly; there is no broadcasting.
func (t *Tensor[T, B]) AbsDiff(other *Tensor[T, B]) *Tensor[T, B] {
	result := t.backend.AbsDiff(t.raw, other.raw)
	return New[T, B](result, t.backend)
}

// Sum computes the sum of all elements (scalar result).
//
// Example:
//
//	x := tensor.Ones[float32](Shape{2, 3}, backend)
//	s := x.Sum() // Scalar: 6.0
func (t *Tensor[T, B]) Sum() *Tensor[T, B] {
	result := t.backend.Sum(t.raw)
	return New[T, B](result, t.backend)
}

// Mean computes the mean of all elements (scalar result).
func (t *Tensor[T, B]) Mean() *Tensor[T, B] {
	result := t.backend.Mean(t.raw)
	return New[T, B](result, t.backend)
}

// Max returns the largest element (scalar result).
// NaN elements propagate to the result.
func (t *Tensor[T, B]) Max() *Tensor[T, B] {
	result := t.backend.Max(t.raw)
	return New[T, B](result, t.backend)
}

// SumDim sums along dim. Supports negative dim indexing (-1 = last dimension).
//
// Example:
//
//	x := tensor.Ones[float32](Shape{2, 3}, backend)
//	y := x.SumDim(-1, true)  // Shape: [2, 1]
//	z := x.SumDim(0, false)  // Shape: [3]
func (t *Tensor[T, B]) SumDim(dim int, keepDim bool) *Tensor[T, B] {
	result := t.backend.SumDim(t.raw, dim, keepDim)
	return New[T, B](result, t.backend)
}

// MeanDim averages along dim. Supports negative dim indexing (-1 = last dimension).
func (t *Tensor[T, B]) MeanDim(dim int, keepDim bool) *Tensor[T, B] {
	result := t.backend.MeanDim(t.raw, dim, keepDim)
	return New[T, B](result, t.backend)
}

// Squeeze removes a dimension of size 1 at the specified position.
//
// Panics if the dimension size is not 1.
// Supports negative dim indexing.
// This is a view operation (no data copy).
//
// Example:
//
//	x := tensor.Zeros[float32](Shape{2, 1, 3}, backend)
//	y := x.Squeeze(1)  // Shape: [2, 3]
//	z := x.Squeeze(-2) // Shape: [2, 3]
func (t *Tensor[T, B]) Squeeze(dim int) *Tensor[T, B] {
	result := t.backend.Squeeze(t.raw, dim)
	return New[T, B](result, t.backend)
}
