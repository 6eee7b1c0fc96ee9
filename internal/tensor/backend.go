package tensor

// Backend defines the interface that all compute backends must implement.
// Backends handle the actual computation for tensor operations.
//
// Operations never modify their inputs. Misuse (an axis out of range, a shape
// mismatch, an unsupported dtype) panics with an error wrapping one of the
// sentinel errors in errors.go.
//
// Implementations:
//   - CPU: Pure Go, every dtype
//   - WebGPU: GPU compute shaders, float32 only
type Backend interface {
	// Element-wise operations (same shape, no broadcasting)
	AbsDiff(a, b *RawTensor) *RawTensor // |a - b|

	// Reduction operations
	Sum(x *RawTensor) *RawTensor                            // total sum (scalar result)
	Mean(x *RawTensor) *RawTensor                           // total mean (scalar result)
	Max(x *RawTensor) *RawTensor                            // maximum element (scalar result)
	SumDim(x *RawTensor, dim int, keepDim bool) *RawTensor  // sum along dimension
	MeanDim(x *RawTensor, dim int, keepDim bool) *RawTensor // mean along dimension

	// Manipulation operations
	Squeeze(x *RawTensor, dim int) *RawTensor // remove dimension of size 1

	// Metadata
	Name() string
	Device() Device
}
