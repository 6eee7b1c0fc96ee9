package tensor

import "github.com/pkg/errors"

// Sentinel errors reported by tensors and backends.
//
// Backends panic with one of these wrapped in context (see errors.Wrapf);
// test for the kind with errors.Is.
var (
	ErrIndexOutOfRange  = errors.New("index out of range")
	ErrDuplicateAxis    = errors.New("duplicate axis")
	ErrShapeMismatch    = errors.New("shape mismatch")
	ErrDTypeMismatch    = errors.New("dtype mismatch")
	ErrUnsupportedDType = errors.New("unsupported dtype")
	ErrInvalidShape     = errors.New("invalid shape")
)
