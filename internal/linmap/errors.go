package linmap

import (
	"errors"
	"fmt"
)

var (
	// ErrSingularBasis indicates that the eigenvector matrix is not invertible.
	ErrSingularBasis = errors.New("linmap: eigenvector axes are parallel")

	// ErrInvalidParameter indicates a NaN or Inf basis parameter.
	ErrInvalidParameter = errors.New("linmap: parameter is NaN or Inf")

	// ErrImaginaryResidue indicates that the complex reconstruction left a
	// non-negligible imaginary part.
	ErrImaginaryResidue = errors.New("linmap: reconstruction is not real")
)

// BasisError wraps a reconstruction failure with the basis it came from.
type BasisError struct {
	Variant Variant
	Det     float64
	Wrapped error
}

func (e *BasisError) Error() string {
	return fmt.Sprintf("%s basis (det=%.3g): %v", e.Variant, e.Det, e.Wrapped)
}

func (e *BasisError) Unwrap() error {
	return e.Wrapped
}
