package linmap

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// RealBasis holds two real eigenvalues and their eigenvectors. V is row-major
// and its columns are the eigenvectors: v1 = (V[0][0], V[1][0]),
// v2 = (V[0][1], V[1][1]).
type RealBasis struct {
	Lambda1 float64       `json:"lambda1" yaml:"lambda1"`
	Lambda2 float64       `json:"lambda2" yaml:"lambda2"`
	V       [2][2]float64 `json:"v" yaml:"v"`
}

func (b RealBasis) Variant() Variant { return VariantReal }

func (b RealBasis) Directions() [2]Vec2 {
	return [2]Vec2{
		{X: b.V[0][0], Y: b.V[1][0]},
		{X: b.V[0][1], Y: b.V[1][1]},
	}
}

func (b RealBasis) Eigenvalues() [2]complex128 {
	return [2]complex128{complex(b.Lambda1, 0), complex(b.Lambda2, 0)}
}

// Matrix returns V·diag(λ1, λ2)·V⁻¹.
func (b RealBasis) Matrix() (Mat2, error) {
	if !finite(b.Lambda1, b.Lambda2) {
		return Mat2{}, &BasisError{Variant: VariantReal, Wrapped: ErrInvalidParameter}
	}
	dirs := b.Directions()
	if err := checkColumns(VariantReal, dirs[0], dirs[1]); err != nil {
		return Mat2{}, err
	}

	v := mat.NewDense(2, 2, []float64{
		b.V[0][0], b.V[0][1],
		b.V[1][0], b.V[1][1],
	})
	var inv mat.Dense
	if err := inv.Inverse(v); err != nil {
		return Mat2{}, &BasisError{
			Variant: VariantReal,
			Det:     mat.Det(v),
			Wrapped: fmt.Errorf("%w: %v", ErrSingularBasis, err),
		}
	}

	var a mat.Dense
	a.Product(v, mat.NewDiagDense(2, []float64{b.Lambda1, b.Lambda2}), &inv)

	return Mat2{
		{a.At(0, 0), a.At(0, 1)},
		{a.At(1, 0), a.At(1, 1)},
	}, nil
}
