package linmap

import (
	"math"
	"math/cmplx"
)

// residueTol bounds the imaginary part left over by the conjugate-symmetric
// reconstruction, relative to the largest real cell.
const residueTol = 1e-9

// ComplexBasis holds one eigenvalue σ+iτ of a conjugate pair and one
// eigenvector α+iβ; the second eigenpair is the complex conjugate.
type ComplexBasis struct {
	Sigma  float64 `json:"sigma" yaml:"sigma"`
	Tau    float64 `json:"tau" yaml:"tau"`
	Alpha1 float64 `json:"alpha1" yaml:"alpha1"`
	Beta1  float64 `json:"beta1" yaml:"beta1"`
	Alpha2 float64 `json:"alpha2" yaml:"alpha2"`
	Beta2  float64 `json:"beta2" yaml:"beta2"`
}

func (b ComplexBasis) Variant() Variant { return VariantComplex }

// Directions returns α (real part) and β (imaginary part) of the
// eigenvector. They are reference axes, not eigenvectors of A.
func (b ComplexBasis) Directions() [2]Vec2 {
	return [2]Vec2{
		{X: b.Alpha1, Y: b.Alpha2},
		{X: b.Beta1, Y: b.Beta2},
	}
}

func (b ComplexBasis) Eigenvalue() complex128 { return complex(b.Sigma, b.Tau) }

func (b ComplexBasis) Eigenvalues() [2]complex128 {
	l := b.Eigenvalue()
	return [2]complex128{l, cmplx.Conj(l)}
}

// Modulus is |λ|, the per-step scaling about the origin.
func (b ComplexBasis) Modulus() float64 { return cmplx.Abs(b.Eigenvalue()) }

// ArgumentDegrees is arg(λ) in degrees, the per-step rotation.
func (b ComplexBasis) ArgumentDegrees() float64 {
	return cmplx.Phase(b.Eigenvalue()) * 180 / math.Pi
}

// Reconstruct returns the full complex product V·diag(λ, λ̄)·V⁻¹ before the
// real part is taken.
func (b ComplexBasis) Reconstruct() ([2][2]complex128, error) {
	if !finite(b.Sigma, b.Tau) {
		return [2][2]complex128{}, &BasisError{Variant: VariantComplex, Wrapped: ErrInvalidParameter}
	}
	dirs := b.Directions()
	if err := checkColumns(VariantComplex, dirs[0], dirs[1]); err != nil {
		return [2][2]complex128{}, err
	}

	v11 := complex(b.Alpha1, b.Beta1)
	v21 := complex(b.Alpha2, b.Beta2)
	v12 := cmplx.Conj(v11)
	v22 := cmplx.Conj(v21)
	e1 := b.Eigenvalue()
	e2 := cmplx.Conj(e1)

	det := v11*v22 - v12*v21
	if det == 0 {
		return [2][2]complex128{}, &BasisError{Variant: VariantComplex, Wrapped: ErrSingularBasis}
	}
	i11, i12 := v22/det, -v12/det
	i21, i22 := -v21/det, v11/det

	// (V·diag(E))·V⁻¹
	a11, a12 := v11*e1, v12*e2
	a21, a22 := v21*e1, v22*e2

	return [2][2]complex128{
		{a11*i11 + a12*i21, a11*i12 + a12*i22},
		{a21*i11 + a22*i21, a21*i12 + a22*i22},
	}, nil
}

// Matrix returns Re(V·diag(λ, λ̄)·V⁻¹).
func (b ComplexBasis) Matrix() (Mat2, error) {
	c, err := b.Reconstruct()
	if err != nil {
		return Mat2{}, err
	}

	var a Mat2
	scale, residue := 1.0, 0.0
	for i := range c {
		for j := range c[i] {
			a[i][j] = real(c[i][j])
			scale = math.Max(scale, math.Abs(a[i][j]))
			residue = math.Max(residue, math.Abs(imag(c[i][j])))
		}
	}
	if !(residue <= residueTol*scale) {
		return Mat2{}, &BasisError{Variant: VariantComplex, Wrapped: ErrImaginaryResidue}
	}
	return a, nil
}
