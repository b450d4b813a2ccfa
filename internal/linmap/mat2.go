package linmap

import (
	"fmt"
	"math"
)

// Variant selects which eigenstructure a basis was built from.
type Variant int

const (
	VariantReal Variant = iota
	VariantComplex
)

func (v Variant) String() string {
	switch v {
	case VariantReal:
		return "real"
	case VariantComplex:
		return "complex"
	}
	return fmt.Sprintf("variant(%d)", int(v))
}

// ParseVariant accepts "real" or "complex".
func ParseVariant(s string) (Variant, error) {
	switch s {
	case "real", "":
		return VariantReal, nil
	case "complex":
		return VariantComplex, nil
	}
	return 0, fmt.Errorf("unknown variant: %s", s)
}

// Basis is an eigenstructure that can rebuild the system matrix.
type Basis interface {
	Variant() Variant
	// Matrix rebuilds A. The error matches ErrSingularBasis when V is not invertible.
	Matrix() (Mat2, error)
	// Directions returns the two reference directions drawn in phase space.
	Directions() [2]Vec2
	Eigenvalues() [2]complex128
}

// Vec2 is a point or direction in the plane.
type Vec2 struct {
	X, Y float64
}

func (v Vec2) Norm() float64 { return math.Hypot(v.X, v.Y) }

func (v Vec2) Scale(f float64) Vec2 { return Vec2{v.X * f, v.Y * f} }

func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

func (v Vec2) IsValid() bool {
	return !math.IsNaN(v.X) && !math.IsNaN(v.Y) && !math.IsInf(v.X, 0) && !math.IsInf(v.Y, 0)
}

// Mat2 is a row-major 2x2 real matrix.
type Mat2 [2][2]float64

func Identity() Mat2 { return Mat2{{1, 0}, {0, 1}} }

func (m Mat2) Apply(v Vec2) Vec2 {
	return Vec2{
		X: m[0][0]*v.X + m[0][1]*v.Y,
		Y: m[1][0]*v.X + m[1][1]*v.Y,
	}
}

func (m Mat2) Mul(o Mat2) Mat2 {
	var r Mat2
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			r[i][j] = m[i][0]*o[0][j] + m[i][1]*o[1][j]
		}
	}
	return r
}

// Pow returns m^n by repeated squaring. n < 0 is treated as 0.
func (m Mat2) Pow(n int) Mat2 {
	r := Identity()
	base := m
	for n > 0 {
		if n&1 == 1 {
			r = r.Mul(base)
		}
		base = base.Mul(base)
		n >>= 1
	}
	return r
}

func (m Mat2) Trace() float64 { return m[0][0] + m[1][1] }

func (m Mat2) Det() float64 { return m[0][0]*m[1][1] - m[0][1]*m[1][0] }

// Round rounds every cell to the given number of decimal digits.
func (m Mat2) Round(digits int) Mat2 {
	p := math.Pow(10, float64(digits))
	var r Mat2
	for i := range m {
		for j := range m[i] {
			r[i][j] = math.Round(m[i][j]*p) / p
			if r[i][j] == 0 {
				r[i][j] = 0 // drop negative zero
			}
		}
	}
	return r
}

func (m Mat2) String() string {
	return fmt.Sprintf("[[%g %g] [%g %g]]", m[0][0], m[0][1], m[1][0], m[1][1])
}

// singularTol is the relative determinant below which two columns are
// considered parallel.
const singularTol = 1e-12

// checkColumns rejects non-finite, zero or parallel column pairs. Both
// variants go through it so they agree on what "parallel" means.
func checkColumns(variant Variant, c1, c2 Vec2) error {
	if !c1.IsValid() || !c2.IsValid() {
		return &BasisError{Variant: variant, Det: math.NaN(), Wrapped: ErrInvalidParameter}
	}
	det := c1.X*c2.Y - c2.X*c1.Y
	n1, n2 := c1.Norm(), c2.Norm()
	if n1 == 0 || n2 == 0 || math.Abs(det) <= singularTol*n1*n2 {
		return &BasisError{Variant: variant, Det: det, Wrapped: ErrSingularBasis}
	}
	return nil
}

func finite(vals ...float64) bool {
	for _, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
