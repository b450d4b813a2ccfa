package linmap

import (
	"errors"
	"math"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func near(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestRealBasis_ScenarioMatrix(t *testing.T) {
	b := RealBasis{Lambda1: 0.9, Lambda2: -0.95, V: [2][2]float64{{1.0, 0.45}, {0.2, 1.0}}}

	a, err := b.Matrix()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := Mat2{{0.9855 / 0.91, -0.8325 / 0.91}, {0.37 / 0.91, -1.031 / 0.91}}
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			if !near(a[i][j], want[i][j], 1e-12) {
				t.Errorf("A[%d][%d] = %.6f, want %.6f", i, j, a[i][j], want[i][j])
			}
		}
	}

	if !near(a.Trace(), -0.05, 1e-12) {
		t.Errorf("trace = %f, want λ1+λ2 = -0.05", a.Trace())
	}
	if !near(a.Det(), -0.855, 1e-12) {
		t.Errorf("det = %f, want λ1·λ2 = -0.855", a.Det())
	}

	p1 := a.Apply(Vec2{X: 9, Y: 7})
	if !near(p1.X, 3.042/0.91, 1e-12) || !near(p1.Y, -3.887/0.91, 1e-12) {
		t.Errorf("A·(9,7) = %v", p1)
	}
}

func TestRealBasis_Singular(t *testing.T) {
	tests := []struct {
		name string
		v    [2][2]float64
	}{
		{"parallel", [2][2]float64{{1, 2}, {2, 4}}},
		{"anti-parallel", [2][2]float64{{1, -3}, {1, -3}}},
		{"zero first column", [2][2]float64{{0, 1}, {0, 1}}},
		{"zero second column", [2][2]float64{{1, 0}, {2, 0}}},
		{"all zero", [2][2]float64{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := RealBasis{Lambda1: 0.5, Lambda2: 2, V: tt.v}
			_, err := b.Matrix()
			if !errors.Is(err, ErrSingularBasis) {
				t.Fatalf("expected ErrSingularBasis, got %v", err)
			}
			var be *BasisError
			if !errors.As(err, &be) || be.Variant != VariantReal {
				t.Errorf("expected *BasisError for real variant, got %T", err)
			}
		})
	}
}

func TestRealBasis_PermutationIsNotSingular(t *testing.T) {
	b := RealBasis{Lambda1: 2, Lambda2: 3, V: [2][2]float64{{0, 1}, {1, 0}}}
	a, err := b.Matrix()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !near(a[0][0], 3, 1e-12) || !near(a[1][1], 2, 1e-12) {
		t.Errorf("expected diag(3, 2), got %v", a)
	}
}

func TestRealBasis_InvalidParameter(t *testing.T) {
	b := RealBasis{Lambda1: math.NaN(), Lambda2: 1, V: [2][2]float64{{1, 0}, {0, 1}}}
	if _, err := b.Matrix(); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("expected ErrInvalidParameter, got %v", err)
	}

	b = RealBasis{Lambda1: 1, Lambda2: 1, V: [2][2]float64{{math.Inf(1), 0}, {0, 1}}}
	if _, err := b.Matrix(); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("expected ErrInvalidParameter, got %v", err)
	}
}

// Property: A·v_k = λ_k·v_k for every well-conditioned real basis.
func TestRealBasis_EigenEquation(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("A reproduces its eigenpairs", prop.ForAll(
		func(l1, l2, v11, v12, v21, v22 float64) bool {
			if math.Abs(v11*v22-v12*v21) < 0.5 {
				return true // skip ill-conditioned bases
			}
			b := RealBasis{Lambda1: l1, Lambda2: l2, V: [2][2]float64{{v11, v12}, {v21, v22}}}
			a, err := b.Matrix()
			if err != nil {
				return false
			}
			dirs := b.Directions()
			for k, l := range []float64{l1, l2} {
				got := a.Apply(dirs[k])
				want := dirs[k].Scale(l)
				if got.Sub(want).Norm() > 1e-9*(1+math.Abs(l))*(1+dirs[k].Norm()) {
					return false
				}
			}
			return true
		},
		gen.Float64Range(-3, 3),
		gen.Float64Range(-3, 3),
		gen.Float64Range(-5, 5),
		gen.Float64Range(-5, 5),
		gen.Float64Range(-5, 5),
		gen.Float64Range(-5, 5),
	))

	properties.TestingRun(t)
}

// Property: a basis with v2 = k·v1 is always rejected.
func TestRealBasis_ParallelAlwaysSingular(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	properties := gopter.NewProperties(parameters)

	properties.Property("parallel columns are singular", prop.ForAll(
		func(x, y, k float64) bool {
			b := RealBasis{Lambda1: 0.5, Lambda2: 1.5, V: [2][2]float64{{x, k * x}, {y, k * y}}}
			_, err := b.Matrix()
			return errors.Is(err, ErrSingularBasis)
		},
		gen.Float64Range(-10, 10),
		gen.Float64Range(-10, 10),
		gen.Float64Range(-4, 4),
	))

	properties.TestingRun(t)
}
