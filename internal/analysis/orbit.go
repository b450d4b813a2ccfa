package analysis

import (
	"math"

	"github.com/san-kum/eigenmap/internal/linmap"
)

// Report summarizes an orbit next to what its basis predicts.
type Report struct {
	Steps    int
	Rotation float64 // degrees per step, from the x spectrum
	Growth   float64 // mean ln|p| growth per step
	Inside   float64 // fraction of points inside the window

	// Predicted values from the eigenvalues.
	ExpectedRotation float64
	ExpectedGrowth   float64
}

// Containment returns the share of points with both coordinates within
// [-w, w]. An empty orbit counts as fully contained.
func Containment(points []linmap.Vec2, w float64) float64 {
	if len(points) == 0 {
		return 1
	}
	inside := 0
	for _, p := range points {
		if math.Abs(p.X) <= w && math.Abs(p.Y) <= w {
			inside++
		}
	}
	return float64(inside) / float64(len(points))
}

// Analyze measures an orbit of the map built from b.
func Analyze(b linmap.Basis, points []linmap.Vec2, window float64) Report {
	xs := make([]float64, len(points))
	norms := make([]float64, len(points))
	for i, p := range points {
		xs[i] = p.X
		norms[i] = p.Norm()
	}

	r := Report{
		Steps:    max(len(points)-1, 0),
		Rotation: DominantRotation(xs),
		Growth:   GrowthRate(norms),
		Inside:   Containment(points, window),
	}

	ev := b.Eigenvalues()
	switch c := b.(type) {
	case linmap.ComplexBasis:
		r.ExpectedRotation = math.Abs(c.ArgumentDegrees())
		r.ExpectedGrowth = math.Log(c.Modulus())
	default:
		m := math.Max(math.Abs(real(ev[0])), math.Abs(real(ev[1])))
		r.ExpectedGrowth = math.Log(m)
		if real(ev[0]) < 0 || real(ev[1]) < 0 {
			// a negative eigenvalue flips sign every step
			r.ExpectedRotation = 180
		}
	}
	return r
}
