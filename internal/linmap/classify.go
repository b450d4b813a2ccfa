package linmap

import (
	"math"
	"math/cmplx"
)

// FixedPoint describes the behaviour of the origin under the map.
type FixedPoint int

const (
	Sink FixedPoint = iota
	Source
	Saddle
	StableSpiral
	UnstableSpiral
	Center
	NonHyperbolic
)

var fixedPointNames = map[FixedPoint]string{
	Sink:           "sink",
	Source:         "source",
	Saddle:         "saddle",
	StableSpiral:   "stable spiral",
	UnstableSpiral: "unstable spiral",
	Center:         "center",
	NonHyperbolic:  "non-hyperbolic",
}

func (f FixedPoint) String() string { return fixedPointNames[f] }

const unitTol = 1e-9

// Classify labels the origin from the eigenvalue moduli: inside the unit
// circle contracts, outside expands.
func Classify(b Basis) FixedPoint {
	ev := b.Eigenvalues()
	m1, m2 := cmplx.Abs(ev[0]), cmplx.Abs(ev[1])

	if imag(ev[0]) != 0 {
		switch {
		case math.Abs(m1-1) <= unitTol:
			return Center
		case m1 < 1:
			return StableSpiral
		default:
			return UnstableSpiral
		}
	}

	if math.Abs(m1-1) <= unitTol || math.Abs(m2-1) <= unitTol {
		return NonHyperbolic
	}
	switch {
	case m1 < 1 && m2 < 1:
		return Sink
	case m1 > 1 && m2 > 1:
		return Source
	default:
		return Saddle
	}
}

// StepsPerTurn is the number of steps a complex basis needs for a full
// revolution, or 0 when the map does not rotate.
func StepsPerTurn(b ComplexBasis) float64 {
	arg := math.Abs(b.ArgumentDegrees())
	if arg == 0 || arg == 180 {
		return 0
	}
	return 360 / arg
}
