package views

import (
	"github.com/san-kum/eigenmap/internal/linmap"
	"github.com/san-kum/eigenmap/internal/trajectory"
)

// Window is the half-width of the square phase-space viewport.
const Window = 10.0

// Ray is an infinite line through the origin along Direction.
type Ray struct {
	Direction linmap.Vec2
}

// Clip returns the segment of the ray inside the square [-w, w]², or false
// when the direction is zero.
func (r Ray) Clip(w float64) (linmap.Vec2, linmap.Vec2, bool) {
	d := r.Direction
	n := d.Norm()
	if n == 0 {
		return linmap.Vec2{}, linmap.Vec2{}, false
	}
	// scale so the larger component reaches the window edge
	m := d.X
	if d.Y*d.Y > m*m {
		m = d.Y
	}
	if m < 0 {
		m = -m
	}
	end := d.Scale(w / m)
	return end.Scale(-1), end, true
}

// Arrow is the vector from the origin to Tip.
type Arrow struct {
	Tip linmap.Vec2
}

// PhaseGeometry is everything drawn in the phase-space view.
type PhaseGeometry struct {
	Variant linmap.Variant
	Rays    [2]Ray
	Arrows  [2]Arrow
	Points  []linmap.Vec2
}

func NewPhaseGeometry(b linmap.Basis, points []linmap.Vec2) (PhaseGeometry, error) {
	if len(points) == 0 {
		return PhaseGeometry{}, trajectory.ErrEmptyTrajectory
	}
	dirs := b.Directions()
	g := PhaseGeometry{
		Variant: b.Variant(),
		Points:  append([]linmap.Vec2(nil), points...),
	}
	for i, d := range dirs {
		g.Rays[i] = Ray{Direction: d}
		g.Arrows[i] = Arrow{Tip: d}
	}
	return g, nil
}
