// Package trajectory holds the accumulating orbit of a 2x2 linear map.
//
// A [Trajectory] is seeded with an initial point by Reset and grows by one
// point per successful Step. It never shrinks except through Reset.
package trajectory

import (
	"errors"
	"fmt"

	"github.com/san-kum/eigenmap/internal/linmap"
)

var (
	// ErrEmptyTrajectory indicates a step or view was requested before Reset.
	ErrEmptyTrajectory = errors.New("trajectory: no initial point")

	// ErrUndefinedMatrix indicates a step without a system matrix. It wraps
	// linmap.ErrSingularBasis.
	ErrUndefinedMatrix = fmt.Errorf("trajectory: system matrix undefined: %w", linmap.ErrSingularBasis)

	// ErrDiverged indicates that the next point would be NaN or Inf.
	ErrDiverged = errors.New("trajectory: state diverged")
)

// Phase is the lifecycle state of a trajectory.
type Phase int

const (
	Empty Phase = iota
	Seeded
	Accumulating
)

func (p Phase) String() string {
	switch p {
	case Empty:
		return "empty"
	case Seeded:
		return "seeded"
	case Accumulating:
		return "accumulating"
	}
	return "unknown"
}

// Trajectory is the ordered sequence p_0, p_1, ..., p_n.
// It is not safe for concurrent use.
type Trajectory struct {
	points []linmap.Vec2
}

// New returns a trajectory already seeded with p0.
func New(p0 linmap.Vec2) *Trajectory {
	t := &Trajectory{}
	t.Reset(p0)
	return t
}

// Reset collapses the sequence to [p0].
func (t *Trajectory) Reset(p0 linmap.Vec2) {
	t.points = append(t.points[:0], p0)
}

// Step appends a·last. A nil matrix leaves the sequence untouched.
func (t *Trajectory) Step(a *linmap.Mat2) (linmap.Vec2, error) {
	if len(t.points) == 0 {
		return linmap.Vec2{}, ErrEmptyTrajectory
	}
	if a == nil {
		return linmap.Vec2{}, ErrUndefinedMatrix
	}

	next := a.Apply(t.points[len(t.points)-1])
	if !next.IsValid() {
		return linmap.Vec2{}, ErrDiverged
	}
	t.points = append(t.points, next)
	return next, nil
}

// Advance takes up to n steps and returns how many succeeded.
func (t *Trajectory) Advance(a *linmap.Mat2, n int) (int, error) {
	for i := 0; i < n; i++ {
		if _, err := t.Step(a); err != nil {
			return i, err
		}
	}
	return n, nil
}

func (t *Trajectory) Phase() Phase {
	switch len(t.points) {
	case 0:
		return Empty
	case 1:
		return Seeded
	}
	return Accumulating
}

func (t *Trajectory) Len() int { return len(t.points) }

// Points returns a copy of the sequence.
func (t *Trajectory) Points() []linmap.Vec2 {
	out := make([]linmap.Vec2, len(t.points))
	copy(out, t.points)
	return out
}

func (t *Trajectory) Initial() (linmap.Vec2, error) {
	if len(t.points) == 0 {
		return linmap.Vec2{}, ErrEmptyTrajectory
	}
	return t.points[0], nil
}

func (t *Trajectory) Last() (linmap.Vec2, error) {
	if len(t.points) == 0 {
		return linmap.Vec2{}, ErrEmptyTrajectory
	}
	return t.points[len(t.points)-1], nil
}
