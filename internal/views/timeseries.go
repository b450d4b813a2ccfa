package views

import (
	"github.com/san-kum/eigenmap/internal/linmap"
	"github.com/san-kum/eigenmap/internal/trajectory"
)

// ChunkSize is the granularity of the time-series axis extent.
const ChunkSize = 20

// TMax picks the time axis extent for a series of length t: the next
// multiple of ChunkSize strictly above t.
func TMax(t int) int {
	if t < 0 {
		t = 0
	}
	return (t/ChunkSize + 1) * ChunkSize
}

// TimeSeries splits a trajectory into its x and y components indexed by
// step number.
type TimeSeries struct {
	Steps []float64
	X     []float64
	Y     []float64
}

func NewTimeSeries(points []linmap.Vec2) (TimeSeries, error) {
	if len(points) == 0 {
		return TimeSeries{}, trajectory.ErrEmptyTrajectory
	}
	ts := TimeSeries{
		Steps: make([]float64, len(points)),
		X:     make([]float64, len(points)),
		Y:     make([]float64, len(points)),
	}
	for i, p := range points {
		ts.Steps[i] = float64(i)
		ts.X[i] = p.X
		ts.Y[i] = p.Y
	}
	return ts, nil
}

func (ts TimeSeries) Len() int { return len(ts.X) }

// Extent is TMax of the series length.
func (ts TimeSeries) Extent() int { return TMax(ts.Len()) }
