// Package export renders the phase-space and time-series views to image
// bytes. PNG output goes through go-chart; SVG is written by hand.
package export

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/san-kum/eigenmap/internal/linmap"
	"github.com/san-kum/eigenmap/internal/views"
)

var (
	ErrUnknownFormat = errors.New("export: unknown image format")
	ErrUnknownView   = errors.New("export: unknown view")
)

// Format is the output encoding.
type Format string

const (
	PNG Format = "png"
	SVG Format = "svg"
)

func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case PNG, "":
		return PNG, nil
	case SVG:
		return SVG, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownFormat, s)
}

// Filename is the fixed download name for a format.
func Filename(f Format) string {
	return "plot." + string(f)
}

// View selects which figure is rendered.
type View int

const (
	PhaseView View = iota
	TimeSeriesView
)

func (v View) String() string {
	switch v {
	case PhaseView:
		return "phase"
	case TimeSeriesView:
		return "timeseries"
	}
	return "unknown"
}

func ParseView(s string) (View, error) {
	switch s {
	case "phase", "ps", "":
		return PhaseView, nil
	case "timeseries", "ts":
		return TimeSeriesView, nil
	}
	return 0, fmt.Errorf("%w: %s", ErrUnknownView, s)
}

// Options sizes the output. Zero values fall back to DefaultOptions.
type Options struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

func DefaultOptions() Options {
	return Options{Width: 640, Height: 640}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.Width <= 0 {
		o.Width = d.Width
	}
	if o.Height <= 0 {
		o.Height = d.Height
	}
	return o
}

// Figure is the renderable state of one session view.
type Figure struct {
	View   View
	Phase  views.PhaseGeometry
	Series views.TimeSeries
}

// Encode writes the figure to w.
func (f Figure) Encode(w io.Writer, format Format, opts Options) error {
	opts = opts.withDefaults()
	switch format {
	case PNG:
		switch f.View {
		case PhaseView:
			return PhasePNG(w, f.Phase, opts)
		case TimeSeriesView:
			return TimeSeriesPNG(w, f.Series, opts)
		}
	case SVG:
		switch f.View {
		case PhaseView:
			return PhaseSVG(w, f.Phase, opts)
		case TimeSeriesView:
			return TimeSeriesSVG(w, f.Series, opts)
		}
	default:
		return fmt.Errorf("%w: %s", ErrUnknownFormat, format)
	}
	return fmt.Errorf("%w: %d", ErrUnknownView, int(f.View))
}

// Bytes renders the whole figure into memory.
func (f Figure) Bytes(format Format, opts Options) ([]byte, error) {
	var buf bytes.Buffer
	if err := f.Encode(&buf, format, opts); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// visible keeps points inside the phase window.
func visible(points []linmap.Vec2) []linmap.Vec2 {
	out := make([]linmap.Vec2, 0, len(points))
	for _, p := range points {
		if math.Abs(p.X) <= views.Window && math.Abs(p.Y) <= views.Window {
			out = append(out, p)
		}
	}
	return out
}

// arrowHead returns the two barb ends of an arrow pointing at tip.
func arrowHead(tip linmap.Vec2, size float64) (linmap.Vec2, linmap.Vec2) {
	n := tip.Norm()
	if n == 0 {
		return tip, tip
	}
	ux, uy := tip.X/n, tip.Y/n
	back := linmap.Vec2{X: tip.X - size*ux, Y: tip.Y - size*uy}
	px, py := -uy*size*0.5, ux*size*0.5
	return linmap.Vec2{X: back.X + px, Y: back.Y + py}, linmap.Vec2{X: back.X - px, Y: back.Y - py}
}

// seriesRange pads [min, max] by 10% and never returns an empty range.
// Bounds stay finite for any finite input.
func seriesRange(vals []float64) (float64, float64) {
	if len(vals) == 0 {
		return -1, 1
	}
	lo, hi := vals[0], vals[0]
	for _, v := range vals {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	// half the span; hi-lo itself can overflow
	half := hi/2 - lo/2
	if half == 0 {
		half = math.Max(math.Abs(hi), 1) / 2
	}
	return math.Max(lo-0.2*half, -math.MaxFloat64), math.Min(hi+0.2*half, math.MaxFloat64)
}
